package cmd

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-folio"
)

func newPreviewCommand(a *app) *cobra.Command {
	var (
		style string
		width int
	)
	cmd := &cobra.Command{
		Use:   "preview <path>",
		Short: "Render one entry in the terminal",
		Long:  "preview accepts a canonical path such as writing/2012/thoughts-on-23andme or a legacy path.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := folio.New(cmd.Context(), a.cfg)
			if err != nil {
				return err
			}
			return module.Preview(cmd.Context(), args[0], style, width, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&style, "style", "auto", "glamour style: auto, dark, light, ascii or notty")
	cmd.Flags().IntVar(&width, "width", 80, "wrap width")
	return cmd
}
