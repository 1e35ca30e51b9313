package cmd

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-folio"
)

func newCheckCommand(a *app) *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Load and render every entry, validate redirects and report slug warnings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return folio.Check(cmd.Context(), a.cfg, strict, cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on warnings and render fallbacks")
	return cmd
}
