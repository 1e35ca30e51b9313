package folio

import (
	"context"
	"io"

	sitecmd "github.com/goliatone/go-folio/internal/commands/site"
	"github.com/goliatone/go-folio/internal/di"
)

type (
	CheckSiteCommand    = sitecmd.CheckSiteCommand
	PreviewEntryCommand = sitecmd.PreviewEntryCommand
	CheckReport         = sitecmd.CheckReport
)

var ErrStrictWarnings = sitecmd.ErrStrictWarnings

// Check loads the configured site without serving it and writes a report to
// out. Unlike New it does not keep the loaded content.
func Check(ctx context.Context, cfg Config, strict bool, out io.Writer, opts ...Option) error {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return err
	}
	return container.CheckSiteHandler(out).Execute(ctx, CheckSiteCommand{
		ManifestPath: cfg.Content.ManifestPath,
		ContentDir:   cfg.Content.ContentDir,
		Strict:       strict,
	})
}

func previewCommand(path, style string, width int) PreviewEntryCommand {
	return PreviewEntryCommand{Path: path, Style: style, Width: width}
}
