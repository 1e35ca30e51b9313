package sitecmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-folio/internal/commands"
	"github.com/goliatone/go-folio/internal/content"
	"github.com/goliatone/go-folio/internal/logging"
	"github.com/goliatone/go-folio/internal/manifest"
	"github.com/goliatone/go-folio/internal/markdown"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

const (
	checkOperation   = "site.check"
	previewOperation = "site.preview_entry"
)

// ErrStrictWarnings is returned by a strict check that found lint warnings or
// entries rendered with fallback text.
var ErrStrictWarnings = errors.New("site check: warnings found in strict mode")

var (
	_ command.Commander[CheckSiteCommand]    = (*CheckSiteHandler)(nil)
	_ command.Commander[PreviewEntryCommand] = (*PreviewEntryHandler)(nil)
)

// CheckReport summarises a check run.
type CheckReport struct {
	Entries   int
	Redirects int
	Fallbacks []string
	Warnings  []manifest.Warning
}

// CheckDeps carries the collaborators a check needs besides the message.
type CheckDeps struct {
	Parser        interfaces.MarkdownParser
	Redirects     []content.Redirect
	RenderFailure content.RenderFailurePolicy
	// Out receives the human readable report. Nil discards it.
	Out io.Writer
	// Report, when set, receives the structured report.
	Report func(CheckReport)
}

// CheckSiteHandler runs CheckSiteCommand through the shared command handler.
type CheckSiteHandler struct {
	inner *commands.Handler[CheckSiteCommand]
}

// NewCheckSiteHandler creates a handler that loads the site exactly as serving would.
func NewCheckSiteHandler(deps CheckDeps, logger interfaces.Logger, opts ...commands.HandlerOption[CheckSiteCommand]) *CheckSiteHandler {
	baseLogger := logging.Ensure(logger)
	out := deps.Out
	if out == nil {
		out = io.Discard
	}

	exec := func(ctx context.Context, msg CheckSiteCommand) error {
		m, err := manifest.LoadFile(msg.ManifestPath)
		if err != nil {
			return err
		}
		if _, err := os.Stat(msg.ContentDir); err != nil {
			return fmt.Errorf("site check: content dir: %w", err)
		}

		store, err := content.Load(ctx, content.LoaderConfig{
			FS:            os.DirFS(msg.ContentDir),
			Manifest:      m,
			Parser:        deps.Parser,
			Redirects:     deps.Redirects,
			RenderFailure: deps.RenderFailure,
			Logger:        baseLogger,
		})
		if err != nil {
			return err
		}

		report := CheckReport{
			Entries:   store.Index().Len(),
			Redirects: store.Redirects().Len(),
			Warnings:  m.Lint(),
		}
		for _, path := range store.Index().Paths() {
			if entry, _ := store.Index().Lookup(path); entry.Fallback {
				report.Fallbacks = append(report.Fallbacks, path)
			}
		}
		writeReport(out, report)
		if deps.Report != nil {
			deps.Report(report)
		}

		logging.WithFields(baseLogger, map[string]any{
			"entries":   report.Entries,
			"redirects": report.Redirects,
			"warnings":  len(report.Warnings),
			"fallbacks": len(report.Fallbacks),
		}).Info("site.command.check.completed")

		if msg.Strict && (len(report.Warnings) > 0 || len(report.Fallbacks) > 0) {
			return fmt.Errorf("%w: %d warnings, %d fallbacks", ErrStrictWarnings, len(report.Warnings), len(report.Fallbacks))
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[CheckSiteCommand]{
		commands.WithLogger[CheckSiteCommand](baseLogger),
		commands.WithOperation[CheckSiteCommand](checkOperation),
		commands.WithMessageFields(func(msg CheckSiteCommand) map[string]any {
			fields := map[string]any{
				"manifest":    msg.ManifestPath,
				"content_dir": msg.ContentDir,
			}
			if msg.Strict {
				fields["strict"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[CheckSiteCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &CheckSiteHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[CheckSiteCommand].
func (h *CheckSiteHandler) Execute(ctx context.Context, msg CheckSiteCommand) error {
	return h.inner.Execute(ctx, msg)
}

func writeReport(out io.Writer, report CheckReport) {
	fmt.Fprintf(out, "entries: %d\nredirects: %d\n", report.Entries, report.Redirects)
	for _, path := range report.Fallbacks {
		fmt.Fprintf(out, "fallback: %s\n", path)
	}
	for _, warning := range report.Warnings {
		fmt.Fprintf(out, "warning: %s\n", warning)
	}
}

// PreviewDeps carries the loaded store and its content root.
type PreviewDeps struct {
	Store *content.Store
	FS    fs.FS
	// Out receives the rendered preview. Nil discards it.
	Out io.Writer
}

// PreviewEntryHandler runs PreviewEntryCommand through the shared command handler.
type PreviewEntryHandler struct {
	inner *commands.Handler[PreviewEntryCommand]
}

// NewPreviewEntryHandler creates a handler that prints an entry for the terminal.
func NewPreviewEntryHandler(deps PreviewDeps, logger interfaces.Logger, opts ...commands.HandlerOption[PreviewEntryCommand]) *PreviewEntryHandler {
	baseLogger := logging.Ensure(logger)
	out := deps.Out
	if out == nil {
		out = io.Discard
	}

	exec := func(ctx context.Context, msg PreviewEntryCommand) error {
		if deps.Store == nil || deps.FS == nil {
			return fmt.Errorf("site preview: content store is not loaded")
		}
		ref, ok := deps.Store.Source(msg.Path)
		if !ok {
			return fmt.Errorf("%w: %s", content.ErrNotFound, msg.Path)
		}

		source, err := fs.ReadFile(deps.FS, ref.File)
		if err != nil {
			return &content.ContentReadError{Path: ref.Path, File: ref.File, Offset: -1, Err: err}
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rendered, err := markdown.RenderTerminal(source, markdown.TerminalOptions{
			Style: msg.Style,
			Width: msg.Width,
		})
		if err != nil {
			return &content.RenderError{Path: ref.Path, File: ref.File, Err: err}
		}
		_, err = io.WriteString(out, rendered)
		return err
	}

	handlerOpts := []commands.HandlerOption[PreviewEntryCommand]{
		commands.WithLogger[PreviewEntryCommand](baseLogger),
		commands.WithOperation[PreviewEntryCommand](previewOperation),
		commands.WithMessageFields(func(msg PreviewEntryCommand) map[string]any {
			return map[string]any{"path": msg.Path}
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &PreviewEntryHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[PreviewEntryCommand].
func (h *PreviewEntryHandler) Execute(ctx context.Context, msg PreviewEntryCommand) error {
	return h.inner.Execute(ctx, msg)
}
