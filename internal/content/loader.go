package content

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io/fs"
	"path"
	"unicode/utf8"

	"github.com/goliatone/go-folio/internal/logging"
	"github.com/goliatone/go-folio/internal/manifest"
	"github.com/goliatone/go-folio/internal/markdown"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

// RenderFailurePolicy decides what Load does with an entry whose Markdown
// cannot be rendered.
type RenderFailurePolicy string

const (
	// RenderFallback stores the entry with escaped source text and logs a warning.
	RenderFallback RenderFailurePolicy = "fallback"
	// RenderFail aborts Load with a *RenderError.
	RenderFail RenderFailurePolicy = "fail"
)

var ErrManifestRequired = errors.New("content: manifest is required")

// LoaderConfig carries everything Load needs. FS is the content root; entry
// file names are resolved against it.
type LoaderConfig struct {
	FS            fs.FS
	Manifest      *manifest.Manifest
	Parser        interfaces.MarkdownParser
	Redirects     []Redirect
	RenderFailure RenderFailurePolicy
	Logger        interfaces.Logger
}

// Load reads and renders every manifest entry, builds the index and checks
// the redirect table against it. It runs once, before any request is served.
func Load(ctx context.Context, cfg LoaderConfig) (*Store, error) {
	if cfg.Manifest == nil {
		return nil, ErrManifestRequired
	}
	if cfg.FS == nil {
		return nil, fmt.Errorf("content: content root is required")
	}

	parser := cfg.Parser
	if parser == nil {
		parser = markdown.NewGoldmarkParser(interfaces.ParseOptions{})
	}
	logger := logging.Ensure(cfg.Logger)

	redirects, err := NewRedirects(cfg.Redirects)
	if err != nil {
		return nil, err
	}

	idx := newIndex(cfg.Manifest.Entries())
	fallbacks := 0
	for _, group := range cfg.Manifest.Writing {
		for _, ref := range group.Entries {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			entryLogger := logging.WithEntryContext(logger, ref.Path, ref.File)
			entry, err := loadEntry(cfg.FS, parser, group.Year, ref)
			if err != nil {
				var renderErr *RenderError
				if !errors.As(err, &renderErr) || cfg.RenderFailure == RenderFail {
					entryLogger.Error("content.load.failed", "error", err)
					return nil, err
				}
				entryLogger.Warn("content.render.fallback", "error", renderErr.Err)
				fallbacks++
			}

			if held, ok := idx.put(entry, ref.File); !ok {
				err := &DuplicatePathError{Path: ref.Path, Files: []string{held, ref.File}}
				entryLogger.Error("content.load.failed", "error", err)
				return nil, err
			}
			entryLogger.Debug("content.load.entry", "fallback", entry.Fallback)
		}
	}

	if err := redirects.Validate(idx); err != nil {
		logger.Error("content.redirects.invalid", "error", err)
		return nil, err
	}

	logger.Info("content.load.complete",
		"entries", idx.Len(),
		"redirects", redirects.Len(),
		"fallbacks", fallbacks,
	)

	return &Store{
		manifest:  cfg.Manifest,
		index:     idx,
		redirects: redirects,
	}, nil
}

// loadEntry returns a *ContentReadError when the source is unusable. On a
// *RenderError the returned entry already carries fallback text.
func loadEntry(fsys fs.FS, parser interfaces.MarkdownParser, year manifest.Year, ref manifest.WritingEntryRef) (RenderedEntry, error) {
	entry := RenderedEntry{
		Title: ref.Title,
		Date:  ref.Date,
		Path:  ref.Path,
		Slug:  ref.URL,
		Year:  year.String(),
	}

	source, err := readSource(fsys, ref)
	if err != nil {
		return RenderedEntry{}, err
	}

	meta, body := markdown.ParseFrontMatter(source)
	entry.Summary = meta.Summary

	rendered, err := parser.Parse(body)
	if err != nil {
		entry.Text = fallbackText(body)
		entry.Fallback = true
		return entry, &RenderError{Path: ref.Path, File: ref.File, Err: err}
	}
	entry.Text = string(rendered)
	return entry, nil
}

func readSource(fsys fs.FS, ref manifest.WritingEntryRef) ([]byte, error) {
	name := path.Clean(ref.File)
	if !fs.ValidPath(name) {
		return nil, &ContentReadError{Path: ref.Path, File: ref.File, Offset: -1, Err: fs.ErrInvalid}
	}

	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, &ContentReadError{Path: ref.Path, File: ref.File, Offset: -1, Err: err}
	}
	if offset := invalidUTF8Offset(data); offset >= 0 {
		return nil, &ContentReadError{Path: ref.Path, File: ref.File, Offset: offset, Err: errInvalidUTF8}
	}
	return data, nil
}

// invalidUTF8Offset returns the byte offset of the first invalid sequence, or
// -1 when data is valid UTF-8.
func invalidUTF8Offset(data []byte) int {
	if utf8.Valid(data) {
		return -1
	}
	for offset := 0; offset < len(data); {
		r, size := utf8.DecodeRune(data[offset:])
		if r == utf8.RuneError && size <= 1 {
			return offset
		}
		offset += size
	}
	return -1
}

func fallbackText(source []byte) string {
	return "<pre>" + html.EscapeString(string(source)) + "</pre>"
}
