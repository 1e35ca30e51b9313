// Package folio loads a personal site's writing from a YAML manifest and
// Markdown files, and serves it over HTTP.
package folio

import (
	"context"
	"io"
	"net/http"

	"github.com/goliatone/go-folio/internal/content"
	"github.com/goliatone/go-folio/internal/di"
	"github.com/goliatone/go-folio/internal/manifest"
)

// RenderedEntry exports the rendered entry value.
type RenderedEntry = content.RenderedEntry

// HomepageData exports the homepage view model.
type HomepageData = content.HomepageData

// Redirect exports a legacy path mapping.
type Redirect = content.Redirect

// Store exports the loaded content store.
type Store = content.Store

// Manifest exports the parsed manifest.
type Manifest = manifest.Manifest

// Error types surfaced by New.
type (
	ManifestParseError     = manifest.ParseError
	ContentReadError       = content.ContentReadError
	RenderError            = content.RenderError
	DanglingRedirectError  = content.DanglingRedirectError
	DuplicateRedirectError = content.DuplicateRedirectError
	DuplicatePathError     = content.DuplicatePathError
	InvalidRedirectError   = content.InvalidRedirectError
)

var ErrNotFound = content.ErrNotFound

// DefaultRedirects returns the built-in legacy path table.
func DefaultRedirects() []Redirect {
	return content.DefaultRedirects()
}

// Option customises the container built by New and Check.
type Option = di.Option

var (
	WithLoggerProvider = di.WithLoggerProvider
	WithLogWriter      = di.WithLogWriter
	WithParser         = di.WithParser
	WithContentFS      = di.WithContentFS
	WithManifest       = di.WithManifest
)

// Module is the site runtime: loaded content plus its HTTP surface.
type Module struct {
	container *di.Container
}

// New validates cfg, loads every entry and checks the redirect table. The
// returned module is immutable and safe for concurrent use.
func New(ctx context.Context, cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	if err := container.Load(ctx); err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Store returns the loaded content.
func (m *Module) Store() *Store {
	return m.container.Store()
}

// Homepage is shorthand for Store().Homepage().
func (m *Module) Homepage() HomepageData {
	return m.container.Store().Homepage()
}

// Entry resolves a canonical or legacy path.
func (m *Module) Entry(path string) (RenderedEntry, bool) {
	return m.container.Store().Entry(path)
}

// Handler returns the site's HTTP handler.
func (m *Module) Handler() (http.Handler, error) {
	return m.container.Site().Handler()
}

// Serve runs the HTTP server until ctx is cancelled.
func (m *Module) Serve(ctx context.Context) error {
	srv, err := m.container.Server()
	if err != nil {
		return err
	}
	return srv.Run(ctx)
}

// Preview writes an entry rendered for the terminal to out.
func (m *Module) Preview(ctx context.Context, path, style string, width int, out io.Writer) error {
	return m.container.PreviewEntryHandler(out).Execute(ctx, previewCommand(path, style, width))
}
