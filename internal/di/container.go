package di

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-folio/internal/commands"
	sitecmd "github.com/goliatone/go-folio/internal/commands/site"
	"github.com/goliatone/go-folio/internal/content"
	sitehttp "github.com/goliatone/go-folio/internal/http"
	"github.com/goliatone/go-folio/internal/logging"
	"github.com/goliatone/go-folio/internal/logging/console"
	"github.com/goliatone/go-folio/internal/logging/gologger"
	"github.com/goliatone/go-folio/internal/manifest"
	"github.com/goliatone/go-folio/internal/markdown"
	"github.com/goliatone/go-folio/internal/runtimeconfig"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

const configInvalidCode = "CONFIG_INVALID"

// Container wires the site runtime from configuration. Construction is cheap;
// Load reads the manifest and renders every entry.
type Container struct {
	cfg runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	logWriter      io.Writer
	parser         interfaces.MarkdownParser
	contentFS      fs.FS
	manifest       *manifest.Manifest
	redirects      []content.Redirect

	store *content.Store
	site  *sitehttp.Site
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider selected by Logging.Provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithLogWriter sends console provider output to w instead of stderr.
func WithLogWriter(w io.Writer) Option {
	return func(c *Container) {
		if w != nil {
			c.logWriter = w
		}
	}
}

// WithParser replaces the goldmark parser built from Markdown config.
func WithParser(parser interfaces.MarkdownParser) Option {
	return func(c *Container) {
		if parser != nil {
			c.parser = parser
		}
	}
}

// WithContentFS serves entry files from fsys instead of Content.ContentDir.
func WithContentFS(fsys fs.FS) Option {
	return func(c *Container) {
		if fsys != nil {
			c.contentFS = fsys
		}
	}
}

// WithManifest skips reading Content.ManifestPath.
func WithManifest(m *manifest.Manifest) Option {
	return func(c *Container) {
		if m != nil {
			c.manifest = m
		}
	}
}

// NewContainer validates cfg and builds the logger, parser and redirect table.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, err.Error()).
			WithTextCode(configInvalidCode)
	}

	c := &Container{cfg: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	c.configureParser()
	c.configureRedirects()
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil {
		return nil
	}

	logCfg := c.cfg.Logging
	switch strings.ToLower(strings.TrimSpace(logCfg.Provider)) {
	case "none":
		c.loggerProvider = nil
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     logCfg.Level,
			Format:    logCfg.Format,
			AddSource: logCfg.AddSource,
			Focus:     logCfg.Focus,
		})
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryValidation, err.Error()).
				WithTextCode(configInvalidCode)
		}
		c.loggerProvider = provider
	default:
		level, _ := console.ParseLevel(logCfg.Level)
		writer := c.logWriter
		if writer == nil {
			writer = os.Stderr
		}
		c.loggerProvider = console.NewProvider(console.Options{
			Writer:   writer,
			MinLevel: &level,
		})
	}
	return nil
}

func (c *Container) configureParser() {
	logger := logging.MarkdownLogger(c.loggerProvider)
	for _, name := range c.cfg.Markdown.Extensions {
		if !markdown.KnownExtension(name) {
			logger.Warn("markdown.extension.unknown", "extension", name)
		}
	}
	if c.parser != nil {
		return
	}
	c.parser = markdown.NewGoldmarkParser(interfaces.ParseOptions{
		Extensions: c.cfg.Markdown.Extensions,
		Sanitize:   c.cfg.Markdown.Sanitize,
		HardWraps:  c.cfg.Markdown.HardWraps,
		SafeMode:   c.cfg.Markdown.SafeMode,
	})
}

func (c *Container) configureRedirects() {
	if len(c.cfg.Redirects) == 0 {
		c.redirects = content.DefaultRedirects()
		return
	}
	c.redirects = make([]content.Redirect, 0, len(c.cfg.Redirects))
	for _, r := range c.cfg.Redirects {
		c.redirects = append(c.redirects, content.Redirect{
			From: strings.TrimSpace(r.From),
			To:   strings.TrimSpace(r.To),
		})
	}
}

// Load reads the manifest, renders every entry, validates the redirect table
// and prepares the HTTP site. It runs once; later calls are no-ops.
func (c *Container) Load(ctx context.Context) error {
	if c.store != nil {
		return nil
	}
	logger := logging.ContentLogger(c.loggerProvider)

	m := c.manifest
	if m == nil {
		loaded, err := manifest.LoadFile(c.cfg.Content.ManifestPath)
		if err != nil {
			logger.Error("content.manifest.invalid", "error", err)
			return commands.WrapSiteError(err)
		}
		m = loaded
	}
	for _, warning := range m.Lint() {
		logger.Warn("content.manifest.lint", "path", warning.Path, "warning", warning.Message)
	}

	fsys := c.contentFS
	if fsys == nil {
		dir := c.cfg.Content.ContentDir
		if _, err := os.Stat(dir); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryValidation, fmt.Sprintf("content dir %s: %v", dir, err)).
				WithTextCode(configInvalidCode)
		}
		fsys = os.DirFS(dir)
	}

	policy := content.RenderFallback
	if c.cfg.Content.FailOnRender() {
		policy = content.RenderFail
	}

	store, err := content.Load(ctx, content.LoaderConfig{
		FS:            fsys,
		Manifest:      m,
		Parser:        c.parser,
		Redirects:     c.redirects,
		RenderFailure: policy,
		Logger:        logger,
	})
	if err != nil {
		return commands.WrapSiteError(err)
	}

	site, err := sitehttp.NewSite(store,
		sitehttp.WithTemplateDir(c.cfg.Server.TemplateDir),
		sitehttp.WithStaticDir(c.cfg.Server.StaticDir),
		sitehttp.WithLogger(logging.HTTPLogger(c.loggerProvider)),
	)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, err.Error()).
			WithTextCode(configInvalidCode)
	}
	if _, err := site.Handler(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, err.Error()).
			WithTextCode(commands.RedirectsInvalidCode)
	}

	c.manifest = m
	c.contentFS = fsys
	c.store = store
	c.site = site
	return nil
}

// Config returns the validated configuration.
func (c *Container) Config() runtimeconfig.Config { return c.cfg }

// LoggerProvider returns the configured provider, nil when logging is off.
func (c *Container) LoggerProvider() interfaces.LoggerProvider { return c.loggerProvider }

// Logger returns the root module logger.
func (c *Container) Logger() interfaces.Logger {
	return logging.ModuleLogger(c.loggerProvider, "")
}

func (c *Container) Parser() interfaces.MarkdownParser { return c.parser }

func (c *Container) Redirects() []content.Redirect {
	return append([]content.Redirect(nil), c.redirects...)
}

// Store returns the loaded content, or nil before Load.
func (c *Container) Store() *content.Store { return c.store }

// Site returns the HTTP site, or nil before Load.
func (c *Container) Site() *sitehttp.Site { return c.site }

// Server builds an HTTP server for the loaded site.
func (c *Container) Server() (*sitehttp.Server, error) {
	if c.site == nil {
		return nil, fmt.Errorf("di: content not loaded")
	}
	handler, err := c.site.Handler()
	if err != nil {
		return nil, err
	}
	return sitehttp.NewServer(sitehttp.ServerConfig{
		Addr:            c.cfg.Server.Addr,
		ReadTimeout:     c.cfg.Server.ReadTimeout,
		WriteTimeout:    c.cfg.Server.WriteTimeout,
		ShutdownTimeout: c.cfg.Server.ShutdownTimeout,
	}, handler, logging.HTTPLogger(c.loggerProvider)), nil
}

// CheckSiteHandler returns the check command bound to this configuration.
// It loads content on its own and does not need Load.
func (c *Container) CheckSiteHandler(out io.Writer) *sitecmd.CheckSiteHandler {
	policy := content.RenderFallback
	if c.cfg.Content.FailOnRender() {
		policy = content.RenderFail
	}
	return sitecmd.NewCheckSiteHandler(sitecmd.CheckDeps{
		Parser:        c.parser,
		Redirects:     c.redirects,
		RenderFailure: policy,
		Out:           out,
	}, commands.CommandLogger(c.loggerProvider, "site"))
}

// PreviewEntryHandler returns the preview command. Load must run first.
func (c *Container) PreviewEntryHandler(out io.Writer) *sitecmd.PreviewEntryHandler {
	return sitecmd.NewPreviewEntryHandler(sitecmd.PreviewDeps{
		Store: c.store,
		FS:    c.contentFS,
		Out:   out,
	}, commands.CommandLogger(c.loggerProvider, "site"))
}
