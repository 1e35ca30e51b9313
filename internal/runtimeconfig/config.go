package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrManifestPathRequired   = errors.New("folio config: content manifest path is required")
	ErrContentDirRequired     = errors.New("folio config: content directory is required")
	ErrRenderFailureInvalid   = errors.New("folio config: render failure policy must be fallback or fail")
	ErrRedirectInvalid        = errors.New("folio config: redirect requires both from and to")
	ErrServerAddrRequired     = errors.New("folio config: server address is required")
	ErrServerTimeoutInvalid   = errors.New("folio config: server timeouts must be zero or positive")
	ErrLoggingProviderUnknown = errors.New("folio config: logging provider is invalid")
	ErrLoggingLevelInvalid    = errors.New("folio config: logging level is invalid")
	ErrLoggingFormatInvalid   = errors.New("folio config: logging format is invalid")
)

const (
	RenderFailureFallback = "fallback"
	RenderFailureFail     = "fail"
)

// Config aggregates everything needed to load the content store and serve it.
// Field tags let viper decode YAML files and FOLIO_* environment variables.
type Config struct {
	Content   ContentConfig    `mapstructure:"content"`
	Markdown  MarkdownConfig   `mapstructure:"markdown"`
	Redirects []RedirectConfig `mapstructure:"redirects"`
	Server    ServerConfig     `mapstructure:"server"`
	Logging   LoggingConfig    `mapstructure:"logging"`
}

// ContentConfig locates the manifest and the entry sources.
type ContentConfig struct {
	// ManifestPath is the YAML manifest describing writing groups and projects.
	ManifestPath string `mapstructure:"manifest"`
	// ContentDir is the root that entry `file` fields are resolved against.
	ContentDir string `mapstructure:"dir"`
	// RenderFailure selects what happens when an entry fails to render.
	RenderFailure string `mapstructure:"render_failure"`
}

// MarkdownConfig mirrors interfaces.ParseOptions.
type MarkdownConfig struct {
	Extensions []string `mapstructure:"extensions"`
	Sanitize   bool     `mapstructure:"sanitize"`
	HardWraps  bool     `mapstructure:"hard_wraps"`
	SafeMode   bool     `mapstructure:"safe_mode"`
}

// RedirectConfig maps one legacy path onto a canonical entry path.
type RedirectConfig struct {
	From string `mapstructure:"from"`
	To   string `mapstructure:"to"`
}

// ServerConfig configures the HTTP collaborator.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	TemplateDir     string        `mapstructure:"template_dir"`
	StaticDir       string        `mapstructure:"static_dir"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `mapstructure:"provider"`
	Level     string   `mapstructure:"level"`
	Format    string   `mapstructure:"format"`
	AddSource bool     `mapstructure:"add_source"`
	Focus     []string `mapstructure:"focus"`
}

// DefaultConfig returns the layout the original site used: data.yaml next to
// a writing/ directory.
func DefaultConfig() Config {
	return Config{
		Content: ContentConfig{
			ManifestPath:  "data.yaml",
			ContentDir:    "writing",
			RenderFailure: RenderFailureFallback,
		},
		Markdown: MarkdownConfig{
			Extensions: []string{"fenced_code", "footnote"},
		},
		Server: ServerConfig{
			Addr:            ":5000",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs consistency checks before any content is touched.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Content.ManifestPath) == "" {
		return ErrManifestPathRequired
	}
	if strings.TrimSpace(cfg.Content.ContentDir) == "" {
		return ErrContentDirRequired
	}
	switch normalize(cfg.Content.RenderFailure) {
	case "", RenderFailureFallback, RenderFailureFail:
	default:
		return fmt.Errorf("%w: %s", ErrRenderFailureInvalid, cfg.Content.RenderFailure)
	}
	for i, redirect := range cfg.Redirects {
		if strings.TrimSpace(redirect.From) == "" || strings.TrimSpace(redirect.To) == "" {
			return fmt.Errorf("%w: redirects[%d]", ErrRedirectInvalid, i)
		}
	}
	if strings.TrimSpace(cfg.Server.Addr) == "" {
		return ErrServerAddrRequired
	}
	if cfg.Server.ReadTimeout < 0 || cfg.Server.WriteTimeout < 0 || cfg.Server.ShutdownTimeout < 0 {
		return ErrServerTimeoutInvalid
	}

	provider := normalize(cfg.Logging.Provider)
	if !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, cfg.Logging.Provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

// FailOnRender reports whether render errors abort loading.
func (c ContentConfig) FailOnRender() bool {
	return normalize(c.RenderFailure) == RenderFailureFail
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "", "console", "gologger", "none":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch normalize(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch normalize(format) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
