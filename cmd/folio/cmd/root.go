package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/goliatone/go-folio"
)

const envPrefix = "FOLIO"

type app struct {
	cfgFile string
	cfg     folio.Config
	v       *viper.Viper
}

// NewRootCommand builds the folio command tree.
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "folio",
		Short: "Serve a personal site from a YAML manifest and Markdown files",
		Long: `folio loads writing entries listed in a YAML manifest, renders their
Markdown once at startup and serves the result, including legacy URLs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.initializeConfig()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is ./folio.yaml)")
	flags.String("manifest", "", "manifest path (content.manifest)")
	flags.String("content-dir", "", "entry source root (content.dir)")
	flags.String("log-level", "", "log level (logging.level)")
	flags.String("log-provider", "", "console, gologger or none (logging.provider)")
	_ = a.v.BindPFlag("content.manifest", flags.Lookup("manifest"))
	_ = a.v.BindPFlag("content.dir", flags.Lookup("content-dir"))
	_ = a.v.BindPFlag("logging.level", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("logging.provider", flags.Lookup("log-provider"))

	root.AddCommand(
		newServeCommand(a),
		newCheckCommand(a),
		newPreviewCommand(a),
	)
	return root
}

func (a *app) initializeConfig() error {
	v := a.v
	setDefaults(v, folio.DefaultConfig())

	if a.cfgFile != "" {
		v.SetConfigFile(a.cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("folio")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || a.cfgFile != "" {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg folio.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}
	a.cfg = cfg
	return nil
}

// setDefaults registers every key so FOLIO_* variables resolve even when no
// config file mentions them.
func setDefaults(v *viper.Viper, cfg folio.Config) {
	v.SetDefault("content.manifest", cfg.Content.ManifestPath)
	v.SetDefault("content.dir", cfg.Content.ContentDir)
	v.SetDefault("content.render_failure", cfg.Content.RenderFailure)

	v.SetDefault("markdown.extensions", cfg.Markdown.Extensions)
	v.SetDefault("markdown.sanitize", cfg.Markdown.Sanitize)
	v.SetDefault("markdown.hard_wraps", cfg.Markdown.HardWraps)
	v.SetDefault("markdown.safe_mode", cfg.Markdown.SafeMode)

	v.SetDefault("redirects", []map[string]string{})

	v.SetDefault("server.addr", cfg.Server.Addr)
	v.SetDefault("server.template_dir", cfg.Server.TemplateDir)
	v.SetDefault("server.static_dir", cfg.Server.StaticDir)
	v.SetDefault("server.read_timeout", cfg.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", cfg.Server.WriteTimeout)
	v.SetDefault("server.shutdown_timeout", cfg.Server.ShutdownTimeout)

	v.SetDefault("logging.provider", cfg.Logging.Provider)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("logging.add_source", cfg.Logging.AddSource)
	v.SetDefault("logging.focus", cfg.Logging.Focus)
}
