package folio

import "github.com/goliatone/go-folio/internal/runtimeconfig"

var (
	ErrManifestPathRequired   = runtimeconfig.ErrManifestPathRequired
	ErrContentDirRequired     = runtimeconfig.ErrContentDirRequired
	ErrRenderFailureInvalid   = runtimeconfig.ErrRenderFailureInvalid
	ErrRedirectInvalid        = runtimeconfig.ErrRedirectInvalid
	ErrServerAddrRequired     = runtimeconfig.ErrServerAddrRequired
	ErrServerTimeoutInvalid   = runtimeconfig.ErrServerTimeoutInvalid
	ErrLoggingProviderUnknown = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid    = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid   = runtimeconfig.ErrLoggingFormatInvalid
)

const (
	RenderFailureFallback = runtimeconfig.RenderFailureFallback
	RenderFailureFail     = runtimeconfig.RenderFailureFail
)

type (
	Config         = runtimeconfig.Config
	ContentConfig  = runtimeconfig.ContentConfig
	MarkdownConfig = runtimeconfig.MarkdownConfig
	RedirectConfig = runtimeconfig.RedirectConfig
	ServerConfig   = runtimeconfig.ServerConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
