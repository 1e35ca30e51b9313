package runtimeconfig_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-folio/internal/runtimeconfig"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := runtimeconfig.DefaultConfig().Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestConfigValidate_RequiresContentLocations(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Content.ManifestPath = " "
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrManifestPathRequired) {
		t.Fatalf("expected ErrManifestPathRequired, got %v", err)
	}

	cfg = runtimeconfig.DefaultConfig()
	cfg.Content.ContentDir = ""
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrContentDirRequired) {
		t.Fatalf("expected ErrContentDirRequired, got %v", err)
	}
}

func TestConfigValidate_RejectsUnknownRenderFailurePolicy(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Content.RenderFailure = "ignore"

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrRenderFailureInvalid) {
		t.Fatalf("expected ErrRenderFailureInvalid, got %v", err)
	}
}

func TestConfigValidate_RejectsIncompleteRedirect(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Redirects = []runtimeconfig.RedirectConfig{{From: "/post/1/x", To: ""}}

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrRedirectInvalid) {
		t.Fatalf("expected ErrRedirectInvalid, got %v", err)
	}
}

func TestConfigValidate_RejectsNegativeTimeouts(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Server.ShutdownTimeout = -1

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrServerTimeoutInvalid) {
		t.Fatalf("expected ErrServerTimeoutInvalid, got %v", err)
	}
}

func TestConfigValidate_Logging(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Provider = "syslog"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}

	cfg = runtimeconfig.DefaultConfig()
	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingLevelInvalid) {
		t.Fatalf("expected ErrLoggingLevelInvalid, got %v", err)
	}

	cfg = runtimeconfig.DefaultConfig()
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}
}

func TestFailOnRender(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	if cfg.Content.FailOnRender() {
		t.Fatalf("default policy should be fallback")
	}
	cfg.Content.RenderFailure = " FAIL "
	if !cfg.Content.FailOnRender() {
		t.Fatalf("expected fail policy to be recognised")
	}
}
