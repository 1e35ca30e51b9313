package folio_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goliatone/go-folio"
)

func testConfig() folio.Config {
	cfg := folio.DefaultConfig()
	cfg.Content.ManifestPath = "testdata/data.yaml"
	cfg.Content.ContentDir = "testdata/writing"
	cfg.Logging.Provider = "none"
	return cfg
}

func TestNewLoadsSite(t *testing.T) {
	module, err := folio.New(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for _, r := range folio.DefaultRedirects() {
		legacy, ok := module.Entry(r.From)
		if !ok {
			t.Fatalf("legacy path %s not reachable", r.From)
		}
		canonical, ok := module.Entry(r.To)
		if !ok || canonical != legacy {
			t.Fatalf("legacy path %s should resolve to the same entry as %s", r.From, r.To)
		}
	}

	entry, ok := module.Entry("writing/2012/thoughts-on-23andme")
	if !ok {
		t.Fatal("expected canonical entry")
	}
	if entry.Summary != "A look at the results page." || entry.Date != "June 4, 2012" {
		t.Fatalf("unexpected entry %#v", entry)
	}

	if _, ok := module.Entry("writing/1999/does-not-exist"); ok {
		t.Fatal("expected miss")
	}

	home := module.Homepage()
	if len(home.Writing) != 2 || len(home.Projects) != 1 {
		t.Fatalf("unexpected homepage %#v", home)
	}
}

func TestModuleHandler(t *testing.T) {
	module, err := folio.New(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	handler, err := module.Handler()
	if err != nil {
		t.Fatalf("Handler: %v", err)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/post/43079165761/backpack-io-direct-multipart-uploads-to-s3-in-rails", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `class="language-ruby"`) {
		t.Fatalf("unexpected legacy response %d: %s", rec.Code, rec.Body.String())
	}
}

func TestNewRejectsDanglingRedirect(t *testing.T) {
	cfg := testConfig()
	cfg.Redirects = []folio.RedirectConfig{{From: "/post/1/old", To: "writing/2011/missing"}}

	_, err := folio.New(context.Background(), cfg)
	var dangling *folio.DanglingRedirectError
	if !errors.As(err, &dangling) {
		t.Fatalf("expected DanglingRedirectError, got %v", err)
	}
}

func TestNewRejectsMissingContentDir(t *testing.T) {
	cfg := testConfig()
	cfg.Content.ContentDir = "testdata/nope"

	if _, err := folio.New(context.Background(), cfg); err == nil {
		t.Fatal("expected error for missing content dir")
	}
}

func TestPreview(t *testing.T) {
	module, err := folio.New(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var out bytes.Buffer
	if err := module.Preview(context.Background(), "/post/24314393831/your-results-are-ready-23andme", "notty", 60, &out); err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if !strings.Contains(out.String(), "Your results are ready") {
		t.Fatalf("unexpected preview %q", out.String())
	}
}

func TestCheck(t *testing.T) {
	var out bytes.Buffer
	if err := folio.Check(context.Background(), testConfig(), true, &out); err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !strings.Contains(out.String(), "entries: 3") || !strings.Contains(out.String(), "redirects: 3") {
		t.Fatalf("unexpected report %q", out.String())
	}
}

func TestNewWithInjectedProvider(t *testing.T) {
	cfg := testConfig()
	cfg.Logging.Provider = "console"
	var logs bytes.Buffer

	if _, err := folio.New(context.Background(), cfg, folio.WithLogWriter(&logs)); err != nil {
		t.Fatalf("New: %v", err)
	}
	if !strings.Contains(logs.String(), "content.load.complete") {
		t.Fatalf("expected console log output, got %q", logs.String())
	}
}
