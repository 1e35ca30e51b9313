package logging

import (
	"context"
	"testing"

	"github.com/goliatone/go-folio/pkg/interfaces"
)

type recordingLogger struct {
	fields   []map[string]any
	contexts []context.Context
}

func (r *recordingLogger) Trace(string, ...any) {}
func (r *recordingLogger) Debug(string, ...any) {}
func (r *recordingLogger) Info(string, ...any)  {}
func (r *recordingLogger) Warn(string, ...any)  {}
func (r *recordingLogger) Error(string, ...any) {}
func (r *recordingLogger) Fatal(string, ...any) {}

func (r *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	r.fields = append(r.fields, copied)
	return r
}

func (r *recordingLogger) WithContext(ctx context.Context) interfaces.Logger {
	r.contexts = append(r.contexts, ctx)
	return r
}

type stubProvider struct {
	requested []string
	logger    interfaces.Logger
}

func (s *stubProvider) GetLogger(name string) interfaces.Logger {
	s.requested = append(s.requested, name)
	return s.logger
}

func TestModuleLoggerFallsBackToNoOp(t *testing.T) {
	logger := ModuleLogger(nil, "folio.test")
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("expected noopLogger fallback, got %T", logger)
	}
	logger = logger.WithContext(context.Background())
	logger.Debug("noop")
}

func TestModuleLoggerUsesProviderAndAnnotatesFields(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	_ = ContentLogger(provider)

	if len(provider.requested) != 1 || provider.requested[0] != contentModule {
		t.Fatalf("expected module %s, got %v", contentModule, provider.requested)
	}
	if len(rec.fields) != 1 || rec.fields[0]["module"] != contentModule {
		t.Fatalf("expected module field %s, got %v", contentModule, rec.fields)
	}
}

func TestModuleLoggerDefaultsToRootModule(t *testing.T) {
	provider := &stubProvider{logger: &recordingLogger{}}

	_ = ModuleLogger(provider, "")

	if len(provider.requested) != 1 || provider.requested[0] != rootModule {
		t.Fatalf("expected default module %s, got %v", rootModule, provider.requested)
	}
}

func TestWithEntryContextSkipsEmptyValues(t *testing.T) {
	rec := &recordingLogger{}

	WithEntryContext(rec, "writing/2012/thoughts-on-23andme", "  ")

	if len(rec.fields) != 1 {
		t.Fatalf("expected one WithFields call, got %d", len(rec.fields))
	}
	if rec.fields[0][fieldEntryPath] != "writing/2012/thoughts-on-23andme" {
		t.Fatalf("entry path not attached: %v", rec.fields[0])
	}
	if _, ok := rec.fields[0][fieldEntryFile]; ok {
		t.Fatalf("blank file should be skipped: %v", rec.fields[0])
	}
}

func TestContextWithRequestIDMergesFields(t *testing.T) {
	ctx := ContextWithFields(context.Background(), map[string]any{"route": "entry"})
	ctx = ContextWithRequestID(ctx, "req-1")

	fields := ContextFields(ctx)
	if fields["route"] != "entry" || fields[fieldRequestID] != "req-1" {
		t.Fatalf("unexpected context fields: %v", fields)
	}

	fields["route"] = "mutated"
	if ContextFields(ctx)["route"] != "entry" {
		t.Fatalf("ContextFields must return a copy")
	}
}
