// Package logging includes tests for the zap logger helpers.
package logging

import (
	"context"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// TestNewDevelopmentLogger confirms the development logger builds and logs.
func TestNewDevelopmentLogger(t *testing.T) {
	t.Parallel()

	logger, err := New(true, "fxbilibili")
	if err != nil {
		t.Fatalf("New(true) error = %v", err)
	}
	if logger == nil {
		t.Fatal("expected logger to be non-nil")
	}
	defer logger.Sync() //nolint:errcheck // best-effort flush
	logger.Info("development logger ready")
}

// TestNewProductionLogger ensures the production logger configuration succeeds.
func TestNewProductionLogger(t *testing.T) {
	t.Parallel()

	logger, err := New(false, "")
	if err != nil {
		t.Fatalf("New(false) error = %v", err)
	}
	if logger == nil {
		t.Fatal("expected logger to be non-nil")
	}
	defer logger.Sync() //nolint:errcheck // best-effort flush
	logger.Info("production logger ready")
}

// TestWithTraceAddsSpanIDs checks log lines carry the active span's ids.
func TestWithTraceAddsSpanIDs(t *testing.T) {
	t.Parallel()

	tp := sdktrace.NewTracerProvider()
	defer tp.Shutdown(context.Background()) //nolint:errcheck // nothing exported
	ctx, span := tp.Tracer("test").Start(context.Background(), "request")
	defer span.End()

	core, logs := observer.New(zap.InfoLevel)
	WithTrace(ctx, zap.New(core)).Info("traced")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if got := fields["trace_id"]; got != span.SpanContext().TraceID().String() {
		t.Fatalf("trace_id = %v, want %s", got, span.SpanContext().TraceID())
	}
	if got := fields["span_id"]; got != span.SpanContext().SpanID().String() {
		t.Fatalf("span_id = %v, want %s", got, span.SpanContext().SpanID())
	}
}

// TestWithTraceWithoutSpan leaves the logger untouched.
func TestWithTraceWithoutSpan(t *testing.T) {
	t.Parallel()

	logger := zap.NewNop()
	if got := WithTrace(context.Background(), logger); got != logger {
		t.Fatal("expected the same logger when no span is active")
	}
	if fields := TraceFields(context.Background()); fields != nil {
		t.Fatalf("expected no fields, got %v", fields)
	}
}
