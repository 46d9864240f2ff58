package middleware

import (
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"

	"github.com/navstack-dev/navstack/pkg/host"
)

func TestOpenTelemetryInterceptor_ErrorPropagates(t *testing.T) {
	op := &host.OpInfo{Name: "navigate", Path: "/details"}

	wantErr := errors.New("boom")
	err := OpenTelemetry().Handle(op, func() error { return wantErr })
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected error %v, got %v", wantErr, err)
	}
}

func TestOpenTelemetryInterceptor_FilterSkipsTracing(t *testing.T) {
	op := &host.OpInfo{Name: "restore"}

	extractorCalled := false
	nextCalled := false
	err := OpenTelemetry(
		WithFilter(func(op *host.OpInfo) bool { return op.Name != "restore" }),
		WithAttributeExtractor(func(op *host.OpInfo) []attribute.KeyValue {
			extractorCalled = true
			return nil
		}),
	).Handle(op, func() error {
		nextCalled = true
		return nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !nextCalled {
		t.Fatal("expected next to be called when filter skips tracing")
	}
	if extractorCalled {
		t.Fatal("expected attribute extractor to be skipped when filter skips tracing")
	}
}

func TestOpenTelemetryInterceptor_AttributeExtractorInvoked(t *testing.T) {
	op := &host.OpInfo{Name: "pop", Path: "/details"}

	extractorCalled := false
	err := OpenTelemetry(
		WithTracerName("navstack-test"),
		WithAttributeExtractor(func(op *host.OpInfo) []attribute.KeyValue {
			extractorCalled = true
			return []attribute.KeyValue{attribute.String("test.attr", "ok")}
		}),
	).Handle(op, func() error { return nil })

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !extractorCalled {
		t.Fatal("expected attribute extractor to be invoked")
	}
}
