package middleware

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/navstack-dev/navstack/pkg/host"
)

// Default tracer name for navstack applications.
const defaultTracerName = "navstack"

// OTelConfig configures the OpenTelemetry interceptor.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "navstack").
	TracerName string

	// Filter determines which operations to trace.
	// Return true to trace the operation, false to skip.
	// If nil, all operations are traced.
	Filter func(op *host.OpInfo) bool

	// AttributeExtractor extracts custom attributes per operation.
	AttributeExtractor func(op *host.OpInfo) []attribute.KeyValue

	// tracer is the resolved tracer instance.
	tracer trace.Tracer
}

// OTelOption configures the OpenTelemetry interceptor.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithFilter sets a filter function for operations.
func WithFilter(filter func(op *host.OpInfo) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(op *host.OpInfo) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

// defaultOTelConfig returns the default OpenTelemetry configuration.
func defaultOTelConfig() OTelConfig {
	return OTelConfig{
		TracerName: defaultTracerName,
	}
}

// OpenTelemetry creates an interceptor that traces every navigation
// operation.
//
// The interceptor creates a span per operation with the operation name,
// target path, and resulting stack depth, records errors, and sets the
// span status.
//
// The tracer uses the global OpenTelemetry tracer provider. Configure it in
// your main() before serving:
//
//	tp := sdktrace.NewTracerProvider(
//	    sdktrace.WithBatcher(exporter),
//	)
//	otel.SetTracerProvider(tp)
func OpenTelemetry(opts ...OTelOption) host.Interceptor {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}

	config.tracer = otel.Tracer(config.TracerName)

	return host.InterceptorFunc(func(op *host.OpInfo, next func() error) error {
		if config.Filter != nil && !config.Filter(op) {
			return next()
		}

		attrs := []attribute.KeyValue{
			attribute.String("nav.op", op.Name),
		}
		if op.Path != "" {
			attrs = append(attrs, attribute.String("nav.path", op.Path))
		}
		if config.AttributeExtractor != nil {
			attrs = append(attrs, config.AttributeExtractor(op)...)
		}

		_, span := config.tracer.Start(
			context.Background(),
			"navstack."+op.Name,
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(attrs...),
			trace.WithTimestamp(time.Now()),
		)
		defer span.End()

		err := next()

		span.SetAttributes(attribute.Int("nav.depth", op.Depth))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		return err
	})
}
