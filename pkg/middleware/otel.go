package middleware

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/vxml/internal/errors"
	"github.com/vango-dev/vxml/pkg/vdom"
)

const (
	defaultTracerName = "vxml"

	// SpanName is the name of the span wrapping each render.
	SpanName = "vxml.render"
)

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "vxml").
	TracerName string

	// TracerProvider supplies the tracer.
	// Default: the global provider from otel.GetTracerProvider.
	TracerProvider trace.TracerProvider

	// AttributeExtractor adds custom attributes for a tree.
	AttributeExtractor func(node *vdom.Node) []attribute.KeyValue
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.TracerProvider = tp
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(node *vdom.Node) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

func defaultOTelConfig() OTelConfig {
	return OTelConfig{
		TracerName: defaultTracerName,
	}
}

// OpenTelemetry creates middleware that traces every render.
//
// The span records the root tag and, on success, the node count and output
// size. Failures are recorded on the span along with their error code.
//
// The tracer comes from the global provider unless WithTracerProvider is
// given. Configure it in main() before rendering:
//
//	otel.SetTracerProvider(tp)
func OpenTelemetry(opts ...OTelOption) Middleware {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}
	tp := config.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	tracer := tp.Tracer(config.TracerName)

	return func(next RenderFunc) RenderFunc {
		return func(ctx context.Context, node *vdom.Node) (string, error) {
			attrs := []attribute.KeyValue{
				attribute.String("vxml.root_tag", rootTag(node)),
			}
			if config.AttributeExtractor != nil {
				attrs = append(attrs, config.AttributeExtractor(node)...)
			}

			ctx, span := tracer.Start(ctx, SpanName,
				trace.WithSpanKind(trace.SpanKindInternal),
				trace.WithAttributes(attrs...),
			)
			defer span.End()

			out, err := next(ctx, node)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				if code := errors.CodeOf(err); code != "" {
					span.SetAttributes(attribute.String("vxml.error_code", code))
				}
				return out, err
			}

			span.SetAttributes(
				attribute.Int("vxml.node_count", vdom.Count(node)),
				attribute.Int("vxml.output_bytes", len(out)),
			)
			span.SetStatus(codes.Ok, "")
			return out, nil
		}
	}
}
