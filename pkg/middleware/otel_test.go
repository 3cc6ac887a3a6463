package middleware

import (
	"context"
	"sync"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/embedded"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/vango-dev/vxml/pkg/render"
	"github.com/vango-dev/vxml/pkg/vdom"
)

// recordingProvider is a TracerProvider that keeps every span it starts.
type recordingProvider struct {
	embedded.TracerProvider

	mu      sync.Mutex
	tracers []string
	spans   []*recordedSpan
}

func (p *recordingProvider) Tracer(name string, _ ...trace.TracerOption) trace.Tracer {
	p.mu.Lock()
	p.tracers = append(p.tracers, name)
	p.mu.Unlock()
	return recordingTracer{p: p}
}

type recordingTracer struct {
	embedded.Tracer
	p *recordingProvider
}

func (t recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	cfg := trace.NewSpanStartConfig(opts...)
	s := &recordedSpan{
		name:  name,
		kind:  cfg.SpanKind(),
		attrs: map[attribute.Key]attribute.Value{},
	}
	for _, kv := range cfg.Attributes() {
		s.attrs[kv.Key] = kv.Value
	}

	t.p.mu.Lock()
	t.p.spans = append(t.p.spans, s)
	t.p.mu.Unlock()
	return trace.ContextWithSpan(ctx, s), s
}

type recordedSpan struct {
	noop.Span

	name   string
	kind   trace.SpanKind
	attrs  map[attribute.Key]attribute.Value
	status codes.Code
	errs   []error
	ended  bool
}

func (s *recordedSpan) SetAttributes(kv ...attribute.KeyValue) {
	for _, a := range kv {
		s.attrs[a.Key] = a.Value
	}
}

func (s *recordedSpan) SetStatus(code codes.Code, _ string) { s.status = code }

func (s *recordedSpan) RecordError(err error, _ ...trace.EventOption) { s.errs = append(s.errs, err) }

func (s *recordedSpan) End(...trace.SpanEndOption) { s.ended = true }

func TestOpenTelemetryConfig(t *testing.T) {
	config := defaultOTelConfig()
	if config.TracerName != "vxml" {
		t.Errorf("TracerName = %q, want vxml", config.TracerName)
	}

	tp := &recordingProvider{}
	WithTracerName("custom")(&config)
	WithTracerProvider(tp)(&config)
	if config.TracerName != "custom" || config.TracerProvider != tp {
		t.Errorf("options not applied: %+v", config)
	}
}

func TestOpenTelemetrySuccessSpan(t *testing.T) {
	tp := &recordingProvider{}
	mw := OpenTelemetry(
		WithTracerProvider(tp),
		WithTracerName("vxml-test"),
		WithAttributeExtractor(func(*vdom.Node) []attribute.KeyValue {
			return []attribute.KeyValue{attribute.String("test.attr", "ok")}
		}),
	)

	var inner trace.Span
	next := func(ctx context.Context, node *vdom.Node) (string, error) {
		inner = trace.SpanFromContext(ctx)
		return render.Render(node)
	}

	tree := vdom.E("asdf", vdom.Attrs{vdom.Str("f", "asdf")}, vdom.Text("test"))
	out, err := mw(next)(context.Background(), tree)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(tp.tracers) != 1 || tp.tracers[0] != "vxml-test" {
		t.Errorf("tracers = %v, want [vxml-test]", tp.tracers)
	}
	if len(tp.spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(tp.spans))
	}
	span := tp.spans[0]
	if inner != trace.Span(span) {
		t.Error("next should receive a context carrying the render span")
	}
	if span.name != SpanName || span.kind != trace.SpanKindInternal {
		t.Errorf("span = %q (%v)", span.name, span.kind)
	}
	if !span.ended || span.status != codes.Ok {
		t.Errorf("ended = %v, status = %v", span.ended, span.status)
	}

	wantAttrs := map[attribute.Key]attribute.Value{
		"vxml.root_tag":     attribute.StringValue("asdf"),
		"vxml.node_count":   attribute.IntValue(2),
		"vxml.output_bytes": attribute.IntValue(len(out)),
		"test.attr":         attribute.StringValue("ok"),
	}
	for k, want := range wantAttrs {
		if got := span.attrs[k]; got != want {
			t.Errorf("attr %s = %v, want %v", k, got.Emit(), want.Emit())
		}
	}
}

func TestOpenTelemetryErrorSpan(t *testing.T) {
	tp := &recordingProvider{}
	fn := OpenTelemetry(WithTracerProvider(tp))(
		Renderer(render.NewRenderer(render.RendererConfig{MaxDepth: 1})),
	)

	tree := vdom.E("a", nil, vdom.E("b", nil, vdom.E("c", nil)))
	if _, err := fn(context.Background(), tree); err == nil {
		t.Fatal("expected max depth error")
	}

	span := tp.spans[0]
	if span.status != codes.Error {
		t.Errorf("status = %v, want Error", span.status)
	}
	if len(span.errs) != 1 {
		t.Errorf("recorded errors = %d, want 1", len(span.errs))
	}
	if got := span.attrs["vxml.error_code"]; got.AsString() != "X003" {
		t.Errorf("vxml.error_code = %q, want X003", got.AsString())
	}
	if _, ok := span.attrs["vxml.node_count"]; ok {
		t.Error("node count should not be recorded for failed renders")
	}
	if !span.ended {
		t.Error("span not ended")
	}
}

func TestRootTag(t *testing.T) {
	tests := []struct {
		node *vdom.Node
		want string
	}{
		{nil, ""},
		{vdom.E("div", nil), "div"},
		{vdom.Text("x"), "#Text"},
		{vdom.Integer(1), "#Number"},
	}
	for _, tt := range tests {
		if got := rootTag(tt.node); got != tt.want {
			t.Errorf("rootTag() = %q, want %q", got, tt.want)
		}
	}
}
