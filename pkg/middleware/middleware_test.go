package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/vango-dev/vxml/pkg/render"
	"github.com/vango-dev/vxml/pkg/vdom"
	"github.com/vango-dev/vxml/pkg/vtest"
)

func TestChainOrder(t *testing.T) {
	var calls []string
	trace := func(name string) Middleware {
		return func(next RenderFunc) RenderFunc {
			return func(ctx context.Context, node *vdom.Node) (string, error) {
				calls = append(calls, name+":before")
				out, err := next(ctx, node)
				calls = append(calls, name+":after")
				return out, err
			}
		}
	}

	leaf := func(context.Context, *vdom.Node) (string, error) {
		calls = append(calls, "render")
		return "ok", nil
	}

	out, err := Chain(trace("outer"), nil, trace("inner"))(leaf)(context.Background(), vdom.Text("x"))
	if err != nil || out != "ok" {
		t.Fatalf("got %q, %v", out, err)
	}

	want := []string{"outer:before", "inner:before", "render", "inner:after", "outer:after"}
	if strings.Join(calls, ",") != strings.Join(want, ",") {
		t.Errorf("calls = %v, want %v", calls, want)
	}
}

func TestChainEmpty(t *testing.T) {
	fn := Chain()(Renderer(render.NewRenderer(render.RendererConfig{})))
	out, err := fn(context.Background(), vtest.Tree(t, "{tag: br}"))
	if err != nil || out != "<br></br>" {
		t.Errorf("got %q, %v", out, err)
	}
}

func TestRendererUsesConfig(t *testing.T) {
	r := render.NewRenderer(render.RendererConfig{
		ReplaceTag: func(tag string) string { return "x-" + tag },
	})
	out, err := Renderer(r)(context.Background(), vdom.E("a", nil, vdom.E("b", nil)))
	if err != nil {
		t.Fatal(err)
	}
	if want := "<x-a><x-b></x-b></x-a>"; out != want {
		t.Errorf("out = %q, want %q", out, want)
	}
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	fn := Logging(logger)(Renderer(render.NewRenderer(render.RendererConfig{})))

	if _, err := fn(context.Background(), vdom.E("ok", nil)); err != nil {
		t.Fatal(err)
	}
	if _, err := fn(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil node")
	}

	logs := buf.String()
	for _, want := range []string{
		"level=DEBUG", `msg="render complete"`, "root=ok", "bytes=9",
		"level=WARN", `msg="render failed"`, "code=X002",
	} {
		if !strings.Contains(logs, want) {
			t.Errorf("logs missing %q:\n%s", want, logs)
		}
	}
}

func TestLoggingNilLogger(t *testing.T) {
	leaf := func(context.Context, *vdom.Node) (string, error) { return "", nil }
	if _, err := Logging(nil)(leaf)(context.Background(), vdom.Text("x")); err != nil {
		t.Fatal(err)
	}
}
