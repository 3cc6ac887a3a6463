package middleware

import (
	"context"

	"github.com/vango-dev/vxml/pkg/render"
	"github.com/vango-dev/vxml/pkg/vdom"
)

// RenderFunc renders a tree to a string.
type RenderFunc func(ctx context.Context, node *vdom.Node) (string, error)

// Middleware wraps a RenderFunc with additional behavior.
type Middleware func(next RenderFunc) RenderFunc

// Chain composes middleware. The first middleware is the outermost.
func Chain(mws ...Middleware) Middleware {
	return func(next RenderFunc) RenderFunc {
		for i := len(mws) - 1; i >= 0; i-- {
			if mws[i] != nil {
				next = mws[i](next)
			}
		}
		return next
	}
}

// Renderer adapts r to a RenderFunc. The context is not consulted; rendering
// does no I/O.
func Renderer(r *render.Renderer) RenderFunc {
	return func(_ context.Context, node *vdom.Node) (string, error) {
		return r.RenderToString(node)
	}
}

// rootTag names the root for logs and spans.
func rootTag(node *vdom.Node) string {
	switch {
	case node == nil:
		return ""
	case node.IsElement():
		return node.Tag
	default:
		return "#" + node.Kind.String()
	}
}
