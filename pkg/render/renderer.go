package render

import (
	"strings"

	"github.com/vango-dev/vxml/internal/errors"
	"github.com/vango-dev/vxml/pkg/vdom"
)

var (
	// ErrInvalidNode is returned for nil nodes, nil children and nodes of
	// unknown kind.
	ErrInvalidNode = vdom.ErrInvalidNode

	// ErrMaxDepth is returned when a tree is deeper than RendererConfig.MaxDepth.
	ErrMaxDepth error = errors.New(errors.CodeMaxDepth)
)

// RendererConfig configures the renderer.
type RendererConfig struct {
	// ReplaceTag, if set, maps every element tag before it is written.
	// It is never applied to text-like nodes.
	ReplaceTag func(tag string) string

	// EscapeText applies attribute escaping to text-like content.
	// Off by default: text content is written verbatim.
	EscapeText bool

	// MaxDepth limits element nesting; the root is depth 0.
	// Zero means no limit.
	MaxDepth int
}

// Option configures a single Render call.
type Option func(*RendererConfig)

// WithReplaceTag sets RendererConfig.ReplaceTag.
func WithReplaceTag(fn func(tag string) string) Option {
	return func(c *RendererConfig) {
		c.ReplaceTag = fn
	}
}

// WithEscapeText sets RendererConfig.EscapeText.
func WithEscapeText(escape bool) Option {
	return func(c *RendererConfig) {
		c.EscapeText = escape
	}
}

// WithMaxDepth sets RendererConfig.MaxDepth.
func WithMaxDepth(depth int) Option {
	return func(c *RendererConfig) {
		c.MaxDepth = depth
	}
}

// Renderer renders vdom trees with a fixed configuration.
// It holds no per-call state and is safe for concurrent use.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.MaxDepth < 0 {
		config.MaxDepth = 0
	}
	return &Renderer{config: config}
}

// Config returns the renderer's configuration.
func (r *Renderer) Config() RendererConfig {
	return r.config
}

// Render renders node with the given options.
func Render(node *vdom.Node, opts ...Option) (string, error) {
	var config RendererConfig
	for _, opt := range opts {
		opt(&config)
	}
	return NewRenderer(config).RenderToString(node)
}

// RenderToString renders a tree to a string. On error the partial output is
// discarded.
func (r *Renderer) RenderToString(node *vdom.Node) (string, error) {
	var b strings.Builder
	if err := r.renderNode(&b, node, 0); err != nil {
		return "", err
	}
	return b.String(), nil
}

// renderNode dispatches rendering based on node kind.
func (r *Renderer) renderNode(b *strings.Builder, node *vdom.Node, depth int) error {
	if node == nil {
		return errors.New(errors.CodeInvalidNode).WithDetail("nil node")
	}

	switch node.Kind {
	case vdom.KindElement:
		return r.renderElement(b, node, depth)
	case vdom.KindText:
		r.writeText(b, node.Text)
		return nil
	case vdom.KindNumber:
		r.writeText(b, vdom.FormatNumber(node.Num))
		return nil
	case vdom.KindBool:
		if node.Bool {
			r.writeText(b, "true")
		} else {
			r.writeText(b, "false")
		}
		return nil
	default:
		return errors.New(errors.CodeInvalidNode).
			WithDetailf("unknown node kind %d", node.Kind)
	}
}

// renderElement renders an element with its attributes and children.
func (r *Renderer) renderElement(b *strings.Builder, node *vdom.Node, depth int) error {
	if r.config.MaxDepth > 0 && depth > r.config.MaxDepth {
		return errors.New(errors.CodeMaxDepth).
			WithDetailf("<%s> at depth %d exceeds limit %d", node.Tag, depth, r.config.MaxDepth)
	}

	tag := node.Tag
	if r.config.ReplaceTag != nil {
		tag = r.config.ReplaceTag(tag)
	}

	b.WriteByte('<')
	b.WriteString(tag)
	r.renderAttributes(b, node.Attrs)
	b.WriteByte('>')

	for i, child := range node.Children {
		if child == nil {
			return errors.New(errors.CodeInvalidNode).
				WithDetailf("nil child %d of <%s>", i, node.Tag)
		}
		if err := r.renderNode(b, child, depth+1); err != nil {
			return err
		}
	}

	b.WriteString("</")
	b.WriteString(tag)
	b.WriteByte('>')
	return nil
}

// renderAttributes writes ` key="value"` for every attribute, in order.
func (r *Renderer) renderAttributes(b *strings.Builder, attrs vdom.Attrs) {
	for _, a := range attrs {
		b.WriteByte(' ')
		b.WriteString(a.Key)
		b.WriteString(`="`)
		b.WriteString(escapeAttr(a.Value.String()))
		b.WriteByte('"')
	}
}

// writeText writes text-like content, escaped only when EscapeText is set.
func (r *Renderer) writeText(b *strings.Builder, s string) {
	if r.config.EscapeText {
		s = escapeText(s)
	}
	b.WriteString(s)
}
