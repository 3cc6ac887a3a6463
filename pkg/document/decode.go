package document

import (
	"bytes"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/vxml/internal/errors"
	"github.com/vango-dev/vxml/pkg/vdom"
)

var (
	// ErrSyntax is returned when the input is not valid YAML.
	ErrSyntax error = errors.New(errors.CodeDocumentSyntax)

	// ErrShape is returned when valid YAML does not describe a node tree.
	ErrShape error = errors.New(errors.CodeDocumentShape)
)

// MaxDepth bounds document nesting, counting through aliases.
const MaxDepth = 10000

// Aliases are expanded into fresh nodes, so a short chain of them can grow
// exponentially. A decoded tree may hold at most aliasRatio nodes and
// attribute values per YAML node in the source, and never fewer than
// minBudget.
const (
	aliasRatio = 10
	minBudget  = 10000
)

const (
	keyTag      = "tag"
	keyAttrs    = "attrs"
	keyChildren = "children"
)

// Decode reads a single document from r. name identifies the source in
// error locations; when it is a readable file path, errors include the
// surrounding lines.
func Decode(name string, r io.Reader) (*vdom.Node, error) {
	dec := yaml.NewDecoder(r)

	var root yaml.Node
	if err := dec.Decode(&root); err != nil {
		if err == io.EOF {
			return nil, errors.New(errors.CodeDocumentShape).
				WithDetail("empty document").
				WithLocation(name, 1, 1)
		}
		return nil, errors.New(errors.CodeDocumentSyntax).
			WithDetail(err.Error()).
			Wrap(err)
	}

	var extra yaml.Node
	if err := dec.Decode(&extra); err != io.EOF {
		at := &extra
		if at.Kind == yaml.DocumentNode && len(at.Content) > 0 {
			at = at.Content[0]
		}
		e := errors.New(errors.CodeDocumentShape).
			WithDetail("expected a single document").
			WithSuggestion("Remove the '---' separator or render each document separately")
		if err == nil && at.Line > 0 {
			e = e.WithLocation(name, at.Line, at.Column)
		}
		return nil, e
	}

	d := decoder{name: name, budget: max(minBudget, aliasRatio*sourceNodes(&root))}
	return d.node(&root, 0)
}

// DecodeBytes decodes a single document from data.
func DecodeBytes(name string, data []byte) (*vdom.Node, error) {
	return Decode(name, bytes.NewReader(data))
}

type decoder struct {
	name   string
	budget int
	used   int
	alias  *yaml.Node // outermost alias being expanded
}

// sourceNodes counts the YAML nodes in the parsed source, without following
// aliases.
func sourceNodes(root *yaml.Node) int {
	n := 0
	stack := []*yaml.Node{root}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n++
		stack = append(stack, top.Content...)
	}
	return n
}

// expand marks n as the alias being expanded unless an enclosing alias
// already is. The returned func clears the mark.
func (d *decoder) expand(n *yaml.Node) func() {
	if d.alias != nil {
		return func() {}
	}
	d.alias = n
	return func() { d.alias = nil }
}

// spend charges one decoded value against the budget. Without aliases the
// decoded tree never outgrows the source, so an overrun is reported at the
// alias that caused it.
func (d *decoder) spend(n *yaml.Node) error {
	d.used++
	if d.used <= d.budget {
		return nil
	}
	at := n
	if d.alias != nil {
		at = d.alias
	}
	return errors.New(errors.CodeDocumentShape).
		WithDetailf("aliases expand to more than %d values", d.budget).
		WithSuggestion("Repeat fewer aliases or split the document").
		WithLocation(d.name, at.Line, at.Column)
}

func (d *decoder) fail(n *yaml.Node, format string, args ...any) error {
	return errors.New(errors.CodeDocumentShape).
		WithDetailf(format, args...).
		WithLocation(d.name, n.Line, n.Column)
}

func (d *decoder) node(n *yaml.Node, depth int) (*vdom.Node, error) {
	if depth > MaxDepth {
		return nil, d.fail(n, "document nested deeper than %d", MaxDepth)
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, d.fail(n, "empty document")
		}
		return d.node(n.Content[0], depth)
	case yaml.AliasNode:
		defer d.expand(n)()
		return d.node(n.Alias, depth+1)
	case yaml.ScalarNode:
		if err := d.spend(n); err != nil {
			return nil, err
		}
		v, err := d.scalar(n)
		if err != nil {
			return nil, err
		}
		return v.Node(), nil
	case yaml.MappingNode:
		if err := d.spend(n); err != nil {
			return nil, err
		}
		return d.element(n, depth)
	case yaml.SequenceNode:
		return nil, d.fail(n, "a sequence is not a node; put it under 'children'")
	default:
		return nil, d.fail(n, "unexpected YAML node kind %d", n.Kind)
	}
}

// scalar converts a YAML scalar into a Value by its resolved tag.
func (d *decoder) scalar(n *yaml.Node) (vdom.Value, error) {
	switch tag := n.ShortTag(); tag {
	case "!!str":
		return vdom.StringValue(n.Value), nil
	case "!!int", "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return vdom.Value{}, d.fail(n, "invalid number %q: %v", n.Value, err)
		}
		return vdom.NumberValue(f), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return vdom.Value{}, d.fail(n, "invalid boolean %q: %v", n.Value, err)
		}
		return vdom.BoolValue(b), nil
	case "!!null":
		return vdom.Value{}, d.fail(n, "null is not a node or attribute value")
	default:
		return vdom.Value{}, d.fail(n, "unsupported scalar type %s", tag)
	}
}

func (d *decoder) element(n *yaml.Node, depth int) (*vdom.Node, error) {
	var (
		tag      string
		hasTag   bool
		attrs    vdom.Attrs
		children []*vdom.Node
		seen     = make(map[string]bool, 3)
	)

	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.Kind != yaml.ScalarNode {
			return nil, d.fail(k, "element keys must be strings")
		}
		if seen[k.Value] {
			return nil, d.fail(k, "duplicate key %q", k.Value)
		}
		seen[k.Value] = true

		switch k.Value {
		case keyTag:
			if v.Kind != yaml.ScalarNode || v.ShortTag() != "!!str" {
				return nil, d.fail(v, "'tag' must be a string")
			}
			tag, hasTag = v.Value, true
		case keyAttrs:
			as, err := d.attrs(v)
			if err != nil {
				return nil, err
			}
			attrs = as
		case keyChildren:
			cs, err := d.children(v, depth)
			if err != nil {
				return nil, err
			}
			children = cs
		default:
			return nil, d.fail(k, "unknown key %q (expected tag, attrs or children)", k.Value)
		}
	}

	if !hasTag {
		return nil, errors.New(errors.CodeDocumentShape).
			WithDetail("element without 'tag'").
			WithSuggestion("Element mappings need a string 'tag' key").
			WithLocation(d.name, n.Line, n.Column)
	}

	return vdom.E(tag, attrs, children...), nil
}

func (d *decoder) attrs(n *yaml.Node) (vdom.Attrs, error) {
	if n.ShortTag() == "!!null" {
		return nil, nil
	}
	if n.Kind == yaml.AliasNode {
		defer d.expand(n)()
		return d.attrs(n.Alias)
	}
	if n.Kind != yaml.MappingNode {
		return nil, d.fail(n, "'attrs' must be a mapping")
	}

	attrs := make(vdom.Attrs, 0, len(n.Content)/2)
	seen := make(map[string]bool, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.Kind != yaml.ScalarNode {
			return nil, d.fail(k, "attribute names must be scalars")
		}
		if seen[k.Value] {
			return nil, d.fail(k, "duplicate attribute %q", k.Value)
		}
		seen[k.Value] = true

		if err := d.spend(v); err != nil {
			return nil, err
		}
		if v.Kind == yaml.AliasNode {
			v = v.Alias
		}
		if v.Kind != yaml.ScalarNode {
			return nil, d.fail(v, "attribute %q must be a string, number or boolean", k.Value)
		}
		val, err := d.scalar(v)
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, vdom.Attr{Key: k.Value, Value: val})
	}
	return attrs, nil
}

func (d *decoder) children(n *yaml.Node, depth int) ([]*vdom.Node, error) {
	if n.ShortTag() == "!!null" {
		return nil, nil
	}
	if n.Kind == yaml.AliasNode {
		defer d.expand(n)()
		return d.children(n.Alias, depth+1)
	}
	if n.Kind != yaml.SequenceNode {
		return nil, d.fail(n, "'children' must be a sequence")
	}

	children := make([]*vdom.Node, 0, len(n.Content))
	for _, c := range n.Content {
		child, err := d.node(c, depth+1)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return children, nil
}
