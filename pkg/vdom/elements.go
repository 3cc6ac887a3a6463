package vdom

import (
	"fmt"

	"github.com/vango-dev/vxml/internal/errors"
)

// ErrInvalidTag is returned by Element when the tag is neither a TagName nor
// a non-nil Component. Use errors.Is to test for it.
var ErrInvalidTag error = errors.New(errors.CodeInvalidTag)

// ErrInvalidNode is returned when a value is not a node vxml can handle.
var ErrInvalidNode error = errors.New(errors.CodeInvalidNode)

// Tag is what Element builds from: a literal element name or a Component.
type Tag interface {
	isTag()
}

// TagName is a literal element name, emitted verbatim.
type TagName string

func (TagName) isTag() {}

// Component renders Props into a subtree.
type Component func(props Props) *Node

func (Component) isTag() {}

// Props is what a Component receives: the attributes passed to Element plus
// the children passed to it.
type Props struct {
	Attrs    Attrs
	Children []*Node
}

// Get returns the attribute stored under key.
func (p Props) Get(key string) (Value, bool) {
	return p.Attrs.Get(key)
}

// String returns the canonical string form of the attribute stored under key,
// or "" if it is absent.
func (p Props) String(key string) string {
	v, _ := p.Attrs.Get(key)
	return v.String()
}

// Node returns the attribute stored under key as a text-like node, keeping
// its type. An absent key yields an empty text node.
func (p Props) Node(key string) *Node {
	v, _ := p.Attrs.Get(key)
	return v.Node()
}

// Element creates a node from tag, attributes and children.
//
// For a TagName it returns an element node holding attrs and children as
// given. For a Component it calls the component with Props{attrs, children}
// and returns the result directly. Any other tag fails with ErrInvalidTag.
func Element(tag Tag, attrs Attrs, children ...*Node) (*Node, error) {
	switch t := tag.(type) {
	case TagName:
		return &Node{
			Kind:     KindElement,
			Tag:      string(t),
			Attrs:    attrs,
			Children: children,
		}, nil
	case Component:
		if t == nil {
			return nil, errors.New(errors.CodeInvalidTag).
				WithDetail("nil component")
		}
		return t(Props{Attrs: attrs, Children: children}), nil
	case nil:
		return nil, errors.New(errors.CodeInvalidTag).
			WithDetail("nil tag")
	default:
		return nil, errors.New(errors.CodeInvalidTag).
			WithDetailf("unsupported tag type %T", tag)
	}
}

// E creates an element node with a literal tag name.
func E(tag string, attrs Attrs, children ...*Node) *Node {
	return &Node{
		Kind:     KindElement,
		Tag:      tag,
		Attrs:    attrs,
		Children: children,
	}
}

// Must returns node, panicking if err is non-nil.
// Intended for trees whose tags are known at compile time.
func Must(node *Node, err error) *Node {
	if err != nil {
		panic(fmt.Sprintf("vdom: %v", err))
	}
	return node
}
