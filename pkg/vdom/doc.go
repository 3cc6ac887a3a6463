// Package vdom provides the node tree that vxml renders.
//
// A tree is built bottom-up, either by constructing Node values directly or
// through the JSX-style element builder:
//
//	page := vdom.Must(vdom.Element(vdom.TagName("asdf"), vdom.NewAttrs(vdom.Str("f", "asdf")),
//	    vdom.Text("test"),
//	    vdom.E("qwerty", vdom.NewAttrs(vdom.Str("x", "123")), vdom.Text("asdf")),
//	    vdom.E("empty", nil),
//	))
//
// # Core Types
//
// Node is a sum type discriminated by Kind: an element (tag, attributes,
// ordered children) or a text-like scalar (string, number or boolean).
// Attrs is an ordered attribute list whose order is kept in the output.
// Value is the scalar carried by attributes.
//
// # Components
//
// A Component is a function from Props to a Node. Element invokes it with the
// attributes and children it was given and returns the result unwrapped:
//
//	func Person(p vdom.Props) *vdom.Node {
//	    return vdom.E("person", nil,
//	        vdom.E("name", nil, p.Node("name")),
//	        vdom.E("nr", nil, p.Node("nr")),
//	    )
//	}
//
//	node, err := vdom.Element(vdom.Component(Person),
//	    vdom.NewAttrs(vdom.Str("name", "asdf"), vdom.Int("nr", 123)))
//
// Nodes are never mutated after construction; a tree may be rendered any
// number of times, concurrently.
package vdom
