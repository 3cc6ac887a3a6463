// Package document decodes vdom trees from YAML or JSON documents.
//
// A node is either a scalar or a mapping:
//
//	tag: asdf               # required, string
//	attrs:                  # optional mapping of scalars, order preserved
//	  f: asdf
//	children:               # optional sequence of nodes
//	  - test                # strings become text nodes
//	  - tag: qwerty
//	    attrs: {x: "123"}
//	    children: [asdf]
//	  - tag: empty
//
// Scalars map by their YAML type: strings to text nodes, integers and floats
// to number nodes, booleans to boolean nodes. Quote a value to keep it a
// string ("123", "true"). JSON is accepted as the YAML subset it is.
//
// Errors carry the line and column of the offending YAML node.
package document
