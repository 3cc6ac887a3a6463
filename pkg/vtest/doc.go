// Package vtest provides testing helpers for code that builds and renders
// trees.
//
// # Render Assertions
//
//	tree := vdom.E("asdf", vdom.Attrs{vdom.Str("f", "asdf")}, vdom.Text("test"))
//
//	vtest.ExpectRender(t, tree, `<asdf f="asdf">test</asdf>`)
//	vtest.ExpectContains(t, tree, "test")
//	vtest.ExpectElement(t, tree, "asdf")
//	vtest.ExpectAttribute(t, tree, "f", "asdf")
//
// Renderer options pass through:
//
//	vtest.ExpectRender(t, tree, "<x-asdf ...", render.WithReplaceTag(prefix))
//
// # Failures
//
//	vtest.ExpectRenderError(t, vdom.E("a", nil, nil), render.ErrInvalidNode)
//
// # Documents
//
// Tree builds a tree from a YAML or JSON literal, failing the test on error:
//
//	tree := vtest.Tree(t, `{tag: p, children: [hello]}`)
package vtest
