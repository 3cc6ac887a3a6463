// Package render serializes vdom trees into XML/HTML-like markup.
//
// Rendering is a depth-first, pre-order fold over the tree:
//
//   - Text, number and boolean nodes print their canonical string form.
//   - Elements print as <tag attrs>children</tag>. There is no self-closing
//     shorthand: an element with no children still gets a closing tag.
//   - Attributes print in the order they are stored, each as name="value",
//     with &, <, >, " and ' replaced by &amp; &lt; &gt; &quot; &apos;.
//
// # Basic Usage
//
//	html, err := render.Render(node)
//
// Tags can be rewritten on the way out. The function is applied to every
// element, at every depth, for both the opening and the closing tag:
//
//	out, err := render.Render(node, render.WithReplaceTag(func(tag string) string {
//	    return strings.Replace(tag, "x:", "", 1)
//	}))
//
// A Renderer holds a fixed configuration and may be shared between goroutines:
//
//	r := render.NewRenderer(render.RendererConfig{MaxDepth: 512})
//	out, err := r.RenderToString(node)
//
// # Text Content
//
// Text-like nodes are NOT escaped by default; only attribute values are.
// Markup characters in text pass through verbatim, so untrusted text can
// inject elements. This matches the behaviour vxml trees have always had and
// is most likely an oversight; set EscapeText (or WithEscapeText) to apply the
// attribute entity table to text content as well.
//
// # Errors
//
// Nil nodes, nil children and nodes of unknown kind fail with ErrInvalidNode.
// When MaxDepth is set, deeper trees fail with ErrMaxDepth. Rendering either
// succeeds completely or returns no output.
package render
