package vtest

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/vxml/pkg/document"
	"github.com/vango-dev/vxml/pkg/render"
	"github.com/vango-dev/vxml/pkg/vdom"
)

// RenderToString renders a tree and returns the markup, or "" on error.
//
// Example:
//
//	out := vtest.RenderToString(tree)
//	if !strings.Contains(out, "expected text") {
//	    t.Error("missing expected text")
//	}
func RenderToString(node *vdom.Node, opts ...render.Option) string {
	out, err := render.Render(node, opts...)
	if err != nil {
		return ""
	}
	return out
}

// Tree decodes a YAML or JSON document, failing the test if it is invalid.
func Tree(t testing.TB, src string) *vdom.Node {
	t.Helper()
	node, err := document.DecodeBytes("", []byte(src))
	if err != nil {
		t.Fatalf("invalid test document: %v", err)
	}
	return node
}

// ExpectRender asserts that node renders to exactly want.
func ExpectRender(t testing.TB, node *vdom.Node, want string, opts ...render.Option) {
	t.Helper()
	got, err := render.Render(node, opts...)
	if err != nil {
		t.Errorf("render failed: %v", err)
		return
	}
	if got != want {
		t.Errorf("rendered output mismatch (-want +got):\n%s", cmp.Diff(want, got))
	}
}

// ExpectRenderError asserts that rendering node fails with an error
// matching target, and returns no output.
func ExpectRenderError(t testing.TB, node *vdom.Node, target error, opts ...render.Option) {
	t.Helper()
	out, err := render.Render(node, opts...)
	if err == nil {
		t.Errorf("expected error %v, got output %q", target, truncate(out, 500))
		return
	}
	if !errors.Is(err, target) {
		t.Errorf("error = %v, want %v", err, target)
	}
	if out != "" {
		t.Errorf("expected no output on error, got %q", truncate(out, 500))
	}
}

// ExpectContains asserts that rendered output contains expected substring.
//
// Example:
//
//	vtest.ExpectContains(t, tree, "Welcome")
func ExpectContains(t testing.TB, node *vdom.Node, expected string) {
	t.Helper()
	out := RenderToString(node)
	if !strings.Contains(out, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(out, 500))
	}
}

// ExpectNotContains asserts that rendered output does not contain substring.
func ExpectNotContains(t testing.TB, node *vdom.Node, unexpected string) {
	t.Helper()
	out := RenderToString(node)
	if strings.Contains(out, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(out, 500))
	}
}

// ExpectElement asserts that rendered output contains an element with the
// given tag.
func ExpectElement(t testing.TB, node *vdom.Node, tag string) {
	t.Helper()
	out := RenderToString(node)
	if !strings.Contains(out, "<"+tag+">") && !strings.Contains(out, "<"+tag+" ") {
		t.Errorf("expected rendered output to contain <%s> element, got:\n%s", tag, truncate(out, 500))
	}
}

// ExpectAttribute asserts that rendered output contains an attribute. value
// is the unescaped value, as passed to the tree.
//
// Example:
//
//	vtest.ExpectAttribute(t, tree, "title", `say "hi"`)
func ExpectAttribute(t testing.TB, node *vdom.Node, attr, value string) {
	t.Helper()
	out := RenderToString(node)
	probe := RenderToString(vdom.E("p", vdom.Attrs{vdom.Str(attr, value)}))
	needle := strings.TrimSuffix(strings.TrimPrefix(probe, "<p"), "></p>")
	if !strings.Contains(out, needle) {
		t.Errorf("expected attribute %s=%q not found, got:\n%s", attr, value, truncate(out, 500))
	}
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
