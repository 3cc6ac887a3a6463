package render

import (
	"errors"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/vango-dev/vxml/pkg/vdom"
)

func mustRender(t *testing.T, node *vdom.Node, opts ...Option) string {
	t.Helper()
	out, err := Render(node, opts...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return out
}

func TestRenderSimple(t *testing.T) {
	node := vdom.Must(vdom.Element(vdom.TagName("asd"), vdom.NewAttrs(vdom.Flag("name", false)), vdom.Text("asdf")))

	got := mustRender(t, node)
	if want := `<asd name="false">asdf</asd>`; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderComplex(t *testing.T) {
	node := vdom.Must(vdom.Element(vdom.TagName("asdf"), vdom.NewAttrs(vdom.Str("f", "asdf")),
		vdom.Text("test"),
		vdom.Must(vdom.Element(vdom.TagName("qwerty"), vdom.NewAttrs(vdom.Str("x", "123")), vdom.Text("asdf"))),
		vdom.Must(vdom.Element(vdom.TagName("empty"), vdom.NewAttrs())),
	))

	got := mustRender(t, node)
	if want := `<asdf f="asdf">test<qwerty x="123">asdf</qwerty><empty></empty></asdf>`; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderComponent(t *testing.T) {
	person := vdom.Component(func(p vdom.Props) *vdom.Node {
		return vdom.E("person", nil,
			vdom.E("name", nil, p.Node("name")),
			vdom.E("nr", nil, p.Node("nr")),
		)
	})

	node, err := vdom.Element(person, vdom.NewAttrs(vdom.Str("name", "asdf"), vdom.Int("nr", 123)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := mustRender(t, node)
	if want := `<person><name>asdf</name><nr>123</nr></person>`; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderReplaceTag(t *testing.T) {
	node := vdom.E("x:FOO", nil, vdom.Text("Hello"))

	got := mustRender(t, node, WithReplaceTag(func(tag string) string {
		return strings.Replace(tag, "x:", "", 1)
	}))
	if want := `<FOO>Hello</FOO>`; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderReplaceTagEveryDepthNotText(t *testing.T) {
	node := vdom.E("a", nil,
		vdom.Text("a"),
		vdom.E("b", nil, vdom.E("c", nil, vdom.Text("c"))),
	)

	var seen []string
	got := mustRender(t, node, WithReplaceTag(func(tag string) string {
		seen = append(seen, tag)
		return strings.ToUpper(tag)
	}))

	if want := `<A>a<B><C>c</C></B></A>`; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if strings.Join(seen, ",") != "a,b,c" {
		t.Errorf("ReplaceTag called with %v, want [a b c]", seen)
	}
}

func TestRenderTextLikeNodes(t *testing.T) {
	tests := []struct {
		name string
		node *vdom.Node
		want string
	}{
		{"string", vdom.Text("Hello, World!"), "Hello, World!"},
		{"empty string", vdom.Text(""), ""},
		{"markup is not escaped", vdom.Text(`<b>&"'</b>`), `<b>&"'</b>`},
		{"integer", vdom.Integer(123), "123"},
		{"negative float", vdom.Number(-1.5), "-1.5"},
		{"large number", vdom.Number(1e21), "1e+21"},
		{"NaN", vdom.Number(math.NaN()), "NaN"},
		{"true", vdom.Boolean(true), "true"},
		{"false", vdom.Boolean(false), "false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mustRender(t, tt.node); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderEmptyElement(t *testing.T) {
	tests := []struct {
		name string
		node *vdom.Node
	}{
		{"nil attrs and children", vdom.E("br", nil)},
		{"empty attrs", vdom.E("br", vdom.Attrs{})},
		{"empty children slice", &vdom.Node{Kind: vdom.KindElement, Tag: "br", Children: []*vdom.Node{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mustRender(t, tt.node); got != "<br></br>" {
				t.Errorf("got %q, want %q", got, "<br></br>")
			}
		})
	}
}

func TestRenderAttributeOrder(t *testing.T) {
	node := vdom.E("el", vdom.NewAttrs(
		vdom.Str("z", "1"),
		vdom.Int("a", 2),
		vdom.Flag("m", true),
		vdom.Num("b", 0.5),
	))

	got := mustRender(t, node)
	if want := `<el z="1" a="2" m="true" b="0.5"></el>`; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderAttributesNotDeduplicated(t *testing.T) {
	node := vdom.E("el", vdom.Attrs{vdom.Str("a", "1"), vdom.Str("a", "2")})

	got := mustRender(t, node)
	if want := `<el a="1" a="2"></el>`; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderAttributeEscaping(t *testing.T) {
	node := vdom.E("el", vdom.NewAttrs(vdom.Str("v", `a&b<c>d"e'f`)))

	got := mustRender(t, node)
	if want := `<el v="a&amp;b&lt;c&gt;d&quot;e&apos;f"></el>`; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderChildrenOrder(t *testing.T) {
	c1 := vdom.E("one", vdom.NewAttrs(vdom.Str("k", "1")), vdom.Text("x"))
	c2 := vdom.Text("middle")
	c3 := vdom.E("three", nil, vdom.Integer(3))
	parent := vdom.E("p", nil, c1, c2, c3)

	got := mustRender(t, parent)
	want := "<p>" + mustRender(t, c1) + mustRender(t, c2) + mustRender(t, c3) + "</p>"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderEscapeTextOption(t *testing.T) {
	node := vdom.E("p", vdom.NewAttrs(vdom.Str("t", "<")), vdom.Text(`<script>alert('x')</script> & "y"`))

	got := mustRender(t, node, WithEscapeText(true))
	want := `<p t="&lt;">&lt;script&gt;alert(&apos;x&apos;)&lt;/script&gt; &amp; &quot;y&quot;</p>`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderInvalidNode(t *testing.T) {
	tests := []struct {
		name string
		node *vdom.Node
	}{
		{"nil root", nil},
		{"nil child", vdom.E("p", nil, vdom.Text("ok"), nil)},
		{"nested nil child", vdom.E("p", nil, vdom.E("q", nil, nil))},
		{"unknown kind", &vdom.Node{Kind: vdom.Kind(99)}},
		{"unknown kind child", vdom.E("p", nil, &vdom.Node{Kind: vdom.Kind(7)})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Render(tt.node)
			if !errors.Is(err, ErrInvalidNode) {
				t.Errorf("err = %v, want ErrInvalidNode", err)
			}
			if out != "" {
				t.Errorf("partial output %q returned on error", out)
			}
		})
	}
}

func deepTree(depth int) *vdom.Node {
	node := vdom.Text("leaf")
	for i := 0; i < depth; i++ {
		node = vdom.E("d", nil, node)
	}
	return node
}

func TestRenderMaxDepth(t *testing.T) {
	// Elements at depths 0..4.
	tree := deepTree(5)

	if _, err := Render(tree, WithMaxDepth(4)); err != nil {
		t.Errorf("depth 4 within limit 4: unexpected error %v", err)
	}
	if _, err := Render(tree, WithMaxDepth(3)); !errors.Is(err, ErrMaxDepth) {
		t.Errorf("err = %v, want ErrMaxDepth", err)
	}
	if _, err := Render(tree); err != nil {
		t.Errorf("no limit: unexpected error %v", err)
	}
}

func TestRenderMaxDepthStopsCycles(t *testing.T) {
	loop := vdom.E("loop", nil)
	loop.Children = []*vdom.Node{loop}

	if _, err := Render(loop, WithMaxDepth(64)); !errors.Is(err, ErrMaxDepth) {
		t.Errorf("err = %v, want ErrMaxDepth", err)
	}
}

func TestNewRendererNegativeDepth(t *testing.T) {
	r := NewRenderer(RendererConfig{MaxDepth: -1})
	if r.Config().MaxDepth != 0 {
		t.Errorf("MaxDepth = %d, want 0", r.Config().MaxDepth)
	}
}

func TestRendererDeterministicAndConcurrent(t *testing.T) {
	r := NewRenderer(RendererConfig{ReplaceTag: strings.ToLower})
	node := vdom.E("ROOT", vdom.NewAttrs(vdom.Str("a", "&")),
		vdom.Map([]int{1, 2, 3}, func(i int) *vdom.Node {
			return vdom.E("Item", vdom.NewAttrs(vdom.Int("i", i)), vdom.Integer(i*i))
		})...,
	)
	want := `<root a="&amp;"><item i="1">1</item><item i="2">4</item><item i="3">9</item></root>`

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := r.RenderToString(node)
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if got != want {
				t.Errorf("got %q, want %q", got, want)
			}
		}()
	}
	wg.Wait()
}

func BenchmarkRender(b *testing.B) {
	items := make([]*vdom.Node, 100)
	for i := range items {
		items[i] = vdom.E("li", vdom.NewAttrs(vdom.Int("i", i), vdom.Str("class", `a"b`)), vdom.Text("item"))
	}
	tree := vdom.E("ul", nil, items...)
	r := NewRenderer(RendererConfig{})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := r.RenderToString(tree); err != nil {
			b.Fatal(err)
		}
	}
}
