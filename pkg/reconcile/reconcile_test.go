package reconcile

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/vhook/pkg/vdom"
)

// shape renders a resolved tree into a comparable outline.
type shape struct {
	Kind     string
	Tag      string
	Value    any
	Children []shape
}

func outline(n *vdom.VNode) shape {
	if n == nil {
		return shape{Kind: "nil"}
	}
	s := shape{Kind: n.Kind.String(), Tag: n.Tag, Value: n.NodeValue()}
	for _, c := range n.Children {
		s.Children = append(s.Children, outline(c))
	}
	return s
}

func assertPrimitive(t *testing.T, n *vdom.VNode) {
	t.Helper()
	if n == nil {
		return
	}
	if n.Kind == vdom.KindComponent {
		t.Fatalf("unresolved component in tree")
	}
	for _, c := range n.Children {
		assertPrimitive(t, c)
	}
}

func TestResolvePassThrough(t *testing.T) {
	static := vdom.Div(vdom.Class("x"), vdom.Span("hi"))
	if got := Resolve(static); got != static {
		t.Error("static element tree should be returned as is")
	}

	text := vdom.Text("t")
	if got := Resolve(text); got != text {
		t.Error("text node should pass through")
	}

	if Resolve(nil) != nil {
		t.Error("nil should resolve to nil")
	}
}

func TestResolveComponent(t *testing.T) {
	calls := 0
	greeting := func() *vdom.VNode {
		calls++
		return vdom.H1("hello")
	}

	tree := vdom.Div(vdom.H(greeting, nil), vdom.P("static"))
	got := Resolve(tree)

	if calls != 1 {
		t.Errorf("component invoked %d times, want 1", calls)
	}
	assertPrimitive(t, got)

	want := shape{Kind: "Element", Tag: "div", Children: []shape{
		{Kind: "Element", Tag: "h1", Children: []shape{{Kind: "Text", Tag: vdom.TextTag, Value: "hello"}}},
		{Kind: "Element", Tag: "p", Children: []shape{{Kind: "Text", Tag: vdom.TextTag, Value: "static"}}},
	}}
	if diff := cmp.Diff(want, outline(got)); diff != "" {
		t.Errorf("resolved tree mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveDoesNotMutateInput(t *testing.T) {
	child := vdom.H(func() *vdom.VNode { return vdom.Span("x") }, nil)
	tree := vdom.Div(child)

	Resolve(tree)

	if tree.Children[0] != child || child.Kind != vdom.KindComponent {
		t.Error("input tree was modified during resolution")
	}
}

func TestResolveNestedComponents(t *testing.T) {
	leaf := func() *vdom.VNode { return vdom.Li("leaf") }
	middle := func() *vdom.VNode { return vdom.Ul(vdom.H(leaf, nil), vdom.H(leaf, nil)) }
	// A component returning a component resolves all the way down.
	outer := func() *vdom.VNode { return vdom.H(middle, nil) }

	got := Resolve(vdom.H(outer, nil))
	assertPrimitive(t, got)

	if got.Tag != "ul" || len(got.Children) != 2 || got.Children[1].Tag != "li" {
		t.Errorf("got %v", outline(got))
	}
}

func TestResolveFragments(t *testing.T) {
	items := func() *vdom.VNode {
		return vdom.Fragment(vdom.Li("a"), vdom.Li("b"))
	}
	got := Resolve(vdom.Ul(vdom.H(items, nil), vdom.Li("c")))
	assertPrimitive(t, got)

	if got.Children[0].Kind != vdom.KindFragment {
		t.Fatalf("first child kind = %v, want Fragment", got.Children[0].Kind)
	}
	if len(got.Children[0].Children) != 2 {
		t.Errorf("fragment len = %d, want 2", len(got.Children[0].Children))
	}
}

func TestResolveAll(t *testing.T) {
	nilComp := func() *vdom.VNode { return nil }
	got := ResolveAll([]*vdom.VNode{
		vdom.Text("a"),
		vdom.H(nilComp, nil),
		vdom.H(func() *vdom.VNode { return vdom.Span() }, nil),
	})

	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[1] != nil {
		t.Errorf("nil-returning component should resolve to nil, got %v", got[1])
	}
	if got[2].Tag != "span" {
		t.Errorf("got[2] = %v", got[2])
	}
}

func TestResolveIdempotentOnStaticInput(t *testing.T) {
	header := func() *vdom.VNode { return vdom.H1(vdom.Class("title"), "Title") }
	app := func() *vdom.VNode {
		return vdom.Main(vdom.H(header, nil), vdom.Ul(vdom.Li("1"), vdom.Li("2")))
	}

	first := Resolve(vdom.H(app, nil))
	second := Resolve(vdom.H(app, nil))

	if diff := cmp.Diff(outline(first), outline(second)); diff != "" {
		t.Errorf("resolutions differ (-first +second):\n%s", diff)
	}
	if first == second {
		t.Error("each resolution should build a fresh tree")
	}
}

func TestResolveSharesStaticSubtrees(t *testing.T) {
	leaf := func() *vdom.VNode { return vdom.Span("leaf") }
	static := vdom.Ul(vdom.Li("1"), vdom.Li("2"))
	dynamic := vdom.Section(vdom.Div(vdom.H(leaf, nil)))
	tree := vdom.Div(static, dynamic)

	got := Resolve(tree)
	assertPrimitive(t, got)

	if got == tree {
		t.Fatal("tree with a component should be copied")
	}
	if got.Children[0] != static {
		t.Error("static subtree should be shared with the input")
	}
	if got.Children[1] == dynamic {
		t.Error("subtree holding a component should be copied")
	}
	if tree.Children[1].Children[0].Children[0].Kind != vdom.KindComponent {
		t.Error("input tree was mutated")
	}

	plain := vdom.Div(vdom.P("a"), vdom.Div(vdom.Div(vdom.Span("deep"))))
	if Resolve(plain) != plain {
		t.Error("fully static tree should resolve to itself")
	}
}
