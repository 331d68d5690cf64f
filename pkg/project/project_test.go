package project

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/vhook/pkg/surface"
	"github.com/vango-dev/vhook/pkg/surface/memdom"
	"github.com/vango-dev/vhook/pkg/vdom"
)

// recorder is a surface that logs every call, for checking operation order.
type recorder struct {
	*memdom.Document
	ops []string
}

func (r *recorder) SetProperty(n surface.Node, name string, v any) {
	r.ops = append(r.ops, "set:"+name)
	r.Document.SetProperty(n, name, v)
}

func (r *recorder) ClearProperty(n surface.Node, name string) {
	r.ops = append(r.ops, "clear:"+name)
	r.Document.ClearProperty(n, name)
}

func (r *recorder) AddEventListener(n surface.Node, typ string, h any) {
	r.ops = append(r.ops, "add:"+typ)
	r.Document.AddEventListener(n, typ, h)
}

func (r *recorder) RemoveEventListener(n surface.Node, typ string, h any) {
	r.ops = append(r.ops, "remove:"+typ)
	r.Document.RemoveEventListener(n, typ, h)
}

func TestMaterializeElementTree(t *testing.T) {
	doc := memdom.NewDocument()
	p := New(doc)

	clicked := 0
	tree := vdom.Div(vdom.Class("card"),
		vdom.H1("Title"),
		vdom.Button(vdom.OnClick(func() { clicked++ }), "Go"),
	)

	nodes := p.Materialize(tree)
	if len(nodes) != 1 {
		t.Fatalf("nodes = %d, want 1", len(nodes))
	}
	root := nodes[0].(*memdom.Element)

	if root.Tag() != "div" {
		t.Errorf("tag = %q, want div", root.Tag())
	}
	if v, _ := root.Prop("className"); v != "card" {
		t.Errorf("className = %v", v)
	}
	if got := root.TextContent(); got != "TitleGo" {
		t.Errorf("TextContent = %q, want TitleGo", got)
	}

	btn := root.Find(memdom.ByTag("button"))
	if memdom.Dispatch(btn, "click", "") != 1 || clicked != 1 {
		t.Errorf("click listener not attached (clicked=%d)", clicked)
	}
}

func TestMaterializeTextNode(t *testing.T) {
	doc := memdom.NewDocument()
	nodes := New(doc).Materialize(vdom.Text(7))
	n := nodes[0].(*memdom.Element)

	if !n.IsText() {
		t.Fatalf("want text node, got %q", n.Tag())
	}
	if v, _ := n.Prop(vdom.NodeValueProp); v != 7 {
		t.Errorf("nodeValue = %v, want 7", v)
	}
}

func TestMaterializeNilIsEmptyContainer(t *testing.T) {
	doc := memdom.NewDocument()
	nodes := New(doc).Materialize(nil)

	n := nodes[0].(*memdom.Element)
	if n.Tag() != EmptyContainerTag || len(n.Children()) != 0 {
		t.Errorf("got <%s> with %d children", n.Tag(), len(n.Children()))
	}
}

func TestMaterializeFragmentFlattens(t *testing.T) {
	doc := memdom.NewDocument()
	p := New(doc)
	root := doc.NewRoot("ul")

	tree := vdom.Fragment(
		vdom.Li("a"),
		vdom.Fragment(vdom.Li("b"), vdom.Li("c")),
		vdom.Li("d"),
	)
	if n := len(p.MountInto(root, tree)); n != 4 {
		t.Fatalf("mounted %d nodes, want 4", n)
	}

	var got []string
	for _, c := range root.Children() {
		got = append(got, c.TextContent())
	}
	if diff := cmp.Diff([]string{"a", "b", "c", "d"}, got); diff != "" {
		t.Errorf("sibling order mismatch (-want +got):\n%s", diff)
	}
}

func TestChildrenPropIsNeverProjected(t *testing.T) {
	doc := memdom.NewDocument()
	n := New(doc).Materialize(vdom.H("div", vdom.Props{vdom.ChildrenProp: "x", "id": "a"}))[0].(*memdom.Element)

	if _, ok := n.Prop(vdom.ChildrenProp); ok {
		t.Error("children prop should not be set on the display node")
	}
	if v, _ := n.Prop("id"); v != "a" {
		t.Errorf("id = %v", v)
	}
}

func TestSyncPropsOrder(t *testing.T) {
	rec := &recorder{Document: memdom.NewDocument()}
	p := New(rec)
	node := rec.NewRoot("input")

	oldClick := func() {}
	newClick := func() {}
	keep := func() {}

	prev := vdom.Props{"value": "a", "title": "t", "onclick": oldClick, "onfocus": keep, "onblur": keep}
	next := vdom.Props{"value": "b", "onclick": newClick, "onfocus": keep, "placeholder": "p"}

	p.SyncProps(node, nil, prev)
	rec.ops = nil
	p.SyncProps(node, prev, next)

	phase := func(op string) int {
		switch op[:3] {
		case "rem":
			return 0
		case "cle":
			return 1
		case "set":
			return 2
		default:
			return 3
		}
	}
	for i := 1; i < len(rec.ops); i++ {
		if phase(rec.ops[i-1]) > phase(rec.ops[i]) {
			t.Fatalf("operations out of order: %v", rec.ops)
		}
	}

	count := map[string]int{}
	for _, op := range rec.ops {
		count[op]++
	}
	want := map[string]int{
		"remove:click":    1,
		"remove:blur":     1,
		"clear:title":     1,
		"set:value":       1,
		"set:placeholder": 1,
		"add:click":       1,
	}
	if diff := cmp.Diff(want, count); diff != "" {
		t.Errorf("operations mismatch (-want +got):\n%s", diff)
	}

	if got := len(node.Listeners("click")); got != 1 {
		t.Errorf("click listeners = %d, want 1", got)
	}
	if got := len(node.Listeners("focus")); got != 1 {
		t.Errorf("focus listeners = %d, want 1", got)
	}
	if _, ok := node.Prop("title"); ok {
		t.Error("title should be cleared")
	}
}
