package vdom

import "fmt"

// H builds a virtual node.
//
// kind is a tag name (string), a Component, or a plain func() *VNode. Any
// other value becomes a host element tagged with its printed form; kinds are
// not validated. The props map is copied. Children are normalized by
// normalizeChild: nodes are kept, node sequences become fragments, nil is
// dropped and every other value is wrapped into a text node.
func H(kind any, props Props, children ...any) *VNode {
	node := &VNode{
		Props:    copyProps(props),
		Children: make([]*VNode, 0, len(children)),
	}

	switch k := kind.(type) {
	case string:
		node.Kind = KindElement
		node.Tag = k
	case Component:
		node.Kind = KindComponent
		node.Comp = k
	case func() *VNode:
		node.Kind = KindComponent
		node.Comp = k
	default:
		node.Kind = KindElement
		node.Tag = fmt.Sprint(k)
	}

	for _, child := range children {
		if c := normalizeChild(child); c != nil {
			node.Children = append(node.Children, c)
		}
	}

	return node
}

// normalizeChild turns a caller-supplied child into a node.
func normalizeChild(child any) *VNode {
	switch v := child.(type) {
	case nil:
		return nil
	case *VNode:
		return v
	case []*VNode:
		frag := &VNode{Kind: KindFragment, Children: make([]*VNode, 0, len(v))}
		for _, c := range v {
			if c != nil {
				frag.Children = append(frag.Children, c)
			}
		}
		return frag
	case []any:
		return Fragment(v...)
	case Component:
		return &VNode{Kind: KindComponent, Comp: v}
	case func() *VNode:
		return &VNode{Kind: KindComponent, Comp: v}
	default:
		return Text(v)
	}
}

func copyProps(p Props) Props {
	out := make(Props, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// createElement creates a new VNode with the given tag and arguments.
// Arguments can be: nil, Attr, []Attr, Props, EventHandler, or any child
// accepted by H.
func createElement(tag string, args []any) *VNode {
	props := make(Props)
	children := make([]any, 0, len(args))

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			// Ignore nil (allows conditional attributes)
			continue
		case Attr:
			if v.Key != "" {
				props[v.Key] = v.Value
			}
		case []Attr:
			for _, a := range v {
				if a.Key != "" {
					props[a.Key] = a.Value
				}
			}
		case Props:
			for k, val := range v {
				props[k] = val
			}
		case EventHandler:
			props[v.Event] = v.Handler
		default:
			children = append(children, v)
		}
	}

	return H(tag, props, children...)
}

// Content elements

func Div(args ...any) *VNode     { return createElement("div", args) }
func Span(args ...any) *VNode    { return createElement("span", args) }
func P(args ...any) *VNode       { return createElement("p", args) }
func H1(args ...any) *VNode      { return createElement("h1", args) }
func H2(args ...any) *VNode      { return createElement("h2", args) }
func Section(args ...any) *VNode { return createElement("section", args) }
func Main(args ...any) *VNode    { return createElement("main", args) }
func Strong(args ...any) *VNode  { return createElement("strong", args) }

// List elements

func Ul(args ...any) *VNode { return createElement("ul", args) }
func Ol(args ...any) *VNode { return createElement("ol", args) }
func Li(args ...any) *VNode { return createElement("li", args) }

// Form elements

func Form(args ...any) *VNode   { return createElement("form", args) }
func Button(args ...any) *VNode { return createElement("button", args) }
func Input(args ...any) *VNode  { return createElement("input", args) }
func Label(args ...any) *VNode  { return createElement("label", args) }
