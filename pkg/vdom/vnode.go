package vdom

import "fmt"

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement   VKind = iota // <div>, <button>, etc.
	KindText                   // Text node carrying a nodeValue property
	KindComponent              // Unresolved component reference
	KindFragment               // Ordered sequence of sibling nodes
)

// TextTag is the reserved tag carried by text nodes.
const TextTag = "TEXT_ELEMENT"

// NodeValueProp is the property under which a text node stores its raw value.
const NodeValueProp = "nodeValue"

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindComponent:
		return "Component"
	case KindFragment:
		return "Fragment"
	default:
		return "Unknown"
	}
}

// Component is a render function. Components are invoked without arguments;
// anything they need comes from closures or hooks.
type Component func() *VNode

// VNode is the virtual node.
type VNode struct {
	Kind     VKind     // Node type
	Tag      string    // Element tag name, or TextTag for text nodes
	Props    Props     // Plain properties and event handlers
	Children []*VNode  // Child nodes, in order
	Comp     Component // For KindComponent
}

// Props holds plain properties and event handlers.
type Props map[string]any

// IsPrimitive reports whether the node needs no further resolution,
// i.e. it is a host element or a text node.
func (v *VNode) IsPrimitive() bool {
	return v != nil && (v.Kind == KindElement || v.Kind == KindText)
}

// NodeValue returns the raw value of a text node, or nil for other kinds.
func (v *VNode) NodeValue() any {
	if v == nil || v.Kind != KindText {
		return nil
	}
	return v.Props[NodeValueProp]
}

// String renders a compact, debug-oriented description of the node.
func (v *VNode) String() string {
	if v == nil {
		return "<nil>"
	}
	switch v.Kind {
	case KindText:
		return fmt.Sprintf("%q", fmt.Sprint(v.NodeValue()))
	case KindComponent:
		return "<component>"
	case KindFragment:
		return fmt.Sprintf("<fragment %d>", len(v.Children))
	default:
		return fmt.Sprintf("<%s %d>", v.Tag, len(v.Children))
	}
}

// Clone returns a shallow copy of the node with its own Children slice.
// Props are shared; they are never mutated after construction.
func (v *VNode) Clone() *VNode {
	if v == nil {
		return nil
	}
	c := *v
	if v.Children != nil {
		c.Children = make([]*VNode, len(v.Children))
		copy(c.Children, v.Children)
	}
	return &c
}
