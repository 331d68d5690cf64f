// Package vdom provides the virtual node model for vhook.
//
// A VNode is an immutable description of a piece of UI. Every component
// invocation builds fresh nodes; nothing in this package mutates a node once
// it has been returned to the caller.
//
// # Core Types
//
// VNode is a tagged variant discriminated by VKind: host elements, text
// nodes, component references and fragments (ordered node sequences). Props
// holds plain properties and event handlers. Component is a render function
// invoked without arguments.
//
// # Building Nodes
//
// H is the general builder. It accepts a tag name or a component, a property
// map and a variadic list of children:
//
//	H("div", Props{"className": "card"},
//	    H("h1", nil, "Title"),
//	    "plain text becomes a text node",
//	)
//
// Element helpers accept the teacher-style variadic mix of attributes,
// event handlers and children:
//
//	Div(Class("card"), OnClick(handler),
//	    H1(Text("Title")),
//	)
//
// # Property Classification
//
// IsEventName, IsPlainProperty, IsRemoved and IsChangedOrNew classify
// property names for the display projector. SameValue implements the
// equality used both here and by the hook store.
package vdom
