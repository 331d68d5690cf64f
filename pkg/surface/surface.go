// Package surface defines the display surface the projector writes to.
//
// A display surface is a mutable tree of host nodes (a browser DOM, a
// terminal widget tree, an in-memory document). The engine treats its nodes
// as opaque handles and only talks to the surface through this interface.
package surface

// Node is an opaque handle to a display node owned by a Surface.
type Node any

// Surface creates and mutates display nodes.
type Surface interface {
	// CreateElement creates a detached host element node.
	CreateElement(tag string) Node

	// CreateText creates a detached, empty text node. Its content is set
	// through the nodeValue property.
	CreateText() Node

	// AppendChild appends child as the last child of parent.
	AppendChild(parent, child Node)

	// RemoveChild detaches child from parent.
	RemoveChild(parent, child Node)

	// ChildNodes returns the current children of parent, in order.
	ChildNodes(parent Node) []Node

	// SetProperty sets a plain property.
	SetProperty(node Node, name string, value any)

	// ClearProperty resets a plain property to its empty value.
	ClearProperty(node Node, name string)

	// AddEventListener attaches handler for eventType.
	AddEventListener(node Node, eventType string, handler any)

	// RemoveEventListener detaches handler for eventType.
	RemoveEventListener(node Node, eventType string, handler any)
}

// Clear removes every child of parent.
func Clear(s Surface, parent Node) {
	for _, child := range s.ChildNodes(parent) {
		s.RemoveChild(parent, child)
	}
}
