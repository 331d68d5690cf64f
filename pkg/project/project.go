// Package project materializes resolved virtual trees onto a display
// surface.
//
// The projector only ever builds fresh display subtrees: every render
// discards the previous display content and materializes the whole resolved
// tree again. SyncProps nevertheless implements the general previous/next
// property synchronization so a diffing layer can reuse it.
package project

import (
	"github.com/vango-dev/vhook/pkg/surface"
	"github.com/vango-dev/vhook/pkg/vdom"
)

// EmptyContainerTag is the tag materialized for an absent node.
const EmptyContainerTag = "div"

// Projector turns resolved nodes into display nodes.
type Projector struct {
	surface surface.Surface
}

// New creates a Projector writing to s.
func New(s surface.Surface) *Projector {
	return &Projector{surface: s}
}

// Surface returns the display surface the projector writes to.
func (p *Projector) Surface() surface.Surface {
	return p.surface
}

// Materialize creates the display nodes for a resolved node.
//
// Text and element nodes yield one display node. A fragment yields its
// children's display nodes, flattened, in order. A nil node yields an empty
// container element. Component nodes must be resolved beforehand; an
// unresolved one is materialized as an empty container.
func (p *Projector) Materialize(n *vdom.VNode) []surface.Node {
	if n == nil {
		return []surface.Node{p.surface.CreateElement(EmptyContainerTag)}
	}

	switch n.Kind {
	case vdom.KindFragment:
		out := make([]surface.Node, 0, len(n.Children))
		for _, c := range n.Children {
			out = append(out, p.Materialize(c)...)
		}
		return out
	case vdom.KindText:
		node := p.surface.CreateText()
		p.SyncProps(node, nil, n.Props)
		return []surface.Node{node}
	case vdom.KindElement:
		node := p.surface.CreateElement(n.Tag)
		p.SyncProps(node, nil, n.Props)
		for _, c := range n.Children {
			for _, child := range p.Materialize(c) {
				p.surface.AppendChild(node, child)
			}
		}
		return []surface.Node{node}
	default:
		return []surface.Node{p.surface.CreateElement(EmptyContainerTag)}
	}
}

// MountInto materializes n and appends the result under parent.
func (p *Projector) MountInto(parent surface.Node, n *vdom.VNode) []surface.Node {
	nodes := p.Materialize(n)
	for _, node := range nodes {
		p.surface.AppendChild(parent, node)
	}
	return nodes
}

// SyncProps brings node's properties and listeners from prev to next:
// stale listeners are removed, vanished plain properties cleared, new or
// changed plain properties set, then new or changed listeners attached.
func (p *Projector) SyncProps(node surface.Node, prev, next vdom.Props) {
	removed := vdom.IsRemoved(prev, next)
	changed := vdom.IsChangedOrNew(prev, next)

	for name, handler := range prev {
		if vdom.IsEventName(name) && (removed(name) || changed(name)) {
			p.surface.RemoveEventListener(node, vdom.EventType(name), handler)
		}
	}

	for name := range prev {
		if vdom.IsPlainProperty(name) && removed(name) {
			p.surface.ClearProperty(node, name)
		}
	}

	for name, value := range next {
		if vdom.IsPlainProperty(name) && changed(name) {
			p.surface.SetProperty(node, name, value)
		}
	}

	for name, handler := range next {
		if vdom.IsEventName(name) && changed(name) {
			p.surface.AddEventListener(node, vdom.EventType(name), handler)
		}
	}
}
