// Package reconcile resolves component nodes into host-element trees.
//
// Resolution is a single top-down pass. Component nodes are invoked and
// their output resolved in turn; element and fragment nodes are copied with
// resolved children; text nodes pass through. The input tree is never
// modified: every call builds a fresh resolved tree, so the same static input
// resolved twice yields structurally equal results.
package reconcile

import "github.com/vango-dev/vhook/pkg/vdom"

// Resolve returns the resolved form of node. The result contains only
// element, text and fragment nodes. A nil node, or a component returning nil,
// resolves to nil.
func Resolve(node *vdom.VNode) *vdom.VNode {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case vdom.KindText:
		return node
	case vdom.KindComponent:
		if node.Comp == nil {
			return nil
		}
		return Resolve(node.Comp())
	case vdom.KindElement, vdom.KindFragment:
		children, changed := resolveChildren(node.Children)
		if !changed {
			return node
		}
		out := node.Clone()
		out.Children = children
		return out
	default:
		return node
	}
}

// ResolveAll resolves each node of a sequence, preserving order. Nodes that
// resolve to nil keep their position as nil entries.
func ResolveAll(nodes []*vdom.VNode) []*vdom.VNode {
	out := make([]*vdom.VNode, len(nodes))
	for i, n := range nodes {
		out[i] = Resolve(n)
	}
	return out
}

// resolveChildren resolves nodes and reports whether any entry differs from
// its input. Fully static subtrees are shared with the input instead of
// copied.
func resolveChildren(nodes []*vdom.VNode) ([]*vdom.VNode, bool) {
	var out []*vdom.VNode
	for i, n := range nodes {
		r := Resolve(n)
		if out == nil {
			if r == n {
				continue
			}
			out = make([]*vdom.VNode, len(nodes))
			copy(out, nodes[:i])
		}
		out[i] = r
	}
	if out == nil {
		return nodes, false
	}
	return out, true
}
