// Package vhook provides the public API for the vhook rendering engine.
//
// This is the recommended import for component authors:
//
//	import "github.com/vango-dev/vhook"
//
// Usage:
//
//	func Counter() *vhook.VNode {
//	    count, setCount := vhook.UseState(0)
//	    return vhook.H("button", vhook.Props{"onclick": func() { setCount(count + 1) }}, count)
//	}
//
//	vhook.SetSurface(doc)
//	err := vhook.Render(vhook.H(Counter, nil), root)
package vhook

import (
	"sync"

	"github.com/vango-dev/vhook/pkg/engine"
	"github.com/vango-dev/vhook/pkg/hooks"
	"github.com/vango-dev/vhook/pkg/surface"
	"github.com/vango-dev/vhook/pkg/surface/memdom"
	"github.com/vango-dev/vhook/pkg/vdom"
)

// =============================================================================
// Virtual nodes (re-export from pkg/vdom)
// =============================================================================

// VNode is a virtual node.
type VNode = vdom.VNode

// Props are the properties of a virtual node.
type Props = vdom.Props

// Component is a function producing a virtual node.
type Component = vdom.Component

// H creates a virtual node. kind is a tag name or a component function.
func H(kind any, props Props, children ...any) *VNode {
	return vdom.H(kind, props, children...)
}

// Text creates a text node.
func Text(v any) *VNode {
	return vdom.Text(v)
}

// Fragment groups children without a wrapper element.
func Fragment(children ...any) *VNode {
	return vdom.Fragment(children...)
}

// =============================================================================
// Hooks (re-export from pkg/hooks)
// =============================================================================

// UseState returns persistent state for the current call position and a
// setter that re-renders the tree when the value changes.
func UseState[T any](initial T) (T, func(T)) {
	return hooks.UseState(initial)
}

// UseStateFunc is UseState with an updater-style setter.
func UseStateFunc[T any](initial T) (T, func(func(T) T)) {
	return hooks.UseStateFunc(initial)
}

// UseEffect runs fn when deps changed since the previous render.
// A nil deps runs fn on every render; an empty deps runs it once.
func UseEffect(fn func(), deps []any) {
	hooks.UseEffect(fn, deps)
}

// =============================================================================
// Rendering
// =============================================================================

var (
	defaultMu     sync.Mutex
	defaultEngine *engine.Engine
)

// SetSurface replaces the default engine with one projecting onto s.
// Hook state of the previous default engine is discarded.
func SetSurface(s surface.Surface, opts ...engine.Option) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultEngine = engine.New(s, opts...)
}

// Default returns the engine used by Render. Without SetSurface it
// projects onto a fresh in-memory document.
func Default() *engine.Engine {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultEngine == nil {
		defaultEngine = engine.New(memdom.NewDocument())
	}
	return defaultEngine
}

// Render mounts component under root with the default engine, replacing
// root's previous content.
func Render(component *VNode, root surface.Node) error {
	return Default().Render(component, root)
}

// New creates an independent engine projecting onto s. Each engine keeps
// its own hook state.
func New(s surface.Surface, opts ...engine.Option) *engine.Engine {
	return engine.New(s, opts...)
}
