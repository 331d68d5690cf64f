// Package hooks implements positional state and effect hooks.
//
// A Store is an ordered list of slots plus a cursor. Each hook call during a
// render consumes the slot under the cursor and advances it by one, so a
// hook's identity is purely its call position. Components must therefore call
// the same hooks in the same order on every render; calling hooks
// conditionally silently re-purposes slots.
//
// # Binding
//
// Hooks find their store through the goroutine-bound active store installed
// with Enter. The render engine binds its store for the duration of a pass:
//
//	restore := hooks.Enter(store)
//	prev := store.BeginRender()
//	tree := resolve(...)
//	store.EndRender(prev)
//	restore()
//
// Calling a hook with no active store panics with error E001.
//
// # State
//
//	count, setCount := hooks.UseState(0)
//
// The setter compares the new value with the stored one using
// vdom.SameValue. Equal writes are ignored; any other write stores the value,
// resets the cursor and invokes the store's re-render callback synchronously.
//
// # Effects
//
//	hooks.UseEffect(func() { ... }, []any{count})
//
// The callback runs during the render, before UseEffect returns, on first use
// and whenever the dependency list differs positionally from the previous one.
// A nil list runs on every render; an empty non-nil list runs once. There is
// no cleanup callback.
//
// An effect that always changes state it depends on re-renders recursively
// without bound. Nothing detects this at runtime.
package hooks
