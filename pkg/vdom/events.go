package vdom

import "strings"

// ChildrenProp is the structural property name. It is never projected onto
// a display node.
const ChildrenProp = "children"

// eventPrefix marks a property name as an event handler.
const eventPrefix = "on"

// EventHandler represents an event handler.
type EventHandler struct {
	Event   string // "onclick", "oninput", etc.
	Handler any    // Function to call
}

// event creates an EventHandler with the given name and handler.
// The name is prefixed with "on" (e.g., "click" becomes "onclick").
func event(name string, handler any) EventHandler {
	return EventHandler{Event: eventPrefix + name, Handler: handler}
}

// OnClick handles click events.
func OnClick(handler any) EventHandler { return event("click", handler) }

// OnInput handles input events.
func OnInput(handler any) EventHandler { return event("input", handler) }

// OnChange handles change events.
func OnChange(handler any) EventHandler { return event("change", handler) }

// OnSubmit handles form submit events.
func OnSubmit(handler any) EventHandler { return event("submit", handler) }

// OnKeyDown handles keydown events.
func OnKeyDown(handler any) EventHandler { return event("keydown", handler) }

// On handles an arbitrary event type.
func On(eventType string, handler any) EventHandler { return event(eventType, handler) }

// IsEventName reports whether a property name denotes an event handler.
func IsEventName(name string) bool {
	return len(name) > len(eventPrefix) && strings.HasPrefix(name, eventPrefix)
}

// IsPlainProperty reports whether a property name is neither structural nor
// an event handler.
func IsPlainProperty(name string) bool {
	return name != ChildrenProp && !IsEventName(name)
}

// IsRemoved returns a predicate matching names present in prev but absent
// from next.
func IsRemoved(prev, next Props) func(name string) bool {
	return func(name string) bool {
		_, ok := next[name]
		return !ok
	}
}

// IsChangedOrNew returns a predicate matching names whose value in next is
// new or differs from prev under SameValue.
func IsChangedOrNew(prev, next Props) func(name string) bool {
	return func(name string) bool {
		old, ok := prev[name]
		if !ok {
			return true
		}
		return !SameValue(old, next[name])
	}
}

// EventType derives the display-surface event type from a handler property
// name: the "on" prefix is stripped and the rest lower-cased.
func EventType(name string) string {
	if len(name) <= len(eventPrefix) {
		return ""
	}
	return strings.ToLower(name[len(eventPrefix):])
}
