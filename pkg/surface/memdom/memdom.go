// Package memdom is an in-memory display surface.
//
// It backs tests, the render CLI and the live preview server: the engine
// projects onto a Document, the render package serializes it to HTML, and
// Dispatch delivers simulated user events to attached listeners.
package memdom

import (
	"fmt"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/vango-dev/vhook/pkg/surface"
	"github.com/vango-dev/vhook/pkg/vdom"
)

// TextTag is the tag reported by text nodes.
const TextTag = "#text"

// Event is delivered to listeners by Dispatch.
type Event struct {
	Type   string
	Value  string
	Target *Element
}

// Element is a node of an in-memory document.
type Element struct {
	id        uint64
	tag       string
	props     map[string]any
	listeners map[string][]any
	children  []*Element
	parent    *Element
}

// ID returns the node's document-unique identifier.
func (e *Element) ID() uint64 { return e.id }

// Tag returns the element tag, or TextTag for text nodes.
func (e *Element) Tag() string { return e.tag }

// IsText reports whether e is a text node.
func (e *Element) IsText() bool { return e.tag == TextTag }

// Parent returns the parent node, or nil when detached.
func (e *Element) Parent() *Element { return e.parent }

// Children returns a copy of the child list.
func (e *Element) Children() []*Element {
	out := make([]*Element, len(e.children))
	copy(out, e.children)
	return out
}

// Prop returns a property value.
func (e *Element) Prop(name string) (any, bool) {
	v, ok := e.props[name]
	return v, ok
}

// PropNames returns the names of all set properties in sorted order.
func (e *Element) PropNames() []string {
	names := make([]string, 0, len(e.props))
	for k := range e.props {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Listeners returns the handlers attached for eventType.
func (e *Element) Listeners(eventType string) []any {
	out := make([]any, len(e.listeners[eventType]))
	copy(out, e.listeners[eventType])
	return out
}

// EventTypes returns the event types with at least one listener, sorted.
func (e *Element) EventTypes() []string {
	types := make([]string, 0, len(e.listeners))
	for t, hs := range e.listeners {
		if len(hs) > 0 {
			types = append(types, t)
		}
	}
	sort.Strings(types)
	return types
}

// HasListeners reports whether any listener is attached.
func (e *Element) HasListeners() bool {
	for _, hs := range e.listeners {
		if len(hs) > 0 {
			return true
		}
	}
	return false
}

// TextContent concatenates the node values of all descendant text nodes.
func (e *Element) TextContent() string {
	var b strings.Builder
	e.writeText(&b)
	return b.String()
}

func (e *Element) writeText(b *strings.Builder) {
	if e.IsText() {
		if v, ok := e.props[vdom.NodeValueProp]; ok && v != nil {
			fmt.Fprint(b, v)
		}
		return
	}
	for _, c := range e.children {
		c.writeText(b)
	}
}

// Find returns the first node, in document order, for which match is true.
func (e *Element) Find(match func(*Element) bool) *Element {
	if match(e) {
		return e
	}
	for _, c := range e.children {
		if found := c.Find(match); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every node, in document order, for which match is true.
func (e *Element) FindAll(match func(*Element) bool) []*Element {
	var out []*Element
	e.walk(func(n *Element) {
		if match(n) {
			out = append(out, n)
		}
	})
	return out
}

func (e *Element) walk(fn func(*Element)) {
	fn(e)
	for _, c := range e.children {
		c.walk(fn)
	}
}

// ByTag matches elements with the given tag.
func ByTag(tag string) func(*Element) bool {
	return func(e *Element) bool { return e.tag == tag }
}

// ByID matches the node with the given identifier.
func ByID(id uint64) func(*Element) bool {
	return func(e *Element) bool { return e.id == id }
}

// Document is an in-memory display surface. It is not safe for concurrent
// use.
type Document struct {
	nextID atomic.Uint64
}

var _ surface.Surface = (*Document)(nil)

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{}
}

func (d *Document) newNode(tag string) *Element {
	return &Element{
		id:        d.nextID.Add(1),
		tag:       tag,
		props:     make(map[string]any),
		listeners: make(map[string][]any),
	}
}

// NewRoot creates a detached element to mount trees under.
func (d *Document) NewRoot(tag string) *Element {
	return d.newNode(tag)
}

// CreateElement implements surface.Surface.
func (d *Document) CreateElement(tag string) surface.Node {
	return d.newNode(tag)
}

// CreateText implements surface.Surface.
func (d *Document) CreateText() surface.Node {
	return d.newNode(TextTag)
}

// AppendChild implements surface.Surface. A child that already has a parent
// is moved.
func (d *Document) AppendChild(parent, child surface.Node) {
	p, c := el(parent), el(child)
	if c.parent != nil {
		c.parent.remove(c)
	}
	c.parent = p
	p.children = append(p.children, c)
}

// RemoveChild implements surface.Surface.
func (d *Document) RemoveChild(parent, child surface.Node) {
	p, c := el(parent), el(child)
	if c.parent != p {
		return
	}
	p.remove(c)
	c.parent = nil
}

func (e *Element) remove(c *Element) {
	for i, x := range e.children {
		if x == c {
			e.children = append(e.children[:i], e.children[i+1:]...)
			return
		}
	}
}

// ChildNodes implements surface.Surface.
func (d *Document) ChildNodes(parent surface.Node) []surface.Node {
	p := el(parent)
	out := make([]surface.Node, len(p.children))
	for i, c := range p.children {
		out[i] = c
	}
	return out
}

// SetProperty implements surface.Surface.
func (d *Document) SetProperty(node surface.Node, name string, value any) {
	el(node).props[name] = value
}

// ClearProperty implements surface.Surface.
func (d *Document) ClearProperty(node surface.Node, name string) {
	delete(el(node).props, name)
}

// AddEventListener implements surface.Surface.
func (d *Document) AddEventListener(node surface.Node, eventType string, handler any) {
	e := el(node)
	e.listeners[eventType] = append(e.listeners[eventType], handler)
}

// RemoveEventListener implements surface.Surface. The first listener that
// is the same value as handler is removed.
func (d *Document) RemoveEventListener(node surface.Node, eventType string, handler any) {
	e := el(node)
	hs := e.listeners[eventType]
	for i, h := range hs {
		if vdom.SameValue(h, handler) {
			e.listeners[eventType] = append(hs[:i], hs[i+1:]...)
			return
		}
	}
}

// Dispatch delivers an event of the given type to target's listeners and
// returns how many handlers were invoked. Supported handler signatures are
// func(), func(Event) and func(string) (receiving Event.Value).
func Dispatch(target *Element, eventType, value string) int {
	ev := Event{Type: eventType, Value: value, Target: target}
	called := 0
	for _, h := range target.Listeners(eventType) {
		switch fn := h.(type) {
		case func():
			fn()
		case func(Event):
			fn(ev)
		case func(string):
			fn(value)
		default:
			continue
		}
		called++
	}
	return called
}

func el(n surface.Node) *Element {
	e, ok := n.(*Element)
	if !ok {
		panic(fmt.Sprintf("memdom: foreign node %T", n))
	}
	return e
}
