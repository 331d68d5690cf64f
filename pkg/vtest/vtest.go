package vtest

import (
	"strings"
	"testing"

	"github.com/vango-dev/vhook/pkg/engine"
	"github.com/vango-dev/vhook/pkg/render"
	"github.com/vango-dev/vhook/pkg/surface/memdom"
	"github.com/vango-dev/vhook/pkg/vdom"
)

// Harness is a mounted component under test.
type Harness struct {
	t      testing.TB
	doc    *memdom.Document
	root   *memdom.Element
	engine *engine.Engine
}

// Mount renders component on a fresh document. Engine options are passed
// through, so metrics or a logger can be attached.
func Mount(t testing.TB, component vdom.Component, opts ...engine.Option) *Harness {
	t.Helper()
	doc := memdom.NewDocument()
	h := &Harness{
		t:      t,
		doc:    doc,
		root:   doc.NewRoot("div"),
		engine: engine.New(doc, opts...),
	}
	if err := h.engine.Mount(component, h.root); err != nil {
		t.Fatalf("mount: %v", err)
	}
	return h
}

// Root returns the mount point.
func (h *Harness) Root() *memdom.Element { return h.root }

// Engine returns the engine rendering the component.
func (h *Harness) Engine() *engine.Engine { return h.engine }

// Find returns the element with the given id property, or nil.
func (h *Harness) Find(id string) *memdom.Element {
	return h.root.Find(func(e *memdom.Element) bool {
		v, ok := e.Prop("id")
		return ok && v == id
	})
}

// Get is Find failing the test when the element is missing.
func (h *Harness) Get(id string) *memdom.Element {
	h.t.Helper()
	e := h.Find(id)
	if e == nil {
		h.t.Fatalf("no element with id %q in:\n%s", id, truncate(h.HTML(), 500))
	}
	return e
}

// Dispatch delivers an event to the element with the given id and fails
// the test when no listener handled it.
func (h *Harness) Dispatch(id, eventType, value string) {
	h.t.Helper()
	if n := memdom.Dispatch(h.Get(id), eventType, value); n == 0 {
		h.t.Fatalf("no %s listener on %q", eventType, id)
	}
}

// Click dispatches a click event.
func (h *Harness) Click(id string) {
	h.t.Helper()
	h.Dispatch(id, "click", "")
}

// Input dispatches an input event carrying value.
func (h *Harness) Input(id, value string) {
	h.t.Helper()
	h.Dispatch(id, "input", value)
}

// Text returns the text content of the element with the given id.
func (h *Harness) Text(id string) string {
	h.t.Helper()
	return h.Get(id).TextContent()
}

// HTML returns the serialized content of the mount point.
func (h *Harness) HTML() string {
	html, err := render.NewRenderer(render.RendererConfig{}).RenderChildrenToString(h.root)
	if err != nil {
		return ""
	}
	return html
}

// ExpectText asserts the text content of the element with the given id.
func (h *Harness) ExpectText(id, want string) {
	h.t.Helper()
	if got := h.Text(id); got != want {
		h.t.Errorf("text of %q = %q, want %q", id, got, want)
	}
}

// ExpectContains asserts that rendered output contains expected substring.
func (h *Harness) ExpectContains(expected string) {
	h.t.Helper()
	html := h.HTML()
	if !strings.Contains(html, expected) {
		h.t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that rendered output does not contain substring.
func (h *Harness) ExpectNotContains(unexpected string) {
	h.t.Helper()
	html := h.HTML()
	if strings.Contains(html, unexpected) {
		h.t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectElement asserts that rendered output contains a specific tag.
func (h *Harness) ExpectElement(tag string) {
	h.t.Helper()
	if h.root.Find(memdom.ByTag(tag)) == nil {
		h.t.Errorf("expected rendered output to contain <%s> element, got:\n%s", tag, truncate(h.HTML(), 500))
	}
}

// ExpectAttribute asserts a property value on the element with the given id.
func (h *Harness) ExpectAttribute(id, name string, want any) {
	h.t.Helper()
	got, _ := h.Get(id).Prop(name)
	if !vdom.SameValue(got, want) {
		h.t.Errorf("%s of %q = %v, want %v", name, id, got, want)
	}
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
