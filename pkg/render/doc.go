// Package render serializes a display tree to HTML.
//
// The input is the in-memory display tree produced by the engine on a
// memdom surface, so the output always reflects what was last projected,
// state included.
//
//   - HTML5 element rendering with void and boolean attribute handling
//   - Text and attribute escaping
//   - Hydration IDs on elements carrying event listeners
//   - Full page rendering with DOCTYPE, head and inline scripts
//
// # Basic Usage
//
//	renderer := render.NewRenderer(render.RendererConfig{})
//	html, err := renderer.RenderChildrenToString(root)
//
// # Hydration IDs
//
// An element with at least one listener is rendered with
// data-hid="h<id>", where id is its memdom node id, plus one
// data-on-<event> marker per event type. ParseHID maps the attribute back
// to the node id so a client can address the element in event messages.
package render
