// Package live serves a component tree to browsers and keeps them in sync.
//
// The tree is mounted by an engine on an in-memory document held by the
// server. Browsers load the serialized page from GET /, then open a
// websocket on GET /ws. Interactive elements carry a data-hid attribute;
// the client script reports events on them as
//
//	{"hid": "h12", "event": "click", "value": ""}
//
// The server dispatches the event to the matching listener, which usually
// calls a state setter and re-renders the tree. Every connected browser then
// receives
//
//	{"type": "render", "html": "..."}
//
// and replaces the content of the root element. Failures are reported to
// the sender only, as {"type": "error", "code": "E020", "error": "..."}.
//
// POST /event accepts the same event JSON and answers with the render
// message, for clients that do not hold a websocket.
package live
