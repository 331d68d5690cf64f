// Package engine is the render orchestrator.
//
// An Engine owns everything that belongs to one mounted tree: the hook
// store, the render context (last root and top-level node), and the
// projector writing to a display surface. Independent engines never share
// state, so several trees can be mounted side by side.
//
// # Render Cycle
//
//	eng := engine.New(doc)
//	err := eng.Render(vdom.H(App, nil), root)
//
// Every pass clears root, resolves the whole tree with the store bound,
// materializes the resolved tree and appends it under root. A state setter
// that changes a slot calls Rerender, which repeats the pass with the
// remembered context. There is no diffing, batching or scheduling: a pass
// runs synchronously to completion, effects included.
//
// # Re-entrancy
//
// An effect that sets state re-enters the engine on the same goroutine. The
// nested pass runs immediately and projects its result; the enclosing pass
// then finishes resolution with its cursor restored and skips projection,
// since the display already reflects newer state.
//
// # Observability
//
// Each pass is traced as a "vhook.render" span through the OpenTelemetry
// global tracer provider (or WithTracer), and counted by Metrics when
// WithMetrics is supplied.
package engine
