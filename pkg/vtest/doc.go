// Package vtest provides testing helpers for hook-based components.
//
// A Harness mounts a component on an in-memory document, lets a test drive
// it with simulated events, and asserts on the serialized output.
//
// # Quick Start
//
//	func TestCounter(t *testing.T) {
//	    h := vtest.Mount(t, Counter)
//	    h.Click("inc")
//	    h.Click("inc")
//	    h.ExpectText("count", "2")
//	    h.ExpectContains(`<button id="inc"`)
//	}
//
// Elements are addressed by their id property. Every event re-looks the
// element up, since each render pass builds fresh display nodes.
package vtest
