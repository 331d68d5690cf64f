package hooks

import (
	"log/slog"

	"github.com/vango-dev/vhook/internal/errors"
	"github.com/vango-dev/vhook/pkg/vdom"
)

// HookType identifies the hook that first wrote a slot.
type HookType uint8

const (
	HookState HookType = iota + 1
	HookEffect
)

// String returns a human-readable name for the hook type.
func (h HookType) String() string {
	switch h {
	case HookState:
		return "State"
	case HookEffect:
		return "Effect"
	default:
		return "Unknown"
	}
}

// Observer receives hook activity, typically for metrics.
type Observer interface {
	// StateSet is called for every setter invocation. applied is false when
	// the new value was the same value as the stored one.
	StateSet(index int, applied bool)

	// EffectRan is called after an effect callback returns.
	EffectRan(index int)
}

type slot struct {
	value any
	kind  HookType
}

// Store holds the hook slots of one mounted tree.
// A Store is not safe for concurrent use; a tree renders on one goroutine
// at a time.
type Store struct {
	slots  []slot
	cursor int
	depth  int

	// superseded has one entry per active pass, innermost last. A pass is
	// superseded once a pass nested inside it has finished.
	superseded []bool

	rerender   func()
	observer   Observer
	checkOrder bool
	logger     *slog.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithRerender sets the callback invoked when a setter changes a slot.
func WithRerender(fn func()) StoreOption {
	return func(s *Store) {
		s.rerender = fn
	}
}

// WithObserver sets the observer notified of setter calls and effect runs.
func WithObserver(o Observer) StoreOption {
	return func(s *Store) {
		s.observer = o
	}
}

// WithOrderCheck enables hook-order diagnostics. Mismatches are logged, not
// enforced.
func WithOrderCheck(enabled bool) StoreOption {
	return func(s *Store) {
		s.checkOrder = enabled
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates an empty Store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default().With("component", "hooks")
	}
	return s
}

// Len returns the number of written slots.
func (s *Store) Len() int {
	return len(s.slots)
}

// Cursor returns the index the next hook call will use.
func (s *Store) Cursor() int {
	return s.cursor
}

// Slot returns the raw content of slot i.
func (s *Store) Slot(i int) (any, bool) {
	if i < 0 || i >= len(s.slots) {
		return nil, false
	}
	return s.slots[i].value, true
}

// Rendering reports whether a render pass is in progress.
func (s *Store) Rendering() bool {
	return s.depth > 0
}

// Superseded reports whether the innermost active pass was overtaken by a
// nested pass.
func (s *Store) Superseded() bool {
	n := len(s.superseded)
	return n > 0 && s.superseded[n-1]
}

// Reset moves the cursor back to the first slot.
func (s *Store) Reset() {
	s.cursor = 0
}

// BeginRender starts a (possibly nested) render pass and resets the cursor.
// It returns the cursor of the enclosing pass, to be handed to EndRender.
func (s *Store) BeginRender() int {
	prev := s.cursor
	s.depth++
	s.cursor = 0
	s.superseded = append(s.superseded, false)
	return prev
}

// EndRender finishes a render pass. A nested pass restores the enclosing
// pass's cursor so it can continue where it left off.
//
// When a nested pass ends, every enclosing pass is marked superseded: the
// nested pass already rendered newer state, so the rest of the enclosing
// pass neither runs effects nor writes slots.
func (s *Store) EndRender(prev int) {
	s.depth--
	if n := len(s.superseded); n > 0 {
		s.superseded = s.superseded[:n-1]
	}
	if s.depth > 0 {
		s.cursor = prev
		for i := range s.superseded {
			s.superseded[i] = true
		}
		return
	}
	if s.checkOrder && s.cursor != len(s.slots) {
		s.logger.Warn("hook count changed between renders",
			"code", "E002",
			"expected", len(s.slots),
			"got", s.cursor,
		)
	}
}

// next claims the slot under the cursor and advances it.
func (s *Store) next(kind HookType) (idx int, value any, written bool) {
	idx = s.cursor
	s.cursor++

	if idx >= len(s.slots) {
		return idx, nil, false
	}

	sl := s.slots[idx]
	if s.checkOrder && sl.kind != kind {
		s.logger.Warn(errors.New("E002").Message,
			"code", "E002",
			"index", idx,
			"expected", sl.kind.String(),
			"got", kind.String(),
		)
	}
	return idx, sl.value, true
}

// write stores value at idx. The slot's hook type is fixed by its first
// writer.
func (s *Store) write(idx int, kind HookType, value any) {
	if idx < len(s.slots) {
		s.slots[idx].value = value
		return
	}
	for len(s.slots) < idx {
		s.slots = append(s.slots, slot{})
	}
	s.slots = append(s.slots, slot{value: value, kind: kind})
}

// set is the setter path shared by all state hooks.
func (s *Store) set(idx int, value any) {
	if idx < len(s.slots) && vdom.SameValue(s.slots[idx].value, value) {
		if s.observer != nil {
			s.observer.StateSet(idx, false)
		}
		return
	}

	s.write(idx, HookState, value)
	if s.depth == 0 {
		s.cursor = 0
	}
	if s.observer != nil {
		s.observer.StateSet(idx, true)
	}
	if s.rerender != nil {
		s.rerender()
	}
}
