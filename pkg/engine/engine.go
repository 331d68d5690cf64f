package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/vhook/internal/errors"
	"github.com/vango-dev/vhook/pkg/hooks"
	"github.com/vango-dev/vhook/pkg/project"
	"github.com/vango-dev/vhook/pkg/reconcile"
	"github.com/vango-dev/vhook/pkg/surface"
	"github.com/vango-dev/vhook/pkg/vdom"
)

// Default tracer name for render spans.
const defaultTracerName = "vhook"

// Render triggers, as recorded on spans and metrics.
const (
	TriggerExplicit = "explicit"
	TriggerSetter   = "setter"
)

// State is the engine's render state.
type State uint8

const (
	StateIdle State = iota
	StateRendering
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateRendering:
		return "Rendering"
	default:
		return "Unknown"
	}
}

// RenderContext is what a setter-triggered re-render repeats.
type RenderContext struct {
	Root      surface.Node
	Component *vdom.VNode
}

// Engine renders one tree onto a display surface.
// An Engine is not safe for concurrent use.
type Engine struct {
	store     *hooks.Store
	projector *project.Projector

	ctx        RenderContext
	hasCtx     bool
	generation uint64
	passes     int

	logger     *slog.Logger
	metrics    *Metrics
	tracer     trace.Tracer
	checkOrder bool
	onRender   []func(root surface.Node)
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMetrics records render activity in m.
func WithMetrics(m *Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithTracer sets the tracer used for render spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(e *Engine) {
		e.tracer = tracer
	}
}

// WithHookOrderCheck enables hook-order diagnostics on the store.
func WithHookOrderCheck(enabled bool) Option {
	return func(e *Engine) {
		e.checkOrder = enabled
	}
}

// OnRender registers fn to run after every projection.
func OnRender(fn func(root surface.Node)) Option {
	return func(e *Engine) {
		e.onRender = append(e.onRender, fn)
	}
}

// New creates an Engine projecting onto s.
func New(s surface.Surface, opts ...Option) *Engine {
	e := &Engine{
		projector: project.New(s),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default().With("component", "engine")
	}
	if e.tracer == nil {
		e.tracer = otel.Tracer(defaultTracerName)
	}

	e.store = hooks.NewStore(
		hooks.WithRerender(e.rerenderFromSetter),
		hooks.WithObserver(e),
		hooks.WithOrderCheck(e.checkOrder),
		hooks.WithLogger(e.logger),
	)
	return e
}

// Store returns the engine's hook store.
func (e *Engine) Store() *hooks.Store {
	return e.store
}

// Context returns the remembered render context and whether one is set.
func (e *Engine) Context() (RenderContext, bool) {
	return e.ctx, e.hasCtx
}

// State reports whether a render pass is in progress.
func (e *Engine) State() State {
	if e.store.Rendering() {
		return StateRendering
	}
	return StateIdle
}

// Passes returns the number of completed projections.
func (e *Engine) Passes() int {
	return e.passes
}

// Render mounts component under root, replacing root's previous content,
// and remembers both for setter-triggered re-renders.
//
// Panics raised by components or effects propagate to the caller; root may
// then be left cleared or partially rebuilt.
func (e *Engine) Render(component *vdom.VNode, root surface.Node) error {
	if root == nil {
		return errors.New("E003")
	}
	if component == nil {
		return errors.New("E004")
	}

	e.ctx = RenderContext{Root: root, Component: component}
	e.hasCtx = true
	e.render(TriggerExplicit)
	return nil
}

// Mount is Render for a bare component function.
func (e *Engine) Mount(component vdom.Component, root surface.Node) error {
	if component == nil {
		return errors.New("E004")
	}
	return e.Render(vdom.H(component, nil), root)
}

// Rerender repeats the last render with the remembered context.
func (e *Engine) Rerender() error {
	if !e.hasCtx {
		return errors.New("E005")
	}
	e.render(TriggerSetter)
	return nil
}

func (e *Engine) rerenderFromSetter() {
	if err := e.Rerender(); err != nil {
		e.logger.Error("re-render failed", "error", err)
	}
}

// render performs one full pass over the remembered context.
func (e *Engine) render(trigger string) {
	rc := e.ctx
	e.generation++
	gen := e.generation

	_, span := e.tracer.Start(context.Background(), "vhook.render",
		trace.WithAttributes(
			attribute.String("vhook.trigger", trigger),
			attribute.Int64("vhook.generation", int64(gen)),
			attribute.Bool("vhook.nested", e.store.Rendering()),
		),
	)
	defer span.End()

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			span.SetStatus(codes.Error, fmt.Sprint(r))
			e.metrics.renderFailed()
			panic(r)
		}
	}()

	surface.Clear(e.projector.Surface(), rc.Root)

	resolved := e.resolve(rc.Component)

	span.SetAttributes(attribute.Int("vhook.hook_slots", e.store.Len()))
	e.metrics.setHookSlots(e.store.Len())

	if e.generation != gen {
		// A nested pass already projected newer state.
		span.SetAttributes(attribute.Bool("vhook.projection_skipped", true))
		e.logger.Debug("render superseded", "generation", gen, "latest", e.generation)
		return
	}

	e.projector.MountInto(rc.Root, resolved)
	e.passes++

	span.SetStatus(codes.Ok, "")
	e.metrics.renderDone(trigger, time.Since(start))
	e.logger.Debug("render complete",
		"trigger", trigger,
		"generation", gen,
		"hook_slots", e.store.Len(),
		"duration", time.Since(start),
	)

	for _, fn := range e.onRender {
		fn(rc.Root)
	}
}

// resolve runs reconciliation with the store bound to this goroutine.
func (e *Engine) resolve(component *vdom.VNode) *vdom.VNode {
	restore := hooks.Enter(e.store)
	prev := e.store.BeginRender()
	defer func() {
		e.store.EndRender(prev)
		restore()
	}()
	return reconcile.Resolve(component)
}

// StateSet implements hooks.Observer.
func (e *Engine) StateSet(index int, applied bool) {
	e.metrics.stateSet(applied)
}

// EffectRan implements hooks.Observer.
func (e *Engine) EffectRan(index int) {
	e.metrics.effectRan()
}
