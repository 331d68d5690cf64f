package engine

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/vango-dev/vhook/pkg/hooks"
	"github.com/vango-dev/vhook/pkg/vdom"
)

func metricCounterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("counter Write() error: %v", err)
	}
	if m.Counter == nil {
		t.Fatal("expected counter metric to have Counter field")
	}
	return m.GetCounter().GetValue()
}

func metricGaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	if err := g.Write(&m); err != nil {
		t.Fatalf("gauge Write() error: %v", err)
	}
	if m.Gauge == nil {
		t.Fatal("expected gauge metric to have Gauge field")
	}
	return m.GetGauge().GetValue()
}

func metricHistogramCount(t *testing.T, h prometheus.Histogram) uint64 {
	t.Helper()
	var m dto.Metric
	if err := h.Write(&m); err != nil {
		t.Fatalf("histogram Write() error: %v", err)
	}
	if m.Histogram == nil {
		t.Fatal("expected histogram metric to have Histogram field")
	}
	return m.GetHistogram().GetSampleCount()
}

func TestMetricsRecordRenderActivity(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg))

	var set func(int)
	comp := func() *vdom.VNode {
		n, s := hooks.UseState(0)
		set = s
		hooks.UseEffect(func() {}, []any{n})
		hooks.UseEffect(func() {}, []any{})
		return vdom.P(n)
	}

	eng, _, root := newTestEngine(t, WithMetrics(m))
	if err := eng.Mount(comp, root); err != nil {
		t.Fatal(err)
	}
	set(1)
	set(1)
	set(2)

	if got := metricCounterValue(t, m.renders.WithLabelValues(TriggerExplicit)); got != 1 {
		t.Errorf("renders_total(explicit) = %v, want 1", got)
	}
	if got := metricCounterValue(t, m.renders.WithLabelValues(TriggerSetter)); got != 2 {
		t.Errorf("renders_total(setter) = %v, want 2", got)
	}
	if got := metricHistogramCount(t, m.renderDuration); got != 3 {
		t.Errorf("render_duration_seconds count = %v, want 3", got)
	}
	if got := metricCounterValue(t, m.stateUpdates.WithLabelValues("applied")); got != 2 {
		t.Errorf("state_updates_total(applied) = %v, want 2", got)
	}
	if got := metricCounterValue(t, m.stateUpdates.WithLabelValues("skipped")); got != 1 {
		t.Errorf("state_updates_total(skipped) = %v, want 1", got)
	}
	// Dependent effect runs on all three passes, the empty-deps one once.
	if got := metricCounterValue(t, m.effectsRun); got != 4 {
		t.Errorf("effects_run_total = %v, want 4", got)
	}
	if got := metricGaugeValue(t, m.hookSlots); got != 3 {
		t.Errorf("hook_slots = %v, want 3", got)
	}
	if got := metricCounterValue(t, m.renderFailures); got != 0 {
		t.Errorf("render_failures_total = %v, want 0", got)
	}
}

func TestMetricsRecordFailures(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg), WithNamespace("app"), WithSubsystem("ui"))

	eng, _, root := newTestEngine(t, WithMetrics(m))
	func() {
		defer func() { _ = recover() }()
		_ = eng.Mount(func() *vdom.VNode { panic("boom") }, root)
	}()

	if got := metricCounterValue(t, m.renderFailures); got != 1 {
		t.Errorf("render_failures_total = %v, want 1", got)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error: %v", err)
	}
	found := false
	for _, f := range families {
		if f.GetName() == "app_ui_render_failures_total" {
			found = true
		}
	}
	if !found {
		t.Error("expected app_ui_render_failures_total to be registered")
	}
}

func TestMetricsConstLabelsAndBuckets(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(
		WithRegistry(reg),
		WithConstLabels(prometheus.Labels{"app": "demo"}),
		WithBuckets([]float64{0.001, 0.01}),
	)
	m.renderDone(TriggerExplicit, 0)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error: %v", err)
	}
	for _, f := range families {
		if f.GetName() != "vhook_engine_render_duration_seconds" {
			continue
		}
		metric := f.GetMetric()[0]
		if n := len(metric.GetHistogram().GetBucket()); n != 2 {
			t.Errorf("got %d buckets, want 2", n)
		}
		if l := metric.GetLabel(); len(l) != 1 || l[0].GetName() != "app" || l[0].GetValue() != "demo" {
			t.Errorf("labels = %v, want app=demo", l)
		}
		return
	}
	t.Error("render_duration_seconds not registered")
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.renderDone(TriggerSetter, 0)
	m.renderFailed()
	m.stateSet(true)
	m.effectRan()
	m.setHookSlots(3)
}
