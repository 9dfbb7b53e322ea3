package sim

import (
	"context"
	"errors"
	"math"
	"testing"
)

// rampController outputs q = [t] and completes once its clock passes end.
type rampController struct {
	clock      Clock
	end        float64
	configured int
	failWith   error
}

func (r *rampController) Configure() (Vector, error) {
	r.configured++
	if r.failWith != nil {
		return nil, r.failWith
	}
	r.clock.Reset()
	return Vector{0}, nil
}

func (r *rampController) Step(dt float64) (Vector, bool) {
	q := Vector{r.clock.Now()}
	r.clock.Advance(dt)
	return q, r.end <= 0 || r.clock.Now() <= r.end
}

func (r *rampController) Time() float64 { return r.clock.Now() }

func TestSimulatorRunUntilComplete(t *testing.T) {
	ctrl := &rampController{end: 1.0}
	sim := New(ctrl)

	result, err := sim.Run(context.Background(), Config{Dt: 0.125})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if !result.Completed {
		t.Error("expected run to complete")
	}
	// t = 0, 0.125, ..., 1.0 are evaluated; the tick at 1.0 reports completion.
	if result.Ticks != 9 {
		t.Errorf("expected 9 ticks, got %d", result.Ticks)
	}
	if len(result.Times) != 9 || len(result.Targets) != 9 {
		t.Errorf("expected 9 samples, got %d times and %d targets", len(result.Times), len(result.Targets))
	}
	if last := result.Times[len(result.Times)-1]; last != 1.0 {
		t.Errorf("expected last sample at 1.0, got %v", last)
	}
	if ctrl.configured != 1 {
		t.Errorf("expected one Configure call, got %d", ctrl.configured)
	}
}

func TestSimulatorRunDuration(t *testing.T) {
	ctrl := &rampController{}
	sim := New(ctrl)

	result, err := sim.Run(context.Background(), Config{Dt: 0.25, Duration: 1.0})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.Completed {
		t.Error("a never-ending controller should not report completion")
	}
	if result.Ticks != 5 {
		t.Errorf("expected 5 ticks (0..1.0), got %d", result.Ticks)
	}
}

func TestSimulatorMaxTicks(t *testing.T) {
	sim := New(&rampController{})

	result, err := sim.Run(context.Background(), Config{Dt: 0.01, MaxTicks: 42})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.Ticks != 42 {
		t.Errorf("expected 42 ticks, got %d", result.Ticks)
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	sim := New(&rampController{})

	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero dt", Config{Dt: 0}},
		{"negative dt", Config{Dt: -0.1}},
		{"nan dt", Config{Dt: math.NaN()}},
		{"negative duration", Config{Dt: 0.1, Duration: -1.0}},
		{"negative max ticks", Config{Dt: 0.1, MaxTicks: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := sim.Run(context.Background(), tt.cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestSimulatorConfigureError(t *testing.T) {
	boom := errors.New("bad waypoints")
	sim := New(&rampController{failWith: boom})

	result, err := sim.Run(context.Background(), Config{Dt: 0.1})
	if !errors.Is(err, boom) {
		t.Errorf("expected configure error, got %v", err)
	}
	if result != nil {
		t.Error("expected no result when configuration fails")
	}
}

func TestSimulatorCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := New(&rampController{}).Run(ctx, Config{Dt: 0.1})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if result == nil || result.Ticks != 0 {
		t.Errorf("expected empty partial result, got %+v", result)
	}
}

type testMetric struct {
	count int
	sum   float64
}

func (t *testMetric) Name() string { return "test" }
func (t *testMetric) Observe(q Vector, time float64) {
	t.count++
	t.sum += q[0]
}
func (t *testMetric) Value() float64 {
	if t.count == 0 {
		return 0
	}
	return t.sum / float64(t.count)
}
func (t *testMetric) Reset() {
	t.count = 0
	t.sum = 0
}

type countingObserver struct{ ticks int }

func (c *countingObserver) OnTick(q Vector, t float64) { c.ticks++ }

func TestSimulatorMetricsAndObservers(t *testing.T) {
	sim := New(&rampController{end: 1.0})

	metric := &testMetric{}
	obs := &countingObserver{}
	sim.AddMetric(metric)
	sim.AddObserver(obs)

	result, err := sim.Run(context.Background(), Config{Dt: 0.5})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if _, ok := result.Metrics["test"]; !ok {
		t.Error("metric not found in result")
	}
	if metric.count != 3 {
		t.Errorf("expected 3 observations, got %d", metric.count)
	}
	if obs.ticks != 3 {
		t.Errorf("expected 3 observer calls, got %d", obs.ticks)
	}
	if math.Abs(result.Metrics["test"]-0.5) > 1e-12 {
		t.Errorf("expected mean 0.5, got %v", result.Metrics["test"])
	}
}

// emptyController stops producing targets after its first tick.
type emptyController struct{ rampController }

func (e *emptyController) Step(dt float64) (Vector, bool) {
	if e.clock.Ticks() > 0 {
		return nil, false
	}
	return e.rampController.Step(dt)
}

func TestSimulatorEmptyTarget(t *testing.T) {
	sim := New(&emptyController{rampController{end: 1.0}})

	result, err := sim.Run(context.Background(), Config{Dt: 0.25})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.Completed {
		t.Error("a missing target must not count as completion")
	}
	if result.Ticks != 1 || len(result.Targets) != 1 {
		t.Errorf("expected only the first tick recorded, got %d ticks and %d targets", result.Ticks, len(result.Targets))
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected one error, got %v", result.Errors)
	}
	var simErr SimError
	if !errors.As(result.Errors[0], &simErr) || simErr.Tick != 1 {
		t.Errorf("expected a SimError at tick 1, got %v", result.Errors[0])
	}

	err = New(&emptyController{rampController{end: 1.0}}).RunWithCallback(context.Background(), Config{Dt: 0.25}, func(Vector, float64) bool { return true })
	if err == nil {
		t.Error("RunWithCallback accepted a missing target")
	}
}

func TestRunWithCallback(t *testing.T) {
	sim := New(&rampController{end: 10})

	var seen []float64
	err := sim.RunWithCallback(context.Background(), Config{Dt: 1}, func(q Vector, t float64) bool {
		seen = append(seen, t)
		return len(seen) < 3
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(seen) != 3 {
		t.Errorf("expected callback to stop after 3 ticks, got %d", len(seen))
	}
}

func TestEnsemble(t *testing.T) {
	factory := func(seed int64) (Controller, error) {
		return &rampController{end: float64(seed)}, nil
	}
	metrics := func() []Metric { return []Metric{&testMetric{}} }

	results, err := NewEnsemble(factory, metrics, 3, 1).Run(context.Background(), Config{Dt: 0.5})
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, r := range results {
		// seed i+1 ends at t=i+1: ticks at 0, 0.5, ..., i+1.
		want := 2*(i+1) + 1
		if r.Ticks != want {
			t.Errorf("run %d: expected %d ticks, got %d", i, want, r.Ticks)
		}
		if _, ok := r.Metrics["test"]; !ok {
			t.Errorf("run %d: metric missing", i)
		}
	}
}

func TestEnsembleFactoryError(t *testing.T) {
	boom := errors.New("no limits")
	factory := func(seed int64) (Controller, error) {
		if seed == 2 {
			return nil, boom
		}
		return &rampController{end: 1}, nil
	}

	if _, err := NewEnsemble(factory, nil, 3, 0).Run(context.Background(), Config{Dt: 0.5}); !errors.Is(err, boom) {
		t.Errorf("expected factory error, got %v", err)
	}
}
