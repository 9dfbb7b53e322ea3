package sim

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/san-kum/armtraj/internal/logging"
)

// Simulator drives one controller tick by tick and records its targets.
type Simulator struct {
	controller Controller
	metrics    []Metric
	observers  []Observer
	logger     *zap.SugaredLogger
}

func New(controller Controller) *Simulator {
	return &Simulator{
		controller: controller,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
		logger:     logging.NewNop(),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) SetLogger(l *zap.SugaredLogger) { s.logger = logging.OrNop(l) }

// Controller returns the driven controller.
func (s *Simulator) Controller() Controller { return s.controller }

// Run configures the controller and ticks it until it reports completion,
// the configured duration elapses or MaxTicks is reached. A canceled context
// returns the partial result together with ctx.Err().
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}
	maxTicks := cfg.MaxTicks
	if maxTicks <= 0 {
		maxTicks = DefaultMaxTicks
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	if _, err := s.controller.Configure(); err != nil {
		return nil, fmt.Errorf("configure controller: %w", err)
	}

	capacity := maxTicks
	if cfg.Duration > 0 {
		if n := int(cfg.Duration/cfg.Dt) + 2; n < capacity {
			capacity = n
		}
	}
	if capacity > 1<<16 {
		capacity = 1 << 16
	}
	result := &Result{
		Times:   make([]float64, 0, capacity),
		Targets: make([]Vector, 0, capacity),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	s.logger.Debugw("run started", "dt", cfg.Dt, "duration", cfg.Duration, "max_ticks", maxTicks)

	for tick := 0; tick < maxTicks; tick++ {
		select {
		case <-ctx.Done():
			s.collectMetrics(result)
			return result, ctx.Err()
		default:
		}

		t := s.controller.Time()
		if cfg.Duration > 0 && t > cfg.Duration {
			break
		}

		q, continuing := s.controller.Step(cfg.Dt)
		if len(q) == 0 {
			result.Errors = append(result.Errors, SimError{Time: t, Tick: tick, Message: "controller produced no target"})
			break
		}
		if !q.IsValid() {
			result.Errors = append(result.Errors, SimError{Time: t, Tick: tick, Message: "invalid target (NaN/Inf)"})
			break
		}

		for _, m := range s.metrics {
			m.Observe(q, t)
		}
		for _, obs := range s.observers {
			obs.OnTick(q, t)
		}

		result.Times = append(result.Times, t)
		result.Targets = append(result.Targets, q.Clone())
		result.Ticks++

		if !continuing {
			result.Completed = true
			break
		}
	}

	s.collectMetrics(result)
	s.logger.Debugw("run finished", "ticks", result.Ticks, "completed", result.Completed, "t", s.controller.Time())
	return result, nil
}

func (s *Simulator) collectMetrics(result *Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func (s *Simulator) validateConfig(cfg Config) error {
	if !(cfg.Dt > 0) {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration < 0 {
		return fmt.Errorf("duration must not be negative, got %f", cfg.Duration)
	}
	if cfg.MaxTicks < 0 {
		return fmt.Errorf("max ticks must not be negative, got %d", cfg.MaxTicks)
	}
	return nil
}

// RunWithCallback ticks the controller and hands every target to callback
// instead of recording it. Returning false from callback stops the run.
func (s *Simulator) RunWithCallback(ctx context.Context, cfg Config, callback func(Vector, float64) bool) error {
	if err := s.validateConfig(cfg); err != nil {
		return err
	}
	if _, err := s.controller.Configure(); err != nil {
		return fmt.Errorf("configure controller: %w", err)
	}

	maxTicks := cfg.MaxTicks
	if maxTicks <= 0 {
		maxTicks = DefaultMaxTicks
	}

	for tick := 0; tick < maxTicks; tick++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		t := s.controller.Time()
		if cfg.Duration > 0 && t > cfg.Duration {
			return nil
		}

		q, continuing := s.controller.Step(cfg.Dt)
		if len(q) == 0 {
			return fmt.Errorf("no target at t=%.4f", t)
		}
		if !q.IsValid() {
			return fmt.Errorf("invalid target at t=%.4f", t)
		}
		if !callback(q, t) || !continuing {
			return nil
		}
	}

	return nil
}
