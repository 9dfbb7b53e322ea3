package experiment

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/san-kum/armtraj/internal/angle"
	"github.com/san-kum/armtraj/internal/config"
	"github.com/san-kum/armtraj/internal/control"
	"github.com/san-kum/armtraj/internal/metrics"
	"github.com/san-kum/armtraj/internal/pattern"
	"github.com/san-kum/armtraj/internal/sim"
)

// ControllerFunc builds a controller for one run. seed only matters to
// modes that draw random numbers.
type ControllerFunc func(cfg *config.Config, seed int64, logger *zap.SugaredLogger) (sim.Controller, error)

type Registry struct {
	modes map[string]ControllerFunc
}

func NewRegistry() *Registry {
	r := &Registry{modes: make(map[string]ControllerFunc)}

	r.modes[config.ModeTrajectory] = func(cfg *config.Config, _ int64, logger *zap.SugaredLogger) (sim.Controller, error) {
		set, err := cfg.WaypointSet()
		if err != nil {
			return nil, err
		}
		basis, err := cfg.ParsedBasis()
		if err != nil {
			return nil, err
		}
		return control.NewTrajectory(set, basis, logger), nil
	}
	r.modes[config.ModePattern] = func(cfg *config.Config, _ int64, logger *zap.SugaredLogger) (sim.Controller, error) {
		sel, err := cfg.Selector()
		if err != nil {
			return nil, err
		}
		return control.NewPattern(cfg.PatternTable(), sel, logger), nil
	}
	r.modes[config.ModeRandom] = func(cfg *config.Config, seed int64, logger *zap.SugaredLogger) (sim.Controller, error) {
		sel, err := cfg.Selector()
		if err != nil {
			return nil, err
		}
		return control.NewRandomPattern(cfg.Limits(), sel, pattern.NewSeededGenerator(seed), logger), nil
	}

	return r
}

// Register adds or replaces a mode.
func (r *Registry) Register(mode string, fn ControllerFunc) {
	r.modes[mode] = fn
}

func (r *Registry) GetController(cfg *config.Config, seed int64, logger *zap.SugaredLogger) (sim.Controller, error) {
	fn, ok := r.modes[cfg.Mode]
	if !ok {
		return nil, fmt.Errorf("unknown mode: %s", cfg.Mode)
	}
	return fn(cfg, seed, logger)
}

func (r *Registry) ListModes() []string {
	names := make([]string, 0, len(r.modes))
	for name := range r.modes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Factory adapts the registry to sim.Ensemble.
func (r *Registry) Factory(cfg *config.Config, logger *zap.SugaredLogger) sim.Factory {
	return func(seed int64) (sim.Controller, error) {
		return r.GetController(cfg, seed, logger)
	}
}

// DefaultMetrics observes speed, distance and limit compliance against the
// configured joint limits.
func (r *Registry) DefaultMetrics(cfg *config.Config) []sim.Metric {
	limits := cfg.Limits()
	lo := make([]float64, len(limits))
	hi := make([]float64, len(limits))
	for i, l := range limits {
		lo[i] = angle.Deg2Rad(l.Min)
		hi[i] = angle.Deg2Rad(l.Max)
	}
	return []sim.Metric{
		metrics.NewPeakSpeed(),
		metrics.NewPathLength(),
		metrics.NewLimitViolations(lo, hi),
	}
}
