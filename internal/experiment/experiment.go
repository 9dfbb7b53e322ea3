package experiment

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/san-kum/armtraj/internal/config"
	"github.com/san-kum/armtraj/internal/logging"
	"github.com/san-kum/armtraj/internal/sim"
)

// Experiment is one configured run of a controller mode.
type Experiment struct {
	cfg       *config.Config
	simulator *sim.Simulator
	logger    *zap.SugaredLogger
}

func New(cfg *config.Config, logger *zap.SugaredLogger) *Experiment {
	return &Experiment{
		cfg:    cfg,
		logger: logging.OrNop(logger),
	}
}

// Setup validates the config and builds the controller and metrics.
func (e *Experiment) Setup(reg *Registry) error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}
	ctrl, err := reg.GetController(e.cfg, e.cfg.Seed, e.logger)
	if err != nil {
		return err
	}

	e.simulator = sim.New(ctrl)
	e.simulator.SetLogger(e.logger)
	for _, m := range reg.DefaultMetrics(e.cfg) {
		e.simulator.AddMetric(m)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	e.logger.Infow("run started", "mode", e.cfg.Mode, "basis", e.cfg.Basis, "dt", e.cfg.Dt, "duration", e.cfg.Duration)
	result, err := e.simulator.Run(ctx, e.cfg.SimConfig())
	if err != nil {
		return result, err
	}
	e.logger.Infow("run finished", "ticks", result.Ticks, "completed", result.Completed)
	return result, nil
}

// Simulator returns the underlying simulator for adding observers.
func (e *Experiment) Simulator() *sim.Simulator {
	return e.simulator
}
