package control

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/san-kum/armtraj/internal/logging"
	"github.com/san-kum/armtraj/internal/sim"
	"github.com/san-kum/armtraj/internal/trajectory"
)

// Trajectory follows an interpolated waypoint table.
type Trajectory struct {
	set    *trajectory.WaypointSet
	interp *trajectory.Interpolator
	clock  sim.Clock
	leg    int
	logger *zap.SugaredLogger
}

func NewTrajectory(set *trajectory.WaypointSet, basis trajectory.Basis, logger *zap.SugaredLogger) *Trajectory {
	return &Trajectory{
		set:    set,
		interp: trajectory.NewInterpolator(set, basis),
		leg:    -1,
		logger: logging.OrNop(logger),
	}
}

// Configure rebuilds the trajectory from the waypoint table, rewinds the
// clock and returns the targets at t=0.
func (c *Trajectory) Configure() (sim.Vector, error) {
	c.clock.Reset()
	c.leg = -1

	if err := c.interp.Build(); err != nil {
		return nil, fmt.Errorf("build trajectory: %w", err)
	}
	q, err := c.interp.Evaluate(c.clock.Now())
	if err != nil {
		return nil, err
	}

	c.logger.Infow("trajectory configured",
		"waypoints", c.set.Len(),
		"joints", c.set.Dim(),
		"basis", c.interp.Basis(),
		"domain", []float64{c.interp.DomainLower(), c.interp.DomainUpper()},
	)
	return q, nil
}

// Step evaluates the trajectory at the current time and then advances the
// clock. It keeps reporting true while the advanced time is still within the
// domain, so the tick at the last waypoint time is always delivered.
func (c *Trajectory) Step(dt float64) (sim.Vector, bool) {
	t := c.clock.Now()
	q, err := c.interp.Evaluate(t)
	if err != nil {
		c.logger.Errorw("step without a built trajectory", "t", t, "error", err)
		return nil, false
	}

	if leg := c.interp.Segment(t); leg != c.leg {
		c.logger.Debugw("entering leg", "leg", leg, "t", t)
		c.leg = leg
	}

	c.clock.Advance(dt)
	return q, c.clock.Now() <= c.interp.DomainUpper()
}

func (c *Trajectory) Time() float64 { return c.clock.Now() }

// Leg returns the segment index of the most recent tick, or -1 before the
// first tick.
func (c *Trajectory) Leg() int { return c.leg }

// DomainUpper returns the time of the last waypoint.
func (c *Trajectory) DomainUpper() float64 { return c.interp.DomainUpper() }

// Evaluate exposes the interpolator without touching the clock.
func (c *Trajectory) Evaluate(t float64) (sim.Vector, error) {
	return c.interp.Evaluate(t)
}
