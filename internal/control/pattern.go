package control

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/san-kum/armtraj/internal/logging"
	"github.com/san-kum/armtraj/internal/pattern"
	"github.com/san-kum/armtraj/internal/sim"
	"github.com/san-kum/armtraj/internal/trajectory"
)

// ErrPatternTable indicates an empty, ragged or too short pattern table.
var ErrPatternTable = fmt.Errorf("%w: invalid pattern table", trajectory.ErrConfig)

// Pattern outputs the pattern selected by the current time window. It never
// completes.
type Pattern struct {
	table    [][]float64
	selector *pattern.Selector
	clock    sim.Clock
	current  int
	ready    bool
	logger   *zap.SugaredLogger
}

// NewPattern uses table (radians) and the windows of selector.
func NewPattern(table [][]float64, selector *pattern.Selector, logger *zap.SugaredLogger) *Pattern {
	return &Pattern{
		table:    copyTable(table),
		selector: selector,
		current:  -1,
		logger:   logging.OrNop(logger),
	}
}

func (c *Pattern) Configure() (sim.Vector, error) {
	c.clock.Reset()
	c.current = -1
	c.ready = false

	if err := validateTable(c.table, c.selector); err != nil {
		return nil, err
	}
	c.ready = true

	c.logger.Infow("pattern table configured", "patterns", len(c.table), "windows", c.selector.Len())
	return sim.Vector(c.table[c.selector.Pattern(0)]).Clone(), nil
}

func (c *Pattern) Step(dt float64) (sim.Vector, bool) {
	t := c.clock.Now()
	if !c.ready {
		c.logger.Errorw("step without a configured pattern table", "t", t)
		return nil, false
	}
	idx := c.selector.Pattern(t)
	if idx != c.current {
		c.logger.Debugw("switching pattern", "pattern", idx, "t", t)
		c.current = idx
	}

	c.clock.Advance(dt)
	return sim.Vector(c.table[idx]).Clone(), true
}

func (c *Pattern) Time() float64 { return c.clock.Now() }

// Current returns the pattern index of the most recent tick, or -1.
func (c *Pattern) Current() int { return c.current }

// Table returns a copy of the pattern table in radians.
func (c *Pattern) Table() [][]float64 { return copyTable(c.table) }

func validateTable(table [][]float64, selector *pattern.Selector) error {
	if selector == nil {
		return fmt.Errorf("no window selector: %w", ErrPatternTable)
	}
	if len(table) == 0 {
		return fmt.Errorf("no patterns: %w", ErrPatternTable)
	}
	var errs []error
	width := len(table[0])
	if width == 0 {
		errs = append(errs, fmt.Errorf("pattern 0 is empty: %w", ErrPatternTable))
	}
	for i, row := range table {
		if len(row) != width {
			errs = append(errs, fmt.Errorf("pattern %d has %d joints, want %d: %w", i, len(row), width, ErrPatternTable))
		}
	}
	if top := selector.MaxPattern(); top >= len(table) {
		errs = append(errs, fmt.Errorf("windows reference pattern %d of %d: %w", top, len(table), ErrPatternTable))
	}
	return multierr.Combine(errs...)
}

func copyTable(table [][]float64) [][]float64 {
	out := make([][]float64, len(table))
	for i, row := range table {
		out[i] = append([]float64(nil), row...)
	}
	return out
}
