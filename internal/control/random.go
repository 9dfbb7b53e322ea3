package control

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/san-kum/armtraj/internal/angle"
	"github.com/san-kum/armtraj/internal/pattern"
	"github.com/san-kum/armtraj/internal/sim"
)

// RandomPattern is a Pattern whose table is drawn within per-joint limits
// (degrees) every time it is configured.
type RandomPattern struct {
	*Pattern
	limits []pattern.Limit
	gen    *pattern.Generator
}

func NewRandomPattern(limits []pattern.Limit, selector *pattern.Selector, gen *pattern.Generator, logger *zap.SugaredLogger) *RandomPattern {
	return &RandomPattern{
		Pattern: NewPattern(nil, selector, logger),
		limits:  append([]pattern.Limit(nil), limits...),
		gen:     gen,
	}
}

// Configure draws one pattern per referenced window index, converts it to
// radians and configures the underlying Pattern.
func (c *RandomPattern) Configure() (sim.Vector, error) {
	c.Pattern.ready = false
	if c.Pattern.selector == nil {
		return nil, fmt.Errorf("no window selector: %w", ErrPatternTable)
	}
	if len(c.limits) == 0 {
		return nil, fmt.Errorf("no joint limits: %w", ErrPatternTable)
	}

	degrees, err := c.gen.Patterns(c.limits, c.Pattern.selector.MaxPattern()+1)
	if err != nil {
		return nil, fmt.Errorf("generate patterns: %w", err)
	}

	table := make([][]float64, len(degrees))
	for i, p := range degrees {
		table[i] = angle.Deg2RadVector(p)
	}
	c.Pattern.table = table

	return c.Pattern.Configure()
}
