package pattern

import (
	"fmt"
	"math"
	"math/rand"
)

// Limit is an inclusive joint range in degrees.
type Limit struct {
	Min float64
	Max float64
}

// Symmetric mirrors a positive joint limit into [-limit, limit].
func Symmetric(limit float64) Limit {
	return Limit{Min: -limit, Max: limit}
}

// Validate reports whether the range is usable.
func (l Limit) Validate() error {
	if math.IsNaN(l.Min) || math.IsNaN(l.Max) || math.IsInf(l.Min, 0) || math.IsInf(l.Max, 0) || l.Min > l.Max {
		return fmt.Errorf("range [%v, %v]: %w", l.Min, l.Max, ErrInvalidRange)
	}
	return nil
}

// Contains reports whether v lies within the range.
func (l Limit) Contains(v float64) bool {
	return v >= l.Min && v <= l.Max
}

// Generator draws uniform values from one seeded source.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator wraps src. The source is never reseeded.
func NewGenerator(src rand.Source) *Generator {
	return &Generator{rng: rand.New(src)}
}

// NewSeededGenerator is shorthand for NewGenerator(rand.NewSource(seed)).
func NewSeededGenerator(seed int64) *Generator {
	return NewGenerator(rand.NewSource(seed))
}

// Uniform returns a value uniformly distributed in [min, max].
func (g *Generator) Uniform(min, max float64) (float64, error) {
	if err := (Limit{Min: min, Max: max}).Validate(); err != nil {
		return 0, err
	}
	if min == max {
		return min, nil
	}
	// max-min overflows for spans wider than MaxFloat64.
	r := g.rng.Float64()
	v := min + r*max - r*min
	if v < min {
		v = min
	} else if v > max {
		v = max
	}
	return v, nil
}

// Pattern draws one value per joint, each from its own limit.
func (g *Generator) Pattern(limits []Limit) ([]float64, error) {
	out := make([]float64, len(limits))
	for j, l := range limits {
		v, err := g.Uniform(l.Min, l.Max)
		if err != nil {
			return nil, fmt.Errorf("joint %d: %w", j, err)
		}
		out[j] = v
	}
	return out, nil
}

// Patterns draws count independent patterns. Every limit is validated before
// any value is drawn, so a bad table never yields a partial result.
func (g *Generator) Patterns(limits []Limit, count int) ([][]float64, error) {
	for j, l := range limits {
		if err := l.Validate(); err != nil {
			return nil, fmt.Errorf("joint %d: %w", j, err)
		}
	}
	out := make([][]float64, count)
	for i := range out {
		p, err := g.Pattern(limits)
		if err != nil {
			return nil, fmt.Errorf("pattern %d: %w", i, err)
		}
		out[i] = p
	}
	return out, nil
}
