package metrics

import "github.com/san-kum/armtraj/internal/sim"

// LimitViolations counts (tick, joint) samples outside the joint limits.
// Limits are in radians; joints without a limit are not checked.
type LimitViolations struct {
	name       string
	min, max   []float64
	violations int
}

func NewLimitViolations(min, max []float64) *LimitViolations {
	return &LimitViolations{
		name: "limit_violations",
		min:  append([]float64(nil), min...),
		max:  append([]float64(nil), max...),
	}
}

func (m *LimitViolations) Name() string { return m.name }

func (m *LimitViolations) Observe(q sim.Vector, t float64) {
	for j, v := range q {
		if j >= len(m.min) || j >= len(m.max) {
			return
		}
		if v < m.min[j] || v > m.max[j] {
			m.violations++
		}
	}
}

func (m *LimitViolations) Value() float64 { return float64(m.violations) }

func (m *LimitViolations) Reset() { m.violations = 0 }
