// Package metrics summarises a run of joint targets.
package metrics

import (
	"math"

	"github.com/san-kum/armtraj/internal/sim"
)

// PeakSpeed is the largest per-joint target speed seen between two ticks.
type PeakSpeed struct {
	name  string
	prev  sim.Vector
	prevT float64
	peak  float64
}

func NewPeakSpeed() *PeakSpeed {
	return &PeakSpeed{name: "peak_speed"}
}

func (m *PeakSpeed) Name() string { return m.name }

func (m *PeakSpeed) Observe(q sim.Vector, t float64) {
	if m.prev != nil {
		if dt := t - m.prevT; dt > 0 {
			for _, d := range q.Sub(m.prev) {
				m.peak = math.Max(m.peak, math.Abs(d)/dt)
			}
		}
	}
	m.prev = q.Clone()
	m.prevT = t
}

func (m *PeakSpeed) Value() float64 { return m.peak }

func (m *PeakSpeed) Reset() {
	m.prev = nil
	m.prevT = 0
	m.peak = 0
}

// PathLength sums the joint-space distance travelled by the targets.
type PathLength struct {
	name   string
	prev   sim.Vector
	length float64
}

func NewPathLength() *PathLength {
	return &PathLength{name: "path_length"}
}

func (m *PathLength) Name() string { return m.name }

func (m *PathLength) Observe(q sim.Vector, t float64) {
	if m.prev != nil {
		m.length += q.Sub(m.prev).Norm()
	}
	m.prev = q.Clone()
}

func (m *PathLength) Value() float64 { return m.length }

func (m *PathLength) Reset() {
	m.prev = nil
	m.length = 0
}
