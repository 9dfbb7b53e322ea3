package sim

import (
	"fmt"
	"math"
)

// Vector is one joint-target vector in radians.
type Vector []float64

func (v Vector) Clone() Vector {
	c := make(Vector, len(v))
	copy(c, v)
	return c
}

func (v Vector) IsValid() bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// Sub returns v - other over the shorter of the two lengths.
func (v Vector) Sub(other Vector) Vector {
	n := len(v)
	if len(other) < n {
		n = len(other)
	}
	out := make(Vector, n)
	for i := 0; i < n; i++ {
		out[i] = v[i] - other[i]
	}
	return out
}

func (v Vector) Norm() float64 {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Controller produces joint targets once per tick.
//
// Configure resets the controller, validates its configuration and returns
// the targets for time zero. Step returns the targets for the current time,
// advances the controller clock by dt and reports whether the controller
// wants to keep running.
type Controller interface {
	Configure() (Vector, error)
	Step(dt float64) (Vector, bool)
	Time() float64
}

type Metric interface {
	Name() string
	Observe(q Vector, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnTick(q Vector, t float64)
}

type Config struct {
	Dt       float64
	Duration float64 // 0 runs until the controller completes
	MaxTicks int     // 0 selects DefaultMaxTicks
	Seed     int64
}

// DefaultMaxTicks bounds runs of controllers that never complete.
const DefaultMaxTicks = 1_000_000

func DefaultConfig() Config {
	return Config{
		Dt:       0.01,
		MaxTicks: DefaultMaxTicks,
	}
}

type Result struct {
	Times     []float64
	Targets   []Vector
	Metrics   map[string]float64
	Completed bool
	Ticks     int
	Errors    []error
}

type SimError struct {
	Time    float64
	Tick    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("tick %d (t=%.4f): %s", e.Tick, e.Time, e.Message)
}
