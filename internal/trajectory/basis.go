package trajectory

import (
	"fmt"

	"gonum.org/v1/gonum/interp"
)

// Basis names the per-segment function used between consecutive waypoints.
type Basis string

const (
	// Linear interpolates each joint along a straight line between waypoints.
	Linear Basis = "linear"
	// Monotone is the Fritsch-Butland monotone cubic. It never overshoots the
	// neighbouring waypoint values.
	Monotone Basis = "monotone"
	// Akima is the Akima cubic spline.
	Akima Basis = "akima"
	// Natural is the natural cubic spline (zero second derivative at both ends).
	Natural Basis = "natural"
)

// Bases lists every supported basis.
func Bases() []Basis {
	return []Basis{Linear, Monotone, Akima, Natural}
}

// ParseBasis converts a name into a Basis. The empty string selects Linear.
func ParseBasis(name string) (Basis, error) {
	if name == "" {
		return Linear, nil
	}
	for _, b := range Bases() {
		if string(b) == name {
			return b, nil
		}
	}
	return "", fmt.Errorf("%q: %w", name, ErrUnknownBasis)
}

func (b Basis) String() string { return string(b) }

// newPredictor returns an unfitted cubic predictor, or nil for Linear.
func (b Basis) newPredictor() interp.FittablePredictor {
	switch b {
	case Monotone:
		return &interp.FritschButland{}
	case Akima:
		return &interp.AkimaSpline{}
	case Natural:
		return &interp.NaturalCubic{}
	default:
		return nil
	}
}
