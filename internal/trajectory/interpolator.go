package trajectory

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/interp"
)

// segment is the linear basis between waypoints i and i+1.
type segment struct {
	t0, span float64
	v0, dv   []float64
}

// Interpolator evaluates a WaypointSet as a continuous function of time.
type Interpolator struct {
	set   *WaypointSet
	basis Basis

	built    bool
	revision uint64
	times    []float64
	values   [][]float64
	segments []segment
	joints   []interp.Predictor
}

// NewInterpolator returns an interpolator over set. Build must be called
// before Evaluate, and again after every change to set.
func NewInterpolator(set *WaypointSet, basis Basis) *Interpolator {
	return &Interpolator{set: set, basis: basis}
}

// Basis returns the configured basis.
func (ip *Interpolator) Basis() Basis { return ip.basis }

// Build recomputes the interpolation state from the current waypoints. On
// failure the interpolator is left unbuilt.
func (ip *Interpolator) Build() error {
	ip.reset()

	basis, err := ParseBasis(string(ip.basis))
	if err != nil {
		return err
	}
	ip.basis = basis
	n := ip.set.Len()
	if n < 2 {
		return fmt.Errorf("build with %d waypoints: %w", n, ErrTooFewWaypoints)
	}

	times := ip.set.Times()
	values := make([][]float64, n)
	for i := range values {
		values[i] = ip.set.At(i).Values
	}

	// Two points define a line whatever the basis.
	if ip.basis == Linear || n == 2 {
		ip.segments = make([]segment, n-1)
		for i := range ip.segments {
			dv := make([]float64, ip.set.Dim())
			for j := range dv {
				dv[j] = values[i+1][j] - values[i][j]
			}
			ip.segments[i] = segment{
				t0:   times[i],
				span: times[i+1] - times[i],
				v0:   values[i],
				dv:   dv,
			}
		}
	} else {
		ip.joints = make([]interp.Predictor, ip.set.Dim())
		for j := range ip.joints {
			p := ip.basis.newPredictor()
			if err := p.Fit(times, ip.set.column(j)); err != nil {
				ip.reset()
				return fmt.Errorf("fit joint %d with %s basis: %w", j, ip.basis, err)
			}
			ip.joints[j] = p
		}
	}

	ip.times = times
	ip.values = values
	ip.revision = ip.set.revision
	ip.built = true
	return nil
}

func (ip *Interpolator) reset() {
	ip.built = false
	ip.times = nil
	ip.values = nil
	ip.segments = nil
	ip.joints = nil
}

// Built reports whether the interpolator matches the current waypoints.
func (ip *Interpolator) Built() bool {
	return ip.built && ip.revision == ip.set.revision
}

// DomainLower returns the first waypoint time.
func (ip *Interpolator) DomainLower() float64 {
	if len(ip.times) == 0 {
		return 0
	}
	return ip.times[0]
}

// DomainUpper returns the last waypoint time. Callers compare the clock
// against it to detect the end of the trajectory.
func (ip *Interpolator) DomainUpper() float64 {
	if len(ip.times) == 0 {
		return 0
	}
	return ip.times[len(ip.times)-1]
}

// Evaluate returns the joint vector at time t. Times outside the domain are
// clamped to the first or last waypoint.
func (ip *Interpolator) Evaluate(t float64) ([]float64, error) {
	out := make([]float64, ip.set.Dim())
	if err := ip.EvaluateInto(out, t); err != nil {
		return nil, err
	}
	return out, nil
}

// EvaluateInto writes the joint vector at time t into dst.
func (ip *Interpolator) EvaluateInto(dst []float64, t float64) error {
	if !ip.Built() {
		return ErrNotBuilt
	}
	if len(dst) != ip.set.Dim() {
		return fmt.Errorf("evaluate into %d values, want %d: %w", len(dst), ip.set.Dim(), ErrDimensionMismatch)
	}

	last := len(ip.times) - 1
	switch {
	case !(t > ip.times[0]): // also catches NaN
		copy(dst, ip.values[0])
		return nil
	case t >= ip.times[last]:
		copy(dst, ip.values[last])
		return nil
	}

	i := ip.locate(t)
	if t == ip.times[i] {
		copy(dst, ip.values[i])
		return nil
	}

	if ip.joints != nil {
		for j, p := range ip.joints {
			dst[j] = p.Predict(t)
		}
		return nil
	}

	seg := ip.segments[i]
	frac := (t - seg.t0) / seg.span
	for j := range dst {
		dst[j] = seg.v0[j] + seg.dv[j]*frac
	}
	return nil
}

// Segment returns the index of the segment whose time span contains t, or -1
// when the interpolator is not built. Times outside the domain map to the
// first or last segment.
func (ip *Interpolator) Segment(t float64) int {
	if !ip.Built() {
		return -1
	}
	if !(t > ip.times[0]) {
		return 0
	}
	return ip.locate(t)
}

// locate finds the last waypoint at or before t, limited to [0, n-2].
func (ip *Interpolator) locate(t float64) int {
	i := sort.Search(len(ip.times), func(k int) bool { return ip.times[k] > t }) - 1
	if i < 0 {
		i = 0
	}
	if hi := len(ip.times) - 2; i > hi {
		i = hi
	}
	return i
}
