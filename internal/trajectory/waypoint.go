package trajectory

import (
	"fmt"
	"math"
)

// Waypoint is a joint vector anchored at a time in seconds.
type Waypoint struct {
	Time   float64
	Values []float64
}

// WaypointSet is an ordered table of waypoints with strictly increasing
// timestamps and a fixed joint count.
type WaypointSet struct {
	dim       int
	waypoints []Waypoint
	revision  uint64
}

// NewWaypointSet returns an empty set for vectors of length dim.
func NewWaypointSet(dim int) *WaypointSet {
	return &WaypointSet{dim: dim}
}

// Clear discards all waypoints. Interpolators built from the set must be
// rebuilt before they can be evaluated again.
func (s *WaypointSet) Clear() {
	s.waypoints = s.waypoints[:0]
	s.revision++
}

// Append adds a waypoint at the end of the set. The time must be later than
// every existing waypoint and values must have Dim elements. The set is left
// unchanged when an error is returned.
func (s *WaypointSet) Append(t float64, values []float64) error {
	if math.IsNaN(t) || math.IsInf(t, 0) || t < 0 {
		return fmt.Errorf("append at t=%v: %w", t, ErrInvalidTime)
	}
	if n := len(s.waypoints); n > 0 && t <= s.waypoints[n-1].Time {
		return fmt.Errorf("append at t=%v after t=%v: %w", t, s.waypoints[n-1].Time, ErrNonIncreasingTime)
	}
	if len(values) != s.dim {
		return fmt.Errorf("append at t=%v: got %d values, want %d: %w", t, len(values), s.dim, ErrDimensionMismatch)
	}
	for j, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("append at t=%v: joint %d is %v: %w", t, j, v, ErrInvalidValue)
		}
	}

	vals := make([]float64, len(values))
	copy(vals, values)
	s.waypoints = append(s.waypoints, Waypoint{Time: t, Values: vals})
	s.revision++
	return nil
}

// Len returns the number of waypoints.
func (s *WaypointSet) Len() int { return len(s.waypoints) }

// Dim returns the joint count every waypoint must have.
func (s *WaypointSet) Dim() int { return s.dim }

// At returns a copy of the i-th waypoint.
func (s *WaypointSet) At(i int) Waypoint {
	w := s.waypoints[i]
	vals := make([]float64, len(w.Values))
	copy(vals, w.Values)
	return Waypoint{Time: w.Time, Values: vals}
}

// Times returns the waypoint timestamps in order.
func (s *WaypointSet) Times() []float64 {
	times := make([]float64, len(s.waypoints))
	for i, w := range s.waypoints {
		times[i] = w.Time
	}
	return times
}

// Lower returns the first timestamp, or 0 for an empty set.
func (s *WaypointSet) Lower() float64 {
	if len(s.waypoints) == 0 {
		return 0
	}
	return s.waypoints[0].Time
}

// Upper returns the last timestamp, or 0 for an empty set.
func (s *WaypointSet) Upper() float64 {
	if len(s.waypoints) == 0 {
		return 0
	}
	return s.waypoints[len(s.waypoints)-1].Time
}

// column copies joint j of every waypoint into a new slice.
func (s *WaypointSet) column(j int) []float64 {
	col := make([]float64, len(s.waypoints))
	for i, w := range s.waypoints {
		col[i] = w.Values[j]
	}
	return col
}
