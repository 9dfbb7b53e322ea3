package pattern

import (
	"fmt"
	"math"
	"sort"
)

// Window starts at Start (inclusive) and lasts until the next window's start.
// Pattern is the index into the caller's pattern table.
type Window struct {
	Start   float64
	Pattern int
}

// Selector picks the window containing a given time.
type Selector struct {
	windows []Window
}

// NewSelector validates the window table. Starts must be finite and strictly
// increasing and pattern indices non-negative.
func NewSelector(windows []Window) (*Selector, error) {
	if len(windows) == 0 {
		return nil, fmt.Errorf("no windows: %w", ErrInvalidWindows)
	}
	for i, w := range windows {
		if math.IsNaN(w.Start) || math.IsInf(w.Start, 0) {
			return nil, fmt.Errorf("window %d start %v: %w", i, w.Start, ErrInvalidWindows)
		}
		if w.Pattern < 0 {
			return nil, fmt.Errorf("window %d pattern %d: %w", i, w.Pattern, ErrInvalidWindows)
		}
		if i > 0 && w.Start <= windows[i-1].Start {
			return nil, fmt.Errorf("window %d start %v not after %v: %w", i, w.Start, windows[i-1].Start, ErrInvalidWindows)
		}
	}

	ws := make([]Window, len(windows))
	copy(ws, windows)
	return &Selector{windows: ws}, nil
}

// DefaultWindows is the four-leg table: [0,2.5) [2.5,5) [5,7.5) [7.5,inf).
func DefaultWindows() []Window {
	return []Window{{0, 0}, {2.5, 1}, {5.0, 2}, {7.5, 3}}
}

// CyclicWindows returns to pattern 0 from 10 s onwards.
func CyclicWindows() []Window {
	return []Window{{0, 0}, {2.5, 1}, {5.0, 2}, {7.5, 3}, {10.0, 0}}
}

// Len returns the number of windows.
func (s *Selector) Len() int { return len(s.windows) }

// Windows returns a copy of the window table.
func (s *Selector) Windows() []Window {
	ws := make([]Window, len(s.windows))
	copy(ws, s.windows)
	return ws
}

// MaxPattern returns the largest pattern index referenced by any window.
func (s *Selector) MaxPattern() int {
	m := 0
	for _, w := range s.windows {
		if w.Pattern > m {
			m = w.Pattern
		}
	}
	return m
}

// Select returns the index of the window containing t. A time equal to a
// window start belongs to that window. Times before the first start and NaN
// fall back to window 0.
func (s *Selector) Select(t float64) int {
	if math.IsNaN(t) {
		return 0
	}
	i := sort.Search(len(s.windows), func(k int) bool { return s.windows[k].Start > t }) - 1
	if i < 0 {
		return 0
	}
	return i
}

// Pattern returns the pattern index of the window containing t.
func (s *Selector) Pattern(t float64) int {
	return s.windows[s.Select(t)].Pattern
}
