// Package pattern selects discrete joint patterns by time window and draws
// random patterns within joint limits.
//
// A [Selector] maps time onto half-open windows [start_i, start_{i+1}); the
// last window is open-ended and never reports completion. A [Generator] draws
// uniform values from a seedable source so random runs are reproducible.
package pattern
