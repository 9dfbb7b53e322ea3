// Package angle converts joint angles between degrees and radians.
package angle

import "math"

// Deg2Rad converts degrees to radians.
func Deg2Rad(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// Rad2Deg converts radians to degrees.
func Rad2Deg(rad float64) float64 {
	return rad * 180.0 / math.Pi
}

// Deg2RadVector returns a new slice with every element converted to radians.
func Deg2RadVector(deg []float64) []float64 {
	out := make([]float64, len(deg))
	for i, v := range deg {
		out[i] = Deg2Rad(v)
	}
	return out
}

// Rad2DegVector returns a new slice with every element converted to degrees.
func Rad2DegVector(rad []float64) []float64 {
	out := make([]float64, len(rad))
	for i, v := range rad {
		out[i] = Rad2Deg(v)
	}
	return out
}
