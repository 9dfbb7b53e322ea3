package config

import (
	"math"
	"sort"

	"github.com/san-kum/armtraj/internal/pattern"
)

// PA10Joints is the seven-axis arm plus the two gripper fingers.
func PA10Joints() []JointConfig {
	return []JointConfig{
		{Name: "s1", LimitDeg: 177},
		{Name: "s2", LimitDeg: 94},
		{Name: "s3", LimitDeg: 174},
		{Name: "e1", LimitDeg: 137},
		{Name: "e2", LimitDeg: 255},
		{Name: "w1", LimitDeg: 165},
		{Name: "w2", LimitDeg: 255},
		{Name: "g1", LimitDeg: 0.030},
		{Name: "g2", LimitDeg: 0.030},
	}
}

// PA10Patterns holds the four reference postures in radians.
func PA10Patterns() [][]float64 {
	const (
		d30 = math.Pi / 6
		d60 = math.Pi / 3
		g   = 0.015
	)
	return [][]float64{
		{0, 0, 0, 0, 0, 0, 0, 0, 0},
		{d30, d30, d30, d30, d30, d30, d30, g, g},
		{-d30, -d30, -d30, -d30, -d30, -d30, -d30, -g, -g},
		{d30, -d30, d60, -d60, d30, -d30, d60, g, -g},
	}
}

// PA10Waypoints visits patterns 1, 2 and 3 and returns home at 10 s.
func PA10Waypoints() []WaypointConfig {
	times := []float64{0, 2.5, 5.0, 7.5, 10.0}
	refs := []int{0, 1, 2, 3, 0}
	out := make([]WaypointConfig, len(times))
	for i := range times {
		p := refs[i]
		out[i] = WaypointConfig{Time: times[i], Pattern: &p}
	}
	return out
}

var Presets = map[string]*Config{
	"pa10-trajectory": DefaultConfig(),
	"pa10-pattern": {
		Name: "pa10-pattern", Mode: ModePattern, Dt: DefaultDt, Duration: 12.5,
		MaxTicks: DefaultMaxTicks, Seed: DefaultSeed,
		Joints: PA10Joints(), Patterns: PA10Patterns(),
		Windows: fromWindows(pattern.DefaultWindows()),
	},
	"pa10-cyclic": {
		Name: "pa10-cyclic", Mode: ModePattern, Dt: DefaultDt, Duration: 12.5,
		MaxTicks: DefaultMaxTicks, Seed: DefaultSeed,
		Joints: PA10Joints(), Patterns: PA10Patterns(),
		Windows: fromWindows(pattern.CyclicWindows()),
	},
	"pa10-random": {
		Name: "pa10-random", Mode: ModeRandom, Dt: DefaultDt, Duration: 10.0,
		MaxTicks: DefaultMaxTicks, Seed: DefaultSeed,
		Joints:  PA10Joints(),
		Windows: fromWindows(pattern.DefaultWindows()),
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Descriptions summarises each preset for listings.
var Descriptions = map[string]string{
	"pa10-trajectory": "five-waypoint patrol, completes at 10 s",
	"pa10-pattern":    "four fixed postures switched every 2.5 s",
	"pa10-cyclic":     "fixed postures returning home at 10 s",
	"pa10-random":     "random postures within the PA10 limits",
}
