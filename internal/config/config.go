package config

import (
	"fmt"
	"math"
	"os"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/armtraj/internal/pattern"
	"github.com/san-kum/armtraj/internal/sim"
	"github.com/san-kum/armtraj/internal/trajectory"
)

const (
	ModeTrajectory = "trajectory"
	ModePattern    = "pattern"
	ModeRandom     = "random"
)

const (
	DefaultDt       = 0.01
	DefaultMaxTicks = 100000
	DefaultSeed     = 42
)

// ErrInvalid is returned, wrapped, for every validation failure.
var ErrInvalid = fmt.Errorf("%w: invalid config", trajectory.ErrConfig)

type Config struct {
	Name      string           `yaml:"name"`
	Mode      string           `yaml:"mode"`
	Basis     string           `yaml:"basis"`
	Dt        float64          `yaml:"dt"`
	Duration  float64          `yaml:"duration"`
	MaxTicks  int              `yaml:"max_ticks"`
	Seed      int64            `yaml:"seed"`
	Joints    []JointConfig    `yaml:"joints"`
	Patterns  [][]float64      `yaml:"patterns"`
	Waypoints []WaypointConfig `yaml:"waypoints"`
	Windows   []WindowConfig   `yaml:"windows"`
}

// JointConfig names one vector slot and its symmetric limit in degrees.
type JointConfig struct {
	Name     string  `yaml:"name"`
	LimitDeg float64 `yaml:"limit_deg"`
}

// WaypointConfig anchors either a pattern row or explicit values (radians).
type WaypointConfig struct {
	Time    float64   `yaml:"time"`
	Pattern *int      `yaml:"pattern,omitempty"`
	Values  []float64 `yaml:"values,omitempty"`
}

type WindowConfig struct {
	Start   float64 `yaml:"start"`
	Pattern int     `yaml:"pattern"`
}

func Modes() []string {
	return []string{ModeTrajectory, ModePattern, ModeRandom}
}

// DefaultConfig is the PA10 patrol trajectory.
func DefaultConfig() *Config {
	return &Config{
		Name:      "pa10",
		Mode:      ModeTrajectory,
		Basis:     string(trajectory.Linear),
		Dt:        DefaultDt,
		MaxTicks:  DefaultMaxTicks,
		Seed:      DefaultSeed,
		Joints:    PA10Joints(),
		Patterns:  PA10Patterns(),
		Waypoints: PA10Waypoints(),
		Windows:   fromWindows(pattern.DefaultWindows()),
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver unmarshals the file at path over a copy of base. Keys missing
// from the file keep the values of base.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Joints = append([]JointConfig(nil), c.Joints...)
	out.Patterns = copyRows(c.Patterns)
	out.Windows = append([]WindowConfig(nil), c.Windows...)
	out.Waypoints = make([]WaypointConfig, len(c.Waypoints))
	for i, w := range c.Waypoints {
		out.Waypoints[i] = WaypointConfig{Time: w.Time, Values: append([]float64(nil), w.Values...)}
		if w.Pattern != nil {
			p := *w.Pattern
			out.Waypoints[i].Pattern = &p
		}
	}
	return &out
}

// Dim is the joint count of every target vector.
func (c *Config) Dim() int { return len(c.Joints) }

// Validate reports every problem in the config at once.
func (c *Config) Validate() error {
	var err error
	invalid := func(format string, args ...any) {
		err = multierr.Append(err, fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalid))
	}

	switch c.Mode {
	case ModeTrajectory, ModePattern, ModeRandom:
	default:
		invalid("unknown mode %q", c.Mode)
	}
	if _, perr := trajectory.ParseBasis(c.Basis); perr != nil {
		err = multierr.Append(err, perr)
	}
	if !(c.Dt > 0) || math.IsInf(c.Dt, 0) {
		invalid("dt must be positive, got %v", c.Dt)
	}
	if c.Duration < 0 || math.IsNaN(c.Duration) {
		invalid("duration must not be negative, got %v", c.Duration)
	}
	if c.MaxTicks < 0 {
		invalid("max_ticks must not be negative, got %d", c.MaxTicks)
	}

	dim := c.Dim()
	if dim == 0 {
		invalid("no joints")
	}
	for i, j := range c.Joints {
		if j.LimitDeg < 0 || math.IsNaN(j.LimitDeg) || math.IsInf(j.LimitDeg, 0) {
			invalid("joint %d (%s) limit %v", i, j.Name, j.LimitDeg)
		}
	}
	for i, row := range c.Patterns {
		if len(row) != dim {
			invalid("pattern %d has %d values, want %d", i, len(row), dim)
		}
	}

	switch c.Mode {
	case ModeTrajectory:
		if len(c.Waypoints) < 2 {
			invalid("trajectory mode needs at least two waypoints, got %d", len(c.Waypoints))
		}
		for i, w := range c.Waypoints {
			if i > 0 && w.Time <= c.Waypoints[i-1].Time {
				invalid("waypoint %d time %v not after %v", i, w.Time, c.Waypoints[i-1].Time)
			}
			switch {
			case w.Pattern != nil && w.Values != nil:
				invalid("waypoint %d sets both pattern and values", i)
			case w.Pattern != nil:
				if *w.Pattern < 0 || *w.Pattern >= len(c.Patterns) {
					invalid("waypoint %d references pattern %d of %d", i, *w.Pattern, len(c.Patterns))
				}
			case len(w.Values) != dim:
				invalid("waypoint %d has %d values, want %d", i, len(w.Values), dim)
			}
		}
	case ModePattern, ModeRandom:
		if _, serr := c.Selector(); serr != nil {
			err = multierr.Append(err, serr)
		}
		if c.Mode == ModePattern {
			for i, w := range c.Windows {
				if w.Pattern >= len(c.Patterns) {
					invalid("window %d references pattern %d of %d", i, w.Pattern, len(c.Patterns))
				}
			}
		}
	}

	return err
}

// WaypointSet builds the waypoint set, resolving pattern references.
func (c *Config) WaypointSet() (*trajectory.WaypointSet, error) {
	set := trajectory.NewWaypointSet(c.Dim())
	for i, w := range c.Waypoints {
		values := w.Values
		if w.Pattern != nil {
			if *w.Pattern < 0 || *w.Pattern >= len(c.Patterns) {
				return nil, fmt.Errorf("waypoint %d references pattern %d of %d: %w", i, *w.Pattern, len(c.Patterns), ErrInvalid)
			}
			values = c.Patterns[*w.Pattern]
		}
		if err := set.Append(w.Time, values); err != nil {
			return nil, fmt.Errorf("waypoint %d: %w", i, err)
		}
	}
	return set, nil
}

// Limits returns the symmetric joint limits in degrees.
func (c *Config) Limits() []pattern.Limit {
	limits := make([]pattern.Limit, len(c.Joints))
	for i, j := range c.Joints {
		limits[i] = pattern.Symmetric(j.LimitDeg)
	}
	return limits
}

// Selector builds the pattern-window selector.
func (c *Config) Selector() (*pattern.Selector, error) {
	ws := make([]pattern.Window, len(c.Windows))
	for i, w := range c.Windows {
		ws[i] = pattern.Window{Start: w.Start, Pattern: w.Pattern}
	}
	return pattern.NewSelector(ws)
}

// PatternTable returns a copy of the pattern rows (radians).
func (c *Config) PatternTable() [][]float64 { return copyRows(c.Patterns) }

// ParsedBasis returns the interpolation basis, Linear when unset.
func (c *Config) ParsedBasis() (trajectory.Basis, error) {
	return trajectory.ParseBasis(c.Basis)
}

func (c *Config) SimConfig() sim.Config {
	return sim.Config{
		Dt:       c.Dt,
		Duration: c.Duration,
		MaxTicks: c.MaxTicks,
		Seed:     c.Seed,
	}
}

func copyRows(rows [][]float64) [][]float64 {
	if rows == nil {
		return nil
	}
	out := make([][]float64, len(rows))
	for i, r := range rows {
		out[i] = append([]float64(nil), r...)
	}
	return out
}

func fromWindows(ws []pattern.Window) []WindowConfig {
	out := make([]WindowConfig, len(ws))
	for i, w := range ws {
		out[i] = WindowConfig{Start: w.Start, Pattern: w.Pattern}
	}
	return out
}
