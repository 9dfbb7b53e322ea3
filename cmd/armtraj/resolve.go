package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/san-kum/armtraj/internal/config"
)

// resolveConfig layers the preset, the config file and the flags the user
// set explicitly, in that order.
func resolveConfig(flags *pflag.FlagSet, presetName, path string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if presetName != "" {
		cfg = config.GetPreset(presetName)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", presetName, config.ListPresets())
		}
	}

	if path != "" {
		loaded, err := config.LoadOver(path, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if flags.Changed("mode") {
		cfg.Mode = mode
	}
	if flags.Changed("basis") {
		cfg.Basis = basis
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("max-ticks") {
		cfg.MaxTicks = maxTicks
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
