package cmd

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/kmc-sim/sim/random"
)

// ThresholdsConfig represents a thresholds file of named Poisson presets.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type ThresholdsConfig struct {
	Version string                      `yaml:"version"`
	Presets map[string]ThresholdsPreset `yaml:"presets"`
}

// ThresholdsPreset is one named set of dispatch thresholds. A missing normal
// threshold disables the normal approximation.
type ThresholdsPreset struct {
	ExpVsInv float64  `yaml:"exp_vs_inv"`
	InvVsAc  float64  `yaml:"inv_vs_ac"`
	Normal   *float64 `yaml:"normal"`
}

// loadThresholdsConfig parses a thresholds file with strict field checking.
func loadThresholdsConfig(path string) (*ThresholdsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading thresholds file: %w", err)
	}
	var cfg ThresholdsConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing thresholds file: %w", err)
	}
	return &cfg, nil
}

// resolveThresholds looks name up in the thresholds file when one is given,
// then among the built-in presets.
func resolveThresholds(name, path string) (random.PoissonThresholds, error) {
	if path != "" {
		cfg, err := loadThresholdsConfig(path)
		if err != nil {
			return random.PoissonThresholds{}, err
		}
		if preset, ok := cfg.Presets[name]; ok {
			t := random.PoissonThresholds{ExpVsInv: preset.ExpVsInv, InvVsAc: preset.InvVsAc, Normal: math.Inf(1)}
			if preset.Normal != nil {
				t.Normal = *preset.Normal
			}
			if err := t.Validate(); err != nil {
				return random.PoissonThresholds{}, fmt.Errorf("preset %q: %w", name, err)
			}
			return t, nil
		}
	}
	return random.ThresholdsByName(name)
}
