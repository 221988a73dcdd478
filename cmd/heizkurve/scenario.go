package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/heizkurve/curve"
	"github.com/arloliu/heizkurve/noise"
	"github.com/arloliu/heizkurve/validate"
)

// Scenario is the YAML description of one simulation/extraction run. It
// doubles as the ground-truth record: extract grades its results against the
// scenario's curve when tolerances are present.
type Scenario struct {
	Name string `yaml:"name"`

	// Preset selects a building preset as the curve baseline; the optional
	// Curve block overrides individual fields on top of it.
	Preset string        `yaml:"preset"`
	Curve  *curve.Config `yaml:"curve"`

	// Profile names a canonical noise profile; Noise supplies a custom one.
	Profile string         `yaml:"profile"`
	Noise   *noise.Profile `yaml:"noise"`

	Start string `yaml:"start"`
	Days  int    `yaml:"days"`
	Seed  int64  `yaml:"seed"`

	Tolerances *validate.Tolerances `yaml:"tolerances"`
}

// LoadScenario reads and resolves a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	sc := &Scenario{}
	if err := yaml.Unmarshal(data, sc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario file %s: %w", path, err)
	}

	return sc, nil
}

// ResolveCurve builds the ground-truth curve configuration: the preset (or
// factory default) with any explicit curve block layered on top.
func (sc *Scenario) ResolveCurve() (curve.Config, error) {
	cfg := curve.DefaultConfig()
	if sc.Preset != "" {
		var err error
		cfg, err = curve.PresetConfig(sc.Preset)
		if err != nil {
			return curve.Config{}, err
		}
	}
	if sc.Curve != nil {
		cfg = *sc.Curve
	}

	if err := cfg.Validate(); err != nil {
		return curve.Config{}, err
	}

	return cfg, nil
}

// ResolveProfile builds the noise profile, preferring an inline block over a
// named canonical profile. Without either the clean profile applies.
func (sc *Scenario) ResolveProfile() (noise.Profile, error) {
	if sc.Noise != nil {
		if err := sc.Noise.Validate(); err != nil {
			return noise.Profile{}, err
		}

		return *sc.Noise, nil
	}
	if sc.Profile != "" {
		p, ok := noise.LookupProfile(sc.Profile)
		if !ok {
			return noise.Profile{}, fmt.Errorf("unknown noise profile %q", sc.Profile)
		}

		return p, nil
	}

	return noise.Clean(), nil
}

// ResolveStart parses the scenario start timestamp, defaulting to the most
// recent January 1st so a bare scenario simulates a heating season.
func (sc *Scenario) ResolveStart() (time.Time, error) {
	if sc.Start == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.UTC), nil
	}

	ts, err := time.Parse("2006-01-02", sc.Start)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad scenario start %q (want YYYY-MM-DD): %w", sc.Start, err)
	}

	return ts, nil
}
