package curve

import (
	"fmt"
	"sort"
)

// Preset describes a building archetype with its typical heating curve.
// Presets adjust the slope and operating limits of the default Config;
// targets, cutoff and night window keep their defaults.
type Preset struct {
	// Name identifies the preset.
	Name string
	// Description summarizes the building class and heat distribution system.
	Description string

	Slope   float64
	MinFlow float64
	MaxFlow float64
}

// buildingPresets covers the common residential building classes, from
// low-temperature floor heating up to unrenovated historic stock.
var buildingPresets = map[string]Preset{
	"floor-heating": {
		Name:        "floor-heating",
		Description: "Heat pump with floor heating in a well-insulated building",
		Slope:       0.3,
		MinFlow:     25,
		MaxFlow:     55,
	},
	"radiators-renovated": {
		Name:        "radiators-renovated",
		Description: "Modern radiators in a renovated, well-insulated building",
		Slope:       1.0,
		MinFlow:     25,
		MaxFlow:     65,
	},
	"radiators-standard": {
		Name:        "radiators-standard",
		Description: "Original radiators and insulation; common factory default",
		Slope:       1.4,
		MinFlow:     25,
		MaxFlow:     75,
	},
	"historic": {
		Name:        "historic",
		Description: "Unrenovated historic building with high heat loss",
		Slope:       1.6,
		MinFlow:     25,
		MaxFlow:     80,
	},
}

// PresetNames returns the names of all building presets in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(buildingPresets))
	for name := range buildingPresets {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// LookupPreset returns the building preset with the given name.
func LookupPreset(name string) (Preset, bool) {
	p, ok := buildingPresets[name]
	return p, ok
}

// PresetConfig returns the default Config adjusted for the named building
// preset, or an error listing the known presets when the name is unknown.
func PresetConfig(name string) (Config, error) {
	p, ok := buildingPresets[name]
	if !ok {
		return Config{}, fmt.Errorf("unknown building preset %q, available: %v", name, PresetNames())
	}

	cfg := DefaultConfig()
	cfg.Slope = p.Slope
	cfg.MinFlow = p.MinFlow
	cfg.MaxFlow = p.MaxFlow

	return cfg, nil
}
