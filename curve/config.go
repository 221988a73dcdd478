package curve

import (
	"fmt"

	"github.com/arloliu/heizkurve/errs"
)

// Temperatures outside this band are physically implausible for a hydronic
// heating circuit and rejected at construction time.
const (
	minPlausibleTemp = -30.0
	maxPlausibleTemp = 100.0
)

// Config holds the parameters of one heating curve.
//
// A Config is a value type: construct it once per simulation or extraction
// run, call Validate, and pass it by value. Nothing in this module mutates a
// Config after construction.
//
// Fields:
//   - Slope: heating-curve slope K, typically 0.2-2.0
//   - BaseTemperature: base flow temperature at zero room/outdoor difference
//   - DayTarget / NightTarget: target room temperatures (°C)
//   - MinFlow / MaxFlow: operating limits the flow temperature is clamped to
//   - SummerCutoff: outdoor temperature at or above which heating is off
//   - NightStartHour / NightEndHour: night-setback window, may wrap midnight
type Config struct {
	Slope           float64 `yaml:"slope"`
	BaseTemperature float64 `yaml:"t_base"`
	DayTarget       float64 `yaml:"t_room_day"`
	NightTarget     float64 `yaml:"t_room_night"`
	MinFlow         float64 `yaml:"t_vorlauf_min"`
	MaxFlow         float64 `yaml:"t_vorlauf_max"`
	SummerCutoff    float64 `yaml:"t_outdoor_summer_cutoff"`
	NightStartHour  int     `yaml:"night_start_hour"`
	NightEndHour    int     `yaml:"night_end_hour"`
}

// DefaultConfig returns the factory-default heating curve: slope 1.4,
// 20/16 °C day/night targets, 25-75 °C operating limits, 15 °C summer
// cutoff and a 22:00-06:00 night window.
func DefaultConfig() Config {
	return Config{
		Slope:           1.4,
		BaseTemperature: 20.0,
		DayTarget:       20.0,
		NightTarget:     16.0,
		MinFlow:         25.0,
		MaxFlow:         75.0,
		SummerCutoff:    15.0,
		NightStartHour:  22,
		NightEndHour:    6,
	}
}

// Validate checks the Config invariants and returns ErrInvalidConfig
// (wrapped with a description of the violation) on the first failure.
//
// Invariants:
//   - Slope > 0
//   - MinFlow < MaxFlow
//   - DayTarget > NightTarget
//   - every temperature within -30..100 °C
//   - night hours within 0..23
func (c Config) Validate() error {
	if c.Slope <= 0 {
		return fmt.Errorf("%w: slope must be positive, got %g", errs.ErrInvalidConfig, c.Slope)
	}
	if c.MinFlow >= c.MaxFlow {
		return fmt.Errorf("%w: min flow %g must be below max flow %g", errs.ErrInvalidConfig, c.MinFlow, c.MaxFlow)
	}
	if c.DayTarget <= c.NightTarget {
		return fmt.Errorf("%w: day target %g must exceed night target %g", errs.ErrInvalidConfig, c.DayTarget, c.NightTarget)
	}

	temps := map[string]float64{
		"base temperature": c.BaseTemperature,
		"day target":       c.DayTarget,
		"night target":     c.NightTarget,
		"min flow":         c.MinFlow,
		"max flow":         c.MaxFlow,
		"summer cutoff":    c.SummerCutoff,
	}
	for name, t := range temps {
		if t < minPlausibleTemp || t > maxPlausibleTemp {
			return fmt.Errorf("%w: %s %g outside plausible range [%g, %g]",
				errs.ErrInvalidConfig, name, t, minPlausibleTemp, maxPlausibleTemp)
		}
	}

	if c.NightStartHour < 0 || c.NightStartHour > 23 {
		return fmt.Errorf("%w: night start hour %d outside 0..23", errs.ErrInvalidConfig, c.NightStartHour)
	}
	if c.NightEndHour < 0 || c.NightEndHour > 23 {
		return fmt.Errorf("%w: night end hour %d outside 0..23", errs.ErrInvalidConfig, c.NightEndHour)
	}

	return nil
}
