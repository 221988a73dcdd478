package simulate

import (
	"time"

	"github.com/arloliu/heizkurve/curve"
	"github.com/arloliu/heizkurve/noise"
	"github.com/arloliu/heizkurve/series"
)

// Ideal evaluates the heating curve over the given outdoor course and
// returns a labeled series of ideal observations.
//
// Samples at or above the summer cutoff are dropped: heating is off there,
// so no flow temperature exists and they must not reach the fitting stages.
func Ideal(cfg curve.Config, timestamps []time.Time, outdoor []float64) (*series.Series, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := series.New(len(timestamps))
	s.Night = make([]bool, 0, len(timestamps))
	for i, ts := range timestamps {
		flow, on := cfg.FlowTemperature(outdoor[i], ts.Hour())
		if !on {
			continue
		}
		night := curve.IsNightHour(ts.Hour(), cfg.NightStartHour, cfg.NightEndHour)
		s.AppendLabeled(ts, outdoor[i], flow, night)
	}

	return s, nil
}

// Generate produces a complete synthetic dataset: synthetic weather from
// start over the given number of days, the ideal heating-curve response, and
// the profile's corruption applied on top. Weather and noise share the seed
// but use independent generators, so changing the profile never changes the
// underlying weather.
func Generate(cfg curve.Config, profile noise.Profile, start time.Time, days int, seed int64) (*series.Series, error) {
	timestamps, outdoor := Weather(start, days, seed)

	ideal, err := Ideal(cfg, timestamps, outdoor)
	if err != nil {
		return nil, err
	}

	return noise.Inject(ideal, profile, seed)
}
