package simulate

import (
	"math"
	"math/rand"
	"time"
)

// Step is the sampling interval of generated weather data.
const Step = 15 * time.Minute

// Weather returns a synthetic outdoor-temperature course starting at start
// and spanning the given number of days at 15-minute resolution.
//
// The course combines three components:
//   - a seasonal trend dipping mid-season (mild at the edges of winter)
//   - slow synoptic swings modeled as an AR(1) process over days
//   - a diurnal cycle peaking in the early afternoon
//
// The result is deterministic for a given (start, days, seed).
func Weather(start time.Time, days int, seed int64) ([]time.Time, []float64) {
	if days <= 0 {
		return nil, nil
	}

	rng := rand.New(rand.NewSource(seed))
	perDay := int(24 * time.Hour / Step)
	n := days * perDay

	timestamps := make([]time.Time, n)
	outdoor := make([]float64, n)

	// AR(1) synoptic component, updated once per day.
	const (
		synopticPhi   = 0.85
		synopticSigma = 2.5
	)
	synoptic := rng.NormFloat64() * synopticSigma

	for d := 0; d < days; d++ {
		if d > 0 {
			synoptic = synopticPhi*synoptic + rng.NormFloat64()*synopticSigma*0.6
		}
		// Seasonal mean: ~5 °C at the season edges, ~-3 °C mid-season.
		seasonal := 5.0 - 8.0*math.Sin(math.Pi*float64(d)/float64(days))

		for k := 0; k < perDay; k++ {
			i := d*perDay + k
			ts := start.Add(time.Duration(i) * Step)
			hourOfDay := float64(ts.Hour()) + float64(ts.Minute())/60

			// Diurnal cycle peaking around 14:00.
			diurnal := 3.0 * math.Cos(2*math.Pi*(hourOfDay-14)/24)

			timestamps[i] = ts
			outdoor[i] = seasonal + synoptic + diurnal
		}
	}

	return timestamps, outdoor
}
