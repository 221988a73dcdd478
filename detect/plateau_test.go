package detect

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/heizkurve/curve"
	"github.com/arloliu/heizkurve/noise"
	"github.com/arloliu/heizkurve/series"
	"github.com/arloliu/heizkurve/simulate"
)

// clampedConfig narrows the flow band so a wide outdoor sweep drives both
// the day and the night curve into each clamp.
func clampedConfig() curve.Config {
	cfg := curve.DefaultConfig()
	cfg.MinFlow = 30

	return cfg
}

// clampedSeries sweeps a wide outdoor range through the clamped test curve
// with mild noise, alternating day and night samples, so both flow limits
// are reached many times by both modes.
func clampedSeries(t *testing.T, sigma float64) *series.Series {
	t.Helper()

	cfg := clampedConfig()
	rng := rand.New(rand.NewSource(7))
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	s := series.New(4000)
	for i := 0; i < 4000; i++ {
		outdoor := -28.0 + 42.0*float64(i)/4000
		hour := 12
		if i%2 == 1 {
			hour = 23
		}
		flow, on := cfg.FlowTemperature(outdoor, hour)
		if !on {
			continue
		}
		ts := start.Add(time.Duration(i) * 15 * time.Minute)
		ts = time.Date(ts.Year(), ts.Month(), ts.Day(), hour, ts.Minute(), 0, 0, time.UTC)
		s.Append(ts, outdoor, flow+rng.NormFloat64()*sigma)
	}

	return s
}

func TestDetectLimitsFindsBothClamps(t *testing.T) {
	cfg := clampedConfig()
	s := clampedSeries(t, 0.5)

	limits := DetectLimits(s)
	require.True(t, limits.Upper.Found)
	require.True(t, limits.Lower.Found)
	require.InDelta(t, cfg.MaxFlow, limits.Upper.Value, 1.5)
	require.InDelta(t, cfg.MinFlow, limits.Lower.Value, 1.5)
}

func TestLinearMaskExcludesClampedSamples(t *testing.T) {
	s := clampedSeries(t, 0.5)
	limits := DetectLimits(s)
	require.True(t, limits.Upper.Found)
	require.True(t, limits.Lower.Found)

	masked := 0
	for i, in := range limits.LinearMask {
		if !in {
			continue
		}
		masked++
		require.Less(t, s.Flow[i], limits.Upper.Value-linearMargin)
		require.Greater(t, s.Flow[i], limits.Lower.Value+linearMargin)
	}
	require.Greater(t, masked, s.Len()/2)
}

func TestDetectLimitsUnclampedWeather(t *testing.T) {
	// A simulated winter month against the factory curve never reaches either
	// clamp: the 75/25 °C flow band lies outside the weather envelope. The
	// sorted distribution tails still look locally flat (extreme order
	// statistics always do), so only the confirmation stage stands between a
	// smooth tail and a fabricated limit.
	cfg := curve.DefaultConfig()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s, err := simulate.Generate(cfg, noise.Clean(), start, 30, 42)
	require.NoError(t, err)

	limits := DetectLimits(s)
	require.False(t, limits.Upper.Found)
	require.False(t, limits.Lower.Found)

	for i := range limits.LinearMask {
		require.True(t, limits.LinearMask[i])
	}
}

func TestDetectLimitsOutlierTailsRejected(t *testing.T) {
	// Unclamped curve whose distribution tails are widely scattered outliers
	// instead of repeated clamp values: no qualifying low-variance window
	// exists, so neither bound may be reported.
	cfg := curve.DefaultConfig()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rng := rand.New(rand.NewSource(3))

	s := series.New(2000)
	for i := 0; i < 2000; i++ {
		outdoor := -5.0 + 10.0*float64(i)/2000
		flow, on := cfg.FlowTemperature(outdoor, 12)
		require.True(t, on)
		flow += rng.NormFloat64() * 1.5
		switch {
		case i%100 == 0:
			flow += 60 + 60*rng.Float64()
		case i%100 == 50:
			flow -= 60 + 60*rng.Float64()
		}
		s.Append(start.Add(time.Duration(i)*15*time.Minute), outdoor, flow)
	}

	limits := DetectLimits(s)
	require.False(t, limits.Upper.Found)
	require.False(t, limits.Lower.Found)

	// With no bounds every present sample stays in the linear region.
	for i := range limits.LinearMask {
		require.True(t, limits.LinearMask[i])
	}
}

func TestDetectLimitsDegenerateInput(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	// Too few samples for any tail scan.
	tiny := series.New(4)
	for i := 0; i < 4; i++ {
		tiny.Append(start.Add(time.Duration(i)*time.Minute), float64(i), 40+float64(i))
	}
	limits := DetectLimits(tiny)
	require.False(t, limits.Upper.Found)
	require.False(t, limits.Lower.Found)

	// All-missing series.
	gone := series.New(20)
	for i := 0; i < 20; i++ {
		gone.Append(start.Add(time.Duration(i)*time.Minute), float64(i), math.NaN())
	}
	limits = DetectLimits(gone)
	require.False(t, limits.Upper.Found)
	for _, in := range limits.LinearMask {
		require.False(t, in)
	}
}
