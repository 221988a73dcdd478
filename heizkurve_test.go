package heizkurve

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/heizkurve/curve"
	"github.com/arloliu/heizkurve/errs"
	"github.com/arloliu/heizkurve/fit"
	"github.com/arloliu/heizkurve/noise"
	"github.com/arloliu/heizkurve/series"
	"github.com/arloliu/heizkurve/simulate"
)

var e2eStart = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// e2eConfig is the ground truth used across the pipeline tests: the factory
// default curve with a 55 °C maximum so the upper clamp is reached often
// during a simulated winter month.
func e2eConfig() curve.Config {
	cfg := curve.DefaultConfig()
	cfg.MaxFlow = 55

	return cfg
}

func paramsFor(t *testing.T, res *Result, estimator string) fit.Parameters {
	t.Helper()
	for _, p := range res.Parameters {
		if p.Estimator == estimator {
			return p
		}
	}
	t.Fatalf("no parameters for estimator %q (failed: %v)", estimator, res.Failed)

	return fit.Parameters{}
}

func TestExtractCleanProfile(t *testing.T) {
	cfg := e2eConfig()
	s, err := simulate.Generate(cfg, noise.Clean(), e2eStart, 30, 42)
	require.NoError(t, err)

	res, err := Extract(s, WithSeed(42))
	require.NoError(t, err)
	require.Empty(t, res.Failed)
	require.Empty(t, res.ModeFallback)
	require.NotNil(t, res.Modes)
	require.Greater(t, res.Modes.Accuracy, 0.9)
	require.False(t, res.Modes.SlopeInverted)

	require.Len(t, res.Parameters, 2)
	for _, p := range res.Parameters {
		require.InDelta(t, cfg.Slope, p.K, 0.1, p.Estimator)
		require.InDelta(t, cfg.DayTarget, p.DayTarget, 1.0, p.Estimator)
		require.True(t, p.NightResolved, p.Estimator)
		require.InDelta(t, cfg.NightTarget, p.NightTarget, 1.0, p.Estimator)
		require.True(t, p.BaseAssumed, p.Estimator)
	}

	// The upper clamp is hit on cold days and must be detected, with the
	// value measured on the plateau itself. The lower clamp is never reached
	// in this scenario: reporting it anyway would just be a smooth
	// distribution tail dressed up as a limit.
	require.True(t, res.Limits.Upper.Found)
	require.Greater(t, res.Limits.Upper.Value, cfg.MaxFlow-1.0)
	require.InDelta(t, cfg.MaxFlow, res.Limits.Upper.Value, 2.0)
	require.False(t, res.Limits.Lower.Found)
}

func TestExtractNoisyProfileRobustness(t *testing.T) {
	cfg := e2eConfig()
	s, err := simulate.Generate(cfg, noise.Noisy(), e2eStart, 30, 42)
	require.NoError(t, err)

	res, err := Extract(s, WithSeed(42))
	require.NoError(t, err)

	ols := paramsFor(t, res, "ols")
	ransac := paramsFor(t, res, "ransac")

	ransacErr := math.Abs(ransac.K - cfg.Slope)
	olsErr := math.Abs(ols.K - cfg.Slope)
	require.Less(t, ransacErr, 0.3)

	// Mean-anchored outliers drag the least-squares slope toward zero; the
	// consensus estimator rejects them and must come out closer.
	require.Less(t, ransacErr, olsErr)
	require.Less(t, ransac.Day.InlierRatio, 1.0)
}

func TestExtractDeterminism(t *testing.T) {
	cfg := e2eConfig()
	s, err := simulate.Generate(cfg, noise.Moderate(), e2eStart, 20, 42)
	require.NoError(t, err)

	a, err := Extract(s, WithSeed(7))
	require.NoError(t, err)
	b, err := Extract(s, WithSeed(7))
	require.NoError(t, err)

	require.Equal(t, a.Parameters, b.Parameters)
	require.Equal(t, a.Limits, b.Limits)
}

func TestExtractWithLabeledModes(t *testing.T) {
	cfg := e2eConfig()
	s, err := simulate.Generate(cfg, noise.Clean(), e2eStart, 30, 42)
	require.NoError(t, err)

	res, err := Extract(s, WithSeed(42), WithLabeledModes())
	require.NoError(t, err)
	require.Equal(t, "labels", res.ModeFallback)
	require.Nil(t, res.Modes)

	p := paramsFor(t, res, "ols")
	require.InDelta(t, cfg.Slope, p.K, 0.1)
	require.InDelta(t, cfg.DayTarget, p.DayTarget, 1.0)
	require.InDelta(t, cfg.NightTarget, p.NightTarget, 1.0)

	// Labeled extraction on an unlabeled series is refused outright.
	unlabeled := s.Clone()
	unlabeled.Night = nil
	_, err = Extract(unlabeled, WithLabeledModes())
	require.Error(t, err)
}

func TestExtractWithKnownBase(t *testing.T) {
	cfg := e2eConfig()
	s, err := simulate.Generate(cfg, noise.Clean(), e2eStart, 30, 42)
	require.NoError(t, err)

	res, err := Extract(s, WithSeed(42), WithBaseTemperature(cfg.BaseTemperature))
	require.NoError(t, err)

	p := paramsFor(t, res, "ransac")
	require.False(t, p.BaseAssumed)
	require.InDelta(t, cfg.BaseTemperature, p.BaseTemperature, 1e-12)
	require.InDelta(t, cfg.DayTarget, p.DayTarget, 1.0)
}

func TestExtractCustomEstimators(t *testing.T) {
	cfg := e2eConfig()
	s, err := simulate.Generate(cfg, noise.Clean(), e2eStart, 10, 42)
	require.NoError(t, err)

	res, err := Extract(s, WithEstimators(fit.NewOLS()))
	require.NoError(t, err)
	require.Len(t, res.Parameters, 1)
	require.Equal(t, "ols", res.Parameters[0].Estimator)
}

func TestExtractSingleModeFallback(t *testing.T) {
	// A perfect unlabeled line has constant residuals: mode separation is
	// degenerate and without labels everything falls back to a single day
	// fit. Integer-valued samples keep the residuals exactly zero.
	s := series.New(200)
	for i := 0; i < 200; i++ {
		outdoor := float64(i)
		s.Append(e2eStart.Add(time.Duration(i)*15*time.Minute), outdoor, 48-2*outdoor)
	}

	res, err := Extract(s)
	require.NoError(t, err)
	require.Equal(t, "single", res.ModeFallback)
	require.True(t, res.Partial)

	p := paramsFor(t, res, "ols")
	require.InDelta(t, 2.0, p.K, 1e-6)
	require.False(t, p.NightResolved)
	require.True(t, math.IsNaN(p.NightTarget))
	require.True(t, p.Partial)
}

func TestExtractRejectsUnusableSeries(t *testing.T) {
	_, err := Extract(series.New(0))
	require.ErrorIs(t, err, errs.ErrEmptySeries)

	s := series.New(3)
	s.Append(e2eStart, 1, math.NaN())
	s.Append(e2eStart.Add(time.Minute), 2, math.NaN())
	s.Append(e2eStart.Add(2*time.Minute), 3, 40)
	_, err = Extract(s)
	require.ErrorIs(t, err, errs.ErrDegenerateInput)
}
