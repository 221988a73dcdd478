package fit

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/heizkurve/errs"
)

func TestRecoverWithAssumedBase(t *testing.T) {
	// Coefficients of the default curve: slope -K, intercepts base+K*target
	// with base = day target = 20 and K = 1.4.
	day := Coefficients{Slope: -1.4, Intercept: 48}
	night := Coefficients{Slope: -1.4, Intercept: 42.4}

	p, err := Recover("ols", day, &night, 0, false)
	require.NoError(t, err)

	require.InDelta(t, 1.4, p.K, 1e-9)
	require.InDelta(t, 20.0, p.DayTarget, 1e-9)
	require.InDelta(t, 16.0, p.NightTarget, 1e-9)
	require.InDelta(t, 20.0, p.BaseTemperature, 1e-9)
	require.True(t, p.BaseAssumed)
	require.True(t, p.NightResolved)
	require.False(t, p.Partial)
	require.InDelta(t, 0, p.SlopeSpread, 1e-12)
}

func TestRecoverWithKnownBase(t *testing.T) {
	day := Coefficients{Slope: -1.4, Intercept: 53}
	night := Coefficients{Slope: -1.4, Intercept: 47.4}

	// base 25: day target = (53-25)/1.4 = 20.
	p, err := Recover("ols", day, &night, 25, true)
	require.NoError(t, err)

	require.InDelta(t, 20.0, p.DayTarget, 1e-9)
	require.InDelta(t, 16.0, p.NightTarget, 1e-9)
	require.InDelta(t, 25.0, p.BaseTemperature, 1e-12)
	require.False(t, p.BaseAssumed)
}

func TestRecoverAveragesModeSlopes(t *testing.T) {
	day := Coefficients{Slope: -1.5, Intercept: 50}
	night := Coefficients{Slope: -1.3, Intercept: 44}

	p, err := Recover("ransac", day, &night, 0, false)
	require.NoError(t, err)

	require.InDelta(t, 1.4, p.K, 1e-9)
	require.InDelta(t, 1.5, p.KDay, 1e-9)
	require.InDelta(t, 1.3, p.KNight, 1e-9)
	require.InDelta(t, 0.2, p.SlopeSpread, 1e-9)
}

func TestRecoverWithoutNightFit(t *testing.T) {
	day := Coefficients{Slope: -1.4, Intercept: 48}

	p, err := Recover("ols", day, nil, 0, false)
	require.NoError(t, err)

	require.False(t, p.NightResolved)
	require.True(t, math.IsNaN(p.NightTarget))
	require.True(t, p.Partial)
	require.InDelta(t, 20.0, p.DayTarget, 1e-9)
}

func TestRecoverDegenerateSlopes(t *testing.T) {
	// Zero slope leaves the targets unidentifiable.
	_, err := Recover("ols", Coefficients{Slope: 0, Intercept: 48}, nil, 0, false)
	require.ErrorIs(t, err, errs.ErrDegenerateInput)

	// Slope exactly -1 (K = 1... fitted slope +1 gives K = -1) makes the
	// assumed-base substitution divide by zero.
	_, err = Recover("ols", Coefficients{Slope: 1, Intercept: 48}, nil, 0, false)
	require.ErrorIs(t, err, errs.ErrDegenerateInput)

	// With a known base the same coefficients are fine.
	p, err := Recover("ols", Coefficients{Slope: 1, Intercept: 48}, nil, 25, true)
	require.NoError(t, err)
	require.InDelta(t, -23.0, p.DayTarget, 1e-9)
}
