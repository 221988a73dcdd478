package fit

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/heizkurve/errs"
)

// linearSamples draws n points from y = intercept + slope*x with Gaussian
// noise over a spread outdoor range.
func linearSamples(rng *rand.Rand, n int, slope, intercept, sigma float64) (x, y []float64) {
	x = make([]float64, n)
	y = make([]float64, n)
	for i := range x {
		x[i] = -12 + 24*rng.Float64()
		y[i] = intercept + slope*x[i] + rng.NormFloat64()*sigma
	}

	return x, y
}

func TestOLSExactRecovery(t *testing.T) {
	x := []float64{-10, -5, 0, 5, 10}
	y := make([]float64, len(x))
	for i := range x {
		y[i] = 48 - 1.4*x[i]
	}

	c, err := NewOLS().Fit(x, y)
	require.NoError(t, err)
	require.InDelta(t, -1.4, c.Slope, 1e-9)
	require.InDelta(t, 48.0, c.Intercept, 1e-9)
	require.InDelta(t, 1.0, c.RSquared, 1e-9)
	require.InDelta(t, 1.0, c.InlierRatio, 1e-12)
	require.Equal(t, len(x), c.N)
}

func TestOLSNoisyRecovery(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	x, y := linearSamples(rng, 2000, -1.4, 48, 2.0)

	c, err := NewOLS().Fit(x, y)
	require.NoError(t, err)
	require.InDelta(t, -1.4, c.Slope, 0.03)
	require.InDelta(t, 48.0, c.Intercept, 0.3)
	require.Greater(t, c.RSquared, 0.9)
}

func TestOLSDegenerateInput(t *testing.T) {
	_, err := NewOLS().Fit([]float64{1}, []float64{2})
	require.ErrorIs(t, err, errs.ErrDegenerateInput)

	_, err = NewOLS().Fit([]float64{3, 3, 3}, []float64{1, 2, 3})
	require.ErrorIs(t, err, errs.ErrDegenerateInput)

	_, err = NewOLS().Fit([]float64{1, 2}, []float64{1, 2, 3})
	require.Error(t, err)
}

func TestRANSACMatchesOLSOnCleanData(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	x, y := linearSamples(rng, 1000, -1.4, 48, 1.0)

	ols, err := NewOLS().Fit(x, y)
	require.NoError(t, err)
	ransac, err := NewRANSAC(42).Fit(x, y)
	require.NoError(t, err)

	require.InDelta(t, ols.Slope, ransac.Slope, 0.05)
	require.InDelta(t, ols.Intercept, ransac.Intercept, 0.5)
}

func TestRANSACResistsOutliers(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	x, y := linearSamples(rng, 2000, -1.4, 48, 1.0)

	// Replace 5% of the samples with mean-anchored outliers, the way a stuck
	// sensor reports: no slope information left in them.
	meanY := 0.0
	for _, v := range y {
		meanY += v
	}
	meanY /= float64(len(y))
	for i := 0; i < len(y); i += 20 {
		magnitude := 10 + 20*rng.Float64()
		if rng.Float64() < 0.5 {
			magnitude = -magnitude
		}
		y[i] = meanY + magnitude
	}

	ols, err := NewOLS().Fit(x, y)
	require.NoError(t, err)
	ransac, err := NewRANSAC(42).Fit(x, y)
	require.NoError(t, err)

	olsErr := math.Abs(ols.Slope - (-1.4))
	ransacErr := math.Abs(ransac.Slope - (-1.4))
	require.Less(t, ransacErr, olsErr)
	require.InDelta(t, -1.4, ransac.Slope, 0.05)
	require.Less(t, ransac.InlierRatio, 1.0)
	require.Greater(t, ransac.InlierRatio, 0.7)
}

func TestRANSACDeterminism(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	x, y := linearSamples(rng, 500, -1.0, 40, 3.0)

	a, err := NewRANSAC(7).Fit(x, y)
	require.NoError(t, err)
	b, err := NewRANSAC(7).Fit(x, y)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestRANSACDegenerateInput(t *testing.T) {
	_, err := NewRANSAC(1).Fit([]float64{1, 2, 3}, []float64{1, 2, 3})
	require.ErrorIs(t, err, errs.ErrDegenerateInput)

	// Zero spread in y makes the MAD threshold collapse.
	_, err = NewRANSAC(1).Fit([]float64{1, 2, 3, 4}, []float64{5, 5, 5, 5})
	require.ErrorIs(t, err, errs.ErrDegenerateInput)
}

func TestRANSACExplicitThreshold(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	x, y := linearSamples(rng, 500, -1.4, 48, 0.5)

	r := NewRANSAC(42)
	r.Threshold = 2.0
	c, err := r.Fit(x, y)
	require.NoError(t, err)
	require.InDelta(t, -1.4, c.Slope, 0.05)
	// Nearly everything lies within two degrees of the line.
	require.Greater(t, c.InlierRatio, 0.95)
}
