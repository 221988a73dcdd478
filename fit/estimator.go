package fit

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/arloliu/heizkurve/errs"
)

// Coefficients holds one fitted line with its goodness-of-fit metrics.
//
// InlierRatio is the fraction of samples the estimator accepted as inliers;
// it is 1 for estimators that use every sample (OLS).
type Coefficients struct {
	Slope       float64
	Intercept   float64
	RSquared    float64
	InlierRatio float64
	N           int
}

// Estimator fits the line flow = intercept + slope*outdoor.
//
// Implementations must be deterministic: any internal randomness comes from
// an explicit seed supplied at construction, never from process-wide state.
type Estimator interface {
	// Name identifies the estimator in result records and reports.
	Name() string
	// Fit fits the line to the given samples. It returns ErrDegenerateInput
	// (wrapped) when the input cannot support a fit.
	Fit(x, y []float64) (Coefficients, error)
}

// OLS is the closed-form ordinary least squares estimator. It has no
// hyperparameters and fails only on degenerate input: fewer than two points
// or zero outdoor-temperature variance.
type OLS struct{}

var _ Estimator = OLS{}

// NewOLS returns the ordinary least squares estimator.
func NewOLS() OLS {
	return OLS{}
}

// Name returns "ols".
func (OLS) Name() string { return "ols" }

// Fit solves the normal equations over all samples.
func (OLS) Fit(x, y []float64) (Coefficients, error) {
	return olsFit(x, y)
}

func olsFit(x, y []float64) (Coefficients, error) {
	n := len(x)
	if n != len(y) {
		return Coefficients{}, fmt.Errorf("mismatched sample lengths: %d x vs %d y", n, len(y))
	}
	if n < 2 {
		return Coefficients{}, fmt.Errorf("%w: %d samples, need at least 2", errs.ErrDegenerateInput, n)
	}

	var sumX, sumY, sumXY, sumX2 float64
	for i := 0; i < n; i++ {
		sumX += x[i]
		sumY += y[i]
		sumXY += x[i] * y[i]
		sumX2 += x[i] * x[i]
	}

	denom := float64(n)*sumX2 - sumX*sumX
	if denom == 0 {
		return Coefficients{}, fmt.Errorf("%w: zero variance in outdoor temperature", errs.ErrDegenerateInput)
	}

	slope := (float64(n)*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / float64(n)

	return Coefficients{
		Slope:       slope,
		Intercept:   intercept,
		RSquared:    rSquared(x, y, slope, intercept),
		InlierRatio: 1,
		N:           n,
	}, nil
}

// rSquared returns the coefficient of determination of the line over the
// given samples. A zero total sum of squares yields 0.
func rSquared(x, y []float64, slope, intercept float64) float64 {
	if len(y) == 0 {
		return 0
	}

	meanY := 0.0
	for _, v := range y {
		meanY += v
	}
	meanY /= float64(len(y))

	ssTot, ssRes := 0.0, 0.0
	for i := range y {
		d := y[i] - meanY
		ssTot += d * d
		r := y[i] - (intercept + slope*x[i])
		ssRes += r * r
	}
	if ssTot == 0 {
		return 0
	}

	return 1 - ssRes/ssTot
}

// RANSAC is the sampling-consensus estimator: it repeatedly fits candidate
// lines to random minimal subsets, scores each candidate by how many samples
// fall within the residual threshold, and refits OLS over the winning
// consensus set. Outliers outside the threshold never influence the final
// coefficients.
type RANSAC struct {
	// Iterations is the number of random minimal subsets to try.
	Iterations int
	// Threshold classifies a sample as inlier when its absolute residual is
	// at or below it. Zero means auto: the median absolute deviation of y,
	// matching the common sampling-consensus default.
	Threshold float64

	seed int64
}

var _ Estimator = (*RANSAC)(nil)

// NewRANSAC returns a sampling-consensus estimator with the given seed and
// default hyperparameters (200 iterations, MAD auto threshold). The seed
// fully determines the sampled subsets, so two runs with identical input and
// seed produce identical output.
func NewRANSAC(seed int64) *RANSAC {
	return &RANSAC{
		Iterations: 200,
		seed:       seed,
	}
}

// Name returns "ransac".
func (*RANSAC) Name() string { return "ransac" }

// Fit runs the consensus search and returns the OLS refit over the largest
// inlier set, with InlierRatio reporting the consensus fraction.
func (r *RANSAC) Fit(x, y []float64) (Coefficients, error) {
	n := len(x)
	if n != len(y) {
		return Coefficients{}, fmt.Errorf("mismatched sample lengths: %d x vs %d y", n, len(y))
	}
	if n < 4 {
		return Coefficients{}, fmt.Errorf("%w: %d samples, need at least 4 for consensus sampling", errs.ErrDegenerateInput, n)
	}

	threshold := r.Threshold
	if threshold <= 0 {
		threshold = medianAbsDeviation(y)
	}
	if threshold <= 0 {
		return Coefficients{}, fmt.Errorf("%w: zero spread in flow temperature", errs.ErrDegenerateInput)
	}

	iterations := r.Iterations
	if iterations <= 0 {
		iterations = 200
	}

	rng := rand.New(rand.NewSource(r.seed))

	bestCount := 0
	bestErr := math.Inf(1)
	var bestMask []bool
	mask := make([]bool, n)

	for iter := 0; iter < iterations; iter++ {
		i := rng.Intn(n)
		j := rng.Intn(n - 1)
		if j >= i {
			j++
		}
		dx := x[j] - x[i]
		if dx == 0 {
			continue
		}
		slope := (y[j] - y[i]) / dx
		intercept := y[i] - slope*x[i]

		count := 0
		sumSq := 0.0
		for k := 0; k < n; k++ {
			res := math.Abs(y[k] - (intercept + slope*x[k]))
			if res <= threshold {
				mask[k] = true
				count++
				sumSq += res * res
			} else {
				mask[k] = false
			}
		}

		if count > bestCount || (count == bestCount && sumSq < bestErr) {
			bestCount = count
			bestErr = sumSq
			if bestMask == nil {
				bestMask = make([]bool, n)
			}
			copy(bestMask, mask)
		}
	}

	if bestCount < 2 {
		return Coefficients{}, fmt.Errorf("%w: no consensus set found", errs.ErrDegenerateInput)
	}

	inX := make([]float64, 0, bestCount)
	inY := make([]float64, 0, bestCount)
	for k := 0; k < n; k++ {
		if bestMask[k] {
			inX = append(inX, x[k])
			inY = append(inY, y[k])
		}
	}

	coeffs, err := olsFit(inX, inY)
	if err != nil {
		return Coefficients{}, fmt.Errorf("consensus refit failed: %w", err)
	}
	coeffs.InlierRatio = float64(bestCount) / float64(n)
	coeffs.N = n

	return coeffs, nil
}

// medianAbsDeviation returns median(|y - median(y)|).
func medianAbsDeviation(y []float64) float64 {
	m := medianOf(y)
	dev := make([]float64, len(y))
	for i, v := range y {
		dev[i] = math.Abs(v - m)
	}

	return medianOf(dev)
}

func medianOf(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}

	return (sorted[mid-1] + sorted[mid]) / 2
}
