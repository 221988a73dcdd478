package detect

import (
	"math"
	"sort"
)

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}

// stddev returns the population standard deviation.
func stddev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	ss := 0.0
	for _, v := range values {
		d := v - m
		ss += d * d
	}

	return math.Sqrt(ss / float64(len(values)))
}

// median returns the median of values; the input is not modified.
func median(values []float64) float64 {
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

// mad returns the median absolute deviation from the median.
func mad(values []float64) float64 {
	m := median(values)
	dev := make([]float64, len(values))
	for i, v := range values {
		dev[i] = math.Abs(v - m)
	}

	return median(dev)
}

// theilSenSlope returns the median of all pairwise slopes, a trend estimate
// that tolerates heavy outlier contamination. Returns ok=false when no pair
// of points has distinct x values.
func theilSenSlope(x, y []float64) (slope float64, ok bool) {
	slopes := make([]float64, 0, len(x)*(len(x)-1)/2)
	for i := range x {
		for j := i + 1; j < len(x); j++ {
			dx := x[j] - x[i]
			if dx == 0 {
				continue
			}
			slopes = append(slopes, (y[j]-y[i])/dx)
		}
	}
	if len(slopes) == 0 {
		return 0, false
	}

	return median(slopes), true
}

// orderedByOutdoor returns copies of the (x, y) pairs sorted by x.
func orderedByOutdoor(x, y []float64) ([]float64, []float64) {
	idx := make([]int, len(x))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return x[idx[a]] < x[idx[b]] })

	ox := make([]float64, len(x))
	oy := make([]float64, len(y))
	for k, i := range idx {
		ox[k] = x[i]
		oy[k] = y[i]
	}

	return ox, oy
}

// trendFit is the single unweighted least-squares line used for residual
// computation. Returns ok=false on fewer than 2 points or zero x variance.
func trendFit(x, y []float64) (slope, intercept float64, ok bool) {
	n := len(x)
	if n < 2 {
		return 0, 0, false
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
		return 0, 0, false
	}

	slope = (float64(n)*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / float64(n)

	return slope, intercept, true
}
