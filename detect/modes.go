package detect

import (
	"fmt"
	"math"

	"github.com/arloliu/heizkurve/errs"
	"github.com/arloliu/heizkurve/series"
)

// Mode is the latent operating mode of one observation.
type Mode uint8

const (
	// ModeNight is the lower-residual (cooler target) cluster.
	ModeNight Mode = iota
	// ModeDay is the higher-residual (warmer target) cluster.
	ModeDay
)

// String returns "day" or "night".
func (m Mode) String() string {
	if m == ModeDay {
		return "day"
	}

	return "night"
}

// Assignment maps every observation index to its latent mode. It is always
// paired with the series it was computed from and is not persisted on its own.
//
// Labels and Valid are aligned with the source series; Labels[i] is only
// meaningful where Valid[i] is true (present flow value). Separation is the
// vertical gap in °C between the two per-cluster trend lines at the mean
// outdoor temperature (or between the residual cluster means when the
// refinement could not run). Accuracy is the agreement with the series'
// ground-truth night flags, or NaN for unlabeled data.
//
// SlopeInverted flags the positive-trend-slope edge case: the rule "higher
// residual cluster = day" assumes flow rises as outdoor temperature falls
// (negative regression slope). When the trend slope comes out positive the
// labels are still emitted under the same rule but should not be trusted.
type Assignment struct {
	Labels        []Mode
	Valid         []bool
	Separation    float64
	Accuracy      float64
	SlopeInverted bool
}

// DayMask returns the mask of valid observations labeled day-like.
func (a *Assignment) DayMask() []bool {
	return a.maskFor(ModeDay)
}

// NightMask returns the mask of valid observations labeled night-like.
func (a *Assignment) NightMask() []bool {
	return a.maskFor(ModeNight)
}

func (a *Assignment) maskFor(m Mode) []bool {
	mask := make([]bool, len(a.Labels))
	for i := range a.Labels {
		mask[i] = a.Valid[i] && a.Labels[i] == m
	}

	return mask
}

// SeparateModes partitions the observations into two latent operating modes
// from residual structure alone.
//
// It fits a single unweighted trend line of flow on outdoor temperature
// across the whole series, clusters the residuals with 1-D k-means (k=2),
// and labels the higher-mean cluster day-like. A single compromise line
// tilts when the modes are unevenly spread over the outdoor range, so the
// initial split is then refined: each cluster gets its own trend line and
// every sample is re-assigned to the nearer line until the assignment is
// stable. No time-of-day feature enters the clustering input; the point of
// the separator is to validate that the physical day/night separation is
// discoverable without that prior.
//
// Returns ErrDegenerateInput when fewer than two observations carry a flow
// value, the outdoor column has zero variance, or the residuals collapse to
// fewer than two distinct values. Clustering on such input would produce a
// meaningless split, so the separator refuses instead.
func SeparateModes(s *series.Series) (*Assignment, error) {
	n := s.Len()
	indices := make([]int, 0, n)
	x := make([]float64, 0, n)
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if !s.Missing(i) {
			indices = append(indices, i)
			x = append(x, s.Outdoor[i])
			y = append(y, s.Flow[i])
		}
	}

	if len(indices) < 2 {
		return nil, fmt.Errorf("%w: %d usable observations, need at least 2", errs.ErrDegenerateInput, len(indices))
	}

	slope, intercept, ok := trendFit(x, y)
	if !ok {
		return nil, fmt.Errorf("%w: zero outdoor-temperature variance", errs.ErrDegenerateInput)
	}

	residuals := make([]float64, len(x))
	distinct := make(map[float64]struct{}, 2)
	for i := range x {
		residuals[i] = y[i] - (intercept + slope*x[i])
		if len(distinct) < 2 {
			distinct[residuals[i]] = struct{}{}
		}
	}
	if len(distinct) < 2 {
		return nil, fmt.Errorf("%w: residuals are constant, nothing to cluster", errs.ErrDegenerateInput)
	}

	clusters, means := kmeans2(residuals)

	dayCluster := 0
	if means[1] > means[0] {
		dayCluster = 1
	}
	separation := math.Abs(means[0] - means[1])

	if refined, lines, ok := refineClusters(x, y, clusters); ok {
		clusters = refined
		xbar := mean(x)
		f0 := lines[0].intercept + lines[0].slope*xbar
		f1 := lines[1].intercept + lines[1].slope*xbar
		separation = math.Abs(f0 - f1)
		dayCluster = 0
		if f1 > f0 {
			dayCluster = 1
		}
	}

	asg := &Assignment{
		Labels:        make([]Mode, n),
		Valid:         make([]bool, n),
		Separation:    separation,
		Accuracy:      math.NaN(),
		SlopeInverted: slope > 0,
	}
	for k, idx := range indices {
		asg.Valid[idx] = true
		if clusters[k] == dayCluster {
			asg.Labels[idx] = ModeDay
		} else {
			asg.Labels[idx] = ModeNight
		}
	}

	if s.Labeled() {
		correct, total := 0, 0
		for _, idx := range indices {
			total++
			if (asg.Labels[idx] == ModeNight) == s.Night[idx] {
				correct++
			}
		}
		asg.Accuracy = float64(correct) / float64(total)
	}

	return asg, nil
}

// refineIterations caps the per-cluster line refinement loop; the assignment
// is usually stable after a handful of rounds.
const refineIterations = 25

type clusterLine struct {
	slope     float64
	intercept float64
}

// refineClusters alternates per-cluster trend fits with nearest-line
// re-assignment, starting from the residual-clustering split. Returns
// ok=false when a cluster collapses below a fittable size, in which case the
// caller keeps the initial assignment.
func refineClusters(x, y []float64, assignment []int) ([]int, [2]clusterLine, bool) {
	cur := make([]int, len(assignment))
	copy(cur, assignment)

	var lines [2]clusterLine
	for iter := 0; iter < refineIterations; iter++ {
		var bx, by [2][]float64
		for i, c := range cur {
			bx[c] = append(bx[c], x[i])
			by[c] = append(by[c], y[i])
		}
		for c := range lines {
			slope, intercept, ok := trendFit(bx[c], by[c])
			if !ok {
				return nil, lines, false
			}
			lines[c] = clusterLine{slope: slope, intercept: intercept}
		}

		changed := false
		for i := range x {
			d0 := math.Abs(y[i] - (lines[0].intercept + lines[0].slope*x[i]))
			d1 := math.Abs(y[i] - (lines[1].intercept + lines[1].slope*x[i]))
			c := 0
			if d1 < d0 {
				c = 1
			}
			if cur[i] != c {
				cur[i] = c
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	return cur, lines, true
}

// kmeans2 clusters 1-D values into two groups. Centroids start at the
// extremes, which makes the procedure deterministic; in one dimension the
// assignment step is a simple midpoint threshold, so convergence is fast.
func kmeans2(values []float64) (assignment []int, means [2]float64) {
	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	centroids := [2]float64{lo, hi}
	assignment = make([]int, len(values))

	for iter := 0; iter < 100; iter++ {
		changed := false
		mid := (centroids[0] + centroids[1]) / 2
		for i, v := range values {
			c := 0
			if v > mid {
				c = 1
			}
			if assignment[i] != c {
				assignment[i] = c
				changed = true
			}
		}

		var sum [2]float64
		var count [2]int
		for i, v := range values {
			sum[assignment[i]] += v
			count[assignment[i]]++
		}
		for c := range centroids {
			if count[c] > 0 {
				centroids[c] = sum[c] / float64(count[c])
			}
		}

		if !changed {
			break
		}
	}

	return assignment, centroids
}
