package detect

import (
	"math"
	"sort"

	"github.com/arloliu/heizkurve/series"
)

const (
	// tailFraction is the share of the distribution examined at each end.
	tailFraction = 0.01
	// plateauWindow is the sliding-window size used inside a tail.
	plateauWindow = 16
	// minTailSamples is the smallest tail worth scanning; below this a limit
	// is reported as not found rather than fabricated from a handful of points.
	minTailSamples = 4
	// minPlateauSamples is the smallest confirmed plateau worth reporting.
	minPlateauSamples = 8
	// linearMargin keeps samples this close to a detected limit out of the
	// linear region.
	linearMargin = 1.0

	// Core hour bands used during confirmation. The clamp deficit is only
	// measurable inside a single operating mode, and these hours fall on the
	// same side of any plausible setback window.
	dayCoreStart   = 8
	dayCoreEnd     = 20
	nightCoreStart = 23
	nightCoreEnd   = 5

	// madToSigma rescales a median absolute deviation to a standard
	// deviation under Gaussian noise.
	madToSigma = 1.4826
)

// Limit is one detected clamping bound. Value is only meaningful when Found
// is true; an unresolved limit must be reported as such, never substituted
// with a number that could pass for a measurement.
type Limit struct {
	Value float64
	Found bool
}

// Limits is the result of plateau detection: the two clamping bounds and the
// per-sample linear-region mask. The mask is aligned with the series it was
// computed from and is true for samples with a present flow value strictly
// between the detected bounds (with a safety margin); when a bound was not
// found the mask is open on that side.
type Limits struct {
	Upper      Limit
	Lower      Limit
	LinearMask []bool
}

// DetectLimits scans the flow-temperature distribution for clamping
// plateaus.
//
// Detection runs in two stages. The top and bottom 1% of the sorted
// distribution are scanned with a sliding window; a window whose local
// standard deviation falls below a third of the overall standard deviation
// proposes a candidate limit. Sorted extreme tails are tight even without a
// clamp, so a candidate alone proves nothing: it is then checked against the
// physics of a clamp inside a mode-pure core hour band (mid-day for the
// upper bound, deep night for the lower). A robust trend line is fitted to
// the band's central outdoor range and projected onto the samples it places
// beyond the candidate; a real clamp leaves their flow stuck at the limit,
// while an unclamped curve keeps tracking the line and the median deficit
// stays inside the noise. The confirmed limit is the median flow of those
// beyond-candidate samples. Whether a clamp is ever reached depends on
// climate and configuration, so either bound may legitimately come back not
// found.
//
// The function never fails; degenerate inputs simply yield unresolved limits
// and a mask admitting every present sample.
func DetectLimits(s *series.Series) Limits {
	n := s.Len()
	valid := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if !s.Missing(i) {
			valid = append(valid, s.Flow[i])
		}
	}

	res := Limits{LinearMask: make([]bool, n)}
	upperMargin, lowerMargin := linearMargin, linearMargin

	if len(valid) >= 2*minTailSamples {
		sorted := make([]float64, len(valid))
		copy(sorted, valid)
		sort.Float64s(sorted)

		overallStd := stddev(valid)
		tail := int(tailFraction * float64(len(sorted)))
		if tail < minTailSamples {
			tail = minTailSamples
		}

		if cand, ok := scanTail(sorted[len(sorted)-tail:], overallStd); ok {
			x, y := coreSamples(s, false)
			if v, margin, ok := confirmPlateau(x, y, cand, true); ok {
				res.Upper = Limit{Value: v, Found: true}
				upperMargin = margin
			}
		}
		if cand, ok := scanTail(sorted[:tail], overallStd); ok {
			x, y := coreSamples(s, true)
			if v, margin, ok := confirmPlateau(x, y, cand, false); ok {
				res.Lower = Limit{Value: v, Found: true}
				lowerMargin = margin
			}
		}
	}

	for i := 0; i < n; i++ {
		if s.Missing(i) {
			continue
		}
		flow := s.Flow[i]
		if res.Upper.Found && flow >= res.Upper.Value-upperMargin {
			continue
		}
		if res.Lower.Found && flow <= res.Lower.Value+lowerMargin {
			continue
		}
		res.LinearMask[i] = true
	}

	return res
}

// scanTail slides a window over one sorted distribution tail and returns the
// median of the values inside qualifying (low local variance) windows.
func scanTail(tail []float64, overallStd float64) (float64, bool) {
	if len(tail) < minTailSamples || overallStd <= 0 {
		return 0, false
	}

	window := plateauWindow
	if window > len(tail) {
		window = len(tail)
	}

	threshold := overallStd / 3
	var plateau []float64
	for i := 0; i+window <= len(tail); i++ {
		w := tail[i : i+window]
		if stddev(w) < threshold {
			plateau = append(plateau, w...)
		}
	}
	if len(plateau) == 0 {
		return 0, false
	}

	v := median(plateau)
	if math.IsNaN(v) {
		return 0, false
	}

	return v, true
}

// coreSamples collects the (outdoor, flow) pairs of the requested core hour
// band, skipping missing flow values.
func coreSamples(s *series.Series, night bool) (x, y []float64) {
	for i := 0; i < s.Len(); i++ {
		if s.Missing(i) {
			continue
		}
		h := s.Hour(i)
		if night {
			if h < nightCoreStart && h >= nightCoreEnd {
				continue
			}
		} else if h < dayCoreStart || h >= dayCoreEnd {
			continue
		}
		x = append(x, s.Outdoor[i])
		y = append(y, s.Flow[i])
	}

	return x, y
}

// modeLine is a robust trend line over one core hour band: Theil-Sen slope,
// median-offset intercept and the residual spread of the central outdoor
// range it was fitted to.
type modeLine struct {
	slope     float64
	intercept float64
	spread    float64
}

func fitModeLine(x, y []float64) (modeLine, bool) {
	n := len(x)
	if n < 4*minPlateauSamples {
		return modeLine{}, false
	}

	ox, oy := orderedByOutdoor(x, y)
	mx, my := ox[3*n/10:7*n/10], oy[3*n/10:7*n/10]

	slope, ok := theilSenSlope(mx, my)
	if !ok {
		return modeLine{}, false
	}

	offsets := make([]float64, len(mx))
	for i := range mx {
		offsets[i] = my[i] - slope*mx[i]
	}
	intercept := median(offsets)

	resid := make([]float64, len(mx))
	for i := range mx {
		resid[i] = my[i] - (intercept + slope*mx[i])
	}

	return modeLine{slope: slope, intercept: intercept, spread: madToSigma * mad(resid)}, true
}

// confirmPlateau checks a tail candidate against the flow/outdoor relation
// of a single operating mode. The samples whose trend-line prediction lies
// beyond the candidate are the ones a clamp would cap: their median deficit
// against the line must clearly exceed the noise for the limit to count as
// found, and their median flow is then the limit value. The returned margin
// widens with the plateau's own noise so the linear-region mask clears it.
func confirmPlateau(x, y []float64, candidate float64, upper bool) (value, margin float64, ok bool) {
	ln, ok := fitModeLine(x, y)
	if !ok {
		return 0, 0, false
	}

	var block, deficits []float64
	for i := range x {
		pred := ln.intercept + ln.slope*x[i]
		switch {
		case upper && pred >= candidate:
			block = append(block, y[i])
			deficits = append(deficits, pred-y[i])
		case !upper && pred <= candidate:
			block = append(block, y[i])
			deficits = append(deficits, y[i]-pred)
		}
	}
	if len(block) < minPlateauSamples {
		return 0, 0, false
	}
	if median(deficits) <= math.Max(linearMargin, ln.spread) {
		return 0, 0, false
	}

	value = median(block)
	margin = linearMargin
	if m := 2 * madToSigma * mad(block); m > margin {
		margin = m
	}

	return value, margin, true
}
