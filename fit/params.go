package fit

import (
	"fmt"
	"math"

	"github.com/arloliu/heizkurve/detect"
	"github.com/arloliu/heizkurve/errs"
)

// Parameters is the physical result of one (series, estimator) extraction.
// It is immutable once produced.
//
// K is the recovered heating-curve slope; when both modes were fitted it is
// the average of the per-mode slopes, and SlopeSpread carries their absolute
// disagreement as a diagnostic. The same physical building should yield
// agreeing slopes, so a large spread signals an unreliable extraction even
// when each individual fit looks good.
//
// BaseAssumed records that the base temperature was not measured: it was
// assumed equal to the day room target to make the back-substitution
// solvable. This is a documented approximation carried over from the
// extraction approach, not a verified physical identity; consumers must
// treat base-dependent fields accordingly.
type Parameters struct {
	Estimator string

	K           float64
	DayTarget   float64
	NightTarget float64

	KDay        float64
	KNight      float64
	SlopeSpread float64

	Day           Coefficients
	Night         Coefficients
	NightResolved bool

	BaseTemperature float64
	BaseAssumed     bool

	UpperLimit detect.Limit
	LowerLimit detect.Limit

	// Partial marks results produced under a fallback: an unresolved plateau
	// bound, failed mode separation, or a missing night fit.
	Partial bool
}

// Recover converts regression coefficients back into physical parameters.
//
// The heating curve flow = base + K*(target - outdoor) expands to
// flow = (base + K*target) - K*outdoor, so the fitted slope equals -K and
// each mode's intercept is base + K*target.
//
// When baseKnown is false the base temperature is assumed equal to the day
// room target (intercept_day = target_day*(1+K)), which resolves the day
// target as intercept_day/(1+K); the night target then follows from the
// night intercept. The assumption is flagged via BaseAssumed. night may be
// nil when only one mode could be fitted.
func Recover(estimator string, day Coefficients, night *Coefficients, base float64, baseKnown bool) (Parameters, error) {
	p := Parameters{
		Estimator: estimator,
		Day:       day,
		KDay:      -day.Slope,
	}

	p.K = p.KDay
	if night != nil {
		p.Night = *night
		p.NightResolved = true
		p.KNight = -night.Slope
		p.K = (p.KDay + p.KNight) / 2
		p.SlopeSpread = math.Abs(p.KDay - p.KNight)
	}

	if math.Abs(p.K) < 1e-9 {
		return Parameters{}, fmt.Errorf("%w: recovered slope is zero, room targets unidentifiable", errs.ErrDegenerateInput)
	}

	if baseKnown {
		p.BaseTemperature = base
		p.DayTarget = (day.Intercept - base) / p.K
	} else {
		if math.Abs(1+p.K) < 1e-9 {
			return Parameters{}, fmt.Errorf("%w: slope -1 makes the assumed-base substitution singular", errs.ErrDegenerateInput)
		}
		p.DayTarget = day.Intercept / (1 + p.K)
		p.BaseTemperature = p.DayTarget
		p.BaseAssumed = true
	}

	if night != nil {
		p.NightTarget = (night.Intercept - p.BaseTemperature) / p.K
	} else {
		p.NightTarget = math.NaN()
		p.Partial = true
	}

	return p, nil
}
