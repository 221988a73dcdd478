package heizkurve

import (
	"errors"
	"fmt"
	"math"

	"github.com/arloliu/heizkurve/detect"
	"github.com/arloliu/heizkurve/errs"
	"github.com/arloliu/heizkurve/fit"
	"github.com/arloliu/heizkurve/internal/options"
	"github.com/arloliu/heizkurve/series"
)

// FailedFit records an estimator that could not produce parameters on this
// series. The sibling estimators' results are unaffected.
type FailedFit struct {
	Estimator string
	Reason    string
}

// Result is the complete outcome of one extraction run.
//
// Parameters holds one entry per estimator that succeeded; Failed lists the
// estimators that did not. Modes is nil when mode separation failed and no
// ground-truth labels were available to fall back on; ModeFallback reports
// which mode source was actually used. Partial is true whenever any stage
// ran under a fallback, so callers can display such results distinctly from
// full successes.
type Result struct {
	Limits detect.Limits
	Modes  *detect.Assignment

	Parameters []fit.Parameters
	Failed     []FailedFit

	// ModeFallback describes the mode source when the unsupervised separator
	// was not used: "labels" (ground-truth flags) or "single" (all samples
	// treated as day). Empty when the separator succeeded.
	ModeFallback string

	Partial bool
}

// minNightSamples is the smallest night-mode sample count worth fitting;
// below it the night target is reported unresolved instead.
const minNightSamples = 10

// Extract runs the full parameter-extraction pipeline on the series.
//
// Stages: plateau detection bounds the linear operating region; mode
// separation labels each sample day- or night-like; per-mode regression with
// every configured estimator recovers slope and room targets. Summer-cutoff
// samples must already be absent from the series (the curve model signals
// heating-off upstream; such observations do not follow the linear law).
//
// Failure isolation follows the error-handling design: an unresolved plateau
// bound leaves the region unfiltered on that side, a failed mode separation
// falls back to ground-truth labels when the series has them (otherwise a
// single-mode fit), and each estimator fails independently. Every fallback
// is flagged on the Result.
//
// Extract fails outright only when the series as a whole is unusable (empty,
// misaligned columns, or fewer than two present flow values).
func Extract(s *series.Series, opts ...Option) (*Result, error) {
	cfg := &extractConfig{seed: DefaultSeed}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	if len(cfg.estimators) == 0 {
		cfg.estimators = []fit.Estimator{fit.NewOLS(), fit.NewRANSAC(cfg.seed)}
	}
	if cfg.useLabels && !s.Labeled() {
		return nil, errors.New("labeled-mode extraction requested on an unlabeled series")
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	if s.ValidCount() < 2 {
		return nil, fmt.Errorf("%w: fewer than 2 present flow values", errs.ErrDegenerateInput)
	}

	res := &Result{Limits: detect.DetectLimits(s)}
	if !res.Limits.Upper.Found || !res.Limits.Lower.Found {
		res.Partial = true
	}

	// Restrict to the linear region while keeping index alignment: samples
	// outside the mask become missing values on a derived copy.
	linear := s.Clone()
	for i := range linear.Flow {
		if !res.Limits.LinearMask[i] {
			linear.Flow[i] = math.NaN()
		}
	}

	dayMask, nightMask := resolveModes(cfg, linear, res)

	for _, est := range cfg.estimators {
		p, err := fitModes(est, linear, dayMask, nightMask, cfg)
		if err != nil {
			res.Failed = append(res.Failed, FailedFit{Estimator: est.Name(), Reason: err.Error()})
			res.Partial = true

			continue
		}

		p.UpperLimit = res.Limits.Upper
		p.LowerLimit = res.Limits.Lower
		if res.Partial {
			p.Partial = true
		}
		res.Parameters = append(res.Parameters, p)
	}

	return res, nil
}

// resolveModes determines the day/night sample masks, preferring the
// unsupervised separator and falling back per the error-handling design.
func resolveModes(cfg *extractConfig, linear *series.Series, res *Result) (dayMask, nightMask []bool) {
	if !cfg.useLabels {
		asg, err := detect.SeparateModes(linear)
		if err == nil {
			res.Modes = asg
			return asg.DayMask(), asg.NightMask()
		}
		res.Partial = true
	}

	if linear.Labeled() {
		res.ModeFallback = "labels"
		dayMask = make([]bool, linear.Len())
		nightMask = make([]bool, linear.Len())
		for i := range linear.Flow {
			if linear.Missing(i) {
				continue
			}
			if linear.Night[i] {
				nightMask[i] = true
			} else {
				dayMask[i] = true
			}
		}

		return dayMask, nightMask
	}

	// No separation and no labels: treat everything as day; the night
	// target will be reported unresolved.
	res.ModeFallback = "single"
	dayMask = make([]bool, linear.Len())
	for i := range linear.Flow {
		dayMask[i] = !linear.Missing(i)
	}

	return dayMask, make([]bool, linear.Len())
}

// fitModes fits both modes with one estimator and recovers the physical
// parameters. A failed day fit fails the estimator; a failed or skipped
// night fit only leaves the night target unresolved.
func fitModes(est fit.Estimator, linear *series.Series, dayMask, nightMask []bool, cfg *extractConfig) (fit.Parameters, error) {
	dayX, dayY := gather(linear, dayMask)
	day, err := est.Fit(dayX, dayY)
	if err != nil {
		return fit.Parameters{}, fmt.Errorf("day-mode fit failed: %w", err)
	}

	var night *fit.Coefficients
	nightX, nightY := gather(linear, nightMask)
	if len(nightX) >= minNightSamples {
		if c, nightErr := est.Fit(nightX, nightY); nightErr == nil {
			night = &c
		}
	}

	return fit.Recover(est.Name(), day, night, cfg.base, cfg.baseKnown)
}

// gather collects the (outdoor, flow) sample pairs selected by the mask.
func gather(s *series.Series, mask []bool) (x, y []float64) {
	for i := range s.Flow {
		if mask[i] && !s.Missing(i) {
			x = append(x, s.Outdoor[i])
			y = append(y, s.Flow[i])
		}
	}

	return x, y
}
