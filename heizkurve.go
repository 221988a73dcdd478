// Package heizkurve recovers heating-curve parameters (Heizkennlinie) from
// noisy flow-temperature observations, with no prior knowledge of the true
// configuration.
//
// The control law under recovery maps outdoor temperature to flow
// temperature as a piecewise-linear curve with day/night setback: linear in
// the operating region, clamped at configured minimum and maximum flow
// temperatures, and off above a summer cutoff. Extraction combines plateau
// detection (finding the clamps), unsupervised day/night mode separation
// (clustering trend residuals), and per-mode robust regression, then
// back-substitutes the fitted coefficients into physical parameters.
//
// # Basic Usage
//
// Extracting parameters from an observation series:
//
//	s, err := series.ReadCSV(file)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := heizkurve.Extract(s, heizkurve.WithSeed(42))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, p := range result.Parameters {
//	    fmt.Printf("%s: K=%.3f day=%.1f°C night=%.1f°C\n",
//	        p.Estimator, p.K, p.DayTarget, p.NightTarget)
//	}
//
// Grading against known ground truth (synthetic data only):
//
//	report := validate.Compare(result.Parameters[0], cfg, tolerances)
//	fmt.Println(report.Pass)
//
// # Pipeline
//
// Extract runs the pipeline stages with failure isolation:
// plateau detection and mode separation each fail locally, falling back to
// the unfiltered region or to single-mode fitting while the sibling stages
// proceed, and every fallback is flagged on the result instead of being
// silently substituted.
//
// The whole pipeline is synchronous, in-memory and deterministic: all
// randomness (noise injection, consensus sampling) is driven by explicit
// seeds, never by process-wide state.
package heizkurve

import (
	"github.com/arloliu/heizkurve/fit"
	"github.com/arloliu/heizkurve/internal/options"
)

// DefaultSeed seeds the consensus estimator when no WithSeed option is given.
const DefaultSeed = 42

// extractConfig holds the resolved Extract options.
type extractConfig struct {
	estimators []fit.Estimator
	base       float64
	baseKnown  bool
	useLabels  bool
	seed       int64
}

// Option is a functional option for Extract.
type Option = options.Option[*extractConfig]

// WithEstimators replaces the default estimator set (OLS and seeded RANSAC).
func WithEstimators(estimators ...fit.Estimator) Option {
	return options.NoError(func(cfg *extractConfig) {
		cfg.estimators = estimators
	})
}

// WithBaseTemperature supplies a known base temperature for the parameter
// back-substitution instead of the default assumption that the base equals
// the day room target.
func WithBaseTemperature(base float64) Option {
	return options.NoError(func(cfg *extractConfig) {
		cfg.base = base
		cfg.baseKnown = true
	})
}

// WithLabeledModes makes Extract trust the series' ground-truth night flags
// for mode splitting instead of the unsupervised separator. Only labeled
// series can use this option.
func WithLabeledModes() Option {
	return options.NoError(func(cfg *extractConfig) {
		cfg.useLabels = true
	})
}

// WithSeed seeds the default RANSAC estimator. It has no effect when
// WithEstimators overrides the estimator set.
func WithSeed(seed int64) Option {
	return options.NoError(func(cfg *extractConfig) {
		cfg.seed = seed
	})
}
