package noise

import (
	"fmt"

	"github.com/arloliu/heizkurve/errs"
)

// Profile is a named corruption parameter set.
//
// All probabilities are per sample and must lie in [0, 1]. Magnitude ranges
// are in °C. A profile where the missing and outlier probabilities together
// destroy more than half of the series will not fail injection, but the
// downstream tolerance targets assume at least 50% of the series survives.
type Profile struct {
	// Name identifies the profile in results and reports.
	Name string `yaml:"name"`

	// GaussianSigma is the standard deviation of the per-sample measurement
	// noise added to every flow value.
	GaussianSigma float64 `yaml:"gaussian_sigma"`

	// SpikeProbability is the chance of a domestic-hot-water spike per
	// sample; spike offsets are positive and drawn uniformly from
	// [SpikeMin, SpikeMax]. Spikes are independent per sample.
	SpikeProbability float64 `yaml:"spike_probability"`
	SpikeMin         float64 `yaml:"spike_min"`
	SpikeMax         float64 `yaml:"spike_max"`

	// MissingProbability is the target fraction of samples lost to sensor
	// dropout. Dropouts arrive as contiguous runs of 1-8 samples, so the
	// realized fraction is approximate, never exact.
	MissingProbability float64 `yaml:"missing_probability"`

	// OutlierProbability is the chance per sample of replacing the value
	// with seriesMean ± magnitude, magnitude uniform in
	// [OutlierMin, OutlierMax] and sign random.
	OutlierProbability float64 `yaml:"outlier_probability"`
	OutlierMin         float64 `yaml:"outlier_min"`
	OutlierMax         float64 `yaml:"outlier_max"`
}

// Canonical profiles for the three data-quality scenarios.
//
// Clean validates algorithms under pure measurement noise; Moderate matches
// typical building sensor quality; Noisy stresses the robust estimators with
// heavy noise, dropouts and outliers.
func Clean() Profile {
	return Profile{
		Name:          "clean",
		GaussianSigma: 1.5,
	}
}

// Moderate returns the typical-quality profile.
func Moderate() Profile {
	return Profile{
		Name:             "moderate",
		GaussianSigma:    3.5,
		SpikeProbability: 0.02,
		SpikeMin:         10,
		SpikeMax:         14,

		OutlierProbability: 0.005,
		OutlierMin:         10,
		OutlierMax:         30,
	}
}

// Noisy returns the challenging-quality profile.
func Noisy() Profile {
	return Profile{
		Name:             "noisy",
		GaussianSigma:    5.0,
		SpikeProbability: 0.03,
		SpikeMin:         12,
		SpikeMax:         18,

		MissingProbability: 0.05,
		OutlierProbability: 0.015,
		OutlierMin:         10,
		OutlierMax:         30,
	}
}

// Profiles returns the canonical profiles in increasing severity order.
func Profiles() []Profile {
	return []Profile{Clean(), Moderate(), Noisy()}
}

// LookupProfile returns the canonical profile with the given name.
func LookupProfile(name string) (Profile, bool) {
	for _, p := range Profiles() {
		if p.Name == name {
			return p, true
		}
	}

	return Profile{}, false
}

// Validate checks the profile parameters and returns ErrInvalidProfile
// (wrapped) on the first violation.
func (p Profile) Validate() error {
	if p.GaussianSigma < 0 {
		return fmt.Errorf("%w: gaussian sigma %g must not be negative", errs.ErrInvalidProfile, p.GaussianSigma)
	}
	probs := map[string]float64{
		"spike probability":   p.SpikeProbability,
		"missing probability": p.MissingProbability,
		"outlier probability": p.OutlierProbability,
	}
	for name, v := range probs {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: %s %g outside [0, 1]", errs.ErrInvalidProfile, name, v)
		}
	}
	if p.SpikeMax < p.SpikeMin {
		return fmt.Errorf("%w: spike range [%g, %g] inverted", errs.ErrInvalidProfile, p.SpikeMin, p.SpikeMax)
	}
	if p.OutlierMax < p.OutlierMin {
		return fmt.Errorf("%w: outlier range [%g, %g] inverted", errs.ErrInvalidProfile, p.OutlierMin, p.OutlierMax)
	}

	return nil
}
