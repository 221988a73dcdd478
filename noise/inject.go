package noise

import (
	"math"
	"math/rand"

	"github.com/arloliu/heizkurve/series"
)

// Dropout runs span 1..maxDropoutRun samples, uniformly drawn.
const maxDropoutRun = 8

// meanDropoutRun is the expected run length, used to convert the profile's
// target missing fraction into a per-sample run start probability.
const meanDropoutRun = (1 + maxDropoutRun) / 2.0

// Inject applies the profile to the ideal series and returns a new corrupted
// series. The input is never modified.
//
// The corruption stages run in a fixed order over one seeded generator, so a
// given (series, profile, seed) triple always yields a byte-identical result:
//
//  1. Gaussian noise on every present flow value
//  2. spikes (positive uniform offsets, independent per sample)
//  3. outliers (value replaced by seriesMean ± uniform magnitude)
//  4. missing-block removal (contiguous runs marked NaN)
//
// Removal runs last so that spike and outlier draws at later-removed indices
// do not shift the random stream between profiles that only differ in their
// missing fraction. Keep this order stable: determinism tests depend on it.
func Inject(s *series.Series, p Profile, seed int64) (*series.Series, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(seed))
	out := s.Clone()
	n := out.Len()

	// Stage 1: Gaussian measurement noise.
	if p.GaussianSigma > 0 {
		for i := 0; i < n; i++ {
			if !out.Missing(i) {
				out.Flow[i] += rng.NormFloat64() * p.GaussianSigma
			}
		}
	}

	// Stage 2: DHW spikes.
	if p.SpikeProbability > 0 {
		for i := 0; i < n; i++ {
			if out.Missing(i) {
				continue
			}
			if rng.Float64() < p.SpikeProbability {
				out.Flow[i] += p.SpikeMin + rng.Float64()*(p.SpikeMax-p.SpikeMin)
			}
		}
	}

	// Stage 3: outliers, anchored at the series mean so they carry no slope
	// information.
	if p.OutlierProbability > 0 {
		mean := flowMean(out)
		for i := 0; i < n; i++ {
			if out.Missing(i) {
				continue
			}
			if rng.Float64() < p.OutlierProbability {
				magnitude := p.OutlierMin + rng.Float64()*(p.OutlierMax-p.OutlierMin)
				if rng.Float64() < 0.5 {
					magnitude = -magnitude
				}
				out.Flow[i] = mean + magnitude
			}
		}
	}

	// Stage 4: sensor dropout in contiguous runs.
	if p.MissingProbability > 0 {
		startProb := p.MissingProbability / meanDropoutRun
		remaining := 0
		for i := 0; i < n; i++ {
			if remaining > 0 {
				out.Flow[i] = math.NaN()
				remaining--

				continue
			}
			if rng.Float64() < startProb {
				out.Flow[i] = math.NaN()
				remaining = rng.Intn(maxDropoutRun) // run continues for 0..7 more samples
			}
		}
	}

	return out, nil
}

// flowMean returns the mean of the present flow values.
func flowMean(s *series.Series) float64 {
	sum, count := 0.0, 0
	for _, v := range s.Flow {
		if !math.IsNaN(v) {
			sum += v
			count++
		}
	}
	if count == 0 {
		return 0
	}

	return sum / float64(count)
}
