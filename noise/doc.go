// Package noise corrupts ideal observation series into realistic sensor data.
//
// A Profile describes the corruption level: Gaussian measurement noise,
// positive spikes from domestic-hot-water interference, extreme outlier
// readings, and contiguous missing blocks from sensor dropout. Three
// canonical profiles (Clean, Moderate, Noisy) match the data-quality
// scenarios used to grade extraction robustness.
//
// Injection is deterministic for a given seed: the same series, profile and
// seed always produce a byte-identical result.
package noise
