// Package detect locates the non-linear structure in an observation series
// before any regression runs.
//
// DetectLimits finds the clamping plateaus at the top and bottom of the flow
// temperature distribution and derives the linear-region mask that excludes
// saturated samples from fitting. SeparateModes partitions observations into
// the two latent operating modes (day/night) purely from the residual
// structure of a single trend fit, with no time-of-day input: the point is
// to prove the physical separation is discoverable without that prior.
//
// Both detectors work on the same read-only series and fail independently:
// a plateau that cannot be found or a degenerate mode split never prevents
// the sibling computation from reporting.
package detect
