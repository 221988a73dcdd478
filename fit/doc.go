// Package fit recovers heating-curve parameters from observations in the
// linear operating region.
//
// Two estimators fit the per-mode line flow = intercept + slope*outdoor: a
// closed-form ordinary least squares baseline and a seeded sampling-consensus
// (RANSAC) estimator that is robust to outlier contamination. Recover then
// converts regression coefficients back into physical parameters: the fitted
// slope is the sign-inverted heating-curve slope K, and the room targets are
// back-substituted from the intercepts under a documented base-temperature
// assumption.
package fit
