// Package errs defines the sentinel errors shared across heizkurve packages.
//
// Callers should test for these with errors.Is; packages wrap them with
// additional context via fmt.Errorf("...: %w", err).
package errs

import "errors"

var (
	// ErrInvalidConfig indicates a heating-curve configuration that violates
	// its invariants (limit ordering, target ordering, plausible ranges).
	ErrInvalidConfig = errors.New("invalid heating curve configuration")

	// ErrInvalidProfile indicates a noise profile with out-of-range parameters.
	ErrInvalidProfile = errors.New("invalid noise profile")

	// ErrEmptySeries indicates an observation series with no samples.
	ErrEmptySeries = errors.New("empty observation series")

	// ErrColumnMismatch indicates a series whose columns have different lengths.
	ErrColumnMismatch = errors.New("series column length mismatch")

	// ErrDegenerateInput indicates input on which a computation is undefined:
	// too few usable samples, zero-variance regressor, or near-constant values.
	ErrDegenerateInput = errors.New("degenerate input")

	// ErrInvalidSnapshot indicates snapshot data that is truncated, has a bad
	// magic/version, or fails its integrity check.
	ErrInvalidSnapshot = errors.New("invalid series snapshot")

	// ErrUnknownCodec indicates an unrecognized snapshot compression codec.
	ErrUnknownCodec = errors.New("unknown compression codec")
)
