// Package simulate generates synthetic heating-season datasets.
//
// It produces a deterministic winter outdoor-temperature course (seasonal
// trend, synoptic weather swings and a diurnal cycle at 15-minute
// resolution), evaluates the heating curve on it, and optionally corrupts
// the result with a noise profile. The output carries ground-truth night
// labels, which makes it suitable for grading the unsupervised extraction
// pipeline against known parameters.
//
// Samples at or above the summer cutoff are excluded from the generated
// series: the heating is off there and the observations do not follow the
// linear law.
package simulate
