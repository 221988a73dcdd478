// Package curve implements the heating-curve control law (Heizkennlinie).
//
// The control law maps outdoor temperature and time of day to the flow
// temperature a heating controller would command:
//
//	flow = base + slope * (roomTarget - outdoor)
//
// clamped to the configured operating limits, with the room target switching
// between a day and a night value inside the night-setback window. At or
// above the summer cutoff the heating is off and no flow temperature exists.
//
// The package is purely functional: a validated Config plus an outdoor
// temperature and an hour of day fully determine the result. It is used both
// to generate synthetic ground truth (see the simulate package) and as the
// functional form the fit package recovers from observations.
package curve
