// Package series defines the columnar observation series consumed by every
// analysis component.
//
// A Series stores timestamps, outdoor temperatures and flow temperatures as
// parallel columns, plus an optional ground-truth night-mode column for
// synthetic data. Missing flow measurements are represented as NaN so the
// sample keeps its position in the sequence.
//
// Series are constructed by the simulate/noise packages or loaded from the
// tabular boundary format (datetime, t_outdoor, t_vorlauf, is_night) and are
// consumed read-only downstream: filtering and labeling always produce new
// derived series, never mutate in place.
package series
