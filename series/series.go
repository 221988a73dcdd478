package series

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/arloliu/heizkurve/errs"
)

// Series is an ordered sequence of observations stored in columnar form.
// Insertion order is chronological order; timestamps are assumed unique.
//
// Flow values may be NaN to mark a missing measurement. Night is either nil
// (unlabeled data) or aligned with the other columns and carries the
// ground-truth night-mode flag of each sample.
type Series struct {
	Timestamps []time.Time
	Outdoor    []float64
	Flow       []float64
	Night      []bool
}

// New returns an empty series with capacity for n observations.
func New(n int) *Series {
	return &Series{
		Timestamps: make([]time.Time, 0, n),
		Outdoor:    make([]float64, 0, n),
		Flow:       make([]float64, 0, n),
	}
}

// Append adds one observation to the series. It must not be mixed with
// AppendLabeled on the same series.
func (s *Series) Append(ts time.Time, outdoor, flow float64) {
	s.Timestamps = append(s.Timestamps, ts)
	s.Outdoor = append(s.Outdoor, outdoor)
	s.Flow = append(s.Flow, flow)
}

// AppendLabeled adds one observation together with its ground-truth night flag.
func (s *Series) AppendLabeled(ts time.Time, outdoor, flow float64, night bool) {
	s.Append(ts, outdoor, flow)
	s.Night = append(s.Night, night)
}

// Len returns the number of observations.
func (s *Series) Len() int {
	return len(s.Timestamps)
}

// Labeled reports whether the series carries ground-truth night flags.
func (s *Series) Labeled() bool {
	return s.Night != nil
}

// Hour returns the hour of day (0-23) of observation i.
func (s *Series) Hour(i int) int {
	return s.Timestamps[i].Hour()
}

// Missing reports whether the flow measurement of observation i is absent.
func (s *Series) Missing(i int) bool {
	return math.IsNaN(s.Flow[i])
}

// ValidCount returns the number of observations with a present flow value.
func (s *Series) ValidCount() int {
	n := 0
	for _, v := range s.Flow {
		if !math.IsNaN(v) {
			n++
		}
	}

	return n
}

// Validate checks column alignment. It returns ErrEmptySeries for a series
// without samples and ErrColumnMismatch when columns have diverging lengths.
func (s *Series) Validate() error {
	n := len(s.Timestamps)
	if n == 0 {
		return errs.ErrEmptySeries
	}
	if len(s.Outdoor) != n || len(s.Flow) != n {
		return fmt.Errorf("%w: %d timestamps, %d outdoor, %d flow",
			errs.ErrColumnMismatch, n, len(s.Outdoor), len(s.Flow))
	}
	if s.Night != nil && len(s.Night) != n {
		return fmt.Errorf("%w: %d timestamps, %d night flags", errs.ErrColumnMismatch, n, len(s.Night))
	}

	return nil
}

// Clone returns a deep copy of the series.
func (s *Series) Clone() *Series {
	c := &Series{
		Timestamps: make([]time.Time, len(s.Timestamps)),
		Outdoor:    make([]float64, len(s.Outdoor)),
		Flow:       make([]float64, len(s.Flow)),
	}
	copy(c.Timestamps, s.Timestamps)
	copy(c.Outdoor, s.Outdoor)
	copy(c.Flow, s.Flow)
	if s.Night != nil {
		c.Night = make([]bool, len(s.Night))
		copy(c.Night, s.Night)
	}

	return c
}

// Select returns a new series holding the observations where mask is true.
// The mask must be aligned with the series.
func (s *Series) Select(mask []bool) *Series {
	out := New(s.Len())
	if s.Night != nil {
		out.Night = make([]bool, 0, s.Len())
	}
	for i := range s.Timestamps {
		if i < len(mask) && mask[i] {
			out.Append(s.Timestamps[i], s.Outdoor[i], s.Flow[i])
			if s.Night != nil {
				out.Night = append(out.Night, s.Night[i])
			}
		}
	}

	return out
}

// Fingerprint returns a 64-bit xxHash of the series content. Two series with
// identical observations (including NaN placement and night flags) produce
// the same fingerprint, which makes it a cheap determinism and identity check.
func (s *Series) Fingerprint() uint64 {
	d := xxhash.New()
	var buf [8]byte
	for i := range s.Timestamps {
		binary.LittleEndian.PutUint64(buf[:], uint64(s.Timestamps[i].UnixMicro()))
		_, _ = d.Write(buf[:])
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(s.Outdoor[i]))
		_, _ = d.Write(buf[:])
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(s.Flow[i]))
		_, _ = d.Write(buf[:])
	}
	if s.Night != nil {
		for _, night := range s.Night {
			b := byte(0)
			if night {
				b = 1
			}
			_, _ = d.Write([]byte{b})
		}
	}

	return d.Sum64()
}
