package snapshot

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/heizkurve/compress"
	"github.com/arloliu/heizkurve/errs"
	"github.com/arloliu/heizkurve/series"
)

func buildSeries(t *testing.T, n int, labeled bool) *series.Series {
	t.Helper()

	s := series.New(n)
	start := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		ts := start.Add(time.Duration(i) * 15 * time.Minute)
		outdoor := 2.0 - 8.0*math.Sin(float64(i)/96.0)
		flow := 48.0 - 1.4*outdoor
		if i%37 == 0 {
			flow = math.NaN()
		}
		if labeled {
			s.AppendLabeled(ts, outdoor, flow, ts.Hour() >= 22 || ts.Hour() < 6)
		} else {
			s.Append(ts, outdoor, flow)
		}
	}

	return s
}

func TestSnapshotRoundTrip(t *testing.T) {
	for _, kind := range []compress.Kind{compress.None, compress.Zstd, compress.S2, compress.LZ4} {
		t.Run(kind.String(), func(t *testing.T) {
			s := buildSeries(t, 500, true)

			blob, err := Encode(s, kind)
			require.NoError(t, err)

			restored, err := Decode(blob)
			require.NoError(t, err)
			require.Equal(t, s.Len(), restored.Len())
			require.True(t, restored.Labeled())

			// Fingerprint equality covers timestamps, both temperature
			// columns including NaN placement, and night labels.
			require.Equal(t, s.Fingerprint(), restored.Fingerprint())
		})
	}
}

func TestSnapshotUnlabeledSeries(t *testing.T) {
	s := buildSeries(t, 200, false)

	blob, err := Encode(s, compress.Zstd)
	require.NoError(t, err)

	restored, err := Decode(blob)
	require.NoError(t, err)
	require.False(t, restored.Labeled())
	require.Equal(t, s.Fingerprint(), restored.Fingerprint())
}

func TestSnapshotEmptySeries(t *testing.T) {
	_, err := Encode(series.New(0), compress.Zstd)
	require.ErrorIs(t, err, errs.ErrEmptySeries)
}

func TestSnapshotUnknownCodec(t *testing.T) {
	_, err := Encode(buildSeries(t, 10, false), compress.Kind(0x7f))
	require.ErrorIs(t, err, errs.ErrUnknownCodec)
}

func TestDecodeRejectsTruncatedBlob(t *testing.T) {
	blob, err := Encode(buildSeries(t, 100, true), compress.None)
	require.NoError(t, err)

	_, err = Decode(blob[:8])
	require.ErrorIs(t, err, errs.ErrInvalidSnapshot)

	_, err = Decode(blob[:len(blob)-16])
	require.ErrorIs(t, err, errs.ErrInvalidSnapshot)
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	blob, err := Encode(buildSeries(t, 10, false), compress.None)
	require.NoError(t, err)

	blob[0] ^= 0xff
	_, err = Decode(blob)
	require.ErrorIs(t, err, errs.ErrInvalidSnapshot)
}

func TestDecodeRejectsCorruptedPayload(t *testing.T) {
	blob, err := Encode(buildSeries(t, 100, true), compress.None)
	require.NoError(t, err)

	// Flip one payload bit; the checksum must catch it.
	blob[len(blob)-5] ^= 0x10
	_, err = Decode(blob)
	require.ErrorIs(t, err, errs.ErrInvalidSnapshot)
}
