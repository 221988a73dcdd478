// Package compress provides the payload codecs used by series snapshots.
//
// Observation-series payloads are columnar (sorted timestamps, slowly
// varying temperatures), which compresses well under general-purpose block
// codecs. Four codecs are available:
//
//   - None: pass-through, for debugging and baselines
//   - Zstd: best ratio, for archival snapshots
//   - S2: fastest, for short-lived intermediate files
//   - LZ4: balanced speed and ratio
//
// All codecs are safe for concurrent use; internal encoder state is pooled.
package compress
