// Package snapshot serializes series to a compact binary form.
//
// A snapshot is a self-describing blob: a fixed header carrying a magic
// number, format version, codec kind and payload checksum, followed by a
// compressed columnar payload. Snapshots are the interchange format between
// the simulation and analysis stages when they run as separate processes,
// and the archival format for simulated datasets.
//
// The payload layout is columnar and little-endian: all timestamps as
// microsecond Unix epochs, then all outdoor temperatures and flow
// temperatures as IEEE-754 bits (missing measurements stay NaN), then the
// night labels bit-packed when present. The checksum is a 64-bit xxHash of
// the uncompressed payload, verified on decode before the columns are
// reconstructed.
package snapshot
