package compress

// ZstdCodec compresses snapshot payloads with Zstandard.
//
// Zstd gives the best ratio of the available codecs on columnar temperature
// data and is the right choice for archival snapshots. Two implementations
// back the same type: valyala/gozstd when cgo is available, and the pure-Go
// klauspost/compress encoder otherwise (see the build tags on the method
// files). Both produce standard zstd frames and interoperate freely.
type ZstdCodec struct{}

var _ Codec = ZstdCodec{}
