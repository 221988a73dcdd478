package compress

import (
	"fmt"

	"github.com/arloliu/heizkurve/errs"
)

// Kind identifies a payload codec. The numeric values are stored in
// snapshot headers and must never be reordered.
type Kind uint8

const (
	// None stores the payload uncompressed.
	None Kind = 0x1
	// Zstd uses Zstandard compression.
	Zstd Kind = 0x2
	// S2 uses S2 (Snappy-compatible) compression.
	S2 Kind = 0x3
	// LZ4 uses LZ4 block compression.
	LZ4 Kind = 0x4
)

// String returns the codec name.
func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Zstd:
		return "zstd"
	case S2:
		return "s2"
	case LZ4:
		return "lz4"
	default:
		return "unknown"
	}
}

// KindFromString returns the Kind for a codec name.
func KindFromString(name string) (Kind, error) {
	switch name {
	case "none", "":
		return None, nil
	case "zstd":
		return Zstd, nil
	case "s2":
		return S2, nil
	case "lz4":
		return LZ4, nil
	default:
		return 0, fmt.Errorf("%w: %q", errs.ErrUnknownCodec, name)
	}
}

// Codec compresses and decompresses snapshot payloads.
//
// Compress and Decompress return newly allocated slices owned by the caller
// (except for the pass-through codec, which returns its input) and never
// modify their input.
type Codec interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

// ForKind returns the codec implementation for the given kind.
func ForKind(k Kind) (Codec, error) {
	switch k {
	case None:
		return NoopCodec{}, nil
	case Zstd:
		return ZstdCodec{}, nil
	case S2:
		return S2Codec{}, nil
	case LZ4:
		return LZ4Codec{}, nil
	default:
		return nil, fmt.Errorf("%w: 0x%02x", errs.ErrUnknownCodec, uint8(k))
	}
}

// NoopCodec passes payloads through unchanged. Useful for debugging snapshot
// content and for measuring codec overhead.
type NoopCodec struct{}

var _ Codec = NoopCodec{}

// Compress returns the input as-is; the result shares its memory.
func (NoopCodec) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns the input as-is; the result shares its memory.
func (NoopCodec) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
