package snapshot

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/arloliu/heizkurve/compress"
	"github.com/arloliu/heizkurve/errs"
	"github.com/arloliu/heizkurve/series"
)

const (
	// magic identifies a snapshot blob ("HK" + format marker).
	magic uint16 = 0x484B
	// version is the current snapshot format version.
	version uint8 = 1

	// flagLabeled marks a payload that carries night labels.
	flagLabeled uint8 = 0x01

	// headerSize is the fixed header length in bytes:
	// magic(2) + version(1) + codec(1) + flags(1) + reserved(3) +
	// count(4) + checksum(8).
	headerSize = 20
)

// Encode serializes the series into a snapshot blob using the given codec.
func Encode(s *series.Series, kind compress.Kind) ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if uint64(s.Len()) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: series too large (%d samples)", errs.ErrInvalidSnapshot, s.Len())
	}

	codec, err := compress.ForKind(kind)
	if err != nil {
		return nil, err
	}

	payload := encodePayload(s)
	checksum := xxhash.Sum64(payload)

	compressed, err := codec.Compress(payload)
	if err != nil {
		return nil, fmt.Errorf("payload compression failed: %w", err)
	}

	var flags uint8
	if s.Labeled() {
		flags |= flagLabeled
	}

	out := make([]byte, headerSize, headerSize+len(compressed))
	binary.LittleEndian.PutUint16(out[0:2], magic)
	out[2] = version
	out[3] = uint8(kind)
	out[4] = flags
	binary.LittleEndian.PutUint32(out[8:12], uint32(s.Len()))
	binary.LittleEndian.PutUint64(out[12:20], checksum)

	return append(out, compressed...), nil
}

// Decode reconstructs a series from a snapshot blob. It verifies the magic
// number, version, payload length and checksum, and returns
// ErrInvalidSnapshot when any of them does not hold.
func Decode(data []byte) (*series.Series, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the header", errs.ErrInvalidSnapshot, len(data))
	}
	if binary.LittleEndian.Uint16(data[0:2]) != magic {
		return nil, fmt.Errorf("%w: bad magic number", errs.ErrInvalidSnapshot)
	}
	if data[2] != version {
		return nil, fmt.Errorf("%w: unsupported version %d", errs.ErrInvalidSnapshot, data[2])
	}

	codec, err := compress.ForKind(compress.Kind(data[3]))
	if err != nil {
		return nil, err
	}

	labeled := data[4]&flagLabeled != 0
	count := int(binary.LittleEndian.Uint32(data[8:12]))
	checksum := binary.LittleEndian.Uint64(data[12:20])

	payload, err := codec.Decompress(data[headerSize:])
	if err != nil {
		return nil, fmt.Errorf("payload decompression failed: %w", err)
	}
	if want := payloadSize(count, labeled); len(payload) != want {
		return nil, fmt.Errorf("%w: payload is %d bytes, want %d", errs.ErrInvalidSnapshot, len(payload), want)
	}
	if xxhash.Sum64(payload) != checksum {
		return nil, fmt.Errorf("%w: checksum mismatch", errs.ErrInvalidSnapshot)
	}

	return decodePayload(payload, count, labeled), nil
}

func payloadSize(count int, labeled bool) int {
	size := count * 24
	if labeled {
		size += (count + 7) / 8
	}

	return size
}

func encodePayload(s *series.Series) []byte {
	n := s.Len()
	buf := make([]byte, 0, payloadSize(n, s.Labeled()))

	for _, ts := range s.Timestamps {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(ts.UnixMicro()))
	}
	for _, v := range s.Outdoor {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
	}
	for _, v := range s.Flow {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
	}
	if s.Labeled() {
		bits := make([]byte, (n+7)/8)
		for i, night := range s.Night {
			if night {
				bits[i/8] |= 1 << (i % 8)
			}
		}
		buf = append(buf, bits...)
	}

	return buf
}

func decodePayload(payload []byte, count int, labeled bool) *series.Series {
	s := series.New(count)

	for i := 0; i < count; i++ {
		micros := int64(binary.LittleEndian.Uint64(payload[i*8:]))
		s.Timestamps = append(s.Timestamps, time.UnixMicro(micros).UTC())
	}
	off := count * 8
	for i := 0; i < count; i++ {
		s.Outdoor = append(s.Outdoor, math.Float64frombits(binary.LittleEndian.Uint64(payload[off+i*8:])))
	}
	off += count * 8
	for i := 0; i < count; i++ {
		s.Flow = append(s.Flow, math.Float64frombits(binary.LittleEndian.Uint64(payload[off+i*8:])))
	}
	if labeled {
		off += count * 8
		s.Night = make([]bool, count)
		for i := 0; i < count; i++ {
			s.Night[i] = payload[off+i/8]&(1<<(i%8)) != 0
		}
	}

	return s
}
