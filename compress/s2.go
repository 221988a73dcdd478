package compress

import "github.com/klauspost/compress/s2"

// S2Codec compresses snapshot payloads with S2, the fastest codec available
// here. Suited to short-lived intermediate snapshots where throughput
// matters more than ratio.
type S2Codec struct{}

var _ Codec = S2Codec{}

// Compress encodes the payload as an S2 block.
func (S2Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

// Decompress decodes an S2 block.
func (S2Codec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Decode(nil, data)
}
