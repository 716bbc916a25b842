package codec

import "github.com/valyala/gozstd"

// ZstdCodec backs codec id 1, the "xtc-style lossy positions" slot (spec.md
// §4.7): positions/velocities compress well under a general-purpose
// dictionary-free codec once quantized by the caller, so this module wires
// that slot to zstd rather than reimplementing XTC's bit-packing.
type ZstdCodec struct {
	level int
}

var _ Codec = ZstdCodec{}

// NewZstdCodec returns a ZstdCodec at zstd's default compression level.
func NewZstdCodec() ZstdCodec {
	return ZstdCodec{level: 3}
}

func (c ZstdCodec) Compress(data []byte) ([]byte, error) {
	return gozstd.CompressLevel(nil, data, c.level), nil
}

func (c ZstdCodec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.Decompress(nil, data)
}
