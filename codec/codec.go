// Package codec dispatches a data block's codec id (format.Codec) to a
// concrete byte-in/byte-out transform (spec.md §4.7 "Codec dispatch").
//
// The engine hands a codec a contiguous byte buffer on write and gets one
// back on read; it never inspects a codec's internal state, mirroring the
// Compressor/Decompressor/Codec split the teacher's compress package uses.
package codec

import (
	"fmt"

	"github.com/tngformat/tng/format"
)

// Compressor transforms a raw payload into its stored, possibly smaller form.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor's transform.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions of a codec id's transform.
type Codec interface {
	Compressor
	Decompressor
}

// GetCodec retrieves the built-in Codec for id, or a passthrough codec with
// a recorded warning if id is not recognised (spec.md §4.7 "Unknown ids fall
// back to raw storage with a non-critical warning recorded").
func GetCodec(id format.Codec) (codec Codec, warning string) {
	switch id {
	case format.CodecNone:
		return NoOp{}, ""
	case format.CodecXTCStyle:
		return NewZstdCodec(), ""
	case format.CodecFormatSpecific:
		return NewLZ4Codec(), ""
	case format.CodecDeflate:
		return NewDeflateCodec(), ""
	default:
		return NoOp{}, fmt.Sprintf("tng: unknown codec id %d, falling back to raw storage", id)
	}
}
