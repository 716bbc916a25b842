package codec

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/flate"
)

// DeflateCodec backs codec id 3, spec.md's explicitly named "general
// deflate" slot (spec.md §4.7) — the one codec id whose algorithm spec.md
// names directly rather than leaving opaque, so this module uses a real
// DEFLATE implementation instead of stdlib's, to keep the whole compression
// stack on the same third-party library family as the other codecs.
type DeflateCodec struct {
	level int
}

var _ Codec = DeflateCodec{}

func NewDeflateCodec() DeflateCodec {
	return DeflateCodec{level: flate.DefaultCompression}
}

func (c DeflateCodec) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer

	w, err := flate.NewWriter(&buf, c.level)
	if err != nil {
		return nil, err
	}

	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (DeflateCodec) Decompress(data []byte) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(data))
	defer r.Close()

	return io.ReadAll(r)
}
