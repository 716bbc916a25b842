package codec_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tngformat/tng/codec"
	"github.com/tngformat/tng/format"
)

func payload() []byte {
	b := make([]byte, 4096)
	for i := range b {
		b[i] = byte(i % 7)
	}

	return b
}

func TestNoOpRoundTrip(t *testing.T) {
	c, warn := codec.GetCodec(format.CodecNone)
	require.Empty(t, warn)

	data := payload()
	compressed, err := c.Compress(data)
	require.NoError(t, err)
	require.True(t, bytes.Equal(data, compressed))

	decompressed, err := c.Decompress(compressed)
	require.NoError(t, err)
	require.True(t, bytes.Equal(data, decompressed))
}

func TestZstdRoundTrip(t *testing.T) {
	c, warn := codec.GetCodec(format.CodecXTCStyle)
	require.Empty(t, warn)

	data := payload()
	compressed, err := c.Compress(data)
	require.NoError(t, err)

	decompressed, err := c.Decompress(compressed)
	require.NoError(t, err)
	require.True(t, bytes.Equal(data, decompressed))
}

func TestLZ4RoundTrip(t *testing.T) {
	c, warn := codec.GetCodec(format.CodecFormatSpecific)
	require.Empty(t, warn)

	data := payload()
	compressed, err := c.Compress(data)
	require.NoError(t, err)

	decompressed, err := c.Decompress(compressed)
	require.NoError(t, err)
	require.True(t, bytes.Equal(data, decompressed))
}

func TestDeflateRoundTrip(t *testing.T) {
	c, warn := codec.GetCodec(format.CodecDeflate)
	require.Empty(t, warn)

	data := payload()
	compressed, err := c.Compress(data)
	require.NoError(t, err)

	decompressed, err := c.Decompress(compressed)
	require.NoError(t, err)
	require.True(t, bytes.Equal(data, decompressed))
}

func TestUnknownCodecFallsBackToRaw(t *testing.T) {
	c, warn := codec.GetCodec(format.Codec(99))
	require.NotEmpty(t, warn)

	data := payload()
	compressed, err := c.Compress(data)
	require.NoError(t, err)
	require.True(t, bytes.Equal(data, compressed))
}
