package datablock_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tngformat/tng/datablock"
	"github.com/tngformat/tng/endian"
	"github.com/tngformat/tng/errs"
	"github.com/tngformat/tng/format"
)

func TestFloat64RoundTripNoCompression(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	b := datablock.NewBlock(format.BlockPositions, "POSITIONS",
		format.Float64Data, format.FrameDependent|format.ParticleDependent,
		1, 3, format.CodecNone)
	b.FirstParticle = 0
	b.NParticles = 2

	require.NoError(t, b.AppendFloat64Frame(0, []float64{0, 0, 0, 10, 10, 10}))
	require.NoError(t, b.AppendFloat64Frame(1, []float64{1, 1, 1, 11, 11, 11}))

	body, err := b.Encode(engine)
	require.NoError(t, err)

	decoded, err := datablock.DecodeBlock(b.ID, b.Name, body, engine)
	require.NoError(t, err)
	require.Equal(t, int64(2), decoded.StoredFrames())

	v, ok := decoded.Float64At(1, 1, 2)
	require.True(t, ok)
	require.Equal(t, 11.0, v)
}

func TestStridedVelocities(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	b := datablock.NewBlock(format.BlockVelocities, "VELOCITIES",
		format.Float32Data, format.FrameDependent|format.ParticleDependent,
		5, 3, format.CodecDeflate)
	b.NParticles = 1

	for f := int64(0); f < 20; f += 5 {
		require.NoError(t, b.AppendFloat32Frame(f, []float32{float32(f), float32(f) + 1, float32(f) + 2}))
	}

	require.Equal(t, int64(4), b.StoredFrames())
	require.True(t, b.AlignedFrame(10))
	require.False(t, b.AlignedFrame(11))

	nearest, stride := b.NearestStored(12)
	require.Equal(t, int64(10), nearest)
	require.Equal(t, int64(5), stride)

	body, err := b.Encode(engine)
	require.NoError(t, err)

	decoded, err := datablock.DecodeBlock(b.ID, b.Name, body, engine)
	require.NoError(t, err)

	v, ok := decoded.Float32At(15, 0, 0)
	require.True(t, ok)
	require.Equal(t, float32(15), v)

	_, ok = decoded.Float32At(16, 0, 0)
	require.False(t, ok)
}

func TestCharBlockRoundTrip(t *testing.T) {
	engine := endian.GetBigEndianEngine()

	b := datablock.NewBlock(1234, "LABELS", format.CharData, format.Dependency(0), 1, 1, format.CodecNone)
	require.NoError(t, b.AppendCharFrame(0, []string{"alpha"}))

	body, err := b.Encode(engine)
	require.NoError(t, err)

	decoded, err := datablock.DecodeBlock(b.ID, b.Name, body, engine)
	require.NoError(t, err)

	s, ok := decoded.StringAt(0, 0, 0)
	require.True(t, ok)
	require.Equal(t, "alpha", s)
}

func TestAppendWrongTypeRejected(t *testing.T) {
	b := datablock.NewBlock(1, "X", format.Float64Data, format.FrameDependent, 1, 1, format.CodecNone)
	err := b.AppendInt64Frame(0, []int64{1})
	require.Error(t, err)
}

func TestAppendMisalignedStrideRejected(t *testing.T) {
	b := datablock.NewBlock(1, "X", format.Float64Data, format.FrameDependent, 2, 1, format.CodecNone)
	require.NoError(t, b.AppendFloat64Frame(0, []float64{1}))
	err := b.AppendFloat64Frame(1, []float64{2})
	require.ErrorIs(t, err, errs.ErrInvalidStride)
}

func TestValueAtDeprecatedAccessor(t *testing.T) {
	b := datablock.NewBlock(1, "X", format.Int64Data, format.FrameDependent, 1, 1, format.CodecNone)
	require.NoError(t, b.AppendInt64Frame(0, []int64{42}))

	v, err := b.ValueAt(0, 0, 0)
	require.NoError(t, err)
	require.Equal(t, int64(42), v.I64)
}

func TestUnknownCodecWarningRecorded(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	b := datablock.NewBlock(1, "X", format.Float64Data, format.FrameDependent, 1, 1, format.Codec(77))
	require.NoError(t, b.AppendFloat64Frame(0, []float64{1}))

	_, err := b.Encode(engine)
	require.NoError(t, err)
	require.NotEmpty(t, b.LastWarning())
}
