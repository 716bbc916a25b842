package datablock

import (
	"github.com/tngformat/tng/codec"
	"github.com/tngformat/tng/endian"
	"github.com/tngformat/tng/errs"
	"github.com/tngformat/tng/format"
)

// Encode serializes b into a data block body (spec.md §4.7): datatype,
// dependency flags, sparse flag, then (if frame-dependent)
// first-frame/n-frames/stride, values-per-frame, codec-id,
// codec-multiplier, then (if particle-dependent) first-particle/n-particles,
// then the codec-transformed payload.
func (b *Block) Encode(engine endian.EndianEngine) ([]byte, error) {
	raw, err := b.encodeRawPayload(engine)
	if err != nil {
		return nil, err
	}

	c, warning := codec.GetCodec(b.CodecID)
	if warning != "" {
		b.lastWarning = warning
	}

	payload, err := c.Compress(raw)
	if err != nil {
		return nil, errs.Criticalf("tng: codec %s compress failed for block %q: %w", b.CodecID, b.Name, err)
	}

	out := make([]byte, 0, 3+64+len(payload))
	out = append(out, byte(b.DataType), byte(b.Dependency), boolByte(b.Sparse))

	if b.IsFrameDependent() {
		out = engine.AppendUint64(out, uint64(b.FirstFrameInBlock)) //nolint:gosec
		out = engine.AppendUint64(out, uint64(b.FramesInBlock))     //nolint:gosec
		out = engine.AppendUint64(out, uint64(b.Stride))            //nolint:gosec
	}

	out = engine.AppendUint64(out, uint64(b.ValuesPerFrame)) //nolint:gosec
	out = engine.AppendUint64(out, uint64(b.CodecID))        //nolint:gosec
	out = engine.AppendUint64(out, floatBits(b.CodecMultiplier))

	if b.IsParticleDependent() {
		out = engine.AppendUint64(out, uint64(b.FirstParticle)) //nolint:gosec
		out = engine.AppendUint64(out, uint64(b.NParticles))    //nolint:gosec
	}

	out = append(out, payload...)

	return out, nil
}

// DecodeBlock parses a data block body produced by Encode. id and name come
// from the owning block.Header, which frames the body (spec.md §4.2).
func DecodeBlock(id int64, name string, data []byte, engine endian.EndianEngine) (*Block, error) {
	if len(data) < 3 {
		return nil, errs.ErrShortRead
	}

	b := &Block{ID: id, Name: name}
	b.DataType = format.DataType(data[0])
	b.Dependency = format.Dependency(data[1])
	b.Sparse = data[2] != 0

	r := cursor{data: data, pos: 3, engine: engine}

	if b.IsFrameDependent() {
		var err error
		if b.FirstFrameInBlock, err = r.i64(); err != nil {
			return nil, err
		}
		if b.FramesInBlock, err = r.i64(); err != nil {
			return nil, err
		}
		if b.Stride, err = r.i64(); err != nil {
			return nil, err
		}
		b.started = b.FramesInBlock > 0
	}

	vpf, err := r.i64()
	if err != nil {
		return nil, err
	}
	b.ValuesPerFrame = vpf

	codecID, err := r.i64()
	if err != nil {
		return nil, err
	}
	b.CodecID = format.Codec(codecID)

	mult, err := r.u64()
	if err != nil {
		return nil, err
	}
	b.CodecMultiplier = floatFromBits(mult)

	if b.IsParticleDependent() {
		if b.FirstParticle, err = r.i64(); err != nil {
			return nil, err
		}
		if b.NParticles, err = r.i64(); err != nil {
			return nil, err
		}
	}

	c, warning := codec.GetCodec(b.CodecID)
	if warning != "" {
		b.lastWarning = warning
	}

	raw, err := c.Decompress(data[r.pos:])
	if err != nil {
		return nil, errs.Criticalf("tng: codec %s decompress failed for block %q: %w", b.CodecID, b.Name, err)
	}

	if err := b.decodeRawPayload(raw, engine); err != nil {
		return nil, err
	}

	return b, nil
}

// encodeRawPayload produces the uncompressed, typed, row-major payload
// (spec.md §3 "payload layout is row-major with dimensions
// [stored_frames][particles?][values_per_frame]").
func (b *Block) encodeRawPayload(engine endian.EndianEngine) ([]byte, error) {
	switch b.DataType {
	case format.Float64Data:
		out := make([]byte, 8*len(b.f64))
		for i, v := range b.f64 {
			engine.PutUint64(out[i*8:i*8+8], floatBits(v))
		}

		return out, nil
	case format.Float32Data:
		out := make([]byte, 4*len(b.f32))
		for i, v := range b.f32 {
			engine.PutUint32(out[i*4:i*4+4], float32Bits(v))
		}

		return out, nil
	case format.Int64Data:
		out := make([]byte, 8*len(b.i64))
		for i, v := range b.i64 {
			engine.PutUint64(out[i*8:i*8+8], uint64(v)) //nolint:gosec
		}

		return out, nil
	case format.CharData:
		var out []byte
		var err error
		for _, s := range b.chars {
			out, err = endian.AppendString(out, engine, s)
			if err != nil {
				return nil, err
			}
		}

		return out, nil
	default:
		return nil, errs.Criticalf("tng: unknown datatype %v for block %q", b.DataType, b.Name)
	}
}

func (b *Block) decodeRawPayload(raw []byte, engine endian.EndianEngine) error {
	count := int(b.StoredFrames() * b.particleCount() * b.ValuesPerFrame)

	switch b.DataType {
	case format.Float64Data:
		if len(raw) < count*8 {
			return errs.ErrShortRead
		}
		b.f64 = make([]float64, count)
		for i := range b.f64 {
			b.f64[i] = floatFromBits(engine.Uint64(raw[i*8 : i*8+8]))
		}
	case format.Float32Data:
		if len(raw) < count*4 {
			return errs.ErrShortRead
		}
		b.f32 = make([]float32, count)
		for i := range b.f32 {
			b.f32[i] = float32FromBits(engine.Uint32(raw[i*4 : i*4+4]))
		}
	case format.Int64Data:
		if len(raw) < count*8 {
			return errs.ErrShortRead
		}
		b.i64 = make([]int64, count)
		for i := range b.i64 {
			b.i64[i] = int64(engine.Uint64(raw[i*8 : i*8+8])) //nolint:gosec
		}
	case format.CharData:
		b.chars = make([]string, 0, count)
		pos := 0
		for range count {
			s, n, err := endian.ReadString(raw[pos:], engine)
			if err != nil {
				return err
			}
			b.chars = append(b.chars, s)
			pos += n
		}
	default:
		return errs.Criticalf("tng: unknown datatype %v for block %q", b.DataType, b.Name)
	}

	return nil
}

type cursor struct {
	data   []byte
	pos    int
	engine endian.EndianEngine
}

func (c *cursor) u64() (uint64, error) {
	if c.pos+8 > len(c.data) {
		return 0, errs.ErrShortRead
	}
	v := c.engine.Uint64(c.data[c.pos : c.pos+8])
	c.pos += 8

	return v, nil
}

func (c *cursor) i64() (int64, error) {
	v, err := c.u64()
	return int64(v), err //nolint:gosec
}

func boolByte(v bool) byte {
	if v {
		return 1
	}

	return 0
}
