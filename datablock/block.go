// Package datablock implements the per-block data engine (spec.md §4.7):
// metadata, stride semantics, codec dispatch, and the typed payload a
// Trajectory reads and writes frame by frame.
//
// Per-frame writes accumulate into an in-memory typed slice; compression and
// emission happen once, at frame-set finalisation (spec.md §4.7 "Buffered
// writes"), grounded on the teacher's encode-then-Finish() pattern in
// blob/numeric_encoder.go.
package datablock

import (
	"github.com/tngformat/tng/errs"
	"github.com/tngformat/tng/format"
)

// Block is one data block's metadata plus its buffered typed payload.
//
// Block is NOT safe for concurrent use, matching the teacher's "NumericEncoder
// is NOT thread-safe" contract (spec.md §5).
type Block struct {
	ID         int64
	Name       string
	DataType   format.DataType
	Dependency format.Dependency
	Sparse     bool

	Stride         int64
	ValuesPerFrame int64

	CodecID         format.Codec
	CodecMultiplier float64

	// FirstFrameInBlock and FramesInBlock describe the span of frames this
	// block covers; FramesInBlock may exceed the number of actually stored
	// samples when Stride > 1 (spec.md §4.7 "stored_frames ==
	// ceil(frame_count/stride)").
	FirstFrameInBlock int64
	FramesInBlock     int64

	// FirstParticle/NParticles are only meaningful when Dependency is
	// particle-dependent.
	FirstParticle int64
	NParticles    int64

	started bool

	f64   []float64
	f32   []float32
	i64   []int64
	chars []string

	// lastWarning records a non-critical codec warning from the most recent
	// Encode/DecodeBlock call (spec.md §4.7 "Unknown ids fall back to raw
	// storage with a non-critical warning recorded").
	lastWarning string
}

// LastWarning returns the non-critical warning recorded by the most recent
// Encode or DecodeBlock call, or "" if none was recorded.
func (b *Block) LastWarning() string { return b.lastWarning }

// NewBlock returns an empty block ready for buffered writes.
func NewBlock(id int64, name string, dataType format.DataType, dependency format.Dependency, stride, valuesPerFrame int64, codecID format.Codec) *Block {
	return &Block{
		ID:             id,
		Name:           name,
		DataType:       dataType,
		Dependency:     dependency,
		Stride:         stride,
		ValuesPerFrame: valuesPerFrame,
		CodecID:        codecID,
	}
}

// IsFrameDependent reports whether b varies per frame (spec.md §3, §4.7).
func (b *Block) IsFrameDependent() bool { return b.Dependency.IsFrameDependent() }

// IsParticleDependent reports whether b varies per particle.
func (b *Block) IsParticleDependent() bool { return b.Dependency.IsParticleDependent() }

// particleCount returns the number of particles a row spans: NParticles for
// particle-dependent blocks, 1 (a single implicit row) otherwise.
func (b *Block) particleCount() int64 {
	if b.IsParticleDependent() {
		return b.NParticles
	}

	return 1
}

// rowLen returns the number of scalar values in one stored row.
func (b *Block) rowLen() int64 {
	return b.particleCount() * b.ValuesPerFrame
}

// StoredFrames returns the number of samples actually stored, per spec.md
// §4.7's invariant stored_frames == ceil(frame_count/stride) for
// frame-dependent blocks, or 1 for a block with no frame dependency.
func (b *Block) StoredFrames() int64 {
	if !b.IsFrameDependent() {
		return 1
	}
	if b.Stride <= 0 || b.FramesInBlock <= 0 {
		return 0
	}

	return (b.FramesInBlock + b.Stride - 1) / b.Stride
}

// AlignedFrame reports whether frameNr is a stored sample of this block
// (spec.md §4.7 stride semantics: "present iff (f - first_frame) mod stride
// == 0 and first_frame <= f < first_frame + stride*stored_frames").
func (b *Block) AlignedFrame(frameNr int64) bool {
	if !b.started {
		return false
	}

	if frameNr < b.FirstFrameInBlock {
		return false
	}

	delta := frameNr - b.FirstFrameInBlock
	if delta%b.Stride != 0 {
		return false
	}

	return frameNr < b.FirstFrameInBlock+b.Stride*b.StoredFrames()
}

// NearestStored returns the nearest stored frame at or before frameNr and
// this block's stride, for callers that requested a non-stored frame
// (spec.md §4.7: "Readers that request a non-stored frame report the
// nearest stored frame and the stride so the caller can align.").
func (b *Block) NearestStored(frameNr int64) (nearest int64, stride int64) {
	if !b.started || frameNr <= b.FirstFrameInBlock {
		return b.FirstFrameInBlock, b.Stride
	}

	delta := frameNr - b.FirstFrameInBlock
	nearestDelta := (delta / b.Stride) * b.Stride
	if last := b.Stride * (b.StoredFrames() - 1); nearestDelta > last {
		nearestDelta = last
	}

	return b.FirstFrameInBlock + nearestDelta, b.Stride
}

// row returns the stored-row index for frameNr, or false if frameNr is not
// a stored sample. A block with no frame dependency has exactly one row,
// regardless of frameNr — the argument only matters for frame-dependent
// blocks.
func (b *Block) row(frameNr int64) (int64, bool) {
	if !b.IsFrameDependent() {
		return 0, true
	}
	if !b.AlignedFrame(frameNr) {
		return 0, false
	}

	return (frameNr - b.FirstFrameInBlock) / b.Stride, true
}

// beginOrExtend records frameNr as part of this block's span, setting
// FirstFrameInBlock on the first write and validating stride alignment on
// subsequent ones.
func (b *Block) beginOrExtend(frameNr int64) error {
	if !b.started {
		b.FirstFrameInBlock = frameNr
		b.FramesInBlock = 1
		b.started = true

		return nil
	}

	if b.IsFrameDependent() {
		delta := frameNr - b.FirstFrameInBlock
		if delta < 0 || delta%b.Stride != 0 {
			return errs.ErrInvalidStride
		}

		if span := delta + 1; span > b.FramesInBlock {
			b.FramesInBlock = span
		}
	}

	return nil
}
