// Package util provides convenient high-level wrappers around the most
// common tng.Trajectory write paths, the way the teacher's top-level mebo
// package wraps blob.NumericEncoder: a thin layer that picks sensible
// defaults (block id, name, codec, values-per-frame) so a caller writing a
// standard GROMACS-style trajectory never has to call DataBlockAdd/
// ParticleDataBlockAdd directly for the well-known quantities (spec.md
// §4.9, §1 "positions, velocities, forces, box shape, and lambda").
package util

import (
	"github.com/tngformat/tng"
	"github.com/tngformat/tng/format"
)

const (
	positionsName  = "POSITIONS"
	velocitiesName = "VELOCITIES"
	forcesName     = "FORCES"
	boxShapeName   = "BOX_SHAPE"
	lambdaName     = "TNG_GMX_LAMBDA"

	positionsValuesPerFrame  = 3
	velocitiesValuesPerFrame = 3
	forcesValuesPerFrame     = 3
	boxShapeValuesPerFrame   = 9
	lambdaValuesPerFrame     = 1
)

// Writer wraps a *tng.Trajectory with the write-frequency (stride) settings
// its lazily-created standard blocks use (spec.md §9 supplemented
// tng_util_*_write_frequency_set).
type Writer struct {
	tj *tng.Trajectory

	positionStride int64
	velocityStride int64
	forceStride    int64
	boxShapeStride int64
	lambdaStride   int64
}

// NewWriter returns a Writer with every write frequency defaulted to 1
// (every frame written).
func NewWriter(tj *tng.Trajectory) *Writer {
	return &Writer{
		tj:             tj,
		positionStride: 1,
		velocityStride: 1,
		forceStride:    1,
		boxShapeStride: 1,
		lambdaStride:   1,
	}
}

// SetPositionWriteFrequency sets the stride WritePositions uses when it
// lazily creates the POSITIONS block.
func (w *Writer) SetPositionWriteFrequency(n int64) { w.positionStride = n }

// SetVelocityWriteFrequency is SetPositionWriteFrequency's velocities
// counterpart.
func (w *Writer) SetVelocityWriteFrequency(n int64) { w.velocityStride = n }

// SetForceWriteFrequency is SetPositionWriteFrequency's forces counterpart.
func (w *Writer) SetForceWriteFrequency(n int64) { w.forceStride = n }

// SetBoxShapeWriteFrequency is SetPositionWriteFrequency's box-shape
// counterpart.
func (w *Writer) SetBoxShapeWriteFrequency(n int64) { w.boxShapeStride = n }

// SetLambdaWriteFrequency is SetPositionWriteFrequency's lambda counterpart.
func (w *Writer) SetLambdaWriteFrequency(n int64) { w.lambdaStride = n }

// WritePositions writes one frame of particle positions, covering the full
// declared particle range, lazily creating the POSITIONS block with the
// lossy XTC-style codec spec.md §4.9 names as the conventional choice for
// positions.
func (w *Writer) WritePositions(frameNr int64, values []float32) error {
	if err := w.ensureParticleBlock(format.BlockPositions, positionsName, w.positionStride, positionsValuesPerFrame, format.CodecXTCStyle); err != nil {
		return err
	}

	return w.tj.FrameParticleDataWriteFloat32(format.BlockPositions, frameNr, values)
}

// WriteVelocities is WritePositions' velocities counterpart, same codec
// choice (spec.md §4.9).
func (w *Writer) WriteVelocities(frameNr int64, values []float32) error {
	if err := w.ensureParticleBlock(format.BlockVelocities, velocitiesName, w.velocityStride, velocitiesValuesPerFrame, format.CodecXTCStyle); err != nil {
		return err
	}

	return w.tj.FrameParticleDataWriteFloat32(format.BlockVelocities, frameNr, values)
}

// WriteForces is WritePositions' forces counterpart, defaulting to the
// general deflate codec rather than the lossy positions/velocities codec
// (spec.md §4.9: forces are not conventionally lossy-compressed).
func (w *Writer) WriteForces(frameNr int64, values []float32) error {
	if err := w.ensureParticleBlock(format.BlockForces, forcesName, w.forceStride, forcesValuesPerFrame, format.CodecDeflate); err != nil {
		return err
	}

	return w.tj.FrameParticleDataWriteFloat32(format.BlockForces, frameNr, values)
}

// WriteBoxShape writes one frame's 9-value simulation box shape, a
// non-particle-dependent block (spec.md §4.9).
func (w *Writer) WriteBoxShape(frameNr int64, values []float32) error {
	if err := w.ensureDataBlock(format.BlockBoxShape, boxShapeName, w.boxShapeStride, boxShapeValuesPerFrame, format.CodecXTCStyle); err != nil {
		return err
	}

	return w.tj.FrameDataWriteFloat32(format.BlockBoxShape, frameNr, values)
}

// WriteLambda writes one frame's GROMACS free-energy lambda scalar (spec.md
// §9 supplemented feature, format.BlockLambda).
func (w *Writer) WriteLambda(frameNr int64, value float32) error {
	if err := w.ensureDataBlock(format.BlockLambda, lambdaName, w.lambdaStride, lambdaValuesPerFrame, format.CodecDeflate); err != nil {
		return err
	}

	return w.tj.FrameDataWriteFloat32(format.BlockLambda, frameNr, []float32{value})
}

func (w *Writer) ensureParticleBlock(id int64, name string, stride, valuesPerFrame int64, codecID format.Codec) error {
	n := w.tj.NumParticlesGet()
	return w.tj.ParticleDataBlockAdd(id, name, format.Float32Data, stride, valuesPerFrame, codecID, 0, n)
}

func (w *Writer) ensureDataBlock(id int64, name string, stride, valuesPerFrame int64, codecID format.Codec) error {
	return w.tj.DataBlockAdd(id, name, format.Float32Data, format.FrameDependent, stride, valuesPerFrame, codecID)
}
