package tng

import (
	"io"

	"github.com/tngformat/tng/block"
	"github.com/tngformat/tng/datablock"
	"github.com/tngformat/tng/errs"
	"github.com/tngformat/tng/format"
	"github.com/tngformat/tng/frameset"
	"github.com/tngformat/tng/mapping"
)

// pendingFrameSet is the frame set currently open for writing (spec.md §3
// "the currently resident frame set").
type pendingFrameSet struct {
	header      frameset.Header
	blockOffset int64

	mappings mapping.Table

	blocks     map[int64]*datablock.Block
	blockNames map[int64]string
	blockOrder []int64

	writtenFrames map[int64]struct{}
}

// frameSetContent is a materialized (read from disk) frame set, the read
// path's counterpart to pendingFrameSet.
type frameSetContent struct {
	header      frameset.Header
	blockOffset int64
	mappings    mapping.Table
	blocks      map[int64]*datablock.Block
}

// FrameSetNew closes any currently open frame set and opens a new one
// starting at firstFrame (spec.md §4.8 "frame_set_new requires headers
// written; closes any open frame set first").
func (t *Trajectory) FrameSetNew(firstFrame int64, firstFrameTime float64) error {
	if err := t.requireState(stateOpenWrite, stateOpenAppend); err != nil {
		return err
	}

	if err := t.writeHeadersIfNeeded(); err != nil {
		return err
	}

	if t.cur != nil {
		if err := t.closeFrameSet(); err != nil {
			return err
		}
	}

	blockOffset, err := t.file.Seek(0, io.SeekCurrent)
	if err != nil {
		return errs.WithStatus(errs.Critical, err)
	}

	h := frameset.NewHeader(firstFrame, firstFrameTime)
	h.FrameCount = t.info.FramesPerFrameSet

	if _, werr := block.WriteBlock(t.file, t.engine, format.BlockTrajectoryFrameSet, format.TrajectoryBlock, frameSetBlockName, 1, h.Bytes(t.engine), t.hashMode); werr != nil {
		return werr
	}

	if aerr := t.index.Append(blockOffset, h, func(prevOffset int64, patched frameset.Header) error {
		return t.patchFrameSetHeader(prevOffset, patched)
	}); aerr != nil {
		return aerr
	}

	entry, _ := t.index.Last()
	if perr := t.patchFrameSetHeader(blockOffset, entry.Header); perr != nil {
		return perr
	}

	t.cur = &pendingFrameSet{
		header:        entry.Header,
		blockOffset:   blockOffset,
		blocks:        map[int64]*datablock.Block{},
		blockNames:    map[int64]string{},
		writtenFrames: map[int64]struct{}{},
	}

	return nil
}

// DataBlockAdd creates a non-particle data block descriptor in the current
// frame set (spec.md §4.9 data_block_add). A second call with the same id is
// a no-op, matching "if new_data is null, allocate empty storage" lazy
// semantics.
func (t *Trajectory) DataBlockAdd(id int64, name string, dataType format.DataType, dependency format.Dependency, stride, valuesPerFrame int64, codecID format.Codec) error {
	if err := t.requireState(stateOpenWrite, stateOpenAppend); err != nil {
		return err
	}
	if t.cur == nil {
		return errs.ErrHeadersNotWritten
	}
	if _, exists := t.cur.blocks[id]; exists {
		return nil
	}

	t.cur.blocks[id] = datablock.NewBlock(id, name, dataType, dependency, stride, valuesPerFrame, codecID)
	t.cur.blockNames[id] = name
	t.cur.blockOrder = append(t.cur.blockOrder, id)

	return nil
}

// ParticleDataBlockAdd creates a particle-dependent data block descriptor
// (spec.md §4.9 particle_data_block_add), covering the global particle range
// [firstParticle, firstParticle+nParticles).
func (t *Trajectory) ParticleDataBlockAdd(id int64, name string, dataType format.DataType, stride, valuesPerFrame int64, codecID format.Codec, firstParticle, nParticles int64) error {
	if err := t.DataBlockAdd(id, name, dataType, format.FrameDependent|format.ParticleDependent, stride, valuesPerFrame, codecID); err != nil {
		return err
	}

	blk := t.cur.blocks[id]
	blk.FirstParticle = firstParticle
	blk.NParticles = nParticles

	return nil
}

// MappingAdd registers a particle mapping in the current frame set (spec.md
// §4.6); disjointness is enforced by mapping.Table.Add.
func (t *Trajectory) MappingAdd(firstParticleNumber, count int64, globalIDs []int64) error {
	if err := t.requireState(stateOpenWrite, stateOpenAppend); err != nil {
		return err
	}
	if t.cur == nil {
		return errs.ErrHeadersNotWritten
	}

	return t.cur.mappings.Add(mapping.ParticleMapping{
		FirstParticleNumber: firstParticleNumber,
		Count:               count,
		GlobalIDs:           globalIDs,
	})
}

// markFrameWritten records frameNr as touched in the current frame set, for
// the FramesWritten progress counter (spec.md §4.5 "number of written frames
// in this set (may be < frame_count while being populated)").
func (t *Trajectory) markFrameWritten(frameNr int64) {
	t.cur.writtenFrames[frameNr] = struct{}{}
}

// FrameDataWriteFloat64 deposits one frame's worth of float64 values into
// block id, creating it is not required here: the block must already exist
// via DataBlockAdd (spec.md §4.9 frame_data_write "creating it lazily if
// needed" — lazy creation is left to DataBlockAdd's idempotent no-op shape;
// callers that want laziness just call DataBlockAdd unconditionally first).
func (t *Trajectory) FrameDataWriteFloat64(id, frameNr int64, values []float64) error {
	blk, err := t.currentBlockFor(id)
	if err != nil {
		return err
	}
	if err := blk.AppendFloat64Frame(frameNr, values); err != nil {
		return err
	}
	t.markFrameWritten(frameNr)

	return nil
}

// FrameDataWriteFloat32 is FrameDataWriteFloat64's float32 counterpart.
func (t *Trajectory) FrameDataWriteFloat32(id, frameNr int64, values []float32) error {
	blk, err := t.currentBlockFor(id)
	if err != nil {
		return err
	}
	if err := blk.AppendFloat32Frame(frameNr, values); err != nil {
		return err
	}
	t.markFrameWritten(frameNr)

	return nil
}

// FrameDataWriteInt64 is FrameDataWriteFloat64's int64 counterpart.
func (t *Trajectory) FrameDataWriteInt64(id, frameNr int64, values []int64) error {
	blk, err := t.currentBlockFor(id)
	if err != nil {
		return err
	}
	if err := blk.AppendInt64Frame(frameNr, values); err != nil {
		return err
	}
	t.markFrameWritten(frameNr)

	return nil
}

// FrameParticleDataWriteFloat32 deposits one frame's worth of particle
// vector data (e.g. positions/velocities/forces) into a particle-dependent
// block (spec.md §4.9 frame_particle_data_write).
func (t *Trajectory) FrameParticleDataWriteFloat32(id, frameNr int64, values []float32) error {
	return t.FrameDataWriteFloat32(id, frameNr, values)
}

// FrameParticleDataWriteFloat64 is FrameParticleDataWriteFloat32's float64
// counterpart.
func (t *Trajectory) FrameParticleDataWriteFloat64(id, frameNr int64, values []float64) error {
	return t.FrameDataWriteFloat64(id, frameNr, values)
}

func (t *Trajectory) currentBlockFor(id int64) (*datablock.Block, error) {
	if err := t.requireState(stateOpenWrite, stateOpenAppend); err != nil {
		return nil, err
	}
	if t.cur == nil {
		return nil, errs.ErrHeadersNotWritten
	}

	blk, ok := t.cur.blocks[id]
	if !ok {
		return nil, errs.ErrBlockNotFound
	}

	return blk, nil
}

// closeFrameSet finalizes, validates, and flushes the current frame set to
// disk (spec.md §4.7 "Buffered writes": compressed blocks are emitted at
// frame-set finalisation), then updates the header chain in place.
func (t *Trajectory) closeFrameSet() error {
	cur := t.cur

	for _, blk := range cur.blocks {
		if !blk.IsParticleDependent() {
			continue
		}
		if !cur.mappings.CoversRange(blk.FirstParticle, blk.NParticles) {
			return errs.ErrMappingNotCovering
		}
	}

	cur.mappings.SortByFirstParticle()

	for _, m := range cur.mappings.Mappings {
		body := m.Encode(t.engine)
		if _, err := block.WriteBlock(t.file, t.engine, format.BlockParticleMapping, format.TrajectoryBlock, mappingBlockName, 1, body, t.hashMode); err != nil {
			return err
		}
	}

	for _, id := range cur.blockOrder {
		blk := cur.blocks[id]
		body, err := blk.Encode(t.engine)
		if err != nil {
			return errs.WithStatus(errs.Critical, err)
		}
		if _, werr := block.WriteBlock(t.file, t.engine, id, format.TrajectoryBlock, cur.blockNames[id], 1, body, t.hashMode); werr != nil {
			return werr
		}
	}

	cur.header.FramesWritten = int64(len(cur.writtenFrames))
	cur.header.MappingCount = int64(len(cur.mappings.Mappings))

	if err := t.patchFrameSetHeader(cur.blockOffset, cur.header); err != nil {
		return err
	}
	t.index.UpdateLast(cur.header)

	t.cur = nil
	t.numFrameSetsValid = false

	return nil
}
