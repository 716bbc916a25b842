package tng

import (
	"github.com/tngformat/tng/datablock"
	"github.com/tngformat/tng/errs"
	"github.com/tngformat/tng/format"
	"github.com/tngformat/tng/mapping"
)

// Vector is the typed payload of one data block, as materialized from the
// currently resident read-side frame set (spec.md §4.9 data_vector_get).
type Vector struct {
	ID             int64
	Name           string
	DataType       format.DataType
	ValuesPerFrame int64
	Stride         int64
	FirstFrame     int64
	FrameCount     int64

	FirstParticle int64
	NParticles    int64

	Float64 []float64
	Float32 []float32
	Int64   []int64
	Char    []string
}

// DataVectorGet returns data block id's full buffered payload, particle-
// dependent or not and without mapping translation (ParticleDataVectorGet
// adds the mapping table), from the currently resident frame set (spec.md §4.9
// data_vector_get; call FrameSetReadAt/FrameSetReadForFrame first).
func (t *Trajectory) DataVectorGet(id int64) (Vector, error) {
	blk, err := t.readBlockFor(id)
	if err != nil {
		return Vector{}, err
	}

	return vectorOf(blk), nil
}

// ParticleDataVectorGet returns a particle-dependent data block's payload
// together with the frame set's mapping table, so the caller can translate
// local storage indices to global particle ids via Table.Resolve (spec.md
// §4.6 "the engine resolves the mapping by linear scan", §4.9
// particle_data_vector_get). It fails if the block's particle range is not
// fully covered by the frame set's mappings.
func (t *Trajectory) ParticleDataVectorGet(id int64) (Vector, mapping.Table, error) {
	blk, err := t.readBlockFor(id)
	if err != nil {
		return Vector{}, mapping.Table{}, err
	}
	if !blk.IsParticleDependent() {
		return Vector{}, mapping.Table{}, errs.Criticalf("tng: block %q is not particle-dependent", blk.Name)
	}
	if !t.curRead.mappings.CoversRange(blk.FirstParticle, blk.NParticles) {
		return Vector{}, mapping.Table{}, errs.ErrMappingNotCovering
	}

	return vectorOf(blk), t.curRead.mappings, nil
}

func (t *Trajectory) readBlockFor(id int64) (*datablock.Block, error) {
	if err := t.requireState(stateOpenRead, stateOpenAppend); err != nil {
		return nil, err
	}
	if t.curRead == nil {
		return nil, errs.ErrBlockNotFound
	}

	blk, ok := t.curRead.blocks[id]
	if !ok {
		return nil, errs.ErrBlockNotFound
	}

	return blk, nil
}

func vectorOf(blk *datablock.Block) Vector {
	return Vector{
		ID:             blk.ID,
		Name:           blk.Name,
		DataType:       blk.DataType,
		ValuesPerFrame: blk.ValuesPerFrame,
		Stride:         blk.Stride,
		FirstFrame:     blk.FirstFrameInBlock,
		FrameCount:     blk.FramesInBlock,
		FirstParticle:  blk.FirstParticle,
		NParticles:     blk.NParticles,
		Float64:        blk.Float64Values(),
		Float32:        blk.Float32Values(),
		Int64:          blk.Int64Values(),
		Char:           blk.CharValues(),
	}
}
