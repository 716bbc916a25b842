package tng

import (
	"github.com/tngformat/tng/errs"
	"github.com/tngformat/tng/format"
	"github.com/tngformat/tng/frameset"
	"github.com/tngformat/tng/internal/options"
	"github.com/tngformat/tng/topology"
)

// NewFromSource implements init_from_src (spec.md §5): it opens outPath for
// writing and seeds the new Trajectory with src's topology, provenance and
// layout metadata, and root-level data block descriptors, without copying
// any frame set. This lets several producers share one declared topology and
// each write their own independent shard of frame sets to separate files;
// joining the shards back into one trajectory happens outside this package,
// since Trajectory is single-goroutine-
// owned (spec.md §5) and frame-set appends are not coordinated across
// processes.
func NewFromSource(src *Trajectory, outPath string, opts ...Option) (*Trajectory, error) {
	if err := src.requireState(stateOpenRead, stateOpenWrite, stateOpenAppend); err != nil {
		return nil, err
	}

	topoBody, err := src.topology.Encode(src.engine)
	if err != nil && errs.StatusOf(err) == errs.Critical {
		return nil, err
	}

	out, err := NewTrajectory()
	if err != nil {
		return nil, err
	}

	out.info = src.info
	out.info.FirstProgramName = src.info.LastProgramName
	out.info.LastProgramName = ""
	out.info.LastFrameSetOffset = -1

	if aerr := options.Apply(out, opts...); aerr != nil {
		return nil, errs.WithStatus(errs.Critical, aerr)
	}
	out.index = frameset.NewIndex(out.info.MediumStrideLength, out.info.LongStrideLength)

	topo, terr := topology.Decode(topoBody, src.engine)
	if terr != nil {
		return nil, terr
	}
	out.topology = topo

	out.rootBlocks = map[int64][]byte{}
	out.rootBlockNames = map[int64]string{}
	for _, id := range src.rootBlockOrder {
		out.rootBlocks[id] = append([]byte(nil), src.rootBlocks[id]...)
		out.rootBlockNames[id] = src.rootBlockNames[id]
		out.rootBlockOrder = append(out.rootBlockOrder, id)
	}

	if oerr := out.Open(outPath, format.WriteMode); oerr != nil {
		return nil, oerr
	}

	return out, nil
}
