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

// FrameSetReadAt materializes the ordinal'th frame set's mappings and data
// blocks into curRead, evicting whatever was resident before (spec.md §4.8
// "frame_set_read_next", §3 "the currently resident frame set ... evicted
// from memory when a different frame set becomes current").
func (t *Trajectory) FrameSetReadAt(ordinal int) error {
	if err := t.requireState(stateOpenRead, stateOpenAppend); err != nil {
		return err
	}

	entry, err := t.index.SeekOrdinal(ordinal)
	if err != nil {
		return err
	}

	return t.materializeFrameSet(entry)
}

// FrameSetReadForFrame materializes whichever frame set contains frameNr.
func (t *Trajectory) FrameSetReadForFrame(frameNr int64) error {
	if err := t.requireState(stateOpenRead, stateOpenAppend); err != nil {
		return err
	}

	entry, err := t.index.SeekFrame(frameNr)
	if err != nil {
		return err
	}

	return t.materializeFrameSet(entry)
}

// materializeFrameSet reads forward from entry's frame-set block, skipping
// its fixed-size frameset.Header body, and collects PARTICLE_MAPPING and
// data blocks until the next TRAJECTORY_FRAME_SET block or EOF (spec.md §3:
// a frame set is "a TRAJECTORY_FRAME_SET block followed by zero or more
// PARTICLE_MAPPING blocks and data blocks").
func (t *Trajectory) materializeFrameSet(entry frameset.Entry) error {
	if _, err := t.file.Seek(entry.Offset+frameSetBlockTotalSize, io.SeekStart); err != nil {
		return errs.WithStatus(errs.Critical, err)
	}

	content := &frameSetContent{
		header:      entry.Header,
		blockOffset: entry.Offset,
		blocks:      map[int64]*datablock.Block{},
	}

	t.lastHashMismatch = false

	for {
		h, body, err := block.ReadBlock(t.file, t.engine, t.hashMode, hashVerify)
		if err != nil {
			if isEOF(err) {
				break
			}
			if errs.StatusOf(err) == errs.Critical {
				return err
			}
			// Recoverable (hash mismatch): fall through, h/body still valid
			// per spec.md §4.3.
			t.lastHashMismatch = true
		}

		if h.Type == format.TrajectoryBlock && h.ID == format.BlockTrajectoryFrameSet {
			break
		}

		if h.ID == format.BlockParticleMapping {
			m, derr := mapping.DecodeMapping(body, t.engine)
			if derr != nil {
				return derr
			}

			if aerr := content.mappings.Add(m); aerr != nil {
				return aerr
			}

			continue
		}

		blk, derr := datablock.DecodeBlock(h.ID, h.Name, body, t.engine)
		if derr != nil {
			return derr
		}

		content.blocks[h.ID] = blk
	}

	t.curRead = content

	return nil
}
