// Package tng implements the trajectory controller (spec.md §4.8, §4.9): the
// top-level type that owns a file handle, the topology and provenance
// metadata, the frame-set index, and every public read/write operation.
//
// Trajectory is NOT safe for concurrent use (spec.md §5), the same
// single-goroutine-owned contract the teacher documents for NumericEncoder
// in mebo/blob/numeric_encoder.go.
package tng

import (
	"io"
	"os"

	"github.com/tngformat/tng/block"
	"github.com/tngformat/tng/blockhash"
	"github.com/tngformat/tng/endian"
	"github.com/tngformat/tng/errs"
	"github.com/tngformat/tng/format"
	"github.com/tngformat/tng/frameset"
	"github.com/tngformat/tng/internal/options"
	"github.com/tngformat/tng/topology"
)

// Names used for the fixed top-level and per-frame-set blocks. Kept constant
// so the fixed-prefix length of a TRAJECTORY_FRAME_SET block's header is
// computable without re-reading it (needed to locate the frameset.Header
// record for in-place back-patching, spec.md §4.5).
const (
	generalInfoBlockName = "GENERAL_INFO"
	moleculesBlockName   = "MOLECULES"
	frameSetBlockName    = "TRAJECTORY_FRAME_SET"
	mappingBlockName     = "PARTICLE_MAPPING"
)

// frameSetBlockPrefixLen is the fixed byte length of a TRAJECTORY_FRAME_SET
// block's header (size+type+id+hash+name_len+name+version), i.e. the offset
// from the block's start to where its frameset.Header body begins.
const frameSetBlockPrefixLen = block.FixedHeaderSize + len(frameSetBlockName)

// frameSetBlockTotalSize is the total on-disk size of a TRAJECTORY_FRAME_SET
// block: its fixed header plus the fixed-size frameset.Header body.
const frameSetBlockTotalSize = int64(frameSetBlockPrefixLen + frameset.HeaderSize)

// state is the controller's internal lifecycle state (spec.md §4.8).
type state uint8

const (
	stateClosed state = iota
	stateOpenRead
	stateOpenWrite
	stateOpenAppend
)

// Trajectory is the root container: open/close lifecycle, provenance and
// layout metadata, topology, frame-set index, and the currently resident
// frame set (spec.md §3 "Trajectory (root)").
type Trajectory struct {
	st     state
	mode   format.OpenMode
	engine endian.EndianEngine
	hashMode format.HashMode

	// lastHashMismatch records whether the most recent loadHeaders or
	// materializeFrameSet call recovered from an MD5 mismatch on some
	// block it read (spec.md §7 "status is the primary signal", §4.3).
	// Caller-visible counterpart to datablock.Block.LastWarning().
	lastHashMismatch bool

	path string
	file *os.File

	info     GeneralInfo
	topology *topology.Topology

	// rootBlocks are non-trajectory data blocks owned by the root rather
	// than a frame set (spec.md §3 "the list of non-trajectory data
	// blocks"). Rare in practice; written once, right after MOLECULES.
	rootBlocks     map[int64][]byte // already-encoded bodies, keyed by id
	rootBlockNames map[int64]string
	rootBlockOrder []int64

	headersWritten bool

	index               *frameset.Index
	firstFrameSetOffset int64
	numFrameSetsCached  int64
	numFrameSetsValid   bool

	// lastFrameSetOffsetPos is the absolute file offset of the
	// LastFrameSetOffset field within the already-written GENERAL_INFO
	// block body, captured once when the header is first written (or
	// loaded back in append mode) so Close can backpatch it in place
	// without re-reading the block (spec.md §4.8, §6).
	lastFrameSetOffsetPos int64

	cur *pendingFrameSet // the frame set currently open for writing, or nil

	// curRead is the most recently materialized frame set on the read
	// path (spec.md §4.8 "frame_set_read_next"), evicted and replaced each
	// time a different frame set is read.
	curRead *frameSetContent
}

// NewTrajectory returns a closed Trajectory ready for Open, with sensible
// defaults (little-endian, hash verification on, one frame per frame set,
// stride length 1 — i.e. medium and long pointers name the immediately
// preceding frame set, like Prev, until raised).
func NewTrajectory(opts ...Option) (*Trajectory, error) {
	t := &Trajectory{
		engine:   endian.GetLittleEndianEngine(),
		hashMode: format.HashUse,
		info:     defaultGeneralInfo(),
		topology: &topology.Topology{},
	}

	if err := options.Apply(t, opts...); err != nil {
		return nil, errs.WithStatus(errs.Critical, err)
	}

	t.index = frameset.NewIndex(t.info.MediumStrideLength, t.info.LongStrideLength)

	return t, nil
}

// Open opens path in mode (spec.md §6 "r"/"w"/"a", §4.8 transitions).
func (t *Trajectory) Open(path string, mode format.OpenMode) error {
	if t.st != stateClosed {
		return errs.ErrWrongMode
	}

	switch mode {
	case format.ReadMode:
		f, err := os.Open(path)
		if err != nil {
			return errs.WithStatus(errs.Critical, err)
		}
		t.file = f
		t.path = path
		t.mode = mode

		if err := t.loadHeaders(); err != nil {
			_ = f.Close()
			return err
		}

		t.st = stateOpenRead

		return nil

	case format.WriteMode:
		f, err := os.Create(path)
		if err != nil {
			return errs.WithStatus(errs.Critical, err)
		}
		t.file = f
		t.path = path
		t.mode = mode
		t.st = stateOpenWrite

		return nil

	case format.AppendMode:
		f, err := os.OpenFile(path, os.O_RDWR, 0o644)
		if err != nil {
			return errs.WithStatus(errs.Critical, err)
		}
		t.file = f
		t.path = path
		t.mode = mode

		if err := t.loadHeaders(); err != nil {
			_ = f.Close()
			return err
		}

		t.st = stateOpenAppend

		return nil

	default:
		return errs.Criticalf("tng: unknown open mode %v", mode)
	}
}

// Close flushes any open frame set, patches the last-frame-set pointer and
// releases the file handle (spec.md §4.8 "close").
func (t *Trajectory) Close() error {
	if t.st == stateClosed {
		return nil
	}

	var flushErr error
	if t.st == stateOpenWrite || t.st == stateOpenAppend {
		flushErr = t.writeHeadersIfNeeded()
	}
	if flushErr == nil && t.cur != nil {
		flushErr = t.closeFrameSet()
	}
	if flushErr == nil && (t.st == stateOpenWrite || t.st == stateOpenAppend) {
		flushErr = t.patchLastFrameSetOffset()
	}

	closeErr := t.file.Close()
	t.st = stateClosed
	t.file = nil

	if flushErr != nil {
		return flushErr
	}
	if closeErr != nil {
		return errs.WithStatus(errs.Critical, closeErr)
	}

	return nil
}

// requireState returns errs.ErrNotOpen when the controller is closed, and
// errs.ErrWrongMode when it is open in a state not among allowed.
func (t *Trajectory) requireState(allowed ...state) error {
	if t.st == stateClosed {
		return errs.ErrNotOpen
	}

	for _, s := range allowed {
		if t.st == s {
			return nil
		}
	}

	return errs.ErrWrongMode
}

// writeHeadersIfNeeded emits GENERAL_INFO, MOLECULES and any registered root
// blocks before the first frame set is created (spec.md §4.8 "open(w) →
// file is truncated; header blocks must be emitted before any frame set.").
func (t *Trajectory) writeHeadersIfNeeded() error {
	if t.headersWritten {
		return nil
	}
	if t.st != stateOpenWrite && t.st != stateOpenAppend {
		return errs.ErrWrongMode
	}

	blockStart, serr := t.file.Seek(0, io.SeekCurrent)
	if serr != nil {
		return errs.WithStatus(errs.Critical, serr)
	}

	body, err := t.info.Encode(t.engine)
	if err != nil && errs.StatusOf(err) == errs.Critical {
		return err
	}
	h, werr := block.WriteBlock(t.file, t.engine, format.BlockGeneralInfo, format.NonTrajectoryBlock, generalInfoBlockName, 1, body, t.hashMode)
	if werr != nil {
		return werr
	}
	t.lastFrameSetOffsetPos = blockStart + int64(h.HeaderLen()) + int64(len(body)) - 8

	topoBody, err := t.topology.Encode(t.engine)
	if err != nil && errs.StatusOf(err) == errs.Critical {
		return err
	}
	if _, werr := block.WriteBlock(t.file, t.engine, format.BlockMolecules, format.NonTrajectoryBlock, moleculesBlockName, 1, topoBody, t.hashMode); werr != nil {
		return werr
	}

	for _, id := range t.rootBlockOrder {
		name := t.rootBlockNames[id]
		body := t.rootBlocks[id]
		if _, werr := block.WriteBlock(t.file, t.engine, id, format.NonTrajectoryBlock, name, 1, body, t.hashMode); werr != nil {
			return werr
		}
	}

	t.headersWritten = true

	return nil
}

// loadHeaders reads GENERAL_INFO, MOLECULES, any root data blocks, then
// records the offset of the first frame set and rebuilds the header chain
// (spec.md §4.8 "open(r) → parses headers ... and records first-frame-set
// offset.").
func (t *Trajectory) loadHeaders() error {
	if _, err := t.file.Seek(0, io.SeekStart); err != nil {
		return errs.WithStatus(errs.Critical, err)
	}

	t.lastHashMismatch = false

	h, body, err := block.ReadBlock(t.file, t.engine, t.hashMode, hashVerify)
	if err != nil {
		if errs.StatusOf(err) == errs.Critical {
			return err
		}
		t.lastHashMismatch = true
	}
	if h.ID != format.BlockGeneralInfo {
		return errs.Criticalf("tng: expected GENERAL_INFO as first block, got id %d", h.ID)
	}
	info, ierr := DecodeGeneralInfo(body, t.engine)
	if ierr != nil {
		return ierr
	}
	t.info = info
	t.lastFrameSetOffsetPos = int64(h.HeaderLen()) + int64(len(body)) - 8

	h, body, err = block.ReadBlock(t.file, t.engine, t.hashMode, hashVerify)
	if err != nil {
		if errs.StatusOf(err) == errs.Critical {
			return err
		}
		t.lastHashMismatch = true
	}
	if h.ID != format.BlockMolecules {
		return errs.Criticalf("tng: expected MOLECULES as second block, got id %d", h.ID)
	}
	topo, terr := topology.Decode(body, t.engine)
	if terr != nil {
		return terr
	}
	t.topology = topo

	t.rootBlocks = map[int64][]byte{}
	t.rootBlockNames = map[int64]string{}

	for {
		pos, perr := t.file.Seek(0, io.SeekCurrent)
		if perr != nil {
			return errs.WithStatus(errs.Critical, perr)
		}

		h, body, err = block.ReadBlock(t.file, t.engine, t.hashMode, hashVerify)
		if err != nil {
			if isEOF(err) {
				t.firstFrameSetOffset = -1
				break
			}
			if errs.StatusOf(err) == errs.Critical {
				return err
			}
			// Recoverable (hash mismatch): h/body are still valid, per
			// spec.md §4.3 "mismatch yields a non-critical failure but
			// does not halt parsing of subsequent blocks."
			t.lastHashMismatch = true
		}

		if h.Type == format.TrajectoryBlock {
			t.firstFrameSetOffset = pos
			break
		}

		t.rootBlocks[h.ID] = body
		t.rootBlockNames[h.ID] = h.Name
		t.rootBlockOrder = append(t.rootBlockOrder, h.ID)
	}

	t.headersWritten = true

	t.index = frameset.NewIndex(t.info.MediumStrideLength, t.info.LongStrideLength)
	if t.firstFrameSetOffset >= 0 {
		idx, rerr := frameset.ReadChain(t.firstFrameSetOffset, t.info.MediumStrideLength, t.info.LongStrideLength, t.readFrameSetHeaderAt)
		if rerr != nil {
			return rerr
		}
		t.index = idx
	}

	if t.mode == format.AppendMode {
		if _, err := t.file.Seek(0, io.SeekEnd); err != nil {
			return errs.WithStatus(errs.Critical, err)
		}
	}

	return nil
}

// readFrameSetHeaderAt reads just the frameset.Header located at the start
// of the TRAJECTORY_FRAME_SET block beginning at offset.
func (t *Trajectory) readFrameSetHeaderAt(offset int64) (frameset.Header, error) {
	if _, err := t.file.Seek(offset, io.SeekStart); err != nil {
		return frameset.Header{}, errs.WithStatus(errs.Critical, err)
	}

	h, body, err := block.ReadBlock(t.file, t.engine, t.hashMode, hashVerify)
	if err != nil {
		if errs.StatusOf(err) == errs.Critical {
			return frameset.Header{}, err
		}
		t.lastHashMismatch = true
	}
	if h.ID != format.BlockTrajectoryFrameSet {
		return frameset.Header{}, errs.Criticalf("tng: expected TRAJECTORY_FRAME_SET at offset %d, got id %d", offset, h.ID)
	}

	return frameset.ParseHeader(body, t.engine)
}

func isEOF(err error) bool {
	return err != nil && (errs.StatusOf(err) == errs.Critical) && isEOFUnwrap(err)
}

func isEOFUnwrap(err error) bool {
	type unwrapper interface{ Unwrap() error }
	for err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF { //nolint:errorlint
			return true
		}
		u, ok := err.(unwrapper) //nolint:errorlint
		if !ok {
			return false
		}
		err = u.Unwrap()
	}

	return false
}

func hashVerify(body []byte, want [format.MD5HashLen]byte) bool {
	return blockhash.Verify(body, want)
}

// HashMismatched reports whether the most recent header load or frame-set
// materialization recovered from an MD5 mismatch on some block it read
// (spec.md §4.3, §8 scenario 6 "hash tamper"). It does not say which block
// mismatched.
func (t *Trajectory) HashMismatched() bool {
	return t.lastHashMismatch
}

// patchFrameSetHeader overwrites the frameset.Header record belonging to the
// TRAJECTORY_FRAME_SET block that starts at blockOffset, then rewrites that
// block's hash field to match the new body (all-zero under HashSkip).
func (t *Trajectory) patchFrameSetHeader(blockOffset int64, h frameset.Header) error {
	if err := frameset.WriteHeaderAt(t.file, blockOffset+frameSetBlockPrefixLen, h, t.engine); err != nil {
		return err
	}

	var sum [format.MD5HashLen]byte
	if t.hashMode == format.HashUse {
		sum = blockhash.Sum(h.Bytes(t.engine))
	}
	// The hash field follows the 8-byte size, type and id fields.
	if _, err := t.file.WriteAt(sum[:], blockOffset+24); err != nil {
		return errs.WithStatus(errs.Critical, err)
	}

	return nil
}

// patchLastFrameSetOffset backpatches the GENERAL_INFO block's
// LastFrameSetOffset field with the offset of the most recently written
// frame set's TRAJECTORY_FRAME_SET block, in place, at its original offset
// (spec.md §3, §4.8 "close ... patches the last-frame-set pointer stored in
// the general info block at its original offset"). It is a no-op if no
// frame set has ever been written. This is the only GeneralInfo field
// patched after the block is first written (spec.md §6), and must run
// before the file handle is released (spec.md §9).
func (t *Trajectory) patchLastFrameSetOffset() error {
	entry, ok := t.index.Last()
	if !ok {
		return nil
	}

	t.info.LastFrameSetOffset = entry.Offset

	var buf [8]byte
	t.engine.PutUint64(buf[:], uint64(entry.Offset)) //nolint:gosec
	if _, err := t.file.WriteAt(buf[:], t.lastFrameSetOffsetPos); err != nil {
		return errs.WithStatus(errs.Critical, err)
	}

	return nil
}
