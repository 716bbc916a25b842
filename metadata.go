package tng

import (
	"github.com/tngformat/tng/frameset"
	"github.com/tngformat/tng/unit"
)

// NumFramesGet returns the total number of frames actually written across
// every frame set, flushed or still open (spec.md §4.9 "round trip: ...
// num_frames_get equals total frames written across all frame sets.").
func (t *Trajectory) NumFramesGet() int64 {
	var n int64
	for i := 0; i < t.index.Len(); i++ {
		e, _ := t.index.SeekOrdinal(i)
		n += e.Header.FramesWritten
	}
	if t.cur != nil {
		n += int64(len(t.cur.writtenFrames))
	}

	return n
}

// NumParticlesGet returns the particle count recorded in the topology
// (spec.md §4.9, §4.4).
func (t *Trajectory) NumParticlesGet() int64 {
	return t.topology.TotalAtomCount()
}

// NumFrameSetsGet returns the number of frame sets, counting the currently
// open one if any.
func (t *Trajectory) NumFrameSetsGet() int64 {
	n := int64(t.index.Len())
	if t.cur != nil {
		n++
	}

	return n
}

// FrameSetNrFind returns the ordinal'th frame set's header (spec.md §4.5).
func (t *Trajectory) FrameSetNrFind(ordinal int) (frameset.Header, error) {
	e, err := t.index.SeekOrdinal(ordinal)
	return e.Header, err
}

// FrameSetOfFrameFind returns the header of the frame set containing
// frameNr (spec.md §4.5 "Seeking by frame number proceeds identically
// against the per-frame-set first-frame field.").
func (t *Trajectory) FrameSetOfFrameFind(frameNr int64) (frameset.Header, error) {
	e, err := t.index.SeekFrame(frameNr)
	return e.Header, err
}

// MediumStrideLengthGet returns the current medium skip-pointer stride.
func (t *Trajectory) MediumStrideLengthGet() int64 { return t.info.MediumStrideLength }

// MediumStrideLengthSet updates the medium skip-pointer stride used for
// frame sets appended from this point forward; already-written frame sets'
// pointers are unaffected (spec.md §9 supplemented feature).
func (t *Trajectory) MediumStrideLengthSet(n int64) {
	t.info.MediumStrideLength = n
	t.index.MediumStride = n
}

// LongStrideLengthGet returns the current long skip-pointer stride.
func (t *Trajectory) LongStrideLengthGet() int64 { return t.info.LongStrideLength }

// LongStrideLengthSet updates the long skip-pointer stride for future
// appends.
func (t *Trajectory) LongStrideLengthSet(n int64) {
	t.info.LongStrideLength = n
	t.index.LongStride = n
}

// NumFramesPerFrameSetGet returns the frame-set size target newly created
// frame sets are given.
func (t *Trajectory) NumFramesPerFrameSetGet() int64 { return t.info.FramesPerFrameSet }

// NumFramesPerFrameSetSet changes the target for frame sets created after
// this call; it does not affect existing frame sets (spec.md §9).
func (t *Trajectory) NumFramesPerFrameSetSet(n int64) {
	t.info.FramesPerFrameSet = n
}

// FirstProgramNameGet copies the first-program-name provenance field into
// dst, reporting the number of bytes copied. When dst is shorter than the
// field, the copy stops at len(dst); the returned count is the only result,
// so a truncation is not signalled separately.
func (t *Trajectory) FirstProgramNameGet(dst []byte) int {
	return copy(dst, t.info.FirstProgramName)
}

// FirstProgramNameSet sets the first-program-name provenance field.
func (t *Trajectory) FirstProgramNameSet(name string) { t.info.FirstProgramName = name }

// LastProgramNameGet copies the last-program-name provenance field into dst,
// reporting the number of bytes copied (spec.md §4.9, mirroring
// FirstProgramNameGet's truncating-getter shape).
func (t *Trajectory) LastProgramNameGet(dst []byte) int {
	return copy(dst, t.info.LastProgramName)
}

// LastProgramNameSet sets the last-program-name provenance field.
func (t *Trajectory) LastProgramNameSet(name string) { t.info.LastProgramName = name }

// FirstUserNameGet copies the first-user-name provenance field into dst.
func (t *Trajectory) FirstUserNameGet(dst []byte) int {
	return copy(dst, t.info.FirstUserName)
}

// FirstUserNameSet sets the first-user-name provenance field.
func (t *Trajectory) FirstUserNameSet(name string) { t.info.FirstUserName = name }

// LastUserNameGet copies the last-user-name provenance field into dst.
func (t *Trajectory) LastUserNameGet(dst []byte) int {
	return copy(dst, t.info.LastUserName)
}

// LastUserNameSet sets the last-user-name provenance field.
func (t *Trajectory) LastUserNameSet(name string) { t.info.LastUserName = name }

// FirstComputerNameGet copies the first-computer-name provenance field into dst.
func (t *Trajectory) FirstComputerNameGet(dst []byte) int {
	return copy(dst, t.info.FirstComputerName)
}

// FirstComputerNameSet sets the first-computer-name provenance field.
func (t *Trajectory) FirstComputerNameSet(name string) { t.info.FirstComputerName = name }

// LastComputerNameGet copies the last-computer-name provenance field into dst.
func (t *Trajectory) LastComputerNameGet(dst []byte) int {
	return copy(dst, t.info.LastComputerName)
}

// LastComputerNameSet sets the last-computer-name provenance field.
func (t *Trajectory) LastComputerNameSet(name string) { t.info.LastComputerName = name }

// FirstSignatureGet copies the first-signature provenance field into dst.
func (t *Trajectory) FirstSignatureGet(dst []byte) int {
	return copy(dst, t.info.FirstSignature)
}

// FirstSignatureSet sets the first-signature provenance field.
func (t *Trajectory) FirstSignatureSet(sig string) { t.info.FirstSignature = sig }

// LastSignatureGet copies the last-signature provenance field into dst.
func (t *Trajectory) LastSignatureGet(dst []byte) int {
	return copy(dst, t.info.LastSignature)
}

// LastSignatureSet sets the last-signature provenance field.
func (t *Trajectory) LastSignatureSet(sig string) { t.info.LastSignature = sig }

// CreationTimeGet copies the creation-time string into dst.
func (t *Trajectory) CreationTimeGet(dst []byte) int {
	return copy(dst, t.info.CreationTime)
}

// CreationTimeSet sets the creation-time string; it is stored as given.
func (t *Trajectory) CreationTimeSet(ts string) { t.info.CreationTime = ts }

// ForcefieldNameGet copies the force-field provenance field into dst.
func (t *Trajectory) ForcefieldNameGet(dst []byte) int {
	return copy(dst, t.info.ForcefieldName)
}

// ForcefieldNameSet sets the force-field provenance field.
func (t *Trajectory) ForcefieldNameSet(name string) { t.info.ForcefieldName = name }

// DistanceUnitExponentGet returns the power-of-ten exponent recorded
// distances are stored in (spec.md §3, §6; e.g. unit.Nanometres).
func (t *Trajectory) DistanceUnitExponentGet() unit.DistanceExponent {
	return t.info.DistanceUnitExponent
}

// DistanceUnitExponentSet sets the power-of-ten exponent recorded distances
// are stored in.
func (t *Trajectory) DistanceUnitExponentSet(exp unit.DistanceExponent) {
	t.info.DistanceUnitExponent = exp
}

// TimePerFrameGet returns the simulated time span of one frame.
func (t *Trajectory) TimePerFrameGet() float64 { return t.info.TimePerFrame }

// TimePerFrameSet sets the simulated time span of one frame.
func (t *Trajectory) TimePerFrameSet(d float64) { t.info.TimePerFrame = d }
