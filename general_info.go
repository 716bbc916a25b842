package tng

import (
	"github.com/tngformat/tng/endian"
	"github.com/tngformat/tng/errs"
	"github.com/tngformat/tng/unit"
)

// GeneralInfo holds the provenance and layout fields a Trajectory keeps at
// its root, serialized as the GENERAL_INFO block (spec.md §3, §6 block id 0).
type GeneralInfo struct {
	FirstProgramName string
	LastProgramName  string
	FirstUserName    string
	LastUserName     string
	FirstComputerName string
	LastComputerName  string
	FirstSignature    string
	LastSignature     string

	// CreationTime is an ISO-8601 date string. Encode stores it as given,
	// length-prefixed like the other string fields; it is not padded or cut
	// to a fixed width. Callers set it explicitly since this module does not
	// read the system clock (§5: "Timeouts are
	// not modelled", no hidden wall-clock dependency).
	CreationTime string

	ForcefieldName       string
	DistanceUnitExponent unit.DistanceExponent
	TimePerFrame         float64

	FramesPerFrameSet int64
	MediumStrideLength int64
	LongStrideLength    int64

	// LastFrameSetOffset is the absolute file offset of the most recently
	// closed frame set's TRAJECTORY_FRAME_SET block, or -1 if none has been
	// written yet (spec.md §3 "caches ... current file positions of the
	// first and last frame-set headers", §4.8 "close ... patches the
	// last-frame-set pointer stored in the general info block at its
	// original offset"). Backpatched in place by Trajectory.Close, the only
	// GeneralInfo field patched after the block is first written (spec.md
	// §6).
	LastFrameSetOffset int64
}

// defaultGeneralInfo returns the GeneralInfo a freshly created Trajectory
// starts with before any metadata setters are called.
func defaultGeneralInfo() GeneralInfo {
	return GeneralInfo{
		DistanceUnitExponent: unit.Nanometres,
		FramesPerFrameSet:    1,
		MediumStrideLength:   1,
		LongStrideLength:     1,
		LastFrameSetOffset:   -1,
	}
}

// Encode serializes info as a GENERAL_INFO block body: the ten string fields
// (provenance names and signatures, creation time, forcefield name) each
// length-prefixed in declaration order, then the numeric layout fields, then
// LastFrameSetOffset as the trailing 8 bytes.
func (info GeneralInfo) Encode(engine endian.EndianEngine) ([]byte, error) {
	buf := make([]byte, 0, 256)

	var truncated error
	appendStr := func(s string) {
		var err error
		buf, err = endian.AppendString(buf, engine, s)
		if err != nil {
			truncated = err
		}
	}

	appendStr(info.FirstProgramName)
	appendStr(info.LastProgramName)
	appendStr(info.FirstUserName)
	appendStr(info.LastUserName)
	appendStr(info.FirstComputerName)
	appendStr(info.LastComputerName)
	appendStr(info.FirstSignature)
	appendStr(info.LastSignature)
	appendStr(info.CreationTime)
	appendStr(info.ForcefieldName)

	buf = engine.AppendUint64(buf, uint64(info.DistanceUnitExponent)) //nolint:gosec
	buf = engine.AppendUint64(buf, floatBitsOf(info.TimePerFrame))
	buf = engine.AppendUint64(buf, uint64(info.FramesPerFrameSet))  //nolint:gosec
	buf = engine.AppendUint64(buf, uint64(info.MediumStrideLength)) //nolint:gosec
	buf = engine.AppendUint64(buf, uint64(info.LongStrideLength))   //nolint:gosec

	// LastFrameSetOffset is always the trailing 8 bytes of the body so its
	// absolute file position can be computed once at header-write time and
	// reused for the close-time backpatch (spec.md §4.8, §6).
	buf = engine.AppendUint64(buf, uint64(info.LastFrameSetOffset)) //nolint:gosec

	return buf, truncated
}

// DecodeGeneralInfo parses a GENERAL_INFO block body produced by Encode.
func DecodeGeneralInfo(data []byte, engine endian.EndianEngine) (GeneralInfo, error) {
	r := &infoReader{data: data, engine: engine}

	var info GeneralInfo
	var err error

	fields := []*string{
		&info.FirstProgramName, &info.LastProgramName,
		&info.FirstUserName, &info.LastUserName,
		&info.FirstComputerName, &info.LastComputerName,
		&info.FirstSignature, &info.LastSignature,
		&info.CreationTime, &info.ForcefieldName,
	}
	for _, f := range fields {
		if *f, err = r.str(); err != nil {
			return GeneralInfo{}, err
		}
	}

	exp, err := r.u64()
	if err != nil {
		return GeneralInfo{}, err
	}
	info.DistanceUnitExponent = unit.DistanceExponent(int64(exp)) //nolint:gosec

	tpf, err := r.u64()
	if err != nil {
		return GeneralInfo{}, err
	}
	info.TimePerFrame = floatFromBitsOf(tpf)

	if info.FramesPerFrameSet, err = r.i64(); err != nil {
		return GeneralInfo{}, err
	}
	if info.MediumStrideLength, err = r.i64(); err != nil {
		return GeneralInfo{}, err
	}
	if info.LongStrideLength, err = r.i64(); err != nil {
		return GeneralInfo{}, err
	}
	if info.LastFrameSetOffset, err = r.i64(); err != nil {
		return GeneralInfo{}, err
	}

	return info, nil
}

type infoReader struct {
	data   []byte
	pos    int
	engine endian.EndianEngine
}

func (r *infoReader) u64() (uint64, error) {
	if r.pos+8 > len(r.data) {
		return 0, errs.ErrShortRead
	}
	v := r.engine.Uint64(r.data[r.pos : r.pos+8])
	r.pos += 8

	return v, nil
}

func (r *infoReader) i64() (int64, error) {
	v, err := r.u64()
	return int64(v), err //nolint:gosec
}

func (r *infoReader) str() (string, error) {
	s, n, err := endian.ReadString(r.data[r.pos:], r.engine)
	if err != nil {
		return "", err
	}
	r.pos += n

	return s, nil
}
