// Package block implements the common block framing shared by every
// on-disk record in a trajectory file (spec.md §4.2): a fixed-shape prefix
// of size, type, id, MD5 hash, and name/version, followed by a body whose
// interpretation is selected by id.
//
// This mirrors the teacher's section.NumericHeader Bytes()/Parse() pair,
// generalized from one fixed 32-byte layout to a variable-length header
// (the name is length-prefixed) shared by every block kind in this format.
package block

import (
	"github.com/tngformat/tng/endian"
	"github.com/tngformat/tng/errs"
	"github.com/tngformat/tng/format"
)

// FixedHeaderSize is the portion of the header with no name bytes:
// size(8) + type(8) + id(8) + md5(16) + name_len(4) + version(8).
const FixedHeaderSize = 8 + 8 + 8 + format.MD5HashLen + 4 + 8

// Header is the common prefix of every block on disk (spec.md §4.2).
type Header struct {
	// Size is the total block size in bytes, header included.
	Size int64
	// Type distinguishes non-trajectory (root) blocks from trajectory (frame-set) blocks.
	Type format.BlockType
	// ID selects how the body is interpreted (well-known ids in package format, or a vendor id).
	ID int64
	// Hash is the MD5 of the body; all-zero when hashing is disabled.
	Hash [format.MD5HashLen]byte
	// Name is a short descriptive label for the block, truncated to format.MaxStrLen.
	Name string
	// Version is the block's format version, independent of the file's overall version.
	Version int64
}

// HeaderLen returns the on-disk byte length of h's header, including its
// variable-length name.
func (h Header) HeaderLen() int {
	return FixedHeaderSize + len(h.Name)
}

// BodyLen returns the byte length of the body implied by h.Size and h's
// header length.
func (h Header) BodyLen() int64 {
	return h.Size - int64(h.HeaderLen())
}

// Bytes serializes h using engine's byte order. The Size field is written as
// given; callers that do not yet know the final size should patch it in
// afterwards (see WriteBlock and PatchSize, which backpatch over a seekable
// destination).
func (h Header) Bytes(engine endian.EndianEngine) ([]byte, error) {
	name := h.Name
	var truncErr error
	if len(name) > format.MaxStrLen {
		name = name[:format.MaxStrLen]
		truncErr = errs.ErrBufferTooShort
	}

	buf := make([]byte, 0, FixedHeaderSize+len(name))
	buf = engine.AppendUint64(buf, uint64(h.Size)) //nolint:gosec
	buf = engine.AppendUint64(buf, uint64(h.Type))
	buf = engine.AppendUint64(buf, uint64(h.ID)) //nolint:gosec
	buf = append(buf, h.Hash[:]...)
	buf = engine.AppendUint32(buf, uint32(len(name))) //nolint:gosec
	buf = append(buf, name...)
	buf = engine.AppendUint64(buf, uint64(h.Version)) //nolint:gosec

	return buf, truncErr
}

// SizeFieldOffset is the byte offset of the Size field within a serialized
// header; Writer uses it to seek back and patch the size after the body is
// known (spec.md §4.2).
const SizeFieldOffset = 0

