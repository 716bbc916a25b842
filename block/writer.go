package block

import (
	"io"

	"github.com/tngformat/tng/blockhash"
	"github.com/tngformat/tng/endian"
	"github.com/tngformat/tng/errs"
	"github.com/tngformat/tng/format"
)

// WriteBlock writes a complete block (header + body) to w and backpatches
// the Size field afterward (spec.md §4.2).
//
// body is expected to already be fully materialized: the data-block engine
// buffers per-frame writes and only calls WriteBlock at frame-set
// finalisation (spec.md §4.7 "Buffered writes"), so the size is in practice
// known before the header is first written. The Size field is still
// measured from w's position after the body and backpatched through
// PatchSize, so the size on disk always matches the bytes actually written.
func WriteBlock(w io.WriteSeeker, engine endian.EndianEngine, id int64, blockType format.BlockType, name string, version int64, body []byte, hashMode format.HashMode) (Header, error) {
	h := Header{
		Type:    blockType,
		ID:      id,
		Name:    name,
		Version: version,
	}

	if hashMode == format.HashUse {
		h.Hash = blockhash.Sum(body)
	} else {
		h.Hash = blockhash.Zero
	}

	start, err := w.Seek(0, io.SeekCurrent)
	if err != nil {
		return Header{}, errs.WithStatus(errs.Critical, err)
	}

	h.Size = int64(h.HeaderLen()) + int64(len(body))

	headerBytes, truncErr := h.Bytes(engine)
	if _, err := w.Write(headerBytes); err != nil {
		return Header{}, errs.WithStatus(errs.Critical, err)
	}

	if len(body) > 0 {
		if _, err := w.Write(body); err != nil {
			return Header{}, errs.WithStatus(errs.Critical, err)
		}
	}

	end, err := w.Seek(0, io.SeekCurrent)
	if err != nil {
		return Header{}, errs.WithStatus(errs.Critical, err)
	}

	h.Size = end - start
	if err := PatchSize(w, engine, start, h.Size); err != nil {
		return Header{}, err
	}

	if truncErr != nil {
		return h, truncErr
	}

	return h, nil
}

// PatchSize overwrites the Size field of the header starting at blockStart
// with size, then restores the writer's position to where it was before the
// call. This is the backpatch mechanism WriteBlock uses for the Size field;
// frame-set pointer updates are written separately through
// frameset.WriteHeaderAt (spec.md §4.5, §4.8).
func PatchSize(w io.WriteSeeker, engine endian.EndianEngine, blockStart int64, size int64) error {
	cur, err := w.Seek(0, io.SeekCurrent)
	if err != nil {
		return errs.WithStatus(errs.Critical, err)
	}

	if _, err := w.Seek(blockStart+SizeFieldOffset, io.SeekStart); err != nil {
		return errs.WithStatus(errs.Critical, err)
	}

	var buf [8]byte
	engine.PutUint64(buf[:], uint64(size)) //nolint:gosec
	if _, err := w.Write(buf[:]); err != nil {
		return errs.WithStatus(errs.Critical, err)
	}

	if _, err := w.Seek(cur, io.SeekStart); err != nil {
		return errs.WithStatus(errs.Critical, err)
	}

	return nil
}
