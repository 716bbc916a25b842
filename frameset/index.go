package frameset

import (
	"io"

	"github.com/tngformat/tng/endian"
	"github.com/tngformat/tng/errs"
)

// Entry pairs a Header with the absolute file offset of its framing block,
// the unit the skip-pointer walk navigates in.
type Entry struct {
	Offset int64
	Header Header
}

// Index is the in-memory view of the frame-set chain a Trajectory walks to
// seek by ordinal or by frame number (spec.md §4.5). It does not own the
// frame sets' data blocks, only the header chain needed for navigation and
// append-time back-patching.
type Index struct {
	MediumStride int64
	LongStride   int64

	// entries is every frame set seen so far, in append order. A real
	// trajectory may hold only a window of these resident at once; this
	// in-memory index models the full chain the way a reader that has
	// walked the whole file would see it.
	entries []Entry
}

// NewIndex returns an empty index with the given medium/long stride lengths
// (spec.md §9 supplemented features: these are adjustable via
// Trajectory.MediumStrideLengthGet/Set, Trajectory.LongStrideLengthGet/Set).
func NewIndex(mediumStride, longStride int64) *Index {
	return &Index{MediumStride: mediumStride, LongStride: longStride}
}

// Len returns the number of frame sets currently in the chain.
func (idx *Index) Len() int { return len(idx.entries) }

// First returns the first frame set's entry, or (Entry{}, false) if empty.
func (idx *Index) First() (Entry, bool) {
	if len(idx.entries) == 0 {
		return Entry{}, false
	}

	return idx.entries[0], true
}

// Last returns the last frame set's entry, or (Entry{}, false) if empty.
func (idx *Index) Last() (Entry, bool) {
	if len(idx.entries) == 0 {
		return Entry{}, false
	}

	return idx.entries[len(idx.entries)-1], true
}

// Append records a newly written frame set at offset, linking it to the
// previous last entry (if any) and back-patching the previous entry's Next
// pointer plus the appropriate medium/long back-pointers for the new entry,
// per spec.md §4.5 "On append, the writer ...". patchNext is called to
// persist the previous header's patched Next field to storage; it is a
// no-op hook when there is no previous entry.
func (idx *Index) Append(offset int64, h Header, patchNext func(prevOffset int64, patchedPrev Header) error) error {
	if last, ok := idx.Last(); ok {
		last.Header.Next = offset
		idx.entries[len(idx.entries)-1] = last

		if patchNext != nil {
			if err := patchNext(last.Offset, last.Header); err != nil {
				return err
			}
		}

		h.Prev = last.Offset
	}

	n := int64(len(idx.entries))

	if idx.MediumStride > 0 && n >= idx.MediumStride {
		h.Medium = idx.entries[n-idx.MediumStride].Offset
	}
	if idx.LongStride > 0 && n >= idx.LongStride {
		h.Long = idx.entries[n-idx.LongStride].Offset
	}

	idx.entries = append(idx.entries, Entry{Offset: offset, Header: h})

	return nil
}

// UpdateLast replaces the header of the most recently appended entry,
// keeping its Offset unchanged. Used when a frame set's FrameCount/
// FramesWritten/MappingCount become final at close time, after the entry was
// already linked into the chain by Append. Reports false on an empty index.
func (idx *Index) UpdateLast(h Header) bool {
	n := len(idx.entries)
	if n == 0 {
		return false
	}

	idx.entries[n-1].Header = h

	return true
}

// SeekOrdinal finds the ordinal'th (zero-based) frame set (spec.md §4.5).
// Medium/Long pointers in this data model only ever point to an earlier
// frame set (§3: "the file position of the preceding frame-set header that
// is >= that stride length behind"), so the walk anchors at whichever end of
// the chain is closer to ordinal: from the first entry forward via Next when
// ordinal is in the front half, or from the last entry backward via
// Long/Medium/Prev when it is in the back half — the latter is where the
// skip pointers actually shorten the walk.
func (idx *Index) SeekOrdinal(ordinal int) (Entry, error) {
	n := len(idx.entries)
	if ordinal < 0 || ordinal >= n {
		return Entry{}, errs.ErrFrameSetNotFound
	}

	if ordinal <= n/2 {
		cur := idx.entries[0]
		for i := 0; i < ordinal; i++ {
			if cur.Header.Next < 0 {
				return Entry{}, errs.ErrFrameSetNotFound
			}
			cur = idx.mustFind(cur.Header.Next)
		}

		return cur, nil
	}

	cur := idx.entries[n-1]
	remaining := int64(n - 1 - ordinal)
	for remaining > 0 {
		switch {
		case idx.LongStride > 0 && remaining >= idx.LongStride && cur.Header.Long >= 0:
			cur = idx.mustFind(cur.Header.Long)
			remaining -= idx.LongStride
		case idx.MediumStride > 0 && remaining >= idx.MediumStride && cur.Header.Medium >= 0:
			cur = idx.mustFind(cur.Header.Medium)
			remaining -= idx.MediumStride
		case cur.Header.Prev >= 0:
			cur = idx.mustFind(cur.Header.Prev)
			remaining--
		default:
			return Entry{}, errs.ErrFrameSetNotFound
		}
	}

	return cur, nil
}

// SeekFrame finds the frame set whose [FirstFrame, FirstFrame+FrameCount)
// range contains frameNr, per spec.md §4.5 ("Seeking by frame number
// proceeds identically against the per-frame-set first-frame field."). It
// locates the frame set's ordinal via a direct scan of FirstFrame (which is
// monotonically increasing in append order) and then reaches it through
// SeekOrdinal, so a frame-number query exercises the same skip-pointer walk
// as an ordinal query.
func (idx *Index) SeekFrame(frameNr int64) (Entry, error) {
	for i, e := range idx.entries {
		if frameNr >= e.Header.FirstFrame && frameNr < e.Header.FirstFrame+e.Header.FrameCount {
			return idx.SeekOrdinal(i)
		}
	}

	return Entry{}, errs.ErrFrameSetNotFound
}

func (idx *Index) mustFind(offset int64) Entry {
	for _, e := range idx.entries {
		if e.Offset == offset {
			return e
		}
	}

	return Entry{}
}

// ReadChain walks a file forward from the first frame-set offset via Next
// pointers, rebuilding the in-memory Index the way open(r) does (spec.md
// §4.8: "Subsequent frame_set_read_next walks forward via next pointer.").
// readHeaderAt reads and parses the HeaderSize-byte header located at
// offset.
func ReadChain(firstOffset int64, mediumStride, longStride int64, readHeaderAt func(offset int64) (Header, error)) (*Index, error) {
	idx := NewIndex(mediumStride, longStride)

	offset := firstOffset
	for offset >= 0 {
		h, err := readHeaderAt(offset)
		if err != nil {
			if errs.StatusOf(err) == errs.Critical {
				return idx, err
			}

			break
		}

		idx.entries = append(idx.entries, Entry{Offset: offset, Header: h})
		offset = h.Next
	}

	return idx, nil
}

// WriteHeaderAt is a small helper wiring Header.Bytes to an io.WriterAt,
// used by patchNext callbacks passed to Append (spec.md §4.5's "back-
// patching uses absolute file offsets captured during the walk").
func WriteHeaderAt(w io.WriterAt, offset int64, h Header, engine endian.EndianEngine) error {
	_, err := w.WriteAt(h.Bytes(engine), offset)
	return err
}
