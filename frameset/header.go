// Package frameset implements the frame-set header and its skip-pointer
// index (spec.md §3, §4.5): the forward/previous/medium/long pointer chain
// that lets a reader seek to an arbitrary frame set without scanning every
// header in between.
package frameset

import (
	"github.com/tngformat/tng/endian"
	"github.com/tngformat/tng/errs"
)

// NoPointer marks an absent next/prev/medium/long pointer slot. Negative
// values terminate a skip-pointer walk (spec.md §4.5).
const NoPointer int64 = -1

// HeaderSize is the fixed on-disk size of Header.Bytes(), in bytes:
// 8 (FirstFrame) + 8 (FrameCount) + 8 (FramesWritten) + 8 (FirstFrameTime,
// bits of a float64) + 8 (MappingCount) + 8*4 (Next/Prev/Medium/Long).
const HeaderSize = 8 + 8 + 8 + 8 + 8 + 8*4

// Header is the fixed-size record at the start of every frame set's framing
// block (spec.md §4.5): "first-frame, frame-count, first-frame-time, number
// of written frames in this set ..., mapping count, next/prev long/medium/
// short pointer slots."
type Header struct {
	FirstFrame     int64
	FrameCount     int64
	FramesWritten  int64 // may be < FrameCount while the set is being populated
	FirstFrameTime float64
	MappingCount   int64

	Next   int64 // file offset of the next frame-set header, or NoPointer
	Prev   int64 // file offset of the previous frame-set header, or NoPointer
	Medium int64 // file offset of the frame-set header medium_stride sets back, or NoPointer
	Long   int64 // file offset of the frame-set header long_stride sets back, or NoPointer
}

// NewHeader returns a header for a freshly created frame set, with no
// neighbours yet recorded.
func NewHeader(firstFrame int64, firstFrameTime float64) Header {
	return Header{
		FirstFrame:     firstFrame,
		FirstFrameTime: firstFrameTime,
		Next:           NoPointer,
		Prev:           NoPointer,
		Medium:         NoPointer,
		Long:           NoPointer,
	}
}

// Bytes serializes h into a fixed HeaderSize-byte record.
func (h Header) Bytes(engine endian.EndianEngine) []byte {
	b := make([]byte, HeaderSize)

	engine.PutUint64(b[0:8], uint64(h.FirstFrame))     //nolint:gosec
	engine.PutUint64(b[8:16], uint64(h.FrameCount))    //nolint:gosec
	engine.PutUint64(b[16:24], uint64(h.FramesWritten))//nolint:gosec
	engine.PutUint64(b[24:32], floatBits(h.FirstFrameTime))
	engine.PutUint64(b[32:40], uint64(h.MappingCount)) //nolint:gosec
	engine.PutUint64(b[40:48], uint64(h.Next))         //nolint:gosec
	engine.PutUint64(b[48:56], uint64(h.Prev))         //nolint:gosec
	engine.PutUint64(b[56:64], uint64(h.Medium))       //nolint:gosec
	engine.PutUint64(b[64:72], uint64(h.Long))         //nolint:gosec

	return b
}

// ParseHeader parses a Header from a HeaderSize-byte record produced by Bytes.
func ParseHeader(data []byte, engine endian.EndianEngine) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, errs.ErrShortRead
	}

	var h Header
	h.FirstFrame = int64(engine.Uint64(data[0:8]))      //nolint:gosec
	h.FrameCount = int64(engine.Uint64(data[8:16]))     //nolint:gosec
	h.FramesWritten = int64(engine.Uint64(data[16:24])) //nolint:gosec
	h.FirstFrameTime = floatFromBits(engine.Uint64(data[24:32]))
	h.MappingCount = int64(engine.Uint64(data[32:40])) //nolint:gosec
	h.Next = int64(engine.Uint64(data[40:48]))         //nolint:gosec
	h.Prev = int64(engine.Uint64(data[48:56]))         //nolint:gosec
	h.Medium = int64(engine.Uint64(data[56:64]))       //nolint:gosec
	h.Long = int64(engine.Uint64(data[64:72]))         //nolint:gosec

	return h, nil
}
