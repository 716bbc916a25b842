package tng

import (
	"github.com/tngformat/tng/endian"
	"github.com/tngformat/tng/format"
	"github.com/tngformat/tng/internal/options"
)

// Option configures a Trajectory at construction time, following the
// teacher's functional-option shape (internal/options.Option[T]).
type Option = options.Option[*Trajectory]

// WithEndianness selects the byte order a Trajectory uses to write and to
// read. The file does not record its byte order, so read and append mode
// decode with this same engine; a file must be opened with the engine it
// was written with.
func WithEndianness(engine endian.EndianEngine) Option {
	return options.NoError[*Trajectory](func(t *Trajectory) {
		t.engine = engine
	})
}

// WithHashMode selects whether block bodies are MD5-hashed on write and
// verified on read (spec.md §4.3).
func WithHashMode(mode format.HashMode) Option {
	return options.NoError[*Trajectory](func(t *Trajectory) {
		t.hashMode = mode
	})
}

// WithMediumStrideLength sets the initial medium skip-pointer stride
// (spec.md §4.5, §9 supplemented features).
func WithMediumStrideLength(n int64) Option {
	return options.NoError[*Trajectory](func(t *Trajectory) {
		t.info.MediumStrideLength = n
	})
}

// WithLongStrideLength sets the initial long skip-pointer stride.
func WithLongStrideLength(n int64) Option {
	return options.NoError[*Trajectory](func(t *Trajectory) {
		t.info.LongStrideLength = n
	})
}

// WithFramesPerFrameSet sets the number of frames a newly created frame set
// targets (spec.md §9 supplemented tng_num_frames_per_frame_set_set).
func WithFramesPerFrameSet(n int64) Option {
	return options.NoError[*Trajectory](func(t *Trajectory) {
		t.info.FramesPerFrameSet = n
	})
}
