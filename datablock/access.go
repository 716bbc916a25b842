package datablock

import (
	"github.com/tngformat/tng/errs"
	"github.com/tngformat/tng/format"
)

// AppendFloat64Frame buffers one frame's worth of float64 values (row-major
// over particles then values-per-frame, per spec.md §3's payload layout).
func (b *Block) AppendFloat64Frame(frameNr int64, values []float64) error {
	if b.DataType != format.Float64Data {
		return errs.Criticalf("tng: block %q is not float64-typed", b.Name)
	}
	if int64(len(values)) != b.rowLen() {
		return errs.Criticalf("tng: block %q expected %d values, got %d", b.Name, b.rowLen(), len(values))
	}
	if err := b.beginOrExtend(frameNr); err != nil {
		return err
	}

	b.f64 = append(b.f64, values...)

	return nil
}

// AppendFloat32Frame is AppendFloat64Frame's float32 counterpart.
func (b *Block) AppendFloat32Frame(frameNr int64, values []float32) error {
	if b.DataType != format.Float32Data {
		return errs.Criticalf("tng: block %q is not float32-typed", b.Name)
	}
	if int64(len(values)) != b.rowLen() {
		return errs.Criticalf("tng: block %q expected %d values, got %d", b.Name, b.rowLen(), len(values))
	}
	if err := b.beginOrExtend(frameNr); err != nil {
		return err
	}

	b.f32 = append(b.f32, values...)

	return nil
}

// AppendInt64Frame is AppendFloat64Frame's int64 counterpart.
func (b *Block) AppendInt64Frame(frameNr int64, values []int64) error {
	if b.DataType != format.Int64Data {
		return errs.Criticalf("tng: block %q is not int64-typed", b.Name)
	}
	if int64(len(values)) != b.rowLen() {
		return errs.Criticalf("tng: block %q expected %d values, got %d", b.Name, b.rowLen(), len(values))
	}
	if err := b.beginOrExtend(frameNr); err != nil {
		return err
	}

	b.i64 = append(b.i64, values...)

	return nil
}

// AppendCharFrame buffers one frame's worth of length-prefixed strings.
func (b *Block) AppendCharFrame(frameNr int64, values []string) error {
	if b.DataType != format.CharData {
		return errs.Criticalf("tng: block %q is not char-typed", b.Name)
	}
	if int64(len(values)) != b.rowLen() {
		return errs.Criticalf("tng: block %q expected %d values, got %d", b.Name, b.rowLen(), len(values))
	}
	if err := b.beginOrExtend(frameNr); err != nil {
		return err
	}

	b.chars = append(b.chars, values...)

	return nil
}

// Float64At returns the scalar at (frameNr, particleIdx, valueIdx), or
// (0, false) if frameNr is not a stored sample of this block.
func (b *Block) Float64At(frameNr int64, particleIdx, valueIdx int) (float64, bool) {
	idx, ok := b.cellIndex(frameNr, particleIdx, valueIdx)
	if !ok || b.DataType != format.Float64Data || idx >= len(b.f64) {
		return 0, false
	}

	return b.f64[idx], true
}

// Float32At is Float64At's float32 counterpart.
func (b *Block) Float32At(frameNr int64, particleIdx, valueIdx int) (float32, bool) {
	idx, ok := b.cellIndex(frameNr, particleIdx, valueIdx)
	if !ok || b.DataType != format.Float32Data || idx >= len(b.f32) {
		return 0, false
	}

	return b.f32[idx], true
}

// Int64At is Float64At's int64 counterpart.
func (b *Block) Int64At(frameNr int64, particleIdx, valueIdx int) (int64, bool) {
	idx, ok := b.cellIndex(frameNr, particleIdx, valueIdx)
	if !ok || b.DataType != format.Int64Data || idx >= len(b.i64) {
		return 0, false
	}

	return b.i64[idx], true
}

// StringAt is Float64At's char counterpart.
func (b *Block) StringAt(frameNr int64, particleIdx, valueIdx int) (string, bool) {
	idx, ok := b.cellIndex(frameNr, particleIdx, valueIdx)
	if !ok || b.DataType != format.CharData || idx >= len(b.chars) {
		return "", false
	}

	return b.chars[idx], true
}

func (b *Block) cellIndex(frameNr int64, particleIdx, valueIdx int) (int, bool) {
	row, ok := b.row(frameNr)
	if !ok {
		return 0, false
	}
	if int64(particleIdx) >= b.particleCount() || int64(valueIdx) >= b.ValuesPerFrame {
		return 0, false
	}

	idx := row*b.rowLen() + int64(particleIdx)*b.ValuesPerFrame + int64(valueIdx)
	if idx < 0 {
		return 0, false
	}

	return int(idx), true
}

// ValueAt is the deprecated tagged-variant accessor pair (spec.md §9,
// retained for legacy callers; new code should use the typed *At methods).
func (b *Block) ValueAt(frameNr int64, particleIdx, valueIdx int) (Value, error) {
	switch b.DataType {
	case format.Float64Data:
		v, ok := b.Float64At(frameNr, particleIdx, valueIdx)
		if !ok {
			return Value{}, errs.ErrBlockNotFound
		}

		return Value{Type: format.Float64Data, F64: v}, nil
	case format.Float32Data:
		v, ok := b.Float32At(frameNr, particleIdx, valueIdx)
		if !ok {
			return Value{}, errs.ErrBlockNotFound
		}

		return Value{Type: format.Float32Data, F32: v}, nil
	case format.Int64Data:
		v, ok := b.Int64At(frameNr, particleIdx, valueIdx)
		if !ok {
			return Value{}, errs.ErrBlockNotFound
		}

		return Value{Type: format.Int64Data, I64: v}, nil
	case format.CharData:
		v, ok := b.StringAt(frameNr, particleIdx, valueIdx)
		if !ok {
			return Value{}, errs.ErrBlockNotFound
		}

		return Value{Type: format.CharData, Char: v}, nil
	default:
		return Value{}, errs.ErrBlockNotFound
	}
}

// Float64Values returns the block's buffered float64 payload, in the
// row-major [stored_frames][particles?][values_per_frame] order spec.md §3
// describes. Callers needing a by-frame view should use Float64At instead.
func (b *Block) Float64Values() []float64 { return b.f64 }

// Float32Values is Float64Values' float32 counterpart.
func (b *Block) Float32Values() []float32 { return b.f32 }

// Int64Values is Float64Values' int64 counterpart.
func (b *Block) Int64Values() []int64 { return b.i64 }

// CharValues is Float64Values' char counterpart.
func (b *Block) CharValues() []string { return b.chars }
