package datablock

import "github.com/tngformat/tng/format"

// Value is the tagged-variant cell spec.md §9 design notes describe for the
// legacy API ("union-typed value cells ... map to a tagged variant {char,
// i64, f32, f64} plus a shape descriptor"). The modern surface works in
// typed vectors (Block.Float64At and friends); Value exists only for the
// deprecated single-cell accessor pair (Block.ValueAt).
type Value struct {
	Type format.DataType

	Char string
	I64  int64
	F32  float32
	F64  float64
}
