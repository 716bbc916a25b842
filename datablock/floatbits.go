package datablock

import "math"

func floatBits(f float64) uint64      { return math.Float64bits(f) }
func floatFromBits(b uint64) float64  { return math.Float64frombits(b) }
func float32Bits(f float32) uint32    { return math.Float32bits(f) }
func float32FromBits(b uint32) float32 { return math.Float32frombits(b) }
