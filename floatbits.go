package tng

import "math"

func floatBitsOf(f float64) uint64     { return math.Float64bits(f) }
func floatFromBitsOf(b uint64) float64 { return math.Float64frombits(b) }
