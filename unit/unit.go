// Package unit records the distance-unit exponent a trajectory declares,
// nothing more. Per spec.md §1 Non-goals, the engine "does not interpret
// physical units (it records a distance-unit exponent as metadata only)";
// this package exists so that metadata has a named type instead of a bare
// int64 passed around the root package.
package unit

// DistanceExponent is the base-10 exponent of the length unit used by a
// trajectory's coordinate data, relative to one metre (e.g. -9 for
// nanometres, the common molecular-dynamics convention).
type DistanceExponent int64

// Nanometres is the exponent GROMACS-style trajectories conventionally use.
const Nanometres DistanceExponent = -9

// Metres returns the exponent expressed in SI base units, i.e. e itself;
// provided so callers don't need to know the zero value is metres.
func (e DistanceExponent) Metres() int64 { return int64(e) }
