// Package mapping implements the local↔global particle id remapping layer
// within a frame set (spec.md §4.6). Multiple mappings per frame set
// partition the particles among producers; mappings must be disjoint and,
// together, cover the particle range of every data block in that frame set.
package mapping

import (
	"sort"

	"github.com/tngformat/tng/errs"
)

// ParticleMapping is one contributor's local→global particle index table
// within a frame set (spec.md §3, §4.6).
type ParticleMapping struct {
	FirstParticleNumber int64
	Count               int64
	// GlobalIDs[i] is the global particle id of local index i, i.e.
	// local index i corresponds to global id GlobalIDs[i]. When GlobalIDs
	// is nil the mapping is the identity: local index i -> global id
	// FirstParticleNumber+i, the common case where a producer's local
	// ordering already matches global particle numbering.
	GlobalIDs []int64
}

// Global returns the global particle id for local index localIdx within
// this mapping, or (0, false) if localIdx is out of range.
func (m ParticleMapping) Global(localIdx int64) (int64, bool) {
	if localIdx < 0 || localIdx >= m.Count {
		return 0, false
	}

	if m.GlobalIDs == nil {
		return m.FirstParticleNumber + localIdx, true
	}

	return m.GlobalIDs[localIdx], true
}

// End returns the exclusive upper bound of this mapping's global range,
// assuming an identity mapping; callers with a non-identity GlobalIDs table
// should not rely on contiguity and must use Global/Contains instead.
func (m ParticleMapping) End() int64 {
	return m.FirstParticleNumber + m.Count
}

// Contains reports whether globalID is covered by this mapping.
func (m ParticleMapping) Contains(globalID int64) bool {
	if m.GlobalIDs == nil {
		return globalID >= m.FirstParticleNumber && globalID < m.End()
	}

	for _, g := range m.GlobalIDs {
		if g == globalID {
			return true
		}
	}

	return false
}

// Table is the set of particle mappings attached to one frame set.
type Table struct {
	Mappings []ParticleMapping
}

// Add appends m to the table, re-validating disjointness across all
// mappings (spec.md §4.6: "overlap is a critical error").
func (t *Table) Add(m ParticleMapping) error {
	for _, existing := range t.Mappings {
		if rangesOverlap(existing, m) {
			return errs.ErrOverlappingMapping
		}
	}

	t.Mappings = append(t.Mappings, m)

	return nil
}

func rangesOverlap(a, b ParticleMapping) bool {
	// Identity-range overlap check; mappings with explicit GlobalIDs are
	// checked element-wise below for correctness against non-contiguous sets.
	if a.GlobalIDs == nil && b.GlobalIDs == nil {
		return a.FirstParticleNumber < b.End() && b.FirstParticleNumber < a.End()
	}

	aIDs := idsOf(a)
	bSet := make(map[int64]struct{}, len(idsOf(b)))
	for _, id := range idsOf(b) {
		bSet[id] = struct{}{}
	}
	for _, id := range aIDs {
		if _, ok := bSet[id]; ok {
			return true
		}
	}

	return false
}

func idsOf(m ParticleMapping) []int64 {
	if m.GlobalIDs != nil {
		return m.GlobalIDs
	}

	ids := make([]int64, m.Count)
	for i := range ids {
		ids[i] = m.FirstParticleNumber + int64(i)
	}

	return ids
}

// Resolve finds the mapping covering globalID by linear scan, per spec.md
// §4.6 ("the engine resolves the mapping by linear scan").
func (t *Table) Resolve(globalID int64) (ParticleMapping, bool) {
	for _, m := range t.Mappings {
		if m.Contains(globalID) {
			return m, true
		}
	}

	return ParticleMapping{}, false
}

// CoversRange reports whether the union of all mappings in t fully covers
// [firstParticle, firstParticle+count), the range required of a
// particle-dependent data block's mappings (spec.md §3 invariant).
func (t *Table) CoversRange(firstParticle, count int64) bool {
	if count == 0 {
		return true
	}

	covered := make([]bool, count)
	for _, m := range t.Mappings {
		for _, g := range idsOf(m) {
			if g >= firstParticle && g < firstParticle+count {
				covered[g-firstParticle] = true
			}
		}
	}

	for _, c := range covered {
		if !c {
			return false
		}
	}

	return true
}

// SortByFirstParticle orders mappings by FirstParticleNumber, the order the
// frame-set index serializes them in for deterministic on-disk layout.
func (t *Table) SortByFirstParticle() {
	sort.Slice(t.Mappings, func(i, j int) bool {
		return t.Mappings[i].FirstParticleNumber < t.Mappings[j].FirstParticleNumber
	})
}
