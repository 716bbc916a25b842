// Package namehash provides a fast xxHash64-based name lookup used to
// accelerate find-by-name operations over the topology model and data block
// registries (spec.md §4.4, §4.9 tng_*_find).
package namehash

import "github.com/cespare/xxhash/v2"

// ID computes a 64-bit hash of name for use as a cache key.
//
// This is purely an in-memory acceleration structure: the on-disk format
// (spec.md §4.4) always stores and compares full names, so a hash collision
// here only costs a cache miss, never incorrect results. Callers that hit a
// cache miss must fall back to a linear scan over the authoritative records.
func ID(name string) uint64 {
	return xxhash.Sum64String(name)
}

// Index maps a hashed name to the declaration-order positions of every
// record sharing that name, so find-by-name can start from the hash bucket
// and fall back to linear disambiguation only when multiple records collide.
type Index struct {
	byHash map[uint64][]int
}

// NewIndex builds an Index over names, where names[i] is the i'th record's
// name in declaration order.
func NewIndex(names []string) *Index {
	idx := &Index{byHash: make(map[uint64][]int, len(names))}
	for i, n := range names {
		h := ID(n)
		idx.byHash[h] = append(idx.byHash[h], i)
	}

	return idx
}

// Candidates returns the declaration-order positions of records whose name
// hashes to the same bucket as name. The caller must still compare the
// actual name at each position, since this is a hash bucket, not a proof of
// equality.
func (idx *Index) Candidates(name string) []int {
	return idx.byHash[ID(name)]
}
