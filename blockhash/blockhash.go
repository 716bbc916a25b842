// Package blockhash computes and verifies the MD5 integrity hash carried in
// every block's common header (spec.md §4.2, §4.3).
//
// MD5 is an external, fixed-algorithm primitive per spec.md §1 ("the MD5
// primitive" is explicitly out of scope as something this module implements
// itself) — there is no domain choice to make here the way there is for the
// data-block codecs, so this package is a thin wrapper over the standard
// library's crypto/md5 rather than a third-party dependency (see DESIGN.md).
package blockhash

import (
	"crypto/md5" //nolint:gosec // required by the on-disk format, not used for security
	"bytes"

	"github.com/tngformat/tng/format"
)

// Zero is the all-zero hash written when hashing is disabled (spec.md §4.2, §4.3).
var Zero [format.MD5HashLen]byte

// Sum computes the MD5 hash of a block's body bytes.
func Sum(body []byte) [format.MD5HashLen]byte {
	return md5.Sum(body) //nolint:gosec
}

// Verify reports whether stored matches the MD5 hash of body.
func Verify(body []byte, stored [format.MD5HashLen]byte) bool {
	got := Sum(body)
	return bytes.Equal(got[:], stored[:])
}
