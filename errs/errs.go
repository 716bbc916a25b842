// Package errs defines the error taxonomy and status signal shared by every
// operation in the trajectory engine (spec.md §6, §7).
//
// Every representative public operation returns an idiomatic Go error, but
// that error always carries one of the three statuses below, recoverable by
// callers via StatusOf. This bridges spec.md's "status is the primary
// signal, operations are non-throwing" contract onto Go's (T, error)
// convention without forcing callers to switch on a bespoke status type for
// simple success paths.
package errs

import (
	"errors"
	"fmt"
)

// Status is the coarse outcome of an operation (spec.md §6).
type Status uint8

const (
	// Success indicates the operation completed and left no side effects to report.
	Success Status = iota
	// Recoverable indicates a non-critical failure; the container remains usable.
	Recoverable
	// Critical indicates the container may no longer be used for I/O and must be destroyed.
	Critical
)

func (s Status) String() string {
	switch s {
	case Success:
		return "success"
	case Recoverable:
		return "recoverable"
	case Critical:
		return "critical"
	default:
		return "unknown"
	}
}

// statusError pairs a sentinel error with the status category it belongs to,
// so StatusOf can recover it through errors.As without every call site
// needing to track statuses by hand.
type statusError struct {
	status Status
	err    error
}

func (e *statusError) Error() string { return e.err.Error() }
func (e *statusError) Unwrap() error { return e.err }

// WithStatus wraps err so StatusOf(wrapped) reports status. Wrapping a nil
// error returns nil.
func WithStatus(status Status, err error) error {
	if err == nil {
		return nil
	}

	return &statusError{status: status, err: err}
}

// StatusOf extracts the Status carried by err. A nil error reports Success;
// an error not produced by this package reports Critical, since an
// unrecognized failure cannot be assumed safe to continue from.
func StatusOf(err error) Status {
	if err == nil {
		return Success
	}

	var se *statusError
	if errors.As(err, &se) {
		return se.status
	}

	return Critical
}

// Recoverablef formats a Recoverable-status error.
func Recoverablef(format string, args ...any) error {
	return WithStatus(Recoverable, fmt.Errorf(format, args...))
}

// Criticalf formats a Critical-status error.
func Criticalf(format string, args ...any) error {
	return WithStatus(Critical, fmt.Errorf(format, args...))
}

// Sentinel errors per taxonomy category (spec.md §7). Each is pre-wrapped
// with its status so StatusOf works without extra plumbing at call sites
// that return the sentinel directly.
var (
	// (a) not-found — recoverable.
	ErrMoleculeNotFound  = WithStatus(Recoverable, errors.New("tng: molecule not found"))
	ErrChainNotFound     = WithStatus(Recoverable, errors.New("tng: chain not found"))
	ErrResidueNotFound   = WithStatus(Recoverable, errors.New("tng: residue not found"))
	ErrAtomNotFound      = WithStatus(Recoverable, errors.New("tng: atom not found"))
	ErrBlockNotFound     = WithStatus(Recoverable, errors.New("tng: data block not found"))
	ErrFrameSetNotFound  = WithStatus(Recoverable, errors.New("tng: frame set not found"))
	ErrMappingNotFound   = WithStatus(Recoverable, errors.New("tng: particle mapping not found"))
	ErrFrameNotStored    = WithStatus(Recoverable, errors.New("tng: requested frame is not stored, nearest stride-aligned frame differs"))

	// (b) truncation — recoverable.
	ErrBufferTooShort = WithStatus(Recoverable, errors.New("tng: destination buffer shorter than stored string"))

	// (c) hash mismatch — recoverable, read proceeds.
	ErrHashMismatch = WithStatus(Recoverable, errors.New("tng: block body MD5 hash does not match header"))

	// (d) format violation — critical.
	ErrInvalidHeaderSize     = WithStatus(Critical, errors.New("tng: invalid header size"))
	ErrInvalidBlockSize      = WithStatus(Critical, errors.New("tng: block size does not match body length"))
	ErrInvalidOffset         = WithStatus(Critical, errors.New("tng: impossible file offset"))
	ErrOverlappingMapping    = WithStatus(Critical, errors.New("tng: particle mappings overlap"))
	ErrMappingNotCovering    = WithStatus(Critical, errors.New("tng: particle mappings do not cover block's particle range"))
	ErrInvalidStride         = WithStatus(Critical, errors.New("tng: invalid stride"))
	ErrInvalidFrameSetCount  = WithStatus(Critical, errors.New("tng: stored_frames does not match ceil(frame_count/stride)"))

	// (e) I/O failure — critical.
	ErrNotOpen       = WithStatus(Critical, errors.New("tng: trajectory is not open"))
	ErrShortRead     = WithStatus(Critical, errors.New("tng: short read"))
	ErrSeekFailed    = WithStatus(Critical, errors.New("tng: seek failed"))
	ErrWriteFailed   = WithStatus(Critical, errors.New("tng: write failed"))
	ErrWrongMode     = WithStatus(Critical, errors.New("tng: operation not valid for the current open mode"))
	ErrHeadersNotWritten = WithStatus(Critical, errors.New("tng: header blocks must be written before any frame set"))

	// (f) allocation failure — critical.
	ErrAllocationFailed = WithStatus(Critical, errors.New("tng: allocation failed"))
)
