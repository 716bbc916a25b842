package endian

import "github.com/tngformat/tng/errs"

// MaxStringLen bounds every length-prefixed string field on disk (spec.md §4.1, §6).
const MaxStringLen = 1024

// AppendString appends a u32-length-prefixed, non-null-terminated string to
// buf using engine's byte order (spec.md §4.1). Input longer than
// MaxStringLen is truncated before encoding and the truncation is reported
// through the returned error (Recoverable status, non-critical).
func AppendString(buf []byte, engine EndianEngine, s string) ([]byte, error) {
	var err error
	if len(s) > MaxStringLen {
		s = s[:MaxStringLen]
		err = errs.ErrBufferTooShort
	}

	buf = engine.AppendUint32(buf, uint32(len(s))) //nolint:gosec
	buf = append(buf, s...)

	return buf, err
}

// ReadString decodes a u32-length-prefixed string starting at data[0] and
// returns the string plus the number of bytes consumed. A length prefix
// that runs past the end of data yields errs.ErrShortRead. Copying into a
// caller buffer with truncation is ReadStringInto's job.
func ReadString(data []byte, engine EndianEngine) (string, int, error) {
	if len(data) < 4 {
		return "", 0, errs.ErrShortRead
	}

	n := int(engine.Uint32(data[0:4]))
	if n < 0 || 4+n > len(data) {
		return "", 0, errs.ErrShortRead
	}

	return string(data[4 : 4+n]), 4 + n, nil
}

// ReadStringInto decodes a u32-length-prefixed string into dst, truncating
// if dst is shorter than the stored string and reporting that truncation as
// a Recoverable error. It returns the number of bytes consumed from data and
// the number of bytes written into dst.
func ReadStringInto(data []byte, engine EndianEngine, dst []byte) (consumed int, written int, err error) {
	s, consumed, err := ReadString(data, engine)
	if err != nil {
		return consumed, 0, err
	}

	n := copy(dst, s)
	if n < len(s) {
		err = errs.ErrBufferTooShort
	}

	return consumed, n, err
}
