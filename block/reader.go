package block

import (
	"io"

	"github.com/tngformat/tng/endian"
	"github.com/tngformat/tng/errs"
	"github.com/tngformat/tng/format"
)

// ReadHeader parses a Header from r, consuming exactly h.HeaderLen() bytes.
func ReadHeader(r io.Reader, engine endian.EndianEngine) (Header, error) {
	// The version field follows the variable-length name, so only the bytes
	// up to and including name_len are read here.
	var fixed [FixedHeaderSize - 8]byte
	if _, err := io.ReadFull(r, fixed[:]); err != nil {
		return Header{}, errs.WithStatus(errs.Critical, err)
	}

	h := Header{
		Size:    int64(engine.Uint64(fixed[0:8])), //nolint:gosec
		Type:    format.BlockType(engine.Uint64(fixed[8:16])),
		ID:      int64(engine.Uint64(fixed[16:24])), //nolint:gosec
	}
	copy(h.Hash[:], fixed[24:24+format.MD5HashLen])

	nameLenOff := 24 + format.MD5HashLen
	nameLen := int(engine.Uint32(fixed[nameLenOff : nameLenOff+4]))
	if nameLen < 0 || nameLen > format.MaxStrLen {
		return Header{}, errs.ErrInvalidHeaderSize
	}

	name := make([]byte, nameLen)
	if nameLen > 0 {
		if _, err := io.ReadFull(r, name); err != nil {
			return Header{}, errs.WithStatus(errs.Critical, err)
		}
	}
	h.Name = string(name)

	var versionBuf [8]byte
	if _, err := io.ReadFull(r, versionBuf[:]); err != nil {
		return Header{}, errs.WithStatus(errs.Critical, err)
	}
	h.Version = int64(engine.Uint64(versionBuf[:])) //nolint:gosec

	if h.Size < int64(h.HeaderLen()) {
		return Header{}, errs.ErrInvalidBlockSize
	}

	return h, nil
}

// ReadBody reads a block's body given its already-parsed Header.
func ReadBody(r io.Reader, h Header) ([]byte, error) {
	body := make([]byte, h.BodyLen())
	if len(body) == 0 {
		return body, nil
	}

	if _, err := io.ReadFull(r, body); err != nil {
		return nil, errs.WithStatus(errs.Critical, err)
	}

	return body, nil
}

// ReadBlock reads one full block (header + body) from r.
//
// hashMode controls integrity verification (spec.md §4.3): in format.HashUse,
// a body/hash mismatch is reported as errs.ErrHashMismatch (Recoverable) but
// the header and body are still returned so the caller can continue reading
// subsequent blocks. In format.HashSkip the header bytes are ignored.
func ReadBlock(r io.Reader, engine endian.EndianEngine, hashMode format.HashMode, verify func(body []byte, want [format.MD5HashLen]byte) bool) (Header, []byte, error) {
	h, err := ReadHeader(r, engine)
	if err != nil {
		return Header{}, nil, err
	}

	body, err := ReadBody(r, h)
	if err != nil {
		return h, nil, err
	}

	if hashMode == format.HashUse && h.Hash != ([format.MD5HashLen]byte{}) {
		if verify != nil && !verify(body, h.Hash) {
			return h, body, errs.ErrHashMismatch
		}
	}

	return h, body, nil
}
