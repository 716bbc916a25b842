package mapping

import (
	"github.com/tngformat/tng/endian"
	"github.com/tngformat/tng/errs"
)

// Encode serializes m as the body of a PARTICLE_MAPPING block:
// first_particle_number (i64), count (i64), id-list length (i64), then that
// many i64 global ids. The length is 0 for an identity mapping
// (GlobalIDs == nil), so readers can tell the two cases apart on disk.
func (m ParticleMapping) Encode(engine endian.EndianEngine) []byte {
	buf := make([]byte, 0, 24+8*len(m.GlobalIDs))
	buf = engine.AppendUint64(buf, uint64(m.FirstParticleNumber)) //nolint:gosec
	buf = engine.AppendUint64(buf, uint64(m.Count))               //nolint:gosec
	buf = engine.AppendUint64(buf, uint64(len(m.GlobalIDs)))

	for _, id := range m.GlobalIDs {
		buf = engine.AppendUint64(buf, uint64(id)) //nolint:gosec
	}

	return buf
}

// DecodeMapping parses a PARTICLE_MAPPING block body produced by Encode.
func DecodeMapping(data []byte, engine endian.EndianEngine) (ParticleMapping, error) {
	if len(data) < 24 {
		return ParticleMapping{}, errs.ErrShortRead
	}

	m := ParticleMapping{
		FirstParticleNumber: int64(engine.Uint64(data[0:8])), //nolint:gosec
		Count:               int64(engine.Uint64(data[8:16])),//nolint:gosec
	}

	idCount := int(engine.Uint64(data[16:24]))
	if idCount == 0 {
		return m, nil
	}

	if len(data) < 24+8*idCount {
		return ParticleMapping{}, errs.ErrShortRead
	}

	m.GlobalIDs = make([]int64, idCount)
	for i := range m.GlobalIDs {
		off := 24 + 8*i
		m.GlobalIDs[i] = int64(engine.Uint64(data[off : off+8])) //nolint:gosec
	}

	return m, nil
}
