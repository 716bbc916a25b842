package topology

import (
	"github.com/tngformat/tng/endian"
	"github.com/tngformat/tng/errs"
)

// Encode serializes t as the body of a MOLECULES block (spec.md §4.4):
// molecule count, then per molecule: id, name, instance count, counts of
// chains/residues/atoms/bonds, then chain/residue/atom/bond records in
// declaration order.
func (t *Topology) Encode(engine endian.EndianEngine) ([]byte, error) {
	buf := make([]byte, 0, 256*len(t.Molecules))
	buf = engine.AppendUint64(buf, uint64(len(t.Molecules)))

	var truncated error
	appendStr := func(s string) {
		var err error
		buf, err = endian.AppendString(buf, engine, s)
		if err != nil {
			truncated = err
		}
	}

	for _, m := range t.Molecules {
		buf = engine.AppendUint64(buf, uint64(m.ID)) //nolint:gosec
		appendStr(m.Name)
		buf = engine.AppendUint64(buf, uint64(m.Count)) //nolint:gosec
		buf = engine.AppendUint64(buf, uint64(len(m.Chains)))
		buf = engine.AppendUint64(buf, uint64(len(m.Residues)))
		buf = engine.AppendUint64(buf, uint64(len(m.Atoms)))
		buf = engine.AppendUint64(buf, uint64(len(m.Bonds)))

		for _, c := range m.Chains {
			buf = engine.AppendUint64(buf, uint64(c.ID)) //nolint:gosec
			appendStr(c.Name)
		}
		for _, r := range m.Residues {
			buf = engine.AppendUint64(buf, uint64(r.ID)) //nolint:gosec
			appendStr(r.Name)
			buf = engine.AppendUint64(buf, uint64(r.ChainIndex)) //nolint:gosec
		}
		for _, a := range m.Atoms {
			buf = engine.AppendUint64(buf, uint64(a.ID)) //nolint:gosec
			appendStr(a.Name)
			appendStr(a.Type)
			buf = engine.AppendUint64(buf, uint64(a.ResidueIndex)) //nolint:gosec
			buf = engine.AppendUint64(buf, uint64(a.ChainIndex))   //nolint:gosec
		}
		for _, b := range m.Bonds {
			buf = engine.AppendUint64(buf, uint64(b.FromAtomIndex)) //nolint:gosec
			buf = engine.AppendUint64(buf, uint64(b.ToAtomIndex))   //nolint:gosec
		}
	}

	return buf, truncated
}

// Decode parses a MOLECULES block body produced by Encode.
func Decode(data []byte, engine endian.EndianEngine) (*Topology, error) {
	r := &reader{data: data, engine: engine}

	molCount, err := r.u64()
	if err != nil {
		return nil, err
	}

	t := &Topology{Molecules: make([]Molecule, 0, molCount)}

	for range molCount {
		var m Molecule

		id, err := r.u64()
		if err != nil {
			return nil, err
		}
		m.ID = int64(id) //nolint:gosec

		if m.Name, err = r.str(); err != nil {
			return nil, err
		}

		count, err := r.u64()
		if err != nil {
			return nil, err
		}
		m.Count = int64(count) //nolint:gosec

		nChains, err := r.u64()
		if err != nil {
			return nil, err
		}
		nResidues, err := r.u64()
		if err != nil {
			return nil, err
		}
		nAtoms, err := r.u64()
		if err != nil {
			return nil, err
		}
		nBonds, err := r.u64()
		if err != nil {
			return nil, err
		}

		for range nChains {
			cid, err := r.u64()
			if err != nil {
				return nil, err
			}
			name, err := r.str()
			if err != nil {
				return nil, err
			}
			m.Chains = append(m.Chains, Chain{ID: int64(cid), Name: name}) //nolint:gosec
		}

		for range nResidues {
			rid, err := r.u64()
			if err != nil {
				return nil, err
			}
			name, err := r.str()
			if err != nil {
				return nil, err
			}
			chainIdx, err := r.u64()
			if err != nil {
				return nil, err
			}
			m.Residues = append(m.Residues, Residue{ID: int64(rid), Name: name, ChainIndex: int(chainIdx)}) //nolint:gosec
		}

		for range nAtoms {
			aid, err := r.u64()
			if err != nil {
				return nil, err
			}
			name, err := r.str()
			if err != nil {
				return nil, err
			}
			atype, err := r.str()
			if err != nil {
				return nil, err
			}
			residueIdx, err := r.u64()
			if err != nil {
				return nil, err
			}
			chainIdx, err := r.u64()
			if err != nil {
				return nil, err
			}
			m.Atoms = append(m.Atoms, Atom{
				ID: int64(aid), Name: name, Type: atype, //nolint:gosec
				ResidueIndex: int(residueIdx), ChainIndex: int(chainIdx),
			})
		}

		for range nBonds {
			from, err := r.u64()
			if err != nil {
				return nil, err
			}
			to, err := r.u64()
			if err != nil {
				return nil, err
			}
			m.Bonds = append(m.Bonds, Bond{FromAtomIndex: int(from), ToAtomIndex: int(to)})
		}

		t.Molecules = append(t.Molecules, m)
	}

	return t, nil
}

// reader is a small cursor over a MOLECULES block body, grounded on the
// teacher's ParseNumericHeader-style "bounds-check then advance" pattern.
type reader struct {
	data   []byte
	pos    int
	engine endian.EndianEngine
}

func (r *reader) u64() (uint64, error) {
	if r.pos+8 > len(r.data) {
		return 0, errs.ErrShortRead
	}
	v := r.engine.Uint64(r.data[r.pos : r.pos+8])
	r.pos += 8

	return v, nil
}

func (r *reader) str() (string, error) {
	s, n, err := endian.ReadString(r.data[r.pos:], r.engine)
	if err != nil {
		return "", err
	}
	r.pos += n

	return s, nil
}
