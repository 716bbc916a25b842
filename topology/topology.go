// Package topology models the molecules/chains/residues/atoms/bonds that
// describe a trajectory's particle system, and the MOLECULES block
// serialization of that model (spec.md §3, §4.4).
//
// Parent back-references (atom→residue, residue→chain) are plain integer
// indices into the owning Molecule's slices, never pointers, so the graph
// stays acyclic and trivially copyable (spec.md §9 design notes) — the same
// shape the teacher uses for generic by-id/by-name lookup tables
// (blob.indexMaps), just applied to a tree instead of a flat map.
package topology

import "github.com/tngformat/tng/internal/namehash"

// Atom is one particle in a Molecule.
type Atom struct {
	ID   int64
	Name string
	Type string

	// ResidueIndex is the index of this atom's parent Residue within the
	// owning Molecule's Residues slice, or -1 if the molecule has no residues.
	ResidueIndex int
	// ChainIndex is the index of this atom's parent Chain within the owning
	// Molecule's Chains slice, or -1 if the molecule has no chains.
	ChainIndex int
}

// Residue is a named group of atoms within a Chain.
type Residue struct {
	ID   int64
	Name string
	// ChainIndex is the index of this residue's parent Chain within the
	// owning Molecule's Chains slice.
	ChainIndex int
}

// Chain is a named group of residues within a Molecule.
type Chain struct {
	ID   int64
	Name string
}

// Bond connects two atoms by their index within the owning Molecule's Atoms slice.
type Bond struct {
	FromAtomIndex int
	ToAtomIndex   int
}

// Molecule describes one kind of molecular entity and how many instances of
// it appear in the system (spec.md §3).
type Molecule struct {
	ID       int64
	Name     string
	Count    int64 // instance count (quaternary structure count in the on-disk record)
	Chains   []Chain
	Residues []Residue
	Atoms    []Atom
	Bonds    []Bond
}

// AddChain appends a chain and returns its index within Molecule.Chains.
func (m *Molecule) AddChain(id int64, name string) int {
	m.Chains = append(m.Chains, Chain{ID: id, Name: name})
	return len(m.Chains) - 1
}

// AddResidue appends a residue under chainIndex and returns its index within
// Molecule.Residues.
func (m *Molecule) AddResidue(id int64, name string, chainIndex int) int {
	m.Residues = append(m.Residues, Residue{ID: id, Name: name, ChainIndex: chainIndex})
	return len(m.Residues) - 1
}

// AddAtom appends an atom under residueIndex/chainIndex and returns its
// index within Molecule.Atoms.
func (m *Molecule) AddAtom(id int64, name, atomType string, residueIndex, chainIndex int) int {
	m.Atoms = append(m.Atoms, Atom{
		ID: id, Name: name, Type: atomType,
		ResidueIndex: residueIndex, ChainIndex: chainIndex,
	})

	return len(m.Atoms) - 1
}

// AddBond appends a bond between two atom indices within this molecule.
func (m *Molecule) AddBond(fromAtomIndex, toAtomIndex int) {
	m.Bonds = append(m.Bonds, Bond{FromAtomIndex: fromAtomIndex, ToAtomIndex: toAtomIndex})
}

// Topology owns the ordered list of molecules that make up the particle
// system (spec.md §3, the in-memory side of the MOLECULES block).
type Topology struct {
	Molecules []Molecule

	nameIdx *namehash.Index // lazily built cache over Molecules' names
}

// AddMolecule appends a molecule in declaration order and returns its index.
// Insertion order is load-bearing: global atom ids are assigned as the
// cumulative sum of instance counts in declaration order (spec.md §4.4).
func (t *Topology) AddMolecule(m Molecule) int {
	t.Molecules = append(t.Molecules, m)
	t.nameIdx = nil // invalidate cache

	return len(t.Molecules) - 1
}

// InstanceOffset returns the global atom-id offset of the first atom of the
// moleculeIndex'th molecule's instance'th instance, per spec.md §4.4's
// formula: global_id(mol_instance, atom_local) = offset(mol_instance) + atom_local,
// where offset accumulates prior molecules' (count * atoms-per-instance) plus
// prior instances of the same molecule.
func (t *Topology) InstanceOffset(moleculeIndex, instance int) int64 {
	var offset int64
	for i := 0; i < moleculeIndex; i++ {
		mol := t.Molecules[i]
		offset += mol.Count * int64(len(mol.Atoms))
	}

	offset += int64(instance) * int64(len(t.Molecules[moleculeIndex].Atoms))

	return offset
}

// TotalAtomCount returns the sum of (instance count * atoms per instance)
// across every molecule, i.e. the total particle count implied by the topology.
func (t *Topology) TotalAtomCount() int64 {
	var total int64
	for _, mol := range t.Molecules {
		total += mol.Count * int64(len(mol.Atoms))
	}

	return total
}

func (t *Topology) ensureIndex() *namehash.Index {
	if t.nameIdx == nil {
		names := make([]string, len(t.Molecules))
		for i, m := range t.Molecules {
			names[i] = m.Name
		}
		t.nameIdx = namehash.NewIndex(names)
	}

	return t.nameIdx
}

// FindMolecule searches for a molecule by (name, id), per spec.md §4.4's
// tng_molecule_find semantics: id == -1 means "any id", name == "" means
// "any name", ties broken by declaration order. Returns -1 if no molecule matches.
func (t *Topology) FindMolecule(name string, id int64) int {
	if name == "" {
		for i, m := range t.Molecules {
			if id == -1 || m.ID == id {
				return i
			}
		}

		return -1
	}

	for _, cand := range t.ensureIndex().Candidates(name) {
		m := t.Molecules[cand]
		if m.Name == name && (id == -1 || m.ID == id) {
			return cand
		}
	}

	return -1
}

// FindChain searches molecule mol's chains by (name, id), same semantics as FindMolecule.
func (m *Molecule) FindChain(name string, id int64) int {
	for i, c := range m.Chains {
		if (name == "" || c.Name == name) && (id == -1 || c.ID == id) {
			return i
		}
	}

	return -1
}

// FindResidue searches molecule mol's residues by (name, id), same semantics as FindMolecule.
func (m *Molecule) FindResidue(name string, id int64) int {
	for i, r := range m.Residues {
		if (name == "" || r.Name == name) && (id == -1 || r.ID == id) {
			return i
		}
	}

	return -1
}

// FindAtom searches molecule mol's atoms by (name, id), same semantics as FindMolecule.
func (m *Molecule) FindAtom(name string, id int64) int {
	for i, a := range m.Atoms {
		if (name == "" || a.Name == name) && (id == -1 || a.ID == id) {
			return i
		}
	}

	return -1
}
