/*
 * query.go, part of goParm.
 *
 * Copyright 2026 The goParm authors.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package parm

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/floats"
)

// NAtoms returns the number of atoms in the topology.
func (T *Topology) NAtoms() int {
	return len(T.atoms)
}

// Atom returns a copy of the atom i. It panics if i is out of range.
func (T *Topology) Atom(i int) Atom {
	return T.atoms[i]
}

// AtomName returns the name of atom i.
func (T *Topology) AtomName(i int) string {
	return T.atoms[i].Name
}

// AtomType returns the force field type name of atom i.
func (T *Topology) AtomType(i int) string {
	return T.atoms[i].Type
}

// NResidues returns the number of residues.
func (T *Topology) NResidues() int {
	return len(T.residues)
}

// Residue returns a copy of residue r. It panics if r is out of range.
func (T *Topology) Residue(r int) Residue {
	return T.residues[r]
}

// ResidueName returns the label of residue r.
func (T *Topology) ResidueName(r int) string {
	return T.residues[r].Name
}

// ResidueRange returns the first atom of residue r, and the atom
// following its last one.
func (T *Topology) ResidueRange(r int) (int, int) {
	return T.residues[r].Start, T.residues[r].End
}

// ResidueOf returns the index of the residue atom i belongs to.
func (T *Topology) ResidueOf(i int) int {
	return T.atoms[i].Residue
}

// Partners returns the atoms bonded to atom i, sorted.
func (T *Topology) Partners(i int) []int {
	var ret []int
	for _, b := range T.bonds {
		switch i {
		case b.Atoms[0]:
			ret = append(ret, b.Atoms[1])
		case b.Atoms[1]:
			ret = append(ret, b.Atoms[0])
		}
	}
	slices.Sort(ret)
	return slices.Compact(ret)
}

// Bonds returns a copy of the bonds, those with hydrogen first.
func (T *Topology) Bonds() []Bond {
	return slices.Clone(T.bonds)
}

// Angles returns a copy of the angles, those with hydrogen first.
func (T *Topology) Angles() []Angle {
	return slices.Clone(T.angles)
}

// Dihedrals returns a copy of the dihedrals, those with hydrogen first.
func (T *Topology) Dihedrals() []Dihedral {
	return slices.Clone(T.dihedrals)
}

// NBondTypes returns the number of bond parameter sets.
func (T *Topology) NBondTypes() int { return len(T.bondTypes) }

// NAngleTypes returns the number of angle parameter sets.
func (T *Topology) NAngleTypes() int { return len(T.angTypes) }

// NDihedralTypes returns the number of dihedral parameter sets.
func (T *Topology) NDihedralTypes() int { return len(T.dihTypes) }

// BondType returns the parameters of the bond b.
func (T *Topology) BondType(b Bond) BondType {
	return T.bondTypes[b.Type]
}

// AngleType returns the parameters of the angle a.
func (T *Topology) AngleType(a Angle) AngleType {
	return T.angTypes[a.Type]
}

// DihedralType returns the parameters of the dihedral d.
func (T *Topology) DihedralType(d Dihedral) DihedralType {
	return T.dihTypes[d.Type]
}

// NTypes returns the number of Lennard-Jones atom types.
func (T *Topology) NTypes() int {
	return T.nb.NTypes
}

// LJ returns the Lennard-Jones coefficients between the 0-based atom
// types ti and tj.
func (T *Topology) LJ(ti, tj int) (LJPair, error) {
	n := T.nb.NTypes
	if ti < 0 || tj < 0 || ti >= n || tj >= n {
		return LJPair{}, fmt.Errorf("parm: atom types %d, %d out of range (%d types)", ti, tj, n)
	}
	idx := T.nb.Index[ti*n+tj]
	switch {
	case idx > 0:
		return LJPair{A: T.nb.ACoef[idx-1], B: T.nb.BCoef[idx-1]}, nil
	case idx < 0:
		return LJPair{A: T.nb.HBondA[-idx-1], B: T.nb.HBondB[-idx-1], HBond: true}, nil
	}
	return LJPair{}, inconsistent(sNBIndex, ti*n+tj, "zero index")
}

// LJ14 returns the 1-4 Lennard-Jones coefficients between the atom types
// ti and tj, for topologies that have separate 1-4 tables.
func (T *Topology) LJ14(ti, tj int) (LJPair, error) {
	if T.nb.ACoef14 == nil {
		return LJPair{}, &MissingSectionError{Section: sLJ14A, Dialect: T.dialect.Name}
	}
	p, err := T.LJ(ti, tj)
	if err != nil || p.HBond {
		return p, err
	}
	idx := T.nb.Index[ti*T.nb.NTypes+tj]
	return LJPair{A: T.nb.ACoef14[idx-1], B: T.nb.BCoef14[idx-1]}, nil
}

// Nonbonded returns a copy of the Lennard-Jones tables.
func (T *Topology) Nonbonded() Nonbonded {
	return T.nb.copy()
}

// ExcludedAtoms returns the atoms with larger indexes excluded from
// the non-bonded interactions of atom i, as recorded in the topology.
func (T *Topology) ExcludedAtoms(i int) []int {
	return slices.Clone(T.excl[i])
}

// Pointers returns a copy of the POINTERS block.
func (T *Topology) Pointers() []int {
	return slices.Clone(T.pointers)
}

// Pointer returns the value of the POINTERS entry called name
// (NATOM, NTYPES, NBONH...).
func (T *Topology) Pointer(name string) (int, error) {
	i := slices.Index(pointerNames, name)
	if i < 0 || i >= len(T.pointers) {
		return 0, fmt.Errorf("parm: no pointer called %s", name)
	}
	return T.pointers[i], nil
}

// Dialect returns the dialect of the topology.
func (T *Topology) Dialect() Dialect {
	return T.dialect
}

// Has returns true if the topology has all the capabilities in c.
func (T *Topology) Has(c Capability) bool {
	return T.caps.Has(c)
}

// Capabilities returns the optional section groups present.
func (T *Topology) Capabilities() Capability {
	return T.caps
}

// Box returns the periodic box as a, b, c, alpha, beta, gamma (A and
// degrees), or nil if the system is not periodic.
func (T *Topology) Box() []float64 {
	return slices.Clone(T.box)
}

// TotalCharge returns the sum of the atomic charges in electrons.
func (T *Topology) TotalCharge() float64 {
	q := make([]float64, len(T.atoms))
	for i, v := range T.atoms {
		q[i] = v.Charge
	}
	return floats.Sum(q)
}

// Title returns the title of the topology, without trailing blanks.
func (T *Topology) Title() string {
	return T.title
}

// AtomsPerMolecule returns the number of atoms of each molecule, as
// recorded for periodic systems, or nil.
func (T *Topology) AtomsPerMolecule() []int {
	return slices.Clone(T.molecules)
}

// SolventPointers returns the last solute residue, the number of
// molecules and the first solvent molecule (1-based, as in the file),
// or nil.
func (T *Topology) SolventPointers() []int {
	return slices.Clone(T.solvent)
}

// Terms returns a copy of the terms of the dialect-specific list
// called name (such as "urey-bradley" or "cmap"). Each term holds the
// 0-based atom indexes followed by its other integers.
func (T *Topology) Terms(name string) ([][]int, bool) {
	for _, v := range T.extra {
		if v.def.Name == name {
			ret := make([][]int, len(v.terms))
			for i, t := range v.terms {
				ret[i] = slices.Clone(t)
			}
			return ret, true
		}
	}
	return nil, false
}

// CheckPointers compares the POINTERS block with the actual contents of
// the topology, and returns an *InconsistentTopologyError for the first
// difference.
func (T *Topology) CheckPointers() error {
	c := T.counts()
	for _, i := range checkedPointers {
		if T.pointers[i] != c[i] {
			return inconsistent(sPointers, i, "%s is %d, the topology has %d", pointerNames[i], T.pointers[i], c[i])
		}
	}
	for _, v := range [][2]int{{NBONA, MBONA}, {NTHETA, MTHETA}, {NPHIA, MPHIA}} {
		if T.pointers[v[0]] < T.pointers[v[1]] {
			return inconsistent(sPointers, v[0], "%s is smaller than %s", pointerNames[v[0]], pointerNames[v[1]])
		}
	}
	if (T.pointers[IFBOX] > 0) != (T.box != nil) {
		return inconsistent(sPointers, IFBOX, "IFBOX is %d and the box is %v", T.pointers[IFBOX], T.box)
	}
	return nil
}

// The pointers that follow directly from the contents of the topology.
var checkedPointers = []int{NATOM, NTYPES, NBONH, MBONA, NTHETH, MTHETA, NPHIH, MPHIA,
	NNB, NRES, NUMBND, NUMANG, NPTRA, NPHB}

// counts returns the value each pointer of checkedPointers, plus NMXRS,
// should have.
func (T *Topology) counts() map[int]int {
	c := map[int]int{
		NATOM:  len(T.atoms),
		NTYPES: T.nb.NTypes,
		NRES:   len(T.residues),
		NUMBND: len(T.bondTypes),
		NUMANG: len(T.angTypes),
		NPTRA:  len(T.dihTypes),
		NPHB:   len(T.nb.HBondA),
	}
	for _, b := range T.bonds {
		c[pick(b.WithH, NBONH, MBONA)]++
	}
	for _, a := range T.angles {
		c[pick(a.WithH, NTHETH, MTHETA)]++
	}
	for _, d := range T.dihedrals {
		c[pick(d.WithH, NPHIH, MPHIA)]++
	}
	for _, e := range T.excl {
		c[NNB] += max(1, len(e))
	}
	for _, r := range T.residues {
		c[NMXRS] = max(c[NMXRS], r.Len())
	}
	return c
}

func pick[V any](cond bool, a, b V) V {
	if cond {
		return a
	}
	return b
}
