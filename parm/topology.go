/*
 * topology.go, part of goParm.
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
	"slices"

	"github.com/rmera/goparm/fortfmt"
)

// ChargeScale converts charges in electrons to the units stored in the
// CHARGE section.
const ChargeScale = 18.2223

// Indexes of the values in the POINTERS section.
const (
	NATOM = iota
	NTYPES
	NBONH
	MBONA
	NTHETH
	MTHETA
	NPHIH
	MPHIA
	NHPARM
	NPARM
	NNB
	NRES
	NBONA
	NTHETA
	NPHIA
	NUMBND
	NUMANG
	NPTRA
	NATYP
	NPHB
	IFPERT
	NBPER
	NGPER
	NDPER
	MBPER
	MGPER
	MDPER
	IFBOX
	NMXRS
	IFCAP
	NUMEXTRA
	NCOPY
)

var pointerNames = []string{"NATOM", "NTYPES", "NBONH", "MBONA", "NTHETH", "MTHETA", "NPHIH",
	"MPHIA", "NHPARM", "NPARM", "NNB", "NRES", "NBONA", "NTHETA", "NPHIA", "NUMBND", "NUMANG",
	"NPTRA", "NATYP", "NPHB", "IFPERT", "NBPER", "NGPER", "NDPER", "MBPER", "MGPER", "MDPER",
	"IFBOX", "NMXRS", "IFCAP", "NUMEXTRA", "NCOPY"}

// Atom is one atom of a topology. TypeIndex (the Lennard-Jones type)
// and Residue are 0-based. Charge is in electrons. AtomicNumber is 0
// when the topology doesn't record it.
type Atom struct {
	Index          int
	Name           string
	Type           string
	Charge         float64
	Mass           float64
	AtomicNumber   int
	TypeIndex      int
	Residue        int
	TreeChain      string
	Join           int
	IRotat         int
	Radius         float64
	Screen         float64
	Polarizability float64
}

// Residue is a contiguous range of atoms, from Start to End (exclusive).
// Number is the original residue number, and Chain the chain identifier,
// when the topology records them.
type Residue struct {
	Index  int
	Name   string
	Chain  string
	Number int
	Start  int
	End    int
}

// Len returns the number of atoms in the residue.
func (R Residue) Len() int {
	return R.End - R.Start
}

// Bond joins two atoms. Type is the 0-based index of its parameters.
// WithH is true for bonds in the list of bonds involving hydrogen.
type Bond struct {
	Atoms [2]int
	Type  int
	WithH bool
}

// Angle is a bond angle between three atoms, the second one being the vertex.
type Angle struct {
	Atoms [3]int
	Type  int
	WithH bool
}

// Dihedral is a proper or improper torsion. Ignore14 is set for terms
// that don't add a 1-4 pair (additional terms of a multi-term torsion, and
// torsions closing rings). Improper is set for improper torsions,
// where the third atom is the central one.
type Dihedral struct {
	Atoms    [4]int
	Type     int
	WithH    bool
	Ignore14 bool
	Improper bool
}

// BondType holds a harmonic force constant (kcal/mol/A^2) and
// equilibrium distance (A).
type BondType struct {
	K  float64
	Eq float64
}

// AngleType holds a harmonic force constant (kcal/mol/rad^2) and
// equilibrium angle (rad).
type AngleType struct {
	K  float64
	Eq float64
}

// DihedralType holds the parameters of one cosine term. SCEE and SCNB
// are the 1-4 electrostatic and van der Waals scaling factors, zero if the
// topology doesn't have them.
type DihedralType struct {
	K           float64
	Periodicity float64
	Phase       float64
	SCEE        float64
	SCNB        float64
}

// Nonbonded holds the Lennard-Jones tables. Index has NTypes*NTypes
// elements, as in the file: positive values are 1-based indexes into
// ACoef/BCoef, negative values point to the 10-12 hydrogen bond tables.
type Nonbonded struct {
	NTypes  int
	Index   []int
	ACoef   []float64
	BCoef   []float64
	HBondA  []float64
	HBondB  []float64
	HBCut   []float64
	Solty   []float64
	ACoef14 []float64
	BCoef14 []float64
}

func (N Nonbonded) copy() Nonbonded {
	return Nonbonded{
		NTypes:  N.NTypes,
		Index:   slices.Clone(N.Index),
		ACoef:   slices.Clone(N.ACoef),
		BCoef:   slices.Clone(N.BCoef),
		HBondA:  slices.Clone(N.HBondA),
		HBondB:  slices.Clone(N.HBondB),
		HBCut:   slices.Clone(N.HBCut),
		Solty:   slices.Clone(N.Solty),
		ACoef14: slices.Clone(N.ACoef14),
		BCoef14: slices.Clone(N.BCoef14),
	}
}

// LJPair holds the coefficients for a pair of atom types. If HBond is
// true, A and B are the 10-12 hydrogen bond coefficients.
type LJPair struct {
	A     float64
	B     float64
	HBond bool
}

// extraTerms holds the terms of one dialect-specific term list,
// with 0-based atom indexes followed by the other integers of the term.
type extraTerms struct {
	def   TermList
	terms [][]int
}

// atomArray holds the values of a dialect-specific per-atom section.
type atomArray struct {
	def  AtomArray
	data fortfmt.Array
}

// Topology is the validated content of a topology file. Atoms, residues
// and terms refer to each other only by index. The pointer block is kept
// equal to the actual lengths of the arrays after every change, and all
// changes are atomic: a method that fails leaves the Topology unchanged.
// A Topology is not safe for concurrent use if any goroutine changes it.
type Topology struct {
	tab       *SectionTable
	dialect   Dialect
	caps      Capability
	pointers  []int
	atoms     []Atom
	residues  []Residue
	bonds     []Bond
	angles    []Angle
	dihedrals []Dihedral
	bondTypes []BondType
	angTypes  []AngleType
	dihTypes  []DihedralType
	nb        Nonbonded
	excl      [][]int //for each atom, the excluded atoms with larger indexes
	solvent   []int   //IPTRES, NSPM, NSPSOL, nil if absent
	molecules []int   //ATOMS_PER_MOLECULE, nil if absent
	box       []float64
	extra     []extraTerms
	arrays    []atomArray
	title     string
	mutated   bool
}

// Clone returns a deep copy of the topology.
func (T *Topology) Clone() *Topology {
	C := *T
	C.tab = T.tab.Copy()
	C.pointers = slices.Clone(T.pointers)
	C.atoms = slices.Clone(T.atoms)
	C.residues = slices.Clone(T.residues)
	C.bonds = slices.Clone(T.bonds)
	C.angles = slices.Clone(T.angles)
	C.dihedrals = slices.Clone(T.dihedrals)
	C.bondTypes = slices.Clone(T.bondTypes)
	C.angTypes = slices.Clone(T.angTypes)
	C.dihTypes = slices.Clone(T.dihTypes)
	C.nb = T.nb.copy()
	C.excl = make([][]int, len(T.excl))
	for i, v := range T.excl {
		C.excl[i] = slices.Clone(v)
	}
	C.solvent = slices.Clone(T.solvent)
	C.molecules = slices.Clone(T.molecules)
	C.box = slices.Clone(T.box)
	C.extra = make([]extraTerms, len(T.extra))
	for i, v := range T.extra {
		C.extra[i].def = v.def
		C.extra[i].terms = make([][]int, len(v.terms))
		for j, t := range v.terms {
			C.extra[i].terms[j] = slices.Clone(t)
		}
	}
	C.arrays = make([]atomArray, len(T.arrays))
	for i, v := range T.arrays {
		C.arrays[i] = atomArray{def: v.def, data: v.data.Copy()}
	}
	return &C
}
