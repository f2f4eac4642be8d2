/*
 * edit_test.go, part of goParm.
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
	"bytes"
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/rmera/goparm/fortfmt"
)

// rewrite writes T, checks that the result is read and written back
// byte for byte, and returns the topology read from it.
func rewrite(Te *testing.T, T *Topology) *Topology {
	var b bytes.Buffer
	if _, err := T.WriteTo(&b); err != nil {
		Te.Fatal(err)
	}
	d, err := RoundTripDiff(b.Bytes())
	if err != nil {
		Te.Fatal(err)
	}
	if d != "" {
		Te.Errorf("written topology is not stable:\n%s", d)
	}
	R, err := ReadTopology(&b)
	if err != nil {
		Te.Fatal(err)
	}
	if !Equal(T, R) {
		Te.Errorf("topology changed after being written and read")
	}
	return R
}

func pointer(Te *testing.T, T *Topology, name string) int {
	v, err := T.Pointer(name)
	if err != nil {
		Te.Fatal(err)
	}
	return v
}

func TestStripWater(Te *testing.T) {
	T := readTest(Te, "tri.prmtop")
	if err := T.RemoveResidue(2); err != nil {
		Te.Fatal(err)
	}
	if T.NAtoms() != 8 || T.NResidues() != 2 {
		Te.Errorf("%d atoms in %d residues left", T.NAtoms(), T.NResidues())
	}
	if n := pointer(Te, T, "NBONH"); n != 3 {
		Te.Errorf("NBONH is %d, expected 3", n)
	}
	if n := pointer(Te, T, "NNB"); n != 24 {
		Te.Errorf("NNB is %d, expected 24", n)
	}
	if n := pointer(Te, T, "NRES"); n != 2 {
		Te.Errorf("NRES is %d, expected 2", n)
	}
	if m := T.AtomsPerMolecule(); !slices.Equal(m, []int{8}) {
		Te.Errorf("wrong molecules %v", m)
	}
	if s := T.SolventPointers(); !slices.Equal(s, []int{2, 1, 2}) {
		Te.Errorf("wrong solvent pointers %v", s)
	}
	if err := T.CheckPointers(); err != nil {
		Te.Error(err)
	}
	R := rewrite(Te, T)
	fmt.Println("Water stripped,", R.NAtoms(), "atoms left")
}

func TestRemoveAtom(Te *testing.T) {
	T := readTest(Te, "tri.prmtop")
	if err := T.RemoveAtom(1); err != nil {
		Te.Fatal(err)
	}
	if T.NAtoms() != 10 || len(T.Bonds()) != 8 || len(T.Angles()) != 8 || len(T.Dihedrals()) != 5 {
		Te.Errorf("wrong counts after removing an atom: %d atoms, %d bonds, %d angles, %d dihedrals",
			T.NAtoms(), len(T.Bonds()), len(T.Angles()), len(T.Dihedrals()))
	}
	for _, b := range T.Bonds() {
		if b.Atoms[0] >= 10 || b.Atoms[1] >= 10 {
			Te.Errorf("bond %v out of range", b)
		}
	}
	if e := T.ExcludedAtoms(0); !slices.Equal(e, []int{1, 2, 3, 4, 5}) {
		Te.Errorf("wrong exclusions for atom 0: %v", e)
	}
	if T.Residue(0).End != 3 || T.Residue(1).Start != 3 || T.AtomName(1) != "C" {
		Te.Errorf("atoms not renumbered: %+v %+v", T.Residue(0), T.Residue(1))
	}
	if m := T.AtomsPerMolecule(); !slices.Equal(m, []int{7, 3}) {
		Te.Errorf("wrong molecules %v", m)
	}
	if n := pointer(Te, T, "NNB"); n != 24 {
		Te.Errorf("NNB is %d, expected 24", n)
	}
	rewrite(Te, T)
}

func TestAtomicity(Te *testing.T) {
	raw := readRaw(Te, "tri.prmtop")
	T := readTest(Te, "tri.prmtop")
	all := make([]bool, T.NAtoms())
	for i := range all {
		all[i] = true
	}
	if err := T.Strip(all); err == nil {
		Te.Fatal("removing all the atoms should fail")
	}
	if err := T.SetAtomName(0, "TOOLONG"); err == nil {
		Te.Fatal("a 7-character name should not fit")
	} else {
		var o *fortfmt.FieldOverflowError
		if !errors.As(err, &o) {
			Te.Errorf("expected a FieldOverflowError, got %v", err)
		}
		fmt.Println(err)
	}
	if err := T.AddBond(0, 2, 0); err == nil {
		Te.Error("duplicated bond accepted")
	}
	if err := T.RemoveBond(42); err == nil {
		Te.Error("removed a bond out of range")
	}
	var b bytes.Buffer
	if _, err := T.WriteTo(&b); err != nil {
		Te.Fatal(err)
	}
	if !bytes.Equal(b.Bytes(), raw) {
		Te.Error("failed changes altered the topology")
	}
}

func TestAddAtom(Te *testing.T) {
	T := readTest(Te, "tri.prmtop")
	i, err := T.AddAtom(Atom{Name: "HB1", Type: "HC", Charge: 0.1, Mass: 1.008, AtomicNumber: 1, TypeIndex: 1}, 1)
	if err != nil {
		Te.Fatal(err)
	}
	if i != 8 || T.NAtoms() != 12 || T.Residue(1).End != 9 || T.Residue(2).Start != 9 || T.ResidueOf(8) != 1 {
		Te.Fatalf("atom added at %d, residues %+v %+v", i, T.Residue(1), T.Residue(2))
	}
	if m := T.AtomsPerMolecule(); !slices.Equal(m, []int{9, 3}) {
		Te.Errorf("wrong molecules %v", m)
	}
	if err := T.AddBond(6, 8, 0); err != nil {
		Te.Fatal(err)
	}
	if err := T.AddAngle(4, 6, 8, 0); err != nil {
		Te.Fatal(err)
	}
	if n := pointer(Te, T, "NBONH"); n != 6 {
		Te.Errorf("NBONH is %d, expected 6", n)
	}
	if n := pointer(Te, T, "NTHETH"); n != 6 {
		Te.Errorf("NTHETH is %d, expected 6", n)
	}
	bonds := T.Bonds()
	if !bonds[5].WithH || bonds[5].Atoms != [2]int{6, 8} || bonds[6].WithH {
		Te.Errorf("new bond not placed with the hydrogen bonds: %v", bonds)
	}
	if e := T.ExcludedAtoms(9); !slices.Equal(e, []int{10, 11}) {
		Te.Errorf("water exclusions not renumbered: %v", e)
	}
	if err := T.RebuildExclusions(); err != nil {
		Te.Fatal(err)
	}
	if len(T.ExcludedAtoms(8)) != 0 || !slices.Contains(T.ExcludedAtoms(6), 8) || !slices.Contains(T.ExcludedAtoms(4), 8) {
		Te.Errorf("exclusions not rebuilt: %v %v", T.ExcludedAtoms(6), T.ExcludedAtoms(8))
	}
	rewrite(Te, T)
}

func TestAddResidue(Te *testing.T) {
	ion := []Atom{{Name: "NA", Type: "Na+", Charge: 1, Mass: 22.99, AtomicNumber: 11}}
	T := readTest(Te, "tri.prmtop")
	if err := T.AddResidue(Residue{Name: "NA+"}, ion, 3); err != nil {
		Te.Fatal(err)
	}
	if T.NResidues() != 4 || T.Residue(3).Start != 11 || T.Atom(11).Residue != 3 {
		Te.Errorf("ion not added at the end: %+v", T.Residue(3))
	}
	if m, s := T.AtomsPerMolecule(), T.SolventPointers(); !slices.Equal(m, []int{8, 3, 1}) || !slices.Equal(s, []int{2, 3, 2}) {
		Te.Errorf("wrong molecules %v %v", m, s)
	}
	rewrite(Te, T)
	T = readTest(Te, "tri.prmtop")
	if err := T.AddResidue(Residue{Name: "NA+"}, ion, 0); err != nil {
		Te.Fatal(err)
	}
	if T.ResidueName(0) != "NA+" || T.ResidueName(1) != "ACE" || T.Atom(1).Residue != 1 || T.Atom(1).Name != "C1" {
		Te.Errorf("ion not added at the start")
	}
	if m, s := T.AtomsPerMolecule(), T.SolventPointers(); !slices.Equal(m, []int{1, 8, 3}) || !slices.Equal(s, []int{3, 3, 3}) {
		Te.Errorf("wrong molecules %v %v", m, s)
	}
	if b := T.Bonds()[0]; b.Atoms != [2]int{1, 2} {
		Te.Errorf("bonds not renumbered: %v", b)
	}
	rewrite(Te, T)
	if err := T.AddResidue(Residue{Name: "TOOLONG"}, ion, 0); err == nil {
		Te.Error("residue name too long accepted")
	}
}

func TestSubset(Te *testing.T) {
	T := readTest(Te, "tri.prmtop")
	sel := make([]bool, T.NAtoms())
	for i := 4; i < 8; i++ {
		sel[i] = true
	}
	S, err := T.Subset(sel)
	if err != nil {
		Te.Fatal(err)
	}
	if S.NAtoms() != 4 || S.NResidues() != 1 || S.ResidueName(0) != "ALA" || T.NAtoms() != 11 {
		Te.Errorf("wrong subset: %d atoms, %d residues", S.NAtoms(), S.NResidues())
	}
	if s := S.SolventPointers(); !slices.Equal(s, []int{1, 1, 2}) {
		Te.Errorf("wrong solvent pointers %v", s)
	}
	rewrite(Te, S)
}

func TestDihedralNormalization(Te *testing.T) {
	T := readTest(Te, "tri.prmtop")
	if err := T.AddDihedral(Dihedral{Atoms: [4]int{5, 4, 0, 2}, Type: 0, Ignore14: true}); err != nil {
		Te.Fatal(err)
	}
	if err := T.AddDihedral(Dihedral{Atoms: [4]int{3, 2, 4, 0}, Type: 3, Improper: true}); err != nil {
		Te.Fatal(err)
	}
	var proper, improper bool
	for _, d := range T.Dihedrals() {
		if d.Ignore14 && !d.Improper && d.Atoms == [4]int{2, 0, 4, 5} {
			proper = true
		}
		if d.Improper && !d.Ignore14 && d.Atoms == [4]int{0, 2, 4, 3} {
			improper = true
		}
	}
	if !proper || !improper {
		Te.Errorf("dihedrals not normalized: %v", T.Dihedrals())
	}
	n := len(T.Dihedrals())
	err := T.AddDihedral(Dihedral{Atoms: [4]int{2, 4, 0, 6}, Type: 3, Ignore14: true, Improper: true})
	var inc *InconsistentTopologyError
	if !errors.As(err, &inc) {
		Te.Errorf("expected an InconsistentTopologyError, got %v", err)
	}
	if len(T.Dihedrals()) != n {
		Te.Errorf("failed change altered the dihedrals")
	}
	R := rewrite(Te, T)
	if pointer(Te, R, "NPHIH") != 5 {
		Te.Errorf("NPHIH is %d, expected 5", pointer(Te, R, "NPHIH"))
	}
}

func TestSetters(Te *testing.T) {
	T := readTest(Te, "tri.prmtop")
	if err := T.SetTitle("A new title"); err != nil {
		Te.Fatal(err)
	}
	if err := T.SetResidueName(0, "NME"); err != nil {
		Te.Fatal(err)
	}
	if err := T.SetAtomType(3, "O2"); err != nil {
		Te.Fatal(err)
	}
	if err := T.SetBondType(0, BondType{K: 300, Eq: 1.1}); err != nil {
		Te.Fatal(err)
	}
	t, err := T.AddDihedralType(DihedralType{K: 1, Periodicity: 3, SCEE: 1.2, SCNB: 2})
	if err != nil || t != 4 {
		Te.Fatal(t, err)
	}
	if err := T.SetLJPair(0, 1, 1e6, 500); err != nil {
		Te.Fatal(err)
	}
	if lj, _ := T.LJ(1, 0); lj.A != 1e6 || lj.B != 500 {
		Te.Errorf("LJ pair not set: %+v", lj)
	}
	if err := T.SetDihedralType(7, DihedralType{}); err == nil {
		Te.Error("set a dihedral type out of range")
	}
	R := rewrite(Te, T)
	if R.Title() != "A new title" || R.ResidueName(0) != "NME" || R.AtomType(3) != "O2" || R.NDihedralTypes() != 5 {
		Te.Errorf("changes not written: %q %s %s %d", R.Title(), R.ResidueName(0), R.AtomType(3), R.NDihedralTypes())
	}
	if n := pointer(Te, R, "NPTRA"); n != 5 {
		Te.Errorf("NPTRA is %d, expected 5", n)
	}
}

func TestSetBox(Te *testing.T) {
	T := readTest(Te, "tri.prmtop")
	if err := T.SetBox(nil); err != nil {
		Te.Fatal(err)
	}
	if T.Box() != nil || T.Has(Box) || pointer(Te, T, "IFBOX") != 0 {
		Te.Errorf("box not removed")
	}
	R := rewrite(Te, T)
	if R.Has(Box) {
		Te.Errorf("box written")
	}
	if err := T.SetBox([]float64{40, 40, 40}); err != nil {
		Te.Fatal(err)
	}
	if b := T.Box(); !slices.Equal(b, []float64{40, 40, 40, 90, 90, 90}) || pointer(Te, T, "IFBOX") != 1 {
		Te.Errorf("wrong box %v", b)
	}
	rewrite(Te, T)
	oct := 109.4712206
	if err := T.SetBox([]float64{50, 50, 50, oct, oct, oct}); err != nil {
		Te.Fatal(err)
	}
	if pointer(Te, T, "IFBOX") != 2 {
		Te.Errorf("truncated octahedron not recognized")
	}
	if err := T.SetBox([]float64{1, 2}); err == nil {
		Te.Errorf("two-value box accepted")
	}
	A := readTest(Te, "amoeba.prmtop")
	if err := A.SetBox([]float64{20, 20, 20}); err != nil {
		Te.Fatal(err)
	}
	if m, s := A.AtomsPerMolecule(), A.SolventPointers(); !slices.Equal(m, []int{3}) || !slices.Equal(s, []int{1, 1, 2}) {
		Te.Errorf("molecules not recorded: %v %v", m, s)
	}
	rewrite(Te, A)
}

func TestChamber(Te *testing.T) {
	T := readTest(Te, "chamber.prmtop")
	if T.Title() != "chamber test" || !T.Has(UreyBradley|Impropers|LJ14) {
		Te.Errorf("wrong title or capabilities: %q %s", T.Title(), T.Capabilities())
	}
	ub, ok := T.Terms("urey-bradley")
	if !ok || !slices.EqualFunc(ub, [][]int{{1, 2, 1}, {0, 4, 1}}, slices.Equal[[]int]) {
		Te.Errorf("wrong Urey-Bradley terms %v", ub)
	}
	if lj, err := T.LJ14(0, 0); err != nil || lj.A != 500000.25 {
		Te.Errorf("wrong 1-4 pair %+v %v", lj, err)
	}
	if err := T.RemoveAtom(0); err != nil {
		Te.Fatal(err)
	}
	ub, _ = T.Terms("urey-bradley")
	imp, _ := T.Terms("improper")
	if !slices.EqualFunc(ub, [][]int{{0, 1, 1}}, slices.Equal[[]int]) || !slices.EqualFunc(imp, [][]int{{1, 3, 5, 4, 1}}, slices.Equal[[]int]) {
		Te.Errorf("wrong terms after removing an atom: %v %v", ub, imp)
	}
	tab, err := T.ToSectionTable()
	if err != nil {
		Te.Fatal(err)
	}
	for name, expected := range map[string][]int{
		"CHARMM_UREY_BRADLEY_COUNT": {1, 1},
		"CHARMM_UREY_BRADLEY":       {1, 2, 1},
		"CHARMM_IMPROPERS":          {2, 4, 6, 5, 1},
		"CHARMM_NUM_IMPROPERS":      {1},
	} {
		if v, _ := tab.Ints(name); !slices.Equal(v, expected) {
			Te.Errorf("section %s is %v, expected %v", name, v, expected)
		}
	}
	rewrite(Te, T)
}

func TestAmoeba(Te *testing.T) {
	T := readTest(Te, "amoeba.prmtop")
	if !T.Has(Multipoles | Polarizability | AtomicNumbers | UreyBradley) {
		Te.Errorf("wrong capabilities %s", T.Capabilities())
	}
	if T.AtomicNumber(0) != 8 || T.Element(1) != "H" {
		Te.Errorf("wrong elements %d %s", T.AtomicNumber(0), T.Element(1))
	}
	if b, _ := T.Terms("bond"); len(b) != 2 || len(T.Bonds()) != 0 {
		Te.Errorf("wrong bonds %v", b)
	}
	raw := readRaw(Te, "amoeba.prmtop")
	err := T.RemoveAtom(0)
	var inc *InconsistentTopologyError
	if !errors.As(err, &inc) || inc.Section != "AMOEBA_VDW_ATOM_PARENT_LIST" {
		Te.Fatalf("removing a van der Waals parent should fail, got %v", err)
	}
	fmt.Println(err)
	var b bytes.Buffer
	T.WriteTo(&b)
	if !bytes.Equal(b.Bytes(), raw) || T.NAtoms() != 3 {
		Te.Fatal("failed change altered the topology")
	}
	if err := T.RemoveAtom(2); err != nil {
		Te.Fatal(err)
	}
	bonds, _ := T.Terms("bond")
	ub, _ := T.Terms("urey-bradley")
	angles, _ := T.Terms("angle")
	if len(bonds) != 1 || len(ub) != 0 || len(angles) != 0 {
		Te.Errorf("terms with the removed atom left: %v %v %v", bonds, ub, angles)
	}
	tab, err := T.ToSectionTable()
	if err != nil {
		Te.Fatal(err)
	}
	if v, _ := tab.Ints("AMOEBA_REGULAR_BOND_NUM_LIST"); !slices.Equal(v, []int{1}) {
		Te.Errorf("wrong bond count %v", v)
	}
	if v, _ := tab.Ints("AMOEBA_LOCAL_FRAME_MULTIPOLES_NUM_LIST"); !slices.Equal(v, []int{2}) {
		Te.Errorf("wrong multipole count %v", v)
	}
	if v, _ := tab.Floats("AMOEBA_LOCAL_FRAME_MULTIPOLES_LIST"); len(v) != 20 {
		Te.Errorf("%d multipole values left", len(v))
	}
	if v, _ := tab.Ints("AMOEBA_VDW_ATOM_PARENT_LIST"); !slices.Equal(v, []int{1, 1}) {
		Te.Errorf("wrong parents %v", v)
	}
	rewrite(Te, T)
}
