/*
 * edit.go, part of goParm.
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
	"math"
	"slices"
	"strings"

	"github.com/rmera/goparm/fortfmt"
)

// commit runs f on a copy of T. The copy replaces T only if f succeeds
// and the result, with its pointers updated, is consistent.
func (T *Topology) commit(f func(c *Topology) error) error {
	c := T.Clone()
	if err := f(c); err != nil {
		return err
	}
	if err := c.normalizeDihedrals(); err != nil {
		return err
	}
	c.syncPointers(T)
	if err := c.validate(); err != nil {
		return err
	}
	c.mutated = true
	*T = *c
	return nil
}

// syncPointers sets the pointer block to the contents of the topology.
// old is the topology before the change.
func (T *Topology) syncPointers(old *Topology) {
	p := T.pointers
	for _, v := range [][2]int{{NBONA, MBONA}, {NTHETA, MTHETA}, {NPHIA, MPHIA}} {
		p[v[0]] -= p[v[1]]
	}
	c := T.counts()
	for _, i := range checkedPointers {
		p[i] = c[i]
	}
	p[NMXRS] = c[NMXRS]
	for _, v := range [][2]int{{NBONA, MBONA}, {NTHETA, MTHETA}, {NPHIA, MPHIA}} {
		p[v[0]] += p[v[1]]
	}
	if T.box == nil {
		p[IFBOX] = 0
	} else if p[IFBOX] == 0 {
		p[IFBOX] = boxKind(T.box)
	}
	p[NUMEXTRA] = max(0, p[NUMEXTRA]+T.countExtraPoints()-old.countExtraPoints())
}

func (T *Topology) countExtraPoints() int {
	n := 0
	for i := range T.atoms {
		if T.isExtraPoint(i) {
			n++
		}
	}
	return n
}

// The sign of the third and fourth atoms of a dihedral carry flags, so
// neither can be atom 0 if it needs its sign.
func (T *Topology) normalizeDihedrals() error {
	for i := range T.dihedrals {
		d := &T.dihedrals[i]
		a := &d.Atoms
		if d.Improper {
			if a[3] == 0 {
				a[0], a[3] = a[3], a[0]
			}
			if d.Ignore14 && a[2] == 0 {
				return inconsistent(pick(d.WithH, sDihedralsH, sDihedrals), i, "improper dihedral with atom 1 as its central atom")
			}
			continue
		}
		if d.Ignore14 && a[2] == 0 {
			a[0], a[1], a[2], a[3] = a[3], a[2], a[1], a[0]
		}
	}
	return nil
}

// boxKind returns the IFBOX value for the box: 2 for a truncated
// octahedron, 1 for a rectangular box, 3 otherwise.
func boxKind(box []float64) int {
	const octahedron = 109.4712206
	near := func(a, b float64) bool { return math.Abs(a-b) < 1e-3 }
	switch {
	case near(box[3], octahedron) && near(box[4], octahedron) && near(box[5], octahedron):
		return 2
	case near(box[3], 90) && near(box[4], 90) && near(box[5], 90):
		return 1
	}
	return 3
}

func checkName(section, name string) error {
	if len(name) > 4 {
		return &fortfmt.FieldOverflowError{Value: name, Width: 4, Position: -1, Format: section}
	}
	return nil
}

func (T *Topology) atomRange(i int) error {
	if i < 0 || i >= len(T.atoms) {
		return fmt.Errorf("parm: atom %d out of range (%d atoms)", i, len(T.atoms))
	}
	return nil
}

func (T *Topology) residueRange(r int) error {
	if r < 0 || r >= len(T.residues) {
		return fmt.Errorf("parm: residue %d out of range (%d residues)", r, len(T.residues))
	}
	return nil
}

// mapAtoms renumbers atoms in place with remap, and returns false if
// any of them is removed (-1).
func mapAtoms(atoms []int, remap []int) bool {
	for i, v := range atoms {
		if remap[v] < 0 {
			return false
		}
		atoms[i] = remap[v]
	}
	return true
}

// renumberTerms renumbers all the bonded terms with remap, dropping
// those that involve removed atoms.
func (T *Topology) renumberTerms(remap []int) {
	bonds := T.bonds[:0]
	for _, b := range T.bonds {
		if mapAtoms(b.Atoms[:], remap) {
			bonds = append(bonds, b)
		}
	}
	T.bonds = bonds
	angles := T.angles[:0]
	for _, a := range T.angles {
		if mapAtoms(a.Atoms[:], remap) {
			angles = append(angles, a)
		}
	}
	T.angles = angles
	dihedrals := T.dihedrals[:0]
	for _, d := range T.dihedrals {
		if mapAtoms(d.Atoms[:], remap) {
			dihedrals = append(dihedrals, d)
		}
	}
	T.dihedrals = dihedrals
	for k := range T.extra {
		x := &T.extra[k]
		terms := x.terms[:0]
		for _, t := range x.terms {
			if mapAtoms(t[:x.def.Atoms], remap) {
				terms = append(terms, t)
			}
		}
		x.terms = terms
	}
}

// strip removes the atoms for which del is true, with all that refers
// to them: bonded terms, empty residues and molecules, exclusions.
func (T *Topology) strip(del []bool) error {
	n := len(T.atoms)
	if len(del) != n {
		return fmt.Errorf("parm: selection of %d atoms for a topology with %d", len(del), n)
	}
	remap := make([]int, n)
	k := 0
	for i := range remap {
		if del[i] {
			remap[i] = -1
			continue
		}
		remap[i] = k
		k++
	}
	if k == 0 {
		return inconsistent(sAtomName, -1, "can't remove all the atoms")
	}
	if k == n {
		return nil
	}
	atoms := make([]Atom, 0, k)
	for i, a := range T.atoms {
		if remap[i] >= 0 {
			a.Index = remap[i]
			atoms = append(atoms, a)
		}
	}
	resmap := make([]int, len(T.residues))
	var residues []Residue
	for ri, r := range T.residues {
		start, cnt := -1, 0
		for j := r.Start; j < r.End; j++ {
			if remap[j] >= 0 {
				if start < 0 {
					start = remap[j]
				}
				cnt++
			}
		}
		if cnt == 0 {
			resmap[ri] = -1
			continue
		}
		resmap[ri] = len(residues)
		r.Index, r.Start, r.End = len(residues), start, start+cnt
		residues = append(residues, r)
	}
	for i := range atoms {
		atoms[i].Residue = resmap[atoms[i].Residue]
	}
	excl := make([][]int, 0, k)
	for i, e := range T.excl {
		if remap[i] < 0 {
			continue
		}
		var ne []int
		for _, j := range e {
			if remap[j] >= 0 {
				ne = append(ne, remap[j])
			}
		}
		excl = append(excl, ne)
	}
	for ai := range T.arrays {
		a := &T.arrays[ai]
		if err := a.strip(remap); err != nil {
			return err
		}
	}
	if T.molecules != nil {
		T.stripMolecules(remap, resmap)
	}
	T.renumberTerms(remap)
	T.atoms, T.residues, T.excl = atoms, residues, excl
	return nil
}

// stripMolecules updates the molecule sizes and the solvent pointers
// after a deletion.
func (T *Topology) stripMolecules(remap, resmap []int) {
	var mols []int
	start, firstSolvent := 0, -1
	for mi, m := range T.molecules {
		cnt := 0
		for j := start; j < start+m && j < len(remap); j++ {
			if remap[j] >= 0 {
				cnt++
			}
		}
		start += m
		if cnt == 0 {
			continue
		}
		if mi >= T.solvent[2]-1 && firstSolvent < 0 {
			firstSolvent = len(mols)
		}
		mols = append(mols, cnt)
	}
	if firstSolvent < 0 {
		firstSolvent = len(mols)
	}
	solute := 0
	for ri, v := range resmap {
		if v >= 0 && ri < T.solvent[0] {
			solute++
		}
	}
	T.molecules = mols
	T.solvent = []int{solute, len(mols), firstSolvent + 1}
}

func (a *atomArray) strip(remap []int) error {
	w := a.def.Stride
	keep := func(i int) bool { return remap[i/w] >= 0 }
	switch a.data.Kind {
	case fortfmt.Int:
		var v []int
		for i, x := range a.data.Ints {
			if !keep(i) {
				continue
			}
			if a.def.AtomIndex {
				if remap[x-1] < 0 {
					return inconsistent(a.def.Section, remap[i/w], "atom %d refers to a removed atom", i/w+1)
				}
				x = remap[x-1] + 1
			}
			v = append(v, x)
		}
		a.data.Ints = v
	case fortfmt.Float:
		var v []float64
		for i, x := range a.data.Floats {
			if keep(i) {
				v = append(v, x)
			}
		}
		a.data.Floats = v
	case fortfmt.String:
		var v []string
		for i, x := range a.data.Strings {
			if keep(i) {
				v = append(v, x)
			}
		}
		a.data.Strings = v
	}
	return nil
}

// insert adds n zero-valued atoms at position p, after the existing
// atom indexes have been renumbered. Atom index arrays point the new
// atoms to themselves.
func (a *atomArray) insert(remap []int, p, n int) {
	w := a.def.Stride
	switch a.data.Kind {
	case fortfmt.Int:
		if a.def.AtomIndex {
			for i, x := range a.data.Ints {
				a.data.Ints[i] = remap[x-1] + 1
			}
		}
		v := make([]int, n*w)
		if a.def.AtomIndex {
			for k := range v {
				v[k] = p + k/w + 1
			}
		}
		a.data.Ints = slices.Insert(a.data.Ints, p*w, v...)
	case fortfmt.Float:
		a.data.Floats = slices.Insert(a.data.Floats, p*w, make([]float64, n*w)...)
	case fortfmt.String:
		a.data.Strings = slices.Insert(a.data.Strings, p*w, make([]string, n*w)...)
	}
}

// insertAtoms inserts atoms at position p, in residue r, renumbering
// everything after them. Molecules are not updated.
func (T *Topology) insertAtoms(p, r int, atoms []Atom) error {
	n := len(atoms)
	remap := make([]int, len(T.atoms))
	for i := range remap {
		remap[i] = i
		if i >= p {
			remap[i] += n
		}
	}
	for k := range atoms {
		a := &atoms[k]
		if err := checkName(sAtomName, a.Name); err != nil {
			return err
		}
		if err := checkName(sAmberType, a.Type); err != nil {
			return err
		}
		a.Index = p + k
		a.Residue = r
	}
	T.renumberTerms(remap)
	for i, e := range T.excl {
		for j := range e {
			T.excl[i][j] = remap[e[j]]
		}
	}
	T.excl = slices.Insert(T.excl, p, make([][]int, n)...)
	for ai := range T.arrays {
		T.arrays[ai].insert(remap, p, n)
	}
	T.atoms = slices.Insert(T.atoms, p, atoms...)
	for i := p + n; i < len(T.atoms); i++ {
		T.atoms[i].Index = i
	}
	for ri := range T.residues {
		R := &T.residues[ri]
		switch {
		case ri == r:
			R.End += n
		case R.Start >= p:
			R.Start += n
			R.End += n
		}
	}
	return nil
}

// AddAtom adds the atom a at the end of residue r, and returns its
// index. The Index and Residue fields of a are ignored. The new atom
// joins the molecule of the atom before it, and has no bonded terms
// or exclusions.
func (T *Topology) AddAtom(a Atom, r int) (int, error) {
	var idx int
	err := T.commit(func(c *Topology) error {
		if err := c.residueRange(r); err != nil {
			return err
		}
		idx = c.residues[r].End
		if err := c.insertAtoms(idx, r, []Atom{a}); err != nil {
			return err
		}
		if c.molecules != nil {
			m := c.moleculeOf(max(idx-1, 0))
			c.molecules[m]++
		}
		return nil
	})
	return idx, err
}

// moleculeOf returns the molecule atom i belongs to, counting by the
// atoms per molecule.
func (T *Topology) moleculeOf(i int) int {
	start := 0
	for m, n := range T.molecules {
		if i < start+n {
			return m
		}
		start += n
	}
	return len(T.molecules) - 1
}

// AddResidue inserts the residue r, with the given atoms, so that it
// becomes residue at (0 <= at <= NResidues()). Only the Name, Chain and
// Number of r are used. If the residue starts where a molecule does, it
// becomes a new molecule, otherwise it joins the molecule it is
// inserted in.
func (T *Topology) AddResidue(r Residue, atoms []Atom, at int) error {
	if len(atoms) == 0 {
		return fmt.Errorf("parm: residue %s has no atoms", r.Name)
	}
	return T.commit(func(c *Topology) error {
		if at < 0 || at > len(c.residues) {
			return fmt.Errorf("parm: residue position %d out of range (%d residues)", at, len(c.residues))
		}
		if err := checkName(sResLabel, r.Name); err != nil {
			return err
		}
		p := len(c.atoms)
		if at < len(c.residues) {
			p = c.residues[at].Start
		}
		r.Index, r.Start, r.End = at, p, p
		c.residues = slices.Insert(c.residues, at, r)
		for ri := at + 1; ri < len(c.residues); ri++ {
			c.residues[ri].Index = ri
		}
		for i := range c.atoms {
			if c.atoms[i].Residue >= at {
				c.atoms[i].Residue++
			}
		}
		if err := c.insertAtoms(p, at, slices.Clone(atoms)); err != nil {
			return err
		}
		if c.molecules == nil {
			return nil
		}
		if at <= c.solvent[0] {
			c.solvent[0]++
		}
		start := 0
		for m, n := range c.molecules {
			if start == p {
				c.molecules = slices.Insert(c.molecules, m, len(atoms))
				if m < c.solvent[2] {
					c.solvent[2]++
				}
				c.solvent[1] = len(c.molecules)
				return nil
			}
			if p < start+n {
				c.molecules[m] += len(atoms)
				return nil
			}
			start += n
		}
		c.molecules = append(c.molecules, len(atoms))
		c.solvent[1] = len(c.molecules)
		return nil
	})
}

// RemoveAtom removes atom i, with all the terms that involve it.
func (T *Topology) RemoveAtom(i int) error {
	return T.RemoveAtoms([]int{i})
}

// RemoveAtoms removes the given atoms, with all the terms that involve
// them. Residues and molecules left empty are removed too.
func (T *Topology) RemoveAtoms(atoms []int) error {
	del := make([]bool, len(T.atoms))
	for _, v := range atoms {
		if err := T.atomRange(v); err != nil {
			return err
		}
		del[v] = true
	}
	return T.Strip(del)
}

// Strip removes the atoms for which sel is true, as RemoveAtoms does.
func (T *Topology) Strip(sel []bool) error {
	return T.commit(func(c *Topology) error {
		return c.strip(sel)
	})
}

// RemoveResidue removes residue r and its atoms.
func (T *Topology) RemoveResidue(r int) error {
	if err := T.residueRange(r); err != nil {
		return err
	}
	del := make([]bool, len(T.atoms))
	for i := T.residues[r].Start; i < T.residues[r].End; i++ {
		del[i] = true
	}
	return T.Strip(del)
}

// Subset returns a new topology with only the atoms for which sel is
// true. T is not changed.
func (T *Topology) Subset(sel []bool) (*Topology, error) {
	if len(sel) != len(T.atoms) {
		return nil, fmt.Errorf("parm: selection of %d atoms for a topology with %d", len(sel), len(T.atoms))
	}
	del := make([]bool, len(sel))
	for i, v := range sel {
		del[i] = !v
	}
	S := T.Clone()
	if err := S.Strip(del); err != nil {
		return nil, err
	}
	return S, nil
}

func withH(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return -1
	}
	return 1
}

func (T *Topology) hasHydrogen(atoms []int) bool {
	for _, v := range atoms {
		if T.isHydrogen(v) {
			return true
		}
	}
	return false
}

func (T *Topology) checkNewTerm(atoms []int) error {
	for k, v := range atoms {
		if err := T.atomRange(v); err != nil {
			return err
		}
		if slices.Contains(atoms[:k], v) {
			return fmt.Errorf("parm: atom %d appears twice in the term", v)
		}
	}
	return nil
}

// AddBond adds a bond between atoms i and j with parameters typ.
// Exclusions are not updated, see RebuildExclusions.
func (T *Topology) AddBond(i, j, typ int) error {
	return T.commit(func(c *Topology) error {
		if err := c.checkNewTerm([]int{i, j}); err != nil {
			return err
		}
		for _, b := range c.bonds {
			if b.Atoms == [2]int{i, j} || b.Atoms == [2]int{j, i} {
				return fmt.Errorf("parm: atoms %d and %d are already bonded", i, j)
			}
		}
		c.bonds = append(c.bonds, Bond{Atoms: [2]int{i, j}, Type: typ, WithH: c.hasHydrogen([]int{i, j})})
		slices.SortStableFunc(c.bonds, func(a, b Bond) int { return withH(a.WithH, b.WithH) })
		return nil
	})
}

// AddAngle adds an angle i-j-k, with j as the vertex.
func (T *Topology) AddAngle(i, j, k, typ int) error {
	return T.commit(func(c *Topology) error {
		atoms := []int{i, j, k}
		if err := c.checkNewTerm(atoms); err != nil {
			return err
		}
		c.angles = append(c.angles, Angle{Atoms: [3]int{i, j, k}, Type: typ, WithH: c.hasHydrogen(atoms)})
		slices.SortStableFunc(c.angles, func(a, b Angle) int { return withH(a.WithH, b.WithH) })
		return nil
	})
}

// AddDihedral adds the dihedral d. Its WithH field is set from its atoms.
func (T *Topology) AddDihedral(d Dihedral) error {
	return T.commit(func(c *Topology) error {
		if err := c.checkNewTerm(d.Atoms[:]); err != nil {
			return err
		}
		d.WithH = c.hasHydrogen(d.Atoms[:])
		c.dihedrals = append(c.dihedrals, d)
		slices.SortStableFunc(c.dihedrals, func(a, b Dihedral) int { return withH(a.WithH, b.WithH) })
		return nil
	})
}

// RemoveBond removes the bond n, as indexed in Bonds().
func (T *Topology) RemoveBond(n int) error {
	return T.commit(func(c *Topology) error {
		if n < 0 || n >= len(c.bonds) {
			return fmt.Errorf("parm: bond %d out of range (%d bonds)", n, len(c.bonds))
		}
		c.bonds = slices.Delete(c.bonds, n, n+1)
		return nil
	})
}

// RemoveAngle removes the angle n, as indexed in Angles().
func (T *Topology) RemoveAngle(n int) error {
	return T.commit(func(c *Topology) error {
		if n < 0 || n >= len(c.angles) {
			return fmt.Errorf("parm: angle %d out of range (%d angles)", n, len(c.angles))
		}
		c.angles = slices.Delete(c.angles, n, n+1)
		return nil
	})
}

// RemoveDihedral removes the dihedral n, as indexed in Dihedrals().
func (T *Topology) RemoveDihedral(n int) error {
	return T.commit(func(c *Topology) error {
		if n < 0 || n >= len(c.dihedrals) {
			return fmt.Errorf("parm: dihedral %d out of range (%d dihedrals)", n, len(c.dihedrals))
		}
		c.dihedrals = slices.Delete(c.dihedrals, n, n+1)
		return nil
	})
}

// AddBondType adds a set of bond parameters and returns its index.
func (T *Topology) AddBondType(p BondType) (int, error) {
	n := len(T.bondTypes)
	return n, T.commit(func(c *Topology) error {
		c.bondTypes = append(c.bondTypes, p)
		return nil
	})
}

// AddAngleType adds a set of angle parameters and returns its index.
func (T *Topology) AddAngleType(p AngleType) (int, error) {
	n := len(T.angTypes)
	return n, T.commit(func(c *Topology) error {
		c.angTypes = append(c.angTypes, p)
		return nil
	})
}

// AddDihedralType adds a set of dihedral parameters and returns its index.
func (T *Topology) AddDihedralType(p DihedralType) (int, error) {
	n := len(T.dihTypes)
	return n, T.commit(func(c *Topology) error {
		c.dihTypes = append(c.dihTypes, p)
		return nil
	})
}

// SetBondType replaces the bond parameters t. All the bonds that
// use them are affected.
func (T *Topology) SetBondType(t int, p BondType) error {
	return T.commit(func(c *Topology) error {
		if t < 0 || t >= len(c.bondTypes) {
			return fmt.Errorf("parm: bond type %d out of range", t)
		}
		c.bondTypes[t] = p
		return nil
	})
}

// SetAngleType replaces the angle parameters t.
func (T *Topology) SetAngleType(t int, p AngleType) error {
	return T.commit(func(c *Topology) error {
		if t < 0 || t >= len(c.angTypes) {
			return fmt.Errorf("parm: angle type %d out of range", t)
		}
		c.angTypes[t] = p
		return nil
	})
}

// SetDihedralType replaces the dihedral parameters t.
func (T *Topology) SetDihedralType(t int, p DihedralType) error {
	return T.commit(func(c *Topology) error {
		if t < 0 || t >= len(c.dihTypes) {
			return fmt.Errorf("parm: dihedral type %d out of range", t)
		}
		c.dihTypes[t] = p
		return nil
	})
}

// SetLJPair sets the Lennard-Jones coefficients between the atom types
// ti and tj, or the 10-12 coefficients if the pair uses them.
func (T *Topology) SetLJPair(ti, tj int, a, b float64) error {
	return T.commit(func(c *Topology) error {
		p, err := c.LJ(ti, tj)
		if err != nil {
			return err
		}
		idx := c.nb.Index[ti*c.nb.NTypes+tj]
		if p.HBond {
			c.nb.HBondA[-idx-1], c.nb.HBondB[-idx-1] = a, b
			return nil
		}
		c.nb.ACoef[idx-1], c.nb.BCoef[idx-1] = a, b
		return nil
	})
}

// SetCharge sets the charge of atom i, in electrons.
func (T *Topology) SetCharge(i int, q float64) error {
	return T.commit(func(c *Topology) error {
		if err := c.atomRange(i); err != nil {
			return err
		}
		c.atoms[i].Charge = q
		return nil
	})
}

// SetAtomName sets the name of atom i (at most 4 characters).
func (T *Topology) SetAtomName(i int, name string) error {
	return T.commit(func(c *Topology) error {
		if err := c.atomRange(i); err != nil {
			return err
		}
		if err := checkName(sAtomName, name); err != nil {
			return err
		}
		c.atoms[i].Name = name
		return nil
	})
}

// SetAtomType sets the force field type name of atom i (at most 4 characters).
func (T *Topology) SetAtomType(i int, typ string) error {
	return T.commit(func(c *Topology) error {
		if err := c.atomRange(i); err != nil {
			return err
		}
		if err := checkName(sAmberType, typ); err != nil {
			return err
		}
		c.atoms[i].Type = typ
		return nil
	})
}

// SetResidueName sets the label of residue r (at most 4 characters).
func (T *Topology) SetResidueName(r int, name string) error {
	return T.commit(func(c *Topology) error {
		if err := c.residueRange(r); err != nil {
			return err
		}
		if err := checkName(sResLabel, name); err != nil {
			return err
		}
		c.residues[r].Name = name
		return nil
	})
}

// SetTitle replaces the title of the topology.
func (T *Topology) SetTitle(title string) error {
	return T.commit(func(c *Topology) error {
		name := c.dialect.Title
		if name == "" {
			return fmt.Errorf("parm: the %s dialect has no title section", c.dialect.Name)
		}
		title = strings.TrimRight(title, " ")
		var chunks []string
		for s := title; s != ""; {
			n := min(4, len(s))
			chunks = append(chunks, s[:n])
			s = s[n:]
		}
		if err := c.tab.Set(name, fortfmt.Strings(chunks), fortfmt.NameFormat); err != nil {
			return err
		}
		c.title = title
		return nil
	})
}

// SetBox sets the periodic box, as a, b, c (a rectangular box) or
// a, b, c, alpha, beta, gamma. A nil box makes the system non-periodic.
// Giving a box to a non-periodic system also records its molecules,
// which requires each molecule to span contiguous atoms.
func (T *Topology) SetBox(box []float64) error {
	return T.commit(func(c *Topology) error {
		switch len(box) {
		case 0:
			c.box = nil
			c.pointers[IFBOX] = 0
			c.tab.Remove(sBox)
			c.caps &^= Box
			return nil
		case 3:
			box = append(slices.Clone(box), 90, 90, 90)
		case 6:
			box = slices.Clone(box)
		default:
			return fmt.Errorf("parm: a box needs 3 or 6 values, not %d", len(box))
		}
		for _, v := range box {
			if v <= 0 {
				return fmt.Errorf("parm: invalid box %v", box)
			}
		}
		if c.solvent == nil {
			sizes, ok := c.contiguousMolecules()
			if !ok {
				return inconsistent(sAtomsPerMol, -1, "molecules are not contiguous, can't make the system periodic")
			}
			c.molecules = sizes
			c.solvent = []int{len(c.residues), len(sizes), len(sizes) + 1}
		}
		c.box = box
		c.pointers[IFBOX] = boxKind(box)
		c.caps |= Box
		return nil
	})
}

// RebuildExclusions replaces the exclusion lists with the 1-2, 1-3 and
// 1-4 pairs derived from the bonds.
func (T *Topology) RebuildExclusions() error {
	return T.commit(func(c *Topology) error {
		c.excl = c.DerivedExclusions()
		return nil
	})
}
