/*
 * check.go, part of goParm.
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
	"github.com/rmera/goparm/fortfmt"
)

// validate checks every cross reference in the topology and returns
// an *InconsistentTopologyError for the first problem found.
func (T *Topology) validate() error {
	natom := len(T.atoms)
	if natom == 0 {
		return inconsistent(sPointers, NATOM, "topology without atoms")
	}
	if err := T.CheckPointers(); err != nil {
		return err
	}
	if err := T.checkResidues(); err != nil {
		return err
	}
	for i, a := range T.atoms {
		if a.Index != i {
			return inconsistent(sAtomName, i, "atom has index %d", a.Index)
		}
		if a.TypeIndex < 0 || a.TypeIndex >= max(T.nb.NTypes, 1) {
			return inconsistent(sTypeIndex, i, "atom type %d out of range (%d types)", a.TypeIndex+1, T.nb.NTypes)
		}
	}
	for i, b := range T.bonds {
		if err := T.checkTerm(pick(b.WithH, sBondsH, sBonds), i, b.Atoms[:], b.Type, len(T.bondTypes)); err != nil {
			return err
		}
	}
	for i, a := range T.angles {
		if err := T.checkTerm(pick(a.WithH, sAnglesH, sAngles), i, a.Atoms[:], a.Type, len(T.angTypes)); err != nil {
			return err
		}
	}
	for i, d := range T.dihedrals {
		if err := T.checkTerm(pick(d.WithH, sDihedralsH, sDihedrals), i, d.Atoms[:], d.Type, len(T.dihTypes)); err != nil {
			return err
		}
	}
	if err := T.checkNonbonded(); err != nil {
		return err
	}
	if len(T.excl) != natom {
		return inconsistent(sNExcluded, -1, "%d exclusion lists for %d atoms", len(T.excl), natom)
	}
	for i, e := range T.excl {
		for _, j := range e {
			if j < 0 || j >= natom || j == i {
				return inconsistent(sExclList, i, "invalid excluded atom %d", j+1)
			}
		}
	}
	if err := T.checkExtra(); err != nil {
		return err
	}
	if T.molecules != nil {
		sum := 0
		for i, v := range T.molecules {
			if v <= 0 {
				return inconsistent(sAtomsPerMol, i, "molecule with %d atoms", v)
			}
			sum += v
		}
		if sum != natom {
			return inconsistent(sAtomsPerMol, -1, "molecules add up to %d atoms, the topology has %d", sum, natom)
		}
		if len(T.solvent) != 3 || T.solvent[1] != len(T.molecules) {
			return inconsistent(sSolventPtr, 1, "NSPM doesn't match the %d molecules", len(T.molecules))
		}
	}
	if T.box != nil && len(T.box) != 6 {
		return inconsistent(sBox, -1, "box with %d values", len(T.box))
	}
	return nil
}

func (T *Topology) checkResidues() error {
	next := 0
	for i, r := range T.residues {
		if r.Index != i || r.Start != next || r.End <= r.Start {
			return inconsistent(sResPointer, i, "residue %s (atoms %d to %d) is empty or not contiguous", r.Name, r.Start+1, r.End)
		}
		for j := r.Start; j < r.End && j < len(T.atoms); j++ {
			if T.atoms[j].Residue != i {
				return inconsistent(sResPointer, i, "atom %d is in residue %d", j+1, T.atoms[j].Residue+1)
			}
		}
		next = r.End
	}
	if next != len(T.atoms) {
		return inconsistent(sResPointer, len(T.residues)-1, "residues end at atom %d, the topology has %d", next, len(T.atoms))
	}
	return nil
}

// checkTerm checks that the atoms of a term are distinct and in
// range, and that its type exists.
func (T *Topology) checkTerm(name string, i int, atoms []int, typ, ntypes int) error {
	for k, a := range atoms {
		if a < 0 || a >= len(T.atoms) {
			return inconsistent(name, i, "atom %d out of range", a+1)
		}
		for _, b := range atoms[:k] {
			if a == b {
				return inconsistent(name, i, "atom %d appears twice", a+1)
			}
		}
	}
	if typ < 0 || typ >= ntypes {
		return inconsistent(name, i, "parameter index %d out of range (%d sets)", typ+1, ntypes)
	}
	return nil
}

func (T *Topology) checkNonbonded() error {
	nb := &T.nb
	n := nb.NTypes
	if len(nb.Index) != n*n {
		return inconsistent(sNBIndex, -1, "%d values for %d atom types", len(nb.Index), n)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := nb.Index[i*n+j]
			if v != nb.Index[j*n+i] {
				return inconsistent(sNBIndex, i*n+j, "not symmetric for types %d and %d", i+1, j+1)
			}
			if v == 0 || v > len(nb.ACoef) || -v > len(nb.HBondA) {
				return inconsistent(sNBIndex, i*n+j, "invalid index %d", v)
			}
		}
	}
	if len(nb.BCoef) != len(nb.ACoef) || len(nb.HBondB) != len(nb.HBondA) {
		return inconsistent(sLJB, -1, "A and B coefficient tables of different size")
	}
	return nil
}

func (T *Topology) checkExtra() error {
	natom := len(T.atoms)
	for _, x := range T.extra {
		ntypes := -1
		if x.def.TypeCountSection != "" && x.def.Stride > x.def.Atoms {
			if c, err := T.tab.Ints(x.def.TypeCountSection); err == nil && x.def.TypeCountIndex < len(c) {
				ntypes = c[x.def.TypeCountIndex]
			}
		}
		for i, t := range x.terms {
			if len(t) != x.def.Stride {
				return inconsistent(x.def.Section, i, "term with %d values", len(t))
			}
			for _, a := range t[:x.def.Atoms] {
				if a < 0 || a >= natom {
					return inconsistent(x.def.Section, i, "atom %d out of range", a+1)
				}
			}
			if ntypes >= 0 && (t[x.def.Atoms] < 1 || t[x.def.Atoms] > ntypes) {
				return inconsistent(x.def.Section, i, "parameter index %d out of range (%d sets)", t[x.def.Atoms], ntypes)
			}
		}
	}
	for _, a := range T.arrays {
		if a.data.Len() != natom*a.def.Stride {
			return inconsistent(a.def.Section, -1, "%d values for %d atoms", a.data.Len(), natom)
		}
		if a.def.AtomIndex && a.data.Kind == fortfmt.Int {
			for i, v := range a.data.Ints {
				if v < 1 || v > natom {
					return inconsistent(a.def.Section, i, "atom %d out of range", v)
				}
			}
		}
	}
	return nil
}
