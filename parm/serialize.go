/*
 * serialize.go, part of goParm.
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
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

// Relative and absolute tolerance for floating-point comparisons
// between a topology and its sections.
const tolerance = 1e-10

// sectionValue is the content of one section, as derived from the
// topology model. If create is false the section is only written when
// it already exists.
type sectionValue struct {
	name   string
	data   fortfmt.Array
	create bool
}

// ToSectionTable returns the sections of the topology. For a topology
// that has not been changed since it was built, it is a copy of the table
// it was built from. Otherwise, the sections whose values changed are
// re-encoded, while the rest, and the sections the topology doesn't
// interpret, keep their original text.
func (T *Topology) ToSectionTable() (*SectionTable, error) {
	tab := T.tab.Copy()
	if !T.mutated {
		return tab, nil
	}
	for _, v := range T.sectionData() {
		S, err := tab.Get(v.name)
		if err != nil {
			if !v.create {
				continue
			}
		} else if arraysEqual(S.Data, v.data) {
			continue
		}
		if err := tab.Set(v.name, v.data, nil); err != nil {
			return nil, err
		}
	}
	return tab, nil
}

// sectionData returns the sections the topology model interprets,
// with the values implied by the model.
func (T *Topology) sectionData() []sectionValue {
	natom := len(T.atoms)
	ints := func(n int, f func(i int) int) fortfmt.Array {
		v := make([]int, n)
		for i := range v {
			v[i] = f(i)
		}
		return fortfmt.Ints(v)
	}
	flts := func(n int, f func(i int) float64) fortfmt.Array {
		v := make([]float64, n)
		for i := range v {
			v[i] = f(i)
		}
		return fortfmt.Floats(v)
	}
	strs := func(n int, f func(i int) string) fortfmt.Array {
		v := make([]string, n)
		for i := range v {
			v[i] = f(i)
		}
		return fortfmt.Strings(v)
	}
	at := T.atoms
	res := T.residues
	ret := []sectionValue{
		{sPointers, fortfmt.Ints(slices.Clone(T.pointers)), true},
		{sAtomName, strs(natom, func(i int) string { return at[i].Name }), true},
		{sCharge, flts(natom, func(i int) float64 { return at[i].Charge * ChargeScale }), false},
		{sAtomicNumber, ints(natom, func(i int) int { return at[i].AtomicNumber }), false},
		{sMass, flts(natom, func(i int) float64 { return at[i].Mass }), true},
		{sTypeIndex, ints(natom, func(i int) int { return at[i].TypeIndex + 1 }), true},
		{sAmberType, strs(natom, func(i int) string { return at[i].Type }), false},
		{sTreeChain, strs(natom, func(i int) string { return at[i].TreeChain }), false},
		{sJoin, ints(natom, func(i int) int { return at[i].Join }), false},
		{sIRotat, ints(natom, func(i int) int { return at[i].IRotat }), false},
		{sRadii, flts(natom, func(i int) float64 { return at[i].Radius }), false},
		{sScreen, flts(natom, func(i int) float64 { return at[i].Screen }), false},
		{sPolarizability, flts(natom, func(i int) float64 { return at[i].Polarizability }), false},
		{sResLabel, strs(len(res), func(i int) string { return res[i].Name }), true},
		{sResPointer, ints(len(res), func(i int) int { return res[i].Start + 1 }), true},
		{sChainID, strs(len(res), func(i int) string { return res[i].Chain }), false},
		{sResNumber, ints(len(res), func(i int) int { return res[i].Number }), false},
	}
	bt, agt, dt := T.bondTypes, T.angTypes, T.dihTypes
	ret = append(ret,
		sectionValue{sBondK, flts(len(bt), func(i int) float64 { return bt[i].K }), len(bt) > 0},
		sectionValue{sBondEq, flts(len(bt), func(i int) float64 { return bt[i].Eq }), len(bt) > 0},
		sectionValue{sAngleK, flts(len(agt), func(i int) float64 { return agt[i].K }), len(agt) > 0},
		sectionValue{sAngleEq, flts(len(agt), func(i int) float64 { return agt[i].Eq }), len(agt) > 0},
		sectionValue{sDihK, flts(len(dt), func(i int) float64 { return dt[i].K }), len(dt) > 0},
		sectionValue{sDihPer, flts(len(dt), func(i int) float64 { return dt[i].Periodicity }), len(dt) > 0},
		sectionValue{sDihPhase, flts(len(dt), func(i int) float64 { return dt[i].Phase }), len(dt) > 0},
		sectionValue{sSCEE, flts(len(dt), func(i int) float64 { return dt[i].SCEE }), false},
		sectionValue{sSCNB, flts(len(dt), func(i int) float64 { return dt[i].SCNB }), false},
	)
	nb := T.nb
	ret = append(ret,
		sectionValue{sNBIndex, fortfmt.Ints(slices.Clone(nb.Index)), len(nb.Index) > 0},
		sectionValue{sLJA, fortfmt.Floats(slices.Clone(nb.ACoef)), len(nb.ACoef) > 0},
		sectionValue{sLJB, fortfmt.Floats(slices.Clone(nb.BCoef)), len(nb.BCoef) > 0},
		sectionValue{sHBA, fortfmt.Floats(slices.Clone(nb.HBondA)), len(nb.HBondA) > 0},
		sectionValue{sHBB, fortfmt.Floats(slices.Clone(nb.HBondB)), len(nb.HBondB) > 0},
		sectionValue{sHBCut, fortfmt.Floats(slices.Clone(nb.HBCut)), false},
		sectionValue{sSolty, fortfmt.Floats(slices.Clone(nb.Solty)), false},
		sectionValue{sLJ14A, fortfmt.Floats(slices.Clone(nb.ACoef14)), false},
		sectionValue{sLJ14B, fortfmt.Floats(slices.Clone(nb.BCoef14)), false},
	)
	var bh, bn, ah, an, dh, dn []int
	for _, b := range T.bonds {
		t := []int{3 * b.Atoms[0], 3 * b.Atoms[1], b.Type + 1}
		if b.WithH {
			bh = append(bh, t...)
		} else {
			bn = append(bn, t...)
		}
	}
	for _, a := range T.angles {
		t := []int{3 * a.Atoms[0], 3 * a.Atoms[1], 3 * a.Atoms[2], a.Type + 1}
		if a.WithH {
			ah = append(ah, t...)
		} else {
			an = append(an, t...)
		}
	}
	for _, d := range T.dihedrals {
		t := []int{3 * d.Atoms[0], 3 * d.Atoms[1], 3 * d.Atoms[2], 3 * d.Atoms[3], d.Type + 1}
		if d.Ignore14 {
			t[2] = -t[2]
		}
		if d.Improper {
			t[3] = -t[3]
		}
		if d.WithH {
			dh = append(dh, t...)
		} else {
			dn = append(dn, t...)
		}
	}
	ret = append(ret,
		sectionValue{sBondsH, fortfmt.Ints(bh), len(bh) > 0},
		sectionValue{sBonds, fortfmt.Ints(bn), len(bn) > 0},
		sectionValue{sAnglesH, fortfmt.Ints(ah), len(ah) > 0},
		sectionValue{sAngles, fortfmt.Ints(an), len(an) > 0},
		sectionValue{sDihedralsH, fortfmt.Ints(dh), len(dh) > 0},
		sectionValue{sDihedrals, fortfmt.Ints(dn), len(dn) > 0},
	)
	nexcl := make([]int, natom)
	var excl []int
	for i, e := range T.excl {
		if len(e) == 0 {
			nexcl[i] = 1
			excl = append(excl, 0)
			continue
		}
		nexcl[i] = len(e)
		for _, j := range e {
			excl = append(excl, j+1)
		}
	}
	ret = append(ret,
		sectionValue{sNExcluded, fortfmt.Ints(nexcl), true},
		sectionValue{sExclList, fortfmt.Ints(excl), true},
	)
	if T.solvent != nil {
		ret = append(ret,
			sectionValue{sSolventPtr, fortfmt.Ints(slices.Clone(T.solvent)), true},
			sectionValue{sAtomsPerMol, fortfmt.Ints(slices.Clone(T.molecules)), true},
		)
	}
	if T.box != nil {
		ret = append(ret, sectionValue{sBox, fortfmt.Floats([]float64{T.box[4], T.box[0], T.box[1], T.box[2]}), true})
	}
	for _, x := range T.extra {
		v := make([]int, 0, len(x.terms)*x.def.Stride)
		for _, t := range x.terms {
			for j, a := range t {
				if j < x.def.Atoms {
					a = pick(x.def.Encoding == "three", 3*a, a+1)
				}
				v = append(v, a)
			}
		}
		ret = append(ret, sectionValue{x.def.Section, fortfmt.Ints(v), false})
		if x.def.CountSection == "" {
			continue
		}
		if c, err := T.tab.Ints(x.def.CountSection); err == nil && x.def.CountIndex < len(c) {
			c = slices.Clone(c)
			c[x.def.CountIndex] = len(x.terms)
			ret = append(ret, sectionValue{x.def.CountSection, fortfmt.Ints(c), false})
		}
	}
	for _, a := range T.arrays {
		ret = append(ret, sectionValue{a.def.Section, a.data.Copy(), false})
		if a.def.CountSection == "" {
			continue
		}
		if c, err := T.tab.Ints(a.def.CountSection); err == nil && a.def.CountIndex < len(c) {
			c = slices.Clone(c)
			c[a.def.CountIndex] = natom
			ret = append(ret, sectionValue{a.def.CountSection, fortfmt.Ints(c), false})
		}
	}
	return ret
}

// arraysEqual compares two arrays, floating-point ones within tolerance.
func arraysEqual(a, b fortfmt.Array) bool {
	if a.Kind != b.Kind {
		return false
	}
	if a.Kind != fortfmt.Float {
		return a.Equal(b)
	}
	return len(a.Floats) == len(b.Floats) && floats.EqualFunc(a.Floats, b.Floats, func(x, y float64) bool {
		return scalar.EqualWithinAbsOrRel(x, y, tolerance, tolerance)
	})
}

// Equal returns true if both topologies have the same dialect, title and
// contents, comparing floating-point values within a small tolerance.
// Sections the topologies don't interpret are not compared.
func Equal(a, b *Topology) bool {
	if a.dialect.Name != b.dialect.Name || a.title != b.title || a.caps != b.caps {
		return false
	}
	da, db := a.sectionData(), b.sectionData()
	if len(da) != len(db) {
		return false
	}
	for i, v := range da {
		if v.name != db[i].name || !arraysEqual(v.data, db[i].data) {
			return false
		}
	}
	return true
}
