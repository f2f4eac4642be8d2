/*
 * build.go, part of goParm.
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
	"errors"
	"slices"
	"strings"

	"github.com/rmera/goparm/fortfmt"
)

// Build validates the section table tab and assembles a Topology from it.
// The dialect is detected with the given table, or with DefaultDialects.
// tab is not modified, and the Topology doesn't share memory with it.
func Build(tab *SectionTable, dialects ...*DialectSet) (T *Topology, err error) {
	defer func() {
		if err != nil {
			T = nil
		}
	}()
	defer qrecover(&err, "Build")
	ds := DefaultDialects()
	if len(dialects) > 0 && dialects[0] != nil {
		ds = dialects[0]
	}
	d, err := ds.Detect(tab.Version(), tab.Names())
	if err != nil {
		var u *UnrecognizedDialectError
		if errors.As(err, &u) && u.Closest != "" {
			return nil, &MissingSectionError{Section: u.Missing[0], Dialect: u.Closest}
		}
		return nil, err
	}
	b := &builder{tab: tab.Copy(), d: d}
	T = &Topology{tab: b.tab, dialect: d, caps: capabilitiesOf(b.tab)}
	b.pointers(T)
	b.atoms(T)
	b.residues(T)
	b.parameters(T)
	b.terms(T)
	b.exclusions(T)
	b.periodic(T)
	b.dialectData(T)
	if d.Title != "" {
		if S, ok := b.section(d.Title); ok {
			T.title = strings.TrimRight(strings.Join(S.body, ""), " ")
		}
	}
	qerr(T.validate())
	return T, nil
}

type builder struct {
	tab *SectionTable
	d   Dialect
}

func (b *builder) section(name string) (*Section, bool) {
	S, err := b.tab.Get(name)
	return S, err == nil
}

// get returns the section name after checking that it has n values of
// the kind k. An absent section is an error if n is not zero, unless
// optional is true, in which case get returns nil. A negative n skips
// the length check.
func (b *builder) get(name string, k fortfmt.Kind, n int, optional bool) *Section {
	S, ok := b.section(name)
	if !ok {
		if n == 0 || optional {
			return nil
		}
		qerr(&MissingSectionError{Section: name, Dialect: b.d.Name})
	}
	if S.Data.Kind != k {
		qerr(inconsistent(name, -1, "section holds %s data, %s expected", S.Data.Kind, k))
	}
	if n >= 0 {
		qerr(b.tab.Expect(name, n))
	}
	return S
}

func (b *builder) ints(name string, n int, optional bool) []int {
	if S := b.get(name, fortfmt.Int, n, optional); S != nil {
		return S.Data.Ints
	}
	return nil
}

func (b *builder) floats(name string, n int, optional bool) []float64 {
	if S := b.get(name, fortfmt.Float, n, optional); S != nil {
		return S.Data.Floats
	}
	return nil
}

func (b *builder) strs(name string, n int, optional bool) []string {
	if S := b.get(name, fortfmt.String, n, optional); S != nil {
		return S.Data.Strings
	}
	return nil
}

func (b *builder) pointers(T *Topology) {
	S := b.get(sPointers, fortfmt.Int, -1, true)
	if S == nil {
		qerr(&MissingSectionError{Section: sPointers, Dialect: b.d.Name})
	}
	p := S.Data.Ints
	if len(p) <= NUMEXTRA {
		qerr(&LengthMismatchError{Section: sPointers, Expected: NUMEXTRA + 1, Got: len(p)})
	}
	for i, v := range p {
		if v < 0 {
			qerr(inconsistent(sPointers, i, "negative value %d for %s", v, PointerName(i)))
		}
	}
	if p[NATOM] == 0 {
		qerr(inconsistent(sPointers, NATOM, "topology without atoms"))
	}
	T.pointers = append([]int(nil), p...)
}

// PointerName returns the name of the value i of the POINTERS section.
func PointerName(i int) string {
	if i < len(pointerNames) {
		return pointerNames[i]
	}
	return "(unnamed)"
}

func (b *builder) atoms(T *Topology) {
	n := T.pointers[NATOM]
	names := b.strs(sAtomName, n, false)
	charges := b.floats(sCharge, n, true)
	atnum := b.ints(sAtomicNumber, n, true)
	mass := b.floats(sMass, n, false)
	tindex := b.ints(sTypeIndex, n, false)
	types := b.strs(sAmberType, n, true)
	tree := b.strs(sTreeChain, n, true)
	join := b.ints(sJoin, n, true)
	irot := b.ints(sIRotat, n, true)
	radii := b.floats(sRadii, n, true)
	screen := b.floats(sScreen, n, true)
	pol := b.floats(sPolarizability, n, true)
	T.atoms = make([]Atom, n)
	for i := range T.atoms {
		a := &T.atoms[i]
		a.Index = i
		a.Name = names[i]
		a.Mass = mass[i]
		a.TypeIndex = tindex[i] - 1
		if charges != nil {
			a.Charge = charges[i] / ChargeScale
		}
		if atnum != nil {
			a.AtomicNumber = atnum[i]
		}
		if types != nil {
			a.Type = types[i]
		}
		if tree != nil {
			a.TreeChain = tree[i]
		}
		if join != nil {
			a.Join = join[i]
		}
		if irot != nil {
			a.IRotat = irot[i]
		}
		if radii != nil {
			a.Radius = radii[i]
		}
		if screen != nil {
			a.Screen = screen[i]
		}
		if pol != nil {
			a.Polarizability = pol[i]
		}
	}
}

func (b *builder) residues(T *Topology) {
	n := T.pointers[NRES]
	labels := b.strs(sResLabel, n, false)
	ptrs := b.ints(sResPointer, n, false)
	chains := b.strs(sChainID, n, true)
	numbers := b.ints(sResNumber, n, true)
	natom := len(T.atoms)
	if n == 0 {
		qerr(inconsistent(sResPointer, -1, "topology without residues"))
	}
	T.residues = make([]Residue, n)
	for i := range T.residues {
		r := &T.residues[i]
		r.Index = i
		r.Name = labels[i]
		r.Start = ptrs[i] - 1
		r.End = natom
		if i < n-1 {
			r.End = ptrs[i+1] - 1
		}
		if chains != nil {
			r.Chain = chains[i]
		}
		if numbers != nil {
			r.Number = numbers[i]
		}
		if r.Start < 0 || r.End > natom || r.End <= r.Start {
			qerr(inconsistent(sResPointer, i, "residue %s spans atoms %d to %d, out of order or out of range", r.Name, r.Start+1, r.End))
		}
		for j := r.Start; j < r.End; j++ {
			T.atoms[j].Residue = i
		}
	}
	if T.residues[0].Start != 0 {
		qerr(inconsistent(sResPointer, 0, "first residue starts at atom %d", T.residues[0].Start+1))
	}
}

func (b *builder) parameters(T *Topology) {
	p := T.pointers
	bk, beq := b.floats(sBondK, p[NUMBND], false), b.floats(sBondEq, p[NUMBND], false)
	T.bondTypes = make([]BondType, p[NUMBND])
	for i := range T.bondTypes {
		T.bondTypes[i] = BondType{K: bk[i], Eq: beq[i]}
	}
	ak, aeq := b.floats(sAngleK, p[NUMANG], false), b.floats(sAngleEq, p[NUMANG], false)
	T.angTypes = make([]AngleType, p[NUMANG])
	for i := range T.angTypes {
		T.angTypes[i] = AngleType{K: ak[i], Eq: aeq[i]}
	}
	dk, dper, dph := b.floats(sDihK, p[NPTRA], false), b.floats(sDihPer, p[NPTRA], false), b.floats(sDihPhase, p[NPTRA], false)
	scee, scnb := b.floats(sSCEE, p[NPTRA], true), b.floats(sSCNB, p[NPTRA], true)
	T.dihTypes = make([]DihedralType, p[NPTRA])
	for i := range T.dihTypes {
		d := &T.dihTypes[i]
		d.K, d.Periodicity, d.Phase = dk[i], dper[i], dph[i]
		if scee != nil {
			d.SCEE = scee[i]
		}
		if scnb != nil {
			d.SCNB = scnb[i]
		}
	}
	nt := p[NTYPES]
	npairs := nt * (nt + 1) / 2
	nb := &T.nb
	nb.NTypes = nt
	nb.Index = slices.Clone(b.ints(sNBIndex, nt*nt, false))
	nb.ACoef = slices.Clone(b.floats(sLJA, npairs, false))
	nb.BCoef = slices.Clone(b.floats(sLJB, npairs, false))
	nb.HBondA = slices.Clone(b.floats(sHBA, p[NPHB], false))
	nb.HBondB = slices.Clone(b.floats(sHBB, p[NPHB], false))
	nb.HBCut = slices.Clone(b.floats(sHBCut, p[NPHB], true))
	nb.Solty = slices.Clone(b.floats(sSolty, p[NATYP], true))
	nb.ACoef14 = slices.Clone(b.floats(sLJ14A, npairs, true))
	nb.BCoef14 = slices.Clone(b.floats(sLJ14B, npairs, true))
}

// atomFromFile converts a coordinate offset (3*index) to an atom index.
func atomFromFile(section string, term, v int) int {
	if v < 0 {
		v = -v
	}
	if v%3 != 0 {
		qerr(inconsistent(section, term, "atom offset %d is not a multiple of 3", v))
	}
	return v / 3
}

func (b *builder) terms(T *Topology) {
	p := T.pointers
	for _, h := range []bool{true, false} {
		name, n := sBonds, p[MBONA]
		if h {
			name, n = sBondsH, p[NBONH]
		}
		v := b.ints(name, 3*n, false)
		for i := 0; i < n; i++ {
			t := v[3*i : 3*i+3]
			if t[0] < 0 || t[1] < 0 {
				qerr(inconsistent(name, i, "negative atom offset"))
			}
			T.bonds = append(T.bonds, Bond{
				Atoms: [2]int{atomFromFile(name, i, t[0]), atomFromFile(name, i, t[1])},
				Type:  t[2] - 1,
				WithH: h,
			})
		}
	}
	for _, h := range []bool{true, false} {
		name, n := sAngles, p[MTHETA]
		if h {
			name, n = sAnglesH, p[NTHETH]
		}
		v := b.ints(name, 4*n, false)
		for i := 0; i < n; i++ {
			t := v[4*i : 4*i+4]
			if t[0] < 0 || t[1] < 0 || t[2] < 0 {
				qerr(inconsistent(name, i, "negative atom offset"))
			}
			T.angles = append(T.angles, Angle{
				Atoms: [3]int{atomFromFile(name, i, t[0]), atomFromFile(name, i, t[1]), atomFromFile(name, i, t[2])},
				Type:  t[3] - 1,
				WithH: h,
			})
		}
	}
	for _, h := range []bool{true, false} {
		name, n := sDihedrals, p[MPHIA]
		if h {
			name, n = sDihedralsH, p[NPHIH]
		}
		v := b.ints(name, 5*n, false)
		for i := 0; i < n; i++ {
			t := v[5*i : 5*i+5]
			if t[0] < 0 || t[1] < 0 {
				qerr(inconsistent(name, i, "negative offset in the first two atoms"))
			}
			T.dihedrals = append(T.dihedrals, Dihedral{
				Atoms: [4]int{atomFromFile(name, i, t[0]), atomFromFile(name, i, t[1]),
					atomFromFile(name, i, t[2]), atomFromFile(name, i, t[3])},
				Type:     t[4] - 1,
				WithH:    h,
				Ignore14: t[2] < 0,
				Improper: t[3] < 0,
			})
		}
	}
}

// exclusions reads the excluded atom lists. An atom without exclusions
// has one entry, a zero.
func (b *builder) exclusions(T *Topology) {
	natom := len(T.atoms)
	counts := b.ints(sNExcluded, natom, false)
	list := b.ints(sExclList, T.pointers[NNB], false)
	T.excl = make([][]int, natom)
	k := 0
	for i, c := range counts {
		if c < 0 || k+c > len(list) {
			qerr(inconsistent(sNExcluded, i, "exclusion counts add up to more than the %d entries of %s", len(list), sExclList))
		}
		for _, v := range list[k : k+c] {
			if v == 0 {
				continue
			}
			T.excl[i] = append(T.excl[i], v-1)
		}
		if len(T.excl[i]) > 0 && len(T.excl[i]) != c {
			qerr(inconsistent(sExclList, i, "zero mixed with excluded atoms"))
		}
		k += c
	}
	if k != len(list) {
		qerr(inconsistent(sNExcluded, -1, "exclusion counts add up to %d, %s has %d entries", k, sExclList, len(list)))
	}
}

func (b *builder) periodic(T *Topology) {
	p := T.pointers
	if p[IFBOX] > 0 {
		bd := b.floats(sBox, 4, false)
		T.box = []float64{bd[1], bd[2], bd[3], bd[0], bd[0], bd[0]}
	} else if bd := b.floats(sBox, 4, true); bd != nil {
		T.box = []float64{bd[1], bd[2], bd[3], bd[0], bd[0], bd[0]}
	}
	if sp := b.ints(sSolventPtr, 3, true); sp != nil {
		T.solvent = slices.Clone(sp)
		T.molecules = slices.Clone(b.ints(sAtomsPerMol, sp[1], false))
	}
}

func (b *builder) dialectData(T *Topology) {
	natom := len(T.atoms)
	for _, def := range b.d.TermLists {
		S, ok := b.section(def.Section)
		count := -1
		if def.CountSection != "" {
			c := b.ints(def.CountSection, -1, true)
			if c != nil {
				if def.CountIndex >= len(c) {
					qerr(&LengthMismatchError{Section: def.CountSection, Expected: def.CountIndex + 1, Got: len(c)})
				}
				count = c[def.CountIndex]
			}
		}
		if !ok {
			if count > 0 {
				qerr(&MissingSectionError{Section: def.Section, Dialect: b.d.Name})
			}
			continue
		}
		if S.Data.Kind != fortfmt.Int {
			qerr(inconsistent(def.Section, -1, "section holds %s data, integers expected", S.Data.Kind))
		}
		v := S.Data.Ints
		if len(v)%def.Stride != 0 || (count >= 0 && count*def.Stride != len(v)) {
			exp := count * def.Stride
			if count < 0 {
				exp = len(v) - len(v)%def.Stride
			}
			qerr(&LengthMismatchError{Section: def.Section, Expected: exp, Got: len(v)})
		}
		x := extraTerms{def: def}
		sc := def.scale()
		for i := 0; i < len(v); i += def.Stride {
			t := append([]int(nil), v[i:i+def.Stride]...)
			for j := 0; j < def.Atoms; j++ {
				idx := t[j] / sc
				if sc == 1 {
					idx--
				}
				if idx < 0 || t[j]%sc != 0 {
					qerr(inconsistent(def.Section, i/def.Stride, "invalid atom index %d", t[j]))
				}
				t[j] = idx
			}
			x.terms = append(x.terms, t)
		}
		T.extra = append(T.extra, x)
	}
	for _, def := range b.d.AtomArrays {
		S, ok := b.section(def.Section)
		if !ok {
			continue
		}
		if S.Data.Kind == fortfmt.Raw {
			qerr(inconsistent(def.Section, -1, "per-atom section with an uninterpreted format"))
		}
		qerr(b.tab.Expect(def.Section, natom*def.Stride))
		if def.CountSection != "" {
			if c := b.ints(def.CountSection, -1, true); c != nil && (def.CountIndex >= len(c) || c[def.CountIndex] != natom) {
				qerr(inconsistent(def.CountSection, -1, "doesn't match the number of atoms %d", natom))
			}
		}
		T.arrays = append(T.arrays, atomArray{def: def, data: S.Data.Copy()})
	}
}
