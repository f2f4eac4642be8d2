/*
 * load_test.go, part of goParm.
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
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/rmera/goparm/fortfmt"
)

func TestCompressed(Te *testing.T) {
	raw := readRaw(Te, "tri.prmtop")
	T := readTest(Te, "tri.prmtop")
	dir := Te.TempDir()
	for _, name := range []string{"tri.prmtop", "tri.prmtop.gz", "tri.prmtop.zst"} {
		name = filepath.Join(dir, name)
		if err := Save(T, name); err != nil {
			Te.Fatal(err)
		}
		written, err := os.ReadFile(name)
		if err != nil {
			Te.Fatal(err)
		}
		if compressed := !bytes.Equal(written, raw); compressed != (filepath.Ext(name) != ".prmtop") {
			Te.Errorf("%s: compressed %t", name, compressed)
		}
		f, err := Open(name)
		if err != nil {
			Te.Fatal(err)
		}
		back, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			Te.Fatal(err)
		}
		if !bytes.Equal(back, raw) {
			Te.Errorf("%s doesn't decompress to the original file", name)
		}
		L, _, err := Load(name)
		if err != nil {
			Te.Fatal(err)
		}
		if !Equal(T, L) {
			Te.Errorf("%s: loaded topology differs", name)
		}
		fmt.Println("Saved and loaded", filepath.Base(name))
	}
}

func TestLoadCoordinates(Te *testing.T) {
	T, coords, err := Load(filepath.Join("testdata", "tri.prmtop"), filepath.Join("testdata", "tri.rst7"))
	if err != nil {
		Te.Fatal(err)
	}
	if coords == nil || coords.NVecs() != 11 {
		Te.Fatal("coordinates not read")
	}
	if x := coords.At(1, 0); x != 1.5 {
		Te.Errorf("wrong coordinate %f", x)
	}
	if b := T.Box(); !slices.Equal(b, []float64{40, 40, 40, 90, 90, 90}) {
		Te.Errorf("box not taken from the coordinates: %v", b)
	}
	if _, _, err := Load(filepath.Join("testdata", "amoeba.prmtop"), filepath.Join("testdata", "tri.rst7")); err == nil {
		Te.Error("coordinates for a different number of atoms accepted")
	}
}

// A non-periodic topology whose molecules are not contiguous can't take
// the box of a restart file; the load keeps the topology without a box.
func TestLoadIgnoresBox(Te *testing.T) {
	tab := readTable(Te, "tri.prmtop")
	for _, name := range []string{"BOX_DIMENSIONS", "SOLVENT_POINTERS", "ATOMS_PER_MOLECULE"} {
		tab.Remove(name)
	}
	p, _ := tab.Ints("POINTERS")
	p = slices.Clone(p)
	p[IFBOX] = 0
	if err := tab.Set("POINTERS", fortfmt.Ints(p), nil); err != nil {
		Te.Fatal(err)
	}
	T, err := Build(tab)
	if err != nil {
		Te.Fatal(err)
	}
	//ACE gets bonded to the water and loses its bond to ALA.
	for n, b := range T.Bonds() {
		if b.Atoms == [2]int{2, 4} || b.Atoms == [2]int{4, 2} {
			if err := T.RemoveBond(n); err != nil {
				Te.Fatal(err)
			}
			break
		}
	}
	if err := T.AddBond(3, 8, 0); err != nil {
		Te.Fatal(err)
	}
	if err := T.SetBox([]float64{40, 40, 40}); err == nil {
		Te.Fatal("non-contiguous molecules made periodic")
	}
	name := filepath.Join(Te.TempDir(), "split.prmtop")
	if err := Save(T, name); err != nil {
		Te.Fatal(err)
	}
	L, coords, err := Load(name, filepath.Join("testdata", "tri.rst7"))
	if err != nil {
		Te.Fatal(err)
	}
	if coords == nil || coords.NVecs() != 11 {
		Te.Error("coordinates not read")
	}
	if L.Box() != nil || L.Has(Box) {
		Te.Errorf("box applied: %v", L.Box())
	}
}

const annotated = `
[[dialect]]
name = "annotated"
title = "TITLE"
markers = ["USER_NOTES"]
required = ["POINTERS", "ATOM_NAME", "MASS", "RESIDUE_POINTER"]

[[dialect]]
name = "plain"
title = "TITLE"
required = ["POINTERS", "ATOM_NAME", "MASS", "RESIDUE_POINTER"]
`

func TestDialectTable(Te *testing.T) {
	D, err := ReadDialects(strings.NewReader(annotated))
	if err != nil {
		Te.Fatal(err)
	}
	T, err := ReadTopology(bytes.NewReader(readRaw(Te, "tri.prmtop")), D)
	if err != nil {
		Te.Fatal(err)
	}
	if T.Dialect().Name != "annotated" {
		Te.Errorf("dialect with more markers not chosen: %s", T.Dialect().Name)
	}
	A, err := ReadTopology(bytes.NewReader(readRaw(Te, "amoeba.prmtop")), D)
	if err != nil {
		Te.Fatal(err)
	}
	if A.Dialect().Name != "plain" {
		Te.Errorf("wrong dialect %s", A.Dialect().Name)
	}
	for _, bad := range []string{
		"",
		"[[dialect]]\nname = \"x\"\n[[dialect]]\nname = \"x\"\n",
		"[[dialect]]\nname = \"x\"\n[[dialect.term_list]]\nsection = \"S\"\natoms = 2\nstride = 1\nencoding = \"one\"\n",
		"[[dialect]\n",
	} {
		if _, err := ReadDialects(strings.NewReader(bad)); err == nil {
			Te.Errorf("invalid dialect table accepted: %q", bad)
		}
	}
	if _, ok := DefaultDialects().Get("chamber"); !ok {
		Te.Error("chamber dialect not compiled in")
	}
}

func TestDiff(Te *testing.T) {
	a := readTest(Te, "tri.prmtop")
	b := readTest(Te, "tri.prmtop")
	if d, err := Diff(a, b); err != nil || d != "" {
		Te.Fatalf("identical topologies differ: %v\n%s", err, d)
	}
	if err := b.SetResidueName(1, "GLY"); err != nil {
		Te.Fatal(err)
	}
	d, err := Diff(a, b)
	if err != nil {
		Te.Fatal(err)
	}
	if !strings.Contains(d, "-ACE ALA WAT") || !strings.Contains(d, "+ACE GLY WAT") {
		Te.Errorf("wrong diff:\n%s", d)
	}
	fmt.Print(d)
}
