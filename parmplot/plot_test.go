/*
 * plot_test.go, part of goParm.
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

package parmplot

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/rmera/goparm/parm"
)

func TestResidueCharges(Te *testing.T) {
	T, _, err := parm.Load(filepath.Join("..", "parm", "testdata", "tri.prmtop"))
	if err != nil {
		Te.Fatal(err)
	}
	q := Charges(T)
	if len(q) != 3 {
		Te.Fatalf("%d residue charges, expected 3", len(q))
	}
	sum := 0.0
	for _, v := range q {
		sum += v
	}
	if math.Abs(sum-T.TotalCharge()) > 1e-9 {
		Te.Errorf("residue charges add to %f, total charge is %f", sum, T.TotalCharge())
	}
	if l := labels(T); l[0] != "ACE1" || l[2] != "WAT3" {
		Te.Errorf("wrong labels %v", l)
	}
	name := filepath.Join(Te.TempDir(), "charges.png")
	if err := SaveResidueCharges(T, name); err != nil {
		Te.Fatal(err)
	}
	if st, err := os.Stat(name); err != nil || st.Size() == 0 {
		Te.Errorf("plot not written: %v", err)
	}
	fmt.Println("Residue charges", q)
}
