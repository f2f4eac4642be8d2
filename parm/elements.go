/*
 * elements.go, part of goParm.
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
	"math"
	"strings"

	"github.com/rmera/goparm/fortfmt"
)

type element struct {
	symbol string
	number int
	mass   float64
}

// Just the elements usually found in biomolecular topologies.
var elements = []element{
	{"H", 1, 1.008},
	{"He", 2, 4.003},
	{"Li", 3, 6.94},
	{"Be", 4, 9.012},
	{"B", 5, 10.81},
	{"C", 6, 12.01},
	{"N", 7, 14.01},
	{"O", 8, 16.00},
	{"F", 9, 18.998},
	{"Ne", 10, 20.18},
	{"Na", 11, 22.99},
	{"Mg", 12, 24.30},
	{"Al", 13, 26.98},
	{"Si", 14, 28.08},
	{"P", 15, 30.97},
	{"S", 16, 32.06},
	{"Cl", 17, 35.45},
	{"Ar", 18, 39.95},
	{"K", 19, 39.10},
	{"Ca", 20, 40.08},
	{"Cr", 24, 51.996},
	{"Mn", 25, 54.94},
	{"Fe", 26, 55.84},
	{"Co", 27, 58.93},
	{"Ni", 28, 58.69},
	{"Cu", 29, 63.55},
	{"Zn", 30, 65.38},
	{"Se", 34, 78.96},
	{"Br", 35, 79.904},
	{"Rb", 37, 85.47},
	{"Sr", 38, 87.62},
	{"Cd", 48, 112.41},
	{"I", 53, 126.90},
	{"Cs", 55, 132.91},
	{"Ba", 56, 137.33},
	{"Hg", 80, 200.59},
}

// Symbol returns the element symbol for the atomic number z,
// or "EP" for extra points (z < 1) and "X" for unknown elements.
func Symbol(z int) string {
	if z < 1 {
		return "EP"
	}
	for _, v := range elements {
		if v.number == z {
			return v.symbol
		}
	}
	return "X"
}

// AtomicNumberOf returns the atomic number for an element symbol,
// case-insensitive, or -1 if the symbol is not known.
func AtomicNumberOf(symbol string) int {
	for _, v := range elements {
		if strings.EqualFold(v.symbol, symbol) {
			return v.number
		}
	}
	if strings.EqualFold(symbol, "EP") || strings.EqualFold(symbol, "LP") {
		return 0
	}
	return -1
}

// guessAtomicNumber returns the atomic number of the element with the
// mass closest to mass. Masses below 0.5 are extra points (0), and
// masses below 3.5 are hydrogens, repartitioned ones included.
func guessAtomicNumber(mass float64) int {
	if mass < 0.5 {
		return 0
	}
	if mass < 3.5 {
		return 1
	}
	best, diff := 0, math.Inf(1)
	for _, v := range elements {
		if d := math.Abs(v.mass - mass); d < diff {
			best, diff = v.number, d
		}
	}
	return best
}

// AtomicNumber returns the atomic number of atom i, from the topology if
// it records a positive one, or guessed from the mass otherwise.
func (T *Topology) AtomicNumber(i int) int {
	if z := T.atoms[i].AtomicNumber; z > 0 {
		return z
	}
	for _, v := range T.arrays {
		if v.def.Section == "AMOEBA_ATOMIC_NUMBER" && v.data.Kind == fortfmt.Int && v.data.Ints[i] > 0 {
			return v.data.Ints[i]
		}
	}
	return guessAtomicNumber(T.atoms[i].Mass)
}

// Element returns the element symbol of atom i, see AtomicNumber.
func (T *Topology) Element(i int) string {
	return Symbol(T.AtomicNumber(i))
}

// isHydrogen is used to sort bonded terms into the lists with and
// without hydrogen.
func (T *Topology) isHydrogen(i int) bool {
	return T.AtomicNumber(i) == 1
}

// isExtraPoint returns true for massless virtual sites.
func (T *Topology) isExtraPoint(i int) bool {
	a := T.atoms[i]
	t := strings.ToUpper(a.Type)
	return a.Mass < 0.5 || strings.HasPrefix(t, "EP") || strings.HasPrefix(t, "LP")
}
