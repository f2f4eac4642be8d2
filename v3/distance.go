/*
 * distance.go, part of goParm.
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

package v3

import "gonum.org/v1/gonum/floats"

// Dist returns the euclidean distance between the ith and the jth vectors of F.
func (F *Matrix) Dist(i, j int) float64 {
	return floats.Distance(F.RawRowView(i), F.RawRowView(j), 2)
}

// Within returns, for each vector of F, whether it lies at a distance
// smaller than or equal to cutoff from any vector of F for which ref is true.
// If far is true, the comparison is inverted: a vector is marked when it is
// farther than cutoff from every reference vector. Panics if ref doesn't
// have one element per vector of F.
func (F *Matrix) Within(ref []bool, cutoff float64, far bool) []bool {
	n := F.NVecs()
	if len(ref) != n {
		panic(ErrShape)
	}
	refs := make([]int, 0, n)
	for i, v := range ref {
		if v {
			refs = append(refs, i)
		}
	}
	ret := make([]bool, n)
	c2 := cutoff * cutoff
	for i := 0; i < n; i++ {
		a := F.RawRowView(i)
		near := false
		for _, j := range refs {
			if distSq(a, F.RawRowView(j)) <= c2 {
				near = true
				break
			}
		}
		ret[i] = near != far
	}
	return ret
}

func distSq(a, b []float64) float64 {
	x, y, z := a[0]-b[0], a[1]-b[1], a[2]-b[2]
	return x*x + y*y + z*z
}
