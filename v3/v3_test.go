/*
 * v3_test.go, part of goParm.
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

import (
	"fmt"
	"math"
	"testing"
)

func TestSomeVecs(Te *testing.T) {
	a := []float64{1.0, 2.0, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18}
	A, err := NewMatrix(a)
	if err != nil {
		Te.Fatal(err)
	}
	B := Zeros(3)
	cind := []int{1, 3, 5}
	if err = B.SomeVecsSafe(A, cind); err != nil {
		Te.Error(err)
	}
	if B.At(2, 0) != 16 || B.At(0, 2) != 6 {
		Te.Errorf("wrong vectors copied %v", B)
	}
	B.Set(1, 1, 55)
	A.SetVecs(B, cind)
	if A.At(3, 1) != 55 {
		Te.Errorf("SetVecs didn't change A: %v", A)
	}
	fmt.Println(A, "\n", B)
	if err = Zeros(2).SomeVecsSafe(A, cind); err == nil {
		Te.Error("SomeVecsSafe should fail on a mismatched receiver")
	}
	if err = B.SomeVecsSafe(A, []int{0, 1, 7}); err == nil {
		Te.Error("SomeVecsSafe should fail on an out of range index")
	}
}

func TestNewMatrix(Te *testing.T) {
	if _, err := NewMatrix([]float64{1, 2}); err == nil {
		Te.Error("a 2-element slice can't be an Nx3 matrix")
	}
	A, _ := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	V := A.VecView(1)
	V.Set(0, 0, 100)
	if A.At(1, 0) != 100 {
		Te.Error("a view should share its data with the matrix")
	}
	if v := A.Vec(0); v[2] != 3 {
		Te.Errorf("unexpected vector %v", v)
	}
}

func TestDelVecSubset(Te *testing.T) {
	A, _ := NewMatrix([]float64{0, 0, 0, 1, 1, 1, 2, 2, 2, 3, 3, 3})
	B := Zeros(3)
	B.DelVec(A, 1)
	if B.At(1, 0) != 2 || B.At(2, 0) != 3 {
		Te.Errorf("unexpected result of DelVec %v", B)
	}
	S := A.Subset([]bool{true, false, false, true})
	if S.NVecs() != 2 || S.At(1, 1) != 3 {
		Te.Errorf("unexpected subset %v", S)
	}
	W := A.View(1, 2)
	if W.NVecs() != 2 || W.At(0, 0) != 1 {
		Te.Errorf("unexpected view %v", W)
	}
}

func TestWithin(Te *testing.T) {
	A, _ := NewMatrix([]float64{
		0, 0, 0,
		1, 0, 0,
		0, 2.5, 0,
		10, 10, 10,
	})
	if d := A.Dist(0, 2); math.Abs(d-2.5) > 1e-12 {
		Te.Errorf("distance should be 2.5, got %f", d)
	}
	ref := []bool{true, false, false, false}
	near := A.Within(ref, 2.5, false)
	exp := []bool{true, true, true, false}
	far := A.Within(ref, 2.5, true)
	for i := range exp {
		if near[i] != exp[i] || far[i] == exp[i] {
			Te.Errorf("atom %d: within %v, beyond %v", i, near[i], far[i])
		}
	}
	none := A.Within(make([]bool, 4), 100, false)
	for i, v := range none {
		if v {
			Te.Errorf("nothing can be close to an empty reference, atom %d", i)
		}
	}
}
