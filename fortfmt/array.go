/*
 * array.go, part of goParm.
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

package fortfmt

import "slices"

// Array holds the decoded values of a record. Only the slice matching
// Kind is used.
type Array struct {
	Kind    Kind
	Ints    []int
	Floats  []float64
	Strings []string
	Lines   []string //for Raw arrays, the text lines as read, without line jumps
}

// Ints returns an integer Array holding v (not a copy).
func Ints(v []int) Array {
	return Array{Kind: Int, Ints: v}
}

// Floats returns a floating-point Array holding v (not a copy).
func Floats(v []float64) Array {
	return Array{Kind: Float, Floats: v}
}

// Strings returns a string Array holding v (not a copy).
func Strings(v []string) Array {
	return Array{Kind: String, Strings: v}
}

// RawLines returns a Raw Array holding the lines l (not a copy).
func RawLines(l []string) Array {
	return Array{Kind: Raw, Lines: l}
}

// Len returns the number of values in the array. For Raw arrays,
// the number of lines.
func (A Array) Len() int {
	switch A.Kind {
	case Int:
		return len(A.Ints)
	case Float:
		return len(A.Floats)
	case String:
		return len(A.Strings)
	}
	return len(A.Lines)
}

// Copy returns a deep copy of the array.
func (A Array) Copy() Array {
	return Array{
		Kind:    A.Kind,
		Ints:    slices.Clone(A.Ints),
		Floats:  slices.Clone(A.Floats),
		Strings: slices.Clone(A.Strings),
		Lines:   slices.Clone(A.Lines),
	}
}

// Equal returns true if both arrays are of the same kind and hold
// exactly the same values.
func (A Array) Equal(B Array) bool {
	if A.Kind != B.Kind {
		return false
	}
	switch A.Kind {
	case Int:
		return slices.Equal(A.Ints, B.Ints)
	case Float:
		return slices.Equal(A.Floats, B.Floats)
	case String:
		return slices.Equal(A.Strings, B.Strings)
	}
	return slices.Equal(A.Lines, B.Lines)
}
