/*
 * diff.go, part of goParm.
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

	"github.com/pmezard/go-difflib/difflib"
)

// Diff returns a unified diff between the files a and b would be
// written as. It is empty if they would be identical.
func Diff(a, b *Topology) (string, error) {
	var ba, bb bytes.Buffer
	if _, err := a.WriteTo(&ba); err != nil {
		return "", err
	}
	if _, err := b.WriteTo(&bb); err != nil {
		return "", err
	}
	return unified(ba.String(), bb.String(), "a", "b")
}

// RoundTripDiff reads and builds the topology in raw, writes it back,
// and returns the unified diff between raw and the result. An empty
// diff means the file is reproduced byte for byte.
func RoundTripDiff(raw []byte, dialects ...*DialectSet) (string, error) {
	T, err := ReadTopology(bytes.NewReader(raw), dialects...)
	if err != nil {
		return "", err
	}
	var out bytes.Buffer
	if _, err := T.WriteTo(&out); err != nil {
		return "", err
	}
	return unified(string(raw), out.String(), "read", "written")
}

func unified(a, b, aname, bname string) (string, error) {
	if a == b {
		return "", nil
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(a),
		B:        difflib.SplitLines(b),
		FromFile: aname,
		ToFile:   bname,
		Context:  2,
	})
}
