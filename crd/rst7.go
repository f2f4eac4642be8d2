/*
 * rst7.go, part of goParm.
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

package crd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rmera/goparm/fortfmt"
	v3 "github.com/rmera/goparm/v3"
)

var rst7Format = fortfmt.MustParse("(6F12.7)")

// Restart holds the contents of an inpcrd/restart file.
type Restart struct {
	Title   string
	NAtoms  int
	Time    float64
	HasTime bool
	Coords  *v3.Matrix
	Vel     *v3.Matrix //nil if the file has no velocities
	Box     []float64  //a, b, c, alpha, beta, gamma; nil if the file has no box
}

// ReadRst7File opens and reads the restart file name.
func ReadRst7File(name string) (*Restart, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, Error{UnableToOpen, name, []string{"os.Open", "ReadRst7File"}, true}
	}
	defer f.Close()
	R, err := ReadRst7(f)
	if e, ok := err.(Error); ok {
		e.filename = name
		e.deco = e.Decorate("ReadRst7File")
		return nil, e
	}
	return R, err
}

// ReadRst7 reads a restart file from r. Whether velocities and a box are
// present is deduced from the lines after the coordinates: as many lines as
// the coordinates are velocities, one more than that are velocities and a
// box, and a single line is a box. With 1 or 2 atoms the velocities also
// fit in one line; such a line is read as velocities if it has 3*NAtoms
// values, and as a box otherwise.
func ReadRst7(r io.Reader) (*Restart, error) {
	var lines []string
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 4096), 1<<20)
	for s.Scan() {
		lines = append(lines, strings.TrimRight(s.Text(), "\r"))
	}
	if err := s.Err(); err != nil {
		return nil, Error{err.Error(), "", []string{"bufio.Scanner", "ReadRst7"}, true}
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) < 2 {
		return nil, Error{"file too short", "", []string{"ReadRst7"}, true}
	}
	R := &Restart{Title: strings.TrimRight(lines[0], " ")}
	head := strings.Fields(lines[1])
	if len(head) == 0 {
		return nil, Error{"missing atom count", "", []string{"ReadRst7"}, true}
	}
	var err error
	R.NAtoms, err = strconv.Atoi(head[0])
	if err != nil || R.NAtoms <= 0 {
		return nil, Error{fmt.Sprintf("invalid atom count %q", head[0]), "", []string{"strconv.Atoi", "ReadRst7"}, true}
	}
	if len(head) > 1 {
		R.Time, err = strconv.ParseFloat(head[1], 64)
		if err != nil {
			return nil, Error{fmt.Sprintf("invalid time %q", head[1]), "", []string{"strconv.ParseFloat", "ReadRst7"}, true}
		}
		R.HasTime = true
	}
	data := lines[2:]
	n3 := 3 * R.NAtoms
	nl := rst7Format.Lines(n3)
	if len(data) < nl {
		return nil, Error{fmt.Sprintf("expected %d coordinate lines, found %d", nl, len(data)), "", []string{"ReadRst7"}, true}
	}
	R.Coords, err = rst7Block(data[:nl], n3)
	if err != nil {
		return nil, err
	}
	rest := data[nl:]
	switch {
	case len(rest) == 0:
	case len(rest) == nl+1:
		R.Vel, err = rst7Block(rest[:nl], n3)
		if err == nil {
			R.Box, err = rst7Box(rest[nl])
		}
	case len(rest) == nl && (nl > 1 || rst7Values(rest[0]) == n3):
		R.Vel, err = rst7Block(rest, n3)
	case len(rest) == 1:
		R.Box, err = rst7Box(rest[0])
	default:
		err = Error{fmt.Sprintf("%d unexpected lines after the coordinates", len(rest)), "", []string{"ReadRst7"}, true}
	}
	if err != nil {
		return nil, err
	}
	return R, nil
}

func rst7Block(lines []string, n3 int) (*v3.Matrix, error) {
	A, err := rst7Format.DecodeLines(lines)
	if err != nil {
		return nil, Error{err.Error(), "", []string{"fortfmt.DecodeLines", "rst7Block"}, true}
	}
	if len(A.Floats) != n3 {
		return nil, Error{fmt.Sprintf("expected %d values, found %d", n3, len(A.Floats)), "", []string{"rst7Block"}, true}
	}
	return v3.NewMatrix(A.Floats)
}

// rst7Values returns the number of values in line, or -1 if it can't be
// decoded.
func rst7Values(line string) int {
	A, err := rst7Format.DecodeLines([]string{line})
	if err != nil {
		return -1
	}
	return len(A.Floats)
}

// rst7Box reads the box line. Files that only give the lengths get
// right angles. Angles must be in (0,180].
func rst7Box(line string) ([]float64, error) {
	A, err := rst7Format.DecodeLines([]string{line})
	if err != nil {
		return nil, Error{err.Error(), "", []string{"fortfmt.DecodeLines", "rst7Box"}, true}
	}
	switch len(A.Floats) {
	case 3:
		return append(A.Floats, 90, 90, 90), nil
	case 6:
		for _, v := range A.Floats[3:] {
			if v <= 0 || v > 180 {
				return nil, Error{fmt.Sprintf("invalid box angle %g", v), "", []string{"rst7Box"}, true}
			}
		}
		return A.Floats, nil
	}
	return nil, Error{fmt.Sprintf("box line has %d values", len(A.Floats)), "", []string{"rst7Box"}, true}
}
