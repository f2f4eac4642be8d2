/*
 * traj.go, part of goParm.
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
	"strings"

	"github.com/rmera/goparm/fortfmt"
	v3 "github.com/rmera/goparm/v3"
)

var mdcrdFormat = fortfmt.MustParse("(10F8.3)")

// Traj is an mdcrd trajectory open for reading.
type Traj struct {
	natoms   int
	box      bool
	readable bool
	filename string
	Title    string
	crd      *bufio.Reader
	closer   io.Closer
}

// OpenTraj opens the mdcrd file name. natoms is the number of atoms per
// frame, box indicates whether each frame is followed by a line with the
// box lengths.
func OpenTraj(name string, natoms int, box bool) (*Traj, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, Error{UnableToOpen, name, []string{"os.Open", "OpenTraj"}, true}
	}
	C, err := NewTraj(f, natoms, box)
	if err != nil {
		f.Close()
		if e, ok := err.(Error); ok {
			e.filename = name
			e.deco = e.Decorate("OpenTraj")
			return nil, e
		}
		return nil, err
	}
	C.filename = name
	C.closer = f
	return C, nil
}

// NewTraj reads an mdcrd trajectory from r.
func NewTraj(r io.Reader, natoms int, box bool) (*Traj, error) {
	if natoms <= 0 {
		return nil, Error{fmt.Sprintf("invalid number of atoms %d", natoms), "", []string{"NewTraj"}, true}
	}
	C := &Traj{natoms: natoms, box: box}
	C.crd = bufio.NewReader(r)
	title, err := C.crd.ReadString('\n') //The first line is just a comment
	if err != nil {
		return nil, Error{"can't read title: " + err.Error(), "", []string{"NewTraj"}, true}
	}
	C.Title = strings.TrimRight(title, "\r\n ")
	C.readable = true
	return C, nil
}

// Readable returns true if the object is ready to be read from
// false otherwise. It doesnt guarantee that there is something
// to read.
func (C *Traj) Readable() bool {
	return C.readable
}

// Len returns the number of atoms per frame.
func (C *Traj) Len() int {
	return C.natoms
}

// Close closes the underlying file, if Traj was created with OpenTraj.
func (C *Traj) Close() error {
	C.readable = false
	if C.closer == nil {
		return nil
	}
	return C.closer.Close()
}

// Next reads the next frame. If keep is not nil, the coordinates are put in it,
// otherwise the frame is discarded. If a box slice with at least 3 elements is
// given and the trajectory has boxes, the box lengths are put in it. After the
// last frame, Next returns an error implementing LastFrameError.
func (C *Traj) Next(keep *v3.Matrix, box ...[]float64) error {
	if !C.readable {
		return Error{TrajUnIni, C.filename, []string{"Next"}, true}
	}
	if keep != nil && keep.NVecs() != C.natoms {
		return Error{fmt.Sprintf("matrix has %d vectors, trajectory has %d atoms", keep.NVecs(), C.natoms), C.filename, []string{"Next"}, true}
	}
	n3 := 3 * C.natoms
	nl := mdcrdFormat.Lines(n3)
	lines := make([]string, 0, nl)
	for len(lines) < nl {
		l, err := C.crd.ReadString('\n')
		if err != nil && (err != io.EOF || l == "") {
			C.readable = false
			if err == io.EOF && len(lines) == 0 {
				return newlastFrameError(C.filename, "Next")
			}
			return Error{"truncated frame", C.filename, []string{"Next"}, true}
		}
		l = strings.TrimRight(l, "\r\n")
		if len(lines) == 0 && strings.TrimSpace(l) == "" {
			continue
		}
		lines = append(lines, l)
	}
	A, err := mdcrdFormat.DecodeLines(lines)
	if err != nil {
		return Error{err.Error(), C.filename, []string{"fortfmt.DecodeLines", "Next"}, true}
	}
	if len(A.Floats) != n3 {
		return Error{fmt.Sprintf("%s: %d values in a frame of %d atoms", WrongFormat, len(A.Floats), C.natoms), C.filename, []string{"Next"}, true}
	}
	if keep != nil {
		for i := 0; i < C.natoms; i++ {
			keep.SetRow(i, A.Floats[3*i:3*i+3])
		}
	}
	if C.box {
		return C.nextBox(box...)
	}
	return nil
}

func (C *Traj) nextBox(box ...[]float64) error {
	l, err := C.crd.ReadString('\n')
	if err != nil && (err != io.EOF || l == "") {
		C.readable = false
		return Error{"missing box line", C.filename, []string{"nextBox", "Next"}, true}
	}
	A, err := mdcrdFormat.DecodeLines([]string{strings.TrimRight(l, "\r\n")})
	if err != nil || len(A.Floats) < 3 {
		return Error{WrongFormat + " (box line)", C.filename, []string{"nextBox", "Next"}, true}
	}
	if len(box) > 0 && len(box[0]) >= 3 {
		copy(box[0], A.Floats[:3])
	}
	return nil
}
