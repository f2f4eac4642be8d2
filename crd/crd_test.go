/*
 * crd_test.go, part of goParm.
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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	v3 "github.com/rmera/goparm/v3"
)

// fixed writes vals with the given width and precision, perline values per line.
func fixed(vals []float64, width, prec, perline int) string {
	var b strings.Builder
	for i, v := range vals {
		b.WriteString(fmt.Sprintf("%*.*f", width, prec, v))
		if (i+1)%perline == 0 || i == len(vals)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

var threeAtoms = []float64{1, 2, 3, -4.5, 5.25, -6, 7, 8, 9.125}

func TestRst7Coords(Te *testing.T) {
	file := "test restart\n    3\n" + fixed(threeAtoms, 12, 7, 6)
	R, err := ReadRst7(strings.NewReader(file))
	if err != nil {
		Te.Fatal(err)
	}
	if R.NAtoms != 3 || R.HasTime || R.Vel != nil || R.Box != nil {
		Te.Errorf("unexpected restart %+v", R)
	}
	if R.Coords.At(1, 1) != 5.25 || R.Coords.At(2, 2) != 9.125 {
		Te.Errorf("wrong coordinates %v", R.Coords)
	}
	if R.Title != "test restart" {
		Te.Errorf("wrong title %q", R.Title)
	}
}

func TestRst7VelBox(Te *testing.T) {
	vel := []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9}
	box := []float64{30, 31.5, 32, 90, 90, 90}
	file := "with everything\n    3  0.1000000E+02\n" + fixed(threeAtoms, 12, 7, 6) + fixed(vel, 12, 7, 6) + fixed(box, 12, 7, 6)
	R, err := ReadRst7(strings.NewReader(file))
	if err != nil {
		Te.Fatal(err)
	}
	if !R.HasTime || R.Time != 10 {
		Te.Errorf("wrong time %v %v", R.HasTime, R.Time)
	}
	if R.Vel == nil || R.Vel.At(2, 0) != 0.7 {
		Te.Errorf("wrong velocities %v", R.Vel)
	}
	if len(R.Box) != 6 || R.Box[1] != 31.5 {
		Te.Errorf("wrong box %v", R.Box)
	}
	//only a box
	file = "box only\n    3\n" + fixed(threeAtoms, 12, 7, 6) + fixed(box[:3], 12, 7, 6)
	R, err = ReadRst7(strings.NewReader(file))
	if err != nil {
		Te.Fatal(err)
	}
	if R.Vel != nil || len(R.Box) != 6 || R.Box[5] != 90 {
		Te.Errorf("wrong box %v", R.Box)
	}
}

// With 1 or 2 atoms a velocity block and a box line are both one line
// long.
func TestRst7FewAtoms(Te *testing.T) {
	box := []float64{30, 31.5, 32, 90, 90, 90}
	two := []float64{1, 2, 3, 4, 5, 6}
	vel2 := []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6}
	R, err := ReadRst7(strings.NewReader("two atoms\n    2\n" + fixed(two, 12, 7, 6) + fixed(vel2, 12, 7, 6)))
	if err != nil {
		Te.Fatal(err)
	}
	if R.Box != nil || R.Vel == nil || R.Vel.At(1, 2) != 0.6 {
		Te.Errorf("2 atoms, velocities only: Vel=%v Box=%v", R.Vel, R.Box)
	}
	R, err = ReadRst7(strings.NewReader("two atoms\n    2\n" + fixed(two, 12, 7, 6) + fixed(vel2, 12, 7, 6) + fixed(box, 12, 7, 6)))
	if err != nil {
		Te.Fatal(err)
	}
	if R.Vel == nil || R.Vel.At(0, 0) != 0.1 || len(R.Box) != 6 || R.Box[2] != 32 {
		Te.Errorf("2 atoms, velocities and box: Vel=%v Box=%v", R.Vel, R.Box)
	}
	R, err = ReadRst7(strings.NewReader("one atom\n    1\n" + fixed(two[:3], 12, 7, 6) + fixed(vel2[:3], 12, 7, 6)))
	if err != nil {
		Te.Fatal(err)
	}
	if R.Box != nil || R.Vel == nil || R.Vel.At(0, 1) != 0.2 {
		Te.Errorf("1 atom, velocities only: Vel=%v Box=%v", R.Vel, R.Box)
	}
	R, err = ReadRst7(strings.NewReader("one atom\n    1\n" + fixed(two[:3], 12, 7, 6) + fixed(box, 12, 7, 6)))
	if err != nil {
		Te.Fatal(err)
	}
	if R.Vel != nil || len(R.Box) != 6 || R.Box[1] != 31.5 {
		Te.Errorf("1 atom, box only: Vel=%v Box=%v", R.Vel, R.Box)
	}
	bad := []float64{30, 30, 30, 90, 0, 90}
	if _, err = ReadRst7(strings.NewReader("one atom\n    1\n" + fixed(two[:3], 12, 7, 6) + fixed(bad, 12, 7, 6))); err == nil {
		Te.Error("box with a zero angle accepted")
	}
}

func TestFileErrorContext(Te *testing.T) {
	dir := Te.TempDir()
	name := filepath.Join(dir, "short.rst7")
	if err := os.WriteFile(name, []byte("title only\n"), 0644); err != nil {
		Te.Fatal(err)
	}
	_, err := ReadRst7File(name)
	var e Error
	if !errors.As(err, &e) || e.FileName() != name || !slices.Contains(e.Decorate(""), "ReadRst7File") {
		Te.Errorf("ReadRst7File lost the error context: %v %v", err, e.Decorate(""))
	}
	empty := filepath.Join(dir, "empty.mdcrd")
	if err := os.WriteFile(empty, nil, 0644); err != nil {
		Te.Fatal(err)
	}
	_, err = OpenTraj(empty, 3, false)
	if !errors.As(err, &e) || e.FileName() != empty || !slices.Contains(e.Decorate(""), "OpenTraj") {
		Te.Errorf("OpenTraj lost the error context: %v %v", err, e.Decorate(""))
	}
}

func TestRst7Bad(Te *testing.T) {
	bad := []string{
		"title only\n",
		"bad count\n   x\n",
		"short\n    4\n" + fixed(threeAtoms, 12, 7, 6),
		"too many lines\n    3\n" + fixed(threeAtoms, 12, 7, 6) + "\n" + fixed(threeAtoms, 12, 7, 6) + fixed(threeAtoms, 12, 7, 6),
	}
	for _, v := range bad {
		_, err := ReadRst7(strings.NewReader(v))
		var e Error
		if !errors.As(err, &e) {
			Te.Errorf("%q should fail with a crd.Error, got %v", strings.SplitN(v, "\n", 2)[0], err)
		}
	}
}

func TestTraj(Te *testing.T) {
	frame1 := threeAtoms
	frame2 := make([]float64, len(frame1))
	for i, v := range frame1 {
		frame2[i] = v + 1
	}
	file := "a trajectory\n" + fixed(frame1, 8, 3, 10) + fixed([]float64{20, 21, 22}, 8, 3, 10) +
		fixed(frame2, 8, 3, 10) + fixed([]float64{20.5, 21, 22}, 8, 3, 10)
	traj, err := NewTraj(strings.NewReader(file), 3, true)
	if err != nil {
		Te.Fatal(err)
	}
	coords := v3.Zeros(traj.Len())
	box := make([]float64, 3)
	frames := 0
	for {
		err := traj.Next(coords, box)
		if err != nil {
			var last LastFrameError
			if errors.As(err, &last) {
				break
			}
			Te.Fatal(err)
		}
		frames++
		fmt.Println(coords, box)
	}
	if frames != 2 {
		Te.Errorf("read %d frames, expected 2", frames)
	}
	if coords.At(0, 0) != 2 || box[0] != 20.5 {
		Te.Errorf("last frame wrong: %v %v", coords, box)
	}
	if traj.Readable() {
		Te.Error("a finished trajectory can't be readable")
	}
}

func TestTrajTruncated(Te *testing.T) {
	//The values run into each other when they fill the field.
	file := "bad\n" + "-100.000-200.000\n"
	traj, err := NewTraj(strings.NewReader(file), 3, false)
	if err != nil {
		Te.Fatal(err)
	}
	err = traj.Next(nil)
	var last LastFrameError
	if err == nil || errors.As(err, &last) {
		Te.Errorf("a truncated frame is an error, got %v", err)
	}
}
