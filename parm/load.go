/*
 * load.go, part of goParm.
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
	"fmt"
	"io"
	"log"

	"github.com/rmera/goparm/crd"
	v3 "github.com/rmera/goparm/v3"
	"gonum.org/v1/gonum/floats"
)

// ReadTopology reads and builds a topology from r, which must not be
// compressed. The dialect is detected with the given table, or with
// DefaultDialects.
func ReadTopology(r io.Reader, dialects ...*DialectSet) (*Topology, error) {
	tab, err := ReadSections(r)
	if err != nil {
		return nil, err
	}
	return Build(tab, dialects...)
}

// Load reads the topology in the file name, compressed or not. If a
// coordinate (inpcrd/restart) file is given, its coordinates are
// returned too, and its box, if it has one, replaces the box of the
// topology. A box that can't be applied (a non-periodic topology whose
// molecules are not contiguous) is ignored with a logged warning.
func Load(name string, coordfile ...string) (*Topology, *v3.Matrix, error) {
	return LoadWith(nil, name, coordfile...)
}

// LoadWith is like Load, but detects the dialect of the file with the
// table D. A nil D means DefaultDialects.
func LoadWith(D *DialectSet, name string, coordfile ...string) (*Topology, *v3.Matrix, error) {
	f, err := Open(name)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	T, err := ReadTopology(f, D)
	if err != nil {
		return nil, nil, fmt.Errorf("parm: %s: %w", name, err)
	}
	if len(coordfile) == 0 || coordfile[0] == "" {
		return T, nil, nil
	}
	c, err := Open(coordfile[0])
	if err != nil {
		return nil, nil, err
	}
	defer c.Close()
	R, err := crd.ReadRst7(c)
	if err != nil {
		return nil, nil, fmt.Errorf("parm: %s: %w", coordfile[0], err)
	}
	if R.NAtoms != T.NAtoms() {
		return nil, nil, fmt.Errorf("parm: %s has %d atoms, the topology %d", coordfile[0], R.NAtoms, T.NAtoms())
	}
	if R.Box != nil && (T.box == nil || !floats.EqualApprox(T.box, R.Box, 1e-4)) {
		if err := T.SetBox(R.Box); err != nil {
			log.Printf("parm: the box in %s is ignored: %v", coordfile[0], err)
		} else {
			log.Printf("parm: the box in %s replaces the one in %s", coordfile[0], name)
		}
	}
	return T, R.Coords, nil
}

// WriteTo writes the topology to w in the topology file format.
func (T *Topology) WriteTo(w io.Writer) (int64, error) {
	tab, err := T.ToSectionTable()
	if err != nil {
		return 0, err
	}
	return tab.WriteTo(w)
}

// Save writes the topology to the file name, compressed if the name
// ends in .gz or .zst.
func Save(T *Topology, name string) error {
	w, err := Create(name)
	if err != nil {
		return err
	}
	if _, err = T.WriteTo(w); err != nil {
		w.Close()
		return fmt.Errorf("parm: can't write %s: %w", name, err)
	}
	return w.Close()
}
