/*
 * flagio.go, part of goParm.
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
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/rmera/goparm/fortfmt"
)

// ReadSections reads a topology file as a table of sections. It only
// checks the layout of the file (%FLAG followed by %FORMAT, values that
// agree with their format). Sections with a format that can't be
// interpreted are kept as raw lines.
func ReadSections(r io.Reader) (T *SectionTable, err error) {
	var lines []string
	br := bufio.NewReader(r)
	for {
		l, err := br.ReadString('\n')
		if l != "" {
			lines = append(lines, strings.TrimSuffix(l, "\n"))
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parm: can't read topology: %w", err)
		}
	}
	T = NewSectionTable("")
	T.version = ""
	var cur *Section
	start := 0
	for i, l := range lines {
		switch {
		case strings.HasPrefix(l, "%VERSION") && cur == nil && T.version == "":
			T.version = l
		case strings.HasPrefix(l, "%FLAG"):
			if cur != nil {
				if err = T.addRead(cur, lines[start:i]); err != nil {
					return nil, err
				}
			}
			f := strings.Fields(l)
			if len(f) < 2 {
				return nil, fmt.Errorf("parm: line %d: %%FLAG without a name", i+1)
			}
			cur = &Section{Name: f[1], header: []string{l}, fmtpos: -1}
			start = i + 1
		case cur == nil:
			if strings.TrimSpace(l) != "" {
				return nil, fmt.Errorf("parm: line %d: data before the first %%FLAG", i+1)
			}
		case start == i && (strings.HasPrefix(l, "%FORMAT") || strings.HasPrefix(l, "%COMMENT")):
			if strings.HasPrefix(l, "%FORMAT") {
				if cur.fmtpos >= 0 {
					return nil, fmt.Errorf("parm: section %s: two %%FORMAT lines", cur.Name)
				}
				cur.fmtpos = len(cur.header)
			}
			cur.header = append(cur.header, l)
			start = i + 1
		}
	}
	if cur == nil {
		return nil, fmt.Errorf("parm: no sections found")
	}
	if err = T.addRead(cur, lines[start:]); err != nil {
		return nil, err
	}
	return T, nil
}

// addRead decodes the data lines of a section just read and adds it to T.
func (T *SectionTable) addRead(S *Section, body []string) error {
	if S.fmtpos < 0 {
		return fmt.Errorf("parm: section %s has no %%FORMAT line", S.Name)
	}
	if T.Has(S.Name) {
		return fmt.Errorf("parm: section %s appears twice", S.Name)
	}
	S.body = body
	var err error
	S.Format, err = fortfmt.Parse(S.header[S.fmtpos])
	if err != nil {
		log.Printf("parm: section %s kept as raw text: %s", S.Name, err.Error())
		S.Format = nil
		S.Data = fortfmt.RawLines(body)
	} else {
		S.Data, err = S.Format.DecodeLines(body)
		if err != nil {
			return fmt.Errorf("parm: section %s: %w", S.Name, err)
		}
	}
	T.index[S.Name] = len(T.sections)
	T.sections = append(T.sections, S)
	return nil
}

// WriteTo writes the table in the topology file format.
func (T *SectionTable) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	put := func(s string) {
		k, _ := bw.WriteString(s)
		bw.WriteByte('\n')
		n += int64(k) + 1
	}
	if T.version != "" {
		put(T.version)
	}
	for _, S := range T.sections {
		for _, l := range S.header {
			put(l)
		}
		for _, l := range S.body {
			put(l)
		}
	}
	return n, bw.Flush()
}

// The names of the sections the topology model interprets.
const (
	sTitle          = "TITLE"
	sPointers       = "POINTERS"
	sAtomName       = "ATOM_NAME"
	sCharge         = "CHARGE"
	sAtomicNumber   = "ATOMIC_NUMBER"
	sMass           = "MASS"
	sTypeIndex      = "ATOM_TYPE_INDEX"
	sNExcluded      = "NUMBER_EXCLUDED_ATOMS"
	sNBIndex        = "NONBONDED_PARM_INDEX"
	sResLabel       = "RESIDUE_LABEL"
	sResPointer     = "RESIDUE_POINTER"
	sBondK          = "BOND_FORCE_CONSTANT"
	sBondEq         = "BOND_EQUIL_VALUE"
	sAngleK         = "ANGLE_FORCE_CONSTANT"
	sAngleEq        = "ANGLE_EQUIL_VALUE"
	sDihK           = "DIHEDRAL_FORCE_CONSTANT"
	sDihPer         = "DIHEDRAL_PERIODICITY"
	sDihPhase       = "DIHEDRAL_PHASE"
	sSCEE           = "SCEE_SCALE_FACTOR"
	sSCNB           = "SCNB_SCALE_FACTOR"
	sSolty          = "SOLTY"
	sLJA            = "LENNARD_JONES_ACOEF"
	sLJB            = "LENNARD_JONES_BCOEF"
	sLJ14A          = "LENNARD_JONES_14_ACOEF"
	sLJ14B          = "LENNARD_JONES_14_BCOEF"
	sBondsH         = "BONDS_INC_HYDROGEN"
	sBonds          = "BONDS_WITHOUT_HYDROGEN"
	sAnglesH        = "ANGLES_INC_HYDROGEN"
	sAngles         = "ANGLES_WITHOUT_HYDROGEN"
	sDihedralsH     = "DIHEDRALS_INC_HYDROGEN"
	sDihedrals      = "DIHEDRALS_WITHOUT_HYDROGEN"
	sExclList       = "EXCLUDED_ATOMS_LIST"
	sHBA            = "HBOND_ACOEF"
	sHBB            = "HBOND_BCOEF"
	sHBCut          = "HBCUT"
	sAmberType      = "AMBER_ATOM_TYPE"
	sTreeChain      = "TREE_CHAIN_CLASSIFICATION"
	sJoin           = "JOIN_ARRAY"
	sIRotat         = "IROTAT"
	sSolventPtr     = "SOLVENT_POINTERS"
	sAtomsPerMol    = "ATOMS_PER_MOLECULE"
	sBox            = "BOX_DIMENSIONS"
	sCapInfo        = "CAP_INFO"
	sRadiusSet      = "RADIUS_SET"
	sRadii          = "RADII"
	sScreen         = "SCREEN"
	sIPol           = "IPOL"
	sPolarizability = "POLARIZABILITY"
	sChainID        = "RESIDUE_CHAINID"
	sResNumber      = "RESIDUE_NUMBER"
)

// defaultFormat returns the format LEaP uses for the section name,
// or a generic one for the kind of data.
func defaultFormat(name string, kind fortfmt.Kind) *fortfmt.Format {
	switch name {
	case sRadiusSet:
		return fortfmt.RadiusFormat
	case sSolventPtr:
		return fortfmt.MustParse("(3I8)")
	case sIPol:
		return fortfmt.SingleInt
	case sTitle, "CTITLE", sTreeChain, sAtomName, sAmberType, sResLabel, sChainID:
		return fortfmt.NameFormat
	case sResNumber:
		return fortfmt.MustParse("(20I4)")
	}
	switch kind {
	case fortfmt.Int:
		return fortfmt.IntFormat
	case fortfmt.Float:
		return fortfmt.FloatFormat
	case fortfmt.String:
		return fortfmt.NameFormat
	}
	return nil
}
