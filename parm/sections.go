/*
 * sections.go, part of goParm.
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
	"log"
	"slices"
	"strings"

	"github.com/rmera/goparm/fortfmt"
)

// Section is one %FLAG block of a topology file. Format is nil for
// sections whose format can't be interpreted; their Data is Raw.
type Section struct {
	Name   string
	Format *fortfmt.Format
	Data   fortfmt.Array
	header []string //%FLAG, %FORMAT and %COMMENT lines, as read
	fmtpos int      //position of the %FORMAT line in header
	body   []string //data lines, as read or as last encoded
}

// Lines returns a copy of the data lines of the section, as they
// are written to the file.
func (S *Section) Lines() []string {
	return slices.Clone(S.body)
}

// Comments returns the text of the %COMMENT lines of the section.
func (S *Section) Comments() []string {
	var ret []string
	for _, v := range S.header {
		if strings.HasPrefix(v, "%COMMENT") {
			ret = append(ret, strings.TrimSpace(strings.TrimPrefix(v, "%COMMENT")))
		}
	}
	return ret
}

func (S *Section) copy() *Section {
	return &Section{
		Name:   S.Name,
		Format: S.Format,
		Data:   S.Data.Copy(),
		header: slices.Clone(S.header),
		fmtpos: S.fmtpos,
		body:   slices.Clone(S.body),
	}
}

// LEaP pads the %FLAG and %FORMAT lines to 80 columns.
func headerLine(s string) string {
	return fmt.Sprintf("%-80s", s)
}

func newSection(name string, format *fortfmt.Format) *Section {
	return &Section{
		Name:   name,
		Format: format,
		header: []string{headerLine("%FLAG " + name), headerLine(format.Line())},
		fmtpos: 1,
	}
}

// encode sets the data of S, re-encoding its lines. Nothing is changed
// if the encoding fails.
func (S *Section) encode(data fortfmt.Array, format *fortfmt.Format) error {
	var body []string
	if data.Kind == fortfmt.Raw {
		body = slices.Clone(data.Lines)
		if len(body) == 0 {
			body = []string{""}
		}
	} else {
		if format == nil {
			return fmt.Errorf("parm: section %s: a %s array needs a format", S.Name, data.Kind)
		}
		text, err := format.Encode(data)
		if err != nil {
			return fmt.Errorf("parm: section %s: %w", S.Name, err)
		}
		body = fortfmt.SplitLines(text)
	}
	if format != nil && (S.Format == nil || format.String() != S.Format.String()) {
		S.header[S.fmtpos] = headerLine(format.Line())
	}
	S.Format = format
	S.Data = data
	S.body = body
	return nil
}

// SectionTable is the ordered collection of the sections of a
// topology file, plus its %VERSION line.
type SectionTable struct {
	version  string
	sections []*Section
	index    map[string]int
}

// NewSectionTable returns an empty table with the given %VERSION line.
// An empty version gets a generic stamp.
func NewSectionTable(version string) *SectionTable {
	if version == "" {
		version = "%VERSION  VERSION_STAMP = V0001.000  DATE = 01/01/26  00:00:00"
	}
	return &SectionTable{version: version, index: make(map[string]int)}
}

// Version returns the %VERSION line of the file, without line jump.
func (T *SectionTable) Version() string {
	return T.version
}

// Len returns the number of sections in the table.
func (T *SectionTable) Len() int {
	return len(T.sections)
}

// Has returns true if the table has a section called name.
func (T *SectionTable) Has(name string) bool {
	_, ok := T.index[name]
	return ok
}

// Names returns the section names in file order.
func (T *SectionTable) Names() []string {
	ret := make([]string, 0, len(T.sections))
	for _, v := range T.sections {
		ret = append(ret, v.Name)
	}
	return ret
}

// Get returns the section called name, or a *MissingSectionError.
// The section is not a copy.
func (T *SectionTable) Get(name string) (*Section, error) {
	i, ok := T.index[name]
	if !ok {
		return nil, &MissingSectionError{Section: name}
	}
	return T.sections[i], nil
}

// Set replaces the data of the section name, keeping its place in the
// file, or appends a new section. If format is nil, the current format
// of the section is kept, and new sections get the default format for
// the kind of data. A value that doesn't fit in the format makes Set
// fail and the table stays unchanged.
func (T *SectionTable) Set(name string, data fortfmt.Array, format *fortfmt.Format) error {
	S, err := T.Get(name)
	if err != nil {
		if format == nil {
			format = defaultFormat(name, data.Kind)
		}
		if format == nil {
			return fmt.Errorf("parm: new section %s needs a format", name)
		}
		S = newSection(name, format)
		if err = S.encode(data, format); err != nil {
			return err
		}
		T.index[name] = len(T.sections)
		T.sections = append(T.sections, S)
		return nil
	}
	if format == nil {
		format = S.Format
		if format == nil || format.Kind != data.Kind {
			format = defaultFormat(name, data.Kind)
		}
	}
	return S.encode(data, format)
}

// Remove deletes the section name, and returns true if it existed.
func (T *SectionTable) Remove(name string) bool {
	i, ok := T.index[name]
	if !ok {
		return false
	}
	T.sections = slices.Delete(T.sections, i, i+1)
	delete(T.index, name)
	for k, v := range T.sections[i:] {
		T.index[v.Name] = i + k
	}
	return true
}

// Copy returns a deep copy of the table.
func (T *SectionTable) Copy() *SectionTable {
	R := NewSectionTable(T.version)
	R.sections = make([]*Section, 0, len(T.sections))
	for i, v := range T.sections {
		R.sections = append(R.sections, v.copy())
		R.index[v.Name] = i
	}
	return R
}

// Ints returns the values of the integer section name (not a copy).
func (T *SectionTable) Ints(name string) ([]int, error) {
	S, err := T.kind(name, fortfmt.Int)
	if err != nil {
		return nil, err
	}
	return S.Data.Ints, nil
}

// Floats returns the values of the floating-point section name (not a copy).
func (T *SectionTable) Floats(name string) ([]float64, error) {
	S, err := T.kind(name, fortfmt.Float)
	if err != nil {
		return nil, err
	}
	return S.Data.Floats, nil
}

// Strings returns the values of the string section name (not a copy).
func (T *SectionTable) Strings(name string) ([]string, error) {
	S, err := T.kind(name, fortfmt.String)
	if err != nil {
		return nil, err
	}
	return S.Data.Strings, nil
}

func (T *SectionTable) kind(name string, k fortfmt.Kind) (*Section, error) {
	S, err := T.Get(name)
	if err != nil {
		return nil, err
	}
	if S.Data.Kind != k {
		return nil, inconsistent(name, -1, "section holds %s data, %s expected", S.Data.Kind, k)
	}
	return S, nil
}

// Expect checks that the section name has n values. A string section
// that is short by less than one line of values is taken to have lost
// trailing blank names and is padded, with a heads-up in the log.
func (T *SectionTable) Expect(name string, n int) error {
	S, err := T.Get(name)
	if err != nil {
		return err
	}
	got := S.Data.Len()
	if got == n {
		return nil
	}
	if S.Data.Kind == fortfmt.String && got < n && n-got < S.Format.Repeat {
		A, err := S.Format.DecodeN(S.body, n)
		if err == nil && A.Len() == n {
			log.Printf("parm: section %s: %d blank values restored at the end", name, n-got)
			S.Data = A
			return nil
		}
	}
	return &LengthMismatchError{Section: name, Expected: n, Got: got}
}
