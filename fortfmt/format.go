/*
 * format.go, part of goParm.
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

/*
Package fortfmt reads and writes the positional, Fortran-style records used by
Amber topology and coordinate files. A record format such as 10I8 or 5E16.8 is
parsed once into a Format, and the same Format is used both to decode a block of
text into typed values and to encode the values back, so that both directions
agree by construction.

Only single-item formats are understood (a repeat count, one type letter, a
width and, for floating point, a precision). Formats with several
comma-separated items, like (i2,a78), are rejected by Parse and callers are
expected to keep such records as raw text.
*/
package fortfmt

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Kind is the type of the values held by a record.
type Kind int

const (
	Raw Kind = iota //not interpreted, kept as lines of text
	Int
	Float
	String
)

func (K Kind) String() string {
	switch K {
	case Int:
		return "integer"
	case Float:
		return "float"
	case String:
		return "string"
	}
	return "raw"
}

// Format describes how the values of one record are laid out: Repeat fields
// per line, each Width characters wide.
type Format struct {
	Repeat    int
	Kind      Kind
	Verb      byte //the Fortran letter, upper case: A, I, E, D, F or G
	Width     int
	Precision int
	spec      string
}

var specRe = regexp.MustCompile(`^(\d*)\(?([aAiIeEdDfFgG])(\d+)(?:\.(\d+))?\)?$`)

// Parse parses a format specifier. It accepts the bare specifier (10I8),
// the parenthesised one ((10I8)), nested parentheses ((8(F9.5))) and the
// whole %FORMAT(...) line.
func Parse(spec string) (*Format, error) {
	orig := strings.TrimSpace(spec)
	s := strings.TrimPrefix(orig, "%FORMAT")
	s = strings.ReplaceAll(s, " ", "")
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = s[1 : len(s)-1]
	}
	if strings.Contains(s, ",") {
		return nil, &ParseError{Spec: orig, Line: -1, Msg: "formats with more than one item are not supported"}
	}
	if strings.Count(s, "(") != strings.Count(s, ")") {
		return nil, &ParseError{Spec: orig, Line: -1, Msg: "unbalanced parentheses"}
	}
	m := specRe.FindStringSubmatch(s)
	if m == nil {
		return nil, &ParseError{Spec: orig, Line: -1, Msg: "can't understand format specifier"}
	}
	F := new(Format)
	F.Repeat = 1
	if m[1] != "" {
		F.Repeat, _ = strconv.Atoi(m[1])
	}
	F.Width, _ = strconv.Atoi(m[3])
	if m[4] != "" {
		F.Precision, _ = strconv.Atoi(m[4])
	}
	if F.Repeat < 1 || F.Width < 1 {
		return nil, &ParseError{Spec: orig, Line: -1, Msg: "repeat count and width must be positive"}
	}
	F.Verb = strings.ToUpper(m[2])[0]
	switch F.Verb {
	case 'A':
		F.Kind = String
	case 'I':
		F.Kind = Int
	default:
		F.Kind = Float
	}
	F.spec = strings.TrimPrefix(orig, "%FORMAT")
	if !strings.HasPrefix(F.spec, "(") {
		F.spec = "(" + F.spec + ")"
	}
	return F, nil
}

// MustParse is like Parse but panics on error. It is meant for the
// package-level formats of the standard sections.
func MustParse(spec string) *Format {
	F, err := Parse(spec)
	if err != nil {
		panic(err.Error())
	}
	return F
}

// The formats LEaP uses for the standard sections.
var (
	IntFormat    = MustParse("(10I8)")
	FloatFormat  = MustParse("(5E16.8)")
	NameFormat   = MustParse("(20a4)")
	RadiusFormat = MustParse("(1a80)")
	SingleInt    = MustParse("(1I8)")
)

// String returns the specifier as it was given to Parse, with parentheses,
// so an uninterpreted record can be written back unchanged.
func (F *Format) String() string {
	return F.spec
}

// Line returns the %FORMAT line for F, without line jump.
func (F *Format) Line() string {
	return "%FORMAT" + F.spec
}

// Equal returns true if both formats lay out values the same way.
func (F *Format) Equal(G *Format) bool {
	if F == nil || G == nil {
		return F == G
	}
	return F.Repeat == G.Repeat && F.Kind == G.Kind && F.Verb == G.Verb && F.Width == G.Width && F.Precision == G.Precision
}

// Lines returns how many lines n values take with this format.
// Zero values still take one (blank) line.
func (F *Format) Lines(n int) int {
	if n == 0 {
		return 1
	}
	return (n + F.Repeat - 1) / F.Repeat
}

func (F *Format) kindCheck(A Array) error {
	if A.Kind != F.Kind {
		return fmt.Errorf("fortfmt: can't use format %s (%s) with %s data", F.spec, F.Kind, A.Kind)
	}
	return nil
}
