/*
 * codec.go, part of goParm.
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

import (
	"fmt"
	"strconv"
	"strings"
)

var sf func(string, ...any) string = fmt.Sprintf

// SplitLines splits a block of text in lines, without the line jumps.
// An empty block has no lines.
func SplitLines(raw string) []string {
	if raw == "" {
		return nil
	}
	raw = strings.TrimSuffix(raw, "\n")
	return strings.Split(raw, "\n")
}

// Decode decodes the block of text raw with the format F.
func (F *Format) Decode(raw string) (Array, error) {
	return F.DecodeLines(SplitLines(raw))
}

// DecodeN decodes lines, expecting n values. For string records, missing
// trailing values (blank fields that an editor stripped from the last line)
// are restored as empty strings. For other kinds, n is not enforced here; it is
// the caller's job to compare the length against whatever declares it.
func (F *Format) DecodeN(lines []string, n int) (Array, error) {
	A, err := F.DecodeLines(lines)
	if err != nil {
		return A, err
	}
	if A.Kind == String && len(A.Strings) < n && n-len(A.Strings) < F.Repeat {
		for len(A.Strings) < n {
			A.Strings = append(A.Strings, "")
		}
	}
	return A, nil
}

// DecodeLines slices each line in fixed-width fields, left to right,
// and converts the fields to F.Kind. Each line holds at most F.Repeat fields.
// A short last field is padded. Blank lines hold no values.
// Trailing blanks of string fields are dropped: "C1  " decodes as "C1", and
// a value written with trailing blanks is read back without them. Encode
// pads the field again, so the text of a record survives a round trip.
func (F *Format) DecodeLines(lines []string) (A Array, err error) {
	A.Kind = F.Kind
	w := F.Width
	for ln, line := range lines {
		line = strings.TrimRight(line, "\r")
		if F.Kind != String {
			line = strings.TrimRight(line, " \t")
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		nfields := (len(line) + w - 1) / w
		if nfields > F.Repeat {
			if strings.TrimSpace(line[F.Repeat*w:]) != "" {
				return A, &ParseError{Spec: F.spec, Line: ln, Field: F.Repeat, Text: line, Msg: sf("more than %d fields in line", F.Repeat)}
			}
			nfields = F.Repeat
		}
		for i := 0; i < nfields; i++ {
			end := (i + 1) * w
			if end > len(line) {
				end = len(line)
			}
			field := line[i*w : end]
			switch F.Kind {
			case String:
				A.Strings = append(A.Strings, strings.TrimRight(field, " "))
			case Int:
				v, err := strconv.Atoi(strings.TrimSpace(field))
				if err != nil {
					return A, &ParseError{Spec: F.spec, Line: ln, Field: i, Text: field, Msg: "not an integer"}
				}
				A.Ints = append(A.Ints, v)
			case Float:
				t := strings.TrimSpace(field)
				t = strings.Map(func(r rune) rune {
					if r == 'D' || r == 'd' {
						return 'E'
					}
					return r
				}, t)
				v, err := strconv.ParseFloat(t, 64)
				if err != nil {
					return A, &ParseError{Spec: F.spec, Line: ln, Field: i, Text: field, Msg: "not a number"}
				}
				A.Floats = append(A.Floats, v)
			}
		}
	}
	return A, nil
}

// Field returns the ith value of A formatted as one field of F. It
// returns a *FieldOverflowError if the text doesn't fit in F.Width.
func (F *Format) Field(A Array, i int) (string, error) {
	var s string
	switch F.Kind {
	case Int:
		s = sf("%*d", F.Width, A.Ints[i])
	case String:
		s = sf("%-*s", F.Width, A.Strings[i])
	case Float:
		v := A.Floats[i]
		switch F.Verb {
		case 'F':
			s = sf("%*.*f", F.Width, F.Precision, v)
		case 'G':
			s = sf("%*.*G", F.Width, F.Precision, v)
		case 'D':
			s = strings.Replace(sf("%*.*E", F.Width, F.Precision, v), "E", "D", 1)
		default:
			s = sf("%*.*E", F.Width, F.Precision, v)
		}
	}
	if len(s) > F.Width {
		return "", &FieldOverflowError{Value: strings.TrimSpace(s), Width: F.Width, Position: i, Format: F.spec}
	}
	return s, nil
}

// Encode writes the values in A with the format F: F.Repeat fields per
// line, numbers right-justified and strings left-justified. An empty array is
// written as one blank line. Values that don't fit in the field make Encode
// fail with *FieldOverflowError; nothing is ever truncated.
func (F *Format) Encode(A Array) (string, error) {
	if err := F.kindCheck(A); err != nil {
		return "", err
	}
	n := A.Len()
	if n == 0 {
		return "\n", nil
	}
	var b strings.Builder
	b.Grow(n*F.Width + F.Lines(n))
	for i := 0; i < n; i++ {
		s, err := F.Field(A, i)
		if err != nil {
			return "", err
		}
		b.WriteString(s)
		if (i+1)%F.Repeat == 0 || i == n-1 {
			b.WriteByte('\n')
		}
	}
	return b.String(), nil
}
