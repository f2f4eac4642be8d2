/*
 * errors.go, part of goParm.
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

// FieldOverflowError is returned when a value needs more characters than
// the field width of the format allows.
type FieldOverflowError struct {
	Value    string
	Width    int
	Position int //index of the offending value in the array
	Format   string
	deco     []string
}

func (err *FieldOverflowError) Error() string {
	return sf("fortfmt: value %s (position %d) does not fit in a %d-wide field of format %s", err.Value, err.Position, err.Width, err.Format)
}

// Decorate adds the caller information in dec, if not empty, and returns
// the current decoration.
func (err *FieldOverflowError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// Critical is always true. A value that can't be written can't be skipped.
func (err *FieldOverflowError) Critical() bool { return true }

// ParseError is returned for a specifier that can't be understood or for a
// field that can't be converted to the format's type. Line is -1 for errors
// in the specifier itself.
type ParseError struct {
	Spec  string
	Line  int //0-based, relative to the decoded block
	Field int
	Text  string
	Msg   string
	deco  []string
}

func (err *ParseError) Error() string {
	if err.Line < 0 {
		return sf("fortfmt: format %q: %s", err.Spec, err.Msg)
	}
	return sf("fortfmt: format %s, line %d, field %d (%q): %s", err.Spec, err.Line+1, err.Field+1, err.Text, err.Msg)
}

// Decorate adds the caller information in dec, if not empty, and returns
// the current decoration.
func (err *ParseError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

func (err *ParseError) Critical() bool { return true }
