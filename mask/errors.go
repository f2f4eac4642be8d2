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

package mask

import (
	"fmt"
	"unicode/utf8"
)

// SyntaxError is returned when a mask can't be compiled. Offset is the
// 0-based position, in characters (runes), of the offending character in
// Expr.
type SyntaxError struct {
	Expr   string
	Offset int
	Msg    string
	deco   []string
}

func (err *SyntaxError) Error() string {
	return fmt.Sprintf("mask: %s at offset %d in %q", err.Msg, err.Offset, err.Expr)
}

// Decorate adds dec to the decoration of the error, if not empty, and returns
// the decoration.
func (err *SyntaxError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

func (err *SyntaxError) Critical() bool { return true }

// syntaxError builds a SyntaxError from a byte offset in expr.
func syntaxError(expr string, offset int, format string, a ...any) *SyntaxError {
	offset = utf8.RuneCountInString(expr[:min(offset, len(expr))])
	return &SyntaxError{Expr: expr, Offset: offset, Msg: fmt.Sprintf(format, a...)}
}

// MissingGeometryError is returned when a mask with distance operators
// is evaluated without coordinates, or with coordinates for a different
// number of atoms.
type MissingGeometryError struct {
	Expr    string
	NAtoms  int
	NCoords int //-1 if no coordinates were given
	deco    []string
}

func (err *MissingGeometryError) Error() string {
	if err.NCoords < 0 {
		return fmt.Sprintf("mask: %q needs coordinates", err.Expr)
	}
	return fmt.Sprintf("mask: %q needs coordinates for %d atoms, got %d", err.Expr, err.NAtoms, err.NCoords)
}

// Decorate adds dec to the decoration of the error, if not empty, and returns
// the decoration.
func (err *MissingGeometryError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

func (err *MissingGeometryError) Critical() bool { return true }
