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

package parm

import (
	"fmt"
	"strings"
)

// Error is implemented by all the errors of this package.
type Error interface {
	Error() string
	Decorate(string) []string
	Critical() bool
}

// MissingSectionError is returned when a section needed by the dialect
// of the file, or by the caller, is absent.
type MissingSectionError struct {
	Section string
	Dialect string //empty if not known
	deco    []string
}

func (err *MissingSectionError) Error() string {
	if err.Dialect == "" {
		return fmt.Sprintf("parm: missing section %s", err.Section)
	}
	return fmt.Sprintf("parm: missing section %s, required by the %s dialect", err.Section, err.Dialect)
}

// Decorate adds the caller information in dec, if not empty, and returns
// the current decoration.
func (err *MissingSectionError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

func (err *MissingSectionError) Critical() bool { return true }

// LengthMismatchError is returned when a section doesn't have the
// number of values implied by the pointer block.
type LengthMismatchError struct {
	Section  string
	Expected int
	Got      int
	deco     []string
}

func (err *LengthMismatchError) Error() string {
	return fmt.Sprintf("parm: section %s has %d values, %d expected", err.Section, err.Got, err.Expected)
}

// Decorate adds the caller information in dec, if not empty, and returns
// the current decoration.
func (err *LengthMismatchError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

func (err *LengthMismatchError) Critical() bool { return true }

// InconsistentTopologyError is returned when the contents of a topology
// contradict each other: an index out of range, non-contiguous residues,
// a non-symmetric type table and the like. Index is the offending atom,
// residue or term index, or -1.
type InconsistentTopologyError struct {
	Section string
	Index   int
	Msg     string
	deco    []string
}

func (err *InconsistentTopologyError) Error() string {
	var b strings.Builder
	b.WriteString("parm: inconsistent topology")
	if err.Section != "" {
		b.WriteString(" in " + err.Section)
	}
	if err.Index >= 0 {
		fmt.Fprintf(&b, " (index %d)", err.Index)
	}
	b.WriteString(": " + err.Msg)
	return b.String()
}

// Decorate adds the caller information in dec, if not empty, and returns
// the current decoration.
func (err *InconsistentTopologyError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

func (err *InconsistentTopologyError) Critical() bool { return true }

func inconsistent(section string, index int, format string, a ...any) *InconsistentTopologyError {
	return &InconsistentTopologyError{Section: section, Index: index, Msg: fmt.Sprintf(format, a...)}
}

// UnrecognizedDialectError is returned when the sections of a file match
// no known dialect. Closest is the dialect that came nearest, if any, and
// Missing the sections it lacked. It is not critical: the caller can
// still look at the file as a plain section table.
type UnrecognizedDialectError struct {
	Version string
	Closest string
	Missing []string
	deco    []string
}

func (err *UnrecognizedDialectError) Error() string {
	msg := "parm: the sections of the file match no known topology dialect"
	if err.Closest != "" {
		msg += fmt.Sprintf(" (closest: %s, missing %s)", err.Closest, strings.Join(err.Missing, ", "))
	}
	return msg
}

// Decorate adds the caller information in dec, if not empty, and returns
// the current decoration.
func (err *UnrecognizedDialectError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

func (err *UnrecognizedDialectError) Critical() bool { return false }

// qpanic carries an error through a panic, so the typed error can be
// recovered at the function boundary.
type qpanic struct {
	err error
}

func qerr(err error) {
	if err != nil {
		panic(qpanic{err})
	}
}

// qrecover turns a panic raised by qerr into an error, and re-raises
// anything else. It must be deferred.
func qrecover(err *error, caller string) {
	r := recover()
	if r == nil {
		return
	}
	q, ok := r.(qpanic)
	if !ok {
		panic(r)
	}
	if e, ok := q.err.(Error); ok {
		e.Decorate(caller)
	}
	*err = q.err
}
