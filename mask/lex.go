/*
 * lex.go, part of goParm.
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
	"strconv"
	"strings"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokOr
	tokAnd
	tokNot
	tokOpen
	tokClose
	tokAll
	tokResidues
	tokAtoms
	tokTypes
	tokElements
	tokWithin
	tokBeyond
)

// token is one lexical element of a mask. For selectors, list is the
// text after the sigil, starting at offset lpos.
type token struct {
	kind tokenKind
	pos  int
	end  int
	list string
	lpos int
	dist float64
}

func (t token) isAtomSelector() bool {
	return t.kind == tokAtoms || t.kind == tokTypes || t.kind == tokElements
}

type lexer struct {
	expr string
	pos  int
}

// listEnd holds the characters that end a selector list.
const listEnd = " \t\r\n|&!()<>:@"

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func (l *lexer) next() (token, error) {
	for l.pos < len(l.expr) && isSpace(l.expr[l.pos]) {
		l.pos++
	}
	start := l.pos
	if l.pos >= len(l.expr) {
		return token{kind: tokEOF, pos: start, end: start}, nil
	}
	c := l.expr[l.pos]
	l.pos++
	simple := func(k tokenKind) (token, error) {
		return token{kind: k, pos: start, end: l.pos}, nil
	}
	switch c {
	case '|':
		return simple(tokOr)
	case '&':
		return simple(tokAnd)
	case '!':
		return simple(tokNot)
	case '(':
		return simple(tokOpen)
	case ')':
		return simple(tokClose)
	case '*':
		return simple(tokAll)
	case ':':
		return l.list(tokResidues, start), nil
	case '@':
		kind := tokAtoms
		if l.pos < len(l.expr) {
			switch l.expr[l.pos] {
			case '%':
				kind = tokTypes
				l.pos++
			case '/':
				kind = tokElements
				l.pos++
			}
		}
		return l.list(kind, start), nil
	case '<', '>':
		return l.distance(c, start)
	}
	r, _ := utf8.DecodeRuneInString(l.expr[start:])
	return token{}, syntaxError(l.expr, start, "unknown selector %q", r)
}

func (l *lexer) list(kind tokenKind, start int) token {
	lpos := l.pos
	for l.pos < len(l.expr) && !strings.ContainsRune(listEnd, rune(l.expr[l.pos])) {
		l.pos++
	}
	return token{kind: kind, pos: start, end: l.pos, list: l.expr[lpos:l.pos], lpos: lpos}
}

func (l *lexer) distance(c byte, start int) (token, error) {
	npos := l.pos
	for l.pos < len(l.expr) && (isDigit(l.expr[l.pos]) || l.expr[l.pos] == '.') {
		l.pos++
	}
	d, err := strconv.ParseFloat(l.expr[npos:l.pos], 64)
	if err != nil {
		return token{}, syntaxError(l.expr, npos, "missing or invalid distance after %q", c)
	}
	kind := tokWithin
	if c == '>' {
		kind = tokBeyond
	}
	return token{kind: kind, pos: start, end: l.pos, dist: d}, nil
}
