/*
 * parse.go, part of goParm.
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
	"path"
	"strconv"
	"strings"

	"github.com/rmera/goparm/parm"
)

// node is one element of a compiled mask.
type node interface {
	eval(e *env) []bool
	geometry() bool
	String() string
}

type orNode struct{ a, b node }

type andNode struct{ a, b node }

type notNode struct{ a node }

// distNode selects the atoms within d of the atoms of sel, or, if far
// is true, those farther than d from all of them.
type distNode struct {
	d   float64
	far bool
	sel node
}

type allNode struct{}

// item is one element of a selector list: a name pattern, in upper
// case, or a 1-based inclusive range. z is the atomic number for
// element lists.
type item struct {
	name   string
	lo, hi int
	z      int
}

func (it item) String() string {
	switch {
	case it.name != "":
		return it.name
	case it.lo == it.hi:
		return strconv.Itoa(it.lo)
	}
	return fmt.Sprintf("%d-%d", it.lo, it.hi)
}

type selNode struct {
	kind  tokenKind
	items []item
}

var sigils = map[tokenKind]string{tokResidues: ":", tokAtoms: "@", tokTypes: "@%", tokElements: "@/"}

func (n orNode) String() string  { return fmt.Sprintf("(%s | %s)", n.a, n.b) }
func (n andNode) String() string { return fmt.Sprintf("(%s & %s)", n.a, n.b) }
func (n notNode) String() string { return "!" + n.a.String() }
func (n allNode) String() string { return "*" }

func (n distNode) String() string {
	op := "<"
	if n.far {
		op = ">"
	}
	return op + strconv.FormatFloat(n.d, 'g', -1, 64) + " " + n.sel.String()
}

func (n selNode) String() string {
	s := make([]string, len(n.items))
	for i, v := range n.items {
		s[i] = v.String()
	}
	return sigils[n.kind] + strings.Join(s, ",")
}

func (n orNode) geometry() bool   { return n.a.geometry() || n.b.geometry() }
func (n andNode) geometry() bool  { return n.a.geometry() || n.b.geometry() }
func (n notNode) geometry() bool  { return n.a.geometry() }
func (n distNode) geometry() bool { return true }
func (n allNode) geometry() bool  { return false }
func (n selNode) geometry() bool  { return false }

// parser is a recursive descent parser with one token of lookahead.
type parser struct {
	lex *lexer
	tok token
}

func (p *parser) advance() error {
	t, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

func (p *parser) unexpected() error {
	if p.tok.kind == tokEOF {
		return syntaxError(p.lex.expr, p.tok.pos, "unexpected end of mask")
	}
	return syntaxError(p.lex.expr, p.tok.pos, "unexpected %q", p.lex.expr[p.tok.pos:p.tok.end])
}

func (p *parser) or() (node, error) {
	a, err := p.and()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokOr {
		if err := p.advance(); err != nil {
			return nil, err
		}
		b, err := p.and()
		if err != nil {
			return nil, err
		}
		a = orNode{a, b}
	}
	return a, nil
}

func (p *parser) and() (node, error) {
	a, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokAnd {
		if err := p.advance(); err != nil {
			return nil, err
		}
		b, err := p.unary()
		if err != nil {
			return nil, err
		}
		a = andNode{a, b}
	}
	return a, nil
}

func (p *parser) unary() (node, error) {
	t := p.tok
	switch t.kind {
	case tokNot, tokWithin, tokBeyond:
		if err := p.advance(); err != nil {
			return nil, err
		}
		a, err := p.unary()
		if err != nil {
			return nil, err
		}
		if t.kind == tokNot {
			return notNode{a}, nil
		}
		return distNode{d: t.dist, far: t.kind == tokBeyond, sel: a}, nil
	}
	return p.primary()
}

func (p *parser) primary() (node, error) {
	t := p.tok
	switch {
	case t.kind == tokOpen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		a, err := p.or()
		if err != nil {
			return nil, err
		}
		if p.tok.kind != tokClose {
			if p.tok.kind == tokEOF {
				return nil, syntaxError(p.lex.expr, p.tok.pos, "missing ) for the ( at offset %d", t.pos)
			}
			return nil, p.unexpected()
		}
		return a, p.advance()
	case t.kind == tokAll:
		return allNode{}, p.advance()
	case t.kind == tokResidues:
		r, err := p.selector(t)
		if err != nil {
			return nil, err
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		if !p.tok.isAtomSelector() || p.tok.pos != t.end {
			return r, nil
		}
		a, err := p.selector(p.tok)
		if err != nil {
			return nil, err
		}
		return andNode{r, a}, p.advance()
	case t.isAtomSelector():
		a, err := p.selector(t)
		if err != nil {
			return nil, err
		}
		return a, p.advance()
	}
	return nil, p.unexpected()
}

// selector parses the comma-separated list of a selector token.
func (p *parser) selector(t token) (node, error) {
	n := selNode{kind: t.kind}
	off := t.lpos
	for _, s := range strings.Split(t.list, ",") {
		it, err := parseItem(p.lex.expr, s, off, t.kind)
		if err != nil {
			return nil, err
		}
		n.items = append(n.items, it)
		off += len(s) + 1
	}
	return n, nil
}

// parseItem parses one list element s, found at offset off. Elements
// starting with digits followed by nothing or a dash are ranges, the
// rest are names.
func parseItem(expr, s string, off int, kind tokenKind) (item, error) {
	if s == "" {
		return item{}, syntaxError(expr, off, "empty selector")
	}
	k := 0
	for k < len(s) && isDigit(s[k]) {
		k++
	}
	numbers := kind == tokResidues || kind == tokAtoms
	if numbers && k > 0 && (k == len(s) || s[k] == '-') {
		lo, _ := strconv.Atoi(s[:k])
		hi := lo
		if k < len(s) {
			rest := s[k+1:]
			if rest == "" {
				return item{}, syntaxError(expr, off+k+1, "missing end of range")
			}
			j := 0
			for j < len(rest) && isDigit(rest[j]) {
				j++
			}
			if j != len(rest) {
				return item{}, syntaxError(expr, off+k+1+j, "invalid end of range")
			}
			hi, _ = strconv.Atoi(rest)
		}
		if lo < 1 || hi < lo {
			return item{}, syntaxError(expr, off, "invalid range %s", s)
		}
		return item{lo: lo, hi: hi}, nil
	}
	if kind == tokElements {
		z := parm.AtomicNumberOf(s)
		if z < 0 {
			return item{}, syntaxError(expr, off, "unknown element %s", s)
		}
		return item{name: strings.ToUpper(s), z: z}, nil
	}
	name := strings.ToUpper(s)
	if _, err := path.Match(name, ""); err != nil {
		return item{}, syntaxError(expr, off, "invalid name pattern %s", s)
	}
	return item{name: name}, nil
}
