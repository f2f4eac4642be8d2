/*
 * mask.go, part of goParm.
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
	"path"
	"strings"

	v3 "github.com/rmera/goparm/v3"
)

// Topology is what a mask needs to know about a topology. Atom and
// residue indexes are 0-based, and ResidueRange returns the first atom
// of a residue and the one after its last. *parm.Topology implements it.
type Topology interface {
	NAtoms() int
	AtomName(i int) string
	AtomType(i int) string
	AtomicNumber(i int) int
	NResidues() int
	ResidueName(r int) string
	ResidueRange(r int) (int, int)
}

// Mask is a compiled selection expression. It holds no state between
// evaluations, so it can be evaluated concurrently.
type Mask struct {
	expr string
	root node
}

// Compile parses the mask expression expr. It returns a *SyntaxError
// if expr is not a valid mask.
func Compile(expr string) (*Mask, error) {
	p := &parser{lex: &lexer{expr: expr}}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.tok.kind == tokEOF {
		return nil, syntaxError(expr, p.tok.pos, "empty mask")
	}
	root, err := p.or()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, p.unexpected()
	}
	return &Mask{expr: expr, root: root}, nil
}

// MustCompile is like Compile but panics if expr is not valid.
func MustCompile(expr string) *Mask {
	M, err := Compile(expr)
	if err != nil {
		panic(err.Error())
	}
	return M
}

// NeedsGeometry returns true if evaluating the mask requires coordinates.
func (M *Mask) NeedsGeometry() bool {
	return M.root.geometry()
}

// String returns the mask with all its implicit grouping made explicit.
func (M *Mask) String() string {
	return M.root.String()
}

// Expr returns the expression the mask was compiled from.
func (M *Mask) Expr() string {
	return M.expr
}

// Evaluate returns, for each atom of t, whether the mask selects it.
// coords may be nil unless the mask needs geometry, in which case it
// must have one vector per atom.
func (M *Mask) Evaluate(t Topology, coords *v3.Matrix) ([]bool, error) {
	if M.NeedsGeometry() {
		n := -1
		if coords != nil {
			n = coords.NVecs()
		}
		if n != t.NAtoms() {
			return nil, &MissingGeometryError{Expr: M.expr, NAtoms: t.NAtoms(), NCoords: n}
		}
	}
	e := &env{t: t, coords: coords, n: t.NAtoms()}
	return M.root.eval(e), nil
}

// Select compiles expr and evaluates it against t.
func Select(t Topology, coords *v3.Matrix, expr string) ([]bool, error) {
	M, err := Compile(expr)
	if err != nil {
		return nil, err
	}
	return M.Evaluate(t, coords)
}

// Indexes returns the indexes of the true elements of sel.
func Indexes(sel []bool) []int {
	var ret []int
	for i, v := range sel {
		if v {
			ret = append(ret, i)
		}
	}
	return ret
}

type env struct {
	t      Topology
	coords *v3.Matrix
	n      int
}

func (n orNode) eval(e *env) []bool {
	a, b := n.a.eval(e), n.b.eval(e)
	for i := range a {
		a[i] = a[i] || b[i]
	}
	return a
}

func (n andNode) eval(e *env) []bool {
	a, b := n.a.eval(e), n.b.eval(e)
	for i := range a {
		a[i] = a[i] && b[i]
	}
	return a
}

func (n notNode) eval(e *env) []bool {
	a := n.a.eval(e)
	for i := range a {
		a[i] = !a[i]
	}
	return a
}

func (n allNode) eval(e *env) []bool {
	ret := make([]bool, e.n)
	for i := range ret {
		ret[i] = true
	}
	return ret
}

func (n distNode) eval(e *env) []bool {
	return e.coords.Within(n.sel.eval(e), n.d, n.far)
}

func (n selNode) eval(e *env) []bool {
	ret := make([]bool, e.n)
	if n.kind == tokResidues {
		for r := 0; r < e.t.NResidues(); r++ {
			if !matches(n.items, r+1, e.t.ResidueName(r)) {
				continue
			}
			start, end := e.t.ResidueRange(r)
			for i := start; i < end; i++ {
				ret[i] = true
			}
		}
		return ret
	}
	for i := range ret {
		switch n.kind {
		case tokAtoms:
			ret[i] = matches(n.items, i+1, e.t.AtomName(i))
		case tokTypes:
			ret[i] = matches(n.items, 0, e.t.AtomType(i))
		case tokElements:
			z := e.t.AtomicNumber(i)
			for _, it := range n.items {
				if it.z == z {
					ret[i] = true
					break
				}
			}
		}
	}
	return ret
}

// matches returns true if the 1-based number, or the name, match
// any of the items.
func matches(items []item, number int, name string) bool {
	name = strings.ToUpper(strings.TrimSpace(name))
	for _, it := range items {
		if it.name == "" {
			if number >= it.lo && number <= it.hi {
				return true
			}
			continue
		}
		if ok, _ := path.Match(it.name, name); ok {
			return true
		}
	}
	return false
}
