/*
 * graph.go, part of goParm.
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
	"slices"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/graph/traverse"
)

// BondGraph returns the bonds of the topology as an undirected graph.
// Node IDs are atom indexes, and every atom is a node, bonded or not.
// Dialects that keep their bonds in a term list of their own (named
// "bond") contribute those too.
func (T *Topology) BondGraph() *simple.UndirectedGraph {
	g := simple.NewUndirectedGraph()
	for i := range T.atoms {
		g.AddNode(simple.Node(i))
	}
	for _, b := range T.bonds {
		g.SetEdge(g.NewEdge(simple.Node(b.Atoms[0]), simple.Node(b.Atoms[1])))
	}
	for _, x := range T.extra {
		if x.def.Name != "bond" || x.def.Atoms != 2 {
			continue
		}
		for _, t := range x.terms {
			g.SetEdge(g.NewEdge(simple.Node(t[0]), simple.Node(t[1])))
		}
	}
	return g
}

// Molecules returns the atoms of each covalently bonded molecule. Atoms
// are sorted within each molecule, and molecules by their first atom.
func (T *Topology) Molecules() [][]int {
	cc := topo.ConnectedComponents(T.BondGraph())
	ret := make([][]int, 0, len(cc))
	for _, c := range cc {
		ret = append(ret, nodeIDs(c))
	}
	slices.SortFunc(ret, func(a, b []int) int { return a[0] - b[0] })
	return ret
}

// DerivedExclusions returns, for each atom, the atoms with larger
// indexes that are one, two or three bonds away from it (the 1-2, 1-3 and
// 1-4 pairs), sorted.
func (T *Topology) DerivedExclusions() [][]int {
	g := T.BondGraph()
	ret := make([][]int, len(T.atoms))
	var bf traverse.BreadthFirst
	for i := range T.atoms {
		var near []graph.Node
		bf.Walk(g, simple.Node(i), func(n graph.Node, d int) bool {
			if d > 3 {
				return true
			}
			if d > 0 && int(n.ID()) > i {
				near = append(near, n)
			}
			return false
		})
		bf.Reset()
		ret[i] = nodeIDs(near)
	}
	return ret
}

func nodeIDs(n []graph.Node) []int {
	ret := make([]int, 0, len(n))
	for _, v := range n {
		ret = append(ret, int(v.ID()))
	}
	slices.Sort(ret)
	return ret
}

// contiguousMolecules returns the size of each molecule, or false if some
// molecule doesn't span a contiguous range of atoms.
func (T *Topology) contiguousMolecules() ([]int, bool) {
	mols := T.Molecules()
	sizes := make([]int, len(mols))
	next := 0
	for i, m := range mols {
		if m[0] != next || m[len(m)-1] != next+len(m)-1 {
			return nil, false
		}
		sizes[i] = len(m)
		next += len(m)
	}
	return sizes, true
}
