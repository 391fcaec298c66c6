/*
graph.go, part of Trenza



LICENSE

Copyright (c) 2024 Raul Mera <rmeraa{at}academicosDOTutaDOTcl>


This program, including its documentation,
is free software; you can redistribute it and/or modify
it under the terms of the GNU General Public License version 2.0 as
published by the Free Software Foundation.

This program and its documentation is distributed in the hope that
it will be useful, but WITHOUT ANY WARRANTY; without even the
implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR
PURPOSE.  See the GNU General Public License for more details.

You should have received a copy of the GNU General
Public License along with this program.  If not, see
<http://www.gnu.org/licenses/>.

*/

package chain

import (
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/traverse"
)

// Graph is the bond graph of a molecule. Node IDs are the 0-based atom indexes.
type Graph struct {
	g     *simple.UndirectedGraph
	n     int
	bonds [][2]int
}

// NewGraph builds the bond graph of a molecule with n atoms and the given bonds.
func NewGraph(n int, bonds [][2]int) *Graph {
	g := simple.NewUndirectedGraph()
	for i := 0; i < n; i++ {
		g.AddNode(simple.Node(i))
	}
	ret := &Graph{g: g, n: n, bonds: make([][2]int, 0, len(bonds))}
	for _, b := range bonds {
		if b[0] == b[1] || g.HasEdgeBetween(int64(b[0]), int64(b[1])) {
			continue
		}
		g.SetEdge(simple.Edge{F: simple.Node(b[0]), T: simple.Node(b[1])})
		i, j := b[0], b[1]
		if i > j {
			i, j = j, i
		}
		ret.bonds = append(ret.bonds, [2]int{i, j})
	}
	sort.Slice(ret.bonds, func(i, j int) bool {
		if ret.bonds[i][0] == ret.bonds[j][0] {
			return ret.bonds[i][1] < ret.bonds[j][1]
		}
		return ret.bonds[i][0] < ret.bonds[j][0]
	})
	return ret
}

// Len returns the number of atoms in the graph.
func (G *Graph) Len() int {
	return G.n
}

// Bonds returns the bonds of the graph, each with the smaller index first,
// sorted by the first and then the second index.
func (G *Graph) Bonds() [][2]int {
	return G.bonds
}

// Bonded returns true if atoms i and j share a bond.
func (G *Graph) Bonded(i, j int) bool {
	return G.g.HasEdgeBetween(int64(i), int64(j))
}

// Neighbors returns the sorted indexes of the atoms bonded to i.
func (G *Graph) Neighbors(i int) []int {
	nodes := graph.NodesOf(G.g.From(int64(i)))
	ret := make([]int, 0, len(nodes))
	for _, v := range nodes {
		ret = append(ret, int(v.ID()))
	}
	sort.Ints(ret)
	return ret
}

// Side returns the sorted indexes of the atoms that can be reached from "to"
// without crossing the bond from-to. "to" itself is included.
func (G *Graph) Side(from, to int) []int {
	ret := make([]int, 0, G.n)
	bf := traverse.BreadthFirst{
		Traverse: func(e graph.Edge) bool {
			f, t := int(e.From().ID()), int(e.To().ID())
			return !((f == from && t == to) || (f == to && t == from))
		},
		Visit: func(n graph.Node) {
			ret = append(ret, int(n.ID()))
		},
	}
	bf.Walk(G.g, simple.Node(to), nil)
	sort.Ints(ret)
	if i := sort.SearchInts(ret, to); i == len(ret) || ret[i] != to {
		ret = append(ret, to)
		sort.Ints(ret)
	}
	return ret
}

// InRing returns true if the bond i-j is part of a ring, i.e. if
// i can still be reached from j after the bond is removed.
func (G *Graph) InRing(i, j int) bool {
	for _, v := range G.Side(i, j) {
		if v == i {
			return true
		}
	}
	return false
}

// Separations returns, for every pair of atoms (smaller index first) that are
// connected through at most max bonds, the number of bonds that separate them.
func (G *Graph) Separations(max int) map[[2]int]int {
	ret := make(map[[2]int]int)
	for i := 0; i < G.n; i++ {
		var bf traverse.BreadthFirst
		bf.Walk(G.g, simple.Node(i), func(n graph.Node, d int) bool {
			if d > max {
				return true
			}
			j := int(n.ID())
			if j > i {
				ret[[2]int{i, j}] = d
			}
			return false
		})
	}
	return ret
}
