/*
template.go, part of Trenza



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
	"fmt"
	"strings"

	chem "github.com/rmera/gochem"

	"github.com/rmera/trenza/geom"
)

// Template is the full strand (or duplex) built from one sampled monomer.
// Residue i is the monomer, with the base for the ith position of the strand,
// moved by i helical steps. The tail linker of each residue only stands in for
// the head of its neighbour, so it is not part of the chain.
type Template struct {
	residues []*Monomer
	steps    []geom.Transform
	double   bool
	top      *chem.Topology
	graph    *Graph
}

// NewTemplate builds the chain template for the given residues, all sharing the same backbone.
// The first residue is the one whose backbone is sampled. If double is true, a
// complementary strand is added, related to the first one by the helical dyad.
func NewTemplate(h *geom.Helix, residues []*Monomer, double bool) (*Template, error) {
	if len(residues) == 0 {
		return nil, fmt.Errorf("empty strand")
	}
	first := residues[0]
	if first.tailNeighbor() < 0 {
		return nil, fmt.Errorf("the tail linker (%d) is not bonded to any backbone atom", first.Tail)
	}
	for _, v := range residues[1:] {
		if v.Backbone != first.Backbone || v.Head != first.Head || v.Tail != first.Tail {
			return nil, fmt.Errorf("residue %s does not share the backbone of %s", v.Code, first.Code)
		}
	}
	T := &Template{residues: residues, double: double}
	T.steps = make([]geom.Transform, len(residues))
	t := geom.Identity()
	for i := range residues {
		T.steps[i] = t
		t = t.Then(h.Step)
	}
	atoms := make([]*chem.Atom, 0, len(residues)*len(first.Atoms))
	bonds := make([][2]int, 0, len(residues)*len(first.Atoms))
	atoms, bonds = T.strandTopology(atoms, bonds, "A", 0)
	if double {
		atoms, bonds = T.strandTopology(atoms, bonds, "B", len(residues))
	}
	T.top = chem.NewTopology(0, 1, atoms)
	T.graph = NewGraph(len(atoms), bonds)
	return T, nil
}

// strandTopology appends the atoms and bonds of one strand.
func (T *Template) strandTopology(atoms []*chem.Atom, bonds [][2]int, chain string, molid0 int) ([]*chem.Atom, [][2]int) {
	tail := T.residues[0].Tail - 1
	head := T.residues[0].Head - 1
	tn := T.residues[0].tailNeighbor()
	offset := len(atoms)
	var prevhead int
	for i, res := range T.residues {
		//old index -> index in the chain
		newindex := make([]int, len(res.Atoms))
		n := 0
		for j, at := range res.Atoms {
			if j == tail {
				newindex[j] = -1
				continue
			}
			a := newAtom(at)
			a.MolID = molid0 + i + 1
			a.MolName = resName(res.Code)
			a.Chain = chain
			a.ID = len(atoms) + 1
			atoms = append(atoms, a)
			newindex[j] = offset + n
			n++
		}
		for _, b := range res.Graph.Bonds() {
			if newindex[b[0]] < 0 || newindex[b[1]] < 0 {
				continue
			}
			bonds = append(bonds, [2]int{newindex[b[0]], newindex[b[1]]})
		}
		if i > 0 {
			bonds = append(bonds, [2]int{prevhead, newindex[tn]})
		}
		prevhead = newindex[head]
		offset += n
	}
	return atoms, bonds
}

// Len returns the number of atoms in the chain.
func (T *Template) Len() int {
	return T.top.Len()
}

// Top returns the atoms of the chain.
func (T *Template) Top() *chem.Topology {
	return T.top
}

// Atoms returns the atoms of the chain as a slice.
func (T *Template) Atoms() []*chem.Atom {
	ret := make([]*chem.Atom, T.top.Len())
	for i := range ret {
		ret[i] = T.top.Atom(i)
	}
	return ret
}

// Graph returns the bond graph of the chain.
func (T *Template) Graph() *Graph {
	return T.graph
}

// Residues returns the number of residues in one strand.
func (T *Template) Residues() int {
	return len(T.residues)
}

// Materialize returns a new buffer with the coordinates of the whole chain
// generated from the given monomer coordinates. The monomer is not modified.
func (T *Template) Materialize(monomer []float64) []float64 {
	tail := T.residues[0].Tail - 1
	nbb := T.residues[0].Backbone
	ret := make([]float64, 0, 3*T.Len())
	for i, res := range T.residues {
		start := len(ret)
		for j := 0; j < nbb; j++ {
			if j == tail {
				continue
			}
			ret = append(ret, monomer[3*j:3*j+3]...)
		}
		ret = append(ret, res.Coords[3*nbb:]...)
		T.steps[i].ApplyAll(ret[start:])
	}
	if T.double {
		comp := append([]float64(nil), ret...)
		geom.Dyad().ApplyAll(comp)
		ret = append(ret, comp...)
	}
	return ret
}

// Reference returns the chain generated from the unperturbed monomer.
func (T *Template) Reference() []float64 {
	return T.Materialize(T.residues[0].Coords)
}

func resName(code string) string {
	code = strings.ToUpper(code)
	if len(code) > 3 {
		code = code[:3]
	}
	return code
}
