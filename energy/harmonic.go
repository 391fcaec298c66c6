/*
harmonic.go, part of Trenza



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

package energy

import (
	"math"

	chem "github.com/rmera/gochem"

	"github.com/rmera/trenza/chain"
	"github.com/rmera/trenza/geom"
)

// Force constants for the harmonic force field.
const (
	BondK    = 300.0 // kcal/(mol A^2)
	AngleK   = 50.0  // kcal/(mol rad^2)
	TorsionV = 0.5   // kcal/mol, threefold barrier
)

const tetrahedral = 109.47 * math.Pi / 180

//covalent radii in A
var covrad = map[string]float64{
	"H": 0.31, "C": 0.76, "N": 0.71, "O": 0.66, "P": 1.07, "S": 1.05,
	"F": 0.57, "Cl": 1.02, "Br": 1.20,
}

//UFF van der Waals distances (A) and well depths (kcal/mol)
var uffx = map[string]float64{
	"H": 2.886, "C": 3.851, "N": 3.660, "O": 3.500, "P": 4.147, "S": 4.035,
	"F": 3.364, "Cl": 3.947, "Br": 4.189,
}

var uffd = map[string]float64{
	"H": 0.044, "C": 0.105, "N": 0.069, "O": 0.060, "P": 0.305, "S": 0.274,
	"F": 0.050, "Cl": 0.227, "Br": 0.251,
}

func lookup(table map[string]float64, symbol string) float64 {
	if v, ok := table[symbol]; ok {
		return v
	}
	return table["C"]
}

type bondTerm struct {
	i, j int
	r0   float64
}

type angleTerm struct {
	i, j, k int
	t0      float64
}

type pairTerm struct {
	i, j      int
	rmin, eps float64
	is14      bool
}

// Harmonic is a simple force field whose equilibrium bond lengths and angles are
// taken from a reference geometry of the chain. Within a residue the reference is the
// unperturbed monomer, so only the geometry of the links between residues and the
// torsions are strained by the sampling. Terms that span two residues use the sum of
// covalent radii and the tetrahedral angle as equilibrium values.
type Harmonic struct {
	bonds    []bondTerm
	angles   []angleTerm
	torsions [][4]int
	pairs    []pairTerm
}

// NewHarmonic sets up the force field for atoms, with bond graph g and reference coordinates ref.
func NewHarmonic(atoms []*chem.Atom, g *chain.Graph, ref []float64) *Harmonic {
	H := new(Harmonic)
	same := func(ids ...int) bool {
		for _, v := range ids[1:] {
			if atoms[v].MolID != atoms[ids[0]].MolID || atoms[v].Chain != atoms[ids[0]].Chain {
				return false
			}
		}
		return true
	}
	for _, b := range g.Bonds() {
		r0 := lookup(covrad, atoms[b[0]].Symbol) + lookup(covrad, atoms[b[1]].Symbol)
		if same(b[0], b[1]) {
			r0 = geom.Distance(ref, b[0], b[1])
		}
		H.bonds = append(H.bonds, bondTerm{i: b[0], j: b[1], r0: r0})
	}
	for j := 0; j < g.Len(); j++ {
		n := g.Neighbors(j)
		for x := 0; x < len(n); x++ {
			for y := x + 1; y < len(n); y++ {
				i, k := n[x], n[y]
				t0 := tetrahedral
				if same(i, j, k) {
					t0 = geom.Angle(geom.Vec(ref, i), geom.Vec(ref, j), geom.Vec(ref, k))
				}
				H.angles = append(H.angles, angleTerm{i: i, j: j, k: k, t0: t0})
			}
		}
	}
	for _, b := range g.Bonds() {
		if g.InRing(b[0], b[1]) {
			continue
		}
		for _, a := range g.Neighbors(b[0]) {
			if a == b[1] {
				continue
			}
			for _, d := range g.Neighbors(b[1]) {
				if d == b[0] || d == a {
					continue
				}
				H.torsions = append(H.torsions, [4]int{a, b[0], b[1], d})
			}
		}
	}
	near := g.Separations(3)
	for i := 0; i < len(atoms); i++ {
		for j := i + 1; j < len(atoms); j++ {
			sep, ok := near[[2]int{i, j}]
			if ok && sep < 3 {
				continue
			}
			si, sj := atoms[i].Symbol, atoms[j].Symbol
			H.pairs = append(H.pairs, pairTerm{
				i:    i,
				j:    j,
				rmin: math.Sqrt(lookup(uffx, si) * lookup(uffx, sj)),
				eps:  math.Sqrt(lookup(uffd, si) * lookup(uffd, sj)),
				is14: ok && sep == 3,
			})
		}
	}
	return H
}

// Energies returns the energy components for the chain coordinates coords.
func (H *Harmonic) Energies(coords []float64) (Energies, error) {
	var e Energies
	for _, b := range H.bonds {
		d := geom.Distance(coords, b.i, b.j) - b.r0
		e.Bond += BondK * d * d
	}
	for _, a := range H.angles {
		d := geom.Angle(geom.Vec(coords, a.i), geom.Vec(coords, a.j), geom.Vec(coords, a.k)) - a.t0
		e.Angle += AngleK * d * d
	}
	for _, t := range H.torsions {
		phi := geom.Dihedral(geom.Vec(coords, t[0]), geom.Vec(coords, t[1]), geom.Vec(coords, t[2]), geom.Vec(coords, t[3]))
		e.Torsion += TorsionV * (1 + math.Cos(3*phi))
	}
	var vdw14 float64
	for _, p := range H.pairs {
		r := geom.Distance(coords, p.i, p.j)
		x6 := math.Pow(p.rmin/r, 6)
		v := p.eps * (x6*x6 - 2*x6)
		e.VDW += v
		if p.is14 {
			vdw14 += v
		}
	}
	e.TotalTorsion = e.Torsion + vdw14
	e.Total = e.Bond + e.Angle + e.Torsion + e.VDW
	return e, nil
}
