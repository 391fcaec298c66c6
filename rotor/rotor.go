/*
rotor.go, part of Trenza



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

// Package rotor finds the rotatable bonds of a molecule and sets their dihedral angles.
package rotor

import (
	"github.com/rmera/trenza/chain"
	"github.com/rmera/trenza/geom"
)

// Rotor is a rotatable bond B-C. The dihedral A-B-C-D is used as the reference
// for its angle, and the atoms in Moving (the C side of the bond) are the ones
// that move when the angle is set.
type Rotor struct {
	Ref    [4]int
	Moving []int
}

// Bond returns the two atoms of the rotatable bond (0-based).
func (R *Rotor) Bond() (int, int) {
	return R.Ref[1], R.Ref[2]
}

// Angle returns the current value of the reference dihedral, in radians.
func (R *Rotor) Angle(coords []float64) float64 {
	return geom.Dihedral(geom.Vec(coords, R.Ref[0]), geom.Vec(coords, R.Ref[1]), geom.Vec(coords, R.Ref[2]), geom.Vec(coords, R.Ref[3]))
}

// SetToAngle rotates the moving atoms of the rotor so the reference dihedral
// takes the value angle (radians). coords is modified in place.
func (R *Rotor) SetToAngle(coords []float64, angle float64) {
	delta := angle - R.Angle(coords)
	geom.RotateAbout(coords, R.Moving, geom.Vec(coords, R.Ref[1]), geom.Vec(coords, R.Ref[2]), delta)
}

// Setup returns the rotatable bonds of the molecule with bond graph g and element symbols symbols,
// ordered by their bonds. A bond is rotatable if it is not part of a ring and both of
// its atoms have at least one other heavy-atom neighbour. Atoms in fixed never move:
// each rotor moves the side of its bond that has no fixed atoms (the smaller side if
// neither has any), and bonds with fixed atoms on both sides are not rotors.
func Setup(g *chain.Graph, symbols []string, fixed []int) []*Rotor {
	isfixed := make([]bool, g.Len())
	for _, v := range fixed {
		isfixed[v] = true
	}
	heavy := func(i int) bool { return symbols[i] != "H" && symbols[i] != "D" }
	heavydeg := func(i int) int {
		n := 0
		for _, v := range g.Neighbors(i) {
			if heavy(v) {
				n++
			}
		}
		return n
	}
	rotors := make([]*Rotor, 0, len(g.Bonds()))
	for _, bond := range g.Bonds() {
		b, c := bond[0], bond[1]
		if !heavy(b) || !heavy(c) || heavydeg(b) < 2 || heavydeg(c) < 2 {
			continue
		}
		if g.InRing(b, c) {
			continue
		}
		cside := g.Side(b, c)
		bside := g.Side(c, b)
		cfix, bfix := anyFixed(cside, isfixed), anyFixed(bside, isfixed)
		switch {
		case cfix && bfix:
			continue
		case cfix, !bfix && len(bside) < len(cside):
			b, c = c, b
			cside = bside
		}
		rotors = append(rotors, &Rotor{
			Ref:    [4]int{refNeighbor(g, b, c, heavy), b, c, refNeighbor(g, c, b, heavy)},
			Moving: without(cside, c),
		})
	}
	return rotors
}

// refNeighbor returns the first heavy neighbour of at that is not other.
func refNeighbor(g *chain.Graph, at, other int, heavy func(int) bool) int {
	for _, v := range g.Neighbors(at) {
		if v != other && heavy(v) {
			return v
		}
	}
	return -1
}

func anyFixed(atoms []int, fixed []bool) bool {
	for _, v := range atoms {
		if fixed[v] {
			return true
		}
	}
	return false
}

func without(atoms []int, at int) []int {
	ret := make([]int, 0, len(atoms))
	for _, v := range atoms {
		if v != at {
			ret = append(ret, v)
		}
	}
	return ret
}
