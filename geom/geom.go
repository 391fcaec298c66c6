/*
geom.go, part of Trenza



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

// Package geom contains the geometric primitives used by the helical search:
// vectors stored in flat coordinate buffers, rigid transforms, dihedrals,
// rotations about bonds and RMSD.
package geom

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

// Vec returns the position of the atom with the 0-based index i
// in the flat buffer coords (3 values per atom).
func Vec(coords []float64, i int) r3.Vec {
	return r3.Vec{X: coords[3*i], Y: coords[3*i+1], Z: coords[3*i+2]}
}

// SetVec puts v as the position of the atom with 0-based index i in coords.
func SetVec(coords []float64, i int, v r3.Vec) {
	coords[3*i] = v.X
	coords[3*i+1] = v.Y
	coords[3*i+2] = v.Z
}

// Atoms returns the number of atoms stored in coords.
func Atoms(coords []float64) int {
	return len(coords) / 3
}

// RMSD returns the root mean square of the per-axis differences between the two
// coordinate buffers, without any previous superposition. Both buffers must have
// the same length.
func RMSD(test, templa []float64) float64 {
	n := Atoms(test)
	if n == 0 {
		return 0
	}
	//floats.Distance gives sqrt(sum of squares), the mean is over all 3n components.
	return floats.Distance(test, templa, 2) / math.Sqrt(float64(3*n))
}

// Dihedral returns the dihedral angle, in radians, between the planes
// a-b-c and b-c-d. The result is in (-pi, pi].
func Dihedral(a, b, c, d r3.Vec) float64 {
	b1 := r3.Sub(b, a)
	b2 := r3.Sub(c, b)
	b3 := r3.Sub(d, c)
	n1 := r3.Cross(b1, b2)
	n2 := r3.Cross(b2, b3)
	return math.Atan2(r3.Norm(b2)*r3.Dot(b1, n2), r3.Dot(n1, n2))
}

// Angle returns the angle a-b-c in radians.
func Angle(a, b, c r3.Vec) float64 {
	v1 := r3.Sub(a, b)
	v2 := r3.Sub(c, b)
	cos := r3.Dot(v1, v2) / (r3.Norm(v1) * r3.Norm(v2))
	//rounding can put us slightly outside the domain of Acos
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos)
}

// RotateAbout rotates, in place, the atoms with the given 0-based indexes by angle radians
// around the axis that goes from ax1 to ax2. Positive angles follow the right-hand rule.
func RotateAbout(coords []float64, atoms []int, ax1, ax2 r3.Vec, angle float64) {
	rot := r3.NewRotation(angle, r3.Unit(r3.Sub(ax2, ax1)))
	for _, i := range atoms {
		p := r3.Sub(Vec(coords, i), ax1)
		SetVec(coords, i, r3.Add(rot.Rotate(p), ax1))
	}
}

// Distance returns the distance between the atoms i and j (0-based) in coords.
func Distance(coords []float64, i, j int) float64 {
	return r3.Norm(r3.Sub(Vec(coords, i), Vec(coords, j)))
}
