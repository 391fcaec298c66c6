/*
helix.go, part of Trenza



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

package geom

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Transform is a rigid transformation x' = Rot*x + Trans.
type Transform struct {
	Rot   *mat.Dense
	Trans r3.Vec
}

// Identity returns the transformation that leaves every point where it is.
func Identity() Transform {
	return Transform{Rot: eye(), Trans: r3.Vec{}}
}

// Apply returns v under the transformation.
func (T Transform) Apply(v r3.Vec) r3.Vec {
	return r3.Add(mulVec(T.Rot, v), T.Trans)
}

// ApplyAll applies the transformation in place to every atom in coords.
func (T Transform) ApplyAll(coords []float64) {
	for i := 0; i < Atoms(coords); i++ {
		SetVec(coords, i, T.Apply(Vec(coords, i)))
	}
}

// Then returns the transformation equivalent to applying T and then U.
func (T Transform) Then(U Transform) Transform {
	rot := mat.NewDense(3, 3, nil)
	rot.Mul(U.Rot, T.Rot)
	return Transform{Rot: rot, Trans: U.Apply(T.Trans)}
}

// Helix holds the rigid transformations derived from the helical parameters.
// Step takes one monomer into the place of the next one along the helix.
// Global places the reference monomer in the helical frame.
type Helix struct {
	Step   Transform
	Global Transform
}

// NewHelix builds the helical transformations from the usual helical parameters.
// Distances are in Angstrom and angles in degrees. The step is a rotation
// of twist around the helical (z) axis followed by a translation of rise along it.
// The global placement translates the monomer by (xdisp, ydisp, 0) and then
// rotates it by the inclination around x followed by the tip around y.
func NewHelix(rise, xdisp, ydisp, inclination, tip, twist float64) *Helix {
	step := Transform{Rot: rotZ(deg2rad(twist)), Trans: r3.Vec{Z: rise}}
	rot := mat.NewDense(3, 3, nil)
	rot.Mul(rotY(deg2rad(tip)), rotX(deg2rad(inclination)))
	//translate first, then rotate, so the translation is rotated too.
	global := Transform{Rot: rot, Trans: mulVec(rot, r3.Vec{X: xdisp, Y: ydisp})}
	return &Helix{Step: step, Global: global}
}

// StepN returns the transformation that takes the first monomer into
// the place of the nth one (StepN(0) is the identity).
func (H *Helix) StepN(n int) Transform {
	t := Identity()
	for i := 0; i < n; i++ {
		t = t.Then(H.Step)
	}
	return t
}

// ClosureDistance returns the distance between the head atom and the tail
// atom after the latter is moved by one helical step. Both indexes are 1-based.
func (H *Helix) ClosureDistance(coords []float64, head, tail int) float64 {
	h := Vec(coords, head-1)
	t := H.Step.Apply(Vec(coords, tail-1))
	return r3.Norm(r3.Sub(h, t))
}

// Dyad returns the 2-fold rotation around the helical x axis that takes
// one strand of a duplex into the place of its complementary strand.
func Dyad() Transform {
	return Transform{Rot: rotX(math.Pi), Trans: r3.Vec{}}
}

func deg2rad(a float64) float64 {
	return a * math.Pi / 180
}

func eye() *mat.Dense {
	return mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})
}

func rotX(a float64) *mat.Dense {
	s, c := math.Sincos(a)
	return mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, c, -s,
		0, s, c})
}

func rotY(a float64) *mat.Dense {
	s, c := math.Sincos(a)
	return mat.NewDense(3, 3, []float64{
		c, 0, s,
		0, 1, 0,
		-s, 0, c})
}

func rotZ(a float64) *mat.Dense {
	s, c := math.Sincos(a)
	return mat.NewDense(3, 3, []float64{
		c, -s, 0,
		s, c, 0,
		0, 0, 1})
}

func mulVec(m mat.Matrix, v r3.Vec) r3.Vec {
	return r3.Vec{
		X: m.At(0, 0)*v.X + m.At(0, 1)*v.Y + m.At(0, 2)*v.Z,
		Y: m.At(1, 0)*v.X + m.At(1, 1)*v.Y + m.At(1, 2)*v.Z,
		Z: m.At(2, 0)*v.X + m.At(2, 1)*v.Y + m.At(2, 2)*v.Z,
	}
}
