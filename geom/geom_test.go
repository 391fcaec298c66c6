/*
geom_test.go, part of Trenza



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
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

const tol = 1e-9

func randcoords(r *rand.Rand, atoms int) []float64 {
	c := make([]float64, 3*atoms)
	for i := range c {
		c[i] = 10 * (r.Float64() - 0.5)
	}
	return c
}

func TestRMSD(Te *testing.T) {
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 20; i++ {
		a := randcoords(r, 12)
		b := randcoords(r, 12)
		if d := RMSD(a, a); d != 0 {
			Te.Errorf("RMSD of a buffer with itself should be 0, got %v", d)
		}
		if ab, ba := RMSD(a, b), RMSD(b, a); math.Abs(ab-ba) > tol {
			Te.Errorf("RMSD not symmetric: %v vs %v", ab, ba)
		}
	}
	//every atom displaced by 2 A along one axis: the per-axis mean square is 4/3.
	a := []float64{0, 0, 0, 1, 1, 1, 5, 0, 0}
	b := []float64{2, 0, 0, 1, 3, 1, 5, 0, -2}
	if d := RMSD(a, b); math.Abs(d-2/math.Sqrt(3)) > tol {
		Te.Errorf("expected RMSD 2/sqrt(3), got %v", d)
	}
	if d := RMSD([]float64{0, 0, 0}, []float64{1, 1, 1}); math.Abs(d-1) > tol {
		Te.Errorf("a unit displacement on every axis should give RMSD 1, got %v", d)
	}
	if d := RMSD(nil, nil); d != 0 {
		Te.Errorf("RMSD of empty buffers should be 0, got %v", d)
	}
}

func TestStep(Te *testing.T) {
	H := NewHelix(3.4, 0, 0, 0, 0, 36)
	p := H.Step.Apply(r3.Vec{X: 1})
	s, c := math.Sincos(36 * math.Pi / 180)
	if math.Abs(p.X-c) > tol || math.Abs(p.Y-s) > tol || math.Abs(p.Z-3.4) > tol {
		Te.Errorf("unexpected stepped point %v", p)
	}
	//ten steps of 36 degrees are a full turn
	p10 := H.StepN(10).Apply(r3.Vec{X: 1, Y: 2, Z: 0})
	if math.Abs(p10.X-1) > 1e-9 || math.Abs(p10.Y-2) > 1e-9 || math.Abs(p10.Z-34) > 1e-9 {
		Te.Errorf("ten steps should be a full turn plus 34 A, got %v", p10)
	}
}

func TestGlobal(Te *testing.T) {
	H := NewHelix(3.4, -1.5, 0.5, 0, 0, 36)
	p := H.Global.Apply(r3.Vec{X: 1, Y: 1, Z: 1})
	if math.Abs(p.X+0.5) > tol || math.Abs(p.Y-1.5) > tol || math.Abs(p.Z-1) > tol {
		Te.Errorf("displacement without rotations should only translate, got %v", p)
	}
	H = NewHelix(3.4, 0, 0, 90, 0, 36)
	p = H.Global.Apply(r3.Vec{Y: 1})
	if math.Abs(p.Z-1) > tol || math.Abs(p.Y) > tol {
		Te.Errorf("an inclination of 90 degrees should take y into z, got %v", p)
	}
}

// The closure distance only depends on the relative placement of head and tail, so
// it can't change under a screw motion along the helical axis, which commutes with the step.
func TestClosureDistanceInvariance(Te *testing.T) {
	H := NewHelix(3.1, 0, 0, 0, 0, 32.7)
	r := rand.New(rand.NewSource(11))
	for i := 0; i < 20; i++ {
		c := randcoords(r, 6)
		d := H.ClosureDistance(c, 2, 5)
		screw := Transform{Rot: rotZ(2 * math.Pi * r.Float64()), Trans: r3.Vec{Z: 20 * (r.Float64() - 0.5)}}
		moved := append([]float64(nil), c...)
		screw.ApplyAll(moved)
		if d2 := H.ClosureDistance(moved, 2, 5); math.Abs(d-d2) > 1e-9 {
			Te.Errorf("closure distance changed under a screw motion: %v vs %v", d, d2)
		}
	}
	//a tail that is the head moved back by one step closes exactly.
	c := make([]float64, 6)
	head := r3.Vec{X: 4, Y: 1, Z: 2}
	SetVec(c, 0, head)
	back := Transform{Rot: rotZ(-32.7 * math.Pi / 180), Trans: r3.Vec{}}
	SetVec(c, 1, back.Apply(r3.Sub(head, r3.Vec{Z: 3.1})))
	if d := H.ClosureDistance(c, 1, 2); d > 1e-9 {
		Te.Errorf("expected a closed step, got distance %v", d)
	}
}

func TestRotateAbout(Te *testing.T) {
	a := r3.Vec{X: 1, Y: 1, Z: 0}
	b := r3.Vec{}
	c := r3.Vec{X: 1.5}
	d := r3.Vec{X: 2, Y: 0.5, Z: 0.7}
	coords := make([]float64, 12)
	for i, v := range []r3.Vec{a, b, c, d} {
		SetVec(coords, i, v)
	}
	before := Dihedral(a, b, c, d)
	RotateAbout(coords, []int{3}, b, c, 0.3)
	after := Dihedral(Vec(coords, 0), Vec(coords, 1), Vec(coords, 2), Vec(coords, 3))
	if math.Abs(after-before-0.3) > tol {
		Te.Errorf("a rotation of 0.3 rad about b->c should add 0.3 to the dihedral, got %v", after-before)
	}
	if math.Abs(Distance(coords, 2, 3)-r3.Norm(r3.Sub(d, c))) > tol {
		Te.Errorf("rotation changed a bond length")
	}
}

func TestAngle(Te *testing.T) {
	if a := Angle(r3.Vec{X: 1}, r3.Vec{}, r3.Vec{Y: 2}); math.Abs(a-math.Pi/2) > tol {
		Te.Errorf("expected a right angle, got %v", a)
	}
}
