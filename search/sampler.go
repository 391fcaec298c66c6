/*
sampler.go, part of Trenza



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

// Package search implements the Monte Carlo search for closed helical backbones:
// the rotor sampler, the energy filter, the ranked ledger of admitted conformers
// and the driver that puts them together.
package search

import (
	"math"
	"math/rand"

	"github.com/rmera/trenza/geom"
	"github.com/rmera/trenza/rotor"
)

// Stiffness is the effective stiffness, in A^2, used in the probabilistic acceptance
// of rotor angles.
const Stiffness = 0.59 / 5.15

// Context is the state of a search. It is passed explicitly to the sampler
// and the driver, and is not safe for concurrent use.
type Context struct {
	Rand      *rand.Rand
	Monomer   []float64 //mutated by the sampler on every trial
	Trials    int       //trials run
	Capped    int       //trials discarded because a rotor ran out of draws
	Distant   int       //trials with a closure distance above the maximum
	Energetic int       //trials rejected by the energy filter
}

// NewContext returns a search context with a random source seeded with seed, and
// a copy of the monomer coordinates.
func NewContext(seed int64, monomer []float64) *Context {
	return &Context{
		Rand:    rand.New(rand.NewSource(seed)),
		Monomer: append([]float64(nil), monomer...),
	}
}

// Accept returns true if the distance cur is accepted given the best distance best and
// the stiffness k. cur is always accepted if it is smaller than best. Otherwise, it is
// accepted if exp(-(cur-best)^2/k) is larger than a number obtained from u, which is only
// called in that case.
func Accept(cur, best, k float64, u func() float64) bool {
	if cur < best {
		return true
	}
	d := cur - best
	return math.Exp(-d*d/k) > u()
}

// Sampler produces trial monomer geometries by setting each rotor, in order,
// to random angles until one is accepted.
type Sampler struct {
	Rotors   []*rotor.Rotor
	Helix    *geom.Helix
	Head     int //1-based
	Tail     int //1-based
	K        float64
	MaxDraws int //per rotor. 0 means no limit.
}

// Sample modifies the monomer in sc and returns the closure distance
// of the resulting geometry. It returns false if a rotor used up its MaxDraws
// without accepting an angle, in which case the geometry must be discarded.
func (S *Sampler) Sample(sc *Context) (float64, bool) {
	for _, r := range S.Rotors {
		best := math.Inf(1)
		for draws := 1; ; draws++ {
			r.SetToAngle(sc.Monomer, 2*math.Pi*sc.Rand.Float64())
			cur := S.Helix.ClosureDistance(sc.Monomer, S.Head, S.Tail)
			if Accept(cur, best, S.K, sc.Rand.Float64) {
				break
			}
			if S.MaxDraws > 0 && draws >= S.MaxDraws {
				return cur, false
			}
		}
	}
	return S.Helix.ClosureDistance(sc.Monomer, S.Head, S.Tail), true
}
