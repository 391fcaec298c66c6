/*
filter.go, part of Trenza



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

package search

import (
	"math"

	"github.com/rmera/trenza/energy"
)

// Ceilings are the largest energies, in kcal/mol, a conformer can have to be admitted.
// Torsion applies to the total torsion energy.
type Ceilings struct {
	Total   float64
	Angle   float64
	Bond    float64
	VDW     float64
	Torsion float64
}

// NoCeilings returns ceilings that admit any finite energy.
func NoCeilings() Ceilings {
	inf := math.Inf(1)
	return Ceilings{Total: inf, Angle: inf, Bond: inf, VDW: inf, Torsion: inf}
}

// Pass returns true if no energy in e is above its ceiling. Values equal to
// the ceiling pass, NaN values never do.
func (C Ceilings) Pass(e energy.Energies) bool {
	vals := [5]float64{e.Total, e.Angle, e.Bond, e.VDW, e.TotalTorsion}
	maxs := [5]float64{C.Total, C.Angle, C.Bond, C.VDW, C.Torsion}
	for i, v := range vals {
		if !(v <= maxs[i]) {
			return false
		}
	}
	return true
}
