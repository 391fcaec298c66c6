/*
energy.go, part of Trenza



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

// Package energy evaluates the energy of chain conformers. All energies are in kcal/mol.
package energy

import (
	"fmt"
	"strings"

	"github.com/rmera/trenza/chain"
)

// Energies are the components of the energy of one conformer.
// TotalTorsion is the whole torsional contribution: the torsion terms
// plus, when the oracle can separate them, the 1-4 van der Waals interactions.
type Energies struct {
	Total        float64
	Bond         float64
	Angle        float64
	Torsion      float64
	VDW          float64
	TotalTorsion float64
}

// Oracle evaluates the energy of a full chain given its coordinates.
type Oracle interface {
	Energies(coords []float64) (Energies, error)
}

// New returns the oracle for the force field fftype, set up for the chain template T.
// An empty fftype selects the built-in harmonic force field.
func New(fftype string, T *chain.Template, workdir string) (Oracle, error) {
	switch ff := strings.ToLower(strings.TrimSpace(fftype)); ff {
	case "", "harmonic", "builtin":
		return NewHarmonic(T.Atoms(), T.Graph(), T.Reference()), nil
	case "gfnff", "gfn0", "gfn1", "gfn2":
		return NewXTB(ff, T.Top(), workdir), nil
	default:
		return nil, fmt.Errorf("unknown force field type %q", fftype)
	}
}
