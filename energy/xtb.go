/*
xtb.go, part of Trenza



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
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	chem "github.com/rmera/gochem"
	"github.com/rmera/gochem/qm"
	v3 "github.com/rmera/gochem/v3"
)

// Hartree to kcal/mol
const H2Kcal = 627.509474

// XTB evaluates energies with the xtb program, through goChem's qm package.
// The GFN-FF force field reports all the components, the GFNn-xTB methods
// only give the total, the repulsion and the dispersion energies.
type XTB struct {
	method string
	top    *chem.Topology
	name   string
}

// NewXTB returns an oracle that runs xtb with the given method ("gfnff", "gfn0", "gfn1"
// or "gfn2") for the atoms in top. The xtb files are written in workdir.
func NewXTB(method string, top *chem.Topology, workdir string) *XTB {
	return &XTB{method: method, top: top, name: filepath.Join(workdir, "trenza_xtb")}
}

// Energies runs a single point calculation on coords and collects the energy components.
func (X *XTB) Energies(coords []float64) (Energies, error) {
	c, err := v3.NewMatrix(append([]float64(nil), coords...))
	if err != nil {
		return Energies{}, err
	}
	xtb := qm.NewXTBHandle()
	xtb.SetName(X.name)
	if err := xtb.BuildInput(c, X.top, &qm.Calc{Method: X.method}); err != nil {
		return Energies{}, fmt.Errorf("building xtb input: %w", err)
	}
	if err := xtb.Run(true); err != nil {
		return Energies{}, fmt.Errorf("running xtb: %w", err)
	}
	fout, err := os.Open(X.name + ".out")
	if err != nil {
		return Energies{}, err
	}
	defer fout.Close()
	return ParseXTB(fout)
}

var xtbComponent = regexp.MustCompile(`^\s*::\s+([a-zA-Z .]+?)\s+energy\s+(-?[0-9]+\.[0-9]+(?:[eE][-+]?[0-9]+)?)\s+Eh`)
var xtbTotal = regexp.MustCompile(`TOTAL ENERGY\s+(-?[0-9]+\.[0-9]+)\s+Eh`)

// ParseXTB reads the energy components, in kcal/mol, from an xtb output.
// The last value printed for each component is the one kept.
func ParseXTB(r io.Reader) (Energies, error) {
	var e Energies
	var rep, disp float64
	foundtotal := false
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if m := xtbTotal.FindStringSubmatch(line); m != nil {
			v, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				return e, err
			}
			e.Total = v * H2Kcal
			foundtotal = true
			continue
		}
		m := xtbComponent.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		v, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return e, err
		}
		v *= H2Kcal
		switch strings.ToLower(m[1]) {
		case "total":
			e.Total = v
			foundtotal = true
		case "bond":
			e.Bond = v
		case "angle":
			e.Angle = v
		case "torsion":
			e.Torsion = v
		case "repulsion":
			rep = v
		case "dispersion":
			disp = v
		}
	}
	if err := scanner.Err(); err != nil {
		return e, err
	}
	if !foundtotal {
		return e, fmt.Errorf("no total energy in xtb output")
	}
	e.VDW = rep + disp
	e.TotalTorsion = e.Torsion
	return e, nil
}
