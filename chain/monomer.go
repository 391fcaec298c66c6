/*
monomer.go, part of Trenza



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

// Package chain builds the molecular templates used by the search: the monomer
// whose backbone is sampled, and the full strand that is generated from it.
package chain

import (
	"fmt"
	"path/filepath"
	"strings"

	chem "github.com/rmera/gochem"
	v3 "github.com/rmera/gochem/v3"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/rmera/trenza/geom"
)

// BackboneSpec describes the backbone structure file. All indexes are 1-based,
// as in the parameter file.
type BackboneSpec struct {
	Path        string
	Head        int //first linker atom
	Tail        int //second linker atom, it stands in for the head of the neighbouring monomer
	BaseConnect int //backbone atom bonded to the base
}

// BaseSpec describes a base structure file. BackboneConnect is 1-based.
type BaseSpec struct {
	Code            string
	Name            string
	Path            string
	BackboneConnect int
}

// Part is a molecular fragment with its perceived bonds.
type Part struct {
	Atoms  []*chem.Atom
	Coords []float64
	Bonds  [][2]int
}

// ReadPart reads a fragment from an XYZ or PDB file (decided by the extension)
// and assigns its bonds.
func ReadPart(path string) (*Part, error) {
	var mol *chem.Molecule
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdb", ".ent":
		mol, err = chem.PDBFileRead(path)
	default:
		mol, err = chem.XYZFileRead(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	n := mol.Len()
	if n == 0 {
		return nil, fmt.Errorf("no atoms in %s", path)
	}
	p := &Part{Atoms: make([]*chem.Atom, n), Coords: make([]float64, 3*n)}
	for i := 0; i < n; i++ {
		p.Atoms[i] = newAtom(mol.Atom(i))
		for j := 0; j < 3; j++ {
			p.Coords[3*i+j] = mol.Coords[0].At(i, j)
		}
	}
	p.Bonds, err = Perceive(p.Atoms, p.Coords)
	if err != nil {
		return nil, fmt.Errorf("assigning bonds for %s: %w", path, err)
	}
	return p, nil
}

// Perceive assigns bonds to the given atoms from their coordinates, with goChem's
// distance criterion. The atoms and coordinates are not modified.
func Perceive(atoms []*chem.Atom, coords []float64) ([][2]int, error) {
	ats := make([]*chem.Atom, len(atoms))
	for i, v := range atoms {
		ats[i] = newAtom(v)
	}
	c, err := v3.NewMatrix(append([]float64(nil), coords...))
	if err != nil {
		return nil, err
	}
	mol, err := chem.NewMolecule([]*v3.Matrix{c}, chem.NewTopology(0, 1, ats), nil)
	if err != nil {
		return nil, err
	}
	if err := mol.AssignBonds(c); err != nil {
		return nil, err
	}
	bonds := make([][2]int, 0, len(ats))
	for i, at := range ats {
		for _, b := range at.Bonds {
			j := b.Cross(at).Index()
			if i < j {
				bonds = append(bonds, [2]int{i, j})
			}
		}
	}
	return bonds, nil
}

// newAtom returns a copy of the atom without any bond information.
func newAtom(at *chem.Atom) *chem.Atom {
	ret := &chem.Atom{
		Name:    at.Name,
		ID:      at.ID,
		MolName: at.MolName,
		MolID:   at.MolID,
		Chain:   at.Chain,
		Symbol:  at.Symbol,
	}
	if ret.Name == "" {
		ret.Name = ret.Symbol
	}
	return ret
}

// Monomer is a backbone with one base attached. The backbone atoms come first,
// then the base atoms. The base is the fixed part of the monomer.
type Monomer struct {
	Code        string
	Atoms       []*chem.Atom
	Coords      []float64
	Graph       *Graph
	Head, Tail  int //1-based
	BaseConnect int //0-based
	Backbone    int //number of backbone atoms
}

// NewMonomer attaches base to the backbone bb. If bondlength is positive, the base is
// translated along the line between the two connecting atoms, so the bond between
// them has that length. Otherwise the base is used where it is.
func NewMonomer(bb *Part, bbspec BackboneSpec, base *Part, bspec BaseSpec, bondlength float64) (*Monomer, error) {
	nb := len(bb.Atoms)
	for _, v := range []int{bbspec.Head, bbspec.Tail, bbspec.BaseConnect} {
		if v < 1 || v > nb {
			return nil, fmt.Errorf("backbone atom %d out of range (%d atoms in the backbone)", v, nb)
		}
	}
	if bbspec.Head == bbspec.Tail {
		return nil, fmt.Errorf("head and tail linkers are the same atom (%d)", bbspec.Head)
	}
	if bspec.BackboneConnect < 1 || bspec.BackboneConnect > len(base.Atoms) {
		return nil, fmt.Errorf("base %s: atom %d out of range (%d atoms in the base)", bspec.Name, bspec.BackboneConnect, len(base.Atoms))
	}
	M := &Monomer{
		Code:        bspec.Code,
		Head:        bbspec.Head,
		Tail:        bbspec.Tail,
		BaseConnect: bbspec.BaseConnect - 1,
		Backbone:    nb,
	}
	M.Atoms = make([]*chem.Atom, 0, nb+len(base.Atoms))
	for _, v := range bb.Atoms {
		M.Atoms = append(M.Atoms, newAtom(v))
	}
	for _, v := range base.Atoms {
		M.Atoms = append(M.Atoms, newAtom(v))
	}
	M.Coords = make([]float64, 0, 3*len(M.Atoms))
	M.Coords = append(M.Coords, bb.Coords...)
	bcoords := append([]float64(nil), base.Coords...)
	bconn := bspec.BackboneConnect - 1
	if bondlength > 0 {
		v := r3.Sub(geom.Vec(bcoords, bconn), geom.Vec(bb.Coords, M.BaseConnect))
		if r3.Norm(v) == 0 {
			return nil, fmt.Errorf("base %s: connecting atoms overlap", bspec.Name)
		}
		shift := r3.Sub(r3.Scale(bondlength, r3.Unit(v)), v)
		for i := 0; i < geom.Atoms(bcoords); i++ {
			geom.SetVec(bcoords, i, r3.Add(geom.Vec(bcoords, i), shift))
		}
	}
	M.Coords = append(M.Coords, bcoords...)
	bonds := make([][2]int, 0, len(bb.Bonds)+len(base.Bonds)+1)
	bonds = append(bonds, bb.Bonds...)
	for _, b := range base.Bonds {
		bonds = append(bonds, [2]int{b[0] + nb, b[1] + nb})
	}
	bonds = append(bonds, [2]int{M.BaseConnect, bconn + nb})
	M.Graph = NewGraph(len(M.Atoms), bonds)
	return M, nil
}

// Fixed returns the 0-based indexes of the base atoms.
func (M *Monomer) Fixed() []int {
	ret := make([]int, 0, len(M.Atoms)-M.Backbone)
	for i := M.Backbone; i < len(M.Atoms); i++ {
		ret = append(ret, i)
	}
	return ret
}

// Symbols returns the element symbols of the monomer atoms.
func (M *Monomer) Symbols() []string {
	ret := make([]string, len(M.Atoms))
	for i, v := range M.Atoms {
		ret[i] = v.Symbol
	}
	return ret
}

// Place moves the monomer with the given transformation.
func (M *Monomer) Place(t geom.Transform) {
	t.ApplyAll(M.Coords)
}

// tailNeighbor returns the backbone atom bonded to the tail linker (0-based), or -1.
func (M *Monomer) tailNeighbor() int {
	for _, v := range M.Graph.Neighbors(M.Tail - 1) {
		if v < M.Backbone {
			return v
		}
	}
	return -1
}
