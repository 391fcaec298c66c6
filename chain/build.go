/*
build.go, part of Trenza



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

package chain

import (
	"fmt"
	"strings"

	"github.com/rmera/trenza/geom"
)

// Build reads the backbone and base files and assembles the template for the given strand.
// Bases are matched to the strand by name or code, ignoring case. If length is larger
// than the strand, the strand is repeated until the chain has that many residues.
// All monomers are placed in the helical frame with the global transformation of h.
func Build(h *geom.Helix, bb BackboneSpec, bases []BaseSpec, strand []string, length int, double bool, bondlength float64) (*Template, error) {
	if len(strand) == 0 {
		return nil, fmt.Errorf("empty strand")
	}
	backbone, err := ReadPart(bb.Path)
	if err != nil {
		return nil, err
	}
	if length < len(strand) {
		length = len(strand)
	}
	monomers := make(map[string]*Monomer)
	residues := make([]*Monomer, 0, length)
	for i := 0; i < length; i++ {
		name := strings.ToLower(strings.TrimSpace(strand[i%len(strand)]))
		if m, ok := monomers[name]; ok {
			residues = append(residues, m)
			continue
		}
		bs, ok := findBase(bases, name)
		if !ok {
			return nil, fmt.Errorf("base %q in the strand is not defined", name)
		}
		base, err := ReadPart(bs.Path)
		if err != nil {
			return nil, err
		}
		m, err := NewMonomer(backbone, bb, base, bs, bondlength)
		if err != nil {
			return nil, err
		}
		m.Place(h.Global)
		monomers[name] = m
		residues = append(residues, m)
	}
	return NewTemplate(h, residues, double)
}

func findBase(bases []BaseSpec, name string) (BaseSpec, bool) {
	for _, v := range bases {
		if strings.EqualFold(v.Name, name) || strings.EqualFold(v.Code, name) {
			return v, true
		}
	}
	return BaseSpec{}, false
}

// Sampled returns the monomer whose backbone is sampled (the first residue).
func (T *Template) Sampled() *Monomer {
	return T.residues[0]
}
