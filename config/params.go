/*
params.go, part of Trenza



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

package config

import (
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/rmera/trenza/chain"
	"github.com/rmera/trenza/geom"
)

// RuntimeParameters holds the settings of a search run. Energy ceilings
// that are not given are +Inf.
type RuntimeParameters struct {
	SearchSize     int
	MaxDistance    float64
	MaxTotal       float64
	MaxBond        float64
	MaxAngle       float64
	MaxTorsion     float64
	MaxVDW         float64
	Algorithm      string
	FFType         string
	FFParameters   string
	BondLength     float64 //base to backbone. 0 keeps the geometry of the files.
	ChainLength    int
	Strand         []string
	DoubleStranded bool
	Seed           int64
	HasSeed        bool
	MaxRotorDraws  int
}

// HelicalParameters are the helical step parameters. Angles are in degrees.
type HelicalParameters struct {
	Rise        float64
	XDisp       float64
	YDisp       float64
	Inclination float64
	Tip         float64
	Twist       float64
}

// Helix returns the transformations defined by the parameters.
func (H HelicalParameters) Helix() *geom.Helix {
	return geom.NewHelix(H.Rise, H.XDisp, H.YDisp, H.Inclination, H.Tip, H.Twist)
}

// Parameters is the whole content of a parameter file.
type Parameters struct {
	Runtime  RuntimeParameters
	Helical  HelicalParameters
	Backbone chain.BackboneSpec
	Bases    []chain.BaseSpec
	parser   *Parser
}

// Print writes the parsed categories to w.
func (P *Parameters) Print(w io.Writer) {
	P.parser.Print(w)
}

// Read reads the parameter file in path. Relative structure file paths
// are taken relative to the directory of the parameter file.
func Read(path string) (*Parameters, error) {
	P := NewParser()
	if err := P.ReadFile(path); err != nil {
		return nil, err
	}
	return FromParser(P, filepath.Dir(path))
}

// FromParser extracts the parameters from a parser that has already read its input.
// dir is the directory used to resolve relative paths.
func FromParser(P *Parser, dir string) (*Parameters, error) {
	ret := &Parameters{parser: P}
	run := P.Category(Runtime)
	inf := math.Inf(1)
	r := &ret.Runtime
	r.SearchSize = run.Size("Search_Size", 0)
	r.MaxDistance = run.Double("Max_Distance", 0)
	r.MaxTotal = run.Double("Max_Total_Energy", inf)
	r.MaxBond = run.Double("Max_Bond_Energy", inf)
	r.MaxAngle = run.Double("Max_Angle_Energy", inf)
	r.MaxTorsion = run.Double("Max_Torsion_Energy", inf)
	r.MaxVDW = run.Double("Max_VDW_Energy", inf)
	r.Algorithm = run.String("Algorithm", "")
	switch strings.Join(strings.Fields(strings.ToLower(r.Algorithm)), " ") {
	case "mc", "monte carlo", "montecarlo":
	default:
		return nil, errorf(0, "Algorithm \"%s\" is not supported. Use \"MC\".", r.Algorithm)
	}
	r.FFType = strings.ToLower(run.String("Force_Field_Type", ""))
	r.FFParameters = resolve(dir, run.String("Force_Field_Parameter_File", ""))
	r.BondLength = run.Double("Base_to_Backbone_Bond_Length", 0)
	r.ChainLength = run.Size("Chain_Length", 0)
	r.MaxRotorDraws = run.Size("Max_Rotor_Draws", 0)
	if run.Field("Seed").IsSet() {
		r.Seed = int64(run.Size("Seed", 0))
		r.HasSeed = true
	}
	switch strings.ToLower(run.String("Double_Stranded", "false")) {
	case "true", "yes", "1":
		r.DoubleStranded = true
	case "false", "no", "0":
	default:
		return nil, errorf(0, "Could not read \"%s\" as true or false for field \"Double_Stranded\"", run.String("Double_Stranded", ""))
	}
	for _, v := range run.Strings("Strand") {
		r.Strand = append(r.Strand, strings.ToLower(v))
	}

	h := &ret.Helical
	h.Rise = run.Double("Rise", 0)
	h.XDisp = run.Double("X_Disp", 0)
	h.YDisp = run.Double("Y_Disp", 0)
	h.Inclination = run.Double("Inclination", 0)
	h.Tip = run.Double("Tip", 0)
	h.Twist = run.Double("Twist", 0)

	bb := P.Category(Backbone)
	inter := bb.Sizes("Interconnects")
	if len(inter) != 2 {
		return nil, errorf(0, "Field \"Interconnects\" needs 2 values, got %d", len(inter))
	}
	ret.Backbone = chain.BackboneSpec{
		Path:        resolve(dir, bb.String("Backbone_File_Path", "")),
		Head:        inter[0],
		Tail:        inter[1],
		BaseConnect: bb.Size("Base_Connect", 0),
	}

	base := P.Category(Base)
	codes := base.Strings("Code")
	names := base.Strings("Name")
	paths := base.Strings("Base_File_Path")
	connects := base.Sizes("Backbone_Connect")
	if len(codes) == 0 {
		return nil, errorf(0, "At least one base is needed in category \"%s\"", Base)
	}
	if len(names) != len(codes) || len(paths) != len(codes) || len(connects) != len(codes) {
		return nil, errorf(0, "Fields \"Code\", \"Name\", \"Base_File_Path\" and \"Backbone_Connect\" must have the same number of values")
	}
	for i := range codes {
		ret.Bases = append(ret.Bases, chain.BaseSpec{
			Code:            codes[i],
			Name:            names[i],
			Path:            resolve(dir, paths[i]),
			BackboneConnect: connects[i],
		})
	}
	if len(r.Strand) == 0 {
		r.Strand = []string{strings.ToLower(names[0])}
	}
	return ret, nil
}

func resolve(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
