/*
parser.go, part of Trenza



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
	"fmt"
	"io"
	"strings"

	"github.com/rmera/scu"
)

// Category names.
const (
	Runtime  = "RUNTIME PARAMETERS"
	Backbone = "BACKBONE PARAMETERS"
	Base     = "BASE PARAMETERS"
)

// Parser reads a parameter file into its registered categories.
type Parser struct {
	order      []*Category
	categories map[string]*Category
}

// NewParser returns a parser with the runtime, backbone and base categories registered.
func NewParser() *Parser {
	P := &Parser{categories: make(map[string]*Category)}
	run := NewCategory(Runtime)
	for _, v := range []string{"Rise", "X_Disp", "Y_Disp", "Inclination", "Tip", "Twist"} {
		run.Register(v, DoubleVecField, true)
	}
	for _, v := range []string{"Max_Total_Energy", "Max_Angle_Energy", "Max_Bond_Energy", "Max_VDW_Energy", "Max_Torsion_Energy"} {
		run.Register(v, DoubleField, false)
	}
	run.Register("Max_Distance", DoubleField, true)
	run.Register("Force_Field_Type", StringField, false)
	run.Register("Force_Field_Parameter_File", StringField, false)
	run.Register("Base_to_Backbone_Bond_Length", DoubleField, false)
	run.Register("Algorithm", StringField, true)
	run.Register("Search_Size", SizeField, true)
	for _, v := range []string{"Dihedral_Step_Size", "Search_Step_Size", "Chain_Length", "Seed", "Max_Rotor_Draws"} {
		run.Register(v, SizeField, false)
	}
	run.Register("Strand", StringVecField, false)
	run.Register("Double_Stranded", StringField, false)
	P.Register(run)

	bb := NewCategory(Backbone)
	bb.Register("Interconnects", SizeVecField, true)
	bb.Register("Base_Connect", SizeVecField, true)
	bb.Register("Backbone_File_Path", StringField, true)
	P.Register(bb)

	base := NewCategory(Base)
	for _, v := range []string{"Code", "Name", "Base_File_Path"} {
		base.Register(v, StringVecField, true)
	}
	base.Register("Backbone_Connect", SizeVecField, true)
	P.Register(base)
	return P
}

// Register adds a category to the parser, replacing any category with the same name.
func (P *Parser) Register(c *Category) {
	if _, ok := P.categories[c.Name]; !ok {
		P.order = append(P.order, c)
	} else {
		for i, v := range P.order {
			if v.Name == c.Name {
				P.order[i] = c
			}
		}
	}
	P.categories[c.Name] = c
}

// Category returns the category with the given name, or nil if there is none.
func (P *Parser) Category(name string) *Category {
	return P.categories[strings.ToUpper(name)]
}

// ReadFile reads and validates the parameter file in path.
func (P *Parser) ReadFile(path string) error {
	fin, err := scu.NewMustReadFile(path)
	if err != nil {
		return fmt.Errorf("There was an error opening file: %s: %w", path, err)
	}
	defer fin.Close()
	lines := make([]string, 0, 64)
	for line := fin.Next(); line != "EOF"; line = fin.Next() {
		lines = append(lines, strings.TrimRight(line, "\r\n"))
	}
	return P.Parse(lines)
}

// Parse reads the given lines, numbered from 1, and validates every category.
func (P *Parser) Parse(lines []string) error {
	var c *Category
	for i, line := range lines {
		num := i + 1
		text := line
		if j := strings.Index(text, "#"); j >= 0 {
			text = text[:j]
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if strings.Contains(text, "=") {
			if c == nil {
				return errorf(num, "Declared field before declaring a category on line %d with text \"%s\". Please place field under appropriate category", num, line)
			}
			if err := c.ParseLine(text, num); err != nil {
				return err
			}
			continue
		}
		name := strings.ToUpper(strings.Join(strings.Fields(text), " "))
		next, ok := P.categories[name]
		if !ok {
			return errorf(num, "Category \"%s\" on line %d does not exist. Please check the input file.", name, num)
		}
		c = next
	}
	msgs := make([]string, 0)
	for _, v := range P.order {
		if err := v.Validate(); err != nil {
			msgs = append(msgs, err.Error())
		}
	}
	if len(msgs) > 0 {
		return errorf(0, "%s", strings.Join(msgs, "\n"))
	}
	return nil
}

// Print writes every category to w.
func (P *Parser) Print(w io.Writer) {
	for _, v := range P.order {
		v.Print(w)
	}
}
