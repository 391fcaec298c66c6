/*
category.go, part of Trenza



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

// Package config reads the parameter file of a search. The file is organized in
// categories, each holding "field = value" lines. Lines starting with # are comments.
package config

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// FieldType is the kind of value a field holds.
type FieldType int

const (
	SizeField FieldType = iota
	SizeVecField
	StringField
	StringVecField
	DoubleField
	DoubleVecField
)

// Error is a configuration error. Line is 0 if the error is not related
// to a particular line of the input.
type Error struct {
	Line int
	msg  string
}

func (E *Error) Error() string {
	return E.msg
}

// Critical returns true. Configuration errors always stop the program.
func (E *Error) Critical() bool {
	return true
}

func errorf(line int, format string, a ...interface{}) *Error {
	return &Error{Line: line, msg: fmt.Sprintf(format, a...)}
}

// Field is one registered field of a category.
type Field struct {
	Name     string
	Type     FieldType
	Required bool
	set      bool
	sizes    []int
	strs     []string
	doubles  []float64
}

// IsSet returns true if the field was given in the input.
func (F *Field) IsSet() bool {
	return F.set
}

func (F *Field) parse(value string, line int) error {
	vals := []string{strings.TrimSpace(value)}
	if F.Type == SizeVecField || F.Type == StringVecField || F.Type == DoubleVecField {
		vals = strings.Split(value, ",")
	}
	F.sizes, F.strs, F.doubles = nil, nil, nil
	for _, v := range vals {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		switch F.Type {
		case SizeField, SizeVecField:
			n, err := strconv.ParseUint(v, 10, 0)
			if err != nil {
				return errorf(line, "Could not read \"%s\" as a non-negative integer for field \"%s\" on line %d", v, F.Name, line)
			}
			F.sizes = append(F.sizes, int(n))
		case StringField, StringVecField:
			F.strs = append(F.strs, v)
		case DoubleField, DoubleVecField:
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return errorf(line, "Could not read \"%s\" as a number for field \"%s\" on line %d", v, F.Name, line)
			}
			F.doubles = append(F.doubles, f)
		}
	}
	F.set = true
	return nil
}

// Category is a named group of fields.
type Category struct {
	Name   string
	fields []*Field
	byname map[string]*Field
}

// NewCategory returns an empty category. Category names are upper case.
func NewCategory(name string) *Category {
	return &Category{Name: strings.ToUpper(name), byname: make(map[string]*Field)}
}

// Register adds a field to the category. Field names are case-insensitive.
func (C *Category) Register(name string, t FieldType, required bool) {
	f := &Field{Name: name, Type: t, Required: required}
	C.fields = append(C.fields, f)
	C.byname[strings.ToLower(name)] = f
}

// Field returns the field with the given name. It panics if the field was never
// registered, as that can only be a programming error.
func (C *Category) Field(name string) *Field {
	f, ok := C.byname[strings.ToLower(name)]
	if !ok {
		panic(fmt.Sprintf("field %s not registered in category %s", name, C.Name))
	}
	return f
}

// ParseLine reads a "field = value" line, which is the lineth line of the input.
func (C *Category) ParseLine(text string, line int) error {
	eq := strings.Index(text, "=")
	name := strings.TrimSpace(text[:eq])
	value := text[eq+1:]
	if strings.TrimSpace(value) == "" {
		return errorf(line, "Error: Empty field \"%s\" in category \"%s\" on line %d.", name, C.Name, line)
	}
	f, ok := C.byname[strings.ToLower(name)]
	if !ok {
		return errorf(line, "Field \"%s\" on line %d is not registered in category \"%s\".", name, line, C.Name)
	}
	return f.parse(value, line)
}

// Validate returns an error listing every required field that is not set.
func (C *Category) Validate() error {
	missing := make([]string, 0)
	for _, f := range C.fields {
		if f.Required && !f.set {
			missing = append(missing, fmt.Sprintf("Required field \"%s\" is not set.", f.Name))
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return errorf(0, "%s", strings.Join(missing, "\n"))
}

// Print writes the fields of the category that are set.
func (C *Category) Print(w io.Writer) {
	title := "|  Printing Category: " + C.Name + "  |"
	bar := strings.Repeat("-", len(title))
	fmt.Fprintf(w, "%s\n%s\n%s\n", bar, title, bar)
	for _, f := range C.fields {
		if !f.set {
			continue
		}
		var vals []string
		switch f.Type {
		case SizeField, SizeVecField:
			for _, v := range f.sizes {
				vals = append(vals, strconv.Itoa(v))
			}
		case StringField, StringVecField:
			vals = f.strs
		case DoubleField, DoubleVecField:
			for _, v := range f.doubles {
				vals = append(vals, strconv.FormatFloat(v, 'g', -1, 64))
			}
		}
		fmt.Fprintf(w, "\t%s: %s\n", f.Name, strings.Join(vals, ", "))
	}
	fmt.Fprintln(w)
}

// Size returns the value of a size field, or def if it was not set.
func (C *Category) Size(name string, def int) int {
	f := C.Field(name)
	if !f.set || len(f.sizes) == 0 {
		return def
	}
	return f.sizes[0]
}

// Sizes returns the values of a size field.
func (C *Category) Sizes(name string) []int {
	return C.Field(name).sizes
}

// String returns the value of a string field, or def if it was not set.
func (C *Category) String(name string, def string) string {
	f := C.Field(name)
	if !f.set || len(f.strs) == 0 {
		return def
	}
	return f.strs[0]
}

// Strings returns the values of a string field.
func (C *Category) Strings(name string) []string {
	return C.Field(name).strs
}

// Double returns the (first) value of a double field, or def if it was not set.
func (C *Category) Double(name string, def float64) float64 {
	f := C.Field(name)
	if !f.set || len(f.doubles) == 0 {
		return def
	}
	return f.doubles[0]
}

// Doubles returns the values of a double field.
func (C *Category) Doubles(name string) []float64 {
	return C.Field(name).doubles
}
