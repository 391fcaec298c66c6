/*
writer.go, part of Trenza



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
	"bufio"
	"fmt"
	"os"

	"github.com/klauspost/compress/gzip"
	chem "github.com/rmera/gochem"
	v3 "github.com/rmera/gochem/v3"
)

// Writer writes chain conformers as PDB files, optionally gzip-compressed.
type Writer struct {
	top  *chem.Topology
	gzip bool
}

// NewWriter returns a Writer for the atoms of the template T.
func NewWriter(T *Template, compress bool) *Writer {
	return &Writer{top: T.Top(), gzip: compress}
}

// Ext returns the extension of the files written, without the leading dot.
func (W *Writer) Ext() string {
	if W.gzip {
		return "pdb.gz"
	}
	return "pdb"
}

// Write writes the chain coordinates coords to the file name.
func (W *Writer) Write(name string, coords []float64) (err error) {
	if len(coords) != 3*W.top.Len() {
		return fmt.Errorf("writing %s: %d coordinates for %d atoms", name, len(coords), W.top.Len())
	}
	c, err := v3.NewMatrix(coords)
	if err != nil {
		return err
	}
	fout, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := fout.Close(); err == nil {
			err = cerr
		}
	}()
	out := bufio.NewWriter(fout)
	if !W.gzip {
		if err = chem.PDBWrite(out, c, W.top, nil); err != nil {
			return err
		}
		return out.Flush()
	}
	gz := gzip.NewWriter(out)
	if err = chem.PDBWrite(gz, c, W.top, nil); err != nil {
		return err
	}
	if err = gz.Close(); err != nil {
		return err
	}
	return out.Flush()
}
