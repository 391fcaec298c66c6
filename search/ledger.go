/*
ledger.go, part of Trenza



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
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/rmera/trenza/energy"
	"github.com/rmera/trenza/geom"
)

// ErrNoChainCoords is returned when a record without chain coordinates is admitted.
var ErrNoChainCoords = errors.New("trying to print conformer with no chain coordinates")

// TableName is the name of the summary table written by a Ledger.
const TableName = "energy_data.csv"

const tableHeader = "Conformer Index, Energy (kcal/mol), Distance (A), Bond Energy, Angle Energy, Torsion Energy, VDW Energy, Total Torsion Energy, RMSD (A)\n"

// Record is an admitted conformer.
type Record struct {
	Index    int
	Distance float64
	energy.Energies
	RMSD    float64   //against the best conformer
	Chain   []float64 //nil once the conformer has been written
	Monomer []float64
}

// Less returns true if R ranks before O: lower total energy first, then the
// shorter closure distance, then the earlier trial.
func (R *Record) Less(O *Record) bool {
	if R.Total != O.Total {
		return R.Total < O.Total
	}
	if R.Distance != O.Distance {
		return R.Distance < O.Distance
	}
	return R.Index < O.Index
}

// StructureWriter writes chain coordinates to a file.
type StructureWriter interface {
	Ext() string
	Write(path string, coords []float64) error
}

// Indexer keeps an external index of the admitted conformers.
type Indexer interface {
	Admitted(ctx context.Context, r *Record) error
	Ranked(ctx context.Context, recs []*Record) error
}

// Ledger is the sorted collection of admitted conformers. Every admission writes
// the conformer structure, re-sorts the collection, recomputes all the RMSDs
// and rewrites the summary table.
type Ledger struct {
	dir     string
	w       StructureWriter
	idx     Indexer
	records []*Record
}

// NewLedger returns a ledger that writes to the directory dir, and writes the empty summary table.
// idx can be nil.
func NewLedger(dir string, w StructureWriter, idx Indexer) (*Ledger, error) {
	L := &Ledger{dir: dir, w: w, idx: idx}
	return L, L.WriteTable()
}

// FileName returns the name of the structure file for the conformer of the given trial.
func (L *Ledger) FileName(index int) string {
	return fmt.Sprintf("conformer_%d.%s", index, L.w.Ext())
}

// Admit writes the chain coordinates of rec, releases them, and adds rec to the ledger.
func (L *Ledger) Admit(ctx context.Context, rec *Record) error {
	if rec.Chain == nil {
		return ErrNoChainCoords
	}
	name := filepath.Join(L.dir, L.FileName(rec.Index))
	if err := L.w.Write(name, rec.Chain); err != nil {
		return fmt.Errorf("writing conformer %d: %w", rec.Index, err)
	}
	rec.Chain = nil
	L.records = append(L.records, rec)
	sort.SliceStable(L.records, func(i, j int) bool { return L.records[i].Less(L.records[j]) })
	ref := L.records[0].Monomer
	for _, v := range L.records {
		v.RMSD = geom.RMSD(v.Monomer, ref)
	}
	if err := L.WriteTable(); err != nil {
		return err
	}
	if L.idx != nil {
		return L.idx.Admitted(ctx, rec)
	}
	return nil
}

// Best returns the best ranked conformer, or nil if the ledger is empty.
func (L *Ledger) Best() *Record {
	if len(L.records) == 0 {
		return nil
	}
	return L.records[0]
}

// Len returns the number of admitted conformers.
func (L *Ledger) Len() int {
	return len(L.records)
}

// Records returns the admitted conformers, best first. The slice must not be modified.
func (L *Ledger) Records() []*Record {
	return L.records
}

// Finish passes the final ranking to the indexer, if there is one.
func (L *Ledger) Finish(ctx context.Context) error {
	if L.idx == nil {
		return nil
	}
	return L.idx.Ranked(ctx, L.records)
}

// WriteTable writes the summary table from scratch.
func (L *Ledger) WriteTable() (err error) {
	name := filepath.Join(L.dir, TableName)
	fout, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	defer func() {
		if cerr := fout.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("writing %s: %w", name, cerr)
		}
	}()
	out := bufio.NewWriter(fout)
	out.WriteString(tableHeader)
	for _, v := range L.records {
		fmt.Fprintf(out, "%d, %s, %s, %s, %s, %s, %s, %s, %s\n", v.Index, Float(v.Total), Float(v.Distance),
			Float(v.Bond), Float(v.Angle), Float(v.Torsion), Float(v.VDW), Float(v.TotalTorsion), Float(v.RMSD))
	}
	return out.Flush()
}

// Float formats v with 6 significant digits, in the shortest of
// the plain and exponential notations.
func Float(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
