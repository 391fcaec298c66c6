/*
sqlite_test.go, part of Trenza



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

package store

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/rmera/trenza/energy"
	"github.com/rmera/trenza/search"
)

// memWriter discards the structures.
type memWriter struct{}

func (memWriter) Ext() string { return "pdb" }

func (memWriter) Write(string, []float64) error { return nil }

func TestSQLiteStore(Te *testing.T) {
	ctx := context.Background()
	dir := Te.TempDir()
	s, err := Open(ctx, filepath.Join(dir, "trenza.db"))
	if err != nil {
		Te.Fatalf("open: %v", err)
	}
	Te.Cleanup(func() {
		_ = s.Close()
	})
	L, err := search.NewLedger(dir, memWriter{}, s)
	if err != nil {
		Te.Fatal(err)
	}
	totals := []float64{4, 1, 3}
	for i, t := range totals {
		rec := &search.Record{
			Index:    10 * i,
			Distance: 0.5,
			Energies: energy.Energies{Total: t},
			Chain:    []float64{0, 0, 0},
			Monomer:  []float64{float64(i), 0, 0},
		}
		if err := L.Admit(ctx, rec); err != nil {
			Te.Fatalf("admit: %v", err)
		}
	}
	rows, err := s.Rows(ctx)
	if err != nil {
		Te.Fatal(err)
	}
	if len(rows) != 3 || rows[0].Rank.Valid {
		Te.Fatalf("unexpected rows before ranking: %+v", rows)
	}
	if err := L.Finish(ctx); err != nil {
		Te.Fatalf("rank: %v", err)
	}
	rows, err = s.Rows(ctx)
	if err != nil {
		Te.Fatal(err)
	}
	//trials 0, 10, 20 have totals 4, 1, 3; the best (trial 10) has its monomer at x=1.
	d := 1 / math.Sqrt(3)
	want := map[int][2]float64{0: {2, d}, 10: {0, 0}, 20: {1, d}}
	for _, r := range rows {
		w := want[r.Trial]
		if !r.Rank.Valid || r.Rank.Int64 != int64(w[0]) || math.Abs(r.RMSD-w[1]) > 1e-12 {
			Te.Errorf("trial %d: rank %v rmsd %g, want %v", r.Trial, r.Rank, r.RMSD, w)
		}
	}
	if err := s.Close(); err != nil {
		Te.Fatal(err)
	}
	if err := s.Admitted(ctx, L.Best()); err == nil {
		Te.Errorf("a closed store should not accept records")
	}
}
