/*
search_test.go, part of Trenza



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
	"bytes"
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rmera/trenza/chain"
	"github.com/rmera/trenza/energy"
	"github.com/rmera/trenza/geom"
	"github.com/rmera/trenza/rotor"
)

func TestAccept(Te *testing.T) {
	never := func() float64 { panic("u should not be drawn") }
	if !Accept(1.0, 2.0, Stiffness, never) {
		Te.Errorf("an improvement should always be accepted")
	}
	if !Accept(5.0, math.Inf(1), Stiffness, never) {
		Te.Errorf("the first draw should always be accepted")
	}
	high := func() float64 { return 0.999999 }
	low := func() float64 { return 0 }
	if !Accept(3.0, 1.0, math.Inf(1), high) {
		Te.Errorf("with infinite stiffness every draw should be accepted")
	}
	if Accept(1.1, 1.0, 1e-12, low) {
		Te.Errorf("with vanishing stiffness only improvements should be accepted")
	}
	if Accept(1.0, 1.0, 0, low) {
		Te.Errorf("with zero stiffness an equal distance is not an improvement")
	}
	p := math.Exp(-0.25 / Stiffness)
	if !Accept(1.5, 1.0, Stiffness, func() float64 { return p - 1e-9 }) || Accept(1.5, 1.0, Stiffness, func() float64 { return p + 1e-9 }) {
		Te.Errorf("wrong acceptance threshold around %g", p)
	}
}

func TestCeilings(Te *testing.T) {
	C := Ceilings{Total: 10, Angle: 2, Bond: 3, VDW: 4, Torsion: 5}
	at := energy.Energies{Total: 10, Angle: 2, Bond: 3, VDW: 4, Torsion: 100, TotalTorsion: 5}
	if !C.Pass(at) {
		Te.Errorf("energies equal to the ceilings should pass")
	}
	over := []func(e *energy.Energies){
		func(e *energy.Energies) { e.Total = 10.001 },
		func(e *energy.Energies) { e.Angle = 2.001 },
		func(e *energy.Energies) { e.Bond = 3.001 },
		func(e *energy.Energies) { e.VDW = 4.001 },
		func(e *energy.Energies) { e.TotalTorsion = 5.001 },
		func(e *energy.Energies) { e.Bond = math.NaN() },
	}
	for i, f := range over {
		e := energy.Energies{}
		f(&e)
		if C.Pass(e) {
			Te.Errorf("case %d: %+v should not pass", i, e)
		}
	}
	if !NoCeilings().Pass(energy.Energies{Total: 1e30}) {
		Te.Errorf("unset ceilings should not reject")
	}
}

// memWriter stores the written structures in memory.
type memWriter struct {
	files map[string][]float64
}

func (M *memWriter) Ext() string { return "pdb" }

func (M *memWriter) Write(path string, coords []float64) error {
	if M.files == nil {
		M.files = make(map[string][]float64)
	}
	M.files[filepath.Base(path)] = coords
	return nil
}

func TestLedger(Te *testing.T) {
	dir := Te.TempDir()
	w := new(memWriter)
	L, err := NewLedger(dir, w, nil)
	if err != nil {
		Te.Fatal(err)
	}
	recs := []*Record{
		{Index: 3, Distance: 1, Energies: energy.Energies{Total: 5}, Monomer: []float64{0, 0, 0, 1, 0, 0}},
		{Index: 7, Distance: 2, Energies: energy.Energies{Total: 2}, Monomer: []float64{0, 0, 0, 0, 3, 0}},
		{Index: 9, Distance: 1.5, Energies: energy.Energies{Total: 8}, Monomer: []float64{0, 0, 0, 0, 0, 0}},
		{Index: 12, Distance: 0.5, Energies: energy.Energies{Total: 2}, Monomer: []float64{0, 0, 0, 0, 1, 0}},
	}
	for _, r := range recs {
		r.Chain = []float64{1, 2, 3}
		if err := L.Admit(context.Background(), r); err != nil {
			Te.Fatal(err)
		}
		if r.Chain != nil {
			Te.Errorf("chain coordinates of %d were not released", r.Index)
		}
		if L.Best().RMSD != 0 {
			Te.Errorf("the best conformer should have RMSD 0, got %g", L.Best().RMSD)
		}
	}
	order := []int{12, 7, 3, 9}
	for i, r := range L.Records() {
		if r.Index != order[i] {
			Te.Fatalf("wrong order at %d: %d", i, r.Index)
		}
	}
	//RMSDs are against conformer 12. The mean is over the 6 coordinates of 2 atoms.
	want := map[int]float64{12: 0, 7: math.Sqrt(4.0 / 6), 3: math.Sqrt(2.0 / 6), 9: math.Sqrt(1.0 / 6)}
	for _, r := range L.Records() {
		if math.Abs(r.RMSD-want[r.Index]) > 1e-12 {
			Te.Errorf("RMSD of %d is %g, want %g", r.Index, r.RMSD, want[r.Index])
		}
	}
	if len(w.files) != 4 || w.files["conformer_9.pdb"] == nil {
		Te.Errorf("unexpected files written: %v", w.files)
	}
	table, err := os.ReadFile(filepath.Join(dir, TableName))
	if err != nil {
		Te.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(table)), "\n")
	if len(lines) != 5 || lines[0]+"\n" != tableHeader {
		Te.Fatalf("unexpected table:\n%s", table)
	}
	if lines[1] != "12, 2, 0.5, 0, 0, 0, 0, 0, 0" || lines[2] != "7, 2, 2, 0, 0, 0, 0, 0, 0.816497" {
		Te.Errorf("unexpected rows:\n%s\n%s", lines[1], lines[2])
	}
	err = L.Admit(context.Background(), &Record{Index: 20})
	if !errors.Is(err, ErrNoChainCoords) {
		Te.Errorf("expected ErrNoChainCoords, got %v", err)
	}
	if L.Len() != 4 {
		Te.Errorf("a failed admission should not add a record")
	}
}

// endToEnd is an oracle whose total energy is 25 times the distance between
// the first and last atoms.
type endToEnd struct{}

func (endToEnd) Energies(coords []float64) (energy.Energies, error) {
	d := geom.Distance(coords, 0, geom.Atoms(coords)-1)
	return energy.Energies{Total: 25 * d, Bond: 1, TotalTorsion: d}, nil
}

type copier struct{}

func (copier) Materialize(monomer []float64) []float64 {
	return append([]float64(nil), monomer...)
}

func hexane() []float64 {
	coords := make([]float64, 0, 18)
	for i := 0; i < 6; i++ {
		y := 0.0
		if i%2 == 1 {
			y = 0.89
		}
		coords = append(coords, 1.26*float64(i), y, 0)
	}
	return coords
}

func newDriver(Te *testing.T, dir string, total float64, out *bytes.Buffer) (*Driver, *Context) {
	Te.Helper()
	g := chain.NewGraph(6, [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 5}})
	rots := rotor.Setup(g, []string{"C", "C", "C", "C", "C", "C"}, nil)
	L, err := NewLedger(dir, new(fileWriter), nil)
	if err != nil {
		Te.Fatal(err)
	}
	C := NoCeilings()
	C.Total = total
	D := &Driver{
		Trials:      1000,
		MaxDistance: 5.0,
		Ceilings:    C,
		Sampler:     &Sampler{Rotors: rots, Helix: geom.NewHelix(0, 0, 0, 0, 0, 0), Head: 1, Tail: 6, K: Stiffness},
		Template:    copier{},
		Oracle:      endToEnd{},
		Ledger:      L,
		ReportEvery: 250,
	}
	if out != nil {
		D.Out = out
	}
	return D, NewContext(42, hexane())
}

// fileWriter writes the number of coordinates to the file.
type fileWriter struct{}

func (fileWriter) Ext() string { return "txt" }

func (fileWriter) Write(path string, coords []float64) error {
	return os.WriteFile(path, []byte(Float(float64(len(coords)))), 0644)
}

func conformerFiles(Te *testing.T, dir string) []string {
	Te.Helper()
	files, err := filepath.Glob(filepath.Join(dir, "conformer_*.txt"))
	if err != nil {
		Te.Fatal(err)
	}
	return files
}

func TestDriver(Te *testing.T) {
	dir := Te.TempDir()
	var out bytes.Buffer
	D, sc := newDriver(Te, dir, 100, &out)
	if err := D.Run(context.Background(), sc); err != nil {
		Te.Fatal(err)
	}
	n := D.Ledger.Len()
	if n == 0 || n == 1000 {
		Te.Fatalf("expected some but not all trials to be admitted, got %d", n)
	}
	if sc.Trials != 1000 || sc.Distant+sc.Energetic+sc.Capped+n != 1000 {
		Te.Errorf("trials do not add up: %+v admitted: %d", *sc, n)
	}
	if len(conformerFiles(Te, dir)) != n {
		Te.Errorf("%d files for %d conformers", len(conformerFiles(Te, dir)), n)
	}
	recs := D.Ledger.Records()
	for i, r := range recs {
		if r.Total > 100 || r.Distance > 5 {
			Te.Errorf("conformer %d should not have been admitted: %+v", r.Index, r)
		}
		if i > 0 && recs[i].Total < recs[i-1].Total {
			Te.Errorf("ledger not sorted at %d", i)
		}
		if math.Abs(r.Total-25*r.Distance) > 1e-9 {
			Te.Errorf("the recorded distance does not match the admitted geometry of %d", r.Index)
		}
	}
	table, err := os.ReadFile(filepath.Join(dir, TableName))
	if err != nil {
		Te.Fatal(err)
	}
	rows := strings.Split(strings.TrimSpace(string(table)), "\n")
	if len(rows) != n+1 || !strings.HasSuffix(rows[1], ", 0") {
		Te.Errorf("unexpected table, first row %q", rows[1])
	}
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 4 || !strings.HasPrefix(lines[0], "       0%\tAccepted: ") || !strings.HasPrefix(lines[3], "      75%\tAccepted: ") {
		Te.Errorf("unexpected progress report:\n%s", out.String())
	}
	if !strings.Contains(lines[3], "-- conformer_") {
		Te.Errorf("progress line should name the best conformer: %s", lines[3])
	}

	//same seed, same results.
	D2, sc2 := newDriver(Te, Te.TempDir(), 100, nil)
	if err := D2.Run(context.Background(), sc2); err != nil {
		Te.Fatal(err)
	}
	if D2.Ledger.Len() != n {
		Te.Fatalf("same seed gave %d and %d conformers", n, D2.Ledger.Len())
	}
	for i, r := range D2.Ledger.Records() {
		o := recs[i]
		if r.Index != o.Index || r.Total != o.Total || r.Distance != o.Distance {
			Te.Errorf("same seed, different conformer at %d: %+v vs %+v", i, r, o)
		}
	}
}

func TestDriverNoAdmissions(Te *testing.T) {
	dir := Te.TempDir()
	D, sc := newDriver(Te, dir, -1, nil)
	if err := D.Run(context.Background(), sc); err != nil {
		Te.Fatal(err)
	}
	if D.Ledger.Len() != 0 || len(conformerFiles(Te, dir)) != 0 {
		Te.Errorf("nothing should have been admitted")
	}
	table, err := os.ReadFile(filepath.Join(dir, TableName))
	if err != nil {
		Te.Fatal(err)
	}
	if string(table) != tableHeader {
		Te.Errorf("expected a header-only table, got:\n%s", table)
	}
}

func TestDriverCancel(Te *testing.T) {
	D, sc := newDriver(Te, Te.TempDir(), 100, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := D.Run(ctx, sc); err != nil {
		Te.Fatal(err)
	}
	if sc.Trials != 0 {
		Te.Errorf("a cancelled search should not run trials, ran %d", sc.Trials)
	}
}

type failing struct{}

func (failing) Energies([]float64) (energy.Energies, error) {
	return energy.Energies{}, errors.New("no energy")
}

func TestDriverOracleError(Te *testing.T) {
	D, sc := newDriver(Te, Te.TempDir(), 100, nil)
	D.Oracle = failing{}
	D.MaxDistance = math.Inf(1)
	if err := D.Run(context.Background(), sc); err == nil || !strings.Contains(err.Error(), "no energy") {
		Te.Errorf("expected the oracle error, got %v", err)
	}
}

type failingIndex struct{}

func (failingIndex) Admitted(context.Context, *Record) error { return errors.New("index down") }

func (failingIndex) Ranked(context.Context, []*Record) error { return nil }

func TestLedgerIndexError(Te *testing.T) {
	dir := Te.TempDir()
	L, err := NewLedger(dir, new(memWriter), failingIndex{})
	if err != nil {
		Te.Fatal(err)
	}
	rec := &Record{Index: 4, Energies: energy.Energies{Total: 1}, Chain: []float64{0, 0, 0}, Monomer: []float64{0, 0, 0}}
	if err := L.Admit(context.Background(), rec); err == nil {
		Te.Fatal("expected the index error")
	}
	table, err := os.ReadFile(filepath.Join(dir, TableName))
	if err != nil {
		Te.Fatal(err)
	}
	if string(table) != tableHeader+"4, 1, 0, 0, 0, 0, 0, 0, 0\n" {
		Te.Errorf("the table should match the ledger even when the index fails:\n%s", table)
	}
}
