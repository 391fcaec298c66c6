/*
report.go, part of Trenza



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

package main

import (
	"fmt"
	"io"
	"time"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/rmera/trenza/search"
)

// Report prints the final statistics of a search.
func Report(w io.Writer, D *search.Driver, sc *search.Context, elapsed time.Duration) {
	L := D.Ledger
	fmt.Fprintf(w, "\nTrials: %d in %s\n", sc.Trials, elapsed.Round(time.Millisecond))
	fmt.Fprintf(w, "Admitted: %d, closure too long: %d, energy too high: %d, out of draws: %d\n", L.Len(), sc.Distant, sc.Energetic, sc.Capped)
	if L.Len() == 0 {
		return
	}
	totals := make([]float64, L.Len())
	rmsds := make([]float64, L.Len())
	for i, v := range L.Records() {
		totals[i] = v.Total
		rmsds[i] = v.RMSD
	}
	em, es := stat.MeanStdDev(totals, nil)
	rm, rs := stat.MeanStdDev(rmsds, nil)
	b := L.Best()
	fmt.Fprintf(w, "Best: %s (energy: %s kcal/mol, distance: %s A)\n", L.FileName(b.Index), search.Float(b.Total), search.Float(b.Distance))
	fmt.Fprintf(w, "Energy (kcal/mol): %s +/- %s, RMSD to best (A): %s +/- %s\n", search.Float(em), search.Float(es), search.Float(rm), search.Float(rs))
}

// PlotRMSD saves a scatter plot of the total energy of the conformers vs. their RMSD
// to the best one. The format is given by the extension of path.
func PlotRMSD(path string, recs []*search.Record) error {
	p := plot.New()
	p.Title.Text = "Admitted conformers"
	p.X.Label.Text = "RMSD to best (A)"
	p.Y.Label.Text = "Energy (kcal/mol)"
	pts := make(plotter.XYs, len(recs))
	for i, v := range recs {
		pts[i].X = v.RMSD
		pts[i].Y = v.Total
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	p.Add(s)
	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
