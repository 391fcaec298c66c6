/*
driver.go, part of Trenza



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
	"context"
	"fmt"
	"io"

	"github.com/rmera/trenza/energy"
)

// ReportEvery is the default number of trials between progress lines.
const ReportEvery = 100000

// Materializer produces full chain coordinates from monomer coordinates.
type Materializer interface {
	Materialize(monomer []float64) []float64
}

// Driver runs the outer loop of the search.
type Driver struct {
	Trials      int
	MaxDistance float64
	Ceilings    Ceilings
	Sampler     *Sampler
	Template    Materializer
	Oracle      energy.Oracle
	Ledger      *Ledger
	Out         io.Writer //progress lines. Nil means no progress report.
	ReportEvery int       //0 means ReportEvery
}

// Run runs the trials that remain in sc (a context that has not been used
// runs all of them). It stops early, without error, if ctx is cancelled.
// Failures of the energy oracle or of the ledger end the search with an error.
func (D *Driver) Run(ctx context.Context, sc *Context) error {
	every := D.ReportEvery
	if every <= 0 {
		every = ReportEvery
	}
	for ; sc.Trials < D.Trials; sc.Trials++ {
		if err := ctx.Err(); err != nil {
			return nil
		}
		i := sc.Trials
		if err := D.trial(ctx, sc, i); err != nil {
			return err
		}
		if i%every == 0 && D.Out != nil {
			D.progress(i)
		}
	}
	return nil
}

func (D *Driver) trial(ctx context.Context, sc *Context, i int) error {
	dist, ok := D.Sampler.Sample(sc)
	if !ok {
		sc.Capped++
		return nil
	}
	if !(dist <= D.MaxDistance) {
		sc.Distant++
		return nil
	}
	chain := D.Template.Materialize(sc.Monomer)
	e, err := D.Oracle.Energies(chain)
	if err != nil {
		return fmt.Errorf("trial %d: %w", i, err)
	}
	if !D.Ceilings.Pass(e) {
		sc.Energetic++
		return nil
	}
	rec := &Record{
		Index:    i,
		Distance: dist,
		Energies: e,
		Chain:    chain,
		Monomer:  append([]float64(nil), sc.Monomer...),
	}
	return D.Ledger.Admit(ctx, rec)
}

func (D *Driver) progress(i int) {
	pct := Float(100 * float64(i) / float64(D.Trials))
	fmt.Fprintf(D.Out, "%8s%%\tAccepted: %8d", pct, D.Ledger.Len())
	if b := D.Ledger.Best(); b != nil {
		fmt.Fprintf(D.Out, ", Best Conformer (distance, energy): (%10s, %10s) -- %s", Float(b.Distance), Float(b.Total), D.Ledger.FileName(b.Index))
	}
	fmt.Fprintln(D.Out)
}
