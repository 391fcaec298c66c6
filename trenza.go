/*
trenza.go, part of Trenza



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

// Trenza searches for closed helical backbones of nucleic acid analogues.
// The rotatable bonds of one monomer are sampled until the tail of the monomer,
// moved by one helical step, meets the head. Conformers that close well enough
// and pass the energy filters are written to PDB files and ranked by energy
// in a table.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rmera/trenza/chain"
	"github.com/rmera/trenza/config"
	"github.com/rmera/trenza/energy"
	"github.com/rmera/trenza/rotor"
	"github.com/rmera/trenza/search"
	"github.com/rmera/trenza/store"
)

// Qerr prints the error and exits with status 1 if err is not nil.
func Qerr(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

type opts struct {
	seed     int64
	hasseed  bool //seed was given in the command line
	out      string
	gz       bool
	db       string
	plot     string
	quiet    bool
	maxdraws int
	verbose  bool
}

func main() {
	seed := flag.Int64("seed", 0, "Random seed. If not given, the Seed field of the parameter file is used or, if that is not given either, the current time")
	out := flag.String("out", ".", "Directory for the conformers and the energy table")
	gz := flag.Bool("gz", false, "Write the conformers as gzip-compressed PDB files")
	db := flag.String("db", "", "Also keep an index of the admitted conformers in this SQLite database")
	plotf := flag.String("plot", "", "Save a plot of energy vs. RMSD of the admitted conformers to this file (png, svg, pdf)")
	quiet := flag.Bool("q", false, "Don't print progress lines")
	maxdraws := flag.Int("maxdraws", -1, "Maximum angle draws per rotor in a trial. 0 means no limit, negative values use the parameter file")
	verbose := flag.Bool("v", false, "Print the parameters read")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Trenza: Monte Carlo search of helical backbones.\n Usage:\n  %s [flags] parameters.txt\n\nFlags:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	args := flag.Args()
	if len(args) < 1 {
		flag.Usage()
		os.Exit(1)
	}
	fmt.Println("Reading:", args[0])
	P, err := config.Read(args[0])
	Qerr(err)
	o := &opts{seed: *seed, out: *out, gz: *gz, db: *db, plot: *plotf, quiet: *quiet, maxdraws: *maxdraws, verbose: *verbose}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			o.hasseed = true
		}
	})
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	Qerr(run(ctx, P, o, os.Stdout))
}

// run builds everything the search needs from the parameters, and runs it.
func run(ctx context.Context, P *config.Parameters, o *opts, stdout io.Writer) error {
	r := P.Runtime
	if o.verbose {
		P.Print(stdout)
	}
	if err := os.MkdirAll(o.out, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	h := P.Helical.Helix()
	T, err := chain.Build(h, P.Backbone, P.Bases, r.Strand, r.ChainLength, r.DoubleStranded, r.BondLength)
	if err != nil {
		return err
	}
	mono := T.Sampled()
	rots := rotor.Setup(mono.Graph, mono.Symbols(), mono.Fixed())
	log.Printf("%d atoms in the chain, %d rotatable bonds in the sampled backbone", T.Len(), len(rots))
	if r.FFParameters != "" {
		log.Printf("Force_Field_Parameter_File %s is not used by the %q force field", r.FFParameters, r.FFType)
	}
	oracle, err := energy.New(r.FFType, T, o.out)
	if err != nil {
		return err
	}
	var idx search.Indexer
	if o.db != "" {
		s, err := store.Open(ctx, o.db)
		if err != nil {
			return fmt.Errorf("opening %s: %w", o.db, err)
		}
		defer s.Close()
		idx = s
	}
	L, err := search.NewLedger(o.out, chain.NewWriter(T, o.gz), idx)
	if err != nil {
		return err
	}
	seed := o.pickSeed(r)
	maxdraws := r.MaxRotorDraws
	if o.maxdraws >= 0 {
		maxdraws = o.maxdraws
	}
	D := &search.Driver{
		Trials:      r.SearchSize,
		MaxDistance: r.MaxDistance,
		Ceilings: search.Ceilings{
			Total:   r.MaxTotal,
			Angle:   r.MaxAngle,
			Bond:    r.MaxBond,
			VDW:     r.MaxVDW,
			Torsion: r.MaxTorsion,
		},
		Sampler: &search.Sampler{
			Rotors:   rots,
			Helix:    h,
			Head:     mono.Head,
			Tail:     mono.Tail,
			K:        search.Stiffness,
			MaxDraws: maxdraws,
		},
		Template: T,
		Oracle:   oracle,
		Ledger:   L,
	}
	if !o.quiet {
		D.Out = stdout
	}
	sc := search.NewContext(seed, mono.Coords)
	fmt.Fprintf(stdout, "Seed: %d\n", seed)
	start := time.Now()
	if err := D.Run(ctx, sc); err != nil {
		return err
	}
	if ctx.Err() != nil {
		log.Printf("Search interrupted after %d of %d trials", sc.Trials, D.Trials)
	}
	if err := L.Finish(context.WithoutCancel(ctx)); err != nil {
		return fmt.Errorf("ranking conformers in %s: %w", o.db, err)
	}
	Report(stdout, D, sc, time.Since(start))
	if o.plot != "" {
		if L.Len() == 0 {
			log.Printf("No conformers admitted, %s will not be written", o.plot)
			return nil
		}
		if err := PlotRMSD(o.plot, L.Records()); err != nil {
			return fmt.Errorf("plotting to %s: %w", o.plot, err)
		}
	}
	return nil
}

// pickSeed returns the seed given in the command line, if any, or else the one in the
// parameter file, or else one taken from the current time.
func (O *opts) pickSeed(r config.RuntimeParameters) int64 {
	switch {
	case O.hasseed:
		return O.seed
	case r.HasSeed:
		return r.Seed
	default:
		return time.Now().UnixNano()
	}
}
