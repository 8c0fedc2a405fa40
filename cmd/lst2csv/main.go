// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command lst2csv converts MCS6A list files to CSV files.
//
// Usage: lst2csv [OPTIONS] FILE1 [FILE2 [FILE3 ...]]
//
// Each input file is converted to a CSV file with the same base name
// and the .csv extension, stored next to the input file (or under the
// directory given with -o).
// By default, only the time of flight (in ns) and the sweep number of
// each event are written out.
//
// Example:
//
//	$> lst2csv -j=4 ./data/run_376.lst ./data/run_377.lst
//	lst2csv: file run_376 loaded successfully! (events=1402, overflows=3)
//	lst2csv: file run_377 loaded successfully! (events=1210, overflows=2)
package main // import "github.com/go-lpc/mcs6a/cmd/lst2csv"

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/go-lpc/mcs6a"
	"github.com/go-lpc/mcs6a/internal/xcnv"
	"github.com/go-lpc/mcs6a/lst"
	"github.com/go-lpc/mcs6a/rundb"
	"go-hep.org/x/hep/csvutil"
)

const usage = `lst2csv converts MCS6A list files to CSV files.

Usage: lst2csv [OPTIONS] FILE1 [FILE2 [FILE3 ...]]

Example:

 $> lst2csv -j=4 ./data/run_376.lst ./data/run_377.lst
 $> lst2csv -full -o ./out ./data/run_376.lst
 $> lst2csv -db="user:pass@tcp(localhost)/mcs6a" ./data/run_376.lst

options:
`

var (
	msg = log.New(os.Stderr, "lst2csv: ", 0)
)

func main() {
	err := xmain(os.Args[1:])
	if err != nil {
		msg.Fatalf("%+v", err)
	}
}

type config struct {
	odir string // output directory
	full bool   // write all the event fields
	raw  bool   // disable sweep overflow correction
	freq int    // progress report frequency
}

func xmain(args []string) error {
	var (
		fset = flag.NewFlagSet("lst2csv", flag.ExitOnError)

		odir = fset.String("o", "", "output directory (default: directory of each input file)")
		full = fset.Bool("full", false, "write all event fields (tof,sweep,channel,edge,tag,fifo)")
		raw  = fset.Bool("raw-sweep", false, "disable sweep counter overflow correction")
		njob = fset.Int("j", runtime.NumCPU(), "number of files to convert concurrently")
		freq = fset.Int("freq", 0, "report progress every freq events (0: no report)")
		dsn  = fset.String("db", "", "DSN of the MySQL run database (empty: no bookkeeping)")
		vers = fset.Bool("version", false, "print version and exit")
	)

	fset.Usage = func() {
		fmt.Print(usage)
		fset.PrintDefaults()
	}

	err := fset.Parse(args)
	if err != nil {
		return fmt.Errorf("could not parse input arguments: %w", err)
	}

	if *vers {
		v, sum := mcs6a.Version()
		fmt.Printf("lst2csv version %s %s\n", v, sum)
		return nil
	}

	if fset.NArg() == 0 {
		fset.Usage()
		return fmt.Errorf("missing path to input list file")
	}

	var db *rundb.DB
	if *dsn != "" {
		db, err = rundb.Open(*dsn)
		if err != nil {
			return fmt.Errorf("could not open run database: %w", err)
		}
		defer db.Close()

		err = db.Setup(context.Background())
		if err != nil {
			return fmt.Errorf("could not setup run database: %w", err)
		}
	}

	cfg := config{
		odir: *odir,
		full: *full,
		raw:  *raw,
		freq: *freq,
	}

	return run(context.Background(), cfg, db, fset.Args(), *njob)
}

func run(ctx context.Context, cfg config, db *rundb.DB, fnames []string, njob int) error {
	err := checkOutputs(cfg.odir, fnames)
	if err != nil {
		return err
	}

	errs := lst.Batch(ctx, fnames, njob, func(ctx context.Context, fname string) error {
		sum, err := process(cfg, fname)
		if err != nil {
			return err
		}

		if db == nil {
			return nil
		}
		err = db.Insert(ctx, sum)
		if err != nil {
			return fmt.Errorf("could not record processing of %q: %w", fname, err)
		}
		return nil
	})

	nerr := 0
	for i, err := range errs {
		if err == nil {
			continue
		}
		nerr++
		msg.Printf("could not convert file %q: %+v", fnames[i], err)
	}

	if nerr > 0 {
		return fmt.Errorf("could not convert %d/%d files", nerr, len(fnames))
	}
	return nil
}

func process(cfg config, fname string) (rundb.Summary, error) {
	sum := rundb.Summary{Path: fname}

	f, err := lst.Open(fname)
	if err != nil {
		return sum, err
	}
	defer f.Close()

	sum.TimePatch = f.Header.TimePatch

	dec, err := f.Decoder()
	if err != nil {
		return sum, err
	}
	dec.RawSweep = cfg.raw

	oname := outputName(cfg.odir, fname)
	tbl, err := csvutil.Create(oname)
	if err != nil {
		return sum, fmt.Errorf("could not create output CSV file: %w", err)
	}
	defer tbl.Close()

	_, err = xcnv.LST2CSV(tbl, dec, cfg.full, cfg.freq, msg)
	if err != nil {
		return sum, fmt.Errorf("could not convert list file: %w", err)
	}

	err = tbl.Close()
	if err != nil {
		return sum, fmt.Errorf("could not close output CSV file: %w", err)
	}

	stats := dec.Stats()
	sum.Records = stats.Records
	sum.Events = stats.Events
	sum.Dropped = stats.Dropped
	sum.Overflows = stats.Overflows
	sum.Processed = time.Now()

	msg.Printf(
		"file %s loaded successfully! (events=%d, overflows=%d)",
		baseName(fname), stats.Events, stats.Overflows,
	)

	return sum, nil
}

func baseName(fname string) string {
	base := filepath.Base(fname)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func outputName(odir, fname string) string {
	if odir == "" {
		odir = filepath.Dir(fname)
	}
	return filepath.Join(odir, baseName(fname)+".csv")
}

// checkOutputs makes sure no two input files are converted to the same
// output file.
func checkOutputs(odir string, fnames []string) error {
	seen := make(map[string]string, len(fnames))
	for _, fname := range fnames {
		oname := outputName(odir, fname)
		if prev, dup := seen[oname]; dup {
			return fmt.Errorf("input files %q and %q would both be converted to %q", prev, fname, oname)
		}
		seen[oname] = fname
	}
	return nil
}
