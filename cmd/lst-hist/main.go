// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command lst-hist histograms the time of flight of the events stored
// in MCS6A list files.
//
// Each input file is histogrammed independently, the resulting histogram
// is saved as a YODA file (and optionally plotted) next to the input
// file or under the directory given with -o.
//
// Example:
//
//	$> lst-hist -nbins=1000 -min=0 -max=5000 -png ./data/run_376.lst
//	lst-hist: file run_376: 1402 entries, mean=1234.5 ns
package main // import "github.com/go-lpc/mcs6a/cmd/lst-hist"

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-lpc/mcs6a/internal/xcnv"
	"github.com/go-lpc/mcs6a/lst"
	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot/vg"
)

var (
	msg = log.New(os.Stderr, "lst-hist: ", 0)
)

type config struct {
	odir  string
	nbins int
	xmin  float64 // in ns
	xmax  float64 // in ns
	chn   uint
	png   bool
	raw   bool
}

func main() {
	var (
		cfg  config
		njob int
	)

	flag.StringVar(&cfg.odir, "o", "", "output directory (default: directory of each input file)")
	flag.IntVar(&cfg.nbins, "nbins", 100, "number of bins")
	flag.Float64Var(&cfg.xmin, "min", 0, "lower edge of the histogram (ns)")
	flag.Float64Var(&cfg.xmax, "max", 1000, "upper edge of the histogram (ns)")
	flag.UintVar(&cfg.chn, "chan", 0, "channel to histogram (0: all channels)")
	flag.BoolVar(&cfg.png, "png", false, "plot histogram to a PNG file")
	flag.BoolVar(&cfg.raw, "raw-sweep", false, "disable sweep counter overflow correction")
	flag.IntVar(&njob, "j", runtime.NumCPU(), "number of files to process concurrently")

	flag.Usage = func() {
		fmt.Printf(`Usage: lst-hist [OPTIONS] FILE1 [FILE2 [FILE3 ...]]

ex:
 $> lst-hist -nbins=1000 -min=0 -max=5000 -png ./data/run_376.lst

options:
`)
		flag.PrintDefaults()
	}

	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		msg.Fatalf("missing path to input list file")
	}

	err := run(context.Background(), cfg, flag.Args(), njob)
	if err != nil {
		msg.Fatalf("%+v", err)
	}
}

func (cfg config) validate() error {
	switch {
	case cfg.nbins <= 0:
		return fmt.Errorf("invalid number of bins (%d)", cfg.nbins)
	case cfg.xmin >= cfg.xmax:
		return fmt.Errorf("invalid histogram range [%v, %v)", cfg.xmin, cfg.xmax)
	case cfg.chn > 7:
		return fmt.Errorf("invalid channel %d", cfg.chn)
	}
	return nil
}

func run(ctx context.Context, cfg config, fnames []string, njob int) error {
	err := cfg.validate()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	errs := lst.Batch(ctx, fnames, njob, func(ctx context.Context, fname string) error {
		return process(cfg, fname)
	})

	nerr := 0
	for i, err := range errs {
		if err == nil {
			continue
		}
		nerr++
		msg.Printf("could not histogram file %q: %+v", fnames[i], err)
	}

	if nerr > 0 {
		return fmt.Errorf("could not histogram %d/%d files", nerr, len(fnames))
	}
	return nil
}

func process(cfg config, fname string) error {
	f, err := lst.Open(fname)
	if err != nil {
		return err
	}
	defer f.Close()

	dec, err := f.Decoder()
	if err != nil {
		return err
	}
	dec.RawSweep = cfg.raw

	var (
		base = baseName(fname)
		h    = hbook.NewH1D(cfg.nbins, cfg.xmin, cfg.xmax)
	)
	h.Annotation()["name"] = "tof_" + base

	n, err := xcnv.LST2H1D(h, dec, uint8(cfg.chn), 0, msg)
	if err != nil {
		return fmt.Errorf("could not fill histogram: %w", err)
	}

	odir := cfg.odir
	if odir == "" {
		odir = filepath.Dir(fname)
	}

	raw, err := h.MarshalYODA()
	if err != nil {
		return fmt.Errorf("could not marshal histogram to YODA: %w", err)
	}

	err = os.WriteFile(filepath.Join(odir, base+".yoda"), raw, 0644)
	if err != nil {
		return fmt.Errorf("could not save YODA file: %w", err)
	}

	if cfg.png {
		err = plot(h, base, filepath.Join(odir, base+".png"))
		if err != nil {
			return fmt.Errorf("could not plot histogram: %w", err)
		}
	}

	mean := 0.0
	if n > 0 {
		mean = h.XMean()
	}
	msg.Printf("file %s: %d entries, mean=%g ns", base, n, mean)

	return nil
}

func plot(h *hbook.H1D, title, oname string) error {
	p := hplot.New()
	p.Title.Text = title
	p.X.Label.Text = "TOF [ns]"
	p.Y.Label.Text = "Entries"

	hh := hplot.NewH1D(h)
	hh.Infos.Style = hplot.HInfoSummary
	p.Add(hh, hplot.NewGrid())

	return p.Save(20*vg.Centimeter, 10*vg.Centimeter, oname)
}

func baseName(fname string) string {
	base := filepath.Base(fname)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
