// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// lst-dump decodes and displays MCS6A list files.
//
// Usage: lst-dump [OPTIONS] FILE1 [FILE2 [FILE3 ...]]
//
// Example:
//
//	$> lst-dump -n=3 ./data/run_376.lst
//	=== file ./data/run_376.lst ===
//	time_patch:         5b
//	record size:         8
//	data offset:       412
//	evt=       0 tof=       1523 sweep=         1 chan=1 edge=0 tag=0 lost=0
//	evt=       1 tof=       2187 sweep=         1 chan=1 edge=0 tag=0 lost=0
//	evt=       2 tof=        312 sweep=         2 chan=1 edge=0 tag=0 lost=0
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/go-lpc/mcs6a/lst"
)

const usage = `lst-dump decodes and displays MCS6A list files.

Usage: lst-dump [OPTIONS] FILE1 [FILE2 [FILE3 ...]]

Example:

 $> lst-dump -n=3 ./data/run_376.lst
 === file ./data/run_376.lst ===
 time_patch:         5b
 record size:         8
 data offset:       412
 evt=       0 tof=       1523 sweep=         1 chan=1 edge=0 tag=0 lost=0
 evt=       1 tof=       2187 sweep=         1 chan=1 edge=0 tag=0 lost=0
 evt=       2 tof=        312 sweep=         2 chan=1 edge=0 tag=0 lost=0

options:
`

func main() {
	log.SetPrefix("lst-dump: ")
	log.SetFlags(0)

	err := xmain(os.Stdout, os.Args[1:])
	if err != nil {
		log.Fatalf("%+v", err)
	}
}

func xmain(w io.Writer, args []string) error {
	var (
		fset = flag.NewFlagSet("lst-dump", flag.ExitOnError)

		nevts = fset.Int64("n", -1, "maximum number of events to display per file (-1: all)")
		raw   = fset.Bool("raw-sweep", false, "disable sweep counter overflow correction")
	)

	fset.Usage = func() {
		fmt.Print(usage)
		fset.PrintDefaults()
	}

	err := fset.Parse(args)
	if err != nil {
		return fmt.Errorf("could not parse input arguments: %w", err)
	}

	if fset.NArg() == 0 {
		fset.Usage()
		return fmt.Errorf("missing path to input list file")
	}

	var (
		fnames = fset.Args()
		nerr   = 0
	)
	for _, fname := range fnames {
		err := process(w, fname, *nevts, *raw)
		if err != nil {
			nerr++
			log.Printf("could not dump file %q: %+v", fname, err)
		}
	}

	if nerr > 0 {
		return fmt.Errorf("could not dump %d/%d files", nerr, len(fnames))
	}
	return nil
}

func process(w io.Writer, fname string, nevts int64, raw bool) error {
	wbuf := bufio.NewWriter(w)
	defer wbuf.Flush()

	f, err := lst.Open(fname)
	if err != nil {
		return err
	}
	defer f.Close()

	dec, err := f.Decoder()
	if err != nil {
		return err
	}
	dec.RawSweep = raw

	fmt.Fprintf(wbuf, "=== file %s ===\n", fname)
	fmt.Fprintf(wbuf, "time_patch:  %10s\n", f.Header.TimePatch)
	fmt.Fprintf(wbuf, "record size: % 10d\n", dec.Format().Size)
	fmt.Fprintf(wbuf, "data offset: % 10d\n", f.Header.Offset)

	for i := int64(0); nevts < 0 || i < nevts; i++ {
		var evt lst.Event
		err := dec.Decode(&evt)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("could not decode event %d: %w", i, err)
		}
		fmt.Fprintf(wbuf, "evt=% 8d tof=% 11d", i, evt.TOF)
		if v, ok := evt.SweepOK(); ok {
			fmt.Fprintf(wbuf, " sweep=% 10d", v)
		}
		fmt.Fprintf(wbuf, " chan=%d edge=%d", evt.Channel, evt.Edge)
		if v, ok := evt.TagOK(); ok {
			fmt.Fprintf(wbuf, " tag=%d", v)
		}
		if v, ok := evt.LostOK(); ok {
			fmt.Fprintf(wbuf, " lost=%d", v)
		}
		fmt.Fprintf(wbuf, "\n")
	}

	return nil
}
