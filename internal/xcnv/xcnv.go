// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package xcnv provides tools to convert decoded list-mode events to
// tabular and histogrammed representations.
package xcnv // import "github.com/go-lpc/mcs6a/internal/xcnv"

import (
	"strconv"

	"github.com/go-lpc/mcs6a/lst"
)

const nan = "nan"

// Columns returns the names of the columns of the reduced (tof, sweep)
// or full projection of events.
func Columns(full bool) []string {
	if full {
		return []string{"tof", "sweep", "channel", "edge", "tag", "fifo"}
	}
	return []string{"tof", "sweep"}
}

// Row returns the reduced or full projection of evt.
//
// The reduced projection holds the time of flight in ns and the sweep
// number. The full projection holds the time of flight in its native
// unit (0.1 ns) and all the other fields of the event.
// Absent optional fields are represented as "nan".
func Row(evt lst.Event, full bool) []string {
	sweep := nan
	if v, ok := evt.SweepOK(); ok {
		sweep = strconv.FormatInt(v, 10)
	}

	if !full {
		return []string{
			nanoseconds(evt.TOF),
			sweep,
		}
	}

	var (
		tag  = nan
		fifo = nan
	)
	if v, ok := evt.TagOK(); ok {
		tag = strconv.FormatUint(uint64(v), 10)
	}
	if v, ok := evt.LostOK(); ok {
		fifo = strconv.FormatUint(uint64(v), 10)
	}

	return []string{
		strconv.FormatUint(evt.TOF, 10),
		sweep,
		strconv.FormatUint(uint64(evt.Channel), 10),
		strconv.FormatUint(uint64(evt.Edge), 10),
		tag,
		fifo,
	}
}

// nanoseconds formats a time of flight, in units of 0.1 ns, as a
// decimal number of ns with exactly one fractional digit.
func nanoseconds(tof uint64) string {
	return strconv.FormatUint(tof/10, 10) + "." + strconv.FormatUint(tof%10, 10)
}
