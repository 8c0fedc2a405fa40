// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xcnv

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/go-lpc/mcs6a/lst"
	"go-hep.org/x/hep/csvutil"
)

// LST2CSV writes the events decoded from dec as rows of tbl, preceded by
// a row of column names.
// LST2CSV returns the number of written events.
func LST2CSV(tbl *csvutil.Table, dec *lst.Decoder, full bool, freq int, msg *log.Logger) (int64, error) {
	err := tbl.WriteRow(strs(Columns(full))...)
	if err != nil {
		return 0, fmt.Errorf("could not write CSV header: %w", err)
	}

	var n int64
	for {
		if freq > 0 && n%int64(freq) == 0 {
			msg.Printf("processing evt %d...", n)
		}
		var evt lst.Event
		err := dec.Decode(&evt)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return n, fmt.Errorf("could not decode event %d: %w", n, err)
		}

		err = tbl.WriteRow(strs(Row(evt, full))...)
		if err != nil {
			return n, fmt.Errorf("could not write event %d: %w", n, err)
		}
		n++
	}

	return n, nil
}

func strs(vs []string) []interface{} {
	o := make([]interface{}, len(vs))
	for i, v := range vs {
		o[i] = v
	}
	return o
}
