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
	"go-hep.org/x/hep/hbook"
)

// LST2H1D fills h with the time of flight (in ns) of the events decoded
// from dec, optionally restricted to a single channel (all channels if
// channel is 0).
// LST2H1D returns the number of filled events.
func LST2H1D(h *hbook.H1D, dec *lst.Decoder, channel uint8, freq int, msg *log.Logger) (int64, error) {
	var n int64
	for i := int64(0); ; i++ {
		if freq > 0 && i%int64(freq) == 0 {
			msg.Printf("processing evt %d...", i)
		}
		var evt lst.Event
		err := dec.Decode(&evt)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return n, fmt.Errorf("could not decode event %d: %w", i, err)
		}
		if channel != 0 && evt.Channel != channel {
			continue
		}
		h.Fill(evt.Nanoseconds(), 1)
		n++
	}

	return n, nil
}
