// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lst

// Corrector reconstructs a monotonically increasing sweep number from
// the narrow, wrapping, sweep counter of the hardware.
//
// A Corrector must be fed the records of a single stream, in order.
type Corrector struct {
	width uint   // width of the sweep counter, in bits
	nover uint64 // number of overflows seen so far
	last  int64  // last raw sweep number of a non-empty event
}

// NewCorrector returns a corrector for a sweep counter of the
// provided width in bits.
func NewCorrector(width uint) *Corrector {
	return &Corrector{width: width}
}

// Correct returns the logical sweep number associated with the raw
// sweep number of the current record.
// Records with a zero time of flight are passed through and do not
// update the state of the corrector.
func (c *Corrector) Correct(sweep int64, tof uint64) int64 {
	if tof == 0 {
		return sweep
	}
	if sweep < c.last {
		c.nover++
	}
	c.last = sweep
	return sweep + int64(c.nover<<c.width)
}

// Overflows returns the number of sweep counter overflows seen so far.
func (c *Corrector) Overflows() uint64 {
	return c.nover
}
