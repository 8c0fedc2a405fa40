// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lst

import (
	"io"

	"golang.org/x/xerrors"
)

// Decoder reads and decodes stop events from the binary payload
// of a list file.
//
// Records whose channel is 0 are not events and are skipped.
// A trailing record shorter than the record size is ignored.
type Decoder struct {
	// RawSweep disables the sweep counter overflow correction.
	RawSweep bool

	r   io.Reader
	fmt Format
	buf []byte
	err error
	cor *Corrector

	nrec int64 // number of records read
	nevt int64 // number of events decoded
}

// NewDecoder creates a decoder that reads records laid out according
// to the time_patch code from r.
// r must be positioned at the start of the binary payload.
func NewDecoder(r io.Reader, code string) (*Decoder, error) {
	f, err := Lookup(code)
	if err != nil {
		return nil, xerrors.Errorf("lst: could not create decoder: %w", err)
	}

	return &Decoder{
		r:   r,
		fmt: f,
		buf: make([]byte, f.Size),
		cor: NewCorrector(f.Sweep.Width()),
	}, nil
}

// Format returns the record layout used by the decoder.
func (dec *Decoder) Format() Format {
	return dec.fmt
}

// Decode decodes the next stop event into evt.
// Decode returns io.EOF when no full record is left in the stream.
func (dec *Decoder) Decode(evt *Event) error {
	for {
		dec.load()
		if dec.err != nil {
			switch {
			case xerrors.Is(dec.err, io.EOF), xerrors.Is(dec.err, io.ErrUnexpectedEOF):
				dec.err = io.EOF
				return io.EOF
			}
			return xerrors.Errorf("lst: could not read record %d: %w", dec.nrec, dec.err)
		}
		dec.nrec++

		*evt = DecodeRecord(dec.fmt, dec.buf)
		if evt.Has(OptSweep) && !dec.RawSweep {
			evt.Sweep = dec.cor.Correct(evt.Sweep, evt.TOF)
		}
		if evt.Channel == 0 {
			continue
		}
		dec.nevt++
		return nil
	}
}

func (dec *Decoder) load() {
	if dec.err != nil {
		return
	}
	_, dec.err = io.ReadFull(dec.r, dec.buf)
}

// Stats returns decoding statistics for the records read so far.
func (dec *Decoder) Stats() Stats {
	return Stats{
		Records:   dec.nrec,
		Events:    dec.nevt,
		Dropped:   dec.nrec - dec.nevt,
		Overflows: dec.cor.Overflows(),
	}
}

// Stats holds decoding statistics.
type Stats struct {
	Records   int64  // number of full records read
	Events    int64  // number of events decoded
	Dropped   int64  // number of empty records (channel 0)
	Overflows uint64 // number of sweep counter overflows
}
