// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lst

import (
	"io"

	"golang.org/x/xerrors"
)

// Encoder writes stop events as binary records to an output stream.
//
// Encoder writes raw hardware values: the sweep number of encoded
// events is not overflow corrected and is truncated to the width of
// the sweep counter.
type Encoder struct {
	w   io.Writer
	fmt Format
	buf []byte
	err error
}

// NewEncoder returns a new Encoder that writes records laid out
// according to the time_patch code to w.
func NewEncoder(w io.Writer, code string) (*Encoder, error) {
	f, err := Lookup(code)
	if err != nil {
		return nil, xerrors.Errorf("lst: could not create encoder: %w", err)
	}
	return &Encoder{
		w:   w,
		fmt: f,
		buf: make([]byte, f.Size),
	}, nil
}

// Encode writes a single record to the stream.
func (enc *Encoder) Encode(evt Event) error {
	if enc.err != nil {
		return enc.err
	}
	EncodeRecord(enc.fmt, enc.buf, evt)
	_, enc.err = enc.w.Write(enc.buf)
	if enc.err != nil {
		enc.err = xerrors.Errorf("lst: could not write record: %w", enc.err)
	}
	return enc.err
}
