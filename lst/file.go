// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lst

import (
	"io"

	"github.com/go-lpc/mcs6a/internal/mmap"
	"golang.org/x/xerrors"
)

// File is a read-only, memory-mapped, list file.
type File struct {
	Header Header

	h    *mmap.Handle
	name string
}

// Open opens the named list file and scans its header.
func Open(fname string) (*File, error) {
	h, err := mmap.Open(fname)
	if err != nil {
		return nil, xerrors.Errorf("lst: could not open list file: %w", err)
	}

	f, err := newFile(h, fname)
	if err != nil {
		_ = h.Close()
		return nil, err
	}
	return f, nil
}

func newFile(h *mmap.Handle, fname string) (*File, error) {
	hdr, err := ReadHeader(io.NewSectionReader(h, 0, int64(h.Len())))
	if err != nil {
		return nil, xerrors.Errorf("lst: could not read header of %q: %w", fname, err)
	}

	return &File{Header: hdr, h: h, name: fname}, nil
}

// Name returns the name of the file as presented to Open.
func (f *File) Name() string {
	return f.name
}

// Payload returns a reader over the binary records of the file.
func (f *File) Payload() *io.SectionReader {
	n := int64(f.h.Len())
	return io.NewSectionReader(f.h, f.Header.Offset, n-f.Header.Offset)
}

// Decoder returns a new decoder reading the file from the start of
// its binary payload.
func (f *File) Decoder() (*Decoder, error) {
	return NewDecoder(f.Payload(), f.Header.TimePatch)
}

// Close releases the memory-mapped view of the file.
func (f *File) Close() error {
	return f.h.Close()
}
