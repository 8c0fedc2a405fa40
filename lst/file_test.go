// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lst

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func createFile(t *testing.T, fname, code string, evts []Event, trail []byte) {
	t.Helper()

	f, err := os.Create(fname)
	if err != nil {
		t.Fatalf("could not create list file: %+v", err)
	}
	defer f.Close()

	_, err = WriteHeader(f, Header{
		TimePatch: code,
		Params:    map[string]string{"range": "1024"},
	})
	if err != nil {
		t.Fatalf("could not write header: %+v", err)
	}

	if _, err := Lookup(code); err == nil {
		enc, err := NewEncoder(f, code)
		if err != nil {
			t.Fatalf("could not create encoder: %+v", err)
		}
		for i, evt := range evts {
			err = enc.Encode(evt)
			if err != nil {
				t.Fatalf("could not encode event %d: %+v", i, err)
			}
		}
	}

	_, err = f.Write(trail)
	if err != nil {
		t.Fatalf("could not write trailing bytes: %+v", err)
	}

	err = f.Close()
	if err != nil {
		t.Fatalf("could not close list file: %+v", err)
	}
}

func TestFile(t *testing.T) {
	tmp := t.TempDir()
	fname := filepath.Join(tmp, "run_001.lst")

	createFile(t, fname, "1a", []Event{
		{TOF: 100, Sweep: 65534, Channel: 1},
		{TOF: 200, Sweep: 0, Channel: 2},
		{TOF: 300, Sweep: 1, Channel: 0},
		{TOF: 400, Sweep: 2, Channel: 6, Edge: 1},
	}, []byte{0xff, 0xff})

	f, err := Open(fname)
	if err != nil {
		t.Fatalf("could not open list file: %+v", err)
	}
	defer f.Close()

	if got, want := f.Name(), fname; got != want {
		t.Fatalf("invalid name: got=%q, want=%q", got, want)
	}
	if got, want := f.Header.TimePatch, "1a"; got != want {
		t.Fatalf("invalid time patch: got=%q, want=%q", got, want)
	}
	if got, want := f.Header.Params["range"], "1024"; got != want {
		t.Fatalf("invalid range: got=%q, want=%q", got, want)
	}

	want := []Event{
		{TOF: 100, Sweep: 65534, Channel: 1, Opts: OptSweep},
		{TOF: 200, Sweep: 65536, Channel: 2, Opts: OptSweep},
		{TOF: 400, Sweep: 65538, Channel: 6, Edge: 1, Opts: OptSweep},
	}

	// each decoder restarts from the beginning of the payload.
	for i := 0; i < 2; i++ {
		dec, err := f.Decoder()
		if err != nil {
			t.Fatalf("could not create decoder: %+v", err)
		}
		got := decodeAll(t, dec)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("pass %d: invalid events:\ngot= %+v\nwant=%+v", i, got, want)
		}
		if got, want := dec.Stats(), (Stats{Records: 4, Events: 3, Dropped: 1, Overflows: 1}); got != want {
			t.Fatalf("pass %d: invalid stats:\ngot= %+v\nwant=%+v", i, got, want)
		}
	}

	err = f.Close()
	if err != nil {
		t.Fatalf("could not close list file: %+v", err)
	}
}

func TestFileErrors(t *testing.T) {
	tmp := t.TempDir()

	t.Run("unknown-format", func(t *testing.T) {
		fname := filepath.Join(tmp, "unknown.lst")
		createFile(t, fname, "zz", nil, []byte{1, 2, 3, 4})

		f, err := Open(fname)
		if err != nil {
			t.Fatalf("could not open list file: %+v", err)
		}
		defer f.Close()

		_, err = f.Decoder()
		var uerr *UnknownFormatError
		if !errors.As(err, &uerr) {
			t.Fatalf("invalid error: %+v", err)
		}
		if got, want := err.Error(), `lst: could not create decoder: lst: unknown time_patch format "zz"`; got != want {
			t.Fatalf("invalid error message:\ngot= %q\nwant=%q", got, want)
		}
	})

	t.Run("malformed-header", func(t *testing.T) {
		fname := filepath.Join(tmp, "malformed.lst")
		err := os.WriteFile(fname, []byte("[MCS6A A]\r\ntime_patch=5b\r\n"), 0644)
		if err != nil {
			t.Fatalf("could not create list file: %+v", err)
		}

		_, err = Open(fname)
		var herr *MalformedHeaderError
		if !errors.As(err, &herr) {
			t.Fatalf("invalid error: %+v", err)
		}
	})

	t.Run("missing-file", func(t *testing.T) {
		_, err := Open(filepath.Join(tmp, "not-there.lst"))
		if !errors.Is(err, os.ErrNotExist) {
			t.Fatalf("invalid error: %+v", err)
		}
	})
}
