// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mmap // import "github.com/go-lpc/mcs6a/internal/mmap"

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestHandle(t *testing.T) {
	t.Run("nil-handle", func(t *testing.T) {
		var h *Handle

		_, err := h.ReadAt(nil, 0)
		if !errors.Is(err, os.ErrInvalid) {
			t.Fatalf("invalid read-at error: %+v", err)
		}

		err = h.Close()
		if !errors.Is(err, os.ErrInvalid) {
			t.Fatalf("invalid close error: %+v", err)
		}
	})
	t.Run("nil-data", func(t *testing.T) {
		var h Handle

		_, err := h.ReadAt(nil, 0)
		if !errors.Is(err, errClosed) {
			t.Fatalf("invalid read-at error: %+v", err)
		}

		err = h.Close()
		if err != nil {
			t.Fatalf("error closing nil-data handle: %+v", err)
		}
	})
}

func TestHandleFrom(t *testing.T) {
	h := HandleFrom([]byte{0, 1, 2, 3})

	if got, want := h.Len(), 4; got != want {
		t.Fatalf("invalid len: got=%d, want=%d", got, want)
	}

	_, err := h.ReadAt(nil, -1)
	if got, want := err.Error(), "mmap: invalid ReadAt offset -1"; got != want {
		t.Fatalf("invalid error: %+v", err)
	}

	p := make([]byte, 3)
	n, err := h.ReadAt(p, 2)
	if !errors.Is(err, io.EOF) {
		t.Fatalf("invalid short read error: %+v", err)
	}
	if n != 2 || p[0] != 2 || p[1] != 3 {
		t.Fatalf("invalid short read: n=%d, p=%v", n, p)
	}

	err = h.Close()
	if err != nil {
		t.Fatalf("could not close handle: %+v", err)
	}

	_, err = h.ReadAt(p, 0)
	if !errors.Is(err, errClosed) {
		t.Fatalf("invalid read-after-close error: %+v", err)
	}
}

func TestOpen(t *testing.T) {
	tmp := t.TempDir()

	t.Run("file", func(t *testing.T) {
		fname := filepath.Join(tmp, "data.bin")
		err := os.WriteFile(fname, []byte("hello world"), 0644)
		if err != nil {
			t.Fatalf("could not create file: %+v", err)
		}

		h, err := Open(fname)
		if err != nil {
			t.Fatalf("could not mmap file: %+v", err)
		}
		defer h.Close()

		if got, want := h.Len(), 11; got != want {
			t.Fatalf("invalid len: got=%d, want=%d", got, want)
		}

		p := make([]byte, 5)
		_, err = h.ReadAt(p, 6)
		if err != nil {
			t.Fatalf("could not read: %+v", err)
		}
		if got, want := string(p), "world"; got != want {
			t.Fatalf("invalid content: got=%q, want=%q", got, want)
		}

		err = h.Close()
		if err != nil {
			t.Fatalf("could not unmap file: %+v", err)
		}
	})

	t.Run("empty", func(t *testing.T) {
		fname := filepath.Join(tmp, "empty.bin")
		err := os.WriteFile(fname, nil, 0644)
		if err != nil {
			t.Fatalf("could not create file: %+v", err)
		}

		h, err := Open(fname)
		if err != nil {
			t.Fatalf("could not mmap empty file: %+v", err)
		}
		defer h.Close()

		if got, want := h.Len(), 0; got != want {
			t.Fatalf("invalid len: got=%d, want=%d", got, want)
		}
	})

	t.Run("missing", func(t *testing.T) {
		_, err := Open(filepath.Join(tmp, "not-there.bin"))
		if !errors.Is(err, os.ErrNotExist) {
			t.Fatalf("invalid error: %+v", err)
		}
	})
}
