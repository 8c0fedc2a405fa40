// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xcnv

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/go-lpc/mcs6a/lst"
	"go-hep.org/x/hep/csvutil"
	"go-hep.org/x/hep/hbook"
)

func TestRow(t *testing.T) {
	for _, tc := range []struct {
		name string
		evt  lst.Event
		full bool
		want []string
	}{
		{
			name: "reduced",
			evt:  lst.Event{TOF: 25, Sweep: 3, Channel: 1, Opts: lst.OptSweep},
			want: []string{"2.5", "3"},
		},
		{
			name: "reduced-large-tof",
			evt:  lst.Event{TOF: 123456789012, Sweep: 70000, Channel: 1, Opts: lst.OptSweep},
			want: []string{"12345678901.2", "70000"},
		},
		{
			name: "reduced-no-sweep",
			evt:  lst.Event{TOF: 30, Channel: 1},
			want: []string{"3.0", "nan"},
		},
		{
			name: "reduced-sub-ns",
			evt:  lst.Event{TOF: 7, Sweep: 0, Channel: 1, Opts: lst.OptSweep},
			want: []string{"0.7", "0"},
		},
		{
			name: "reduced-54-bits-tof",
			evt:  lst.Event{TOF: 1<<54 - 1, Channel: 1},
			want: []string{"1801439850948198.3", "nan"},
		},
		{
			name: "full",
			evt: lst.Event{
				TOF: 25, Sweep: 3, Channel: 1, Edge: 1, Tag: 7, Lost: 1,
				Opts: lst.OptSweep | lst.OptTag | lst.OptLost,
			},
			full: true,
			want: []string{"25", "3", "1", "1", "7", "1"},
		},
		{
			name: "full-no-optional",
			evt:  lst.Event{TOF: 25, Channel: 4},
			full: true,
			want: []string{"25", "nan", "4", "0", "nan", "nan"},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := Row(tc.evt, tc.full)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("invalid row:\ngot= %q\nwant=%q", got, tc.want)
			}
			if got, want := len(got), len(Columns(tc.full)); got != want {
				t.Fatalf("invalid row length: got=%d, want=%d", got, want)
			}
		})
	}
}

func newDecoder(t *testing.T, code string, evts []lst.Event) *lst.Decoder {
	t.Helper()

	buf := new(bytes.Buffer)
	enc, err := lst.NewEncoder(buf, code)
	if err != nil {
		t.Fatalf("could not create encoder: %+v", err)
	}
	for i, evt := range evts {
		err = enc.Encode(evt)
		if err != nil {
			t.Fatalf("could not encode event %d: %+v", i, err)
		}
	}

	dec, err := lst.NewDecoder(buf, code)
	if err != nil {
		t.Fatalf("could not create decoder: %+v", err)
	}
	return dec
}

func TestLST2CSV(t *testing.T) {
	tmp := t.TempDir()
	msg := log.New(io.Discard, "", 0)

	evts := []lst.Event{
		{TOF: 25, Sweep: 126, Channel: 1, Tag: 7},
		{TOF: 0, Sweep: 0, Channel: 0},
		{TOF: 1234, Sweep: 2, Channel: 2, Edge: 1, Tag: 255},
	}

	for _, tc := range []struct {
		name string
		full bool
		want string
	}{
		{
			name: "reduced",
			want: "tof,sweep\n2.5,126\n123.4,258\n",
		},
		{
			name: "full",
			full: true,
			want: "tof,sweep,channel,edge,tag,fifo\n25,126,1,0,7,nan\n1234,258,2,1,255,nan\n",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			fname := filepath.Join(tmp, tc.name+".csv")
			tbl, err := csvutil.Create(fname)
			if err != nil {
				t.Fatalf("could not create CSV file: %+v", err)
			}
			defer tbl.Close()

			n, err := LST2CSV(tbl, newDecoder(t, "2a", evts), tc.full, 1, msg)
			if err != nil {
				t.Fatalf("could not convert events: %+v", err)
			}
			if got, want := n, int64(2); got != want {
				t.Fatalf("invalid number of events: got=%d, want=%d", got, want)
			}

			err = tbl.Close()
			if err != nil {
				t.Fatalf("could not close CSV file: %+v", err)
			}

			got, err := os.ReadFile(fname)
			if err != nil {
				t.Fatalf("could not read CSV file: %+v", err)
			}
			if got, want := string(got), tc.want; got != want {
				t.Fatalf("invalid CSV content:\ngot:\n%s\nwant:\n%s\n", got, want)
			}
		})
	}
}

func TestLST2H1D(t *testing.T) {
	msg := log.New(io.Discard, "", 0)
	evts := []lst.Event{
		{TOF: 15, Channel: 1},
		{TOF: 25, Channel: 2},
		{TOF: 35, Channel: 1},
		{TOF: 45, Channel: 0},
		{TOF: 55, Channel: 1},
	}

	for _, tc := range []struct {
		name    string
		channel uint8
		n       int64
		mean    float64
	}{
		{name: "all", channel: 0, n: 4, mean: 3.25},
		{name: "chan-1", channel: 1, n: 3, mean: 3.5},
		{name: "chan-7", channel: 7, n: 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			h := hbook.NewH1D(10, 0, 10)
			n, err := LST2H1D(h, newDecoder(t, "1", evts), tc.channel, 0, msg)
			if err != nil {
				t.Fatalf("could not fill histogram: %+v", err)
			}
			if got, want := n, tc.n; got != want {
				t.Fatalf("invalid number of events: got=%d, want=%d", got, want)
			}
			if got, want := h.Entries(), tc.n; got != want {
				t.Fatalf("invalid number of entries: got=%d, want=%d", got, want)
			}
			if tc.n == 0 {
				return
			}
			if got, want := h.XMean(), tc.mean; got-want > 1e-9 || want-got > 1e-9 {
				t.Fatalf("invalid mean: got=%v, want=%v", got, want)
			}
		})
	}
}
