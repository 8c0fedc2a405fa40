// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lst

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/xerrors"
)

const (
	dataMarker = "[DATA]"
	patchKey   = "time_patch"
)

// Header is the ASCII header of a list file.
type Header struct {
	TimePatch string            // time_patch code of the binary records
	Offset    int64             // offset of the binary payload, from the start of the file
	Params    map[string]string // key=value assignments of the header
}

// ReadHeader scans the ASCII header of a list file from r, up to and
// including the line holding the [DATA] section marker.
// r must be positioned at the start of the file.
//
// ReadHeader may read past the end of the header: callers should
// use Header.Offset to locate the binary payload.
func ReadHeader(r io.Reader) (Header, error) {
	var (
		br  = bufio.NewReader(r)
		hdr = Header{Params: make(map[string]string)}
		off int64
		tp  bool
	)

	for {
		line, err := br.ReadBytes('\n')
		off += int64(len(line))
		if bytes.Contains(line, []byte(dataMarker)) {
			hdr.Offset = off
			break
		}
		if err != nil {
			if xerrors.Is(err, io.EOF) {
				return hdr, &MalformedHeaderError{Missing: dataMarker}
			}
			return hdr, xerrors.Errorf("lst: could not read header: %w", err)
		}

		key, val, ok := strings.Cut(string(line), "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		val = strings.TrimRight(val, "\r\n")
		if _, dup := hdr.Params[key]; dup {
			continue
		}
		hdr.Params[key] = val
		if key == patchKey {
			hdr.TimePatch = val
			tp = true
		}
	}

	if !tp {
		return hdr, &MalformedHeaderError{Missing: patchKey}
	}

	return hdr, nil
}

// WriteHeader writes a list file header to w.
// The time_patch assignment is written first, followed by the other
// parameters in lexicographic order, and by the [DATA] marker.
// WriteHeader ignores hdr.Offset.
func WriteHeader(w io.Writer, hdr Header) (int64, error) {
	keys := make([]string, 0, len(hdr.Params))
	for k := range hdr.Params {
		if k == patchKey {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	buf := new(bytes.Buffer)
	fmt.Fprintf(buf, "[MCS6A A]\r\n")
	fmt.Fprintf(buf, "%s=%s\r\n", patchKey, hdr.TimePatch)
	for _, k := range keys {
		fmt.Fprintf(buf, "%s=%s\r\n", k, hdr.Params[k])
	}
	fmt.Fprintf(buf, "%s\r\n", dataMarker)

	n, err := w.Write(buf.Bytes())
	if err != nil {
		return int64(n), xerrors.Errorf("lst: could not write header: %w", err)
	}
	return int64(n), nil
}
