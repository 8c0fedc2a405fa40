// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lst decodes list-mode files produced by the FAST ComTec MCS6A
// multi-stop time-to-digital converter.
//
// A list file is made of an ASCII header, terminated by a [DATA] section
// marker, followed by a stream of fixed-size binary records.
// The layout of these records is selected by the time_patch code of
// the header.
package lst // import "github.com/go-lpc/mcs6a/lst"

import (
	"fmt"
)

// UnknownFormatError is returned when a time_patch code is not
// one of the known record layouts.
type UnknownFormatError struct {
	Code string
}

func (e *UnknownFormatError) Error() string {
	return fmt.Sprintf("lst: unknown time_patch format %q", e.Code)
}

// MalformedHeaderError is returned when a list file header lacks
// one of its required markers.
type MalformedHeaderError struct {
	Missing string // name of the missing marker
}

func (e *MalformedHeaderError) Error() string {
	return fmt.Sprintf("lst: malformed header: could not find %q", e.Missing)
}
