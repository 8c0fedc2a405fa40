// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lst

import (
	"sort"
)

// Bits describes an inclusive range of bits within a record word.
// Bit 0 is the least significant bit of the first byte of a record.
// The zero value describes an absent field.
type Bits struct {
	Lo, Hi uint8
	Valid  bool
}

func bit(i uint8) Bits { return Bits{Lo: i, Hi: i, Valid: true} }
func bits(lo, hi uint8) Bits { return Bits{Lo: lo, Hi: hi, Valid: true} }

// Width returns the number of bits spanned by the field.
func (b Bits) Width() uint {
	if !b.Valid {
		return 0
	}
	return uint(b.Hi-b.Lo) + 1
}

func (b Bits) mask() uint64 {
	return 1<<b.Width() - 1
}

func (b Bits) get(w uint64) uint64 {
	return (w >> b.Lo) & b.mask()
}

func (b Bits) put(w, v uint64) uint64 {
	m := b.mask()
	return w&^(m<<b.Lo) | (v&m)<<b.Lo
}

// Format describes the bit layout of the records of a list file,
// as selected by the time_patch code of its header.
type Format struct {
	Code     string // time_patch code
	Size     int    // record length in bytes
	Lost     Bits   // data lost (FIFO full) bit
	Tag      Bits
	Sweep    Bits // sweep counter (1-based in the hardware)
	TimeBits uint // number of time-of-flight bits

	MaxSweepLen float64 // maximal sweep length, in seconds
}

// formats is the time_patch conversion table of the MCS6A manual.
var formats = [...]Format{
	{Code: "0", Size: 2, TimeBits: 12, MaxSweepLen: 0.0000004096},
	{Code: "5", Size: 4, Sweep: bits(24, 31), TimeBits: 20, MaxSweepLen: 0.000105},
	{Code: "1", Size: 4, TimeBits: 28, MaxSweepLen: 0.027},
	{Code: "1a", Size: 6, Sweep: bits(32, 47), TimeBits: 28, MaxSweepLen: 0.027},
	{Code: "2a", Size: 6, Tag: bits(40, 47), Sweep: bits(32, 39), TimeBits: 28, MaxSweepLen: 0.027},
	{Code: "22", Size: 6, Tag: bits(40, 47), TimeBits: 36, MaxSweepLen: 6.872},
	{Code: "32", Size: 6, Lost: bit(47), Sweep: bits(40, 46), TimeBits: 36, MaxSweepLen: 6.872},
	{Code: "2", Size: 6, TimeBits: 44, MaxSweepLen: 1759.2},
	{Code: "5b", Size: 8, Lost: bit(63), Tag: bits(48, 62), Sweep: bits(32, 47), TimeBits: 28, MaxSweepLen: 0.027},
	{Code: "Db", Size: 8, Tag: bits(48, 63), Sweep: bits(32, 47), TimeBits: 28, MaxSweepLen: 0.027},
	{Code: "f3", Size: 8, Lost: bit(47), Tag: bits(48, 63), Sweep: bits(40, 46), TimeBits: 36, MaxSweepLen: 6.872},
	{Code: "43", Size: 8, Lost: bit(63), Tag: bits(48, 62), TimeBits: 44, MaxSweepLen: 1759.2},
	{Code: "c3", Size: 8, Tag: bits(48, 63), TimeBits: 44, MaxSweepLen: 1759.2},
	{Code: "3", Size: 8, Lost: bit(63), Tag: bits(58, 62), TimeBits: 54, MaxSweepLen: 1801440},
}

var formatsByCode = func() map[string]*Format {
	m := make(map[string]*Format, len(formats))
	for i := range formats {
		m[formats[i].Code] = &formats[i]
	}
	return m
}()

// Lookup returns the record layout associated with the provided
// time_patch code.
func Lookup(code string) (Format, error) {
	f, ok := formatsByCode[code]
	if !ok {
		return Format{}, &UnknownFormatError{Code: code}
	}
	return *f, nil
}

// Formats returns the list of all known time_patch codes, sorted.
func Formats() []string {
	codes := make([]string, 0, len(formats))
	for _, f := range formats {
		codes = append(codes, f.Code)
	}
	sort.Strings(codes)
	return codes
}

// NBits returns the number of bits of a record.
func (f Format) NBits() uint {
	return 8 * uint(f.Size)
}

// timeLo returns the index of the lowest time-of-flight bit.
// The time-of-flight field sits right below the lowest bit used
// by the lost, tag and sweep fields.
func (f Format) timeLo() uint {
	top := f.NBits()
	for _, b := range []Bits{f.Lost, f.Tag, f.Sweep} {
		if b.Valid && uint(b.Lo) < top {
			top = uint(b.Lo)
		}
	}
	return top - f.TimeBits
}

func (f Format) time() Bits {
	lo := f.timeLo()
	return bits(uint8(lo), uint8(lo+f.TimeBits-1))
}

func (f Format) edge() Bits {
	return bit(uint8(f.timeLo() - 1))
}

func (f Format) channel() Bits {
	return bits(0, uint8(f.timeLo()-2))
}
