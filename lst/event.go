// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lst

// Opt is a set of optional event fields.
type Opt uint8

const (
	OptSweep Opt = 1 << iota // sweep counter is present
	OptTag                   // tag is present
	OptLost                  // data lost bit is present
)

// Event is a single stop event.
type Event struct {
	TOF     uint64 // time of flight, in units of 0.1 ns
	Sweep   int64  // sweep number
	Channel uint8
	Edge    uint8
	Tag     uint16
	Lost    uint8 // FIFO was full when the event was recorded

	Opts Opt // optional fields present in the event
}

// Has returns whether the optional fields o are present in the event.
func (evt Event) Has(o Opt) bool {
	return evt.Opts&o == o
}

// SweepOK returns the sweep number and whether it is present.
func (evt Event) SweepOK() (int64, bool) {
	return evt.Sweep, evt.Has(OptSweep)
}

// TagOK returns the tag and whether it is present.
func (evt Event) TagOK() (uint16, bool) {
	return evt.Tag, evt.Has(OptTag)
}

// LostOK returns the data lost bit and whether it is present.
func (evt Event) LostOK() (uint8, bool) {
	return evt.Lost, evt.Has(OptLost)
}

// Nanoseconds returns the time of flight in nanoseconds.
func (evt Event) Nanoseconds() float64 {
	return float64(evt.TOF) / 10
}

// DecodeRecord extracts the fields of a single raw record laid out
// according to f.
// The returned sweep number is the raw hardware counter minus one,
// without any overflow correction.
//
// DecodeRecord panics if raw is shorter than f.Size.
func DecodeRecord(f Format, raw []byte) Event {
	var w uint64
	for i := f.Size - 1; i >= 0; i-- {
		w = w<<8 | uint64(raw[i])
	}

	evt := Event{
		TOF:     f.time().get(w),
		Channel: uint8(f.channel().get(w)),
		Edge:    uint8(f.edge().get(w)),
	}
	if f.Lost.Valid {
		evt.Lost = uint8(f.Lost.get(w))
		evt.Opts |= OptLost
	}
	if f.Tag.Valid {
		evt.Tag = uint16(f.Tag.get(w))
		evt.Opts |= OptTag
	}
	if f.Sweep.Valid {
		evt.Sweep = int64(f.Sweep.get(w)) - 1
		evt.Opts |= OptSweep
	}
	return evt
}

// EncodeRecord packs evt into raw, according to f.
// EncodeRecord is the inverse of DecodeRecord: the sweep number is
// expected to be the raw counter minus one, and is truncated to the
// width of the sweep field.
//
// EncodeRecord panics if raw is shorter than f.Size.
func EncodeRecord(f Format, raw []byte, evt Event) {
	var w uint64
	w = f.time().put(w, evt.TOF)
	w = f.edge().put(w, uint64(evt.Edge))
	w = f.channel().put(w, uint64(evt.Channel))
	if f.Lost.Valid {
		w = f.Lost.put(w, uint64(evt.Lost))
	}
	if f.Tag.Valid {
		w = f.Tag.put(w, uint64(evt.Tag))
	}
	if f.Sweep.Valid {
		w = f.Sweep.put(w, uint64(evt.Sweep+1))
	}
	for i := 0; i < f.Size; i++ {
		raw[i] = byte(w >> (8 * i))
	}
}
