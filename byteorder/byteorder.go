// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package byteorder reads primitive values out of byte slices according to
// a runtime-selected endianness.
//
// It plays the role of the byte-order adapter described as an external
// collaborator in the decoder's design: a trivial primitive reader switched
// on a single endianness flag. Event payloads and EventHeader metadata
// declare their own endianness, so the field locator and enumerator carry
// an Order value rather than assuming the host's.
package byteorder

import (
	"encoding/binary"
	"math"
)

// Order reads multi-byte values from a byte slice in a fixed endianness.
//
// The zero Order is LittleEndian.
type Order struct {
	big bool
}

// LittleEndian reads values as little-endian.
var LittleEndian = Order{big: false}

// BigEndian reads values as big-endian.
var BigEndian = Order{big: true}

func FromBool(bigEndian bool) Order {
	return Order{big: bigEndian}
}

func (o Order) order() binary.ByteOrder {
	if o.big {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// IsBigEndian reports whether o reads multi-byte values big-endian.
func (o Order) IsBigEndian() bool {
	return o.big
}

// U16 reads an unsigned 16-bit value from the first 2 bytes of b.
//
// The caller must pass a slice of at least the required width; U16 does
// not bounds check.
func (o Order) U16(b []byte) uint16 { return o.order().Uint16(b) }

// U32 reads an unsigned 32-bit value from the first 4 bytes of b.
func (o Order) U32(b []byte) uint32 { return o.order().Uint32(b) }

// U64 reads an unsigned 64-bit value from the first 8 bytes of b.
func (o Order) U64(b []byte) uint64 { return o.order().Uint64(b) }

// I16 reads a signed 16-bit value from the first 2 bytes of b.
func (o Order) I16(b []byte) int16 { return int16(o.U16(b)) }

// I32 reads a signed 32-bit value from the first 4 bytes of b.
func (o Order) I32(b []byte) int32 { return int32(o.U32(b)) }

// I64 reads a signed 64-bit value from the first 8 bytes of b.
func (o Order) I64(b []byte) int64 { return int64(o.U64(b)) }

// F32 reads an IEEE 754 single-precision value from the first 4 bytes of b.
func (o Order) F32(b []byte) float32 { return math.Float32frombits(o.U32(b)) }

// F64 reads an IEEE 754 double-precision value from the first 8 bytes of b.
func (o Order) F64(b []byte) float64 { return math.Float64frombits(o.U64(b)) }

// GUID is a Microsoft-style mixed-endian 128-bit identifier: the first
// three fields are integers stored big-endian, and the final 8 bytes are
// an opaque byte sequence; neither depends on the event's overall
// endianness.
type GUID struct {
	Data1 uint32
	Data2 uint16
	Data3 uint16
	Data4 [8]byte
}

// GUIDMixedEndian reads a GUID from the first 16 bytes of b. Data1, Data2,
// and Data3 are always read big-endian, independent of o or the event's
// declared endianness; Data4 is an opaque byte sequence copied verbatim.
// This matches the wire layout of a Microsoft GUID regardless of the
// overall byte order of the event that contains it.
func (o Order) GUIDMixedEndian(b []byte) GUID {
	var g GUID
	g.Data1 = BigEndian.U32(b[0:4])
	g.Data2 = BigEndian.U16(b[4:6])
	g.Data3 = BigEndian.U16(b[6:8])
	copy(g.Data4[:], b[8:16])
	return g
}
