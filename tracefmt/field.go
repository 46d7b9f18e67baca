// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tracefmt parses tracefs "format:" files and locates field bytes
// within a raw tracepoint event, for both classic and EventHeader-style
// events. It is grounded on the line-oriented, key:value "field:" parser
// ftrace readers traditionally use, generalized to the full deduction
// table a self-describing field declaration requires.
package tracefmt

import "github.com/aclements/go-eventheader/eventheader"

// Signedness is the tri-valued state of a field's "signed:" attribute:
// the attribute may be entirely absent from a format line.
type Signedness uint8

const (
	SignedUnspecified Signedness = iota
	Unsigned
	Signed
)

// ArrayKind classifies how a field's bytes are located within an event.
type ArrayKind uint8

const (
	// None: a single fixed-width scalar, no brackets in the declaration.
	None ArrayKind = iota
	// Fixed: a constant-length array, located entirely within the
	// field's nominal offset/size range.
	Fixed
	// RestOfEvent: size:0 in the format line; the field is every byte
	// from its offset to the end of the event.
	RestOfEvent
	// RelLoc2: a 2-byte slot holding an offset relative to the end of
	// that slot, pointing at a NUL-terminated byte range.
	RelLoc2
	// DataLoc2: like RelLoc2, but the offset is absolute within the
	// event.
	DataLoc2
	// RelLoc4: a 4-byte slot holding a 16-bit length and a 16-bit
	// offset relative to the end of that slot.
	RelLoc4
	// DataLoc4: like RelLoc4, but the offset is absolute within the
	// event.
	DataLoc4
)

func (k ArrayKind) String() string {
	switch k {
	case None:
		return "None"
	case Fixed:
		return "Fixed"
	case RestOfEvent:
		return "RestOfEvent"
	case RelLoc2:
		return "RelLoc2"
	case DataLoc2:
		return "DataLoc2"
	case RelLoc4:
		return "RelLoc4"
	case DataLoc4:
		return "DataLoc4"
	default:
		return "ArrayKind(?)"
	}
}

// ElementShiftSentinel marks a field whose elements have no fixed size
// (a string or hex-dump blob): element_count is computed from the
// resolved byte length directly, not by shifting it.
const ElementShiftSentinel uint8 = 0xFF

// FieldDescriptor is the result of parsing one "field:" line: everything
// needed to locate and interpret that field's bytes within an event.
type FieldDescriptor struct {
	// Name is the field's name, taken from the declaration; "noname"
	// if the declaration could not be parsed well enough to find one.
	Name string

	// Field is the raw declaration text, e.g. "__data_loc char[] msg".
	Field string

	Offset uint16
	Size   uint16
	Signed Signedness

	// SpecifiedArrayCount is the literal [N] from the declaration, or
	// 0 if absent.
	SpecifiedArrayCount int

	ArrayKind ArrayKind

	// SpecifiedEncoding and SpecifiedFormat are deduced purely from the
	// declaration text (§4.3 rule 1), before size/array-kind reasoning.
	SpecifiedEncoding eventheader.Encoding
	SpecifiedFormat   eventheader.Format

	// DeducedEncoding, DeducedFormat, and DeducedArrayCount are the
	// final values after applying the array-kind and size rules
	// (§4.3 rule 4); these are what the field locator and Item use.
	DeducedEncoding   eventheader.Encoding
	DeducedFormat     eventheader.Format
	DeducedArrayCount int

	// ElementSizeShift is log2 of one element's byte size, or
	// ElementShiftSentinel for strings and hex-dump blobs.
	ElementSizeShift uint8
}
