// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package perfconvert

import "strconv"

// AppendUnsignedDecimal appends the base-10 rendering of v.
func AppendUnsignedDecimal(dst []byte, v uint64) []byte {
	return strconv.AppendUint(dst, v, 10)
}

// AppendSignedDecimal appends the base-10 rendering of v.
func AppendSignedDecimal(dst []byte, v int64) []byte {
	return strconv.AppendInt(dst, v, 10)
}

// AppendHex32 appends v as "0x" followed by lowercase hex, with no leading
// zero padding beyond what v requires.
func AppendHex32(dst []byte, v uint32) []byte {
	dst = append(dst, '0', 'x')
	return strconv.AppendUint(dst, uint64(v), 16)
}

// AppendHex64 appends v as "0x" followed by lowercase hex.
func AppendHex64(dst []byte, v uint64) []byte {
	dst = append(dst, '0', 'x')
	return strconv.AppendUint(dst, v, 16)
}

// hexDigitsUpper are the digits used by AppendHexBytes, which renders
// uppercase per spec §4.2 "Hex bytes".
const hexDigitsUpper = "0123456789ABCDEF"

// AppendHexBytes appends a space-separated, uppercase hex dump of b: two
// hex digits per byte, one space between bytes, no trailing space. An empty
// b appends nothing.
func AppendHexBytes(dst []byte, b []byte) []byte {
	for i, c := range b {
		if i > 0 {
			dst = append(dst, ' ')
		}
		dst = append(dst, hexDigitsUpper[c>>4], hexDigitsUpper[c&0xf])
	}
	return dst
}

// AppendFloat32 appends the decimal rendering of v. extraPrecision selects
// 9 significant digits (the "%.9g" form); otherwise v is rendered with the
// fewest digits that round-trip as a float32.
func AppendFloat32(dst []byte, v float32, extraPrecision bool) []byte {
	prec := -1
	if extraPrecision {
		return strconv.AppendFloat(dst, float64(v), 'g', 9, 32)
	}
	return strconv.AppendFloat(dst, float64(v), 'g', prec, 32)
}

// AppendFloat64 appends the decimal rendering of v, at minimal or
// round-trip-safe extra precision.
func AppendFloat64(dst []byte, v float64, extraPrecision bool) []byte {
	prec := -1
	if extraPrecision {
		prec = 17
	}
	return strconv.AppendFloat(dst, v, 'g', prec, 64)
}

// AppendBool appends a boolean rendering of v: "false"/"true" for 0/1, or
// "BOOL(n)" for any other value, matching spec §4.2 "Boolean".
func AppendBool(dst []byte, v int64) []byte {
	switch v {
	case 0:
		return append(dst, "false"...)
	case 1:
		return append(dst, "true"...)
	default:
		dst = append(dst, "BOOL("...)
		dst = strconv.AppendInt(dst, v, 10)
		return append(dst, ')')
	}
}

// AppendBoolJSON appends v as JSON: a bare false/true for 0/1, a bare
// number for any other value unless opts.BoolOutOfRangeAsString selects
// the quoted "BOOL(n)" string form.
func AppendBoolJSON(dst []byte, v int64, opts Options) []byte {
	switch v {
	case 0:
		return append(dst, "false"...)
	case 1:
		return append(dst, "true"...)
	default:
		if opts&BoolOutOfRangeAsString != 0 {
			dst = append(dst, '"')
			dst = append(dst, "BOOL("...)
			dst = strconv.AppendInt(dst, v, 10)
			return append(dst, ')', '"')
		}
		return strconv.AppendInt(dst, v, 10)
	}
}

// AppendHexJSON appends a HexInt-formatted value as either a bare JSON
// number or (when opts.HexAsString is set) a quoted "0x..." string.
func AppendHexJSON(dst []byte, v uint64, opts Options) []byte {
	if opts&HexAsString != 0 {
		dst = append(dst, '"')
		dst = AppendHex64(dst, v)
		return append(dst, '"')
	}
	return strconv.AppendUint(dst, v, 10)
}
