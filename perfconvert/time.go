// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package perfconvert

import "time"

// AppendUnixTime32 appends the ISO-8601 UTC rendering of a 32-bit UNIX
// timestamp; every int32 second count falls within the representable
// calendar range, so this never falls back to a bare number.
func AppendUnixTime32(dst []byte, raw int32) []byte {
	return time.Unix(int64(raw), 0).UTC().AppendFormat(dst, "2006-01-02T15:04:05Z")
}

// AppendUnixTime64 appends a 64-bit UNIX timestamp: the ISO-8601 UTC
// rendering when t/ok (from Item.GetUnixTime64) indicate the value is
// in-range, or "TIME(n)" when it is not.
func AppendUnixTime64(dst []byte, raw int64, t time.Time, ok bool) []byte {
	if !ok {
		dst = append(dst, "TIME("...)
		dst = AppendSignedDecimal(dst, raw)
		return append(dst, ')')
	}
	return t.AppendFormat(dst, "2006-01-02T15:04:05Z")
}

// AppendUnixTime32JSON appends a 32-bit UNIX timestamp as JSON: a quoted
// ISO-8601 string if opts.TimeWithinRangeAsString is set, else the bare
// second count.
func AppendUnixTime32JSON(dst []byte, raw int32, opts Options) []byte {
	if opts&TimeWithinRangeAsString == 0 {
		return AppendSignedDecimal(dst, int64(raw))
	}
	dst = append(dst, '"')
	dst = AppendUnixTime32(dst, raw)
	return append(dst, '"')
}

// AppendUnixTime64JSON appends a 64-bit UNIX timestamp as JSON, honoring
// opts.TimeWithinRangeAsString and opts.TimeOutOfRangeAsString
// independently for the in-range and out-of-range cases.
func AppendUnixTime64JSON(dst []byte, raw int64, t time.Time, ok bool, opts Options) []byte {
	asString := ok && opts&TimeWithinRangeAsString != 0 || !ok && opts&TimeOutOfRangeAsString != 0
	if !asString {
		return AppendSignedDecimal(dst, raw)
	}
	dst = append(dst, '"')
	dst = AppendUnixTime64(dst, raw, t, ok)
	return append(dst, '"')
}
