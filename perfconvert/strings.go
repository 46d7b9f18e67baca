// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package perfconvert

// AppendJSONString appends s as a double-quoted JSON string, escaping
// control characters according to opts.JSONEscapeControlChars (backslash
// escapes, falling back to \u00XX) or opts.JSONSpaceControlChars
// (replace with a literal space); with neither set, control characters
// are copied through verbatim. '"' and '\\' are always escaped.
func AppendJSONString(dst []byte, s string, opts Options) []byte {
	dst = append(dst, '"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"' || c == '\\':
			dst = append(dst, '\\', c)
		case c >= 0x20:
			dst = append(dst, c)
		case opts&JSONSpaceControlChars != 0:
			dst = append(dst, ' ')
		case opts&JSONEscapeControlChars != 0:
			dst = appendEscapedControl(dst, c)
		default:
			dst = append(dst, c)
		}
	}
	return append(dst, '"')
}

func appendEscapedControl(dst []byte, c byte) []byte {
	switch c {
	case '\b':
		return append(dst, '\\', 'b')
	case '\f':
		return append(dst, '\\', 'f')
	case '\n':
		return append(dst, '\\', 'n')
	case '\r':
		return append(dst, '\\', 'r')
	case '\t':
		return append(dst, '\\', 't')
	default:
		dst = append(dst, '\\', 'u', '0', '0')
		return append(dst, hexDigitsLower[c>>4], hexDigitsLower[c&0xf])
	}
}
