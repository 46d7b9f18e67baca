// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package perfconvert

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

// TextEncoding identifies the text encoding selected for a string field,
// either by an explicit BOM or by the field's declared element size and
// byte order.
type TextEncoding int

const (
	UTF8 TextEncoding = iota
	UTF16LE
	UTF16BE
	UTF32LE
	UTF32BE
	Latin1
)

func (e TextEncoding) String() string {
	switch e {
	case UTF8:
		return "UTF8"
	case UTF16LE:
		return "UTF16LE"
	case UTF16BE:
		return "UTF16BE"
	case UTF32LE:
		return "UTF32LE"
	case UTF32BE:
		return "UTF32BE"
	case Latin1:
		return "Latin1"
	default:
		return "TextEncoding(?)"
	}
}

// DetectBOM inspects the start of b for a UTF-8, UTF-16, or UTF-32 byte
// order mark. It returns the encoding the BOM names and the BOM's length
// in bytes; ok is false if b does not begin with a recognized BOM.
func DetectBOM(b []byte) (enc TextEncoding, bomLen int, ok bool) {
	switch {
	case len(b) >= 4 && b[0] == 0xFF && b[1] == 0xFE && b[2] == 0x00 && b[3] == 0x00:
		return UTF32LE, 4, true
	case len(b) >= 4 && b[0] == 0x00 && b[1] == 0x00 && b[2] == 0xFE && b[3] == 0xFF:
		return UTF32BE, 4, true
	case len(b) >= 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF:
		return UTF8, 3, true
	case len(b) >= 2 && b[0] == 0xFF && b[1] == 0xFE:
		return UTF16LE, 2, true
	case len(b) >= 2 && b[0] == 0xFE && b[1] == 0xFF:
		return UTF16BE, 2, true
	default:
		return 0, 0, false
	}
}

// Decoder returns a golang.org/x/text/encoding.Encoding implementing e,
// for use decoding a string field's bytes (after any BOM has been
// stripped) to UTF-8.
func (e TextEncoding) Decoder() encoding.Encoding {
	switch e {
	case UTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	case UTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	case UTF32LE:
		return utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM)
	case UTF32BE:
		return utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM)
	case Latin1:
		return charmap.ISO8859_1
	default:
		return encoding.Nop
	}
}

// AppendDecoded appends the UTF-8 rendering of raw (encoded in e) to dst.
// Malformed sequences decode to U+FFFD, matching the spec's "never fails"
// requirement for string rendering.
func AppendDecoded(dst []byte, raw []byte, e TextEncoding) []byte {
	if e == UTF8 {
		return append(dst, raw...)
	}
	out, err := e.Decoder().NewDecoder().Bytes(raw)
	if err != nil {
		// Bytes() already substitutes U+FFFD per golang.org/x/text's
		// encoding.Replacement transformer on decode errors; err is
		// non-nil only for encodings we don't use here.
		return append(dst, raw...)
	}
	return append(dst, out...)
}
