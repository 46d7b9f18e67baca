// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tracefmt

import (
	"strconv"
	"strings"

	"github.com/aclements/go-eventheader/eventheader"
	"github.com/aclements/go-eventheader/internal/declex"
)

// keywords never slide into the declaration tokenizer's (base-type, name)
// window; they only set flags.
var keywords = map[string]bool{
	"long": true, "short": true, "unsigned": true, "signed": true,
	"struct": true, "__data_loc": true, "__rel_loc": true,
	"__attribute__": true, "const": true, "volatile": true,
}

var stdintEncoding = map[string]struct {
	enc    eventheader.Encoding
	signed bool
}{
	"u8": {eventheader.Value8, false}, "__u8": {eventheader.Value8, false}, "uint8_t": {eventheader.Value8, false},
	"s8": {eventheader.Value8, true}, "__s8": {eventheader.Value8, true}, "int8_t": {eventheader.Value8, true},
	"u16": {eventheader.Value16, false}, "__u16": {eventheader.Value16, false}, "uint16_t": {eventheader.Value16, false},
	"s16": {eventheader.Value16, true}, "__s16": {eventheader.Value16, true}, "int16_t": {eventheader.Value16, true},
	"u32": {eventheader.Value32, false}, "__u32": {eventheader.Value32, false}, "uint32_t": {eventheader.Value32, false},
	"s32": {eventheader.Value32, true}, "__s32": {eventheader.Value32, true}, "int32_t": {eventheader.Value32, true},
	"u64": {eventheader.Value64, false}, "__u64": {eventheader.Value64, false}, "uint64_t": {eventheader.Value64, false},
	"s64": {eventheader.Value64, true}, "__s64": {eventheader.Value64, true}, "int64_t": {eventheader.Value64, true},
}

// pointerIs32Bit selects the pointer/long width this deducer targets.
// Tracepoints in this decoder's domain are Linux kernel events, which on
// every architecture this library targets are LP64 (long and pointer are
// 64 bits); there is no runtime or compile-time signal in the format text
// itself to detect a 32-bit kernel, so the choice is a fixed constant
// rather than a deduced one.
const pointerIs32Bit = false

// declTokens is the parsed shape of a declaration: the sliding
// (base-type, name) window plus the flags and array count §4.3 describes.
type declTokens struct {
	baseType   string
	name       string
	dataLoc    bool
	relLoc     bool
	isStruct   bool
	hasStar    bool
	hasBracket bool
	arrayCount int
	longCount  int
	shortCount int
	unsigned   bool
	signedKw   bool
}

func tokenizeDecl(decl string) declTokens {
	var d declTokens
	for _, tok := range declex.Tokenize(decl) {
		switch tok.Kind {
		case declex.Ident:
			switch tok.Text {
			case "long":
				d.longCount++
			case "short":
				d.shortCount++
			case "unsigned":
				d.unsigned = true
			case "signed":
				d.signedKw = true
			case "struct":
				d.isStruct = true
			case "__data_loc":
				d.dataLoc = true
			case "__rel_loc":
				d.relLoc = true
			case "const", "volatile", "__attribute__":
				// Recognized, no semantic effect.
			default:
				if d.name != "" {
					d.baseType = d.name
				}
				d.name = tok.Text
			}
		case declex.Bracket:
			d.hasBracket = true
			d.arrayCount = bracketCount(tok.Text)
		case declex.Star:
			d.hasStar = true
		}
	}
	return d
}

// bracketCount parses the decimal or 0x-prefixed hex integer inside a
// "[...]" token, tolerating leading whitespace. A missing or unparseable
// count is 0.
func bracketCount(bracket string) int {
	inner := strings.TrimSuffix(strings.TrimPrefix(bracket, "["), "]")
	inner = strings.TrimSpace(inner)
	if inner == "" {
		return 0
	}
	base := 10
	if strings.HasPrefix(inner, "0x") || strings.HasPrefix(inner, "0X") {
		inner = inner[2:]
		base = 16
	}
	n, err := strconv.ParseUint(inner, base, 32)
	if err != nil {
		return 0
	}
	return int(n)
}

// deduceType implements §4.3 rule 1: encoding and format purely from the
// declaration text, before any size/array-kind reasoning.
func deduceType(d declTokens) (enc eventheader.Encoding, format eventheader.Format) {
	switch {
	case d.hasStar:
		if pointerIs32Bit {
			return eventheader.Value32, eventheader.HexInt
		}
		return eventheader.Value64, eventheader.HexInt

	case d.isStruct:
		return eventheader.Struct, eventheader.HexBytes

	case d.baseType == "" || d.baseType == "int":
		bits := 32
		switch {
		case d.longCount >= 2:
			bits = 64
		case d.longCount == 1:
			if pointerIs32Bit {
				bits = 32
			} else {
				bits = 64
			}
		case d.shortCount >= 1:
			bits = 16
		}
		enc = intEncoding(bits)
		if d.longCount >= 1 && d.unsigned {
			return enc, eventheader.HexInt
		}
		if d.unsigned {
			return enc, eventheader.UnsignedInt
		}
		return enc, eventheader.SignedInt

	case d.baseType == "char":
		if d.unsigned {
			return eventheader.Value8, eventheader.UnsignedInt
		}
		if d.signedKw {
			return eventheader.Value8, eventheader.SignedInt
		}
		return eventheader.Value8, eventheader.String8

	default:
		if alias, ok := stdintEncoding[d.baseType]; ok {
			if alias.signed {
				return alias.enc, eventheader.SignedInt
			}
			return alias.enc, eventheader.UnsignedInt
		}
		return eventheader.Invalid, eventheader.HexInt
	}
}

func intEncoding(bits int) eventheader.Encoding {
	switch bits {
	case 16:
		return eventheader.Value16
	case 64:
		return eventheader.Value64
	default:
		return eventheader.Value32
	}
}

// deduceArrayKind implements §4.3 rule 3.
func deduceArrayKind(d declTokens, size uint16) ArrayKind {
	switch {
	case size == 0:
		return RestOfEvent
	case (d.dataLoc || d.relLoc) && size == 2:
		if d.relLoc {
			return RelLoc2
		}
		return DataLoc2
	case (d.dataLoc || d.relLoc) && size == 4:
		if d.relLoc {
			return RelLoc4
		}
		return DataLoc4
	case d.hasBracket:
		return Fixed
	default:
		return None
	}
}

// encodingBySize maps a byte width to a fixed-width Value* encoding; ok
// is false for widths with no corresponding encoding.
func encodingBySize(size int) (eventheader.Encoding, bool) {
	switch size {
	case 1:
		return eventheader.Value8, true
	case 2:
		return eventheader.Value16, true
	case 4:
		return eventheader.Value32, true
	case 8:
		return eventheader.Value64, true
	case 16:
		return eventheader.Value128, true
	default:
		return eventheader.Invalid, false
	}
}

func log2(n int) uint8 {
	var shift uint8
	for n > 1 {
		n >>= 1
		shift++
	}
	return shift
}

// hexDumpFallback fills in the deduced fields for §4.3 rule 4's final
// bullet: an element shape the deducer could not make sense of falls back
// to an opaque hex dump of the field's raw bytes.
func hexDumpFallback(fd *FieldDescriptor) {
	fd.DeducedEncoding = eventheader.StringLength16Char8
	fd.DeducedFormat = eventheader.HexBytes
	fd.DeducedArrayCount = 1
	fd.ElementSizeShift = ElementShiftSentinel
}

// deduceFinal implements §4.3 rule 4, filling in DeducedEncoding,
// DeducedFormat, DeducedArrayCount, and ElementSizeShift from the already
// computed SpecifiedEncoding/SpecifiedFormat/ArrayKind/Size.
func deduceFinal(fd *FieldDescriptor) {
	size := int(fd.Size)

	switch {
	case fd.SpecifiedFormat.Base() == eventheader.String8:
		if size == 1 {
			fd.DeducedEncoding = eventheader.Value8
		} else {
			fd.DeducedEncoding = eventheader.ZStringChar8
		}
		fd.DeducedFormat = eventheader.String8
		fd.DeducedArrayCount = 1
		fd.ElementSizeShift = shiftFor(fd.DeducedEncoding)
		return

	case fd.SpecifiedFormat.Base() == eventheader.HexBytes && fd.SpecifiedEncoding.Base() == eventheader.Struct:
		if size == 1 {
			fd.DeducedEncoding = eventheader.Value8
		} else {
			fd.DeducedEncoding = eventheader.StringLength16Char8
		}
		fd.DeducedFormat = eventheader.HexBytes
		fd.DeducedArrayCount = 1
		fd.ElementSizeShift = ElementShiftSentinel
		return
	}

	switch fd.ArrayKind {
	case None:
		enc, ok := encodingBySize(size)
		if !ok {
			hexDumpFallback(fd)
			return
		}
		fd.DeducedEncoding = enc
		fd.DeducedFormat = fd.SpecifiedFormat
		fd.DeducedArrayCount = 1
		fd.ElementSizeShift = log2(size)

	case Fixed:
		if fd.SpecifiedArrayCount == 0 {
			elemSize := fd.SpecifiedEncoding.TypeSize()
			if elemSize == 0 || size%elemSize != 0 {
				hexDumpFallback(fd)
				return
			}
			fd.DeducedEncoding = fd.SpecifiedEncoding.Base() | eventheader.CArrayFlag
			fd.DeducedFormat = fd.SpecifiedFormat
			fd.DeducedArrayCount = size / elemSize
			fd.ElementSizeShift = log2(elemSize)
		} else {
			n := fd.SpecifiedArrayCount
			if size%n != 0 {
				hexDumpFallback(fd)
				return
			}
			elemSize := size / n
			enc, ok := encodingBySize(elemSize)
			if !ok {
				hexDumpFallback(fd)
				return
			}
			fd.DeducedEncoding = enc | eventheader.CArrayFlag
			fd.DeducedFormat = fd.SpecifiedFormat
			fd.DeducedArrayCount = n
			fd.ElementSizeShift = log2(elemSize)
		}

	default: // RestOfEvent, RelLoc2, DataLoc2, RelLoc4, DataLoc4
		fd.DeducedEncoding = fd.SpecifiedEncoding.Base() | eventheader.VArrayFlag
		fd.DeducedFormat = fd.SpecifiedFormat
		fd.DeducedArrayCount = 0
		fd.ElementSizeShift = shiftFor(fd.SpecifiedEncoding)
	}
}

func shiftFor(enc eventheader.Encoding) uint8 {
	if n := enc.TypeSize(); n != 0 {
		return log2(n)
	}
	return ElementShiftSentinel
}

// ParseFormatLine parses one whole line of a "format:" block: its
// semicolon-separated field, offset, size, and signed properties, matching
// tracefs's actual format.
//
// A well-formed line looks like:
//
//	field:unsigned long x;	offset:8;	size:8;	signed:0;
//
// ParseFormatLine returns ok == false if the line has no parseable
// "field" property, or no parseable offset/size.
func ParseFormatLine(line string) (fd FieldDescriptor, ok bool) {
	var sawField, sawOffset, sawSize bool
	var signedAttr Signedness
	var declText string

	for _, part := range strings.Split(line, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		colon := strings.IndexByte(part, ':')
		if colon == -1 {
			continue
		}
		key := strings.TrimSpace(part[:colon])
		value := strings.TrimSpace(part[colon+1:])
		switch key {
		case "field", "field special":
			declText = value
			sawField = true
		case "offset":
			n, err := strconv.ParseUint(value, 10, 16)
			if err != nil {
				continue
			}
			fd.Offset = uint16(n)
			sawOffset = true
		case "size":
			n, err := strconv.ParseUint(value, 10, 16)
			if err != nil {
				continue
			}
			fd.Size = uint16(n)
			sawSize = true
		case "signed":
			switch value {
			case "0":
				signedAttr = Unsigned
			case "1":
				signedAttr = Signed
			}
		}
	}

	if !sawField || !sawOffset || !sawSize {
		return FieldDescriptor{}, false
	}

	fd.Field = declText
	d := tokenizeDecl(declText)
	fd.Name = d.name
	if fd.Name == "" {
		fd.Name = "noname"
	}
	fd.SpecifiedArrayCount = d.arrayCount

	fd.SpecifiedEncoding, fd.SpecifiedFormat = deduceType(d)

	// §4.3 rule 2: signed: overrides a Signed/Unsigned format.
	if signedAttr != SignedUnspecified {
		switch fd.SpecifiedFormat.Base() {
		case eventheader.SignedInt, eventheader.UnsignedInt:
			if signedAttr == Unsigned {
				fd.SpecifiedFormat = eventheader.UnsignedInt
			} else {
				fd.SpecifiedFormat = eventheader.SignedInt
			}
		}
	}
	fd.Signed = signedAttr

	fd.ArrayKind = deduceArrayKind(d, fd.Size)
	deduceFinal(&fd)

	return fd, true
}
