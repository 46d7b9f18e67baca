// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eventheader

import (
	"fmt"
	"math"

	"github.com/aclements/go-eventheader/perfconvert"
)

// typeName returns the diagnostic type-name prefix for an (encoding,
// format) pair, e.g. "UInt8", "Int16", "Char32". These strings are
// stable output and must be reproduced verbatim (spec §9's second open
// question): they are not generated from any formal grammar beyond this
// dispatch.
func typeName(enc Encoding, format Format) string {
	base := enc.Base()
	bits := base.TypeSize() * 8

	switch base {
	case Value8, Value16, Value32, Value64, Value128:
		switch format.Base() {
		case UnsignedInt:
			return fmt.Sprintf("UInt%d", bits)
		case SignedInt:
			return fmt.Sprintf("Int%d", bits)
		case HexInt:
			return fmt.Sprintf("Hex%d", bits)
		case Boolean:
			return fmt.Sprintf("Bool%d", bits)
		case Errno:
			return fmt.Sprintf("Errno%d", bits)
		case Pid:
			return fmt.Sprintf("Pid%d", bits)
		case Time:
			return fmt.Sprintf("Time%d", bits)
		case Float:
			return fmt.Sprintf("Float%d", bits)
		case Port:
			return "Port"
		case IPv4:
			return "IPv4"
		case IPv6:
			return "IPv6"
		case Uuid:
			return "Guid"
		case HexBytes:
			return fmt.Sprintf("HexBytes%d", bits)
		default:
			return fmt.Sprintf("%s%d", format.Base(), bits)
		}
	case ZStringChar8, StringLength16Char8:
		return "Char8"
	case ZStringChar16, StringLength16Char16:
		return "Char16"
	case ZStringChar32, StringLength16Char32:
		return "Char32"
	case Struct:
		return "Struct"
	default:
		return "Invalid"
	}
}

func isStringEncoding(base Encoding) bool {
	switch base {
	case ZStringChar8, ZStringChar16, ZStringChar32,
		StringLength16Char8, StringLength16Char16, StringLength16Char32:
		return true
	}
	return false
}

// ToString renders it in diagnostic form: "Type:Value" for a scalar,
// "Type:V1, V2, …" for an array (comma, plus a space when
// opts&perfconvert.Space is set). Struct items render as "" — their
// contents are walked via the enumerator, never emitted directly.
func (it Item) ToString(opts perfconvert.Options) string {
	if it.Meta.Kind == KindStructBegin || it.Meta.Kind == KindStructEnd {
		return ""
	}

	base := it.Meta.Encoding.Base()
	name := typeName(it.Meta.Encoding, it.Meta.Format)

	var buf []byte
	buf = append(buf, name...)
	buf = append(buf, ':')

	if it.Meta.Format.Base() == HexBytes {
		return string(perfconvert.AppendHexBytes(buf, it.Bytes))
	}
	if isStringEncoding(base) {
		raw, enc := it.StringBytes()
		return string(perfconvert.AppendDecoded(buf, raw, enc))
	}

	if it.Meta.Encoding.IsArray() {
		for i := 0; i < it.Meta.ElementCount; i++ {
			if i > 0 {
				buf = appendSeparator(buf, opts)
			}
			buf = appendScalarDiagnostic(buf, it, i)
		}
		return string(buf)
	}
	return string(appendScalarDiagnostic(buf, it, 0))
}

// ToJSON renders it as JSON: a bare value, a quoted/escaped string, or a
// "[ … ]" array, per the dispatch in spec §4.7. Struct items render as
// "".
func (it Item) ToJSON(opts perfconvert.Options) string {
	if it.Meta.Kind == KindStructBegin || it.Meta.Kind == KindStructEnd {
		return ""
	}

	base := it.Meta.Encoding.Base()

	if it.Meta.Format.Base() == HexBytes {
		text := string(perfconvert.AppendHexBytes(nil, it.Bytes))
		return string(perfconvert.AppendJSONString(nil, text, opts))
	}
	if isStringEncoding(base) {
		raw, enc := it.StringBytes()
		text := string(perfconvert.AppendDecoded(nil, raw, enc))
		return string(perfconvert.AppendJSONString(nil, text, opts))
	}

	if it.Meta.Encoding.IsArray() {
		var buf []byte
		buf = append(buf, '[')
		for i := 0; i < it.Meta.ElementCount; i++ {
			if i > 0 {
				buf = appendSeparator(buf, opts)
			}
			buf = appendScalarJSON(buf, it, i, opts)
		}
		buf = append(buf, ']')
		return string(buf)
	}
	return string(appendScalarJSON(nil, it, 0, opts))
}

func appendSeparator(dst []byte, opts perfconvert.Options) []byte {
	if opts&perfconvert.Space != 0 {
		return append(dst, ", "...)
	}
	return append(dst, ',')
}

// appendScalarDiagnostic appends element i's value in its always-friendly
// diagnostic rendering: unknown errnos, non-finite floats, out-of-range
// times, and out-of-range booleans all get a fallback form unconditionally
// (diagnostic text has no "as string" option to toggle).
func appendScalarDiagnostic(dst []byte, it Item, i int) []byte {
	base := it.Meta.Encoding.Base()
	format := it.Meta.Format.Base()

	switch base {
	case Value8:
		switch format {
		case SignedInt:
			return perfconvert.AppendSignedDecimal(dst, int64(it.GetI8(i)))
		case HexInt:
			return perfconvert.AppendHex32(dst, uint32(it.GetU8(i)))
		case Boolean:
			return perfconvert.AppendBool(dst, int64(it.GetU8(i)))
		case Errno:
			return perfconvert.AppendErrno(dst, int32(it.GetI8(i)))
		default:
			return perfconvert.AppendUnsignedDecimal(dst, uint64(it.GetU8(i)))
		}

	case Value16:
		switch format {
		case SignedInt:
			return perfconvert.AppendSignedDecimal(dst, int64(it.GetI16(i)))
		case HexInt:
			return perfconvert.AppendHex32(dst, uint32(it.GetU16(i)))
		case Boolean:
			return perfconvert.AppendBool(dst, int64(it.GetU16(i)))
		case Errno:
			return perfconvert.AppendErrno(dst, int32(it.GetI16(i)))
		case Port:
			return perfconvert.AppendPort(dst, it.GetPort(i))
		default:
			return perfconvert.AppendUnsignedDecimal(dst, uint64(it.GetU16(i)))
		}

	case Value32:
		switch format {
		case SignedInt:
			return perfconvert.AppendSignedDecimal(dst, int64(it.GetI32(i)))
		case HexInt:
			return perfconvert.AppendHex32(dst, it.GetU32(i))
		case Boolean:
			return perfconvert.AppendBool(dst, int64(it.GetU32(i)))
		case Errno:
			return perfconvert.AppendErrno(dst, it.GetI32(i))
		case Pid:
			return perfconvert.AppendSignedDecimal(dst, int64(it.GetI32(i)))
		case Time:
			raw, _ := it.GetUnixTime32(i)
			return perfconvert.AppendUnixTime32(dst, raw)
		case Float:
			return perfconvert.AppendFloat32(dst, it.GetF32(i), false)
		case IPv4:
			return perfconvert.AppendIPv4(dst, it.GetIPv4(i))
		default:
			return perfconvert.AppendUnsignedDecimal(dst, uint64(it.GetU32(i)))
		}

	case Value64:
		switch format {
		case SignedInt:
			return perfconvert.AppendSignedDecimal(dst, it.GetI64(i))
		case HexInt:
			return perfconvert.AppendHex64(dst, it.GetU64(i))
		case Boolean:
			return perfconvert.AppendBool(dst, int64(it.GetU64(i)))
		case Errno:
			return perfconvert.AppendErrno(dst, int32(it.GetI64(i)))
		case Pid:
			return perfconvert.AppendSignedDecimal(dst, it.GetI64(i))
		case Time:
			raw, t, ok := it.GetUnixTime64(i)
			return perfconvert.AppendUnixTime64(dst, raw, t, ok)
		case Float:
			return perfconvert.AppendFloat64(dst, it.GetF64(i), false)
		default:
			return perfconvert.AppendUnsignedDecimal(dst, it.GetU64(i))
		}

	case Value128:
		switch format {
		case Uuid:
			return perfconvert.AppendGUID(dst, it.GetGUID(i))
		case IPv6:
			return perfconvert.AppendIPv6(dst, it.GetIPv6(i))
		default:
			return perfconvert.AppendHexBytes(dst, it.elem(i, 16))
		}
	}
	return dst
}

// appendScalarJSON appends element i's value in JSON form, honoring the
// *AsString options that pick between a bare number and a quoted string
// for errno, boolean, time, and hex renderings.
func appendScalarJSON(dst []byte, it Item, i int, opts perfconvert.Options) []byte {
	base := it.Meta.Encoding.Base()
	format := it.Meta.Format.Base()

	switch base {
	case Value8:
		switch format {
		case SignedInt:
			return perfconvert.AppendSignedDecimal(dst, int64(it.GetI8(i)))
		case HexInt:
			return perfconvert.AppendHexJSON(dst, uint64(it.GetU8(i)), opts)
		case Boolean:
			return perfconvert.AppendBoolJSON(dst, int64(it.GetU8(i)), opts)
		case Errno:
			return perfconvert.AppendErrnoJSON(dst, int32(it.GetI8(i)), opts)
		default:
			return perfconvert.AppendUnsignedDecimal(dst, uint64(it.GetU8(i)))
		}

	case Value16:
		switch format {
		case SignedInt:
			return perfconvert.AppendSignedDecimal(dst, int64(it.GetI16(i)))
		case HexInt:
			return perfconvert.AppendHexJSON(dst, uint64(it.GetU16(i)), opts)
		case Boolean:
			return perfconvert.AppendBoolJSON(dst, int64(it.GetU16(i)), opts)
		case Errno:
			return perfconvert.AppendErrnoJSON(dst, int32(it.GetI16(i)), opts)
		case Port:
			return perfconvert.AppendPort(dst, it.GetPort(i))
		default:
			return perfconvert.AppendUnsignedDecimal(dst, uint64(it.GetU16(i)))
		}

	case Value32:
		switch format {
		case SignedInt:
			return perfconvert.AppendSignedDecimal(dst, int64(it.GetI32(i)))
		case HexInt:
			return perfconvert.AppendHexJSON(dst, uint64(it.GetU32(i)), opts)
		case Boolean:
			return perfconvert.AppendBoolJSON(dst, int64(it.GetU32(i)), opts)
		case Errno:
			return perfconvert.AppendErrnoJSON(dst, it.GetI32(i), opts)
		case Pid:
			return perfconvert.AppendSignedDecimal(dst, int64(it.GetI32(i)))
		case Time:
			raw, _ := it.GetUnixTime32(i)
			return perfconvert.AppendUnixTime32JSON(dst, raw, opts)
		case Float:
			v := it.GetF32(i)
			if !math.IsNaN(float64(v)) && !math.IsInf(float64(v), 0) {
				return perfconvert.AppendFloat32(dst, v, opts&perfconvert.FloatExtraPrecision != 0)
			}
			return appendFloatJSON(dst, float64(v), opts)
		case IPv4:
			return perfconvert.AppendJSONString(dst, string(perfconvert.AppendIPv4(nil, it.GetIPv4(i))), opts)
		default:
			return perfconvert.AppendUnsignedDecimal(dst, uint64(it.GetU32(i)))
		}

	case Value64:
		switch format {
		case SignedInt:
			return perfconvert.AppendSignedDecimal(dst, it.GetI64(i))
		case HexInt:
			return perfconvert.AppendHexJSON(dst, it.GetU64(i), opts)
		case Boolean:
			return perfconvert.AppendBoolJSON(dst, int64(it.GetU64(i)), opts)
		case Errno:
			return perfconvert.AppendErrnoJSON(dst, int32(it.GetI64(i)), opts)
		case Pid:
			return perfconvert.AppendSignedDecimal(dst, it.GetI64(i))
		case Time:
			raw, t, ok := it.GetUnixTime64(i)
			return perfconvert.AppendUnixTime64JSON(dst, raw, t, ok, opts)
		case Float:
			return appendFloatJSON(dst, it.GetF64(i), opts)
		default:
			return perfconvert.AppendUnsignedDecimal(dst, it.GetU64(i))
		}

	case Value128:
		switch format {
		case Uuid:
			return perfconvert.AppendJSONString(dst, string(perfconvert.AppendGUID(nil, it.GetGUID(i))), opts)
		case IPv6:
			return perfconvert.AppendJSONString(dst, string(perfconvert.AppendIPv6(nil, it.GetIPv6(i))), opts)
		default:
			return perfconvert.AppendJSONString(dst, string(perfconvert.AppendHexBytes(nil, it.elem(i, 16))), opts)
		}
	}
	return dst
}

// appendFloatJSON renders a float as JSON: bare if finite, or per
// opts.FloatNonFiniteAsString if not (quoted "NaN"/"+Inf"/"-Inf", else
// null).
func appendFloatJSON(dst []byte, v float64, opts perfconvert.Options) []byte {
	finite := !math.IsNaN(v) && !math.IsInf(v, 0)
	if finite {
		return perfconvert.AppendFloat64(dst, v, opts&perfconvert.FloatExtraPrecision != 0)
	}
	if opts&perfconvert.FloatNonFiniteAsString != 0 {
		var text []byte
		text = perfconvert.AppendFloat64(text, v, false)
		return perfconvert.AppendJSONString(dst, string(text), opts)
	}
	return append(dst, "null"...)
}
