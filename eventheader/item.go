// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eventheader

import (
	"time"

	"github.com/aclements/go-eventheader/byteorder"
	"github.com/aclements/go-eventheader/perfconvert"
)

// Kind distinguishes the five shapes an Item can take: a plain scalar or
// array element, the bracketing markers around an array, and the
// bracketing markers around a struct. Spec §4.6 calls these
// "Value/ArrayBegin/ArrayEnd/StructBegin/StructEnd"; they mirror (but are
// not identical to) the enumerator's State, since an Item can also be
// produced directly by the field locator in package tracefmt, outside any
// enumerator.
type Kind uint8

const (
	KindValue Kind = iota
	KindArrayBegin
	KindArrayEnd
	KindStructBegin
	KindStructEnd
)

func (k Kind) String() string {
	switch k {
	case KindValue:
		return "Value"
	case KindArrayBegin:
		return "ArrayBegin"
	case KindArrayEnd:
		return "ArrayEnd"
	case KindStructBegin:
		return "StructBegin"
	case KindStructEnd:
		return "StructEnd"
	default:
		return "Kind(?)"
	}
}

// Metadata describes the shape of an Item, independent of its bytes: the
// non-owning "view metadata" of spec §3.
type Metadata struct {
	// Name is the field or struct name this item describes.
	Name string

	// ElementCount is the number of elements: 1 for a scalar, the
	// array length for ArrayBegin, and 0 for an empty variable-length
	// array. ArrayEnd items produced by the Enumerator carry 0.
	ElementCount int

	// FieldTag is the optional 16-bit metadata tag attached to the
	// field, or 0 if none was present.
	FieldTag uint16

	// TypeSize is the number of bytes in one element for fixed-width
	// encodings, or 0 for Struct or variable-length encodings.
	TypeSize int

	// Encoding is the base encoding plus CArray/VArray flags (never
	// Chain: that flag is metadata-stream-only and is consumed before
	// an Item is constructed).
	Encoding Encoding

	// Format is the rendering hint (or, when Encoding.Base() ==
	// Struct, the struct's field count, per Format.StructFieldCount).
	Format Format

	// Order is the byte order of the event this item belongs to.
	Order byteorder.Order

	// Kind says which of the five item shapes this is.
	Kind Kind
}

// Item is an immutable, non-owning view of one decoded value, array
// bracket, or struct bracket: bytes paired with the metadata needed to
// interpret them (spec §3).
//
// An Item never outlives the byte slice it was constructed from; callers
// must not retain Item.Bytes past the lifetime of the buffer that backs
// it.
type Item struct {
	Bytes []byte
	Meta  Metadata
}

// NewItem constructs an Item, enforcing the invariants from spec §8: if
// meta.TypeSize != 0 and bytes is non-empty, len(bytes) must equal
// meta.ElementCount*meta.TypeSize; if meta.Encoding.Base() == Struct,
// bytes must be empty. NewItem panics if the caller violates these —
// they are programmer errors in the field locator or enumerator, not
// malformed-input conditions.
func NewItem(bytes []byte, meta Metadata) Item {
	if meta.TypeSize != 0 && len(bytes) != 0 && len(bytes) != meta.ElementCount*meta.TypeSize {
		panic("eventheader: item bytes length does not match element_count*type_size")
	}
	if meta.Encoding.Base() == Struct && len(bytes) != 0 {
		panic("eventheader: struct item must have empty bytes")
	}
	return Item{Bytes: bytes, Meta: meta}
}

func (it Item) elem(i, size int) []byte {
	return it.Bytes[i*size : i*size+size]
}

// GetU8 returns the unsigned 8-bit value of element i.
func (it Item) GetU8(i int) uint8 { return it.elem(i, 1)[0] }

// GetI8 returns the signed 8-bit value of element i.
func (it Item) GetI8(i int) int8 { return int8(it.GetU8(i)) }

// GetU16 returns the unsigned 16-bit value of element i.
func (it Item) GetU16(i int) uint16 { return it.Meta.Order.U16(it.elem(i, 2)) }

// GetI16 returns the signed 16-bit value of element i.
func (it Item) GetI16(i int) int16 { return it.Meta.Order.I16(it.elem(i, 2)) }

// GetU32 returns the unsigned 32-bit value of element i.
func (it Item) GetU32(i int) uint32 { return it.Meta.Order.U32(it.elem(i, 4)) }

// GetI32 returns the signed 32-bit value of element i.
func (it Item) GetI32(i int) int32 { return it.Meta.Order.I32(it.elem(i, 4)) }

// GetU64 returns the unsigned 64-bit value of element i.
func (it Item) GetU64(i int) uint64 { return it.Meta.Order.U64(it.elem(i, 8)) }

// GetI64 returns the signed 64-bit value of element i.
func (it Item) GetI64(i int) int64 { return it.Meta.Order.I64(it.elem(i, 8)) }

// GetF32 returns the 32-bit float value of element i.
func (it Item) GetF32(i int) float32 { return it.Meta.Order.F32(it.elem(i, 4)) }

// GetF64 returns the 64-bit float value of element i.
func (it Item) GetF64(i int) float64 { return it.Meta.Order.F64(it.elem(i, 8)) }

// GetGUID returns the mixed-endian GUID value of element i.
func (it Item) GetGUID(i int) byteorder.GUID { return it.Meta.Order.GUIDMixedEndian(it.elem(i, 16)) }

// GetPort returns element i interpreted as a 16-bit port number, which is
// always big-endian on the wire regardless of the event's byte order.
func (it Item) GetPort(i int) uint16 { return byteorder.BigEndian.U16(it.elem(i, 2)) }

// GetIPv4 returns element i as a dotted-quad IPv4 address. The bytes are
// emitted as-is, without any endianness swap: network-order IPv4
// addresses are a byte sequence, not an integer.
func (it Item) GetIPv4(i int) [4]byte {
	var a [4]byte
	copy(a[:], it.elem(i, 4))
	return a
}

// GetIPv6 returns element i as a 16-byte IPv6 address.
func (it Item) GetIPv6(i int) [16]byte {
	var a [16]byte
	copy(a[:], it.elem(i, 16))
	return a
}

// unixEpochMin and unixEpochMax bound the UNIX seconds for which
// time.Unix produces a calendar time with year in 0001..9999, per spec
// §4.2 "UNIX time".
const (
	unixEpochMin int64 = -62135596800  // 0001-01-01T00:00:00Z
	unixEpochMax int64 = 253402300799  // 9999-12-31T23:59:59Z
)

// GetUnixTime32 returns element i interpreted as a signed 32-bit count of
// seconds since the UNIX epoch, and the corresponding UTC time. A 32-bit
// value always falls within the representable calendar range.
func (it Item) GetUnixTime32(i int) (raw int32, t time.Time) {
	raw = it.GetI32(i)
	return raw, time.Unix(int64(raw), 0).UTC()
}

// GetUnixTime64 returns element i interpreted as a signed 64-bit count of
// seconds since the UNIX epoch. ok is false when the value falls outside
// the year range 0001..9999, in which case t is the zero Time.
func (it Item) GetUnixTime64(i int) (raw int64, t time.Time, ok bool) {
	raw = it.GetI64(i)
	if raw < unixEpochMin || raw > unixEpochMax {
		return raw, time.Time{}, false
	}
	return raw, time.Unix(raw, 0).UTC(), true
}

// StringBytes selects a text encoding for a String8/StringUtf/StringUtfBom/
// StringXml/StringJson-formatted item and returns the item's undecoded
// payload bytes with any leading BOM stripped, alongside the chosen
// encoding. It never inspects the content beyond a possible BOM, and it
// never fails: an item with no recognized BOM and an element size outside
// {1,2,4} still gets a definite answer (UTF-8) rather than an error, since
// picking a byte-faithful default is always possible.
//
// The caller decodes the returned bytes with enc.Decoder() (or
// perfconvert.AppendDecoded) to render them as UTF-8 text.
func (it Item) StringBytes() (raw []byte, enc perfconvert.TextEncoding) {
	if it.Meta.Format.Base() == String8 {
		return it.Bytes, perfconvert.Latin1
	}

	switch it.Meta.Format.Base() {
	case StringUtfBom, StringXml, StringJson:
		if bomEnc, n, ok := perfconvert.DetectBOM(it.Bytes); ok {
			return it.Bytes[n:], bomEnc
		}
	}

	// No BOM (or a format that doesn't probe for one): default by
	// element width (from the encoding itself, not Meta.TypeSize — string
	// items carry no fixed TypeSize) and the event's declared byte order.
	switch it.Meta.Encoding.Base() {
	case ZStringChar16, StringLength16Char16:
		if it.Meta.Order.IsBigEndian() {
			return it.Bytes, perfconvert.UTF16BE
		}
		return it.Bytes, perfconvert.UTF16LE
	case ZStringChar32, StringLength16Char32:
		if it.Meta.Order.IsBigEndian() {
			return it.Bytes, perfconvert.UTF32BE
		}
		return it.Bytes, perfconvert.UTF32LE
	default:
		return it.Bytes, perfconvert.UTF8
	}
}
