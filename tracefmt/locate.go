// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tracefmt

import (
	"bytes"

	"github.com/aclements/go-eventheader/byteorder"
	"github.com/aclements/go-eventheader/eventheader"
)

// LocateField computes the byte range fd occupies within raw and wraps
// it as an Item, resolving fixed arrays, rest-of-event fields, and the
// four dynamic-location variants (§4.4). It never fails: out-of-range
// offsets, missing NUL terminators, and overrunning lengths all produce
// an empty Item rather than an error.
func LocateField(fd FieldDescriptor, raw []byte, order byteorder.Order) eventheader.Item {
	offset, size := int(fd.Offset), int(fd.Size)
	if offset < 0 || offset+size > len(raw) {
		return emptyItem(fd, order)
	}

	var fieldBytes []byte
	switch fd.ArrayKind {
	case None, Fixed:
		fieldBytes = raw[offset : offset+size]

	case RestOfEvent:
		fieldBytes = raw[offset:]

	case DataLoc2, RelLoc2:
		v := int(order.U16(raw[offset : offset+2]))
		resolved := v
		if fd.ArrayKind == RelLoc2 {
			resolved = v + offset + size
		}
		if resolved < 0 || resolved > len(raw) {
			return emptyItem(fd, order)
		}
		nul := bytes.IndexByte(raw[resolved:], 0)
		if nul == -1 {
			return emptyItem(fd, order)
		}
		fieldBytes = raw[resolved : resolved+nul]

	case DataLoc4, RelLoc4:
		v := order.U32(raw[offset : offset+4])
		length := int(v >> 16)
		off := int(v & 0xFFFF)
		resolved := off
		if fd.ArrayKind == RelLoc4 {
			resolved = off + offset + size
		}
		if resolved < 0 || resolved+length > len(raw) {
			return emptyItem(fd, order)
		}
		fieldBytes = raw[resolved : resolved+length]

	default:
		return emptyItem(fd, order)
	}

	fieldBytes = truncateToEncoding(fieldBytes, fd.DeducedEncoding)

	elementCount := fd.DeducedArrayCount
	if fd.ArrayKind != None && fd.ArrayKind != Fixed {
		if fd.ElementSizeShift == ElementShiftSentinel {
			elementCount = 1
		} else {
			elementCount = len(fieldBytes) >> fd.ElementSizeShift
		}
	}

	return eventheader.NewItem(fieldBytes, eventheader.Metadata{
		Name:         fd.Name,
		ElementCount: elementCount,
		TypeSize:     fd.DeducedEncoding.TypeSize(),
		Encoding:     fd.DeducedEncoding,
		Format:       fd.DeducedFormat,
		Order:        order,
		Kind:         eventheader.KindValue,
	})
}

// truncateToEncoding applies §4.4's blanket post-processing: NUL
// truncation for ZString encodings, and rounding down to a whole number
// of elements for any other encoding that has a fixed element size.
func truncateToEncoding(b []byte, enc eventheader.Encoding) []byte {
	switch enc.Base() {
	case eventheader.ZStringChar8:
		if i := bytes.IndexByte(b, 0); i != -1 {
			return b[:i]
		}
		return b
	case eventheader.ZStringChar16:
		for i := 0; i+1 < len(b); i += 2 {
			if b[i] == 0 && b[i+1] == 0 {
				return b[:i]
			}
		}
		return b
	case eventheader.ZStringChar32:
		for i := 0; i+3 < len(b); i += 4 {
			if b[i] == 0 && b[i+1] == 0 && b[i+2] == 0 && b[i+3] == 0 {
				return b[:i]
			}
		}
		return b
	default:
		if n := enc.TypeSize(); n > 1 {
			return b[:len(b)/n*n]
		}
		return b
	}
}

func emptyItem(fd FieldDescriptor, order byteorder.Order) eventheader.Item {
	return eventheader.NewItem(nil, eventheader.Metadata{
		Name:         fd.Name,
		ElementCount: 0,
		TypeSize:     fd.DeducedEncoding.TypeSize(),
		Encoding:     fd.DeducedEncoding,
		Format:       fd.DeducedFormat,
		Order:        order,
		Kind:         eventheader.KindValue,
	})
}
