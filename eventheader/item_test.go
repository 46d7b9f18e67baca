// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eventheader

import (
	"testing"

	"github.com/aclements/go-eventheader/byteorder"
	"github.com/aclements/go-eventheader/perfconvert"
)

func TestItemScalarAccessors(t *testing.T) {
	it := NewItem([]byte{0x2a, 0, 0, 0}, Metadata{
		ElementCount: 1,
		TypeSize:     4,
		Encoding:     Value32,
		Order:        byteorder.LittleEndian,
		Kind:         KindValue,
	})
	if got := it.GetU32(0); got != 42 {
		t.Errorf("GetU32 = %d, want 42", got)
	}
	if got := it.GetI32(0); got != 42 {
		t.Errorf("GetI32 = %d, want 42", got)
	}
}

func TestItemArrayAccessors(t *testing.T) {
	it := NewItem([]byte{1, 0, 2, 0, 3, 0}, Metadata{
		ElementCount: 3,
		TypeSize:     2,
		Encoding:     Value16 | CArrayFlag,
		Order:        byteorder.LittleEndian,
		Kind:         KindValue,
	})
	for i, want := range []uint16{1, 2, 3} {
		if got := it.GetU16(i); got != want {
			t.Errorf("GetU16(%d) = %d, want %d", i, got, want)
		}
	}
}

func TestNewItemPanicsOnLengthMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewItem did not panic on length mismatch")
		}
	}()
	NewItem([]byte{1, 2, 3}, Metadata{ElementCount: 1, TypeSize: 4})
}

func TestNewItemPanicsOnNonEmptyStruct(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewItem did not panic on non-empty struct item")
		}
	}()
	NewItem([]byte{1}, Metadata{Encoding: Struct})
}

func TestGetUnixTime32(t *testing.T) {
	it := NewItem([]byte{0, 0, 0, 0}, Metadata{
		ElementCount: 1, TypeSize: 4, Encoding: Value32, Order: byteorder.LittleEndian,
	})
	raw, tm := it.GetUnixTime32(0)
	if raw != 0 || tm.Year() != 1970 {
		t.Errorf("GetUnixTime32 = %d, %v, want 0, 1970", raw, tm)
	}
}

func TestGetUnixTime64OutOfRange(t *testing.T) {
	// int64 max seconds is far beyond year 9999.
	it := NewItem([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x7f}, Metadata{
		ElementCount: 1, TypeSize: 8, Encoding: Value64, Order: byteorder.LittleEndian,
	})
	_, _, ok := it.GetUnixTime64(0)
	if ok {
		t.Error("GetUnixTime64 should report out-of-range for int64 max seconds")
	}
}

func TestStringBytesLatin1(t *testing.T) {
	it := NewItem([]byte("caf\xe9"), Metadata{
		ElementCount: 4, TypeSize: 1, Encoding: ZStringChar8,
		Format: String8, Order: byteorder.LittleEndian,
	})
	raw, enc := it.StringBytes()
	if enc != perfconvert.Latin1 {
		t.Errorf("StringBytes encoding = %v, want Latin1", enc)
	}
	if string(raw) != "caf\xe9" {
		t.Errorf("StringBytes raw = %q, want unchanged", raw)
	}
}

func TestStringBytesBOMDetected(t *testing.T) {
	payload := append([]byte{0xEF, 0xBB, 0xBF}, "hi"...)
	it := NewItem(payload, Metadata{
		ElementCount: len(payload), TypeSize: 1, Encoding: ZStringChar8,
		Format: StringUtfBom, Order: byteorder.LittleEndian,
	})
	raw, enc := it.StringBytes()
	if enc != perfconvert.UTF8 {
		t.Errorf("StringBytes encoding = %v, want UTF8", enc)
	}
	if string(raw) != "hi" {
		t.Errorf("StringBytes raw = %q, want %q (BOM stripped)", raw, "hi")
	}
}

func TestStringBytesDefaultByElementSize(t *testing.T) {
	it := NewItem([]byte{'h', 0, 'i', 0}, Metadata{
		ElementCount: 2, TypeSize: 2, Encoding: ZStringChar16,
		Format: StringUtf, Order: byteorder.LittleEndian,
	})
	_, enc := it.StringBytes()
	if enc != perfconvert.UTF16LE {
		t.Errorf("StringBytes encoding = %v, want UTF16LE", enc)
	}
}

// TestStringBytesWidthFromEncodingNotTypeSize reproduces the shape the
// enumerator actually builds: a ZStringChar32 item with TypeSize left at
// its zero value (readZString/readLengthPrefixed never set it). The width
// must still come from the encoding, not Meta.TypeSize.
func TestStringBytesWidthFromEncodingNotTypeSize(t *testing.T) {
	it := NewItem([]byte{0, 0, 0, 'h', 0, 0, 0, 'i'}, Metadata{
		ElementCount: 2, Encoding: ZStringChar32,
		Format: StringUtf, Order: byteorder.BigEndian,
	})
	_, enc := it.StringBytes()
	if enc != perfconvert.UTF32BE {
		t.Errorf("StringBytes encoding = %v, want UTF32BE", enc)
	}

	it16 := NewItem([]byte{0, 'h', 0, 'i'}, Metadata{
		ElementCount: 2, Encoding: StringLength16Char16,
		Format: StringUtf, Order: byteorder.BigEndian,
	})
	_, enc16 := it16.StringBytes()
	if enc16 != perfconvert.UTF16BE {
		t.Errorf("StringBytes encoding = %v, want UTF16BE", enc16)
	}
}
