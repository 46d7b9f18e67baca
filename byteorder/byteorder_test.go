// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package byteorder

import "testing"

func TestU16(t *testing.T) {
	b := []byte{0x01, 0x02}
	if got := LittleEndian.U16(b); got != 0x0201 {
		t.Errorf("LittleEndian.U16 = %#x, want 0x0201", got)
	}
	if got := BigEndian.U16(b); got != 0x0102 {
		t.Errorf("BigEndian.U16 = %#x, want 0x0102", got)
	}
}

func TestU32(t *testing.T) {
	b := []byte{0x00, 0x01, 0x02, 0x03}
	if got := LittleEndian.U32(b); got != 0x03020100 {
		t.Errorf("LittleEndian.U32 = %#x, want 0x03020100", got)
	}
	if got := BigEndian.U32(b); got != 0x00010203 {
		t.Errorf("BigEndian.U32 = %#x, want 0x00010203", got)
	}
}

func TestI16I32I64(t *testing.T) {
	b := []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
	if got := LittleEndian.I16(b); got != -1 {
		t.Errorf("I16 = %d, want -1", got)
	}
	if got := LittleEndian.I32(b); got != -1 {
		t.Errorf("I32 = %d, want -1", got)
	}
	if got := LittleEndian.I64(b); got != -1 {
		t.Errorf("I64 = %d, want -1", got)
	}
}

func TestF32F64(t *testing.T) {
	// 1.5f in little-endian IEEE 754 single precision.
	b32 := []byte{0x00, 0x00, 0xc0, 0x3f}
	if got := LittleEndian.F32(b32); got != 1.5 {
		t.Errorf("F32 = %v, want 1.5", got)
	}
	// 1.5 in little-endian IEEE 754 double precision.
	b64 := []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xf8, 0x3f}
	if got := LittleEndian.F64(b64); got != 1.5 {
		t.Errorf("F64 = %v, want 1.5", got)
	}
}

func TestGUIDMixedEndian(t *testing.T) {
	b := []byte{
		0x00, 0x01, 0x02, 0x03, // Data1, big-endian
		0x04, 0x05, // Data2, big-endian
		0x06, 0x07, // Data3, big-endian
		0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, // Data4, raw bytes
	}
	for _, o := range []Order{LittleEndian, BigEndian} {
		g := o.GUIDMixedEndian(b)
		if g.Data1 != 0x00010203 || g.Data2 != 0x0405 || g.Data3 != 0x0607 {
			t.Errorf("GUIDMixedEndian(%v) = %+v, want Data1=0x10203 Data2=0x405 Data3=0x607", o, g)
		}
		want := [8]byte{0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f}
		if g.Data4 != want {
			t.Errorf("GUIDMixedEndian(%v).Data4 = %v, want %v", o, g.Data4, want)
		}
	}
}
