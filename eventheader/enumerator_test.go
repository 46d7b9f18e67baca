// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eventheader

import (
	"testing"

	"github.com/aclements/go-eventheader/byteorder"
)

func cstr(s string) []byte { return append([]byte(s), 0) }

func u16le(v uint16) []byte { return []byte{byte(v), byte(v >> 8)} }

func TestEnumeratorFixedArrayOfU32(t *testing.T) {
	var meta []byte
	meta = append(meta, cstr("v")...)
	meta = append(meta, byte(Value32|CArrayFlag|ChainFlag))
	meta = append(meta, byte(UnsignedInt))
	meta = append(meta, u16le(3)...)

	payload := []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0A, 0x0B}

	e := NewEnumerator()
	if !e.StartEvent(meta, payload, byteorder.LittleEndian) {
		t.Fatal("StartEvent failed")
	}

	if !e.MoveNext() || e.State() != ArrayBegin {
		t.Fatalf("state = %v, want ArrayBegin", e.State())
	}
	item, ok := e.GetItem()
	if !ok || item.Meta.Name != "v" || item.Meta.ElementCount != 3 {
		t.Fatalf("ArrayBegin item = %+v, ok=%v", item, ok)
	}

	want := []uint32{0x03020100, 0x07060504, 0x0B0A0908}
	for i, w := range want {
		if !e.MoveNext() || e.State() != Value {
			t.Fatalf("element %d: state = %v, want Value", i, e.State())
		}
		item, _ := e.GetItem()
		if got := item.GetU32(0); got != w {
			t.Errorf("element %d = %#x, want %#x", i, got, w)
		}
	}

	if !e.MoveNext() || e.State() != ArrayEnd {
		t.Fatalf("state = %v, want ArrayEnd", e.State())
	}
	if e.MoveNext() {
		t.Fatal("MoveNext after ArrayEnd should reach AfterLastItem and return false")
	}
	if e.State() != AfterLastItem {
		t.Fatalf("state = %v, want AfterLastItem", e.State())
	}
}

// TestEnumeratorStructWithNestedArray reproduces the worked example of a
// struct "point" with fields x (Value32 UnsignedInt) and y (Value32 array
// of 2, SignedInt).
func TestEnumeratorStructWithNestedArray(t *testing.T) {
	var meta []byte
	meta = append(meta, cstr("point")...)
	meta = append(meta, byte(Struct|ChainFlag))
	meta = append(meta, byte(2)) // two sub-fields

	meta = append(meta, cstr("x")...)
	meta = append(meta, byte(Value32|ChainFlag))
	meta = append(meta, byte(UnsignedInt))

	meta = append(meta, cstr("y")...)
	meta = append(meta, byte(Value32|CArrayFlag|ChainFlag))
	meta = append(meta, byte(SignedInt))
	meta = append(meta, 0, 2) // array length 2, big-endian (event order)

	payload := []byte{
		0, 0, 0, 1, // x = 1
		0, 0, 0, 2, // y[0] = 2
		0, 0, 0, 3, // y[1] = 3
	}

	e := NewEnumerator()
	if !e.StartEvent(meta, payload, byteorder.BigEndian) {
		t.Fatal("StartEvent failed")
	}

	type step struct {
		state State
		name  string
	}
	want := []step{
		{StructBegin, "point"},
		{Value, "x"},
		{ArrayBegin, "y"},
		{Value, "y"},
		{Value, "y"},
		{ArrayEnd, "y"},
		{StructEnd, "point"},
	}
	for i, w := range want {
		if !e.MoveNext() {
			t.Fatalf("step %d: MoveNext failed, err=%v", i, e.LastError())
		}
		if e.State() != w.state {
			t.Fatalf("step %d: state = %v, want %v", i, e.State(), w.state)
		}
		item, ok := e.GetItem()
		if !ok || item.Meta.Name != w.name {
			t.Fatalf("step %d: item = %+v, ok=%v, want name %q", i, item, ok, w.name)
		}
	}

	if e.MoveNext() {
		t.Fatal("MoveNext past end should return false")
	}
	if e.State() != AfterLastItem {
		t.Fatalf("state = %v, want AfterLastItem", e.State())
	}
}

func TestEnumeratorScalarValue(t *testing.T) {
	var meta []byte
	meta = append(meta, cstr("n")...)
	meta = append(meta, byte(Value16|ChainFlag))
	meta = append(meta, byte(SignedInt))

	payload := []byte{0xFE, 0xFF} // -2 little-endian

	e := NewEnumerator()
	e.StartEvent(meta, payload, byteorder.LittleEndian)
	if !e.MoveNext() || e.State() != Value {
		t.Fatalf("state = %v, want Value", e.State())
	}
	item, _ := e.GetItem()
	if got := item.GetI16(0); got != -2 {
		t.Errorf("GetI16(0) = %d, want -2", got)
	}
	if e.MoveNext() {
		t.Fatal("expected AfterLastItem")
	}
}

func TestEnumeratorZStringValue(t *testing.T) {
	var meta []byte
	meta = append(meta, cstr("msg")...)
	meta = append(meta, byte(ZStringChar8|ChainFlag))
	meta = append(meta, byte(String8))

	payload := append([]byte("hi"), 0, 'X')

	e := NewEnumerator()
	e.StartEvent(meta, payload, byteorder.LittleEndian)
	if !e.MoveNext() || e.State() != Value {
		t.Fatalf("state = %v, want Value", e.State())
	}
	item, _ := e.GetItem()
	if string(item.Bytes) != "hi" {
		t.Errorf("Bytes = %q, want %q", item.Bytes, "hi")
	}
}

func TestEnumeratorTruncatedMetadataIsParseFailure(t *testing.T) {
	meta := cstr("x") // name but no encoding byte
	e := NewEnumerator()
	e.StartEvent(meta, nil, byteorder.LittleEndian)
	if e.MoveNext() {
		t.Fatal("expected failure")
	}
	if e.State() != Error {
		t.Fatalf("state = %v, want Error", e.State())
	}
	if e.LastError() == nil || e.LastError().Kind != ParseFailure {
		t.Fatalf("err = %v, want ParseFailure", e.LastError())
	}
	if e.MoveNext() {
		t.Fatal("MoveNext after Error must stay false")
	}
}

func TestEnumeratorBudgetExhaustion(t *testing.T) {
	var meta []byte
	for i := 0; i < 5; i++ {
		meta = append(meta, cstr("a")...)
		meta = append(meta, byte(Value8))
	}
	payload := []byte{1, 2, 3, 4, 5}

	e := NewEnumerator()
	e.MoveBudget = 2
	e.StartEvent(meta, payload, byteorder.LittleEndian)
	if !e.MoveNext() || !e.MoveNext() {
		t.Fatal("first two moves should succeed")
	}
	if e.MoveNext() {
		t.Fatal("third move should exhaust the budget")
	}
	if e.State() != Error || e.LastError().Kind != NotSupported {
		t.Fatalf("state = %v, err = %v", e.State(), e.LastError())
	}
}

// TestEnumeratorMoveNextSibling reproduces the struct+nested-array shape
// and confirms that calling MoveNextSibling on the StructBegin skips every
// child item and lands one past the matching StructEnd, not on it.
func TestEnumeratorMoveNextSibling(t *testing.T) {
	var meta []byte
	meta = append(meta, cstr("point")...)
	meta = append(meta, byte(Struct|ChainFlag))
	meta = append(meta, byte(2))

	meta = append(meta, cstr("x")...)
	meta = append(meta, byte(Value32|ChainFlag))
	meta = append(meta, byte(UnsignedInt))

	meta = append(meta, cstr("y")...)
	meta = append(meta, byte(Value32|CArrayFlag|ChainFlag))
	meta = append(meta, byte(SignedInt))
	meta = append(meta, 0, 2)

	meta = append(meta, cstr("after")...)
	meta = append(meta, byte(Value8|ChainFlag))
	meta = append(meta, byte(UnsignedInt))

	payload := []byte{
		0, 0, 0, 1, // x = 1
		0, 0, 0, 2, // y[0] = 2
		0, 0, 0, 3, // y[1] = 3
		42, // after = 42
	}

	e := NewEnumerator()
	if !e.StartEvent(meta, payload, byteorder.BigEndian) {
		t.Fatal("StartEvent failed")
	}

	if !e.MoveNext() || e.State() != StructBegin {
		t.Fatalf("state = %v, want StructBegin", e.State())
	}
	if !e.MoveNextSibling() {
		t.Fatalf("MoveNextSibling failed, err=%v", e.LastError())
	}
	if e.State() != Value {
		t.Fatalf("state after MoveNextSibling = %v, want Value (landed past StructEnd)", e.State())
	}
	item, ok := e.GetItem()
	if !ok || item.Meta.Name != "after" || item.GetU8(0) != 42 {
		t.Fatalf("item after MoveNextSibling = %+v, ok=%v, want after=42", item, ok)
	}

	if e.MoveNext() {
		t.Fatal("expected AfterLastItem")
	}
}

// TestEnumeratorFieldTag confirms the 16-bit field tag, when present, is
// surfaced on the produced item's Metadata rather than discarded.
func TestEnumeratorFieldTag(t *testing.T) {
	var meta []byte
	meta = append(meta, cstr("n")...)
	meta = append(meta, byte(Value32|ChainFlag))
	meta = append(meta, byte(UnsignedInt|0x80)) // format chain flag: a tag follows
	meta = append(meta, u16le(0x1234)...)

	payload := []byte{7, 0, 0, 0}

	e := NewEnumerator()
	e.StartEvent(meta, payload, byteorder.LittleEndian)
	if !e.MoveNext() || e.State() != Value {
		t.Fatalf("state = %v, want Value", e.State())
	}
	item, _ := e.GetItem()
	if item.Meta.FieldTag != 0x1234 {
		t.Errorf("FieldTag = %#x, want 0x1234", item.Meta.FieldTag)
	}
}

func TestEnumeratorStartEventPreconditionFailure(t *testing.T) {
	e := NewEnumerator()
	if e.StartEvent(nil, nil, byteorder.LittleEndian) {
		t.Fatal("expected StartEvent to fail on nil/nil")
	}
	if e.State() != None {
		t.Fatalf("state = %v, want None", e.State())
	}
}
