// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package perfconvert

import (
	"testing"
	"time"

	"github.com/aclements/go-eventheader/byteorder"
)

func TestAppendHexBytes(t *testing.T) {
	got := string(AppendHexBytes(nil, []byte{0x00, 0xab, 0xff}))
	if want := "00 AB FF"; got != want {
		t.Errorf("AppendHexBytes = %q, want %q", got, want)
	}
	if got := string(AppendHexBytes(nil, nil)); got != "" {
		t.Errorf("AppendHexBytes(nil) = %q, want empty", got)
	}
}

func TestAppendBool(t *testing.T) {
	cases := []struct {
		v    int64
		want string
	}{
		{0, "false"},
		{1, "true"},
		{2, "BOOL(2)"},
		{-1, "BOOL(-1)"},
	}
	for _, c := range cases {
		if got := string(AppendBool(nil, c.v)); got != c.want {
			t.Errorf("AppendBool(%d) = %q, want %q", c.v, got, c.want)
		}
	}
}

func TestAppendBoolJSON(t *testing.T) {
	if got := string(AppendBoolJSON(nil, 2, Default)); got != `"BOOL(2)"` {
		t.Errorf("AppendBoolJSON(2, Default) = %q, want %q", got, `"BOOL(2)"`)
	}
	if got := string(AppendBoolJSON(nil, 2, 0)); got != "2" {
		t.Errorf("AppendBoolJSON(2, 0) = %q, want %q", got, "2")
	}
}

func TestErrnoGap(t *testing.T) {
	if _, ok := ErrnoName(41); ok {
		t.Errorf("ErrnoName(41) should be unknown (reserved gap)")
	}
	if _, ok := ErrnoName(58); ok {
		t.Errorf("ErrnoName(58) should be unknown (reserved gap)")
	}
	if name, ok := ErrnoName(133); !ok || name != "EHWPOISON" {
		t.Errorf("ErrnoName(133) = %q, %v, want EHWPOISON, true", name, ok)
	}
}

func TestAppendErrno(t *testing.T) {
	if got := string(AppendErrno(nil, 1)); got != "EPERM(1)" {
		t.Errorf("AppendErrno(1) = %q, want EPERM(1)", got)
	}
	if got := string(AppendErrno(nil, 41)); got != "ERRNO(41)" {
		t.Errorf("AppendErrno(41) = %q, want ERRNO(41)", got)
	}
}

func TestDetectBOM(t *testing.T) {
	cases := []struct {
		name string
		b    []byte
		want TextEncoding
		n    int
		ok   bool
	}{
		{"utf8", []byte{0xEF, 0xBB, 0xBF, 'x'}, UTF8, 3, true},
		{"utf16le", []byte{0xFF, 0xFE, 'x', 0}, UTF16LE, 2, true},
		{"utf16be", []byte{0xFE, 0xFF, 0, 'x'}, UTF16BE, 2, true},
		{"utf32le", []byte{0xFF, 0xFE, 0, 0, 'x', 0, 0, 0}, UTF32LE, 4, true},
		{"utf32be", []byte{0, 0, 0xFE, 0xFF, 0, 0, 0, 'x'}, UTF32BE, 4, true},
		{"none", []byte{'h', 'i'}, 0, 0, false},
	}
	for _, c := range cases {
		enc, n, ok := DetectBOM(c.b)
		if ok != c.ok || (ok && (enc != c.want || n != c.n)) {
			t.Errorf("%s: DetectBOM = %v, %d, %v; want %v, %d, %v", c.name, enc, n, ok, c.want, c.n, c.ok)
		}
	}
}

func TestAppendUnixTime64(t *testing.T) {
	raw := int64(1<<62 - 1)
	got := string(AppendUnixTime64(nil, raw, time.Time{}, false))
	want := "TIME(4611686018427387903)"
	if got != want {
		t.Errorf("AppendUnixTime64 out-of-range = %q, want %q", got, want)
	}

	raw = 0
	got = string(AppendUnixTime64(nil, raw, time.Unix(0, 0).UTC(), true))
	if got != "1970-01-01T00:00:00Z" {
		t.Errorf("AppendUnixTime64 epoch = %q, want 1970-01-01T00:00:00Z", got)
	}
}

// TestAppendUnixTime64JSONOutOfRange covers the out-of-range 64-bit UNIX
// time scenario: a value far outside the representable range must render
// as a quoted "TIME(n)" string when TimeOutOfRangeAsString is set, and as
// the bare integer when it is clear.
func TestAppendUnixTime64JSONOutOfRange(t *testing.T) {
	raw := int64(1 << 62)
	got := string(AppendUnixTime64JSON(nil, raw, time.Time{}, false, Default))
	want := `"TIME(4611686018427387904)"`
	if got != want {
		t.Errorf("AppendUnixTime64JSON(out-of-range, Default) = %q, want %q", got, want)
	}

	got = string(AppendUnixTime64JSON(nil, raw, time.Time{}, false, 0))
	if got != "4611686018427387904" {
		t.Errorf("AppendUnixTime64JSON(out-of-range, 0) = %q, want bare integer", got)
	}

	// An in-range value (the epoch) goes to ISO-8601 instead of TIME(n).
	inRange := time.Unix(0, 0).UTC()
	got = string(AppendUnixTime64JSON(nil, 0, inRange, true, Default))
	if got != `"1970-01-01T00:00:00Z"` {
		t.Errorf("AppendUnixTime64JSON(epoch, Default) = %q", got)
	}
}

func TestAppendJSONString(t *testing.T) {
	got := string(AppendJSONString(nil, "a\"b\\c\nd", JSONEscapeControlChars))
	if want := `"a\"b\\c\nd"`; got != want {
		t.Errorf("AppendJSONString = %q, want %q", got, want)
	}
	got = string(AppendJSONString(nil, "a\x01b", JSONSpaceControlChars))
	if want := `"a b"`; got != want {
		t.Errorf("AppendJSONString(space) = %q, want %q", got, want)
	}
}

func TestAppendGUID(t *testing.T) {
	g := byteorder.GUID{
		Data1: 0x01020304,
		Data2: 0x0506,
		Data3: 0x0708,
		Data4: [8]byte{0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10},
	}
	got := string(AppendGUID(nil, g))
	want := "01020304-0506-0708-090a-0b0c0d0e0f10"
	if got != want {
		t.Errorf("AppendGUID = %q, want %q", got, want)
	}
}
