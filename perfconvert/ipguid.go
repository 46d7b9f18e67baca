// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package perfconvert

import (
	"net"
	"net/netip"

	"github.com/aclements/go-eventheader/byteorder"
)

// AppendIPv4 appends the dotted-quad rendering of a 4-byte address.
func AppendIPv4(dst []byte, a [4]byte) []byte {
	return append(dst, net.IP(a[:]).String()...)
}

// AppendIPv6 appends the RFC 5952 rendering of a 16-byte address.
func AppendIPv6(dst []byte, a [16]byte) []byte {
	addr := netip.AddrFrom16(a)
	return append(dst, addr.String()...)
}

// AppendGUID appends the canonical 8-4-4-4-12 hyphenated hex rendering of
// a GUID, e.g. "01020304-0506-0708-090a-0b0c0d0e0f10".
func AppendGUID(dst []byte, g byteorder.GUID) []byte {
	appendHex8 := func(dst []byte, v uint32, digits int) []byte {
		start := len(dst)
		dst = append(dst, "00000000"[:digits]...)
		for i := digits - 1; i >= 0; i-- {
			dst[start+i] = hexDigitsLower[v&0xf]
			v >>= 4
		}
		return dst
	}
	dst = appendHex8(dst, g.Data1, 8)
	dst = append(dst, '-')
	dst = appendHex8(dst, uint32(g.Data2), 4)
	dst = append(dst, '-')
	dst = appendHex8(dst, uint32(g.Data3), 4)
	dst = append(dst, '-')
	dst = append(dst, hexDigitsLower[g.Data4[0]>>4], hexDigitsLower[g.Data4[0]&0xf])
	dst = append(dst, hexDigitsLower[g.Data4[1]>>4], hexDigitsLower[g.Data4[1]&0xf])
	dst = append(dst, '-')
	for _, b := range g.Data4[2:] {
		dst = append(dst, hexDigitsLower[b>>4], hexDigitsLower[b&0xf])
	}
	return dst
}

const hexDigitsLower = "0123456789abcdef"

// AppendPort appends the decimal rendering of a 16-bit port number.
func AppendPort(dst []byte, port uint16) []byte {
	return AppendUnsignedDecimal(dst, uint64(port))
}
