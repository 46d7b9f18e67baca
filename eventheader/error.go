// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eventheader

import "fmt"

// ErrorKind classifies a decoding failure. It deliberately does not map to
// any particular exception hierarchy; it exists so callers can distinguish
// "try a different interpretation" (NotSupported) from "this event's bytes
// are broken" (ParseFailure) from programmer error (InvalidOperation,
// OutOfRange).
type ErrorKind int

const (
	// NotSupported indicates an unknown encoding or format byte, or that
	// the enumerator's move budget was exhausted.
	NotSupported ErrorKind = iota
	// InvalidOperation indicates API misuse, such as formatting a
	// struct item as a scalar, or calling MoveNext from a terminal
	// state.
	InvalidOperation
	// OutOfRange indicates a caller-supplied buffer smaller than the
	// documented maximum for a formatter.
	OutOfRange
	// ParseFailure indicates truncated metadata, a misaligned
	// length-prefixed string, a missing NUL terminator, a bad struct
	// field count, or stack depth overflow.
	ParseFailure
)

func (k ErrorKind) String() string {
	switch k {
	case NotSupported:
		return "NotSupported"
	case InvalidOperation:
		return "InvalidOperation"
	case OutOfRange:
		return "OutOfRange"
	case ParseFailure:
		return "ParseFailure"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is the error type produced by the enumerator.
type Error struct {
	Kind ErrorKind
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func newError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
