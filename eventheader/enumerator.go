// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eventheader

import (
	"bytes"

	"github.com/aclements/go-eventheader/byteorder"
)

// State is the enumerator's current position in an event's traversal.
// Ordinal order matters: MoveNext requires State >= BeforeFirstItem, and
// GetItem requires State > BeforeFirstItem.
type State uint8

const (
	None State = iota
	Error
	BeforeFirstItem
	Value
	ArrayBegin
	ArrayEnd
	StructBegin
	StructEnd
	AfterLastItem
)

func (s State) String() string {
	switch s {
	case None:
		return "None"
	case Error:
		return "Error"
	case BeforeFirstItem:
		return "BeforeFirstItem"
	case Value:
		return "Value"
	case ArrayBegin:
		return "ArrayBegin"
	case ArrayEnd:
		return "ArrayEnd"
	case StructBegin:
		return "StructBegin"
	case StructEnd:
		return "StructEnd"
	case AfterLastItem:
		return "AfterLastItem"
	default:
		return "State(?)"
	}
}

// DefaultMoveBudget is the default number of MoveNext calls an enumerator
// will perform on one event before forcing NotSupported.
const DefaultMoveBudget = 4096

// DefaultMaxDepth is the default maximum struct/array nesting depth.
const DefaultMaxDepth = 8

type frameKind uint8

const (
	frameStruct frameKind = iota
	frameArraySimple
	frameArrayComposite
)

// frame is one entry of the enumerator's explicit nesting stack, replacing
// the recursion a metadata-driven struct/array walk would otherwise need.
type frame struct {
	kind frameKind
	name string

	// remaining is: for frameStruct, the direct child fields not yet
	// produced; for frameArraySimple/frameArrayComposite, the array
	// elements not yet produced.
	remaining int

	// frameArraySimple only: the whole array's bytes (sliced once at
	// ArrayBegin) and one element's size, used to slice each Value.
	arrayBytes []byte
	elemSize   int
	elemEnc    Encoding
	elemFormat Format

	// frameArrayComposite only: whether each element is itself a
	// struct (push a frameStruct per element) or a bare variable-length
	// value (emit one Value per element, no nested frame).
	elemIsStruct    bool
	elemStructCount int
	elemVarEnc      Encoding
}

// Enumerator walks the EventHeader self-describing metadata stream
// alongside an event's raw payload, producing the depth-first Value/
// ArrayBegin/ArrayEnd/StructBegin/StructEnd sequence described in spec
// §4.6. It allocates nothing per event beyond its fixed-depth frame stack.
type Enumerator struct {
	MoveBudget int
	MaxDepth   int

	meta    []byte
	payload []byte
	pos     int
	order   byteorder.Order

	state     State
	lastItem  Item
	lastErr   *Error
	budgetRem int
	stack     []frame
}

// NewEnumerator returns an Enumerator with the default move budget and
// depth limit. Override MoveBudget/MaxDepth before calling StartEvent to
// change them.
func NewEnumerator() *Enumerator {
	return &Enumerator{MoveBudget: DefaultMoveBudget, MaxDepth: DefaultMaxDepth}
}

// StartEvent resets the enumerator onto a new event's metadata and
// payload. It returns false (leaving the enumerator in state None) only
// when meta and payload are both nil, since there is then nothing to
// enumerate; any other input, however malformed, proceeds to
// BeforeFirstItem and lets MoveNext discover the problem.
func (e *Enumerator) StartEvent(meta, payload []byte, order byteorder.Order) bool {
	if meta == nil && payload == nil {
		e.state = None
		return false
	}
	if e.MoveBudget <= 0 {
		e.MoveBudget = DefaultMoveBudget
	}
	if e.MaxDepth <= 0 {
		e.MaxDepth = DefaultMaxDepth
	}
	e.meta = meta
	e.payload = payload
	e.pos = 0
	e.order = order
	e.state = BeforeFirstItem
	e.lastItem = Item{}
	e.lastErr = nil
	e.budgetRem = e.MoveBudget
	e.stack = e.stack[:0]
	return true
}

// State returns the enumerator's current state.
func (e *Enumerator) State() State { return e.state }

// LastError returns the error that drove the enumerator into Error, or
// nil if it is not in that state.
func (e *Enumerator) LastError() *Error { return e.lastErr }

// GetItem returns the item produced by the most recent MoveNext/
// MoveNextSibling. ok is false in any state <= BeforeFirstItem.
func (e *Enumerator) GetItem() (Item, bool) {
	if e.state <= BeforeFirstItem {
		return Item{}, false
	}
	return e.lastItem, true
}

func (e *Enumerator) fail(kind ErrorKind, format string, args ...interface{}) bool {
	e.state = Error
	e.lastErr = newError(kind, format, args...)
	return false
}

// MoveNext advances to the next item in depth-first order. It returns
// false when the event is exhausted (state becomes AfterLastItem) or
// when a parse failure or budget/depth exhaustion transitions the
// enumerator to Error.
func (e *Enumerator) MoveNext() bool {
	if e.state < BeforeFirstItem {
		return false
	}
	if e.state == AfterLastItem {
		return false
	}
	if e.budgetRem <= 0 {
		return e.fail(NotSupported, "move budget exhausted")
	}
	e.budgetRem--

	if len(e.stack) == 0 {
		return e.moveTopLevel()
	}
	return e.moveWithinFrame()
}

// moveTopLevel consumes the next top-level field record directly from
// the metadata stream.
func (e *Enumerator) moveTopLevel() bool {
	if len(e.meta) == 0 {
		e.state = AfterLastItem
		e.lastItem = Item{}
		return false
	}
	return e.readField()
}

// moveWithinFrame advances the frame at the top of the stack: one more
// struct child, one more array element, or (if the frame is exhausted)
// the matching End item.
func (e *Enumerator) moveWithinFrame() bool {
	top := &e.stack[len(e.stack)-1]

	switch top.kind {
	case frameStruct:
		if top.remaining == 0 {
			e.state = StructEnd
			e.lastItem = NewItem(nil, Metadata{Name: top.name, Encoding: Struct, Order: e.order, Kind: KindStructEnd})
			e.stack = e.stack[:len(e.stack)-1]
			return true
		}
		top.remaining--
		return e.readField()

	case frameArraySimple:
		if top.remaining == 0 {
			e.state = ArrayEnd
			e.lastItem = NewItem(nil, Metadata{Name: top.name, Encoding: top.elemEnc | CArrayFlag, Format: top.elemFormat, Order: e.order, Kind: KindArrayEnd})
			e.stack = e.stack[:len(e.stack)-1]
			return true
		}
		idx := len(top.arrayBytes)/top.elemSize - top.remaining
		top.remaining--
		elem := top.arrayBytes[idx*top.elemSize : idx*top.elemSize+top.elemSize]
		e.state = Value
		e.lastItem = NewItem(elem, Metadata{
			Name: top.name, ElementCount: 1, TypeSize: top.elemSize,
			Encoding: top.elemEnc, Format: top.elemFormat, Order: e.order, Kind: KindValue,
		})
		return true

	case frameArrayComposite:
		if top.remaining == 0 {
			e.state = ArrayEnd
			enc := Struct
			if !top.elemIsStruct {
				enc = top.elemVarEnc
			}
			e.lastItem = NewItem(nil, Metadata{Name: top.name, Encoding: enc | CArrayFlag, Order: e.order, Kind: KindArrayEnd})
			e.stack = e.stack[:len(e.stack)-1]
			return true
		}
		top.remaining--
		if top.elemIsStruct {
			if len(e.stack) >= e.MaxDepth {
				return e.fail(ParseFailure, "struct/array nesting exceeds depth limit %d", e.MaxDepth)
			}
			e.stack = append(e.stack, frame{kind: frameStruct, name: top.name, remaining: top.elemStructCount})
			e.state = StructBegin
			e.lastItem = NewItem(nil, Metadata{Name: top.name, Encoding: Struct, Format: Format(top.elemStructCount), Order: e.order, Kind: KindStructBegin})
			return true
		}
		return e.readVariableValue(top.name, top.elemVarEnc)
	}
	return e.fail(InvalidOperation, "corrupt frame stack")
}

// readField reads one field record (name, encoding, optional format byte
// and tag, optional CArray length) from the front of e.meta and produces
// the corresponding item/frame-push.
func (e *Enumerator) readField() bool {
	name, rest, ok := splitCString(e.meta)
	if !ok {
		return e.fail(ParseFailure, "metadata truncated reading field name")
	}
	if len(rest) == 0 {
		return e.fail(ParseFailure, "metadata truncated reading encoding byte")
	}
	encByte := Encoding(rest[0])
	rest = rest[1:]

	var format Format
	var fieldTag uint16
	if encByte&ChainFlag != 0 {
		if len(rest) == 0 {
			return e.fail(ParseFailure, "metadata truncated reading format byte")
		}
		format = Format(rest[0])
		rest = rest[1:]
		if format&FormatChainFlag != 0 {
			if len(rest) < 2 {
				return e.fail(ParseFailure, "metadata truncated reading field tag")
			}
			fieldTag = e.order.U16(rest[:2])
			rest = rest[2:]
		}
	}

	base := encByte.Base()
	isArray := encByte&CArrayFlag != 0

	var arrayLen int
	if isArray {
		if len(rest) < 2 {
			return e.fail(ParseFailure, "metadata truncated reading array length")
		}
		arrayLen = int(e.order.U16(rest[:2]))
		rest = rest[2:]
	}
	e.meta = rest

	if !isArray && base == Struct {
		fieldCount := int(format.Base())
		if fieldCount == 0 {
			return e.fail(ParseFailure, "struct field count is zero")
		}
		if len(e.stack) >= e.MaxDepth {
			return e.fail(ParseFailure, "struct/array nesting exceeds depth limit %d", e.MaxDepth)
		}
		e.stack = append(e.stack, frame{kind: frameStruct, name: name, remaining: fieldCount})
		e.state = StructBegin
		e.lastItem = NewItem(nil, Metadata{Name: name, Encoding: Struct, Format: format, Order: e.order, Kind: KindStructBegin, FieldTag: fieldTag})
		return true
	}

	if isArray {
		if len(e.stack) >= e.MaxDepth {
			return e.fail(ParseFailure, "struct/array nesting exceeds depth limit %d", e.MaxDepth)
		}
		if base == Struct {
			fieldCount := int(format.Base())
			if fieldCount == 0 {
				return e.fail(ParseFailure, "struct field count is zero")
			}
			e.stack = append(e.stack, frame{kind: frameArrayComposite, name: name, remaining: arrayLen, elemIsStruct: true, elemStructCount: fieldCount})
			e.state = ArrayBegin
			e.lastItem = NewItem(nil, Metadata{Name: name, ElementCount: arrayLen, Encoding: base | CArrayFlag, Format: format, Order: e.order, Kind: KindArrayBegin, FieldTag: fieldTag})
			return true
		}
		if isVariableEncoding(base) {
			f := frame{kind: frameArrayComposite, name: name, remaining: arrayLen, elemIsStruct: false, elemVarEnc: base}
			e.stack = append(e.stack, f)
			e.state = ArrayBegin
			e.lastItem = NewItem(nil, Metadata{Name: name, ElementCount: arrayLen, Encoding: base | CArrayFlag, Format: format, Order: e.order, Kind: KindArrayBegin, FieldTag: fieldTag})
			return true
		}

		elemSize := base.TypeSize()
		if elemSize == 0 {
			return e.fail(NotSupported, "unrecognized fixed-width encoding %v", base)
		}
		total := arrayLen * elemSize
		if e.pos+total > len(e.payload) {
			return e.fail(ParseFailure, "array payload truncated")
		}
		whole := e.payload[e.pos : e.pos+total]
		e.pos += total
		e.stack = append(e.stack, frame{
			kind: frameArraySimple, name: name, remaining: arrayLen,
			arrayBytes: whole, elemSize: elemSize, elemEnc: base, elemFormat: format,
		})
		e.state = ArrayBegin
		e.lastItem = NewItem(whole, Metadata{Name: name, ElementCount: arrayLen, TypeSize: elemSize, Encoding: base | CArrayFlag, Format: format, Order: e.order, Kind: KindArrayBegin, FieldTag: fieldTag})
		return true
	}

	// Plain scalar, possibly variable-length.
	if isVariableEncoding(base) {
		if !e.readVariableValueWithFormat(name, base, format) {
			return false
		}
		e.lastItem.Meta.FieldTag = fieldTag
		return true
	}
	size := base.TypeSize()
	if size == 0 {
		return e.fail(NotSupported, "unrecognized encoding %v", base)
	}
	if e.pos+size > len(e.payload) {
		return e.fail(ParseFailure, "value payload truncated")
	}
	raw := e.payload[e.pos : e.pos+size]
	e.pos += size
	e.state = Value
	e.lastItem = NewItem(raw, Metadata{Name: name, ElementCount: 1, TypeSize: size, Encoding: base, Format: format, Order: e.order, Kind: KindValue, FieldTag: fieldTag})
	return true
}

// readVariableValue reads one array-element variable-length value (no
// format byte of its own: it shares the array's Chain-derived format,
// already discarded — array elements of string type render with their
// base encoding's default format).
func (e *Enumerator) readVariableValue(name string, enc Encoding) bool {
	return e.readVariableValueWithFormat(name, enc, 0)
}

func (e *Enumerator) readVariableValueWithFormat(name string, base Encoding, format Format) bool {
	switch base {
	case ZStringChar8:
		return e.readZString(name, base, format, 1)
	case ZStringChar16:
		return e.readZString(name, base, format, 2)
	case ZStringChar32:
		return e.readZString(name, base, format, 4)
	case StringLength16Char8:
		return e.readLengthPrefixed(name, base, format, 1)
	case StringLength16Char16:
		return e.readLengthPrefixed(name, base, format, 2)
	case StringLength16Char32:
		return e.readLengthPrefixed(name, base, format, 4)
	}
	return e.fail(NotSupported, "unrecognized variable-length encoding %v", base)
}

func (e *Enumerator) readZString(name string, enc Encoding, format Format, width int) bool {
	rem := e.payload[e.pos:]
	n := findNul(rem, width)
	if n == -1 {
		return e.fail(ParseFailure, "missing NUL terminator for %s", name)
	}
	raw := rem[:n]
	e.pos += n + width
	e.state = Value
	e.lastItem = NewItem(raw, Metadata{Name: name, ElementCount: n / width, Encoding: enc, Format: format, Order: e.order, Kind: KindValue})
	return true
}

func (e *Enumerator) readLengthPrefixed(name string, enc Encoding, format Format, width int) bool {
	if e.pos+2 > len(e.payload) {
		return e.fail(ParseFailure, "truncated length prefix for %s", name)
	}
	length := int(e.order.U16(e.payload[e.pos : e.pos+2]))
	e.pos += 2
	byteLen := length * width
	if e.pos+byteLen > len(e.payload) {
		return e.fail(ParseFailure, "length-prefixed value %s overruns payload", name)
	}
	raw := e.payload[e.pos : e.pos+byteLen]
	e.pos += byteLen
	e.state = Value
	e.lastItem = NewItem(raw, Metadata{Name: name, ElementCount: length, Encoding: enc, Format: format, Order: e.order, Kind: KindValue})
	return true
}

func isVariableEncoding(base Encoding) bool {
	switch base {
	case ZStringChar8, ZStringChar16, ZStringChar32,
		StringLength16Char8, StringLength16Char16, StringLength16Char32:
		return true
	}
	return false
}

func findNul(b []byte, width int) int {
	if width == 1 {
		return bytes.IndexByte(b, 0)
	}
	for i := 0; i+width <= len(b); i += width {
		allZero := true
		for j := 0; j < width; j++ {
			if b[i+j] != 0 {
				allZero = false
				break
			}
		}
		if allZero {
			return i
		}
	}
	return -1
}

// splitCString splits b at its first NUL byte, returning the text before
// it (as a string) and the remainder after it. ok is false if b has no
// NUL.
func splitCString(b []byte) (s string, rest []byte, ok bool) {
	i := bytes.IndexByte(b, 0)
	if i == -1 {
		return "", nil, false
	}
	return string(b[:i]), b[i+1:], true
}

// MoveNextSibling advances past the current array-begin or struct-begin's
// children without emitting their items, landing on the item that would
// follow the matching End. Called when the current item is anything
// other than an ArrayBegin/StructBegin, it behaves like MoveNext.
func (e *Enumerator) MoveNextSibling() bool {
	if e.state != ArrayBegin && e.state != StructBegin {
		return e.MoveNext()
	}
	depth := len(e.stack)
	if depth == 0 {
		return e.MoveNext()
	}
	for len(e.stack) >= depth {
		if !e.MoveNext() {
			return false
		}
	}
	// e.stack is now one shorter than depth: the matching End has just
	// popped its frame. Land one past it, per spec.
	return e.MoveNext()
}
