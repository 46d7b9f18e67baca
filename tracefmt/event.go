// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tracefmt

import (
	"fmt"
	"strconv"
	"strings"
)

// DecodingStyle distinguishes a classic tracefs event from one that
// layers the EventHeader self-describing metadata convention on top.
type DecodingStyle uint8

const (
	ClassicTraceEvent DecodingStyle = iota
	EventHeader
)

func (s DecodingStyle) String() string {
	if s == EventHeader {
		return "EventHeader"
	}
	return "ClassicTraceEvent"
}

// eventHeaderSentinelField is the user field name that marks an event as
// using the EventHeader convention: spec §3, "decoding_style is
// EventHeader iff the first user field is named eventheader_flags".
const eventHeaderSentinelField = "eventheader_flags"

// EventDescriptor is the result of parsing a whole tracefs "format" file.
type EventDescriptor struct {
	// SystemName is not present in the format file itself (it comes
	// from the enclosing events/<system>/<name>/format path); callers
	// that know it may set it on the returned descriptor.
	SystemName string

	Name     string
	PrintFmt string
	Fields   []FieldDescriptor

	ID               int
	CommonFieldCount int
	CommonFieldsSize int

	DecodingStyle DecodingStyle
}

// ParseEventFormat parses a whole tracefs "format" file: a handful of
// top-level "key: value" lines (name, ID, print fmt) plus one "format:"
// key whose value spans the following lines up to a second blank line
// (or EOF), itself split into a common-fields block and a user-fields
// block by exactly one blank line.
func ParseEventFormat(text string) (EventDescriptor, error) {
	var ed EventDescriptor
	lines := strings.Split(text, "\n")

	inFormatBlock := false
	blanksInBlock := 0
	sawUserBlockStart := false

	for _, raw := range lines {
		if inFormatBlock {
			trimmed := strings.TrimSpace(raw)
			if trimmed == "" {
				blanksInBlock++
				if blanksInBlock >= 2 {
					inFormatBlock = false
				} else {
					sawUserBlockStart = true
				}
				continue
			}
			if looksLikeTopLevelKey(trimmed) {
				inFormatBlock = false
				// fall through to top-level handling below
			} else {
				fd, ok := ParseFormatLine(trimmed)
				if ok {
					ed.Fields = append(ed.Fields, fd)
					if !sawUserBlockStart {
						ed.CommonFieldCount++
						ed.CommonFieldsSize = int(fd.Offset) + int(fd.Size)
					}
				}
				continue
			}
		}

		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		colon := strings.IndexByte(trimmed, ':')
		if colon == -1 {
			continue
		}
		key := strings.TrimSpace(trimmed[:colon])
		value := strings.TrimSpace(trimmed[colon+1:])
		switch key {
		case "name":
			ed.Name = value
		case "ID":
			n, err := strconv.Atoi(value)
			if err == nil {
				ed.ID = n
			}
		case "print fmt":
			ed.PrintFmt = value
		case "format":
			inFormatBlock = true
			blanksInBlock = 0
			sawUserBlockStart = false
		}
	}

	if ed.Name == "" && len(ed.Fields) == 0 {
		return ed, fmt.Errorf("tracefmt: no recognizable content in format text")
	}

	if n := ed.CommonFieldCount; n < len(ed.Fields) && ed.Fields[n].Name == eventHeaderSentinelField {
		ed.DecodingStyle = EventHeader
	}

	return ed, nil
}

// looksLikeTopLevelKey reports whether a trimmed line inside what was
// thought to be the format block is actually the next top-level key (in
// practice, only "print fmt:" appears directly after a format block with
// no separating blank line in some kernels).
func looksLikeTopLevelKey(trimmed string) bool {
	return strings.HasPrefix(trimmed, "print fmt:")
}
