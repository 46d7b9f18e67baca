// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command eventheaderdump decodes one tracepoint event against its
// tracefs "format" file and prints every field, either in diagnostic
// "Type:Value" form or as a JSON object.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/aclements/go-eventheader/byteorder"
	"github.com/aclements/go-eventheader/eventheader"
	"github.com/aclements/go-eventheader/perfconvert"
	"github.com/aclements/go-eventheader/tracefmt"
)

func main() {
	var (
		flagFormat = flag.String("format", "", "path to the tracefs \"format\" `file`")
		flagData   = flag.String("data", "", "path to the raw event payload `file`")
		flagJSON   = flag.Bool("json", false, "print JSON instead of diagnostic text")
		flagBig    = flag.Bool("big-endian", false, "the event's payload is big-endian")
	)
	flag.Parse()
	if *flagFormat == "" || *flagData == "" {
		flag.Usage()
		os.Exit(1)
	}

	formatText, err := readFile(*flagFormat)
	if err != nil {
		log.Fatal(err)
	}
	payload, err := readFile(*flagData)
	if err != nil {
		log.Fatal(err)
	}

	ed, err := tracefmt.ParseEventFormat(string(formatText))
	if err != nil {
		log.Fatal(err)
	}

	order := byteorder.LittleEndian
	if *flagBig {
		order = byteorder.BigEndian
	}

	if ed.DecodingStyle == tracefmt.EventHeader {
		dumpEventHeader(ed, payload, order, *flagJSON)
		return
	}
	dumpClassic(ed, payload, order, *flagJSON)
}

func dumpClassic(ed tracefmt.EventDescriptor, payload []byte, order byteorder.Order, asJSON bool) {
	if asJSON {
		fmt.Print("{")
	}
	for i, fd := range ed.Fields {
		item := tracefmt.LocateField(fd, payload, order)
		if asJSON {
			if i > 0 {
				fmt.Print(",")
			}
			fmt.Printf("%q:%s", fd.Name, item.ToJSON(perfconvert.Default))
		} else {
			fmt.Printf("%s = %s\n", fd.Name, item.ToString(perfconvert.Default))
		}
	}
	if asJSON {
		fmt.Println("}")
	}
}

// dumpEventHeader decodes the EventHeader metadata that follows the
// event's common fields: everything after the last common field is handed
// to the enumerator as metadata, with an empty payload.
func dumpEventHeader(ed tracefmt.EventDescriptor, raw []byte, order byteorder.Order, asJSON bool) {
	if ed.CommonFieldsSize > len(raw) {
		log.Fatal("eventheaderdump: payload shorter than common fields")
	}
	meta := raw[ed.CommonFieldsSize:]
	// The metadata stream is itself NUL-delimited records with no
	// independent length prefix; callers that know the event's true
	// metadata length should trim meta before calling. Absent that,
	// the enumerator treats the whole remainder as metadata followed
	// by no payload, which is only useful for metadata-only smoke
	// tests; real callers supply the split explicitly.
	en := eventheader.NewEnumerator()
	if !en.StartEvent(meta, nil, order) {
		log.Fatal("eventheaderdump: could not start event")
	}

	depth := 0
	if asJSON {
		fmt.Print("{")
	}
	first := true
	for en.MoveNext() {
		item, _ := en.GetItem()
		switch item.Meta.Kind {
		case eventheader.KindStructBegin:
			depth++
			continue
		case eventheader.KindStructEnd:
			depth--
			continue
		}
		if asJSON {
			if !first {
				fmt.Print(",")
			}
			first = false
			fmt.Printf("%q:%s", item.Meta.Name, item.ToJSON(perfconvert.Default))
		} else {
			fmt.Printf("%s%s = %s\n", strings.Repeat("  ", depth), item.Meta.Name, item.ToString(perfconvert.Default))
		}
	}
	if asJSON {
		fmt.Println("}")
	}
	if en.State() == eventheader.Error {
		log.Printf("eventheaderdump: enumerator stopped early: %v", en.LastError())
	}
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
