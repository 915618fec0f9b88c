// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package endnote decodes Endnote XML exports into raw records. A raw record
// keeps every field as text and distinguishes a missing element from an
// empty one; interpreting the fields is left to the normalize package.
package endnote

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrNoRecords is returned when the document has no <records> element.
var ErrNoRecords = errors.New("document has no records element")

// Field names of a raw record, named after the Endnote elements they come from.
const (
	FieldTitle    = "title"
	FieldJournal  = "secondary-title"
	FieldType     = "custom3"
	FieldVolume   = "volume"
	FieldNumber   = "number"
	FieldYear     = "year"
	FieldPages    = "pages"
	FieldURL      = "url"
	FieldDOI      = "electronic-resource-num"
	FieldAbstract = "abstract"
)

// Record is one bibliographic entry of the export.
type Record struct {
	// Authors holds the raw "Last, First Middle" strings in citation order.
	Authors []string

	// Fields maps field names to their trimmed text. Absent elements have
	// no key.
	Fields map[string]string

	// Keywords is nil when the record has no keyword text.
	Keywords []string
}

// Field returns the text of a field and whether the element was present.
func (r Record) Field(name string) (string, bool) {
	v, ok := r.Fields[name]
	return v, ok
}

// Text returns the text of a field, or "" when it is absent.
func (r Record) Text(name string) string {
	return r.Fields[name]
}

type document struct {
	Records *struct {
		Record []xmlRecord `xml:"record"`
	} `xml:"records"`
}

type xmlRecord struct {
	Authors        []text `xml:"contributors>authors>author"`
	Title          *text  `xml:"titles>title"`
	SecondaryTitle *text  `xml:"titles>secondary-title"`
	Custom3        *text  `xml:"custom3"`
	Volume         *text  `xml:"volume"`
	Number         *text  `xml:"number"`
	Year           *text  `xml:"dates>year"`
	Pages          *text  `xml:"pages"`
	URLs           []text `xml:"urls>related-urls>url"`
	DOI            *text  `xml:"electronic-resource-num"`
	Abstract       *text  `xml:"abstract"`
	Keywords       []text `xml:"keywords>keyword"`
}

// text collects all character data below an element. Endnote wraps most
// values in <style> elements, which this flattens away.
type text string

func (t *text) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var b strings.Builder
	depth := 0
	for {
		tok, err := d.Token()
		if err != nil {
			return fmt.Errorf("reading <%s>: %w", start.Name.Local, err)
		}
		switch tt := tok.(type) {
		case xml.CharData:
			b.Write(tt)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			if depth == 0 {
				*t = text(strings.TrimSpace(b.String()))
				return nil
			}
			depth--
		}
	}
}

// Parse decodes an Endnote XML export.
func Parse(r io.Reader) ([]Record, error) {
	var doc document
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding endnote XML: %w", err)
	}
	if doc.Records == nil {
		return nil, ErrNoRecords
	}

	records := make([]Record, 0, len(doc.Records.Record))
	for _, x := range doc.Records.Record {
		records = append(records, x.toRecord())
	}
	return records, nil
}

// ParseFile opens and decodes the export at path.
func ParseFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening bibliography: %w", err)
	}
	defer f.Close()

	records, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

func (x xmlRecord) toRecord() Record {
	r := Record{Fields: make(map[string]string)}

	for _, a := range x.Authors {
		if a != "" {
			r.Authors = append(r.Authors, string(a))
		}
	}

	set := func(name string, v *text) {
		if v != nil {
			r.Fields[name] = string(*v)
		}
	}
	set(FieldTitle, x.Title)
	set(FieldJournal, x.SecondaryTitle)
	set(FieldType, x.Custom3)
	set(FieldVolume, x.Volume)
	set(FieldNumber, x.Number)
	set(FieldYear, x.Year)
	set(FieldPages, x.Pages)
	set(FieldDOI, x.DOI)
	set(FieldAbstract, x.Abstract)
	if len(x.URLs) > 0 {
		r.Fields[FieldURL] = string(x.URLs[0])
	}

	r.Keywords = splitKeywords(x.Keywords)
	return r
}

// splitKeywords flattens keyword elements, each of which may hold a
// semicolon-separated list.
func splitKeywords(elems []text) []string {
	var kwds []string
	for _, e := range elems {
		for _, k := range strings.Split(string(e), ";") {
			if k = strings.TrimSpace(k); k != "" {
				kwds = append(kwds, k)
			}
		}
	}
	return kwds
}
