// Package marcxml reads MARC records from a MARCXML document one at a time.
//
// The document is never loaded in full: the reader scans forward for the
// next record start and decodes only that record's subtree before handing
// it back.
package marcxml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"golang.org/x/net/html/charset"

	"github.com/thms-rmb/marcXmlToJson/marc"
)

// ErrNoRootElement is the cause of the ParseError returned when the input
// contains no element at all.
var ErrNoRootElement = errors.New("no root element")

// A Decoder reads MARCXML input and produces records in document order.
type Decoder struct {
	xmlDecoder  *xml.Decoder
	recordCount int
	seenRoot    bool
}

var _ marc.Reader = &Decoder{}

// NewDecoder sets up a new Decoder instance to read from the given input.
// Input in an encoding other than UTF-8 is converted according to its XML
// declaration.
func NewDecoder(in io.Reader) *Decoder {
	d := xml.NewDecoder(in)
	d.Strict = true
	d.CharsetReader = charset.NewReaderLabel
	return &Decoder{xmlDecoder: d}
}

// Next returns the next record in the input, or io.EOF if there is none.
// Any other error means the input is not well-formed and no further
// records can be read.
func (d *Decoder) Next() (*marc.Record, error) {
	start, err := d.nextRecordStart()
	if err != nil {
		return nil, err
	}
	d.recordCount++
	var record marc.Record

	// DecodeElement consumes tokens up to and including the matching end
	// element, so the cursor ends up just past this record.
	if err := d.xmlDecoder.DecodeElement(&record, start); err != nil {
		return nil, d.parseError(err)
	}
	return &record, nil
}

func (d *Decoder) nextRecordStart() (*xml.StartElement, error) {
	for {
		tok, err := d.xmlDecoder.Token()
		if err == io.EOF {
			if !d.seenRoot {
				return nil, d.parseError(ErrNoRootElement)
			}
			return nil, io.EOF
		}
		if err != nil {
			return nil, d.parseError(err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		d.seenRoot = true
		if isRecord(start.Name) {
			return &start, nil
		}
	}
}

func isRecord(name xml.Name) bool {
	return name.Space == marc.Namespace && name.Local == "record"
}

func (d *Decoder) parseError(err error) *ParseError {
	perr := &ParseError{Record: d.recordCount, Err: err}
	var syntaxErr *xml.SyntaxError
	if errors.As(err, &syntaxErr) {
		perr.Line = syntaxErr.Line
	}
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		perr.Err = io.ErrUnexpectedEOF
	}
	return perr
}

// A ParseError is returned when the input is not well-formed XML.  Record
// is the 1-based ordinal of the record being decoded, or the number of
// records read so far if the error happened between records.  Line is 0
// when unknown.
type ParseError struct {
	Record int
	Line   int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error in record %d at line %d: %s", e.Record, e.Line, e.Err)
	}
	return fmt.Sprintf("parse error in record %d: %s", e.Record, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
