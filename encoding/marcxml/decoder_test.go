package marcxml

import (
	"encoding/xml"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/thms-rmb/marcXmlToJson/marc"
)

const sampleCollection = `<?xml version="1.0" encoding="UTF-8"?>
<collection xmlns="http://www.loc.gov/MARC21/slim">
  <record>
    <controlfield tag="000">00714cam a2200205 a 4500</controlfield>
    <controlfield tag="001">12883376</controlfield>
    <datafield tag="245" ind1="1" ind2="0">
      <subfield code="a">Title</subfield>
      <subfield code="b">Sub</subfield>
    </datafield>
  </record>
  <record>
    <controlfield tag="001">abc</controlfield>
    <datafield tag="650">
      <subfield code="a">Subject</subfield>
    </datafield>
  </record>
  <record/>
</collection>`

// latin1Collection holds ISO-8859-1 bytes for "é" and "ë".
const latin1Collection = "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n" +
	`<collection xmlns="http://www.loc.gov/MARC21/slim"><record>` +
	"<datafield tag=\"245\"><subfield code=\"a\">Caf\xe9 No\xebl</subfield></datafield>" +
	`</record></collection>`

var sampleRecords = []*marc.Record{
	{
		Controlfields: []marc.Controlfield{
			{Tag: "000", Value: "00714cam a2200205 a 4500"},
			{Tag: "001", Value: "12883376"},
		},
		Datafields: []marc.Datafield{
			{
				Tag:  "245",
				Ind1: "1",
				Ind2: "0",
				Subfields: []marc.Subfield{
					{Code: "a", Value: "Title"},
					{Code: "b", Value: "Sub"},
				},
			},
		},
	},
	{
		Controlfields: []marc.Controlfield{
			{Tag: "001", Value: "abc"},
		},
		Datafields: []marc.Datafield{
			{
				Tag:       "650",
				Subfields: []marc.Subfield{{Code: "a", Value: "Subject"}},
			},
		},
	},
	{},
}

// TestDecoderRecords tests decoding of well-formed collections
func TestDecoderRecords(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []*marc.Record
	}{
		{
			name:     "sample collection",
			input:    sampleCollection,
			expected: sampleRecords,
		},
		{
			name:     "empty collection",
			input:    `<collection xmlns="http://www.loc.gov/MARC21/slim"></collection>`,
			expected: nil,
		},
		{
			name: "prefixed names",
			input: `<marc:collection xmlns:marc="http://www.loc.gov/MARC21/slim">
<marc:record><marc:controlfield tag="001">abc</marc:controlfield></marc:record>
</marc:collection>`,
			expected: []*marc.Record{
				{Controlfields: []marc.Controlfield{{Tag: "001", Value: "abc"}}},
			},
		},
		{
			name: "text is not trimmed",
			input: `<collection xmlns="http://www.loc.gov/MARC21/slim"><record>
<controlfield tag="008">  padded  </controlfield>
<datafield tag="500" ind1=" " ind2=" "><subfield code="a"></subfield></datafield>
</record></collection>`,
			expected: []*marc.Record{
				{
					Controlfields: []marc.Controlfield{{Tag: "008", Value: "  padded  "}},
					Datafields: []marc.Datafield{
						{Tag: "500", Ind1: " ", Ind2: " ", Subfields: []marc.Subfield{{Code: "a", Value: ""}}},
					},
				},
			},
		},
		{
			name: "entities and cdata",
			input: `<collection xmlns="http://www.loc.gov/MARC21/slim"><record>
<datafield tag="245"><subfield code="a">Tom &amp; Jerry <![CDATA[<1>]]></subfield></datafield>
</record></collection>`,
			expected: []*marc.Record{
				{Datafields: []marc.Datafield{
					{Tag: "245", Subfields: []marc.Subfield{{Code: "a", Value: "Tom & Jerry <1>"}}},
				}},
			},
		},
		{
			name: "records in other namespaces are skipped",
			input: `<collection xmlns="http://www.loc.gov/MARC21/slim" xmlns:x="urn:other">
<x:record><controlfield tag="001">foreign</controlfield></x:record>
<subrecord><controlfield tag="001">sub</controlfield></subrecord>
<record><controlfield tag="001">mine</controlfield></record>
</collection>`,
			expected: []*marc.Record{
				{Controlfields: []marc.Controlfield{{Tag: "001", Value: "mine"}}},
			},
		},
		{
			name:  "declared latin-1 encoding",
			input: latin1Collection,
			expected: []*marc.Record{
				{Datafields: []marc.Datafield{
					{Tag: "245", Subfields: []marc.Subfield{{Code: "a", Value: "Café Noël"}}},
				}},
			},
		},
		{
			name: "unnamespaced document has no records",
			input: `<collection><record><controlfield tag="001">abc</controlfield></record></collection>`,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := readAll(NewDecoder(strings.NewReader(tt.input)))
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			assertRecords(t, tt.expected, records)
		})
	}
}

// TestDecoderLeavesCursorAfterRecord checks that a record's subtree is fully
// consumed, so nested elements named like a record are not picked up again.
func TestDecoderLeavesCursorAfterRecord(t *testing.T) {
	input := `<collection xmlns="http://www.loc.gov/MARC21/slim">
<record><controlfield tag="001">1</controlfield><extra><record/></extra></record>
<record><controlfield tag="001">2</controlfield></record>
</collection>`
	records, err := readAll(NewDecoder(strings.NewReader(input)))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[1].Controlfields[0].Value != "2" {
		t.Errorf("expected second record to be '2', got %q", records[1].Controlfields[0].Value)
	}
}

// TestDecoderMalformed tests that invalid XML produces a ParseError
func TestDecoderMalformed(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		validRecords  int
		expectedCause error
	}{
		{
			name:         "truncated inside record",
			input:        `<collection xmlns="http://www.loc.gov/MARC21/slim"><record><controlfield tag="001">abc`,
			validRecords: 0,
		},
		{
			name: "truncated after a record",
			input: `<collection xmlns="http://www.loc.gov/MARC21/slim">
<record><controlfield tag="001">abc</controlfield></record>
<record>`,
			validRecords: 1,
		},
		{
			name:         "mismatched tags",
			input:        `<collection xmlns="http://www.loc.gov/MARC21/slim"><record></datafield></collection>`,
			validRecords: 0,
		},
		{
			name:         "unknown entity",
			input:        `<collection xmlns="http://www.loc.gov/MARC21/slim"><record><controlfield tag="001">&nope;</controlfield></record></collection>`,
			validRecords: 0,
		},
		{
			name:          "empty input",
			input:         "",
			validRecords:  0,
			expectedCause: ErrNoRootElement,
		},
		{
			name:          "plain text",
			input:         "not xml at all",
			validRecords:  0,
			expectedCause: ErrNoRootElement,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := readAll(NewDecoder(strings.NewReader(tt.input)))
			if err == nil {
				t.Fatal("expected an error")
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("expected a *ParseError, got %T: %s", err, err)
			}
			if len(records) != tt.validRecords {
				t.Errorf("expected %d records before the error, got %d", tt.validRecords, len(records))
			}
			if tt.expectedCause != nil && !errors.Is(err, tt.expectedCause) {
				t.Errorf("expected cause %v, got %v", tt.expectedCause, perr.Err)
			}
		})
	}
}

func TestParseErrorMessage(t *testing.T) {
	err := &ParseError{Record: 3, Line: 12, Err: &xml.SyntaxError{Msg: "unexpected EOF", Line: 12}}
	expected := "parse error in record 3 at line 12: XML syntax error on line 12: unexpected EOF"
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
	var syntaxErr *xml.SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Error("expected ParseError to unwrap to *xml.SyntaxError")
	}
	noLine := &ParseError{Record: 1, Err: io.ErrUnexpectedEOF}
	if noLine.Error() != "parse error in record 1: unexpected EOF" {
		t.Errorf("unexpected message %q", noLine.Error())
	}
}

func readAll(r marc.Reader) ([]*marc.Record, error) {
	var records []*marc.Record
	for {
		record, err := r.Next()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return records, err
		}
		records = append(records, record)
	}
}

func assertRecords(t *testing.T, expected, actual []*marc.Record) {
	t.Helper()
	if len(expected) != len(actual) {
		t.Fatalf("expected %d records, got %d", len(expected), len(actual))
	}
	for i := range expected {
		if !recordsEqual(expected[i], actual[i]) {
			t.Errorf("record %d:\nexpected %+v\ngot      %+v", i, expected[i], actual[i])
		}
	}
}

// recordsEqual compares records treating nil and empty slices alike.
func recordsEqual(a, b *marc.Record) bool {
	if len(a.Controlfields) != len(b.Controlfields) || len(a.Datafields) != len(b.Datafields) {
		return false
	}
	for i := range a.Controlfields {
		if a.Controlfields[i] != b.Controlfields[i] {
			return false
		}
	}
	for i := range a.Datafields {
		fa, fb := a.Datafields[i], b.Datafields[i]
		if fa.Tag != fb.Tag || fa.Ind1 != fb.Ind1 || fa.Ind2 != fb.Ind2 {
			return false
		}
		if len(fa.Subfields) != len(fb.Subfields) {
			return false
		}
		if len(fa.Subfields) > 0 && !reflect.DeepEqual(fa.Subfields, fb.Subfields) {
			return false
		}
	}
	return true
}
