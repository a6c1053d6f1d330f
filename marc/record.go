// Package marc defines the in-memory form of a MARC bibliographic record as
// decoded from MARCXML.
//
// A Record is created by a Reader, handed to a consumer and then dropped.
// Nothing in this package mutates a record after it has been decoded.
package marc

// Namespace is the XML namespace of MARCXML documents.
const Namespace = "http://www.loc.gov/MARC21/slim"

// LeaderTag is the controlfield tag used to carry the record leader.
const LeaderTag = "000"

// A Record is one bibliographic unit.  Controlfields and Datafields are in
// the order they were found in the input.
type Record struct {
	Controlfields []Controlfield `xml:"http://www.loc.gov/MARC21/slim controlfield"`
	Datafields    []Datafield    `xml:"http://www.loc.gov/MARC21/slim datafield"`
}

// A Controlfield is an unstructured field (tags 000 to 009).  Value is the
// text content as given in the input, possibly empty.
type Controlfield struct {
	Tag   string `xml:"tag,attr"`
	Value string `xml:",chardata"`
}

// IsLeader is true if the controlfield carries the record leader.
func (c Controlfield) IsLeader() bool {
	return c.Tag == LeaderTag
}

// A Datafield is a structured field with two indicators and a list of
// subfields.  Missing indicators are empty strings.
type Datafield struct {
	Tag       string     `xml:"tag,attr"`
	Ind1      string     `xml:"ind1,attr"`
	Ind2      string     `xml:"ind2,attr"`
	Subfields []Subfield `xml:"http://www.loc.gov/MARC21/slim subfield"`
}

// A Subfield is a coded text unit inside a Datafield.
type Subfield struct {
	Code  string `xml:"code,attr"`
	Value string `xml:",chardata"`
}

// Leaders returns the values of all leader controlfields, in input order.
// Well-formed records have exactly one.
func (r *Record) Leaders() []string {
	var leaders []string
	for _, c := range r.Controlfields {
		if c.IsLeader() {
			leaders = append(leaders, c.Value)
		}
	}
	return leaders
}

// FieldCount is the number of entries the record contributes to the
// "fields" list, i.e. all fields except leaders.
func (r *Record) FieldCount() int {
	n := len(r.Datafields)
	for _, c := range r.Controlfields {
		if !c.IsLeader() {
			n++
		}
	}
	return n
}

// A Reader produces records one at a time.  Next returns io.EOF when there
// are no more records.
type Reader interface {
	Next() (*Record, error)
}
