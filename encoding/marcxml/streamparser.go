package marcxml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/thms-rmb/marcXmlToJson/marc"
)

// marcElement returns an expression matching MARC elements with the given
// local name, whatever prefix the document binds the namespace to.
func marcElement(local string) string {
	return fmt.Sprintf("*[local-name()='%s' and namespace-uri()='%s']", local, marc.Namespace)
}

var (
	// recordXPath matches records at any depth, including records nested
	// in elements from other namespaces.
	recordXPath = "//" + marcElement("record")

	controlfieldExpr = xpath.MustCompile(marcElement("controlfield"))
	datafieldExpr    = xpath.MustCompile(marcElement("datafield"))
	subfieldExpr     = xpath.MustCompile(marcElement("subfield"))
)

// A StreamParser reads MARCXML input with an XPath driven streaming parser.
// It produces the same records as Decoder.  Each record subtree is dropped
// from the parser's tree when the next one is requested.
type StreamParser struct {
	parser      *xmlquery.StreamParser
	input       *elementSniffer
	recordCount int
}

var _ marc.Reader = &StreamParser{}

// NewStreamParser sets up a new StreamParser reading from the given input.
func NewStreamParser(in io.Reader) (*StreamParser, error) {
	sniffer := &elementSniffer{r: in}
	p, err := xmlquery.CreateStreamParser(sniffer, recordXPath)
	if err != nil {
		return nil, fmt.Errorf("creating stream parser: %w", err)
	}
	return &StreamParser{parser: p, input: sniffer}, nil
}

// Next returns the next record in the input, or io.EOF if there is none.
func (p *StreamParser) Next() (*marc.Record, error) {
	node, err := p.parser.Read()
	if err == io.EOF {
		if !p.input.sawElement {
			return nil, p.parseError(ErrNoRootElement)
		}
		return nil, io.EOF
	}
	if err != nil {
		return nil, p.parseError(err)
	}
	p.recordCount++
	return nodeToRecord(node), nil
}

func (p *StreamParser) parseError(err error) *ParseError {
	// The failing record has not been counted yet.
	perr := &ParseError{Record: p.recordCount + 1, Err: err}
	var syntaxErr *xml.SyntaxError
	if errors.As(err, &syntaxErr) {
		perr.Line = syntaxErr.Line
	}
	return perr
}

func nodeToRecord(node *xmlquery.Node) *marc.Record {
	var record marc.Record
	for _, c := range xmlquery.QuerySelectorAll(node, controlfieldExpr) {
		record.Controlfields = append(record.Controlfields, marc.Controlfield{
			Tag:   c.SelectAttr("tag"),
			Value: c.InnerText(),
		})
	}
	for _, d := range xmlquery.QuerySelectorAll(node, datafieldExpr) {
		record.Datafields = append(record.Datafields, nodeToDatafield(d))
	}
	return &record
}

func nodeToDatafield(node *xmlquery.Node) marc.Datafield {
	field := marc.Datafield{
		Tag:  node.SelectAttr("tag"),
		Ind1: node.SelectAttr("ind1"),
		Ind2: node.SelectAttr("ind2"),
	}
	for _, s := range xmlquery.QuerySelectorAll(node, subfieldExpr) {
		field.Subfields = append(field.Subfields, marc.Subfield{
			Code:  s.SelectAttr("code"),
			Value: s.InnerText(),
		})
	}
	return field
}

// An elementSniffer passes input through and notes whether it contains
// anything that looks like a start tag.  The stream parser reports io.EOF
// both for a document without matches and for input that is not XML at
// all; only the first is a valid end of stream.
type elementSniffer struct {
	r          io.Reader
	afterLT    bool
	sawElement bool
}

func (s *elementSniffer) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	if !s.sawElement {
		for _, b := range p[:n] {
			if s.afterLT && isNameStart(b) {
				s.sawElement = true
				break
			}
			s.afterLT = b == '<'
		}
	}
	return n, err
}

func isNameStart(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b == '_' || b == ':' || b >= 0x80
}
