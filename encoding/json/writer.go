// Package json writes a stream of tokens as JSON text.
package json

import (
	"fmt"

	"github.com/thms-rmb/marcXmlToJson/internal/format"
	"github.com/thms-rmb/marcXmlToJson/token"
)

// A Writer outputs JSON text as tokens are put into it, using the given
// Printer instance for formatting.  It takes care of separators and
// indentation so producers only need to emit tokens.
//
// Put assumes that the stream is well-formed and panics if it is not.
// Output errors are reported as panics with a *format.PrinterError, see
// format.CatchPrinterError.
type Writer struct {
	format.Printer
	*format.Colorizer
	stack []container
}

var _ token.WriteStream = &Writer{}

type container struct {
	isObject bool
	count    int  // number of values in an array, of keys in an object
	afterKey bool // an object key was written and its value is expected
}

// Put writes a token.
func (w *Writer) Put(tok token.Token) {
	switch t := tok.(type) {
	case *token.StartObject:
		w.beginValue()
		w.PrintBytes(openObjectBytes)
		w.stack = append(w.stack, container{isObject: true})
	case *token.StartArray:
		w.beginValue()
		w.PrintBytes(openArrayBytes)
		w.stack = append(w.stack, container{})
	case *token.EndObject:
		w.end(true)
		w.PrintBytes(closeObjectBytes)
	case *token.EndArray:
		w.end(false)
		w.PrintBytes(closeArrayBytes)
	case *token.Scalar:
		if t.IsKey() {
			w.beginKey()
			w.Colorizer.PrintScalar(w.Printer, t)
			w.PrintBytes(keyValueSeparatorBytes)
			w.Space()
		} else {
			w.beginValue()
			w.Colorizer.PrintScalar(w.Printer, t)
		}
	default:
		panic(fmt.Sprintf("invalid token: %#v", tok))
	}
}

func (w *Writer) beginValue() {
	if len(w.stack) == 0 {
		return
	}
	top := &w.stack[len(w.stack)-1]
	if top.isObject {
		if !top.afterKey {
			panic("object value without a key")
		}
		top.afterKey = false
		return
	}
	w.beginItem(top)
}

func (w *Writer) beginKey() {
	if len(w.stack) == 0 {
		panic("key outside of an object")
	}
	top := &w.stack[len(w.stack)-1]
	if !top.isObject || top.afterKey {
		panic("unexpected key")
	}
	w.beginItem(top)
	top.afterKey = true
}

func (w *Writer) beginItem(top *container) {
	if top.count > 0 {
		w.PrintBytes(itemSeparatorBytes)
		w.NewLine()
	} else {
		w.Indent()
	}
	top.count++
}

func (w *Writer) end(isObject bool) {
	if len(w.stack) == 0 {
		panic("unbalanced end of container")
	}
	top := w.stack[len(w.stack)-1]
	if top.isObject != isObject || top.afterKey {
		panic("mismatched end of container")
	}
	w.stack = w.stack[:len(w.stack)-1]
	if top.count > 0 {
		w.Dedent()
	}
}

var (
	openObjectBytes        = []byte("{")
	closeObjectBytes       = []byte("}")
	openArrayBytes         = []byte("[")
	closeArrayBytes        = []byte("]")
	itemSeparatorBytes     = []byte(",")
	keyValueSeparatorBytes = []byte(":")
)
