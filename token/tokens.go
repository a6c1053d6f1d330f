package token

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// A Token is an item in a stream that encodes a JSON value.
// For example, the JSON value
//
//	{"001": "abc", "tags": ["a", "b"]}
//
// would be represented by the stream of Token (in pseudocode for
// clarity):
//
//	{            -> StartObject
//	"001":       -> Key("001")
//	"abc",       -> Scalar("abc")
//	"tags":      -> Key("tags")
//	[            -> StartArray
//	"a",         -> Scalar("a")
//	"b"          -> Scalar("b")
//	]            -> EndArray
//	}            -> EndObject
//
// A producer writes such a stream to a WriteStream, which may print it
// straight away.
type Token interface {
	fmt.Stringer
}

// StartObject represents the start of a JSON object (introduced by '{').
type StartObject struct{}

func (s *StartObject) String() string {
	return "StartObject"
}

var _ Token = &StartObject{}

// EndObject represents the end of a JSON object (introduced by '}').
type EndObject struct{}

func (e *EndObject) String() string {
	return "EndObject"
}

var _ Token = &EndObject{}

// StartArray represents the start of a JSON array (introduced by '[').
type StartArray struct{}

func (s *StartArray) String() string {
	return "StartArray"
}

var _ Token = &StartArray{}

// EndArray represents the end of a JSON array (introduced by ']').
type EndArray struct{}

func (e *EndArray) String() string {
	return "EndArray"
}

var _ Token = &EndArray{}

// Scalar is the type used to represent JSON string values.  It is also used
// for object keys, in which case Key is set.
type Scalar struct {

	// Literal JSON representation of the value, e.g. the string "foo" is
	// represented as []byte("\"foo\"")
	Bytes []byte

	Key bool
}

func (s *Scalar) IsKey() bool {
	return s.Key
}

func (s *Scalar) String() string {
	if s.Key {
		return fmt.Sprintf("Key(%s)", s.Bytes)
	}
	return fmt.Sprintf("Scalar(%s)", s.Bytes)
}

// StringScalar returns a string value.  The string is escaped the way
// encoding/json does it, except that HTML characters are left alone.
func StringScalar(s string) *Scalar {
	return &Scalar{Bytes: quote(s)}
}

// StringKey returns an object key.
func StringKey(s string) *Scalar {
	return &Scalar{Bytes: quote(s), Key: true}
}

func quote(s string) []byte {
	var b bytes.Buffer
	encoder := json.NewEncoder(&b)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(s); err != nil {
		panic(err)
	}
	// Remove the new line at the end
	return bytes.TrimSuffix(b.Bytes(), []byte{'\n'})
}
