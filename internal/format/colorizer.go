package format

import "github.com/thms-rmb/marcXmlToJson/token"

// A Colorizer surrounds scalars with terminal escape codes.  A nil
// *Colorizer prints scalars unchanged.
type Colorizer struct {
	KeyColorCode    []byte
	StringColorCode []byte
	ResetCode       []byte
}

func (c *Colorizer) ScalarColorCode(scalar *token.Scalar) []byte {
	if scalar.IsKey() {
		return c.KeyColorCode
	}
	return c.StringColorCode
}

func (c *Colorizer) PrintScalar(p Printer, scalar *token.Scalar) {
	if c != nil {
		p.PrintBytes(c.ScalarColorCode(scalar))
	}
	p.PrintBytes(scalar.Bytes)
	if c != nil {
		p.PrintBytes(c.ResetCode)
	}
}

// Some color ANSI codes
var (
	Reset = []byte("\033[0m")

	Green = []byte("\033[32m")

	BrightBlue = []byte("\033[34;1m")
)

// DefaultColorizer colours keys blue and strings green.
var DefaultColorizer = Colorizer{
	StringColorCode: Green,
	KeyColorCode:    BrightBlue,
	ResetCode:       Reset,
}
