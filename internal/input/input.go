// Package input opens record files that may have been compressed for
// transport.  Compression is detected from the magic bytes at the start of
// the data, never from the file name.
package input

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"

	"github.com/ulikunitz/xz"
)

// Compression identifies how the input data is compressed.
type Compression string

const (
	None Compression = "none"
	Gzip Compression = "gzip"
	XZ   Compression = "xz"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	xzMagic   = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
)

// Detect reports the compression of the data in r.  The returned reader
// yields all of r's data, including the bytes inspected for detection.
func Detect(r io.Reader) (Compression, *bufio.Reader, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(len(xzMagic))
	if err != nil && err != io.EOF {
		return None, br, err
	}
	switch {
	case bytes.HasPrefix(magic, gzipMagic):
		return Gzip, br, nil
	case bytes.HasPrefix(magic, xzMagic):
		return XZ, br, nil
	default:
		return None, br, nil
	}
}

// NewReader returns a reader producing the uncompressed content of r.
// Closing it releases the decompressor but does not close r.
func NewReader(r io.Reader) (io.ReadCloser, Compression, error) {
	compression, br, err := Detect(r)
	if err != nil {
		return nil, compression, fmt.Errorf("detecting compression: %w", err)
	}
	switch compression {
	case Gzip:
		gr, err := gzip.NewReader(br)
		if err != nil {
			return nil, compression, fmt.Errorf("gzip error: %w", err)
		}
		return gr, compression, nil
	case XZ:
		xr, err := xz.NewReader(br)
		if err != nil {
			return nil, compression, fmt.Errorf("xz error: %w", err)
		}
		return io.NopCloser(xr), compression, nil
	default:
		return io.NopCloser(br), compression, nil
	}
}
