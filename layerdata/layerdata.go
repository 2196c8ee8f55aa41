// Package layerdata implements the text encoding used for tile layer payloads
// in TMX documents.
//
// A layer is a row-major grid of global tile IDs. Each cell is written as a
// little-endian uint32, the byte stream is optionally gzip-compressed, and the
// result is base64 encoded (standard alphabet, no line wrapping).
//
// Only the "base64" encoding and the "uncompressed" and "gzip" compressions
// are understood. Anything else is rejected instead of being guessed at.
package layerdata

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"io"
	"math"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

var (
	ErrMalformedPayload       = errors.New("malformed layer payload")
	ErrUnsupportedEncoding    = errors.New("unsupported layer encoding")
	ErrUnsupportedCompression = errors.New("unsupported layer compression")
)

const (
	// EncodingBase64 is the only accepted value of the data element's encoding attribute.
	EncodingBase64 = "base64"

	CompressionNone = "uncompressed"
	CompressionGzip = "gzip"
)

// ParseEncoding checks the encoding attribute of a data element.
func ParseEncoding(s string) error {
	if s != EncodingBase64 {
		return errors.Wrapf(ErrUnsupportedEncoding, "encoding %q", s)
	}
	return nil
}

// ParseCompression checks the compression attribute of a data element and
// reports whether the payload is compressed. A missing attribute means
// uncompressed.
func ParseCompression(s string) (bool, error) {
	switch s {
	case "", CompressionNone:
		return false, nil
	case CompressionGzip:
		return true, nil
	default:
		return false, errors.Wrapf(ErrUnsupportedCompression, "compression %q", s)
	}
}

// CompressionName returns the attribute value to write for the passed flag.
func CompressionName(compressed bool) string {
	if compressed {
		return CompressionGzip
	}
	return CompressionNone
}

// Marshal serializes cells as consecutive little-endian uint32 values.
func Marshal(cells []uint32) []byte {
	buf := make([]byte, 4*len(cells))
	for i, c := range cells {
		binary.LittleEndian.PutUint32(buf[4*i:], c)
	}
	return buf
}

// Unmarshal is the inverse of Marshal. The length of b must be exactly
// width*height*4.
func Unmarshal(b []byte, width, height int) ([]uint32, error) {
	if width < 0 || height < 0 {
		return nil, errors.Wrapf(ErrMalformedPayload, "negative dimensions %dx%d", width, height)
	}
	if width != 0 && height > math.MaxInt/4/width {
		return nil, errors.Wrapf(ErrMalformedPayload, "dimensions %dx%d too large", width, height)
	}
	want := width * height * 4
	if len(b) != want {
		return nil, errors.Wrapf(ErrMalformedPayload, "got %d bytes, want %d for %dx%d", len(b), want, width, height)
	}
	cells := make([]uint32, width*height)
	for i := range cells {
		cells[i] = binary.LittleEndian.Uint32(b[4*i:])
	}
	return cells, nil
}

// Encode produces the text content of a data element for the passed grid.
func Encode(cells []uint32, compressed bool) (string, error) {
	raw := Marshal(cells)
	if compressed {
		buf := &bytes.Buffer{}
		w := gzip.NewWriter(buf)
		if _, err := w.Write(raw); err != nil {
			return "", errors.Wrap(err, "compressing layer data")
		}
		if err := w.Close(); err != nil {
			return "", errors.Wrap(err, "compressing layer data")
		}
		raw = buf.Bytes()
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// Decode parses the text content of a data element into a width*height grid.
func Decode(text string, width, height int, compressed bool) ([]uint32, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(text))
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedPayload, "base64: %v", err)
	}
	if compressed {
		r, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedPayload, "gzip: %v", err)
		}
		defer r.Close()
		raw, err = io.ReadAll(r)
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedPayload, "gzip: %v", err)
		}
	}
	return Unmarshal(raw, width, height)
}

// DecodeData validates the encoding and compression attributes of a data
// element and decodes its text.
func DecodeData(encoding, compression, text string, width, height int) ([]uint32, error) {
	if err := ParseEncoding(encoding); err != nil {
		return nil, err
	}
	compressed, err := ParseCompression(compression)
	if err != nil {
		return nil, err
	}
	return Decode(text, width, height, compressed)
}
