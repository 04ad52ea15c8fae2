package textenc

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// DefaultEncoding is the label of the decoder used when none is configured.
const DefaultEncoding = "utf-8"

var (
	// ErrInvalidText is returned when bytes are not valid text in the
	// decoder's encoding.
	ErrInvalidText = errors.New("bytes are not valid text")

	// ErrUnknownEncoding is returned by Lookup for labels it does not know.
	ErrUnknownEncoding = errors.New("unknown text encoding")
)

// Decoder turns a byte sequence into text.
type Decoder interface {
	// Decode returns the text for b or an error wrapping ErrInvalidText.
	Decode(b []byte) (string, error)

	// Name returns the canonical encoding name.
	Name() string
}

// UTF8 is a strict UTF-8 decoder.
type UTF8 struct{}

// Decode validates b as UTF-8 and returns it unchanged as a string.
func (UTF8) Decode(b []byte) (string, error) {
	out, _, err := transform.Bytes(encoding.UTF8Validator, b)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidText, err)
	}
	return string(out), nil
}

// Name returns "utf-8".
func (UTF8) Name() string {
	return DefaultEncoding
}

// legacy decodes through an x/text encoding.
type legacy struct {
	name string
	enc  encoding.Encoding
}

func (l legacy) Decode(b []byte) (string, error) {
	out, err := l.enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrInvalidText, l.name, err)
	}
	return string(out), nil
}

func (l legacy) Name() string {
	return l.name
}

// Lookup returns the decoder for an encoding label. An empty label selects
// strict UTF-8. Labels are matched case-insensitively using the WHATWG
// encoding index, so "latin1" and "iso-8859-1" both resolve to windows-1252.
func Lookup(label string) (Decoder, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return UTF8{}, nil
	}

	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, label)
	}
	name, err := htmlindex.Name(enc)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, label)
	}
	if name == DefaultEncoding {
		return UTF8{}, nil
	}
	return legacy{name: name, enc: enc}, nil
}
