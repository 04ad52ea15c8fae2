package codec

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// ErrDecode is returned when input is not valid hex or base64 text.
var ErrDecode = errors.New("malformed input")

// DecodeHex decodes hexadecimal text into bytes.
// Both upper and lower case digits are accepted. Odd-length input or any
// character outside [0-9a-fA-F] yields an error wrapping ErrDecode.
func DecodeHex(s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: hex: %w", ErrDecode, err)
	}
	return b, nil
}

// EncodeHex returns the lower case hexadecimal encoding of b.
func EncodeHex(b []byte) string {
	return hex.EncodeToString(b)
}

// EncodeBase64 returns the standard, padded base64 encoding of b.
func EncodeBase64(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// DecodeBase64 decodes standard base64 text. Line breaks are ignored.
func DecodeBase64(s string) ([]byte, error) {
	s = strings.NewReplacer("\r", "", "\n", "").Replace(s)
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: base64: %w", ErrDecode, err)
	}
	return b, nil
}

// HexToBase64 decodes hex text and re-encodes it as base64.
func HexToBase64(s string) (string, error) {
	b, err := DecodeHex(s)
	if err != nil {
		return "", err
	}
	return EncodeBase64(b), nil
}

// Base64ToHex decodes base64 text and re-encodes it as lowercase hex.
func Base64ToHex(s string) (string, error) {
	b, err := DecodeBase64(s)
	if err != nil {
		return "", err
	}
	return EncodeHex(b), nil
}
