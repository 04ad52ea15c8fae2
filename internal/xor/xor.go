package xor

import "github.com/nao1215/xorscan/internal/codec"

// Fixed returns the XOR combination of a and b.
// The result has the length of the shorter input; trailing bytes of the
// longer input are dropped.
func Fixed(a, b []byte) []byte {
	n := min(len(a), len(b))
	dst := make([]byte, n)
	for i := range n {
		dst[i] = a[i] ^ b[i]
	}
	return dst
}

// RepeatedByte returns data XORed against key repeated to len(data).
func RepeatedByte(data []byte, key byte) []byte {
	dst := make([]byte, len(data))
	for i := range data {
		dst[i] = data[i] ^ key
	}
	return dst
}

// FixedHex decodes two hex strings, XORs them with Fixed and returns the
// hex encoding of the result.
func FixedHex(a, b string) (string, error) {
	ab, err := codec.DecodeHex(a)
	if err != nil {
		return "", err
	}
	bb, err := codec.DecodeHex(b)
	if err != nil {
		return "", err
	}
	return codec.EncodeHex(Fixed(ab, bb)), nil
}
