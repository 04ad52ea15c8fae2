// Package textenc interprets decrypted bytes as text.
//
// The default decoder is strict UTF-8: any invalid sequence is rejected with
// ErrInvalidText. Legacy single-byte encodings are available by their WHATWG
// label (for example "windows-1252" or "latin1") through golang.org/x/text.
package textenc
