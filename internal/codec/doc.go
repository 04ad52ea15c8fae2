// Package codec converts between hexadecimal text, raw bytes and base64 text.
//
// Every function is pure. Malformed hex input is reported as ErrDecode so
// callers can tell it apart from other failures with errors.Is.
package codec
