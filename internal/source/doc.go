// Package source loads newline-separated ciphertext lines from files or
// standard input.
//
// A loaded Source keeps the SHA3-256 digest of the raw bytes so that repeated
// scans of the same input can be recognised in history.
package source
