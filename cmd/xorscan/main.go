// Package main provides the entry point for the xorscan CLI.
//
// xorscan recovers plaintext hidden with a single-byte XOR key. It tries
// every 7-bit key, scores each candidate as English text, and among many
// ciphertext lines finds the one that was actually encrypted.
//
// Usage:
//
//	xorscan crack <hex>
//	xorscan detect <file>
//
// See --help for all available options.
package main

// main is the entry point for xorscan.
func main() {
	Execute()
}
