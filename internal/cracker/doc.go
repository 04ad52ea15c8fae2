// Package cracker recovers plaintext encrypted with a single repeated XOR
// byte.
//
// A Cracker tries every key in [0, KeySpace) against a ciphertext, reads
// each output as text and keeps the candidate with the highest score. Keys
// whose output is not readable text get a score of -1 and empty text rather
// than failing the call, so scanning many lines never aborts on one bad
// candidate.
//
// The line batch cracker (CrackLines, CrackFile) applies the same search to
// every line of a source and picks the overall winner.
package cracker
