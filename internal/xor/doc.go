// Package xor combines byte sequences with bitwise exclusive-or.
//
// Inputs are never modified; every function returns a new slice.
package xor
