// Package score rates how plausible a decoded text is as English.
//
// Language is the default heuristic: it rewards ASCII letters and spaces and
// penalises everything else. Frequency builds a scorer from the symbol
// counts of a sample text instead.
//
// Scorers are pure functions of their input and safe for concurrent use.
package score
