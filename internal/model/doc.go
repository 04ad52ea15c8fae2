// Package model defines the data structures shared by the cracker, the scan
// pipeline, the report writers and the history store.
//
// This package contains the following main types:
//   - Candidate: one key tried against a ciphertext, with its score and text
//   - LineResult: the best candidate for one ciphertext line
//   - ScanReport: the result of scanning every line of one source
//   - Summary: a condensed view of a ScanReport for display and storage
//
// Keeping these types in their own package avoids import cycles between the
// packages that produce them and the packages that print or store them.
// All types serialize to JSON for report output and database storage.
package model
