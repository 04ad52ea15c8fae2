// Package database provides SQLite-based storage for xorscan scan history.
//
// HistoryDB keeps every saved scan report as JSON together with its
// summary, keyed by the run ID. Reports can be listed per source, looked
// up by ID, or found by the digest of the scanned input.
//
// The driver is modernc.org/sqlite, so the database is a single CGO-free
// file in the XDG data directory.
package database
