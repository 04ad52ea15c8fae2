package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() so callers can use
// errors.Is() while users still get a readable message.
var (
	// ErrInvalidConcurrency is returned when the number of sources scanned
	// at once is not positive.
	ErrInvalidConcurrency = errors.New("invalid batch size: must be positive")

	// ErrInvalidLineConcurrency is returned when the number of lines cracked
	// at once is not positive.
	ErrInvalidLineConcurrency = errors.New("invalid line batch size: must be positive")

	// ErrInvalidTopN is returned when the ranking size is negative.
	// Use 0 to show every line.
	ErrInvalidTopN = errors.New("invalid top: must be non-negative")

	// ErrConflictingReportFormats is returned when more than one of --json,
	// --markdown and --plain is specified.
	ErrConflictingReportFormats = errors.New("conflicting report formats: use only one of --json, --markdown and --plain")

	// ErrNoCiphertext is returned when there is nothing to crack.
	ErrNoCiphertext = errors.New("no ciphertext provided (pass hex arguments or pipe lines to stdin)")

	// ErrUnknownProfile is returned when a named profile is not in the
	// configuration file.
	ErrUnknownProfile = errors.New("unknown profile")
)
