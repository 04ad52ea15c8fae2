// Package log provides logging that never writes recovered secrets, built on
// top of the standard slog package.
//
// xorscan recovers plaintext and keys from ciphertext. Those values belong in
// the report the user asked for, not in log files that may be shared or
// stored. The SecureHandler masks them before any record reaches the
// underlying handler:
//   - attributes named after recovered material (plaintext, cleartext, text, key)
//   - attributes whose name contains a secret keyword (password, token, secret)
//   - values that look like credentials (JWTs, bearer tokens, PEM private keys)
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
//
//	logger.Debug("source cracked",
//	    "source", "4.txt",        // kept
//	    "plaintext", "attack!",   // written as ***REDACTED***
//	)
package log
