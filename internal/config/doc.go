// Package config provides configuration structures and utilities for xorscan.
// It defines the options for cracking sources, choosing the text encoding and
// scorer, and selecting the report format and history storage.
package config
