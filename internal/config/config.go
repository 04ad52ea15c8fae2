package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultConcurrency is the number of sources scanned at once.
	DefaultConcurrency = 4

	// DefaultLineConcurrency is the number of lines cracked at once per
	// source. Each line is a fixed 128-key search, so this mostly bounds
	// CPU use.
	DefaultLineConcurrency = 8

	// DefaultTopN is the number of ranked lines shown in reports.
	DefaultTopN = 5

	// DefaultEncoding is the text encoding used to read candidates.
	DefaultEncoding = "utf-8"

	// AppName is the application name used for XDG directory paths.
	AppName = "xorscan"
)

// Config holds all configuration options for xorscan.
// It is populated from the configuration file and CLI flags and passed
// through the application rather than kept in global state.
type Config struct {
	// Verbose enables detailed log output using slog.LevelDebug.
	Verbose bool

	// Concurrency is the number of sources scanned at once.
	Concurrency int

	// LineConcurrency is the number of lines cracked at once per source.
	LineConcurrency int

	// Encoding is the text encoding label used to read candidates.
	Encoding string

	// SamplePath selects frequency scoring from the given sample text.
	// Empty means the default letter heuristic.
	SamplePath string

	// TopN is the number of ranked lines shown in reports. 0 shows all.
	TopN int

	// Profile is the name of the configuration file profile to apply.
	Profile string

	// ConfigFilePath is the path to the configuration file.
	// If empty, FindConfigFile's search order is used.
	ConfigFilePath string

	// JSONReport selects JSON output. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport selects Markdown output. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// PlainOutput prints only the recovered plaintext of each source,
	// exactly as decrypted.
	PlainOutput bool

	// ReportFile is the output file path for reports.
	// When empty, reports go to stdout.
	ReportFile string

	// SaveToDB stores every scan report in the history database.
	SaveToDB bool

	// DBDir is the directory holding the history database.
	// Defaults to the XDG data directory (~/.local/share/xorscan on Linux).
	DBDir string

	// Sources are the files to scan. Empty means standard input.
	Sources []string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Concurrency:     DefaultConcurrency,
		LineConcurrency: DefaultLineConcurrency,
		Encoding:        DefaultEncoding,
		TopN:            DefaultTopN,
		DBDir:           XDGDataDir(),
	}
}

// ApplyProfile copies the non-zero values of p into c.
func (c *Config) ApplyProfile(p Profile) {
	if p.Encoding != "" {
		c.Encoding = p.Encoding
	}
	if p.Sample != "" {
		c.SamplePath = p.Sample
	}
	if p.Concurrency > 0 {
		c.Concurrency = p.Concurrency
	}
	if p.LineConcurrency > 0 {
		c.LineConcurrency = p.LineConcurrency
	}
	if p.Top != nil {
		c.TopN = *p.Top
	}
}

// XDGDataDir returns the XDG data directory for xorscan.
// On Linux: ~/.local/share/xorscan
// On macOS: ~/Library/Application Support/xorscan
// On Windows: %LOCALAPPDATA%\xorscan
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for xorscan.
// On Linux: ~/.config/xorscan
// On macOS: ~/Library/Application Support/xorscan
// On Windows: %APPDATA%\xorscan
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid and returns the first
// problem found.
func (c *Config) Validate() error {
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	if c.LineConcurrency <= 0 {
		return ErrInvalidLineConcurrency
	}

	if c.TopN < 0 {
		return ErrInvalidTopN
	}

	formats := 0
	for _, set := range []bool{c.JSONReport, c.MarkdownReport, c.PlainOutput} {
		if set {
			formats++
		}
	}
	if formats > 1 {
		return ErrConflictingReportFormats
	}

	return nil
}
