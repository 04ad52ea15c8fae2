package model

import (
	"cmp"
	"slices"
	"time"

	"github.com/google/uuid"
)

// ScanReport is the result of running the line batch cracker over one
// source. It is filled in step by step by the scan pipeline.
type ScanReport struct {
	// ID uniquely identifies the run. It is the primary key in history.
	ID string `json:"id"`

	// Source is the file path that was scanned, or "-" for standard input.
	Source string `json:"source"`

	// SourceDigest is the hex SHA3-256 digest of the raw source bytes.
	SourceDigest string `json:"source_digest,omitempty"`

	// Encoding is the name of the text encoding used to read candidates.
	Encoding string `json:"encoding"`

	// Scorer names the scoring heuristic ("language" or "frequency").
	Scorer string `json:"scorer"`

	// DateScanned is when the scan started.
	DateScanned time.Time `json:"date_scanned"`

	// Elapsed is the wall time spent in the pipeline.
	Elapsed time.Duration `json:"elapsed"`

	// Lines holds the ciphertext lines loaded by the read step.
	// They are not serialized; Results carries each line's ciphertext.
	Lines []string `json:"-"`

	// LineCount is the number of lines read from the source.
	LineCount int `json:"line_count"`

	// Results holds the best candidate of every line, in line order.
	Results []LineResult `json:"results,omitempty"`

	// Best is the overall winner across all lines.
	Best *LineResult `json:"best,omitempty"`

	// PerformedSteps lists the pipeline steps that ran, in order.
	PerformedSteps []string `json:"performed_steps,omitempty"`

	// TimedOut is set when the scan was cancelled before finishing.
	TimedOut bool `json:"timed_out"`

	// Error is the error that stopped the scan, if any.
	Error error `json:"-"`

	// ErrorMessage is Error as text, kept for serialization.
	ErrorMessage string `json:"error,omitempty"`
}

// NewScanReport creates a report for source with a fresh run ID.
func NewScanReport(source string) *ScanReport {
	return &ScanReport{
		ID:          uuid.NewString(),
		Source:      source,
		DateScanned: time.Now(),
	}
}

// Plaintext returns the winning plaintext, or an empty string when the scan
// produced no result.
func (r *ScanReport) Plaintext() string {
	if r.Best == nil {
		return ""
	}
	return r.Best.Text
}

// Ranking returns up to n line results ordered by descending score.
// Lines with equal scores keep their source order. n <= 0 returns all.
func (r *ScanReport) Ranking(n int) []LineResult {
	ranked := slices.Clone(r.Results)
	slices.SortStableFunc(ranked, func(a, b LineResult) int {
		return cmp.Compare(b.Score, a.Score)
	})
	if n > 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// SetError records err on the report.
func (r *ScanReport) SetError(err error) {
	r.Error = err
	if err != nil {
		r.ErrorMessage = err.Error()
	}
}
