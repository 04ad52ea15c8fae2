package model

import "time"

// Summary is a condensed view of a ScanReport.
// Report writers print it and the history store keeps it next to the full
// report so listings do not need to decode every stored report.
type Summary struct {
	ID          string    `json:"id"`
	Source      string    `json:"source"`
	DateScanned time.Time `json:"date_scanned"`
	Encoding    string    `json:"encoding"`
	Scorer      string    `json:"scorer"`
	LineCount   int       `json:"line_count"`

	// BestLine is 0 when there is no winner.
	BestLine  int    `json:"best_line"`
	BestKey   byte   `json:"best_key"`
	BestScore int    `json:"best_score"`
	Plaintext string `json:"plaintext"`

	// PositiveLines counts lines whose best candidate scored above zero.
	PositiveLines int `json:"positive_lines"`

	// NonPositiveLines counts readable lines whose best score is zero or less.
	NonPositiveLines int `json:"non_positive_lines"`

	// UnreadableLines counts lines where no key produced readable text.
	UnreadableLines int `json:"unreadable_lines"`

	TimedOut bool   `json:"timed_out"`
	Error    string `json:"error,omitempty"`
}

// NewSummary builds the summary of report.
func NewSummary(report *ScanReport) *Summary {
	s := &Summary{
		ID:          report.ID,
		Source:      report.Source,
		DateScanned: report.DateScanned,
		Encoding:    report.Encoding,
		Scorer:      report.Scorer,
		LineCount:   report.LineCount,
		TimedOut:    report.TimedOut,
		Error:       report.ErrorMessage,
	}

	if report.Best != nil {
		s.BestLine = report.Best.Line
		s.BestKey = report.Best.Key
		s.BestScore = report.Best.Score
		s.Plaintext = report.Best.Text
	}

	for _, r := range report.Results {
		switch {
		case !r.Valid:
			s.UnreadableLines++
		case r.Score > 0:
			s.PositiveLines++
		default:
			s.NonPositiveLines++
		}
	}

	return s
}

// HasResult reports whether the scan found a winning line.
func (s *Summary) HasResult() bool {
	return s.BestLine > 0
}
