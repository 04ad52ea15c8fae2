package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/xorscan/internal/model"
)

// DefaultTopN is the number of ranked lines shown when no limit is set.
const DefaultTopN = 5

// Writer defines the interface for report output.
// Implementations write scan results in various formats.
type Writer interface {
	// Write outputs the full scan report.
	// Returns the number of bytes written and any error encountered.
	Write(report *model.ScanReport) (int, error)

	// WriteSummary outputs only the summary of a scan.
	WriteSummary(summary *model.Summary) (int, error)

	// WriteHistory outputs a list of stored scan summaries.
	WriteHistory(summaries []*model.Summary) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for outputting to both terminal and file.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(report *model.ScanReport) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.Write(report) })
}

// WriteSummary outputs the summary to all configured Writers.
func (m *MultiWriter) WriteSummary(summary *model.Summary) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.WriteSummary(summary) })
}

// WriteHistory outputs the summaries to all configured Writers.
func (m *MultiWriter) WriteHistory(summaries []*model.Summary) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.WriteHistory(summaries) })
}

func (m *MultiWriter) each(write func(Writer) (int, error)) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := write(w)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer

	// topN limits the ranking table. 0 shows every line.
	topN int
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output, topN: DefaultTopN}
}

// formatKey renders a key byte as hex, followed by the character when it
// is printable.
func formatKey(key byte) string {
	if key >= 0x20 && strconv.IsPrint(rune(key)) {
		return fmt.Sprintf("0x%02x '%c'", key, key)
	}
	return fmt.Sprintf("0x%02x", key)
}

// statusText describes how a scan ended.
func statusText(summary *model.Summary) string {
	switch {
	case summary.TimedOut:
		return "Cancelled (partial results)"
	case summary.Error != "":
		return "Error - " + summary.Error
	case !summary.HasResult():
		return "No result"
	default:
		return "Complete"
	}
}

// truncateString truncates a string to maxLen runes with ellipsis.
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
