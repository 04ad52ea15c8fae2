package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/xorscan/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SimpleWriter outputs human-readable text reports for terminal display.
type SimpleWriter struct {
	baseWriter

	// verbose adds the digest and performed steps to the header.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// WithTopN limits the ranking to n lines. 0 shows every line.
// Negative values are ignored.
func WithTopN(n int) SimpleWriterOption {
	return func(w *SimpleWriter) {
		if n >= 0 {
			w.topN = n
		}
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the full report in human-readable format.
func (w *SimpleWriter) Write(report *model.ScanReport) (int, error) {
	summary := model.NewSummary(report)

	var sb strings.Builder
	w.writeHeader(&sb, summary)
	if w.verbose {
		fmt.Fprintf(&sb, "Digest:       %s\n", report.SourceDigest)
		fmt.Fprintf(&sb, "Elapsed:      %s\n", report.Elapsed)
		fmt.Fprintf(&sb, "Steps:        %s\n", strings.Join(report.PerformedSteps, ", "))
	}
	sb.WriteString("\n")
	w.writeBest(&sb, summary)
	w.writeRanking(&sb, report.Ranking(w.topN))
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// WriteSummary outputs the summary in human-readable format.
func (w *SimpleWriter) WriteSummary(summary *model.Summary) (int, error) {
	var sb strings.Builder
	w.writeHeader(&sb, summary)
	sb.WriteString("\n")
	w.writeBest(&sb, summary)
	w.writeBreakdown(&sb, summary)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// WriteHistory outputs one line per stored scan, newest first as given.
func (w *SimpleWriter) WriteHistory(summaries []*model.Summary) (int, error) {
	var sb strings.Builder

	if len(summaries) == 0 {
		sb.WriteString("No scan history found.\n")
		return w.output.Write([]byte(sb.String()))
	}

	fmt.Fprintf(&sb, "%-36s  %-19s  %6s  %5s  %-10s  %s\n",
		"ID", "DATE", "LINES", "SCORE", "KEY", "SOURCE")
	for _, s := range summaries {
		score, key := "-", "-"
		if s.HasResult() {
			score = fmt.Sprintf("%d", s.BestScore)
			key = fmt.Sprintf("0x%02x", s.BestKey)
		}
		fmt.Fprintf(&sb, "%-36s  %-19s  %6d  %5s  %-10s  %s\n",
			s.ID,
			s.DateScanned.Format("2006-01-02 15:04:05"),
			s.LineCount,
			score,
			key,
			s.Source,
		)
	}

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with scan information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, summary *model.Summary) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                          XORSCAN REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "Source:       %s\n", summary.Source)
	fmt.Fprintf(sb, "Scan Date:    %s\n", summary.DateScanned.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(sb, "Lines:        %d\n", summary.LineCount)
	fmt.Fprintf(sb, "Encoding:     %s\n", summary.Encoding)
	fmt.Fprintf(sb, "Scorer:       %s\n", cases.Title(language.English).String(summary.Scorer))
	fmt.Fprintf(sb, "Status:       %s\n", statusText(summary))
}

// writeBest writes the winning candidate.
func (w *SimpleWriter) writeBest(sb *strings.Builder, summary *model.Summary) {
	writeSection(sb, "BEST CANDIDATE")

	if !summary.HasResult() {
		sb.WriteString("  No candidate found\n\n")
		return
	}

	fmt.Fprintf(sb, "  Line:       %d\n", summary.BestLine)
	fmt.Fprintf(sb, "  Key:        %s\n", formatKey(summary.BestKey))
	fmt.Fprintf(sb, "  Score:      %d\n", summary.BestScore)
	fmt.Fprintf(sb, "  Plaintext:  %q\n", summary.Plaintext)
	sb.WriteString("\n")
}

// writeRanking writes the top scoring lines.
func (w *SimpleWriter) writeRanking(sb *strings.Builder, ranked []model.LineResult) {
	if len(ranked) == 0 {
		return
	}

	writeSection(sb, fmt.Sprintf("TOP %d LINES", len(ranked)))

	for i, r := range ranked {
		text := "(unreadable)"
		if r.Valid {
			text = fmt.Sprintf("%q", truncateString(r.Text, 40))
		}
		fmt.Fprintf(sb, "  #%-3d line %-5d key 0x%02x  score %-5d %s\n",
			i+1, r.Line, r.Key, r.Score, text)
	}
	sb.WriteString("\n")
}

// writeBreakdown writes how the lines of a scan scored.
func (w *SimpleWriter) writeBreakdown(sb *strings.Builder, summary *model.Summary) {
	writeSection(sb, "LINE SCORES")

	fmt.Fprintf(sb, "  POSITIVE:     %d\n", summary.PositiveLines)
	fmt.Fprintf(sb, "  NON-POSITIVE: %d\n", summary.NonPositiveLines)
	fmt.Fprintf(sb, "  UNREADABLE:   %d\n", summary.UnreadableLines)
	sb.WriteString("\n")
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by xorscan\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}

func writeSection(sb *strings.Builder, title string) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")
}
