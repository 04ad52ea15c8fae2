package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/nao1215/xorscan/internal/model"
)

// MarkdownWriter outputs reports in Markdown format for documentation and
// sharing. Line scores are drawn as a mermaid pie chart.
type MarkdownWriter struct {
	baseWriter
}

// MarkdownWriterOption configures a MarkdownWriter.
type MarkdownWriterOption func(*MarkdownWriter)

// WithMarkdownTopN limits the ranking table to n lines. 0 shows every line.
// Negative values are ignored.
func WithMarkdownTopN(n int) MarkdownWriterOption {
	return func(w *MarkdownWriter) {
		if n >= 0 {
			w.topN = n
		}
	}
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer, opts ...MarkdownWriterOption) *MarkdownWriter {
	w := &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the full report in Markdown format.
func (w *MarkdownWriter) Write(report *model.ScanReport) (int, error) {
	summary := model.NewSummary(report)
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, summary)
	w.writeBest(md, summary)
	w.writeScores(md, summary)
	w.writeRanking(md, report.Ranking(w.topN))
	if len(report.PerformedSteps) > 0 {
		md.Details("Scan details", fmt.Sprintf("Digest: %s, steps: %v, elapsed: %s",
			report.SourceDigest, report.PerformedSteps, report.Elapsed))
		md.PlainText("")
	}
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteSummary outputs the summary in Markdown format.
func (w *MarkdownWriter) WriteSummary(summary *model.Summary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, summary)
	w.writeBest(md, summary)
	w.writeScores(md, summary)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteHistory outputs the summaries as a table.
func (w *MarkdownWriter) WriteHistory(summaries []*model.Summary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("xorscan History")
	md.PlainText("")

	if len(summaries) == 0 {
		md.Note("No scan history found.")
		return len(md.String()), md.Build()
	}

	rows := make([][]string, len(summaries))
	for i, s := range summaries {
		score, key := "-", "-"
		if s.HasResult() {
			score = strconv.Itoa(s.BestScore)
			key = fmt.Sprintf("`0x%02x`", s.BestKey)
		}
		rows[i] = []string{
			"`" + s.ID + "`",
			s.DateScanned.Format("2006-01-02 15:04:05"),
			"`" + s.Source + "`",
			strconv.Itoa(s.LineCount),
			score,
			key,
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"ID", "Date", "Source", "Lines", "Score", "Key"},
		Rows:   rows,
	})
	md.PlainText("")

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with scan information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, summary *model.Summary) {
	md.H1("xorscan Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Source", "`" + summary.Source + "`"},
			{"Scan Date", summary.DateScanned.Format("2006-01-02 15:04:05 MST")},
			{"Lines", strconv.Itoa(summary.LineCount)},
			{"Encoding", summary.Encoding},
			{"Scorer", summary.Scorer},
			{"Status", statusText(summary)},
		},
	})
	md.PlainText("")
}

// writeBest writes the winning candidate and an alert describing the outcome.
func (w *MarkdownWriter) writeBest(md *markdown.Markdown, summary *model.Summary) {
	md.H2("Best Candidate")
	md.PlainText("")

	switch {
	case summary.TimedOut:
		md.Warningf("The scan was cancelled. Results cover %d line(s) at most.", summary.LineCount)
		md.PlainText("")
	case summary.Error != "":
		md.Cautionf("The scan failed: %s", summary.Error)
		md.PlainText("")
	}

	if !summary.HasResult() {
		md.Note("No candidate found.")
		md.PlainText("")
		return
	}

	md.Table(markdown.TableSet{
		Header: []string{"Line", "Key", "Score"},
		Rows: [][]string{
			{
				strconv.Itoa(summary.BestLine),
				"`" + markdownKey(summary.BestKey) + "`",
				strconv.Itoa(summary.BestScore),
			},
		},
	})
	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightText, summary.Plaintext)
	md.PlainText("")
	md.Tip(fmt.Sprintf("Line %d decrypts with key %s.", summary.BestLine, markdownKey(summary.BestKey)))
	md.PlainText("")
}

// codeCell renders s as a code span that stays inside one table cell.
// Pipes are escaped and a span containing backticks uses a longer fence.
func codeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	if strings.Contains(s, "`") {
		return "`` " + s + " ``"
	}
	return "`" + s + "`"
}

// markdownKey is formatKey without the character form for keys that would
// end a table cell or a code span.
func markdownKey(key byte) string {
	if key == '|' || key == '`' {
		return fmt.Sprintf("0x%02x", key)
	}
	return formatKey(key)
}

// writeScores writes a mermaid pie chart of how the lines scored.
func (w *MarkdownWriter) writeScores(md *markdown.Markdown, summary *model.Summary) {
	total := summary.PositiveLines + summary.NonPositiveLines + summary.UnreadableLines
	if total == 0 {
		return
	}

	md.H2("Line Scores")
	md.PlainText("")

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Best Score per Line"),
		piechart.WithShowData(true),
	)
	if summary.PositiveLines > 0 {
		chart.LabelAndIntValue("Positive", uint64(summary.PositiveLines)) //nolint:gosec // counts are non-negative
	}
	if summary.NonPositiveLines > 0 {
		chart.LabelAndIntValue("Zero or negative", uint64(summary.NonPositiveLines)) //nolint:gosec // counts are non-negative
	}
	if summary.UnreadableLines > 0 {
		chart.LabelAndIntValue("Unreadable", uint64(summary.UnreadableLines)) //nolint:gosec // counts are non-negative
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeRanking writes the top scoring lines as a table.
func (w *MarkdownWriter) writeRanking(md *markdown.Markdown, ranked []model.LineResult) {
	if len(ranked) == 0 {
		return
	}

	md.H2(fmt.Sprintf("Top %d Lines", len(ranked)))
	md.PlainText("")

	rows := make([][]string, len(ranked))
	for i, r := range ranked {
		text := "-"
		if r.Valid {
			text = codeCell(strconv.Quote(truncateString(r.Text, 40)))
		}
		rows[i] = []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(r.Line),
			fmt.Sprintf("`0x%02x`", r.Key),
			strconv.Itoa(r.Score),
			text,
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Rank", "Line", "Key", "Score", "Plaintext"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Report generated by xorscan*")
}
