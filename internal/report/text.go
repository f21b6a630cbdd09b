package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/blackwell-systems/fixforge/internal/output"
)

// TextWriter renders reports as styled terminal text. Styling degrades to
// plain text when color is disabled or stdout is not a terminal.
type TextWriter struct {
	baseWriter
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{baseWriter: newBaseWriter(w)}
}

// Write renders the full report.
func (w *TextWriter) Write(r *Report) (int, error) {
	var sb strings.Builder

	title := "Code Analysis"
	if r.FileName != "" {
		title += ": " + r.FileName
	}
	sb.WriteString(output.Section(title))
	sb.WriteString("\n")

	if !r.Success {
		sb.WriteString(" " + output.StyleError.Render(r.Summary) + "\n")
		return io.WriteString(w.output, sb.String())
	}

	sb.WriteString(" " + r.Summary + "\n\n")
	sb.WriteString(fmt.Sprintf(" %s %s\n",
		output.StyleBold.Render("Security   "),
		output.ScoreBar(float64(r.SecurityScore), 20)))
	sb.WriteString(fmt.Sprintf(" %s %s\n",
		output.StyleBold.Render("Performance"),
		output.ScoreBar(float64(r.PerformanceScore), 20)))

	if r.Complexity.Cyclomatic > 0 {
		sb.WriteString(fmt.Sprintf(" %s complexity %d, maintainability %.1f/100\n",
			output.StyleMuted.Render("Structure  "),
			r.Complexity.Cyclomatic, r.Complexity.Maintainability))
	}
	sb.WriteString(fmt.Sprintf(" %s %d code, %d comment, %d blank\n",
		output.StyleMuted.Render("Lines      "),
		r.Metrics.CodeLines, r.Metrics.CommentLines, r.Metrics.BlankLines))

	if r.HasFindings() {
		sb.WriteString(output.Section("Findings"))
		sb.WriteString("\n")
		tbl := output.NewTable("Severity", "Line", "Issue", "Fix")
		for _, is := range r.Issues {
			fix := is.SuggestedFix
			if fix == "" {
				fix = "-"
			}
			tbl.AddStyledRow(output.SeverityStyle(is.Severity),
				string(is.Severity),
				strconv.Itoa(is.LineNumber),
				issueLabel(is.Description, is.CWE),
				truncate(fix, 48),
			)
		}
		sb.WriteString(tbl.Render())
	}

	return io.WriteString(w.output, sb.String())
}

func issueLabel(desc, cwe string) string {
	if cwe == "" {
		return desc
	}
	return desc + " [" + cwe + "]"
}

// truncate shortens a string to maxLen with an ellipsis.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
