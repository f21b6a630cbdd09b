package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/blackwell-systems/fixforge/internal/rules"
	"github.com/blackwell-systems/fixforge/internal/scan"
)

// MarkdownWriter renders reports as GitHub-flavored markdown, suitable for
// sharing in pull requests and documentation.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write renders the full report.
func (w *MarkdownWriter) Write(r *Report) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, r)
	w.writeSummary(md, r)
	w.writeMetrics(md, r)
	w.writeFindings(md, r)

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, r *Report) {
	md.H1("Code Analysis Report")
	md.PlainText("")

	name := r.FileName
	if name == "" {
		name = "(inline source)"
	}
	status := "✅ Complete"
	if !r.Success {
		status = "❌ Failed - invalid input"
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Source", "`" + name + "`"},
			{"Status", status},
			{"Security Score", fmt.Sprintf("%d/100", r.SecurityScore)},
			{"Performance Score", fmt.Sprintf("%d/100", r.PerformanceScore)},
		},
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, r *Report) {
	md.H2("Severity Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Severity", "Count"},
		Rows: [][]string{
			{"🔴 Critical", strconv.Itoa(r.Critical)},
			{"🟠 Error", strconv.Itoa(r.Errors)},
			{"🟡 Warning", strconv.Itoa(r.Warnings)},
			{"⚪ Info", strconv.Itoa(r.InfoCount)},
			{"**Total**", "**" + strconv.Itoa(r.TotalIssues) + "**"},
		},
	})
	md.PlainText("")

	switch {
	case r.Critical > 0:
		md.Cautionf("Critical issues detected! %d finding(s) require immediate attention.", r.Critical)
	case r.Errors > 0:
		md.Warningf("%d error-level finding(s) should be addressed.", r.Errors)
	case r.HasFindings():
		md.Note("Only warning and informational findings detected.")
	default:
		md.Tip("No issues detected.")
	}
	md.PlainText("")
}

func (w *MarkdownWriter) writeMetrics(md *markdown.Markdown, r *Report) {
	md.H2("Code Metrics")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Total lines", strconv.Itoa(r.Metrics.TotalLines)},
			{"Code lines", strconv.Itoa(r.Metrics.CodeLines)},
			{"Comment lines", strconv.Itoa(r.Metrics.CommentLines)},
			{"Blank lines", strconv.Itoa(r.Metrics.BlankLines)},
			{"Code/comment ratio", fmt.Sprintf("%.2f", r.Metrics.CodeToCommentRatio)},
			{"Cyclomatic complexity", strconv.Itoa(r.Complexity.Cyclomatic)},
			{"Maintainability index", fmt.Sprintf("%.1f/100", r.Complexity.Maintainability)},
		},
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeFindings(md *markdown.Markdown, r *Report) {
	md.H2("Findings")
	md.PlainText("")

	if !r.HasFindings() {
		md.PlainText("No findings.")
		md.PlainText("")
		return
	}

	severities := []struct {
		level  rules.Severity
		header string
	}{
		{rules.SeverityCritical, "### 🔴 Critical"},
		{rules.SeverityError, "### 🟠 Error"},
		{rules.SeverityWarning, "### 🟡 Warning"},
		{rules.SeverityInfo, "### ⚪ Info"},
	}
	for _, sev := range severities {
		issues := r.BySeverity(sev.level)
		if len(issues) == 0 {
			continue
		}
		md.PlainText(sev.header)
		md.PlainText("")
		for _, is := range issues {
			w.writeIssue(md, is)
		}
	}
}

func (w *MarkdownWriter) writeIssue(md *markdown.Markdown, is scan.Issue) {
	title := fmt.Sprintf("Line %d: %s", is.LineNumber, is.Description)
	if is.CWE != "" {
		title += " (" + is.CWE + ")"
	}
	md.PlainText("**" + title + "**")
	md.PlainText("")
	if is.CodeSnippet != "" {
		md.CodeBlocks(markdown.SyntaxHighlightPython, is.CodeSnippet)
	}
	if is.SuggestedFix != "" {
		md.PlainTextf("Suggested fix: %s", is.SuggestedFix)
	}
	md.PlainText("")
}
