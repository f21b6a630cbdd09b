// Package report assembles scan output into the final analysis report and
// renders it as JSON, markdown, or styled terminal text.
package report

import (
	"fmt"
	"sort"

	"github.com/blackwell-systems/fixforge/internal/rules"
	"github.com/blackwell-systems/fixforge/internal/scan"
	"github.com/blackwell-systems/fixforge/internal/score"
)

// Report is the complete result of analyzing one source unit.
type Report struct {
	Success          bool                    `json:"success"`
	FileName         string                  `json:"file_name,omitempty"`
	TotalIssues      int                     `json:"total_issues"`
	Critical         int                     `json:"critical"`
	Errors           int                     `json:"errors"`
	Warnings         int                     `json:"warnings"`
	InfoCount        int                     `json:"info_count"`
	SecurityScore    int                     `json:"security_score"`
	PerformanceScore int                     `json:"performance_score"`
	Complexity       score.ComplexityMetrics `json:"complexity_metrics"`
	Metrics          score.CodeMetrics       `json:"metrics"`
	Issues           []scan.Issue            `json:"issues"`
	Summary          string                  `json:"summary"`
}

// Aggregate orders issues deterministically, tallies severity counts, and
// renders the fixed summary line. The issue sort key is (line ascending,
// severity descending, registry insertion order), so equal inputs always
// produce byte-identical reports.
func Aggregate(reg *rules.Registry, fileName string, issues []scan.Issue,
	scores score.CategoryScores, cx score.ComplexityMetrics, m score.CodeMetrics) *Report {

	sorted := make([]scan.Issue, len(issues))
	copy(sorted, issues)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.LineNumber != b.LineNumber {
			return a.LineNumber < b.LineNumber
		}
		if a.Severity.Rank() != b.Severity.Rank() {
			return a.Severity.Rank() > b.Severity.Rank()
		}
		return reg.Index(a.RuleID) < reg.Index(b.RuleID)
	})

	r := &Report{
		Success:          true,
		FileName:         fileName,
		TotalIssues:      len(sorted),
		SecurityScore:    scores.Security,
		PerformanceScore: scores.Performance,
		Complexity:       cx,
		Metrics:          m,
		Issues:           sorted,
	}
	for _, is := range sorted {
		switch is.Severity {
		case rules.SeverityCritical:
			r.Critical++
		case rules.SeverityError:
			r.Errors++
		case rules.SeverityWarning:
			r.Warnings++
		case rules.SeverityInfo:
			r.InfoCount++
		}
	}
	r.Summary = fmt.Sprintf("Found %d issues. Security score: %d/100. Performance score: %d/100",
		r.TotalIssues, r.SecurityScore, r.PerformanceScore)
	return r
}

// Failure is the report for a unit that could not be analyzed. Scores default
// to 100 since no category was scanned; the empty issue list stays non-nil so
// JSON renders an array, never null.
func Failure(fileName string) *Report {
	return &Report{
		Success:          false,
		FileName:         fileName,
		SecurityScore:    100,
		PerformanceScore: 100,
		Issues:           []scan.Issue{},
		Summary:          "Invalid source input: nothing to analyze",
	}
}

// HasFindings reports whether any issue was recorded.
func (r *Report) HasFindings() bool { return r.TotalIssues > 0 }

// BySeverity returns the report's issues of one severity, preserving order.
func (r *Report) BySeverity(sev rules.Severity) []scan.Issue {
	var out []scan.Issue
	for _, is := range r.Issues {
		if is.Severity == sev {
			out = append(out, is)
		}
	}
	return out
}
