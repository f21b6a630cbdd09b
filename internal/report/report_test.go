package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/fixforge/internal/output"
	"github.com/blackwell-systems/fixforge/internal/rules"
	"github.com/blackwell-systems/fixforge/internal/scan"
	"github.com/blackwell-systems/fixforge/internal/score"
)

func sampleIssues() []scan.Issue {
	return []scan.Issue{
		{LineNumber: 9, Severity: rules.SeverityInfo, IssueType: rules.CategoryQuality, RuleID: "long-line", Description: "Line too long (>120 characters)"},
		{LineNumber: 2, Severity: rules.SeverityWarning, IssueType: rules.CategorySecurity, RuleID: "weak-crypto", Description: "Weak cryptographic algorithm", CWE: "CWE-327"},
		{LineNumber: 2, Severity: rules.SeverityCritical, IssueType: rules.CategorySecurity, RuleID: "eval-usage", Description: "Dangerous eval() usage", CWE: "CWE-95"},
		{LineNumber: 2, Severity: rules.SeverityCritical, IssueType: rules.CategorySecurity, RuleID: "sql-injection", Description: "SQL injection vulnerability detected", CWE: "CWE-89"},
	}
}

func TestAggregateOrdering(t *testing.T) {
	r := Aggregate(rules.Default(), "app.py", sampleIssues(),
		score.CategoryScores{Security: 45, Performance: 100},
		score.ComplexityMetrics{}, score.CodeMetrics{})

	require.Len(t, r.Issues, 4)

	// Line ascending first; within line 2 severity descending; within equal
	// severity the registry insertion order (sql-injection before eval-usage).
	assert.Equal(t, "sql-injection", r.Issues[0].RuleID)
	assert.Equal(t, "eval-usage", r.Issues[1].RuleID)
	assert.Equal(t, "weak-crypto", r.Issues[2].RuleID)
	assert.Equal(t, "long-line", r.Issues[3].RuleID)
}

func TestAggregateCountsAndSummary(t *testing.T) {
	r := Aggregate(rules.Default(), "", sampleIssues(),
		score.CategoryScores{Security: 45, Performance: 100},
		score.ComplexityMetrics{}, score.CodeMetrics{})

	assert.True(t, r.Success)
	assert.Equal(t, 4, r.TotalIssues)
	assert.Equal(t, 2, r.Critical)
	assert.Equal(t, 0, r.Errors)
	assert.Equal(t, 1, r.Warnings)
	assert.Equal(t, 1, r.InfoCount)
	assert.Equal(t, "Found 4 issues. Security score: 45/100. Performance score: 100/100", r.Summary)
}

func TestAggregateEmpty(t *testing.T) {
	r := Aggregate(rules.Default(), "clean.py", nil,
		score.CategoryScores{Security: 100, Performance: 100},
		score.ComplexityMetrics{}, score.CodeMetrics{})

	assert.True(t, r.Success)
	assert.NotNil(t, r.Issues)
	assert.Empty(t, r.Issues)
	assert.False(t, r.HasFindings())
}

func TestFailureReport(t *testing.T) {
	r := Failure("bad.bin")

	assert.False(t, r.Success)
	assert.NotNil(t, r.Issues)
	assert.Equal(t, 100, r.SecurityScore)
	assert.Equal(t, 100, r.PerformanceScore)
}

func TestJSONWriter(t *testing.T) {
	r := Aggregate(rules.Default(), "app.py", sampleIssues(),
		score.CategoryScores{Security: 45, Performance: 100},
		score.ComplexityMetrics{Cyclomatic: 3, Maintainability: 80},
		score.CodeMetrics{TotalLines: 10, CodeLines: 8})

	var buf bytes.Buffer
	n, err := NewJSONWriter(&buf).Write(r)
	require.NoError(t, err)
	assert.Equal(t, buf.Len(), n)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, true, decoded["success"])
	assert.Equal(t, float64(4), decoded["total_issues"])

	issues, ok := decoded["issues"].([]any)
	require.True(t, ok, "issues must encode as an array")
	first := issues[0].(map[string]any)
	assert.Equal(t, "CWE-89", first["cwe_id"])
	assert.Equal(t, float64(2), first["line_number"])
	_, hasFix := first["suggested_fix"]
	assert.False(t, hasFix, "empty suggested_fix must be omitted")
}

func TestJSONWriterFailureIssuesArray(t *testing.T) {
	var buf bytes.Buffer
	_, err := NewJSONWriter(&buf).Write(Failure(""))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"issues":[]`)
}

func TestMarkdownWriter(t *testing.T) {
	r := Aggregate(rules.Default(), "app.py", sampleIssues(),
		score.CategoryScores{Security: 45, Performance: 100},
		score.ComplexityMetrics{Cyclomatic: 3, Maintainability: 80},
		score.CodeMetrics{TotalLines: 10, CodeLines: 8, CommentLines: 1, BlankLines: 1})

	var buf bytes.Buffer
	_, err := NewMarkdownWriter(&buf).Write(r)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "# Code Analysis Report")
	assert.Contains(t, out, "Severity Summary")
	assert.Contains(t, out, "SQL injection vulnerability detected")
	assert.Contains(t, out, "CWE-89")
	assert.Contains(t, out, "45/100")
}

func TestTextWriter(t *testing.T) {
	output.SetNoColor(true)
	defer output.SetNoColor(false)

	r := Aggregate(rules.Default(), "app.py", sampleIssues(),
		score.CategoryScores{Security: 45, Performance: 100},
		score.ComplexityMetrics{Cyclomatic: 3, Maintainability: 80},
		score.CodeMetrics{TotalLines: 10, CodeLines: 8})

	var buf bytes.Buffer
	_, err := NewTextWriter(&buf).Write(r)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, r.Summary)
	assert.Contains(t, out, "critical")
	assert.Contains(t, out, "SQL injection vulnerability detected [CWE-89]")
	assert.NotContains(t, out, "\x1b[", "color disabled output must be plain")
}

func TestMultiWriter(t *testing.T) {
	var a, b bytes.Buffer
	mw := NewMultiWriter(NewJSONWriter(&a), NewMarkdownWriter(&b))

	_, err := mw.Write(Failure("x.py"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(a.String(), "{"))
	assert.Contains(t, b.String(), "Code Analysis Report")
}
