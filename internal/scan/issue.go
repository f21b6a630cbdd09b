// Package scan runs the rule catalog over extracted line contexts. Categories
// are scanned concurrently; a fault in any single rule evaluation is isolated
// to that (rule, line) pair and never aborts the rest of the scan.
package scan

import "github.com/blackwell-systems/fixforge/internal/rules"

// Issue is one detected finding, addressed by 1-based line number.
type Issue struct {
	LineNumber   int            `json:"line_number"`
	Severity     rules.Severity `json:"severity"`
	IssueType    rules.Category `json:"issue_type"`
	Description  string         `json:"description"`
	CodeSnippet  string         `json:"code_snippet"`
	SuggestedFix string         `json:"suggested_fix,omitempty"`
	CWE          string         `json:"cwe_id,omitempty"`
	RuleID       string         `json:"rule_id"`

	// Delegable marks an issue whose rule has no deterministic fix template;
	// a caller may route it to an external fix model after analysis returns.
	Delegable bool `json:"-"`

	// Groups holds the pattern's submatches from the original line (index 0
	// is the whole match), recorded so fix templates expand against the full
	// text even when CodeSnippet is truncated. Nil for predicate rules.
	Groups []string `json:"-"`
}

// Fault records a single isolated rule evaluation failure. Faults are logged
// and surfaced on the scan result for diagnostics; they never appear in a
// report.
type Fault struct {
	RuleID string
	Line   int
	Reason string
}

// Result is the raw output of a scan before scoring and aggregation.
type Result struct {
	Issues []Issue
	Faults []Fault
}
