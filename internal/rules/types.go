// Package rules defines the immutable detection rule catalog. Rules are
// loaded once into a Registry and never mutated afterward; each rule is a
// pure function from a line's structural facts to zero or one match.
package rules

import (
	"regexp"

	"github.com/blackwell-systems/fixforge/internal/source"
)

// Category classifies what kind of problem a rule detects.
type Category string

// Rule categories. The complexity category exists in options but carries no
// detection rules; it gates metric computation in the scoring engine.
const (
	CategorySecurity    Category = "security"
	CategoryPerformance Category = "performance"
	CategoryQuality     Category = "quality"
	CategoryComplexity  Category = "complexity"
	CategoryDeadCode    Category = "dead_code"
	CategoryTypeHints   Category = "type_hints"
	CategorySyntax      Category = "syntax"
)

// Severity is the ordered priority of an issue: critical > error > warning > info.
type Severity string

// Severity levels.
const (
	SeverityCritical Severity = "critical"
	SeverityError    Severity = "error"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Rank returns a numeric rank for ordering; higher is more severe.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityError:
		return 3
	case SeverityWarning:
		return 2
	case SeverityInfo:
		return 1
	default:
		return 0
	}
}

// Predicate is a structural matcher evaluated against a line's extracted
// facts. Returning true yields an issue with the rule's fixed description.
type Predicate func(lc *source.LineContext) bool

// Rule is a single immutable detection definition. Exactly one of Pattern or
// Match is set: Pattern rules run a regular expression over the raw line text
// and may reference capture groups in templates, Match rules evaluate a
// structural predicate over the line's construct tags.
type Rule struct {
	// ID uniquely identifies the rule within the registry.
	ID string

	// Category groups the rule for enable/disable decisions.
	Category Category

	// Severity assigned to issues produced by this rule.
	Severity Severity

	// Pattern matches against the raw line text when non-nil.
	Pattern *regexp.Regexp

	// Match evaluates structural facts when non-nil.
	Match Predicate

	// CWE is the Common Weakness Enumeration identifier, empty when the rule
	// does not map to a weakness class.
	CWE string

	// Description is the issue text. It may contain %N placeholders expanded
	// from the pattern's capture groups (see Expand).
	Description string

	// FixTemplate deterministically derives a suggested fix when non-empty.
	// %N expands capture group N, %UN its upper-cased form. Rules without a
	// template produce issues that are delegable to an external fix model.
	FixTemplate string
}
