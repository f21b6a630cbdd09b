// Package score turns scan results and line contexts into numeric quality
// signals: per-category scores, cyclomatic complexity, a maintainability
// index, and raw line metrics. All computations are pure and deterministic.
package score

import (
	"math"
	"regexp"

	"github.com/blackwell-systems/fixforge/internal/rules"
	"github.com/blackwell-systems/fixforge/internal/scan"
	"github.com/blackwell-systems/fixforge/internal/source"
)

// Weight returns the penalty a single issue of the given severity subtracts
// from its category score.
func Weight(sev rules.Severity) int {
	switch sev {
	case rules.SeverityCritical:
		return 25
	case rules.SeverityError:
		return 15
	case rules.SeverityWarning:
		return 5
	case rules.SeverityInfo:
		return 1
	default:
		return 0
	}
}

// CategoryScores are the 0-100 scores for the scored categories. An input
// with no issues in a category scores a full 100.
type CategoryScores struct {
	Security    int `json:"security_score"`
	Performance int `json:"performance_score"`
}

// Categories computes severity-weighted scores from scanned issues. Penalty
// sums are clamped into [0,100]; they never go negative.
func Categories(issues []scan.Issue) CategoryScores {
	var secPenalty, perfPenalty int
	for _, is := range issues {
		switch is.IssueType {
		case rules.CategorySecurity:
			secPenalty += Weight(is.Severity)
		case rules.CategoryPerformance:
			perfPenalty += Weight(is.Severity)
		}
	}
	return CategoryScores{
		Security:    clampScore(100 - secPenalty),
		Performance: clampScore(100 - perfPenalty),
	}
}

// ComplexityMetrics hold the unit-level structural measurements.
type ComplexityMetrics struct {
	Cyclomatic      int     `json:"cyclomatic_complexity"`
	Maintainability float64 `json:"maintainability_index"`
}

// CodeMetrics are the raw line counts of a unit.
type CodeMetrics struct {
	TotalLines         int     `json:"total_lines"`
	CodeLines          int     `json:"code_lines"`
	CommentLines       int     `json:"comment_lines"`
	BlankLines         int     `json:"blank_lines"`
	CodeToCommentRatio float64 `json:"code_to_comment_ratio"`
}

var wordRe = regexp.MustCompile(`\w+`)

// Complexity computes cyclomatic complexity and the maintainability index.
// Cyclomatic complexity is 1 plus the unit's decision points. The index uses
// a token-count proxy for Halstead volume: V = T*log2(D) with T total word
// tokens and D distinct tokens over code lines, scaled onto 0-100.
func Complexity(contexts []source.LineContext) ComplexityMetrics {
	cc := 1
	loc := 0
	total := 0
	distinct := make(map[string]struct{})
	for i := range contexts {
		lc := &contexts[i]
		cc += lc.Decisions
		if lc.Constructs.Has(source.ConstructBlank) || lc.Constructs.Has(source.ConstructComment) {
			continue
		}
		loc++
		for _, w := range wordRe.FindAllString(lc.Raw, -1) {
			total++
			distinct[w] = struct{}{}
		}
	}

	return ComplexityMetrics{
		Cyclomatic:      cc,
		Maintainability: maintainability(total, len(distinct), cc, loc),
	}
}

// maintainability evaluates the classic index clamped into [0,171] and
// rescaled to 0-100. Degenerate inputs (no code, or too few distinct tokens
// for a positive volume) score a full 100.
func maintainability(totalTokens, distinctTokens, cc, loc int) float64 {
	if loc == 0 || distinctTokens < 2 {
		return 100
	}
	volume := float64(totalTokens) * math.Log2(float64(distinctTokens))
	mi := 171 - 5.2*math.Log(volume) - 0.23*float64(cc) - 16.2*math.Log(float64(loc))
	if mi < 0 {
		mi = 0
	} else if mi > 171 {
		mi = 171
	}
	return mi * 100 / 171
}

// Metrics counts the unit's line classes. The ratio divides code lines by
// the non-code remainder, floored at one to stay defined for all-code units.
func Metrics(contexts []source.LineContext) CodeMetrics {
	m := CodeMetrics{TotalLines: len(contexts)}
	for i := range contexts {
		switch {
		case contexts[i].Constructs.Has(source.ConstructBlank):
			m.BlankLines++
		case contexts[i].Constructs.Has(source.ConstructComment):
			m.CommentLines++
		default:
			m.CodeLines++
		}
	}
	rest := m.TotalLines - m.CodeLines
	if rest < 1 {
		rest = 1
	}
	m.CodeToCommentRatio = float64(m.CodeLines) / float64(rest)
	return m
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
