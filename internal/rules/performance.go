package rules

import (
	"strings"

	"github.com/blackwell-systems/fixforge/internal/source"
)

func performanceRules() []Rule {
	return []Rule{
		{
			ID:       "loop-concat",
			Category: CategoryPerformance,
			Severity: SeverityWarning,
			Match: func(lc *source.LineContext) bool {
				if !lc.Constructs.Has(source.ConstructLoopBody) ||
					!lc.Constructs.Has(source.ConstructAugAssignment) {
					return false
				}
				return strings.Contains(lc.Raw, "list") ||
					strings.Contains(lc.Raw, "array") ||
					strings.Contains(lc.Raw, "[]")
			},
			Description: "Inefficient list concatenation in loop",
			FixTemplate: "Use list.append() or a list comprehension",
		},
		{
			ID:       "string-concat",
			Category: CategoryPerformance,
			Severity: SeverityInfo,
			Match: func(lc *source.LineContext) bool {
				return strings.Count(lc.Raw, "+") > 2 &&
					lc.Constructs.Has(source.ConstructStringLiteral)
			},
			Description: "Multiple string concatenations",
			FixTemplate: `Use an f-string or str.join(): f"{a}{b}{c}"`,
		},
		{
			ID:       "global-statement",
			Category: CategoryPerformance,
			Severity: SeverityWarning,
			Match: func(lc *source.LineContext) bool {
				return lc.Constructs.Has(source.ConstructGlobal)
			},
			Description: "Global variable usage affects performance",
			FixTemplate: "Use local variables or pass values as parameters",
		},
	}
}
