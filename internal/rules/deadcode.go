package rules

import "github.com/blackwell-systems/fixforge/internal/source"

func deadCodeRules() []Rule {
	return []Rule{
		{
			ID:       "unused-assignment",
			Category: CategoryDeadCode,
			Severity: SeverityInfo,
			Match: func(lc *source.LineContext) bool {
				return lc.Constructs.Has(source.ConstructUnusedAssignment)
			},
			Description: "Assigned name is never read",
			FixTemplate: "Remove the unused assignment or prefix the name with _",
		},
		{
			ID:       "unused-function",
			Category: CategoryDeadCode,
			Severity: SeverityInfo,
			Match: func(lc *source.LineContext) bool {
				return lc.Constructs.Has(source.ConstructUnusedFunction)
			},
			Description: "Function is never referenced",
			FixTemplate: "Remove the unused function or prefix its name with _",
		},
	}
}
