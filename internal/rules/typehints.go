package rules

import (
	"strings"

	"github.com/blackwell-systems/fixforge/internal/source"
)

func typeHintRules() []Rule {
	return []Rule{
		{
			ID:       "missing-type-hints",
			Category: CategoryTypeHints,
			Severity: SeverityInfo,
			Match: func(lc *source.LineContext) bool {
				if !lc.Constructs.Has(source.ConstructFunctionDef) {
					return false
				}
				if strings.Contains(lc.Raw, "->") {
					return false
				}
				// Parameter annotations count as hints.
				open := strings.Index(lc.Raw, "(")
				end := strings.LastIndex(lc.Raw, ")")
				if open < 0 || end < open {
					return false
				}
				return !strings.Contains(lc.Raw[open+1:end], ":")
			},
			Description: "Function missing type hints",
			FixTemplate: "def function(param: str) -> int:",
		},
	}
}
