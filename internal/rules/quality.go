package rules

import (
	"regexp"
	"strings"

	"github.com/blackwell-systems/fixforge/internal/source"
)

var magicNumberRe = regexp.MustCompile(`\b\d{4,}\b`)

func qualityRules() []Rule {
	return []Rule{
		{
			ID:       "long-line",
			Category: CategoryQuality,
			Severity: SeverityInfo,
			Match: func(lc *source.LineContext) bool {
				return len(lc.Raw) > 120
			},
			Description: "Line too long (>120 characters)",
			FixTemplate: "Break into multiple lines or refactor",
		},
		{
			ID:       "magic-number",
			Category: CategoryQuality,
			Severity: SeverityInfo,
			Match: func(lc *source.LineContext) bool {
				if lc.Constructs.Has(source.ConstructReturn) ||
					lc.Constructs.Has(source.ConstructComment) {
					return false
				}
				return magicNumberRe.MatchString(source.StripStrings(lc.Raw))
			},
			Description: "Magic number detected",
			FixTemplate: "Define as a named constant: MAX_RETRIES = 1000",
		},
		{
			ID:       "commented-code",
			Category: CategoryQuality,
			Severity: SeverityInfo,
			Match: func(lc *source.LineContext) bool {
				return lc.Constructs.Has(source.ConstructComment) &&
					strings.ContainsAny(lc.Raw, "()=.")
			},
			Description: "Commented-out code",
			FixTemplate: "Remove commented code; rely on version control",
		},
		{
			ID:       "multi-statement",
			Category: CategoryQuality,
			Severity: SeverityWarning,
			Match: func(lc *source.LineContext) bool {
				return !lc.Constructs.Has(source.ConstructComment) &&
					strings.Contains(source.StripStrings(lc.Raw), ";")
			},
			Description: "Multiple statements on one line",
			FixTemplate: "Put each statement on its own line",
		},
		{
			ID:       "broad-except",
			Category: CategoryQuality,
			Severity: SeverityInfo,
			Match: func(lc *source.LineContext) bool {
				if !lc.Constructs.Has(source.ConstructExceptionHandler) {
					return false
				}
				trimmed := strings.TrimSpace(lc.Raw)
				return trimmed == "except:" || strings.HasPrefix(trimmed, "except Exception")
			},
			Description: "Broad exception handler",
			FixTemplate: "Catch the specific exception types the block can raise",
		},
	}
}
