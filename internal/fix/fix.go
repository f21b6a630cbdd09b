// Package fix derives suggested fixes for scanned issues. Rules with a fix
// template produce suggestions deterministically; the rest can be delegated
// to an external model, strictly after analysis has returned.
package fix

import (
	"github.com/blackwell-systems/fixforge/internal/rules"
	"github.com/blackwell-systems/fixforge/internal/scan"
)

// Suggest fills SuggestedFix on every issue whose rule carries a template.
// Pattern rule templates expand the capture groups the scan recorded from the
// full line text; the truncated code snippet is never re-matched. Issues
// without a template are left for model delegation. The slice is updated in
// place and returned.
func Suggest(reg *rules.Registry, issues []scan.Issue) []scan.Issue {
	for i := range issues {
		is := &issues[i]
		if is.SuggestedFix != "" {
			continue
		}
		rule, ok := reg.Lookup(is.RuleID)
		if !ok || rule.FixTemplate == "" {
			continue
		}
		is.SuggestedFix = rules.Expand(rule.FixTemplate, is.Groups)
	}
	return issues
}
