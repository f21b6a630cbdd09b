package fix

import (
	"context"
	"errors"

	"github.com/blackwell-systems/fixforge/internal/scan"
)

// Model is an injected capability that proposes a fix for a single issue.
// The analysis core never invokes it; callers apply it out-of-band to issues
// the deterministic templates could not cover.
type Model interface {
	Propose(ctx context.Context, issue scan.Issue) (string, error)
}

// ApplyModel asks the model for a proposal on every delegable issue that is
// still missing a suggested fix, merging answers in place. A failing proposal
// skips that issue and the rest continue; all failures are joined into the
// returned error. The count of merged proposals is returned either way.
func ApplyModel(ctx context.Context, m Model, issues []scan.Issue) (int, error) {
	if m == nil {
		return 0, nil
	}
	applied := 0
	var errs []error
	for i := range issues {
		is := &issues[i]
		if !is.Delegable || is.SuggestedFix != "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		proposal, err := m.Propose(ctx, *is)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if proposal != "" {
			is.SuggestedFix = proposal
			applied++
		}
	}
	return applied, errors.Join(errs...)
}
