package scan

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/blackwell-systems/fixforge/internal/rules"
	"github.com/blackwell-systems/fixforge/internal/source"
)

const (
	// snippetMaxLen is the longest trimmed line stored verbatim as a snippet.
	snippetMaxLen = 120

	// snippetKeepLen is how much of an over-long line the snippet keeps.
	snippetKeepLen = 50
)

// Engine evaluates registry rules against a source unit. It holds no mutable
// state across scans and is safe for concurrent use.
type Engine struct {
	reg *rules.Registry
	log *slog.Logger
}

// NewEngine builds an engine over a registry. A nil logger falls back to the
// process default.
func NewEngine(reg *rules.Registry, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{reg: reg, log: log}
}

// Scan evaluates every rule of the enabled categories against every line.
// Categories run concurrently; issue order within the result follows the
// requested category order, so the output is deterministic for a given input
// and category list. The caller extracts contexts once and may reuse them for
// scoring.
func (e *Engine) Scan(ctx context.Context, contexts []source.LineContext, cats []rules.Category) (Result, error) {
	perCat := make([]Result, len(cats))
	g, ctx := errgroup.WithContext(ctx)
	for i, cat := range cats {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			perCat[i] = e.scanCategory(cat, contexts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, fmt.Errorf("scan: %w", err)
	}

	var out Result
	for _, r := range perCat {
		out.Issues = append(out.Issues, r.Issues...)
		out.Faults = append(out.Faults, r.Faults...)
	}
	return out, nil
}

// scanCategory runs one category's rules over all lines.
func (e *Engine) scanCategory(cat rules.Category, contexts []source.LineContext) Result {
	var res Result
	for _, rule := range e.reg.RulesFor(cat) {
		for i := range contexts {
			lc := &contexts[i]
			issue, matched, fault := e.evalRule(rule, lc)
			if fault != nil {
				res.Faults = append(res.Faults, *fault)
				continue
			}
			if matched {
				res.Issues = append(res.Issues, issue)
			}
		}
	}
	return res
}

// evalRule evaluates a single rule against a single line. A panic inside the
// matcher is recovered, logged, and reported as a Fault for that (rule, line)
// pair only.
func (e *Engine) evalRule(rule rules.Rule, lc *source.LineContext) (issue Issue, matched bool, fault *Fault) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("rule evaluation fault",
				"rule", rule.ID,
				"line", lc.Number,
				"reason", fmt.Sprint(r))
			issue, matched = Issue{}, false
			fault = &Fault{RuleID: rule.ID, Line: lc.Number, Reason: fmt.Sprint(r)}
		}
	}()

	var groups []string
	switch {
	case rule.Pattern != nil:
		groups = rule.Pattern.FindStringSubmatch(lc.Raw)
		if groups == nil {
			return Issue{}, false, nil
		}
	case rule.Match != nil:
		if !rule.Match(lc) {
			return Issue{}, false, nil
		}
	default:
		return Issue{}, false, nil
	}

	return Issue{
		LineNumber:  lc.Number,
		Severity:    rule.Severity,
		IssueType:   rule.Category,
		Description: rules.Expand(rule.Description, groups),
		CodeSnippet: snippet(lc.Raw),
		CWE:         rule.CWE,
		RuleID:      rule.ID,
		Delegable:   rule.FixTemplate == "",
		Groups:      groups,
	}, true, nil
}

// snippet trims the line and truncates very long ones on a rune boundary.
func snippet(raw string) string {
	s := strings.TrimSpace(raw)
	if len(s) <= snippetMaxLen {
		return s
	}
	cut := snippetKeepLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
