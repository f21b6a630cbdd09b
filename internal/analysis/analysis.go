// Package analysis ties extraction, scanning, scoring, and aggregation into
// one deterministic pipeline. A single Analyzer is safe for concurrent use.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/blackwell-systems/fixforge/internal/fix"
	"github.com/blackwell-systems/fixforge/internal/report"
	"github.com/blackwell-systems/fixforge/internal/rules"
	"github.com/blackwell-systems/fixforge/internal/scan"
	"github.com/blackwell-systems/fixforge/internal/score"
	"github.com/blackwell-systems/fixforge/internal/source"
)

// ErrInvalidInput reports a source unit that is empty or not decodable as
// text. It is the only analysis failure surfaced to callers; rule faults are
// absorbed during the scan.
var ErrInvalidInput = errors.New("invalid source input")

// Options selects which analysis categories run. The zero value runs
// nothing; use DefaultOptions for the full pipeline.
type Options struct {
	Syntax      bool `json:"syntax"`
	Security    bool `json:"security"`
	Performance bool `json:"performance"`
	CodeSmells  bool `json:"code_smells"`
	Complexity  bool `json:"complexity"`
	DeadCode    bool `json:"dead_code"`
	TypeHints   bool `json:"type_hints"`
}

// DefaultOptions enables every category.
func DefaultOptions() Options {
	return Options{
		Syntax:      true,
		Security:    true,
		Performance: true,
		CodeSmells:  true,
		Complexity:  true,
		DeadCode:    true,
		TypeHints:   true,
	}
}

// Categories maps the enabled options onto registry categories, in the
// registry's catalog order so scans stay deterministic.
func (o Options) Categories() []rules.Category {
	var cats []rules.Category
	if o.Security {
		cats = append(cats, rules.CategorySecurity)
	}
	if o.Performance {
		cats = append(cats, rules.CategoryPerformance)
	}
	if o.CodeSmells {
		cats = append(cats, rules.CategoryQuality)
	}
	if o.DeadCode {
		cats = append(cats, rules.CategoryDeadCode)
	}
	if o.TypeHints {
		cats = append(cats, rules.CategoryTypeHints)
	}
	if o.Syntax {
		cats = append(cats, rules.CategorySyntax)
	}
	return cats
}

// Analyzer runs the full pipeline over source units.
type Analyzer struct {
	reg    *rules.Registry
	engine *scan.Engine
	log    *slog.Logger
}

// New builds an Analyzer over a rule registry. A nil logger falls back to the
// process default.
func New(reg *rules.Registry, log *slog.Logger) *Analyzer {
	if log == nil {
		log = slog.Default()
	}
	return &Analyzer{
		reg:    reg,
		engine: scan.NewEngine(reg, log),
		log:    log,
	}
}

// Registry exposes the analyzer's rule catalog.
func (a *Analyzer) Registry() *rules.Registry { return a.reg }

// Run analyzes one source unit and returns its report. An invalid unit
// returns a failure report together with ErrInvalidInput; every other fault
// is isolated inside the scan and never aborts the run. Deterministic fix
// suggestions are already merged into the returned report; delegable issues
// are left for the caller to route to a fix model if desired.
func (a *Analyzer) Run(ctx context.Context, unit source.Unit, opts Options) (*report.Report, error) {
	if !unit.Valid() {
		return report.Failure(unit.FileName), ErrInvalidInput
	}

	contexts := source.Extract(unit)
	res, err := a.engine.Scan(ctx, contexts, opts.Categories())
	if err != nil {
		return nil, fmt.Errorf("analyzing %s: %w", unitName(unit), err)
	}
	if len(res.Faults) > 0 {
		a.log.Warn("rule faults during scan", "file", unit.FileName, "faults", len(res.Faults))
	}

	issues := fix.Suggest(a.reg, res.Issues)

	scores := score.Categories(issues)
	var cx score.ComplexityMetrics
	if opts.Complexity {
		cx = score.Complexity(contexts)
	}
	metrics := score.Metrics(contexts)

	return report.Aggregate(a.reg, unit.FileName, issues, scores, cx, metrics), nil
}

func unitName(unit source.Unit) string {
	if unit.FileName != "" {
		return unit.FileName
	}
	return "source"
}
