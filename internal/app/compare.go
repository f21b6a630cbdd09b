package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/fixforge/internal/analysis"
	"github.com/blackwell-systems/fixforge/internal/config"
	"github.com/blackwell-systems/fixforge/internal/output"
	"github.com/blackwell-systems/fixforge/internal/report"
	"github.com/blackwell-systems/fixforge/internal/rules"
)

var compareJSON bool

var compareCmd = &cobra.Command{
	Use:   "compare <before> <after>",
	Short: "Compare two files or revisions of a file",
	Long: `Compare analyzes both files with the same rule catalog and shows how
issue counts, scores, and complexity changed from the first to the second.
Scores improve upward; issue counts and cyclomatic complexity improve
downward.`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().BoolVar(&compareJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(compareCmd)
}

// compareDelta is one metric's before/after pair.
type compareDelta struct {
	Name           string  `json:"name"`
	Before         float64 `json:"before"`
	After          float64 `json:"after"`
	Delta          float64 `json:"delta"`
	HigherIsBetter bool    `json:"-"`
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	setupColor(cfg)

	analyzer := analysis.New(rules.Default(), newLogger())
	opts := analysis.DefaultOptions()

	before, err := analyzeFile(cmd, analyzer, args[0], opts)
	if err != nil {
		return err
	}
	after, err := analyzeFile(cmd, analyzer, args[1], opts)
	if err != nil {
		return err
	}

	deltas := compareReports(before, after)

	if compareJSON || flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"before": before,
			"after":  after,
			"deltas": deltas,
		})
	}

	renderCompare(args[0], args[1], deltas)
	return nil
}

func analyzeFile(cmd *cobra.Command, analyzer *analysis.Analyzer, path string, opts analysis.Options) (*report.Report, error) {
	unit, err := readUnit(path)
	if err != nil {
		return nil, err
	}
	rep, err := analyzer.Run(cmd.Context(), unit, opts)
	if err != nil {
		return nil, fmt.Errorf("analyzing %s: %w", path, err)
	}
	return rep, nil
}

func compareReports(before, after *report.Report) []compareDelta {
	metrics := []struct {
		name           string
		before, after  float64
		higherIsBetter bool
	}{
		{"total_issues", float64(before.TotalIssues), float64(after.TotalIssues), false},
		{"critical", float64(before.Critical), float64(after.Critical), false},
		{"security_score", float64(before.SecurityScore), float64(after.SecurityScore), true},
		{"performance_score", float64(before.PerformanceScore), float64(after.PerformanceScore), true},
		{"cyclomatic_complexity", float64(before.Complexity.Cyclomatic), float64(after.Complexity.Cyclomatic), false},
		{"maintainability_index", before.Complexity.Maintainability, after.Complexity.Maintainability, true},
	}

	deltas := make([]compareDelta, 0, len(metrics))
	for _, m := range metrics {
		deltas = append(deltas, compareDelta{
			Name:           m.name,
			Before:         m.before,
			After:          m.after,
			Delta:          m.after - m.before,
			HigherIsBetter: m.higherIsBetter,
		})
	}
	return deltas
}

func renderCompare(beforePath, afterPath string, deltas []compareDelta) {
	fmt.Println(output.Section(fmt.Sprintf("Compare: %s -> %s", beforePath, afterPath)))
	fmt.Println()

	tbl := output.NewTable("Metric", "Before", "After", "Trend")
	improved, regressed := 0, 0
	for _, d := range deltas {
		tbl.AddRow(
			d.Name,
			fmt.Sprintf("%.1f", d.Before),
			fmt.Sprintf("%.1f", d.After),
			output.TrendArrow(d.Delta, d.HigherIsBetter),
		)
		if d.Delta != 0 {
			if (d.Delta > 0) == d.HigherIsBetter {
				improved++
			} else {
				regressed++
			}
		}
	}
	tbl.Print()

	fmt.Println()
	switch {
	case regressed == 0 && improved > 0:
		fmt.Printf(" %s\n", output.StyleSuccess.Render(fmt.Sprintf("%d metric(s) improved, none regressed", improved)))
	case improved == 0 && regressed == 0:
		fmt.Printf(" %s\n", output.StyleMuted.Render("no change"))
	default:
		fmt.Printf(" %d metric(s) improved, %d regressed\n", improved, regressed)
	}
}
