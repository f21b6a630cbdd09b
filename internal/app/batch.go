package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/blackwell-systems/fixforge/internal/analysis"
	"github.com/blackwell-systems/fixforge/internal/config"
	"github.com/blackwell-systems/fixforge/internal/output"
	"github.com/blackwell-systems/fixforge/internal/report"
	"github.com/blackwell-systems/fixforge/internal/rules"
)

var (
	batchSave bool
	batchJSON bool
)

var batchCmd = &cobra.Command{
	Use:   "batch <file>...",
	Short: "Analyze many files and summarize results",
	Long: `Batch analyzes each file concurrently and prints a per-file summary
table with issue counts and scores. Files that cannot be read or contain no
analyzable text are reported and skipped; the rest still complete.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().BoolVar(&batchSave, "save", false, "Save all reports under one history snapshot")
	batchCmd.Flags().BoolVar(&batchJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(batchCmd)
}

// batchResult pairs a file path with its report or failure.
type batchResult struct {
	Path   string         `json:"path"`
	Report *report.Report `json:"report,omitempty"`
	Err    string         `json:"error,omitempty"`
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	setupColor(cfg)

	analyzer := analysis.New(rules.Default(), newLogger())
	opts := analysisOptions(cmd, cfg)

	// Results are indexed by argument position so output order matches the
	// command line regardless of completion order.
	results := make([]batchResult, len(args))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(runtime.NumCPU())
	for i, path := range args {
		g.Go(func() error {
			results[i] = analyzeOne(ctx, analyzer, path, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if batchJSON || flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return err
		}
	} else {
		renderBatchTable(results)
	}

	if batchSave {
		var reports []*report.Report
		for _, r := range results {
			if r.Report != nil && r.Report.Success {
				reports = append(reports, r.Report)
			}
		}
		if len(reports) > 0 {
			if err := saveReports("batch", reports...); err != nil {
				return err
			}
		}
	}

	if failed := countFailed(results); failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	return nil
}

func analyzeOne(ctx context.Context, analyzer *analysis.Analyzer, path string, opts analysis.Options) batchResult {
	res := batchResult{Path: path}
	unit, err := readUnit(path)
	if err != nil {
		res.Err = err.Error()
		return res
	}
	rep, err := analyzer.Run(ctx, unit, opts)
	if err != nil && !errors.Is(err, analysis.ErrInvalidInput) {
		res.Err = err.Error()
		return res
	}
	res.Report = rep
	if err != nil {
		res.Err = err.Error()
	}
	return res
}

func renderBatchTable(results []batchResult) {
	fmt.Println(output.Section("Batch Analysis"))
	fmt.Println()

	tbl := output.NewTable("File", "Issues", "Critical", "Security", "Performance")
	var totalIssues, totalCritical int
	for _, r := range results {
		if r.Report == nil || !r.Report.Success {
			tbl.AddStyledRow(output.StyleError, r.Path, "-", "-", "-", "-")
			continue
		}
		rep := r.Report
		style := output.StyleSuccess
		if rep.Critical > 0 {
			style = output.StyleCritical
		} else if rep.TotalIssues > 0 {
			style = output.StyleWarning
		}
		tbl.AddStyledRow(style,
			r.Path,
			strconv.Itoa(rep.TotalIssues),
			strconv.Itoa(rep.Critical),
			strconv.Itoa(rep.SecurityScore),
			strconv.Itoa(rep.PerformanceScore),
		)
		totalIssues += rep.TotalIssues
		totalCritical += rep.Critical
	}
	tbl.Print()

	fmt.Printf("\n %s %d files, %d issues, %d critical\n",
		output.StyleBold.Render("Total"), len(results), totalIssues, totalCritical)
	if failed := countFailed(results); failed > 0 {
		fmt.Printf(" %s\n", output.StyleError.Render(fmt.Sprintf("%d file(s) failed", failed)))
	}
}

func countFailed(results []batchResult) int {
	n := 0
	for _, r := range results {
		if r.Err != "" {
			n++
		}
	}
	return n
}
