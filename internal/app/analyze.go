package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/fixforge/internal/analysis"
	"github.com/blackwell-systems/fixforge/internal/config"
	"github.com/blackwell-systems/fixforge/internal/fix"
	"github.com/blackwell-systems/fixforge/internal/output"
	"github.com/blackwell-systems/fixforge/internal/report"
	"github.com/blackwell-systems/fixforge/internal/rules"
	"github.com/blackwell-systems/fixforge/internal/source"
	"github.com/blackwell-systems/fixforge/internal/store"
)

var (
	analyzeFormat string
	analyzeSave   bool
	analyzeAIFix  bool

	analyzeSecurity    bool
	analyzePerformance bool
	analyzeCodeSmells  bool
	analyzeComplexity  bool
	analyzeDeadCode    bool
	analyzeTypeHints   bool
	analyzeSyntax      bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Analyze a single file and report findings",
	Long: `Analyze runs the full rule catalog over one source file and prints a
report with findings, severity counts, security and performance scores, and
complexity metrics. Pass "-" to read source from stdin.

Findings covered by a deterministic fix template include the suggested fix
inline. With --ai-fix, remaining findings are sent to the configured fix
model for a proposal; the analysis itself never contacts the network.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "", "Output format: text, json, markdown (default from config)")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "Save the report to the history database")
	analyzeCmd.Flags().BoolVar(&analyzeAIFix, "ai-fix", false, "Ask the configured AI model for fixes the templates could not derive")

	analyzeCmd.Flags().BoolVar(&analyzeSecurity, "security", true, "Run security rules")
	analyzeCmd.Flags().BoolVar(&analyzePerformance, "performance", true, "Run performance rules")
	analyzeCmd.Flags().BoolVar(&analyzeCodeSmells, "code-smells", true, "Run code quality rules")
	analyzeCmd.Flags().BoolVar(&analyzeComplexity, "complexity", true, "Compute complexity metrics")
	analyzeCmd.Flags().BoolVar(&analyzeDeadCode, "dead-code", true, "Run dead code rules")
	analyzeCmd.Flags().BoolVar(&analyzeTypeHints, "type-hints", true, "Run type hint rules")
	analyzeCmd.Flags().BoolVar(&analyzeSyntax, "syntax", true, "Run syntax rules")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	setupColor(cfg)

	unit, err := readUnit(args[0])
	if err != nil {
		return err
	}

	analyzer := analysis.New(rules.Default(), newLogger())
	opts := analysisOptions(cmd, cfg)

	rep, err := analyzer.Run(cmd.Context(), unit, opts)
	if err != nil && rep == nil {
		return err
	}

	if rep.Success && analyzeAIFix {
		if aiErr := applyAIFixes(cmd, cfg, rep); aiErr != nil {
			fmt.Fprintln(os.Stderr, "warning:", aiErr)
		}
	}

	w, werr := reportWriter(outputFormat(cfg))
	if werr != nil {
		return werr
	}
	if _, werr := w.Write(rep); werr != nil {
		return werr
	}

	if analyzeSave && rep.Success {
		if serr := saveReports("analyze", rep); serr != nil {
			return serr
		}
	}

	// Invalid input still renders a failure report but exits nonzero.
	return err
}

// analysisOptions starts from the configured category toggles and applies any
// flag the user set explicitly.
func analysisOptions(cmd *cobra.Command, cfg *config.Config) analysis.Options {
	opts := analysis.Options{
		Syntax:      cfg.Analysis.Syntax,
		Security:    cfg.Analysis.Security,
		Performance: cfg.Analysis.Performance,
		CodeSmells:  cfg.Analysis.CodeSmells,
		Complexity:  cfg.Analysis.Complexity,
		DeadCode:    cfg.Analysis.DeadCode,
		TypeHints:   cfg.Analysis.TypeHints,
	}
	flags := cmd.Flags()
	if flags.Changed("security") {
		opts.Security = analyzeSecurity
	}
	if flags.Changed("performance") {
		opts.Performance = analyzePerformance
	}
	if flags.Changed("code-smells") {
		opts.CodeSmells = analyzeCodeSmells
	}
	if flags.Changed("complexity") {
		opts.Complexity = analyzeComplexity
	}
	if flags.Changed("dead-code") {
		opts.DeadCode = analyzeDeadCode
	}
	if flags.Changed("type-hints") {
		opts.TypeHints = analyzeTypeHints
	}
	if flags.Changed("syntax") {
		opts.Syntax = analyzeSyntax
	}
	return opts
}

// applyAIFixes routes delegable findings without a suggested fix to the
// configured model and merges proposals into the report.
func applyAIFixes(cmd *cobra.Command, cfg *config.Config, rep *report.Report) error {
	key := cfg.AI.APIKey()
	if key == "" {
		return fmt.Errorf("--ai-fix requires an API key in $%s", cfg.AI.KeyEnvVar)
	}
	model, err := fix.NewClaudeModel(key, cfg.AI.Model)
	if err != nil {
		return err
	}
	applied, err := fix.ApplyModel(cmd.Context(), model, rep.Issues)
	if applied > 0 && flagVerbose {
		fmt.Fprintf(os.Stderr, "ai-fix: %d proposal(s) merged\n", applied)
	}
	return err
}

// readUnit loads a source unit from a file path, or from stdin when the path
// is "-".
func readUnit(path string) (source.Unit, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return source.Unit{}, fmt.Errorf("reading stdin: %w", err)
		}
		return source.NewUnit(string(data), "stdin"), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return source.Unit{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return source.NewUnit(string(data), filepath.Base(path)), nil
}

// outputFormat resolves the effective format: explicit flag, then the
// persistent --json shortcut, then config.
func outputFormat(cfg *config.Config) string {
	if analyzeFormat != "" {
		return analyzeFormat
	}
	if flagJSON {
		return "json"
	}
	return cfg.Output.Format
}

// reportWriter builds the writer for the chosen format.
func reportWriter(format string) (report.Writer, error) {
	switch format {
	case "", "text":
		return report.NewTextWriter(os.Stdout), nil
	case "json":
		return report.NewJSONWriter(os.Stdout, report.WithPrettyPrint()), nil
	case "markdown", "md":
		return report.NewMarkdownWriter(os.Stdout), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// setupColor applies color preferences: auto-detect the terminal, then honor
// config and the --no-color flag.
func setupColor(cfg *config.Config) {
	output.AutoColor()
	if flagNoColor || !cfg.Output.Color {
		output.SetNoColor(true)
	}
}

// saveReports snapshots one or more file reports into the history database.
func saveReports(command string, reports ...*report.Report) error {
	db, err := store.Open(config.DBPath())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = db.Close() }()

	snapshotID, err := db.CreateSnapshot(command, appVersion)
	if err != nil {
		return fmt.Errorf("creating snapshot: %w", err)
	}
	for _, r := range reports {
		if err := db.InsertReport(snapshotID, r); err != nil {
			return fmt.Errorf("saving report for %s: %w", r.FileName, err)
		}
	}
	fmt.Fprintf(os.Stderr, "saved snapshot %d\n", snapshotID)
	return nil
}
