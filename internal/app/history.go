package app

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/fixforge/internal/config"
	"github.com/blackwell-systems/fixforge/internal/output"
	"github.com/blackwell-systems/fixforge/internal/store"
)

var (
	historyLimit   int
	historyCompare int
	historyJSON    bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show saved snapshots and trends over time",
	Long: `History lists snapshots recorded with 'analyze --save' or
'batch --save' and compares the latest against a previous one, showing
metric deltas with trend arrows.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "Show at most N snapshots")
	historyCmd.Flags().IntVar(&historyCompare, "compare", 1, "Compare latest against Nth previous snapshot")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	setupColor(cfg)

	db, err := store.Open(config.DBPath())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = db.Close() }()

	snaps, err := db.ListSnapshots(historyLimit)
	if err != nil {
		return fmt.Errorf("listing snapshots: %w", err)
	}

	var diff *store.SnapshotDiff
	if len(snaps) >= 2 {
		latest, err := db.GetSnapshotN(1)
		if err != nil {
			return err
		}
		previous, err := db.GetSnapshotN(1 + historyCompare)
		if err != nil {
			return err
		}
		if previous != nil {
			diff, err = db.DiffSnapshots(previous, latest)
			if err != nil {
				return fmt.Errorf("comparing snapshots: %w", err)
			}
		}
	}

	if historyJSON || flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"snapshots": snaps,
			"diff":      diff,
		})
	}

	renderHistory(db, snaps, diff)
	return nil
}

func renderHistory(db *store.DB, snaps []store.Snapshot, diff *store.SnapshotDiff) {
	fmt.Println(output.Section("Snapshot History"))
	fmt.Println()

	if len(snaps) == 0 {
		fmt.Println(output.StyleMuted.Render(" No snapshots yet. Run 'fixforge analyze <file> --save' first."))
		return
	}

	tbl := output.NewTable("ID", "Taken", "Command", "Files", "Issues")
	for _, s := range snaps {
		files, issues := snapshotTotals(db, s.ID)
		tbl.AddRow(
			strconv.FormatInt(s.ID, 10),
			s.TakenAt.Local().Format(time.DateTime),
			s.Command,
			strconv.Itoa(files),
			strconv.Itoa(issues),
		)
	}
	tbl.Print()

	if diff == nil {
		return
	}

	fmt.Println(output.Section(fmt.Sprintf("Snapshot %d vs %d", diff.Current.ID, diff.Previous.ID)))
	fmt.Println()
	dt := output.NewTable("Metric", "Previous", "Current", "Trend")
	for _, d := range diff.Deltas {
		dt.AddRow(
			d.Name,
			fmt.Sprintf("%.1f", d.Previous),
			fmt.Sprintf("%.1f", d.Current),
			output.TrendArrow(d.Delta, scoreMetric(d.Name)),
		)
	}
	dt.Print()
}

// snapshotTotals sums file and issue counts for the listing; lookup failures
// render as zero rather than aborting the listing.
func snapshotTotals(db *store.DB, snapshotID int64) (files, issues int) {
	reports, err := db.GetFileReports(snapshotID)
	if err != nil {
		return 0, 0
	}
	for _, fr := range reports {
		issues += fr.TotalIssues
	}
	return len(reports), issues
}

// scoreMetric reports whether a diff metric improves upward.
func scoreMetric(name string) bool {
	switch name {
	case "security_score", "performance_score", "maintainability_index":
		return true
	default:
		return false
	}
}
