package store

import (
	"database/sql"
	"time"

	"github.com/blackwell-systems/fixforge/internal/report"
)

// CreateSnapshot inserts a new snapshot and returns its ID.
func (db *DB) CreateSnapshot(command, version string) (int64, error) {
	result, err := db.conn.Exec(
		"INSERT INTO snapshots (taken_at, command, version) VALUES (?, ?, ?)",
		time.Now().UTC().Format(time.RFC3339), command, version,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// GetLatestSnapshot returns the most recent snapshot, or nil if none exist.
func (db *DB) GetLatestSnapshot() (*Snapshot, error) {
	row := db.conn.QueryRow("SELECT id, taken_at, command, version FROM snapshots ORDER BY id DESC LIMIT 1")
	return scanSnapshot(row)
}

// GetSnapshot returns a snapshot by ID.
func (db *DB) GetSnapshot(id int64) (*Snapshot, error) {
	row := db.conn.QueryRow("SELECT id, taken_at, command, version FROM snapshots WHERE id = ?", id)
	return scanSnapshot(row)
}

// GetSnapshotN returns the Nth most recent snapshot (1 = latest, 2 = previous, etc.).
func (db *DB) GetSnapshotN(n int) (*Snapshot, error) {
	row := db.conn.QueryRow(
		"SELECT id, taken_at, command, version FROM snapshots ORDER BY id DESC LIMIT 1 OFFSET ?",
		n-1,
	)
	return scanSnapshot(row)
}

// ListSnapshots returns up to limit snapshots, newest first.
func (db *DB) ListSnapshots(limit int) ([]Snapshot, error) {
	rows, err := db.conn.Query(
		"SELECT id, taken_at, command, version FROM snapshots ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var snaps []Snapshot
	for rows.Next() {
		var s Snapshot
		var takenAt string
		if err := rows.Scan(&s.ID, &takenAt, &s.Command, &s.Version); err != nil {
			return nil, err
		}
		s.TakenAt, _ = time.Parse(time.RFC3339, takenAt)
		snaps = append(snaps, s)
	}
	return snaps, rows.Err()
}

func scanSnapshot(row *sql.Row) (*Snapshot, error) {
	var s Snapshot
	var takenAt string
	err := row.Scan(&s.ID, &takenAt, &s.Command, &s.Version)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s.TakenAt, _ = time.Parse(time.RFC3339, takenAt)
	return &s, nil
}

// InsertReport persists the summary of one analyzed file under a snapshot.
func (db *DB) InsertReport(snapshotID int64, r *report.Report) error {
	_, err := db.conn.Exec(
		`INSERT INTO file_reports
		(snapshot_id, file_name, total_issues, critical, errors, warnings, info_count,
		 security_score, performance_score, cyclomatic, maintainability, code_lines, summary)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		snapshotID, r.FileName, r.TotalIssues, r.Critical, r.Errors, r.Warnings,
		r.InfoCount, r.SecurityScore, r.PerformanceScore,
		r.Complexity.Cyclomatic, r.Complexity.Maintainability, r.Metrics.CodeLines,
		r.Summary,
	)
	return err
}

// GetFileReports returns all file summaries recorded under a snapshot.
func (db *DB) GetFileReports(snapshotID int64) ([]FileReport, error) {
	rows, err := db.conn.Query(
		`SELECT id, snapshot_id, file_name, total_issues, critical, errors, warnings,
		 info_count, security_score, performance_score, cyclomatic, maintainability,
		 code_lines, summary
		 FROM file_reports WHERE snapshot_id = ? ORDER BY file_name`,
		snapshotID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var reports []FileReport
	for rows.Next() {
		var fr FileReport
		if err := rows.Scan(
			&fr.ID, &fr.SnapshotID, &fr.FileName, &fr.TotalIssues,
			&fr.Critical, &fr.Errors, &fr.Warnings, &fr.InfoCount,
			&fr.SecurityScore, &fr.PerformanceScore,
			&fr.Cyclomatic, &fr.Maintainability, &fr.CodeLines, &fr.Summary,
		); err != nil {
			return nil, err
		}
		reports = append(reports, fr)
	}
	return reports, rows.Err()
}

// DiffSnapshots compares the aggregate metrics of two snapshots. Scores
// improve upward; issue counts improve downward.
func (db *DB) DiffSnapshots(prev, cur *Snapshot) (*SnapshotDiff, error) {
	prevReports, err := db.GetFileReports(prev.ID)
	if err != nil {
		return nil, err
	}
	curReports, err := db.GetFileReports(cur.ID)
	if err != nil {
		return nil, err
	}

	prevAgg := aggregate(prevReports)
	curAgg := aggregate(curReports)

	diff := &SnapshotDiff{Previous: prev, Current: cur}
	for _, m := range []struct {
		name           string
		prev, cur      float64
		higherIsBetter bool
	}{
		{"total_issues", prevAgg.issues, curAgg.issues, false},
		{"critical", prevAgg.critical, curAgg.critical, false},
		{"security_score", prevAgg.security, curAgg.security, true},
		{"performance_score", prevAgg.performance, curAgg.performance, true},
		{"maintainability_index", prevAgg.maintainability, curAgg.maintainability, true},
	} {
		diff.Deltas = append(diff.Deltas, MetricDelta{
			Name:      m.name,
			Previous:  m.prev,
			Current:   m.cur,
			Delta:     m.cur - m.prev,
			Direction: direction(m.cur-m.prev, m.higherIsBetter),
		})
	}
	return diff, nil
}

type aggregates struct {
	issues, critical, security, performance, maintainability float64
}

// aggregate sums counts and averages scores over a snapshot's files.
func aggregate(reports []FileReport) aggregates {
	var a aggregates
	if len(reports) == 0 {
		return a
	}
	for _, fr := range reports {
		a.issues += float64(fr.TotalIssues)
		a.critical += float64(fr.Critical)
		a.security += float64(fr.SecurityScore)
		a.performance += float64(fr.PerformanceScore)
		a.maintainability += fr.Maintainability
	}
	n := float64(len(reports))
	a.security /= n
	a.performance /= n
	a.maintainability /= n
	return a
}

func direction(delta float64, higherIsBetter bool) string {
	switch {
	case delta == 0:
		return "unchanged"
	case (delta > 0) == higherIsBetter:
		return "improved"
	default:
		return "regressed"
	}
}
