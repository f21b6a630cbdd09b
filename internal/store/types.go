// Package store provides SQLite persistence for analysis history snapshots.
package store

import "time"

// Snapshot represents one recorded analysis run.
type Snapshot struct {
	ID      int64     `json:"id"`
	TakenAt time.Time `json:"taken_at"`
	Command string    `json:"command"`
	Version string    `json:"version"`
}

// FileReport is the persisted summary of one analyzed file within a snapshot.
// The full issue list is not stored; history tracks score and count trends.
type FileReport struct {
	ID               int64   `json:"id"`
	SnapshotID       int64   `json:"snapshot_id"`
	FileName         string  `json:"file_name"`
	TotalIssues      int     `json:"total_issues"`
	Critical         int     `json:"critical"`
	Errors           int     `json:"errors"`
	Warnings         int     `json:"warnings"`
	InfoCount        int     `json:"info_count"`
	SecurityScore    int     `json:"security_score"`
	PerformanceScore int     `json:"performance_score"`
	Cyclomatic       int     `json:"cyclomatic_complexity"`
	Maintainability  float64 `json:"maintainability_index"`
	CodeLines        int     `json:"code_lines"`
	Summary          string  `json:"summary"`
}

// SnapshotDiff represents the comparison between two snapshots.
type SnapshotDiff struct {
	Previous *Snapshot     `json:"previous"`
	Current  *Snapshot     `json:"current"`
	Deltas   []MetricDelta `json:"deltas"`
}

// MetricDelta represents the change in a single metric between snapshots.
type MetricDelta struct {
	Name      string  `json:"name"`
	Previous  float64 `json:"previous"`
	Current   float64 `json:"current"`
	Delta     float64 `json:"delta"`
	Direction string  `json:"direction"` // "improved", "regressed", "unchanged"
}
