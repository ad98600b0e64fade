// This file defines the data structures used when moving files into the
// publisher/series hierarchy.

package models

import "time"

// Assignment places one source file into a destination folder relative to the
// output root.
type Assignment struct {
	Source string         `json:"source"`
	Folder string         `json:"folder"`
	Record *ComicMetadata `json:"record,omitempty"`
}

// MoveStatus describes what happened to a single file during a run.
type MoveStatus string

const (
	MoveStatusPlanned   MoveStatus = "planned"
	MoveStatusMoved     MoveStatus = "moved"
	MoveStatusRenamed   MoveStatus = "renamed"
	MoveStatusUnchanged MoveStatus = "unchanged"
	MoveStatusFailed    MoveStatus = "failed"
)

// MoveResult is the per-file entry in a batch summary.
type MoveResult struct {
	Source      string     `json:"source"`
	Destination string     `json:"destination"`
	Status      MoveStatus `json:"status"`
	Error       string     `json:"error,omitempty"`
}

// BatchSummary reports the outcome of applying a plan.
type BatchSummary struct {
	RunID      string       `json:"run_id,omitempty"`
	Root       string       `json:"root"`
	DryRun     bool         `json:"dry_run"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	Results    []MoveResult `json:"results"`
}

// Counts tallies the results by status.
func (s *BatchSummary) Counts() map[MoveStatus]int {
	counts := make(map[MoveStatus]int)
	for _, r := range s.Results {
		counts[r.Status]++
	}
	return counts
}

// Failed returns the results that did not move.
func (s *BatchSummary) Failed() []MoveResult {
	var failed []MoveResult
	for _, r := range s.Results {
		if r.Status == MoveStatusFailed {
			failed = append(failed, r)
		}
	}
	return failed
}

// JournalRun is one organize run recorded in the journal.
type JournalRun struct {
	ID        string    `json:"id"`
	Root      string    `json:"root"`
	StartedAt time.Time `json:"started_at"`
	Undone    bool      `json:"undone"`
}

// JournalMove is a single recorded move.
type JournalMove struct {
	ID          int64     `json:"id"`
	RunID       string    `json:"run_id"`
	Source      string    `json:"source"`
	Destination string    `json:"destination"`
	MovedAt     time.Time `json:"moved_at"`
}
