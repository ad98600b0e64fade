package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vrsandeep/comic-sorter/internal/models"
)

var (
	ErrRunNotFound = errors.New("run not found")
	ErrNoRuns      = errors.New("no organize runs to undo")
)

// BeginRun records the start of an organize run and returns it with a fresh
// identifier.
func (s *Store) BeginRun(root string, dryRun bool) (*models.JournalRun, error) {
	run := &models.JournalRun{ID: uuid.NewString(), Root: root, StartedAt: s.now()}
	_, err := s.db.Exec("INSERT INTO runs (id, root, dry_run, started_at) VALUES (?, ?, ?, ?)",
		run.ID, run.Root, dryRun, run.StartedAt)
	if err != nil {
		return nil, fmt.Errorf("begin run: %w", err)
	}
	return run, nil
}

// FinishRun stamps the end time of a run.
func (s *Store) FinishRun(runID string) error {
	res, err := s.db.Exec("UPDATE runs SET finished_at = ? WHERE id = ?", s.now(), runID)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return expectOneRow(res)
}

// RecordMove appends a completed move to a run.
func (s *Store) RecordMove(runID, source, destination string) error {
	_, err := s.db.Exec("INSERT INTO moves (run_id, source, destination, moved_at) VALUES (?, ?, ?, ?)",
		runID, source, destination, s.now())
	if err != nil {
		return fmt.Errorf("record move: %w", err)
	}
	return nil
}

// GetRun retrieves a single run by its ID.
func (s *Store) GetRun(runID string) (*models.JournalRun, error) {
	row := s.db.QueryRow("SELECT id, root, started_at, undone FROM runs WHERE id = ?", runID)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	return run, err
}

// LastRun returns the most recent run that moved files and has not been
// undone. Dry runs never qualify.
func (s *Store) LastRun() (*models.JournalRun, error) {
	row := s.db.QueryRow(`
		SELECT id, root, started_at, undone FROM runs
		WHERE undone = 0 AND dry_run = 0
		  AND EXISTS (SELECT 1 FROM moves WHERE moves.run_id = runs.id)
		ORDER BY started_at DESC, rowid DESC
		LIMIT 1`)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoRuns
	}
	return run, err
}

// ListRuns returns up to limit runs, newest first.
func (s *Store) ListRuns(limit int) ([]*models.JournalRun, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT id, root, started_at, undone FROM runs
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*models.JournalRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// MovesForRun returns the moves of a run in the order they happened.
func (s *Store) MovesForRun(runID string) ([]models.JournalMove, error) {
	rows, err := s.db.Query(`
		SELECT id, run_id, source, destination, moved_at FROM moves
		WHERE run_id = ? ORDER BY id ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var moves []models.JournalMove
	for rows.Next() {
		var m models.JournalMove
		if err := rows.Scan(&m.ID, &m.RunID, &m.Source, &m.Destination, &m.MovedAt); err != nil {
			return nil, err
		}
		moves = append(moves, m)
	}
	return moves, rows.Err()
}

// MarkUndone flags a run as reversed so it is not undone twice.
func (s *Store) MarkUndone(runID string) error {
	res, err := s.db.Exec("UPDATE runs SET undone = 1 WHERE id = ?", runID)
	if err != nil {
		return fmt.Errorf("mark run undone: %w", err)
	}
	return expectOneRow(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*models.JournalRun, error) {
	var run models.JournalRun
	if err := row.Scan(&run.ID, &run.Root, &run.StartedAt, &run.Undone); err != nil {
		return nil, err
	}
	return &run, nil
}

func expectOneRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrRunNotFound
	}
	return nil
}
