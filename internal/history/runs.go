package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound reports an unknown run id.
var ErrNotFound = errors.New("run not found")

// Origin values recorded with each run.
const (
	OriginRun   = "run"
	OriginWatch = "watch"
)

// Failure is one failed rendition job.
type Failure struct {
	Category  string
	Source    string
	Rendition string
	Message   string
}

// Run is the journaled summary of one pipeline run.
type Run struct {
	ID           string
	Origin       string
	Started      time.Time
	Finished     time.Time
	Categories   int
	Skipped      int
	Succeeded    int
	Failed       int
	Canceled     bool
	ManifestPath string
	Failures     []Failure
}

// Duration is the wall time of the run.
func (r Run) Duration() time.Duration {
	if r.Finished.Before(r.Started) {
		return 0
	}
	return r.Finished.Sub(r.Started)
}

const runColumns = "id, origin, started_at, finished_at, categories, skipped, succeeded, failed, canceled, manifest_path"

// Record stores a run and its failures in one transaction.
func (s *Store) Record(ctx context.Context, run Run) error {
	if run.ID == "" {
		return errors.New("run id is required")
	}
	if run.Origin == "" {
		run.Origin = OriginRun
	}
	return retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin record tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		if _, err := tx.ExecContext(ctx,
			"INSERT INTO runs ("+runColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
			run.ID,
			run.Origin,
			run.Started.UTC().Format(timeLayout),
			run.Finished.UTC().Format(timeLayout),
			run.Categories,
			run.Skipped,
			run.Succeeded,
			run.Failed,
			boolToInt(run.Canceled),
			run.ManifestPath,
		); err != nil {
			return fmt.Errorf("insert run: %w", err)
		}

		for _, f := range run.Failures {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO run_failures (run_id, category, source, rendition, message) VALUES (?, ?, ?, ?, ?)",
				run.ID, f.Category, f.Source, f.Rendition, f.Message,
			); err != nil {
				return fmt.Errorf("insert failure: %w", err)
			}
		}
		return tx.Commit()
	})
}

// List returns the most recent runs first, without failures. A limit of
// zero or less returns every run.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	query := "SELECT " + runColumns + " FROM runs ORDER BY started_at DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Get returns a run with its failures. A unique id prefix is accepted.
func (s *Store) Get(ctx context.Context, id string) (Run, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+runColumns+" FROM runs WHERE id = ? OR id LIKE ? ORDER BY id LIMIT 2", id, id+"%")
	if err != nil {
		return Run{}, fmt.Errorf("get run: %w", err)
	}
	var matches []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			rows.Close()
			return Run{}, err
		}
		matches = append(matches, run)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return Run{}, err
	}

	var run Run
	switch {
	case len(matches) == 0:
		return Run{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	case len(matches) > 1 && matches[0].ID != id:
		return Run{}, fmt.Errorf("run id %q is ambiguous", id)
	default:
		run = matches[0]
	}

	failures, err := s.failures(ctx, run.ID)
	if err != nil {
		return Run{}, err
	}
	run.Failures = failures
	return run, nil
}

// Prune deletes all but the newest keep runs and reports how many were removed.
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	var removed int64
	err := retryOnBusy(ctx, func() error {
		res, err := s.db.ExecContext(ctx,
			"DELETE FROM runs WHERE id NOT IN (SELECT id FROM runs ORDER BY started_at DESC LIMIT ?)", keep)
		if err != nil {
			return err
		}
		removed, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("prune runs: %w", err)
	}
	return removed, nil
}

func (s *Store) failures(ctx context.Context, runID string) ([]Failure, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT category, source, rendition, message FROM run_failures WHERE run_id = ? ORDER BY id", runID)
	if err != nil {
		return nil, fmt.Errorf("list failures: %w", err)
	}
	defer rows.Close()

	var failures []Failure
	for rows.Next() {
		var f Failure
		if err := rows.Scan(&f.Category, &f.Source, &f.Rendition, &f.Message); err != nil {
			return nil, fmt.Errorf("scan failure: %w", err)
		}
		failures = append(failures, f)
	}
	return failures, rows.Err()
}

func scanRun(scanner interface{ Scan(dest ...any) error }) (Run, error) {
	var (
		run         Run
		startedRaw  string
		finishedRaw string
		canceled    sql.NullInt64
	)
	if err := scanner.Scan(
		&run.ID,
		&run.Origin,
		&startedRaw,
		&finishedRaw,
		&run.Categories,
		&run.Skipped,
		&run.Succeeded,
		&run.Failed,
		&canceled,
		&run.ManifestPath,
	); err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	run.Started = parseTime(startedRaw)
	run.Finished = parseTime(finishedRaw)
	run.Canceled = canceled.Valid && canceled.Int64 != 0
	return run, nil
}

func parseTime(raw string) time.Time {
	t, err := time.Parse(timeLayout, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
