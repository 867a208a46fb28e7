// Package history persists run records in a local SQLite database so past
// results stay inspectable after the console output is gone.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/meredith/doctest/internal/models"
)

//go:embed schema.sql
var schemaSQL string

// FailureRecord is the persisted detail of one failed or errored example
type FailureRecord struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Scope    string `json:"scope"`
	Source   string `json:"source"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
	Outcome  string `json:"outcome"`
}

// Run is one recorded doctest run
type Run struct {
	ID        string
	Target    string
	Attempted int
	Failed    int
	Errored   int
	Duration  time.Duration
	Ellipsis  bool
	Failures  []FailureRecord
	CreatedAt time.Time
}

// OK returns true if the recorded run had no failures or errors
func (r *Run) OK() bool {
	return r.Failed == 0 && r.Errored == 0
}

// Stats aggregates the whole history
type Stats struct {
	TotalRuns     int
	TotalExamples int
	TotalFailed   int
	TotalErrored  int
	LastRun       time.Time
}

// Store manages the SQLite database holding run history
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore creates a new Store instance and initializes the database
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// busy_timeout first so the remaining pragmas wait on locks held by
	// a concurrent run against the same database file
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if err := execWithRetry(db, pragma, 5, 10*time.Millisecond); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if err := execWithRetry(db, schemaSQL, 5, 10*time.Millisecond); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// execWithRetry executes a SQL statement with exponential backoff retry on
// lock errors
func execWithRetry(db *sql.DB, stmt string, maxRetries int, baseDelay time.Duration) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		_, err := db.Exec(stmt)
		if err == nil {
			return nil
		}
		if !strings.Contains(err.Error(), "database is locked") {
			return err
		}
		lastErr = err
		time.Sleep(baseDelay * time.Duration(1<<attempt))
	}
	return lastErr
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordRun persists one run result and returns the stored record
func (s *Store) RecordRun(ctx context.Context, result *models.RunResult, ellipsis bool) (*Run, error) {
	failures := make([]FailureRecord, 0, len(result.Failures))
	for _, failure := range result.Failures {
		failures = append(failures, FailureRecord{
			File:     failure.Example.File,
			Line:     failure.Example.Line,
			Scope:    failure.Example.Scope,
			Source:   failure.Example.Source,
			Expected: failure.Example.Expected,
			Actual:   failure.Actual,
			Outcome:  failure.Outcome,
		})
	}

	payload, err := json.Marshal(failures)
	if err != nil {
		return nil, fmt.Errorf("marshal failures: %w", err)
	}

	run := &Run{
		ID:        uuid.NewString(),
		Target:    result.Target,
		Attempted: result.Attempted,
		Failed:    result.Failed,
		Errored:   result.Errored,
		Duration:  result.Duration,
		Ellipsis:  ellipsis,
		Failures:  failures,
		CreatedAt: time.Now().UTC(),
	}

	const insert = `INSERT INTO runs (id, target, attempted, failed, errored, duration_ms, ellipsis, failures, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = s.db.ExecContext(ctx, insert,
		run.ID, run.Target, run.Attempted, run.Failed, run.Errored,
		run.Duration.Milliseconds(), boolToInt(run.Ellipsis), string(payload), run.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}

	return run, nil
}

// ListRuns returns the most recent runs, newest first.
// A limit of 0 returns every recorded run.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, target, attempted, failed, errored, duration_ms, ellipsis, failures, created_at
		FROM runs ORDER BY created_at DESC, id`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// GetRun resolves a run by its full id or a unique id prefix
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	const query = `SELECT id, target, attempted, failed, errored, duration_ms, ellipsis, failures, created_at
		FROM runs WHERE id LIKE ? ORDER BY created_at DESC LIMIT 2`

	rows, err := s.db.QueryContext(ctx, query, id+"%")
	if err != nil {
		return nil, fmt.Errorf("query run: %w", err)
	}
	defer rows.Close()

	var matches []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("run %q not found", id)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("run id %q is ambiguous", id)
	}
}

// Stats aggregates counters across the whole history
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	const query = `SELECT COUNT(*),
		COALESCE(SUM(attempted), 0),
		COALESCE(SUM(failed), 0),
		COALESCE(SUM(errored), 0),
		COALESCE(MAX(created_at), '')
		FROM runs`

	var stats Stats
	var lastRun string
	err := s.db.QueryRowContext(ctx, query).Scan(
		&stats.TotalRuns, &stats.TotalExamples, &stats.TotalFailed, &stats.TotalErrored, &lastRun)
	if err != nil {
		return nil, fmt.Errorf("query stats: %w", err)
	}

	if lastRun != "" {
		if t, err := parseTimestamp(lastRun); err == nil {
			stats.LastRun = t
		}
	}
	return &stats, nil
}

// Prune deletes all but the most recent keep runs.
// A keep of 0 disables pruning.
func (s *Store) Prune(ctx context.Context, keep int) error {
	if keep <= 0 {
		return nil
	}
	const stmt = `DELETE FROM runs WHERE id NOT IN
		(SELECT id FROM runs ORDER BY created_at DESC, id LIMIT ?)`
	if _, err := s.db.ExecContext(ctx, stmt, keep); err != nil {
		return fmt.Errorf("prune runs: %w", err)
	}
	return nil
}

// Clear deletes the whole history
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM runs"); err != nil {
		return fmt.Errorf("clear runs: %w", err)
	}
	return nil
}

// scanRun reads one row into a Run
func scanRun(rows *sql.Rows) (*Run, error) {
	var run Run
	var durationMs int64
	var ellipsis int
	var failures string
	var createdAt time.Time

	err := rows.Scan(&run.ID, &run.Target, &run.Attempted, &run.Failed, &run.Errored,
		&durationMs, &ellipsis, &failures, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("scan run: %w", err)
	}

	run.Duration = time.Duration(durationMs) * time.Millisecond
	run.Ellipsis = ellipsis != 0
	run.CreatedAt = createdAt
	if err := json.Unmarshal([]byte(failures), &run.Failures); err != nil {
		return nil, fmt.Errorf("unmarshal failures: %w", err)
	}
	return &run, nil
}

// parseTimestamp accepts the formats SQLite hands back for MAX(created_at)
func parseTimestamp(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05.999999999-07:00", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
