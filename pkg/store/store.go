// Package store manages the SQLite run journal for fakehist.
//
// Every real (non-dry) invocation of run or backfill is journaled: one
// row per run plus one row per commit it created. The journal is what
// `fakehist log` and `fakehist status` read. Dry runs are deliberately
// not journaled — simulation must leave no trace anywhere.
package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/will-white/fake-history/pkg/model"

	_ "modernc.org/sqlite"
)

// Store manages all SQLite operations with WAL mode for concurrent access
// (a cron-driven run can overlap an operator's log query).
type Store struct {
	db *sql.DB
}

// New opens (or creates) the journal database and initializes the schema.
func New(path string) (*Store, error) {
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(60000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error { return s.db.Close() }

// retryOnContention wraps a journal write with the store's backoff policy.
// Under concurrent access (run vs. log/status) SQLite surfaces transient
// lock errors; retry.go decides which ones are worth retrying.
func retryOnContention(fn func() error) error {
	return withBackoff(journalBackoff, fn)
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id          TEXT PRIMARY KEY,
		mode        TEXT NOT NULL,
		started_at  TEXT NOT NULL,
		finished_at TEXT,
		days_total  INTEGER NOT NULL DEFAULT 0,
		days_active INTEGER NOT NULL DEFAULT 0,
		events      INTEGER NOT NULL DEFAULT 0,
		error       TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);

	CREATE TABLE IF NOT EXISTS commits (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id       TEXT NOT NULL REFERENCES runs(id),
		committed_at TEXT NOT NULL,
		message      TEXT NOT NULL,
		author       TEXT NOT NULL,
		created_at   TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_commits_run ON commits(run_id);
	CREATE INDEX IF NOT EXISTS idx_commits_time ON commits(committed_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// ---------------------------------------------------------------------------
// Runs
// ---------------------------------------------------------------------------

// BeginRun journals the start of a run or backfill invocation.
func (s *Store) BeginRun(mode string) (*model.Run, error) {
	run := &model.Run{
		ID:        uuid.NewString(),
		Mode:      mode,
		StartedAt: time.Now().UTC(),
	}
	err := retryOnContention(func() error {
		_, err := s.db.Exec(
			`INSERT INTO runs (id, mode, started_at) VALUES (?, ?, ?)`,
			run.ID, run.Mode, run.StartedAt.Format(time.RFC3339Nano),
		)
		return err
	})
	if err != nil {
		return nil, err
	}
	return run, nil
}

// FinishRun journals the outcome of a run: counters plus the error text
// ("" for success).
func (s *Store) FinishRun(id string, daysTotal, daysActive, events int, runErr string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	return retryOnContention(func() error {
		_, err := s.db.Exec(
			`UPDATE runs SET finished_at = ?, days_total = ?, days_active = ?, events = ?, error = ?
			 WHERE id = ?`,
			now, daysTotal, daysActive, events, runErr, id,
		)
		return err
	})
}

// GetRun retrieves a run by ID.
func (s *Store) GetRun(id string) (*model.Run, error) {
	row := s.db.QueryRow(
		`SELECT id, mode, started_at, finished_at, days_total, days_active, events, error
		 FROM runs WHERE id = ?`, id)
	return scanRun(row)
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(limit int) ([]model.Run, error) {
	rows, err := s.db.Query(
		`SELECT id, mode, started_at, finished_at, days_total, days_active, events, error
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []model.Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *r)
	}
	return runs, rows.Err()
}

// rowScanner lets scanRun work with both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*model.Run, error) {
	var r model.Run
	var started string
	var finished sql.NullString
	if err := row.Scan(&r.ID, &r.Mode, &started, &finished, &r.DaysTotal, &r.DaysActive, &r.Events, &r.Error); err != nil {
		return nil, err
	}
	var err error
	if r.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
		return nil, fmt.Errorf("parse started_at for run %s: %w", r.ID, err)
	}
	if finished.Valid {
		t, err := time.Parse(time.RFC3339Nano, finished.String)
		if err != nil {
			return nil, fmt.Errorf("parse finished_at for run %s: %w", r.ID, err)
		}
		r.FinishedAt = &t
	}
	return &r, nil
}

// ---------------------------------------------------------------------------
// Commits
// ---------------------------------------------------------------------------

// InsertCommit journals one created commit. Returns the row ID.
func (s *Store) InsertCommit(runID string, committedAt time.Time, message, author string) (int64, error) {
	var id int64
	err := retryOnContention(func() error {
		res, err := s.db.Exec(
			`INSERT INTO commits (run_id, committed_at, message, author, created_at)
			 VALUES (?, ?, ?, ?, ?)`,
			runID, committedAt.Format(time.RFC3339), message, author,
			time.Now().UTC().Format(time.RFC3339Nano),
		)
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	return id, err
}

// ListCommits returns journaled commits, newest first. A non-empty runID
// filters to one run.
func (s *Store) ListCommits(runID string, limit int) ([]model.CommitRecord, error) {
	query := `SELECT id, run_id, committed_at, message, author, created_at FROM commits`
	args := []any{}
	if runID != "" {
		query += ` WHERE run_id = ?`
		args = append(args, runID)
	}
	query += ` ORDER BY committed_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.CommitRecord
	for rows.Next() {
		var c model.CommitRecord
		var committed, created string
		if err := rows.Scan(&c.ID, &c.RunID, &committed, &c.Message, &c.Author, &created); err != nil {
			return nil, err
		}
		if c.CommittedAt, err = time.Parse(time.RFC3339, committed); err != nil {
			return nil, fmt.Errorf("parse committed_at for commit %d: %w", c.ID, err)
		}
		if c.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("parse created_at for commit %d: %w", c.ID, err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CountCommits returns the total number of journaled commits.
func (s *Store) CountCommits() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM commits`).Scan(&n)
	return n, err
}
