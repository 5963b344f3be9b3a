// iface.go defines the Journal interface for dependency injection and
// testing.
//
// The concrete *Store type satisfies this interface. Code that depends on
// the journal (the cmd layer) can accept Journal instead of *Store,
// enabling mock injection in tests.
package store

import (
	"time"

	"github.com/will-white/fake-history/pkg/model"
)

// Journal defines the full set of run-journal operations.
// The concrete *Store type implements this interface.
type Journal interface {
	// Close closes the database connection.
	Close() error

	// --- Runs ---

	// BeginRun journals the start of a run or backfill invocation.
	BeginRun(mode string) (*model.Run, error)

	// FinishRun journals the outcome of a run ("" error text = success).
	FinishRun(id string, daysTotal, daysActive, events int, runErr string) error

	// GetRun retrieves a run by ID.
	GetRun(id string) (*model.Run, error)

	// ListRuns returns the most recent runs, newest first.
	ListRuns(limit int) ([]model.Run, error)

	// --- Commits ---

	// InsertCommit journals one created commit. Returns the row ID.
	InsertCommit(runID string, committedAt time.Time, message, author string) (int64, error)

	// ListCommits returns journaled commits, newest first.
	ListCommits(runID string, limit int) ([]model.CommitRecord, error)

	// CountCommits returns the total number of journaled commits.
	CountCommits() (int, error)
}

// Compile-time check that *Store implements Journal.
var _ Journal = (*Store)(nil)
