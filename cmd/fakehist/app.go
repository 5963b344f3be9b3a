package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/will-white/fake-history/pkg/config"
	"github.com/will-white/fake-history/pkg/model"
	"github.com/will-white/fake-history/pkg/schedule"
	"github.com/will-white/fake-history/pkg/store"
)

const (
	defaultDir = ".fakehist"
	defaultDB  = ".fakehist/journal.db"
)

// app holds shared state for all CLI subcommands.
type app struct {
	configPath string
	rng        schedule.Rand

	journal store.Journal // opened lazily; dry runs never touch it
}

// newApp resolves paths from the environment. Nothing is opened yet:
// the config is required only by scheduling commands, and the journal
// only by real runs and the inspection commands.
func newApp() *app {
	return &app{
		configPath: envOr("FAKEHIST_CONFIG", config.DefaultFile),
		rng:        schedule.NewRand(),
	}
}

// Close releases the journal connection if one was opened.
func (a *app) Close() {
	if a.journal != nil {
		a.journal.Close()
	}
}

// loadConfig loads and validates the configuration file. Every scheduling
// command calls this first; a missing or invalid config aborts before any
// day is planned.
func (a *app) loadConfig() (*config.Config, error) {
	return config.Load(a.configPath)
}

// openJournal opens the SQLite run journal on first use, creating the
// .fakehist directory for the default path.
func (a *app) openJournal() (store.Journal, error) {
	if a.journal != nil {
		return a.journal, nil
	}
	dbPath := envOr("FAKEHIST_DB", defaultDB)
	if dbPath == defaultDB {
		if err := os.MkdirAll(defaultDir, 0755); err != nil {
			return nil, fmt.Errorf("cannot create %s: %w", defaultDir, err)
		}
	} else if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("cannot create %s: %w", dir, err)
		}
	}
	j, err := store.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("cannot open journal %q: %w", dbPath, err)
	}
	a.journal = j
	return j, nil
}

// journaledEmitter tees every emitted event into the run journal after the
// underlying emitter (the git recorder) has succeeded. Journal failures
// abort the run too: a journal that silently diverges from the created
// history would defeat its purpose.
type journaledEmitter struct {
	next    schedule.Emitter
	journal store.Journal
	runID   string
}

func (e *journaledEmitter) Emit(ev model.ScheduledEvent) error {
	if err := e.next.Emit(ev); err != nil {
		return err
	}
	if _, err := e.journal.InsertCommit(e.runID, ev.Time, ev.Message, ev.Author.String()); err != nil {
		return fmt.Errorf("journal commit: %w", err)
	}
	return nil
}
