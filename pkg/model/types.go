// Package model defines the core domain types for fake-history.
//
// The scheduler generates a stream of synthetic commit events shaped by
// three knobs:
//
//   - a daily activity probability (does anything happen on this day?),
//   - an optional cluster size range (how many commits land together?),
//   - per-step jitter (how are cluster members spread across the day?).
//
// Everything here is plain data. Validation lives next to the types so
// both the config loader and the CLI flag paths share one set of rules.
package model

import (
	"fmt"
	"time"
)

// Author is the identity attached to every generated commit.
type Author struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// String renders the author in git's "Name <email>" form.
func (a Author) String() string {
	return fmt.Sprintf("%s <%s>", a.Name, a.Email)
}

// Persona is the fixed author identity and commit message pool attributed
// to generated events. Immutable for the duration of a run. Messages are
// chosen per event uniformly at random, with replacement.
type Persona struct {
	Author   Author   `json:"author"`
	Messages []string `json:"commit_messages"`
}

// Validate reports the first problem with the persona.
func (p Persona) Validate() error {
	if p.Author.Name == "" {
		return fmt.Errorf("commit_persona: author name is empty")
	}
	if p.Author.Email == "" {
		return fmt.Errorf("commit_persona: author email is empty")
	}
	if len(p.Messages) == 0 {
		return fmt.Errorf("commit_persona: commit_messages is empty")
	}
	return nil
}

// ClusterConfig governs how many commits land on an active day.
// When Enabled is false the count is always 1.
type ClusterConfig struct {
	Enabled bool `json:"enabled"`
	Min     int  `json:"min_commits_per_cluster"`
	Max     int  `json:"max_commits_per_cluster"`
}

// Normalize fills zero bounds with usable defaults (1..4, matching the
// historical defaults) and returns the result. Keeps the count draw well
// defined even when the clustering block is absent from the config file.
func (c ClusterConfig) Normalize() ClusterConfig {
	if c.Min < 1 {
		c.Min = 1
	}
	if c.Max < c.Min {
		c.Max = c.Min
	}
	return c
}

// Validate reports the first problem with the cluster bounds.
func (c ClusterConfig) Validate() error {
	if c.Min < 1 || c.Max < 1 {
		return fmt.Errorf("commit_clustering: bounds must be >= 1 (got min=%d max=%d)", c.Min, c.Max)
	}
	if c.Min > c.Max {
		return fmt.Errorf("commit_clustering: min (%d) exceeds max (%d)", c.Min, c.Max)
	}
	return nil
}

// BackfillWindow is the inclusive historical date range and the per-day
// activity probability for a backfill run.
type BackfillWindow struct {
	StartDate string  `json:"start_date"` // ISO YYYY-MM-DD
	EndDate   string  `json:"end_date"`
	Frequency float64 `json:"commit_frequency_per_day"` // [0,1]
}

// Validate checks the probability range. Date syntax and ordering are
// checked by the calendar driver, which owns date parsing.
func (w BackfillWindow) Validate() error {
	if w.Frequency < 0 || w.Frequency > 1 {
		return fmt.Errorf("backfill_settings: commit_frequency_per_day %.3f outside [0,1]", w.Frequency)
	}
	return nil
}

// WorkingHoursConfig is the weekday/hour policy for periodic runs.
// The hour window is half-open: [StartHour, EndHour).
type WorkingHoursConfig struct {
	Enabled        bool `json:"enabled"`
	StartHour      int  `json:"start_hour"`
	EndHour        int  `json:"end_hour"`
	WorkOnSaturday bool `json:"work_on_saturday"`
	WorkOnSunday   bool `json:"work_on_sunday"`
}

// Validate reports the first problem with the hour window. The ordering
// check applies only when the gate is enabled, so a zero-valued disabled
// block stays legal; an enabled inverted window would otherwise skip
// every hour of every day without a word.
func (w WorkingHoursConfig) Validate() error {
	if w.StartHour < 0 || w.StartHour > 23 {
		return fmt.Errorf("working_hours: start_hour %d outside 0..23", w.StartHour)
	}
	if w.EndHour < 0 || w.EndHour > 23 {
		return fmt.Errorf("working_hours: end_hour %d outside 0..23", w.EndHour)
	}
	if w.Enabled && w.StartHour >= w.EndHour {
		return fmt.Errorf("working_hours: start_hour %d not before end_hour %d", w.StartHour, w.EndHour)
	}
	return nil
}

// RunSettings shapes the periodic "run" command: how many commits an
// ad-hoc batch creates, the working-hours policy, and the residual random
// skip chance applied after the policy checks pass.
type RunSettings struct {
	MinCommits    int                `json:"min_commits_to_alter"`
	MaxCommits    int                `json:"max_commits_to_alter"`
	WorkingHours  WorkingHoursConfig `json:"working_hours"`
	SkipRunChance float64            `json:"skip_run_chance"`
}

// Normalize fills zero batch bounds with the single-commit default, the
// same way ClusterConfig does. A config without a run_settings block must
// still load for backfill-only use.
func (r RunSettings) Normalize() RunSettings {
	if r.MinCommits < 1 {
		r.MinCommits = 1
	}
	if r.MaxCommits < r.MinCommits {
		r.MaxCommits = r.MinCommits
	}
	return r
}

// Validate reports the first problem with the run settings.
func (r RunSettings) Validate() error {
	if r.MinCommits < 1 || r.MaxCommits < r.MinCommits {
		return fmt.Errorf("run_settings: commit batch bounds invalid (min=%d max=%d)", r.MinCommits, r.MaxCommits)
	}
	if r.SkipRunChance < 0 || r.SkipRunChance > 1 {
		return fmt.Errorf("run_settings: skip_run_chance %.3f outside [0,1]", r.SkipRunChance)
	}
	return r.WorkingHours.Validate()
}

// ContentConfig names the file mutated to give each commit a trivial diff.
type ContentConfig struct {
	TargetFile string `json:"target_file"`
	LinePrefix string `json:"line_prefix"`
}

// ScheduledEvent is one synthetic commit: a forged timestamp, a message
// from the persona pool, and the persona author. Events are created by
// the sequencer, handed to an emitter, and discarded — never persisted
// by the scheduler itself.
type ScheduledEvent struct {
	Time    time.Time
	Message string
	Author  Author
}

// Run is one journaled invocation of the run or backfill command.
type Run struct {
	ID         string     `json:"id"`
	Mode       string     `json:"mode"` // "run" or "backfill"
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	DaysTotal  int        `json:"days_total"`
	DaysActive int        `json:"days_active"`
	Events     int        `json:"events"`
	Error      string     `json:"error,omitempty"`
}

// CommitRecord is one journaled commit created by a real (non-dry) run.
// CommittedAt is the forged timestamp; CreatedAt is the wall clock at
// insertion time.
type CommitRecord struct {
	ID          int64     `json:"id"`
	RunID       string    `json:"run_id"`
	CommittedAt time.Time `json:"committed_at"`
	Message     string    `json:"message"`
	Author      string    `json:"author"`
	CreatedAt   time.Time `json:"created_at"`
}
