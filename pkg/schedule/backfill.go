package schedule

import (
	"fmt"
	"io"
	"time"

	"github.com/will-white/fake-history/pkg/model"
)

// StampLayout is the ISO-8601 second-precision form (no timezone suffix)
// used for forged commit dates and simulation output.
const StampLayout = "2006-01-02T15:04:05"

// Emitter consumes scheduled events in strictly increasing chronological
// order. Real emitters mutate a git repository; the Printer below only
// writes "would create" lines.
type Emitter interface {
	Emit(ev model.ScheduledEvent) error
}

// Stats summarizes one backfill pass.
type Stats struct {
	DaysTotal  int
	DaysActive int
	Events     int
}

// Scheduler generates synthetic commit events for a persona. All three
// fields must be set; Rand is the only source of nondeterminism.
type Scheduler struct {
	Rand    Rand
	Persona model.Persona
	Cluster model.ClusterConfig
}

// PlanDay runs the gate → planner → sequencer pipeline for a single day.
// Returns nil when the day is inactive. A non-nil empty slice is possible
// when every cluster member overflowed past hour 23.
func (s *Scheduler) PlanDay(day time.Time, frequency float64) []model.ScheduledEvent {
	if !DayActive(frequency, s.Rand) {
		return nil
	}
	plan := PlanCluster(s.Cluster, s.Rand)
	return SequenceCluster(day, plan, s.Persona, s.Rand)
}

// Backfill drives the scheduler over every day of the window, in strict
// day order, handing each surviving event to emit. The first emitter
// failure aborts the run: the remaining events of that day and all later
// days are abandoned.
func (s *Scheduler) Backfill(window DayRange, frequency float64, emit Emitter) (Stats, error) {
	var st Stats
	for day := range window.Days() {
		st.DaysTotal++
		events := s.PlanDay(day, frequency)
		if events == nil {
			continue
		}
		st.DaysActive++
		for _, ev := range events {
			if err := emit.Emit(ev); err != nil {
				return st, fmt.Errorf("emit commit at %s: %w", ev.Time.Format(StampLayout), err)
			}
			st.Events++
		}
	}
	return st, nil
}

// Printer is the simulation emitter: one line per surviving event, no
// state mutation anywhere. Repeated dry runs with the same random
// sequence are observably pure.
type Printer struct {
	W io.Writer
	n int
}

// Emit writes the "would create" line for ev.
func (p *Printer) Emit(ev model.ScheduledEvent) error {
	p.n++
	_, err := fmt.Fprintf(p.W, "Would create commit: '%s' at %s\n", ev.Message, ev.Time.Format(StampLayout))
	return err
}

// Count returns how many lines have been emitted.
func (p *Printer) Count() int { return p.n }

// Summary writes the terminal dry-run line — the caller's signal that no
// side effects occurred.
func (p *Printer) Summary() {
	fmt.Fprintln(p.W, "Dry run complete. No history was changed.")
}
