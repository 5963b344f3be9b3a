package schedule

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/will-white/fake-history/pkg/model"
)

func mustRange(t *testing.T, start, end string) DayRange {
	t.Helper()
	r, err := ParseDayRange(start, end)
	if err != nil {
		t.Fatalf("ParseDayRange(%q, %q): %v", start, end, err)
	}
	return r
}

// recordingEmitter captures emitted events and can be told to fail.
type recordingEmitter struct {
	events  []model.ScheduledEvent
	failAt  int // fail on the nth Emit (1-based); 0 = never
	emitted int
}

func (e *recordingEmitter) Emit(ev model.ScheduledEvent) error {
	e.emitted++
	if e.failAt > 0 && e.emitted >= e.failAt {
		return errors.New("remote hung up")
	}
	e.events = append(e.events, ev)
	return nil
}

// The pinned draw sequence: per day the scheduler consumes one gate float
// and three ints (anchor hour, anchor minute, discarded count draw), so
// with clustering disabled this script yields exactly one commit per day
// at 10:05, 14:25, and 18:55.
func TestBackfill_FixedSequence(t *testing.T) {
	sch := &Scheduler{
		Rand: &Script{
			Floats: []float64{0.5, 0.5, 0.5},
			Ints:   []int{10, 5, 10, 14, 25, 10, 18, 55, 10},
		},
		Persona: testPersona,
		Cluster: model.ClusterConfig{Enabled: false},
	}

	var buf bytes.Buffer
	printer := &Printer{W: &buf}
	stats, err := sch.Backfill(mustRange(t, "2023-02-01", "2023-02-03"), 1.0, printer)
	if err != nil {
		t.Fatalf("Backfill: %v", err)
	}
	if stats.Events != 3 || stats.DaysActive != 3 || stats.DaysTotal != 3 {
		t.Fatalf("stats: %+v", stats)
	}

	want := "Would create commit: 'feat: Test feature' at 2023-02-01T10:05:00\n" +
		"Would create commit: 'feat: Test feature' at 2023-02-02T14:25:00\n" +
		"Would create commit: 'feat: Test feature' at 2023-02-03T18:55:00\n"
	if buf.String() != want {
		t.Fatalf("output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestBackfill_DryRunLineCountAndSummary(t *testing.T) {
	// 2 days × exactly 2 commits per cluster = 4 lines plus the summary.
	sch := &Scheduler{
		Rand:    NewRand(),
		Persona: testPersona,
		Cluster: model.ClusterConfig{Enabled: true, Min: 2, Max: 2},
	}

	var buf bytes.Buffer
	printer := &Printer{W: &buf}
	stats, err := sch.Backfill(mustRange(t, "2023-02-01", "2023-02-02"), 1.0, printer)
	if err != nil {
		t.Fatalf("Backfill: %v", err)
	}
	printer.Summary()

	out := buf.String()
	if got := strings.Count(out, "Would create commit: '"); got != 4 {
		t.Fatalf("got %d 'Would create commit' lines, want 4\n%s", got, out)
	}
	if printer.Count() != 4 || stats.Events != 4 {
		t.Fatalf("counts diverge: printer=%d stats=%d", printer.Count(), stats.Events)
	}
	if !strings.Contains(out, "Dry run complete. No history was changed.") {
		t.Fatalf("missing summary line:\n%s", out)
	}
}

func TestBackfill_FrequencyZeroProducesNothing(t *testing.T) {
	sch := &Scheduler{
		Rand:    NewRand(),
		Persona: testPersona,
		Cluster: model.ClusterConfig{Enabled: true, Min: 1, Max: 4},
	}
	rec := &recordingEmitter{}
	stats, err := sch.Backfill(mustRange(t, "2023-01-01", "2023-03-31"), 0, rec)
	if err != nil {
		t.Fatalf("Backfill: %v", err)
	}
	if stats.DaysActive != 0 || stats.Events != 0 || len(rec.events) != 0 {
		t.Fatalf("frequency 0 produced activity: %+v", stats)
	}
	if stats.DaysTotal != 90 {
		t.Fatalf("days total: got %d, want 90", stats.DaysTotal)
	}
}

func TestBackfill_ChronologicalOrder(t *testing.T) {
	sch := &Scheduler{
		Rand:    NewRand(),
		Persona: testPersona,
		Cluster: model.ClusterConfig{Enabled: true, Min: 2, Max: 5},
	}
	rec := &recordingEmitter{}
	if _, err := sch.Backfill(mustRange(t, "2023-02-01", "2023-02-28"), 1.0, rec); err != nil {
		t.Fatalf("Backfill: %v", err)
	}
	for i := 1; i < len(rec.events); i++ {
		if !rec.events[i].Time.After(rec.events[i-1].Time) {
			t.Fatalf("event %d (%v) not after event %d (%v)",
				i, rec.events[i].Time, i-1, rec.events[i-1].Time)
		}
	}
}

func TestBackfill_EmitterFailureAborts(t *testing.T) {
	sch := &Scheduler{
		Rand:    NewRand(),
		Persona: testPersona,
		Cluster: model.ClusterConfig{Enabled: false},
	}
	rec := &recordingEmitter{failAt: 2}
	stats, err := sch.Backfill(mustRange(t, "2023-02-01", "2023-02-10"), 1.0, rec)
	if err == nil {
		t.Fatal("expected error from failing emitter")
	}
	if !strings.Contains(err.Error(), "remote hung up") {
		t.Fatalf("error does not surface the emitter diagnostic: %v", err)
	}
	if stats.Events != 1 {
		t.Fatalf("events before abort: got %d, want 1", stats.Events)
	}
	if rec.emitted != 2 {
		t.Fatalf("emit attempts: got %d, want 2 (no retries, no later days)", rec.emitted)
	}
}

func TestPlanDay_InactiveReturnsNil(t *testing.T) {
	sch := &Scheduler{
		Rand:    &Script{Floats: []float64{0.9}},
		Persona: testPersona,
		Cluster: model.ClusterConfig{Enabled: false},
	}
	if events := sch.PlanDay(day(2023, 2, 1), 0.5); events != nil {
		t.Fatalf("inactive day returned %d events", len(events))
	}
}

func TestPlanDay_ActiveDisabledClusteringExactlyOne(t *testing.T) {
	sch := &Scheduler{
		Rand:    NewRand(),
		Persona: testPersona,
		Cluster: model.ClusterConfig{Enabled: false},
	}
	for i := 0; i < 200; i++ {
		events := sch.PlanDay(day(2023, 2, 1), 1.0)
		if len(events) != 1 {
			t.Fatalf("got %d events, want exactly 1", len(events))
		}
	}
}

func TestPlanDay_SurvivorsBoundedByClusterCount(t *testing.T) {
	sch := &Scheduler{
		Rand:    NewRand(),
		Persona: testPersona,
		Cluster: model.ClusterConfig{Enabled: true, Min: 3, Max: 6},
	}
	for i := 0; i < 200; i++ {
		events := sch.PlanDay(day(2023, 2, 1), 1.0)
		if len(events) > 6 {
			t.Fatalf("got %d events, cluster max is 6", len(events))
		}
	}
}

func TestPrinter_LineFormat(t *testing.T) {
	var buf bytes.Buffer
	p := &Printer{W: &buf}
	ev := model.ScheduledEvent{
		Time:    time.Date(2023, 2, 1, 10, 5, 0, 0, time.UTC),
		Message: "fix: Correct bug",
		Author:  testPersona.Author,
	}
	if err := p.Emit(ev); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	want := "Would create commit: 'fix: Correct bug' at 2023-02-01T10:05:00\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}
