package schedule

import (
	"testing"
	"time"

	"github.com/will-white/fake-history/pkg/model"
)

var testPersona = model.Persona{
	Author:   model.Author{Name: "Test User", Email: "test@example.com"},
	Messages: []string{"feat: Test feature", "fix: Test fix"},
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSequenceCluster_FirstEventAtAnchor(t *testing.T) {
	plan := ClusterPlan{Count: 1, AnchorHour: 14, AnchorMin: 25}
	events := SequenceCluster(day(2023, 2, 1), plan, testPersona, &Script{})
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	want := time.Date(2023, 2, 1, 14, 25, 0, 0, time.UTC)
	if !events[0].Time.Equal(want) {
		t.Fatalf("event time: got %v, want %v", events[0].Time, want)
	}
	if events[0].Author != testPersona.Author {
		t.Fatalf("author: got %+v", events[0].Author)
	}
}

func TestSequenceCluster_JitterAccumulates(t *testing.T) {
	plan := ClusterPlan{Count: 3, AnchorHour: 10, AnchorMin: 50}
	// Jitter draws: +15, +20 minutes. Running offsets: 50, 65, 85.
	r := &Script{Ints: []int{15, 20}}
	events := SequenceCluster(day(2023, 2, 1), plan, testPersona, r)
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	wantTimes := []string{"10:50", "11:05", "11:25"}
	for i, ev := range events {
		if got := ev.Time.Format("15:04"); got != wantTimes[i] {
			t.Fatalf("event %d: got %s, want %s", i, got, wantTimes[i])
		}
	}
}

func TestSequenceCluster_StrictlyIncreasing(t *testing.T) {
	plan := ClusterPlan{Count: 10, AnchorHour: 10, AnchorMin: 0}
	events := SequenceCluster(day(2023, 2, 1), plan, testPersona, NewRand())
	for i := 1; i < len(events); i++ {
		if !events[i].Time.After(events[i-1].Time) {
			t.Fatalf("event %d (%v) not after event %d (%v)",
				i, events[i].Time, i-1, events[i-1].Time)
		}
	}
}

func TestSequenceCluster_NeverPastHour23(t *testing.T) {
	plan := ClusterPlan{Count: 50, AnchorHour: 16, AnchorMin: 59}
	events := SequenceCluster(day(2023, 2, 1), plan, testPersona, NewRand())
	for i, ev := range events {
		if ev.Time.Hour() > 23 {
			t.Fatalf("event %d landed at hour %d", i, ev.Time.Hour())
		}
		if ev.Time.Day() != 1 {
			t.Fatalf("event %d rolled to the next day: %v", i, ev.Time)
		}
	}
}

func TestSequenceCluster_OverflowDropsLaterEvents(t *testing.T) {
	// Anchor 23:50; the second event's running offset crosses hour 24 and
	// is dropped, as is everything after it.
	plan := ClusterPlan{Count: 3, AnchorHour: 23, AnchorMin: 50}
	r := &Script{Ints: []int{20, 5}}
	events := SequenceCluster(day(2023, 2, 1), plan, testPersona, r)
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1 (overflowing members dropped)", len(events))
	}
	if got := events[0].Time.Format("15:04"); got != "23:50" {
		t.Fatalf("survivor time: got %s, want 23:50", got)
	}
}

func TestSequenceCluster_MessagesPickedFromPool(t *testing.T) {
	plan := ClusterPlan{Count: 2, AnchorHour: 12, AnchorMin: 0}
	r := &Script{Ints: []int{10}, Picks: []int{1, 0}}
	events := SequenceCluster(day(2023, 2, 1), plan, testPersona, r)
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Message != "fix: Test fix" {
		t.Fatalf("event 0 message: got %q", events[0].Message)
	}
	if events[1].Message != "feat: Test feature" {
		t.Fatalf("event 1 message: got %q", events[1].Message)
	}
}
