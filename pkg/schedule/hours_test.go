package schedule

import (
	"testing"
	"time"

	"github.com/will-white/fake-history/pkg/model"
)

var workweek = model.WorkingHoursConfig{
	Enabled:        true,
	StartHour:      9,
	EndHour:        17,
	WorkOnSaturday: false,
	WorkOnSunday:   false,
}

// 2025-01-06 is a Monday; the 4th and 5th are Saturday and Sunday.
func monday(hour int) time.Time {
	return time.Date(2025, 1, 6, hour, 30, 0, 0, time.UTC)
}

func TestShouldRun_DuringWorkingHoursWeekday(t *testing.T) {
	for _, hour := range []int{9, 12, 16} {
		ok, reason := ShouldRun(monday(hour), workweek, 0.2, &Script{Floats: []float64{0.3}})
		if !ok {
			t.Fatalf("hour %d: skipped (%s), want proceed", hour, reason)
		}
	}
}

func TestShouldRun_OutsideWorkingHoursWeekday(t *testing.T) {
	// Skipped regardless of the random draw — the hour check comes first.
	for _, hour := range []int{8, 17, 23} {
		ok, _ := ShouldRun(monday(hour), workweek, 0.2, &Script{Floats: []float64{0.99}})
		if ok {
			t.Fatalf("hour %d: proceeded, want skip", hour)
		}
	}
}

func TestShouldRun_WeekendDisabled(t *testing.T) {
	for _, d := range []int{4, 5} { // Saturday, Sunday
		now := time.Date(2025, 1, d, 14, 0, 0, 0, time.UTC)
		ok, _ := ShouldRun(now, workweek, 0, &Script{})
		if ok {
			t.Fatalf("%s: proceeded, want skip", now.Weekday())
		}
	}
}

func TestShouldRun_SaturdayEnabled(t *testing.T) {
	cfg := workweek
	cfg.WorkOnSaturday = true
	now := time.Date(2025, 1, 4, 14, 0, 0, 0, time.UTC)
	ok, reason := ShouldRun(now, cfg, 0.2, &Script{Floats: []float64{0.3}})
	if !ok {
		t.Fatalf("enabled Saturday: skipped (%s), want proceed", reason)
	}
}

func TestShouldRun_SkipChanceTriggers(t *testing.T) {
	ok, reason := ShouldRun(monday(14), workweek, 0.2, &Script{Floats: []float64{0.1}})
	if ok {
		t.Fatal("draw 0.1 under skip chance 0.2: proceeded, want skip")
	}
	if reason == "" {
		t.Fatal("skip must carry a reason")
	}
}

func TestShouldRun_SkipChanceDrawAbove(t *testing.T) {
	ok, _ := ShouldRun(monday(14), workweek, 0.2, &Script{Floats: []float64{0.2}})
	if !ok {
		t.Fatal("draw at skip chance boundary must proceed (strict less-than)")
	}
}

func TestShouldRun_DisabledAlwaysProceeds(t *testing.T) {
	cfg := workweek
	cfg.Enabled = false
	// Sunday 02:00 with a certain skip draw — still proceeds.
	now := time.Date(2025, 1, 5, 2, 0, 0, 0, time.UTC)
	ok, _ := ShouldRun(now, cfg, 1.0, &Script{Floats: []float64{0.0}})
	if !ok {
		t.Fatal("disabled gate: skipped, want proceed")
	}
}

// The weekend check precedes the hour check, which precedes the random
// draw: a Saturday at a working hour must skip without consuming a draw.
func TestShouldRun_CheckOrder(t *testing.T) {
	r := &Script{Floats: []float64{0.7}}
	now := time.Date(2025, 1, 4, 10, 0, 0, 0, time.UTC) // Saturday, in-hours
	if ok, _ := ShouldRun(now, workweek, 1.0, r); ok {
		t.Fatal("Saturday: proceeded, want skip")
	}
	if got := r.Float64(); got != 0.7 {
		t.Fatalf("weekend skip consumed the random draw (next = %v)", got)
	}

	r = &Script{Floats: []float64{0.7}}
	if ok, _ := ShouldRun(monday(8), workweek, 1.0, r); ok {
		t.Fatal("hour 8: proceeded, want skip")
	}
	if got := r.Float64(); got != 0.7 {
		t.Fatalf("hour skip consumed the random draw (next = %v)", got)
	}
}
