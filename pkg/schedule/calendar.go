package schedule

import (
	"fmt"
	"iter"
	"time"
)

// dayLayout is the ISO calendar-date form used throughout the config and
// CLI surface.
const dayLayout = "2006-01-02"

// InvalidRangeError reports a malformed or inverted backfill date range.
// It is returned before any day is scheduled.
type InvalidRangeError struct {
	Start  string
	End    string
	Reason string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid date range %q..%q: %s", e.Start, e.End, e.Reason)
}

// DayRange is an inclusive span of calendar days. The zero value is not
// valid; construct with ParseDayRange.
type DayRange struct {
	start, end time.Time
}

// ParseDayRange parses two ISO YYYY-MM-DD dates into an inclusive range.
// Both endpoints are normalized to midnight UTC. Fails fast with an
// *InvalidRangeError when either date is malformed or start > end.
func ParseDayRange(start, end string) (DayRange, error) {
	s, err := time.ParseInLocation(dayLayout, start, time.UTC)
	if err != nil {
		return DayRange{}, &InvalidRangeError{Start: start, End: end, Reason: fmt.Sprintf("bad start date: %v", err)}
	}
	e, err := time.ParseInLocation(dayLayout, end, time.UTC)
	if err != nil {
		return DayRange{}, &InvalidRangeError{Start: start, End: end, Reason: fmt.Sprintf("bad end date: %v", err)}
	}
	if s.After(e) {
		return DayRange{}, &InvalidRangeError{Start: start, End: end, Reason: "start date is after end date"}
	}
	return DayRange{start: s, end: e}, nil
}

// Start returns the first day of the range.
func (r DayRange) Start() time.Time { return r.start }

// End returns the last day of the range.
func (r DayRange) End() time.Time { return r.end }

// Len returns the number of days in the range, endpoints included.
func (r DayRange) Len() int {
	return int(r.end.Sub(r.start)/(24*time.Hour)) + 1
}

// Days returns a restartable sequence of the range's days in ascending
// order, one value per calendar day at midnight UTC, both endpoints
// included. Ranging again starts over from the first day.
func (r DayRange) Days() iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		for d := r.start; !d.After(r.end); d = d.AddDate(0, 0, 1) {
			if !yield(d) {
				return
			}
		}
	}
}
