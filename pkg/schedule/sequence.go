package schedule

import (
	"time"

	"github.com/will-white/fake-history/pkg/model"
)

// Per-step jitter bounds, in minutes, for spreading cluster members
// across the day.
const (
	jitterMin = 5
	jitterMax = 20
)

// SequenceCluster expands a day's cluster plan into concrete events.
//
// Event 0 lands exactly at the anchor. Each later event adds one fresh
// jitter draw from [5,20] minutes to a running offset; the event's hour is
// anchor hour plus the offset's whole hours. An event whose derived hour
// rolls past 23 is skipped without rescheduling. The loop keeps evaluating
// later offsets rather than breaking — the running offset only grows, so
// once one event overflows no later one can survive, but the draw schedule
// stays uniform.
//
// Surviving timestamps are strictly increasing. Zero survivors is a
// legal outcome, not an error.
func SequenceCluster(day time.Time, plan ClusterPlan, p model.Persona, r Rand) []model.ScheduledEvent {
	events := make([]model.ScheduledEvent, 0, plan.Count)
	minutes := plan.AnchorMin
	for i := 0; i < plan.Count; i++ {
		if i > 0 {
			minutes += r.IntBetween(jitterMin, jitterMax)
		}
		hour := plan.AnchorHour + minutes/60
		if hour > 23 {
			continue
		}
		events = append(events, model.ScheduledEvent{
			Time:    time.Date(day.Year(), day.Month(), day.Day(), hour, minutes%60, 0, 0, day.Location()),
			Message: p.Messages[r.Pick(len(p.Messages))],
			Author:  p.Author,
		})
	}
	return events
}
