package schedule

import "github.com/will-white/fake-history/pkg/model"

// Working window for cluster anchors: commits land between 10:00 and
// 16:59 before jitter pushes later members toward the evening.
const (
	anchorHourMin = 10
	anchorHourMax = 16
)

// DayActive is the daily activity gate: one weighted coin flip deciding
// whether any commit happens on a given day. A frequency of 0 never
// activates, 1 always does. Memoryless — every day is independent.
func DayActive(frequency float64, r Rand) bool {
	return r.Float64() < frequency
}

// ClusterPlan anchors one day's burst of commits: a count and the
// time-of-day the first commit lands at.
type ClusterPlan struct {
	Count      int
	AnchorHour int
	AnchorMin  int
}

// PlanCluster decides the day's commit count and anchor time. Invoked only
// for active days; the count is always >= 1.
//
// The anchor hour comes from [10,16], the minute from [0,59]. The count
// draw from [min,max] is performed unconditionally so the per-day draw
// schedule does not depend on the clustering flag; when clustering is
// disabled the drawn value is discarded and the count is 1.
func PlanCluster(cfg model.ClusterConfig, r Rand) ClusterPlan {
	cfg = cfg.Normalize()
	plan := ClusterPlan{
		Count:      1,
		AnchorHour: r.IntBetween(anchorHourMin, anchorHourMax),
		AnchorMin:  r.IntBetween(0, 59),
	}
	if n := r.IntBetween(cfg.Min, cfg.Max); cfg.Enabled {
		plan.Count = n
	}
	return plan
}
