package schedule

import (
	"fmt"
	"time"

	"github.com/will-white/fake-history/pkg/model"
)

// ShouldRun is the working-hours gate for periodic runs: given "now" and
// the policy, it decides whether the caller should act at all. On skip,
// reason says why.
//
// Checks short-circuit in a fixed order — weekend, then hour window, then
// the residual random skip — so the random draw only happens once all the
// deterministic checks pass.
func ShouldRun(now time.Time, cfg model.WorkingHoursConfig, skipChance float64, r Rand) (proceed bool, reason string) {
	if !cfg.Enabled {
		return true, ""
	}
	switch now.Weekday() {
	case time.Saturday:
		if !cfg.WorkOnSaturday {
			return false, "it's Saturday"
		}
	case time.Sunday:
		if !cfg.WorkOnSunday {
			return false, "it's Sunday"
		}
	}
	if now.Hour() < cfg.StartHour || now.Hour() >= cfg.EndHour {
		return false, fmt.Sprintf("hour %d outside working hours %d..%d", now.Hour(), cfg.StartHour, cfg.EndHour)
	}
	if r.Float64() < skipChance {
		return false, "randomly skipped (simulating a busy day)"
	}
	return true, ""
}
