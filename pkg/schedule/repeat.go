package schedule

import (
	"time"

	"github.com/inkdeck/display-automation/pkg/rule"
)

// Fixed repeat offsets. Daily, weekly and monthly are flat durations
// from the last execution attempt; monthly is deliberately +30 days,
// not calendar arithmetic.
const (
	dailyOffset   = 24 * time.Hour
	weeklyOffset  = 7 * 24 * time.Hour
	monthlyOffset = 30 * 24 * time.Hour
)

// Next computes the next due time for a rule after an execution attempt
// at last. A zero result means the rule is never due again; continuous
// rules have no schedule slot and also return zero.
func Next(r rule.Rule, last time.Time) time.Time {
	switch r.Repeat {
	case rule.RepeatDaily:
		return last.Add(dailyOffset)
	case rule.RepeatWeekly:
		return last.Add(weeklyOffset)
	case rule.RepeatMonthly:
		return last.Add(monthlyOffset)
	case rule.RepeatInterval:
		if r.Interval <= 0 {
			return time.Time{}
		}
		return last.Add(r.Interval)
	default:
		// once, continuous, or unknown: no further schedule slot.
		return time.Time{}
	}
}

// Due reports whether a rule should execute on a tick at now.
// Continuous rules are due on every tick; scheduled rules are due when
// their slot has arrived. A scheduled rule with a zero NextRun is
// exhausted and never due.
func Due(r rule.Rule, now time.Time) bool {
	if !r.Scheduled() {
		return true
	}
	if r.NextRun.IsZero() {
		return false
	}
	return !r.NextRun.After(now)
}
