package condition

import (
	"fmt"
	"strings"
	"time"

	"github.com/inkdeck/display-automation/pkg/device"
)

// parseMinuteOfDay parses an "HH:MM" string into minutes since
// midnight.
func parseMinuteOfDay(s string) (int, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(strings.TrimSpace(s), "%d:%d", &hour, &minute); err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("time %q out of range", s)
	}
	return hour*60 + minute, nil
}

// evaluateTime compares the snapshot clock against HH:MM parameters at
// minute-of-day granularity.
func evaluateTime(cond Condition, snap device.Snapshot) bool {
	now := snap.Now.Hour()*60 + snap.Now.Minute()

	switch cond.Operator {
	case OpEquals, OpAfter, OpBefore:
		raw, ok := cond.GetString("time")
		if !ok {
			return false
		}
		at, err := parseMinuteOfDay(raw)
		if err != nil {
			return false
		}
		switch cond.Operator {
		case OpEquals:
			return now == at
		case OpAfter:
			return now > at
		default:
			return now < at
		}

	case OpBetween:
		rawStart, okStart := cond.GetString("start")
		rawEnd, okEnd := cond.GetString("end")
		if !okStart || !okEnd {
			return false
		}
		start, err := parseMinuteOfDay(rawStart)
		if err != nil {
			return false
		}
		end, err := parseMinuteOfDay(rawEnd)
		if err != nil {
			return false
		}
		// Inclusive at both boundaries, no midnight wrap.
		return start <= now && now <= end

	default:
		return false
	}
}

// evaluateDate checks calendar properties of the snapshot clock.
func evaluateDate(cond Condition, snap device.Snapshot) bool {
	switch cond.Operator {
	case OpDayOfWeek:
		raw, ok := cond.GetString("day")
		if !ok {
			return false
		}
		day, err := parseWeekday(raw)
		if err != nil {
			return false
		}
		return snap.Now.Weekday() == day

	case OpDayOfMonth:
		day, ok := cond.GetInt("day")
		if !ok {
			return false
		}
		return snap.Now.Day() == day

	case OpMonth:
		month, ok := cond.GetInt("month")
		if !ok {
			return false
		}
		return int(snap.Now.Month()) == month

	case OpWeekend:
		wd := snap.Now.Weekday()
		return wd == time.Saturday || wd == time.Sunday

	case OpWeekday:
		wd := snap.Now.Weekday()
		return wd != time.Saturday && wd != time.Sunday

	default:
		return false
	}
}

func parseWeekday(s string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sunday":
		return time.Sunday, nil
	case "monday":
		return time.Monday, nil
	case "tuesday":
		return time.Tuesday, nil
	case "wednesday":
		return time.Wednesday, nil
	case "thursday":
		return time.Thursday, nil
	case "friday":
		return time.Friday, nil
	case "saturday":
		return time.Saturday, nil
	default:
		return 0, fmt.Errorf("unknown weekday %q", s)
	}
}
