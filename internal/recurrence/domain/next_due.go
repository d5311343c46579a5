package domain

import (
	"sort"
	"time"
)

// ComputeNextDueDate returns the next occurrence after the anchor: the current
// due date in fixed-schedule mode when there is one, the completion time
// otherwise. All arithmetic is on the UTC calendar and keeps the anchor's
// time of day.
func ComputeNextDueDate(rule Rule, currentDue *time.Time, completedAt time.Time) (time.Time, error) {
	if err := rule.Validate(); err != nil {
		return time.Time{}, err
	}

	anchor := completedAt
	if rule.Mode == ModeFixedSchedule && currentDue != nil {
		anchor = *currentDue
	}
	anchor = anchor.UTC()

	switch rule.Frequency {
	case FrequencyWeekly:
		if len(rule.DaysOfWeek) == 0 {
			return anchor.AddDate(0, 0, 7*rule.Interval), nil
		}
		return anchor.AddDate(0, 0, daysToNextWeekday(anchor.Weekday(), rule.DaysOfWeek, rule.Interval)), nil
	case FrequencyMonthly:
		day := anchor.Day()
		if rule.DayOfMonth != nil {
			day = *rule.DayOfMonth
		}
		return addMonthsClamped(anchor, rule.Interval, day), nil
	default:
		return anchor.AddDate(0, 0, rule.Interval), nil
	}
}

// daysToNextWeekday finds the nearest later day of the anchor's week, or wraps
// to the first listed day interval weeks on.
func daysToNextWeekday(from time.Weekday, days Weekdays, interval int) int {
	sorted := append([]int(nil), days...)
	sort.Ints(sorted)

	base := int(from)
	for _, d := range sorted {
		if d > base {
			return d - base
		}
	}
	return (7 - base + sorted[0]) + (interval-1)*7
}

// addMonthsClamped moves t forward by months and lands on day, or on the last
// day of the target month when day does not exist there.
func addMonthsClamped(t time.Time, months, day int) time.Time {
	hour, min, sec := t.Clock()
	target := time.Date(t.Year(), t.Month()+time.Month(months), 1, hour, min, sec, t.Nanosecond(), time.UTC)

	if last := daysIn(target.Year(), target.Month()); day > last {
		day = last
	}
	return time.Date(target.Year(), target.Month(), day, hour, min, sec, t.Nanosecond(), time.UTC)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
