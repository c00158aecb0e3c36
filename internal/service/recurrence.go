package service

import (
	"time"

	"task-assistant/internal/model"
)

// NextRunTime maps a recurrence unit to the next trigger timestamp.
// "monthly" is a fixed 30-day step, not calendar-month-aware; unrecognized
// units fall back to daily.
func NextRunTime(unit string, now time.Time) time.Time {
	switch unit {
	case model.RunEveryMinute:
		return now.Add(time.Minute)
	case model.RunEveryHourly:
		return now.Add(time.Hour)
	case model.RunEveryDaily:
		return now.Add(24 * time.Hour)
	case model.RunEveryWeekly:
		return now.Add(7 * 24 * time.Hour)
	case model.RunEveryMonthly:
		return now.Add(30 * 24 * time.Hour)
	default:
		return now.Add(24 * time.Hour)
	}
}
