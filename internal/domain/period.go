package domain

import "time"

// PeriodStart returns the inclusive start boundary of the current tracking
// period: local midnight for daily habits, local midnight of the current
// week's Sunday for weekly habits. Reports at or after the boundary belong
// to the period; no upper bound is applied, so future-dated reports count.
func PeriodStart(now time.Time, f Frequency) time.Time {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if f == FrequencyWeekly {
		day = day.AddDate(0, 0, -int(day.Weekday()))
	}
	return day
}
