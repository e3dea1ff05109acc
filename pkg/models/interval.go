package models

import "time"

type IntervalType string

const (
	IntervalDays   IntervalType = "DAYS"
	IntervalWeeks  IntervalType = "WEEKS"
	IntervalMonths IntervalType = "MONTHS"
	IntervalYears  IntervalType = "YEARS"
)

func (i IntervalType) Valid() bool {
	switch i {
	case IntervalDays, IntervalWeeks, IntervalMonths, IntervalYears:
		return true
	}
	return false
}

// AddInterval advances t by value units. Days and weeks are fixed durations; months and
// years move on the calendar and clamp to the last day of a shorter month.
func AddInterval(t time.Time, kind IntervalType, value int) time.Time {
	switch kind {
	case IntervalDays:
		return t.Add(time.Duration(value) * 24 * time.Hour)
	case IntervalWeeks:
		return t.Add(time.Duration(value) * 7 * 24 * time.Hour)
	case IntervalMonths:
		return addMonthsClamped(t, value)
	case IntervalYears:
		return addMonthsClamped(t, 12*value)
	}
	return t
}

func addMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	hh, mm, ss := t.Clock()
	firstOfTarget := time.Date(y, m+time.Month(months), 1, hh, mm, ss, t.Nanosecond(), t.Location())
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if d > lastDay {
		d = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), d, hh, mm, ss, t.Nanosecond(), t.Location())
}
