// Package dates holds the calendar semantics the planner is built around:
// sortable date keys, the 15-day WORKING/NOMAD zone cycle, and the
// NORMAL/WEDNESDAY/SUNDAY day types that select daily templates.
package dates

import (
	"fmt"
	"time"
)

// Zone is the recurring 15-day mode derived from the day of month.
type Zone string

const (
	ZoneWorking Zone = "WORKING"
	ZoneNomad   Zone = "NOMAD"
)

// DayType selects an alternate daily template based on the weekday.
type DayType string

const (
	DayNormal    DayType = "NORMAL"
	DayWednesday DayType = "WEDNESDAY"
	DaySunday    DayType = "SUNDAY"
)

// ZoneFor returns WORKING for days 1-15 of the month, NOMAD otherwise.
func ZoneFor(t time.Time) Zone {
	if t.Day() <= 15 {
		return ZoneWorking
	}
	return ZoneNomad
}

// DaysRemainingInZone returns how many days are left in the current zone.
func DaysRemainingInZone(t time.Time) int {
	if t.Day() <= 15 {
		return 15 - t.Day()
	}
	return daysInMonth(t) - t.Day()
}

// DayTypeFor maps Sunday and Wednesday onto their dedicated day types.
func DayTypeFor(t time.Time) DayType {
	switch t.Weekday() {
	case time.Sunday:
		return DaySunday
	case time.Wednesday:
		return DayWednesday
	default:
		return DayNormal
	}
}

// Key returns the sortable yyyy-mm-dd identifier for a calendar day.
func Key(t time.Time) string { return t.Format("2006-01-02") }

// MonthKey returns the yyyy-mm identifier used for monthly grouping.
func MonthKey(t time.Time) string { return t.Format("2006-01") }

// WeekKey returns the ISO-week identifier (e.g. "2026-07") used for weekly grouping.
func WeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-%02d", year, week)
}

// ParseKey parses a yyyy-mm-dd date key.
func ParseKey(key string) (time.Time, error) {
	return time.Parse("2006-01-02", key)
}

// StartOfDay truncates t to midnight in its location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Range returns every calendar day from start to end inclusive.
// An inverted range (start after end) yields an empty slice.
func Range(start, end time.Time) []time.Time {
	start = StartOfDay(start)
	end = StartOfDay(end)
	if start.After(end) {
		return nil
	}
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// RangeKeys returns the date keys for every day from start to end inclusive.
func RangeKeys(start, end time.Time) []string {
	days := Range(start, end)
	keys := make([]string, 0, len(days))
	for _, d := range days {
		keys = append(keys, Key(d))
	}
	return keys
}

func daysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}
