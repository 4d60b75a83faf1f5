// Package dates derives display labels from task due dates. Functions take
// the reference time explicitly so callers and tests control the clock.
package dates

import (
	"fmt"
	"time"
)

const noDueDate = "No due date"

// Format renders a date like "Jan 1, 2023", or "No due date" for nil.
func Format(date *time.Time) string {
	if date == nil {
		return noDueDate
	}
	return date.Format("Jan 2, 2006")
}

// FormatTime renders the time of day like "3:30 PM", or "" for nil.
func FormatTime(date *time.Time) string {
	if date == nil {
		return ""
	}
	return date.Format("3:04 PM")
}

// IsToday reports whether date falls on the same calendar day as now.
func IsToday(date *time.Time, now time.Time) bool {
	if date == nil {
		return false
	}
	y1, m1, d1 := date.Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// IsPast reports whether date is before the start of today.
func IsPast(date *time.Time, now time.Time) bool {
	if date == nil {
		return false
	}
	return date.Before(startOfDay(now))
}

// WithinDays reports whether date falls between the start of today and the
// end of the day n days from now, inclusive.
func WithinDays(date *time.Time, now time.Time, n int) bool {
	if date == nil {
		return false
	}
	start := startOfDay(now)
	end := start.AddDate(0, 0, n+1)
	return !date.Before(start) && date.Before(end)
}

// Relative renders a human label for the due date: "Today", "Tomorrow",
// "In 3 days", "Yesterday", "2 days ago", falling back to Format outside
// the one-week window either way.
func Relative(date *time.Time, now time.Time) string {
	if date == nil {
		return noDueDate
	}

	days := daysBetween(startOfDay(now), startOfDay(*date))
	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days > 1 && days < 7:
		return fmt.Sprintf("In %d days", days)
	case days == -1:
		return "Yesterday"
	case days < 0 && days > -7:
		return fmt.Sprintf("%d days ago", -days)
	}
	return Format(date)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// daysBetween counts calendar days from a to b, rounding to absorb DST
// shifts inside the span.
func daysBetween(a, b time.Time) int {
	const day = 24 * time.Hour
	diff := b.Sub(a)
	if diff < 0 {
		return -int((-diff + day/2) / day)
	}
	return int((diff + day/2) / day)
}
