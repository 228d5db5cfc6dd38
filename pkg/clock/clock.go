// Package clock supplies "now" to report builders so time-dependent figures
// can be reproduced in tests.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

type System struct {
	Location *time.Location
}

func (s System) Now() time.Time {
	if s.Location != nil {
		return time.Now().In(s.Location)
	}
	return time.Now()
}

// Fixed always returns the same instant.
type Fixed time.Time

func (f Fixed) Now() time.Time {
	return time.Time(f)
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysBetween is the calendar-day difference to - from in from's location.
// It counts midnights crossed, not elapsed 24h periods.
func DaysBetween(from, to time.Time) int {
	a := StartOfDay(from)
	b := StartOfDay(to.In(from.Location()))
	// rounding absorbs the 23h and 25h days of DST transitions
	return int(b.Sub(a).Round(24*time.Hour) / (24 * time.Hour))
}

// StartOfWeek returns Monday 00:00 of t's ISO week.
func StartOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return StartOfDay(t).AddDate(0, 0, -offset)
}

func StartOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}
