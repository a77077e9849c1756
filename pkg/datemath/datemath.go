// Copyright The eBoard Authors.
// SPDX-License-Identifier: MIT

// Package datemath provides pure calendar arithmetic used by the recurrence
// engine: week/month boundaries, nth-weekday resolution, and day-of-month
// clamping. All functions preserve the wall-clock time and location of their
// inputs.
package datemath

import "time"

// StartOfWeek returns the Sunday at or before the given date, preserving the
// time of day.
func StartOfWeek(date time.Time) time.Time {
	return date.AddDate(0, 0, -int(date.Weekday()))
}

// DaysInMonth returns the number of days in the month containing the given
// year and month.
func DaysInMonth(year int, month time.Month, loc *time.Location) int {
	// Day zero of the next month is the last day of this month.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

// ClampDayOfMonth returns a date in the given year/month on the requested day,
// clamped to the last day of the month when the month is shorter (e.g. day 31
// in February resolves to February 28 or 29).
func ClampDayOfMonth(year int, month time.Month, day int, ref time.Time, loc *time.Location) time.Time {
	last := DaysInMonth(year, month, loc)
	if day > last {
		day = last
	}
	return time.Date(year, month, day, ref.Hour(), ref.Minute(), ref.Second(), ref.Nanosecond(), loc)
}

// NthWeekdayOfMonth resolves the nth occurrence of a weekday within a month,
// walking forward from the first of the month. week is 1-based; week == -1
// resolves the last occurrence by walking backward from month-end. The
// returned date carries ref's time of day. The second return value is false
// when the month has no nth occurrence (e.g. a 5th Friday in a 4-Friday
// month).
func NthWeekdayOfMonth(year int, month time.Month, week int, weekday time.Weekday, ref time.Time, loc *time.Location) (time.Time, bool) {
	if week == -1 {
		lastDay := time.Date(year, month+1, 0, ref.Hour(), ref.Minute(), ref.Second(), ref.Nanosecond(), loc)
		back := (int(lastDay.Weekday()) - int(weekday) + 7) % 7
		return lastDay.AddDate(0, 0, -back), true
	}

	first := time.Date(year, month, 1, ref.Hour(), ref.Minute(), ref.Second(), ref.Nanosecond(), loc)
	forward := (int(weekday) - int(first.Weekday()) + 7) % 7
	candidate := first.AddDate(0, 0, forward+(week-1)*7)
	if candidate.Month() != month {
		return time.Time{}, false
	}
	return candidate, true
}

// SameDate reports whether two instants fall on the same calendar date in
// their respective locations.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// AtTimeOf returns the calendar date of 'date' combined with the wall-clock
// time of 'ref' in the given location.
func AtTimeOf(date, ref time.Time, loc *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		ref.Hour(), ref.Minute(), ref.Second(), ref.Nanosecond(), loc)
}
