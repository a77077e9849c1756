// Copyright The eBoard Authors.
// SPDX-License-Identifier: MIT

package models

import (
	"time"
)

// Frequency is the repetition unit of a recurrence rule.
type Frequency string

const (
	FrequencyWeekly    Frequency = "weekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyAnnually  Frequency = "annually"
)

// IsValid reports whether the frequency is a known value.
func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyWeekly, FrequencyMonthly, FrequencyQuarterly, FrequencyAnnually:
		return true
	}
	return false
}

// MaxOccurrences is the hard cap on generated occurrences for a single rule,
// excluded dates included. Generation past the cap sets Truncated on the
// result rather than failing.
const MaxOccurrences = 52

// Recurrence describes how a meeting series repeats. Exactly one shape of
// fields applies per frequency:
//
//   - weekly: WeeklyDays lists the weekdays (0 = Sunday).
//   - monthly: either MonthlyDay (clamped to the month's length) or the
//     WeekOfMonth/WeekDay pair (1..4, or -1 for the last such weekday).
//   - quarterly: QuarterlyMonths lists months (1..12) plus MonthlyDay or the
//     WeekOfMonth/WeekDay pair.
//   - annually: the series start's month and day repeat each year.
//
// EndDate and Count both bound the series; whichever is hit first wins.
// ExcludeDates holds ISO dates (2006-01-02) that stay in the generated set
// but are flagged excluded, so a skipped occurrence is still visible.
type Recurrence struct {
	Frequency       Frequency  `json:"frequency"`
	WeeklyDays      []int      `json:"weekly_days,omitempty"`
	MonthlyDay      int        `json:"monthly_day,omitempty"`
	WeekOfMonth     int        `json:"week_of_month,omitempty"`
	WeekDay         int        `json:"week_day,omitempty"`
	QuarterlyMonths []int      `json:"quarterly_months,omitempty"`
	EndDate         *time.Time `json:"end_date,omitempty"`
	Count           int        `json:"count,omitempty"`
	ExcludeDates    []string   `json:"exclude_dates,omitempty"`
}

// UsesNthWeekday reports whether the rule positions occurrences by weekday
// within the month rather than by day number.
func (r *Recurrence) UsesNthWeekday() bool {
	return r.WeekOfMonth != 0
}

// Occurrence is one generated slot in a meeting series.
type Occurrence struct {
	OccurrenceID string    `json:"occurrence_id"`
	StartTime    time.Time `json:"start_time"`
	// Excluded marks a slot that matched an exclusion date. It stays in the
	// series so the gap is observable, but no meeting is created for it.
	Excluded bool `json:"excluded,omitempty"`
	// Position is the 1-based index within the series, excluded slots
	// included.
	Position int `json:"position"`
}

// RecurrenceResult is the outcome of expanding a rule.
type RecurrenceResult struct {
	Occurrences []Occurrence `json:"occurrences"`
	// Truncated reports that the rule would have produced more than
	// MaxOccurrences and the tail was cut.
	Truncated bool `json:"truncated,omitempty"`
}
