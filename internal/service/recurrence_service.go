// Copyright The eBoard Authors.
// SPDX-License-Identifier: MIT

package service

import (
	"sort"
	"strconv"
	"time"

	"github.com/MochamaB/eboard-sub001/internal/domain"
	"github.com/MochamaB/eboard-sub001/internal/domain/models"
	"github.com/MochamaB/eboard-sub001/pkg/datemath"
)

// RecurrenceService expands recurrence rules into occurrence calendars. It is
// stateless and safe for concurrent use; each Generate call produces a fresh
// sequence.
type RecurrenceService struct{}

// NewRecurrenceService creates a new RecurrenceService
func NewRecurrenceService() *RecurrenceService {
	return &RecurrenceService{}
}

// loopHorizonYears bounds generation when a rule has no end date, so an
// open-ended count-terminated rule cannot walk the calendar forever.
const loopHorizonYears = 2

// maxIterations is a safety limit on calendar steps for degenerate input.
const maxIterations = 1000

const isoDateLayout = "2006-01-02"

// Generate expands a rule from the series start into an ordered occurrence
// calendar. Occurrences on/after the start and strictly before the end
// boundary are emitted in ascending order, de-duplicated by calendar date.
// Dates in the rule's exclusion set stay in the sequence flagged excluded.
// The sequence is capped at models.MaxOccurrences; a rule that would produce
// more sets Truncated on the result.
func (s *RecurrenceService) Generate(startTime time.Time, pattern *models.Recurrence, timezone string) (*models.RecurrenceResult, error) {
	if pattern == nil {
		return nil, domain.NewValidationError("recurrence pattern is required")
	}
	if err := s.validate(pattern); err != nil {
		return nil, err
	}

	loc := time.UTC
	if timezone != "" {
		if l, err := time.LoadLocation(timezone); err == nil {
			loc = l
		}
	}
	start := startTime.In(loc)

	end := start.AddDate(loopHorizonYears, 0, 0)
	if pattern.EndDate != nil {
		end = pattern.EndDate.In(loc)
	}

	gen := &occurrenceWalk{
		start:      start,
		end:        end,
		countLimit: pattern.Count,
	}

	switch pattern.Frequency {
	case models.FrequencyWeekly:
		s.walkWeekly(gen, pattern, start, loc)
	case models.FrequencyMonthly:
		s.walkMonthly(gen, pattern, start, loc, nil)
	case models.FrequencyQuarterly:
		s.walkMonthly(gen, pattern, start, loc, pattern.QuarterlyMonths)
	case models.FrequencyAnnually:
		s.walkAnnually(gen, start, loc)
	}

	dates := dedupeDates(gen.dates)
	if len(dates) == 0 {
		return nil, domain.NewRecurrenceBoundsError("recurrence pattern produces no occurrences within its bounds")
	}

	excluded := make(map[string]bool, len(pattern.ExcludeDates))
	for _, d := range pattern.ExcludeDates {
		excluded[d] = true
	}

	occurrences := make([]models.Occurrence, 0, len(dates))
	for i, d := range dates {
		occurrences = append(occurrences, models.Occurrence{
			OccurrenceID: strconv.FormatInt(d.Unix(), 10),
			StartTime:    d,
			Excluded:     excluded[d.Format(isoDateLayout)],
			Position:     i + 1,
		})
	}

	return &models.RecurrenceResult{
		Occurrences: occurrences,
		Truncated:   gen.truncated,
	}, nil
}

// occurrenceWalk accumulates candidate dates. Candidates must arrive in
// ascending order; admit reports whether the walk should continue.
type occurrenceWalk struct {
	start      time.Time
	end        time.Time
	countLimit int
	dates      []time.Time
	truncated  bool
}

func (w *occurrenceWalk) admit(candidate time.Time) bool {
	if candidate.Before(w.start) {
		return true
	}
	if !candidate.Before(w.end) {
		return false
	}
	if w.countLimit > 0 && len(w.dates) >= w.countLimit {
		return false
	}
	if len(w.dates) >= models.MaxOccurrences {
		w.truncated = true
		return false
	}
	w.dates = append(w.dates, candidate)
	return true
}

func (s *RecurrenceService) walkWeekly(w *occurrenceWalk, pattern *models.Recurrence, start time.Time, loc *time.Location) {
	days := uniqueSortedDays(pattern.WeeklyDays)
	weekStart := datemath.StartOfWeek(start)

	for i := 0; i < maxIterations; i++ {
		for _, day := range days {
			candidate := datemath.AtTimeOf(weekStart.AddDate(0, 0, day), start, loc)
			if !w.admit(candidate) {
				return
			}
		}
		weekStart = weekStart.AddDate(0, 0, 7)
	}
}

// walkMonthly advances one month at a time. With a qualifying-months filter
// it implements the quarterly frequency: non-qualifying months are stepped
// over without emitting.
func (s *RecurrenceService) walkMonthly(w *occurrenceWalk, pattern *models.Recurrence, start time.Time, loc *time.Location, qualifyingMonths []int) {
	qualifies := func(m time.Month) bool { return true }
	if len(qualifyingMonths) > 0 {
		set := make(map[int]bool, len(qualifyingMonths))
		for _, m := range qualifyingMonths {
			set[m] = true
		}
		qualifies = func(m time.Month) bool { return set[int(m)] }
	}

	year, month := start.Year(), start.Month()
	for i := 0; i < maxIterations; i++ {
		if qualifies(month) {
			if candidate, ok := s.resolveMonthDay(pattern, year, month, start, loc); ok {
				if !w.admit(candidate) {
					return
				}
			}
		}
		month++
		if month > time.December {
			month = time.January
			year++
		}
	}
}

// resolveMonthDay resolves the rule's day within one month: a fixed day
// clamped to the month's length, or the nth (or last) weekday. ok is false
// when the month has no such day, e.g. no 5th Friday.
func (s *RecurrenceService) resolveMonthDay(pattern *models.Recurrence, year int, month time.Month, ref time.Time, loc *time.Location) (time.Time, bool) {
	if pattern.UsesNthWeekday() {
		return datemath.NthWeekdayOfMonth(year, month, pattern.WeekOfMonth, time.Weekday(pattern.WeekDay), ref, loc)
	}
	return datemath.ClampDayOfMonth(year, month, pattern.MonthlyDay, ref, loc), true
}

func (s *RecurrenceService) walkAnnually(w *occurrenceWalk, start time.Time, loc *time.Location) {
	for i := 0; i < maxIterations; i++ {
		candidate := datemath.ClampDayOfMonth(start.Year()+i, start.Month(), start.Day(), start, loc)
		if !w.admit(candidate) {
			return
		}
	}
}

func (s *RecurrenceService) validate(pattern *models.Recurrence) error {
	if !pattern.Frequency.IsValid() {
		return domain.NewValidationError("unknown recurrence frequency: " + string(pattern.Frequency))
	}
	if pattern.Count < 0 {
		return domain.NewValidationError("occurrence count cannot be negative")
	}
	for _, d := range pattern.ExcludeDates {
		if _, err := time.Parse(isoDateLayout, d); err != nil {
			return domain.NewValidationError("exclude date must be an ISO date (" + isoDateLayout + "): " + d)
		}
	}

	switch pattern.Frequency {
	case models.FrequencyWeekly:
		if len(pattern.WeeklyDays) == 0 {
			return domain.NewRecurrenceBoundsError("weekly pattern has no weekdays configured")
		}
		for _, d := range pattern.WeeklyDays {
			if d < 0 || d > 6 {
				return domain.NewValidationError("weekday out of range 0..6: " + strconv.Itoa(d))
			}
		}
	case models.FrequencyMonthly:
		if err := s.validateMonthDayRule(pattern); err != nil {
			return err
		}
	case models.FrequencyQuarterly:
		if len(pattern.QuarterlyMonths) == 0 {
			return domain.NewRecurrenceBoundsError("quarterly pattern has no months configured")
		}
		for _, m := range pattern.QuarterlyMonths {
			if m < 1 || m > 12 {
				return domain.NewValidationError("month out of range 1..12: " + strconv.Itoa(m))
			}
		}
		if err := s.validateMonthDayRule(pattern); err != nil {
			return err
		}
	}
	return nil
}

func (s *RecurrenceService) validateMonthDayRule(pattern *models.Recurrence) error {
	if pattern.UsesNthWeekday() {
		if pattern.WeekOfMonth != -1 && (pattern.WeekOfMonth < 1 || pattern.WeekOfMonth > 4) {
			return domain.NewValidationError("week of month must be 1..4 or -1 for last")
		}
		if pattern.WeekDay < 0 || pattern.WeekDay > 6 {
			return domain.NewValidationError("weekday out of range 0..6: " + strconv.Itoa(pattern.WeekDay))
		}
		return nil
	}
	if pattern.MonthlyDay == 0 {
		return domain.NewRecurrenceBoundsError("monthly pattern needs a day of month or a weekday position")
	}
	if pattern.MonthlyDay < 1 || pattern.MonthlyDay > 31 {
		return domain.NewValidationError("day of month out of range 1..31: " + strconv.Itoa(pattern.MonthlyDay))
	}
	return nil
}

func uniqueSortedDays(days []int) []int {
	seen := make(map[int]bool, len(days))
	out := make([]int, 0, len(days))
	for _, d := range days {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	sort.Ints(out)
	return out
}

func dedupeDates(dates []time.Time) []time.Time {
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	out := dates[:0]
	for i, d := range dates {
		if i > 0 && datemath.SameDate(d, out[len(out)-1]) {
			continue
		}
		out = append(out, d)
	}
	return out
}
