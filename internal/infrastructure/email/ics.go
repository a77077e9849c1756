// Copyright The eBoard Authors.
// SPDX-License-Identifier: MIT

package email

import (
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/MochamaB/eboard-sub001/internal/domain/models"
)

// ICS constants for consistent values across all generated ICS files
const (
	ICSProdID         = "-//eBoard//Board Meeting Service//EN"
	ICALVersion       = "2.0"
	ICALScale         = "GREGORIAN"
	ICALMaxLineLength = 75
)

// ICS organizer information
const (
	OrganizerEmail = "governance@eboard.app"
	OrganizerName  = "eBoard Governance"
)

// UTF-8 byte masks for line folding safety
const (
	UTF8TwoBitMask         = 0xC0 // Mask to isolate first two bits (11000000)
	UTF8ContinuationPrefix = 0x80 // UTF-8 continuation byte prefix (10000000)
)

// MeetingICSGenerator is the interface for generating ICS calendar files
type MeetingICSGenerator interface {
	GenerateMeetingInvitationICS(params ICSMeetingInvitationParams) (string, error)
	GenerateMeetingCancellationICS(params ICSMeetingCancellationParams) (string, error)
}

// ICSGenerator generates ICS (iCalendar) files for meeting invitations
type ICSGenerator struct{}

// NewICSGenerator creates a new ICS generator
func NewICSGenerator() *ICSGenerator {
	return &ICSGenerator{}
}

// Ensure [ICSGenerator] implements [MeetingICSGenerator]
var _ MeetingICSGenerator = (*ICSGenerator)(nil)

// ICSMeetingInvitationParams contains all the information needed to generate
// an ICS file for a meeting invitation
type ICSMeetingInvitationParams struct {
	MeetingUID      string // Unique meeting identifier for consistent ICS UID
	MeetingTitle    string
	Description     string
	StartTime       time.Time
	DurationMinutes int
	Timezone        string
	BoardName       string
	ReferenceCode   string
	RecipientEmail  string
	Recurrence      *models.Recurrence
	Sequence        int // ICS sequence number for calendar updates
}

// GenerateMeetingInvitationICS generates an ICS file content for a meeting invitation
func (g *ICSGenerator) GenerateMeetingInvitationICS(params ICSMeetingInvitationParams) (string, error) {
	loc, err := time.LoadLocation(params.Timezone)
	if err != nil {
		return "", fmt.Errorf("invalid timezone %q: %w", params.Timezone, err)
	}

	uid := params.MeetingUID
	dtstamp := time.Now().UTC().Format("20060102T150405Z")

	startLocal := params.StartTime.In(loc)
	endLocal := startLocal.Add(time.Duration(params.DurationMinutes) * time.Minute)

	dtstart := startLocal.Format("20060102T150405")
	dtend := endLocal.Format("20060102T150405")

	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString(fmt.Sprintf("VERSION:%s\r\n", ICALVersion))
	ics.WriteString(fmt.Sprintf("PRODID:%s\r\n", ICSProdID))
	ics.WriteString(fmt.Sprintf("CALSCALE:%s\r\n", ICALScale))
	ics.WriteString("METHOD:REQUEST\r\n")

	ics.WriteString(generateTimezoneDefinition(params.Timezone))

	ics.WriteString("BEGIN:VEVENT\r\n")
	ics.WriteString(fmt.Sprintf("UID:%s\r\n", uid))
	ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", dtstamp))
	ics.WriteString(fmt.Sprintf("ORGANIZER;CN=%s:mailto:%s\r\n", OrganizerName, OrganizerEmail))
	ics.WriteString(fmt.Sprintf("DTSTART;TZID=%s:%s\r\n", params.Timezone, dtstart))
	ics.WriteString(fmt.Sprintf("DTEND;TZID=%s:%s\r\n", params.Timezone, dtend))

	if params.Recurrence != nil {
		rule, err := generateRRule(params.Recurrence)
		if err != nil {
			return "", fmt.Errorf("invalid recurrence rule: %w", err)
		}
		if rule != "" {
			ics.WriteString(fmt.Sprintf("RRULE:%s\r\n", rule))
		}

		// EXDATE removes excluded dates from the series in the recipient's
		// calendar. The excluded slot keeps the meeting's local start clock.
		if exdates := formatExcludeDates(params.Recurrence.ExcludeDates, startLocal); len(exdates) > 0 {
			ics.WriteString(fmt.Sprintf("EXDATE;TZID=%s:%s\r\n", params.Timezone, strings.Join(exdates, ",")))
		}
	}

	ics.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICSText(params.MeetingTitle)))

	descriptionText := buildDescription(params)
	if descriptionText != "" {
		ics.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICSText(descriptionText)))
	}

	if params.RecipientEmail != "" {
		ics.WriteString(fmt.Sprintf("ATTENDEE;CUTYPE=INDIVIDUAL;ROLE=REQ-PARTICIPANT;PARTSTAT=NEEDS-ACTION;RSVP=TRUE;CN=%s:mailto:%s\r\n",
			params.RecipientEmail, params.RecipientEmail))
	}

	ics.WriteString("STATUS:CONFIRMED\r\n")
	ics.WriteString("TRANSP:OPAQUE\r\n")
	ics.WriteString("CLASS:PRIVATE\r\n")
	ics.WriteString("PRIORITY:5\r\n")
	ics.WriteString(fmt.Sprintf("SEQUENCE:%d\r\n", params.Sequence))

	ics.WriteString("BEGIN:VALARM\r\n")
	ics.WriteString("TRIGGER:-PT10M\r\n")
	ics.WriteString("ACTION:DISPLAY\r\n")
	ics.WriteString(fmt.Sprintf("DESCRIPTION:Reminder: %s\r\n", escapeICSText(params.MeetingTitle)))
	ics.WriteString("END:VALARM\r\n")

	ics.WriteString("END:VEVENT\r\n")
	ics.WriteString("END:VCALENDAR\r\n")

	return ics.String(), nil
}

// ICSMeetingCancellationParams holds parameters for generating a meeting cancellation ICS file
type ICSMeetingCancellationParams struct {
	MeetingUID      string // Must match the invitation UID for calendar matching
	MeetingTitle    string
	StartTime       time.Time
	DurationMinutes int
	Timezone        string
	RecipientEmail  string
	Recurrence      *models.Recurrence
	Sequence        int
}

// GenerateMeetingCancellationICS generates an ICS file for cancelling a meeting
func (g *ICSGenerator) GenerateMeetingCancellationICS(params ICSMeetingCancellationParams) (string, error) {
	loc, err := time.LoadLocation(params.Timezone)
	if err != nil {
		return "", fmt.Errorf("invalid timezone: %w", err)
	}

	startTime := params.StartTime.In(loc)
	endTime := startTime.Add(time.Duration(params.DurationMinutes) * time.Minute)

	var ics strings.Builder
	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString(fmt.Sprintf("VERSION:%s\r\n", ICALVersion))
	ics.WriteString(fmt.Sprintf("PRODID:%s\r\n", ICSProdID))
	ics.WriteString("METHOD:CANCEL\r\n")
	ics.WriteString(fmt.Sprintf("CALSCALE:%s\r\n", ICALScale))
	ics.WriteString("BEGIN:VEVENT\r\n")
	ics.WriteString(fmt.Sprintf("UID:%s\r\n", params.MeetingUID))
	ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", time.Now().UTC().Format("20060102T150405Z")))
	ics.WriteString(fmt.Sprintf("DTSTART;TZID=%s:%s\r\n", params.Timezone, startTime.Format("20060102T150405")))
	ics.WriteString(fmt.Sprintf("DTEND;TZID=%s:%s\r\n", params.Timezone, endTime.Format("20060102T150405")))
	ics.WriteString(fmt.Sprintf("SUMMARY:%s (CANCELLED)\r\n", escapeICSText(params.MeetingTitle)))
	ics.WriteString("STATUS:CANCELLED\r\n")
	ics.WriteString(fmt.Sprintf("SEQUENCE:%d\r\n", params.Sequence))
	ics.WriteString(fmt.Sprintf("ORGANIZER;CN=%s:mailto:%s\r\n", OrganizerName, OrganizerEmail))

	if params.RecipientEmail != "" {
		ics.WriteString(fmt.Sprintf("ATTENDEE;PARTSTAT=NEEDS-ACTION;RSVP=TRUE:mailto:%s\r\n", params.RecipientEmail))
	}

	if params.Recurrence != nil {
		rule, err := generateRRule(params.Recurrence)
		if err == nil && rule != "" {
			ics.WriteString(fmt.Sprintf("RRULE:%s\r\n", rule))
		}
	}

	ics.WriteString("END:VEVENT\r\n")
	ics.WriteString(generateTimezoneDefinition(params.Timezone))
	ics.WriteString("END:VCALENDAR\r\n")

	return ics.String(), nil
}

// generateTimezoneDefinition generates the VTIMEZONE component
func generateTimezoneDefinition(tzid string) string {
	var tz strings.Builder
	tz.WriteString("BEGIN:VTIMEZONE\r\n")
	tz.WriteString(fmt.Sprintf("TZID:%s\r\n", tzid))
	tz.WriteString(fmt.Sprintf("X-LIC-LOCATION:%s\r\n", tzid))
	tz.WriteString("END:VTIMEZONE\r\n")
	return tz.String()
}

// icsWeekdays maps weekday numbers (0 = Sunday) to RFC 5545 weekdays.
var icsWeekdays = []rrule.Weekday{
	rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA,
}

// generateRRule builds a recurrence rule (RRULE) for the meeting recurrence.
func generateRRule(recurrence *models.Recurrence) (string, error) {
	if recurrence == nil {
		return "", nil
	}

	option := rrule.ROption{}

	switch recurrence.Frequency {
	case models.FrequencyWeekly:
		option.Freq = rrule.WEEKLY
		for _, day := range recurrence.WeeklyDays {
			if day >= 0 && day < len(icsWeekdays) {
				option.Byweekday = append(option.Byweekday, icsWeekdays[day])
			}
		}
	case models.FrequencyMonthly, models.FrequencyQuarterly:
		option.Freq = rrule.MONTHLY
		if recurrence.Frequency == models.FrequencyQuarterly {
			option.Bymonth = recurrence.QuarterlyMonths
		}
		if recurrence.UsesNthWeekday() {
			if recurrence.WeekDay >= 0 && recurrence.WeekDay < len(icsWeekdays) {
				option.Byweekday = []rrule.Weekday{icsWeekdays[recurrence.WeekDay].Nth(recurrence.WeekOfMonth)}
			}
		} else if recurrence.MonthlyDay > 0 {
			option.Bymonthday = []int{recurrence.MonthlyDay}
		}
	case models.FrequencyAnnually:
		option.Freq = rrule.YEARLY
	default:
		return "", fmt.Errorf("unknown frequency %q", recurrence.Frequency)
	}

	if recurrence.Count > 0 {
		option.Count = recurrence.Count
	}
	if recurrence.EndDate != nil {
		option.Until = recurrence.EndDate.UTC()
	}

	rule, err := rrule.NewRRule(option)
	if err != nil {
		return "", err
	}

	// RRuleString omits the DTSTART prefix, which the VEVENT carries already.
	return rule.OrigOptions.RRuleString(), nil
}

// formatExcludeDates builds EXDATE values for the excluded ISO dates,
// keeping the meeting's local start clock.
func formatExcludeDates(excludeDates []string, startLocal time.Time) []string {
	var exdates []string
	for _, iso := range excludeDates {
		day, err := time.Parse("2006-01-02", iso)
		if err != nil {
			continue
		}
		exdates = append(exdates, fmt.Sprintf("%sT%s",
			day.Format("20060102"), startLocal.Format("150405")))
	}
	return exdates
}

// buildDescription builds the enhanced description with meeting details
func buildDescription(params ICSMeetingInvitationParams) string {
	var desc strings.Builder

	if params.BoardName != "" {
		desc.WriteString(params.BoardName)
		desc.WriteString(" Board Meeting")
		desc.WriteString("\n\n")
	}

	if params.Description != "" {
		desc.WriteString(params.Description)
		desc.WriteString("\n\n")
	}

	if params.ReferenceCode != "" {
		desc.WriteString("Reference: ")
		desc.WriteString(params.ReferenceCode)
		desc.WriteString("\n")
	}

	return desc.String()
}

// escapeICSText escapes special characters in ICS text fields
func escapeICSText(text string) string {
	// Escape special characters according to RFC5545
	text = strings.ReplaceAll(text, "\\", "\\\\")
	text = strings.ReplaceAll(text, "\n", "\\n")
	text = strings.ReplaceAll(text, ",", "\\,")
	text = strings.ReplaceAll(text, ";", "\\;")

	return foldICSLine(text, ICALMaxLineLength)
}

// foldICSLine folds long lines according to RFC5545 (75 octets max)
func foldICSLine(line string, maxLength int) string {
	if len(line) <= maxLength {
		return line
	}

	var folded strings.Builder
	remaining := line
	first := true

	for len(remaining) > 0 {
		cutLength := maxLength
		if !first {
			cutLength = maxLength - 1 // Account for leading space on continued lines
		}

		if len(remaining) <= cutLength {
			if !first {
				folded.WriteString("\r\n ")
			}
			folded.WriteString(remaining)
			break
		}

		// Find a safe place to break (not in the middle of a UTF-8 sequence)
		breakPoint := cutLength
		for breakPoint > 0 && remaining[breakPoint-1]&UTF8TwoBitMask == UTF8ContinuationPrefix {
			breakPoint--
		}

		if !first {
			folded.WriteString("\r\n ")
		}
		folded.WriteString(remaining[:breakPoint])
		remaining = remaining[breakPoint:]
		first = false
	}

	return folded.String()
}
