// Copyright The eBoard Authors.
// SPDX-License-Identifier: MIT

package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/MochamaB/eboard-sub001/internal/domain"
	"github.com/MochamaB/eboard-sub001/internal/domain/models"
)

//go:embed templates/*
var templateFS embed.FS

// RenderedEmail holds both HTML and text versions of a rendered email
type RenderedEmail struct {
	HTML string
	Text string
}

// MeetingTemplateManager defines the interface for rendering meeting email templates
type MeetingTemplateManager interface {
	RenderInvitation(data domain.EmailInvitation) (*RenderedEmail, error)
	RenderCancellation(data domain.EmailCancellation) (*RenderedEmail, error)
	RenderApprovalRequest(data domain.EmailApprovalRequest) (*RenderedEmail, error)
}

// TemplateManager is the default implementation of MeetingTemplateManager
type TemplateManager struct {
	templates Templates
}

// NewTemplateManager creates a new template manager with all templates loaded
func NewTemplateManager() (*TemplateManager, error) {
	tm := &TemplateManager{}

	templateConfigs := map[string]templateConfig{
		"invitationHTML":      {"meeting_invitation.html", "templates/meeting_invitation.html"},
		"invitationText":      {"meeting_invitation.txt", "templates/meeting_invitation.txt"},
		"cancellationHTML":    {"meeting_cancellation.html", "templates/meeting_cancellation.html"},
		"cancellationText":    {"meeting_cancellation.txt", "templates/meeting_cancellation.txt"},
		"approvalRequestHTML": {"meeting_approval_request.html", "templates/meeting_approval_request.html"},
		"approvalRequestText": {"meeting_approval_request.txt", "templates/meeting_approval_request.txt"},
	}

	loadedTemplates := make(map[string]*template.Template)
	for key, cfg := range templateConfigs {
		tmpl, err := loadTemplate(cfg)
		if err != nil {
			return nil, err
		}
		loadedTemplates[key] = tmpl
	}

	tm.templates = Templates{
		Meeting: MeetingTemplates{
			Invitation: TemplateSet{
				HTML: loadedTemplates["invitationHTML"],
				Text: loadedTemplates["invitationText"],
			},
			Cancellation: TemplateSet{
				HTML: loadedTemplates["cancellationHTML"],
				Text: loadedTemplates["cancellationText"],
			},
			ApprovalRequest: TemplateSet{
				HTML: loadedTemplates["approvalRequestHTML"],
				Text: loadedTemplates["approvalRequestText"],
			},
		},
	}

	return tm, nil
}

// Ensure TemplateManager implements MeetingTemplateManager
var _ MeetingTemplateManager = (*TemplateManager)(nil)

// RenderInvitation renders an invitation email with both HTML and text versions
func (tm *TemplateManager) RenderInvitation(data domain.EmailInvitation) (*RenderedEmail, error) {
	html, err := renderTemplate(tm.templates.Meeting.Invitation.HTML, data)
	if err != nil {
		return nil, fmt.Errorf("failed to render invitation HTML: %w", err)
	}

	text, err := renderTemplate(tm.templates.Meeting.Invitation.Text, data)
	if err != nil {
		return nil, fmt.Errorf("failed to render invitation text: %w", err)
	}

	return &RenderedEmail{HTML: html, Text: text}, nil
}

// RenderCancellation renders a cancellation email with both HTML and text versions
func (tm *TemplateManager) RenderCancellation(data domain.EmailCancellation) (*RenderedEmail, error) {
	html, err := renderTemplate(tm.templates.Meeting.Cancellation.HTML, data)
	if err != nil {
		return nil, fmt.Errorf("failed to render cancellation HTML: %w", err)
	}

	text, err := renderTemplate(tm.templates.Meeting.Cancellation.Text, data)
	if err != nil {
		return nil, fmt.Errorf("failed to render cancellation text: %w", err)
	}

	return &RenderedEmail{HTML: html, Text: text}, nil
}

// RenderApprovalRequest renders an approval request email with both HTML and text versions
func (tm *TemplateManager) RenderApprovalRequest(data domain.EmailApprovalRequest) (*RenderedEmail, error) {
	html, err := renderTemplate(tm.templates.Meeting.ApprovalRequest.HTML, data)
	if err != nil {
		return nil, fmt.Errorf("failed to render approval request HTML: %w", err)
	}

	text, err := renderTemplate(tm.templates.Meeting.ApprovalRequest.Text, data)
	if err != nil {
		return nil, fmt.Errorf("failed to render approval request text: %w", err)
	}

	return &RenderedEmail{HTML: html, Text: text}, nil
}

// TemplateSet holds HTML and text versions of a template
type TemplateSet struct {
	HTML *template.Template
	Text *template.Template
}

// MeetingTemplates holds all meeting-related templates
type MeetingTemplates struct {
	Invitation      TemplateSet
	Cancellation    TemplateSet
	ApprovalRequest TemplateSet
}

// Templates holds all template categories
type Templates struct {
	Meeting MeetingTemplates
}

// templateConfig defines a template to be loaded
type templateConfig struct {
	name string
	path string
}

// loadTemplate loads a single template with the shared function map
func loadTemplate(config templateConfig) (*template.Template, error) {
	tmpl, err := template.New(config.name).Funcs(template.FuncMap{
		"formatTime":         formatTime,
		"formatDuration":     formatDuration,
		"formatRecurrence":   formatRecurrence,
		"capitalize":         capitalize,
		"newLineToBreakLine": newLineToBreakLine,
	}).ParseFS(templateFS, config.path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s template: %w", config.name, err)
	}
	return tmpl, nil
}

// renderTemplate renders any template with the provided data
func renderTemplate(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	err := tmpl.Execute(&buf, data)
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// formatTime formats a time for display in emails
func formatTime(t time.Time, timezone string) string {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		// Fall back to UTC if timezone is invalid
		loc = time.UTC
	}

	localTime := t.In(loc)

	day := localTime.Day()
	var suffix string
	switch {
	case day >= 11 && day <= 13:
		suffix = "th"
	case day%10 == 1:
		suffix = "st"
	case day%10 == 2:
		suffix = "nd"
	case day%10 == 3:
		suffix = "rd"
	default:
		suffix = "th"
	}

	// Format: Wednesday, September 15th, 10:30 Africa/Nairobi
	return fmt.Sprintf("%s, %s %d%s, %s %s",
		localTime.Format("Monday"),
		localTime.Format("January"),
		day,
		suffix,
		localTime.Format("15:04"),
		timezone)
}

// formatDuration formats duration in minutes to a human-readable string
func formatDuration(minutes int) string {
	if minutes < 60 {
		if minutes == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", minutes)
	}

	hours := minutes / 60
	remainingMinutes := minutes % 60

	if remainingMinutes == 0 {
		if hours == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", hours)
	}

	hourLabel := "hours"
	if hours == 1 {
		hourLabel = "hour"
	}
	minuteLabel := "minutes"
	if remainingMinutes == 1 {
		minuteLabel = "minute"
	}
	return fmt.Sprintf("%d %s %d %s", hours, hourLabel, remainingMinutes, minuteLabel)
}

// formatRecurrence formats the recurrence pattern for display
func formatRecurrence(recurrence *models.Recurrence, t time.Time, timezone string) string {
	if recurrence == nil {
		return ""
	}

	var pattern strings.Builder

	switch recurrence.Frequency {
	case models.FrequencyWeekly:
		pattern.WriteString("Weekly")
		if days := formatWeeklyDaysText(recurrence.WeeklyDays); days != "" {
			pattern.WriteString(" on ")
			pattern.WriteString(days)
		}
	case models.FrequencyMonthly:
		pattern.WriteString("Monthly")
		pattern.WriteString(formatMonthDayRule(recurrence))
	case models.FrequencyQuarterly:
		pattern.WriteString("Quarterly")
		if months := formatMonthsText(recurrence.QuarterlyMonths); months != "" {
			pattern.WriteString(" in ")
			pattern.WriteString(months)
		}
		pattern.WriteString(formatMonthDayRule(recurrence))
	case models.FrequencyAnnually:
		pattern.WriteString("Annually")
	default:
		return "Custom recurrence"
	}

	loc, err := time.LoadLocation(timezone)
	if err == nil {
		localTime := t.In(loc)
		pattern.WriteString(fmt.Sprintf(" at %s %s", localTime.Format("15:04"), timezone))
	}

	// Add end condition
	if recurrence.Count > 0 {
		pattern.WriteString(fmt.Sprintf(" (%d occurrences)", recurrence.Count))
	} else if recurrence.EndDate != nil {
		endDate := recurrence.EndDate.Format("January 2, 2006")
		pattern.WriteString(fmt.Sprintf(" (until %s)", endDate))
	}

	return pattern.String()
}

// formatMonthDayRule renders the day-of-month part of a monthly or quarterly rule
func formatMonthDayRule(recurrence *models.Recurrence) string {
	if recurrence.UsesNthWeekday() {
		weekName := getOrdinalWeek(recurrence.WeekOfMonth)
		dayName := getWeekdayFullName(recurrence.WeekDay)
		if weekName != "" && dayName != "" {
			return fmt.Sprintf(" on the %s %s", weekName, dayName)
		}
		return ""
	}
	if recurrence.MonthlyDay > 0 {
		return fmt.Sprintf(" on day %d", recurrence.MonthlyDay)
	}
	return ""
}

// formatWeeklyDaysText converts numeric weekdays (0 = Sunday) to readable text
func formatWeeklyDaysText(weeklyDays []int) string {
	var dayTexts []string
	for _, day := range weeklyDays {
		if name := getWeekdayFullName(day); name != "" {
			dayTexts = append(dayTexts, name)
		}
	}

	if len(dayTexts) == 0 {
		return ""
	}
	if len(dayTexts) == 1 {
		return dayTexts[0]
	}
	if len(dayTexts) == 2 {
		return dayTexts[0] + " and " + dayTexts[1]
	}

	return strings.Join(dayTexts[:len(dayTexts)-1], ", ") + " and " + dayTexts[len(dayTexts)-1]
}

// formatMonthsText converts month numbers to readable text
func formatMonthsText(months []int) string {
	var names []string
	for _, month := range months {
		if month >= 1 && month <= 12 {
			names = append(names, time.Month(month).String())
		}
	}
	return strings.Join(names, ", ")
}

// getOrdinalWeek converts week number to ordinal text
func getOrdinalWeek(week int) string {
	switch week {
	case 1:
		return "first"
	case 2:
		return "second"
	case 3:
		return "third"
	case 4:
		return "fourth"
	case -1:
		return "last"
	default:
		return ""
	}
}

// getWeekdayFullName converts a weekday number (0 = Sunday) to its full name
func getWeekdayFullName(weekday int) string {
	if weekday >= 0 && weekday <= 6 {
		return time.Weekday(weekday).String()
	}
	return ""
}

// capitalize capitalizes the first letter of a string
func capitalize(s string) string {
	if len(s) == 0 {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// newLineToBreakLine converts newlines to HTML break tags for proper email formatting
func newLineToBreakLine(s string) template.HTML {
	escaped := template.HTMLEscapeString(s)
	replaced := strings.ReplaceAll(escaped, "\n", "<br>")
	// Return as template.HTML to prevent double escaping
	return template.HTML(replaced)
}
