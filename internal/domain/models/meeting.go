// Copyright The eBoard Authors.
// SPDX-License-Identifier: MIT

package models

import (
	"time"
)

// Meeting is the key-value store representation of a board meeting.
type Meeting struct {
	UID                string       `json:"uid"`
	BoardUID           string       `json:"board_uid"`
	BoardType          BoardType    `json:"board_type"`
	Title              string       `json:"title"`
	Description        string       `json:"description,omitempty"`
	MeetingType        MeetingType  `json:"meeting_type"`
	LocationType       LocationType `json:"location_type"`
	StartTime          time.Time    `json:"start_time"`
	Duration           int          `json:"duration"`
	Timezone           string       `json:"timezone"`
	State              MeetingState `json:"state"`
	QuorumPercentage   int          `json:"quorum_percentage"`
	QuorumRequired     int          `json:"quorum_required"`
	RequiresConfirmation bool       `json:"requires_confirmation"`
	Overrides          *Overrides   `json:"overrides,omitempty"`
	OverrideReason     string       `json:"override_reason,omitempty"`
	AgendaPublished    bool         `json:"agenda_published"`
	DocumentsAttached  bool         `json:"documents_attached"`
	SeriesUID          string       `json:"series_uid,omitempty"`
	SeriesPosition     int          `json:"series_position,omitempty"`
	ReferenceCode      string       `json:"reference_code,omitempty"`
	Recurrence         *Recurrence  `json:"recurrence,omitempty"`
	CreatedBy          string       `json:"created_by"`
	CreatedAt          *time.Time   `json:"created_at,omitempty"`
	UpdatedAt          *time.Time   `json:"updated_at,omitempty"`
	CancelledBy        string       `json:"cancelled_by,omitempty"`
	CancelledAt        *time.Time   `json:"cancelled_at,omitempty"`
	CancellationReason string       `json:"cancellation_reason,omitempty"`
}

// EndTime returns the scheduled end of the meeting.
func (m *Meeting) EndTime() time.Time {
	return m.StartTime.Add(time.Duration(m.Duration) * time.Minute)
}

// SetupComplete reports whether all required setup is satisfied per the board
// rules, taking per-meeting overrides into account. A meeting with complete
// setup moves from draft.incomplete to draft.complete.
func (m *Meeting) SetupComplete(settings *BoardSettings) bool {
	requireAgenda := settings != nil && settings.RequireAgenda
	requireDocuments := settings != nil && settings.RequireDocuments

	if m.Overrides != nil {
		if m.Overrides.SkipAgenda {
			requireAgenda = false
		}
		if m.Overrides.SkipDocuments {
			requireDocuments = false
		}
	}

	if requireAgenda && !m.AgendaPublished {
		return false
	}
	if requireDocuments && !m.DocumentsAttached {
		return false
	}
	return true
}

// Tags returns the indexer tags for the meeting.
func (m *Meeting) Tags() []string {
	var tags []string
	if m.UID != "" {
		tags = append(tags, m.UID, "meeting_uid:"+m.UID)
	}
	if m.BoardUID != "" {
		tags = append(tags, "board_uid:"+m.BoardUID)
	}
	if m.SeriesUID != "" {
		tags = append(tags, "series_uid:"+m.SeriesUID)
	}
	if m.Title != "" {
		tags = append(tags, m.Title)
	}
	return tags
}
