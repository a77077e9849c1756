// Copyright The eBoard Authors.
// SPDX-License-Identifier: MIT

package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MochamaB/eboard-sub001/internal/domain/models"
	"github.com/MochamaB/eboard-sub001/internal/service"
	"github.com/MochamaB/eboard-sub001/pkg/constants"
)

// createMeetingPayload is the request body for creating a meeting or series.
type createMeetingPayload struct {
	BoardUID          string              `json:"board_uid" validate:"required,uuid"`
	Title             string              `json:"title" validate:"required,max=500"`
	Description       string              `json:"description,omitempty"`
	MeetingType       models.MeetingType  `json:"meeting_type" validate:"required"`
	LocationType      models.LocationType `json:"location_type" validate:"required"`
	StartTime         time.Time           `json:"start_time" validate:"required"`
	Duration          int                 `json:"duration" validate:"required,gt=0"`
	Timezone          string              `json:"timezone" validate:"required"`
	QuorumPercentage  int                 `json:"quorum_percentage" validate:"gte=0,lte=100"`
	Recurrence        *models.Recurrence  `json:"recurrence,omitempty"`
	Overrides         *models.Overrides   `json:"overrides,omitempty"`
	OverrideReason    string              `json:"override_reason,omitempty"`
	AgendaPublished   bool                `json:"agenda_published,omitempty"`
	DocumentsAttached bool                `json:"documents_attached,omitempty"`
}

// reasonPayload is the request body for transitions that carry a reason.
type reasonPayload struct {
	Reason string `json:"reason" validate:"required"`
}

// previewRecurrencePayload is the request body for expanding a recurrence
// rule without creating meetings.
type previewRecurrencePayload struct {
	StartTime  time.Time          `json:"start_time" validate:"required"`
	Timezone   string             `json:"timezone" validate:"required"`
	Recurrence *models.Recurrence `json:"recurrence" validate:"required"`
}

// CreateMeeting handles POST /meetings.
func (s *MeetingsAPI) CreateMeeting(w http.ResponseWriter, r *http.Request) {
	principal, err := s.principal(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var payload createMeetingPayload
	if err := s.decodeAndValidate(r, &payload); err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.service.CreateMeeting(r.Context(), &service.CreateMeetingRequest{
		BoardUID:          payload.BoardUID,
		Title:             payload.Title,
		Description:       payload.Description,
		MeetingType:       payload.MeetingType,
		LocationType:      payload.LocationType,
		StartTime:         payload.StartTime,
		Duration:          payload.Duration,
		Timezone:          payload.Timezone,
		QuorumPercentage:  payload.QuorumPercentage,
		Recurrence:        payload.Recurrence,
		Overrides:         payload.Overrides,
		OverrideReason:    payload.OverrideReason,
		AgendaPublished:   payload.AgendaPublished,
		DocumentsAttached: payload.DocumentsAttached,
	}, principal)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusCreated, result)
}

// GetMeetings handles GET /meetings, optionally filtered by board.
func (s *MeetingsAPI) GetMeetings(w http.ResponseWriter, r *http.Request) {
	boardUID := r.URL.Query().Get("board_uid")

	var meetings []*models.Meeting
	var err error
	if boardUID != "" {
		meetings, err = s.service.GetMeetingsByBoard(r.Context(), boardUID)
	} else {
		meetings, err = s.service.GetMeetings(r.Context())
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if meetings == nil {
		meetings = []*models.Meeting{}
	}
	s.writeJSON(w, r, http.StatusOK, meetings)
}

// GetOneMeeting handles GET /meetings/{uid}. The store revision is returned
// as the ETag header.
func (s *MeetingsAPI) GetOneMeeting(w http.ResponseWriter, r *http.Request) {
	meetingUID := chi.URLParam(r, "uid")

	meeting, revision, err := s.service.GetMeetingWithRevision(r.Context(), meetingUID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set(constants.EtagHeader, strconv.FormatUint(revision, 10))
	s.writeJSON(w, r, http.StatusOK, meeting)
}

// GetMeetingEvents handles GET /meetings/{uid}/events.
func (s *MeetingsAPI) GetMeetingEvents(w http.ResponseWriter, r *http.Request) {
	meetingUID := chi.URLParam(r, "uid")

	events, err := s.service.GetMeetingEvents(r.Context(), meetingUID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if events == nil {
		events = []*models.MeetingEvent{}
	}
	s.writeJSON(w, r, http.StatusOK, events)
}

// transition runs a lifecycle transition endpoint that only needs the acting
// principal.
func (s *MeetingsAPI) transition(w http.ResponseWriter, r *http.Request, run func(meetingUID, principal string) (*models.Meeting, error)) {
	principal, err := s.principal(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	meeting, err := run(chi.URLParam(r, "uid"), principal)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, meeting)
}

// SubmitMeeting handles POST /meetings/{uid}/submit.
func (s *MeetingsAPI) SubmitMeeting(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, func(meetingUID, principal string) (*models.Meeting, error) {
		return s.service.SubmitMeeting(r.Context(), meetingUID, principal)
	})
}

// ApproveMeeting handles POST /meetings/{uid}/approve.
func (s *MeetingsAPI) ApproveMeeting(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, func(meetingUID, principal string) (*models.Meeting, error) {
		return s.service.ApproveMeeting(r.Context(), meetingUID, principal)
	})
}

// RejectMeeting handles POST /meetings/{uid}/reject.
func (s *MeetingsAPI) RejectMeeting(w http.ResponseWriter, r *http.Request) {
	principal, err := s.principal(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var payload reasonPayload
	if err := s.decodeAndValidate(r, &payload); err != nil {
		s.writeError(w, r, err)
		return
	}

	meeting, err := s.service.RejectMeeting(r.Context(), chi.URLParam(r, "uid"), principal, payload.Reason)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, meeting)
}

// ResubmitMeeting handles POST /meetings/{uid}/resubmit.
func (s *MeetingsAPI) ResubmitMeeting(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, func(meetingUID, principal string) (*models.Meeting, error) {
		return s.service.ResubmitMeeting(r.Context(), meetingUID, principal)
	})
}

// StartMeeting handles POST /meetings/{uid}/start.
func (s *MeetingsAPI) StartMeeting(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, func(meetingUID, principal string) (*models.Meeting, error) {
		return s.service.StartMeeting(r.Context(), meetingUID, principal)
	})
}

// EndMeeting handles POST /meetings/{uid}/end.
func (s *MeetingsAPI) EndMeeting(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, func(meetingUID, principal string) (*models.Meeting, error) {
		return s.service.EndMeeting(r.Context(), meetingUID, principal)
	})
}

// ArchiveMeeting handles POST /meetings/{uid}/archive.
func (s *MeetingsAPI) ArchiveMeeting(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, func(meetingUID, principal string) (*models.Meeting, error) {
		return s.service.ArchiveMeeting(r.Context(), meetingUID, principal)
	})
}

// CancelMeeting handles POST /meetings/{uid}/cancel.
func (s *MeetingsAPI) CancelMeeting(w http.ResponseWriter, r *http.Request) {
	principal, err := s.principal(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var payload reasonPayload
	if err := s.decodeAndValidate(r, &payload); err != nil {
		s.writeError(w, r, err)
		return
	}

	meeting, err := s.service.CancelMeeting(r.Context(), chi.URLParam(r, "uid"), principal, payload.Reason)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, meeting)
}

// PreviewRecurrence handles POST /recurrence/preview.
func (s *MeetingsAPI) PreviewRecurrence(w http.ResponseWriter, r *http.Request) {
	var payload previewRecurrencePayload
	if err := s.decodeAndValidate(r, &payload); err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.service.PreviewRecurrence(r.Context(), payload.StartTime, payload.Recurrence, payload.Timezone)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, result)
}
