// Copyright The eBoard Authors.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/MochamaB/eboard-sub001/internal/domain"
	"github.com/MochamaB/eboard-sub001/internal/domain/mocks"
	"github.com/MochamaB/eboard-sub001/internal/domain/models"
	"github.com/MochamaB/eboard-sub001/pkg/utils"
)

type serviceMocks struct {
	meetingRepo *mocks.MockMeetingRepository
	eventRepo   *mocks.MockMeetingEventRepository
	builder     *mocks.MockMessageBuilder
	roster      *mocks.MockParticipantRosterProvider
	settings    *mocks.MockBoardSettingsProvider
	email       *mocks.MockEmailService
}

func newTestService(config ServiceConfig) (*MeetingService, *serviceMocks) {
	m := &serviceMocks{
		meetingRepo: &mocks.MockMeetingRepository{},
		eventRepo:   &mocks.MockMeetingEventRepository{},
		builder:     &mocks.MockMessageBuilder{},
		roster:      &mocks.MockParticipantRosterProvider{},
		settings:    &mocks.MockBoardSettingsProvider{},
		email:       &mocks.MockEmailService{},
	}
	svc := NewMeetingService(
		m.meetingRepo,
		NewEventLogService(m.eventRepo, m.builder),
		m.builder,
		m.roster,
		m.settings,
		m.email,
		NewRecurrenceService(),
		config,
	)
	return svc, m
}

// allowMessaging stubs the best-effort messaging and email paths.
func (m *serviceMocks) allowMessaging() {
	m.builder.On("SendIndexMeeting", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	m.builder.On("SendIndexMeetingEvent", mock.Anything, mock.Anything).Return(nil).Maybe()
	m.builder.On("SendMeetingCreated", mock.Anything, mock.Anything).Return(nil).Maybe()
	m.builder.On("SendMeetingUpdated", mock.Anything, mock.Anything).Return(nil).Maybe()
	m.builder.On("SendMeetingCancelled", mock.Anything, mock.Anything).Return(nil).Maybe()
	m.email.On("SendApprovalRequest", mock.Anything, mock.Anything).Return(nil).Maybe()
	m.email.On("SendParticipantInvitation", mock.Anything, mock.Anything).Return(nil).Maybe()
	m.email.On("SendParticipantCancellation", mock.Anything, mock.Anything).Return(nil).Maybe()
}

func mainBoardSettings() *models.BoardSettings {
	return &models.BoardSettings{
		BoardUID:  "board-1",
		BoardType: models.BoardTypeMain,
	}
}

func validCreateRequest() *CreateMeetingRequest {
	return &CreateMeetingRequest{
		BoardUID:         "board-1",
		Title:            "Quarterly Board Meeting",
		MeetingType:      models.MeetingTypeRegular,
		LocationType:     models.LocationTypeHybrid,
		StartTime:        time.Now().UTC().Add(48 * time.Hour),
		Duration:         120,
		Timezone:         "UTC",
		QuorumPercentage: 50,
	}
}

func TestCreateMeetingMainBoardLandsInPendingApproval(t *testing.T) {
	svc, m := newTestService(ServiceConfig{})
	m.allowMessaging()
	ctx := context.Background()

	m.settings.On("GetBoardSettings", mock.Anything, "board-1").Return(mainBoardSettings(), nil)
	m.roster.On("ListParticipants", mock.Anything, "board-1").Return([]models.Participant{
		{UserUID: "u1", Name: "Jane", Email: "jane@example.com", Role: models.RoleGroupCompanySecretary},
		{UserUID: "u2", Name: "Ken", IsGuest: true},
	}, nil)
	m.roster.On("GetUser", mock.Anything, "creator-1").Return(&models.UserInfo{UserUID: "creator-1", Name: "Creator"}, nil)

	var events []*models.MeetingEvent
	m.eventRepo.On("AppendEvent", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		events = append(events, args.Get(1).(*models.MeetingEvent))
	}).Return(nil)

	stored := &models.Meeting{}
	m.meetingRepo.On("CreateMeeting", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		*stored = *args.Get(1).(*models.Meeting)
	}).Return(nil)
	m.meetingRepo.On("GetMeetingWithRevision", mock.Anything, mock.Anything).Return(stored, uint64(1), nil)
	m.meetingRepo.On("UpdateMeeting", mock.Anything, mock.Anything, uint64(1)).Return(nil)

	result, err := svc.CreateMeeting(ctx, validCreateRequest(), "creator-1")
	require.NoError(t, err)
	require.Len(t, result.Occurrences, 1)

	meeting := result.Occurrences[0].Meeting
	require.NotNil(t, meeting)
	// Main boards always require confirmation, and setup was complete, so
	// creation submits straight through to pending approval.
	assert.Equal(t, models.StateScheduledPendingApproval, meeting.State)
	assert.True(t, meeting.RequiresConfirmation)
	assert.Equal(t, 1, meeting.QuorumRequired) // one non-guest at 50%
	assert.NotEmpty(t, meeting.ReferenceCode)

	require.Len(t, events, 2)
	assert.Equal(t, models.EventMeetingCreated, events[0].Type)
	assert.Nil(t, events[0].FromState)
	assert.Equal(t, models.StateDraftComplete, *events[0].ToState)

	assert.Equal(t, models.EventSubmittedForApproval, events[1].Type)
	assert.Equal(t, models.StateDraftComplete, *events[1].FromState)
	assert.Equal(t, models.StateScheduledPendingApproval, *events[1].ToState)
}

func TestCreateMeetingIncompleteSetupStaysDraft(t *testing.T) {
	svc, m := newTestService(ServiceConfig{})
	m.allowMessaging()
	ctx := context.Background()

	settings := mainBoardSettings()
	settings.RequireAgenda = true
	m.settings.On("GetBoardSettings", mock.Anything, "board-1").Return(settings, nil)
	m.roster.On("ListParticipants", mock.Anything, "board-1").Return([]models.Participant{}, nil)
	m.roster.On("GetUser", mock.Anything, "creator-1").Return(&models.UserInfo{UserUID: "creator-1", Name: "Creator"}, nil)

	m.meetingRepo.On("CreateMeeting", mock.Anything, mock.Anything).Return(nil)
	m.eventRepo.On("AppendEvent", mock.Anything, mock.Anything).Return(nil)

	req := validCreateRequest()
	result, err := svc.CreateMeeting(ctx, req, "creator-1")
	require.NoError(t, err)
	require.Len(t, result.Occurrences, 1)
	assert.Equal(t, models.StateDraftIncomplete, result.Occurrences[0].Meeting.State)
	// No submission happened.
	m.meetingRepo.AssertNotCalled(t, "UpdateMeeting", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateMeetingCommitteeAutoApproves(t *testing.T) {
	svc, m := newTestService(ServiceConfig{})
	m.allowMessaging()
	ctx := context.Background()

	m.settings.On("GetBoardSettings", mock.Anything, "board-1").Return(&models.BoardSettings{
		BoardUID:  "board-1",
		BoardType: models.BoardTypeCommittee,
	}, nil)
	m.roster.On("ListParticipants", mock.Anything, "board-1").Return([]models.Participant{
		{UserUID: "u1", Name: "Jane", Email: "jane@example.com"},
	}, nil)
	m.roster.On("GetUser", mock.Anything, "creator-1").Return(&models.UserInfo{UserUID: "creator-1", Name: "Creator"}, nil)

	var events []*models.MeetingEvent
	m.eventRepo.On("AppendEvent", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		events = append(events, args.Get(1).(*models.MeetingEvent))
	}).Return(nil)

	stored := &models.Meeting{}
	m.meetingRepo.On("CreateMeeting", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		*stored = *args.Get(1).(*models.Meeting)
	}).Return(nil)
	m.meetingRepo.On("GetMeetingWithRevision", mock.Anything, mock.Anything).Return(stored, uint64(1), nil)
	m.meetingRepo.On("UpdateMeeting", mock.Anything, mock.Anything, uint64(1)).Return(nil)

	result, err := svc.CreateMeeting(ctx, validCreateRequest(), "creator-1")
	require.NoError(t, err)

	meeting := result.Occurrences[0].Meeting
	assert.Equal(t, models.StateScheduledApproved, meeting.State)
	assert.False(t, meeting.RequiresConfirmation)

	// The auto-approved path still records the approval, with the synthetic
	// system actor.
	require.Len(t, events, 2)
	assert.Equal(t, models.EventApproved, events[1].Type)
	assert.Equal(t, models.SystemActorUID, events[1].PerformedBy)
	assert.Equal(t, models.SystemActorName, events[1].PerformedByName)

	payload, err := events[1].DecodePayload()
	require.NoError(t, err)
	assert.True(t, payload.(*models.ApprovalPayload).System)
}

func TestCreateMeetingOverrideWithoutReasonFails(t *testing.T) {
	svc, _ := newTestService(ServiceConfig{})

	req := validCreateRequest()
	req.Overrides = &models.Overrides{SkipApproval: true}

	_, err := svc.CreateMeeting(context.Background(), req, "creator-1")
	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeValidation, domain.GetErrorType(err))
}

func TestCreateMeetingValidation(t *testing.T) {
	svc, _ := newTestService(ServiceConfig{})
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*CreateMeetingRequest)
	}{
		{"missing board", func(r *CreateMeetingRequest) { r.BoardUID = "" }},
		{"missing title", func(r *CreateMeetingRequest) { r.Title = "" }},
		{"bad meeting type", func(r *CreateMeetingRequest) { r.MeetingType = "standup" }},
		{"bad location type", func(r *CreateMeetingRequest) { r.LocationType = "metaverse" }},
		{"zero duration", func(r *CreateMeetingRequest) { r.Duration = 0 }},
		{"quorum above 100", func(r *CreateMeetingRequest) { r.QuorumPercentage = 150 }},
		{"start in the past", func(r *CreateMeetingRequest) { r.StartTime = time.Now().UTC().Add(-time.Hour) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(req)
			_, err := svc.CreateMeeting(ctx, req, "creator-1")
			require.Error(t, err)
			assert.Equal(t, domain.ErrorTypeValidation, domain.GetErrorType(err))
		})
	}
}

func TestCreateMeetingSeriesReportsPerOccurrenceResults(t *testing.T) {
	svc, m := newTestService(ServiceConfig{})
	m.allowMessaging()
	ctx := context.Background()

	settings := mainBoardSettings()
	settings.RequireAgenda = true // keep occurrences in draft so no submit round-trips
	m.settings.On("GetBoardSettings", mock.Anything, "board-1").Return(settings, nil)
	m.roster.On("ListParticipants", mock.Anything, "board-1").Return([]models.Participant{}, nil)
	m.roster.On("GetUser", mock.Anything, "creator-1").Return(&models.UserInfo{UserUID: "creator-1", Name: "Creator"}, nil)

	// The second stored occurrence fails; the rest of the series goes through.
	m.meetingRepo.On("CreateMeeting", mock.Anything, mock.Anything).Return(nil).Once()
	m.meetingRepo.On("CreateMeeting", mock.Anything, mock.Anything).Return(domain.NewInternalError("kv store write failed")).Once()
	m.meetingRepo.On("CreateMeeting", mock.Anything, mock.Anything).Return(nil)
	m.eventRepo.On("AppendEvent", mock.Anything, mock.Anything).Return(nil)

	start := time.Now().UTC().Add(48 * time.Hour)
	req := validCreateRequest()
	req.StartTime = start
	req.Recurrence = &models.Recurrence{
		Frequency:    models.FrequencyWeekly,
		WeeklyDays:   []int{int(start.Weekday())},
		Count:        4,
		ExcludeDates: []string{start.AddDate(0, 0, 14).Format("2006-01-02")},
	}

	result, err := svc.CreateMeeting(ctx, req, "creator-1")
	require.NoError(t, err)
	assert.NotEmpty(t, result.SeriesUID)
	require.Len(t, result.Occurrences, 4)

	// First occurrence created.
	assert.NotNil(t, result.Occurrences[0].Meeting)
	assert.Equal(t, result.SeriesUID, result.Occurrences[0].Meeting.SeriesUID)
	assert.Equal(t, 1, result.Occurrences[0].Meeting.SeriesPosition)

	// Second failed but is reported, not dropped.
	assert.Nil(t, result.Occurrences[1].Meeting)
	assert.NotEmpty(t, result.Occurrences[1].Error)

	// Third was excluded: generated but never scheduled.
	assert.True(t, result.Occurrences[2].Excluded)
	assert.Nil(t, result.Occurrences[2].Meeting)
	assert.Empty(t, result.Occurrences[2].Error)

	// Fourth created.
	assert.NotNil(t, result.Occurrences[3].Meeting)

	assert.Len(t, result.Meetings(), 2)
}

func TestCreateMeetingRollsBackWhenEventAppendFails(t *testing.T) {
	svc, m := newTestService(ServiceConfig{})
	m.allowMessaging()
	ctx := context.Background()

	settings := mainBoardSettings()
	settings.RequireAgenda = true
	m.settings.On("GetBoardSettings", mock.Anything, "board-1").Return(settings, nil)
	m.roster.On("ListParticipants", mock.Anything, "board-1").Return([]models.Participant{}, nil)
	m.roster.On("GetUser", mock.Anything, "creator-1").Return(&models.UserInfo{UserUID: "creator-1", Name: "Creator"}, nil)

	m.meetingRepo.On("CreateMeeting", mock.Anything, mock.Anything).Return(nil)
	m.eventRepo.On("AppendEvent", mock.Anything, mock.Anything).Return(domain.NewInternalError("append failed"))
	m.meetingRepo.On("GetMeetingWithRevision", mock.Anything, mock.Anything).Return(&models.Meeting{}, uint64(1), nil)
	m.meetingRepo.On("DeleteMeeting", mock.Anything, mock.Anything, uint64(1)).Return(nil)

	_, err := svc.CreateMeeting(ctx, validCreateRequest(), "creator-1")
	require.Error(t, err)
	m.meetingRepo.AssertCalled(t, "DeleteMeeting", mock.Anything, mock.Anything, uint64(1))
}

func TestGetMeetingEvents(t *testing.T) {
	svc, m := newTestService(ServiceConfig{})
	ctx := context.Background()

	earlier := time.Now().UTC().Add(-time.Hour)
	later := time.Now().UTC()
	m.meetingRepo.On("MeetingExists", mock.Anything, "meeting-1").Return(true, nil)
	m.eventRepo.On("ListEventsForMeeting", mock.Anything, "meeting-1").Return([]*models.MeetingEvent{
		{UID: "e2", PerformedAt: later},
		{UID: "e1", PerformedAt: earlier},
	}, nil)

	events, err := svc.GetMeetingEvents(ctx, "meeting-1")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "e1", events[0].UID)
	assert.Equal(t, "e2", events[1].UID)
}

func TestGetMeetingEventsUnknownMeeting(t *testing.T) {
	svc, m := newTestService(ServiceConfig{})

	m.meetingRepo.On("MeetingExists", mock.Anything, "nope").Return(false, nil)

	_, err := svc.GetMeetingEvents(context.Background(), "nope")
	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeNotFound, domain.GetErrorType(err))
}

func TestPreviewRecurrence(t *testing.T) {
	svc, _ := newTestService(ServiceConfig{})

	result, err := svc.PreviewRecurrence(context.Background(), time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC), &models.Recurrence{
		Frequency:  models.FrequencyWeekly,
		WeeklyDays: []int{1},
		Count:      3,
	}, "UTC")
	require.NoError(t, err)
	assert.Len(t, result.Occurrences, 3)
}

func TestServiceNotReady(t *testing.T) {
	svc := NewMeetingService(nil, nil, nil, nil, nil, nil, nil, ServiceConfig{})

	_, err := svc.GetMeetings(context.Background())
	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeUnavailable, domain.GetErrorType(err))
}

func TestQuorumRequiredUsesSettingsFromProvider(t *testing.T) {
	svc, m := newTestService(ServiceConfig{})
	m.allowMessaging()
	ctx := context.Background()

	m.settings.On("GetBoardSettings", mock.Anything, "board-1").Return(&models.BoardSettings{
		BoardUID:             "board-1",
		BoardType:            models.BoardTypeFactory,
		ConfirmationRequired: utils.BoolPtr(false),
		RequireAgenda:        true,
	}, nil)
	// 10 participants, 2 guests, 50% quorum: required is 4.
	roster := make([]models.Participant, 0, 10)
	for i := 0; i < 8; i++ {
		roster = append(roster, models.Participant{UserUID: "m", IsGuest: false})
	}
	for i := 0; i < 2; i++ {
		roster = append(roster, models.Participant{UserUID: "g", IsGuest: true})
	}
	m.roster.On("ListParticipants", mock.Anything, "board-1").Return(roster, nil)
	m.roster.On("GetUser", mock.Anything, "creator-1").Return(&models.UserInfo{UserUID: "creator-1", Name: "Creator"}, nil)

	m.meetingRepo.On("CreateMeeting", mock.Anything, mock.Anything).Return(nil)
	m.eventRepo.On("AppendEvent", mock.Anything, mock.Anything).Return(nil)

	result, err := svc.CreateMeeting(ctx, validCreateRequest(), "creator-1")
	require.NoError(t, err)
	assert.Equal(t, 4, result.Occurrences[0].Meeting.QuorumRequired)
}
