// Copyright The eBoard Authors.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/akamensky/base58"
	"github.com/google/uuid"

	"github.com/MochamaB/eboard-sub001/internal/domain"
	"github.com/MochamaB/eboard-sub001/internal/domain/models"
	"github.com/MochamaB/eboard-sub001/internal/logging"
)

// MeetingService orchestrates the meeting lifecycle: creation (single or
// recurring series), transitions, and queries. It implements
// domain.MessageHandler via the handlers package.
type MeetingService struct {
	MeetingRepository domain.MeetingRepository
	EventLog          *EventLogService
	MessageBuilder    domain.MessageBuilder
	RosterProvider    domain.ParticipantRosterProvider
	SettingsProvider  domain.BoardSettingsProvider
	EmailService      domain.EmailService
	RecurrenceService *RecurrenceService
	Config            ServiceConfig
}

// NewMeetingService creates a new MeetingService.
func NewMeetingService(
	meetingRepository domain.MeetingRepository,
	eventLog *EventLogService,
	messageBuilder domain.MessageBuilder,
	rosterProvider domain.ParticipantRosterProvider,
	settingsProvider domain.BoardSettingsProvider,
	emailService domain.EmailService,
	recurrenceService *RecurrenceService,
	config ServiceConfig,
) *MeetingService {
	return &MeetingService{
		MeetingRepository: meetingRepository,
		EventLog:          eventLog,
		MessageBuilder:    messageBuilder,
		RosterProvider:    rosterProvider,
		SettingsProvider:  settingsProvider,
		EmailService:      emailService,
		RecurrenceService: recurrenceService,
		Config:            config,
	}
}

// ServiceReady checks if the service is ready for use.
func (s *MeetingService) ServiceReady() bool {
	return s.MeetingRepository != nil &&
		s.EventLog != nil &&
		s.MessageBuilder != nil &&
		s.RosterProvider != nil &&
		s.SettingsProvider != nil &&
		s.EmailService != nil &&
		s.RecurrenceService != nil
}

// CreateMeetingRequest is the input for creating a meeting or a series.
type CreateMeetingRequest struct {
	BoardUID          string
	Title             string
	Description       string
	MeetingType       models.MeetingType
	LocationType      models.LocationType
	StartTime         time.Time
	Duration          int
	Timezone          string
	QuorumPercentage  int
	Recurrence        *models.Recurrence
	Overrides         *models.Overrides
	OverrideReason    string
	AgendaPublished   bool
	DocumentsAttached bool
}

// OccurrenceResult is the per-occurrence outcome of a creation request. For
// a series, a failed occurrence carries its error so the caller can retry
// just that occurrence instead of resubmitting the whole series.
type OccurrenceResult struct {
	Position  int             `json:"position"`
	StartTime time.Time       `json:"start_time"`
	Excluded  bool            `json:"excluded,omitempty"`
	Meeting   *models.Meeting `json:"meeting,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// CreateMeetingResult is the outcome of a creation request. SeriesUID is
// empty for a single meeting.
type CreateMeetingResult struct {
	SeriesUID   string             `json:"series_uid,omitempty"`
	Truncated   bool               `json:"truncated,omitempty"`
	Occurrences []OccurrenceResult `json:"occurrences"`
}

// Meetings returns the successfully created meetings in the result.
func (r *CreateMeetingResult) Meetings() []*models.Meeting {
	var meetings []*models.Meeting
	for _, occ := range r.Occurrences {
		if occ.Meeting != nil {
			meetings = append(meetings, occ.Meeting)
		}
	}
	return meetings
}

// CreateMeeting creates one meeting, or one per non-excluded occurrence when
// the request carries a recurrence rule. Each occurrence gets its own
// lifecycle: its initial state is computed from the board's setup rules, and
// meetings whose setup is already complete are submitted immediately, which
// lands them in pending approval or straight in approved per the
// confirmation policy.
func (s *MeetingService) CreateMeeting(ctx context.Context, req *CreateMeetingRequest, actorUID string) (*CreateMeetingResult, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("meeting service is not available")
	}

	if err := s.validateCreateRequest(ctx, req); err != nil {
		return nil, err
	}

	settings := s.boardSettings(ctx, req.BoardUID)
	boardType := models.BoardType("")
	if settings != nil {
		boardType = settings.BoardType
	}

	quorumRequired := 0
	if roster, err := s.RosterProvider.ListParticipants(ctx, req.BoardUID); err != nil {
		slog.WarnContext(ctx, "could not list participants for quorum computation", logging.ErrKey, err, "board_uid", req.BoardUID)
	} else {
		quorumRequired = RequiredQuorum(roster, req.QuorumPercentage)
	}

	actorName := s.resolveActorName(ctx, actorUID)

	if req.Recurrence == nil {
		result := &CreateMeetingResult{}
		meeting, err := s.createOccurrence(ctx, req, req.StartTime, "", 0, settings, boardType, quorumRequired, actorUID, actorName)
		occ := OccurrenceResult{Position: 1, StartTime: req.StartTime, Meeting: meeting}
		if err != nil {
			// A single meeting has no partial-failure mode; surface the error.
			return nil, err
		}
		result.Occurrences = append(result.Occurrences, occ)
		return result, nil
	}

	expansion, err := s.RecurrenceService.Generate(req.StartTime, req.Recurrence, req.Timezone)
	if err != nil {
		return nil, err
	}

	result := &CreateMeetingResult{
		SeriesUID: uuid.New().String(),
		Truncated: expansion.Truncated,
	}

	for _, occ := range expansion.Occurrences {
		occResult := OccurrenceResult{
			Position:  occ.Position,
			StartTime: occ.StartTime,
			Excluded:  occ.Excluded,
		}
		if !occ.Excluded {
			meeting, err := s.createOccurrence(ctx, req, occ.StartTime, result.SeriesUID, occ.Position, settings, boardType, quorumRequired, actorUID, actorName)
			if err != nil {
				slog.ErrorContext(ctx, "failed to create series occurrence",
					logging.ErrKey, err, "series_uid", result.SeriesUID, "position", occ.Position)
				occResult.Error = err.Error()
			} else {
				occResult.Meeting = meeting
			}
		}
		result.Occurrences = append(result.Occurrences, occResult)
	}

	return result, nil
}

func (s *MeetingService) createOccurrence(
	ctx context.Context,
	req *CreateMeetingRequest,
	startTime time.Time,
	seriesUID string,
	position int,
	settings *models.BoardSettings,
	boardType models.BoardType,
	quorumRequired int,
	actorUID, actorName string,
) (*models.Meeting, error) {
	now := time.Now().UTC()
	uid := uuid.New().String()

	meeting := &models.Meeting{
		UID:                  uid,
		BoardUID:             req.BoardUID,
		BoardType:            boardType,
		Title:                req.Title,
		Description:          req.Description,
		MeetingType:          req.MeetingType,
		LocationType:         req.LocationType,
		StartTime:            startTime,
		Duration:             req.Duration,
		Timezone:             req.Timezone,
		QuorumPercentage:     req.QuorumPercentage,
		QuorumRequired:       quorumRequired,
		RequiresConfirmation: RequiresConfirmation(boardType, req.MeetingType, settings, req.Overrides),
		Overrides:            req.Overrides,
		OverrideReason:       req.OverrideReason,
		AgendaPublished:      req.AgendaPublished,
		DocumentsAttached:    req.DocumentsAttached,
		SeriesUID:            seriesUID,
		SeriesPosition:       position,
		ReferenceCode:        generateReferenceCode(uid),
		Recurrence:           req.Recurrence,
		CreatedBy:            actorUID,
		CreatedAt:            &now,
		UpdatedAt:            &now,
	}
	setupComplete := meeting.SetupComplete(settings)
	meeting.State = InitialState(setupComplete)

	if err := s.MeetingRepository.CreateMeeting(ctx, meeting); err != nil {
		slog.ErrorContext(ctx, "failed to store meeting", logging.ErrKey, err, "meeting_uid", uid)
		return nil, err
	}

	created := meeting.State
	_, err := s.EventLog.Record(ctx, uid, models.EventMeetingCreated, nil, &created, actorUID, actorName, &models.CreatedPayload{
		RequiresConfirmation: meeting.RequiresConfirmation,
		SeriesUID:            seriesUID,
		SeriesPosition:       position,
		Override:             req.Overrides,
		OverrideReason:       req.OverrideReason,
	})
	if err != nil {
		// The event log is the source of truth; a meeting without its created
		// event must not survive.
		s.rollbackCreate(ctx, uid)
		return nil, err
	}

	if err := s.MessageBuilder.SendIndexMeeting(ctx, models.ActionCreated, meeting); err != nil {
		slog.ErrorContext(ctx, "failed to send indexing message for meeting", logging.ErrKey, err, "meeting_uid", uid)
	}
	s.announce(ctx, models.ActionCreated, meeting)

	if setupComplete {
		stored, revision, err := s.MeetingRepository.GetMeetingWithRevision(ctx, uid)
		if err != nil {
			return nil, err
		}
		submitted, err := s.performSubmit(ctx, stored, revision, settings, actorUID, actorName)
		if err != nil {
			return nil, err
		}
		return submitted, nil
	}

	return meeting, nil
}

func (s *MeetingService) rollbackCreate(ctx context.Context, meetingUID string) {
	_, revision, err := s.MeetingRepository.GetMeetingWithRevision(ctx, meetingUID)
	if err == nil {
		err = s.MeetingRepository.DeleteMeeting(ctx, meetingUID, revision)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to roll back meeting after event append failure",
			logging.ErrKey, err, logging.PriorityCritical(), "meeting_uid", meetingUID)
	}
}

func (s *MeetingService) validateCreateRequest(ctx context.Context, req *CreateMeetingRequest) error {
	if req == nil {
		return domain.NewValidationError("request is required")
	}
	if req.BoardUID == "" {
		return domain.NewValidationError("board UID is required")
	}
	if req.Title == "" {
		return domain.NewValidationError("title is required")
	}
	if !req.MeetingType.IsValid() {
		return domain.NewValidationError("unknown meeting type: " + string(req.MeetingType))
	}
	if !req.LocationType.IsValid() {
		return domain.NewValidationError("unknown location type: " + string(req.LocationType))
	}
	if req.Duration <= 0 {
		return domain.NewValidationError("duration must be positive")
	}
	if req.QuorumPercentage < 0 || req.QuorumPercentage > 100 {
		return domain.NewValidationError("quorum percentage must be between 0 and 100")
	}
	if req.StartTime.Before(time.Now().UTC()) {
		slog.WarnContext(ctx, "start time cannot be in the past", "start_time", req.StartTime)
		return domain.NewValidationError("start time cannot be in the past")
	}
	if req.Overrides.Any() && req.OverrideReason == "" {
		return domain.NewValidationError("override reason is required when any governance override is set")
	}
	return nil
}

// GetMeetings fetches all meetings.
func (s *MeetingService) GetMeetings(ctx context.Context) ([]*models.Meeting, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("meeting service is not available")
	}
	return s.MeetingRepository.ListAllMeetings(ctx)
}

// GetMeeting fetches a single meeting by UID.
func (s *MeetingService) GetMeeting(ctx context.Context, meetingUID string) (*models.Meeting, error) {
	if !s.ServiceReady() {
		return nil, domain.NewUnavailableError("meeting service is not available")
	}
	if meetingUID == "" {
		return nil, domain.NewValidationError("meeting UID is required")
	}
	return s.MeetingRepository.GetMeeting(ctx, meetingUID)
}

// GetMeetingWithRevision fetches a single meeting along with its store
// revision, for callers that surface the revision as an ETag.
func (s *MeetingService) GetMeetingWithRevision(ctx context.Context, meetingUID string) (*models.Meeting, uint64, error) {
	if !s.ServiceReady() {
		return nil, 0, domain.NewUnavailableError("meeting service is not available")
	}
	if meetingUID == "" {
		return nil, 0, domain.NewValidationError("meeting UID is required")
	}
	return s.MeetingRepository.GetMeetingWithRevision(ctx, meetingUID)
}

// GetMeetingsByBoard fetches all meetings belonging to a board.
func (s *MeetingService) GetMeetingsByBoard(ctx context.Context, boardUID string) ([]*models.Meeting, error) {
	if !s.ServiceReady() {
		return nil, domain.NewUnavailableError("meeting service is not available")
	}
	if boardUID == "" {
		return nil, domain.NewValidationError("board UID is required")
	}
	return s.MeetingRepository.ListMeetingsByBoard(ctx, boardUID)
}

// GetMeetingEvents returns a meeting's audit trail in chronological order.
func (s *MeetingService) GetMeetingEvents(ctx context.Context, meetingUID string) ([]*models.MeetingEvent, error) {
	if !s.ServiceReady() {
		return nil, domain.NewUnavailableError("meeting service is not available")
	}
	if exists, err := s.MeetingRepository.MeetingExists(ctx, meetingUID); err != nil {
		return nil, err
	} else if !exists {
		return nil, domain.NewNotFoundError("meeting not found: " + meetingUID)
	}
	return s.EventLog.ListEvents(ctx, meetingUID)
}

// PreviewRecurrence expands a rule without creating anything, for callers
// that show the calendar before committing.
func (s *MeetingService) PreviewRecurrence(ctx context.Context, startTime time.Time, pattern *models.Recurrence, timezone string) (*models.RecurrenceResult, error) {
	if s.RecurrenceService == nil {
		return nil, domain.NewUnavailableError("meeting service is not available")
	}
	result, err := s.RecurrenceService.Generate(startTime, pattern, timezone)
	if err != nil {
		return nil, err
	}
	slog.DebugContext(ctx, "generated recurrence preview", "occurrences", len(result.Occurrences), "truncated", result.Truncated)
	return result, nil
}

func (s *MeetingService) boardSettings(ctx context.Context, boardUID string) *models.BoardSettings {
	settings, err := s.SettingsProvider.GetBoardSettings(ctx, boardUID)
	if err != nil {
		// Fall through to the policy's fail-safe defaults.
		slog.WarnContext(ctx, "could not fetch board settings", logging.ErrKey, err, "board_uid", boardUID)
		return nil
	}
	return settings
}

func (s *MeetingService) resolveActorName(ctx context.Context, actorUID string) string {
	if actorUID == models.SystemActorUID {
		return models.SystemActorName
	}
	user, err := s.RosterProvider.GetUser(ctx, actorUID)
	if err != nil || user == nil {
		slog.DebugContext(ctx, "could not resolve actor name", logging.ErrKey, err, "user_uid", actorUID)
		return actorUID
	}
	return user.Name
}

// generateReferenceCode derives the short human-quotable code for a meeting
// from its UID.
func generateReferenceCode(uid string) string {
	u, err := uuid.Parse(uid)
	if err != nil {
		return ""
	}
	return "BM-" + base58.Encode(u[:6])
}
