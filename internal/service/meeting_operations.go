// Copyright The eBoard Authors.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/MochamaB/eboard-sub001/internal/domain"
	"github.com/MochamaB/eboard-sub001/internal/domain/models"
	"github.com/MochamaB/eboard-sub001/internal/logging"
	"github.com/MochamaB/eboard-sub001/pkg/concurrent"
)

// Lifecycle operations. Every operation serializes on the meeting's store
// revision: the guard runs against the loaded state and the update is
// rejected on a concurrent write, so transitions are never applied to a
// stale state. The state update and the event append are all-or-nothing: a
// failed append rolls the materialized state back.

// SubmitMeeting submits a draft meeting for scheduling. Depending on the
// confirmation policy it lands in pending approval or, on the auto-approved
// path, directly in approved.
func (s *MeetingService) SubmitMeeting(ctx context.Context, meetingUID, actorUID string) (*models.Meeting, error) {
	if !s.ServiceReady() {
		return nil, domain.NewUnavailableError("meeting service is not available")
	}

	meeting, revision, err := s.MeetingRepository.GetMeetingWithRevision(ctx, meetingUID)
	if err != nil {
		return nil, err
	}

	settings := s.boardSettings(ctx, meeting.BoardUID)
	return s.performSubmit(ctx, meeting, revision, settings, actorUID, s.resolveActorName(ctx, actorUID))
}

func (s *MeetingService) performSubmit(ctx context.Context, meeting *models.Meeting, revision uint64, settings *models.BoardSettings, actorUID, actorName string) (*models.Meeting, error) {
	if meeting.Overrides.Any() && meeting.OverrideReason == "" {
		return nil, domain.NewValidationError("override reason is required when any governance override is set")
	}

	required := RequiresConfirmation(meeting.BoardType, meeting.MeetingType, settings, meeting.Overrides)
	newState, err := SubmitState(meeting.State, required)
	if err != nil {
		return nil, err
	}
	meeting.RequiresConfirmation = required

	if required {
		_, err = s.transition(ctx, meeting, revision, newState, models.EventSubmittedForApproval, actorUID, actorName, &models.SubmissionPayload{
			Override:       meeting.Overrides,
			OverrideReason: meeting.OverrideReason,
		})
		if err != nil {
			return nil, err
		}
		s.notifyApprover(ctx, meeting, actorName)
		return meeting, nil
	}

	// Auto-approved path: no approver will act, so the approval is recorded
	// with a synthetic system actor rather than silently omitted.
	_, err = s.transition(ctx, meeting, revision, newState, models.EventApproved, models.SystemActorUID, models.SystemActorName, &models.ApprovalPayload{
		System: true,
	})
	if err != nil {
		return nil, err
	}
	s.sendInvitations(ctx, meeting)
	return meeting, nil
}

// ApproveMeeting records the designated approver's sign-off.
func (s *MeetingService) ApproveMeeting(ctx context.Context, meetingUID, approverUID string) (*models.Meeting, error) {
	if !s.ServiceReady() {
		return nil, domain.NewUnavailableError("meeting service is not available")
	}

	meeting, revision, err := s.MeetingRepository.GetMeetingWithRevision(ctx, meetingUID)
	if err != nil {
		return nil, err
	}

	approver, err := s.approver(ctx, approverUID, meeting.BoardType)
	if err != nil {
		return nil, err
	}

	newState, err := ApproveState(meeting.State)
	if err != nil {
		return nil, err
	}

	_, err = s.transition(ctx, meeting, revision, newState, models.EventApproved, approver.UserUID, approver.Name, &models.ApprovalPayload{
		ApproverRole: approver.Role,
	})
	if err != nil {
		return nil, err
	}

	s.sendInvitations(ctx, meeting)
	return meeting, nil
}

// RejectMeeting records the approver's rejection with a mandatory reason.
func (s *MeetingService) RejectMeeting(ctx context.Context, meetingUID, approverUID, reason string) (*models.Meeting, error) {
	if !s.ServiceReady() {
		return nil, domain.NewUnavailableError("meeting service is not available")
	}
	if reason == "" {
		return nil, domain.NewValidationError("rejection reason is required")
	}

	meeting, revision, err := s.MeetingRepository.GetMeetingWithRevision(ctx, meetingUID)
	if err != nil {
		return nil, err
	}

	approver, err := s.approver(ctx, approverUID, meeting.BoardType)
	if err != nil {
		return nil, err
	}

	newState, err := RejectState(meeting.State)
	if err != nil {
		return nil, err
	}

	_, err = s.transition(ctx, meeting, revision, newState, models.EventRejected, approver.UserUID, approver.Name, &models.RejectionPayload{
		ApproverRole: approver.Role,
		Reason:       reason,
	})
	if err != nil {
		return nil, err
	}
	return meeting, nil
}

// ResubmitMeeting sends a rejected meeting back for review. The confirmation
// requirement is recomputed, so an edit since rejection can land the meeting
// straight in approved.
func (s *MeetingService) ResubmitMeeting(ctx context.Context, meetingUID, actorUID string) (*models.Meeting, error) {
	if !s.ServiceReady() {
		return nil, domain.NewUnavailableError("meeting service is not available")
	}

	meeting, revision, err := s.MeetingRepository.GetMeetingWithRevision(ctx, meetingUID)
	if err != nil {
		return nil, err
	}
	if meeting.Overrides.Any() && meeting.OverrideReason == "" {
		return nil, domain.NewValidationError("override reason is required when any governance override is set")
	}

	settings := s.boardSettings(ctx, meeting.BoardUID)
	required := RequiresConfirmation(meeting.BoardType, meeting.MeetingType, settings, meeting.Overrides)

	newState, err := ResubmitState(meeting.State, required)
	if err != nil {
		return nil, err
	}
	meeting.RequiresConfirmation = required

	_, err = s.transition(ctx, meeting, revision, newState, models.EventResubmitted, actorUID, s.resolveActorName(ctx, actorUID), &models.SubmissionPayload{
		AutoApproved:   !required,
		Override:       meeting.Overrides,
		OverrideReason: meeting.OverrideReason,
	})
	if err != nil {
		return nil, err
	}

	if required {
		s.notifyApprover(ctx, meeting, s.resolveActorName(ctx, actorUID))
	} else {
		s.sendInvitations(ctx, meeting)
	}
	return meeting, nil
}

// StartMeeting marks an approved meeting as live. The clock guard rejects
// starts before the scheduled time unless SkipTimeCheck is configured.
func (s *MeetingService) StartMeeting(ctx context.Context, meetingUID, actorUID string) (*models.Meeting, error) {
	if !s.ServiceReady() {
		return nil, domain.NewUnavailableError("meeting service is not available")
	}

	meeting, revision, err := s.MeetingRepository.GetMeetingWithRevision(ctx, meetingUID)
	if err != nil {
		return nil, err
	}

	newState, err := StartState(meeting.State, meeting.StartTime, time.Now().UTC(), s.Config.SkipTimeCheck)
	if err != nil {
		return nil, err
	}

	_, err = s.transition(ctx, meeting, revision, newState, models.EventMeetingStarted, actorUID, s.resolveActorName(ctx, actorUID), &models.TransitionPayload{})
	if err != nil {
		return nil, err
	}
	return meeting, nil
}

// EndMeeting marks a live meeting as finished.
func (s *MeetingService) EndMeeting(ctx context.Context, meetingUID, actorUID string) (*models.Meeting, error) {
	if !s.ServiceReady() {
		return nil, domain.NewUnavailableError("meeting service is not available")
	}

	meeting, revision, err := s.MeetingRepository.GetMeetingWithRevision(ctx, meetingUID)
	if err != nil {
		return nil, err
	}

	newState, err := EndState(meeting.State)
	if err != nil {
		return nil, err
	}

	_, err = s.transition(ctx, meeting, revision, newState, models.EventMeetingEnded, actorUID, s.resolveActorName(ctx, actorUID), &models.TransitionPayload{})
	if err != nil {
		return nil, err
	}
	return meeting, nil
}

// ArchiveMeeting moves a recently completed meeting into the archive.
func (s *MeetingService) ArchiveMeeting(ctx context.Context, meetingUID, actorUID string) (*models.Meeting, error) {
	if !s.ServiceReady() {
		return nil, domain.NewUnavailableError("meeting service is not available")
	}

	meeting, revision, err := s.MeetingRepository.GetMeetingWithRevision(ctx, meetingUID)
	if err != nil {
		return nil, err
	}

	newState, err := ArchiveState(meeting.State)
	if err != nil {
		return nil, err
	}

	_, err = s.transition(ctx, meeting, revision, newState, models.EventArchived, actorUID, s.resolveActorName(ctx, actorUID), &models.ArchivePayload{
		RetentionDays: s.retentionDays(),
	})
	if err != nil {
		return nil, err
	}
	return meeting, nil
}

// ArchiveDueMeetings archives every completed meeting whose retention window
// has elapsed. Called periodically rather than by a user.
func (s *MeetingService) ArchiveDueMeetings(ctx context.Context) (int, error) {
	if !s.ServiceReady() {
		return 0, domain.NewUnavailableError("meeting service is not available")
	}

	meetings, err := s.MeetingRepository.ListAllMeetings(ctx)
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -s.retentionDays())
	archived := 0
	for _, meeting := range meetings {
		if meeting.State != models.StateCompletedRecent {
			continue
		}
		if meeting.UpdatedAt != nil && meeting.UpdatedAt.After(cutoff) {
			continue
		}
		if _, err := s.ArchiveMeeting(ctx, meeting.UID, models.SystemActorUID); err != nil {
			slog.ErrorContext(ctx, "failed to archive due meeting", logging.ErrKey, err, "meeting_uid", meeting.UID)
			continue
		}
		archived++
	}
	return archived, nil
}

// CancelMeeting cancels a meeting that has not started yet. The reason is
// mandatory and recorded on both the meeting and its event.
func (s *MeetingService) CancelMeeting(ctx context.Context, meetingUID, actorUID, reason string) (*models.Meeting, error) {
	if !s.ServiceReady() {
		return nil, domain.NewUnavailableError("meeting service is not available")
	}
	if reason == "" {
		return nil, domain.NewValidationError("cancellation reason is required")
	}

	meeting, revision, err := s.MeetingRepository.GetMeetingWithRevision(ctx, meetingUID)
	if err != nil {
		return nil, err
	}

	newState, err := CancelState(meeting.State)
	if err != nil {
		return nil, err
	}

	wasApproved := meeting.State == models.StateScheduledApproved
	now := time.Now().UTC()
	meeting.CancelledBy = actorUID
	meeting.CancelledAt = &now
	meeting.CancellationReason = reason

	actorName := s.resolveActorName(ctx, actorUID)
	_, err = s.transition(ctx, meeting, revision, newState, models.EventMeetingCancelled, actorUID, actorName, &models.CancellationPayload{
		Reason: reason,
	})
	if err != nil {
		return nil, err
	}

	if err := s.MessageBuilder.SendMeetingCancelled(ctx, s.announcement(meeting)); err != nil {
		slog.ErrorContext(ctx, "failed to send cancellation announcement", logging.ErrKey, err, "meeting_uid", meeting.UID)
	}
	if wasApproved {
		// Participants only ever saw invitations for approved meetings.
		s.sendCancellations(ctx, meeting, reason)
	}
	return meeting, nil
}

// transition applies a guarded state change and its event append as one
// logical unit. meeting.State must already hold the new state's predecessor;
// on event append failure the stored state is restored and the error
// returned, so the materialized state never diverges from the log.
func (s *MeetingService) transition(
	ctx context.Context,
	meeting *models.Meeting,
	revision uint64,
	newState models.MeetingState,
	eventType models.EventType,
	performedBy, performedByName string,
	payload models.EventPayload,
) (*models.MeetingEvent, error) {
	fromState := meeting.State
	now := time.Now().UTC()
	meeting.State = newState
	meeting.UpdatedAt = &now

	if err := s.MeetingRepository.UpdateMeeting(ctx, meeting, revision); err != nil {
		meeting.State = fromState
		slog.ErrorContext(ctx, "failed to update meeting state", logging.ErrKey, err,
			"meeting_uid", meeting.UID, "from_state", fromState.String(), "to_state", newState.String())
		return nil, err
	}

	event, err := s.EventLog.Record(ctx, meeting.UID, eventType, &fromState, &newState, performedBy, performedByName, payload)
	if err != nil {
		s.rollbackTransition(ctx, meeting, fromState)
		meeting.State = fromState
		return nil, err
	}

	if err := s.MessageBuilder.SendIndexMeeting(ctx, models.ActionUpdated, meeting); err != nil {
		slog.ErrorContext(ctx, "failed to send indexing message for meeting", logging.ErrKey, err, "meeting_uid", meeting.UID)
	}
	s.announce(ctx, models.ActionUpdated, meeting)

	slog.DebugContext(ctx, "meeting transition applied",
		"meeting_uid", meeting.UID, "from_state", fromState.String(), "to_state", newState.String(), "event_type", eventType)

	return event, nil
}

func (s *MeetingService) rollbackTransition(ctx context.Context, meeting *models.Meeting, fromState models.MeetingState) {
	stored, revision, err := s.MeetingRepository.GetMeetingWithRevision(ctx, meeting.UID)
	if err == nil {
		stored.State = fromState
		err = s.MeetingRepository.UpdateMeeting(ctx, stored, revision)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to roll back meeting state after event append failure",
			logging.ErrKey, err, logging.PriorityCritical(),
			"meeting_uid", meeting.UID, "state", fromState.String())
	}
}

// approver resolves and authorizes the acting approver for a board type.
func (s *MeetingService) approver(ctx context.Context, approverUID string, boardType models.BoardType) (*models.UserInfo, error) {
	if approverUID == "" {
		return nil, domain.NewValidationError("approver UID is required")
	}
	user, err := s.RosterProvider.GetUser(ctx, approverUID)
	if err != nil || user == nil {
		slog.WarnContext(ctx, "could not resolve approver", logging.ErrKey, err, "user_uid", approverUID)
		return nil, domain.NewAuthorizationError("could not resolve approver: " + approverUID)
	}
	if !IsValidApprover(user.Role, boardType) {
		return nil, domain.NewAuthorizationError(
			"role " + string(user.Role) + " may not approve meetings for board type " + string(boardType))
	}
	return user, nil
}

func (s *MeetingService) retentionDays() int {
	if s.Config.RetentionDays > 0 {
		return s.Config.RetentionDays
	}
	return DefaultRetentionDays
}

func (s *MeetingService) announcement(meeting *models.Meeting) models.MeetingAnnouncement {
	return models.MeetingAnnouncement{
		MeetingUID: meeting.UID,
		BoardUID:   meeting.BoardUID,
		Title:      meeting.Title,
		State:      meeting.State.String(),
		StartTime:  meeting.StartTime.UTC().Format(time.RFC3339),
		SeriesUID:  meeting.SeriesUID,
	}
}

func (s *MeetingService) announce(ctx context.Context, action models.MessageAction, meeting *models.Meeting) {
	var err error
	switch action {
	case models.ActionCreated:
		err = s.MessageBuilder.SendMeetingCreated(ctx, s.announcement(meeting))
	case models.ActionUpdated:
		err = s.MessageBuilder.SendMeetingUpdated(ctx, s.announcement(meeting))
	case models.ActionDeleted:
		err = s.MessageBuilder.SendMeetingCancelled(ctx, s.announcement(meeting))
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to send meeting announcement", logging.ErrKey, err,
			"meeting_uid", meeting.UID, "action", string(action))
	}
}

// notifyApprover emails the board's designated approver that a meeting is
// waiting for review. Best effort.
func (s *MeetingService) notifyApprover(ctx context.Context, meeting *models.Meeting, submitterName string) {
	roster, err := s.RosterProvider.ListParticipants(ctx, meeting.BoardUID)
	if err != nil {
		slog.WarnContext(ctx, "could not list participants to notify approver", logging.ErrKey, err, "board_uid", meeting.BoardUID)
		return
	}

	role := ApproverRole(meeting.BoardType)
	for _, p := range roster {
		if p.Role != role || p.Email == "" {
			continue
		}
		err := s.EmailService.SendApprovalRequest(ctx, domain.EmailApprovalRequest{
			RecipientEmail: p.Email,
			RecipientName:  p.Name,
			MeetingTitle:   meeting.Title,
			StartTime:      meeting.StartTime,
			Timezone:       meeting.Timezone,
			ReferenceCode:  meeting.ReferenceCode,
			SubmittedBy:    submitterName,
		})
		if err != nil {
			slog.ErrorContext(ctx, "failed to send approval request email", logging.ErrKey, err, "recipient", p.Email)
		}
	}
}

// sendInvitations emails calendar invitations to the board roster once a
// meeting is approved. Best effort, fanned out over a bounded worker pool.
func (s *MeetingService) sendInvitations(ctx context.Context, meeting *models.Meeting) {
	roster, err := s.RosterProvider.ListParticipants(ctx, meeting.BoardUID)
	if err != nil {
		slog.WarnContext(ctx, "could not list participants for invitations", logging.ErrKey, err, "board_uid", meeting.BoardUID)
		return
	}

	pool := concurrent.NewWorkerPool(5)
	var jobs []func() error
	for _, p := range roster {
		if p.Email == "" {
			continue
		}
		jobs = append(jobs, func() error {
			return s.EmailService.SendParticipantInvitation(ctx, domain.EmailInvitation{
				RecipientEmail: p.Email,
				RecipientName:  p.Name,
				MeetingTitle:   meeting.Title,
				StartTime:      meeting.StartTime,
				Duration:       meeting.Duration,
				Timezone:       meeting.Timezone,
				Description:    meeting.Description,
				ReferenceCode:  meeting.ReferenceCode,
				Recurrence:     meeting.Recurrence,
			})
		})
	}
	for _, err := range pool.RunAll(ctx, jobs...) {
		slog.ErrorContext(ctx, "failed to send invitation email", logging.ErrKey, err, "meeting_uid", meeting.UID)
	}
}

func (s *MeetingService) sendCancellations(ctx context.Context, meeting *models.Meeting, reason string) {
	roster, err := s.RosterProvider.ListParticipants(ctx, meeting.BoardUID)
	if err != nil {
		slog.WarnContext(ctx, "could not list participants for cancellation notices", logging.ErrKey, err, "board_uid", meeting.BoardUID)
		return
	}

	pool := concurrent.NewWorkerPool(5)
	var jobs []func() error
	for _, p := range roster {
		if p.Email == "" {
			continue
		}
		jobs = append(jobs, func() error {
			return s.EmailService.SendParticipantCancellation(ctx, domain.EmailCancellation{
				RecipientEmail: p.Email,
				RecipientName:  p.Name,
				MeetingTitle:   meeting.Title,
				StartTime:      meeting.StartTime,
				Duration:       meeting.Duration,
				Timezone:       meeting.Timezone,
				Description:    meeting.Description,
				Reason:         reason,
			})
		})
	}
	for _, err := range pool.RunAll(ctx, jobs...) {
		slog.ErrorContext(ctx, "failed to send cancellation email", logging.ErrKey, err, "meeting_uid", meeting.UID)
	}
}
