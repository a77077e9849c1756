// Copyright The eBoard Authors.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/MochamaB/eboard-sub001/internal/domain"
	"github.com/MochamaB/eboard-sub001/internal/domain/models"
	"github.com/MochamaB/eboard-sub001/internal/logging"
)

// EventLogService owns the append-only audit trail of meeting lifecycle
// events. Events are appended once and never mutated or deleted; a wrong
// entry is corrected by appending a compensating superseded event.
type EventLogService struct {
	EventRepository domain.MeetingEventRepository
	MessageBuilder  domain.MeetingEventIndexSender
}

// NewEventLogService creates a new EventLogService.
func NewEventLogService(eventRepository domain.MeetingEventRepository, messageBuilder domain.MeetingEventIndexSender) *EventLogService {
	return &EventLogService{
		EventRepository: eventRepository,
		MessageBuilder:  messageBuilder,
	}
}

// ServiceReady checks if the service is ready for use.
func (s *EventLogService) ServiceReady() bool {
	return s.EventRepository != nil && s.MessageBuilder != nil
}

// Record appends a new event to a meeting's log. fromState and toState are
// set only for status-changing event types. performedByName is stored as a
// snapshot so the history stays accurate if the actor is later renamed.
func (s *EventLogService) Record(
	ctx context.Context,
	meetingUID string,
	eventType models.EventType,
	fromState, toState *models.MeetingState,
	performedBy, performedByName string,
	payload models.EventPayload,
) (*models.MeetingEvent, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "event log service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("event log service is not available")
	}

	if !eventType.IsValid() {
		return nil, domain.NewValidationError("unknown event type: " + string(eventType))
	}
	if eventType.ChangesStatus() != (toState != nil) {
		return nil, domain.NewValidationError("event type " + string(eventType) + " and state pair do not agree")
	}

	raw, err := models.EncodePayload(payload)
	if err != nil {
		return nil, domain.NewInternalError("failed to encode event payload", err)
	}

	event := &models.MeetingEvent{
		UID:             uuid.New().String(),
		MeetingUID:      meetingUID,
		Type:            eventType,
		FromState:       fromState,
		ToState:         toState,
		PerformedBy:     performedBy,
		PerformedByName: performedByName,
		PerformedAt:     time.Now().UTC(),
		Payload:         raw,
	}

	if err := s.EventRepository.AppendEvent(ctx, event); err != nil {
		slog.ErrorContext(ctx, "failed to append event", logging.ErrKey, err, "event_type", eventType, "meeting_uid", meetingUID)
		return nil, err
	}

	// Indexing is best effort; the log entry is already durable.
	if err := s.MessageBuilder.SendIndexMeetingEvent(ctx, event); err != nil {
		slog.ErrorContext(ctx, "failed to send indexing message for event", logging.ErrKey, err, "event_uid", event.UID)
	}

	slog.DebugContext(ctx, "recorded meeting event", "event_uid", event.UID, "event_type", eventType, "meeting_uid", meetingUID)

	return event, nil
}

// Supersede appends a compensating event marking an earlier entry as
// corrected. The original entry is left untouched.
func (s *EventLogService) Supersede(ctx context.Context, meetingUID, eventUID, reason, performedBy, performedByName string) (*models.MeetingEvent, error) {
	if _, err := s.EventRepository.GetEvent(ctx, meetingUID, eventUID); err != nil {
		return nil, err
	}
	return s.Record(ctx, meetingUID, models.EventSuperseded, nil, nil, performedBy, performedByName, &models.SupersededPayload{
		SupersededEventUID: eventUID,
		Reason:             reason,
	})
}

// ListEvents returns a meeting's full event history in chronological order.
func (s *EventLogService) ListEvents(ctx context.Context, meetingUID string) ([]*models.MeetingEvent, error) {
	if !s.ServiceReady() {
		return nil, domain.NewUnavailableError("event log service is not available")
	}

	events, err := s.EventRepository.ListEventsForMeeting(ctx, meetingUID)
	if err != nil {
		return nil, err
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].PerformedAt.Before(events[j].PerformedAt)
	})
	return events, nil
}
