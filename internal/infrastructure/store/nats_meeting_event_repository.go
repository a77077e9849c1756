// Copyright The eBoard Authors.
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"sort"

	"github.com/MochamaB/eboard-sub001/internal/domain"
	"github.com/MochamaB/eboard-sub001/internal/domain/models"
)

// NatsMeetingEventRepository is the NATS KV store repository for the
// append-only meeting event log. Events are written with Create so an
// existing key can never be overwritten.
type NatsMeetingEventRepository struct {
	*NatsBaseRepository[models.MeetingEvent]
}

// NewNatsMeetingEventRepository creates a new NATS meeting event repository.
func NewNatsMeetingEventRepository(kvStore INatsKeyValue) *NatsMeetingEventRepository {
	return &NatsMeetingEventRepository{
		NatsBaseRepository: NewNatsBaseRepository[models.MeetingEvent](kvStore, "meeting event"),
	}
}

// AppendEvent appends an event to the meeting's log.
func (s *NatsMeetingEventRepository) AppendEvent(ctx context.Context, event *models.MeetingEvent) error {
	if event.MeetingUID == "" || event.UID == "" {
		return domain.NewValidationError("meeting event is missing meeting UID or event UID")
	}

	return s.CreateOnly(ctx, eventKey(event.MeetingUID, event.UID), event)
}

// GetEvent retrieves a single event from a meeting's log.
func (s *NatsMeetingEventRepository) GetEvent(ctx context.Context, meetingUID, eventUID string) (*models.MeetingEvent, error) {
	return s.Get(ctx, eventKey(meetingUID, eventUID))
}

// ListEventsForMeeting returns all events for a meeting ordered by the
// time they were recorded.
func (s *NatsMeetingEventRepository) ListEventsForMeeting(ctx context.Context, meetingUID string) ([]*models.MeetingEvent, error) {
	events, err := s.ListEntities(ctx, eventKeyPrefix(meetingUID))
	if err != nil {
		return nil, err
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].PerformedAt.Before(events[j].PerformedAt)
	})

	return events, nil
}
