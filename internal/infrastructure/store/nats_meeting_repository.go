// Copyright The eBoard Authors.
// SPDX-License-Identifier: MIT

package store

import (
	"context"

	"github.com/MochamaB/eboard-sub001/internal/domain/models"
)

// NatsMeetingRepository is the NATS KV store repository for meetings.
type NatsMeetingRepository struct {
	*NatsBaseRepository[models.Meeting]
}

// NewNatsMeetingRepository creates a new NATS meeting repository.
func NewNatsMeetingRepository(kvStore INatsKeyValue) *NatsMeetingRepository {
	return &NatsMeetingRepository{
		NatsBaseRepository: NewNatsBaseRepository[models.Meeting](kvStore, "meeting"),
	}
}

// CreateMeeting creates a new meeting in the store.
func (s *NatsMeetingRepository) CreateMeeting(ctx context.Context, meeting *models.Meeting) error {
	return s.CreateOnly(ctx, meeting.UID, meeting)
}

// MeetingExists checks whether a meeting exists.
func (s *NatsMeetingRepository) MeetingExists(ctx context.Context, meetingUID string) (bool, error) {
	return s.Exists(ctx, meetingUID)
}

// GetMeeting retrieves a meeting by its UID.
func (s *NatsMeetingRepository) GetMeeting(ctx context.Context, meetingUID string) (*models.Meeting, error) {
	return s.Get(ctx, meetingUID)
}

// GetMeetingWithRevision retrieves a meeting together with its KV revision
// for optimistic concurrency control.
func (s *NatsMeetingRepository) GetMeetingWithRevision(ctx context.Context, meetingUID string) (*models.Meeting, uint64, error) {
	return s.GetWithRevision(ctx, meetingUID)
}

// UpdateMeeting updates an existing meeting. The update fails with a
// conflict error when the stored revision no longer matches.
func (s *NatsMeetingRepository) UpdateMeeting(ctx context.Context, meeting *models.Meeting, revision uint64) error {
	return s.Update(ctx, meeting.UID, meeting, revision)
}

// DeleteMeeting removes a meeting from the store.
func (s *NatsMeetingRepository) DeleteMeeting(ctx context.Context, meetingUID string, revision uint64) error {
	return s.Delete(ctx, meetingUID, revision)
}

// ListAllMeetings returns all meetings in the store.
func (s *NatsMeetingRepository) ListAllMeetings(ctx context.Context) ([]*models.Meeting, error) {
	return s.ListEntities(ctx, "")
}

// ListMeetingsByBoard returns all meetings belonging to a board.
func (s *NatsMeetingRepository) ListMeetingsByBoard(ctx context.Context, boardUID string) ([]*models.Meeting, error) {
	meetings, err := s.ListEntities(ctx, "")
	if err != nil {
		return nil, err
	}

	var matched []*models.Meeting
	for _, meeting := range meetings {
		if meeting.BoardUID == boardUID {
			matched = append(matched, meeting)
		}
	}

	return matched, nil
}

// ListMeetingsBySeries returns all occurrences of a recurring series.
func (s *NatsMeetingRepository) ListMeetingsBySeries(ctx context.Context, seriesUID string) ([]*models.Meeting, error) {
	meetings, err := s.ListEntities(ctx, "")
	if err != nil {
		return nil, err
	}

	var matched []*models.Meeting
	for _, meeting := range meetings {
		if meeting.SeriesUID == seriesUID {
			matched = append(matched, meeting)
		}
	}

	return matched, nil
}
