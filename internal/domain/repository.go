// Copyright The eBoard Authors.
// SPDX-License-Identifier: MIT

package domain

import (
	"context"

	"github.com/MochamaB/eboard-sub001/internal/domain/models"
)

// MeetingRepository defines the interface for meeting storage operations.
// This interface can be implemented by different storage backends (NATS, PostgreSQL, etc.)
type MeetingRepository interface {
	// Meeting full operations
	CreateMeeting(ctx context.Context, meeting *models.Meeting) error
	MeetingExists(ctx context.Context, meetingUID string) (bool, error)
	DeleteMeeting(ctx context.Context, meetingUID string, revision uint64) error

	// Meeting base operations
	GetMeeting(ctx context.Context, meetingUID string) (*models.Meeting, error)
	GetMeetingWithRevision(ctx context.Context, meetingUID string) (*models.Meeting, uint64, error)
	UpdateMeeting(ctx context.Context, meeting *models.Meeting, revision uint64) error

	// Bulk operations
	ListAllMeetings(ctx context.Context) ([]*models.Meeting, error)
	ListMeetingsByBoard(ctx context.Context, boardUID string) ([]*models.Meeting, error)
	ListMeetingsBySeries(ctx context.Context, seriesUID string) ([]*models.Meeting, error)
}

// MeetingEventRepository defines the interface for the append-only event log.
// Events are never updated or deleted; corrections happen by appending a
// superseded event.
type MeetingEventRepository interface {
	AppendEvent(ctx context.Context, event *models.MeetingEvent) error
	GetEvent(ctx context.Context, meetingUID, eventUID string) (*models.MeetingEvent, error)
	ListEventsForMeeting(ctx context.Context, meetingUID string) ([]*models.MeetingEvent, error)
}
