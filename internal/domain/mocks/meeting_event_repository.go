// Copyright The eBoard Authors.
// SPDX-License-Identifier: MIT

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/MochamaB/eboard-sub001/internal/domain/models"
)

// MockMeetingEventRepository implements MeetingEventRepository for testing
type MockMeetingEventRepository struct {
	mock.Mock
}

func (m *MockMeetingEventRepository) AppendEvent(ctx context.Context, event *models.MeetingEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockMeetingEventRepository) GetEvent(ctx context.Context, meetingUID, eventUID string) (*models.MeetingEvent, error) {
	args := m.Called(ctx, meetingUID, eventUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MeetingEvent), args.Error(1)
}

func (m *MockMeetingEventRepository) ListEventsForMeeting(ctx context.Context, meetingUID string) ([]*models.MeetingEvent, error) {
	args := m.Called(ctx, meetingUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.MeetingEvent), args.Error(1)
}
