// Copyright The eBoard Authors.
// SPDX-License-Identifier: MIT

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/MochamaB/eboard-sub001/internal/domain/models"
)

// MockMessageBuilder implements the index and announcement sender interfaces
// for testing
type MockMessageBuilder struct {
	mock.Mock
}

func (m *MockMessageBuilder) SendIndexMeeting(ctx context.Context, action models.MessageAction, data *models.Meeting) error {
	args := m.Called(ctx, action, data)
	return args.Error(0)
}

func (m *MockMessageBuilder) SendDeleteIndexMeeting(ctx context.Context, meetingUID string) error {
	args := m.Called(ctx, meetingUID)
	return args.Error(0)
}

func (m *MockMessageBuilder) SendIndexMeetingEvent(ctx context.Context, event *models.MeetingEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockMessageBuilder) SendMeetingCreated(ctx context.Context, announcement models.MeetingAnnouncement) error {
	args := m.Called(ctx, announcement)
	return args.Error(0)
}

func (m *MockMessageBuilder) SendMeetingUpdated(ctx context.Context, announcement models.MeetingAnnouncement) error {
	args := m.Called(ctx, announcement)
	return args.Error(0)
}

func (m *MockMessageBuilder) SendMeetingCancelled(ctx context.Context, announcement models.MeetingAnnouncement) error {
	args := m.Called(ctx, announcement)
	return args.Error(0)
}
