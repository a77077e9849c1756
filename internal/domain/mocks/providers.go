// Copyright The eBoard Authors.
// SPDX-License-Identifier: MIT

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/MochamaB/eboard-sub001/internal/domain/models"
)

// MockParticipantRosterProvider implements ParticipantRosterProvider for testing
type MockParticipantRosterProvider struct {
	mock.Mock
}

func (m *MockParticipantRosterProvider) GetUser(ctx context.Context, userUID string) (*models.UserInfo, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserInfo), args.Error(1)
}

func (m *MockParticipantRosterProvider) ListParticipants(ctx context.Context, boardUID string) ([]models.Participant, error) {
	args := m.Called(ctx, boardUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Participant), args.Error(1)
}

// MockBoardSettingsProvider implements BoardSettingsProvider for testing
type MockBoardSettingsProvider struct {
	mock.Mock
}

func (m *MockBoardSettingsProvider) GetBoardSettings(ctx context.Context, boardUID string) (*models.BoardSettings, error) {
	args := m.Called(ctx, boardUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BoardSettings), args.Error(1)
}
