// Copyright The eBoard Authors.
// SPDX-License-Identifier: MIT

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/MochamaB/eboard-sub001/internal/domain"
)

// MockEmailService implements EmailService for testing
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendParticipantInvitation(ctx context.Context, invitation domain.EmailInvitation) error {
	args := m.Called(ctx, invitation)
	return args.Error(0)
}

func (m *MockEmailService) SendParticipantCancellation(ctx context.Context, cancellation domain.EmailCancellation) error {
	args := m.Called(ctx, cancellation)
	return args.Error(0)
}

func (m *MockEmailService) SendApprovalRequest(ctx context.Context, request domain.EmailApprovalRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}
