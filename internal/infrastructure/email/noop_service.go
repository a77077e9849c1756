// Copyright The eBoard Authors.
// SPDX-License-Identifier: MIT

package email

import (
	"context"
	"log/slog"

	"github.com/MochamaB/eboard-sub001/internal/domain"
	"github.com/MochamaB/eboard-sub001/internal/logging"
)

// NoOpService is a no-operation email service that logs but doesn't send emails
type NoOpService struct{}

// NewNoOpService creates a new no-op email service
func NewNoOpService() *NoOpService {
	return &NoOpService{}
}

// Ensure [NoOpService] implements [domain.EmailService]
var _ domain.EmailService = (*NoOpService)(nil)

// SendParticipantInvitation logs the invitation but doesn't send an email
func (s *NoOpService) SendParticipantInvitation(ctx context.Context, invitation domain.EmailInvitation) error {
	ctx = logging.AppendCtx(ctx, slog.String("recipient_email", invitation.RecipientEmail))
	ctx = logging.AppendCtx(ctx, slog.String("meeting_title", invitation.MeetingTitle))

	slog.DebugContext(ctx, "email service disabled, skipping invitation email")
	return nil
}

// SendParticipantCancellation logs the cancellation but doesn't send an email
func (s *NoOpService) SendParticipantCancellation(ctx context.Context, cancellation domain.EmailCancellation) error {
	ctx = logging.AppendCtx(ctx, slog.String("recipient_email", cancellation.RecipientEmail))
	ctx = logging.AppendCtx(ctx, slog.String("meeting_title", cancellation.MeetingTitle))

	slog.DebugContext(ctx, "email service disabled, skipping cancellation email")
	return nil
}

// SendApprovalRequest logs the approval request but doesn't send an email
func (s *NoOpService) SendApprovalRequest(ctx context.Context, request domain.EmailApprovalRequest) error {
	ctx = logging.AppendCtx(ctx, slog.String("recipient_email", request.RecipientEmail))
	ctx = logging.AppendCtx(ctx, slog.String("meeting_title", request.MeetingTitle))

	slog.DebugContext(ctx, "email service disabled, skipping approval request email")
	return nil
}
