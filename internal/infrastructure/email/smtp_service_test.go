// Copyright The eBoard Authors.
// SPDX-License-Identifier: MIT

package email

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MochamaB/eboard-sub001/internal/domain"
)

func TestNewSMTPServiceLoadsTemplates(t *testing.T) {
	service, err := NewSMTPService(SMTPConfig{
		Host: "localhost",
		Port: 1025,
		From: "governance@eboard.app",
	})
	require.NoError(t, err)
	require.NotNil(t, service.templates)
	require.NotNil(t, service.ics)
}

func TestInvitationICSAttachment(t *testing.T) {
	service, err := NewSMTPService(SMTPConfig{From: "governance@eboard.app"})
	require.NoError(t, err)

	attachment, err := service.invitationICS(domain.EmailInvitation{
		RecipientEmail: "alice@example.com",
		MeetingTitle:   "Quarterly Review",
		StartTime:      time.Date(2026, 9, 15, 7, 30, 0, 0, time.UTC),
		Duration:       90,
		Timezone:       "UTC",
		ReferenceCode:  "BM-abc123",
	})
	require.NoError(t, err)
	require.NotNil(t, attachment)
	require.Equal(t, "meeting.ics", attachment.Filename)
	require.NotEmpty(t, attachment.Content)
}

func TestNoOpService(t *testing.T) {
	service := NewNoOpService()
	ctx := context.Background()

	require.NoError(t, service.SendParticipantInvitation(ctx, domain.EmailInvitation{}))
	require.NoError(t, service.SendParticipantCancellation(ctx, domain.EmailCancellation{}))
	require.NoError(t, service.SendApprovalRequest(ctx, domain.EmailApprovalRequest{}))
}
