// Copyright The eBoard Authors.
// SPDX-License-Identifier: MIT

package email

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"

	"github.com/MochamaB/eboard-sub001/internal/domain"
	"github.com/MochamaB/eboard-sub001/internal/logging"
)

// SMTPService implements the EmailService interface using SMTP
type SMTPService struct {
	config    SMTPConfig
	templates *TemplateManager
	ics       MeetingICSGenerator
}

// SMTPConfig holds the SMTP server configuration
type SMTPConfig struct {
	Host     string
	Port     int
	From     string
	Username string // Optional for authenticated SMTP
	Password string // Optional for authenticated SMTP
}

// NewSMTPService creates a new SMTP email service
func NewSMTPService(config SMTPConfig) (*SMTPService, error) {
	templates, err := NewTemplateManager()
	if err != nil {
		return nil, err
	}

	return &SMTPService{
		config:    config,
		templates: templates,
		ics:       NewICSGenerator(),
	}, nil
}

// Ensure [SMTPService] implements [domain.EmailService]
var _ domain.EmailService = (*SMTPService)(nil)

// SendParticipantInvitation sends an invitation email to a meeting participant
func (s *SMTPService) SendParticipantInvitation(ctx context.Context, invitation domain.EmailInvitation) error {
	ctx = logging.AppendCtx(ctx, slog.String("recipient_email", invitation.RecipientEmail))
	ctx = logging.AppendCtx(ctx, slog.String("meeting_title", invitation.MeetingTitle))

	rendered, err := s.templates.RenderInvitation(invitation)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render invitation templates", logging.ErrKey, err)
		return err
	}

	attachment := invitation.ICSAttachment
	if attachment == nil {
		attachment, err = s.invitationICS(invitation)
		if err != nil {
			// The invitation is still worth sending without the calendar file.
			slog.WarnContext(ctx, "failed to generate invitation ICS", logging.ErrKey, err)
		}
	}

	subject := fmt.Sprintf("Invitation: %s", invitation.MeetingTitle)
	if invitation.ReferenceCode != "" {
		subject = fmt.Sprintf("Invitation: %s [%s]", invitation.MeetingTitle, invitation.ReferenceCode)
	}

	message := buildEmailMessage(invitation.RecipientEmail, subject, rendered.HTML, rendered.Text, attachment, s.config)
	err = sendEmailMessage(invitation.RecipientEmail, message, s.config)
	if err != nil {
		slog.ErrorContext(ctx, "failed to send invitation email", logging.ErrKey, err)
		return err
	}

	slog.InfoContext(ctx, "invitation email sent successfully")
	return nil
}

// SendParticipantCancellation sends a cancellation email to a meeting participant
func (s *SMTPService) SendParticipantCancellation(ctx context.Context, cancellation domain.EmailCancellation) error {
	ctx = logging.AppendCtx(ctx, slog.String("recipient_email", cancellation.RecipientEmail))
	ctx = logging.AppendCtx(ctx, slog.String("meeting_title", cancellation.MeetingTitle))

	rendered, err := s.templates.RenderCancellation(cancellation)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render cancellation templates", logging.ErrKey, err)
		return err
	}

	subject := fmt.Sprintf("Meeting Cancellation: %s", cancellation.MeetingTitle)
	message := buildEmailMessage(cancellation.RecipientEmail, subject, rendered.HTML, rendered.Text, nil, s.config)
	err = sendEmailMessage(cancellation.RecipientEmail, message, s.config)
	if err != nil {
		slog.ErrorContext(ctx, "failed to send cancellation email", logging.ErrKey, err)
		return err
	}

	slog.InfoContext(ctx, "cancellation email sent successfully")
	return nil
}

// SendApprovalRequest asks an approver to review a submitted meeting
func (s *SMTPService) SendApprovalRequest(ctx context.Context, request domain.EmailApprovalRequest) error {
	ctx = logging.AppendCtx(ctx, slog.String("recipient_email", request.RecipientEmail))
	ctx = logging.AppendCtx(ctx, slog.String("meeting_title", request.MeetingTitle))

	rendered, err := s.templates.RenderApprovalRequest(request)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render approval request templates", logging.ErrKey, err)
		return err
	}

	subject := fmt.Sprintf("Approval Requested: %s", request.MeetingTitle)
	if request.ReferenceCode != "" {
		subject = fmt.Sprintf("Approval Requested: %s [%s]", request.MeetingTitle, request.ReferenceCode)
	}

	message := buildEmailMessage(request.RecipientEmail, subject, rendered.HTML, rendered.Text, nil, s.config)
	err = sendEmailMessage(request.RecipientEmail, message, s.config)
	if err != nil {
		slog.ErrorContext(ctx, "failed to send approval request email", logging.ErrKey, err)
		return err
	}

	slog.InfoContext(ctx, "approval request email sent successfully")
	return nil
}

// invitationICS builds the calendar attachment for an invitation.
func (s *SMTPService) invitationICS(invitation domain.EmailInvitation) (*domain.EmailAttachment, error) {
	content, err := s.ics.GenerateMeetingInvitationICS(ICSMeetingInvitationParams{
		MeetingUID:      invitation.ReferenceCode,
		MeetingTitle:    invitation.MeetingTitle,
		Description:     invitation.Description,
		StartTime:       invitation.StartTime,
		DurationMinutes: invitation.Duration,
		Timezone:        invitation.Timezone,
		BoardName:       invitation.BoardName,
		ReferenceCode:   invitation.ReferenceCode,
		RecipientEmail:  invitation.RecipientEmail,
		Recurrence:      invitation.Recurrence,
	})
	if err != nil {
		return nil, err
	}

	return &domain.EmailAttachment{
		Filename:    "meeting.ics",
		ContentType: "text/calendar; method=REQUEST",
		Content:     base64.StdEncoding.EncodeToString([]byte(content)),
	}, nil
}
