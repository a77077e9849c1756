// Copyright The eBoard Authors.
// SPDX-License-Identifier: MIT

package domain

import (
	"context"
	"time"

	"github.com/MochamaB/eboard-sub001/internal/domain/models"
)

// EmailService defines the interface for sending emails
type EmailService interface {
	SendParticipantInvitation(ctx context.Context, invitation EmailInvitation) error
	SendParticipantCancellation(ctx context.Context, cancellation EmailCancellation) error
	SendApprovalRequest(ctx context.Context, request EmailApprovalRequest) error
}

// EmailInvitation contains the data needed to send a meeting invitation email
type EmailInvitation struct {
	RecipientEmail string
	RecipientName  string
	MeetingTitle   string
	StartTime      time.Time
	Duration       int // Duration in minutes
	Timezone       string
	Description    string
	BoardName      string             // Optional board name for context
	ReferenceCode  string             // Short code quoted in the subject line
	Recurrence     *models.Recurrence // Recurrence pattern for ICS
	ICSAttachment  *EmailAttachment   // ICS calendar attachment
}

// EmailCancellation contains the data needed to send a meeting cancellation email
type EmailCancellation struct {
	RecipientEmail string
	RecipientName  string
	MeetingTitle   string
	StartTime      time.Time
	Duration       int // Duration in minutes
	Timezone       string
	Description    string
	BoardName      string // Optional board name for context
	Reason         string // Optional reason for cancellation
}

// EmailApprovalRequest contains the data needed to ask an approver to review
// a submitted meeting.
type EmailApprovalRequest struct {
	RecipientEmail string
	RecipientName  string
	MeetingTitle   string
	StartTime      time.Time
	Timezone       string
	BoardName      string
	ReferenceCode  string
	SubmittedBy    string
}

// EmailAttachment represents a file attachment for an email
type EmailAttachment struct {
	Filename    string // Name of the attachment file
	ContentType string // MIME type of the attachment
	Content     string // Base64 encoded content
}
