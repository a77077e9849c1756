// Copyright The eBoard Authors.
// SPDX-License-Identifier: MIT

package domain

import (
	"context"

	"github.com/MochamaB/eboard-sub001/internal/domain/models"
)

// Message represents a domain message interface
type Message interface {
	Subject() string
	Data() []byte
	Respond(data []byte) error
	HasReply() bool
}

// MessageHandler defines how the service handles incoming messages
type MessageHandler interface {
	HandleMessage(ctx context.Context, msg Message)
	HandlerReady() bool
}

// MeetingIndexSender handles indexing operations for meetings.
type MeetingIndexSender interface {
	SendIndexMeeting(ctx context.Context, action models.MessageAction, data *models.Meeting) error
	SendDeleteIndexMeeting(ctx context.Context, meetingUID string) error
}

// MeetingEventIndexSender handles indexing operations for meeting events.
type MeetingEventIndexSender interface {
	SendIndexMeetingEvent(ctx context.Context, event *models.MeetingEvent) error
}

// MeetingAnnouncementSender publishes lifecycle announcements on the event
// bus for downstream services.
type MeetingAnnouncementSender interface {
	SendMeetingCreated(ctx context.Context, announcement models.MeetingAnnouncement) error
	SendMeetingUpdated(ctx context.Context, announcement models.MeetingAnnouncement) error
	SendMeetingCancelled(ctx context.Context, announcement models.MeetingAnnouncement) error
}

// MessageBuilder aggregates all outbound messaging of the service.
type MessageBuilder interface {
	MeetingIndexSender
	MeetingEventIndexSender
	MeetingAnnouncementSender
}
