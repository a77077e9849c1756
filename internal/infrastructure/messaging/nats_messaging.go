// Copyright The eBoard Authors.
// SPDX-License-Identifier: MIT

package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/nats-io/nats.go"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/MochamaB/eboard-sub001/internal/domain"
	"github.com/MochamaB/eboard-sub001/internal/domain/models"
	"github.com/MochamaB/eboard-sub001/internal/logging"
	"github.com/MochamaB/eboard-sub001/pkg/constants"
)

// requestTimeout bounds NATS request-reply calls to other services.
const requestTimeout = 10 * time.Second

// INatsConn is a NATS connection interface needed for the [MessageBuilder].
type INatsConn interface {
	IsConnected() bool
	Publish(subj string, data []byte) error
	Request(subj string, data []byte, timeout time.Duration) (*nats.Msg, error)
}

// MessageBuilder is the builder for the message and sends it to the NATS server.
// It also serves request-reply lookups against the directory and boards
// services over the same connection.
type MessageBuilder struct {
	NatsConn INatsConn
}

// NewMessageBuilder creates a new MessageBuilder.
func NewMessageBuilder(natsConn INatsConn) *MessageBuilder {
	return &MessageBuilder{
		NatsConn: natsConn,
	}
}

// sendMessage sends the message to the NATS server.
func (m *MessageBuilder) sendMessage(ctx context.Context, subject string, data []byte) error {
	err := m.NatsConn.Publish(subject, data)
	if err != nil {
		slog.ErrorContext(ctx, "error sending message to NATS", logging.ErrKey, err, "subject", subject)
		return err
	}
	slog.DebugContext(ctx, "sent message to NATS", "subject", subject)
	return nil
}

// sendIndexerMessage sends the message to the NATS server for the indexer.
func (m *MessageBuilder) sendIndexerMessage(ctx context.Context, subject string, action models.MessageAction, data []byte, tags []string) error {
	headers := make(map[string]string)
	if authorization, ok := ctx.Value(constants.AuthorizationContextID).(string); ok {
		headers[constants.AuthorizationHeader] = authorization
	} else {
		// Fallback for system-generated events (auto-approvals, archival
		// sweeps) that don't have user auth context. The indexer requires
		// an authorization header to process the message.
		headers[constants.AuthorizationHeader] = "Bearer board-meeting-service"
	}
	if principal, ok := ctx.Value(constants.PrincipalContextID).(string); ok {
		headers[constants.XOnBehalfOfHeader] = principal
	}

	var payload any
	switch action {
	case models.ActionCreated, models.ActionUpdated:
		// The data should be a JSON object.
		var jsonData any
		if err := json.Unmarshal(data, &jsonData); err != nil {
			slog.ErrorContext(ctx, "error unmarshalling data into JSON", logging.ErrKey, err, "subject", subject)
			return err
		}

		// Decode the JSON data into a map[string]any since that is what the indexer expects.
		config := mapstructure.DecoderConfig{
			TagName: "json",
			Result:  &payload,
		}
		decoder, err := mapstructure.NewDecoder(&config)
		if err != nil {
			slog.ErrorContext(ctx, "error creating decoder", logging.ErrKey, err, "subject", subject)
			return err
		}
		err = decoder.Decode(jsonData)
		if err != nil {
			slog.ErrorContext(ctx, "error decoding data", logging.ErrKey, err, "subject", subject)
			return err
		}
	case models.ActionDeleted:
		// The data should just be a string of the UID being deleted.
		payload = string(data)
	}

	message := models.MeetingIndexerMessage{
		Action:  action,
		Headers: headers,
		Data:    payload,
		Tags:    tags,
	}

	messageBytes, err := json.Marshal(message)
	if err != nil {
		slog.ErrorContext(ctx, "error marshalling message into JSON", logging.ErrKey, err, "subject", subject)
		return err
	}

	slog.DebugContext(ctx, "constructed indexer message",
		"subject", subject,
		"action", action,
		"tags_count", len(tags),
	)

	return m.sendMessage(ctx, subject, messageBytes)
}

// SendIndexMeeting sends the message to the NATS server for the meeting indexing.
func (m *MessageBuilder) SendIndexMeeting(ctx context.Context, action models.MessageAction, data *models.Meeting) error {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		slog.ErrorContext(ctx, "error marshalling data into JSON", logging.ErrKey, err)
		return err
	}

	return m.sendIndexerMessage(ctx, models.IndexMeetingSubject, action, dataBytes, data.Tags())
}

// SendDeleteIndexMeeting sends the message to the NATS server for the meeting index deletion.
func (m *MessageBuilder) SendDeleteIndexMeeting(ctx context.Context, meetingUID string) error {
	return m.sendIndexerMessage(ctx, models.IndexMeetingSubject, models.ActionDeleted, []byte(meetingUID), nil)
}

// SendIndexMeetingEvent sends the message to the NATS server for the meeting
// event indexing. The event log is append-only so the action is always a
// creation.
func (m *MessageBuilder) SendIndexMeetingEvent(ctx context.Context, event *models.MeetingEvent) error {
	dataBytes, err := json.Marshal(event)
	if err != nil {
		slog.ErrorContext(ctx, "error marshalling data into JSON", logging.ErrKey, err)
		return err
	}

	return m.sendIndexerMessage(ctx, models.IndexMeetingEventSubject, models.ActionCreated, dataBytes, event.Tags())
}

// sendAnnouncement publishes a msgpack-encoded meeting announcement.
func (m *MessageBuilder) sendAnnouncement(ctx context.Context, subject string, announcement models.MeetingAnnouncement) error {
	data, err := msgpack.Marshal(announcement)
	if err != nil {
		slog.ErrorContext(ctx, "error marshalling announcement into msgpack", logging.ErrKey, err, "subject", subject)
		return err
	}

	return m.sendMessage(ctx, subject, data)
}

// SendMeetingCreated announces a newly scheduled meeting on the event bus.
func (m *MessageBuilder) SendMeetingCreated(ctx context.Context, announcement models.MeetingAnnouncement) error {
	return m.sendAnnouncement(ctx, models.MeetingCreatedSubject, announcement)
}

// SendMeetingUpdated announces a meeting change on the event bus.
func (m *MessageBuilder) SendMeetingUpdated(ctx context.Context, announcement models.MeetingAnnouncement) error {
	return m.sendAnnouncement(ctx, models.MeetingUpdatedSubject, announcement)
}

// SendMeetingCancelled announces a meeting cancellation on the event bus.
func (m *MessageBuilder) SendMeetingCancelled(ctx context.Context, announcement models.MeetingAnnouncement) error {
	return m.sendAnnouncement(ctx, models.MeetingCancelledSubject, announcement)
}

// request performs a NATS request-reply call against another service.
func (m *MessageBuilder) request(ctx context.Context, subject string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.ErrorContext(ctx, "error marshalling request into JSON", logging.ErrKey, err, "subject", subject)
		return nil, err
	}

	msg, err := m.NatsConn.Request(subject, data, requestTimeout)
	if err != nil {
		slog.ErrorContext(ctx, "error requesting over NATS", logging.ErrKey, err, "subject", subject)
		return nil, domain.NewUnavailableError(fmt.Sprintf("request to %s failed", subject), err)
	}

	return msg.Data, nil
}

// GetUser resolves a user UID via the directory service.
func (m *MessageBuilder) GetUser(ctx context.Context, userUID string) (*models.UserInfo, error) {
	data, err := m.request(ctx, models.DirectoryGetUserSubject, models.GetUserRequest{UserUID: userUID})
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, domain.NewNotFoundError(fmt.Sprintf("user with UID '%s' not found", userUID))
	}

	var user models.UserInfo
	if err := json.Unmarshal(data, &user); err != nil {
		slog.ErrorContext(ctx, "error unmarshalling directory user reply", logging.ErrKey, err)
		return nil, domain.NewInternalError("failed to decode directory user reply", err)
	}

	return &user, nil
}

// ListParticipants fetches a board's roster via the directory service.
func (m *MessageBuilder) ListParticipants(ctx context.Context, boardUID string) ([]models.Participant, error) {
	data, err := m.request(ctx, models.DirectoryListParticipantsSubject, models.ListParticipantsRequest{BoardUID: boardUID})
	if err != nil {
		return nil, err
	}

	var reply models.ListParticipantsResponse
	if err := json.Unmarshal(data, &reply); err != nil {
		slog.ErrorContext(ctx, "error unmarshalling roster reply", logging.ErrKey, err)
		return nil, domain.NewInternalError("failed to decode roster reply", err)
	}

	return reply.Participants, nil
}

// GetBoardSettings fetches a board's governance settings via the boards service.
func (m *MessageBuilder) GetBoardSettings(ctx context.Context, boardUID string) (*models.BoardSettings, error) {
	data, err := m.request(ctx, models.BoardGetSettingsSubject, models.GetBoardSettingsRequest{BoardUID: boardUID})
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, domain.NewNotFoundError(fmt.Sprintf("board with UID '%s' not found", boardUID))
	}

	var settings models.BoardSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		slog.ErrorContext(ctx, "error unmarshalling board settings reply", logging.ErrKey, err)
		return nil, domain.NewInternalError("failed to decode board settings reply", err)
	}

	return &settings, nil
}
