// Copyright The eBoard Authors.
// SPDX-License-Identifier: MIT

package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/MochamaB/eboard-sub001/internal/domain"
	"github.com/MochamaB/eboard-sub001/internal/domain/models"
	"github.com/MochamaB/eboard-sub001/pkg/constants"
)

// MockNATSConn is a mock of the INatsConn interface.
type MockNATSConn struct {
	mock.Mock
}

func (m *MockNATSConn) IsConnected() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockNATSConn) Publish(subj string, data []byte) error {
	args := m.Called(subj, data)
	return args.Error(0)
}

func (m *MockNATSConn) Request(subj string, data []byte, timeout time.Duration) (*nats.Msg, error) {
	args := m.Called(subj, data, timeout)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*nats.Msg), args.Error(1)
}

func TestSendIndexMeeting(t *testing.T) {
	mockConn := new(MockNATSConn)
	builder := NewMessageBuilder(mockConn)

	var published []byte
	mockConn.On("Publish", models.IndexMeetingSubject, mock.Anything).Run(func(args mock.Arguments) {
		published = args.Get(1).([]byte)
	}).Return(nil)

	meeting := &models.Meeting{
		UID:      "meeting-1",
		BoardUID: "board-1",
		Title:    "Strategy Session",
	}

	ctx := context.WithValue(context.Background(), constants.AuthorizationContextID, "Bearer token-123")
	ctx = context.WithValue(ctx, constants.PrincipalContextID, "user-1")

	require.NoError(t, builder.SendIndexMeeting(ctx, models.ActionCreated, meeting))

	var message models.MeetingIndexerMessage
	require.NoError(t, json.Unmarshal(published, &message))
	assert.Equal(t, models.ActionCreated, message.Action)
	assert.Equal(t, "Bearer token-123", message.Headers[constants.AuthorizationHeader])
	assert.Equal(t, "user-1", message.Headers[constants.XOnBehalfOfHeader])
	assert.Contains(t, message.Tags, "board_uid:board-1")
	assert.Contains(t, message.Tags, "Strategy Session")

	data, ok := message.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "meeting-1", data["uid"])

	mockConn.AssertExpectations(t)
}

func TestSendIndexMeetingFallbackAuthorization(t *testing.T) {
	mockConn := new(MockNATSConn)
	builder := NewMessageBuilder(mockConn)

	var published []byte
	mockConn.On("Publish", models.IndexMeetingSubject, mock.Anything).Run(func(args mock.Arguments) {
		published = args.Get(1).([]byte)
	}).Return(nil)

	meeting := &models.Meeting{UID: "meeting-1"}
	require.NoError(t, builder.SendIndexMeeting(context.Background(), models.ActionUpdated, meeting))

	var message models.MeetingIndexerMessage
	require.NoError(t, json.Unmarshal(published, &message))
	assert.Equal(t, "Bearer board-meeting-service", message.Headers[constants.AuthorizationHeader])

	mockConn.AssertExpectations(t)
}

func TestSendDeleteIndexMeeting(t *testing.T) {
	mockConn := new(MockNATSConn)
	builder := NewMessageBuilder(mockConn)

	var published []byte
	mockConn.On("Publish", models.IndexMeetingSubject, mock.Anything).Run(func(args mock.Arguments) {
		published = args.Get(1).([]byte)
	}).Return(nil)

	require.NoError(t, builder.SendDeleteIndexMeeting(context.Background(), "meeting-1"))

	var message models.MeetingIndexerMessage
	require.NoError(t, json.Unmarshal(published, &message))
	assert.Equal(t, models.ActionDeleted, message.Action)
	assert.Equal(t, "meeting-1", message.Data)

	mockConn.AssertExpectations(t)
}

func TestSendIndexMeetingEvent(t *testing.T) {
	mockConn := new(MockNATSConn)
	builder := NewMessageBuilder(mockConn)

	var published []byte
	mockConn.On("Publish", models.IndexMeetingEventSubject, mock.Anything).Run(func(args mock.Arguments) {
		published = args.Get(1).([]byte)
	}).Return(nil)

	event := &models.MeetingEvent{
		UID:        "event-1",
		MeetingUID: "meeting-1",
		Type:       models.EventApproved,
	}
	require.NoError(t, builder.SendIndexMeetingEvent(context.Background(), event))

	var message models.MeetingIndexerMessage
	require.NoError(t, json.Unmarshal(published, &message))
	assert.Equal(t, models.ActionCreated, message.Action)
	assert.Contains(t, message.Tags, "meeting_uid:meeting-1")

	mockConn.AssertExpectations(t)
}

func TestSendMeetingAnnouncements(t *testing.T) {
	announcement := models.MeetingAnnouncement{
		MeetingUID: "meeting-1",
		BoardUID:   "board-1",
		Title:      "AGM",
		State:      "scheduled.approved",
		StartTime:  "2026-09-01T09:00:00Z",
	}

	tests := []struct {
		name    string
		subject string
		send    func(*MessageBuilder) error
	}{
		{
			name:    "created",
			subject: models.MeetingCreatedSubject,
			send: func(b *MessageBuilder) error {
				return b.SendMeetingCreated(context.Background(), announcement)
			},
		},
		{
			name:    "updated",
			subject: models.MeetingUpdatedSubject,
			send: func(b *MessageBuilder) error {
				return b.SendMeetingUpdated(context.Background(), announcement)
			},
		},
		{
			name:    "cancelled",
			subject: models.MeetingCancelledSubject,
			send: func(b *MessageBuilder) error {
				return b.SendMeetingCancelled(context.Background(), announcement)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockConn := new(MockNATSConn)
			builder := NewMessageBuilder(mockConn)

			var published []byte
			mockConn.On("Publish", tt.subject, mock.Anything).Run(func(args mock.Arguments) {
				published = args.Get(1).([]byte)
			}).Return(nil)

			require.NoError(t, tt.send(builder))

			var decoded models.MeetingAnnouncement
			require.NoError(t, msgpack.Unmarshal(published, &decoded))
			assert.Equal(t, announcement, decoded)

			mockConn.AssertExpectations(t)
		})
	}
}

func TestSendMessagePublishError(t *testing.T) {
	mockConn := new(MockNATSConn)
	builder := NewMessageBuilder(mockConn)

	mockConn.On("Publish", models.MeetingCreatedSubject, mock.Anything).Return(errors.New("publish failed"))

	err := builder.SendMeetingCreated(context.Background(), models.MeetingAnnouncement{MeetingUID: "meeting-1"})
	require.Error(t, err)

	mockConn.AssertExpectations(t)
}

func TestGetUser(t *testing.T) {
	mockConn := new(MockNATSConn)
	builder := NewMessageBuilder(mockConn)

	reply, err := json.Marshal(models.UserInfo{
		UserUID: "user-1",
		Name:    "Alice Wanjiru",
		Email:   "alice@example.com",
		Role:    models.RoleChairman,
	})
	require.NoError(t, err)

	mockConn.On("Request", models.DirectoryGetUserSubject, mock.Anything, requestTimeout).Return(&nats.Msg{
		Subject: models.DirectoryGetUserSubject,
		Data:    reply,
	}, nil)

	user, err := builder.GetUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Alice Wanjiru", user.Name)
	assert.Equal(t, models.RoleChairman, user.Role)

	mockConn.AssertExpectations(t)
}

func TestGetUserEmptyReply(t *testing.T) {
	mockConn := new(MockNATSConn)
	builder := NewMessageBuilder(mockConn)

	mockConn.On("Request", models.DirectoryGetUserSubject, mock.Anything, requestTimeout).Return(&nats.Msg{
		Subject: models.DirectoryGetUserSubject,
		Data:    []byte(""),
	}, nil)

	_, err := builder.GetUser(context.Background(), "missing-user")
	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeNotFound, domain.GetErrorType(err))

	mockConn.AssertExpectations(t)
}

func TestGetUserRequestFailure(t *testing.T) {
	mockConn := new(MockNATSConn)
	builder := NewMessageBuilder(mockConn)

	mockConn.On("Request", models.DirectoryGetUserSubject, mock.Anything, requestTimeout).
		Return(nil, nats.ErrTimeout)

	_, err := builder.GetUser(context.Background(), "user-1")
	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeUnavailable, domain.GetErrorType(err))

	mockConn.AssertExpectations(t)
}

func TestListParticipants(t *testing.T) {
	mockConn := new(MockNATSConn)
	builder := NewMessageBuilder(mockConn)

	reply, err := json.Marshal(models.ListParticipantsResponse{
		Participants: []models.Participant{
			{UserUID: "user-1", Name: "Alice Wanjiru", Role: models.RoleChairman},
			{UserUID: "user-2", Name: "Brian Otieno", IsGuest: true},
		},
	})
	require.NoError(t, err)

	mockConn.On("Request", models.DirectoryListParticipantsSubject, mock.Anything, requestTimeout).Return(&nats.Msg{
		Subject: models.DirectoryListParticipantsSubject,
		Data:    reply,
	}, nil)

	participants, err := builder.ListParticipants(context.Background(), "board-1")
	require.NoError(t, err)
	require.Len(t, participants, 2)
	assert.True(t, participants[1].IsGuest)

	mockConn.AssertExpectations(t)
}

func TestGetBoardSettings(t *testing.T) {
	mockConn := new(MockNATSConn)
	builder := NewMessageBuilder(mockConn)

	reply, err := json.Marshal(models.BoardSettings{
		BoardUID:             "board-1",
		RequireAgenda:        true,
		ConfirmationRequired: boolPtr(false),
	})
	require.NoError(t, err)

	mockConn.On("Request", models.BoardGetSettingsSubject, mock.Anything, requestTimeout).Return(&nats.Msg{
		Subject: models.BoardGetSettingsSubject,
		Data:    reply,
	}, nil)

	settings, err := builder.GetBoardSettings(context.Background(), "board-1")
	require.NoError(t, err)
	assert.True(t, settings.RequireAgenda)
	require.NotNil(t, settings.ConfirmationRequired)
	assert.False(t, *settings.ConfirmationRequired)

	mockConn.AssertExpectations(t)
}

func boolPtr(b bool) *bool { return &b }
