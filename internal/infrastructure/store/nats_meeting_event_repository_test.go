// Copyright The eBoard Authors.
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MochamaB/eboard-sub001/internal/domain"
	"github.com/MochamaB/eboard-sub001/internal/domain/models"
)

func testEvent(meetingUID, eventUID string, eventType models.EventType, at time.Time) *models.MeetingEvent {
	return &models.MeetingEvent{
		UID:             eventUID,
		MeetingUID:      meetingUID,
		Type:            eventType,
		PerformedBy:     "user-1",
		PerformedByName: "Alice Wanjiru",
		PerformedAt:     at,
	}
}

func TestNatsMeetingEventRepositoryAppendAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewNatsMeetingEventRepository(NewMockNatsKeyValue())

	event := testEvent("meeting-1", "event-1", models.EventMeetingCreated, time.Now().UTC())
	require.NoError(t, repo.AppendEvent(ctx, event))

	got, err := repo.GetEvent(ctx, "meeting-1", "event-1")
	require.NoError(t, err)
	assert.Equal(t, models.EventMeetingCreated, got.Type)
	assert.Equal(t, "Alice Wanjiru", got.PerformedByName)
}

func TestNatsMeetingEventRepositoryAppendOnly(t *testing.T) {
	ctx := context.Background()
	repo := NewNatsMeetingEventRepository(NewMockNatsKeyValue())

	event := testEvent("meeting-1", "event-1", models.EventMeetingCreated, time.Now().UTC())
	require.NoError(t, repo.AppendEvent(ctx, event))

	// Writing the same event again must not overwrite the log entry.
	err := repo.AppendEvent(ctx, event)
	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeConflict, domain.GetErrorType(err))
}

func TestNatsMeetingEventRepositoryAppendMissingUIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewNatsMeetingEventRepository(NewMockNatsKeyValue())

	err := repo.AppendEvent(ctx, &models.MeetingEvent{UID: "event-1"})
	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeValidation, domain.GetErrorType(err))

	err = repo.AppendEvent(ctx, &models.MeetingEvent{MeetingUID: "meeting-1"})
	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeValidation, domain.GetErrorType(err))
}

func TestNatsMeetingEventRepositoryListOrdersByTime(t *testing.T) {
	ctx := context.Background()
	repo := NewNatsMeetingEventRepository(NewMockNatsKeyValue())

	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.AppendEvent(ctx,
		testEvent("meeting-1", "event-b", models.EventSubmittedForApproval, base.Add(time.Minute))))
	require.NoError(t, repo.AppendEvent(ctx,
		testEvent("meeting-1", "event-a", models.EventMeetingCreated, base)))
	require.NoError(t, repo.AppendEvent(ctx,
		testEvent("meeting-1", "event-c", models.EventApproved, base.Add(2*time.Minute))))
	// Another meeting's events must not leak into the listing.
	require.NoError(t, repo.AppendEvent(ctx,
		testEvent("meeting-2", "event-x", models.EventMeetingCreated, base)))

	events, err := repo.ListEventsForMeeting(ctx, "meeting-1")
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, models.EventMeetingCreated, events[0].Type)
	assert.Equal(t, models.EventSubmittedForApproval, events[1].Type)
	assert.Equal(t, models.EventApproved, events[2].Type)
}

func TestNatsMeetingEventRepositoryGetNotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewNatsMeetingEventRepository(NewMockNatsKeyValue())

	_, err := repo.GetEvent(ctx, "meeting-1", "missing")
	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeNotFound, domain.GetErrorType(err))
}

func TestEventKeyRoundTrip(t *testing.T) {
	key := eventKey("meeting-1", "event-1")
	assert.Equal(t, "meeting-1.event-1", key)

	meetingUID, eventUID, ok := splitEventKey(key)
	require.True(t, ok)
	assert.Equal(t, "meeting-1", meetingUID)
	assert.Equal(t, "event-1", eventUID)

	_, _, ok = splitEventKey("no-separator")
	assert.False(t, ok)
}
