// Copyright The eBoard Authors.
// SPDX-License-Identifier: MIT

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventTypeIsValid(t *testing.T) {
	assert.True(t, EventMeetingCreated.IsValid())
	assert.True(t, EventQuorumAchieved.IsValid())
	assert.True(t, EventMinutesApproved.IsValid())
	assert.False(t, EventType("meeting_paused").IsValid())
	assert.False(t, EventType("").IsValid())
}

func TestEventTypeChangesStatus(t *testing.T) {
	statusChanging := []EventType{
		EventMeetingCreated,
		EventSubmittedForApproval,
		EventApproved,
		EventRejected,
		EventResubmitted,
		EventMeetingStarted,
		EventMeetingEnded,
		EventArchived,
		EventMeetingCancelled,
	}
	for _, e := range statusChanging {
		assert.True(t, e.ChangesStatus(), "%s should change status", e)
	}

	for _, e := range []EventType{EventAgendaPublished, EventNoteAdded, EventQuorumLost, EventMinutesDrafted} {
		assert.False(t, e.ChangesStatus(), "%s should not change status", e)
	}
}

func TestEventPayloadRoundTrip(t *testing.T) {
	payload := &RejectionPayload{
		ApproverRole: RoleCompanySecretary,
		Reason:       "agenda lacks financial statements",
	}

	raw, err := EncodePayload(payload)
	require.NoError(t, err)

	event := &MeetingEvent{
		UID:        "event-1",
		MeetingUID: "meeting-1",
		Type:       EventRejected,
		Payload:    raw,
	}

	decoded, err := event.DecodePayload()
	require.NoError(t, err)
	rejection, ok := decoded.(*RejectionPayload)
	require.True(t, ok)
	assert.Equal(t, payload.Reason, rejection.Reason)
	assert.Equal(t, RoleCompanySecretary, rejection.ApproverRole)
}

func TestDecodePayloadEmptyAndUnknown(t *testing.T) {
	event := &MeetingEvent{Type: EventMeetingStarted}
	decoded, err := event.DecodePayload()
	require.NoError(t, err)
	assert.IsType(t, &TransitionPayload{}, decoded)

	unknown := &MeetingEvent{Type: EventType("bogus")}
	_, err = unknown.DecodePayload()
	assert.Error(t, err)
}

func TestMeetingEventTags(t *testing.T) {
	event := &MeetingEvent{
		UID:        "event-1",
		MeetingUID: "meeting-1",
		Type:       EventApproved,
	}
	tags := event.Tags()
	assert.Contains(t, tags, "event-1")
	assert.Contains(t, tags, "meeting_uid:meeting-1")
	assert.Contains(t, tags, "event_type:approved")
}
