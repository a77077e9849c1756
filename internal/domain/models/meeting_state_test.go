// Copyright The eBoard Authors.
// SPDX-License-Identifier: MIT

package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseState(t *testing.T) {
	tests := []struct {
		name      string
		status    Status
		subStatus SubStatus
		expected  MeetingState
		wantErr   bool
	}{
		{
			name:      "draft incomplete",
			status:    StatusDraft,
			subStatus: SubStatusIncomplete,
			expected:  StateDraftIncomplete,
		},
		{
			name:      "scheduled approved",
			status:    StatusScheduled,
			subStatus: SubStatusApproved,
			expected:  StateScheduledApproved,
		},
		{
			name:      "in progress has no sub-status",
			status:    StatusInProgress,
			subStatus: SubStatusNone,
			expected:  StateInProgress,
		},
		{
			name:      "in progress with sub-status is illegal",
			status:    StatusInProgress,
			subStatus: SubStatusApproved,
			wantErr:   true,
		},
		{
			name:      "draft with scheduled sub-status is illegal",
			status:    StatusDraft,
			subStatus: SubStatusPendingApproval,
			wantErr:   true,
		},
		{
			name:      "cancelled with sub-status is illegal",
			status:    StatusCancelled,
			subStatus: SubStatusRecent,
			wantErr:   true,
		},
		{
			name:    "unknown status is illegal",
			status:  Status("paused"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, err := ParseState(tt.status, tt.subStatus)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, state)
		})
	}
}

func TestMeetingStatePredicates(t *testing.T) {
	assert.True(t, StateDraftIncomplete.IsDraft())
	assert.True(t, StateDraftComplete.IsCancellable())
	assert.True(t, StateScheduledRejected.IsCancellable())
	assert.False(t, StateInProgress.IsCancellable())
	assert.False(t, StateCompletedRecent.IsCancellable())

	assert.True(t, StateCancelled.IsTerminal())
	assert.True(t, StateCompletedArchived.IsTerminal())
	assert.False(t, StateCompletedRecent.IsTerminal())

	assert.True(t, MeetingState{}.IsZero())
	assert.False(t, StateInProgress.IsZero())
}

func TestMeetingStateString(t *testing.T) {
	assert.Equal(t, "scheduled.pending_approval", StateScheduledPendingApproval.String())
	assert.Equal(t, "in_progress", StateInProgress.String())
	assert.Equal(t, "cancelled", StateCancelled.String())
}

func TestMeetingStateJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(StateScheduledApproved)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"scheduled","sub_status":"approved"}`, string(data))

	var state MeetingState
	require.NoError(t, json.Unmarshal(data, &state))
	assert.Equal(t, StateScheduledApproved, state)
}

func TestMeetingStateUnmarshalRejectsIllegalPair(t *testing.T) {
	var state MeetingState
	err := json.Unmarshal([]byte(`{"status":"draft","sub_status":"approved"}`), &state)
	assert.Error(t, err)
}
