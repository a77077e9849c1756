// Copyright The eBoard Authors.
// SPDX-License-Identifier: MIT

package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MochamaB/eboard-sub001/internal/domain/models"
)

func roster(members, guests int) []models.Participant {
	var participants []models.Participant
	for i := 0; i < members; i++ {
		participants = append(participants, models.Participant{IsGuest: false})
	}
	for i := 0; i < guests; i++ {
		participants = append(participants, models.Participant{IsGuest: true})
	}
	return participants
}

func TestRequiredQuorum(t *testing.T) {
	tests := []struct {
		name     string
		members  int
		guests   int
		pct      int
		expected int
	}{
		{"ten participants two guests at 50", 8, 2, 50, 4},
		{"rounding up", 5, 0, 50, 3},
		{"full attendance", 3, 0, 100, 3},
		{"guests only", 0, 4, 50, 0},
		{"empty roster", 0, 0, 50, 0},
		{"zero percentage", 8, 0, 0, 0},
		{"one member one percent", 1, 0, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RequiredQuorum(roster(tt.members, tt.guests), tt.pct))
		})
	}
}

func TestCanMeetQuorum(t *testing.T) {
	assert.True(t, CanMeetQuorum(roster(8, 2), 50))
	assert.True(t, CanMeetQuorum(roster(3, 0), 100))
	assert.False(t, CanMeetQuorum(roster(0, 4), 50))
	assert.True(t, CanMeetQuorum(roster(0, 0), 50))
}

func TestQuorumRecomputedAfterGuestPromotion(t *testing.T) {
	participants := roster(4, 1)
	assert.Equal(t, 2, RequiredQuorum(participants, 50))

	// The promoted guest enters the denominator on the next computation.
	participants[4].IsGuest = false
	assert.Equal(t, 3, RequiredQuorum(participants, 50))
}
