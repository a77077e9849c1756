// Copyright The eBoard Authors.
// SPDX-License-Identifier: MIT

package service

import (
	"github.com/MochamaB/eboard-sub001/internal/domain/models"
)

// RequiredQuorum computes the absolute attendee count needed for a meeting
// to be legitimately conducted. Guests never count toward the denominator.
// The guest flag is read from the roster on every call rather than cached,
// so a promoted guest is picked up on the next computation.
func RequiredQuorum(participants []models.Participant, quorumPercentage int) int {
	nonGuests := countNonGuests(participants)
	if nonGuests == 0 || quorumPercentage <= 0 {
		return 0
	}
	// ceil(nonGuests * pct / 100) in integer arithmetic
	return (nonGuests*quorumPercentage + 99) / 100
}

// CanMeetQuorum reports whether the roster has enough non-guest members to
// reach quorum at all.
func CanMeetQuorum(participants []models.Participant, quorumPercentage int) bool {
	return countNonGuests(participants) >= RequiredQuorum(participants, quorumPercentage)
}

func countNonGuests(participants []models.Participant) int {
	count := 0
	for _, p := range participants {
		if !p.IsGuest {
			count++
		}
	}
	return count
}
