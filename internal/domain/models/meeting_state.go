// Copyright The eBoard Authors.
// SPDX-License-Identifier: MIT

package models

import (
	"encoding/json"
	"fmt"
)

// Status is the primary lifecycle status of a meeting.
type Status string

const (
	StatusDraft      Status = "draft"
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// SubStatus narrows the meaning of a primary status. Valid values depend on
// the status; see MeetingState.
type SubStatus string

const (
	SubStatusNone SubStatus = ""

	// draft
	SubStatusIncomplete SubStatus = "incomplete"
	SubStatusComplete   SubStatus = "complete"

	// scheduled
	SubStatusPendingApproval SubStatus = "pending_approval"
	SubStatusApproved        SubStatus = "approved"
	SubStatusRejected        SubStatus = "rejected"

	// completed
	SubStatusRecent   SubStatus = "recent"
	SubStatusArchived SubStatus = "archived"
)

// MeetingState is the closed (status, subStatus) pair of a meeting. The zero
// value is invalid; states are obtained from the predeclared values or
// ParseState, so an illegal combination is unrepresentable outside this
// package.
type MeetingState struct {
	status    Status
	subStatus SubStatus
}

// The closed set of legal states.
var (
	StateDraftIncomplete          = MeetingState{StatusDraft, SubStatusIncomplete}
	StateDraftComplete            = MeetingState{StatusDraft, SubStatusComplete}
	StateScheduledPendingApproval = MeetingState{StatusScheduled, SubStatusPendingApproval}
	StateScheduledApproved        = MeetingState{StatusScheduled, SubStatusApproved}
	StateScheduledRejected        = MeetingState{StatusScheduled, SubStatusRejected}
	StateInProgress               = MeetingState{StatusInProgress, SubStatusNone}
	StateCompletedRecent          = MeetingState{StatusCompleted, SubStatusRecent}
	StateCompletedArchived        = MeetingState{StatusCompleted, SubStatusArchived}
	StateCancelled                = MeetingState{StatusCancelled, SubStatusNone}
)

var legalStates = []MeetingState{
	StateDraftIncomplete,
	StateDraftComplete,
	StateScheduledPendingApproval,
	StateScheduledApproved,
	StateScheduledRejected,
	StateInProgress,
	StateCompletedRecent,
	StateCompletedArchived,
	StateCancelled,
}

// ParseState returns the legal state for a (status, subStatus) pair, or an
// error when the pair is not in the closed set.
func ParseState(status Status, subStatus SubStatus) (MeetingState, error) {
	for _, s := range legalStates {
		if s.status == status && s.subStatus == subStatus {
			return s, nil
		}
	}
	return MeetingState{}, fmt.Errorf("illegal meeting state %q/%q", status, subStatus)
}

// Status returns the primary status.
func (s MeetingState) Status() Status {
	return s.status
}

// SubStatus returns the sub-status qualifier, empty for in_progress and
// cancelled.
func (s MeetingState) SubStatus() SubStatus {
	return s.subStatus
}

// IsZero reports whether the state is the (invalid) zero value.
func (s MeetingState) IsZero() bool {
	return s.status == ""
}

// IsDraft reports whether the meeting has not yet been submitted.
func (s MeetingState) IsDraft() bool {
	return s.status == StatusDraft
}

// IsCancellable reports whether cancel is a legal transition: any draft or
// scheduled state, never in_progress or later.
func (s MeetingState) IsCancellable() bool {
	return s.status == StatusDraft || s.status == StatusScheduled
}

// IsTerminal reports whether no further transition is legal.
func (s MeetingState) IsTerminal() bool {
	return s.status == StatusCancelled || s == StateCompletedArchived
}

func (s MeetingState) String() string {
	if s.subStatus == SubStatusNone {
		return string(s.status)
	}
	return string(s.status) + "." + string(s.subStatus)
}

// stateJSON is the storage representation of a state.
type stateJSON struct {
	Status    Status    `json:"status"`
	SubStatus SubStatus `json:"sub_status,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (s MeetingState) MarshalJSON() ([]byte, error) {
	return json.Marshal(stateJSON{Status: s.status, SubStatus: s.subStatus})
}

// UnmarshalJSON implements json.Unmarshaler. Unknown combinations are
// rejected so a corrupted record cannot materialize an illegal state.
func (s *MeetingState) UnmarshalJSON(data []byte) error {
	var raw stateJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseState(raw.Status, raw.SubStatus)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
