// Copyright The eBoard Authors.
// SPDX-License-Identifier: MIT

package service

import (
	"time"

	"github.com/MochamaB/eboard-sub001/internal/domain"
	"github.com/MochamaB/eboard-sub001/internal/domain/models"
)

// Pure transition guards for the meeting lifecycle. Each guard takes the
// current state and returns the next state, or an invalid-transition error
// naming both states. Business-rule failures (wrong approver, missing
// reason) are raised by the orchestrator as authorization or validation
// errors before the guard runs; a guard failure always means the caller
// attempted an action the current state does not allow.

func invalidTransition(action string, current models.MeetingState) error {
	return domain.NewInvalidTransitionError("cannot " + action + " a meeting in state " + current.String())
}

// InitialState returns the state a new meeting starts in: draft.complete
// when all required setup is satisfied, draft.incomplete otherwise.
func InitialState(setupComplete bool) models.MeetingState {
	if setupComplete {
		return models.StateDraftComplete
	}
	return models.StateDraftIncomplete
}

// SubmitState guards submit: legal only from draft.complete. The meeting
// moves to pending approval, or straight to approved on the auto-approved
// path when no confirmation is required.
func SubmitState(current models.MeetingState, confirmationRequired bool) (models.MeetingState, error) {
	if current != models.StateDraftComplete {
		return models.MeetingState{}, invalidTransition("submit", current)
	}
	if confirmationRequired {
		return models.StateScheduledPendingApproval, nil
	}
	return models.StateScheduledApproved, nil
}

// ApproveState guards approve: legal only from scheduled.pending_approval.
func ApproveState(current models.MeetingState) (models.MeetingState, error) {
	if current != models.StateScheduledPendingApproval {
		return models.MeetingState{}, invalidTransition("approve", current)
	}
	return models.StateScheduledApproved, nil
}

// RejectState guards reject: legal only from scheduled.pending_approval.
func RejectState(current models.MeetingState) (models.MeetingState, error) {
	if current != models.StateScheduledPendingApproval {
		return models.MeetingState{}, invalidTransition("reject", current)
	}
	return models.StateScheduledRejected, nil
}

// ResubmitState guards resubmit: legal only from scheduled.rejected. An edit
// since rejection may have removed the confirmation requirement, in which
// case the meeting resubmits straight to approved.
func ResubmitState(current models.MeetingState, confirmationRequired bool) (models.MeetingState, error) {
	if current != models.StateScheduledRejected {
		return models.MeetingState{}, invalidTransition("resubmit", current)
	}
	if confirmationRequired {
		return models.StateScheduledPendingApproval, nil
	}
	return models.StateScheduledApproved, nil
}

// StartState guards start: legal only from scheduled.approved, at or after
// the scheduled start time. skipTimeCheck relaxes the clock guard for local
// development.
func StartState(current models.MeetingState, startTime time.Time, now time.Time, skipTimeCheck bool) (models.MeetingState, error) {
	if current != models.StateScheduledApproved {
		return models.MeetingState{}, invalidTransition("start", current)
	}
	if !skipTimeCheck && now.Before(startTime) {
		return models.MeetingState{}, domain.NewValidationError("meeting cannot be started before its scheduled start time")
	}
	return models.StateInProgress, nil
}

// EndState guards end: legal only from in_progress.
func EndState(current models.MeetingState) (models.MeetingState, error) {
	if current != models.StateInProgress {
		return models.MeetingState{}, invalidTransition("end", current)
	}
	return models.StateCompletedRecent, nil
}

// ArchiveState guards archive: legal only from completed.recent.
func ArchiveState(current models.MeetingState) (models.MeetingState, error) {
	if current != models.StateCompletedRecent {
		return models.MeetingState{}, invalidTransition("archive", current)
	}
	return models.StateCompletedArchived, nil
}

// CancelState guards cancel: legal from any draft or scheduled state, never
// once the meeting is live or finished.
func CancelState(current models.MeetingState) (models.MeetingState, error) {
	if !current.IsCancellable() {
		return models.MeetingState{}, invalidTransition("cancel", current)
	}
	return models.StateCancelled, nil
}
