// Copyright The eBoard Authors.
// SPDX-License-Identifier: MIT

package service

import (
	"github.com/MochamaB/eboard-sub001/internal/domain/models"
	"github.com/MochamaB/eboard-sub001/pkg/utils"
)

// RequiresConfirmation decides whether a meeting needs approver sign-off
// before it is considered scheduled. The rules are evaluated in fixed
// priority order; the first match wins:
//
//  1. emergency meetings bypass governance review
//  2. AGMs are always reviewed, board settings cannot override
//  3. main boards always require confirmation
//  4. factory and subsidiary boards follow their settings, defaulting to
//     required when unset
//  5. committees follow their settings, defaulting to not required
//  6. anything else defaults to required
//
// A skip-approval override on the meeting short-circuits the whole table to
// false; the caller is responsible for requiring a reason with the override.
func RequiresConfirmation(boardType models.BoardType, meetingType models.MeetingType, settings *models.BoardSettings, overrides *models.Overrides) bool {
	if overrides != nil && overrides.SkipApproval {
		return false
	}

	switch {
	case meetingType == models.MeetingTypeEmergency:
		return false
	case meetingType == models.MeetingTypeAGM:
		return true
	case boardType == models.BoardTypeMain:
		return true
	case boardType == models.BoardTypeFactory || boardType == models.BoardTypeSubsidiary:
		if settings == nil {
			return true
		}
		return utils.CoalescePtr(true, settings.ConfirmationRequired)
	case boardType == models.BoardTypeCommittee:
		if settings == nil {
			return false
		}
		return utils.CoalescePtr(false, settings.ConfirmationRequired)
	default:
		return true
	}
}

// ApproverRole returns the governance role whose holder may approve or
// reject meetings for the given board type.
func ApproverRole(boardType models.BoardType) models.RoleCode {
	switch boardType {
	case models.BoardTypeMain:
		return models.RoleGroupCompanySecretary
	case models.BoardTypeSubsidiary, models.BoardTypeFactory:
		return models.RoleCompanySecretary
	case models.BoardTypeCommittee:
		return models.RoleChairman
	default:
		return models.RoleGroupCompanySecretary
	}
}

// IsValidApprover reports whether an actor holding the given role may
// approve or reject for the board type. Approval is a governance function,
// not an administrative privilege, so a system administrator is never a
// valid approver even when they hold the matching role string through some
// other assignment.
func IsValidApprover(role models.RoleCode, boardType models.BoardType) bool {
	if role == models.RoleSystemAdmin {
		return false
	}
	return role == ApproverRole(boardType)
}
