// Copyright The eBoard Authors.
// SPDX-License-Identifier: MIT

package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MochamaB/eboard-sub001/internal/domain/models"
	"github.com/MochamaB/eboard-sub001/pkg/utils"
)

func TestRequiresConfirmation(t *testing.T) {
	confirmationOn := &models.BoardSettings{ConfirmationRequired: utils.BoolPtr(true)}
	confirmationOff := &models.BoardSettings{ConfirmationRequired: utils.BoolPtr(false)}

	tests := []struct {
		name        string
		boardType   models.BoardType
		meetingType models.MeetingType
		settings    *models.BoardSettings
		overrides   *models.Overrides
		expected    bool
	}{
		{
			name:        "emergency bypasses review even on main board",
			boardType:   models.BoardTypeMain,
			meetingType: models.MeetingTypeEmergency,
			expected:    false,
		},
		{
			name:        "agm always reviewed regardless of settings",
			boardType:   models.BoardTypeCommittee,
			meetingType: models.MeetingTypeAGM,
			settings:    confirmationOff,
			expected:    true,
		},
		{
			name:        "main board unconditional",
			boardType:   models.BoardTypeMain,
			meetingType: models.MeetingTypeRegular,
			settings:    confirmationOff,
			expected:    true,
		},
		{
			name:        "factory follows settings",
			boardType:   models.BoardTypeFactory,
			meetingType: models.MeetingTypeRegular,
			settings:    confirmationOff,
			expected:    false,
		},
		{
			name:        "factory defaults to required when unset",
			boardType:   models.BoardTypeFactory,
			meetingType: models.MeetingTypeRegular,
			expected:    true,
		},
		{
			name:        "subsidiary defaults to required when unset",
			boardType:   models.BoardTypeSubsidiary,
			meetingType: models.MeetingTypeRegular,
			expected:    true,
		},
		{
			name:        "subsidiary follows settings",
			boardType:   models.BoardTypeSubsidiary,
			meetingType: models.MeetingTypeSpecial,
			settings:    confirmationOn,
			expected:    true,
		},
		{
			name:        "committee defaults to not required",
			boardType:   models.BoardTypeCommittee,
			meetingType: models.MeetingTypeCommittee,
			expected:    false,
		},
		{
			name:        "committee follows settings",
			boardType:   models.BoardTypeCommittee,
			meetingType: models.MeetingTypeRegular,
			settings:    confirmationOn,
			expected:    true,
		},
		{
			name:        "unknown board type fails safe",
			boardType:   models.BoardType("regional"),
			meetingType: models.MeetingTypeRegular,
			expected:    true,
		},
		{
			name:        "skip approval override wins over everything",
			boardType:   models.BoardTypeMain,
			meetingType: models.MeetingTypeAGM,
			overrides:   &models.Overrides{SkipApproval: true},
			expected:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RequiresConfirmation(tt.boardType, tt.meetingType, tt.settings, tt.overrides)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestApproverRole(t *testing.T) {
	assert.Equal(t, models.RoleGroupCompanySecretary, ApproverRole(models.BoardTypeMain))
	assert.Equal(t, models.RoleCompanySecretary, ApproverRole(models.BoardTypeSubsidiary))
	assert.Equal(t, models.RoleCompanySecretary, ApproverRole(models.BoardTypeFactory))
	assert.Equal(t, models.RoleChairman, ApproverRole(models.BoardTypeCommittee))
	assert.Equal(t, models.RoleGroupCompanySecretary, ApproverRole(models.BoardType("regional")))
}

func TestIsValidApprover(t *testing.T) {
	assert.True(t, IsValidApprover(models.RoleGroupCompanySecretary, models.BoardTypeMain))
	assert.True(t, IsValidApprover(models.RoleChairman, models.BoardTypeCommittee))
	assert.False(t, IsValidApprover(models.RoleChairman, models.BoardTypeMain))
	assert.False(t, IsValidApprover(models.RoleCompanySecretary, models.BoardTypeCommittee))

	// System administrators are never approvers, whatever the board type.
	for _, bt := range []models.BoardType{models.BoardTypeMain, models.BoardTypeFactory, models.BoardTypeSubsidiary, models.BoardTypeCommittee} {
		assert.False(t, IsValidApprover(models.RoleSystemAdmin, bt))
	}
}
