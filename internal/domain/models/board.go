// Copyright The eBoard Authors.
// SPDX-License-Identifier: MIT

package models

// BoardType classifies the governance body that owns a meeting.
type BoardType string

const (
	BoardTypeMain       BoardType = "main"
	BoardTypeFactory    BoardType = "factory"
	BoardTypeSubsidiary BoardType = "subsidiary"
	BoardTypeCommittee  BoardType = "committee"
)

// MeetingType classifies the kind of governance activity.
type MeetingType string

const (
	MeetingTypeRegular   MeetingType = "regular"
	MeetingTypeSpecial   MeetingType = "special"
	MeetingTypeEmergency MeetingType = "emergency"
	MeetingTypeAGM       MeetingType = "agm"
	MeetingTypeCommittee MeetingType = "committee"
)

// IsValid reports whether the meeting type is a known value.
func (m MeetingType) IsValid() bool {
	switch m {
	case MeetingTypeRegular, MeetingTypeSpecial, MeetingTypeEmergency, MeetingTypeAGM, MeetingTypeCommittee:
		return true
	}
	return false
}

// LocationType describes how a meeting is held.
type LocationType string

const (
	LocationTypePhysical LocationType = "physical"
	LocationTypeVirtual  LocationType = "virtual"
	LocationTypeHybrid   LocationType = "hybrid"
)

// IsValid reports whether the location type is a known value.
func (l LocationType) IsValid() bool {
	switch l {
	case LocationTypePhysical, LocationTypeVirtual, LocationTypeHybrid:
		return true
	}
	return false
}

// RoleCode identifies a governance role held by a user.
type RoleCode string

const (
	RoleGroupCompanySecretary RoleCode = "group_company_secretary"
	RoleCompanySecretary      RoleCode = "company_secretary"
	RoleChairman              RoleCode = "chairman"
	RoleSystemAdmin           RoleCode = "system_admin"
)

// BoardSettings are the per-board governance settings read from the boards
// service. ConfirmationRequired is a tri-state: nil means the board has not
// chosen and the policy default for its board type applies.
type BoardSettings struct {
	BoardUID             string    `json:"board_uid"`
	BoardType            BoardType `json:"board_type"`
	ConfirmationRequired *bool     `json:"confirmation_required,omitempty"`
	RequireAgenda        bool      `json:"require_agenda"`
	RequireDocuments     bool      `json:"require_documents"`
}

// Overrides are explicit, justified waivers of normally-required governance
// rules for a single meeting. Any set override requires a non-empty
// OverrideReason on the meeting.
type Overrides struct {
	SkipApproval  bool `json:"skip_approval,omitempty"`
	SkipAgenda    bool `json:"skip_agenda,omitempty"`
	SkipDocuments bool `json:"skip_documents,omitempty"`
}

// Any reports whether at least one override is set.
func (o *Overrides) Any() bool {
	return o != nil && (o.SkipApproval || o.SkipAgenda || o.SkipDocuments)
}
