// Copyright The eBoard Authors.
// SPDX-License-Identifier: MIT

package models

// Participant is a member of a board's roster as returned by the directory
// service. Guests attend but never count toward quorum.
type Participant struct {
	UserUID  string   `json:"user_uid"`
	Name     string   `json:"name"`
	Email    string   `json:"email,omitempty"`
	Role     RoleCode `json:"role,omitempty"`
	IsGuest  bool     `json:"is_guest,omitempty"`
	Timezone string   `json:"timezone,omitempty"`
}

// UserInfo is the directory service's record for a single user.
type UserInfo struct {
	UserUID string   `json:"user_uid"`
	Name    string   `json:"name"`
	Email   string   `json:"email,omitempty"`
	Role    RoleCode `json:"role,omitempty"`
}
