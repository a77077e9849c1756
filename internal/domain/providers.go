// Copyright The eBoard Authors.
// SPDX-License-Identifier: MIT

package domain

import (
	"context"

	"github.com/MochamaB/eboard-sub001/internal/domain/models"
)

// ParticipantRosterProvider resolves users and board rosters from the
// directory service.
type ParticipantRosterProvider interface {
	GetUser(ctx context.Context, userUID string) (*models.UserInfo, error)
	ListParticipants(ctx context.Context, boardUID string) ([]models.Participant, error)
}

// BoardSettingsProvider fetches per-board governance settings from the boards
// service.
type BoardSettingsProvider interface {
	GetBoardSettings(ctx context.Context, boardUID string) (*models.BoardSettings, error)
}
