// Package sessions stores login sessions keyed by their opaque token.
package sessions

import (
	"context"

	"github.com/dmitrijs2005/helpdesk/internal/server/models"
)

type Repository interface {
	// Create inserts a valid session row.
	Create(ctx context.Context, s *models.Session) error
	// FindValid returns the owner of a session that has not been invalidated.
	FindValid(ctx context.Context, token models.SessionToken) (string, error)
	// InvalidateAll marks every session of the user invalid and reports how
	// many rows changed.
	InvalidateAll(ctx context.Context, userID string) (int64, error)
}
