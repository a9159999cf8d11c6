// Package regtokens stores single-use registration tokens.
package regtokens

import (
	"context"

	"github.com/dmitrijs2005/helpdesk/internal/server/models"
)

type Repository interface {
	// Create inserts a valid token for t.UserID and fills in ID and CreatedAt.
	Create(ctx context.Context, t *models.RegistrationToken) (*models.RegistrationToken, error)
	// FindValid returns the user bound to a token that is still valid.
	FindValid(ctx context.Context, tokenID string) (string, error)
	// Claim flips a valid token to invalid and returns its user. Only one
	// caller can claim a given token; everyone else gets common.ErrorNotFound.
	Claim(ctx context.Context, tokenID string) (string, error)
	// ListPending returns users that still hold a valid token, oldest first.
	ListPending(ctx context.Context) ([]*models.PendingRegistration, error)
}
