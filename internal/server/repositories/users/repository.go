// Package users declares the repository contract for staff accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/helpdesk/internal/server/models"
)

// Repository persists users. Lookups return common.ErrorNotFound when the
// row is absent.
type Repository interface {
	// Create inserts user and fills in ID and CreatedAt. Empty Email and
	// PasswordHash are stored as NULL.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail returns the user registered under email.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetRole returns the role of the user.
	GetRole(ctx context.Context, userID string) (models.Role, error)

	// UpdatePasswordHash overwrites the stored hash.
	UpdatePasswordHash(ctx context.Context, userID string, hash string) error

	// SetCredentials stores email and hash for a pending user. An email that
	// belongs to someone else yields common.ErrEmailTaken.
	SetCredentials(ctx context.Context, userID string, email string, hash string) error
}
