package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/helpdesk/internal/common"
	"github.com/dmitrijs2005/helpdesk/internal/dbx"
	"github.com/dmitrijs2005/helpdesk/internal/server/auth"
	"github.com/dmitrijs2005/helpdesk/internal/server/repositories/repomanager"
)

// CredentialService verifies and changes passwords.
type CredentialService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      *auth.Hasher
}

func NewCredentialService(db *sql.DB, m repomanager.RepositoryManager, h *auth.Hasher) *CredentialService {
	return &CredentialService{db: db, repomanager: m, hasher: h}
}

// Verify returns the id of the user identified by email and password.
// Unknown email, pending user and wrong password all yield
// common.ErrInvalidCredentials.
func (s *CredentialService) Verify(ctx context.Context, email, password string) (string, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.CompareDummy(password)
			return "", common.ErrInvalidCredentials
		}
		return "", unavailable(err)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrMismatchedHashAndPassword) {
			return "", common.ErrInvalidCredentials
		}
		return "", fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}

	return user.ID, nil
}

// UpdatePassword replaces the password of userID and ends all of the user's
// sessions in the same transaction.
func (s *CredentialService) UpdatePassword(ctx context.Context, userID, newPassword string) error {
	if newPassword == "" {
		return common.ErrMissingFields
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}

	err = withTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Users(tx).UpdatePasswordHash(ctx, userID, hash); err != nil {
			return err
		}
		_, err := s.repomanager.Sessions(tx).InvalidateAll(ctx, userID)
		return err
	})

	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return unavailable(err)
	}

	return nil
}
