package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/helpdesk/internal/common"
	"github.com/dmitrijs2005/helpdesk/internal/dbx"
	"github.com/dmitrijs2005/helpdesk/internal/server/auth"
	"github.com/dmitrijs2005/helpdesk/internal/server/models"
	"github.com/dmitrijs2005/helpdesk/internal/server/repositories/repomanager"
)

// RegistrationService provisions users and turns invitations into accounts.
type RegistrationService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      *auth.Hasher
}

func NewRegistrationService(db *sql.DB, m repomanager.RepositoryManager, h *auth.Hasher) *RegistrationService {
	return &RegistrationService{db: db, repomanager: m, hasher: h}
}

// Invite creates a pending member and a registration token bound to it.
func (s *RegistrationService) Invite(ctx context.Context, surname, name string) (*models.Invitation, error) {
	if surname == "" || name == "" {
		return nil, common.ErrMissingFields
	}

	var inv models.Invitation
	err := withTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		user, err := s.repomanager.Users(tx).Create(ctx, &models.User{Surname: surname, Name: name, Role: models.RoleMember})
		if err != nil {
			return fmt.Errorf("error creating user: %w", err)
		}

		token, err := s.repomanager.RegistrationTokens(tx).Create(ctx, &models.RegistrationToken{UserID: user.ID})
		if err != nil {
			return fmt.Errorf("error creating registration token: %w", err)
		}

		inv = models.Invitation{UserID: user.ID, TokenID: token.ID}
		return nil
	})

	if err != nil {
		return nil, unavailable(err)
	}

	return &inv, nil
}

// Resolve returns the user bound to a valid token. Unknown and consumed
// tokens are indistinguishable.
func (s *RegistrationService) Resolve(ctx context.Context, tokenID string) (string, error) {
	id, ok := auth.ParseToken(tokenID)
	if !ok {
		return "", common.ErrInvalidToken
	}

	userID, err := s.repomanager.RegistrationTokens(s.db).FindValid(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrInvalidToken
		}
		return "", unavailable(err)
	}

	return userID, nil
}

// Consume claims the token and stores the credentials of its user. Of many
// concurrent calls for one token at most one succeeds; the rest get
// common.ErrConflict. A taken email rolls the claim back.
func (s *RegistrationService) Consume(ctx context.Context, tokenID, email, passwordHash string) error {
	id, ok := auth.ParseToken(tokenID)
	if !ok {
		return common.ErrInvalidToken
	}

	err := withTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		userID, err := s.repomanager.RegistrationTokens(tx).Claim(ctx, id)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrConflict
			}
			return err
		}
		return s.repomanager.Users(tx).SetCredentials(ctx, userID, email, passwordHash)
	})

	switch {
	case err == nil:
		return nil
	case errors.Is(err, common.ErrConflict), errors.Is(err, common.ErrEmailTaken):
		return err
	case errors.Is(err, common.ErrorNotFound):
		// token outlived its user
		return common.ErrInvalidToken
	default:
		return unavailable(err)
	}
}

// Register completes an invitation: the token must still be valid, then the
// password is hashed and the token consumed.
func (s *RegistrationService) Register(ctx context.Context, tokenID, email, password string) error {
	if tokenID == "" || email == "" || password == "" {
		return common.ErrMissingFields
	}

	if _, err := s.Resolve(ctx, tokenID); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}

	return s.Consume(ctx, tokenID, email, hash)
}

// Pending lists users whose invitation is still open.
func (s *RegistrationService) Pending(ctx context.Context) ([]*models.PendingRegistration, error) {
	list, err := s.repomanager.RegistrationTokens(s.db).ListPending(ctx)
	if err != nil {
		return nil, unavailable(err)
	}
	return list, nil
}

// BootstrapAdmin creates an administrator with credentials in place.
func (s *RegistrationService) BootstrapAdmin(ctx context.Context, surname, name, email, password string) (*models.User, error) {
	if surname == "" || name == "" || email == "" || password == "" {
		return nil, common.ErrMissingFields
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}

	user, err := s.repomanager.Users(s.db).Create(ctx, &models.User{
		Surname:      surname,
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	})
	if err != nil {
		if errors.Is(err, common.ErrEmailTaken) {
			return nil, err
		}
		return nil, unavailable(err)
	}

	return user, nil
}
