package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/helpdesk/internal/common"
	"github.com/dmitrijs2005/helpdesk/internal/server/auth"
	"github.com/dmitrijs2005/helpdesk/internal/server/models"
	"github.com/dmitrijs2005/helpdesk/internal/server/repositories/repomanager"
)

// SessionService issues and checks cookie sessions.
type SessionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewSessionService(db *sql.DB, m repomanager.RepositoryManager) *SessionService {
	return &SessionService{db: db, repomanager: m}
}

// Authenticate returns the user owning token. A missing, malformed or
// invalidated token yields common.ErrUnauthenticated.
func (s *SessionService) Authenticate(ctx context.Context, token models.SessionToken) (string, error) {
	id, ok := auth.ParseToken(string(token))
	if !ok {
		return "", common.ErrUnauthenticated
	}

	userID, err := s.repomanager.Sessions(s.db).FindValid(ctx, models.SessionToken(id))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrUnauthenticated
		}
		return "", unavailable(err)
	}

	return userID, nil
}

// Create opens a new session for userID.
func (s *SessionService) Create(ctx context.Context, userID string) (models.SessionToken, error) {
	id, err := auth.NewToken()
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}

	session := &models.Session{ID: models.SessionToken(id), UserID: userID}
	if err := s.repomanager.Sessions(s.db).Create(ctx, session); err != nil {
		return "", unavailable(err)
	}

	return session.ID, nil
}

// InvalidateAll ends every session of userID.
func (s *SessionService) InvalidateAll(ctx context.Context, userID string) error {
	if _, err := s.repomanager.Sessions(s.db).InvalidateAll(ctx, userID); err != nil {
		return unavailable(err)
	}
	return nil
}
