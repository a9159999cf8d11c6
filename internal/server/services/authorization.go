package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/helpdesk/internal/common"
	"github.com/dmitrijs2005/helpdesk/internal/server/models"
	"github.com/dmitrijs2005/helpdesk/internal/server/repositories/repomanager"
)

type AuthorizationService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewAuthorizationService(db *sql.DB, m repomanager.RepositoryManager) *AuthorizationService {
	return &AuthorizationService{db: db, repomanager: m}
}

// IsAdmin reports whether userID exists and has the admin role.
func (s *AuthorizationService) IsAdmin(ctx context.Context, userID string) (bool, error) {
	role, err := s.repomanager.Users(s.db).GetRole(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, nil
		}
		return false, unavailable(err)
	}
	return role == models.RoleAdmin, nil
}
