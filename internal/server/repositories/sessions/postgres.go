package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/helpdesk/internal/common"
	"github.com/dmitrijs2005/helpdesk/internal/dbx"
	"github.com/dmitrijs2005/helpdesk/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, s *models.Session) error {
	query :=
		`INSERT INTO sessions (id, user_id, valid)
		 VALUES ($1, $2, TRUE)
		 RETURNING created_at
		 `

	if err := r.db.QueryRowContext(ctx, query, string(s.ID), s.UserID).Scan(&s.CreatedAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	s.Valid = true

	return nil
}

func (r *PostgresRepository) FindValid(ctx context.Context, token models.SessionToken) (string, error) {
	query :=
		`SELECT user_id FROM sessions
		 WHERE id = $1 AND valid = TRUE
		 `

	var userID string
	if err := r.db.QueryRowContext(ctx, query, string(token)).Scan(&userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("db error: %w", err)
	}

	return userID, nil
}

func (r *PostgresRepository) InvalidateAll(ctx context.Context, userID string) (int64, error) {
	query :=
		`UPDATE sessions SET valid = FALSE
		 WHERE user_id = $1 AND valid = TRUE
		 `

	res, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return n, nil
}
