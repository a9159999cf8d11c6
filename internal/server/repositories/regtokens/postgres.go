package regtokens

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

func (r *PostgresRepository) Create(ctx context.Context, t *models.RegistrationToken) (*models.RegistrationToken, error) {
	query :=
		`INSERT INTO registration_tokens (user_id, valid)
		 VALUES ($1, TRUE)
		 RETURNING id, created_at
		 `

	if err := r.db.QueryRowContext(ctx, query, t.UserID).Scan(&t.ID, &t.CreatedAt); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	t.Valid = true

	return t, nil
}

func (r *PostgresRepository) FindValid(ctx context.Context, tokenID string) (string, error) {
	query :=
		`SELECT user_id FROM registration_tokens
		 WHERE id = $1 AND valid = TRUE
		 `

	return r.scanUserID(ctx, query, tokenID)
}

func (r *PostgresRepository) Claim(ctx context.Context, tokenID string) (string, error) {
	query :=
		`UPDATE registration_tokens SET valid = FALSE
		 WHERE id = $1 AND valid = TRUE
		 RETURNING user_id
		 `

	return r.scanUserID(ctx, query, tokenID)
}

func (r *PostgresRepository) scanUserID(ctx context.Context, query string, tokenID string) (string, error) {
	var userID string
	if err := r.db.QueryRowContext(ctx, query, tokenID).Scan(&userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("db error: %w", err)
	}
	return userID, nil
}

func (r *PostgresRepository) ListPending(ctx context.Context) ([]*models.PendingRegistration, error) {
	query :=
		`SELECT u.id, u.surname, u.name, t.id
		 FROM registration_tokens t
		 JOIN users u ON u.id = t.user_id
		 WHERE t.valid = TRUE
		 ORDER BY t.created_at
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.PendingRegistration, 0)
	for rows.Next() {
		p := &models.PendingRegistration{}
		if err := rows.Scan(&p.UserID, &p.Surname, &p.Name, &p.TokenID); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
