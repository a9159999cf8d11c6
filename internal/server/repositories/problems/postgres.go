package problems

import (
	"context"
	"database/sql"
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

func (r *PostgresRepository) Create(ctx context.Context, p *models.Problem) (*models.Problem, error) {
	query :=
		`INSERT INTO problems (name, description, category, status, creator_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query, p.Name, p.Description, p.Category, string(p.Status), p.CreatorID).
		Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id int64, status models.Status) error {
	// re-closing keeps the original closed_at
	query :=
		`UPDATE problems SET status = $1::text,
		   closed_at = CASE WHEN $1::text = 'closed' THEN COALESCE(closed_at, now()) ELSE NULL END
		 WHERE id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, string(status), id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Problem, error) {
	query :=
		`SELECT id, name, description, category, status, creator_id, created_at, closed_at
		 FROM problems
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Problem, 0)
	for rows.Next() {
		var (
			p        = &models.Problem{}
			status   string
			closedAt sql.NullTime
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &status, &p.CreatorID, &p.CreatedAt, &closedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		p.Status = models.Status(status)
		if closedAt.Valid {
			t := closedAt.Time
			p.ClosedAt = &t
		}
		result = append(result, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) CountByStatus(ctx context.Context) (*models.StatusCounts, error) {
	query :=
		`SELECT
		   COUNT(*) FILTER (WHERE status = 'active'),
		   COUNT(*) FILTER (WHERE status = 'closed'),
		   COUNT(*) FILTER (WHERE status = 'halted'),
		   COUNT(*) FILTER (WHERE status = 'active' AND created_at::date = CURRENT_DATE),
		   COUNT(*) FILTER (WHERE status = 'closed' AND closed_at::date = CURRENT_DATE)
		 FROM problems
		 `

	c := &models.StatusCounts{}
	err := r.db.QueryRowContext(ctx, query).
		Scan(&c.Active, &c.Closed, &c.Halted, &c.CreatedToday, &c.ResolvedToday)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return c, nil
}

func (r *PostgresRepository) CountByCategory(ctx context.Context) (map[string]int64, error) {
	query :=
		`SELECT category, COUNT(*) FROM problems
		 GROUP BY category
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make(map[string]int64)
	for rows.Next() {
		var (
			category string
			n        int64
		)
		if err := rows.Scan(&category, &n); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result[category] = n
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
