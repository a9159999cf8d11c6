// Package problems persists support tickets and their aggregate counts.
package problems

import (
	"context"

	"github.com/dmitrijs2005/helpdesk/internal/server/models"
)

type Repository interface {
	// Create inserts p and fills in ID and CreatedAt.
	Create(ctx context.Context, p *models.Problem) (*models.Problem, error)
	// UpdateStatus sets the status of a problem. A move to closed stamps
	// closed_at; any other move clears it.
	UpdateStatus(ctx context.Context, id int64, status models.Status) error
	// List returns every problem ordered by id.
	List(ctx context.Context) ([]*models.Problem, error)
	// CountByStatus returns per-status totals along with today's figures.
	CountByStatus(ctx context.Context) (*models.StatusCounts, error)
	// CountByCategory returns the number of problems in each category that
	// has at least one problem.
	CountByCategory(ctx context.Context) (map[string]int64, error)
}
