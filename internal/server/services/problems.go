package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/helpdesk/internal/common"
	"github.com/dmitrijs2005/helpdesk/internal/dbx"
	"github.com/dmitrijs2005/helpdesk/internal/server/models"
	"github.com/dmitrijs2005/helpdesk/internal/server/repositories/repomanager"
)

// ProblemService manages the ticket lifecycle and its dashboard.
type ProblemService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewProblemService(db *sql.DB, m repomanager.RepositoryManager) *ProblemService {
	return &ProblemService{db: db, repomanager: m}
}

// Create opens a new active problem on behalf of creatorID.
func (s *ProblemService) Create(ctx context.Context, creatorID, name, description, category string) (*models.Problem, error) {
	if creatorID == "" || name == "" || description == "" || category == "" {
		return nil, common.ErrMissingFields
	}
	if !models.ValidCategory(category) {
		return nil, common.ErrInvalidCategory
	}

	p := &models.Problem{
		Name:        name,
		Description: description,
		Category:    category,
		Status:      models.StatusActive,
		CreatorID:   creatorID,
	}

	err := withTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		p, err = s.repomanager.Problems(tx).Create(ctx, p)
		return err
	})
	if err != nil {
		return nil, unavailable(err)
	}

	return p, nil
}

// UpdateStatus moves a problem to status. Every transition is allowed.
func (s *ProblemService) UpdateStatus(ctx context.Context, id int64, status models.Status) error {
	if id <= 0 {
		return common.ErrMissingProblemID
	}
	if status == "" {
		return common.ErrMissingStatus
	}
	if !status.Valid() {
		return common.ErrInvalidStatus
	}

	err := withTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repomanager.Problems(tx).UpdateStatus(ctx, id, status)
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return unavailable(err)
	}

	return nil
}

// Dashboard computes the aggregate view. All counts come from one snapshot.
func (s *ProblemService) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	var (
		byStatus   *models.StatusCounts
		byCategory map[string]int64
	)

	err := withTx(ctx, s.db, dbx.ReadSnapshot, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Problems(tx)

		var err error
		if byStatus, err = repo.CountByStatus(ctx); err != nil {
			return fmt.Errorf("error counting by status: %w", err)
		}
		if byCategory, err = repo.CountByCategory(ctx); err != nil {
			return fmt.Errorf("error counting by category: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, unavailable(err)
	}

	d := &models.Dashboard{
		ByStatus:      *byStatus,
		CreatedToday:  byStatus.CreatedToday,
		ResolvedToday: byStatus.ResolvedToday,
		ByCategory:    make(map[string]int64, len(models.Categories)),
	}
	for _, c := range models.Categories {
		d.ByCategory[c] = byCategory[c]
	}

	return d, nil
}

// List returns every problem ordered by id.
func (s *ProblemService) List(ctx context.Context) ([]*models.Problem, error) {
	list, err := s.repomanager.Problems(s.db).List(ctx)
	if err != nil {
		return nil, unavailable(err)
	}
	return list, nil
}
