package services

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/helpdesk/internal/common"
	"github.com/dmitrijs2005/helpdesk/internal/dbx"
	"github.com/dmitrijs2005/helpdesk/internal/server/models"
	"github.com/dmitrijs2005/helpdesk/internal/server/repositories/problems"
	"github.com/dmitrijs2005/helpdesk/internal/server/repositories/regtokens"
	"github.com/dmitrijs2005/helpdesk/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/helpdesk/internal/server/repositories/users"
	"github.com/google/uuid"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

// noTx runs transactional bodies directly against the in-memory store.
func noTx(t *testing.T) {
	t.Helper()
	orig := withTx
	withTx = func(ctx context.Context, _ dbx.Beginner, _ *sql.TxOptions, fn dbx.TxFunc) error {
		return fn(ctx, nil)
	}
	t.Cleanup(func() { withTx = orig })
}

// memStore is a mutex-guarded in-memory stand-in for the database. Setting
// fail[op] makes that operation return the error.
type memStore struct {
	mu       sync.Mutex
	users    map[string]*models.User
	sessions map[models.SessionToken]*models.Session
	tokens   map[string]*models.RegistrationToken
	problems []*models.Problem
	fail     map[string]error
	now      time.Time
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[string]*models.User{},
		sessions: map[models.SessionToken]*models.Session{},
		tokens:   map[string]*models.RegistrationToken{},
		fail:     map[string]error{},
		now:      time.Now(),
	}
}

func (s *memStore) err(op string) error { return s.fail[op] }

type memManager struct{ s *memStore }

func (m *memManager) RunMigrations(context.Context, *sql.DB) error     { return nil }
func (m *memManager) Users(dbx.DBTX) users.Repository                  { return &memUsers{m.s} }
func (m *memManager) Sessions(dbx.DBTX) sessions.Repository            { return &memSessions{m.s} }
func (m *memManager) RegistrationTokens(dbx.DBTX) regtokens.Repository { return &memTokens{m.s} }
func (m *memManager) Problems(dbx.DBTX) problems.Repository            { return &memProblems{m.s} }

type memUsers struct{ s *memStore }

func (r *memUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.err("users.Create"); err != nil {
		return nil, err
	}
	if u.Email != "" {
		for _, other := range r.s.users {
			if other.Email == u.Email {
				return nil, common.ErrEmailTaken
			}
		}
	}
	u.ID = uuid.NewString()
	u.CreatedAt = r.s.now
	cp := *u
	r.s.users[u.ID] = &cp
	return u, nil
}

func (r *memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.err("users.GetByEmail"); err != nil {
		return nil, err
	}
	for _, u := range r.s.users {
		if u.Email != "" && u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *memUsers) GetRole(_ context.Context, id string) (models.Role, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.err("users.GetRole"); err != nil {
		return "", err
	}
	u, ok := r.s.users[id]
	if !ok {
		return "", common.ErrorNotFound
	}
	return u.Role, nil
}

func (r *memUsers) UpdatePasswordHash(_ context.Context, id, hash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.err("users.UpdatePasswordHash"); err != nil {
		return err
	}
	u, ok := r.s.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (r *memUsers) SetCredentials(_ context.Context, id, email, hash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.err("users.SetCredentials"); err != nil {
		return err
	}
	for otherID, other := range r.s.users {
		if otherID != id && other.Email == email {
			return common.ErrEmailTaken
		}
	}
	u, ok := r.s.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.Email, u.PasswordHash = email, hash
	return nil
}

type memSessions struct{ s *memStore }

func (r *memSessions) Create(_ context.Context, sess *models.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.err("sessions.Create"); err != nil {
		return err
	}
	sess.Valid = true
	sess.CreatedAt = r.s.now
	cp := *sess
	r.s.sessions[sess.ID] = &cp
	return nil
}

func (r *memSessions) FindValid(_ context.Context, token models.SessionToken) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.err("sessions.FindValid"); err != nil {
		return "", err
	}
	sess, ok := r.s.sessions[token]
	if !ok || !sess.Valid {
		return "", common.ErrorNotFound
	}
	return sess.UserID, nil
}

func (r *memSessions) InvalidateAll(_ context.Context, userID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.err("sessions.InvalidateAll"); err != nil {
		return 0, err
	}
	var n int64
	for _, sess := range r.s.sessions {
		if sess.UserID == userID && sess.Valid {
			sess.Valid = false
			n++
		}
	}
	return n, nil
}

type memTokens struct{ s *memStore }

func (r *memTokens) Create(_ context.Context, t *models.RegistrationToken) (*models.RegistrationToken, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.err("tokens.Create"); err != nil {
		return nil, err
	}
	t.ID = uuid.NewString()
	t.Valid = true
	t.CreatedAt = r.s.now.Add(time.Duration(len(r.s.tokens)) * time.Second)
	cp := *t
	r.s.tokens[t.ID] = &cp
	return t, nil
}

func (r *memTokens) FindValid(_ context.Context, id string) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.err("tokens.FindValid"); err != nil {
		return "", err
	}
	t, ok := r.s.tokens[id]
	if !ok || !t.Valid {
		return "", common.ErrorNotFound
	}
	return t.UserID, nil
}

func (r *memTokens) Claim(_ context.Context, id string) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.err("tokens.Claim"); err != nil {
		return "", err
	}
	t, ok := r.s.tokens[id]
	if !ok || !t.Valid {
		return "", common.ErrorNotFound
	}
	t.Valid = false
	return t.UserID, nil
}

func (r *memTokens) ListPending(_ context.Context) ([]*models.PendingRegistration, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.err("tokens.ListPending"); err != nil {
		return nil, err
	}
	open := make([]*models.RegistrationToken, 0)
	for _, t := range r.s.tokens {
		if t.Valid {
			open = append(open, t)
		}
	}
	sort.Slice(open, func(i, j int) bool { return open[i].CreatedAt.Before(open[j].CreatedAt) })

	out := make([]*models.PendingRegistration, 0, len(open))
	for _, t := range open {
		u := r.s.users[t.UserID]
		out = append(out, &models.PendingRegistration{UserID: u.ID, Surname: u.Surname, Name: u.Name, TokenID: t.ID})
	}
	return out, nil
}

type memProblems struct{ s *memStore }

func (r *memProblems) Create(_ context.Context, p *models.Problem) (*models.Problem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.err("problems.Create"); err != nil {
		return nil, err
	}
	p.ID = int64(len(r.s.problems) + 1)
	p.CreatedAt = r.s.now
	cp := *p
	r.s.problems = append(r.s.problems, &cp)
	return p, nil
}

func (r *memProblems) UpdateStatus(_ context.Context, id int64, status models.Status) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.err("problems.UpdateStatus"); err != nil {
		return err
	}
	for _, p := range r.s.problems {
		if p.ID == id {
			p.Status = status
			if status == models.StatusClosed {
				if p.ClosedAt == nil {
					now := r.s.now
					p.ClosedAt = &now
				}
			} else {
				p.ClosedAt = nil
			}
			return nil
		}
	}
	return common.ErrorNotFound
}

func (r *memProblems) List(_ context.Context) ([]*models.Problem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.err("problems.List"); err != nil {
		return nil, err
	}
	out := make([]*models.Problem, 0, len(r.s.problems))
	for _, p := range r.s.problems {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memProblems) CountByStatus(_ context.Context) (*models.StatusCounts, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.err("problems.CountByStatus"); err != nil {
		return nil, err
	}
	c := &models.StatusCounts{}
	for _, p := range r.s.problems {
		switch p.Status {
		case models.StatusActive:
			c.Active++
			c.CreatedToday++
		case models.StatusClosed:
			c.Closed++
			if p.ClosedAt != nil {
				c.ResolvedToday++
			}
		case models.StatusHalted:
			c.Halted++
		}
	}
	return c, nil
}

func (r *memProblems) CountByCategory(_ context.Context) (map[string]int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.err("problems.CountByCategory"); err != nil {
		return nil, err
	}
	out := map[string]int64{}
	for _, p := range r.s.problems {
		out[p.Category]++
	}
	return out, nil
}
