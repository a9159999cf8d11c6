package web

import (
	"context"

	"github.com/dmitrijs2005/helpdesk/internal/server/models"
)

type SessionManager interface {
	Authenticate(ctx context.Context, token models.SessionToken) (string, error)
	Create(ctx context.Context, userID string) (models.SessionToken, error)
	InvalidateAll(ctx context.Context, userID string) error
}

type CredentialStore interface {
	Verify(ctx context.Context, email, password string) (string, error)
	UpdatePassword(ctx context.Context, userID, newPassword string) error
}

type Registrar interface {
	Invite(ctx context.Context, surname, name string) (*models.Invitation, error)
	Register(ctx context.Context, tokenID, email, password string) error
	Pending(ctx context.Context) ([]*models.PendingRegistration, error)
}

type AuthorizationGate interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

type ProblemLifecycle interface {
	Create(ctx context.Context, creatorID, name, description, category string) (*models.Problem, error)
	UpdateStatus(ctx context.Context, id int64, status models.Status) error
	Dashboard(ctx context.Context) (*models.Dashboard, error)
	List(ctx context.Context) ([]*models.Problem, error)
}

// Pinger reports database reachability. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Services bundles what the handlers call into.
type Services struct {
	Sessions      SessionManager
	Credentials   CredentialStore
	Registration  Registrar
	Authorization AuthorizationGate
	Problems      ProblemLifecycle
	DB            Pinger
}
