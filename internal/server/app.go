// Package server wires the helpdesk application together: it opens the
// database, applies migrations, builds the services and runs the HTTP
// server until a termination signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/helpdesk/internal/logging"
	"github.com/dmitrijs2005/helpdesk/internal/server/auth"
	"github.com/dmitrijs2005/helpdesk/internal/server/config"
	"github.com/dmitrijs2005/helpdesk/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/helpdesk/internal/server/services"
	"github.com/dmitrijs2005/helpdesk/internal/server/web"
)

// Seams for tests.
var (
	sqlOpen              = sql.Open
	newRepositoryManager = repomanager.NewPostgresRepositoryManager
	runHTTPServer        = func(ctx context.Context, s *web.HTTPServer) error { return s.Run(ctx) }
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      *auth.Hasher
}

// NewApp connects to the database and brings the schema up to date.
func NewApp(ctx context.Context, c *config.Config, l logging.Logger) (*App, error) {
	db, err := OpenDB(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	m := newRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	return &App{
		config:      c,
		logger:      l.With("module", "app"),
		db:          db,
		repomanager: m,
		hasher:      auth.NewHasher(c.BcryptCost),
	}, nil
}

// OpenDB opens a pgx-backed pool and checks that it is reachable.
func OpenDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sqlOpen("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}
	return db, nil
}

// Registration is used by the admin bootstrap command.
func (app *App) Registration() *services.RegistrationService {
	return services.NewRegistrationService(app.db, app.repomanager, app.hasher)
}

func (app *App) services() web.Services {
	return web.Services{
		Sessions:      services.NewSessionService(app.db, app.repomanager),
		Credentials:   services.NewCredentialService(app.db, app.repomanager, app.hasher),
		Registration:  app.Registration(),
		Authorization: services.NewAuthorizationService(app.db, app.repomanager),
		Problems:      services.NewProblemService(app.db, app.repomanager),
		DB:            app.db,
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves HTTP until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	srv := web.NewHTTPServer(app.config, app.logger, app.services())
	if err := runHTTPServer(ctx, srv); err != nil {
		return fmt.Errorf("http server: %w", err)
	}

	app.logger.Info(ctx, "App stopped")
	return nil
}

func (app *App) Close() error {
	return app.db.Close()
}
