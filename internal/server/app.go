// Package server initializes and runs the admin-console server: it opens the
// database, applies schema migrations, wires the services, and serves the
// HTTP API with graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/admintieri/tractoradmin/internal/logging"
	"github.com/admintieri/tractoradmin/internal/server/auth"
	"github.com/admintieri/tractoradmin/internal/server/config"
	"github.com/admintieri/tractoradmin/internal/server/httpapi"
	"github.com/admintieri/tractoradmin/internal/server/repositories/admins"
	"github.com/admintieri/tractoradmin/internal/server/repositories/repomanager"
	"github.com/admintieri/tractoradmin/internal/server/services"
)

type App struct {
	config       *config.Config
	logger       logging.Logger
	sessions     *services.SessionService
	catalog      *services.CatalogService
	audit        *services.AuditService
	directory    *services.DirectoryService
	closeStorage func() error
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	slog := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slog)

	db, err := repomanager.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	codec, err := auth.NewCodec(c.SecretKey, c.SessionTTL)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("token codec error: %w", err)
	}

	app := &App{
		config:       c,
		logger:       logger,
		sessions:     services.NewSessionService(db, rm, codec, logger),
		catalog:      services.NewCatalogService(db, rm, c),
		audit:        services.NewAuditService(db, rm, logger, c.AuditBuffer),
		directory:    services.NewDirectoryService(db, rm),
		closeStorage: db.Close,
	}

	if err := app.bootstrapAdmin(ctx, rm.Admins(db)); err != nil {
		logger.Warn(ctx, "admin bootstrap failed", "error", err)
	}

	return app, nil
}

// bootstrapAdmin seeds the first administrator from the BOOTSTRAP_ADMIN_*
// environment variables when the credential store is empty. There is no
// registration endpoint, so a fresh deployment has no other way to obtain an
// account.
func (app *App) bootstrapAdmin(ctx context.Context, repo admins.Repository) error {
	email := os.Getenv("BOOTSTRAP_ADMIN_EMAIL")
	password := os.Getenv("BOOTSTRAP_ADMIN_PASSWORD")
	if email == "" || password == "" {
		return nil
	}

	n, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	name := os.Getenv("BOOTSTRAP_ADMIN_NAME")
	if name == "" {
		name = "Administrator"
	}

	identity, err := app.sessions.Seed(ctx, name, email, password)
	if err != nil {
		return err
	}
	app.logger.Info(ctx, "seeded initial administrator", "email", identity.Email)
	return nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	h := httpapi.NewHandler(app.config, app.logger, app.sessions, app.catalog, app.audit, app.directory)

	srv := &http.Server{
		Addr:    app.config.EndpointAddr,
		Handler: httpapi.NewRouter(h),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(ctx, "http shutdown error", "error", err)
		}
	}()

	app.logger.Info(ctx, "http server listening", "addr", app.config.EndpointAddr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	// Flush queued audit records before releasing the pool.
	app.audit.Close()
	if err := app.closeStorage(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
}
