// Package runtime wires core dependencies and manages the HTTP server
// lifecycle.
package runtime

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/appydave/appydaveapp/internal/app/httpapi"
	"github.com/appydave/appydaveapp/internal/app/metrics"
	"github.com/appydave/appydaveapp/internal/app/services/catalog"
	"github.com/appydave/appydaveapp/internal/app/storage"
	"github.com/appydave/appydaveapp/internal/app/storage/memory"
	"github.com/appydave/appydaveapp/internal/app/storage/postgres"
	"github.com/appydave/appydaveapp/internal/config"
	"github.com/appydave/appydaveapp/internal/middleware"
	"github.com/appydave/appydaveapp/internal/platform/database"
	"github.com/appydave/appydaveapp/internal/platform/migrations"
	"github.com/appydave/appydaveapp/pkg/logger"
)

// Application holds the process-wide dependencies: one store handle, one
// catalog service, one HTTP server.
type Application struct {
	cfg        *config.Config
	log        *logger.Logger
	httpServer *http.Server
	handler    http.Handler
	catalog    *catalog.Service
	db         *sqlx.DB
}

// LoadConfig loads the application configuration.
func LoadConfig() (*config.Config, error) {
	return config.Load()
}

// NewApplication constructs an application from the given configuration.
// Without a database DSN the in-memory store is used, which suits local
// development and tests.
func NewApplication(ctx context.Context, cfg *config.Config) (*Application, error) {
	if cfg == nil {
		loaded, err := config.Load()
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	log := logger.New(cfg.LoggerConfig())

	var (
		store  storage.ServiceStore
		health httpapi.HealthFunc
		db     *sqlx.DB
	)
	if cfg.Database.DSN == "" {
		log.Warn("database dsn not configured; using in-memory store")
		store = memory.New()
	} else {
		opened, err := database.Open(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		if err := migrations.Apply(ctx, opened.DB); err != nil {
			opened.Close()
			return nil, fmt.Errorf("apply migrations: %w", err)
		}
		db = opened
		store = postgres.New(opened)
		health = opened.PingContext
	}

	cat := catalog.New(store, log)
	if cfg.Seed {
		if err := cat.Seed(ctx); err != nil {
			if db != nil {
				db.Close()
			}
			return nil, fmt.Errorf("seed store: %w", err)
		}
	}

	var handler http.Handler = httpapi.NewHandler(cat, health, log)
	handler = middleware.NewCORSMiddleware(cfg.AllowedOrigins).Handler(handler)
	if cfg.RateLimit.RequestsPerSecond > 0 {
		handler = middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, log).Handler(handler)
	}
	handler = middleware.LoggingMiddleware(log)(handler)
	handler = metrics.InstrumentHandler(handler)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	return &Application{
		cfg:        cfg,
		log:        log,
		httpServer: srv,
		handler:    handler,
		catalog:    cat,
		db:         db,
	}, nil
}

// Handler exposes the fully wired HTTP handler. Primarily for tests.
func (a *Application) Handler() http.Handler {
	return a.handler
}

// Catalog exposes the catalog service.
func (a *Application) Catalog() *catalog.Service {
	return a.catalog
}

// Run starts the HTTP server and blocks until the context is cancelled or
// the server fails.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.log.Infof("HTTP server listening on %s:%d", a.cfg.Server.Host, a.cfg.Server.Port)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

// Shutdown gracefully stops the HTTP server and closes the database handle.
func (a *Application) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.WithError(err).Warn("error closing database connection")
		}
	}

	return nil
}
