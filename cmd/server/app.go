package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/time/rate"

	apimiddleware "github.com/VernoB/TodoTask/internal/api/middleware"
	"github.com/VernoB/TodoTask/internal/config"
	"github.com/VernoB/TodoTask/internal/platform/filestore"
	"github.com/VernoB/TodoTask/internal/platform/postgres"
	"github.com/VernoB/TodoTask/internal/service/auth"
	"github.com/VernoB/TodoTask/internal/store"
)

// application holds the shared dependencies for the server: configuration,
// logger, database handle, stores and services. Handlers receive what they
// need from here at router setup.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore store.UserStore
	taskStore store.TaskStore

	jwtService       auth.JWTService
	passwordHasher   auth.PasswordHasher
	passwordVerifier auth.PasswordVerifier

	imageStore  *filestore.DiskStore
	rateLimiter *apimiddleware.RateLimiter
	stopCleanup chan struct{}
}

// newApplication wires the stores and services on top of an open database
// connection.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	imageStore, err := filestore.NewDiskStore(cfg.Upload.Dir, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create image store: %w", err)
	}

	app := &application{
		config:           cfg,
		logger:           logger,
		db:               db,
		userStore:        postgres.NewPostgresUserStore(db, logger),
		taskStore:        postgres.NewPostgresTaskStore(db, logger),
		jwtService:       jwtService,
		passwordHasher:   auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		passwordVerifier: auth.NewBcryptVerifier(),
		imageStore:       imageStore,
		rateLimiter:      apimiddleware.NewRateLimiter(rate.Limit(20), 40),
		stopCleanup:      make(chan struct{}),
	}

	go app.rateLimiter.Run(app.stopCleanup)

	return app, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	close(app.stopCleanup)

	if err := app.db.Close(); err != nil {
		app.logger.Error("Failed to close database connection", "error", err)
	}
}
