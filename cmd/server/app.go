package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/todo-api/internal/config"
	"github.com/phrazzld/todo-api/internal/service"
	"github.com/phrazzld/todo-api/internal/service/auth"
	"github.com/phrazzld/todo-api/internal/store"
)

// application holds the shared dependencies of the HTTP server.
// The store is opened and closed by the caller.
type application struct {
	config *config.Config
	logger *slog.Logger

	taskStore   store.TaskStore
	taskService service.TaskService
	resolver    *auth.Resolver
}

// newApplication builds the services on top of an open task store.
func newApplication(cfg *config.Config, logger *slog.Logger, taskStore store.TaskStore) (*application, error) {
	if logger == nil {
		logger = slog.Default()
	}

	validator, err := auth.NewValidator(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token validator: %w", err)
	}
	logger.Info("identity resolver initialized", slog.String("mode", cfg.Auth.Mode))

	taskService, err := service.NewTaskService(taskStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	return &application{
		config:      cfg,
		logger:      logger,
		taskStore:   taskStore,
		taskService: taskService,
		resolver:    auth.NewResolver(validator, logger),
	}, nil
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
