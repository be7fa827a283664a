package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/todo-api/internal/api"
	apiMiddleware "github.com/phrazzld/todo-api/internal/api/middleware"
	"github.com/phrazzld/todo-api/internal/api/shared"
)

// healthTimeout bounds the store ping made by the health check.
const healthTimeout = 2 * time.Second

// setupRouter creates the application router with all middleware and routes.
// Routes are mounted under cfg.Server.BasePath when it is set; /health always
// stays at the root.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(apiMiddleware.CORS())

	taskHandler := api.NewTaskHandler(app.taskService, app.logger)
	authHandler := api.NewAuthHandler(app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.resolver)

	routes := func(r chi.Router) {
		// Identity is issued externally; these only acknowledge the call.
		r.Get("/auth/*", authHandler.Placeholder)
		r.Post("/auth/*", authHandler.Placeholder)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/tasks", taskHandler.ListTasks)
			r.Post("/tasks", taskHandler.CreateTask)
			r.Patch("/tasks/{id}", taskHandler.UpdateTask)
			r.Patch("/tasks/{id}/complete", taskHandler.ToggleTaskCompletion)
			r.Delete("/tasks/{id}", taskHandler.DeleteTask)
		})
	}

	if base := app.config.Server.BasePath; base != "" {
		r.Route(base, routes)
	} else {
		routes(r)
	}

	r.Get("/health", app.handleHealth)

	return r
}

// handleHealth reports whether the server can reach its store.
func (app *application) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := app.taskStore.Ping(ctx); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusServiceUnavailable, "Database unavailable", err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		app.logger.Error("Failed to write health check response", slog.String("error", err.Error()))
	}
}
