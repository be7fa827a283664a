package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/phrazzld/todo-api/internal/config"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testConfig returns a valid configuration backed by a fresh SQLite file.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Server: config.ServerConfig{
			Port:            8080,
			LogLevel:        "debug",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    5 * time.Second,
			IdleTimeout:     5 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Database: config.DatabaseConfig{
			Driver:       config.DriverSQLite,
			Path:         filepath.Join(t.TempDir(), "todo.db"),
			MaxOpenConns: 2,
		},
		Auth: config.AuthConfig{
			Mode: config.AuthModeOpaque,
		},
	}
}

// newTestApp opens the configured store and builds the application on it.
func newTestApp(t *testing.T, cfg *config.Config) *application {
	t.Helper()

	taskStore, closeStore, err := openStore(context.Background(), cfg, discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeStore() })

	app, err := newApplication(cfg, discardLogger(), taskStore)
	require.NoError(t, err)
	return app
}

// apiClient issues requests against a router in process.
type apiClient struct {
	t       *testing.T
	handler http.Handler
}

func (c apiClient) do(method, path, token, body string) *httptest.ResponseRecorder {
	c.t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rr := httptest.NewRecorder()
	c.handler.ServeHTTP(rr, req)
	return rr
}

// doRaw sends a bodiless request with the Authorization header set verbatim.
func (c apiClient) doRaw(method, path, authorization string) *httptest.ResponseRecorder {
	c.t.Helper()

	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", authorization)

	rr := httptest.NewRecorder()
	c.handler.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}
