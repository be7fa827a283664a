package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/todo-api/internal/api/shared"
)

func strPtr(s string) *string { return &s }

// serve routes a single request to h under pattern. A non-empty identity is
// placed in the request context as the auth middleware would.
func serve(
	t *testing.T,
	h http.HandlerFunc,
	method, pattern, path, body, identity string,
) *httptest.ResponseRecorder {
	t.Helper()

	r := chi.NewRouter()
	r.Method(method, pattern, h)

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if identity != "" {
		req = req.WithContext(shared.WithIdentity(req.Context(), identity))
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}
