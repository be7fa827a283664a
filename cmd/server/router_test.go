package main

import (
	"net/http"
	"testing"
	"time"

	"github.com/phrazzld/todo-api/internal/api"
	"github.com/phrazzld/todo-api/internal/api/shared"
	"github.com/phrazzld/todo-api/internal/config"
	"github.com/phrazzld/todo-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, cfg *config.Config) apiClient {
	t.Helper()
	return apiClient{t: t, handler: newTestApp(t, cfg).setupRouter()}
}

func TestScenario_CreateTask(t *testing.T) {
	c := newClient(t, testConfig(t))

	rr := c.do(http.MethodPost, "/tasks", "tok123", `{"title":"Buy milk"}`)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t,
		`{"id":1,"owner":"tok123","title":"Buy milk","description":null,"completed":false}`,
		rr.Body.String())
}

func TestScenario_ToggleTwice(t *testing.T) {
	c := newClient(t, testConfig(t))
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/tasks", "tok123", `{"title":"Buy milk"}`).Code)

	first := c.do(http.MethodPatch, "/tasks/1/complete", "tok123", "")
	require.Equal(t, http.StatusOK, first.Code)
	assert.True(t, decode[api.TaskResponse](t, first).Completed)

	second := c.do(http.MethodPatch, "/tasks/1/complete", "tok123", "")
	require.Equal(t, http.StatusOK, second.Code)
	assert.False(t, decode[api.TaskResponse](t, second).Completed)
}

func TestScenario_DeleteByOtherIdentity(t *testing.T) {
	c := newClient(t, testConfig(t))
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/tasks", "tok123", `{"title":"Buy milk"}`).Code)

	rr := c.do(http.MethodDelete, "/tasks/1", "otherToken", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Task not found or unauthorized", decode[map[string]any](t, rr)["error"])

	tasks := decode[[]api.TaskResponse](t, c.do(http.MethodGet, "/tasks", "tok123", ""))
	require.Len(t, tasks, 1)
	assert.Equal(t, int64(1), tasks[0].ID)
}

func TestCrossIdentityIsolation(t *testing.T) {
	c := newClient(t, testConfig(t))
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/tasks", "alice", `{"title":"Alice task"}`).Code)

	assert.Empty(t, decode[[]api.TaskResponse](t, c.do(http.MethodGet, "/tasks", "bob", "")))

	for _, tc := range []struct{ method, path, body string }{
		{http.MethodPatch, "/tasks/1", `{"title":"stolen"}`},
		{http.MethodPatch, "/tasks/1/complete", ""},
		{http.MethodDelete, "/tasks/1", ""},
	} {
		rr := c.do(tc.method, tc.path, "bob", tc.body)
		assert.Equal(t, http.StatusNotFound, rr.Code, "%s %s", tc.method, tc.path)
	}

	// A missing id looks exactly like a foreign one.
	missing := c.do(http.MethodDelete, "/tasks/42", "bob", "")
	foreign := c.do(http.MethodDelete, "/tasks/1", "bob", "")
	assert.Equal(t, missing.Code, foreign.Code)
	missingBody := decode[shared.ErrorResponse](t, missing)
	foreignBody := decode[shared.ErrorResponse](t, foreign)
	assert.Equal(t, api.MsgTaskNotFound, missingBody.Error)
	assert.Equal(t, missingBody.Error, foreignBody.Error)
	assert.NotEmpty(t, foreignBody.TraceID)
	assert.NotEqual(t, missingBody.TraceID, foreignBody.TraceID, "trace ids are per request")

	tasks := decode[[]api.TaskResponse](t, c.do(http.MethodGet, "/tasks", "alice", ""))
	require.Len(t, tasks, 1)
	assert.Equal(t, "Alice task", tasks[0].Title)
	assert.False(t, tasks[0].Completed)
}

func TestCreateThenListRoundTrip(t *testing.T) {
	c := newClient(t, testConfig(t))

	created := decode[api.TaskResponse](t,
		c.do(http.MethodPost, "/tasks", "tok123", `{"title":"Walk dog","description":"around the park","owner":"mallory"}`))

	tasks := decode[[]api.TaskResponse](t, c.do(http.MethodGet, "/tasks", "tok123", ""))
	require.Len(t, tasks, 1)
	assert.Equal(t, created, tasks[0])
	assert.Equal(t, "tok123", tasks[0].Owner)
	require.NotNil(t, tasks[0].Description)
	assert.Equal(t, "around the park", *tasks[0].Description)
}

func TestPartialUpdatePreservesFields(t *testing.T) {
	c := newClient(t, testConfig(t))
	require.Equal(t, http.StatusOK,
		c.do(http.MethodPost, "/tasks", "tok123", `{"title":"Buy milk","description":"2 litres"}`).Code)
	require.Equal(t, http.StatusOK, c.do(http.MethodPatch, "/tasks/1/complete", "tok123", "").Code)

	rr := c.do(http.MethodPatch, "/tasks/1", "tok123", `{"title":"Buy oat milk"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	updated := decode[api.TaskResponse](t, rr)
	assert.Equal(t, "Buy oat milk", updated.Title)
	assert.True(t, updated.Completed)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "2 litres", *updated.Description)

	rr = c.do(http.MethodPatch, "/tasks/1", "tok123", `{"completed":false,"description":null}`)
	require.Equal(t, http.StatusOK, rr.Code)
	updated = decode[api.TaskResponse](t, rr)
	assert.Equal(t, "Buy oat milk", updated.Title)
	assert.False(t, updated.Completed)
	assert.Nil(t, updated.Description)
}

func TestMissingAuthorizationOnEveryTaskRoute(t *testing.T) {
	c := newClient(t, testConfig(t))

	routes := []struct{ method, path, body string }{
		{http.MethodGet, "/tasks", ""},
		{http.MethodPost, "/tasks", `{"title":"Buy milk"}`},
		{http.MethodPatch, "/tasks/1", `{"title":"x"}`},
		{http.MethodPatch, "/tasks/1/complete", ""},
		{http.MethodDelete, "/tasks/1", ""},
	}
	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			rr := c.do(rt.method, rt.path, "", rt.body)
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			body := decode[map[string]any](t, rr)
			assert.Equal(t, "Missing Authorization Header", body["error"])
			assert.NotEmpty(t, body["trace_id"])
		})
	}

	// Nothing was created by the rejected POST.
	assert.Empty(t, decode[[]api.TaskResponse](t, c.do(http.MethodGet, "/tasks", "tok123", "")))
}

func TestMalformedAuthorization(t *testing.T) {
	c := newClient(t, testConfig(t))

	for _, header := range []string{"tok123", "Bearer tok 123", "Bearer  tok123"} {
		rr := c.doRaw(http.MethodGet, "/tasks", header)
		assert.Equal(t, http.StatusUnauthorized, rr.Code, header)
		assert.Equal(t, "Invalid token format", decode[map[string]any](t, rr)["error"], header)
	}
}

func TestEmptyBearerTokenRejected(t *testing.T) {
	c := newClient(t, testConfig(t))

	rr := c.doRaw(http.MethodGet, "/tasks", "Bearer ")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Invalid token", decode[map[string]any](t, rr)["error"])
}

func TestAuthPlaceholderRoutes(t *testing.T) {
	c := newClient(t, testConfig(t))

	for _, method := range []string{http.MethodGet, http.MethodPost} {
		rr := c.do(method, "/auth/login", "", "")
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"message":"Auth route reached"}`, rr.Body.String())
	}
}

func TestBasePath(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.BasePath = "/api"
	c := newClient(t, cfg)

	assert.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/tasks", "tok123", `{"title":"Buy milk"}`).Code)
	assert.Equal(t, http.StatusNotFound, c.do(http.MethodGet, "/tasks", "tok123", "").Code)
	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/auth/x", "", "").Code)
	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/health", "", "").Code)
}

func TestHealth(t *testing.T) {
	c := newClient(t, testConfig(t))

	rr := c.do(http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK", rr.Body.String())
}

func TestJWTMode(t *testing.T) {
	cfg := testConfig(t)
	cfg.Auth = config.AuthConfig{
		Mode:      config.AuthModeJWT,
		JWTSecret: "0123456789abcdef0123456789abcdef",
		ClockSkew: time.Minute,
	}
	c := newClient(t, cfg)

	issuer, err := auth.NewJWTValidator(cfg.Auth)
	require.NoError(t, err)
	token, err := issuer.IssueToken("user-42", time.Hour)
	require.NoError(t, err)

	rr := c.do(http.MethodPost, "/tasks", token, `{"title":"Buy milk"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "user-42", decode[api.TaskResponse](t, rr).Owner)

	rr = c.do(http.MethodGet, "/tasks", "not-a-jwt", "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Invalid token", decode[map[string]any](t, rr)["error"])
}
