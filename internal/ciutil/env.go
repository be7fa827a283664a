package ciutil

import (
	"log/slog"
	"os"

	"github.com/phrazzld/todo-api/internal/redact"
)

// Environment variable names read by this package.
const (
	// CI environment detection variables
	EnvCI            = "CI"
	EnvGitHubActions = "GITHUB_ACTIONS"
	EnvGitLabCI      = "GITLAB_CI"
	EnvJenkinsURL    = "JENKINS_URL"
	EnvCircleCI      = "CIRCLECI"

	// Database connection environment variables
	EnvTestDBURL   = "TODO_TEST_DB_URL" // Preferred for test databases
	EnvDatabaseURL = "DATABASE_URL"
)

// ciVars are checked by IsCI.
var ciVars = []string{EnvCI, EnvGitHubActions, EnvGitLabCI, EnvJenkinsURL, EnvCircleCI}

// IsCI returns true if the current environment is a CI environment.
func IsCI() bool {
	for _, name := range ciVars {
		if os.Getenv(name) != "" {
			return true
		}
	}
	return false
}

// GetEnvWithFallbacks returns the value of the first non-empty environment
// variable in envVars, or defaultValue when none is set. Using any name but
// the first is logged as a warning with the value redacted.
func GetEnvWithFallbacks(envVars []string, defaultValue string, logger *slog.Logger) string {
	for i, envVar := range envVars {
		val := os.Getenv(envVar)
		if val == "" {
			continue
		}
		if i > 0 && logger != nil {
			logger.Warn("Using fallback environment variable",
				slog.String("used_var", envVar),
				slog.String("preferred_var", envVars[0]),
				slog.String("value", redact.String(val)))
		}
		return val
	}
	return defaultValue
}

// TestDatabaseURL returns the PostgreSQL URL for integration tests.
func TestDatabaseURL(logger *slog.Logger) string {
	return GetEnvWithFallbacks([]string{EnvTestDBURL, EnvDatabaseURL}, "", logger)
}
