// Package testutils holds helpers shared by tests across packages.
//
// LogRecorder is an slog.Handler that keeps records in memory so tests can
// assert on what was logged, including attributes added with Logger.With.
package testutils
