// Package logger provides structured logging functionality for the application.
//
// It builds a log/slog JSON logger at the configured level, optionally fans
// records out to the systemd journal, and carries request-scoped loggers
// through context.Context.
package logger
