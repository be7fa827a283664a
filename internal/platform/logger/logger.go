package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

// LoggerConfig controls how Setup builds the application logger.
type LoggerConfig struct {
	// Level is one of debug, info, warn or error (case-insensitive).
	Level string

	// Journal adds a systemd journal sink when the journal socket is reachable.
	Journal bool

	// Output receives JSON log lines. Defaults to os.Stdout.
	Output io.Writer
}

// ParseLevel converts a configured level name to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}

// Setup initializes and configures the application's logging system based on
// the provided configuration. It creates a structured JSON logger with the
// appropriate log level and sets it as the default logger for the application.
//
// An invalid level falls back to info and is reported through the returned
// logger rather than failing startup.
func Setup(cfg LoggerConfig) (*slog.Logger, error) {
	level, levelErr := ParseLevel(cfg.Level)

	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	handlers := []slog.Handler{
		slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}),
	}

	var journalErr error
	if cfg.Journal {
		journal, err := newJournalHandler(level)
		if err != nil {
			journalErr = err
		} else {
			handlers = append(handlers, journal)
		}
	}

	var handler slog.Handler
	if len(handlers) == 1 {
		handler = handlers[0]
	} else {
		handler = slogmulti.Fanout(handlers...)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	if levelErr != nil {
		logger.Warn("invalid log level configured, using default level",
			"configured_level", cfg.Level,
			"default_level", "info")
	}
	if journalErr != nil {
		logger.Warn("systemd journal unavailable, logging to stdout only",
			"error", journalErr)
	}

	return logger, nil
}
