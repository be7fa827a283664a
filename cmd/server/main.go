// Package main implements the entry point for the todo API server, which
// stores per-identity task lists and serves them over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/todo-api/internal/config"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/spf13/pflag"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// options holds the parsed command-line flags.
type options struct {
	configPath  string
	migrate     string
	showVersion bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := pflag.NewFlagSet("todo-api", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&opts.configPath, "config", "c", "",
		"path to a YAML, JSON or JSONC config file (overrides "+config.ConfigFileEnv+")")
	fs.StringVar(&opts.migrate, "migrate", "",
		"run a migration command (up, down, reset, status, version) and exit")
	fs.BoolVar(&opts.showVersion, "version", false, "print the version and exit")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return opts, nil
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "todo-api: %v\n", err)
		os.Exit(1)
	}
}

// run wires configuration, logging and storage, then either executes a
// migration command or serves HTTP until SIGINT or SIGTERM.
func run(args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if opts.showVersion {
		_, err := fmt.Fprintln(stdout, version)
		return err
	}

	cfg, err := loadAppConfig(opts.configPath)
	if err != nil {
		return err
	}

	log, err := setupAppLogger(cfg)
	if err != nil {
		return err
	}
	log.Info("Server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("database_driver", cfg.Database.Driver),
		slog.String("auth_mode", cfg.Auth.Mode),
		slog.String("version", version))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.migrate != "" {
		return handleMigrations(ctx, cfg, opts.migrate, log)
	}

	taskStore, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Error("Error closing database", slog.String("error", err.Error()))
		}
	}()

	app, err := newApplication(cfg, log, taskStore)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}

// loadAppConfig loads configuration from path, or from TODO_CONFIG_FILE and
// the environment when path is empty.
func loadAppConfig(path string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// setupAppLogger configures and installs the default application logger.
func setupAppLogger(cfg *config.Config) (*slog.Logger, error) {
	l, err := logger.Setup(logger.LoggerConfig{
		Level:   cfg.Server.LogLevel,
		Journal: cfg.Server.LogJournal,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}
	return l, nil
}
