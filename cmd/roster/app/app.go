// Package app provides the application context and dependency management
// for the roster CLI. It centralizes configuration, logging and version
// information and hands them to commands through application.Application.
package app

import (
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agentstation/roster/internal/cmd/application"
	"github.com/agentstation/roster/pkg/errors"
)

// App represents the roster application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Command output, nil for the process streams
	out    io.Writer
	errOut io.Writer
}

// New creates a new App instance with the given version information.
// The app is initialized from config files, .env files and the
// environment, and can be customized using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Settings returns the resolved paths and formatting for commands.
func (a *App) Settings() application.Settings {
	return a.config.Settings()
}

// OutputFormat returns the configured output format, empty for auto-detect.
func (a *App) OutputFormat() string {
	return strings.ToLower(a.config.Format)
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		if config == nil {
			return errors.NewValidationError("config", nil, "must not be nil")
		}
		a.config = config
		logger := NewLogger(config)
		a.logger = &logger
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithOutput redirects command output and error streams (useful for testing).
func WithOutput(out, errOut io.Writer) Option {
	return func(a *App) error {
		a.out = out
		a.errOut = errOut
		return nil
	}
}

var _ application.Application = (*App)(nil)
