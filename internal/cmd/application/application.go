// Package application provides the application interface for roster commands.
//
// The Application interface defines the contract between the application layer and
// command implementations, enabling dependency injection and testability.
//
// Usage in Commands:
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            settings := app.Settings()
//	            users, err := roster.LoadFile(settings.RosterPath)
//	            if err != nil {
//	                return err
//	            }
//	            // ... use users
//	            return nil
//	        },
//	    }
//	}
//
// Testing with Mocks:
//
//	mock := &application.Mock{
//	    SettingsFunc: func() application.Settings {
//	        return application.Settings{RosterPath: path}
//	    },
//	}
//	cmd := NewCommand(mock)
//	// ... test command behavior
package application

import (
	"github.com/rs/zerolog"
)

// Settings are the resolved file locations and formatting choices a
// command works with. Command flags may override them per invocation.
type Settings struct {
	// SourcePath is the CSV export of the sign-up form
	SourcePath string

	// RosterPath is the JSON roster that is read and rewritten
	RosterPath string

	// UsernameColumn and NameColumn are the CSV header cells to read
	UsernameColumn string
	NameColumn     string

	// Indent is the number of spaces used when writing the roster
	Indent int
}

// Application provides the application interface that commands need.
// The App struct from cmd/roster/app automatically implements this interface,
// providing dependency injection for commands while maintaining testability.
//
// Commands should accept this interface rather than the concrete App type,
// allowing for easier testing with mock implementations.
type Application interface {
	// Settings returns the resolved configuration for roster operations.
	Settings() Settings

	// Logger returns the configured logger instance.
	// Commands should use this for all logging operations.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table, etc).
	// Commands that support different output formats should use this.
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
