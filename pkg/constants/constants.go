// Package constants provides shared constants used throughout the roster
// codebase. This includes default paths, the form column headers, file
// permissions and formatting values that must stay consistent between the
// CLI, the loaders and the writers.
package constants

// Default path constants. They mirror the layout of the leaderboard
// repository, where the tool runs from the query_scripts directory.
const (
	// DefaultSourcePath is the CSV export of the sign-up form
	DefaultSourcePath = "users.csv"

	// DefaultRosterPath is the roster read by the leaderboard front-end
	DefaultRosterPath = "../leetcode-elo/public/users_by_elo.json"

	// DefaultConfigName is the config file name searched in $HOME and the working directory
	DefaultConfigName = ".roster"
)

// Form column constants
const (
	// UsernameColumn is the form question holding the LeetCode username
	UsernameColumn = "What is your leetcode username"

	// NameColumn is the form question holding the display name
	NameColumn = "What is your name"
)

// FilePermissions is the permission for a newly created roster (rw-r--r--)
const FilePermissions = 0644

// Formatting constants
const (
	// DefaultIndent is the number of spaces used when writing the roster
	DefaultIndent = 4

	// MaxIndent bounds the configurable indent width
	MaxIndent = 8

	// EnvPrefix is the prefix for environment variables read by the CLI
	EnvPrefix = "ROSTER"
)

// ConfirmationMessage is printed to stdout after a successful merge.
const ConfirmationMessage = "New users added successfully."
