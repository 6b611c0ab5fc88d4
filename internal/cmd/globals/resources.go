// Package globals provides flag sets shared by several roster commands.
package globals

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/roster/internal/cmd/application"
)

// ResourceFlags holds flags for listing roster members.
type ResourceFlags struct {
	Limit  int
	Search string
}

// ParseResources extracts resource flags from a command.
// The command must have had AddResourceFlags called on it, otherwise this will panic.
func ParseResources(cmd *cobra.Command) *ResourceFlags {
	return &ResourceFlags{
		Search: mustGetString(cmd, "search"),
		Limit:  mustGetInt(cmd, "limit"),
	}
}

// AddResourceFlags adds resource-specific flags to a command.
func AddResourceFlags(cmd *cobra.Command) *ResourceFlags {
	flags := &ResourceFlags{}

	cmd.Flags().IntVarP(&flags.Limit, "limit", "l", 0,
		"Limit number of results")
	cmd.Flags().StringVar(&flags.Search, "search", "",
		"Only show usernames containing this term (case-insensitive)")

	return flags
}

// PathFlags holds the per-invocation overrides of file locations.
type PathFlags struct {
	Source         string
	Roster         string
	UsernameColumn string
	NameColumn     string
}

// AddPathFlags adds the source and roster location flags to a command.
// Empty values leave the configured settings in place.
func AddPathFlags(cmd *cobra.Command) *PathFlags {
	flags := &PathFlags{}

	cmd.Flags().StringVarP(&flags.Source, "source", "s", "",
		"CSV export of the sign-up form (default from config)")
	cmd.Flags().StringVarP(&flags.Roster, "roster", "r", "",
		"JSON roster to read and update (default from config)")
	cmd.Flags().StringVar(&flags.UsernameColumn, "username-column", "",
		"CSV header holding the username")
	cmd.Flags().StringVar(&flags.NameColumn, "name-column", "",
		"CSV header holding the name")

	return flags
}

// Apply returns settings with every non-empty flag value substituted.
func (f *PathFlags) Apply(settings application.Settings) application.Settings {
	if f == nil {
		return settings
	}
	if f.Source != "" {
		settings.SourcePath = f.Source
	}
	if f.Roster != "" {
		settings.RosterPath = f.Roster
	}
	if f.UsernameColumn != "" {
		settings.UsernameColumn = f.UsernameColumn
	}
	if f.NameColumn != "" {
		settings.NameColumn = f.NameColumn
	}
	return settings
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetInt retrieves an integer flag value or panics if the flag doesn't exist.
func mustGetInt(cmd *cobra.Command, name string) int {
	val, err := cmd.Flags().GetInt(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
