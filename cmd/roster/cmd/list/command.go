// Package list prints the roster standings.
package list

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/roster/internal/cmd/application"
	"github.com/agentstation/roster/internal/cmd/globals"
	"github.com/agentstation/roster/internal/cmd/output"
	"github.com/agentstation/roster/pkg/roster"
)

// NewCommand creates the list command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var rosterPath string

	cmd := &cobra.Command{
		Use:     "list",
		GroupID: "core",
		Aliases: []string{"ls", "standings"},
		Short:   "Show the roster in leaderboard order",
		Long: `List prints the roster ranked the way the leaderboard shows it: by this
week's solved-problem delta, then by elo.

The table shows the elo change since the previous contest. Use -o wide for
the problem counters, or -o json / -o yaml for structured output.`,
		Example: `  roster list                    # Full standings
  roster list --search ali       # Usernames containing "ali"
  roster list -l 10 -o json      # Top ten as JSON`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := app.Logger()
			flags := globals.ParseResources(cmd)

			path := app.Settings().RosterPath
			if rosterPath != "" {
				path = rosterPath
			}

			users, err := roster.LoadFile(path)
			if err != nil {
				return err
			}

			standings := users.Standings()
			if flags.Search != "" {
				standings = standings.Search(flags.Search)
			}
			if flags.Limit > 0 && len(standings) > flags.Limit {
				standings = standings[:flags.Limit]
			}
			logger.Debug().
				Str("roster", path).
				Int("total", len(users)).
				Int("shown", len(standings)).
				Msg("Listing standings")

			format := output.DetectFormat(app.OutputFormat(), cmd.OutOrStdout())
			return output.FormatStandings(cmd.OutOrStdout(), standings, format)
		},
	}

	globals.AddResourceFlags(cmd)
	cmd.Flags().StringVarP(&rosterPath, "roster", "r", "",
		"JSON roster to read (default from config)")

	return cmd
}
