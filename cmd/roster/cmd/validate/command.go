// Package validate checks the roster and the form export for problems a
// merge would carry forward.
package validate

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/roster/internal/cmd/application"
	"github.com/agentstation/roster/internal/cmd/globals"
	"github.com/agentstation/roster/internal/cmd/output"
	"github.com/agentstation/roster/pkg/errors"
	"github.com/agentstation/roster/pkg/roster"
	"github.com/agentstation/roster/pkg/source"
)

// NewCommand creates the validate command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var rosterOnly bool
	var paths *globals.PathFlags

	cmd := &cobra.Command{
		Use:     "validate",
		GroupID: "management",
		Short:   "Check the roster and form export for problems",
		Long: `Validate loads the roster and the form export and reports:
  - usernames held by more than one roster record (error)
  - roster records with an empty username (error)
  - roster records missing a tracking field or holding an unexpected value
  - usernames submitted more than once in the form export

The command exits non-zero when any error is found. Nothing is modified.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := app.Logger()
			settings := paths.Apply(app.Settings())

			users, err := roster.LoadFile(settings.RosterPath)
			if err != nil {
				return err
			}
			issues := CheckRoster(users, settings.RosterPath)

			if !rosterOnly {
				entries, err := source.ReadFile(settings.SourcePath, source.Columns{
					Username: settings.UsernameColumn,
					Name:     settings.NameColumn,
				})
				if err != nil {
					issues = append(issues, Issue{
						Severity: SeverityError,
						File:     settings.SourcePath,
						Subject:  "-",
						Message:  err.Error(),
					})
				} else {
					issues = append(issues, CheckSource(entries, settings.SourcePath)...)
				}
			}

			errorCount := countErrors(issues)
			logger.Debug().
				Int("users", len(users)).
				Int("issues", len(issues)).
				Int("errors", errorCount).
				Msg("Validation finished")

			out := cmd.OutOrStdout()
			format := output.DetectFormat(app.OutputFormat(), out)
			switch {
			case format == output.FormatJSON || format == output.FormatYAML:
				if issues == nil {
					issues = []Issue{}
				}
				if err := output.NewFormatter(format).Format(out, issues); err != nil {
					return err
				}
			case len(issues) == 0:
				fmt.Fprintf(out, "Roster OK: %d users\n", len(users))
			default:
				if err := output.NewFormatter(format).Format(out, issues); err != nil {
					return err
				}
			}

			if errorCount > 0 {
				return errors.NewValidationError("roster", errorCount,
					fmt.Sprintf("%d problem(s) found", errorCount))
			}
			return nil
		},
	}

	paths = globals.AddPathFlags(cmd)
	cmd.Flags().BoolVar(&rosterOnly, "roster-only", false,
		"Skip checking the form export")

	return cmd
}
