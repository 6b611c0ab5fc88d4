// Package add implements the merge of form sign-ups into the roster.
package add

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/roster/internal/cmd/application"
	"github.com/agentstation/roster/internal/cmd/globals"
	"github.com/agentstation/roster/internal/cmd/output"
	"github.com/agentstation/roster/internal/cmd/table"
	"github.com/agentstation/roster/pkg/constants"
	"github.com/agentstation/roster/pkg/errors"
	"github.com/agentstation/roster/pkg/logging"
	"github.com/agentstation/roster/pkg/reconcile"
	"github.com/agentstation/roster/pkg/roster"
	"github.com/agentstation/roster/pkg/source"
)

// Options control a single merge run.
type Options struct {
	// Paths overrides the configured locations. Nil keeps the settings.
	Paths *globals.PathFlags

	// DryRun reports what would be added without writing the roster.
	DryRun bool

	// Indent overrides the configured indent when zero or more.
	Indent int
}

// NewCommand creates the add command using app context.
func NewCommand(app application.Application) *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:     "add",
		GroupID: "core",
		Short:   "Add new sign-ups from the form export to the roster",
		Long: `Add reads the sign-up form export and appends every username that is not
yet on the roster, with elo and problem counters starting at zero.

Existing roster entries are never modified, even when the form carries a
different name for them. Running add again with the same export changes
nothing.`,
		Example: `  roster add                                   # Use configured paths
  roster add -s signups.csv -r users_by_elo.json
  roster add --dry -o json                     # Show what would be added`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Run(cmd.Context(), app, cmd.OutOrStdout(), opts)
		},
	}

	opts.Paths = globals.AddPathFlags(cmd)
	cmd.Flags().BoolVar(&opts.DryRun, "dry", false,
		"Show what would be added without writing the roster")
	cmd.Flags().IntVar(&opts.Indent, "indent", -1,
		fmt.Sprintf("Spaces per indent level in the written roster, 0 for compact (default from config, max %d)", constants.MaxIndent))

	return cmd
}

// Run reads the source, loads the roster, appends the new users and writes
// the roster back. On success it prints the confirmation line to out; a
// dry run prints a summary instead and leaves the roster untouched.
func Run(ctx context.Context, app application.Application, out io.Writer, opts *Options) error {
	if opts == nil {
		opts = &Options{Indent: -1}
	}
	if opts.Indent > constants.MaxIndent {
		return errors.NewValidationError("indent", opts.Indent,
			fmt.Sprintf("must be at most %d", constants.MaxIndent))
	}
	settings := opts.Paths.Apply(app.Settings())
	if opts.Indent >= 0 {
		settings.Indent = opts.Indent
	}

	ctx = logging.WithLogger(ctx, app.Logger())
	ctx = logging.WithOperation(ctx, "add")
	ctx = logging.WithSource(ctx, settings.SourcePath)
	ctx = logging.WithRoster(ctx, settings.RosterPath)
	logger := logging.FromContext(ctx)

	entries, err := source.ReadFile(settings.SourcePath, source.Columns{
		Username: settings.UsernameColumn,
		Name:     settings.NameColumn,
	})
	if err != nil {
		return err
	}
	logger.Debug().
		Int("rows", entries.Rows()).
		Int("usernames", entries.Len()).
		Msg("Read sign-ups")
	for _, username := range entries.Duplicates() {
		logger.Debug().Str("username", username).Msg("Username submitted more than once, keeping the last name")
	}

	users, err := roster.LoadFile(settings.RosterPath)
	if err != nil {
		return err
	}

	merged, result := reconcile.Reconcile(entries, users,
		reconcile.WithDryRun(opts.DryRun),
		reconcile.WithLogger(logger),
	)

	if opts.DryRun {
		return printSummary(out, output.DetectFormat(app.OutputFormat(), out), result)
	}

	if ctx.Err() != nil {
		return errors.ErrCanceled
	}
	if err := merged.SaveFile(settings.RosterPath, settings.Indent); err != nil {
		return err
	}
	logger.Info().
		Int("added", len(result.Added)).
		Int("total", len(merged)).
		Msg("Roster written")

	_, err = fmt.Fprintln(out, constants.ConfirmationMessage)
	return err
}

// Summary is the structured dry-run report.
type Summary struct {
	DryRun         bool       `json:"dry_run" yaml:"dry_run"`
	Added          []string   `json:"added" yaml:"added"`
	Skipped        []string   `json:"skipped" yaml:"skipped"`
	NameMismatches []Mismatch `json:"name_mismatches" yaml:"name_mismatches"`
	Duplicates     []string   `json:"duplicates" yaml:"duplicates"`
}

// Mismatch is a username whose roster name differs from the form.
type Mismatch struct {
	Username string `json:"username" yaml:"username"`
	Stored   string `json:"stored" yaml:"stored"`
	Source   string `json:"source" yaml:"source"`
}

// NewSummary converts a reconciliation result into its report form.
func NewSummary(result *reconcile.Result) Summary {
	s := Summary{
		DryRun:         result.Metadata.DryRun,
		Added:          result.Added,
		Skipped:        result.Skipped,
		NameMismatches: make([]Mismatch, 0, len(result.NameMismatches)),
		Duplicates:     result.Duplicates,
	}
	if s.Duplicates == nil {
		s.Duplicates = []string{}
	}
	for _, m := range result.NameMismatches {
		s.NameMismatches = append(s.NameMismatches, Mismatch(m))
	}
	return s
}

func printSummary(w io.Writer, format output.Format, result *reconcile.Result) error {
	switch format {
	case output.FormatJSON, output.FormatYAML:
		return output.NewFormatter(format).Format(w, NewSummary(result))
	}

	if _, err := fmt.Fprintln(w, result.Summary()); err != nil {
		return err
	}
	if !result.HasChanges() {
		return nil
	}
	return output.NewFormatter(format).Format(w, table.UsernamesToTableData("Would add", "+", result.Added))
}
