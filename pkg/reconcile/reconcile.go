// Package reconcile merges sign-up entries into a roster.
//
// Reconciliation is append-only: usernames missing from the roster are
// added as new members with default tracking fields, and every existing
// record is left exactly as it was, even when the sign-up carries a
// different name. Running it twice with the same input adds nothing the
// second time.
package reconcile

import (
	"time"

	"github.com/agentstation/roster/pkg/roster"
	"github.com/agentstation/roster/pkg/source"
)

// Reconcile appends a new member to dest for each username in entries that
// dest does not already hold, in entries order. It performs no I/O.
//
// The returned roster shares its backing array with dest when capacity
// allows, so callers should use the returned value.
func Reconcile(entries *source.Entries, dest roster.Roster, opts ...Option) (roster.Roster, *Result) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	log := o.logger

	result := &Result{
		Added:      []string{},
		Skipped:    []string{},
		Duplicates: dest.Duplicates(),
		Metadata: ResultMetadata{
			StartTime:  time.Now(),
			RosterSize: len(dest),
			DryRun:     o.dryRun,
		},
	}
	for _, username := range result.Duplicates {
		log.Warn().Str("username", username).Msg("Roster already holds this username more than once")
	}

	existing := dest.Usernames()

	if entries != nil {
		result.Metadata.SourceRows = entries.Len()
		entries.Each(func(username, name string) {
			if _, ok := existing[username]; ok {
				result.Skipped = append(result.Skipped, username)
				if stored, err := dest.Find(username); err == nil && stored.Name != name {
					result.NameMismatches = append(result.NameMismatches, NameMismatch{
						Username: username,
						Stored:   stored.Name,
						Source:   name,
					})
					log.Warn().
						Str("username", username).
						Str("stored", stored.Name).
						Str("source", name).
						Msg("Name differs from roster, keeping stored name")
				} else {
					log.Debug().Str("username", username).Msg("Already on roster")
				}
				return
			}

			if username == "" {
				log.Warn().Str("name", name).Msg("Adding user with empty username")
			}
			dest = append(dest, roster.NewUser(username, name))
			existing[username] = struct{}{}
			result.Added = append(result.Added, username)
			log.Info().Str("username", username).Str("name", name).Msg("Added user")
		})
	}

	result.Metadata.EndTime = time.Now()
	result.Metadata.Duration = result.Metadata.EndTime.Sub(result.Metadata.StartTime)

	log.Debug().
		Int("added", len(result.Added)).
		Int("skipped", len(result.Skipped)).
		Dur("duration", result.Metadata.Duration).
		Bool("dry_run", o.dryRun).
		Msg("Reconciliation finished")

	return dest, result
}
