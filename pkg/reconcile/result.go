package reconcile

import (
	"fmt"
	"strings"
	"time"
)

// Result represents the outcome of a reconciliation
type Result struct {
	// Added lists usernames appended to the roster, in append order
	Added []string

	// Skipped lists usernames already on the roster
	Skipped []string

	// NameMismatches lists skipped usernames whose stored name differs
	// from the name in the source. They are reported, never applied.
	NameMismatches []NameMismatch

	// Duplicates lists usernames the roster already held more than once
	Duplicates []string

	// Metadata about the reconciliation
	Metadata ResultMetadata
}

// NameMismatch pairs the stored and submitted names of one username.
type NameMismatch struct {
	Username string
	Stored   string
	Source   string
}

// ResultMetadata contains metadata about the reconciliation process
type ResultMetadata struct {
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	// SourceRows is the number of distinct usernames read from the source
	SourceRows int

	// RosterSize is the number of records before reconciliation
	RosterSize int

	// DryRun indicates if this was a dry-run
	DryRun bool
}

// HasChanges returns true if any user was added
func (r *Result) HasChanges() bool {
	return len(r.Added) > 0
}

// HasWarnings returns true if there is anything an operator should look at
func (r *Result) HasWarnings() bool {
	return len(r.NameMismatches) > 0 || len(r.Duplicates) > 0
}

// Summary returns a one-line human-readable summary of the result
func (r *Result) Summary() string {
	prefix := "Reconciliation completed."
	if r.Metadata.DryRun {
		prefix = "Dry run completed."
	}
	if !r.HasChanges() {
		return fmt.Sprintf("%s No new users (%d already present).", prefix, len(r.Skipped))
	}
	return fmt.Sprintf("%s %d added, %d already present.", prefix, len(r.Added), len(r.Skipped))
}

// Report generates a detailed report of the reconciliation
func (r *Result) Report() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", r.Summary())
	fmt.Fprintf(&b, "Duration: %s\n", r.Metadata.Duration)
	fmt.Fprintf(&b, "Source usernames: %d\n", r.Metadata.SourceRows)
	fmt.Fprintf(&b, "Roster size: %d -> %d\n", r.Metadata.RosterSize, r.Metadata.RosterSize+len(r.Added))

	if len(r.Added) > 0 {
		fmt.Fprintf(&b, "\nAdded (%d):\n", len(r.Added))
		for _, u := range r.Added {
			fmt.Fprintf(&b, "  + %s\n", u)
		}
	}

	if len(r.NameMismatches) > 0 {
		fmt.Fprintf(&b, "\nName differs from roster (%d, not updated):\n", len(r.NameMismatches))
		for _, m := range r.NameMismatches {
			fmt.Fprintf(&b, "  ~ %s: %q vs %q\n", m.Username, m.Stored, m.Source)
		}
	}

	if len(r.Duplicates) > 0 {
		fmt.Fprintf(&b, "\nDuplicate usernames already on roster (%d):\n", len(r.Duplicates))
		for _, u := range r.Duplicates {
			fmt.Fprintf(&b, "  ! %s\n", u)
		}
	}

	return b.String()
}
