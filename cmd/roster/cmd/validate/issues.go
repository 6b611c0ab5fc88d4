package validate

import (
	"fmt"

	"github.com/agentstation/roster/pkg/roster"
	"github.com/agentstation/roster/pkg/source"
)

// Severity of an Issue.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Issue is one finding about the roster or the form export.
type Issue struct {
	Severity string `json:"severity" yaml:"severity"`
	File     string `json:"file" yaml:"file"`
	Subject  string `json:"subject" yaml:"subject"`
	Message  string `json:"message" yaml:"message"`
}

// CheckRoster reports duplicate and empty usernames as errors, and known
// fields that are absent or hold an unexpected value as warnings.
func CheckRoster(users roster.Roster, path string) []Issue {
	var issues []Issue

	for _, username := range users.Duplicates() {
		count := 0
		for _, u := range users {
			if u.Username == username {
				count++
			}
		}
		issues = append(issues, Issue{
			Severity: SeverityError,
			File:     path,
			Subject:  username,
			Message:  fmt.Sprintf("username appears %d times", count),
		})
	}

	for i, u := range users {
		subject := u.Username
		if subject == "" {
			subject = fmt.Sprintf("record %d", i)
			issues = append(issues, Issue{
				Severity: SeverityError,
				File:     path,
				Subject:  subject,
				Message:  "empty username",
			})
		}

		for _, field := range []string{
			roster.FieldName,
			roster.FieldElo,
			roster.FieldPrevElo,
			roster.FieldPrevProblemCount,
			roster.FieldCurrentProblemDelta,
			roster.FieldProblemsEachWeek,
			roster.FieldCurrentProblemCount,
		} {
			if !u.Has(field) {
				issues = append(issues, Issue{
					Severity: SeverityWarning,
					File:     path,
					Subject:  subject,
					Message:  fmt.Sprintf("missing field %s", field),
				})
				continue
			}
			if raw, ok := u.Extra[field]; ok {
				issues = append(issues, Issue{
					Severity: SeverityWarning,
					File:     path,
					Subject:  subject,
					Message:  fmt.Sprintf("field %s has unexpected value %s, kept as is", field, raw),
				})
			}
		}
	}

	return issues
}

// CheckSource reports usernames submitted more than once and rows with an
// empty username. Neither stops a merge.
func CheckSource(entries *source.Entries, path string) []Issue {
	var issues []Issue

	for _, username := range entries.Duplicates() {
		name, _ := entries.Get(username)
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			File:     path,
			Subject:  username,
			Message:  fmt.Sprintf("submitted more than once, %q will be used", name),
		})
	}

	if _, ok := entries.Get(""); ok {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			File:     path,
			Subject:  "(empty)",
			Message:  "row with an empty username would be added as is",
		})
	}

	return issues
}

func countErrors(issues []Issue) int {
	n := 0
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			n++
		}
	}
	return n
}
