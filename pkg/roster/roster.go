// Package roster loads, queries and writes the leaderboard roster: a JSON
// array of member records consumed by the leaderboard front-end and kept
// up to date by the weekly stats job.
//
// Records are kept in file order and each loaded record keeps its key
// order. Writing a roster replaces the whole file; fields unknown to this
// package survive a load/save cycle, and a record nobody changed is
// written back as it was read when the file uses the same indent.
package roster

import (
	"sort"
	"strings"

	"github.com/agentstation/roster/pkg/errors"
)

// Roster is an ordered sequence of members.
type Roster []User

// Usernames returns the set of usernames present in the roster.
func (r Roster) Usernames() map[string]struct{} {
	set := make(map[string]struct{}, len(r))
	for _, u := range r {
		set[u.Username] = struct{}{}
	}
	return set
}

// Find returns the first member with the given username.
func (r Roster) Find(username string) (*User, error) {
	for i := range r {
		if r[i].Username == username {
			return &r[i], nil
		}
	}
	return nil, errors.NewNotFoundError("user", username)
}

// Duplicates returns the usernames held by more than one record, in the
// order their first record appears. The roster is not modified.
func (r Roster) Duplicates() []string {
	counts := make(map[string]int, len(r))
	var order []string
	for _, u := range r {
		if counts[u.Username] == 0 {
			order = append(order, u.Username)
		}
		counts[u.Username]++
	}

	var dups []string
	for _, name := range order {
		if counts[name] > 1 {
			dups = append(dups, name)
		}
	}
	return dups
}

// Standings returns a copy ordered the way the leaderboard shows it:
// weekly problem delta descending, then elo descending, then username.
func (r Roster) Standings() Roster {
	out := make(Roster, len(r))
	copy(out, r)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.CurrentProblemDelta != b.CurrentProblemDelta {
			return a.CurrentProblemDelta > b.CurrentProblemDelta
		}
		if a.Elo != b.Elo {
			return a.Elo > b.Elo
		}
		return a.Username < b.Username
	})
	return out
}

// Search returns the members whose username contains term, ignoring case.
// An empty term matches everyone.
func (r Roster) Search(term string) Roster {
	term = strings.ToLower(term)
	out := make(Roster, 0, len(r))
	for _, u := range r {
		if strings.Contains(strings.ToLower(u.Username), term) {
			out = append(out, u)
		}
	}
	return out
}
