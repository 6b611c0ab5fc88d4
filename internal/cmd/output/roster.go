package output

import (
	"io"

	"github.com/agentstation/roster/internal/cmd/table"
	"github.com/agentstation/roster/pkg/roster"
)

// Standing is the structured view of one ranked member used for json and
// yaml output.
type Standing struct {
	Rank                int    `json:"rank" yaml:"rank"`
	Name                string `json:"name" yaml:"name"`
	Username            string `json:"username" yaml:"username"`
	Elo                 int    `json:"elo" yaml:"elo"`
	EloChange           int    `json:"elo_change" yaml:"elo_change"`
	CurrentProblemDelta int    `json:"current_problem_delta" yaml:"current_problem_delta"`
	CurrentProblemCount int    `json:"current_problem_count" yaml:"current_problem_count"`
}

// Standings converts ranked users to their structured view.
func Standings(users roster.Roster) []Standing {
	out := make([]Standing, 0, len(users))
	for i, u := range users {
		out = append(out, Standing{
			Rank:                i + 1,
			Name:                u.Name,
			Username:            u.Username,
			Elo:                 u.Elo,
			EloChange:           u.EloChange(),
			CurrentProblemDelta: u.CurrentProblemDelta,
			CurrentProblemCount: u.CurrentProblemCount,
		})
	}
	return out
}

// FormatStandings writes ranked users in the given format.
func FormatStandings(w io.Writer, users roster.Roster, format Format) error {
	formatter := NewFormatter(format)

	var outputData any
	switch format {
	case FormatTable, FormatWide, "":
		outputData = table.StandingsToTableData(users, format == FormatWide)
	default:
		outputData = Standings(users)
	}

	return formatter.Format(w, outputData)
}
