package table

import (
	"strconv"

	"github.com/agentstation/roster/pkg/roster"
)

// StandingsToTableData converts ranked users to table format. Ranks are
// taken from the order of users. Wide output adds the problem counters.
func StandingsToTableData(users roster.Roster, wide bool) Data {
	headers := []string{"#", "Name", "Username", "Elo", "Change", "Delta"}
	align := []Align{AlignRight, AlignLeft, AlignLeft, AlignRight, AlignRight, AlignRight}
	if wide {
		headers = append(headers, "Problems", "Prev Problems", "Weeks")
		align = append(align, AlignRight, AlignRight, AlignRight)
	}

	rows := make([][]string, 0, len(users))
	for i, u := range users {
		row := []string{
			strconv.Itoa(i + 1),
			orDash(u.Name),
			orDash(u.Username),
			FormatNumber(u.Elo),
			FormatChange(u.EloChange()),
			FormatChange(u.CurrentProblemDelta),
		}
		if wide {
			row = append(row,
				FormatNumber(u.CurrentProblemCount),
				FormatNumber(u.PrevProblemCount),
				strconv.Itoa(len(u.ProblemsEachWeek)),
			)
		}
		rows = append(rows, row)
	}

	return Data{
		Headers:         headers,
		Rows:            rows,
		ColumnAlignment: align,
	}
}

// UsernamesToTableData lists usernames with a marker column, used for
// merge summaries.
func UsernamesToTableData(header string, marker string, usernames []string) Data {
	rows := make([][]string, 0, len(usernames))
	for _, u := range usernames {
		rows = append(rows, []string{marker, orDash(u)})
	}
	return Data{
		Headers:         []string{"", header},
		Rows:            rows,
		ColumnAlignment: []Align{AlignCenter, AlignLeft},
	}
}
