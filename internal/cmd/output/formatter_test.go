package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/roster/pkg/errors"
	"github.com/agentstation/roster/pkg/roster"
)

func sampleStandings() roster.Roster {
	alice := roster.NewUser("alice", "Alice <A>")
	alice.Elo, alice.PrevElo, alice.CurrentProblemDelta = 1520, 1500, 4
	bob := roster.NewUser("bob", "Bob")
	return roster.Roster{alice, bob}
}

func TestParseFormat(t *testing.T) {
	for _, in := range []string{"table", "JSON", "yaml", "wide", ""} {
		f, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, Format(strings.ToLower(in)), f)
	}

	_, err := ParseFormat("xml")
	assert.True(t, errors.IsValidationError(err))
}

func TestDetectFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, FormatYAML, DetectFormat("YAML", &buf))
	assert.Equal(t, FormatTable, DetectFormat("", &buf))
}

func TestFormatStandingsJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatStandings(&buf, sampleStandings(), FormatJSON))

	out := buf.String()
	assert.Contains(t, out, `"rank": 1`)
	assert.Contains(t, out, `"name": "Alice <A>"`)
	assert.Contains(t, out, `"elo_change": 20`)
	assert.Contains(t, out, `"username": "bob"`)
}

func TestFormatStandingsYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatStandings(&buf, sampleStandings(), FormatYAML))

	out := buf.String()
	assert.Contains(t, out, "- rank: 1\n")
	assert.Contains(t, out, "username: alice\n")
	assert.Contains(t, out, "current_problem_delta: 4\n")
}

func TestFormatStandingsTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatStandings(&buf, sampleStandings(), FormatTable))

	// Header case depends on the table renderer's auto-formatting.
	out := strings.ToLower(buf.String())
	assert.Contains(t, out, "username")
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "1,520")
	assert.Contains(t, out, "+20")
	assert.NotContains(t, out, "prev problems")

	buf.Reset()
	require.NoError(t, FormatStandings(&buf, sampleStandings(), FormatWide))
	assert.Contains(t, strings.ToLower(buf.String()), "prev problems")
}

func TestTableFormatterReflection(t *testing.T) {
	type issue struct {
		Severity string `json:"severity"`
		Subject  string `json:"subject_name"`
		hidden   string
	}

	var buf bytes.Buffer
	items := []issue{{Severity: "error", Subject: "alice", hidden: "x"}}
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, items))

	out := strings.ToLower(buf.String())
	assert.Contains(t, out, "subject name")
	assert.Contains(t, out, "alice")
	assert.NotContains(t, out, "hidden")
}
