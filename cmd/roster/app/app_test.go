package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/roster/pkg/constants"
	"github.com/agentstation/roster/pkg/errors"
	"github.com/agentstation/roster/pkg/roster"
)

const signups = "Timestamp,What is your name,What is your leetcode username\n" +
	"1,Alice,alice\n" +
	"2,Bob,  bob \n"

const existing = `[
    {
        "name": "Alice",
        "username": "alice",
        "elo": 1500,
        "prev_elo": 1490,
        "prev_problem_count": 10,
        "current_problem_delta": 4,
        "problems_each_week": [],
        "current_problem_count": 14
    }
]`

type harness struct {
	app        *App
	out        *bytes.Buffer
	errOut     *bytes.Buffer
	rosterPath string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := isolate(t)

	sourcePath := filepath.Join(dir, "users.csv")
	rosterPath := filepath.Join(dir, "users_by_elo.json")
	require.NoError(t, os.WriteFile(sourcePath, []byte(signups), 0o644))
	require.NoError(t, os.WriteFile(rosterPath, []byte(existing), 0o644))

	config := &Config{
		SourcePath:     sourcePath,
		RosterPath:     rosterPath,
		UsernameColumn: constants.UsernameColumn,
		NameColumn:     constants.NameColumn,
		Indent:         constants.DefaultIndent,
		LogFormat:      "json",
		LogOutput:      "discard",
	}

	h := &harness{out: &bytes.Buffer{}, errOut: &bytes.Buffer{}, rosterPath: rosterPath}
	app, err := New("1.2.3", "abc123", "2026-01-01", "test",
		WithConfig(config),
		WithOutput(h.out, h.errOut),
	)
	require.NoError(t, err)
	h.app = app
	return h
}

// TestApp_New verifies app initialization.
func TestApp_New(t *testing.T) {
	isolate(t)

	app, err := New("1.0.0", "abc123", "2024-01-01", "test")
	require.NoError(t, err)

	assert.Equal(t, "1.0.0", app.Version())
	assert.Equal(t, "abc123", app.Commit())
	assert.Equal(t, "2024-01-01", app.Date())
	assert.Equal(t, "test", app.BuiltBy())
	assert.NotNil(t, app.Logger())
	require.NotNil(t, app.Config())
	assert.Equal(t, constants.DefaultRosterPath, app.Settings().RosterPath)
	assert.Empty(t, app.OutputFormat())
}

// TestApp_WithConfigNil verifies a nil config is rejected.
func TestApp_WithConfigNil(t *testing.T) {
	isolate(t)

	_, err := New("1.0.0", "", "", "", WithConfig(nil))
	assert.True(t, errors.IsValidationError(err))
}

// TestExecute_DefaultRunsAdd verifies the bare command performs the merge.
func TestExecute_DefaultRunsAdd(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.app.Execute(context.Background(), []string{}))
	assert.Equal(t, constants.ConfirmationMessage+"\n", h.out.String())

	users, err := roster.LoadFile(h.rosterPath)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "bob", users[1].Username)
	assert.Equal(t, "Bob", users[1].Name)
	assert.Equal(t, 1500, users[0].Elo)
}

// TestExecute_Subcommands verifies each registered command runs through the root.
func TestExecute_Subcommands(t *testing.T) {
	t.Run("add", func(t *testing.T) {
		h := newHarness(t)
		require.NoError(t, h.app.Execute(context.Background(), []string{"add", "--indent", "2"}))

		data, err := os.ReadFile(h.rosterPath)
		require.NoError(t, err)
		assert.Contains(t, string(data), "\n  {\n")
	})

	t.Run("list json", func(t *testing.T) {
		h := newHarness(t)
		require.NoError(t, h.app.Execute(context.Background(), []string{"list", "-o", "json"}))

		var standings []map[string]any
		require.NoError(t, json.Unmarshal(h.out.Bytes(), &standings))
		require.Len(t, standings, 1)
		assert.Equal(t, "alice", standings[0]["username"])
		assert.Equal(t, "json", h.app.OutputFormat())
	})

	t.Run("validate", func(t *testing.T) {
		h := newHarness(t)
		require.NoError(t, h.app.Execute(context.Background(), []string{"validate"}))
		assert.Contains(t, h.out.String(), "Roster OK: 1 users")
	})

	t.Run("version", func(t *testing.T) {
		h := newHarness(t)
		require.NoError(t, h.app.Execute(context.Background(), []string{"version"}))
		assert.Equal(t, "roster 1.2.3\n", h.out.String())
	})

	t.Run("version verbose", func(t *testing.T) {
		h := newHarness(t)
		require.NoError(t, h.app.Execute(context.Background(), []string{"version", "-v"}))
		assert.Contains(t, h.out.String(), "commit:   abc123")
		assert.Contains(t, h.out.String(), "built by: test")
	})
}

// TestExecute_Errors verifies failures surface as errors, not output.
func TestExecute_Errors(t *testing.T) {
	t.Run("invalid format", func(t *testing.T) {
		h := newHarness(t)
		err := h.app.Execute(context.Background(), []string{"list", "-o", "xml"})
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
		assert.Contains(t, err.Error(), "must be one of")
		assert.Empty(t, h.out.String())
	})

	t.Run("invalid format from environment", func(t *testing.T) {
		h := newHarness(t)
		h.app.Config().Format = "xml"
		err := h.app.Execute(context.Background(), []string{"list"})
		var configErr *errors.ConfigError
		assert.ErrorAs(t, err, &configErr)
	})

	t.Run("unexpected argument", func(t *testing.T) {
		h := newHarness(t)
		assert.Error(t, h.app.Execute(context.Background(), []string{"alice"}))
	})

	t.Run("missing config file", func(t *testing.T) {
		h := newHarness(t)
		err := h.app.Execute(context.Background(), []string{"--config", "nope.yaml", "list"})
		var configErr *errors.ConfigError
		assert.ErrorAs(t, err, &configErr)
	})

	t.Run("missing roster leaves nothing behind", func(t *testing.T) {
		h := newHarness(t)
		require.NoError(t, os.Remove(h.rosterPath))

		err := h.app.Execute(context.Background(), []string{})
		var ioErr *errors.IOError
		assert.ErrorAs(t, err, &ioErr)
		assert.NoFileExists(t, h.rosterPath)
		assert.Empty(t, h.out.String())
	})
}

// TestExecute_ConfigFileFlag verifies --config replaces the loaded settings.
func TestExecute_ConfigFileFlag(t *testing.T) {
	h := newHarness(t)
	dir := filepath.Dir(h.rosterPath)

	other := filepath.Join(dir, "other.json")
	require.NoError(t, os.WriteFile(other, []byte("[]"), 0o644))
	cfg := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte(
		"source_path: "+filepath.Join(dir, "users.csv")+"\nroster_path: "+other+"\n"), 0o644))

	require.NoError(t, h.app.Execute(context.Background(), []string{"--config", cfg, "add"}))

	users, err := roster.LoadFile(other)
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, other, h.app.Settings().RosterPath)
}
