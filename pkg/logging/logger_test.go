package logging_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/agentstation/roster/pkg/logging"
)

func TestDefaultLogger(t *testing.T) {
	original := *logging.Default()
	originalLevel := zerolog.GlobalLevel()
	defer func() {
		logging.SetDefault(original)
		zerolog.SetGlobalLevel(originalLevel)
	}()

	buf := &bytes.Buffer{}
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	logging.SetDefault(zerolog.New(buf).Level(zerolog.DebugLevel))

	logging.Debug().Msg("debug message")
	logging.Info().Msg("info message")
	logging.Warn().Msg("warning message")
	logging.Error().Msg("error message")
	logging.Err(assert.AnError).Msg("err message")

	output := buf.String()
	for _, want := range []string{"debug message", "info message", "warning message", "error message", assert.AnError.Error()} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected %q in output, got: %s", want, output)
		}
	}
}

func TestNewLoggers(t *testing.T) {
	t.Run("New creates JSON logger", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.New(&buf)
		logger.Info().Msg("json test")

		assert.Contains(t, buf.String(), "json test")
		assert.Contains(t, buf.String(), `"level":"info"`)
	})

	t.Run("NewConsole does not panic", func(t *testing.T) {
		logger := logging.NewConsole()
		logger.Debug().Msg("console test")
	})

	t.Run("With adds fields to the default logger", func(t *testing.T) {
		original := *logging.Default()
		defer logging.SetDefault(original)

		var buf bytes.Buffer
		logging.SetDefault(zerolog.New(&buf).Level(zerolog.InfoLevel))

		child := logging.With().Str("component", "reconcile").Logger()
		child.Info().Msg("with context")

		assert.Contains(t, buf.String(), `"component":"reconcile"`)
	})
}

func TestTestLogger(t *testing.T) {
	tl := logging.NewTestLogger(t)

	tl.Logger.Info().Msg("message 1")
	tl.Logger.Error().Err(nil).Msg("message 2")

	tl.AssertContains(t, "message 1")
	tl.AssertContains(t, "message 2")
	tl.AssertNotContains(t, "message 3")
	assert.Equal(t, 2, tl.Count())

	tl.Clear()
	assert.Equal(t, 0, tl.Count())
	assert.Empty(t, tl.Lines())
	assert.NotNil(t, logging.NewNopLogger())
}
