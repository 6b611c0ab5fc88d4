package source

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/roster/pkg/errors"
)

const formHeader = "Timestamp,What is your name,What is your leetcode username\n"

func TestRead(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantKeys  []string
		wantNames map[string]string
	}{
		{
			name:      "basic rows",
			input:     formHeader + "1,Bob R.,bob\n2,Carol T.,carol\n",
			wantKeys:  []string{"bob", "carol"},
			wantNames: map[string]string{"bob": "Bob R.", "carol": "Carol T."},
		},
		{
			name:      "username trimmed, name verbatim",
			input:     formHeader + "1,  Dana  , \tdana \n",
			wantKeys:  []string{"dana"},
			wantNames: map[string]string{"dana": "  Dana  "},
		},
		{
			name:      "trim-equal duplicates keep first position and last name",
			input:     formHeader + "1,Alice A,\" alice \"\n2,Bob,bob\n3,Alice B,alice\n",
			wantKeys:  []string{"alice", "bob"},
			wantNames: map[string]string{"alice": "Alice B", "bob": "Bob"},
		},
		{
			name:      "quoted fields with commas",
			input:     formHeader + "1,\"Smith, Jane\",jsmith\n",
			wantKeys:  []string{"jsmith"},
			wantNames: map[string]string{"jsmith": "Smith, Jane"},
		},
		{
			name:      "stray quotes are kept literally",
			input:     formHeader + "1,Bob \"The Builder\" Smith,bob\n",
			wantKeys:  []string{"bob"},
			wantNames: map[string]string{"bob": `Bob "The Builder" Smith`},
		},
		{
			name:      "header only",
			input:     formHeader,
			wantKeys:  []string{},
			wantNames: map[string]string{},
		},
		{
			name:      "empty input",
			input:     "",
			wantKeys:  []string{},
			wantNames: map[string]string{},
		},
		{
			name:      "blank lines are skipped",
			input:     formHeader + "\n1,Eve,eve\n\n",
			wantKeys:  []string{"eve"},
			wantNames: map[string]string{"eve": "Eve"},
		},
		{
			name:      "extra trailing cells are ignored",
			input:     formHeader + "1,Finn,finn,extra,cells\n",
			wantKeys:  []string{"finn"},
			wantNames: map[string]string{"finn": "Finn"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := Read(strings.NewReader(tt.input), DefaultColumns())
			require.NoError(t, err)

			assert.Equal(t, tt.wantKeys, entries.Keys())
			for username, want := range tt.wantNames {
				got, ok := entries.Get(username)
				assert.True(t, ok, "missing %q", username)
				assert.Equal(t, want, got)
			}
		})
	}
}

func TestReadByteOrderMarks(t *testing.T) {
	t.Run("utf-8 bom", func(t *testing.T) {
		input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("What is your leetcode username,What is your name\nbob,Bob\n")...)
		entries, err := Read(bytes.NewReader(input), DefaultColumns())
		require.NoError(t, err)
		assert.Equal(t, []string{"bob"}, entries.Keys())
	})

	t.Run("utf-16le bom", func(t *testing.T) {
		text := "What is your leetcode username,What is your name\nzoë,Zoë\n"
		input := []byte{0xFF, 0xFE}
		for _, r := range text {
			input = append(input, byte(r), byte(r>>8))
		}
		entries, err := Read(bytes.NewReader(input), DefaultColumns())
		require.NoError(t, err)
		name, ok := entries.Get("zoë")
		require.True(t, ok)
		assert.Equal(t, "Zoë", name)
	})
}

func TestReadErrors(t *testing.T) {
	t.Run("header missing username column", func(t *testing.T) {
		_, err := Read(strings.NewReader("What is your name,username\nBob,bob\n"), DefaultColumns())
		require.Error(t, err)

		var colErr *errors.ColumnError
		require.ErrorAs(t, err, &colErr)
		assert.Equal(t, "What is your leetcode username", colErr.Column)
		assert.Equal(t, 0, colErr.Row)
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("header match is case-sensitive", func(t *testing.T) {
		_, err := Read(strings.NewReader("what is your leetcode username,What is your name\n"), DefaultColumns())
		var colErr *errors.ColumnError
		require.ErrorAs(t, err, &colErr)
	})

	t.Run("header missing name column", func(t *testing.T) {
		_, err := Read(strings.NewReader("What is your leetcode username\nbob\n"), DefaultColumns())
		var colErr *errors.ColumnError
		require.ErrorAs(t, err, &colErr)
		assert.Equal(t, "What is your name", colErr.Column)
	})

	t.Run("short row", func(t *testing.T) {
		_, err := Read(strings.NewReader(formHeader+"1,Bob,bob\n2,Carol\n"), DefaultColumns())
		var colErr *errors.ColumnError
		require.ErrorAs(t, err, &colErr)
		assert.Equal(t, 2, colErr.Row)
		assert.Equal(t, "What is your leetcode username", colErr.Column)
	})

	t.Run("read failure", func(t *testing.T) {
		boom := errors.New("disk gone")
		r := io.MultiReader(strings.NewReader(formHeader), iotest.ErrReader(boom))
		_, err := Read(r, DefaultColumns())
		var ioErr *errors.IOError
		require.ErrorAs(t, err, &ioErr)
		assert.Equal(t, "read", ioErr.Operation)
		assert.ErrorIs(t, err, boom)
	})
}

func TestReadFile(t *testing.T) {
	t.Run("reads from disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "users.csv")
		require.NoError(t, os.WriteFile(path, []byte(formHeader+"1,Bob,bob\n"), 0o644))

		entries, err := ReadFile(path, DefaultColumns())
		require.NoError(t, err)
		assert.Equal(t, 1, entries.Len())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadFile(filepath.Join(t.TempDir(), "nope.csv"), DefaultColumns())
		var ioErr *errors.IOError
		require.ErrorAs(t, err, &ioErr)
		assert.Equal(t, "open", ioErr.Operation)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("file path is reported in column errors", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "users.csv")
		require.NoError(t, os.WriteFile(path, []byte("a,b\n1,2\n"), 0o644))

		_, err := ReadFile(path, DefaultColumns())
		require.Error(t, err)
		assert.Contains(t, err.Error(), path)
	})
}

func TestReadCustomColumns(t *testing.T) {
	cols := Columns{Username: "handle", Name: "full name"}
	entries, err := Read(strings.NewReader("full name,handle,handle\nA,old,new\n"), cols)
	require.NoError(t, err)
	assert.Equal(t, []string{"new"}, entries.Keys())
}
