// Package source reads the sign-up form export: a CSV file with a header
// row, from which two designated columns are collected into an ordered
// username -> name mapping.
//
// Usernames are trimmed of surrounding whitespace, names are kept
// verbatim. When a username repeats, the later row's name wins.
package source

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/agentstation/roster/pkg/constants"
	"github.com/agentstation/roster/pkg/errors"
)

// Columns names the header cells holding the username and the name.
// Matching is exact and case-sensitive.
type Columns struct {
	Username string
	Name     string
}

// DefaultColumns returns the questions used by the sign-up form.
func DefaultColumns() Columns {
	return Columns{
		Username: constants.UsernameColumn,
		Name:     constants.NameColumn,
	}
}

// ReadFile opens path and reads it with Read. The file is closed before
// ReadFile returns.
func ReadFile(path string, cols Columns) (*Entries, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close() //nolint:errcheck // read-only handle

	return read(f, cols, path)
}

// Read parses CSV from r into Entries keyed by the trimmed username.
//
// An empty input yields empty Entries. Otherwise it fails with a
// *errors.ColumnError when the header lacks either column
// or a row is too short to contain one, with a *errors.ParseError when
// the CSV itself is malformed, and with a *errors.IOError when r fails.
func Read(r io.Reader, cols Columns) (*Entries, error) {
	return read(r, cols, "")
}

func read(r io.Reader, cols Columns, file string) (*Entries, error) {
	// A byte-order mark selects UTF-8 or UTF-16 and is stripped, otherwise
	// the input is taken as UTF-8. Spreadsheet exports often carry one.
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	// Answers may hold stray quotes ("Bob "The Builder" Smith"); they are
	// kept as literal text.
	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		// An empty export has no rows to merge.
		return NewEntries(), nil
	}
	if err != nil {
		return nil, parseError(file, err)
	}

	usernameIdx := columnIndex(header, cols.Username)
	if usernameIdx < 0 {
		return nil, errors.NewColumnError(cols.Username, file, 0)
	}
	nameIdx := columnIndex(header, cols.Name)
	if nameIdx < 0 {
		return nil, errors.NewColumnError(cols.Name, file, 0)
	}

	entries := NewEntries()
	row := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, parseError(file, err)
		}
		row++

		if usernameIdx >= len(record) {
			return nil, errors.NewColumnError(cols.Username, file, row)
		}
		if nameIdx >= len(record) {
			return nil, errors.NewColumnError(cols.Name, file, row)
		}

		entries.Set(strings.TrimSpace(record[usernameIdx]), record[nameIdx])
	}

	return entries, nil
}

// columnIndex returns the position of name in header. With repeated
// header cells the last one is used, as a header -> value map would.
func columnIndex(header []string, name string) int {
	idx := -1
	for i, h := range header {
		if h == name {
			idx = i
		}
	}
	return idx
}

func parseError(file string, err error) error {
	var csvErr *csv.ParseError
	if !errors.As(err, &csvErr) {
		return errors.WrapIO("read", file, err)
	}
	pe := errors.NewParseError("csv", file, csvErr.Err.Error(), err)
	pe.Line = csvErr.Line
	pe.Column = csvErr.Column
	return pe
}
