package roster

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/agentstation/roster/pkg/errors"
)

// LoadFile reads the roster stored at path.
func LoadFile(path string) (Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return parse(data, path)
}

// Load reads a whole roster document from r.
func Load(r io.Reader) (Roster, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.WrapIO("read", "", err)
	}
	return parse(data, "")
}

func parse(data []byte, file string) (Roster, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, &errors.ParseError{
			Format:  "json",
			File:    file,
			Message: "roster must be a JSON array",
		}
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, jsonError(data, file, err)
	}

	r := make(Roster, 0, len(records))
	for i, rec := range records {
		var u User
		if err := json.Unmarshal(rec, &u); err != nil {
			return nil, &errors.ParseError{
				Format:  "json",
				File:    file,
				Message: fmt.Sprintf("record %d: %v", i, err),
				Err:     err,
			}
		}
		r = append(r, u)
	}
	return r, nil
}

// jsonError converts a decoding failure into a ParseError, resolving the
// byte offset of syntax errors to a line and column.
func jsonError(data []byte, file string, err error) error {
	pe := errors.NewParseError("json", file, err.Error(), err)

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		pe.Line, pe.Column = position(data, syntaxErr.Offset)
	}
	return pe
}

func position(data []byte, offset int64) (line, col int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	line, col = 1, 1
	for _, b := range data[:offset] {
		if b == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}
