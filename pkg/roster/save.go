package roster

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/agentstation/roster/pkg/constants"
	"github.com/agentstation/roster/pkg/errors"
	"github.com/agentstation/roster/pkg/save"
)

// Write encodes the roster onto w as an indented JSON array followed by a
// newline. An indent of zero writes compact JSON.
func (r Roster) Write(w io.Writer, indent int) error {
	data, err := r.encode(indent)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return errors.WrapIO("write", "", err)
	}
	return nil
}

// SaveFile replaces the contents of path with the encoded roster.
func (r Roster) SaveFile(path string, indent int) error {
	return r.Save(save.WithPath(path), save.WithIndent(indent))
}

// Save writes the roster to the configured writer, or to the configured
// path when no writer is given. The file is truncated and rewritten in
// place.
func (r Roster) Save(opts ...save.Option) error {
	options := save.Defaults().Apply(opts...)

	if w := options.Writer(); w != nil {
		return r.Write(w, options.Indent())
	}
	if options.Path() == "" {
		return errors.NewValidationError("path", "", "no path or writer to save to")
	}

	// Encode before touching the file so an encoding failure leaves it intact.
	data, err := r.encode(options.Indent())
	if err != nil {
		return err
	}
	if err := os.WriteFile(options.Path(), data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", options.Path(), err)
	}
	return nil
}

func (r Roster) encode(indent int) ([]byte, error) {
	if r == nil {
		r = Roster{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", indent))
	}
	if err := enc.Encode(r); err != nil {
		return nil, errors.WrapResource("encode", "roster", "", err)
	}
	return buf.Bytes(), nil
}
