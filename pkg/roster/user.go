package roster

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/agentstation/roster/pkg/errors"
)

// Field names of a roster record, in the order they are written.
const (
	FieldName                = "name"
	FieldUsername            = "username"
	FieldElo                 = "elo"
	FieldPrevElo             = "prev_elo"
	FieldPrevProblemCount    = "prev_problem_count"
	FieldCurrentProblemDelta = "current_problem_delta"
	FieldProblemsEachWeek    = "problems_each_week"
	FieldCurrentProblemCount = "current_problem_count"
)

var fieldOrder = []string{
	FieldName,
	FieldUsername,
	FieldElo,
	FieldPrevElo,
	FieldPrevProblemCount,
	FieldCurrentProblemDelta,
	FieldProblemsEachWeek,
	FieldCurrentProblemCount,
}

// User is one roster member.
//
// The weekly stats job owns every field except name and username. Fields
// this package does not know about, and known fields whose stored value
// does not fit the Go type (a fractional elo, a null), are kept verbatim
// in Extra so a load/save cycle never loses them. A known field present
// in Extra takes precedence over the typed value when written, and a known
// field absent from a loaded record stays absent when it is written back.
type User struct {
	Name                string
	Username            string
	Elo                 int
	PrevElo             int
	PrevProblemCount    int
	CurrentProblemDelta int
	ProblemsEachWeek    []json.RawMessage
	CurrentProblemCount int

	Extra map[string]json.RawMessage

	missing []string
	order   []string
}

// NewUser returns a freshly enrolled member with every tracking field at
// its default.
func NewUser(username, name string) User {
	return User{
		Name:             name,
		Username:         username,
		ProblemsEachWeek: []json.RawMessage{},
	}
}

// EloChange is the rating movement since the previous contest.
func (u User) EloChange() int {
	return u.Elo - u.PrevElo
}

// MarshalJSON writes a loaded record with its keys in the order they were
// read. Fields added since, and every field of a record built in code,
// follow in the fixed field order and then the extra fields sorted by key.
func (u User) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, key := range u.keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := appendJSON(&buf, key); err != nil {
			return nil, err
		}
		buf.WriteByte(':')

		var value any = u.value(key)
		if raw, ok := u.Extra[key]; ok {
			value = raw
		}
		if err := appendJSON(&buf, value); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (u User) keys() []string {
	keys := make([]string, 0, len(fieldOrder)+len(u.Extra))
	seen := make(map[string]bool, cap(keys))
	add := func(key string) {
		if !seen[key] && u.Has(key) {
			seen[key] = true
			keys = append(keys, key)
		}
	}

	for _, key := range u.order {
		add(key)
	}
	for _, key := range fieldOrder {
		add(key)
	}
	extra := make([]string, 0, len(u.Extra))
	for key := range u.Extra {
		extra = append(extra, key)
	}
	sort.Strings(extra)
	for _, key := range extra {
		add(key)
	}
	return keys
}

// UnmarshalJSON reads a record. The record must be an object carrying a
// string username.
func (u *User) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if _, ok := raw[FieldUsername]; !ok {
		return errors.NewValidationError(FieldUsername, nil, "record has no username")
	}

	order, err := objectKeys(data)
	if err != nil {
		return err
	}

	*u = User{order: order}
	for key, value := range raw {
		var ok bool
		switch key {
		case FieldName:
			ok = decode(value, &u.Name)
		case FieldUsername:
			if ok = decode(value, &u.Username); !ok {
				return errors.NewValidationError(FieldUsername, string(value), "username must be a string")
			}
		case FieldElo:
			ok = decode(value, &u.Elo)
		case FieldPrevElo:
			ok = decode(value, &u.PrevElo)
		case FieldPrevProblemCount:
			ok = decode(value, &u.PrevProblemCount)
		case FieldCurrentProblemDelta:
			ok = decode(value, &u.CurrentProblemDelta)
		case FieldProblemsEachWeek:
			ok = decode(value, &u.ProblemsEachWeek)
		case FieldCurrentProblemCount:
			ok = decode(value, &u.CurrentProblemCount)
		}
		if !ok {
			if u.Extra == nil {
				u.Extra = make(map[string]json.RawMessage)
			}
			u.Extra[key] = value
		}
	}
	for _, key := range fieldOrder {
		if _, ok := raw[key]; !ok {
			u.missing = append(u.missing, key)
		}
	}
	return nil
}

// Has reports whether the record carries the named field. Records built in
// code carry every known field; loaded records carry what the file had.
func (u User) Has(key string) bool {
	if _, ok := u.Extra[key]; ok {
		return true
	}
	if !isKnownField(key) {
		return false
	}
	for _, m := range u.missing {
		if m == key {
			return false
		}
	}
	return true
}

func (u User) value(key string) any {
	switch key {
	case FieldName:
		return u.Name
	case FieldUsername:
		return u.Username
	case FieldElo:
		return u.Elo
	case FieldPrevElo:
		return u.PrevElo
	case FieldPrevProblemCount:
		return u.PrevProblemCount
	case FieldCurrentProblemDelta:
		return u.CurrentProblemDelta
	case FieldProblemsEachWeek:
		if u.ProblemsEachWeek == nil {
			return []json.RawMessage{}
		}
		return u.ProblemsEachWeek
	case FieldCurrentProblemCount:
		return u.CurrentProblemCount
	}
	return nil
}

func isKnownField(key string) bool {
	for _, k := range fieldOrder {
		if k == key {
			return true
		}
	}
	return false
}

// objectKeys lists the keys of a JSON object in document order. A key
// repeated in the document keeps its first position.
func objectKeys(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	var keys []string
	seen := make(map[string]bool)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string)
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	return keys, nil
}

// decode stores raw into dst when it holds a non-null value of dst's type.
// dst is left untouched otherwise.
func decode[T any](raw json.RawMessage, dst *T) bool {
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return false
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	*dst = v
	return true
}

// appendJSON encodes v onto buf without HTML escaping or the encoder's
// trailing newline.
func appendJSON(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Truncate(buf.Len() - 1)
	return nil
}
