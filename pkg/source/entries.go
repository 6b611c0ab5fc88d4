package source

// Entries maps usernames to display names while remembering the order in
// which each username was first seen. Setting an existing username
// replaces its name but keeps its original position.
type Entries struct {
	keys   []string
	values map[string]string
	seen   map[string]int
	rows   int
}

// NewEntries returns an empty Entries.
func NewEntries() *Entries {
	return &Entries{
		values: make(map[string]string),
		seen:   make(map[string]int),
	}
}

// Set records name under username. Last write wins for the value.
func (e *Entries) Set(username, name string) {
	if _, ok := e.values[username]; !ok {
		e.keys = append(e.keys, username)
	}
	e.values[username] = name
	e.seen[username]++
	e.rows++
}

// Get returns the name stored for username.
func (e *Entries) Get(username string) (string, bool) {
	name, ok := e.values[username]
	return name, ok
}

// Len returns the number of distinct usernames.
func (e *Entries) Len() int {
	return len(e.keys)
}

// Rows returns the number of Set calls, i.e. data rows consumed.
func (e *Entries) Rows() int {
	return e.rows
}

// Keys returns the usernames in first-seen order.
func (e *Entries) Keys() []string {
	keys := make([]string, len(e.keys))
	copy(keys, e.keys)
	return keys
}

// Each calls fn for every entry in first-seen order.
func (e *Entries) Each(fn func(username, name string)) {
	for _, k := range e.keys {
		fn(k, e.values[k])
	}
}

// Duplicates returns the usernames that appeared on more than one row,
// in first-seen order.
func (e *Entries) Duplicates() []string {
	var dups []string
	for _, k := range e.keys {
		if e.seen[k] > 1 {
			dups = append(dups, k)
		}
	}
	return dups
}
