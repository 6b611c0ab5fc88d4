package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntries(t *testing.T) {
	e := NewEntries()
	e.Set("bob", "Bob")
	e.Set("carol", "Carol")
	e.Set("bob", "Robert")

	assert.Equal(t, 2, e.Len())
	assert.Equal(t, 3, e.Rows())
	assert.Equal(t, []string{"bob", "carol"}, e.Keys())
	assert.Equal(t, []string{"bob"}, e.Duplicates())

	name, ok := e.Get("bob")
	assert.True(t, ok)
	assert.Equal(t, "Robert", name)

	_, ok = e.Get("dave")
	assert.False(t, ok)
}

func TestEntriesKeysIsACopy(t *testing.T) {
	e := NewEntries()
	e.Set("bob", "Bob")

	keys := e.Keys()
	keys[0] = "mallory"

	assert.Equal(t, []string{"bob"}, e.Keys())
}

func TestEntriesEach(t *testing.T) {
	e := NewEntries()
	e.Set("zed", "Z")
	e.Set("amy", "A")
	e.Set("zed", "Zed")

	var got [][2]string
	e.Each(func(username, name string) {
		got = append(got, [2]string{username, name})
	})

	assert.Equal(t, [][2]string{{"zed", "Zed"}, {"amy", "A"}}, got)
}

func TestEntriesEmptyUsername(t *testing.T) {
	e := NewEntries()
	e.Set("", "Anonymous")

	name, ok := e.Get("")
	assert.True(t, ok)
	assert.Equal(t, "Anonymous", name)
	assert.Empty(t, e.Duplicates())
}
