package playlists

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaylist_RemoveAt(t *testing.T) {
	p := NewPlaylist("mix", "a", "b", "c")

	require.NoError(t, p.RemoveAt(1))
	assert.Equal(t, []string{"a", "c"}, p.IDs())
	assert.Error(t, p.RemoveAt(2))
	assert.Error(t, p.RemoveAt(-1))
}

func TestPlaylist_RemoveAllDuplicates(t *testing.T) {
	p := NewPlaylist("mix", "x", "a", "x", "b", "x")

	assert.Equal(t, 3, p.RemoveAll("x"))
	assert.Equal(t, []string{"a", "b"}, p.IDs())
	assert.False(t, p.Contains("x"))
}

func TestPlaylist_JSONIsBareArray(t *testing.T) {
	p := NewPlaylist("mix")
	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(out))

	require.NoError(t, json.Unmarshal([]byte(`["a","a","b"]`), p))
	assert.Equal(t, []string{"a", "a", "b"}, p.IDs())
	assert.Equal(t, "mix", p.Name())
}

func TestRegistry_CreateUnique(t *testing.T) {
	r := NewRegistry()
	_, err := r.Create("rock")
	require.NoError(t, err)

	_, err = r.Create("rock")
	assert.True(t, errors.Is(err, ErrExists))
}

func TestRegistry_ValidateName(t *testing.T) {
	for _, name := range []string{"", "  ", ".", "..", "a/b", `a\b`, "mix.json"} {
		assert.True(t, errors.Is(ValidateName(name), ErrInvalidName), "name %q", name)
	}
	assert.NoError(t, ValidateName("road trip"))
	assert.NoError(t, ValidateName("mix.2024"))
}

func TestRegistry_EnsureDefault(t *testing.T) {
	r := NewRegistry()
	p := r.EnsureDefault()
	assert.Equal(t, DefaultName, p.Name())
	assert.Same(t, p, r.EnsureDefault())
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_PurgeKeepsOtherOrder(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Add(NewPlaylist("one", "a", "x", "b")))
	require.NoError(t, r.Add(NewPlaylist("two", "x", "x", "c")))
	require.NoError(t, r.Add(NewPlaylist("three", "d")))

	assert.Equal(t, 3, r.Purge("x"))

	one, _ := r.Get("one")
	two, _ := r.Get("two")
	three, _ := r.Get("three")
	assert.Equal(t, []string{"a", "b"}, one.IDs())
	assert.Equal(t, []string{"c"}, two.IDs())
	assert.Equal(t, []string{"d"}, three.IDs())
	assert.Equal(t, []string{"one", "two", "three"}, r.Names())
}

func TestRegistry_Referenced(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Add(NewPlaylist("one", "a", "b")))
	require.NoError(t, r.Add(NewPlaylist("two", "b", "c")))

	assert.Equal(t, map[string]bool{"a": true, "b": true, "c": true}, r.Referenced())
}
