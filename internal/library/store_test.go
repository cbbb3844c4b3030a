package library

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func meta(id, title, artist string, secs int) Metadata {
	return Metadata{
		ID:              id,
		Title:           title,
		Artists:         []Artist{{Name: artist}},
		DurationSeconds: secs,
	}
}

func TestStore_PutKeepsInsertionOrder(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Put(meta("b", "B", "x", 10)))
	require.NoError(t, s.Put(meta("a", "A", "x", 10)))
	require.NoError(t, s.Put(meta("b", "B2", "x", 12)))

	assert.Equal(t, []string{"b", "a"}, s.IDs())
	m, ok := s.Get("b")
	require.True(t, ok)
	assert.Equal(t, "B2", m.Title, "Put replaces in full")
}

func TestStore_PutRejectsInvalid(t *testing.T) {
	s := NewStore()
	assert.Error(t, s.Put(Metadata{}))
	assert.Zero(t, s.Len())
}

func TestStore_Delete(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Put(meta("a", "A", "x", 1)))
	require.NoError(t, s.Put(meta("b", "B", "x", 1)))

	assert.True(t, s.Delete("a"))
	assert.False(t, s.Delete("a"))
	assert.Equal(t, []string{"b"}, s.IDs())
}

func TestStore_Lookup(t *testing.T) {
	s := NewStore()
	_, err := s.Lookup("missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestStore_JSONRoundTripKeepsOrder(t *testing.T) {
	raw := `{
		"zz": {"videoId": "zz", "title": "Last", "artists": [{"name": "X"}], "duration": "3:05", "duration_seconds": 185},
		"aa": {"title": "First", "artists": [], "duration_seconds": 61}
	}`

	s := NewStore()
	require.NoError(t, json.Unmarshal([]byte(raw), s))
	assert.Equal(t, []string{"zz", "aa"}, s.IDs())

	aa, ok := s.Get("aa")
	require.True(t, ok)
	assert.Equal(t, "aa", aa.ID, "key fills a missing videoId")

	out, err := json.Marshal(s)
	require.NoError(t, err)

	again := NewStore()
	require.NoError(t, json.Unmarshal(out, again))
	assert.Equal(t, s.All(), again.All())
}

func TestStore_UnmarshalRejectsArray(t *testing.T) {
	s := NewStore()
	assert.Error(t, json.Unmarshal([]byte(`["a"]`), s))
}

func TestStore_ZeroValue(t *testing.T) {
	var s Store
	require.NoError(t, s.Put(meta("a", "A", "x", 1)))
	assert.True(t, s.Has("a"))
}

func TestMetadata_AlbumShapes(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		album  string
		id     string
		output string
	}{
		{name: "object", raw: `{"videoId":"a","album":{"name":"Rec","id":"M1"}}`, album: "Rec", id: "M1", output: `{"name":"Rec","id":"M1"}`},
		{name: "string", raw: `{"videoId":"a","album":"Rec"}`, album: "Rec", output: `"Rec"`},
		{name: "null", raw: `{"videoId":"a","album":null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m Metadata
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &m))
			assert.Equal(t, tt.album, m.Album)
			assert.Equal(t, tt.id, m.AlbumID)

			out, err := json.Marshal(m)
			require.NoError(t, err)
			var fields map[string]json.RawMessage
			require.NoError(t, json.Unmarshal(out, &fields))
			if tt.output == "" {
				assert.NotContains(t, fields, "album")
				return
			}
			assert.JSONEq(t, tt.output, string(fields["album"]))
		})
	}
}

func TestStore_SkipsUndecodableEntry(t *testing.T) {
	s := NewStore()
	raw := `{"a": {"title": "A"}, "b": {"title": 7}, "c": {"title": "C"}}`
	require.NoError(t, json.Unmarshal([]byte(raw), s))
	assert.Equal(t, []string{"a", "c"}, s.IDs())
}
