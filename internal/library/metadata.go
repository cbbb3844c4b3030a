// Package library holds the track store: the mapping from catalog track id
// to the metadata recorded when the track was downloaded.
package library

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a track id is missing from the store.
var ErrNotFound = errors.New("track not found")

// Artist is a credited artist of a track.
type Artist struct {
	Name string `json:"name"`
	ID   string `json:"id,omitempty"`
}

// Metadata describes a downloaded track. The JSON layout follows the song
// results of the catalog: album may be stored as a plain name or as a
// {name, id} object, and keys this type does not model are kept in Extra
// so entries written by other tools survive a save.
type Metadata struct {
	ID              string
	Title           string
	Artists         []Artist
	Album           string
	AlbumID         string
	Duration        string
	DurationSeconds int

	Extra map[string]json.RawMessage
}

type metadataJSON struct {
	ID              string          `json:"videoId"`
	Title           string          `json:"title"`
	Artists         []Artist        `json:"artists"`
	Album           json.RawMessage `json:"album,omitempty"`
	Duration        string          `json:"duration"`
	DurationSeconds int             `json:"duration_seconds"`
}

var metadataKeys = []string{"videoId", "title", "artists", "album", "duration", "duration_seconds"}

// MarshalJSON writes the known fields followed by Extra. The album is an
// object when its id is known and a string otherwise.
func (m Metadata) MarshalJSON() ([]byte, error) {
	raw := metadataJSON{
		ID:              m.ID,
		Title:           m.Title,
		Artists:         m.Artists,
		Duration:        m.Duration,
		DurationSeconds: m.DurationSeconds,
	}
	if raw.Artists == nil {
		raw.Artists = []Artist{}
	}
	var err error
	switch {
	case m.AlbumID != "":
		raw.Album, err = json.Marshal(Artist{Name: m.Album, ID: m.AlbumID})
	case m.Album != "":
		raw.Album, err = json.Marshal(m.Album)
	}
	if err != nil {
		return nil, err
	}

	known, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	if len(m.Extra) == 0 {
		return known, nil
	}

	fields := make(map[string]json.RawMessage, len(m.Extra)+len(metadataKeys))
	for k, v := range m.Extra {
		fields[k] = v
	}
	if err := json.Unmarshal(known, &fields); err != nil {
		return nil, err
	}
	return json.Marshal(fields)
}

// UnmarshalJSON accepts both album shapes and keeps unknown keys in Extra.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	var raw metadataJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	for _, k := range metadataKeys {
		delete(fields, k)
	}

	*m = Metadata{
		ID:              raw.ID,
		Title:           raw.Title,
		Artists:         raw.Artists,
		Duration:        raw.Duration,
		DurationSeconds: raw.DurationSeconds,
	}
	if len(fields) > 0 {
		m.Extra = fields
	}
	return m.decodeAlbum(raw.Album)
}

func (m *Metadata) decodeAlbum(raw json.RawMessage) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if raw[0] == '"' {
		return json.Unmarshal(raw, &m.Album)
	}
	var album Artist
	if err := json.Unmarshal(raw, &album); err != nil {
		return fmt.Errorf("album: %w", err)
	}
	m.Album, m.AlbumID = album.Name, album.ID
	return nil
}

// ArtistName returns the first credited artist, or "" if none.
func (m Metadata) ArtistName() string {
	if len(m.Artists) == 0 {
		return ""
	}
	return m.Artists[0].Name
}

// Length returns the track duration.
func (m Metadata) Length() time.Duration {
	return time.Duration(m.DurationSeconds) * time.Second
}

// DisplayDuration returns Duration, deriving it from DurationSeconds when
// the catalog did not supply one.
func (m Metadata) DisplayDuration() string {
	if m.Duration != "" {
		return m.Duration
	}
	if m.DurationSeconds <= 0 {
		return ""
	}
	return FormatTime(m.Length())
}

// Validate checks the invariants a stored entry must satisfy.
func (m Metadata) Validate() error {
	if m.ID == "" {
		return errors.New("metadata: empty id")
	}
	if m.DurationSeconds < 0 {
		return fmt.Errorf("metadata %s: negative duration %d", m.ID, m.DurationSeconds)
	}
	return nil
}
