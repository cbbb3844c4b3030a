// Package playlists manages the named playlists: ordered, duplicate-friendly
// lists of track ids.
package playlists

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Playlist is a named ordered list of track ids. Playlists are shared by
// pointer between the registry, the persistence layer and the tabs.
type Playlist struct {
	name    string
	entries []string
}

// NewPlaylist creates a playlist holding ids.
func NewPlaylist(name string, ids ...string) *Playlist {
	return &Playlist{name: name, entries: slices.Clone(ids)}
}

func (p *Playlist) Name() string { return p.name }

func (p *Playlist) Len() int { return len(p.entries) }

// At returns the id at index i.
func (p *Playlist) At(i int) string { return p.entries[i] }

// IDs returns a copy of the entries.
func (p *Playlist) IDs() []string { return slices.Clone(p.entries) }

// Append adds id at the end.
func (p *Playlist) Append(id string) {
	p.entries = append(p.entries, id)
}

// RemoveAt deletes the entry at index i.
func (p *Playlist) RemoveAt(i int) error {
	if i < 0 || i >= len(p.entries) {
		return fmt.Errorf("playlist %s: index %d out of range [0,%d)", p.name, i, len(p.entries))
	}
	p.entries = slices.Delete(p.entries, i, i+1)
	return nil
}

// RemoveAll deletes every occurrence of id and returns how many were removed.
func (p *Playlist) RemoveAll(id string) int {
	before := len(p.entries)
	p.entries = slices.DeleteFunc(p.entries, func(e string) bool { return e == id })
	return before - len(p.entries)
}

// Contains reports whether id occurs at least once.
func (p *Playlist) Contains(id string) bool {
	return slices.Contains(p.entries, id)
}

// MarshalJSON encodes the entries as a bare array of ids.
func (p *Playlist) MarshalJSON() ([]byte, error) {
	if p.entries == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(p.entries)
}

// UnmarshalJSON decodes a bare array of ids. The name is left untouched.
func (p *Playlist) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return fmt.Errorf("playlist %s: %w", p.name, err)
	}
	p.entries = ids
	return nil
}
