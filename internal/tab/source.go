package tab

import (
	"errors"
	"fmt"

	"github.com/catvibes/catvibes/internal/library"
	"github.com/catvibes/catvibes/internal/playlists"
)

// AllTracksTitle is the title of the derived all-tracks tab.
const AllTracksTitle = "Songs"

// ErrReadOnly is returned when appending to a derived source.
var ErrReadOnly = errors.New("list is derived from the track store")

// Source is the list of track ids a tab shows.
type Source interface {
	Title() string
	Len() int
	At(i int) string
	IDs() []string
	Append(id string) error
	RemoveAt(i int) error
}

// PlaylistSource shows a named playlist. Mutations go straight to the
// shared playlist.
type PlaylistSource struct {
	playlist *playlists.Playlist
}

// NewPlaylistSource wraps p.
func NewPlaylistSource(p *playlists.Playlist) *PlaylistSource {
	return &PlaylistSource{playlist: p}
}

func (s *PlaylistSource) Title() string        { return s.playlist.Name() }
func (s *PlaylistSource) Len() int             { return s.playlist.Len() }
func (s *PlaylistSource) At(i int) string      { return s.playlist.At(i) }
func (s *PlaylistSource) IDs() []string        { return s.playlist.IDs() }
func (s *PlaylistSource) RemoveAt(i int) error { return s.playlist.RemoveAt(i) }
func (s *PlaylistSource) Append(id string) error {
	s.playlist.Append(id)
	return nil
}

// AllTracksSource is the key set of the track store. Removing an entry
// deletes the track from the store and from every playlist.
type AllTracksSource struct {
	store    *library.Store
	registry *playlists.Registry
}

// NewAllTracksSource creates the derived view over store.
func NewAllTracksSource(store *library.Store, registry *playlists.Registry) *AllTracksSource {
	return &AllTracksSource{store: store, registry: registry}
}

func (s *AllTracksSource) Title() string   { return AllTracksTitle }
func (s *AllTracksSource) Len() int        { return s.store.Len() }
func (s *AllTracksSource) IDs() []string   { return s.store.IDs() }
func (s *AllTracksSource) At(i int) string { return s.store.IDs()[i] }

func (s *AllTracksSource) Append(string) error { return ErrReadOnly }

// RemoveAt purges the i-th track from the store and every playlist.
func (s *AllTracksSource) RemoveAt(i int) error {
	ids := s.store.IDs()
	if i < 0 || i >= len(ids) {
		return fmt.Errorf("remove entry %d of %d: out of range", i, len(ids))
	}
	id := ids[i]
	if !s.store.Delete(id) {
		return fmt.Errorf("cannot delete song %s: %w", id, library.ErrNotFound)
	}
	s.registry.Purge(id)
	return nil
}
