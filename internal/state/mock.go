package state

import (
	"github.com/catvibes/catvibes/internal/library"
	"github.com/catvibes/catvibes/internal/playlists"
)

// Mock is an in-memory backend for tests.
type Mock struct {
	tracks    *library.Store
	playlists *playlists.Registry
	saves     int
	closed    bool
}

// NewMock creates a mock holding only the default playlist.
func NewMock() *Mock {
	m := &Mock{tracks: library.NewStore(), playlists: playlists.NewRegistry()}
	m.playlists.EnsureDefault()
	return m
}

func (m *Mock) Tracks() *library.Store { return m.tracks }

func (m *Mock) Playlists() *playlists.Registry { return m.playlists }

func (m *Mock) CreatePlaylist(name string) (*playlists.Playlist, error) {
	return m.playlists.Create(name)
}

func (m *Mock) SaveAll() error {
	m.saves++
	return nil
}

func (m *Mock) Close() error {
	m.closed = true
	return nil
}

// Saves returns how many times SaveAll was called.
func (m *Mock) Saves() int { return m.saves }

// Closed reports whether Close was called.
func (m *Mock) Closed() bool { return m.closed }
