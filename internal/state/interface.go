// Package state persists the track store and the playlists.
//
// Two backends exist: JSON files laid out like the catvibes data directory,
// and a single SQLite database. Both load everything at open and write it
// back on SaveAll; in between, the in-memory values are the source of truth.
package state

import (
	"fmt"

	"github.com/catvibes/catvibes/internal/library"
	"github.com/catvibes/catvibes/internal/playlists"
)

// Backend kinds accepted by Open.
const (
	KindJSON   = "json"
	KindSQLite = "sqlite"
)

// Interface defines the persistence contract for dependency injection and
// testing.
type Interface interface {
	// Tracks returns the shared track store.
	Tracks() *library.Store
	// Playlists returns the shared playlist registry.
	Playlists() *playlists.Registry
	// CreatePlaylist registers a new empty playlist and persists it.
	CreatePlaylist(name string) (*playlists.Playlist, error)
	// SaveAll flushes every loaded value to disk.
	SaveAll() error
	Close() error
}

// Paths locates the persisted data.
type Paths struct {
	DataDir     string // JSON track store lives in DataDir/data
	PlaylistDir string // one JSON file per playlist
	DBPath      string // SQLite database
}

// Open opens the backend of the given kind.
func Open(kind string, paths Paths) (Interface, error) {
	switch kind {
	case "", KindJSON:
		return OpenJSON(paths.DataDir, paths.PlaylistDir)
	case KindSQLite:
		return OpenSQLite(paths.DBPath)
	default:
		return nil, fmt.Errorf("unknown storage %q", kind)
	}
}

var (
	_ Interface = (*JSONStore)(nil)
	_ Interface = (*SQLiteStore)(nil)
	_ Interface = (*Mock)(nil)
)
