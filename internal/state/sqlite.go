package state

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	dbutil "github.com/catvibes/catvibes/internal/db"
	"github.com/catvibes/catvibes/internal/library"
	"github.com/catvibes/catvibes/internal/playlists"
)

// SQLiteStore keeps tracks and playlists in one SQLite database.
type SQLiteStore struct {
	db        *sql.DB
	tracks    *library.Store
	playlists *playlists.Registry
	logger    *log.Entry
}

// OpenSQLite opens the database at path and loads its content.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := dbutil.Open(path)
	if err != nil {
		return nil, err
	}
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	s := &SQLiteStore{
		db:        db,
		tracks:    library.NewStore(),
		playlists: playlists.NewRegistry(),
		logger:    log.WithFields(log.Fields{"module": "state"}),
	}
	if err := s.load(); err != nil {
		db.Close()
		return nil, err
	}
	if _, ok := s.playlists.Get(playlists.DefaultName); !ok {
		if _, err := s.CreatePlaylist(playlists.DefaultName); err != nil {
			db.Close()
			return nil, err
		}
	}

	s.logger.WithFields(log.Fields{
		"tracks":    s.tracks.Len(),
		"playlists": s.playlists.Len(),
	}).Info("loaded sqlite storage")
	return s, nil
}

func (s *SQLiteStore) load() error {
	tracks, err := getTracks(s.db)
	if err != nil {
		return fmt.Errorf("load tracks: %w", err)
	}
	s.tracks.Replace(tracks)

	names, err := getPlaylistNames(s.db)
	if err != nil {
		return fmt.Errorf("load playlists: %w", err)
	}
	for _, name := range names {
		ids, err := getPlaylistTracks(s.db, name)
		if err != nil {
			return fmt.Errorf("load playlist %s: %w", name, err)
		}
		if err := s.playlists.Add(playlists.NewPlaylist(name, ids...)); err != nil {
			return err
		}
	}
	return nil
}

func getTracks(db *sql.DB) ([]library.Metadata, error) {
	rows, err := db.Query(`
		SELECT id, title, artists, album, duration, duration_seconds
		FROM tracks
		ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []library.Metadata
	for rows.Next() {
		var m library.Metadata
		var artists string
		var album, duration sql.NullString
		if err := rows.Scan(&m.ID, &m.Title, &artists, &album, &duration, &m.DurationSeconds); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(artists), &m.Artists); err != nil {
			return nil, fmt.Errorf("track %s artists: %w", m.ID, err)
		}
		m.Album = dbutil.NullStringValue(album)
		m.Duration = dbutil.NullStringValue(duration)
		out = append(out, m)
	}
	return out, rows.Err()
}

func getPlaylistNames(db *sql.DB) ([]string, error) {
	rows, err := db.Query(`SELECT name FROM playlists ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func getPlaylistTracks(db *sql.DB, name string) ([]string, error) {
	rows, err := db.Query(`
		SELECT track_id FROM playlist_tracks
		WHERE playlist_name = ?
		ORDER BY position
	`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *SQLiteStore) Tracks() *library.Store { return s.tracks }

func (s *SQLiteStore) Playlists() *playlists.Registry { return s.playlists }

// CreatePlaylist registers name and inserts its row.
func (s *SQLiteStore) CreatePlaylist(name string) (*playlists.Playlist, error) {
	p, err := s.playlists.Create(name)
	if err != nil {
		return nil, err
	}
	_, err = s.db.Exec(`
		INSERT OR IGNORE INTO playlists (name, position, created_at)
		VALUES (?, ?, ?)
	`, name, s.playlists.Len()-1, time.Now().Unix())
	if err != nil {
		return nil, fmt.Errorf("create playlist %s: %w", name, err)
	}
	return p, nil
}

// SaveAll rewrites tracks and playlist entries in one transaction.
func (s *SQLiteStore) SaveAll() error {
	err := dbutil.WithTx(s.db, func(tx *sql.Tx) error {
		if err := saveTracks(tx, s.tracks.All()); err != nil {
			return err
		}
		return savePlaylists(tx, s.playlists.All())
	})
	if err != nil {
		return fmt.Errorf("save: %w", err)
	}
	s.logger.Debug("saved")
	return nil
}

func saveTracks(tx *sql.Tx, tracks []library.Metadata) error {
	if _, err := tx.Exec(`DELETE FROM tracks`); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`
		INSERT INTO tracks (id, position, title, artists, album, duration, duration_seconds)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, m := range tracks {
		artists, err := json.Marshal(m.Artists)
		if err != nil {
			return err
		}
		if m.Artists == nil {
			artists = []byte("[]")
		}
		_, err = stmt.Exec(m.ID, i, m.Title, string(artists),
			dbutil.NullString(m.Album), dbutil.NullString(m.Duration), m.DurationSeconds)
		if err != nil {
			return fmt.Errorf("track %s: %w", m.ID, err)
		}
	}
	return nil
}

func savePlaylists(tx *sql.Tx, all []*playlists.Playlist) error {
	if _, err := tx.Exec(`DELETE FROM playlist_tracks`); err != nil {
		return err
	}
	upsert, err := tx.Prepare(`
		INSERT INTO playlists (name, position, created_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET position = excluded.position
	`)
	if err != nil {
		return err
	}
	defer upsert.Close()

	insert, err := tx.Prepare(`
		INSERT INTO playlist_tracks (playlist_name, position, track_id)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer insert.Close()

	now := time.Now().Unix()
	for pos, p := range all {
		if _, err := upsert.Exec(p.Name(), pos, now); err != nil {
			return fmt.Errorf("playlist %s: %w", p.Name(), err)
		}
		for i, id := range p.IDs() {
			if _, err := insert.Exec(p.Name(), i, id); err != nil {
				return fmt.Errorf("playlist %s entry %d: %w", p.Name(), i, err)
			}
		}
	}
	return nil
}

// Close flushes and closes the database.
func (s *SQLiteStore) Close() error {
	saveErr := s.SaveAll()
	if err := s.db.Close(); err != nil {
		return err
	}
	return saveErr
}
