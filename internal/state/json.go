package state

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/catvibes/catvibes/internal/library"
	"github.com/catvibes/catvibes/internal/playlists"
)

// TrackStoreFile is the name of the track store inside the data directory.
const TrackStoreFile = "data"

// JSONStore keeps the track store in one JSON object file and each
// playlist in its own JSON array file named after the playlist.
type JSONStore struct {
	manager     *Manager
	tracks      *library.Store
	playlists   *playlists.Registry
	playlistDir string
	logger      *log.Entry
}

// OpenJSON loads the track store and every playlist file, creating the
// default playlist on first run.
func OpenJSON(dataDir, playlistDir string) (*JSONStore, error) {
	s := &JSONStore{
		manager:     NewManager(),
		tracks:      library.NewStore(),
		playlists:   playlists.NewRegistry(),
		playlistDir: playlistDir,
		logger:      log.WithFields(log.Fields{"module": "state"}),
	}

	if err := s.manager.Load(filepath.Join(dataDir, TrackStoreFile), s.tracks, map[string]any{}); err != nil {
		return nil, err
	}

	if err := CreateIfMissing(filepath.Join(playlistDir, playlists.DefaultName), []string{}); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(playlistDir)
	if err != nil {
		return nil, fmt.Errorf("read playlists: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || strings.HasSuffix(e.Name(), ".tmp") {
			continue
		}
		name := PlaylistName(e.Name())
		p := playlists.NewPlaylist(name)
		if err := s.manager.Load(filepath.Join(playlistDir, e.Name()), p, []string{}); err != nil {
			s.logger.WithError(err).WithField("file", e.Name()).Warn("skipping playlist")
			continue
		}
		if err := s.playlists.Add(p); err != nil {
			s.logger.WithError(err).WithField("file", e.Name()).Warn("skipping playlist")
		}
	}
	s.playlists.EnsureDefault()

	s.logger.WithFields(log.Fields{
		"tracks":    s.tracks.Len(),
		"playlists": s.playlists.Len(),
	}).Info("loaded json storage")
	return s, nil
}

// PlaylistName derives a playlist name from its file name. Only the
// extension of an imported file is dropped, so names may contain dots.
func PlaylistName(file string) string {
	return strings.TrimSuffix(file, playlists.ImportExt)
}

func (s *JSONStore) Tracks() *library.Store { return s.tracks }

func (s *JSONStore) Playlists() *playlists.Registry { return s.playlists }

// CreatePlaylist registers name and creates its file.
func (s *JSONStore) CreatePlaylist(name string) (*playlists.Playlist, error) {
	if err := playlists.ValidateName(name); err != nil {
		return nil, err
	}
	p, err := s.playlists.Create(name)
	if err != nil {
		return nil, err
	}
	if err := s.manager.Load(filepath.Join(s.playlistDir, name), p, []string{}); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *JSONStore) SaveAll() error {
	if err := s.manager.SaveAll(); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	s.logger.WithField("files", len(s.manager.Paths())).Debug("saved")
	return nil
}

func (s *JSONStore) Close() error {
	return s.SaveAll()
}
