package app

import (
	"fmt"
	"strings"

	"github.com/catvibes/catvibes/internal/playback"
)

// StartKind selects what plays when the UI opens.
type StartKind int

const (
	StartNone StartKind = iota
	StartRandom
	StartInOrder
	StartPlaylist
)

// StartMode is the parsed value of the --start flag.
type StartMode struct {
	Kind     StartKind
	Playlist string
}

// ParseStartMode maps "r"/"random" and "s"/"start" to the songs view and
// anything else to a playlist name.
func ParseStartMode(s string) StartMode {
	switch strings.TrimSpace(s) {
	case "":
		return StartMode{}
	case "r", "random":
		return StartMode{Kind: StartRandom}
	case "s", "start":
		return StartMode{Kind: StartInOrder}
	default:
		return StartMode{Kind: StartPlaylist, Playlist: strings.TrimSpace(s)}
	}
}

// Start queues the tracks selected by mode and starts playing. For a
// playlist its tab becomes current.
func (m *Model) Start(mode StartMode) error {
	var ids []string
	switch mode.Kind {
	case StartNone:
		return nil
	case StartRandom, StartInOrder:
		ids = m.state.Tracks().IDs()
	case StartPlaylist:
		i, ok := m.playlistTab(mode.Playlist)
		if !ok {
			return fmt.Errorf("unknown playlist %q", mode.Playlist)
		}
		m.current = i
		ids = m.tabs[i].Source().IDs()
	}

	tracks := make([]playback.Track, 0, len(ids))
	store := m.state.Tracks()
	for _, id := range ids {
		if !store.Has(id) {
			continue
		}
		tracks = append(tracks, playback.Track{ID: id, Path: m.downloads.Path(id)})
	}

	m.engine.Clear()
	if err := m.engine.EnqueueAll(tracks); err != nil {
		return err
	}
	if mode.Kind == StartRandom {
		return m.engine.Shuffle()
	}
	return nil
}

// playlistTab finds the tab of a named playlist, skipping the songs tab.
func (m *Model) playlistTab(name string) (int, bool) {
	for i := 1; i < len(m.tabs); i++ {
		if m.tabs[i].Title() == name {
			return i, true
		}
	}
	return 0, false
}
