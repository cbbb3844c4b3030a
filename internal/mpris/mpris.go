//go:build linux

package mpris

import (
	"fmt"
	"hash/fnv"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"
	log "github.com/sirupsen/logrus"

	"github.com/catvibes/catvibes/internal/playback"
)

const busName = "catvibes"

// Adapter connects the player to MPRIS over D-Bus.
type Adapter struct {
	server *server.Server
}

// New creates and starts a new MPRIS adapter.
func New(p Player) (*Adapter, error) {
	a := &Adapter{
		server: server.NewServer(busName, &rootAdapter{}, &playerAdapter{player: p}),
	}

	logger := log.WithFields(log.Fields{"module": "mpris"})
	go func() {
		if err := a.server.Listen(); err != nil {
			logger.WithError(err).Warn("mpris server stopped")
		}
	}()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error           { return nil }
func (r *rootAdapter) Quit() error            { return nil }
func (r *rootAdapter) CanQuit() (bool, error) { return false, nil }
func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}
func (r *rootAdapter) HasTrackList() (bool, error) { return false, nil }
func (r *rootAdapter) Identity() (string, error)   { return "catvibes", nil }

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/mp3"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter. Commands are
// forwarded to the UI loop; queries read the published snapshot.
type playerAdapter struct {
	player Player
}

func (p *playerAdapter) send(cmd Command) error {
	p.player.Send(cmd)
	return nil
}

func (p *playerAdapter) Next() error      { return p.send(CommandNext) }
func (p *playerAdapter) Previous() error  { return p.send(CommandPrevious) }
func (p *playerAdapter) Pause() error     { return p.send(CommandPause) }
func (p *playerAdapter) PlayPause() error { return p.send(CommandPlayPause) }
func (p *playerAdapter) Stop() error      { return p.send(CommandStop) }
func (p *playerAdapter) Play() error      { return p.send(CommandPlay) }

func (p *playerAdapter) Seek(_ types.Microseconds) error { return nil }

func (p *playerAdapter) SetPosition(_ string, _ types.Microseconds) error { return nil }

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error { return nil }

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	switch p.player.Snapshot().State {
	case playback.StatePlaying:
		return types.PlaybackStatusPlaying, nil
	case playback.StatePaused:
		return types.PlaybackStatusPaused, nil
	case playback.StateStopped:
		return types.PlaybackStatusStopped, nil
	}
	return types.PlaybackStatusStopped, nil
}

func (p *playerAdapter) Rate() (float64, error)  { return 1.0, nil }
func (p *playerAdapter) SetRate(_ float64) error { return nil }

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	track := p.player.Snapshot().Track
	if track == nil {
		return types.Metadata{}, nil
	}

	meta := types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(track.ID)),
		Title:   track.ID,
	}
	if m, ok := p.player.Lookup(track.ID); ok {
		meta.Title = m.Title
		meta.Length = types.Microseconds(m.Length().Microseconds())
		for _, a := range m.Artists {
			meta.Artist = append(meta.Artist, a.Name)
		}
		meta.Album = m.Album
	}
	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error)  { return 1.0, nil }
func (p *playerAdapter) SetVolume(_ float64) error { return nil }

func (p *playerAdapter) Position() (int64, error) {
	return p.player.Snapshot().Elapsed.Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) { return 1.0, nil }
func (p *playerAdapter) MaximumRate() (float64, error) { return 1.0, nil }

// The queue wraps on next and previous, so both are available whenever
// something is queued.
func (p *playerAdapter) CanGoNext() (bool, error)     { return p.player.Snapshot().QueueLen > 0, nil }
func (p *playerAdapter) CanGoPrevious() (bool, error) { return p.player.Snapshot().QueueLen > 0, nil }
func (p *playerAdapter) CanPlay() (bool, error)       { return p.player.Snapshot().QueueLen > 0, nil }
func (p *playerAdapter) CanPause() (bool, error)      { return true, nil }
func (p *playerAdapter) CanSeek() (bool, error)       { return false, nil }
func (p *playerAdapter) CanControl() (bool, error)    { return true, nil }

func formatTrackID(id string) string {
	h := fnv.New64a()
	h.Write([]byte(id))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
