//go:build linux

package mpris

import (
	"strings"
	"testing"
	"time"

	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catvibes/catvibes/internal/library"
	"github.com/catvibes/catvibes/internal/playback"
)

type fakePlayer struct {
	snap playback.Snapshot
	meta map[string]library.Metadata
	sent []Command
}

func (f *fakePlayer) Snapshot() playback.Snapshot { return f.snap }

func (f *fakePlayer) Lookup(id string) (library.Metadata, bool) {
	m, ok := f.meta[id]
	return m, ok
}

func (f *fakePlayer) Send(cmd Command) { f.sent = append(f.sent, cmd) }

func TestCommandsAreForwarded(t *testing.T) {
	f := &fakePlayer{}
	p := &playerAdapter{player: f}

	require.NoError(t, p.Play())
	require.NoError(t, p.Pause())
	require.NoError(t, p.PlayPause())
	require.NoError(t, p.Stop())
	require.NoError(t, p.Next())
	require.NoError(t, p.Previous())

	assert.Equal(t, []Command{
		CommandPlay, CommandPause, CommandPlayPause,
		CommandStop, CommandNext, CommandPrevious,
	}, f.sent)
}

func TestPlaybackStatus(t *testing.T) {
	tests := []struct {
		state playback.State
		want  types.PlaybackStatus
	}{
		{playback.StatePlaying, types.PlaybackStatusPlaying},
		{playback.StatePaused, types.PlaybackStatusPaused},
		{playback.StateStopped, types.PlaybackStatusStopped},
	}

	for _, tt := range tests {
		p := &playerAdapter{player: &fakePlayer{snap: playback.Snapshot{State: tt.state}}}
		got, err := p.PlaybackStatus()
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestMetadata(t *testing.T) {
	f := &fakePlayer{
		snap: playback.Snapshot{
			State:    playback.StatePlaying,
			Track:    &playback.Track{ID: "abc", Path: "/songs/abc.mp3"},
			QueueLen: 1,
			Elapsed:  2 * time.Second,
		},
		meta: map[string]library.Metadata{
			"abc": {
				ID:              "abc",
				Title:           "Song",
				Artists:         []library.Artist{{Name: "A"}, {Name: "B"}},
				DurationSeconds: 90,
			},
		},
	}
	p := &playerAdapter{player: f}

	meta, err := p.Metadata()
	require.NoError(t, err)
	assert.Equal(t, "Song", meta.Title)
	assert.Equal(t, []string{"A", "B"}, meta.Artist)
	assert.Equal(t, types.Microseconds(90_000_000), meta.Length)
	assert.True(t, strings.HasPrefix(string(meta.TrackId), "/org/mpris/MediaPlayer2/Track/"))

	pos, err := p.Position()
	require.NoError(t, err)
	assert.Equal(t, int64(2_000_000), pos)

	canNext, _ := p.CanGoNext()
	assert.True(t, canNext)
}

func TestMetadataEmptyQueue(t *testing.T) {
	p := &playerAdapter{player: &fakePlayer{snap: playback.Snapshot{Index: -1}}}

	meta, err := p.Metadata()
	require.NoError(t, err)
	assert.Empty(t, meta.Title)

	canPlay, _ := p.CanPlay()
	assert.False(t, canPlay)
}

func TestFormatTrackIDStable(t *testing.T) {
	assert.Equal(t, formatTrackID("abc"), formatTrackID("abc"))
	assert.NotEqual(t, formatTrackID("abc"), formatTrackID("abd"))
}

func TestCommandString(t *testing.T) {
	assert.Equal(t, "play_pause", CommandPlayPause.String())
	assert.Equal(t, "unknown", Command(99).String())
}
