package playerbar

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catvibes/catvibes/internal/library"
	"github.com/catvibes/catvibes/internal/playback"
)

func song() library.Metadata {
	return library.Metadata{
		ID:              "abc",
		Title:           "One More Time",
		Artists:         []library.Artist{{Name: "Daft Punk"}},
		Duration:        "5:20",
		DurationSeconds: 320,
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		total   time.Duration
		width   int
		want    string
	}{
		{"start", 0, 100 * time.Second, 5, "‣────"},
		{"middle", 50 * time.Second, 100 * time.Second, 6, "═══‣──"},
		{"end clamps", 100 * time.Second, 100 * time.Second, 4, "═══‣"},
		{"overrun clamps", 200 * time.Second, 100 * time.Second, 3, "══‣"},
		{"unknown length", 10 * time.Second, 0, 3, "‣──"},
		{"zero width", time.Second, time.Minute, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProgressBar(tt.elapsed, tt.total, tt.width))
		})
	}
}

func TestInfo(t *testing.T) {
	s := State{Playing: true, Track: song(), Elapsed: 64 * time.Second}

	got := Info("TITLE - ARTIST  CURRENT_TIME BAR LENGHT", s, 10)

	assert.Equal(t, "One More Time - Daft Punk  1:04 ══‣─────── 5:20", got)
}

func TestInfoDoesNotSubstituteInsideValues(t *testing.T) {
	m := song()
	m.Title = "BAR TITLE"
	s := State{Track: m}

	assert.Equal(t, "BAR TITLE", Info("TITLE", s, 4))
}

func TestNewState(t *testing.T) {
	store := library.NewStore()
	require.NoError(t, store.Put(song()))

	s := NewState(playback.Snapshot{
		State:    playback.StatePaused,
		Track:    &playback.Track{ID: "abc"},
		Index:    1,
		QueueLen: 3,
		Elapsed:  time.Second,
	}, store)

	assert.True(t, s.Paused)
	assert.False(t, s.Playing)
	assert.Equal(t, "One More Time", s.Track.Title)
	assert.True(t, s.Active())

	unknown := NewState(playback.Snapshot{Track: &playback.Track{ID: "zzz"}}, store)
	assert.Equal(t, "zzz", unknown.Track.Title)

	assert.False(t, NewState(playback.Snapshot{Index: -1}, store).Active())
}

func TestRender(t *testing.T) {
	assert.Empty(t, Render(State{}, "TITLE", 10, 80))

	s := State{Playing: true, Track: song(), Index: 0, QueueLen: 2}
	out := Render(s, "TITLE", 10, 80)
	assert.Contains(t, out, playSymbol)
	assert.Contains(t, out, "One More Time")
	assert.Contains(t, out, "[1/2]")
	assert.Len(t, strings.Split(out, "\n"), Height)
}
