package playback

import (
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catvibes/catvibes/internal/player"
)

func tracks(ids ...string) []Track {
	out := make([]Track, len(ids))
	for i, id := range ids {
		out[i] = Track{ID: id, Path: "/songs/" + id + ".mp3"}
	}
	return out
}

func newEngine(t *testing.T) (*Engine, *player.Mock) {
	t.Helper()
	p := player.NewMock()
	e := New(p, WithRand(rand.New(rand.NewPCG(7, 11))))
	t.Cleanup(func() { _ = e.Close() })
	return e, p
}

func TestEngine_PlayFromHere(t *testing.T) {
	e, p := newEngine(t)
	playlist := tracks("a", "b", "c")

	e.Clear()
	require.NoError(t, e.EnqueueAll(playlist[1:]))

	assert.Equal(t, []string{"b", "c"}, ids(e.Queue()))
	assert.Equal(t, 0, e.CurrentIndex())
	assert.Equal(t, StatePlaying, e.State())
	assert.Equal(t, []string{"/songs/b.mp3"}, p.StartCalls())
}

func TestEngine_EnqueueDoesNotRestart(t *testing.T) {
	e, p := newEngine(t)

	require.NoError(t, e.Enqueue(tracks("a")[0]))
	require.NoError(t, e.Enqueue(tracks("b")[0]))

	assert.Equal(t, 0, e.CurrentIndex())
	assert.Len(t, p.StartCalls(), 1)
	assert.Equal(t, 2, e.QueueLen())
}

func TestEngine_NextPreviousWrap(t *testing.T) {
	e, p := newEngine(t)
	require.NoError(t, e.EnqueueAll(tracks("a", "b", "c")))

	require.NoError(t, e.Previous())
	assert.Equal(t, 2, e.CurrentIndex())
	assert.Equal(t, "c", e.Current().ID)

	require.NoError(t, e.Next())
	assert.Equal(t, 0, e.CurrentIndex())
	assert.Equal(t, "/songs/a.mp3", p.StartCalls()[len(p.StartCalls())-1])
}

func TestEngine_EmptyQueueOperationsAreNoops(t *testing.T) {
	e, p := newEngine(t)

	require.NoError(t, e.Next())
	require.NoError(t, e.Previous())
	require.NoError(t, e.Shuffle())
	e.Toggle()
	require.NoError(t, e.Tick())

	assert.Equal(t, StateStopped, e.State())
	assert.Equal(t, -1, e.CurrentIndex())
	assert.Empty(t, p.StartCalls())
}

func TestEngine_TickAdvancesWithoutWrapping(t *testing.T) {
	e, p := newEngine(t)
	require.NoError(t, e.EnqueueAll(tracks("a", "b")))

	p.SimulateFinished()
	require.NoError(t, e.Tick())
	assert.Equal(t, 1, e.CurrentIndex())
	assert.Equal(t, StatePlaying, e.State())

	p.SimulateFinished()
	require.NoError(t, e.Tick())
	assert.Equal(t, 1, e.CurrentIndex(), "cursor retained at end")
	assert.Equal(t, StateStopped, e.State())
	assert.Equal(t, 2, e.QueueLen(), "entries retained at end")
	assert.Len(t, p.StartCalls(), 2)

	require.NoError(t, e.Tick())
	assert.Len(t, p.StartCalls(), 2, "no advance past the end")
}

func TestEngine_ElapsedAccumulatesAndResets(t *testing.T) {
	p := player.NewMock()
	e := New(p, WithTickInterval(100*time.Millisecond))
	require.NoError(t, e.EnqueueAll(tracks("a", "b")))

	for range 5 {
		require.NoError(t, e.Tick())
	}
	assert.Equal(t, 500*time.Millisecond, e.Elapsed())

	e.Pause()
	require.NoError(t, e.Tick())
	assert.Equal(t, 500*time.Millisecond, e.Elapsed(), "paused ticks do not count")

	e.Resume()
	require.NoError(t, e.Next())
	assert.Zero(t, e.Elapsed())
	assert.Equal(t, time.Duration(0), e.Snapshot().Elapsed)
}

func TestEngine_Toggle(t *testing.T) {
	e, _ := newEngine(t)
	require.NoError(t, e.Enqueue(tracks("a")[0]))

	e.Toggle()
	assert.Equal(t, StatePaused, e.State())
	e.Toggle()
	assert.Equal(t, StatePlaying, e.State())
}

func TestEngine_PlayFailureIsRecoverable(t *testing.T) {
	e, p := newEngine(t)
	p.SetStartError(player.ErrNotStarted)

	err := e.Enqueue(tracks("a")[0])
	require.Error(t, err)
	assert.True(t, errors.Is(err, player.ErrNotStarted))
	assert.Equal(t, StateStopped, e.State())
	assert.Equal(t, 0, e.CurrentIndex())

	p.SetStartError(nil)
	require.NoError(t, e.Enqueue(tracks("b")[0]))
	assert.Equal(t, StateStopped, e.State(), "enqueue with a cursor does not start")

	require.NoError(t, e.Next())
	assert.Equal(t, StatePlaying, e.State())
	assert.Equal(t, "b", e.Current().ID)
}

func TestEngine_Play(t *testing.T) {
	e, p := newEngine(t)

	require.NoError(t, e.Play())
	assert.Equal(t, StateStopped, e.State(), "empty queue")

	require.NoError(t, e.EnqueueAll(tracks("a", "b")))
	require.NoError(t, e.Next())
	require.NoError(t, e.Play())
	assert.Len(t, p.StartCalls(), 2, "no restart while playing")

	e.Pause()
	require.NoError(t, e.Play())
	assert.Equal(t, StatePlaying, e.State())
	assert.Len(t, p.StartCalls(), 2, "pause resumes in place")

	e.Stop()
	require.NoError(t, e.Play())
	assert.Equal(t, StatePlaying, e.State())
	assert.Equal(t, 1, e.CurrentIndex())
	assert.Equal(t, []string{"/songs/a.mp3", "/songs/b.mp3", "/songs/b.mp3"}, p.StartCalls())
}

func TestEngine_PlayAfterEndOfQueue(t *testing.T) {
	e, p := newEngine(t)
	require.NoError(t, e.Enqueue(tracks("a")[0]))
	p.SimulateFinished()
	require.NoError(t, e.Tick())
	require.Equal(t, StateStopped, e.State())

	require.NoError(t, e.Play())
	assert.Equal(t, StatePlaying, e.State())
	assert.Equal(t, 0, e.CurrentIndex())
	assert.Len(t, p.StartCalls(), 2)
}

func TestEngine_ShuffleStartsFirst(t *testing.T) {
	e, p := newEngine(t)
	require.NoError(t, e.EnqueueAll(tracks("a", "b", "c", "d")))
	require.NoError(t, e.Next())

	require.NoError(t, e.Shuffle())

	assert.Equal(t, 0, e.CurrentIndex())
	assert.Equal(t, StatePlaying, e.State())
	assert.ElementsMatch(t, []string{"a", "b", "c", "d"}, ids(e.Queue()))
	last := p.StartCalls()[len(p.StartCalls())-1]
	assert.Equal(t, e.Queue()[0].Path, last)
}

func TestEngine_ClearStopsPlayer(t *testing.T) {
	e, p := newEngine(t)
	require.NoError(t, e.EnqueueAll(tracks("a", "b")))

	e.Clear()

	assert.Equal(t, player.Stopped, p.State())
	assert.Equal(t, StateStopped, e.State())
	assert.Equal(t, -1, e.CurrentIndex())
	assert.Nil(t, e.Current())
}

func TestEngine_EmitsTrackChange(t *testing.T) {
	e, _ := newEngine(t)
	sub := e.Subscribe()

	require.NoError(t, e.EnqueueAll(tracks("a", "b")))
	require.NoError(t, e.Next())

	first := <-sub.TrackChanged
	assert.Nil(t, first.Previous)
	assert.Equal(t, "a", first.Current.ID)

	second := <-sub.TrackChanged
	require.NotNil(t, second.Previous)
	assert.Equal(t, "a", second.Previous.ID)
	assert.Equal(t, "b", second.Current.ID)
	assert.Equal(t, 1, second.Index)
}

func TestEngine_SnapshotTracksState(t *testing.T) {
	e, _ := newEngine(t)
	require.NoError(t, e.EnqueueAll(tracks("a", "b")))

	s := e.Snapshot()
	assert.Equal(t, StatePlaying, s.State)
	assert.Equal(t, 2, s.QueueLen)
	require.NotNil(t, s.Track)
	assert.Equal(t, "a", s.Track.ID)
}

func ids(ts []Track) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.ID
	}
	return out
}
