package playback

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/catvibes/catvibes/internal/player"
	"github.com/catvibes/catvibes/internal/playlist"
)

// DefaultTickInterval is the polling period the UI loop uses to call Tick.
const DefaultTickInterval = 100 * time.Millisecond

// Snapshot is an immutable view of the engine, safe to read from any
// goroutine.
type Snapshot struct {
	State    State
	Track    *Track
	Index    int
	QueueLen int
	Elapsed  time.Duration
}

// Engine owns the play queue and the audio engine handle. All mutating
// methods are expected to be called from the UI loop; Snapshot may be read
// concurrently.
type Engine struct {
	mu sync.Mutex

	player   player.Interface
	queue    *playlist.PlayingQueue
	state    State
	elapsed  time.Duration
	interval time.Duration
	rng      *rand.Rand

	subs   []*Subscription
	subsMu sync.RWMutex

	snapshot atomic.Pointer[Snapshot]
	logger   *log.Entry
	closed   bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithTickInterval sets the elapsed time added by each Tick.
func WithTickInterval(d time.Duration) Option {
	return func(e *Engine) { e.interval = d }
}

// WithRand sets the random source used by Shuffle.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// New creates an engine driving p over an empty queue.
func New(p player.Interface, opts ...Option) *Engine {
	e := &Engine{
		player:   p,
		queue:    playlist.NewQueue(),
		interval: DefaultTickInterval,
		logger:   log.WithFields(log.Fields{"module": "playback"}),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.publishLocked()
	return e
}

// State returns the current engine state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// IsPlaying reports whether a track is audible.
func (e *Engine) IsPlaying() bool {
	return e.State() == StatePlaying
}

// Elapsed returns the time played of the current track.
func (e *Engine) Elapsed() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.elapsed
}

// Current returns a copy of the track under the cursor, or nil.
func (e *Engine) Current() *Track {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentLocked()
}

func (e *Engine) currentLocked() *Track {
	t := e.queue.Current()
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

// CurrentIndex returns the queue cursor (-1 if none).
func (e *Engine) CurrentIndex() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.queue.CurrentIndex()
}

// Queue returns a copy of the queue entries.
func (e *Engine) Queue() []Track {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.queue.Tracks()
}

// QueueLen returns the number of queued tracks.
func (e *Engine) QueueLen() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.queue.Len()
}

// Snapshot returns the latest published view of the engine.
func (e *Engine) Snapshot() Snapshot {
	return *e.snapshot.Load()
}

// Enqueue appends t. If nothing was current, playback starts on it.
func (e *Engine) Enqueue(t Track) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	err := e.enqueueLocked(t)
	e.emitQueueLocked()
	return err
}

// EnqueueAll appends tracks in order. The first play failure is returned
// after every track has been queued.
func (e *Engine) EnqueueAll(tracks []Track) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	var firstErr error
	for _, t := range tracks {
		if err := e.enqueueLocked(t); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	e.emitQueueLocked()
	return firstErr
}

func (e *Engine) enqueueLocked(t Track) error {
	if e.queue.Add(t) {
		return e.playLocked(e.queue.Current())
	}
	return nil
}

// Clear stops the audio engine and empties the queue.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.player.Stop()
	e.queue.Clear()
	e.elapsed = 0
	e.setStateLocked(StateStopped)
	e.emitQueueLocked()
}

// Stop halts the audio engine, keeping the queue.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.player.Stop()
	e.setStateLocked(StateStopped)
}

// Pause suspends playback. Only valid while playing.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pauseLocked()
}

func (e *Engine) pauseLocked() {
	if e.state != StatePlaying {
		return
	}
	e.player.Pause()
	e.setStateLocked(StatePaused)
}

// Resume continues a paused track.
func (e *Engine) Resume() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resumeLocked()
}

func (e *Engine) resumeLocked() {
	if e.state != StatePaused || e.queue.IsEmpty() {
		return
	}
	e.player.Resume()
	e.setStateLocked(StatePlaying)
}

// Play resumes a paused track, or restarts the entry under the cursor when
// the engine is stopped with a non-empty queue. It is a no-op while playing.
func (e *Engine) Play() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch {
	case e.state == StatePaused:
		e.resumeLocked()
		return nil
	case e.state == StateStopped && !e.queue.IsEmpty():
		t := e.queue.JumpTo(max(e.queue.CurrentIndex(), 0))
		if t == nil {
			return nil
		}
		return e.playLocked(t)
	}
	return nil
}

// Toggle pauses when playing and resumes otherwise.
func (e *Engine) Toggle() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == StatePlaying {
		e.pauseLocked()
	} else {
		e.resumeLocked()
	}
}

// Next plays the following track, wrapping to the first after the last.
func (e *Engine) Next() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	t := e.queue.Next()
	if t == nil {
		return nil
	}
	return e.playLocked(t)
}

// Previous plays the preceding track, wrapping to the last before the first.
func (e *Engine) Previous() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	t := e.queue.Previous()
	if t == nil {
		return nil
	}
	return e.playLocked(t)
}

// Shuffle permutes the queue and plays from its new first entry.
func (e *Engine) Shuffle() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	t := e.queue.Shuffle(e.rng)
	if t == nil {
		return nil
	}
	err := e.playLocked(t)
	e.emitQueueLocked()
	return err
}

// Tick polls the audio engine. A finished track advances the queue without
// wrapping; at the last entry the engine stops and keeps its cursor.
// Otherwise the elapsed time grows by the tick interval while playing.
func (e *Engine) Tick() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StatePlaying {
		return nil
	}
	if !e.player.Finished() {
		e.elapsed += e.interval
		e.publishLocked()
		return nil
	}

	if t := e.queue.Advance(); t != nil {
		return e.playLocked(t)
	}

	e.player.Stop()
	e.setStateLocked(StateStopped)
	return nil
}

// playLocked replaces the active track with t. On failure the engine is
// left stopped with the cursor on t.
func (e *Engine) playLocked(t *Track) error {
	e.assertValidLocked()

	prev := e.lastTrackLocked()
	e.elapsed = 0

	if err := e.player.Start(t.Path); err != nil {
		e.player.Stop()
		e.setStateLocked(StateStopped)
		e.logger.WithFields(log.Fields{"track": t.ID, "path": t.Path}).WithError(err).Warn("play failed")
		e.emitError(ErrorEvent{Operation: "play", Path: t.Path, Err: err})
		return fmt.Errorf("play %s: %w", t.ID, err)
	}

	e.setStateLocked(StatePlaying)
	cur := *t
	e.emitTrack(TrackChange{Previous: prev, Current: &cur, Index: e.queue.CurrentIndex()})
	return nil
}

// lastTrackLocked returns the track that was playing before a transition.
func (e *Engine) lastTrackLocked() *Track {
	s := e.snapshot.Load()
	if s == nil {
		return nil
	}
	return s.Track
}

// assertValidLocked panics on a broken queue cursor.
func (e *Engine) assertValidLocked() {
	if !e.queue.Valid() {
		panic(fmt.Sprintf("playback: cursor %d out of range for queue of %d",
			e.queue.CurrentIndex(), e.queue.Len()))
	}
}

func (e *Engine) setStateLocked(s State) {
	prev := e.state
	e.state = s
	e.publishLocked()
	if prev != s {
		e.emitState(StateChange{Previous: prev, Current: s})
	}
}

func (e *Engine) publishLocked() {
	e.snapshot.Store(&Snapshot{
		State:    e.state,
		Track:    e.currentLocked(),
		Index:    e.queue.CurrentIndex(),
		QueueLen: e.queue.Len(),
		Elapsed:  e.elapsed,
	})
}

// Subscribe creates a new event subscription.
func (e *Engine) Subscribe() *Subscription {
	e.subsMu.Lock()
	defer e.subsMu.Unlock()
	sub := newSubscription()
	e.subs = append(e.subs, sub)
	return sub
}

func (e *Engine) emitState(ev StateChange) {
	e.subsMu.RLock()
	defer e.subsMu.RUnlock()
	for _, s := range e.subs {
		s.sendState(ev)
	}
}

func (e *Engine) emitTrack(ev TrackChange) {
	e.subsMu.RLock()
	defer e.subsMu.RUnlock()
	for _, s := range e.subs {
		s.sendTrack(ev)
	}
}

func (e *Engine) emitQueueLocked() {
	e.publishLocked()
	ev := QueueChange{Tracks: e.queue.Tracks(), Index: e.queue.CurrentIndex()}
	e.subsMu.RLock()
	defer e.subsMu.RUnlock()
	for _, s := range e.subs {
		s.sendQueue(ev)
	}
}

func (e *Engine) emitError(ev ErrorEvent) {
	e.subsMu.RLock()
	defer e.subsMu.RUnlock()
	for _, s := range e.subs {
		s.sendError(ev)
	}
}

// Close stops playback and closes every subscription.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	e.player.Stop()
	e.setStateLocked(StateStopped)
	e.mu.Unlock()

	e.subsMu.Lock()
	for _, sub := range e.subs {
		sub.close()
	}
	e.subs = nil
	e.subsMu.Unlock()

	return nil
}
