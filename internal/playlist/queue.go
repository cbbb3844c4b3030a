package playlist

import "math/rand/v2"

// PlayingQueue holds the playback order and the cursor into it.
// It is never persisted.
type PlayingQueue struct {
	tracks       []Track
	currentIndex int // -1 if nothing is current
}

// NewQueue creates a new empty playing queue.
func NewQueue() *PlayingQueue {
	return &PlayingQueue{currentIndex: -1}
}

// Current returns the current track, or nil if none.
func (q *PlayingQueue) Current() *Track {
	if q.currentIndex < 0 || q.currentIndex >= len(q.tracks) {
		return nil
	}
	return &q.tracks[q.currentIndex]
}

// CurrentIndex returns the cursor (-1 if none).
func (q *PlayingQueue) CurrentIndex() int {
	return q.currentIndex
}

// Add appends a track. When the queue had no current track the cursor
// moves to 0 and Add returns true: the caller should start playback.
func (q *PlayingQueue) Add(t Track) bool {
	q.tracks = append(q.tracks, t)
	if q.currentIndex == -1 {
		q.currentIndex = 0
		return true
	}
	return false
}

// Clear removes all tracks and resets the cursor.
func (q *PlayingQueue) Clear() {
	q.tracks = nil
	q.currentIndex = -1
}

// HasNext returns true if there's a track after the current one.
func (q *PlayingQueue) HasNext() bool {
	return q.currentIndex < len(q.tracks)-1
}

// Advance moves to the following track without wrapping.
// Returns nil at the end of the queue, leaving the cursor unchanged.
func (q *PlayingQueue) Advance() *Track {
	if !q.HasNext() {
		return nil
	}
	q.currentIndex++
	return q.Current()
}

// Next moves forward one track, wrapping to the first after the last.
// Returns nil on an empty queue.
func (q *PlayingQueue) Next() *Track {
	return q.step(1)
}

// Previous moves back one track, wrapping to the last before the first.
// Returns nil on an empty queue.
func (q *PlayingQueue) Previous() *Track {
	return q.step(-1)
}

func (q *PlayingQueue) step(delta int) *Track {
	n := len(q.tracks)
	if n == 0 {
		return nil
	}
	q.currentIndex = ((q.currentIndex+delta)%n + n) % n
	return q.Current()
}

// JumpTo sets the cursor to index and returns the track there, or nil if
// the index is invalid.
func (q *PlayingQueue) JumpTo(index int) *Track {
	if index < 0 || index >= len(q.tracks) {
		return nil
	}
	q.currentIndex = index
	return q.Current()
}

// Shuffle permutes the tracks uniformly and moves the cursor to the first
// one. Returns nil on an empty queue.
func (q *PlayingQueue) Shuffle(r *rand.Rand) *Track {
	if len(q.tracks) == 0 {
		return nil
	}
	shuffle := rand.Shuffle
	if r != nil {
		shuffle = r.Shuffle
	}
	shuffle(len(q.tracks), func(i, j int) {
		q.tracks[i], q.tracks[j] = q.tracks[j], q.tracks[i]
	})
	q.currentIndex = 0
	return q.Current()
}

// Tracks returns a copy of all tracks.
func (q *PlayingQueue) Tracks() []Track {
	result := make([]Track, len(q.tracks))
	copy(result, q.tracks)
	return result
}

// Len returns the number of tracks.
func (q *PlayingQueue) Len() int {
	return len(q.tracks)
}

// IsEmpty returns true if the queue has no tracks.
func (q *PlayingQueue) IsEmpty() bool {
	return len(q.tracks) == 0
}

// Valid reports whether the cursor invariant holds: -1 on an empty queue,
// otherwise within [0, Len()).
func (q *PlayingQueue) Valid() bool {
	if len(q.tracks) == 0 {
		return q.currentIndex == -1
	}
	return q.currentIndex >= -1 && q.currentIndex < len(q.tracks)
}
