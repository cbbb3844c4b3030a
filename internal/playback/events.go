package playback

// StateChange is emitted when playback state changes.
type StateChange struct {
	Previous State
	Current  State
}

// TrackChange is emitted when the engine starts a track.
//
// Emitted by enqueue on an idle queue, Next, Previous, Shuffle and by
// Tick when a finished track advances. Not emitted by Pause or Resume.
type TrackChange struct {
	Previous *Track
	Current  *Track
	Index    int
}

// QueueChange is emitted when the queue contents change.
type QueueChange struct {
	Tracks []Track
	Index  int
}

// ErrorEvent is emitted when the audio engine fails.
type ErrorEvent struct {
	Operation string // e.g., "play"
	Path      string // track path if applicable
	Err       error
}
