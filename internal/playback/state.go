// Package playback implements the player engine: the play queue, its
// cursor and the transport controls driving an audio engine.
package playback

// State represents the engine state.
//
// Stopped covers both an empty queue and a queue that played through its
// last entry; in the latter case the entries and cursor are retained.
type State int

const (
	StateStopped State = iota
	StatePlaying
	StatePaused
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive returns true if playback is active (playing or paused).
func (s State) IsActive() bool {
	return s == StatePlaying || s == StatePaused
}
