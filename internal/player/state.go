package player

// State is the audio engine state.
//
//	Stopped ──Start──▶ Playing ──Pause──▶ Paused
//	   ▲                 │  ▲               │
//	   └──────Stop───────┘  └────Resume─────┘
//
// Stop is valid from any state. Pause from Stopped or Paused and Resume
// from Stopped or Playing are ignored.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

// String returns the state name for debugging.
func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive returns true if a track is loaded (Playing or Paused).
func (s State) IsActive() bool {
	return s == Playing || s == Paused
}
