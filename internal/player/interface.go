// Package player drives the audio output for a single file at a time.
//
// An engine owns at most one active track. The playback package polls
// Finished and Elapsed from its tick loop rather than receiving callbacks.
package player

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotStarted is returned by Start when the audio backend could not
// begin playing the file.
var ErrNotStarted = errors.New("audio engine not started")

// Interface defines the audio engine contract used by playback.
type Interface interface {
	// Start stops any active track and begins playing path.
	Start(path string) error
	Stop()
	Pause()
	Resume()
	State() State
	// Finished reports whether the track passed to the last Start has
	// reached its natural end.
	Finished() bool
	Elapsed() time.Duration
}

// Engine names accepted by New.
const (
	EngineBeep   = "beep"
	EngineFFPlay = "ffplay"
)

// New returns the engine registered under name.
func New(name string) (Interface, error) {
	switch name {
	case "", EngineBeep:
		return NewBeep(), nil
	case EngineFFPlay:
		return NewFFPlay(), nil
	default:
		return nil, fmt.Errorf("unknown audio engine %q", name)
	}
}

var (
	_ Interface = (*Beep)(nil)
	_ Interface = (*FFPlay)(nil)
)
