// Package mpris exposes the player over the MPRIS D-Bus interface so
// desktop media keys and widgets can control it.
package mpris

import (
	"github.com/catvibes/catvibes/internal/library"
	"github.com/catvibes/catvibes/internal/playback"
)

// Command is a transport request received over D-Bus.
type Command int

const (
	CommandPlay Command = iota
	CommandPause
	CommandPlayPause
	CommandStop
	CommandNext
	CommandPrevious
)

func (c Command) String() string {
	switch c {
	case CommandPlay:
		return "play"
	case CommandPause:
		return "pause"
	case CommandPlayPause:
		return "play_pause"
	case CommandStop:
		return "stop"
	case CommandNext:
		return "next"
	case CommandPrevious:
		return "previous"
	}
	return "unknown"
}

// Player is what the adapter needs from the application. Snapshot and
// Lookup are called from the D-Bus goroutine and must be safe for
// concurrent use; Send must hand the command to the UI loop.
type Player interface {
	Snapshot() playback.Snapshot
	Lookup(id string) (library.Metadata, bool)
	Send(cmd Command)
}
