package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/catvibes/catvibes/internal/library"
	"github.com/catvibes/catvibes/internal/mpris"
	"github.com/catvibes/catvibes/internal/playback"
)

// Sender delivers messages to a running program.
type Sender interface {
	Send(msg tea.Msg)
}

// Remote serves the MPRIS adapter. Reads go to the engine snapshot and
// the store; commands are sent to the program and run inside Update.
type Remote struct {
	Engine  *playback.Engine
	Store   *library.Store
	Program Sender
}

func (r Remote) Snapshot() playback.Snapshot { return r.Engine.Snapshot() }

func (r Remote) Lookup(id string) (library.Metadata, bool) { return r.Store.Get(id) }

func (r Remote) Send(cmd mpris.Command) { r.Program.Send(cmd) }

var _ mpris.Player = Remote{}
