package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// namePrompt reads the name of a new playlist.
type namePrompt struct {
	input  textinput.Model
	isOpen bool
}

func newNamePrompt() namePrompt {
	ti := textinput.New()
	ti.Prompt = "Name of the playlist: "
	ti.CharLimit = 128
	return namePrompt{input: ti}
}

func (p *namePrompt) open() tea.Cmd {
	p.isOpen = true
	p.input.Reset()
	return p.input.Focus()
}

func (p *namePrompt) close() {
	p.isOpen = false
	p.input.Blur()
}

func (p *namePrompt) value() string {
	return strings.TrimSpace(p.input.Value())
}
