package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/catvibes/catvibes/internal/errmsg"
	"github.com/catvibes/catvibes/internal/keymap"
	"github.com/catvibes/catvibes/internal/mpris"
	"github.com/catvibes/catvibes/internal/tab"
)

// Update handles messages and returns the model and commands to run.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	if m.quitting {
		return m, cmd
	}

	m.pruneCurrent()
	m.queue(cmd)
	if m.dirty {
		m.dirty = false
		m.saveGen++
		m.queue(saveCmd(m.saveGen))
	}

	cmds := m.cmds
	m.cmds = nil
	return m, tea.Batch(cmds...)
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return nil

	case tickMsg:
		m.fail(errmsg.OpPlaybackStart, m.engine.Tick())
		return TickCmd(m.cfg.PollEvery())

	case deliveryMsg:
		msg()
		return m.delivery.wait()

	case saveMsg:
		if msg.gen == m.saveGen {
			m.fail(errmsg.OpSave, m.state.SaveAll())
		}
		return nil

	case searchResultMsg:
		return m.handleSearchResult(msg)

	case spinner.TickMsg:
		if m.search.active() && m.search.stage == stageLoading {
			var cmd tea.Cmd
			m.search.spinner, cmd = m.search.spinner.Update(msg)
			return cmd
		}
		return nil

	case mpris.Command:
		m.fail(errmsg.OpPlaybackStart, m.handleRemote(msg))
		return nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.search.active() && m.search.stage == stageQuery {
		var cmd tea.Cmd
		m.search.input, cmd = m.search.input.Update(msg)
		return cmd
	}
	if m.prompt.isOpen {
		var cmd tea.Cmd
		m.prompt.input, cmd = m.prompt.input.Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}
	switch {
	case m.search.active():
		return m.handleSearchKey(msg)
	case m.prompt.isOpen:
		return m.handlePromptKey(msg)
	case m.notice != "":
		m.notice = ""
		return nil
	}

	action := m.keys.Resolve(msg.String())
	switch action {
	case "":
		return nil
	case keymap.ActionQuit:
		return m.quit()
	case keymap.ActionNextTab:
		m.current = (m.current + 1) % len(m.tabs)
		return nil
	case keymap.ActionPrevTab:
		m.current = (m.current - 1 + len(m.tabs)) % len(m.tabs)
		return nil
	case keymap.ActionNewPlaylist:
		return m.prompt.open()
	}

	if _, err := m.Current().Handle(action); err != nil {
		m.fail(opFor(action), err)
	}
	return nil
}

// opFor names the operation behind a tab action for error notices.
func opFor(action keymap.Action) errmsg.Op {
	switch action {
	case keymap.ActionAdd:
		return errmsg.OpSearch
	case keymap.ActionDelete:
		return errmsg.OpPlaylistRemove
	default:
		return errmsg.OpPlaybackStart
	}
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	s := &m.search
	if msg.String() == "esc" {
		s.close()
		return nil
	}

	switch s.stage {
	case stageQuery:
		if msg.String() == "enter" {
			q := s.submit()
			if q == "" {
				return nil
			}
			return tea.Batch(
				searchCmd(m.ctx, m.catalog, q, m.cfg.Results),
				s.spinner.Tick,
			)
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return cmd

	case stageResults:
		if msg.String() == "enter" {
			pick := s.pick
			track, ok := s.chosen()
			s.close()
			if ok {
				pick(track)
			}
			return nil
		}
		s.move(m.keys.ResolveIn(msg.String(), keymap.ContextNavigation))
	}
	return nil
}

func (m *Model) handleSearchResult(msg searchResultMsg) tea.Cmd {
	if msg.err != nil {
		if m.search.active() && m.search.query == msg.query {
			m.search.close()
		}
		m.fail(errmsg.OpSearch, msg.err)
		return nil
	}
	m.search.answer(msg)
	return nil
}

func (m *Model) handlePromptKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.prompt.close()
		return nil
	case "enter":
		name := m.prompt.value()
		m.prompt.close()
		if name == "" {
			return nil
		}
		m.fail(errmsg.OpPlaylistCreate, m.createPlaylist(name))
		return nil
	}
	var cmd tea.Cmd
	m.prompt.input, cmd = m.prompt.input.Update(msg)
	return cmd
}

func (m *Model) createPlaylist(name string) error {
	p, err := m.state.CreatePlaylist(name)
	if err != nil {
		return err
	}
	m.tabs = append(m.tabs, tab.NewPlaylistTab(p, m.deps))
	m.logger.WithField("playlist", name).Info("playlist created")
	m.markDirty()
	return nil
}

func (m *Model) handleRemote(cmd mpris.Command) error {
	m.logger.WithField("command", cmd.String()).Debug("remote command")
	switch cmd {
	case mpris.CommandPlay:
		return m.engine.Play()
	case mpris.CommandPause:
		m.engine.Pause()
	case mpris.CommandPlayPause:
		m.engine.Toggle()
	case mpris.CommandStop:
		m.engine.Stop()
	case mpris.CommandNext:
		return m.engine.Next()
	case mpris.CommandPrevious:
		return m.engine.Previous()
	}
	return nil
}

// pruneCurrent drops references to tracks missing from the store and
// raises one notice per missing id.
func (m *Model) pruneCurrent() {
	missing := m.Current().Prune()
	if len(missing) == 0 {
		return
	}
	notices := make([]string, len(missing))
	for i, id := range missing {
		notices[i] = errmsg.NotFound(id)
	}
	m.notice = strings.Join(notices, " ")
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	m.cancel()
	m.engine.Stop()
	if err := m.state.SaveAll(); err != nil {
		m.logger.WithError(err).Error("save on quit failed")
	}
	m.logger.Info("quit")
	return tea.Quit
}
