package app

import (
	"fmt"
	"strings"

	"github.com/catvibes/catvibes/internal/keymap"
	"github.com/catvibes/catvibes/internal/library"
	"github.com/catvibes/catvibes/internal/ui/playerbar"
	"github.com/catvibes/catvibes/internal/ui/render"
	"github.com/catvibes/catvibes/internal/ui/styles"
)

const (
	maxTabTitle  = 24
	tabSeparator = " │ "
	// header, separator and status line
	chromeHeight = 3
)

// View renders the tab bar, the current tab, the status line and the
// player bar.
func (m *Model) View() string {
	if m.quitting || m.width == 0 || m.height == 0 {
		return ""
	}
	st := styles.T().S()

	bodyHeight := m.listHeight()
	var body string
	switch {
	case m.search.active():
		body = m.search.view(m.cfg.SongString, m.width, bodyHeight)
	case m.prompt.isOpen:
		body = m.prompt.input.View()
	default:
		body = m.listView(bodyHeight)
	}

	bar := playerbar.Render(
		playerbar.NewState(m.engine.Snapshot(), m.state.Tracks()),
		m.cfg.InfoString, m.cfg.BarLength, m.width,
	)

	return strings.Join([]string{
		m.tabBar(),
		st.Muted.Render(strings.Repeat("─", m.width)),
		fillLines(body, bodyHeight),
		m.statusLine(),
		fillLines(bar, playerbar.Height),
	}, "\n")
}

func (m *Model) listHeight() int {
	return max(m.height-chromeHeight-playerbar.Height, 1)
}

func (m *Model) tabBar() string {
	st := styles.T().S()
	titles := make([]string, len(m.tabs))
	for i, t := range m.tabs {
		title := render.Truncate(t.Title(), maxTabTitle)
		if i == m.current {
			titles[i] = st.TabActive.Render(title)
		} else {
			titles[i] = st.TabIdle.Render(title)
		}
	}
	line := styles.Logo() + "  " + strings.Join(titles, st.Muted.Render(tabSeparator))
	return render.TruncateEllipsis(line, m.width)
}

func (m *Model) listView(height int) string {
	st := styles.T().S()
	ids, row := m.Current().Visible(height)
	if len(ids) == 0 {
		return st.Muted.Render(m.emptyHint())
	}

	snap := m.engine.Snapshot()
	playing := ""
	if snap.Track != nil && snap.State.IsActive() {
		playing = snap.Track.ID
	}

	store := m.state.Tracks()
	lines := make([]string, len(ids))
	for i, id := range ids {
		meta, ok := store.Get(id)
		if !ok {
			meta = library.Metadata{ID: id, Title: id}
		}
		line := render.Fit(library.Render(m.cfg.SongString, meta), m.width)
		switch {
		case i == row:
			line = st.Selected.Render(line)
		case id == playing:
			line = st.Playing.Render(line)
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

func (m *Model) emptyHint() string {
	if m.Current().Handles(keymap.ActionAdd) && m.deps.Search != nil {
		keys := m.keys.KeysFor(keymap.ActionAdd)
		if len(keys) > 0 {
			return "empty playlist, press " + keys[0] + " to find a song"
		}
	}
	return "no songs yet"
}

func (m *Model) statusLine() string {
	st := styles.T().S()
	var line string
	switch {
	case m.notice != "":
		line = st.Error.Render(m.notice)
	case m.downloading > 0:
		line = st.Notice.Render(downloadingText(m.downloading))
	default:
		help := append(keymap.Filter(m.bindings, "tab"), keymap.Filter(m.bindings, "playback")...)
		line = st.Help.Render(keymap.Help(help, " · "))
	}
	return render.TruncateEllipsis(line, m.width)
}

func downloadingText(n int) string {
	if n == 1 {
		return "downloading 1 song"
	}
	return fmt.Sprintf("downloading %d songs", n)
}

// fillLines pads or cuts s to exactly n lines.
func fillLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	for len(lines) < n {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
