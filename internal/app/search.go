package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/catvibes/catvibes/internal/keymap"
	"github.com/catvibes/catvibes/internal/library"
	"github.com/catvibes/catvibes/internal/ui/cursor"
	"github.com/catvibes/catvibes/internal/ui/render"
	"github.com/catvibes/catvibes/internal/ui/styles"
)

type searchStage int

const (
	stageQuery searchStage = iota
	stageLoading
	stageResults
)

// searchPopup asks for a query, shows the catalog answer and hands the
// chosen track to pick.
type searchPopup struct {
	input   textinput.Model
	spinner spinner.Model
	stage   searchStage
	query   string
	results []library.Metadata
	cursor  cursor.Cursor
	pick    func(library.Metadata)
}

func newSearchPopup() searchPopup {
	ti := textinput.New()
	ti.Prompt = "Search: "
	ti.Placeholder = "title or artist"
	ti.CharLimit = 256

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.T().S().Notice

	return searchPopup{input: ti, spinner: s}
}

func (s *searchPopup) active() bool {
	return s.pick != nil
}

func (s *searchPopup) open(pick func(library.Metadata)) tea.Cmd {
	s.pick = pick
	s.stage = stageQuery
	s.query = ""
	s.results = nil
	s.cursor = cursor.New(0)
	s.input.Reset()
	return s.input.Focus()
}

func (s *searchPopup) close() {
	s.pick = nil
	s.results = nil
	s.input.Blur()
}

// submit moves to the loading stage and returns the query, or "" if there
// is nothing to search.
func (s *searchPopup) submit() string {
	q := strings.TrimSpace(s.input.Value())
	if q == "" {
		return ""
	}
	s.query = q
	s.stage = stageLoading
	s.input.Blur()
	return q
}

// answer shows results if they belong to the pending query.
func (s *searchPopup) answer(msg searchResultMsg) bool {
	if !s.active() || s.stage != stageLoading || msg.query != s.query {
		return false
	}
	s.results = msg.results
	s.cursor = cursor.New(0)
	s.stage = stageResults
	return true
}

// chosen returns the selected result.
func (s *searchPopup) chosen() (library.Metadata, bool) {
	if s.stage != stageResults || len(s.results) == 0 {
		return library.Metadata{}, false
	}
	return s.results[s.cursor.Pos()], true
}

// move applies a navigation action to the result cursor.
func (s *searchPopup) move(action keymap.Action) {
	n := len(s.results)
	switch action {
	case keymap.ActionMoveUp:
		s.cursor.Up(n)
	case keymap.ActionMoveDown:
		s.cursor.Down(n)
	case keymap.ActionJumpStart:
		s.cursor.Jump(0, n)
	case keymap.ActionJumpEnd:
		s.cursor.JumpEnd(n)
	}
}

func (s *searchPopup) view(songString string, width, height int) string {
	st := styles.T().S()
	lines := make([]string, 0, height)

	switch s.stage {
	case stageQuery:
		lines = append(lines, s.input.View())
		lines = append(lines, st.Help.Render("enter search · esc cancel"))
	case stageLoading:
		lines = append(lines, fmt.Sprintf("%s searching for %q", s.spinner.View(), s.query))
	case stageResults:
		if len(s.results) == 0 {
			lines = append(lines, st.Muted.Render(fmt.Sprintf("Results for %q", s.query)))
			lines = append(lines, st.Muted.Render("no results"))
			break
		}
		lines = append(lines, render.Row(
			st.Muted.Render(fmt.Sprintf("Results for %q", s.query)),
			st.Muted.Render(fmt.Sprintf("%d/%d", s.cursor.Pos()+1, len(s.results))),
			width,
		))
		start, end := s.cursor.VisibleRange(len(s.results), max(height-2, 1))
		for i := start; i < end; i++ {
			row := render.Fit(library.Render(songString, s.results[i]), width)
			if i == s.cursor.Pos() {
				row = st.Selected.Render(row)
			}
			lines = append(lines, row)
		}
		lines = append(lines, st.Help.Render("enter add · esc cancel"))
	}

	for i, l := range lines {
		lines[i] = render.TruncateEllipsis(l, width)
	}
	return strings.Join(lines, "\n")
}
