package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/catvibes/catvibes/internal/catalog"
)

// saveDelay batches the flushes caused by rapid edits.
const saveDelay = 500 * time.Millisecond

// TickCmd returns a command that sends tickMsg after every.
func TickCmd(every time.Duration) tea.Cmd {
	return tea.Tick(every, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func saveCmd(gen int) tea.Cmd {
	return tea.Tick(saveDelay, func(time.Time) tea.Msg {
		return saveMsg{gen: gen}
	})
}

func searchCmd(ctx context.Context, s catalog.Searcher, query string, limit int) tea.Cmd {
	return func() tea.Msg {
		results, err := s.Search(ctx, query, catalog.KindSongs, limit)
		return searchResultMsg{query: query, results: results, err: err}
	}
}
