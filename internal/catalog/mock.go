package catalog

import (
	"context"
	"strings"
	"sync"

	"github.com/catvibes/catvibes/internal/library"
)

// Mock is an in-memory Searcher for tests.
type Mock struct {
	mu      sync.Mutex
	tracks  []library.Metadata
	err     error
	queries []string
}

// NewMock creates a mock answering from tracks.
func NewMock(tracks ...library.Metadata) *Mock {
	return &Mock{tracks: tracks}
}

// SetError makes every call fail with err.
func (m *Mock) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Queries returns the search queries received.
func (m *Mock) Queries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.queries...)
}

// Search returns tracks whose title contains query, case-insensitively.
func (m *Mock) Search(_ context.Context, query string, _ Kind, limit int) ([]library.Metadata, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.queries = append(m.queries, query)
	if m.err != nil {
		return nil, m.err
	}
	var out []library.Metadata
	for _, t := range m.tracks {
		if len(out) == limit {
			break
		}
		if strings.Contains(strings.ToLower(t.Title), strings.ToLower(query)) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *Mock) Lookup(_ context.Context, ids []string) ([]library.Metadata, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	var out []library.Metadata
	for _, id := range ids {
		for _, t := range m.tracks {
			if t.ID == id {
				out = append(out, t)
				break
			}
		}
	}
	return out, nil
}

var (
	_ Searcher = (*Mock)(nil)
	_ Searcher = (*YouTube)(nil)
)
