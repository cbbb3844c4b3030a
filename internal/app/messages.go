// Package app is the terminal front end: a bubbletea model that owns the
// tabs, the search popup and the player bar, and drives the playback
// engine from its event loop.
package app

import (
	"time"

	"github.com/catvibes/catvibes/internal/library"
)

// tickMsg polls the playback engine.
type tickMsg time.Time

// deliveryMsg carries a download completion to run inside Update.
type deliveryMsg func()

// saveMsg flushes state if no mutation happened since gen was issued.
type saveMsg struct {
	gen int
}

// searchResultMsg is the answer of the catalog to query.
type searchResultMsg struct {
	query   string
	results []library.Metadata
	err     error
}
