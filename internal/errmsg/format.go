// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import (
	"errors"
	"fmt"

	"github.com/catvibes/catvibes/internal/catalog"
)

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Catalog operations
	OpSearch Op = "search"
	OpLookup Op = "look up songs"

	// Download operations
	OpDownload Op = "download song"

	// Playlist operations
	OpPlaylistCreate Op = "create playlist"
	OpPlaylistRemove Op = "remove song"

	// Playback operations
	OpPlaybackStart Op = "start playback"

	// Persistence
	OpSave Op = "save"
	OpLoad Op = "load data"

	// Maintenance
	OpClean  Op = "clean up songs"
	OpImport Op = "import playlist"
	OpReset  Op = "reset"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, catalog.ErrOffline) {
		return fmt.Sprintf("Failed to %s: you seem to be offline", op)
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}

// NotFound is the notice shown when a playlist refers to an unknown song.
func NotFound(id string) string {
	return fmt.Sprintf("a song with id %s was not found.", id)
}
