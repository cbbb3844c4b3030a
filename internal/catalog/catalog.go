// Package catalog searches the online music catalog for tracks to
// download.
package catalog

import (
	"context"
	"errors"
	"net"
	"net/url"

	"github.com/catvibes/catvibes/internal/library"
)

var (
	// ErrOffline is returned when the catalog cannot be reached.
	ErrOffline = errors.New("catalog unreachable")
	// ErrNoAPIKey is returned when no API key is configured.
	ErrNoAPIKey = errors.New("no catalog API key configured")
)

// Kind filters search results.
type Kind string

const (
	KindSongs  Kind = "songs"
	KindVideos Kind = "videos"
)

// Searcher is the catalog-search collaborator.
type Searcher interface {
	// Search returns up to limit candidates for query, best match first.
	Search(ctx context.Context, query string, kind Kind, limit int) ([]library.Metadata, error)
	// Lookup returns metadata for known ids, in the order given. Unknown
	// ids are skipped.
	Lookup(ctx context.Context, ids []string) ([]library.Metadata, error)
}

// isOffline reports whether err is a transport failure rather than an
// answer from the service.
func isOffline(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
