package playback

import "github.com/catvibes/catvibes/internal/playlist"

// Track is a queue entry.
type Track = playlist.Track
