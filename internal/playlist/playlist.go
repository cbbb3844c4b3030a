// Package playlist implements the ephemeral play queue driven by the
// playback engine.
package playlist

// Track is a single queue entry: the catalog id and the file it plays from.
type Track struct {
	ID   string
	Path string
}

// IDs returns the ids of tracks, preserving order.
func IDs(tracks []Track) []string {
	ids := make([]string, len(tracks))
	for i, t := range tracks {
		ids[i] = t.ID
	}
	return ids
}
