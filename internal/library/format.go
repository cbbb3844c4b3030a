package library

import (
	"fmt"
	"strings"
	"time"
)

// Template placeholders.
const (
	PlaceholderTitle       = "TITLE"
	PlaceholderArtist      = "ARTIST"
	PlaceholderLength      = "LENGHT"
	PlaceholderCurrentTime = "CURRENT_TIME"
	PlaceholderBar         = "BAR"
)

// DefaultSongString is the list entry template.
const DefaultSongString = "TITLE - ARTIST  LENGHT"

// Render substitutes TITLE, ARTIST and LENGHT in template with values from m.
func Render(template string, m Metadata) string {
	r := strings.NewReplacer(
		PlaceholderTitle, m.Title,
		PlaceholderArtist, m.ArtistName(),
		PlaceholderLength, m.DisplayDuration(),
	)
	return r.Replace(template)
}

// FormatTime formats d without leading zero fields: m:ss below an hour,
// h:mm:ss above.
func FormatTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	h, m, s := total/3600, (total/60)%60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
