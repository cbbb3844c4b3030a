package download

import (
	"context"
	"fmt"
	"strings"

	"github.com/lrstanley/go-ytdlp"
)

// WatchURL is the page yt-dlp resolves a track id against.
const WatchURL = "https://www.youtube.com/watch?v="

// YTDLP fetches audio with the yt-dlp executable, converting it to mp3 with
// the thumbnail and metadata embedded.
type YTDLP struct {
	// AudioQuality is passed to --audio-quality; "0" is best.
	AudioQuality string
}

// NewYTDLP creates a fetcher requesting the best audio quality.
func NewYTDLP() *YTDLP {
	return &YTDLP{AudioQuality: "0"}
}

func (y *YTDLP) command(dest string) *ytdlp.Command {
	return ytdlp.New().
		ExtractAudio().
		AudioFormat(strings.TrimPrefix(SongExt, ".")).
		AudioQuality(y.AudioQuality).
		EmbedThumbnail().
		EmbedMetadata().
		NoPlaylist().
		Output(dest)
}

// Fetch downloads the audio of id into dest.
func (y *YTDLP) Fetch(ctx context.Context, id, dest string) error {
	res, err := y.command(dest).Run(ctx, WatchURL+id)
	if err != nil {
		if res != nil && res.Stderr != "" {
			return fmt.Errorf("yt-dlp %s: %w: %s", id, err, lastLine(res.Stderr))
		}
		return fmt.Errorf("yt-dlp %s: %w", id, err)
	}
	return nil
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}
