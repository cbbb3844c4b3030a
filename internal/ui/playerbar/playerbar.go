// Package playerbar renders the one-line player status shown below the tabs.
package playerbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/catvibes/catvibes/internal/library"
	"github.com/catvibes/catvibes/internal/playback"
	"github.com/catvibes/catvibes/internal/ui/render"
)

const (
	playSymbol  = "▶"
	pauseSymbol = "⏸"
	stopSymbol  = "■"
)

// Height is the number of rows the bar occupies, borders included.
const Height = 3

// State holds everything needed to render the player bar.
type State struct {
	Playing  bool
	Paused   bool
	Track    library.Metadata
	Elapsed  time.Duration
	Index    int
	QueueLen int
}

// NewState builds a State from an engine snapshot. Metadata is looked up
// in store; a track without metadata shows its id as title.
func NewState(s playback.Snapshot, store *library.Store) State {
	if s.Track == nil {
		return State{}
	}
	m, ok := store.Get(s.Track.ID)
	if !ok {
		m = library.Metadata{ID: s.Track.ID, Title: s.Track.ID}
	}
	return State{
		Playing:  s.State == playback.StatePlaying,
		Paused:   s.State == playback.StatePaused,
		Track:    m,
		Elapsed:  s.Elapsed,
		Index:    s.Index,
		QueueLen: s.QueueLen,
	}
}

// Active reports whether there is a track to show.
func (s State) Active() bool {
	return s.Track.ID != ""
}

// Info fills the info template: TITLE, ARTIST and LENGHT as for list
// entries, CURRENT_TIME with the elapsed time and BAR with a progress bar
// of barLength cells.
func Info(template string, s State, barLength int) string {
	r := strings.NewReplacer(
		library.PlaceholderCurrentTime, library.FormatTime(s.Elapsed),
		library.PlaceholderBar, ProgressBar(s.Elapsed, s.Track.Length(), barLength),
		library.PlaceholderTitle, s.Track.Title,
		library.PlaceholderArtist, s.Track.ArtistName(),
		library.PlaceholderLength, s.Track.DisplayDuration(),
	)
	return r.Replace(template)
}

// ProgressBar renders elapsed/total as ═══‣──── in width cells.
func ProgressBar(elapsed, total time.Duration, width int) string {
	if width <= 0 {
		return ""
	}
	progress := 0
	if total > 0 {
		progress = int(float64(elapsed) / float64(total) * float64(width))
	}
	progress = min(max(progress, 0), width-1)
	return strings.Repeat("═", progress) + "‣" + strings.Repeat("─", width-progress-1)
}

// Render returns the bordered player bar for the given width, or an empty
// string when nothing is queued.
func Render(s State, template string, barLength, width int) string {
	if !s.Active() {
		return ""
	}

	status := stopSymbol
	switch {
	case s.Playing:
		status = playSymbol
	case s.Paused:
		status = pauseSymbol
	}

	innerWidth := max(width-6, 0)
	line := status + "  " + Info(template, s, barLength)
	if s.QueueLen > 1 {
		line += "  " + positionStyle.Render(position(s))
	}
	line = render.TruncateEllipsis(line, innerWidth)

	return barStyle.Padding(0, 2).Width(width - 2).Render(line)
}

func position(s State) string {
	return fmt.Sprintf("[%d/%d]", s.Index+1, s.QueueLen)
}

var positionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
