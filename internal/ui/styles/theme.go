// Package styles holds the lipgloss theme shared by the terminal views.
package styles

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette and pre-built styles for the application.
type Theme struct {
	Primary   lipgloss.Color // selection, active tab
	Secondary lipgloss.Color // header gradient end

	FgBase  lipgloss.Color
	FgMuted lipgloss.Color

	BgCursor lipgloss.Color

	Border      lipgloss.Color
	BorderFocus lipgloss.Color

	Error   lipgloss.Color
	Warning lipgloss.Color

	styles *Styles
}

// Styles contains pre-built lipgloss styles for common UI patterns.
type Styles struct {
	Base      lipgloss.Style
	Muted     lipgloss.Style
	Selected  lipgloss.Style // highlighted list row
	Playing   lipgloss.Style // row of the track under the queue cursor
	TabActive lipgloss.Style
	TabIdle   lipgloss.Style
	Notice    lipgloss.Style
	Error     lipgloss.Style
	Help      lipgloss.Style
}

var defaultTheme = Theme{
	Primary:   lipgloss.Color("#a78bfa"),
	Secondary: lipgloss.Color("#f1a208"),

	FgBase:  lipgloss.Color("#c0c0c0"),
	FgMuted: lipgloss.Color("#808080"),

	BgCursor: lipgloss.Color("#303030"),

	Border:      lipgloss.Color("#585858"),
	BorderFocus: lipgloss.Color("#a78bfa"),

	Error:   lipgloss.Color("#ff5555"),
	Warning: lipgloss.Color("#f1a208"),
}

// T returns the default theme.
func T() *Theme {
	return &defaultTheme
}

// S returns the pre-built styles for this theme.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)
	return &Styles{
		Base:      base,
		Muted:     lipgloss.NewStyle().Foreground(t.FgMuted),
		Selected:  lipgloss.NewStyle().Reverse(true),
		Playing:   lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		TabActive: lipgloss.NewStyle().Reverse(true).Bold(true).Padding(0, 1),
		TabIdle:   base.Padding(0, 1),
		Notice:    lipgloss.NewStyle().Foreground(t.Warning),
		Error:     lipgloss.NewStyle().Foreground(t.Error),
		Help:      lipgloss.NewStyle().Foreground(t.FgMuted),
	}
}
