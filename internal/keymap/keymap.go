package keymap

import "strings"

// Binding contexts. The order of All is the lookup order of a Resolver.
const (
	ContextGlobal     = "global"
	ContextNavigation = "navigation"
	ContextTab        = "tab"
	ContextPlayback   = "playback"
)

// Binding ties keys to an action and describes it for the help line.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string
}

// All contains the default key bindings.
var All = []Binding{
	// Global
	{ActionQuit, []string{"q", "esc", "ctrl+c"}, "Quit", ContextGlobal},
	{ActionPrevTab, []string{"left"}, "Previous tab", ContextGlobal},
	{ActionNextTab, []string{"right"}, "Next tab", ContextGlobal},
	{ActionNewPlaylist, []string{"l"}, "New playlist", ContextGlobal},

	// Navigation
	{ActionMoveUp, []string{"up", "k"}, "Move up", ContextNavigation},
	{ActionMoveDown, []string{"down", "j"}, "Move down", ContextNavigation},
	{ActionJumpStart, []string{"home", "g"}, "First entry", ContextNavigation},
	{ActionJumpEnd, []string{"end", "G"}, "Last entry", ContextNavigation},

	// Tab
	{ActionAdd, []string{"f"}, "Find and add song", ContextTab},
	{ActionDelete, []string{"d"}, "Remove song", ContextTab},
	{ActionPlayFromHere, []string{"p"}, "Play from here", ContextTab},
	{ActionEnqueue, []string{"a"}, "Add to queue", ContextTab},

	// Playback
	{ActionPlayPause, []string{" ", "space"}, "Play/pause", ContextPlayback},
	{ActionShuffle, []string{"r"}, "Shuffle", ContextPlayback},
	{ActionNextTrack, []string{"n"}, "Next song", ContextPlayback},
	{ActionPrevTrack, []string{"b"}, "Previous song", ContextPlayback},
}

// ByContext returns the default bindings of context.
func ByContext(context string) []Binding {
	return Filter(All, context)
}

// Filter returns the bindings of context, in order.
func Filter(bindings []Binding, context string) []Binding {
	var result []Binding
	for _, kb := range bindings {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}

// Help renders bindings as "key description" pairs separated by sep,
// showing the first key of each binding.
func Help(bindings []Binding, sep string) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if len(b.Keys) == 0 {
			continue
		}
		key := b.Keys[0]
		if key == " " {
			key = "space"
		}
		parts = append(parts, key+" "+strings.ToLower(b.Description))
	}
	return strings.Join(parts, sep)
}

// WithOverrides returns a copy of bindings where the keys of the actions
// present in overrides are replaced.
func WithOverrides(bindings []Binding, overrides map[string][]string) []Binding {
	out := make([]Binding, len(bindings))
	copy(out, bindings)
	for i, b := range out {
		if keys, ok := overrides[string(b.Action)]; ok && len(keys) > 0 {
			out[i].Keys = append([]string(nil), keys...)
		}
	}
	return out
}
