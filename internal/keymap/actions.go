// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit        Action = "quit"
	ActionPrevTab     Action = "prev_tab"
	ActionNextTab     Action = "next_tab"
	ActionNewPlaylist Action = "new_playlist"

	// Navigation actions
	ActionMoveUp    Action = "move_up"
	ActionMoveDown  Action = "move_down"
	ActionJumpStart Action = "jump_start"
	ActionJumpEnd   Action = "jump_end"

	// Tab actions
	ActionAdd          Action = "add"            // search, download, append
	ActionDelete       Action = "delete"         // remove entry (purge in all tracks)
	ActionPlayFromHere Action = "play_from_here" // replace queue from selection
	ActionEnqueue      Action = "enqueue"        // append selection to queue

	// Playback actions
	ActionPlayPause Action = "play_pause"
	ActionShuffle   Action = "shuffle"
	ActionNextTrack Action = "next_track"
	ActionPrevTrack Action = "prev_track"
)
