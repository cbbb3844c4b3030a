// Package tab binds a list of tracks to the player and the download
// coordinator. One Tab exists per visible playlist.
package tab

import (
	"fmt"
	"slices"

	log "github.com/sirupsen/logrus"

	"github.com/catvibes/catvibes/internal/download"
	"github.com/catvibes/catvibes/internal/keymap"
	"github.com/catvibes/catvibes/internal/library"
	"github.com/catvibes/catvibes/internal/playback"
	"github.com/catvibes/catvibes/internal/playlists"
	"github.com/catvibes/catvibes/internal/ui/cursor"
)

// Player is the part of the playback engine a tab drives.
type Player interface {
	Clear()
	Enqueue(t playback.Track) error
	EnqueueAll(tracks []playback.Track) error
	Toggle()
	Shuffle() error
	Next() error
	Previous() error
}

// Downloader fetches tracks on demand.
type Downloader interface {
	Request(track library.Metadata, onDone download.Observer)
	Path(id string) string
}

// Deps are the collaborators shared by every tab.
type Deps struct {
	Player    Player
	Store     *library.Store
	Downloads Downloader
	// Search asks the user for a track and calls pick with the choice.
	// It returns once the search UI is open; pick may never be called.
	Search func(pick func(library.Metadata))
	// Changed is called after the list or the store was mutated.
	Changed func()
}

// Command is a zero-argument handler bound to an action.
type Command func() error

// Tab is a selectable view of a Source with a command table.
type Tab struct {
	source   Source
	deps     Deps
	cursor   cursor.Cursor
	commands map[keymap.Action]Command
	logger   *log.Entry
}

// New creates a tab over source with the navigation, playback and queue
// commands registered. Callers add source specific commands with Register.
func New(source Source, deps Deps) *Tab {
	t := &Tab{
		source:   source,
		deps:     deps,
		commands: make(map[keymap.Action]Command),
		logger:   log.WithFields(log.Fields{"module": "tab", "tab": source.Title()}),
	}

	t.Register(keymap.ActionMoveUp, t.up)
	t.Register(keymap.ActionMoveDown, t.down)
	t.Register(keymap.ActionJumpStart, t.jumpStart)
	t.Register(keymap.ActionJumpEnd, t.jumpEnd)
	t.Register(keymap.ActionPlayFromHere, t.PlayFromHere)
	t.Register(keymap.ActionEnqueue, t.EnqueueSelected)
	t.Register(keymap.ActionDelete, t.RemoveSelected)
	t.Register(keymap.ActionPlayPause, func() error { deps.Player.Toggle(); return nil })
	t.Register(keymap.ActionShuffle, deps.Player.Shuffle)
	t.Register(keymap.ActionNextTrack, deps.Player.Next)
	t.Register(keymap.ActionPrevTrack, deps.Player.Previous)
	return t
}

// NewPlaylistTab creates a tab over a named playlist. Tracks can be
// searched and added.
func NewPlaylistTab(p *playlists.Playlist, deps Deps) *Tab {
	t := New(NewPlaylistSource(p), deps)
	t.Register(keymap.ActionAdd, t.Add)
	return t
}

// NewAllTracksTab creates the tab listing every stored track. Deleting
// purges the track everywhere; adding is not available.
func NewAllTracksTab(store *library.Store, registry *playlists.Registry, deps Deps) *Tab {
	return New(NewAllTracksSource(store, registry), deps)
}

// Register binds fn to action, replacing any previous handler.
func (t *Tab) Register(action keymap.Action, fn Command) {
	t.commands[action] = fn
}

// Unregister removes the handler of action.
func (t *Tab) Unregister(action keymap.Action) {
	delete(t.commands, action)
}

// Handles reports whether action has a handler.
func (t *Tab) Handles(action keymap.Action) bool {
	_, ok := t.commands[action]
	return ok
}

// Handle runs the handler bound to action. It reports false if the action
// is not bound.
func (t *Tab) Handle(action keymap.Action) (bool, error) {
	fn, ok := t.commands[action]
	if !ok {
		return false, nil
	}
	return true, fn()
}

func (t *Tab) Title() string         { return t.source.Title() }
func (t *Tab) Source() Source        { return t.source }
func (t *Tab) Len() int              { return t.source.Len() }
func (t *Tab) Selected() int         { return t.cursor.Pos() }
func (t *Tab) Select(i int)          { t.cursor.Jump(i, t.source.Len()) }
func (t *Tab) Cursor() cursor.Cursor { return t.cursor }

// Visible returns the ids displayed in height rows and the row of the
// selection among them (-1 when the list is empty). It does not move the
// selection; a list that shrank elsewhere is wrapped on the next Prune.
func (t *Tab) Visible(height int) (ids []string, row int) {
	n := t.source.Len()
	c := t.cursor
	c.Wrap(n)
	start, end := c.VisibleRange(n, height)
	if start == end {
		return nil, -1
	}
	all := t.source.IDs()
	return all[start:end], c.Row(n, height)
}

func (t *Tab) up() error        { t.cursor.Up(t.source.Len()); return nil }
func (t *Tab) down() error      { t.cursor.Down(t.source.Len()); return nil }
func (t *Tab) jumpStart() error { t.cursor.Jump(0, t.source.Len()); return nil }
func (t *Tab) jumpEnd() error   { t.cursor.JumpEnd(t.source.Len()); return nil }

func (t *Tab) track(id string) playback.Track {
	return playback.Track{ID: id, Path: t.deps.Downloads.Path(id)}
}

// PlayFromHere replaces the play queue with the entries from the selection
// to the end of the list.
func (t *Tab) PlayFromHere() error {
	ids := t.source.IDs()
	sel := t.cursor.Pos()
	if sel >= len(ids) {
		return nil
	}
	tracks := make([]playback.Track, 0, len(ids)-sel)
	for _, id := range ids[sel:] {
		tracks = append(tracks, t.track(id))
	}
	t.deps.Player.Clear()
	return t.deps.Player.EnqueueAll(tracks)
}

// EnqueueSelected appends the selected entry to the play queue.
func (t *Tab) EnqueueSelected() error {
	sel := t.cursor.Pos()
	if sel >= t.source.Len() {
		return nil
	}
	return t.deps.Player.Enqueue(t.track(t.source.At(sel)))
}

// RemoveSelected deletes the selected entry and keeps the selection in
// range.
func (t *Tab) RemoveSelected() error {
	sel := t.cursor.Pos()
	if sel >= t.source.Len() {
		return nil
	}
	id := t.source.At(sel)
	if err := t.source.RemoveAt(sel); err != nil {
		return err
	}
	t.cursor.Wrap(t.source.Len())
	t.logger.WithField("id", id).Debug("removed entry")
	t.changed()
	return nil
}

// Add opens the search and downloads the chosen track.
func (t *Tab) Add() error {
	if t.deps.Search == nil {
		return fmt.Errorf("search is not available")
	}
	t.deps.Search(func(m library.Metadata) { t.AddTrack(m, nil) })
	return nil
}

// AddTrack downloads m if needed, then appends it and selects it. done, if
// set, is called with the download result after the list was updated.
func (t *Tab) AddTrack(m library.Metadata, done download.Observer) {
	t.deps.Downloads.Request(m, func(res download.Result) {
		if res.Err == nil {
			if err := t.source.Append(res.Track.ID); err != nil {
				res.Err = err
			} else {
				t.cursor.JumpEnd(t.source.Len())
				t.changed()
			}
		}
		if done != nil {
			done(res)
		}
	})
}

// Prune removes entries whose track is missing from the store and returns
// the missing ids, each once. It also brings the selection back into range
// when the list shrank through another tab.
func (t *Tab) Prune() []string {
	t.cursor.Wrap(t.source.Len())

	var missing []string
	seen := make(map[string]bool)
	ids := t.source.IDs()
	for i := len(ids) - 1; i >= 0; i-- {
		id := ids[i]
		if t.deps.Store.Has(id) {
			continue
		}
		if err := t.source.RemoveAt(i); err != nil {
			t.logger.WithError(err).WithField("id", id).Warn("removing dangling entry")
			continue
		}
		if !seen[id] {
			seen[id] = true
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	slices.Reverse(missing)
	t.cursor.Wrap(t.source.Len())
	t.logger.WithField("ids", missing).Warn("removed dangling entries")
	t.changed()
	return missing
}

func (t *Tab) changed() {
	if t.deps.Changed != nil {
		t.deps.Changed()
	}
}
