package playlists

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// DefaultName is the playlist that always exists.
	DefaultName = "favorites"

	// ImportExt is the extension of playlist files written by hand or
	// exported elsewhere; it is not part of the playlist name.
	ImportExt = ".json"
)

var (
	ErrExists      = errors.New("playlist already exists")
	ErrInvalidName = errors.New("invalid playlist name")
)

// Registry holds the playlists in creation order.
type Registry struct {
	order  []string
	byName map[string]*Playlist
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Playlist)}
}

// ValidateName checks that name can be used as a playlist name and file
// name.
func ValidateName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("%w: empty", ErrInvalidName)
	case name == "." || name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	case strings.HasSuffix(name, ImportExt):
		return fmt.Errorf("%w: %q ends in %s", ErrInvalidName, name, ImportExt)
	}
	return nil
}

// Add registers p.
func (r *Registry) Add(p *Playlist) error {
	if err := ValidateName(p.name); err != nil {
		return err
	}
	if _, ok := r.byName[p.name]; ok {
		return fmt.Errorf("%w: %s", ErrExists, p.name)
	}
	r.byName[p.name] = p
	r.order = append(r.order, p.name)
	return nil
}

// Create registers and returns a new empty playlist.
func (r *Registry) Create(name string) (*Playlist, error) {
	p := NewPlaylist(name)
	if err := r.Add(p); err != nil {
		return nil, err
	}
	return p, nil
}

// EnsureDefault creates the default playlist if it is missing and returns
// it.
func (r *Registry) EnsureDefault() *Playlist {
	if p, ok := r.byName[DefaultName]; ok {
		return p
	}
	p, _ := r.Create(DefaultName)
	return p
}

// Get returns the playlist called name.
func (r *Registry) Get(name string) (*Playlist, bool) {
	p, ok := r.byName[name]
	return p, ok
}

// Names returns the playlist names in creation order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// All returns the playlists in creation order.
func (r *Registry) All() []*Playlist {
	out := make([]*Playlist, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}

// Len returns the number of playlists.
func (r *Registry) Len() int { return len(r.order) }

// Purge removes every occurrence of id from every playlist, comparing by
// value. Returns the number of entries removed.
func (r *Registry) Purge(id string) int {
	n := 0
	for _, p := range r.byName {
		n += p.RemoveAll(id)
	}
	return n
}

// Referenced returns the set of ids used by at least one playlist.
func (r *Registry) Referenced() map[string]bool {
	refs := make(map[string]bool)
	for _, p := range r.byName {
		for _, id := range p.entries {
			refs[id] = true
		}
	}
	return refs
}
