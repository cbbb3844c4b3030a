package library

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Store maps track ids to metadata and keeps insertion order, which is the
// order of the derived "all tracks" view. The zero value is ready to use.
//
// A Store is shared by pointer: the persistence layer, the tabs and the
// download coordinator all see the same entries.
type Store struct {
	mu     sync.RWMutex
	tracks map[string]Metadata
	order  []string
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{tracks: make(map[string]Metadata)}
}

// Get returns the metadata for id.
func (s *Store) Get(id string) (Metadata, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.tracks[id]
	return m, ok
}

// Lookup is Get returning ErrNotFound for a missing id.
func (s *Store) Lookup(id string) (Metadata, error) {
	m, ok := s.Get(id)
	if !ok {
		return Metadata{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return m, nil
}

// Has reports whether id is stored.
func (s *Store) Has(id string) bool {
	_, ok := s.Get(id)
	return ok
}

// Put stores m under m.ID, replacing any previous entry in place.
func (s *Store) Put(m Metadata) error {
	if err := m.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.putLocked(m)
	return nil
}

func (s *Store) putLocked(m Metadata) {
	if s.tracks == nil {
		s.tracks = make(map[string]Metadata)
	}
	if _, exists := s.tracks[m.ID]; !exists {
		s.order = append(s.order, m.ID)
	}
	s.tracks[m.ID] = m
}

// Delete removes id. Returns false if it was not stored.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tracks[id]; !ok {
		return false
	}
	delete(s.tracks, id)
	if i := slices.Index(s.order, id); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
	return true
}

// IDs returns the stored ids in insertion order.
func (s *Store) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.order)
}

// All returns every entry in insertion order.
func (s *Store) All() []Metadata {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Metadata, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.tracks[id])
	}
	return out
}

// Len returns the number of stored tracks.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Replace swaps the whole content for entries, keeping their order.
func (s *Store) Replace(entries []Metadata) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tracks = make(map[string]Metadata, len(entries))
	s.order = s.order[:0]
	for _, m := range entries {
		s.putLocked(m)
	}
}

// MarshalJSON encodes the store as an object keyed by id, in insertion
// order.
func (s *Store) MarshalJSON() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range s.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(id)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(s.tracks[id])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object keyed by id, keeping key order. Entries
// without a videoId take the key as their id; entries that do not decode
// are logged and skipped.
func (s *Store) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("track store: expected object, got %v", tok)
	}

	var entries []Metadata
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("track store: unexpected key %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("track store: entry %s: %w", key, err)
		}
		var m Metadata
		if err := json.Unmarshal(raw, &m); err != nil {
			log.WithFields(log.Fields{"module": "library", "id": key}).
				WithError(err).Warn("skipping undecodable track")
			continue
		}
		if m.ID == "" {
			m.ID = key
		}
		entries = append(entries, m)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	s.Replace(entries)
	return nil
}
