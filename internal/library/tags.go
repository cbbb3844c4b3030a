package library

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
)

// ReadFileMetadata builds metadata from the tags embedded in a song file.
// The id is the file name without extension. Duration is not available
// from tags and is left zero.
func ReadFileMetadata(path string) (Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return Metadata{}, err
	}
	defer f.Close()

	id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	m := Metadata{ID: id, Title: id}

	tags, err := tag.ReadFrom(f)
	if err != nil {
		return m, fmt.Errorf("read tags %s: %w", filepath.Base(path), err)
	}
	if t := tags.Title(); t != "" {
		m.Title = t
	}
	if a := tags.Artist(); a != "" {
		m.Artists = []Artist{{Name: a}}
	}
	m.Album = tags.Album()
	return m, nil
}
