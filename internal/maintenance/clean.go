// Package maintenance implements the command line housekeeping commands:
// clean, reset, reset-config and import.
package maintenance

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"

	"github.com/catvibes/catvibes/internal/download"
	"github.com/catvibes/catvibes/internal/library"
	"github.com/catvibes/catvibes/internal/state"
)

// removeFile deletes a song file; tests replace it.
var removeFile = os.Remove

// CleanReport summarizes a clean run.
type CleanReport struct {
	Files   int    // song files deleted
	Entries int    // track store entries deleted
	Freed   uint64 // bytes
}

// Clean deletes every song file and track entry that no playlist refers
// to, then saves. Progress lines go to out.
func Clean(st state.Interface, songDir string, out io.Writer) (CleanReport, error) {
	logger := log.WithFields(log.Fields{"module": "maintenance", "command": "clean"})
	tracks := st.Tracks()
	referenced := st.Playlists().Referenced()

	var report CleanReport
	fmt.Fprintln(out, "clearing songdir")

	entries, err := os.ReadDir(songDir)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return report, fmt.Errorf("read %s: %w", songDir, err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(songDir, e.Name())
		id := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		if referenced[id] {
			continue
		}

		fmt.Fprintf(out, "removing %s\n", describe(tracks, id, path))
		var size int64
		if info, err := e.Info(); err == nil {
			size = info.Size()
		}
		if err := removeFile(path); err != nil {
			logger.WithError(err).WithField("path", path).Warn("remove failed")
			continue
		}
		report.Freed += uint64(size)
		report.Files++
		if tracks.Delete(id) {
			report.Entries++
		}
	}

	for _, m := range tracks.All() {
		if referenced[m.ID] {
			continue
		}
		fmt.Fprintf(out, "removing %s from database\n", m.Title)
		if tracks.Delete(m.ID) {
			report.Entries++
		}
	}

	if err := st.SaveAll(); err != nil {
		return report, err
	}

	fmt.Fprintf(out, "removed %d files and %d entries, freed %s\n",
		report.Files, report.Entries, humanize.Bytes(report.Freed))
	logger.WithFields(log.Fields{
		"files":   report.Files,
		"entries": report.Entries,
		"freed":   report.Freed,
	}).Info("clean finished")
	return report, nil
}

// describe names a song file for the progress output: the stored title,
// else the title from its tags, else the file name.
func describe(tracks *library.Store, id, path string) string {
	if m, ok := tracks.Get(id); ok && m.Title != "" {
		return m.Title
	}
	if filepath.Ext(path) == download.SongExt {
		if m, err := library.ReadFileMetadata(path); err == nil && m.Title != "" {
			return m.Title
		}
	}
	return path
}
