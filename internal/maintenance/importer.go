package maintenance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/catvibes/catvibes/internal/catalog"
	"github.com/catvibes/catvibes/internal/download"
	"github.com/catvibes/catvibes/internal/errmsg"
	"github.com/catvibes/catvibes/internal/library"
	"github.com/catvibes/catvibes/internal/state"
)

// ErrInvalidPlaylistFile is returned when an import file is not a JSON
// array of ids.
var ErrInvalidPlaylistFile = errors.New("not a valid playlist file")

// Downloader fetches a track and reports the result to onDone.
type Downloader interface {
	Request(track library.Metadata, onDone download.Observer)
}

// Importer creates a playlist from a file of track ids and downloads
// every track.
type Importer struct {
	State     state.Interface
	Catalog   catalog.Searcher
	Downloads Downloader
	Workers   int
	Out       io.Writer
}

// ImportReport summarizes an import.
type ImportReport struct {
	Playlist   string
	Added      int
	Unknown    []string // ids the catalog does not know
	Downloaded int
	Failed     []string
}

// ReadPlaylistFile decodes a JSON array of track ids.
func ReadPlaylistFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidPlaylistFile, filepath.Base(path), err)
	}
	return ids, nil
}

// Import reads path, registers a playlist named after the file, downloads
// every known track with at most Workers fetches at once and saves.
// Tracks that fail to download stay in the playlist; the error lists them.
func (im *Importer) Import(ctx context.Context, path string) (ImportReport, error) {
	logger := log.WithFields(log.Fields{"module": "maintenance", "command": "import", "file": path})

	ids, err := ReadPlaylistFile(path)
	if err != nil {
		return ImportReport{}, err
	}
	name := state.PlaylistName(filepath.Base(path))
	report := ImportReport{Playlist: name}

	metas, err := im.Catalog.Lookup(ctx, ids)
	if err != nil {
		return report, fmt.Errorf("%s: %w", errmsg.OpLookup, err)
	}
	known := make(map[string]library.Metadata, len(metas))
	for _, m := range metas {
		known[m.ID] = m
	}

	p, err := im.State.CreatePlaylist(name)
	if err != nil {
		return report, err
	}
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			report.Unknown = append(report.Unknown, id)
			continue
		}
		p.Append(id)
		report.Added++
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(im.Workers, 1))
	for _, m := range metas {
		g.Go(func() error {
			mu.Lock()
			im.printf("downloading %s\n", m.Title)
			mu.Unlock()

			res, err := im.fetch(gctx, m)
			if err == nil {
				err = res.Err
			}

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				logger.WithError(err).WithField("id", m.ID).Warn("import download failed")
				report.Failed = append(report.Failed, m.ID)
				return nil
			}
			report.Downloaded++
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report, err
	}

	if err := im.State.SaveAll(); err != nil {
		return report, err
	}

	im.printf("imported %s: %d songs, %d downloaded\n", name, report.Added, report.Downloaded)
	logger.WithFields(log.Fields{
		"playlist": name,
		"added":    report.Added,
		"unknown":  len(report.Unknown),
		"failed":   len(report.Failed),
	}).Info("import finished")

	if len(report.Failed) > 0 {
		return report, fmt.Errorf("%d downloads failed: %v", len(report.Failed), report.Failed)
	}
	return report, nil
}

// fetch requests m and waits for its completion or ctx.
func (im *Importer) fetch(ctx context.Context, m library.Metadata) (download.Result, error) {
	done := make(chan download.Result, 1)
	im.Downloads.Request(m, func(res download.Result) { done <- res })
	select {
	case res := <-done:
		return res, nil
	case <-ctx.Done():
		return download.Result{}, ctx.Err()
	}
}

func (im *Importer) printf(format string, args ...any) {
	if im.Out != nil {
		fmt.Fprintf(im.Out, format, args...)
	}
}
