// Package download fetches tracks on demand, at most once per id at a time,
// and reports completion to every interested observer.
package download

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/catvibes/catvibes/internal/library"
)

// ErrFetchFailed wraps every fetch failure reported to observers.
var ErrFetchFailed = errors.New("download failed")

// SongExt is the extension of downloaded files.
const SongExt = ".mp3"

// Fetcher is the fetch collaborator. Fetch writes the audio of id to dest.
type Fetcher interface {
	Fetch(ctx context.Context, id, dest string) error
}

// Result is passed to observers when a request completes.
type Result struct {
	Track library.Metadata
	// Cached is true when no fetch was needed.
	Cached bool
	Err    error
}

// Observer is notified once when a request completes, successfully or not.
type Observer func(Result)

type pending struct {
	track     library.Metadata
	started   time.Time
	observers []Observer
}

// Coordinator deduplicates downloads. Fetches run on their own goroutine;
// completions are handed to the Deliver sink so observers run on the
// caller's event loop.
type Coordinator struct {
	store   *library.Store
	fetcher Fetcher
	songDir string
	deliver func(func())
	ctx     context.Context

	mu      sync.Mutex
	pending map[string]*pending
	wg      sync.WaitGroup

	logger *log.Entry
}

// Options configures a Coordinator.
type Options struct {
	// SongDir receives one <id>.mp3 file per track.
	SongDir string
	// Deliver runs completion callbacks. Nil runs them on the fetch
	// goroutine.
	Deliver func(func())
	// Context bounds every fetch. Nil means context.Background.
	Context context.Context
}

// New creates a coordinator storing fetched metadata in store.
func New(store *library.Store, fetcher Fetcher, opts Options) *Coordinator {
	deliver := opts.Deliver
	if deliver == nil {
		deliver = func(fn func()) { fn() }
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	return &Coordinator{
		store:   store,
		fetcher: fetcher,
		songDir: opts.SongDir,
		deliver: deliver,
		ctx:     ctx,
		pending: make(map[string]*pending),
		logger:  log.WithFields(log.Fields{"module": "download"}),
	}
}

// SongPath returns the file a track is downloaded to.
func SongPath(songDir, id string) string {
	return filepath.Join(songDir, id+SongExt)
}

// Path returns the file id is downloaded to.
func (c *Coordinator) Path(id string) string {
	return SongPath(c.songDir, id)
}

// Request ensures track is available locally, then calls onDone.
//
// If the track is already stored or its file exists, onDone runs before
// Request returns. If a fetch for the same id is in flight, onDone joins
// it. Otherwise a fetch starts in the background and Request returns
// immediately.
func (c *Coordinator) Request(track library.Metadata, onDone Observer) {
	id := track.ID
	if onDone == nil {
		onDone = func(Result) {}
	}

	if stored, ok := c.store.Get(id); ok {
		onDone(Result{Track: stored, Cached: true})
		return
	}
	if c.fileExists(id) {
		if err := c.store.Put(track); err != nil {
			c.logger.WithError(err).WithField("id", id).Warn("storing metadata of existing file")
		}
		onDone(Result{Track: track, Cached: true})
		return
	}

	c.mu.Lock()
	if p, ok := c.pending[id]; ok {
		p.observers = append(p.observers, onDone)
		c.mu.Unlock()
		return
	}
	c.pending[id] = &pending{track: track, started: time.Now(), observers: []Observer{onDone}}
	c.wg.Add(1)
	c.mu.Unlock()

	go c.run(track)
}

func (c *Coordinator) run(track library.Metadata) {
	defer c.wg.Done()

	logger := c.logger.WithFields(log.Fields{"id": track.ID, "title": track.Title})
	logger.Info("download started")

	dest := c.Path(track.ID)
	err := c.fetch(track.ID, dest)
	if err == nil {
		err = c.store.Put(track)
	}
	if err != nil {
		// A leftover file would satisfy the next request's fast path.
		_ = os.Remove(dest)
	}

	c.mu.Lock()
	p := c.pending[track.ID]
	delete(c.pending, track.ID)
	c.mu.Unlock()

	logger = logger.WithField("took", time.Since(p.started).Round(time.Millisecond))
	if err != nil {
		err = fmt.Errorf("%w: %s: %w", ErrFetchFailed, track.ID, err)
		logger.WithError(err).Warn("download failed")
	} else {
		logger.Info("download finished")
	}

	res := Result{Track: track, Err: err}
	observers := p.observers
	c.deliver(func() {
		for _, o := range observers {
			o(res)
		}
	})
}

func (c *Coordinator) fetch(id, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	if err := c.fetcher.Fetch(c.ctx, id, dest); err != nil {
		return err
	}
	if !c.fileExists(id) {
		return fmt.Errorf("fetcher reported success but %s is missing", filepath.Base(dest))
	}
	return nil
}

func (c *Coordinator) fileExists(id string) bool {
	info, err := os.Stat(c.Path(id))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			c.logger.WithError(err).WithField("id", id).Debug("stat song file")
		}
		return false
	}
	return info.Mode().IsRegular()
}

// Pending returns the ids being fetched.
func (c *Coordinator) Pending() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	ids := make([]string, 0, len(c.pending))
	for id := range c.pending {
		ids = append(ids, id)
	}
	return ids
}

// InFlight reports whether id is being fetched.
func (c *Coordinator) InFlight(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.pending[id]
	return ok
}

// Wait blocks until every in-flight fetch has handed its result to the
// Deliver sink.
func (c *Coordinator) Wait() {
	c.wg.Wait()
}
