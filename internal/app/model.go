package app

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"github.com/catvibes/catvibes/internal/catalog"
	"github.com/catvibes/catvibes/internal/config"
	"github.com/catvibes/catvibes/internal/download"
	"github.com/catvibes/catvibes/internal/errmsg"
	"github.com/catvibes/catvibes/internal/keymap"
	"github.com/catvibes/catvibes/internal/library"
	"github.com/catvibes/catvibes/internal/notify"
	"github.com/catvibes/catvibes/internal/playback"
	"github.com/catvibes/catvibes/internal/state"
	"github.com/catvibes/catvibes/internal/tab"
)

// Options are the collaborators of the model. Catalog and Notifier may be
// nil.
type Options struct {
	Config    *config.Config
	State     state.Interface
	Engine    *playback.Engine
	Downloads tab.Downloader
	Delivery  Delivery
	Catalog   catalog.Searcher
	Notifier  notify.Notifier
}

// Model is the root bubbletea model.
type Model struct {
	cfg       *config.Config
	state     state.Interface
	engine    *playback.Engine
	downloads tab.Downloader
	delivery  Delivery
	catalog   catalog.Searcher
	notifier  notify.Notifier
	keys      *keymap.Resolver
	bindings  []keymap.Binding

	ctx    context.Context
	cancel context.CancelFunc

	tabs    []*tab.Tab
	current int
	deps    tab.Deps

	search searchPopup
	prompt namePrompt

	notice      string
	downloading int

	dirty   bool
	saveGen int
	cmds    []tea.Cmd

	width    int
	height   int
	quitting bool

	logger *log.Entry
}

// New builds the model with the songs tab first and one tab per playlist.
func New(opts Options) (*Model, error) {
	if opts.Config == nil || opts.State == nil || opts.Engine == nil || opts.Downloads == nil {
		return nil, errors.New("app: config, state, engine and downloads are required")
	}
	if opts.Notifier == nil {
		opts.Notifier = notify.Disabled()
	}

	bindings := keymap.WithOverrides(keymap.All, opts.Config.Keys)
	ctx, cancel := context.WithCancel(context.Background())
	m := &Model{
		cfg:      opts.Config,
		state:    opts.State,
		engine:   opts.Engine,
		delivery: opts.Delivery,
		catalog:  opts.Catalog,
		notifier: opts.Notifier,
		keys:     keymap.NewResolver(bindings),
		bindings: bindings,
		ctx:      ctx,
		cancel:   cancel,
		search:   newSearchPopup(),
		prompt:   newNamePrompt(),
		logger:   log.WithFields(log.Fields{"module": "app"}),
	}
	for _, c := range m.keys.Conflicts() {
		m.logger.WithFields(log.Fields{
			"key":     c.Key,
			"context": c.Context,
			"kept":    c.Kept,
			"dropped": c.Dropped,
		}).Warn("key bound twice")
	}
	m.downloads = observedDownloads{Downloader: opts.Downloads, m: m}

	m.deps = tab.Deps{
		Player:    opts.Engine,
		Store:     opts.State.Tracks(),
		Downloads: m.downloads,
		Changed:   m.markDirty,
	}
	if opts.Catalog != nil {
		m.deps.Search = m.openSearch
	}

	registry := opts.State.Playlists()
	m.tabs = append(m.tabs, tab.NewAllTracksTab(m.deps.Store, registry, m.deps))
	for _, p := range registry.All() {
		m.tabs = append(m.tabs, tab.NewPlaylistTab(p, m.deps))
	}
	return m, nil
}

// Init starts the poll tick and the delivery reader.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(TickCmd(m.cfg.PollEvery()), m.delivery.wait())
}

// Tabs returns the open tabs in display order.
func (m *Model) Tabs() []*tab.Tab { return m.tabs }

// Current returns the displayed tab.
func (m *Model) Current() *tab.Tab { return m.tabs[m.current] }

// Notice returns the message waiting to be dismissed.
func (m *Model) Notice() string { return m.notice }

func (m *Model) markDirty() {
	m.dirty = true
}

func (m *Model) queue(cmd tea.Cmd) {
	if cmd != nil {
		m.cmds = append(m.cmds, cmd)
	}
}

func (m *Model) fail(op errmsg.Op, err error) {
	if err == nil {
		return
	}
	m.logger.WithError(err).WithField("op", string(op)).Warn("operation failed")
	m.notice = errmsg.Format(op, err)
}

func (m *Model) openSearch(pick func(library.Metadata)) {
	m.queue(m.search.open(pick))
}

// downloadStarted and downloadDone keep the in-flight count and report
// results.
func (m *Model) downloadStarted() {
	m.downloading++
}

func (m *Model) downloadDone(res download.Result) {
	m.downloading = max(m.downloading-1, 0)
	if res.Err != nil {
		m.fail(errmsg.OpDownload, res.Err)
	}
	n, ok := notify.ForDownload(res)
	if !ok {
		return
	}
	if _, err := m.notifier.Notify(n); err != nil {
		m.logger.WithError(err).Debug("notification failed")
	}
}

// observedDownloads reports every request to the model.
type observedDownloads struct {
	tab.Downloader
	m *Model
}

func (d observedDownloads) Request(track library.Metadata, onDone download.Observer) {
	d.m.downloadStarted()
	d.Downloader.Request(track, func(res download.Result) {
		if onDone != nil {
			onDone(res)
		}
		d.m.downloadDone(res)
	})
}
