package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/catvibes/catvibes/internal/app"
	"github.com/catvibes/catvibes/internal/catalog"
	"github.com/catvibes/catvibes/internal/config"
	"github.com/catvibes/catvibes/internal/download"
	"github.com/catvibes/catvibes/internal/errmsg"
	"github.com/catvibes/catvibes/internal/logging"
	"github.com/catvibes/catvibes/internal/maintenance"
	"github.com/catvibes/catvibes/internal/mpris"
	"github.com/catvibes/catvibes/internal/notify"
	"github.com/catvibes/catvibes/internal/playback"
	"github.com/catvibes/catvibes/internal/player"
	"github.com/catvibes/catvibes/internal/state"
	"github.com/catvibes/catvibes/internal/stderr"
)

type options struct {
	help        bool
	clean       bool
	reset       bool
	resetConfig bool
	gui         bool
	importPath  string
	start       string
}

func parseFlags(args []string, errOut io.Writer) (options, *pflag.FlagSet, error) {
	var o options
	fs := pflag.NewFlagSet("catvibes", pflag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.BoolVarP(&o.help, "help", "h", false, "show this help")
	fs.BoolVar(&o.clean, "clean", false, "delete songs and metadata no playlist refers to")
	fs.BoolVar(&o.reset, "reset", false, "delete all songs, playlists and the config file")
	fs.BoolVar(&o.resetConfig, "reset-config", false, "delete the config file")
	fs.StringVar(&o.importPath, "import", "", "import a playlist file and download its songs")
	fs.StringVarP(&o.start, "start", "s", "",
		"start playing: r|random shuffles all songs, s|start plays all songs in order, anything else is a playlist name")
	fs.BoolVarP(&o.gui, "gui", "g", false, "use the graphical interface")
	err := fs.Parse(args)
	return o, fs, err
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	logging.Discard()

	opts, fs, err := parseFlags(args, os.Stderr)
	if err != nil {
		return 2
	}
	if opts.help {
		fmt.Println("usage: catvibes [flags]")
		fmt.Print(fs.FlagUsages())
		return 0
	}

	if err := config.LoadEnv(".env"); err != nil {
		fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpInitialize, err))
		return 1
	}

	configPath := config.Path()
	if opts.resetConfig {
		if err := maintenance.ResetConfig(configPath); err != nil {
			fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpReset, err))
			return 1
		}
		fmt.Println("config reset")
		return 0
	}

	created, err := config.Bootstrap(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpInitialize, err))
		return 1
	}
	if created {
		fmt.Printf("created config file at %s\n", configPath)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpInitialize, err))
		return 1
	}

	if opts.reset {
		if _, err := maintenance.Reset(cfg.MainDirectory, configPath, os.Stdin, os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpReset, err))
			return 1
		}
		return 0
	}

	logs, err := logging.Setup(cfg.LogPath(), cfg.PrevLogPath(), cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpInitialize, err))
		return 1
	}
	defer logs.Close()

	st, err := state.Open(cfg.Storage, state.Paths{
		DataDir:     cfg.DataDir(),
		PlaylistDir: cfg.PlaylistDir(),
		DBPath:      cfg.DBPath(),
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpLoad, err))
		return 1
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.WithError(err).Error("closing state")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fetcher := download.NewYTDLP()
	fetcher.AudioQuality = cfg.Download.AudioQuality

	searcher, err := newSearcher(ctx, cfg)
	if err != nil {
		log.WithError(err).Warn("catalog search disabled")
	}

	switch {
	case opts.clean:
		if _, err := maintenance.Clean(st, cfg.SongDir(), os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpClean, err))
			return 1
		}
		return 0

	case opts.importPath != "":
		if searcher == nil {
			fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpImport, catalog.ErrNoAPIKey))
			return 1
		}
		im := &maintenance.Importer{
			State:     st,
			Catalog:   searcher,
			Downloads: download.New(st.Tracks(), fetcher, download.Options{SongDir: cfg.SongDir(), Context: ctx}),
			Workers:   cfg.Download.Workers,
			Out:       os.Stdout,
		}
		if _, err := im.Import(ctx, opts.importPath); err != nil {
			fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpImport, err))
			return 1
		}
		return 0
	}

	if opts.gui {
		fmt.Println("the graphical interface is not part of this build, starting the terminal interface")
	}

	if err := runUI(cfg, st, fetcher, searcher, app.ParseStartMode(opts.start)); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		return 1
	}
	return 0
}

func newSearcher(ctx context.Context, cfg *config.Config) (catalog.Searcher, error) {
	if !cfg.HasYouTubeConfig() {
		return nil, catalog.ErrNoAPIKey
	}
	yt, err := catalog.NewYouTube(ctx, cfg.YouTube.APIKey)
	if err != nil {
		return nil, err
	}
	return yt, nil
}

func runUI(cfg *config.Config, st state.Interface, fetcher download.Fetcher, searcher catalog.Searcher, start app.StartMode) error {
	restore, err := stderr.Capture(log.WithFields(log.Fields{"module": "stderr"}))
	if err != nil {
		log.WithError(err).Warn("stderr capture disabled")
	} else {
		defer restore()
	}

	audio, err := player.New(cfg.AudioEngine)
	if err != nil {
		return err
	}
	engine := playback.New(audio, playback.WithTickInterval(cfg.PollEvery()))
	defer engine.Close()

	delivery := app.NewDelivery()
	coord := download.New(st.Tracks(), fetcher, download.Options{
		SongDir: cfg.SongDir(),
		Deliver: delivery.Deliver,
	})

	notifier := notify.Disabled()
	if cfg.Notifications {
		if notifier, err = notify.New(); err != nil {
			log.WithError(err).Warn("desktop notifications disabled")
			notifier = notify.Disabled()
		}
	}

	opts := app.Options{
		Config:    cfg,
		State:     st,
		Engine:    engine,
		Downloads: coord,
		Delivery:  delivery,
		Catalog:   searcher,
		Notifier:  notifier,
	}
	m, err := app.New(opts)
	if err != nil {
		return err
	}
	if err := m.Start(start); err != nil {
		log.WithError(err).WithField("mode", start).Warn("start mode")
	}

	program := tea.NewProgram(m, tea.WithAltScreen())

	if cfg.MPRIS {
		remote, err := mpris.New(app.Remote{Engine: engine, Store: st.Tracks(), Program: program})
		if err != nil {
			log.WithError(err).Warn("MPRIS disabled")
		} else {
			defer remote.Close()
		}
	}

	_, err = program.Run()
	return err
}
