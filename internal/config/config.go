// Package config loads the TOML configuration and derives the data paths.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	appName      = "catvibes"
	fileName     = "config.toml"
	apiKeyEnvVar = "CATVIBES_YOUTUBE_API_KEY"
)

type Config struct {
	MainDirectory string `koanf:"main_directory"`
	Results       int    `koanf:"results"`    // search results shown
	SongString    string `koanf:"songstring"` // list entry template
	InfoString    string `koanf:"infostring"` // player bar template
	BarLength     int    `koanf:"bar_length"`
	PollInterval  int    `koanf:"poll_interval_ms"`
	AudioEngine   string `koanf:"audio_engine"` // "beep" or "ffplay"
	Storage       string `koanf:"storage"`      // "json" or "sqlite"
	LogLevel      string `koanf:"log_level"`
	MPRIS         bool   `koanf:"mpris"`
	Notifications bool   `koanf:"notifications"`

	YouTube  YouTubeConfig  `koanf:"youtube"`
	Download DownloadConfig `koanf:"download"`

	// Keys overrides default bindings: action name -> keys.
	Keys map[string][]string `koanf:"keys"`
}

// YouTubeConfig holds the catalog search settings.
type YouTubeConfig struct {
	APIKey string `koanf:"api_key"`
}

// DownloadConfig holds the fetcher settings.
type DownloadConfig struct {
	Workers      int    `koanf:"workers"`       // parallel downloads during import
	AudioQuality string `koanf:"audio_quality"` // yt-dlp --audio-quality, 0 is best
}

// Default returns the configuration used when no file sets a value.
func Default() *Config {
	return &Config{
		MainDirectory: "~/Music/Catvibes",
		Results:       5,
		SongString:    "TITLE - ARTIST  LENGHT",
		InfoString:    "TITLE - ARTIST  CURRENT_TIME BAR LENGHT",
		BarLength:     30,
		PollInterval:  100,
		AudioEngine:   "beep",
		Storage:       "json",
		LogLevel:      "info",
		MPRIS:         true,
		Notifications: true,
		Download: DownloadConfig{
			Workers:      3,
			AudioQuality: "0",
		},
	}
}

// Load reads the config files in order of priority (last wins).
func Load() (*Config, error) {
	return LoadFrom(getConfigPaths()...)
}

// LoadFrom reads the given files over the defaults. Missing files are
// skipped.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("load %s: %w", path, err)
			}
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if key := os.Getenv(apiKeyEnvVar); key != "" {
		cfg.YouTube.APIKey = key
	}

	cfg.MainDirectory = expandPath(cfg.MainDirectory)
	cfg.AudioEngine = strings.ToLower(strings.TrimSpace(cfg.AudioEngine))
	cfg.Storage = strings.ToLower(strings.TrimSpace(cfg.Storage))
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.Results <= 0 {
		c.Results = def.Results
	}
	if c.BarLength <= 0 {
		c.BarLength = def.BarLength
	}
	if c.PollInterval <= 0 {
		c.PollInterval = def.PollInterval
	}
	if c.Download.Workers <= 0 {
		c.Download.Workers = def.Download.Workers
	}
	if c.SongString == "" {
		c.SongString = def.SongString
	}
	if c.InfoString == "" {
		c.InfoString = def.InfoString
	}
}

// Validate rejects unknown engine and storage names.
func (c *Config) Validate() error {
	switch c.AudioEngine {
	case "beep", "ffplay":
	default:
		return fmt.Errorf("config: unknown audio_engine %q (want beep or ffplay)", c.AudioEngine)
	}
	switch c.Storage {
	case "json", "sqlite":
	default:
		return fmt.Errorf("config: unknown storage %q (want json or sqlite)", c.Storage)
	}
	if c.MainDirectory == "" {
		return errors.New("config: main_directory is empty")
	}
	return nil
}

// PollEvery returns the player tick interval.
func (c *Config) PollEvery() time.Duration {
	return time.Duration(c.PollInterval) * time.Millisecond
}

// HasYouTubeConfig returns true if catalog search is configured.
func (c *Config) HasYouTubeConfig() bool {
	return c.YouTube.APIKey != ""
}

func (c *Config) SongDir() string     { return filepath.Join(c.MainDirectory, "songs") }
func (c *Config) DataDir() string     { return filepath.Join(c.MainDirectory, "data") }
func (c *Config) PlaylistDir() string { return filepath.Join(c.MainDirectory, "playlists") }
func (c *Config) DBPath() string      { return filepath.Join(c.MainDirectory, appName+".db") }
func (c *Config) LogPath() string     { return filepath.Join(c.MainDirectory, appName+".log") }
func (c *Config) PrevLogPath() string { return filepath.Join(c.MainDirectory, "prev_log.log") }

// Path returns the user config file location.
func Path() string {
	return filepath.Join(xdg.ConfigHome, appName, fileName)
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/catvibes/config.toml
		Path(),
		// 2. ./config.toml (pwd, highest priority)
		fileName,
	}
}

// Bootstrap writes the default config to path if it does not exist yet.
// It reports whether a file was created.
func Bootstrap(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, err
	}
	if err := os.WriteFile(path, []byte(defaultFile), 0o600); err != nil {
		return false, err
	}
	return true, nil
}

// LoadEnv loads variables from a .env file. A missing file is not an error.
func LoadEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

const defaultFile = `# catvibes configuration

# where songs, playlists and data are stored
main_directory = "~/Music/Catvibes"

# number of search results
results = 5

# TITLE, ARTIST and LENGHT are replaced by the song's values
songstring = "TITLE - ARTIST  LENGHT"

# additionally CURRENT_TIME and BAR (progress bar)
infostring = "TITLE - ARTIST  CURRENT_TIME BAR LENGHT"
bar_length = 30

poll_interval_ms = 100

# "beep" plays in-process, "ffplay" runs an ffplay process
audio_engine = "beep"

# "json" keeps the data/ and playlists/ files, "sqlite" uses catvibes.db
storage = "json"

log_level = "info"
mpris = true
notifications = true

[youtube]
# can also be set with CATVIBES_YOUTUBE_API_KEY
api_key = ""

[download]
workers = 3
audio_quality = "0"

# [keys]
# quit = ["q", "esc"]
`
