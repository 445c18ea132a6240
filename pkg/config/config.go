// Package config loads glyphclock settings from a TOML file.
//
// The file lives at $XDG_CONFIG_HOME/glyphclock/glyphclock.toml by default.
// A missing default file is not an error; [Load] then returns [Default].
// Every field is optional and falls back to its default.
//
//	[clock]
//	width = 600
//	height = 100
//	location = "Europe/Berlin"
//
//	[server]
//	addr = ":8080"
//
//	[cache]
//	backend = "redis"
//	[cache.redis]
//	addr = "localhost:6379"
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/glyphclock/pkg/cache"
	"github.com/matzehuels/glyphclock/pkg/errors"
)

// FileName is the config file name inside the config directory.
const FileName = "glyphclock.toml"

// Config is the full application configuration.
type Config struct {
	Clock    ClockConfig    `toml:"clock"`
	Server   ServerConfig   `toml:"server"`
	Feed     FeedConfig     `toml:"feed"`
	Playlist PlaylistConfig `toml:"playlist"`
	Flash    FlashConfig    `toml:"flash"`
	Cache    CacheConfig    `toml:"cache"`
}

// ClockConfig sets the default frame geometry and time zone.
type ClockConfig struct {
	Width      float64 `toml:"width"`
	Height     float64 `toml:"height"`
	PixelRatio float64 `toml:"pixel_ratio"`
	Location   string  `toml:"location"` // IANA name; empty is the local zone
	Background string  `toml:"background"`
}

// ServerConfig configures `glyphclock serve`.
type ServerConfig struct {
	Addr         string   `toml:"addr"`
	ReadTimeout  Duration `toml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout"`
}

// FeedConfig configures the vlog feed loader.
type FeedConfig struct {
	URL     string   `toml:"url"`
	Timeout Duration `toml:"timeout"`
	TTL     Duration `toml:"ttl"`
}

// Track is one playlist entry.
type Track struct {
	Title  string `toml:"title"`
	Artist string `toml:"artist"`
	Src    string `toml:"src"`
}

// PlaylistConfig lists the tracks. An empty list means the built-in playlist.
type PlaylistConfig struct {
	Tracks []Track `toml:"tracks"`
}

// FlashConfig configures the hover flash effect.
type FlashConfig struct {
	Original string   `toml:"original"`
	Pattern  string   `toml:"pattern"` // fmt pattern with one %02d verb
	Count    int      `toml:"count"`
	Interval Duration `toml:"interval"`
	Length   Duration `toml:"length"`
	Seed     uint64   `toml:"seed"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	Backend string             `toml:"backend"` // file, redis or none
	Dir     string             `toml:"dir"`
	Redis   cache.RedisOptions `toml:"redis"`
}

// Duration is a time.Duration written as a string ("75ms", "2s") in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Clock: ClockConfig{Width: 600, Height: 100, PixelRatio: 1},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  Duration{10 * time.Second},
			WriteTimeout: Duration{30 * time.Second},
		},
		Feed: FeedConfig{
			URL:     "http://localhost:8080/vlog.json",
			Timeout: Duration{10 * time.Second},
			TTL:     Duration{cache.TTLFeed},
		},
		Flash: FlashConfig{
			Original: "simulation-scales.jpg",
			Pattern:  "flash-%02d.jpg",
			Count:    98,
			Interval: Duration{75 * time.Millisecond},
			Length:   Duration{2 * time.Second},
		},
		Cache: CacheConfig{Backend: cache.BackendFile},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/glyphclock/glyphclock.toml (or the
// platform equivalent).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "glyphclock", FileName), nil
}

// Load reads the config at path on top of [Default]. An empty path means
// [DefaultPath], which may be missing.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	if _, err := os.Stat(path); os.IsNotExist(err) && !explicit {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if err := errors.ValidateSize(c.Clock.Width, c.Clock.Height); err != nil {
		return err
	}
	if err := errors.ValidatePixelRatio(c.Clock.PixelRatio); err != nil {
		return err
	}
	if c.Clock.Location != "" {
		if _, err := time.LoadLocation(c.Clock.Location); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "clock.location")
		}
	}
	if c.Feed.URL != "" {
		if err := errors.ValidateURL(c.Feed.URL); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "feed.url")
		}
	}
	switch c.Cache.Backend {
	case "", cache.BackendFile, cache.BackendRedis, cache.BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend %q (want file, redis or none)", c.Cache.Backend)
	}
	if c.Flash.Count < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "flash.count must not be negative")
	}
	for i, t := range c.Playlist.Tracks {
		if t.Src == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "playlist.tracks[%d]: src is required", i)
		}
	}
	return nil
}

// LoadLocation returns the configured time zone, or time.Local.
func (c ClockConfig) LoadLocation() (*time.Location, error) {
	if c.Location == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Location)
}
