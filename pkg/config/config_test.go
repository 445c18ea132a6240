package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/glyphclock/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default() should validate: %v", err)
	}
	if cfg.Flash.Count != 98 || cfg.Flash.Interval.Duration != 75*time.Millisecond {
		t.Errorf("flash defaults = %+v", cfg.Flash)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[clock]
width = 800
location = "UTC"

[server]
addr = ":9090"
read_timeout = "3s"

[feed]
url = "https://example.com/vlog.json"

[[playlist.tracks]]
title = "Intro"
src = "audio/intro.wav"

[cache]
backend = "redis"

[cache.redis]
addr = "redis:6379"
db = 2
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Clock.Width != 800 || cfg.Clock.Height != 100 {
		t.Errorf("clock = %+v, want width 800 and default height", cfg.Clock)
	}
	if cfg.Server.Addr != ":9090" || cfg.Server.ReadTimeout.Duration != 3*time.Second {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Server.WriteTimeout.Duration != 30*time.Second {
		t.Errorf("write timeout default lost: %v", cfg.Server.WriteTimeout)
	}
	if len(cfg.Playlist.Tracks) != 1 || cfg.Playlist.Tracks[0].Title != "Intro" {
		t.Errorf("tracks = %+v", cfg.Playlist.Tracks)
	}
	if cfg.Cache.Backend != "redis" || cfg.Cache.Redis.Addr != "redis:6379" || cfg.Cache.Redis.DB != 2 {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	loc, err := cfg.Clock.LoadLocation()
	if err != nil || loc.String() != "UTC" {
		t.Errorf("LoadLocation = %v, %v", loc, err)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax", "[clock\nwidth = 1"},
		{"unknown key", "[clock]\ncolour = \"red\""},
		{"bad size", "[clock]\nwidth = -1"},
		{"bad zone", "[clock]\nlocation = \"Mars/Olympus\""},
		{"bad backend", "[cache]\nbackend = \"memcached\""},
		{"bad duration", "[server]\nread_timeout = \"soon\""},
		{"track without src", "[[playlist.tracks]]\ntitle = \"x\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("Load should fail")
			}
			if errors.GetCode(err) == "" {
				t.Errorf("error %v should carry a code", err)
			}
		})
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("explicit missing path should fail")
	}

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("missing default should not fail: %v", err)
	}
	if cfg.Server.Addr != Default().Server.Addr {
		t.Errorf("missing default should yield Default()")
	}
}

func TestDefaultPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	p, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "glyphclock", FileName); p != want {
		t.Errorf("DefaultPath = %s, want %s", p, want)
	}
}
