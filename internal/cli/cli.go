// Package cli implements the glyphclock command-line interface.
package cli

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/glyphclock/pkg/cache"
	"github.com/matzehuels/glyphclock/pkg/config"
	"github.com/matzehuels/glyphclock/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "glyphclock"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// ConfigPath is set by --config. Empty means config.DefaultPath.
	ConfigPath string

	cfg    *config.Config
	stdout io.Writer
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// SetOutput redirects command output, for tests. Defaults to os.Stdout.
func (c *CLI) SetOutput(w io.Writer) {
	c.stdout = w
}

// =============================================================================
// Config
// =============================================================================

// loadConfig loads the configuration once per process.
func (c *CLI) loadConfig() (config.Config, error) {
	if c.cfg != nil {
		return *c.cfg, nil
	}
	cfg, err := config.Load(c.ConfigPath)
	if err != nil {
		return config.Config{}, err
	}
	c.Logger.Debug("config loaded", "path", c.ConfigPath, "cache", cfg.Cache.Backend)
	c.cfg = &cfg
	return cfg, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, cfg config.Config, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(ch, c.Logger), nil
}

// newCache opens the configured backend. A file cache that cannot be
// created degrades to no caching.
func (c *CLI) newCache(ctx context.Context, cfg config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	opts := cache.Options{Backend: cfg.Cache.Backend, Dir: cfg.Cache.Dir, Redis: cfg.Cache.Redis}
	ch, err := cache.Open(ctx, opts)
	if err != nil {
		if opts.Backend == "" || opts.Backend == cache.BackendFile {
			c.Logger.Warn("cache disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		return nil, err
	}
	return ch, nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// frameDefaults returns pipeline options seeded from the [clock] config.
func frameDefaults(cfg config.Config) (pipeline.Options, error) {
	loc, err := cfg.Clock.LoadLocation()
	if err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Options{
		Width:      cfg.Clock.Width,
		Height:     cfg.Clock.Height,
		PixelRatio: cfg.Clock.PixelRatio,
		Background: cfg.Clock.Background,
		Location:   loc,
	}, nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatPNG}
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// cmdOut returns where command output goes.
func (c *CLI) cmdOut(cmd *cobra.Command) io.Writer {
	if c.stdout != nil {
		return c.stdout
	}
	return cmd.OutOrStdout()
}
