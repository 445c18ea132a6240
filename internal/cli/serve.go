package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/glyphclock/internal/server"
	"github.com/matzehuels/glyphclock/pkg/cache"
	"github.com/matzehuels/glyphclock/pkg/config"
	"github.com/matzehuels/glyphclock/pkg/flash"
	"github.com/matzehuels/glyphclock/pkg/playlist"
	"github.com/matzehuels/glyphclock/pkg/view"
)

type serveOpts struct {
	addr    string
	noCache bool
}

// serveCommand runs the HTTP site.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve clock images, the feed and the player over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), c.cmdOut(cmd), &opts)
		},
	}
	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the frame cache")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, out io.Writer, opts *serveOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if opts.addr != "" {
		cfg.Server.Addr = opts.addr
	}
	defaults, err := frameDefaults(cfg)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	player := playlist.New(playlistTracks(cfg), nil, c.Logger)

	state := &flash.State{}
	fc := newFlash(cfg.Flash, state, c.Logger)
	defer fc.Close()

	views := view.NewSwitcher(c.Logger)
	views.Register(viewClock, view.Funcs{})
	views.Register(viewPlaylist, player)
	views.Register(viewVlog, view.Funcs{})
	if err := views.Show(ctx, viewClock); err != nil {
		return err
	}
	defer views.Close()

	srv := server.New(server.Deps{
		Runner:     runner,
		Feed:       c.newFeedLoader(ctx, cfg, c.Logger),
		Player:     player,
		Views:      views,
		Flash:      fc,
		FlashState: state,
		Logger:     c.Logger.WithPrefix("http"),
		Defaults:   defaults,
	})
	printInfo(out, "Serving on %s", StyleHighlight.Render(cfg.Server.Addr))
	printKeyValue(out, "cache", cacheLabel(cfg.Cache.Backend, opts.noCache))
	printKeyValue(out, "feed", cfg.Feed.URL)
	printKeyValue(out, "tracks", fmt.Sprint(player.Len()))
	return srv.ListenAndServe(ctx, cfg.Server.Addr, cfg.Server.ReadTimeout.Duration, cfg.Server.WriteTimeout.Duration)
}

func newFlash(cfg config.FlashConfig, target flash.Target, logger *log.Logger) *flash.Controller {
	opts := []flash.Option{
		flash.WithOriginal(cfg.Original),
		flash.WithTiming(cfg.Interval.Duration, flash.DefaultSwapDelay, cfg.Length.Duration),
		flash.WithLogger(logger),
	}
	if cfg.Pattern != "" && cfg.Count > 0 {
		opts = append(opts, flash.WithImages(flash.Images(cfg.Pattern, cfg.Count)))
	}
	if cfg.Seed != 0 {
		opts = append(opts, flash.WithSeed(cfg.Seed))
	}
	return flash.New(target, opts...)
}

func cacheLabel(backend string, disabled bool) string {
	switch {
	case disabled:
		return cache.BackendNone
	case backend == "":
		return cache.BackendFile
	default:
		return backend
	}
}
