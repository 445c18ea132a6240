package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/glyphclock/pkg/cache"
	"github.com/matzehuels/glyphclock/pkg/config"
	"github.com/matzehuels/glyphclock/pkg/feed"
)

// newFeedLoader builds the vlog loader from the [feed] and [cache] config.
// Cache failures degrade to an uncached loader.
func (c *CLI) newFeedLoader(ctx context.Context, cfg config.Config, logger *log.Logger) *feed.Loader {
	opts := []feed.Option{
		feed.WithLogger(logger),
		feed.WithClient(&http.Client{Timeout: cfg.Feed.Timeout.Duration}),
	}
	if ch, err := c.newCache(ctx, cfg, false); err == nil {
		opts = append(opts, feed.WithCache(ch, cfg.Feed.TTL.Duration))
	} else {
		logger.Warn("feed cache disabled", "err", err)
	}
	return feed.NewLoader(cfg.Feed.URL, opts...)
}

type feedOpts struct {
	url     string
	html    bool
	noCache bool
}

// feedCommand fetches and prints the vlog feed.
func (c *CLI) feedCommand() *cobra.Command {
	var opts feedOpts

	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Fetch and print the vlog feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFeed(cmd.Context(), c.cmdOut(cmd), &opts)
		},
	}
	cmd.Flags().StringVar(&opts.url, "url", "", "feed URL (default from config)")
	cmd.Flags().BoolVar(&opts.html, "html", false, "print the HTML fragment instead of a summary")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "always fetch from the network")
	return cmd
}

func (c *CLI) runFeed(ctx context.Context, out io.Writer, opts *feedOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if opts.url != "" {
		cfg.Feed.URL = opts.url
	}
	if opts.noCache {
		cfg.Cache.Backend = cache.BackendNone
	}
	loader := c.newFeedLoader(ctx, cfg, c.Logger)

	spin := newSpinner(ctx, os.Stderr, "Fetching "+loader.URL())
	spin.Start()
	res := <-loader.Load(ctx)
	spin.Stop()

	if opts.html {
		return feed.Render(out, res)
	}
	if res.Err != nil {
		printWarning(out, "%s", feed.FallbackMessage)
		return res.Err
	}
	printEntries(out, res)
	return nil
}

func printEntries(w io.Writer, res feed.Result) {
	if len(res.Entries) == 0 {
		printInfo(w, "No entries yet.")
		return
	}
	status := iconFresh
	if res.Cached {
		status = iconCached
	}
	printSuccess(w, "%d entries (%s)", len(res.Entries), status)
	for _, e := range res.Entries {
		fmt.Fprintln(w)
		fmt.Fprintln(w, StyleTitle.Render(e.Title)+"  "+StyleDim.Render(e.Date))
		if e.Text != "" {
			fmt.Fprintln(w, "  "+e.Text)
		}
		if e.Image != "" {
			printFile(w, e.Image)
		}
	}
}
