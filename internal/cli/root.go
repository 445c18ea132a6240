package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/glyphclock/pkg/buildinfo"
	"github.com/matzehuels/glyphclock/pkg/observability"
)

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          appName,
		Short:        "Glyphclock draws the time as procedural glyphs",
		Long:         `Glyphclock renders the current time as six hand-drawn glyph columns. It writes frames to PNG, SVG, JSON or the terminal, runs a live terminal clock and serves the clock site over HTTP.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				c.SetLogLevel(LogDebug)
				observability.NewLogHooks(c.Logger).Install()
			}
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&c.ConfigPath, "config", "c", "", "config file (default $XDG_CONFIG_HOME/glyphclock/glyphclock.toml)")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.feedCommand())
	root.AddCommand(c.playlistCommand())
	root.AddCommand(c.glyphsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
