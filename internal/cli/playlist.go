package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/glyphclock/pkg/config"
	"github.com/matzehuels/glyphclock/pkg/playlist"
)

// playlistTracks converts configured tracks; none means the built-in list.
func playlistTracks(cfg config.Config) []playlist.Track {
	if len(cfg.Playlist.Tracks) == 0 {
		return playlist.DefaultTracks()
	}
	tracks := make([]playlist.Track, len(cfg.Playlist.Tracks))
	for i, t := range cfg.Playlist.Tracks {
		tracks[i] = playlist.Track{Title: t.Title, Artist: t.Artist, Src: t.Src}
	}
	return tracks
}

// playlistCommand lists the configured tracks.
func (c *CLI) playlistCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "playlist",
		Short: "List the playlist tracks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			printTracks(c.cmdOut(cmd), playlistTracks(cfg))
			return nil
		},
	}
}

func printTracks(w io.Writer, tracks []playlist.Track) {
	rows := make([][]string, len(tracks))
	for i, t := range tracks {
		rows[i] = []string{fmt.Sprint(i + 1), t.Title, t.Artist, t.Src}
	}
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Title", "Artist", "Source").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 3 {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})
	fmt.Fprintln(w, t.Render())
}
