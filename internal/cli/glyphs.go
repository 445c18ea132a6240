package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/glyphclock/pkg/errors"
	"github.com/matzehuels/glyphclock/pkg/glyph"
)

// glyphsCommand prints the generated stroke table.
func (c *CLI) glyphsCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "glyphs [digit]",
		Short:     "Print the stroke table for each digit",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := c.cmdOut(cmd)
			if len(args) == 0 {
				for d := range glyph.Digits {
					printGlyph(out, d)
				}
				return nil
			}
			d, err := strconv.Atoi(args[0])
			if err != nil || d < 0 || d >= glyph.Digits {
				return errors.New(errors.ErrCodeInvalidInput, "digit must be 0-9, got %q", args[0])
			}
			printGlyph(out, d)
			return nil
		},
	}
}

func printGlyph(w io.Writer, d int) {
	g := glyph.Lookup(d)
	fmt.Fprintln(w, StyleTitle.Render(fmt.Sprintf("Digit %d", d))+"  "+
		StyleDim.Render(fmt.Sprintf("seed %#08x · %d strokes", glyph.Seed(d), len(g))))

	rows := make([][]string, len(g))
	for i, s := range g {
		rows[i] = []string{
			s.Kind.String(),
			fmt.Sprintf("%.3f", s.RelX),
			fmt.Sprintf("%.3f", s.RelY),
			fmt.Sprintf("%.3f", s.RelW),
			fmt.Sprintf("%.3f", s.RelH),
			fmt.Sprintf("%.2f", s.Rotation),
			strconv.Itoa(s.LineWeight),
			fmt.Sprintf("%.2f", s.Opacity()),
		}
	}
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("kind", "x", "y", "w", "h", "rot", "weight", "alpha").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})
	fmt.Fprintln(w, t.Render())
}
