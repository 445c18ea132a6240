package sink

import (
	"fmt"
	"image"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/glyphclock/pkg/surface"
)

const (
	upperHalf = "▀"
	lowerHalf = "▄"
)

// alphaCutoff is the coverage below which a pixel counts as empty.
const alphaCutoff = 0x30

// RenderTerminal draws t into cols terminal columns. Each text cell shows
// two vertically stacked pixels using an upper half block with foreground
// and background colors. Row count follows the frame's aspect ratio.
func RenderTerminal(t time.Time, cols int, opts ...Option) (string, error) {
	if cols <= 0 {
		return "", fmt.Errorf("terminal width must be positive, got %d", cols)
	}
	c := newConfig(opts)

	cols, rows := TerminalSize(cols, c.width, c.height)
	c.width, c.height = float64(cols), float64(rows*2)

	r := surface.NewRaster(cols, rows*2)
	defer r.Close()
	if _, _, err := c.draw(t, r, 1); err != nil {
		return "", err
	}
	return HalfBlocks(r.Image(), c.background), nil
}

// TerminalSize returns the columns and text rows RenderTerminal produces
// for a logical frame of width×height. Each row holds two pixels.
func TerminalSize(cols int, width, height float64) (int, int) {
	rows := max(1, int(float64(cols)*height/width/2+0.5))
	return cols, rows
}

// HalfBlocks converts img to text, two pixel rows per line. Transparent
// pixels show bg, or the terminal background when bg is nil.
func HalfBlocks(img image.Image, bg *surface.Color) string {
	b := img.Bounds()
	var out strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x++ {
			top, topOK := pixel(img, x, y)
			bottom, bottomOK := pixel(img, x, y+1)
			if bg != nil {
				if !topOK {
					top, topOK = bg.Hex(), true
				}
				if !bottomOK {
					bottom, bottomOK = bg.Hex(), true
				}
			}
			switch {
			case topOK && bottomOK:
				out.WriteString(lipgloss.NewStyle().
					Foreground(lipgloss.Color(top)).
					Background(lipgloss.Color(bottom)).
					Render(upperHalf))
			case topOK:
				out.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(top)).Render(upperHalf))
			case bottomOK:
				out.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(bottom)).Render(lowerHalf))
			default:
				out.WriteByte(' ')
			}
		}
		if y+2 < b.Max.Y {
			out.WriteByte('\n')
		}
	}
	return out.String()
}

// pixel returns the un-premultiplied hex color at (x, y), and false for
// transparent or out-of-range pixels.
func pixel(img image.Image, x, y int) (string, bool) {
	if !(image.Point{X: x, Y: y}).In(img.Bounds()) {
		return "", false
	}
	r, g, b, a := img.At(x, y).RGBA()
	if a>>8 < alphaCutoff {
		return "", false
	}
	col := surface.Color{
		R: float64(r) / float64(a),
		G: float64(g) / float64(a),
		B: float64(b) / float64(a),
	}
	return col.Hex(), true
}
