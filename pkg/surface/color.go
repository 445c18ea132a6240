package surface

import (
	"fmt"
	"strings"

	"github.com/gogpu/gg"
)

// Color is an opaque RGB color with components in [0, 1].
type Color struct {
	R, G, B float64
}

// HSL returns the color for hue h in degrees and saturation s and
// lightness l in [0, 1].
func HSL(h, s, l float64) Color {
	c := gg.HSL(h, s, l)
	return Color{R: c.R, G: c.G, B: c.B}
}

// Black is the default stroke and fill color.
var Black = Color{}

// RGBA returns the gg color with the given alpha.
func (c Color) RGBA(alpha float64) gg.RGBA {
	return gg.RGBA2(c.R, c.G, c.B, alpha)
}

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B))
}

// String implements fmt.Stringer.
func (c Color) String() string { return c.Hex() }

func channel(v float64) uint8 {
	return uint8(min(max(v, 0), 1)*255 + 0.5)
}

// ParseHex parses "#rgb" or "#rrggbb" (the "#" is optional).
func ParseHex(s string) (Color, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 3 && len(h) != 6 {
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	for _, r := range h {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return Color{}, fmt.Errorf("invalid color %q", s)
		}
	}
	c := gg.Hex(h)
	return Color{R: c.R, G: c.G, B: c.B}, nil
}
