package sink

import (
	"bytes"
	"time"

	"github.com/matzehuels/glyphclock/pkg/surface"
)

// RenderPNG draws t and encodes it as PNG. The image is
// WithSize × WithScale pixels.
func RenderPNG(t time.Time, opts ...Option) ([]byte, error) {
	c := newConfig(opts)
	r := surface.NewRaster(1, 1)
	defer r.Close()
	if c.background != nil {
		r.SetBackground(*c.background)
	}
	if _, _, err := c.draw(t, r, c.scale); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := r.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
