package sink

import (
	"bytes"
	"time"

	"github.com/matzehuels/glyphclock/pkg/surface"
)

// RenderSVG draws t as an SVG document at logical size.
func RenderSVG(t time.Time, opts ...Option) ([]byte, error) {
	c := newConfig(opts)
	s := surface.NewSVG(1, 1)
	if c.background != nil {
		s.SetBackground(*c.background)
	}
	_, r, err := c.draw(t, s, 1)
	if err != nil {
		return nil, err
	}
	title := c.title
	if title == "" {
		title = r.Mirror(t)
	}
	s.SetTitle(title)

	var buf bytes.Buffer
	if err := s.Encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
