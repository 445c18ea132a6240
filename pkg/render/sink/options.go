package sink

import (
	"time"

	"github.com/matzehuels/glyphclock/pkg/clock"
	"github.com/matzehuels/glyphclock/pkg/surface"
)

// Default logical frame size.
const (
	DefaultWidth  = 600
	DefaultHeight = 100
)

// Option configures a sink.
type Option func(*config)

type config struct {
	width, height float64
	scale         float64
	background    *surface.Color
	loc           *time.Location
	title         string
}

func newConfig(opts []Option) config {
	c := config{width: DefaultWidth, height: DefaultHeight, scale: 1, loc: time.Local}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithSize sets the logical frame size.
func WithSize(width, height float64) Option {
	return func(c *config) { c.width, c.height = width, height }
}

// WithScale sets the device pixel ratio (default 1). Only raster sinks use it.
func WithScale(s float64) Option {
	return func(c *config) {
		if s > 0 {
			c.scale = s
		}
	}
}

// WithBackground paints a solid background instead of leaving it transparent.
func WithBackground(col surface.Color) Option {
	return func(c *config) { c.background = &col }
}

// WithLocation sets the time zone the time is shown in.
func WithLocation(loc *time.Location) Option {
	return func(c *config) {
		if loc != nil {
			c.loc = loc
		}
	}
}

// WithTitle sets the SVG document title. Defaults to the "HH:MM:SS" text.
func WithTitle(title string) Option {
	return func(c *config) { c.title = title }
}

// draw renders one frame of t into s at the configured size and ratio.
func (c config) draw(t time.Time, s surface.Surface, ratio float64) (clock.Frame, *clock.Renderer, error) {
	r := clock.NewRenderer(clock.WithLocation(c.loc))
	f := r.Resize(&surface.StaticHost{Width: c.width, Height: c.height, Ratio: ratio}, s)
	err := r.Tick(t, s)
	return f, r, err
}
