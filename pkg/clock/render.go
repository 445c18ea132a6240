package clock

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/glyphclock/pkg/glyph"
	"github.com/matzehuels/glyphclock/pkg/surface"
)

// Time layouts for the drawn digits and the accessible mirror text.
const (
	DigitsLayout = "150405"
	MirrorLayout = "15:04:05"
)

// Frame is the surface state the renderer draws against.
type Frame struct {
	Width  float64 `json:"width"` // logical pixels
	Height float64 `json:"height"`
	Ratio  float64 `json:"ratio"`
	Layout Layout  `json:"layout"`
}

// Renderer draws the time into a surface. It is not safe for concurrent
// use; a Clock owns one and calls it from a single goroutine.
type Renderer struct {
	loc            *time.Location
	logger         *log.Logger
	fallbackHeight float64
	mirror         func(string)
	glyphs         [glyph.Digits]glyph.Glyph
	frame          Frame
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLocation sets the time zone used to format the time. Defaults to time.Local.
func WithLocation(loc *time.Location) Option {
	return func(r *Renderer) {
		if loc != nil {
			r.loc = loc
		}
	}
}

// WithRendererLogger sets the renderer's logger.
func WithRendererLogger(l *log.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithFallbackHeight substitutes h for a host height of zero when sizing,
// for hosts whose height comes from the drawing itself.
func WithFallbackHeight(h float64) Option {
	return func(r *Renderer) { r.fallbackHeight = max(0, h) }
}

// WithMirror registers a callback that receives the "HH:MM:SS" text on
// every tick, drawn or not.
func WithMirror(fn func(string)) Option {
	return func(r *Renderer) { r.mirror = fn }
}

// NewRenderer returns a renderer with all ten glyphs loaded.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		loc:    time.Local,
		logger: log.Default(),
		glyphs: glyph.All(),
		frame:  Frame{Ratio: 1},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Frame returns the current frame state.
func (r *Renderer) Frame() Frame { return r.frame }

// SetSize sets the logical size directly, without touching a surface.
func (r *Renderer) SetSize(width, height, ratio float64) {
	if ratio <= 0 {
		ratio = 1
	}
	r.frame = Frame{Width: width, Height: height, Ratio: ratio, Layout: ComputeLayout(width, height)}
}

// Resize measures host, reallocates the surface's pixel buffer and resets
// its transform so drawing happens in logical pixels.
func (r *Renderer) Resize(host surface.Host, s surface.Surface) Frame {
	w, h := host.LogicalSize()
	if h <= 0 && r.fallbackHeight > 0 {
		h = r.fallbackHeight
	}
	ratio := host.PixelRatio()
	r.SetSize(w, h, ratio)

	s.Resize(surface.PhysicalSize(w, h, r.frame.Ratio))
	s.SetTransform(surface.Scaling(r.frame.Ratio, r.frame.Ratio))
	return r.frame
}

// Digits returns the six-digit "HHMMSS" string for now.
func (r *Renderer) Digits(now time.Time) string {
	return now.In(r.loc).Format(DigitsLayout)
}

// Mirror returns the "HH:MM:SS" text for now.
func (r *Renderer) Mirror(now time.Time) string {
	return now.In(r.loc).Format(MirrorLayout)
}

// Tick draws the time for now. While the frame has no area nothing is
// drawn and Tick returns nil. The first drawing error is returned after
// the remaining cells have been drawn.
func (r *Renderer) Tick(now time.Time, s surface.Surface) error {
	if r.mirror != nil {
		r.mirror(r.Mirror(now))
	}

	l := r.frame.Layout
	if l.Empty() {
		return nil
	}

	digits := r.Digits(now)
	s.ClearRect(0, 0, l.Width, l.Height)

	var firstErr error
	for i := range Columns {
		g := r.glyphs[digits[i]-'0']
		color := surface.HSL(Hue(i), saturation, lightness)
		if err := drawGlyph(s, g, l.Cells[i], color); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		r.logger.Debug("frame drawn with errors", "digits", digits, "err", firstErr)
	}
	return firstErr
}

// drawGlyph draws g into cell, rotating each stroke about the cell centre.
func drawGlyph(s surface.Surface, g glyph.Glyph, cell Rect, color surface.Color) error {
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	s.Save()
	s.Translate(cell.Center())
	for _, st := range g {
		s.Save()
		s.Rotate(st.Rotation)
		s.SetGlobalAlpha(st.Opacity())
		s.SetLineWidth(float64(st.LineWeight))
		s.SetStrokeColor(color)
		s.SetFillColor(color)

		gx := (st.RelX - 0.5) * cell.W
		gy := (st.RelY - 0.5) * cell.H
		gw := st.RelW * cell.W
		gh := st.RelH * cell.H

		s.BeginPath()
		switch st.Kind {
		case glyph.AngularPath:
			s.MoveTo(gx-gw/2, gy-gh/2)
			s.LineTo(gx+gw/4, gy+gh/8)
			s.LineTo(gx-gw/8, gy+gh/2)
			keep(s.Stroke())
		case glyph.Arc:
			s.Ellipse(gx, gy, gw/2, gh/2, 0, st.ArcSpan())
			keep(s.Stroke())
		default:
			s.MoveTo(gx, gy-gh/2)
			s.LineTo(gx+gw/2, gy+gh/2)
			s.LineTo(gx-gw/2, gy+gh/2)
			s.ClosePath()
			keep(s.Fill())
		}
		s.Restore()
	}
	s.Restore()
	return firstErr
}
