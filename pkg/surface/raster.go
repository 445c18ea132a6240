package surface

import (
	"image"
	"io"
	"math"

	"github.com/gogpu/gg"
)

// rasterPaint is the part of a Save that gg's Push does not cover.
type rasterPaint struct {
	alpha     float64
	lineWidth float64
	stroke    Color
	fill      Color
}

// Raster is a Surface backed by a gg software pixel buffer.
//
// The transform stack lives in the gg context: Save and Restore map to
// Push and Pop, and path points are transformed by gg as they are added.
// Arcs are emitted as cubic Béziers in user space. Global alpha is folded
// into the paint color.
type Raster struct {
	dc            *gg.Context
	width, height int
	background    gg.RGBA

	paint rasterPaint
	saved []rasterPaint

	open     bool // a subpath is accepting LineTo
	segments int  // drawable segments in the current path
}

// NewRaster creates a raster surface with a width×height pixel buffer.
func NewRaster(width, height int) *Raster {
	width, height = max(1, width), max(1, height)
	return &Raster{
		dc:     gg.NewContext(width, height),
		width:  width,
		height: height,
		paint:  rasterPaint{alpha: 1, lineWidth: 1},
	}
}

// Resize reallocates the pixel buffer. The transform is left untouched;
// callers set it again afterwards.
func (r *Raster) Resize(width, height int) {
	width, height = max(1, width), max(1, height)
	if width == r.width && height == r.height {
		return
	}
	// gg only fails on non-positive sizes, which are clamped above.
	_ = r.dc.Resize(width, height)
	r.width, r.height = width, height
	r.BeginPath()
}

// Size returns the pixel buffer size.
func (r *Raster) Size() (int, int) { return r.width, r.height }

// SetBackground makes ClearRect paint c instead of clearing to transparent.
func (r *Raster) SetBackground(c Color) {
	r.background = c.RGBA(1)
}

// ClearRect clears a rectangle to the background, transparent by default.
func (r *Raster) ClearRect(x, y, w, h float64) {
	x0, y0, x1, y1 := r.deviceRect(x, y, w, h)
	if x0 <= 0 && y0 <= 0 && x1 >= float64(r.width) && y1 >= float64(r.height) {
		r.dc.ClearWithColor(r.background)
		return
	}
	px0, py0 := max(0, int(math.Floor(x0))), max(0, int(math.Floor(y0)))
	px1, py1 := min(r.width, int(math.Ceil(x1))), min(r.height, int(math.Ceil(y1)))
	for py := py0; py < py1; py++ {
		for px := px0; px < px1; px++ {
			r.dc.SetPixel(px, py, r.background)
		}
	}
}

func (r *Raster) deviceRect(x, y, w, h float64) (x0, y0, x1, y1 float64) {
	corners := [4][2]float64{{x, y}, {x + w, y}, {x, y + h}, {x + w, y + h}}
	for i, c := range corners {
		dx, dy := r.dc.TransformPoint(c[0], c[1])
		if i == 0 {
			x0, y0, x1, y1 = dx, dy, dx, dy
			continue
		}
		x0, y0 = min(x0, dx), min(y0, dy)
		x1, y1 = max(x1, dx), max(y1, dy)
	}
	return x0, y0, x1, y1
}

// Save pushes the transform and paint state.
func (r *Raster) Save() {
	r.saved = append(r.saved, r.paint)
	r.dc.Push()
}

// Restore pops the last Save. Unbalanced calls are ignored.
func (r *Raster) Restore() {
	if len(r.saved) == 0 {
		return
	}
	r.paint = r.saved[len(r.saved)-1]
	r.saved = r.saved[:len(r.saved)-1]
	r.dc.Pop()
}

func (r *Raster) Translate(x, y float64) { r.dc.Translate(x, y) }
func (r *Raster) Rotate(angle float64)   { r.dc.Rotate(angle) }

// SetTransform replaces the gg transform with m.
func (r *Raster) SetTransform(m Matrix) { r.dc.SetTransform(m.toGG()) }

// Transform returns the current transform.
func (r *Raster) Transform() Matrix { return fromGG(r.dc.GetTransform()) }

func (r *Raster) SetGlobalAlpha(a float64) {
	if a >= 0 && a <= 1 {
		r.paint.alpha = a
	}
}

func (r *Raster) SetLineWidth(w float64) {
	if w > 0 {
		r.paint.lineWidth = w
	}
}

func (r *Raster) SetStrokeColor(c Color) { r.paint.stroke = c }
func (r *Raster) SetFillColor(c Color)   { r.paint.fill = c }

func (r *Raster) BeginPath() {
	r.dc.ClearPath()
	r.open, r.segments = false, 0
}

func (r *Raster) MoveTo(x, y float64) {
	r.dc.MoveTo(x, y)
	r.open = true
}

// LineTo without an open subpath behaves like MoveTo.
func (r *Raster) LineTo(x, y float64) {
	if !r.open {
		r.MoveTo(x, y)
		return
	}
	r.dc.LineTo(x, y)
	r.segments++
}

func (r *Raster) ClosePath() {
	if r.open {
		r.dc.ClosePath()
		r.open = false
	}
}

// maxArcSegment is the largest sweep approximated by one cubic.
const maxArcSegment = math.Pi / 2

// Ellipse appends the arc as cubic Béziers. It joins an open subpath with
// a line, as a canvas does. If end < start the sweep wraps forward by whole
// turns.
func (r *Raster) Ellipse(cx, cy, rx, ry, start, end float64) {
	for end < start {
		end += 2 * math.Pi
	}
	point := func(a float64) (float64, float64, float64, float64) {
		sin, cos := math.Sincos(a)
		return cx + rx*cos, cy + ry*sin, -rx * sin, ry * cos
	}

	x, y, dx, dy := point(start)
	if r.open {
		r.LineTo(x, y)
	} else {
		r.MoveTo(x, y)
	}

	n := int(math.Ceil((end - start) / maxArcSegment))
	if n == 0 {
		return
	}
	step := (end - start) / float64(n)
	k := 4.0 / 3.0 * math.Tan(step/4)
	for i := 1; i <= n; i++ {
		x1, y1, dx1, dy1 := point(start + step*float64(i))
		r.dc.CubicTo(x+k*dx, y+k*dy, x1-k*dx1, y1-k*dy1, x1, y1)
		x, y, dx, dy = x1, y1, dx1, dy1
	}
	r.segments += n
}

// Stroke outlines the current path. The path is kept for later calls.
func (r *Raster) Stroke() error {
	if r.segments == 0 {
		return nil
	}
	p := r.paint
	r.dc.SetRGBA(p.stroke.R, p.stroke.G, p.stroke.B, p.alpha)
	// The software rasterizer takes line widths in device pixels.
	r.dc.SetLineWidth(p.lineWidth * r.Transform().ScaleFactor())
	return r.dc.StrokePreserve()
}

// Fill fills the current path with the nonzero rule. The path is kept for
// later calls.
func (r *Raster) Fill() error {
	if r.segments == 0 {
		return nil
	}
	p := r.paint
	r.dc.SetRGBA(p.fill.R, p.fill.G, p.fill.B, p.alpha)
	return r.dc.FillPreserve()
}

// Image returns the current pixels.
func (r *Raster) Image() image.Image {
	return r.dc.Image()
}

// EncodePNG writes the pixel buffer as PNG.
func (r *Raster) EncodePNG(w io.Writer) error {
	return r.dc.EncodePNG(w)
}

// Close releases the gg context.
func (r *Raster) Close() error {
	return r.dc.Close()
}

var _ Surface = (*Raster)(nil)
