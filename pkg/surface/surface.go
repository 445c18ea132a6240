package surface

// Surface is a 2D immediate-mode drawing context.
//
// Coordinates passed to drawing calls are transformed by the current
// transform. After a resize the transform is set to scale(ratio) so that
// callers draw in logical pixels regardless of density.
type Surface interface {
	// Resize reallocates the physical pixel buffer.
	Resize(width, height int)

	// ClearRect clears the given rectangle to transparent.
	ClearRect(x, y, w, h float64)

	Save()
	Restore()
	Translate(x, y float64)
	Rotate(angle float64)
	SetTransform(m Matrix)

	SetGlobalAlpha(a float64)
	SetLineWidth(w float64)
	SetStrokeColor(c Color)
	SetFillColor(c Color)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()
	// Ellipse adds an elliptical arc centred on (cx, cy) from angle start to
	// end (radians, clockwise in screen space) to the current path.
	Ellipse(cx, cy, rx, ry, start, end float64)

	Stroke() error
	Fill() error
}

// Host is the element a surface is attached to.
type Host interface {
	// LogicalSize returns the element size in CSS pixels.
	LogicalSize() (width, height float64)
	// PixelRatio returns physical pixels per logical pixel.
	PixelRatio() float64
	// Visible reports whether the element is currently shown.
	Visible() bool
}

// StaticHost is a Host with a fixed size. A nil *StaticHost is a hidden
// host with no size.
type StaticHost struct {
	Width, Height float64
	Ratio         float64
	Hidden        bool
}

// LogicalSize returns the configured size.
func (h *StaticHost) LogicalSize() (float64, float64) {
	if h == nil {
		return 0, 0
	}
	return h.Width, h.Height
}

// PixelRatio returns the configured ratio, defaulting to 1.
func (h *StaticHost) PixelRatio() float64 {
	if h == nil || h.Ratio <= 0 {
		return 1
	}
	return h.Ratio
}

// Visible reports whether the host is shown.
func (h *StaticHost) Visible() bool { return h != nil && !h.Hidden }

// PhysicalSize converts a logical size into a pixel buffer size.
// Each dimension is floored and clamped to at least 1.
func PhysicalSize(width, height, ratio float64) (int, int) {
	if ratio <= 0 {
		ratio = 1
	}
	return max(1, int(width*ratio)), max(1, int(height*ratio))
}
