package surface

// state is the part of a drawing context covered by Save and Restore.
type state struct {
	m         Matrix
	alpha     float64
	lineWidth float64
	stroke    Color
	fill      Color
}

func defaultState() state {
	return state{m: Identity(), alpha: 1, lineWidth: 1}
}

// subpath is a run of device-space points started by MoveTo.
type subpath struct {
	pts    []Point
	closed bool
}

// pen implements the state and path half of Surface for the SVG backend.
// Points are transformed into device space as they are added.
type pen struct {
	cur   state
	stack []state
	path  []subpath
}

func newPen() pen {
	return pen{cur: defaultState()}
}

func (p *pen) Save() {
	p.stack = append(p.stack, p.cur)
}

// Restore pops the saved state. Unbalanced calls are ignored.
func (p *pen) Restore() {
	if len(p.stack) == 0 {
		return
	}
	p.cur = p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
}

func (p *pen) Translate(x, y float64) { p.cur.m = p.cur.m.Translate(x, y) }
func (p *pen) Rotate(angle float64)   { p.cur.m = p.cur.m.Rotate(angle) }
func (p *pen) SetTransform(m Matrix)  { p.cur.m = m }

func (p *pen) SetGlobalAlpha(a float64) {
	// Out-of-range values are ignored, as a canvas does.
	if a >= 0 && a <= 1 {
		p.cur.alpha = a
	}
}

func (p *pen) SetLineWidth(w float64) {
	if w > 0 {
		p.cur.lineWidth = w
	}
}

func (p *pen) SetStrokeColor(c Color) { p.cur.stroke = c }
func (p *pen) SetFillColor(c Color)   { p.cur.fill = c }

func (p *pen) BeginPath() { p.path = p.path[:0] }

func (p *pen) MoveTo(x, y float64) {
	x, y = p.cur.m.Apply(x, y)
	p.path = append(p.path, subpath{pts: []Point{{x, y}}})
}

func (p *pen) LineTo(x, y float64) {
	if len(p.path) == 0 || p.path[len(p.path)-1].closed {
		p.MoveTo(x, y)
		return
	}
	x, y = p.cur.m.Apply(x, y)
	last := &p.path[len(p.path)-1]
	last.pts = append(last.pts, Point{x, y})
}

func (p *pen) ClosePath() {
	if len(p.path) > 0 {
		p.path[len(p.path)-1].closed = true
	}
}

// Ellipse joins the arc to the open subpath, or starts a new one.
func (p *pen) Ellipse(cx, cy, rx, ry, start, end float64) {
	for i, pt := range ArcPoints(cx, cy, rx, ry, start, end) {
		if i == 0 && (len(p.path) == 0 || p.path[len(p.path)-1].closed) {
			p.MoveTo(pt.X, pt.Y)
			continue
		}
		p.LineTo(pt.X, pt.Y)
	}
}

// deviceLineWidth is the current line width in device pixels.
func (p *pen) deviceLineWidth() float64 {
	return p.cur.lineWidth * p.cur.m.ScaleFactor()
}

// deviceRect returns the device-space bounding box of a user-space rectangle.
func (p *pen) deviceRect(x, y, w, h float64) (x0, y0, x1, y1 float64) {
	corners := [4][2]float64{{x, y}, {x + w, y}, {x, y + h}, {x + w, y + h}}
	for i, c := range corners {
		dx, dy := p.cur.m.Apply(c[0], c[1])
		if i == 0 {
			x0, y0, x1, y1 = dx, dy, dx, dy
			continue
		}
		x0, y0 = min(x0, dx), min(y0, dy)
		x1, y1 = max(x1, dx), max(y1, dy)
	}
	return x0, y0, x1, y1
}
