package surface

// Op is one recorded drawing call.
type Op struct {
	Name  string    `json:"op"`
	Args  []float64 `json:"args,omitempty"`
	Color string    `json:"color,omitempty"`
}

// Recorder is a Surface that records every call instead of drawing.
// It is the reference backend for tests and for the JSON sink.
type Recorder struct {
	Ops []Op

	// Width and Height hold the last Resize.
	Width, Height int
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) add(name string, args ...float64) {
	r.Ops = append(r.Ops, Op{Name: name, Args: args})
}

func (r *Recorder) Resize(width, height int) {
	r.Width, r.Height = width, height
	r.add("resize", float64(width), float64(height))
}

func (r *Recorder) ClearRect(x, y, w, h float64) { r.add("clearRect", x, y, w, h) }
func (r *Recorder) Save()                        { r.add("save") }
func (r *Recorder) Restore()                     { r.add("restore") }
func (r *Recorder) Translate(x, y float64)       { r.add("translate", x, y) }
func (r *Recorder) Rotate(angle float64)         { r.add("rotate", angle) }

func (r *Recorder) SetTransform(m Matrix) {
	r.add("setTransform", m.A, m.B, m.C, m.D, m.E, m.F)
}

func (r *Recorder) SetGlobalAlpha(a float64) { r.add("globalAlpha", a) }
func (r *Recorder) SetLineWidth(w float64)   { r.add("lineWidth", w) }

func (r *Recorder) SetStrokeColor(c Color) {
	r.Ops = append(r.Ops, Op{Name: "strokeStyle", Color: c.Hex()})
}

func (r *Recorder) SetFillColor(c Color) {
	r.Ops = append(r.Ops, Op{Name: "fillStyle", Color: c.Hex()})
}

func (r *Recorder) BeginPath()          { r.add("beginPath") }
func (r *Recorder) MoveTo(x, y float64) { r.add("moveTo", x, y) }
func (r *Recorder) LineTo(x, y float64) { r.add("lineTo", x, y) }
func (r *Recorder) ClosePath()          { r.add("closePath") }

func (r *Recorder) Ellipse(cx, cy, rx, ry, start, end float64) {
	r.add("ellipse", cx, cy, rx, ry, start, end)
}

func (r *Recorder) Stroke() error { r.add("stroke"); return nil }
func (r *Recorder) Fill() error   { r.add("fill"); return nil }

// Reset drops all recorded ops.
func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }

// Count returns how many ops with the given name were recorded.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, op := range r.Ops {
		if op.Name == name {
			n++
		}
	}
	return n
}

// Drawn reports whether any stroke or fill was recorded.
func (r *Recorder) Drawn() bool {
	return r.Count("stroke")+r.Count("fill") > 0
}

var _ Surface = (*Recorder)(nil)
