package surface

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"
)

// SVG is a Surface that collects vector elements and writes them as an SVG
// document with svgo.
//
// A ClearRect covering the whole document discards everything drawn so far;
// partial clears have no vector equivalent and are ignored.
type SVG struct {
	pen
	width, height int
	title         string
	background    string
	elements      []svgElement
}

type svgElement struct {
	d     string
	style string
}

// NewSVG creates an SVG surface with a width×height document.
func NewSVG(width, height int) *SVG {
	return &SVG{pen: newPen(), width: max(1, width), height: max(1, height)}
}

// SetTitle sets the document <title>.
func (s *SVG) SetTitle(title string) { s.title = title }

// SetBackground paints c behind everything drawn.
func (s *SVG) SetBackground(c Color) { s.background = c.Hex() }

// Resize changes the document size.
func (s *SVG) Resize(width, height int) {
	s.width, s.height = max(1, width), max(1, height)
	s.BeginPath()
}

// ClearRect discards all elements when the rectangle covers the document.
func (s *SVG) ClearRect(x, y, w, h float64) {
	x0, y0, x1, y1 := s.deviceRect(x, y, w, h)
	if x0 <= 0 && y0 <= 0 && x1 >= float64(s.width) && y1 >= float64(s.height) {
		s.elements = s.elements[:0]
	}
}

// Stroke appends the current path as an outlined element.
func (s *SVG) Stroke() error {
	d := s.pathData()
	if d == "" {
		return nil
	}
	s.elements = append(s.elements, svgElement{
		d: d,
		style: fmt.Sprintf("fill:none;stroke:%s;stroke-opacity:%s;stroke-width:%s;stroke-linejoin:miter",
			s.cur.stroke.Hex(), num(s.cur.alpha), num(s.deviceLineWidth())),
	})
	return nil
}

// Fill appends the current path as a filled element.
func (s *SVG) Fill() error {
	d := s.pathData()
	if d == "" {
		return nil
	}
	s.elements = append(s.elements, svgElement{
		d:     d,
		style: fmt.Sprintf("fill:%s;fill-opacity:%s;stroke:none", s.cur.fill.Hex(), num(s.cur.alpha)),
	})
	return nil
}

// Len returns the number of elements drawn since the last full clear.
func (s *SVG) Len() int { return len(s.elements) }

// Encode writes the document.
func (s *SVG) Encode(w io.Writer) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(s.width, s.height)
	if s.title != "" {
		canvas.Title(s.title)
	}
	if s.background != "" {
		canvas.Rect(0, 0, s.width, s.height, "fill:"+s.background)
	}
	for _, el := range s.elements {
		canvas.Path(el.d, el.style)
	}
	canvas.End()
	return ew.err
}

func (s *SVG) pathData() string {
	var b strings.Builder
	for _, sp := range s.path {
		if len(sp.pts) < 2 {
			continue
		}
		for i, pt := range sp.pts {
			if i == 0 {
				b.WriteString("M")
			} else {
				b.WriteString(" L")
			}
			b.WriteString(num(pt.X))
			b.WriteByte(' ')
			b.WriteString(num(pt.Y))
		}
		if sp.closed {
			b.WriteString(" Z")
		}
		b.WriteByte(' ')
	}
	return strings.TrimSpace(b.String())
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// errWriter remembers the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return len(p), nil
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

var _ Surface = (*SVG)(nil)
