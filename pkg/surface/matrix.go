package surface

import (
	"math"

	"github.com/gogpu/gg"
)

// Matrix is a 2D affine transform in canvas order:
//
//	x' = A*x + C*y + E
//	y' = B*x + D*y + F
type Matrix struct {
	A, B, C, D, E, F float64
}

// Identity returns the identity transform.
func Identity() Matrix {
	return Matrix{A: 1, D: 1}
}

// Scaling returns a transform that scales by (sx, sy).
func Scaling(sx, sy float64) Matrix {
	return Matrix{A: sx, D: sy}
}

// Multiply returns m × o, so that o is applied before m.
func (m Matrix) Multiply(o Matrix) Matrix {
	return Matrix{
		A: m.A*o.A + m.C*o.B,
		B: m.B*o.A + m.D*o.B,
		C: m.A*o.C + m.C*o.D,
		D: m.B*o.C + m.D*o.D,
		E: m.A*o.E + m.C*o.F + m.E,
		F: m.B*o.E + m.D*o.F + m.F,
	}
}

// Translate returns m with a translation applied first.
func (m Matrix) Translate(x, y float64) Matrix {
	return m.Multiply(Matrix{A: 1, D: 1, E: x, F: y})
}

// Rotate returns m with a rotation (radians) applied first.
func (m Matrix) Rotate(angle float64) Matrix {
	sin, cos := math.Sincos(angle)
	return m.Multiply(Matrix{A: cos, B: sin, C: -sin, D: cos})
}

// Apply transforms the point (x, y).
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.E, m.B*x + m.D*y + m.F
}

// ScaleFactor returns the average linear scale, used for line widths.
func (m Matrix) ScaleFactor() float64 {
	return math.Sqrt(math.Abs(m.A*m.D - m.B*m.C))
}

// toGG converts m to gg's row-major layout.
func (m Matrix) toGG() gg.Matrix {
	return gg.Matrix{A: m.A, B: m.C, C: m.E, D: m.B, E: m.D, F: m.F}
}

func fromGG(g gg.Matrix) Matrix {
	return Matrix{A: g.A, B: g.D, C: g.B, D: g.E, E: g.C, F: g.F}
}

// Point is a 2D point.
type Point struct {
	X, Y float64
}

// arcStep is the largest angle covered by one flattened arc segment.
const arcStep = math.Pi / 24

// ArcPoints flattens an elliptical arc into a polyline, including both
// endpoints. The SVG backend uses it because it writes device-space paths. If end < start the sweep wraps forward by whole turns.
func ArcPoints(cx, cy, rx, ry, start, end float64) []Point {
	for end < start {
		end += 2 * math.Pi
	}
	n := max(2, int(math.Ceil((end-start)/arcStep)))
	pts := make([]Point, 0, n+1)
	for i := 0; i <= n; i++ {
		sin, cos := math.Sincos(start + (end-start)*float64(i)/float64(n))
		pts = append(pts, Point{X: cx + rx*cos, Y: cy + ry*sin})
	}
	return pts
}
