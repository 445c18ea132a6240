package clock

import "math"

const (
	// Columns is the number of digit cells: HH MM SS.
	Columns = 6

	maxGap      = 24.0
	gapRatio    = 0.02
	aspectRatio = 0.9 // cell height relative to cell width

	baseHue    = 40.0
	hueStep    = 20.0
	saturation = 0.9
	lightness  = 0.5
)

// Rect is an axis-aligned rectangle in logical pixels.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Center returns the rectangle's midpoint.
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Layout is the column geometry for one surface size.
type Layout struct {
	Width      float64       `json:"width"`
	Height     float64       `json:"height"`
	Gap        float64       `json:"gap"`
	CellWidth  float64       `json:"cell_width"`
	CellHeight float64       `json:"cell_height"`
	StartX     float64       `json:"start_x"`
	StartY     float64       `json:"start_y"`
	Cells      [Columns]Rect `json:"cells"`
}

// ComputeLayout returns the cell geometry for a logical surface size.
// The row of cells is centred horizontally and each cell vertically.
func ComputeLayout(width, height float64) Layout {
	gap := math.Min(maxGap, width*gapRatio)
	cellW := (width - gap*(Columns-1)) / Columns
	cellH := math.Min(height, cellW*aspectRatio)
	startX := (width - (cellW*Columns + gap*(Columns-1))) / 2
	startY := (height - cellH) / 2

	l := Layout{
		Width:      width,
		Height:     height,
		Gap:        gap,
		CellWidth:  cellW,
		CellHeight: cellH,
		StartX:     startX,
		StartY:     startY,
	}
	for i := range Columns {
		l.Cells[i] = Rect{X: startX + float64(i)*(cellW+gap), Y: startY, W: cellW, H: cellH}
	}
	return l
}

// Empty reports whether the surface has no drawable area.
func (l Layout) Empty() bool {
	return l.Width <= 0 || l.Height <= 0
}

// Hue returns the hue in degrees for column i.
func Hue(i int) float64 {
	return math.Mod(baseHue+float64(i)*hueStep, 360)
}
