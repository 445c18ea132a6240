package clock

import (
	"errors"
	"testing"
	"time"

	"github.com/matzehuels/glyphclock/pkg/glyph"
	"github.com/matzehuels/glyphclock/pkg/surface"
)

var at130742 = time.Date(2026, 3, 1, 13, 7, 42, 0, time.UTC)

func newTestRenderer(opts ...Option) *Renderer {
	return NewRenderer(append([]Option{WithLocation(time.UTC)}, opts...)...)
}

func TestRendererDigits(t *testing.T) {
	r := newTestRenderer()
	if got := r.Digits(at130742); got != "130742" {
		t.Errorf("Digits = %q, want 130742", got)
	}
	if got := r.Mirror(at130742); got != "13:07:42" {
		t.Errorf("Mirror = %q, want 13:07:42", got)
	}
	midnight := time.Date(2026, 1, 1, 0, 0, 5, 0, time.UTC)
	if got := r.Digits(midnight); got != "000005" {
		t.Errorf("Digits(midnight) = %q, want 000005", got)
	}
}

func TestRendererResize(t *testing.T) {
	r := newTestRenderer()
	rec := surface.NewRecorder()
	f := r.Resize(&surface.StaticHost{Width: 600, Height: 100, Ratio: 2}, rec)

	if f.Width != 600 || f.Height != 100 || f.Ratio != 2 {
		t.Errorf("frame = %+v", f)
	}
	if rec.Width != 1200 || rec.Height != 200 {
		t.Errorf("physical size = %dx%d, want 1200x200", rec.Width, rec.Height)
	}
	last := rec.Ops[len(rec.Ops)-1]
	if last.Name != "setTransform" {
		t.Fatalf("last op = %q, want setTransform", last.Name)
	}
	want := []float64{2, 0, 0, 2, 0, 0}
	for i, v := range want {
		if last.Args[i] != v {
			t.Errorf("transform arg %d = %v, want %v", i, last.Args[i], v)
		}
	}
}

func TestRendererResizeFallbackHeight(t *testing.T) {
	r := newTestRenderer(WithFallbackHeight(120))
	rec := surface.NewRecorder()
	f := r.Resize(&surface.StaticHost{Width: 600}, rec)
	if f.Height != 120 || f.Layout.Empty() {
		t.Errorf("frame = %+v, want height 120", f)
	}
}

func TestTickZeroSize(t *testing.T) {
	var mirrored []string
	r := newTestRenderer(WithMirror(func(s string) { mirrored = append(mirrored, s) }))
	rec := surface.NewRecorder()
	r.Resize(&surface.StaticHost{Width: 0, Height: 100}, rec)
	rec.Reset()

	if err := r.Tick(at130742, rec); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if len(rec.Ops) != 0 {
		t.Errorf("recorded %d ops on zero-size surface", len(rec.Ops))
	}
	if len(mirrored) != 1 || mirrored[0] != "13:07:42" {
		t.Errorf("mirror = %v", mirrored)
	}
}

func TestTickDrawsTime(t *testing.T) {
	r := newTestRenderer()
	rec := surface.NewRecorder()
	r.Resize(&surface.StaticHost{Width: 600, Height: 100}, rec)
	rec.Reset()

	if err := r.Tick(at130742, rec); err != nil {
		t.Fatalf("Tick: %v", err)
	}

	first := rec.Ops[0]
	if first.Name != "clearRect" || first.Args[2] != 600 || first.Args[3] != 100 {
		t.Errorf("first op = %+v, want full clearRect", first)
	}

	// One translate per column onto the cell centre.
	var centres [][]float64
	for _, op := range rec.Ops {
		if op.Name == "translate" {
			centres = append(centres, op.Args)
		}
	}
	if len(centres) != Columns {
		t.Fatalf("translate count = %d, want %d", len(centres), Columns)
	}
	l := ComputeLayout(600, 100)
	for i, c := range centres {
		x, y := l.Cells[i].Center()
		if !approx(c[0], x) || !approx(c[1], y) {
			t.Errorf("column %d centre = %v, want (%v, %v)", i, c, x, y)
		}
	}

	strokes := 0
	for _, d := range "130742" {
		strokes += len(glyph.Lookup(int(d - '0')))
	}
	if got := rec.Count("rotate"); got != strokes {
		t.Errorf("rotate count = %d, want %d", got, strokes)
	}
	if got := rec.Count("stroke") + rec.Count("fill"); got != strokes {
		t.Errorf("paint count = %d, want %d", got, strokes)
	}
	if rec.Count("save") != rec.Count("restore") {
		t.Errorf("unbalanced save/restore: %d/%d", rec.Count("save"), rec.Count("restore"))
	}
}

func TestTickFirstColumnMatchesGlyph(t *testing.T) {
	r := newTestRenderer()
	rec := surface.NewRecorder()
	r.SetSize(600, 100, 1)

	if err := r.Tick(at130742, rec); err != nil {
		t.Fatalf("Tick: %v", err)
	}

	g := glyph.Lookup(1)
	var rotations []float64
	for _, op := range rec.Ops {
		if op.Name == "rotate" {
			rotations = append(rotations, op.Args[0])
		}
	}
	for i, st := range g {
		if rotations[i] != st.Rotation {
			t.Errorf("stroke %d rotation = %v, want %v", i, rotations[i], st.Rotation)
		}
	}
}

func TestTickColumnHues(t *testing.T) {
	r := newTestRenderer()
	rec := surface.NewRecorder()
	r.SetSize(600, 100, 1)
	if err := r.Tick(at130742, rec); err != nil {
		t.Fatalf("Tick: %v", err)
	}

	column := -1
	for _, op := range rec.Ops {
		switch op.Name {
		case "translate":
			column++
		case "strokeStyle", "fillStyle":
			want := surface.HSL(Hue(column), 0.9, 0.5).Hex()
			if op.Color != want {
				t.Fatalf("column %d %s = %s, want %s", column, op.Name, op.Color, want)
			}
		}
	}
	if column != Columns-1 {
		t.Errorf("saw %d columns, want %d", column+1, Columns)
	}
}

func TestTickDeterministic(t *testing.T) {
	r := newTestRenderer()
	r.SetSize(600, 100, 1)
	a, b := surface.NewRecorder(), surface.NewRecorder()
	if err := r.Tick(at130742, a); err != nil {
		t.Fatal(err)
	}
	if err := r.Tick(at130742, b); err != nil {
		t.Fatal(err)
	}
	if len(a.Ops) != len(b.Ops) {
		t.Fatalf("op counts differ: %d vs %d", len(a.Ops), len(b.Ops))
	}
	for i := range a.Ops {
		if a.Ops[i].Name != b.Ops[i].Name || a.Ops[i].Color != b.Ops[i].Color {
			t.Fatalf("op %d differs: %+v vs %+v", i, a.Ops[i], b.Ops[i])
		}
	}
}

type failingSurface struct {
	*surface.Recorder
	err error
}

func (f failingSurface) Stroke() error { return f.err }

func TestTickReturnsFirstError(t *testing.T) {
	boom := errors.New("boom")
	s := failingSurface{Recorder: surface.NewRecorder(), err: boom}
	r := newTestRenderer()
	r.SetSize(600, 100, 1)

	if err := r.Tick(at130742, s); !errors.Is(err, boom) {
		t.Errorf("Tick error = %v, want boom", err)
	}
	// Fills still happen after a failed stroke.
	if s.Count("translate") != Columns {
		t.Errorf("translate count = %d, want %d", s.Count("translate"), Columns)
	}
}
