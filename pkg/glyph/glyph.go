package glyph

import (
	"fmt"
	"math"
	"slices"
)

const (
	// baseSeed is the FNV-1a 32-bit offset basis, used only for bit dispersion.
	baseSeed uint32 = 0x811C9DC5

	// digitMix spreads neighbouring digits across the seed space.
	digitMix uint32 = 9973

	minStrokes  = 3
	strokeRange = 4 // strokes per glyph: minStrokes + [0, strokeRange)

	// MinSize and MaxSize bound RelW and RelH.
	MinSize = 0.08
	MaxSize = 0.48

	// MaxLineWeight is the heaviest stroke width (LineWeight is in [1, MaxLineWeight]).
	MaxLineWeight = 6

	// Digits is the number of glyphs in the table.
	Digits = 10
)

// Kind selects the primitive a stroke is drawn with.
type Kind int

const (
	AngularPath Kind = iota
	Arc
	FilledTriangle

	kindCount = 3
)

var kindNames = [...]string{"angular_path", "arc", "filled_triangle"}

// String returns the snake_case name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(kindNames) {
		return nil, fmt.Errorf("glyph: unknown kind %d", int(k))
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	i := slices.Index(kindNames[:], string(b))
	if i < 0 {
		return fmt.Errorf("glyph: unknown kind %q", b)
	}
	*k = Kind(i)
	return nil
}

// Stroke is one abstract drawing primitive inside a glyph's unit cell.
type Stroke struct {
	Kind       Kind    `json:"kind"`
	RelX       float64 `json:"rel_x"`       // [0, 1)
	RelY       float64 `json:"rel_y"`       // [0, 1)
	RelW       float64 `json:"rel_w"`       // [MinSize, MaxSize)
	RelH       float64 `json:"rel_h"`       // [MinSize, MaxSize)
	Rotation   float64 `json:"rotation"`    // radians, [0, 2π)
	LineWeight int     `json:"line_weight"` // [1, MaxLineWeight]
	AlphaSeed  float64 `json:"alpha_seed"`  // [0, 1)
	// ArcSpanSeed varies the swept angle of Arc strokes. It shares the
	// alpha draw so each stroke consumes exactly eight values.
	ArcSpanSeed float64 `json:"arc_span_seed"`
}

// Opacity maps AlphaSeed into [0.6, 1.0].
func (s Stroke) Opacity() float64 {
	return 0.6 + s.AlphaSeed*0.4
}

// ArcSpan returns the angle swept by an Arc stroke, in radians.
func (s Stroke) ArcSpan() float64 {
	return math.Pi * (0.6 + s.ArcSpanSeed*1.4)
}

// Glyph is the ordered stroke list for one digit.
type Glyph []Stroke

// Seed returns the stream seed for digit.
func Seed(digit int) uint32 {
	return baseSeed ^ (uint32(digit) * digitMix)
}

// Generate builds the glyph for digit. It panics if digit is outside [0, 9];
// callers validate digits before asking for shapes.
func Generate(digit int) Glyph {
	if digit < 0 || digit >= Digits {
		panic(fmt.Sprintf("glyph: digit %d out of range", digit))
	}

	rnd := NewSource(Seed(digit))
	n := minStrokes + rnd.Intn(strokeRange)

	g := make(Glyph, 0, n)
	for range n {
		// Draw order is load-bearing: reordering shifts every later stroke.
		kind := Kind(rnd.Intn(kindCount))
		x := rnd.Float64()
		y := rnd.Float64()
		w := MinSize + rnd.Float64()*(MaxSize-MinSize)
		h := MinSize + rnd.Float64()*(MaxSize-MinSize)
		rot := rnd.Float64() * 2 * math.Pi
		weight := 1 + rnd.Intn(MaxLineWeight)
		a := rnd.Float64()

		g = append(g, Stroke{
			Kind:        kind,
			RelX:        x,
			RelY:        y,
			RelW:        w,
			RelH:        h,
			Rotation:    rot,
			LineWeight:  weight,
			AlphaSeed:   a,
			ArcSpanSeed: a,
		})
	}
	return g
}

// table holds every digit's glyph. It is written once during init.
var table = func() [Digits]Glyph {
	var t [Digits]Glyph
	for d := range Digits {
		t[d] = Generate(d)
	}
	return t
}()

// Lookup returns a copy of the cached glyph for digit.
// It panics if digit is outside [0, 9].
func Lookup(digit int) Glyph {
	return slices.Clone(table[digit])
}

// ForRune returns the cached glyph for an ASCII digit rune.
// The boolean is false for anything other than '0'..'9'.
func ForRune(r rune) (Glyph, bool) {
	if r < '0' || r > '9' {
		return nil, false
	}
	return Lookup(int(r - '0')), true
}

// All returns copies of all ten glyphs, indexed by digit.
func All() [Digits]Glyph {
	var out [Digits]Glyph
	for d := range Digits {
		out[d] = Lookup(d)
	}
	return out
}
