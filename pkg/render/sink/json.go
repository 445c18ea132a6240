package sink

import (
	"encoding/json"
	"time"

	"github.com/matzehuels/glyphclock/pkg/clock"
	"github.com/matzehuels/glyphclock/pkg/surface"
)

// Frame is the JSON document written by [RenderJSON].
type Frame struct {
	Time   string       `json:"time"`
	Digits string       `json:"digits"`
	Width  float64      `json:"width"`
	Height float64      `json:"height"`
	Layout clock.Layout `json:"layout"`
	Hues   []float64    `json:"hues"`
	Ops    []surface.Op `json:"ops"`
}

// RenderJSON records the drawing operations for t and returns them with the
// layout as pretty-printed JSON. Sizing ops are omitted; the first op is the
// frame's clearRect.
func RenderJSON(t time.Time, opts ...Option) ([]byte, error) {
	c := newConfig(opts)
	rec := surface.NewRecorder()
	r := clock.NewRenderer(clock.WithLocation(c.loc))
	r.SetSize(c.width, c.height, 1)
	if err := r.Tick(t, rec); err != nil {
		return nil, err
	}

	out := Frame{
		Time:   r.Mirror(t),
		Digits: r.Digits(t),
		Width:  c.width,
		Height: c.height,
		Layout: r.Frame().Layout,
		Hues:   make([]float64, clock.Columns),
		Ops:    rec.Ops,
	}
	for i := range out.Hues {
		out.Hues[i] = clock.Hue(i)
	}
	if out.Ops == nil {
		out.Ops = []surface.Op{}
	}
	return json.MarshalIndent(out, "", "  ")
}
