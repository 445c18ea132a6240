// Package clock lays out and draws the six-digit glyph clock.
//
// A [Renderer] turns a wall-clock time into draw calls on a
// [surface.Surface]: HH, MM and SS become six equal cells across the
// surface, each filled with the cached [glyph.Glyph] for its digit and
// tinted with a per-column hue.
//
// A [Clock] drives a Renderer the way a page does. It redraws every second,
// immediately after each resize, and polls every 500ms while the host is
// visible but has no measured size, to recover from late layout. All three
// triggers are handled on one goroutine, so frame state has a single writer.
//
//	host := &surface.StaticHost{Width: 600, Height: 100, Ratio: 2}
//	c := clock.New(host, surface.NewRaster(1, 1), clock.WithLogger(logger))
//	go c.Run(ctx)
//	c.Resized() // after the host changes size
package clock
