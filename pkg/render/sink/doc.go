// Package sink renders single clock frames to output formats.
//
// Every sink takes the time to draw and functional options. Sizes are in
// logical pixels; [WithScale] sets the device pixel ratio for raster output.
//
//	svg, err := sink.RenderSVG(t, sink.WithSize(600, 100))
//	txt, err := sink.RenderTerminal(t, 80)
package sink
