// Package surface defines the 2D immediate-mode drawing contract the clock
// renders against, and the backends that implement it.
//
// A [Surface] mirrors the small subset of a canvas 2D context the clock
// needs: clear, save/restore, translate/rotate, global alpha, line width and
// colors, path construction, stroke/fill, elliptical arcs, and a transform
// setter used once per resize to compensate for display pixel density.
//
// A [Host] is the rectangular element the surface is attached to. It reports
// its logical (device-independent) size, the display pixel ratio and whether
// it is currently visible.
//
// # Backends
//
//   - [Raster]: pixel buffer backed by github.com/gogpu/gg, encodes to PNG;
//     transforms, the save stack and arc curves are handled by gg
//   - [SVG]: vector output written with github.com/ajstarks/svgo
//   - [Recorder]: records every call, used by tests and the JSON sink
//
// All backends keep canvas semantics: paths persist across Stroke and Fill
// until the next BeginPath, and Save/Restore cover the transform as well as
// alpha, line width and colors.
package surface
