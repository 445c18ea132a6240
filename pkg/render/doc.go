// Package render turns a wall-clock time into finished clock artifacts.
//
// The [sink] subpackage draws one frame with a [clock.Renderer] into a
// surface backend and encodes it:
//
//   - PNG: gg raster at the requested pixel ratio
//   - SVG: svgo document at logical size
//   - JSON: the layout plus the recorded drawing operations
//   - Terminal: a raster frame downsampled to half-block cells
//
//	png, err := sink.RenderPNG(time.Now(), sink.WithSize(600, 100), sink.WithScale(2))
//
// [sink]: github.com/matzehuels/glyphclock/pkg/render/sink
// [clock.Renderer]: github.com/matzehuels/glyphclock/pkg/clock.Renderer
package render
