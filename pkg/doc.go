// Package pkg provides the libraries behind glyphclock.
//
// # Overview
//
// Glyphclock draws the time of day as six columns of procedurally generated
// glyphs. Each digit 0-9 has a fixed stroke list derived from a seeded
// generator, so every frame for the same second looks the same. The pkg
// directory is organized into these areas:
//
//  1. [glyph] - Seeded stroke tables for the ten digits
//  2. [clock] - Layout, the per-second renderer and the event loop
//  3. [surface] - Drawing backends (raster, SVG, recorder)
//  4. [render] - Sinks that turn one frame into PNG, SVG, JSON or text
//  5. [pipeline] - Multi-format rendering with caching
//  6. [playlist], [feed], [flash], [view] - Site collaborators
//  7. [cache], [config], [errors], [httputil], [observability] - Infrastructure
//
// # Architecture
//
// The typical data flow for one frame:
//
//	time.Time
//	    ↓
//	[clock] Renderer (layout + glyph lookup)
//	    ↓
//	[surface] Surface (raster / svg / recorder)
//	    ↓
//	[render/sink] PNG, SVG, JSON or terminal bytes
//
// # Quick Start
//
//	res, err := pipeline.NewRunner(nil, nil).Render(ctx, pipeline.Options{
//	    Time:    time.Now(),
//	    Formats: []string{pipeline.FormatPNG, pipeline.FormatSVG},
//	})
package pkg
