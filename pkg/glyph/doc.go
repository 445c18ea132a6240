// Package glyph generates the procedural digit shapes drawn by the clock.
//
// Each decimal digit maps to a [Glyph]: a short, ordered list of abstract
// [Stroke] descriptors (angular path, arc or filled triangle) positioned
// relative to a unit cell. The list is a pure function of the digit. A
// 32-bit seed is derived from the digit, a mulberry32 stream is started
// from it, and a fixed sequence of draws is consumed per stroke.
//
// # Usage
//
//	g := glyph.Lookup(7)          // cached, never regenerated
//	for _, s := range g {
//	    fmt.Println(s.Kind, s.RelX, s.RelY)
//	}
//
// All ten glyphs are generated once when the package is initialised and are
// never mutated afterwards. [Lookup] returns a copy, so callers may modify
// the result freely.
//
// # Determinism
//
// The generator reads no clock, environment or global random state. The
// same digit yields the same strokes on every run and every platform.
package glyph
