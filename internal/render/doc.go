// Package render draws the server status image.
//
// A render runs in four steps, all synchronous and owned by the caller:
//
//  1. EstimateCard measures each record's card text with a Measurer
//  2. PlanGrid turns the card sizes into a CanvasPlan: one uniform cell size,
//     a fixed number of columns, and the canvas size around them
//  3. Compose paints the background card, header band, one card per record
//     (row-major) and the footer, taking every coordinate from the plan
//  4. The canvas is PNG encoded
//
// RenderOrFallback wraps the whole render. If any step fails it returns the
// fixed 800x200 error image instead, so callers always have a PNG to send.
//
// # Progress bars
//
// A bar is a grey capsule track with a gradient fill of Width*Value/100.
// From 5% up the fill is a capsule of that width. Below 5% the fill is the
// part of the left cap circle left of the fill width, which shrinks to a
// point at 0% and lines up with the capsule at the threshold.
//
// # Fonts
//
// FontSet holds parsed fonts and is shared. Each render opens its own Faces,
// which fall back to an optional emoji font for runes the body font lacks.
package render
