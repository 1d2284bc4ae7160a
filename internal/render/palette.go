package render

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Scene palette
var (
	// Outer card, diagonal gradient
	cardStops = []color.Color{hex("#f5f9fa"), hex("#ecf9f6"), hex("#f5f9fa")}

	// Header band, left to right
	headerStart = hex("#88FDCD")
	headerEnd   = hex("#95C4F5")

	// Progress bars
	barStart   = hex("#90c4fc")
	barEnd     = hex("#ddc4fc")
	trackColor = hex("#e5e7eb")

	textColor   = hex("#000000")
	footerColor = color.NRGBA{A: 138} // black at 54%
	shadowColor = color.NRGBA{A: 51}  // black at 20%

	// Fallback image
	errorBackground = hex("#ffebee")
	errorTitleColor = hex("#b71c1c")
)

// hex parses a palette entry. Entries are literals, so a bad one is a bug.
func hex(s string) color.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic("render: bad palette colour " + s)
	}
	return c
}

// withAlpha scales c to the given opacity in [0, 1].
func withAlpha(c color.NRGBA, opacity float64) color.NRGBA {
	c.A = uint8(float64(c.A) * opacity)
	return c
}
