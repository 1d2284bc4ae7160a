package render

import (
	"strings"

	"github.com/fogleman/gg"
)

// Fallback image geometry
const (
	FallbackWidth  = 800
	FallbackHeight = 200

	fallbackTitle      = "Failed to render status image"
	fallbackMarginX    = 50.0
	fallbackTitleY     = 60.0
	fallbackMessageY   = 100.0
	fallbackLineHeight = 20.0
	fallbackWrapWidth  = 700.0
)

// WrapText greedily packs space-separated words into lines no wider than
// maxWidth in spec. A word that doesn't fit on a fresh line gets a line of
// its own. Empty text yields a single empty line.
func WrapText(text string, maxWidth float64, spec FontSpec, m Measurer) ([]string, error) {
	var lines []string
	line := ""
	for _, word := range strings.Split(text, " ") {
		candidate := line + word + " "
		w, err := m.Measure(spec, candidate)
		if err != nil {
			return nil, err
		}
		if w > maxWidth && line != "" {
			lines = append(lines, strings.TrimSpace(line))
			line = word + " "
		} else {
			line = candidate
		}
	}
	return append(lines, strings.TrimSpace(line)), nil
}

// RenderFallback draws the fixed-size error image with message wrapped
// below a title. It always starts from a fresh canvas. A nil font set uses
// the built-in fonts.
func RenderFallback(message string, fonts *FontSet) ([]byte, error) {
	if fonts == nil {
		var err error
		if fonts, err = DefaultFontSet(); err != nil {
			return nil, err
		}
	}
	faces := fonts.Faces()
	defer faces.Close()

	dc := gg.NewContext(FallbackWidth, FallbackHeight)
	dc.SetColor(errorBackground)
	dc.DrawRectangle(0, 0, FallbackWidth, FallbackHeight)
	dc.Fill()

	title, err := faces.Face(errorTitleFont)
	if err != nil {
		return nil, err
	}
	dc.SetFontFace(title)
	dc.SetColor(errorTitleColor)
	dc.DrawString(fallbackTitle, fallbackMarginX, fallbackTitleY)

	body, err := faces.Face(errorBodyFont)
	if err != nil {
		return nil, err
	}
	lines, err := WrapText(message, fallbackWrapWidth, errorBodyFont, faces)
	if err != nil {
		return nil, err
	}
	dc.SetFontFace(body)
	dc.SetColor(textColor)
	for i, line := range lines {
		dc.DrawString(line, fallbackMarginX, fallbackMessageY+float64(i)*fallbackLineHeight)
	}

	return encodePNG(dc)
}

// blankFallback is the last resort when even the fallback text can't be
// drawn: the fallback background with no text.
func blankFallback() []byte {
	dc := gg.NewContext(FallbackWidth, FallbackHeight)
	dc.SetColor(errorBackground)
	dc.Clear()
	png, err := encodePNG(dc)
	if err != nil {
		return nil
	}
	return png
}
