package render

import (
	"bytes"
	"fmt"
	"image"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/KunBuFenZi/PicNezha/internal/errors"
)

// FontStyle selects the weight of a face.
type FontStyle int

const (
	Regular FontStyle = iota
	Bold
)

// FontSpec names a face by weight and pixel size.
type FontSpec struct {
	Style FontStyle
	Size  float64
}

func (s FontSpec) String() string {
	weight := "regular"
	if s.Style == Bold {
		weight = "bold"
	}
	return fmt.Sprintf("%s %gpx", weight, s.Size)
}

// Faces used by the scene and the fallback image.
var (
	nameFont       = FontSpec{Style: Bold, Size: 16}
	bodyFont       = FontSpec{Style: Regular, Size: 14}
	titleFont      = FontSpec{Style: Regular, Size: 20}
	footerFont     = FontSpec{Style: Regular, Size: 10}
	errorTitleFont = FontSpec{Style: Bold, Size: 20}
	errorBodyFont  = FontSpec{Style: Regular, Size: 16}
)

// Measurer reports the rendered width of text in a given face.
type Measurer interface {
	Measure(spec FontSpec, text string) (float64, error)
}

// FontSet holds parsed fonts shared by every render. Parsed fonts are
// read-only; faces are opened per render with Faces because they cache
// glyph state and are not safe for concurrent use.
type FontSet struct {
	regular *sfnt.Font
	bold    *sfnt.Font
	emoji   *sfnt.Font
}

// DefaultFontSet uses the Go fonts bundled with x/image.
func DefaultFontSet() (*FontSet, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrFont, "Couldn't parse the built-in regular font", "")
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrFont, "Couldn't parse the built-in bold font", "")
	}
	return &FontSet{regular: regular, bold: bold}, nil
}

// LoadFontSet loads the body font and an optional emoji font from disk.
// An empty body path keeps the built-in Go fonts. A custom body font is used
// for both weights. TrueType collections (.ttc) use their first font.
func LoadFontSet(bodyPath, emojiPath string) (*FontSet, error) {
	fs, err := DefaultFontSet()
	if err != nil {
		return nil, err
	}

	if bodyPath != "" {
		f, err := loadFontFile(bodyPath)
		if err != nil {
			return nil, err
		}
		fs.regular, fs.bold = f, f
	}

	if emojiPath != "" {
		f, err := loadFontFile(emojiPath)
		if err != nil {
			return nil, err
		}
		fs.emoji = f
	}

	return fs, nil
}

func loadFontFile(path string) (*sfnt.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrFont,
			"Couldn't read font file "+path,
			"Check the font path in your config or FONT_PATH/EMOJI_FONT_PATH")
	}
	f, err := parseFont(data)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrFont,
			"Couldn't parse font file "+path,
			"Use a TrueType/OpenType font (.ttf, .otf or .ttc)")
	}
	return f, nil
}

func parseFont(data []byte) (*sfnt.Font, error) {
	if bytes.HasPrefix(data, []byte("ttcf")) {
		coll, err := opentype.ParseCollection(data)
		if err != nil {
			return nil, err
		}
		return coll.Font(0)
	}
	return opentype.Parse(data)
}

// Faces opens a per-render face cache. Close it when the render is done.
func (fs *FontSet) Faces() *Faces {
	return &Faces{set: fs, cache: make(map[FontSpec]font.Face)}
}

// Faces resolves FontSpecs to font faces with emoji fallback and measures
// text with them. It implements Measurer.
type Faces struct {
	set   *FontSet
	cache map[FontSpec]font.Face
}

// Face returns the face for spec, opening it on first use.
func (f *Faces) Face(spec FontSpec) (font.Face, error) {
	if face, ok := f.cache[spec]; ok {
		return face, nil
	}

	primary := f.set.regular
	if spec.Style == Bold {
		primary = f.set.bold
	}
	fonts := []*sfnt.Font{primary}
	if f.set.emoji != nil {
		fonts = append(fonts, f.set.emoji)
	}

	face := &fallbackFace{fonts: fonts}
	for _, sf := range fonts {
		ff, err := opentype.NewFace(sf, &opentype.FaceOptions{
			Size:    spec.Size,
			DPI:     72,
			Hinting: font.HintingNone,
		})
		if err != nil {
			face.Close()
			return nil, errors.WrapWithCode(err, errors.ErrFont, "Couldn't open a "+spec.String()+" face", "")
		}
		face.faces = append(face.faces, ff)
	}

	f.cache[spec] = face
	return face, nil
}

// Measure returns the advance width of text in spec.
func (f *Faces) Measure(spec FontSpec, text string) (float64, error) {
	face, err := f.Face(spec)
	if err != nil {
		return 0, err
	}
	return float64(font.MeasureString(face, text)) / 64, nil
}

// Close releases every opened face.
func (f *Faces) Close() error {
	var first error
	for spec, face := range f.cache {
		if err := face.Close(); err != nil && first == nil {
			first = err
		}
		delete(f.cache, spec)
	}
	return first
}

// fallbackFace draws each rune with the first font that has a glyph for it,
// so CJK or emoji runes can come from a second font. Variation selectors and
// zero-width joiners are skipped.
type fallbackFace struct {
	fonts []*sfnt.Font
	faces []font.Face
	buf   sfnt.Buffer
}

func zeroWidth(r rune) bool {
	return r == '\u200d' || r == '\ufe0e' || r == '\ufe0f'
}

func (f *fallbackFace) pick(r rune) font.Face {
	for i, sf := range f.fonts {
		idx, err := sf.GlyphIndex(&f.buf, r)
		if err == nil && idx != 0 {
			return f.faces[i]
		}
	}
	return f.faces[0]
}

func (f *fallbackFace) Glyph(dot fixed.Point26_6, r rune) (image.Rectangle, image.Image, image.Point, fixed.Int26_6, bool) {
	if zeroWidth(r) {
		return image.Rectangle{}, nil, image.Point{}, 0, false
	}
	return f.pick(r).Glyph(dot, r)
}

func (f *fallbackFace) GlyphBounds(r rune) (fixed.Rectangle26_6, fixed.Int26_6, bool) {
	if zeroWidth(r) {
		return fixed.Rectangle26_6{}, 0, false
	}
	return f.pick(r).GlyphBounds(r)
}

func (f *fallbackFace) GlyphAdvance(r rune) (fixed.Int26_6, bool) {
	if zeroWidth(r) {
		return 0, false
	}
	return f.pick(r).GlyphAdvance(r)
}

func (f *fallbackFace) Kern(r0, r1 rune) fixed.Int26_6 {
	a, b := f.pick(r0), f.pick(r1)
	if a != b {
		return 0
	}
	return a.Kern(r0, r1)
}

func (f *fallbackFace) Metrics() font.Metrics {
	return f.faces[0].Metrics()
}

func (f *fallbackFace) Close() error {
	var first error
	for _, face := range f.faces {
		if err := face.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
