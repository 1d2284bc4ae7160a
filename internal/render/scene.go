package render

import (
	"bytes"
	"image/color"
	"math"

	"github.com/fogleman/gg"

	"github.com/KunBuFenZi/PicNezha/internal/errors"
	"github.com/KunBuFenZi/PicNezha/internal/record"
)

// Scene geometry
const (
	cardInset     = 10.0 // outer card from the canvas edge
	cardRadius    = 16.0
	bandHeight    = 50.0 // header band inside the outer card
	titleInset    = 20.0
	gradientAngle = math.Pi / 6

	shadowBlur    = 10
	shadowOffsetX = 0.0
	shadowOffsetY = 0.0

	footerInset = 20.0
	footerText  = "Powered By PicNezha (https://github.com/SkyAerope/PicNezha)"
)

// Options configure one render.
type Options struct {
	Title     string
	Constants Constants
	Fonts     *FontSet
	// Measurer overrides text measurement for layout. Nil measures with Fonts.
	Measurer Measurer
}

type scene struct {
	dc    *gg.Context
	faces *Faces
	plan  CanvasPlan
}

// Compose renders the status image for recs, in order, and returns it PNG
// encoded. It does not recover from failures; see RenderOrFallback.
func Compose(recs []record.Server, opts Options) ([]byte, error) {
	if opts.Fonts == nil {
		return nil, errors.New(errors.ErrFont, "No fonts loaded", "Load a FontSet before rendering")
	}
	faces := opts.Fonts.Faces()
	defer faces.Close()

	var m Measurer = faces
	if opts.Measurer != nil {
		m = opts.Measurer
	}

	dims := make([]CardDimensions, 0, len(recs))
	for _, rec := range recs {
		d, err := EstimateCard(rec, m, opts.Constants)
		if err != nil {
			return nil, err
		}
		dims = append(dims, d)
	}

	plan, err := PlanGrid(dims, opts.Constants)
	if err != nil {
		return nil, err
	}

	w, h := plan.PixelSize()
	s := &scene{dc: gg.NewContext(w, h), faces: faces, plan: plan}

	s.drawBackground()
	if err := s.drawHeader(opts.Title); err != nil {
		return nil, err
	}
	for i, rec := range recs {
		if err := s.drawCard(i, rec); err != nil {
			return nil, err
		}
	}
	if err := s.drawFooter(); err != nil {
		return nil, err
	}

	return encodePNG(s.dc)
}

func encodePNG(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(err, "Couldn't encode the PNG")
	}
	return buf.Bytes(), nil
}

func (s *scene) useFont(spec FontSpec) error {
	face, err := s.faces.Face(spec)
	if err != nil {
		return err
	}
	s.dc.SetFontFace(face)
	return nil
}

func (s *scene) fill(p *Path, style gg.Pattern) {
	s.dc.SetFillStyle(style)
	p.appendTo(s.dc)
	s.dc.Fill()
}

func (s *scene) fillColor(p *Path, c color.Color) {
	s.dc.SetColor(c)
	p.appendTo(s.dc)
	s.dc.Fill()
}

func (s *scene) cardRect() (x, y, w, h float64) {
	return cardInset, cardInset, s.plan.CanvasWidth - 2*cardInset, s.plan.CanvasHeight - 2*cardInset
}

// drawBackground paints the shadow and the gradient card behind everything.
func (s *scene) drawBackground() {
	x, y, w, h := s.cardRect()
	s.drawShadow(x, y, w, h)

	// Tilt the gradient axis 30 degrees from horizontal, centred on the card.
	d := (h - w*math.Tan(gradientAngle)) / 2
	grad := gg.NewLinearGradient(x, y+d, x+w, y+h-d)
	for i, c := range cardStops {
		grad.AddColorStop(float64(i)/float64(len(cardStops)-1), c)
	}
	s.fill(RoundedRect(x, y, w, h, cardRadius), grad)
}

// drawShadow approximates a blurred drop shadow with stacked, growing
// translucent outlines. It only touches pixels outside the card and leaves
// no state behind for later draws.
func (s *scene) drawShadow(x, y, w, h float64) {
	layer := withAlpha(shadowColor, 1/float64(shadowBlur))
	for i := shadowBlur; i >= 1; i-- {
		spread := float64(i)
		outline := RoundedRect(
			x-spread+shadowOffsetX, y-spread+shadowOffsetY,
			w+2*spread, h+2*spread,
			cardRadius+spread)
		s.fillColor(outline, layer)
	}
}

func (s *scene) drawHeader(title string) error {
	x, y, w, _ := s.cardRect()

	grad := gg.NewLinearGradient(x, y, x+w, y)
	grad.AddColorStop(0, headerStart)
	grad.AddColorStop(1, headerEnd)
	s.fill(TopRoundedRect(x, y, w, bandHeight, cardRadius), grad)

	if err := s.useFont(titleFont); err != nil {
		return err
	}
	s.dc.SetColor(textColor)
	s.dc.DrawStringAnchored(title, x+titleInset, y+bandHeight/2, 0, 0.5)
	return nil
}

// drawCard paints one record into its cell.
func (s *scene) drawCard(i int, rec record.Server) error {
	origin := s.plan.CellOrigin(i)
	x := s.plan.TextX(origin)

	for line, text := range cardLines(rec) {
		if err := s.useFont(lineFont(line)); err != nil {
			return err
		}
		s.dc.SetColor(textColor)
		s.dc.DrawString(text, x, s.plan.Baseline(origin, line))
	}

	if err := s.drawBar(s.plan.Bar(origin, lineCPU, rec.CPUPercent)); err != nil {
		return err
	}
	if err := s.drawBar(s.plan.Bar(origin, lineRAM, rec.RAMPercent())); err != nil {
		return err
	}

	s.dc.SetColor(textColor)
	s.dc.DrawString(FormatBytes(rec.NetIn), s.plan.ValueX(origin), s.plan.Baseline(origin, lineDownload))
	s.dc.DrawString(FormatBytes(rec.NetOut), s.plan.ValueX(origin), s.plan.Baseline(origin, lineUpload))
	return nil
}

func (s *scene) drawBar(b ProgressBar) error {
	fg, err := b.Fill()
	if err != nil {
		return err
	}

	s.fillColor(b.Track(), trackColor)

	grad := gg.NewLinearGradient(b.X, b.Y, b.X+b.Width, b.Y)
	grad.AddColorStop(0, barStart)
	grad.AddColorStop(1, barEnd)
	s.fill(fg, grad)

	if err := s.useFont(bodyFont); err != nil {
		return err
	}
	at := b.LabelPoint()
	s.dc.SetColor(textColor)
	s.dc.DrawString(b.Label(), at.X, at.Y)
	return nil
}

// drawFooter right-aligns the attribution in the bottom margin.
func (s *scene) drawFooter() error {
	if err := s.useFont(footerFont); err != nil {
		return err
	}
	s.dc.SetColor(footerColor)
	s.dc.DrawStringAnchored(footerText,
		s.plan.CanvasWidth-footerInset, s.plan.CanvasHeight-footerInset, 1, 0)
	return nil
}
