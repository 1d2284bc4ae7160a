package render

import (
	"fmt"
	"math"

	"github.com/KunBuFenZi/PicNezha/internal/errors"
	"github.com/KunBuFenZi/PicNezha/internal/record"
)

// Fixed layout geometry
const (
	// SideAllowance reserves room right of the labels for bars and values.
	SideAllowance = 250.0
	// HeaderHeight is reserved above the first row for the title band.
	HeaderHeight = 90.0

	contentInset = 20.0 // card text inset from the cell's left edge
	labelGap     = 10.0 // between the widest metric label and its bar/value
	baselineLift = 4.0  // baseline offset from the bottom of a text line
	barLift      = 12.0 // bar top above its label baseline

	// maxCanvasSide bounds the raster so a huge server list fails cleanly.
	maxCanvasSide = 16384
)

// Constants are the tunable layout options. A render reads them and never
// writes them back.
type Constants struct {
	Columns       int
	MinCardWidth  float64
	MinCardHeight float64
	Padding       float64
	LineHeight    float64
}

// DefaultConstants returns the stock layout.
func DefaultConstants() Constants {
	return Constants{
		Columns:       2,
		MinCardWidth:  350,
		MinCardHeight: 100,
		Padding:       10,
		LineHeight:    20,
	}
}

func (c Constants) validate() error {
	switch {
	case c.Columns < 1:
		return errors.New(errors.ErrLayout,
			fmt.Sprintf("Columns per row must be at least 1, got %d", c.Columns), "")
	case c.MinCardWidth < 0, c.MinCardHeight < 0:
		return errors.New(errors.ErrLayout,
			fmt.Sprintf("Minimum card size can't be negative (%gx%g)", c.MinCardWidth, c.MinCardHeight), "")
	case c.Padding < 0:
		return errors.New(errors.ErrLayout,
			fmt.Sprintf("Padding can't be negative, got %g", c.Padding), "")
	case c.LineHeight <= 0:
		return errors.New(errors.ErrLayout,
			fmt.Sprintf("Line height must be positive, got %g", c.LineHeight), "")
	}
	return nil
}

// CardDimensions is the space one record's card needs.
type CardDimensions struct {
	Width  float64
	Height float64
	// LabelWidth is the widest of the CPU/RAM/download/upload labels.
	LabelWidth float64
}

// Card line order. The first four lines are plain text, the rest are
// labels followed by a bar or a value.
const (
	lineName = iota
	linePlatform
	lineCountry
	lineUptime
	lineCPU
	lineRAM
	lineDownload
	lineUpload
	cardLineCount
)

func statusText(online bool) string {
	if online {
		return "❇️ Online"
	}
	return "❌ Offline"
}

// cardLines builds the display text for a record, in line order.
func cardLines(rec record.Server) []string {
	return []string{
		lineName:     rec.Name + " " + statusText(rec.Online),
		linePlatform: "🖥️ " + rec.Platform,
		lineCountry:  "📍 " + rec.CountryCode,
		lineUptime:   "⏱️ Uptime: " + HumanizeUptime(rec.Uptime),
		lineCPU:      "💻 CPU:",
		lineRAM:      "🧠 RAM:",
		lineDownload: "Download:",
		lineUpload:   "Upload:",
	}
}

func lineFont(line int) FontSpec {
	if line == lineName {
		return nameFont
	}
	return bodyFont
}

// EstimateCard measures every line of rec's card and returns the size it
// needs: the widest line plus SideAllowance, and one LineHeight per line,
// each floored at the configured minimums.
func EstimateCard(rec record.Server, m Measurer, c Constants) (CardDimensions, error) {
	var widest, labels float64
	for i, line := range cardLines(rec) {
		w, err := m.Measure(lineFont(i), line)
		if err != nil {
			return CardDimensions{}, errors.WrapWithCode(err, errors.ErrMeasure,
				fmt.Sprintf("Couldn't measure %q for server %q", line, rec.Name),
				"Check the configured fonts")
		}
		widest = math.Max(widest, w)
		if i >= lineCPU {
			labels = math.Max(labels, w)
		}
	}

	return CardDimensions{
		Width:      math.Max(widest+SideAllowance, c.MinCardWidth),
		Height:     math.Max(float64(cardLineCount)*c.LineHeight, c.MinCardHeight),
		LabelWidth: labels,
	}, nil
}

// CanvasPlan is the grid every coordinate of a render derives from.
type CanvasPlan struct {
	CellWidth    float64
	CellHeight   float64
	Columns      int
	Rows         int
	CanvasWidth  float64
	CanvasHeight float64

	Padding      float64
	HeaderHeight float64
	LineHeight   float64
	// ValueOffset is where bars and values start, from the text inset.
	ValueOffset float64
}

// PlanGrid sizes a uniform grid that fits the largest card in every cell.
// Each cell is the largest card (at least the minimum card size) plus
// Padding on every side. An empty list still yields a header-only canvas of
// the minimum width.
func PlanGrid(dims []CardDimensions, c Constants) (CanvasPlan, error) {
	if err := c.validate(); err != nil {
		return CanvasPlan{}, err
	}

	cardW, cardH := c.MinCardWidth, c.MinCardHeight
	var labels float64
	for i, d := range dims {
		if !nonNegative(d.Width) || !nonNegative(d.Height) || !nonNegative(d.LabelWidth) {
			return CanvasPlan{}, errors.New(errors.ErrLayout,
				fmt.Sprintf("Card %d has an invalid size (%gx%g)", i, d.Width, d.Height), "")
		}
		cardW = math.Max(cardW, d.Width)
		cardH = math.Max(cardH, d.Height)
		labels = math.Max(labels, d.LabelWidth)
	}

	cols := c.Columns
	rows := (len(dims) + cols - 1) / cols

	p := CanvasPlan{
		CellWidth:    cardW + 2*c.Padding,
		CellHeight:   cardH + 2*c.Padding,
		Columns:      cols,
		Rows:         rows,
		Padding:      c.Padding,
		HeaderHeight: HeaderHeight,
		LineHeight:   c.LineHeight,
		ValueOffset:  labels + labelGap,
	}
	p.CanvasWidth = p.CellWidth*float64(cols) + c.Padding*float64(cols+1)
	p.CanvasHeight = p.CellHeight*float64(rows) + HeaderHeight + c.Padding*float64(rows+1)

	if w, h := p.PixelSize(); w > maxCanvasSide || h > maxCanvasSide {
		return CanvasPlan{}, errors.New(errors.ErrLayout,
			fmt.Sprintf("Canvas would be %dx%d pixels, over the %d limit", w, h, maxCanvasSide),
			"Use more columns per row or render fewer servers")
	}
	return p, nil
}

func nonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 1)
}

// PixelSize rounds the canvas up to whole pixels.
func (p CanvasPlan) PixelSize() (int, int) {
	return int(math.Ceil(p.CanvasWidth)), int(math.Ceil(p.CanvasHeight))
}

// Cell returns the grid position of the i-th record, filling each row
// left to right before moving down.
func (p CanvasPlan) Cell(i int) (row, col int) {
	return i / p.Columns, i % p.Columns
}

// CellOrigin is the top-left corner of the i-th record's cell.
func (p CanvasPlan) CellOrigin(i int) Point {
	row, col := p.Cell(i)
	return Point{
		X: p.Padding + float64(col)*(p.CellWidth+p.Padding),
		Y: p.HeaderHeight + float64(row)*(p.CellHeight+p.Padding),
	}
}

// TextX is the left edge of card text within a cell.
func (p CanvasPlan) TextX(origin Point) float64 {
	return origin.X + contentInset
}

// ValueX is where bars and byte values start within a cell.
func (p CanvasPlan) ValueX(origin Point) float64 {
	return origin.X + contentInset + p.ValueOffset
}

// Baseline is the text baseline of the given card line within a cell.
func (p CanvasPlan) Baseline(origin Point, line int) float64 {
	return origin.Y + p.Padding + float64(line+1)*p.LineHeight - baselineLift
}

// Bar places the progress bar belonging to a label line.
func (p CanvasPlan) Bar(origin Point, line int, value float64) ProgressBar {
	return ProgressBar{
		X:     p.ValueX(origin),
		Y:     p.Baseline(origin, line) - barLift,
		Width: BarWidth,
		Value: value,
	}
}
