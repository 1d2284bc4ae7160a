package render

import (
	"fmt"
	"math"

	"github.com/KunBuFenZi/PicNezha/internal/errors"
)

// Progress bar geometry
const (
	BarHeight = 15.0
	BarWidth  = 120.0
	barRadius = BarHeight / 2

	// sliverThreshold is the percentage below which the fill is drawn as a
	// sliver of the left cap instead of a capsule.
	sliverThreshold = 5.0

	labelGapX = 5.0
	labelGapY = 12.0
)

// Regime identifies how a bar's foreground is constructed.
type Regime int

const (
	// RegimeCapsule fills with a rounded rectangle of the filled width.
	RegimeCapsule Regime = iota
	// RegimeSliver fills with the part of the left cap circle lying left of
	// the filled width.
	RegimeSliver
)

func (r Regime) String() string {
	switch r {
	case RegimeCapsule:
		return "capsule"
	case RegimeSliver:
		return "sliver"
	default:
		return fmt.Sprintf("Regime(%d)", int(r))
	}
}

// ProgressBar places one percentage bar. Value is a percentage and is not
// clamped: values above 100 overflow the track.
type ProgressBar struct {
	X, Y  float64
	Width float64
	Value float64
}

// FillWidth is the filled extent, Width * Value / 100.
func (b ProgressBar) FillWidth() float64 {
	return b.Width * b.Value / 100
}

// Regime picks the construction for the foreground. The sliver keeps acos
// inside its domain only while 0 <= fill <= BarHeight; wider bars that are
// still under the threshold fall back to the capsule, which is valid for
// any width.
func (b ProgressBar) Regime() Regime {
	if b.Value >= sliverThreshold {
		return RegimeCapsule
	}
	if b.FillWidth() > BarHeight {
		return RegimeCapsule
	}
	return RegimeSliver
}

// Track is the full-width background capsule.
func (b ProgressBar) Track() *Path {
	return RoundedRect(b.X, b.Y, b.Width, BarHeight, barRadius)
}

// Fill builds the foreground outline. Non-finite inputs are rejected before
// any trigonometry runs.
func (b ProgressBar) Fill() (*Path, error) {
	for _, v := range []float64{b.X, b.Y, b.Width, b.Value} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errors.New(errors.ErrGeometry,
				fmt.Sprintf("Progress bar has a non-finite input (x=%v y=%v width=%v value=%v)", b.X, b.Y, b.Width, b.Value),
				"")
		}
	}

	if b.Regime() == RegimeCapsule {
		return RoundedRect(b.X, b.Y, math.Max(b.FillWidth(), 0), BarHeight, barRadius), nil
	}
	return b.sliver(), nil
}

// sliver traces the left cap circle from its leftmost point up to where it
// crosses x+fill, drops straight down the chord and closes along the lower
// arc. Its rightmost extent is exactly x+fill and it shrinks to a point as
// the value goes to 0.
func (b ProgressBar) sliver() *Path {
	pw := math.Max(b.FillWidth(), 0)
	cx := b.X + BarHeight/2
	cy := b.Y + BarHeight/2
	cosTheta := (BarHeight - 2*pw) / BarHeight
	theta := math.Acos(cosTheta)

	p := &Path{}
	p.MoveTo(b.X, b.Y+barRadius)
	p.Arc(cx, cy, barRadius, math.Pi, math.Pi+theta)
	p.LineTo(b.X+pw, cy+pw)
	p.Arc(cx, cy, barRadius, math.Pi-theta, math.Pi)
	p.Close()
	return p
}

// Label is the rounded percentage text drawn after the bar.
func (b ProgressBar) Label() string {
	return fmt.Sprintf("%d%%", int(math.Round(b.Value)))
}

// LabelPoint is the baseline origin of Label, right of the nominal width.
func (b ProgressBar) LabelPoint() Point {
	return Point{X: b.X + b.Width + labelGapX, Y: b.Y + labelGapY}
}
