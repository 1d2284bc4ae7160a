package render

import (
	"math"

	"github.com/fogleman/gg"
)

type segmentKind int

const (
	segMove segmentKind = iota
	segLine
	segArc
	segClose
)

type segment struct {
	kind segmentKind
	// end point for move/line, centre for arc
	x, y float64
	// arc only
	r, a1, a2 float64
}

// Point is a 2D coordinate in canvas space (y grows downwards).
type Point struct {
	X, Y float64
}

// Path is a closed vector outline recorded independently of any canvas so
// its geometry can be inspected before it is painted. Angles follow the
// canvas convention: 0 points right, increasing angles turn clockwise on
// screen.
type Path struct {
	segs []segment
}

// MoveTo starts a new subpath at (x, y).
func (p *Path) MoveTo(x, y float64) {
	p.segs = append(p.segs, segment{kind: segMove, x: x, y: y})
}

// LineTo adds a straight edge to (x, y).
func (p *Path) LineTo(x, y float64) {
	p.segs = append(p.segs, segment{kind: segLine, x: x, y: y})
}

// Arc adds a circular arc around (cx, cy) from angle a1 to a2. Like a 2D
// canvas arc, a straight edge joins the current point to the arc start.
func (p *Path) Arc(cx, cy, r, a1, a2 float64) {
	p.segs = append(p.segs, segment{kind: segArc, x: cx, y: cy, r: r, a1: a1, a2: a2})
}

// Close joins the current point back to the subpath start.
func (p *Path) Close() {
	p.segs = append(p.segs, segment{kind: segClose})
}

// Empty reports whether nothing has been recorded.
func (p *Path) Empty() bool {
	return len(p.segs) == 0
}

// arcSteps is the sampling resolution used by Flatten for each arc.
const arcSteps = 24

// Flatten returns the outline as a polyline. Arcs are sampled with their
// exact end points included, so extremes that fall on arc ends (as they do
// for every shape built here) are reproduced exactly.
func (p *Path) Flatten() []Point {
	var pts []Point
	for _, s := range p.segs {
		switch s.kind {
		case segMove, segLine:
			pts = append(pts, Point{s.x, s.y})
		case segArc:
			for i := 0; i <= arcSteps; i++ {
				a := s.a1 + (s.a2-s.a1)*float64(i)/arcSteps
				pts = append(pts, Point{s.x + s.r*math.Cos(a), s.y + s.r*math.Sin(a)})
			}
		}
	}
	return pts
}

// Bounds returns the axis-aligned extent of the flattened outline.
func (p *Path) Bounds() (minX, minY, maxX, maxY float64) {
	pts := p.Flatten()
	if len(pts) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY = pts[0].X, pts[0].Y
	maxX, maxY = minX, minY
	for _, pt := range pts[1:] {
		minX = math.Min(minX, pt.X)
		maxX = math.Max(maxX, pt.X)
		minY = math.Min(minY, pt.Y)
		maxY = math.Max(maxY, pt.Y)
	}
	return minX, minY, maxX, maxY
}

// Finite reports whether every recorded coordinate is a real number.
func (p *Path) Finite() bool {
	for _, s := range p.segs {
		for _, v := range []float64{s.x, s.y, s.r, s.a1, s.a2} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}

// appendTo replays the path onto dc's current path. The caller fills it.
func (p *Path) appendTo(dc *gg.Context) {
	for _, s := range p.segs {
		switch s.kind {
		case segMove:
			dc.MoveTo(s.x, s.y)
		case segLine:
			dc.LineTo(s.x, s.y)
		case segArc:
			dc.DrawArc(s.x, s.y, s.r, s.a1, s.a2)
		case segClose:
			dc.ClosePath()
		}
	}
}

// fitRadius keeps corner arcs from overlapping on small shapes.
func fitRadius(w, h, r float64) float64 {
	r = math.Min(r, math.Min(w, h)/2)
	return math.Max(r, 0)
}

// RoundedRect builds a rectangle with four quarter-circle corners, traversed
// clockwise starting just right of the top-left corner. The radius is
// clamped to half the shorter side.
func RoundedRect(x, y, w, h, radius float64) *Path {
	r := fitRadius(w, h, radius)
	p := &Path{}
	p.MoveTo(x+r, y)
	p.LineTo(x+w-r, y)
	p.Arc(x+w-r, y+r, r, -math.Pi/2, 0)
	p.LineTo(x+w, y+h-r)
	p.Arc(x+w-r, y+h-r, r, 0, math.Pi/2)
	p.LineTo(x+r, y+h)
	p.Arc(x+r, y+h-r, r, math.Pi/2, math.Pi)
	p.LineTo(x, y+r)
	p.Arc(x+r, y+r, r, math.Pi, 3*math.Pi/2)
	p.Close()
	return p
}

// TopRoundedRect rounds only the top two corners; used for the header band.
func TopRoundedRect(x, y, w, h, radius float64) *Path {
	r := fitRadius(w, 2*h, radius)
	p := &Path{}
	p.MoveTo(x+r, y)
	p.LineTo(x+w-r, y)
	p.Arc(x+w-r, y+r, r, -math.Pi/2, 0)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.LineTo(x, y+r)
	p.Arc(x+r, y+r, r, math.Pi, 3*math.Pi/2)
	p.Close()
	return p
}
