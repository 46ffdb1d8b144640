package geom

import "math"

// Rect is an axis-aligned bounding box. X2 and Y2 are derived, never stored.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// X2 returns the right edge.
func (r Rect) X2() float64 { return r.X + r.W }

// Y2 returns the bottom edge.
func (r Rect) Y2() float64 { return r.Y + r.H }

// CenterX returns the horizontal center of the rectangle.
func (r Rect) CenterX() float64 { return r.X + r.W/2 }

// CenterY returns the vertical center of the rectangle.
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// Diagonal reports whether both dimensions are nonzero beyond eps. A line
// element whose box is diagonal runs corner to corner rather than along an
// axis.
func (r Rect) Diagonal(eps float64) bool {
	return math.Abs(r.W) > eps && math.Abs(r.H) > eps
}

// ContainsPoint reports whether p lies inside r, edges included, with eps slack.
func (r Rect) ContainsPoint(p Point, eps float64) bool {
	return p.X >= r.X-eps && p.X <= r.X2()+eps &&
		p.Y >= r.Y-eps && p.Y <= r.Y2()+eps
}

// Contains reports whether r encloses o on all four sides within eps.
// Shared edges count as enclosed.
func (r Rect) Contains(o Rect, eps float64) bool {
	return r.X <= o.X+eps &&
		r.Y <= o.Y+eps &&
		r.X2() >= o.X2()-eps &&
		r.Y2() >= o.Y2()-eps
}

// Separated reports whether the projections of r and o fail to meet on
// either axis, with a gap wider than eps.
func (r Rect) Separated(o Rect, eps float64) bool {
	return r.X2() < o.X-eps || o.X2() < r.X-eps ||
		r.Y2() < o.Y-eps || o.Y2() < r.Y-eps
}

// Intersect returns the overlap of r and o. Width or height is zero or
// negative when the rectangles only touch or do not meet.
func Intersect(r, o Rect) Rect {
	x1 := math.Max(r.X, o.X)
	y1 := math.Max(r.Y, o.Y)
	x2 := math.Min(r.X2(), o.X2())
	y2 := math.Min(r.Y2(), o.Y2())
	return Rect{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}
}

// Edges returns the four sides of r as segments: top, right, bottom, left.
func (r Rect) Edges() [4]Segment {
	tl := Point{r.X, r.Y}
	tr := Point{r.X2(), r.Y}
	br := Point{r.X2(), r.Y2()}
	bl := Point{r.X, r.Y2()}
	return [4]Segment{{tl, tr}, {tr, br}, {br, bl}, {bl, tl}}
}

// Envelope returns the smallest rectangle enclosing every rect in rs.
// An empty input yields the zero Rect.
func Envelope(rs ...Rect) Rect {
	if len(rs) == 0 {
		return Rect{}
	}
	left, top := rs[0].X, rs[0].Y
	right, bottom := rs[0].X2(), rs[0].Y2()
	for _, r := range rs[1:] {
		left = math.Min(left, r.X)
		top = math.Min(top, r.Y)
		right = math.Max(right, r.X2())
		bottom = math.Max(bottom, r.Y2())
	}
	return Rect{X: left, Y: top, W: right - left, H: bottom - top}
}
