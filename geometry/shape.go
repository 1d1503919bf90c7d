package geometry

import "math"

// Rect is an axis-aligned rectangle. Both edges are inclusive.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// RectAround returns the square of the given half size centred on (x, y).
func RectAround(x, y, half float64) Rect {
	return Rect{MinX: x - half, MinY: y - half, MaxX: x + half, MaxY: y + half}
}

// RectFrom returns the rectangle with top-left corner (x, y).
func RectFrom(x, y, width, height float64) Rect {
	return Rect{MinX: x, MinY: y, MaxX: x + width, MaxY: y + height}
}

// Contains reports whether (x, y) lies inside r. NaN bounds never match.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.MinX && x <= r.MaxX && y >= r.MinY && y <= r.MaxY
}

func (r Rect) Width() float64  { return r.MaxX - r.MinX }
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Center returns the centre point of r.
func (r Rect) Center() (float64, float64) {
	return Midpoint(r.MinX, r.MinY, r.MaxX, r.MaxY)
}

// Union returns the smallest rectangle covering r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		MinX: math.Min(r.MinX, o.MinX),
		MinY: math.Min(r.MinY, o.MinY),
		MaxX: math.Max(r.MaxX, o.MaxX),
		MaxY: math.Max(r.MaxY, o.MaxY),
	}
}

// Polygon is a closed polygon; the last vertex connects back to the first.
type Polygon []Vec

// Contains reports whether (x, y) lies inside p using the even-odd rule.
func (p Polygon) Contains(x, y float64) bool {
	return PointInPolygon(p, x, y)
}

// Extent returns the bounding rectangle of p.
func (p Polygon) Extent() Rect {
	if len(p) == 0 {
		return Rect{}
	}
	r := Rect{MinX: p[0].X, MinY: p[0].Y, MaxX: p[0].X, MaxY: p[0].Y}
	for _, v := range p[1:] {
		r = r.Union(Rect{MinX: v.X, MinY: v.Y, MaxX: v.X, MaxY: v.Y})
	}
	return r
}

// PointInPolygon casts a horizontal ray from (x, y) and toggles containment
// at every edge it crosses. Points exactly on a vertex-aligned ray are not
// treated specially.
func PointInPolygon(polygon []Vec, x, y float64) bool {
	inside := false
	n := len(polygon)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := polygon[i], polygon[j]
		if (pi.Y > y) != (pj.Y > y) &&
			x < (pj.X-pi.X)*(y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			inside = !inside
		}
	}
	return inside
}

// StrokePolygon returns the parallelogram covering the segment from s to e
// widened by offset on each side. The corner offset is chosen from the
// quadrant of e relative to s so that the vertex order never crosses itself.
func StrokePolygon(s, e Vec, offset float64) Polygon {
	u := Vec{X: offset, Y: -offset}
	if (e.X-s.X)*(e.Y-s.Y) < 0 {
		u = Vec{X: -offset, Y: -offset}
	}
	return Polygon{
		Add(s, u),
		Add(e, u),
		Subtract(e, u),
		Subtract(s, u),
	}
}
