// Package geometry holds the small amount of 2D math the editor needs:
// vector projection for snapping, distances for pinch tracking and the
// rectangle and polygon containment tests used by hit-testing.
package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Vec is a point or direction in model space.
type Vec = r2.Vec

// Dot returns the dot product of a and b.
func Dot(a, b Vec) float64 {
	return r2.Dot(a, b)
}

// Scale returns a scaled by k.
func Scale(a Vec, k float64) Vec {
	return r2.Scale(k, a)
}

func Add(a, b Vec) Vec {
	return r2.Add(a, b)
}

func Subtract(a, b Vec) Vec {
	return r2.Sub(a, b)
}

// Project returns the projection of a onto b. A zero b yields non-finite
// components.
func Project(a, b Vec) Vec {
	return Scale(b, Dot(a, b)/Dot(b, b))
}

// NearestPointOnLine returns the orthogonal projection of p onto the
// infinite line through a and b.
func NearestPointOnLine(a, b, p Vec) Vec {
	return Add(Project(Subtract(p, a), Subtract(b, a)), a)
}

// Distance returns the euclidean distance between (x1,y1) and (x2,y2).
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// Midpoint returns the point halfway between (x1,y1) and (x2,y2).
func Midpoint(x1, y1, x2, y2 float64) (float64, float64) {
	return (x1 + x2) / 2, (y1 + y2) / 2
}
