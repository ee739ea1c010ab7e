package jigsaw

import (
	"math"

	"github.com/jbeda/geom"
)

// Point is a coordinate in the working space.
type Point = geom.Coord

// DefaultWorkingSize is the side length of the square working space.
const DefaultWorkingSize = 512

// epsilon is the distance under which two points are considered coincident.
const epsilon = 1e-6

// WorkingSpace returns the square working area of the given side length.
func WorkingSpace(size float64) geom.Rect {
	return geom.Rect{Min: Point{X: 0, Y: 0}, Max: Point{X: size, Y: size}}
}

// Relax pushes apart every pair of points closer than minDistance and clamps
// the result into bounds shrunk by minDistance on every side.
//
// The repulsion is a single pass computed against the input positions, so the
// result does not depend on the order in which pairs are visited. Coincident
// points carry no separating direction and are left where they are.
func Relax(points []Point, minDistance float64, bounds geom.Rect) []Point {
	relaxed := make([]Point, len(points))
	copy(relaxed, points)

	for i, p := range points {
		var shift Point
		for j, q := range points {
			if i == j {
				continue
			}
			delta := p.Minus(q)
			dist := delta.Magnitude()
			if dist <= epsilon || dist > minDistance {
				continue
			}
			shift = shift.Plus(delta.Unit().Times(minDistance - dist))
		}
		relaxed[i] = p.Plus(shift)
	}

	for i, p := range relaxed {
		relaxed[i] = clampPoint(p, minDistance, bounds)
	}
	return relaxed
}

// clampPoint keeps p at least margin away from the edges of bounds. When the
// bounds are too narrow on an axis the point collapses onto its center line.
func clampPoint(p Point, margin float64, bounds geom.Rect) Point {
	return Point{
		X: clampAxis(p.X, bounds.Min.X+margin, bounds.Max.X-margin),
		Y: clampAxis(p.Y, bounds.Min.Y+margin, bounds.Max.Y-margin),
	}
}

func clampAxis(v, lo, hi float64) float64 {
	if lo > hi {
		return (lo + hi) / 2
	}
	if math.IsNaN(v) {
		return lo
	}
	return Clamp(v, lo, hi)
}

// BorderPoints returns the fixed ring of corners and edge midpoints of bounds.
// The points are ordered so that they form a closed simple polygon.
func BorderPoints(bounds geom.Rect) []Point {
	minX, minY := bounds.Min.X, bounds.Min.Y
	maxX, maxY := bounds.Max.X, bounds.Max.Y
	midX, midY := (minX+maxX)/2, (minY+maxY)/2

	return []Point{
		{X: minX, Y: minY},
		{X: minX, Y: midY},
		{X: minX, Y: maxY},
		{X: midX, Y: maxY},
		{X: maxX, Y: maxY},
		{X: maxX, Y: midY},
		{X: maxX, Y: minY},
		{X: midX, Y: minY},
	}
}

// AddBorder returns a new slice holding points followed by the border ring.
func AddBorder(points []Point, bounds geom.Rect) []Point {
	border := BorderPoints(bounds)
	out := make([]Point, 0, len(points)+len(border))
	out = append(out, points...)
	return append(out, border...)
}

// Dedupe drops every point lying within epsilon of an earlier one and
// reports how many were removed.
func Dedupe(points []Point) ([]Point, int) {
	out := make([]Point, 0, len(points))
	for _, p := range points {
		dup := false
		for _, q := range out {
			if isEq(p, q) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, p)
		}
	}
	return out, len(points) - len(out)
}

// isEq reports whether two points coincide within the tolerance.
func isEq(a, b Point) bool {
	return math.Abs(a.X-b.X) < epsilon && math.Abs(a.Y-b.Y) < epsilon
}
