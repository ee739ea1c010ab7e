package jigsaw

import (
	"fmt"
	"math"

	"github.com/ByteArena/poly2tri-go"
	"github.com/pkg/errors"
)

// Sweep is a constrained Delaunay triangulator built on the poly2tri sweep-line
// algorithm. The points from BorderStart onward form the outer contour, in
// order; every point before it is inserted as a Steiner point and must lie
// strictly inside that contour.
type Sweep struct {
	BorderStart int
}

// Triangulate computes the constrained Delaunay triangulation of points.
func (s *Sweep) Triangulate(points []Point) (mesh *Mesh, err error) {
	if err := checkPoints(points); err != nil {
		return nil, err
	}
	if s.BorderStart < 0 || len(points)-s.BorderStart < 3 {
		return nil, errors.Errorf("sweep: border start %d leaves no contour among %d points", s.BorderStart, len(points))
	}

	ring := points[s.BorderStart:]
	for i := 0; i < s.BorderStart; i++ {
		if !insideRing(points[i], ring) {
			return nil, errors.Errorf("sweep: point %d %v is not strictly inside the contour", i, points[i])
		}
	}

	// poly2tri reports unsupported inputs (collinear edge events, points on
	// the contour) by panicking.
	defer func() {
		if r := recover(); r != nil {
			mesh = nil
			err = errors.Errorf("sweep: triangulation failed: %s", fmt.Sprint(r))
		}
	}()

	index := make(map[*poly2tri.Point]int, len(points))
	newPoint := func(i int) *poly2tri.Point {
		p := poly2tri.NewPoint(points[i].X, points[i].Y)
		index[p] = i
		return p
	}

	contour := make([]*poly2tri.Point, 0, len(points)-s.BorderStart)
	for i := s.BorderStart; i < len(points); i++ {
		contour = append(contour, newPoint(i))
	}
	swctx := poly2tri.NewSweepContext(contour, false)
	for i := 0; i < s.BorderStart; i++ {
		swctx.AddPoint(newPoint(i))
	}
	swctx.Triangulate()

	vertices := make([]Point, len(points))
	copy(vertices, points)
	mesh = &Mesh{Vertices: vertices, BorderStart: s.BorderStart}

	for _, tr := range swctx.GetTriangles() {
		var nodes [3]int
		for k := 0; k < 3; k++ {
			idx, ok := index[tr.Points[k]]
			if !ok {
				return nil, errors.New("sweep: triangle references an unknown point")
			}
			nodes[k] = idx
		}
		mesh.Triangles = append(mesh.Triangles, nodes[0], nodes[1], nodes[2])
	}
	if want, got := PolygonArea(ring), mesh.Area(); math.Abs(want-got) > 1e-9*want {
		return nil, errors.Wrapf(ErrInvalidMesh, "sweep: triangle area %g differs from contour area %g", got, want)
	}
	return mesh, nil
}

// insideRing reports whether p lies strictly inside the closed polygon ring,
// away from its edges.
func insideRing(p Point, ring []Point) bool {
	inside := false
	for i, a := range ring {
		b := ring[(i+1)%len(ring)]
		if onSegment(a, b, p) {
			return false
		}
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// onSegment reports whether p lies on the segment ab, within the tolerance.
func onSegment(a, b, p Point) bool {
	ab := b.Minus(a)
	length := ab.Magnitude()
	if length <= epsilon {
		return isEq(a, p)
	}
	if math.Abs(orient(a, b, p))/length > epsilon {
		return false
	}
	d := dot(ab, p.Minus(a))
	return d >= -epsilon*length && d <= length*length+epsilon*length
}
