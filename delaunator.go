package jigsaw

import (
	"math"

	"github.com/fogleman/delaunay"
	"github.com/pkg/errors"
)

// Delaunator triangulates the point cloud with the sweep-hull algorithm of
// the fogleman/delaunay package.
type Delaunator struct{}

// Triangulate computes the Delaunay triangulation of points.
func (Delaunator) Triangulate(points []Point) (*Mesh, error) {
	if err := checkPoints(points); err != nil {
		return nil, err
	}
	pts := make([]delaunay.Point, len(points))
	for i, p := range points {
		pts[i] = delaunay.Point{X: p.X, Y: p.Y}
	}

	tri, err := delaunay.Triangulate(pts)
	if err != nil {
		return nil, errors.Wrap(err, "delaunator")
	}

	vertices := make([]Point, len(points))
	copy(vertices, points)

	// Collinear hull points may come back closed by flat triangles; they
	// cover no area and are dropped.
	tol := areaTolerance(vertices)
	indices := make([]int, 0, len(tri.Triangles))
	for i := 0; i+2 < len(tri.Triangles); i += 3 {
		a, b, c := tri.Triangles[i], tri.Triangles[i+1], tri.Triangles[i+2]
		if math.Abs(orient(vertices[a], vertices[b], vertices[c])) <= tol {
			continue
		}
		indices = append(indices, a, b, c)
	}

	mesh := &Mesh{Vertices: vertices, Triangles: indices, BorderStart: -1}
	if err := mesh.checkCoverage(); err != nil {
		return nil, errors.Wrap(err, "delaunator")
	}
	return mesh, nil
}
