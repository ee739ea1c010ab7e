package jigsaw

import (
	"math"
	"sort"

	"github.com/pkg/errors"
)

var (
	// ErrInsufficientPoints is returned when fewer than three points are triangulated.
	ErrInsufficientPoints = errors.New("at least 3 points are required for triangulation")
	// ErrCollinearPoints is returned when every point lies on the same line.
	ErrCollinearPoints = errors.New("points are collinear")
	// ErrInvalidMesh is returned by Mesh.Validate for an inconsistent triangulation.
	ErrInvalidMesh = errors.New("invalid mesh")
)

// Triangulator names of the supported backends.
const (
	BowyerWatsonBackend = "bowyer-watson"
	SweepBackend        = "sweep"
	DelaunatorBackend   = "delaunator"
)

// Triangulator computes a Delaunay triangulation of a point set.
type Triangulator interface {
	Triangulate(points []Point) (*Mesh, error)
}

// NewTriangulator returns the backend registered under name. borderStart is the
// index of the first border ring point in the sets passed to Triangulate, or -1.
func NewTriangulator(name string, borderStart int) (Triangulator, error) {
	switch name {
	case BowyerWatsonBackend, "":
		return &Delaunay{}, nil
	case SweepBackend:
		return &Sweep{BorderStart: borderStart}, nil
	case DelaunatorBackend:
		return Delaunator{}, nil
	}
	return nil, errors.Errorf("unknown triangulator %q", name)
}

// Mesh is a triangulated point set. Triangles holds flat index triples into
// Vertices.
type Mesh struct {
	Vertices  []Point
	Triangles []int
	// BorderStart is the index of the first border ring vertex, -1 if unknown.
	BorderStart int
}

// Len returns the number of triangles.
func (m *Mesh) Len() int {
	return len(m.Triangles) / 3
}

// Triangle returns the vertex indices of the i-th triangle.
func (m *Mesh) Triangle(i int) [3]int {
	return [3]int{m.Triangles[3*i], m.Triangles[3*i+1], m.Triangles[3*i+2]}
}

// IsBorder reports whether the vertex index belongs to the border ring.
func (m *Mesh) IsBorder(idx int) bool {
	return m.BorderStart >= 0 && idx >= m.BorderStart
}

// Area returns the summed unsigned area of all triangles.
func (m *Mesh) Area() float64 {
	var area float64
	for i := 0; i < m.Len(); i++ {
		t := m.Triangle(i)
		area += math.Abs(orient(m.Vertices[t[0]], m.Vertices[t[1]], m.Vertices[t[2]])) / 2
	}
	return area
}

// Validate checks that the triangles tile the convex hull of the vertices:
// indices are in range and distinct, no triangle is degenerate, no edge is
// shared by more than two triangles and the triangle areas add up to the hull
// area.
func (m *Mesh) Validate() error {
	if len(m.Triangles)%3 != 0 {
		return errors.Wrapf(ErrInvalidMesh, "index count %d is not a multiple of 3", len(m.Triangles))
	}
	type edgeKey struct{ a, b int }
	edges := make(map[edgeKey]int, len(m.Triangles))
	tol := areaTolerance(m.Vertices)

	for i := 0; i < m.Len(); i++ {
		t := m.Triangle(i)
		for _, idx := range t {
			if idx < 0 || idx >= len(m.Vertices) {
				return errors.Wrapf(ErrInvalidMesh, "triangle %d: index %d out of range", i, idx)
			}
		}
		if t[0] == t[1] || t[1] == t[2] || t[0] == t[2] {
			return errors.Wrapf(ErrInvalidMesh, "triangle %d: repeated vertex %v", i, t)
		}
		if math.Abs(orient(m.Vertices[t[0]], m.Vertices[t[1]], m.Vertices[t[2]])) <= tol {
			return errors.Wrapf(ErrInvalidMesh, "triangle %d: zero area", i)
		}
		for k := 0; k < 3; k++ {
			a, b := t[k], t[(k+1)%3]
			if a > b {
				a, b = b, a
			}
			edges[edgeKey{a, b}]++
			if edges[edgeKey{a, b}] > 2 {
				return errors.Wrapf(ErrInvalidMesh, "edge %d-%d shared by more than two triangles", a, b)
			}
		}
	}

	return m.checkCoverage()
}

// checkCoverage reports whether the triangle areas add up to the area of the
// convex hull of the vertices.
func (m *Mesh) checkCoverage() error {
	hull := PolygonArea(ConvexHull(m.Vertices))
	area := m.Area()
	if m.Len() == 0 || math.Abs(hull-area) > 1e-9*hull {
		return errors.Wrapf(ErrInvalidMesh, "triangle area %g differs from hull area %g", area, hull)
	}
	return nil
}

// areaEpsilon is the twice-area, relative to the squared extent of the point
// set, under which a triangle is considered flat.
const areaEpsilon = 1e-12

// areaTolerance returns the twice-area under which a triangle spanned by
// points is flat.
func areaTolerance(points []Point) float64 {
	if len(points) == 0 {
		return 0
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points {
		minX, maxX = Min(minX, p.X), Max(maxX, p.X)
		minY, maxY = Min(minY, p.Y), Max(maxY, p.Y)
	}
	extent := Max(maxX-minX, maxY-minY)
	return areaEpsilon * extent * extent
}

// orient returns twice the signed area of the triangle abc; it is positive
// when a, b, c turn counter-clockwise in a y-up frame.
func orient(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// ConvexHull returns the convex hull of the points in counter-clockwise order,
// without collinear points.
func ConvexHull(points []Point) []Point {
	pts := make([]Point, len(points))
	copy(pts, points)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X == pts[j].X {
			return pts[i].Y < pts[j].Y
		}
		return pts[i].X < pts[j].X
	})
	if len(pts) < 3 {
		return pts
	}

	hull := make([]Point, 0, 2*len(pts))
	for _, p := range pts {
		for len(hull) >= 2 && orient(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(pts) - 2; i >= 0; i-- {
		p := pts[i]
		for len(hull) >= lower && orient(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull[:len(hull)-1]
}

// PolygonArea returns the unsigned area of a simple polygon.
func PolygonArea(points []Point) float64 {
	var sum float64
	for i, p := range points {
		q := points[(i+1)%len(points)]
		sum += p.X*q.Y - q.X*p.Y
	}
	return math.Abs(sum) / 2
}

// checkPoints rejects point sets that cannot be triangulated.
func checkPoints(points []Point) error {
	if len(points) < 3 {
		return errors.Wrapf(ErrInsufficientPoints, "got %d", len(points))
	}
	a, tol := points[0], areaTolerance(points)
	for i := 1; i < len(points); i++ {
		if isEq(points[i], a) {
			continue
		}
		b := points[i]
		for _, c := range points[i+1:] {
			if math.Abs(orient(a, b, c)) > tol {
				return nil
			}
		}
		break
	}
	return ErrCollinearPoints
}
