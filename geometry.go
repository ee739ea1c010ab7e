package jigsaw

import (
	"github.com/jbeda/geom"
	"github.com/pkg/errors"
)

// TriangleData describes one puzzle piece in UV space.
type TriangleData struct {
	// Indices are the mesh vertices the piece was built from.
	Indices [3]int
	// UV holds the three corners, normalized to [0,1]x[0,1].
	UV       [3]Point
	Centroid Point
	// Min and Size describe the axis-aligned bounding box of the corners.
	Min  Point
	Size Point
	// Border is set when every corner belongs to the border ring.
	Border bool
}

// Rect returns the bounding box of the piece.
func (t TriangleData) Rect() geom.Rect {
	return geom.Rect{Min: t.Min, Max: t.Min.Plus(t.Size)}
}

// Area returns the area of the piece in UV units.
func (t TriangleData) Area() float64 {
	a := orient(t.UV[0], t.UV[1], t.UV[2]) / 2
	if a < 0 {
		return -a
	}
	return a
}

// BuildTriangles converts every triangle of the mesh into UV space by dividing
// the vertex coordinates by workingSize. The triangle order is preserved.
func BuildTriangles(mesh *Mesh, workingSize float64) ([]TriangleData, error) {
	if workingSize <= 0 {
		return nil, errors.Errorf("invalid working size %g", workingSize)
	}
	if len(mesh.Triangles)%3 != 0 {
		return nil, errors.Wrapf(ErrInvalidMesh, "index count %d is not a multiple of 3", len(mesh.Triangles))
	}

	pieces := make([]TriangleData, 0, mesh.Len())
	for i := 0; i < mesh.Len(); i++ {
		idx := mesh.Triangle(i)
		var td TriangleData
		td.Indices = idx
		td.Border = true

		for k, vi := range idx {
			if vi < 0 || vi >= len(mesh.Vertices) {
				return nil, errors.Wrapf(ErrInvalidMesh, "triangle %d: index %d out of range", i, vi)
			}
			v := mesh.Vertices[vi]
			td.UV[k] = Point{X: v.X / workingSize, Y: v.Y / workingSize}
			td.Border = td.Border && mesh.IsBorder(vi)
		}

		a, b, c := td.UV[0], td.UV[1], td.UV[2]
		td.Centroid = a.Plus(b).Plus(c).Times(1.0 / 3)
		td.Min = Point{X: Min(a.X, b.X, c.X), Y: Min(a.Y, b.Y, c.Y)}
		hi := Point{X: Max(a.X, b.X, c.X), Y: Max(a.Y, b.Y, c.Y)}
		td.Size = hi.Minus(td.Min)

		pieces = append(pieces, td)
	}
	return pieces, nil
}
