package jigsaw

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func squareMesh(size float64, borderStart int) *Mesh {
	return &Mesh{
		Vertices: []Point{
			{X: 0, Y: 0}, {X: size, Y: 0}, {X: size, Y: size}, {X: 0, Y: size},
		},
		Triangles:   []int{0, 1, 2, 0, 2, 3},
		BorderStart: borderStart,
	}
}

func TestBuildTriangles(t *testing.T) {
	pieces, err := BuildTriangles(squareMesh(512, -1), 512)
	require.NoError(t, err)
	require.Len(t, pieces, 2)

	first := pieces[0]
	assert.Equal(t, [3]int{0, 1, 2}, first.Indices)
	assert.Equal(t, [3]Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}, first.UV)
	assert.InDelta(t, 2.0/3, first.Centroid.X, 1e-12)
	assert.InDelta(t, 1.0/3, first.Centroid.Y, 1e-12)
	assert.Equal(t, Point{X: 0, Y: 0}, first.Min)
	assert.Equal(t, Point{X: 1, Y: 1}, first.Size)
	assert.InDelta(t, 0.5, first.Area(), 1e-12)
	assert.False(t, first.Border)

	second := pieces[1]
	assert.Equal(t, [3]int{0, 2, 3}, second.Indices)
	assert.InDelta(t, 1.0/3, second.Centroid.X, 1e-12)
	assert.InDelta(t, 2.0/3, second.Centroid.Y, 1e-12)
	assert.Equal(t, Point{X: 1, Y: 1}, second.Rect().Max)
}

func TestBuildTrianglesBorderFlag(t *testing.T) {
	pieces, err := BuildTriangles(squareMesh(512, 0), 512)
	require.NoError(t, err)
	for _, p := range pieces {
		assert.True(t, p.Border)
	}

	pieces, err = BuildTriangles(squareMesh(512, -1), 512)
	require.NoError(t, err)
	for _, p := range pieces {
		assert.False(t, p.Border)
	}

	// A seed at index 0 followed by the corners of the square.
	mesh := &Mesh{
		Vertices: []Point{
			{X: 256, Y: 256},
			{X: 0, Y: 0}, {X: 512, Y: 0}, {X: 512, Y: 512}, {X: 0, Y: 512},
		},
		Triangles:   []int{0, 1, 2, 1, 2, 3},
		BorderStart: 1,
	}
	pieces, err = BuildTriangles(mesh, 512)
	require.NoError(t, err)
	assert.False(t, pieces[0].Border)
	assert.True(t, pieces[1].Border)
}

func TestBuildTrianglesErrors(t *testing.T) {
	_, err := BuildTriangles(squareMesh(512, -1), 0)
	assert.Error(t, err)

	mesh := squareMesh(512, -1)
	mesh.Triangles = mesh.Triangles[:4]
	_, err = BuildTriangles(mesh, 512)
	assert.True(t, errors.Is(err, ErrInvalidMesh))

	mesh = squareMesh(512, -1)
	mesh.Triangles[5] = 9
	_, err = BuildTriangles(mesh, 512)
	assert.True(t, errors.Is(err, ErrInvalidMesh))
}

func TestBuildTrianglesUVRange(t *testing.T) {
	points := AddBorder(Relax(loadFixture(t, "cluster"), 30, WorkingSpace(512)), WorkingSpace(512))
	mesh, err := (&Delaunay{}).Triangulate(points)
	require.NoError(t, err)

	pieces, err := BuildTriangles(mesh, 512)
	require.NoError(t, err)
	require.Len(t, pieces, mesh.Len())

	var area float64
	for i, p := range pieces {
		for _, uv := range p.UV {
			assert.True(t, uv.X >= 0 && uv.X <= 1 && uv.Y >= 0 && uv.Y <= 1, "piece %d: %v", i, uv)
		}
		assert.True(t, p.Size.X >= 0 && p.Size.Y >= 0)
		area += p.Area()
	}
	assert.InDelta(t, 1, area, 1e-9)
}
