package jigsaw

import (
	"math"

	"github.com/pkg/errors"
)

type edge struct {
	a, b int
}

// triangle holds three vertex indices in counter-clockwise order. One of them
// may be the ghost vertex at infinity: (a, b, ghost) then stands for the
// unbounded region left of the hull edge a->b.
type triangle struct {
	nodes [3]int
}

func newTriangle(a, b, c int, points []Point) triangle {
	// Keep every triangle counter-clockwise so the in-circle sign is stable.
	if orient(points[a], points[b], points[c]) < 0 {
		b, c = c, b
	}
	return triangle{nodes: [3]int{a, b, c}}
}

func (t triangle) edges() [3]edge {
	n := t.nodes
	return [3]edge{{n[0], n[1]}, {n[1], n[2]}, {n[2], n[0]}}
}

func (t triangle) has(idx int) bool {
	return t.nodes[0] == idx || t.nodes[1] == idx || t.nodes[2] == idx
}

// inCircle reports whether p lies strictly inside the circumcircle of the
// counter-clockwise triangle abc.
func inCircle(a, b, c, p Point) bool {
	adx, ady := a.X-p.X, a.Y-p.Y
	bdx, bdy := b.X-p.X, b.Y-p.Y
	cdx, cdy := c.X-p.X, c.Y-p.Y

	det := (adx*adx+ady*ady)*(bdx*cdy-cdx*bdy) -
		(bdx*bdx+bdy*bdy)*(adx*cdy-cdx*ady) +
		(cdx*cdx+cdy*cdy)*(adx*bdy-bdx*ady)
	return det > 0
}

// beyondEdge reports whether p lies strictly outside the directed hull edge
// a->b, whose outer side is on its left, or on the open segment itself.
func beyondEdge(a, b, p Point) bool {
	o := orient(a, b, p)
	if o != 0 {
		return o > 0
	}
	ab, ap := b.Minus(a), p.Minus(a)
	d := dot(ab, ap)
	return d > 0 && d < dot(ab, ab)
}

// Delaunay is an incremental Bowyer-Watson triangulator. Points are inserted
// in input order, which makes the output deterministic for a given input.
//
// The hull is closed by a single ghost vertex at infinity instead of a finite
// super triangle, so thin point sets are triangulated as reliably as round
// ones.
type Delaunay struct {
	points    []Point
	triangles []triangle
	inserted  []int
	count     int
}

// Init prepares the triangulator for the given points by building the first
// triangle out of the first three non-collinear points.
func (d *Delaunay) Init(points []Point) *Delaunay {
	d.points = points
	d.count = len(points)
	d.triangles = nil
	d.inserted = make([]int, 0, len(points))

	a, b, c, ok := seedTriangle(points)
	if !ok {
		return d
	}
	t := newTriangle(a, b, c, points)
	n, g := t.nodes, d.ghost()
	d.triangles = []triangle{
		t,
		{nodes: [3]int{n[1], n[0], g}},
		{nodes: [3]int{n[2], n[1], g}},
		{nodes: [3]int{n[0], n[2], g}},
	}
	d.inserted = append(d.inserted, a, b, c)
	return d
}

// ghost returns the index standing for the vertex at infinity.
func (d *Delaunay) ghost() int {
	return d.count
}

// seedTriangle picks the first point, the first one distinct from it and the
// first one off the line through both.
func seedTriangle(points []Point) (a, b, c int, ok bool) {
	if len(points) < 3 {
		return 0, 0, 0, false
	}
	tol := areaTolerance(points)
	b = 1
	for b < len(points) && isEq(points[b], points[a]) {
		b++
	}
	for c = b + 1; c < len(points); c++ {
		if math.Abs(orient(points[a], points[b], points[c])) > tol {
			return a, b, c, true
		}
	}
	return 0, 0, 0, false
}

// conflicts reports whether inserting p invalidates t.
func (d *Delaunay) conflicts(t triangle, p Point) bool {
	n, g := t.nodes, d.ghost()
	for i := 0; i < 3; i++ {
		if n[i] == g {
			return beyondEdge(d.points[n[(i+1)%3]], d.points[n[(i+2)%3]], p)
		}
	}
	return inCircle(d.points[n[0]], d.points[n[1]], d.points[n[2]], p)
}

// Insert adds the remaining points of the input set one after another. A
// point coinciding with an already inserted one is skipped.
func (d *Delaunay) Insert() *Delaunay {
	if len(d.triangles) == 0 {
		return d
	}
	g := d.ghost()

	for k := 0; k < d.count; k++ {
		p := d.points[k]
		dup := false
		for _, i := range d.inserted {
			if isEq(p, d.points[i]) {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		d.inserted = append(d.inserted, k)

		var (
			bad   []triangle
			temps = make([]triangle, 0, len(d.triangles)+2)
		)
		for _, t := range d.triangles {
			if d.conflicts(t, p) {
				bad = append(bad, t)
			} else {
				temps = append(temps, t)
			}
		}

		// The cavity boundary is made of the edges whose twin is not part of
		// another conflicting triangle.
		shared := make(map[edge]struct{}, len(bad)*3)
		for _, t := range bad {
			for _, e := range t.edges() {
				shared[e] = struct{}{}
			}
		}
		for _, t := range bad {
			for _, e := range t.edges() {
				if _, ok := shared[edge{e.b, e.a}]; ok {
					continue
				}
				if e.a == g || e.b == g {
					temps = append(temps, triangle{nodes: [3]int{e.a, e.b, k}})
					continue
				}
				temps = append(temps, newTriangle(e.a, e.b, k, d.points))
			}
		}
		d.triangles = temps
	}
	return d
}

// GetTriangles returns the flat index triples of the finite triangles.
func (d *Delaunay) GetTriangles() []int {
	g := d.ghost()
	indices := make([]int, 0, len(d.triangles)*3)
	for _, t := range d.triangles {
		if t.has(g) {
			continue
		}
		indices = append(indices, t.nodes[0], t.nodes[1], t.nodes[2])
	}
	return indices
}

// Triangulate computes the Delaunay triangulation of points.
func (d *Delaunay) Triangulate(points []Point) (*Mesh, error) {
	if err := checkPoints(points); err != nil {
		return nil, err
	}
	vertices := make([]Point, len(points))
	copy(vertices, points)

	mesh := &Mesh{
		Vertices:    vertices,
		Triangles:   d.Init(vertices).Insert().GetTriangles(),
		BorderStart: -1,
	}
	if err := mesh.checkCoverage(); err != nil {
		return nil, errors.Wrap(err, "bowyer-watson")
	}
	return mesh, nil
}
