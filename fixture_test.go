package jigsaw

import (
	"embed"
	"strconv"
	"testing"

	"github.com/JoshVarga/svgparser"
	"github.com/stretchr/testify/require"
)

// Seed point fixtures are drawn as SVG circles, one circle per point, so they
// can be inspected in any browser. They are available by name in the
// testdata/fixtures directory, sans extension.

//go:embed testdata/fixtures
var fixtures embed.FS

func loadFixture(t testing.TB, name string) []Point {
	t.Helper()

	fixture, err := fixtures.Open("testdata/fixtures/" + name + ".svg")
	require.NoError(t, err, "could not load fixture %q", name)
	defer fixture.Close()

	rootEl, err := svgparser.Parse(fixture, true)
	require.NoError(t, err, "failed to parse fixture %q", name)

	circles := rootEl.FindAll("circle")
	require.NotEmpty(t, circles, "no points found in fixture %q", name)

	points := make([]Point, 0, len(circles))
	for _, el := range circles {
		x, err := strconv.ParseFloat(el.Attributes["cx"], 64)
		require.NoError(t, err, "invalid cx in fixture %q", name)
		y, err := strconv.ParseFloat(el.Attributes["cy"], 64)
		require.NoError(t, err, "invalid cy in fixture %q", name)
		points = append(points, Point{X: x, Y: y})
	}
	return points
}
