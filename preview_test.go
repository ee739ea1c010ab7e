package jigsaw

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioPuzzle(t *testing.T) *Puzzle {
	t.Helper()
	puzzle, err := newTestProcessor(t).Process(loadFixture(t, "scenario"))
	require.NoError(t, err)
	return puzzle
}

func centroidPixel(img image.Image, piece TriangleData) color.Color {
	b := img.Bounds()
	return img.At(int(piece.Centroid.X*float64(b.Dx())), int(piece.Centroid.Y*float64(b.Dy())))
}

func isWhite(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r == 0xffff && g == 0xffff && b == 0xffff
}

func TestDrawMeshPalette(t *testing.T) {
	puzzle := scenarioPuzzle(t)
	img := DrawMesh(puzzle, nil, 128, 96, PreviewOptions{Wireframe: WithWireframe, LineWidth: 1})

	require.Equal(t, image.Rect(0, 0, 128, 96), img.Bounds())
	for i, piece := range puzzle.Pieces {
		assert.False(t, isWhite(centroidPixel(img, piece)), "piece %d is not filled", i)
	}
}

func TestDrawMeshSampledColors(t *testing.T) {
	puzzle := scenarioPuzzle(t)
	img := DrawMesh(puzzle, solidImage(32, 32, red), 256, 256, PreviewOptions{Wireframe: WithoutWireframe})

	for i, piece := range puzzle.Pieces {
		r, g, b, a := centroidPixel(img, piece).RGBA()
		assert.Equal(t, []uint32{0xffff, 0, 0, 0xffff}, []uint32{r, g, b, a}, "piece %d", i)
	}
}

func TestDrawMeshWireframeOnly(t *testing.T) {
	puzzle := scenarioPuzzle(t)
	img := DrawMesh(puzzle, nil, 64, 64, PreviewOptions{Wireframe: WireframeOnly, LineWidth: 1, IsSolid: true})

	// Only the outlines are drawn over the white background.
	var white int
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if isWhite(img.At(x, y)) {
				white++
			}
		}
	}
	assert.Greater(t, white, b.Dx()*b.Dy()/2)
	assert.Less(t, white, b.Dx()*b.Dy())
}

func TestWriteSVG(t *testing.T) {
	puzzle := scenarioPuzzle(t)

	var buf bytes.Buffer
	WriteSVG(&buf, puzzle, 512, 512, 1.5)
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Equal(t, len(puzzle.Pieces), strings.Count(out, "<polygon"))
	assert.Contains(t, out, `id="piece-0"`)
	assert.Contains(t, out, `id="piece-11"`)
	assert.Contains(t, out, "stroke-width:1.5")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "</svg>"))
}
