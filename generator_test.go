package jigsaw

import (
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inWorkingSpace(t *testing.T, points []Point, size float64) {
	t.Helper()
	for _, p := range points {
		assert.True(t, p.X >= 0 && p.X <= size && p.Y >= 0 && p.Y <= size, "%v out of the working space", p)
	}
}

func TestPrngRange(t *testing.T) {
	rnd := newPrng(42)
	for i := 0; i < 10000; i++ {
		v := rnd.float64()
		require.True(t, v >= 0 && v <= 1, "value %g", v)
	}
	// Seeds are folded into the generator's range.
	assert.Greater(t, newPrng(0).randomNum, 0)
	assert.Greater(t, newPrng(-5).randomNum, 0)
}

func TestRandomGenerator(t *testing.T) {
	gen := RandomGenerator{Seed: 7, Size: 512}
	points, err := gen.GeneratePoints(50)
	require.NoError(t, err)
	require.Len(t, points, 50)
	inWorkingSpace(t, points, 512)

	again, err := gen.GeneratePoints(50)
	require.NoError(t, err)
	assert.Equal(t, points, again)

	other, err := RandomGenerator{Seed: 8, Size: 512}.GeneratePoints(50)
	require.NoError(t, err)
	assert.NotEqual(t, points, other)

	_, err = gen.GeneratePoints(-1)
	assert.Error(t, err)
}

func TestNoiseGenerator(t *testing.T) {
	gen := NoiseGenerator{Seed: 3, Size: 512, Jitter: 0.8, Frequency: 0.7}
	points, err := gen.GeneratePoints(10)
	require.NoError(t, err)
	require.Len(t, points, 10)
	inWorkingSpace(t, points, 512)

	again, err := gen.GeneratePoints(10)
	require.NoError(t, err)
	assert.Equal(t, points, again)

	// Without jitter the points sit at the cell centers.
	gen.Jitter = 0
	points, err = gen.GeneratePoints(4)
	require.NoError(t, err)
	assert.Equal(t, []Point{{X: 128, Y: 128}, {X: 384, Y: 128}, {X: 128, Y: 384}, {X: 384, Y: 384}}, points)

	points, err = gen.GeneratePoints(0)
	require.NoError(t, err)
	assert.Empty(t, points)

	_, err = gen.GeneratePoints(-3)
	assert.Error(t, err)
}

func TestStaticGenerator(t *testing.T) {
	gen := StaticGenerator{{X: 1, Y: 2}, {X: 3, Y: 4}, {X: 5, Y: 6}}

	points, err := gen.GeneratePoints(2)
	require.NoError(t, err)
	assert.Equal(t, []Point{{X: 1, Y: 2}, {X: 3, Y: 4}}, points)

	points, err = gen.GeneratePoints(10)
	require.NoError(t, err)
	assert.Len(t, points, 3)

	points[0] = Point{}
	assert.Equal(t, Point{X: 1, Y: 2}, gen[0])
}

func squareImage(size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := color.NRGBA{A: 255}
			if x >= size/4 && x < 3*size/4 && y >= size/4 && y < 3*size/4 {
				c = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestEdgeGenerator(t *testing.T) {
	gen := EdgeGenerator{
		Image:           squareImage(64),
		Size:            512,
		Seed:            1,
		BlurRadius:      2,
		SobelThreshold:  10,
		PointsThreshold: 20,
	}
	points, err := gen.GeneratePoints(10)
	require.NoError(t, err)
	require.Len(t, points, 10)
	inWorkingSpace(t, points, 512)

	// Edge points gather around the outline of the square, never in the
	// flat corners of the image.
	for _, p := range points {
		assert.True(t, p.X > 64 && p.X < 448 && p.Y > 64 && p.Y < 448, "%v", p)
	}

	again, err := gen.GeneratePoints(10)
	require.NoError(t, err)
	assert.Equal(t, points, again)
}

func TestEdgeGeneratorFlatImage(t *testing.T) {
	gen := EdgeGenerator{Image: solidImage(32, 32, red), Size: 512, SobelThreshold: 10, PointsThreshold: 20}
	points, err := gen.GeneratePoints(10)
	require.NoError(t, err)
	assert.Empty(t, points)

	_, err = EdgeGenerator{Size: 512}.GeneratePoints(10)
	assert.True(t, errors.Is(err, ErrEmptySource))
}

func TestEdgePointsSampling(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	for i := 0; i < len(img.Pix); i++ {
		img.Pix[i] = 255
	}
	points := EdgePoints(img, 20, 30, rand.New(rand.NewSource(1)))
	require.Len(t, points, 30)

	seen := make(map[Point]bool)
	for _, p := range points {
		assert.False(t, seen[p], "%v sampled twice", p)
		seen[p] = true
	}

	// Never more than the share of candidates kept by the point rate.
	points = EdgePoints(img, 20, 1000, rand.New(rand.NewSource(1)))
	assert.Len(t, points, 87)
}
