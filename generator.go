package jigsaw

import (
	"image"
	"math"
	"math/rand"

	"github.com/ojrac/opensimplex-go"
	"github.com/pkg/errors"
)

// PointGenerator produces the seed points of a puzzle. The neural network
// point model used by the game is one implementation; the generators below
// are deterministic stand-ins.
type PointGenerator interface {
	GeneratePoints(count int) ([]Point, error)
}

// GeneratorFunc adapts an ordinary function to the PointGenerator interface.
type GeneratorFunc func(count int) ([]Point, error)

// GeneratePoints calls f(count).
func (f GeneratorFunc) GeneratePoints(count int) ([]Point, error) { return f(count) }

// StaticGenerator always returns the same points, truncated to count.
type StaticGenerator []Point

// GeneratePoints returns a copy of the first count points.
func (s StaticGenerator) GeneratePoints(count int) ([]Point, error) {
	n := Clamp(count, 0, len(s))
	out := make([]Point, n)
	copy(out, s[:n])
	return out, nil
}

// prng is a Park-Miller minimal standard generator. It is small, fast and,
// unlike math/rand, its sequence is fixed forever for a given seed.
type prng struct {
	a         int
	m         int
	randomNum int
	div       float64
}

func newPrng(seed int64) *prng {
	p := &prng{
		a:   16807,
		m:   0x7fffffff,
		div: 1.0 / 0x7fffffff,
	}
	p.randomNum = int(seed%int64(p.m-1)) + 1
	if p.randomNum <= 0 {
		p.randomNum += p.m - 1
	}
	return p
}

func (prng *prng) nextLongRand(seed int) int {
	lo := prng.a * (seed & 0xffff)
	hi := prng.a * (seed >> 16)
	lo += (hi & 0x7fff) << 16

	if lo > prng.m {
		lo &= prng.m
		lo++
	}
	lo += hi >> 15
	if lo > prng.m {
		lo &= prng.m
		lo++
	}
	return lo
}

// float64 returns the next value in (0, 1).
func (prng *prng) float64() float64 {
	prng.randomNum = prng.nextLongRand(prng.randomNum)
	return float64(prng.randomNum) * prng.div
}

// RandomGenerator scatters points uniformly over the working space.
type RandomGenerator struct {
	Seed int64
	Size float64
}

// GeneratePoints returns count uniformly distributed points.
func (g RandomGenerator) GeneratePoints(count int) ([]Point, error) {
	if count < 0 {
		return nil, errors.Errorf("negative point count %d", count)
	}
	rnd := newPrng(g.Seed)
	points := make([]Point, count)
	for i := range points {
		points[i] = Point{X: rnd.float64() * g.Size, Y: rnd.float64() * g.Size}
	}
	return points, nil
}

// NoiseGenerator lays the points on a regular grid and displaces each of them
// by simplex noise, which yields evenly sized but irregular pieces.
type NoiseGenerator struct {
	Seed int64
	Size float64
	// Jitter is the maximum displacement relative to the grid cell size.
	Jitter float64
	// Frequency scales the noise field sampled at the grid coordinates.
	Frequency float64
}

// GeneratePoints returns count points placed on a jittered grid.
func (g NoiseGenerator) GeneratePoints(count int) ([]Point, error) {
	if count < 0 {
		return nil, errors.Errorf("negative point count %d", count)
	}
	if count == 0 {
		return []Point{}, nil
	}
	freq := g.Frequency
	if freq == 0 {
		freq = 1
	}
	noise := opensimplex.NewNormalized(g.Seed)

	cols := int(math.Ceil(math.Sqrt(float64(count))))
	rows := (count + cols - 1) / cols
	cellW, cellH := g.Size/float64(cols), g.Size/float64(rows)

	points := make([]Point, 0, count)
	for i := 0; i < count; i++ {
		col, row := i%cols, i/cols
		cx := (float64(col) + 0.5) * cellW
		cy := (float64(row) + 0.5) * cellH

		// NewNormalized yields values in [0, 1); recenter them around zero.
		dx := (noise.Eval2(float64(col)*freq, float64(row)*freq) - 0.5) * 2
		dy := (noise.Eval2(float64(col)*freq+101.3, float64(row)*freq-57.1) - 0.5) * 2
		points = append(points, Point{
			X: cx + dx*g.Jitter*cellW/2,
			Y: cy + dy*g.Jitter*cellH/2,
		})
	}
	return points, nil
}

// EdgeGenerator derives the seed points from the edges of an image, so that
// piece boundaries tend to follow the picture's features.
type EdgeGenerator struct {
	Image           image.Image
	Size            float64
	Seed            int64
	BlurRadius      int
	SobelThreshold  int
	PointsThreshold int
}

// GeneratePoints detects the image edges and maps up to count edge pixels into
// the working space.
func (g EdgeGenerator) GeneratePoints(count int) ([]Point, error) {
	if g.Image == nil || g.Image.Bounds().Empty() {
		return nil, ErrEmptySource
	}
	img := ImgToNRGBA(g.Image)
	width, height := img.Bounds().Dx(), img.Bounds().Dy()

	edges := Chain{
		Gray(),
		BoxBlur(g.BlurRadius),
		Sobel(float64(g.SobelThreshold)),
	}.Apply(img)

	rnd := rand.New(rand.NewSource(g.Seed))
	points := EdgePoints(edges, g.PointsThreshold, count, rnd)
	for i, p := range points {
		points[i] = Point{
			X: p.X / float64(width) * g.Size,
			Y: p.Y / float64(height) * g.Size,
		}
	}
	return points, nil
}
