package jigsaw

import (
	"context"
	"image"
	"math"
	"runtime"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// DefaultPieceSize is the side length of a rasterized piece.
const DefaultPieceSize = 256

// degenerateEpsilon bounds the barycentric denominator under which a triangle
// is treated as having no area.
const degenerateEpsilon = 1e-12

var (
	// ErrEmptySource is returned when the source image is nil or has no pixels.
	ErrEmptySource = errors.New("source image is empty")
	// ErrInvalidSize is returned for a non-positive output size.
	ErrInvalidSize = errors.New("invalid output size")
)

// barycentric holds the precomputed terms of the point-in-triangle test.
type barycentric struct {
	a, v0, v1           Point
	dot00, dot01, dot11 float64
	invDenom            float64
	degenerate          bool
}

func newBarycentric(a, b, c Point) barycentric {
	v0 := c.Minus(a)
	v1 := b.Minus(a)
	bc := barycentric{
		a:     a,
		v0:    v0,
		v1:    v1,
		dot00: dot(v0, v0),
		dot01: dot(v0, v1),
		dot11: dot(v1, v1),
	}
	denom := bc.dot00*bc.dot11 - bc.dot01*bc.dot01
	if math.Abs(denom) < degenerateEpsilon || math.IsNaN(denom) {
		bc.degenerate = true
		return bc
	}
	bc.invDenom = 1 / denom
	return bc
}

// contains reports whether p lies inside the triangle or on its edges.
func (bc barycentric) contains(p Point) bool {
	if bc.degenerate {
		return false
	}
	v2 := p.Minus(bc.a)
	dot02 := dot(bc.v0, v2)
	dot12 := dot(bc.v1, v2)

	u := (bc.dot11*dot02 - bc.dot01*dot12) * bc.invDenom
	v := (bc.dot00*dot12 - bc.dot01*dot02) * bc.invDenom
	return u >= 0 && v >= 0 && u+v <= 1
}

func dot(a, b Point) float64 {
	return a.X*b.X + a.Y*b.Y
}

// Rasterize cuts the piece described by t out of src into a width x height
// image. The output covers the piece's bounding box: pixels inside the
// triangle copy the nearest source pixel, the others stay transparent.
func Rasterize(t TriangleData, src image.Image, width, height int) (*image.NRGBA, error) {
	if src == nil || src.Bounds().Empty() {
		return nil, ErrEmptySource
	}
	return rasterize(t, ImgToNRGBA(src), width, height, runtime.NumCPU())
}

func rasterize(t TriangleData, src *image.NRGBA, width, height, workers int) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrInvalidSize, "%dx%d", width, height)
	}
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	bc := newBarycentric(t.UV[0], t.UV[1], t.UV[2])
	if bc.degenerate {
		return dst, nil
	}

	srcW, srcH := src.Bounds().Dx(), src.Bounds().Dy()
	fw, fh := float64(width), float64(height)

	chunkWorkers(height, workers, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < width; x++ {
				uv := Point{
					X: t.Min.X + float64(x)/fw*t.Size.X,
					Y: t.Min.Y + float64(y)/fh*t.Size.Y,
				}
				if !bc.contains(uv) {
					continue
				}
				sx := Clamp(int(uv.X*float64(srcW)), 0, srcW-1)
				sy := Clamp(int(uv.Y*float64(srcH)), 0, srcH-1)

				si := src.PixOffset(sx+src.Rect.Min.X, sy+src.Rect.Min.Y)
				di := dst.PixOffset(x, y)
				copy(dst.Pix[di:di+4], src.Pix[si:si+4])
			}
		}
	})
	return dst, nil
}

// RasterizeAll rasterizes every piece against the same source image, running
// at most workers pieces at once. The returned images follow the order of
// pieces.
func RasterizeAll(ctx context.Context, pieces []TriangleData, src image.Image, width, height, workers int) ([]*image.NRGBA, error) {
	if src == nil || src.Bounds().Empty() {
		return nil, ErrEmptySource
	}
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrInvalidSize, "%dx%d", width, height)
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	img := ImgToNRGBA(src)
	out := make([]*image.NRGBA, len(pieces))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range pieces {
		i := i
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			piece, err := rasterize(pieces[i], img, width, height, 1)
			if err != nil {
				return errors.Wrapf(err, "piece %d", i)
			}
			out[i] = piece
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// chunkWorkers splits [0, total) into contiguous chunks processed concurrently
// by at most workers goroutines.
func chunkWorkers(total, workers int, fn func(start, end int)) {
	if workers <= 1 || total <= 1 {
		fn(0, total)
		return
	}
	var wg sync.WaitGroup
	var chunkStart int
	chunkSize := (total / workers) + 1
	for i := 0; i < workers; i++ {
		curChunk := chunkSize
		if rem := total - chunkStart; rem < curChunk {
			curChunk = rem
		}
		if curChunk <= 0 {
			break
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			fn(start, end)
		}(chunkStart, chunkStart+curChunk)
		chunkStart += curChunk
	}
	wg.Wait()
}
