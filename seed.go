package jigsaw

import (
	"image"
	"math/rand"
)

// pointRate defines the share of the edge pixels kept as candidate points.
// Changing this value will modify the triangles sizes.
const pointRate = 0.875

// EdgePoints retrieves candidate points from an image after the Sobel filter
// has been applied. A pixel is a candidate when the mean of its 3x3
// neighbourhood exceeds threshold. At most maxPoints candidates are sampled,
// without replacement, using rnd.
func EdgePoints(img *image.NRGBA, threshold, maxPoints int, rnd *rand.Rand) []Point {
	width, height := img.Bounds().Dx(), img.Bounds().Dy()

	var (
		sum, total   int
		x, y, sx, sy int
		row, col     int
		points       []Point
	)

	for y = 0; y < height; y++ {
		for x = 0; x < width; x++ {
			sum, total = 0, 0

			for row = -1; row <= 1; row++ {
				sy = y + row
				if sy < 0 || sy >= height {
					continue
				}
				for col = -1; col <= 1; col++ {
					sx = x + col
					if sx >= 0 && sx < width {
						sum += int(img.Pix[img.PixOffset(sx, sy)])
						total++
					}
				}
			}
			if total > 0 {
				sum /= total
			}
			if sum > threshold {
				points = append(points, Point{X: float64(x), Y: float64(y)})
			}
		}
	}

	limit := Min(int(float64(len(points))*pointRate), maxPoints)
	if limit <= 0 {
		return nil
	}

	dpoints := make([]Point, 0, limit)
	for _, j := range rnd.Perm(len(points))[:limit] {
		dpoints = append(dpoints, points[j])
	}
	return dpoints
}
