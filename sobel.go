package jigsaw

import (
	"image"
	"math"
)

type kernel [3][3]int32

var (
	kernelX = kernel{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}

	kernelY = kernel{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}
)

// SobelFilter detects the edges of a grayscale image. Magnitudes not exceeding
// the threshold are zeroed.
func SobelFilter(src *image.NRGBA, threshold float64) *image.NRGBA {
	width, height := src.Bounds().Dx(), src.Bounds().Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var sumX, sumY int32
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					sx := Clamp(x+kx, 0, width-1)
					sy := Clamp(y+ky, 0, height-1)
					// The image is grayscale, so the red channel holds the luminance.
					r := int32(src.Pix[src.PixOffset(sx, sy)])
					sumX += r * kernelX[ky+1][kx+1]
					sumY += r * kernelY[ky+1][kx+1]
				}
			}
			magnitude := math.Sqrt(float64(sumX*sumX) + float64(sumY*sumY))
			if magnitude <= threshold {
				magnitude = 0
			}
			v := uint8(Min(magnitude, 255))
			i := dst.PixOffset(x, y)
			dst.Pix[i], dst.Pix[i+1], dst.Pix[i+2], dst.Pix[i+3] = v, v, v, 0xff
		}
	}
	return dst
}
