package jigsaw

import "image"

// Filter transforms an image into a new one.
type Filter interface {
	Apply(src *image.NRGBA) *image.NRGBA
}

// FilterFunc adapts an ordinary function to the Filter interface.
type FilterFunc func(src *image.NRGBA) *image.NRGBA

// Apply calls f(src).
func (f FilterFunc) Apply(src *image.NRGBA) *image.NRGBA { return f(src) }

// Chain is a list of filters applied to an image one after another.
type Chain []Filter

// Apply runs every filter of the chain, feeding each output into the next one.
// The source image is never modified.
func (c Chain) Apply(src *image.NRGBA) *image.NRGBA {
	out := src
	for _, f := range c {
		out = f.Apply(out)
	}
	return out
}

// BoxBlur returns a filter blurring the image with a box kernel of the given radius.
func BoxBlur(radius int) Filter {
	return FilterFunc(func(src *image.NRGBA) *image.NRGBA {
		dst := image.NewNRGBA(src.Bounds())
		copy(dst.Pix, src.Pix)
		if radius <= 0 {
			return dst
		}
		matrix := setBlurMatrix(radius)
		convolutionFilter(matrix, dst, float64(len(matrix)))
		return dst
	})
}

// Sobel returns a filter detecting edges over a grayscale image.
func Sobel(threshold float64) Filter {
	return FilterFunc(func(src *image.NRGBA) *image.NRGBA {
		return SobelFilter(src, threshold)
	})
}

// Gray returns a filter converting the image to grayscale.
func Gray() Filter {
	return FilterFunc(Grayscale)
}
