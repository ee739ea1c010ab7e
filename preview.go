package jigsaw

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/mazznoer/colorgrad"
)

// Wireframe modes of the mesh preview.
const (
	WithoutWireframe = iota
	WithWireframe
	WireframeOnly
)

// PreviewOptions controls how DrawMesh renders a puzzle.
type PreviewOptions struct {
	Wireframe int
	LineWidth float64
	// IsSolid strokes the wireframe in black instead of the piece color.
	IsSolid bool
}

// DrawMesh renders the pieces of the puzzle into a width x height image.
// With a source image the pieces are filled with the source color found
// under their centroid, otherwise each piece gets a distinct rainbow color.
func DrawMesh(puzzle *Puzzle, src image.Image, width, height int, opts PreviewOptions) image.Image {
	ctx := gg.NewContext(width, height)
	ctx.DrawRectangle(0, 0, float64(width), float64(height))
	ctx.SetRGBA(1, 1, 1, 1)
	ctx.Fill()

	var img *image.NRGBA
	if src != nil && !src.Bounds().Empty() {
		img = ImgToNRGBA(src)
		if opts.Wireframe == WireframeOnly {
			ctx.Push()
			ctx.Scale(float64(width)/float64(img.Bounds().Dx()), float64(height)/float64(img.Bounds().Dy()))
			ctx.DrawImage(img, 0, 0)
			ctx.Pop()
		}
	}
	palette := colorgrad.Rainbow().Colors(uint(len(puzzle.Pieces)))

	w, h := float64(width), float64(height)
	for i, t := range puzzle.Pieces {
		a, b, c := t.UV[0], t.UV[1], t.UV[2]

		ctx.Push()
		ctx.MoveTo(a.X*w, a.Y*h)
		ctx.LineTo(b.X*w, b.Y*h)
		ctx.LineTo(c.X*w, c.Y*h)
		ctx.ClosePath()

		var fill color.Color = palette[i]
		if img != nil {
			sx := Clamp(int(t.Centroid.X*float64(img.Bounds().Dx())), 0, img.Bounds().Dx()-1)
			sy := Clamp(int(t.Centroid.Y*float64(img.Bounds().Dy())), 0, img.Bounds().Dy()-1)
			j := img.PixOffset(sx, sy)
			fill = color.NRGBA{R: img.Pix[j], G: img.Pix[j+1], B: img.Pix[j+2], A: 255}
		}
		lineColor := fill
		if opts.IsSolid {
			lineColor = color.Black
		}

		switch opts.Wireframe {
		case WithoutWireframe:
			ctx.SetFillStyle(gg.NewSolidPattern(fill))
			ctx.Fill()
		case WithWireframe:
			ctx.SetFillStyle(gg.NewSolidPattern(fill))
			ctx.SetStrokeStyle(gg.NewSolidPattern(color.RGBA{R: 0, G: 0, B: 0, A: 20}))
			ctx.SetLineWidth(opts.LineWidth)
			ctx.FillPreserve()
			ctx.Stroke()
		case WireframeOnly:
			ctx.SetStrokeStyle(gg.NewSolidPattern(lineColor))
			ctx.SetLineWidth(opts.LineWidth)
			ctx.Stroke()
		}
		ctx.Pop()
	}
	return ctx.Image()
}
