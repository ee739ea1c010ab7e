package jigsaw

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
	"github.com/mazznoer/colorgrad"
)

// WriteSVG writes the cut lines of the puzzle as an SVG document of the
// given size. Every piece is emitted as one polygon, in piece order, with
// its index stored in the id attribute.
func WriteSVG(w io.Writer, puzzle *Puzzle, width, height int, strokeWidth float64) {
	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Title("puzzle pieces")
	canvas.Rect(0, 0, width, height, "fill:rgb(255,255,255)")

	palette := colorgrad.Rainbow().Colors(uint(len(puzzle.Pieces)))
	for i, t := range puzzle.Pieces {
		xs := make([]int, 3)
		ys := make([]int, 3)
		for k, uv := range t.UV {
			xs[k] = int(math.Round(uv.X * float64(width)))
			ys[k] = int(math.Round(uv.Y * float64(height)))
		}
		r, g, b, _ := palette[i].RGBA()
		style := fmt.Sprintf("fill:rgb(%d,%d,%d);fill-opacity:0.6;stroke:black;stroke-width:%g;stroke-linejoin:round",
			r>>8, g>>8, b>>8, strokeWidth)
		canvas.Polygon(xs, ys, fmt.Sprintf(`id="piece-%d"`, i), style)
	}
	canvas.End()
}
