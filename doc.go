/*
Package jigsaw cuts an image into irregular, triangle shaped puzzle pieces.

The pieces are produced by a small pipeline:

  - a PointGenerator supplies the seed points (a trained point model in the
    game, or one of the deterministic generators of this package),
  - Relax pushes apart the seeds closer than a minimum distance and keeps
    them away from the working space edges,
  - AddBorder closes the point set with a fixed ring of corners and edge
    midpoints, so that the triangulation tiles the whole working space,
  - a Triangulator computes the Delaunay triangulation,
  - BuildTriangles converts every triangle into UV space,
  - Rasterize cuts the piece out of the source image.

The package also exposes a command line utility. Check the supported
commands by typing:

	$ jigsaw --help

Example to generate the pieces of a puzzle and cut them out of an image:

	package main

	import (
		"context"
		"fmt"

		"github.com/esimov/jigsaw"
	)

	func main() {
		p := jigsaw.NewProcessor()

		puzzle, err := p.Generate(jigsaw.RandomGenerator{Seed: 42, Size: p.WorkingSize}, 24)
		if err != nil {
			fmt.Printf("Error generating the puzzle: %s", err.Error())
			return
		}
		pieces, err := p.Cut(context.Background(), puzzle, srcImg)
		if err != nil {
			fmt.Printf("Error cutting the pieces: %s", err.Error())
		}
		_ = pieces
	}
*/
package jigsaw
