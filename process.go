package jigsaw

import (
	"context"
	"image"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Processor holds the options of the piece generation pipeline.
type Processor struct {
	// WorkingSize is the side length of the square working space.
	WorkingSize float64
	// MinDistance is the separation enforced between seed points, and their
	// minimum distance to the working space edges.
	MinDistance float64
	PieceWidth  int
	PieceHeight int
	// Triangulator names the triangulation backend, see NewTriangulator.
	Triangulator string
	// ExcludeBorderOnly drops the pieces whose corners are all border points.
	ExcludeBorderOnly bool
	// Validate runs the mesh consistency checks after triangulation.
	Validate bool
	// Workers bounds the pieces rasterized concurrently; 0 means one per CPU.
	Workers int
	Logger  *zap.Logger
}

// Puzzle is the outcome of the generation pipeline.
type Puzzle struct {
	// Points is the triangulated point set: relaxed seeds followed by the border ring.
	Points []Point
	Mesh   *Mesh
	Pieces []TriangleData
}

// NewProcessor returns a processor with the default options.
func NewProcessor() *Processor {
	return &Processor{
		WorkingSize:  DefaultWorkingSize,
		MinDistance:  30,
		PieceWidth:   DefaultPieceSize,
		PieceHeight:  DefaultPieceSize,
		Triangulator: BowyerWatsonBackend,
		Validate:     true,
	}
}

func (p *Processor) logger() *zap.Logger {
	if p.Logger == nil {
		return zap.NewNop()
	}
	return p.Logger
}

// Generate asks the generator for count seed points and runs the pipeline on them.
func (p *Processor) Generate(gen PointGenerator, count int) (*Puzzle, error) {
	seeds, err := gen.GeneratePoints(count)
	if err != nil {
		return nil, errors.Wrap(err, "generating seed points")
	}
	return p.Process(seeds)
}

// Process turns the seed points into puzzle pieces: the seeds are relaxed,
// deduplicated and closed with the border ring before being triangulated.
func (p *Processor) Process(seeds []Point) (*Puzzle, error) {
	log := p.logger()
	if p.WorkingSize <= 0 {
		return nil, errors.Errorf("invalid working size %g", p.WorkingSize)
	}
	if p.MinDistance < 0 {
		return nil, errors.Errorf("invalid minimum distance %g", p.MinDistance)
	}
	bounds := WorkingSpace(p.WorkingSize)

	relaxed := Relax(seeds, p.MinDistance, bounds)
	unique, dropped := Dedupe(relaxed)
	border := BorderPoints(bounds)
	for i := 0; i < len(unique); i++ {
		for _, b := range border {
			if isEq(unique[i], b) {
				unique = append(unique[:i], unique[i+1:]...)
				dropped++
				i--
				break
			}
		}
	}
	if dropped > 0 {
		log.Debug("dropped coincident seed points", zap.Int("dropped", dropped))
	}
	points := AddBorder(unique, bounds)
	log.Debug("relaxed seed points",
		zap.Int("seeds", len(seeds)),
		zap.Int("points", len(points)),
		zap.Float64("minDistance", p.MinDistance),
	)

	tri, err := NewTriangulator(p.Triangulator, len(unique))
	if err != nil {
		return nil, err
	}
	mesh, err := tri.Triangulate(points)
	if err != nil {
		return nil, errors.Wrap(err, "triangulating")
	}
	mesh.BorderStart = len(unique)
	if p.Validate {
		if err := mesh.Validate(); err != nil {
			return nil, err
		}
	}
	log.Debug("triangulated", zap.String("backend", p.Triangulator), zap.Int("triangles", mesh.Len()))

	pieces, err := BuildTriangles(mesh, p.WorkingSize)
	if err != nil {
		return nil, err
	}
	if p.ExcludeBorderOnly {
		kept := pieces[:0]
		for _, t := range pieces {
			if !t.Border {
				kept = append(kept, t)
			}
		}
		log.Info("excluded border-only pieces", zap.Int("excluded", len(pieces)-len(kept)))
		pieces = kept
	}

	return &Puzzle{Points: points, Mesh: mesh, Pieces: pieces}, nil
}

// Cut rasterizes every piece of the puzzle out of the source image.
func (p *Processor) Cut(ctx context.Context, puzzle *Puzzle, src image.Image) ([]*image.NRGBA, error) {
	images, err := RasterizeAll(ctx, puzzle.Pieces, src, p.PieceWidth, p.PieceHeight, p.Workers)
	if err != nil {
		return nil, errors.Wrap(err, "cutting pieces")
	}
	p.logger().Debug("cut pieces",
		zap.Int("pieces", len(images)),
		zap.Int("width", p.PieceWidth),
		zap.Int("height", p.PieceHeight),
	)
	return images, nil
}
