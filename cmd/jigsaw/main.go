package main

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/esimov/jigsaw"
	"github.com/esimov/jigsaw/utils"
	"github.com/logrusorgru/aurora"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
	"golang.org/x/term"
	"gopkg.in/alecthomas/kingpin.v2"
)

const version = "v1.0.0"

var (
	// Flags
	app          = kingpin.New("jigsaw", "Cut an image into triangulated puzzle pieces.")
	source       = app.Flag("in", "Source image path or URL").Short('i').Required().String()
	destination  = app.Flag("out", "Destination directory (a random name when empty)").Short('o').String()
	configFile   = app.Flag("config", "YAML configuration file").Short('c').ExistingFile()
	points       = app.Flag("points", "Number of seed points").Int()
	seed         = app.Flag("seed", "Seed of the point generator").Int64()
	generator    = app.Flag("generator", "Seed point generator").Enum(jigsaw.RandomSource, jigsaw.NoiseSource, jigsaw.EdgeSource)
	triangulator = app.Flag("triangulator", "Triangulation backend").Enum(jigsaw.BowyerWatsonBackend, jigsaw.SweepBackend, jigsaw.DelaunatorBackend)
	minDistance  = app.Flag("min-distance", "Minimum distance between seed points").Float64()
	pieceSize    = app.Flag("piece-size", "Side length of the piece images").Int()
	excludeEdge  = app.Flag("exclude-border", "Drop the pieces made only of border points").Bool()
	workers      = app.Flag("workers", "Pieces cut concurrently (0: one per CPU)").Int()
	preview      = app.Flag("preview", "Write a PNG preview of the mesh").String()
	wireframe    = app.Flag("wireframe", "Preview wireframe mode (0: none, 1: with, 2: only)").Default("2").Int()
	lineWidth    = app.Flag("width", "Preview line width").Default("1").Float64()
	svgFile      = app.Flag("svg", "Write the cut lines as SVG").String()
	showPreview  = app.Flag("imgcat", "Print the preview in the terminal (iTerm2)").Bool()
	debug        = app.Flag("debug", "Verbose logging").Bool()
)

func main() {
	app.Version(version)
	kingpin.MustParse(app.Parse(os.Args[1:]))

	os.Exit(execute())
}

// execute runs the command and returns the process exit code.
func execute() int {
	logger, err := newLogger(*debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to create logger: %v\n", err)
		return 1
	}
	defer logger.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, logger); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", aurora.Red("✗"), err)
		return 1
	}
	return 0
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(ctx context.Context, logger *zap.Logger) error {
	cfg := jigsaw.NewConfig()
	if *configFile != "" {
		var err error
		if cfg, err = jigsaw.LoadConfig(*configFile); err != nil {
			return err
		}
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	src, err := openImage(ctx, *source)
	if err != nil {
		return err
	}

	out := *destination
	if out == "" {
		out = petname.Generate(2, "-")
	}
	if err := os.MkdirAll(out, 0755); err != nil {
		return errors.Wrap(err, "unable to create destination")
	}

	gen, err := cfg.PointGenerator(src)
	if err != nil {
		return err
	}
	proc := cfg.Processor(logger)

	var s *utils.Spinner
	if term.IsTerminal(int(os.Stdout.Fd())) {
		s = utils.NewSpinner(os.Stdout)
		s.Start("Generating puzzle pieces...")
	}
	start := time.Now()
	puzzle, err := proc.Generate(gen, cfg.Points)
	if err == nil {
		var pieces []*image.NRGBA
		if pieces, err = proc.Cut(ctx, puzzle, src); err == nil {
			err = savePieces(out, pieces)
		}
	}
	if s != nil {
		s.Stop()
	}
	if err != nil {
		return err
	}

	if *preview != "" {
		if err := savePreview(*preview, puzzle, src); err != nil {
			return err
		}
		if *showPreview {
			displayPreview(*preview, os.Stdout, logger)
		}
	}
	if *svgFile != "" {
		if err := saveSVG(*svgFile, puzzle); err != nil {
			return err
		}
	}

	fmt.Printf("\nGenerated in: %s\n", aurora.Green(utils.FormatTime(time.Since(start))))
	fmt.Printf("Total number of %d pieces cut out of %d points\n",
		aurora.Green(len(puzzle.Pieces)), aurora.Green(len(puzzle.Points)))
	fmt.Printf("Saved in: %s %s\n\n", out, aurora.Green("✓"))
	return nil
}

// applyFlags overrides the configuration with the flags set on the command line.
func applyFlags(cfg *jigsaw.Config) {
	if *points > 0 {
		cfg.Points = *points
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *generator != "" {
		cfg.Generator = *generator
	}
	if *triangulator != "" {
		cfg.Triangulator = *triangulator
	}
	if *minDistance > 0 {
		cfg.MinDistance = *minDistance
	}
	if *pieceSize > 0 {
		cfg.PieceWidth, cfg.PieceHeight = *pieceSize, *pieceSize
	}
	if *excludeEdge {
		cfg.ExcludeBorderOnly = true
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}
}

// openImage decodes the source image from a local path or an http(s) URL.
func openImage(ctx context.Context, source string) (image.Image, error) {
	var (
		file *os.File
		err  error
	)
	if utils.IsURL(source) {
		if file, err = utils.DownloadImage(ctx, source); err != nil {
			return nil, err
		}
		defer os.Remove(file.Name())
	} else if file, err = os.Open(source); err != nil {
		return nil, errors.Wrap(err, "unable to open source")
	}
	defer file.Close()

	src, _, err := image.Decode(file)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to decode %s", source)
	}
	return src, nil
}

func savePieces(dir string, pieces []*image.NRGBA) error {
	for i, piece := range pieces {
		name := filepath.Join(dir, fmt.Sprintf("piece_%03d.png", i))
		if err := writeFile(name, func(w io.Writer) error { return png.Encode(w, piece) }); err != nil {
			return err
		}
	}
	return nil
}

func savePreview(name string, puzzle *jigsaw.Puzzle, src image.Image) error {
	b := src.Bounds()
	img := jigsaw.DrawMesh(puzzle, src, b.Dx(), b.Dy(), jigsaw.PreviewOptions{
		Wireframe: *wireframe,
		LineWidth: *lineWidth,
	})
	return writeFile(name, func(w io.Writer) error { return png.Encode(w, img) })
}

// displayPreview prints the image inline in terminals speaking the iTerm2
// protocol. Failing to do so is not fatal: the file is already saved.
func displayPreview(name string, w io.Writer, logger *zap.Logger) {
	if err := imgcat.CatFile(name, w); err != nil {
		logger.Warn("unable to display the preview", zap.String("file", name), zap.Error(err))
	}
}

func saveSVG(name string, puzzle *jigsaw.Puzzle) error {
	return writeFile(name, func(w io.Writer) error {
		jigsaw.WriteSVG(w, puzzle, jigsaw.DefaultWorkingSize, jigsaw.DefaultWorkingSize, *lineWidth)
		return nil
	})
}

func writeFile(name string, write func(w io.Writer) error) error {
	f, err := os.Create(name)
	if err != nil {
		return errors.Wrapf(err, "unable to create %s", name)
	}
	if err := write(f); err != nil {
		f.Close()
		return errors.Wrapf(err, "unable to write %s", name)
	}
	return f.Close()
}
