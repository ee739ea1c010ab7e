package jigsaw

import (
	"image"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Seed point generators selectable from the configuration.
const (
	RandomSource = "random"
	NoiseSource  = "noise"
	EdgeSource   = "edges"
)

// Config is the file representation of the generation settings.
type Config struct {
	WorkingSize       float64 `yaml:"working_size"`
	MinDistance       float64 `yaml:"min_distance"`
	Points            int     `yaml:"points"`
	Seed              int64   `yaml:"seed"`
	Generator         string  `yaml:"generator"`
	Triangulator      string  `yaml:"triangulator"`
	ExcludeBorderOnly bool    `yaml:"exclude_border_only"`
	PieceWidth        int     `yaml:"piece_width"`
	PieceHeight       int     `yaml:"piece_height"`
	Workers           int     `yaml:"workers"`

	Noise NoiseConfig `yaml:"noise"`
	Edges EdgeConfig  `yaml:"edges"`
}

// NoiseConfig holds the settings of the noise generator.
type NoiseConfig struct {
	Jitter    float64 `yaml:"jitter"`
	Frequency float64 `yaml:"frequency"`
}

// EdgeConfig holds the settings of the image edge generator.
type EdgeConfig struct {
	BlurRadius      int `yaml:"blur_radius"`
	SobelThreshold  int `yaml:"sobel_threshold"`
	PointsThreshold int `yaml:"points_threshold"`
}

// NewConfig returns the default configuration.
func NewConfig() *Config {
	return &Config{
		WorkingSize:  DefaultWorkingSize,
		MinDistance:  30,
		Points:       24,
		Seed:         1,
		Generator:    RandomSource,
		Triangulator: BowyerWatsonBackend,
		PieceWidth:   DefaultPieceSize,
		PieceHeight:  DefaultPieceSize,
		Noise: NoiseConfig{
			Jitter:    0.8,
			Frequency: 0.7,
		},
		Edges: EdgeConfig{
			BlurRadius:      2,
			SobelThreshold:  10,
			PointsThreshold: 20,
		},
	}
}

// LoadConfig reads a YAML file on top of the default configuration, so that
// omitted keys keep their default value.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config")
	}
	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.WorkingSize <= 0:
		return errors.Errorf("working_size must be positive, got %g", c.WorkingSize)
	case c.MinDistance < 0:
		return errors.Errorf("min_distance must not be negative, got %g", c.MinDistance)
	case 2*c.MinDistance >= c.WorkingSize:
		return errors.Errorf("min_distance %g leaves no room in a working space of %g", c.MinDistance, c.WorkingSize)
	case c.Points < 0:
		return errors.Errorf("points must not be negative, got %d", c.Points)
	case c.PieceWidth <= 0 || c.PieceHeight <= 0:
		return errors.Errorf("invalid piece size %dx%d", c.PieceWidth, c.PieceHeight)
	case c.Workers < 0:
		return errors.Errorf("workers must not be negative, got %d", c.Workers)
	}
	switch c.Generator {
	case RandomSource, NoiseSource, EdgeSource:
	default:
		return errors.Errorf("unknown generator %q", c.Generator)
	}
	if _, err := NewTriangulator(c.Triangulator, 0); err != nil {
		return err
	}
	return nil
}

// Processor builds the pipeline described by the configuration.
func (c *Config) Processor(logger *zap.Logger) *Processor {
	return &Processor{
		WorkingSize:       c.WorkingSize,
		MinDistance:       c.MinDistance,
		PieceWidth:        c.PieceWidth,
		PieceHeight:       c.PieceHeight,
		Triangulator:      c.Triangulator,
		ExcludeBorderOnly: c.ExcludeBorderOnly,
		Validate:          true,
		Workers:           c.Workers,
		Logger:            logger,
	}
}

// PointGenerator returns the seed generator selected by the configuration.
// The edge generator samples src, which may be nil for the other ones.
func (c *Config) PointGenerator(src image.Image) (PointGenerator, error) {
	switch c.Generator {
	case RandomSource:
		return RandomGenerator{Seed: c.Seed, Size: c.WorkingSize}, nil
	case NoiseSource:
		return NoiseGenerator{
			Seed:      c.Seed,
			Size:      c.WorkingSize,
			Jitter:    c.Noise.Jitter,
			Frequency: c.Noise.Frequency,
		}, nil
	case EdgeSource:
		if src == nil {
			return nil, errors.Wrap(ErrEmptySource, "edge generator")
		}
		return EdgeGenerator{
			Image:           src,
			Size:            c.WorkingSize,
			Seed:            c.Seed,
			BlurRadius:      c.Edges.BlurRadius,
			SobelThreshold:  c.Edges.SobelThreshold,
			PointsThreshold: c.Edges.PointsThreshold,
		}, nil
	}
	return nil, errors.Errorf("unknown generator %q", c.Generator)
}
