package jigsaw

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jigsaw.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewConfigIsValid(t *testing.T) {
	cfg := NewConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, float64(DefaultWorkingSize), cfg.WorkingSize)
	assert.Equal(t, RandomSource, cfg.Generator)
	assert.Equal(t, BowyerWatsonBackend, cfg.Triangulator)
	assert.False(t, cfg.ExcludeBorderOnly)
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
points: 40
seed: 9
generator: noise
triangulator: sweep
exclude_border_only: true
noise:
  jitter: 0.5
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 40, cfg.Points)
	assert.Equal(t, int64(9), cfg.Seed)
	assert.Equal(t, NoiseSource, cfg.Generator)
	assert.Equal(t, SweepBackend, cfg.Triangulator)
	assert.True(t, cfg.ExcludeBorderOnly)
	assert.Equal(t, 0.5, cfg.Noise.Jitter)

	// Keys left out keep their defaults.
	assert.Equal(t, 0.7, cfg.Noise.Frequency)
	assert.Equal(t, 30.0, cfg.MinDistance)
	assert.Equal(t, DefaultPieceSize, cfg.PieceWidth)
	assert.Equal(t, 2, cfg.Edges.BlurRadius)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "points: [1, 2"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "triangulator: quadtree\n"))
	assert.ErrorContains(t, err, `unknown triangulator "quadtree"`)
}

func TestConfigValidate(t *testing.T) {
	cases := map[string]func(c *Config){
		"working size": func(c *Config) { c.WorkingSize = 0 },
		"distance":     func(c *Config) { c.MinDistance = -1 },
		"no room":      func(c *Config) { c.MinDistance = 256 },
		"points":       func(c *Config) { c.Points = -2 },
		"piece size":   func(c *Config) { c.PieceHeight = 0 },
		"workers":      func(c *Config) { c.Workers = -1 },
		"generator":    func(c *Config) { c.Generator = "model" },
		"triangulator": func(c *Config) { c.Triangulator = "fan" },
	}
	for name, mutate := range cases {
		cfg := NewConfig()
		mutate(cfg)
		assert.Error(t, cfg.Validate(), name)
	}
}

func TestConfigProcessor(t *testing.T) {
	cfg := NewConfig()
	cfg.MinDistance = 12
	cfg.Triangulator = DelaunatorBackend
	cfg.ExcludeBorderOnly = true
	cfg.Workers = 3

	logger := zap.NewNop()
	p := cfg.Processor(logger)
	assert.Equal(t, 12.0, p.MinDistance)
	assert.Equal(t, DelaunatorBackend, p.Triangulator)
	assert.True(t, p.ExcludeBorderOnly)
	assert.True(t, p.Validate)
	assert.Equal(t, 3, p.Workers)
	assert.Same(t, logger, p.Logger)
}

func TestConfigPointGenerator(t *testing.T) {
	cfg := NewConfig()

	gen, err := cfg.PointGenerator(nil)
	require.NoError(t, err)
	assert.Equal(t, RandomGenerator{Seed: 1, Size: 512}, gen)

	cfg.Generator = NoiseSource
	gen, err = cfg.PointGenerator(nil)
	require.NoError(t, err)
	assert.IsType(t, NoiseGenerator{}, gen)

	cfg.Generator = EdgeSource
	_, err = cfg.PointGenerator(nil)
	assert.True(t, errors.Is(err, ErrEmptySource))

	gen, err = cfg.PointGenerator(squareImage(64))
	require.NoError(t, err)
	points, err := gen.GeneratePoints(cfg.Points)
	require.NoError(t, err)
	assert.Len(t, points, cfg.Points)
}
