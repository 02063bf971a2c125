package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"terrain-mc/internal/noise"
)

// ErrInvalidConfig marks a configuration that cannot drive terrain generation.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the terrain configuration. It is loaded once at startup.
type Config struct {
	Seed             int64   `json:"seed"`
	Frequency        float64 `json:"frequency"`
	MaxHeight        float64 `json:"max_height"`
	SurfaceThreshold float64 `json:"surface_threshold"`
	// GridScale is world units per chunk, CellCount is cells per chunk edge.
	GridScale     float64 `json:"grid_scale"`
	CellCount     int     `json:"cell_count"`
	ChunkGridSize [3]int  `json:"chunk_grid_size"`
	Noise         string  `json:"noise"`
	Gradient      bool    `json:"gradient"`

	ChunksPerTick int `json:"chunks_per_tick"`
	// Workers is the number of field sampling goroutines; 1 or less samples serially.
	Workers int `json:"workers"`

	BrushStrength float64 `json:"brush_strength"`
	// BrushTick is the number of seconds between edits while the tool is held.
	BrushTick     float64 `json:"brush_tick"`
	BrushMaxScale float64 `json:"brush_max_scale"`
	MinDistance   float64 `json:"min_distance"`
	MaxDistance   float64 `json:"max_distance"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Seed:             257746,
		Frequency:        32,
		MaxHeight:        24,
		SurfaceThreshold: 0.5,
		GridScale:        16,
		CellCount:        16,
		ChunkGridSize:    [3]int{4, 2, 4},
		Noise:            noise.KindPerlin,
		Gradient:         true,
		ChunksPerTick:    1,
		Workers:          4,
		BrushStrength:    0.05,
		BrushTick:        0.05,
		BrushMaxScale:    50,
		MinDistance:      1,
		MaxDistance:      100,
	}
}

// Load reads a JSON config file. Fields missing from the file keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["seed"] {
		cfg.Seed = fromFile.Seed
	}
	if !explicitFlags["frequency"] {
		cfg.Frequency = fromFile.Frequency
	}
	if !explicitFlags["max-height"] {
		cfg.MaxHeight = fromFile.MaxHeight
	}
	if !explicitFlags["threshold"] {
		cfg.SurfaceThreshold = fromFile.SurfaceThreshold
	}
	if !explicitFlags["grid-scale"] {
		cfg.GridScale = fromFile.GridScale
	}
	if !explicitFlags["cells"] {
		cfg.CellCount = fromFile.CellCount
	}
	if !explicitFlags["size"] {
		cfg.ChunkGridSize = fromFile.ChunkGridSize
	}
	if !explicitFlags["noise"] {
		cfg.Noise = fromFile.Noise
	}
	if !explicitFlags["gradient"] {
		cfg.Gradient = fromFile.Gradient
	}
	if !explicitFlags["chunks-per-tick"] {
		cfg.ChunksPerTick = fromFile.ChunksPerTick
	}
	if !explicitFlags["workers"] {
		cfg.Workers = fromFile.Workers
	}
	cfg.BrushStrength = fromFile.BrushStrength
	cfg.BrushTick = fromFile.BrushTick
	cfg.BrushMaxScale = fromFile.BrushMaxScale
	cfg.MinDistance = fromFile.MinDistance
	cfg.MaxDistance = fromFile.MaxDistance
}

// Validate reports values that chunk math cannot work with. The error wraps
// ErrInvalidConfig and is fatal for the session.
func (c *Config) Validate() error {
	switch {
	case c.CellCount <= 0:
		return fmt.Errorf("%w: cell_count must be positive, got %d", ErrInvalidConfig, c.CellCount)
	case c.Frequency <= 0:
		return fmt.Errorf("%w: frequency must be positive, got %g", ErrInvalidConfig, c.Frequency)
	case c.GridScale <= 0:
		return fmt.Errorf("%w: grid_scale must be positive, got %g", ErrInvalidConfig, c.GridScale)
	case c.MaxHeight == 0:
		return fmt.Errorf("%w: max_height must be non-zero", ErrInvalidConfig)
	case c.ChunksPerTick < 0:
		return fmt.Errorf("%w: chunks_per_tick must not be negative, got %d", ErrInvalidConfig, c.ChunksPerTick)
	case !noise.Valid(c.Noise):
		return fmt.Errorf("%w: %w: %q", ErrInvalidConfig, noise.ErrUnknownNoise, c.Noise)
	}
	for axis, n := range c.ChunkGridSize {
		if n < 0 {
			return fmt.Errorf("%w: chunk_grid_size[%d] must not be negative, got %d", ErrInvalidConfig, axis, n)
		}
	}
	return nil
}

// CellScale returns world units per lattice unit.
func (c *Config) CellScale() float64 {
	return c.GridScale / float64(c.CellCount)
}
