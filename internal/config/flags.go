package config

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
)

// gridSize is a flag.Value for "x,y,z" chunk grid sizes.
type gridSize struct{ v *[3]int }

func (g gridSize) String() string {
	if g.v == nil {
		return ""
	}
	return fmt.Sprintf("%d,%d,%d", g.v[0], g.v[1], g.v[2])
}

func (g gridSize) Set(s string) error {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return fmt.Errorf("want x,y,z, got %q", s)
	}
	var out [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return fmt.Errorf("size component %d: %w", i, err)
		}
		out[i] = n
	}
	*g.v = out
	return nil
}

// RegisterFlags binds the terrain flags to cfg and returns the -config path flag.
func RegisterFlags(fs *flag.FlagSet, cfg *Config) *string {
	path := fs.String("config", "", "JSON config file; explicit flags override it")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "noise seed")
	fs.Float64Var(&cfg.Frequency, "frequency", cfg.Frequency, "noise frequency divisor")
	fs.Float64Var(&cfg.MaxHeight, "max-height", cfg.MaxHeight, "terrain height scale")
	fs.Float64Var(&cfg.SurfaceThreshold, "threshold", cfg.SurfaceThreshold, "iso-surface density")
	fs.Float64Var(&cfg.GridScale, "grid-scale", cfg.GridScale, "world units per chunk")
	fs.IntVar(&cfg.CellCount, "cells", cfg.CellCount, "cells per chunk edge")
	fs.Var(gridSize{v: &cfg.ChunkGridSize}, "size", "chunk grid size as x,y,z")
	fs.StringVar(&cfg.Noise, "noise", cfg.Noise, "noise backend: perlin, simplex or value")
	fs.BoolVar(&cfg.Gradient, "gradient", cfg.Gradient, "color vertices by height")
	fs.IntVar(&cfg.ChunksPerTick, "chunks-per-tick", cfg.ChunksPerTick, "chunks processed per tick")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "field sampling goroutines")
	return path
}

// Resolve merges the file at path under the flags explicitly set on fs and
// validates the result. An empty path keeps cfg as parsed.
func Resolve(fs *flag.FlagSet, cfg *Config, path string) (*Config, error) {
	if path != "" {
		fromFile, err := Load(path)
		if err != nil {
			return nil, err
		}
		explicit := make(map[string]bool)
		fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
		Merge(cfg, fromFile, explicit)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
