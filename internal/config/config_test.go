package config

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"terrain-mc/internal/noise"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config: %v", err)
	}
}

func TestValidateRejectsNonPositive(t *testing.T) {
	cases := map[string]func(c *Config){
		"cell_count": func(c *Config) { c.CellCount = 0 },
		"frequency":  func(c *Config) { c.Frequency = -1 },
		"grid_scale": func(c *Config) { c.GridScale = 0 },
		"max_height": func(c *Config) { c.MaxHeight = 0 },
		"size":       func(c *Config) { c.ChunkGridSize = [3]int{1, -1, 1} },
	}
	for name, mutate := range cases {
		c := DefaultConfig()
		mutate(c)
		if err := c.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: got %v, want ErrInvalidConfig", name, err)
		}
	}
}

func TestValidateUnknownNoise(t *testing.T) {
	c := DefaultConfig()
	c.Noise = "worley"
	err := c.Validate()
	if !errors.Is(err, ErrInvalidConfig) || !errors.Is(err, noise.ErrUnknownNoise) {
		t.Fatalf("got %v, want ErrInvalidConfig wrapping ErrUnknownNoise", err)
	}
}

func TestLoadKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "terrain.json")
	if err := os.WriteFile(path, []byte(`{"seed": 9, "cell_count": 8}`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Seed != 9 || cfg.CellCount != 8 {
		t.Fatalf("got seed=%d cells=%d, want 9 and 8", cfg.Seed, cfg.CellCount)
	}
	if cfg.GridScale != DefaultConfig().GridScale {
		t.Fatalf("grid_scale: got %g, want default %g", cfg.GridScale, DefaultConfig().GridScale)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"seed": "nope"`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestMergeFlagsWin(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 1
	cfg.CellCount = 4
	file := DefaultConfig()
	file.Seed = 2
	file.CellCount = 32

	Merge(cfg, file, map[string]bool{"seed": true})
	if cfg.Seed != 1 {
		t.Fatalf("explicit flag overwritten: seed=%d", cfg.Seed)
	}
	if cfg.CellCount != 32 {
		t.Fatalf("file value not applied: cells=%d", cfg.CellCount)
	}
}

func TestRegisterFlagsParse(t *testing.T) {
	cfg := DefaultConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	RegisterFlags(fs, cfg)
	if err := fs.Parse([]string{"-seed", "9", "-size", "2, 3,4", "-noise", "simplex"}); err != nil {
		t.Fatal(err)
	}
	if cfg.Seed != 9 || cfg.ChunkGridSize != [3]int{2, 3, 4} || cfg.Noise != "simplex" {
		t.Fatalf("flags not applied: %+v", cfg)
	}
	if err := fs.Parse([]string{"-size", "2,3"}); err == nil {
		t.Fatalf("expected error for a two-component size")
	}
}

func TestResolveFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "terrain.json")
	if err := os.WriteFile(path, []byte(`{"seed": 1, "cell_count": 8, "frequency": 10, "grid_scale": 8, "max_height": 4, "noise": "value"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := DefaultConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	p := RegisterFlags(fs, cfg)
	if err := fs.Parse([]string{"-config", path, "-seed", "42"}); err != nil {
		t.Fatal(err)
	}
	got, err := Resolve(fs, cfg, *p)
	if err != nil {
		t.Fatal(err)
	}
	if got.Seed != 42 {
		t.Fatalf("explicit flag lost: seed %d", got.Seed)
	}
	if got.CellCount != 8 || got.Noise != "value" {
		t.Fatalf("file values not merged: %+v", got)
	}
}

func TestResolveRejectsInvalid(t *testing.T) {
	cfg := DefaultConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	RegisterFlags(fs, cfg)
	if err := fs.Parse([]string{"-cells", "0"}); err != nil {
		t.Fatal(err)
	}
	if _, err := Resolve(fs, cfg, ""); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("got %v, want ErrInvalidConfig", err)
	}
}
