package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"terrain-mc/internal/config"
	"terrain-mc/internal/noise"
	"terrain-mc/internal/physics"
	"terrain-mc/internal/profiling"
	"terrain-mc/internal/terraform"
	"terrain-mc/internal/world"

	"github.com/alitto/pond/v2"
)

func main() {
	cfg := config.DefaultConfig()
	configPath := config.RegisterFlags(flag.CommandLine, cfg)
	maxTicks := flag.Int("ticks", 0, "stop after this many ticks (0 runs until idle)")
	editSpec := flag.String("edit", "", "terraform edit as x,y,z,radius,strength,add|subtract; y may be \"ground\"")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	cfg, err := config.Resolve(flag.CommandLine, cfg, *configPath)
	if err != nil {
		log.Error("load config", "error", err)
		os.Exit(1)
	}

	sampler, err := noise.New(cfg.Noise)
	if err != nil {
		log.Error("create noise", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := []world.Option{world.WithLogger(log)}
	if cfg.Workers > 1 {
		pool := pond.NewPool(cfg.Workers)
		defer pool.StopAndWait()
		opts = append(opts, world.WithWorkers(pool))
	}
	w := world.New(cfg, sampler, opts...)

	queued := w.RequestAll()
	log.Info("terrain requested",
		"chunks", queued,
		"size", cfg.ChunkGridSize,
		"cells", cfg.CellCount,
		"noise", cfg.Noise,
		"seed", cfg.Seed,
	)
	ticks := run(ctx, w, *maxTicks, log)
	log.Info("terrain loaded", "ticks", ticks, "top", profiling.TopN(3))

	if *editSpec != "" && ctx.Err() == nil {
		e, onGround, err := parseEdit(*editSpec)
		if err != nil {
			log.Error("parse edit", "error", err)
			os.Exit(1)
		}
		if onGround {
			top := float32(cfg.GridScale) * float32(cfg.ChunkGridSize[1])
			y, ok := physics.FindGroundLevel(e.Point.X(), e.Point.Z(), top, w.Chunks())
			if !ok {
				log.Warn("no ground under edit point", "x", e.Point.X(), "z", e.Point.Z())
			}
			e.Point[1] = y
		}
		en := terraform.New(w, log)
		visited, ok := en.ApplyAt(e)
		if !ok {
			log.Warn("edit point outside loaded terrain", "point", e.Point)
		} else {
			log.Info("terraform applied", "mode", e.Mode, "point", e.Point, "chunks", visited)
			profiling.ResetFrame()
			ticks = run(ctx, w, *maxTicks, log)
			log.Info("terrain refreshed", "ticks", ticks, "top", profiling.TopN(3))
		}
	}

	st := w.Stats()
	log.Info("done",
		"chunks", st.Chunks,
		"empty", st.Empty,
		"triangles", st.Triangles,
		"generated", st.Generated,
		"refreshed", st.Refreshed,
		"pending", st.Pending,
	)
}

// run ticks the world until the queue drains, maxTicks is reached or ctx ends.
func run(ctx context.Context, w *world.World, maxTicks int, log *slog.Logger) int {
	ticks := 0
	for w.Pending() > 0 {
		if ctx.Err() != nil {
			log.Info("interrupted", "ticks", ticks)
			break
		}
		if maxTicks > 0 && ticks >= maxTicks {
			break
		}
		w.Tick()
		ticks++
	}
	return ticks
}
