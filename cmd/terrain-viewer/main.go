package main

import (
	"flag"
	"log/slog"
	"os"
	"runtime"

	"terrain-mc/internal/config"
	"terrain-mc/internal/game"
	"terrain-mc/internal/input"
	"terrain-mc/internal/noise"

	"github.com/alitto/pond/v2"
	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	cfg := config.DefaultConfig()
	configPath := config.RegisterFlags(flag.CommandLine, cfg)
	fps := flag.Int("fps", 120, "frame rate cap (0 disables)")
	width := flag.Int("width", 1280, "window width")
	height := flag.Int("height", 720, "window height")
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

	if err := glfw.Init(); err != nil {
		log.Error("init glfw", "error", err)
		os.Exit(1)
	}
	defer glfw.Terminate()

	window, err := game.SetupWindow(*width, *height, "terrain")
	if err != nil {
		log.Error("create window", "error", err)
		os.Exit(1)
	}

	var workers pond.Pool
	if cfg.Workers > 1 {
		pool := pond.NewPool(cfg.Workers)
		defer pool.StopAndWait()
		workers = pool
	}

	session, err := game.NewSession(window, cfg, sampler, workers, log)
	if err != nil {
		log.Error("create session", "error", err)
		os.Exit(1)
	}

	log.Info("viewer started",
		"size", cfg.ChunkGridSize,
		"cells", cfg.CellCount,
		"noise", cfg.Noise,
		"seed", cfg.Seed,
		"workers", cfg.Workers,
	)

	app := game.NewApp(window, input.NewInputManager(), session, *fps, log)
	game.SetupInputHandlers(app)
	app.Run()

	st := session.World.Stats()
	log.Info("viewer closed", "chunks", st.Chunks, "triangles", st.Triangles, "refreshed", st.Refreshed)
}
