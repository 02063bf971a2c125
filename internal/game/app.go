package game

import (
	"log/slog"
	"time"

	"terrain-mc/internal/input"
	"terrain-mc/internal/profiling"

	"github.com/go-gl/glfw/v3.3/glfw"
)

type App struct {
	window       *glfw.Window
	inputManager *input.InputManager
	session      *Session
	logger       *slog.Logger

	fpsLimiter *FPSLimiter
	start      time.Time
	lastTime   time.Time
}

func NewApp(window *glfw.Window, im *input.InputManager, session *Session, fpsLimit int, logger *slog.Logger) *App {
	now := time.Now()
	return &App{
		window:       window,
		inputManager: im,
		session:      session,
		logger:       logger,
		fpsLimiter:   NewFPSLimiter(fpsLimit),
		start:        now,
		lastTime:     now,
	}
}

func (a *App) Run() {
	for !a.window.ShouldClose() {
		a.tick()
	}
	a.session.Cleanup()
}

func (a *App) tick() {
	profiling.ResetFrame()
	startTick := time.Now()
	now := time.Now()
	dt := now.Sub(a.lastTime).Seconds()
	a.lastTime = now

	func() { defer profiling.Track("glfw.PollEvents")(); glfw.PollEvents() }()

	a.session.Update(dt, now.Sub(a.start).Seconds(), a.inputManager)
	a.session.Render(dt)

	func() { defer profiling.Track("glfw.SwapBuffers")(); a.window.SwapBuffers() }()

	d := time.Since(startTick)
	a.session.HUD.ProfilingSetFrameDuration(d)
	// Check if frame took too long (> 16ms)
	if d > 16*time.Millisecond {
		a.logger.Debug("slow frame", "duration", d, "top", profiling.TopN(5))
	}

	a.inputManager.PostUpdate() // Clear "JustPressed" flags
	a.fpsLimiter.Wait()
}

// RefreshRender handles window resize repaints
func (a *App) RefreshRender() {
	a.session.Render(0)
	a.window.SwapBuffers()
}
