package game

import (
	"fmt"
	"log/slog"
	"time"

	"terrain-mc/internal/config"
	"terrain-mc/internal/graphics"
	brushview "terrain-mc/internal/graphics/renderables/brush"
	"terrain-mc/internal/graphics/renderables/hud"
	"terrain-mc/internal/graphics/renderables/terrain"
	"terrain-mc/internal/graphics/renderer"
	"terrain-mc/internal/input"
	"terrain-mc/internal/noise"
	"terrain-mc/internal/physics"
	"terrain-mc/internal/profiling"
	"terrain-mc/internal/terraform"
	"terrain-mc/internal/world"

	"github.com/alitto/pond/v2"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	thresholdStep = 0.05
	fastFactor    = 4
	cameraRadius  = 0.5
)

// Session owns the world and everything that draws or edits it
type Session struct {
	Window    *glfw.Window
	Renderer  *renderer.Renderer
	Camera    *graphics.Camera
	World     *world.World
	Engine    *terraform.Engine
	Brush     *terraform.Brush
	BrushView *brushview.Brush
	HUD       *hud.HUD

	cfg    *config.Config
	logger *slog.Logger

	Frames           int
	LastFPSCheckTime time.Time
}

func NewSession(window *glfw.Window, cfg *config.Config, sampler noise.Sampler, workers pond.Pool, logger *slog.Logger) (*Session, error) {
	terrainRenderer := terrain.NewTerrain()
	brushRenderer := brushview.NewBrush()

	width, height := window.GetSize()
	fbw, fbh := window.GetFramebufferSize()
	hudRenderer := hud.NewHUD(fbw, fbh)
	camera := graphics.NewCamera(width, height)

	r, err := renderer.NewRenderer(camera, terrainRenderer, brushRenderer, hudRenderer)
	if err != nil {
		return nil, err
	}

	opts := []world.Option{world.WithSurfacePool(terrainRenderer), world.WithLogger(logger)}
	if workers != nil {
		opts = append(opts, world.WithWorkers(workers))
	}
	w := world.New(cfg, sampler, opts...)
	w.RequestAll()

	// Start at the grid corner, above the tallest possible terrain
	top := float32(cfg.GridScale) * float32(cfg.ChunkGridSize[1])
	camera.Position = mgl32.Vec3{-4, top + 8, -4}

	s := &Session{
		Window:           window,
		Renderer:         r,
		Camera:           camera,
		World:            w,
		Engine:           terraform.New(w, logger),
		Brush:            terraform.NewBrush(cfg),
		BrushView:        brushRenderer,
		HUD:              hudRenderer,
		cfg:              cfg,
		logger:           logger,
		LastFPSCheckTime: time.Now(),
	}
	s.Resize()
	return s, nil
}

func (s *Session) Cleanup() {
	s.Renderer.Dispose()
	s.Renderer = nil
}

// Resize syncs the GL viewport and camera with the window
func (s *Session) Resize() {
	fbw, fbh := s.Window.GetFramebufferSize()
	s.Renderer.UpdateViewport(fbw, fbh)
	// cursor rays use window coordinates
	s.Camera.SetViewport(s.Window.GetSize())
}

// Update runs one frame of input, world streaming and terraforming. now is
// the session clock in seconds.
func (s *Session) Update(dt, now float64, im *input.InputManager) {
	s.handleInputActions(im)
	s.moveCamera(dt, im)

	func() {
		defer profiling.Track("world.Tick")()
		s.World.Tick()
	}()

	s.updateBrush(now, im)
}

func (s *Session) handleInputActions(im *input.InputManager) {
	if im.JustPressed(input.ActionQuit) {
		s.Window.SetShouldClose(true)
	}
	if im.JustPressed(input.ActionRegenerate) {
		n := s.World.RequestAll()
		s.logger.Info("regenerate requested", "queued", n)
	}
	if im.JustPressed(input.ActionThresholdDown) {
		s.World.SetSurfaceThreshold(s.World.SurfaceThreshold() - thresholdStep)
	}
	if im.JustPressed(input.ActionThresholdUp) {
		s.World.SetSurfaceThreshold(s.World.SurfaceThreshold() + thresholdStep)
	}
	if im.JustPressed(input.ActionToggleWireframe) {
		s.Renderer.ToggleWireframe()
	}
	if im.JustPressed(input.ActionToggleProfiling) {
		s.HUD.ToggleProfiling()
	}
}

func (s *Session) moveCamera(dt float64, im *input.InputManager) {
	if im.IsActive(input.ActionLook) {
		s.Camera.Look(im.CursorDelta())
	}
	var forward, right, up float32
	if im.IsActive(input.ActionMoveForward) {
		forward++
	}
	if im.IsActive(input.ActionMoveBackward) {
		forward--
	}
	if im.IsActive(input.ActionMoveRight) {
		right++
	}
	if im.IsActive(input.ActionMoveLeft) {
		right--
	}
	if im.IsActive(input.ActionMoveUp) {
		up++
	}
	if im.IsActive(input.ActionMoveDown) {
		up--
	}
	if im.IsActive(input.ActionFast) {
		dt *= fastFactor
	}
	from := s.Camera.Position
	s.Camera.Move(forward, right, up, dt)
	if s.Camera.Position != from {
		s.Camera.Position = physics.ResolveMove(from, s.Camera.Position, cameraRadius, s.World.Chunks())
	}
}

func (s *Session) updateBrush(now float64, im *input.InputManager) {
	if d := im.ScrollDelta(); d != 0 {
		s.Brush.Scroll(float32(d))
	}

	ray := s.Camera.CursorRay(im.Cursor())
	pick := physics.Pick(ray, float32(s.cfg.MaxDistance), s.World.Chunks())
	shift := im.IsActive(input.ActionModShift)
	visible := s.Brush.Visible(pick.Point, ray.Origin)
	s.BrushView.Set(pick.Point, s.Brush.Radius(), shift, visible)
	mode := ""
	if visible {
		mode = terraform.Subtract.String()
		if shift {
			mode = terraform.Add.String()
		}
	}
	s.HUD.SetBrush(s.Brush.Radius(), mode)

	if !im.IsActive(input.ActionTerraform) || !s.Brush.Ready(now) {
		return
	}
	if _, ok := s.Engine.ApplyAt(s.Brush.Edit(pick.Point, shift)); !ok {
		s.logger.Debug("brush outside terrain", "point", pick.Point)
	}
}

func (s *Session) Render(dt float64) {
	s.Renderer.Render(s.World, dt)

	s.Frames++
	if time.Since(s.LastFPSCheckTime) >= time.Second {
		st := s.World.Stats()
		title := fmt.Sprintf("terrain | %d FPS | chunks %d (%d queued) | tris %d | threshold %.2f | brush %.1f",
			s.Frames, st.Chunks, st.Pending, st.Triangles, s.World.SurfaceThreshold(), s.Brush.Scale)
		if s.HUD.ShowProfiling() {
			title += " | " + profiling.TopN(3)
		}
		s.Window.SetTitle(title)
		s.Frames = 0
		s.LastFPSCheckTime = time.Now()
	}
}
