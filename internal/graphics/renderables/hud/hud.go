package hud

import (
	"fmt"
	"time"

	"terrain-mc/internal/graphics"
	"terrain-mc/internal/graphics/renderer"
	"terrain-mc/internal/profiling"
	"terrain-mc/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/font/gofont/goregular"
)

const fontPixels = 24

// HUD draws the terrain status text and the optional profiling overlay
type HUD struct {
	fontRenderer  *graphics.FontRenderer
	showProfiling bool
	width, height int

	// FPS tracking
	frames       int
	lastFPSCheck time.Time
	currentFPS   int

	brushRadius float32
	brushMode   string

	frameStats frameStats
}

// NewHUD creates a new HUD renderable
func NewHUD(width, height int) *HUD {
	return &HUD{
		width:        width,
		height:       height,
		lastFPSCheck: time.Now(),
	}
}

// Init bakes the embedded Go font into an atlas
func (h *HUD) Init() error {
	atlas, err := graphics.BuildFontAtlas(goregular.TTF, fontPixels)
	if err != nil {
		return err
	}
	fontRenderer, err := graphics.NewFontRenderer(atlas, h.width, h.height)
	if err != nil {
		return err
	}
	h.fontRenderer = fontRenderer
	return nil
}

// Render renders the HUD elements
func (h *HUD) Render(ctx renderer.RenderContext) {
	h.frames++
	if time.Since(h.lastFPSCheck) >= time.Second {
		h.currentFPS = h.frames
		h.lastFPSCheck = time.Now()
		h.frames = 0
	}
	if h.fontRenderer == nil || ctx.World == nil {
		return
	}

	white := mgl32.Vec3{1.0, 1.0, 1.0}
	lines := statusLines(ctx.World.Stats(), ctx.World.SurfaceThreshold(), h.currentFPS, h.brushRadius, h.brushMode)
	h.fontRenderer.RenderLines(lines, 10, 24, 17, 0.6, white)

	if h.showProfiling {
		func() {
			defer profiling.Track("renderer.hud")()
			h.RenderProfilingInfo(24 + 17*float32(len(lines)+1))
		}()
	}
}

// SetBrush updates the brush readout
func (h *HUD) SetBrush(radius float32, mode string) {
	h.brushRadius = radius
	h.brushMode = mode
}

// Dispose cleans up resources
func (h *HUD) Dispose() {
	if h.fontRenderer != nil {
		h.fontRenderer.Dispose()
		h.fontRenderer = nil
	}
}

// SetViewport keeps the text projection in pixel space
func (h *HUD) SetViewport(width, height int) {
	h.width, h.height = width, height
	if h.fontRenderer != nil {
		h.fontRenderer.SetViewport(width, height)
	}
}

// ToggleProfiling toggles profiling HUD visibility
func (h *HUD) ToggleProfiling() {
	h.showProfiling = !h.showProfiling
}

// ShowProfiling returns whether profiling is enabled
func (h *HUD) ShowProfiling() bool {
	return h.showProfiling
}

func statusLines(st world.Stats, threshold float32, fps int, brushRadius float32, brushMode string) []string {
	lines := []string{
		fmt.Sprintf("FPS: %d", fps),
		fmt.Sprintf("Chunks: %d (%d empty, %d queued)", st.Chunks, st.Empty, st.Pending),
		fmt.Sprintf("Triangles: %d", st.Triangles),
		fmt.Sprintf("Threshold: %.2f", threshold),
	}
	if brushMode != "" {
		lines = append(lines, fmt.Sprintf("Brush: %.1f %s", brushRadius, brushMode))
	}
	return lines
}
